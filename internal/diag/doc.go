// Package diag defines the diagnostic model shared by the lexer and parser.
//
// Diagnostic is a plain value: severity, a stable Code, a short message,
// the primary span and optional notes. Notes point at related source (for
// example the '(' that was never closed) or name the grammar production that
// was being parsed when the problem was found.
//
// Producers emit through a Reporter so they stay independent of storage.
// BagReporter appends into a Bag, DedupReporter drops repeats and
// MultiReporter fans out. ReportBuilder is the chained form used by the
// parser:
//
//	diag.ReportError(r, diag.SynExpectSemicolon, sp, "expected ';'").
//		WithNote(sp, "while parsing statement").
//		Emit()
//
// Rendering lives in internal/diagfmt; this package does no IO.
package diag
