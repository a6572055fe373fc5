package diag

import (
	"formulang/internal/source"
)

type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single finding of the lexer or parser.
// It is a value: once handed to a Reporter it is never modified.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
