// Package trace is the logging layer of formulang: structured span and
// point events emitted by the driver, the lexer/parser passes and the
// parser's error recovery.
//
// # Usage
//
//	formulang check rules/ --trace=- --trace-level=detail
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when tracing is off
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory, dumped on failure
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopePass events, LevelDetail adds
// ScopeFile, LevelDebug adds ScopeNode (parser resync points).
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// A nil *Span is valid: Start and Begin return nil for filtered scopes.
package trace
