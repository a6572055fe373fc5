// Package parser turns a token stream into an *ast.Program.
//
// The grammar is parsed by recursive descent with one procedure per
// precedence tier (or, and, comparison, additive, multiplicative, unary,
// primary) and a single token of lookahead; nothing backtracks.
//
// Syntax errors never stop the parse. The offending statement is reported
// once, tokens are discarded through the next ';' (or EOF) and parsing
// resumes. The only early exit is nesting deeper than Options.MaxDepth,
// which reports SYN2300 and returns what was parsed so far.
package parser
