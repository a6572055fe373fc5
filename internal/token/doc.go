// Package token defines lexical token kinds and trivia for formula rules.
// Invariants:
//   - Token.Text is the exact source substring of the token.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and // comments are represented as leading Trivia and
//     never appear in the main token stream.
//   - Indicator names (RSI, EMA, ...) are plain identifiers; the lexer
//     knows nothing about them.
//   - A token stream always ends with exactly one EOF token.
package token
