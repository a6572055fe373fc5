// Package ast defines the syntax tree produced by the parser.
//
// The tree is a closed sum type: Node is implemented only by the types in
// this package, and Expr / Stmt narrow it further. Consumers switch on the
// concrete type (or on Kind) and every traversal helper here panics on a
// variant it does not know, so adding a node kind fails loudly everywhere it
// is not yet handled.
//
// Each node owns its children exclusively; there are no parent pointers.
// Every node carries the span of its full source extent in Loc. A
// parenthesised expression has no node of its own: its Loc is widened to
// include the parentheses.
package ast
