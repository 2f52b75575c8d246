// Package ast defines the node kinds that make up the input to the compile
// pipeline (spec.md §6): the parsed syntax tree. Parsing and tokenization
// themselves are peripheral collaborators (see lang/frontend); this package
// only specifies the node shapes the type walker and emitter require.
//
// Source-location diagnostics are an explicit Non-goal (spec.md §1), so
// unlike the teacher's lang/ast, no node carries a token.Pos.
package ast

import "github.com/somire-lang/somire/lang/typesys"

// Node is implemented by every syntax tree node.
type Node interface {
	isNode()
}

// Stmt is implemented by statement nodes.
type Stmt interface {
	Node
	isStmt()
}

// Expr is implemented by expression nodes. Every expression node carries a
// mutable slot for its resolved type (spec.md §6), populated by the type
// walker and consulted by the emitter.
type Expr interface {
	Node
	isExpr()

	// ResolvedType returns the type attached by the type walker, or nil if
	// the node has not been walked yet.
	ResolvedType() *typesys.Type
	// SetResolvedType attaches the type computed for this node.
	SetResolvedType(*typesys.Type)
}

// exprBase is embedded by every concrete Expr to provide the resolved-type
// slot without repeating its storage and accessors on each node type.
type exprBase struct {
	typ *typesys.Type
}

func (*exprBase) isNode() {}
func (*exprBase) isExpr() {}

func (e *exprBase) ResolvedType() *typesys.Type     { return e.typ }
func (e *exprBase) SetResolvedType(t *typesys.Type) { e.typ = t }

// Block is a sequence of statements, the body of a function, an if-branch,
// or a while loop.
type Block struct {
	Stmts []Stmt
}

func (*Block) isNode() {}
