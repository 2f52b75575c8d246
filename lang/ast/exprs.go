package ast

// SimpleType is a type reference by name (spec.md §6), e.g. the `int` in
// `fn(n: int) -> int`. It is resolved against a typesys.Namespace, not
// type-walked like an Expr — it has no resolved-type slot of its own.
type SimpleType struct {
	Name string
}

func (*SimpleType) isNode() {}

// IntLit is an integer literal.
type IntLit struct {
	exprBase
	Value int32
}

func NewIntLit(v int32) *IntLit { return &IntLit{Value: v} }

// RealLit is a floating point literal.
type RealLit struct {
	exprBase
	Value float64
}

func NewRealLit(v float64) *RealLit { return &RealLit{Value: v} }

// StringLit is a string literal.
type StringLit struct {
	exprBase
	Value string
}

func NewStringLit(v string) *StringLit { return &StringLit{Value: v} }

// SymbolLit is one of the keyword literals nil, true, false (spec.md §4.3).
type SymbolLit struct {
	exprBase
	Name string
}

func NewSymbolLit(name string) *SymbolLit { return &SymbolLit{Name: name} }

// Identifier is a variable reference, resolved against the enclosing
// Context and, failing that, the globals namespace.
type Identifier struct {
	exprBase
	Name string
}

func NewIdentifier(name string) *Identifier { return &Identifier{Name: name} }

// UnaryOp is a unary `-` or `not` expression.
type UnaryOp struct {
	exprBase
	Op string
	X  Expr
}

func NewUnaryOp(op string, x Expr) *UnaryOp { return &UnaryOp{Op: op, X: x} }

// BinaryOp is a binary operator expression; Op is the operator name as a
// string (spec.md §4.3), one of: + - * / % ^ < > <= >= == != and or index.
type BinaryOp struct {
	exprBase
	Op          string
	Left, Right Expr
}

func NewBinaryOp(op string, left, right Expr) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right}
}

// Param is one parameter of a FuncLit: its name and declared type
// expression.
type Param struct {
	Name string
	Type *SimpleType
}

// FuncLit is a function literal: `fn(params...) -> result: body`.
//
// ProtoIndex is reserved by the type walker before the body is compiled, so
// that a self-recursive reference inside the body resolves to a stable
// prototype slot (spec.md §4.5, SPEC_FULL.md's "protoIdx reservation order"
// supplemented-feature note). It is -1 until reserved.
type FuncLit struct {
	exprBase
	Params     []Param
	ResultType *SimpleType
	Body       *Block
	ProtoIndex int
}

func NewFuncLit(params []Param, resultType *SimpleType, body *Block) *FuncLit {
	return &FuncLit{Params: params, ResultType: resultType, Body: body, ProtoIndex: -1}
}

// ListLit is a list literal `[e1, e2, ...]`.
type ListLit struct {
	exprBase
	Elems []Expr
}

func NewListLit(elems []Expr) *ListLit { return &ListLit{Elems: elems} }

// Call is a function (or macro) call `callee(args...)`.
type Call struct {
	exprBase
	Callee Expr
	Args   []Expr
}

func NewCall(callee Expr, args []Expr) *Call { return &Call{Callee: callee, Args: args} }

// PropAccess is a property/method access `x.name`.
type PropAccess struct {
	exprBase
	X    Expr
	Name string
}

func NewPropAccess(x Expr, name string) *PropAccess { return &PropAccess{X: x, Name: name} }
