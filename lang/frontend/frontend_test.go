package frontend

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/somire-lang/somire/lang/ast"
)

func TestParseProgramBuildsLetWithArithmeticPrecedence(t *testing.T) {
	src := `
kind: block
stmts:
  - kind: let
    name: x
    init:
      kind: binop
      op: "+"
      left: {kind: int, value: 2}
      right:
        kind: binop
        op: "*"
        left: {kind: int, value: 3}
        right: {kind: int, value: 4}
`
	block, err := ParseProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)

	let, ok := block.Stmts[0].(*ast.Let)
	require.True(t, ok)
	require.Equal(t, "x", let.Name)

	add, ok := let.Init.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "+", add.Op)

	left, ok := add.Left.(*ast.IntLit)
	require.True(t, ok)
	require.EqualValues(t, 2, left.Value)

	mul, ok := add.Right.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, "*", mul.Op)
}

func TestParseProgramBuildsFuncLitWithParamsAndBody(t *testing.T) {
	src := `
kind: block
stmts:
  - kind: let
    name: f
    init:
      kind: func
      result: int
      params:
        - {name: n, type: int}
      body:
        stmts:
          - kind: return
            x: {kind: id, name: n}
`
	block, err := ParseProgram([]byte(src))
	require.NoError(t, err)

	let := block.Stmts[0].(*ast.Let)
	fn, ok := let.Init.(*ast.FuncLit)
	require.True(t, ok)
	require.Equal(t, -1, fn.ProtoIndex)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "n", fn.Params[0].Name)
	require.Equal(t, "int", fn.Params[0].Type.Name)
	require.Equal(t, "int", fn.ResultType.Name)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseProgramBuildsIfWhileListCallAndProp(t *testing.T) {
	src := `
kind: block
stmts:
  - kind: let
    name: xs
    init:
      kind: list
      elems:
        - {kind: int, value: 1}
        - {kind: real, value: 2.0}
  - kind: while
    cond: {kind: symbol, name: true}
    body:
      stmts:
        - kind: expr
          x:
            kind: call
            callee: {kind: id, name: print}
            args:
              - kind: prop
                x: {kind: id, name: xs}
                name: length
  - kind: if
    cond: {kind: symbol, name: false}
    then:
      stmts:
        - {kind: return, x: {kind: int, value: 0}}
    else:
      stmts:
        - {kind: return, x: {kind: int, value: 1}}
`
	block, err := ParseProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, block.Stmts, 3)

	list := block.Stmts[0].(*ast.Let).Init.(*ast.ListLit)
	require.Len(t, list.Elems, 2)

	while := block.Stmts[1].(*ast.While)
	exprStmt := while.Body.Stmts[0].(*ast.ExprStmt)
	call := exprStmt.X.(*ast.Call)
	prop := call.Args[0].(*ast.PropAccess)
	require.Equal(t, "length", prop.Name)

	ifStmt := block.Stmts[2].(*ast.If)
	require.NotNil(t, ifStmt.Then)
	require.NotNil(t, ifStmt.Else)
}

func TestParseProgramRejectsUnknownExpressionKind(t *testing.T) {
	src := `
kind: block
stmts:
  - kind: expr
    x: {kind: nonsense}
`
	_, err := ParseProgram([]byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown expression kind")
}

func TestParseProgramRejectsMissingField(t *testing.T) {
	src := `
kind: block
stmts:
  - kind: let
    init: {kind: int, value: 1}
`
	_, err := ParseProgram([]byte(src))
	require.Error(t, err)
	require.Contains(t, err.Error(), `missing field "name"`)
}

func TestParseProgramEmptyDocumentYieldsEmptyBlock(t *testing.T) {
	block, err := ParseProgram([]byte(""))
	require.NoError(t, err)
	require.Empty(t, block.Stmts)
}

func TestParseProgramAcceptsBareStatementSequence(t *testing.T) {
	src := `
- kind: let
  name: x
  init: {kind: int, value: 1}
`
	block, err := ParseProgram([]byte(src))
	require.NoError(t, err)
	require.Len(t, block.Stmts, 1)
}
