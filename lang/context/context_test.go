package context

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/somire-lang/somire/lang/typesys"
)

func TestDefineLocalAssignsIncreasingSlots(t *testing.T) {
	c := NewFunctionTop(nil)
	intT := typesys.NewPrimitive(typesys.KindInt, "int", "int")
	a := c.DefineLocal("a", intT)
	b := c.DefineLocal("b", intT)
	require.EqualValues(t, 0, a.Slot)
	require.EqualValues(t, 1, b.Slot)
	require.Equal(t, 2, c.LocalCount())
}

func TestNestedBlockSharesLocalNumbering(t *testing.T) {
	top := NewFunctionTop(nil)
	intT := typesys.NewPrimitive(typesys.KindInt, "int", "int")
	top.DefineLocal("a", intT)

	block := NewBlock(top)
	b := block.DefineLocal("b", intT)
	require.EqualValues(t, 1, b.Slot)
	// The block's own local count is tracked separately from the
	// function-top's, for the block-exit POP count.
	require.Equal(t, 1, block.LocalCount())
	require.Equal(t, 1, top.LocalCount())
}

func TestGetVariableFindsOwnLocal(t *testing.T) {
	c := NewFunctionTop(nil)
	intT := typesys.NewPrimitive(typesys.KindInt, "int", "int")
	c.DefineLocal("x", intT)

	b, ok := c.GetVariable("x")
	require.True(t, ok)
	require.EqualValues(t, 0, b.Slot)
}

func TestGetVariableUnresolvedReturnsFalse(t *testing.T) {
	c := NewFunctionTop(nil)
	_, ok := c.GetVariable("nope")
	require.False(t, ok)
}

func TestGetVariableForwardsThroughNestedBlocks(t *testing.T) {
	top := NewFunctionTop(nil)
	intT := typesys.NewPrimitive(typesys.KindInt, "int", "int")
	top.DefineLocal("x", intT)

	inner := NewBlock(NewBlock(top))
	b, ok := inner.GetVariable("x")
	require.True(t, ok)
	require.EqualValues(t, 0, b.Slot)
}

func TestGetVariableAllocatesUpvalue(t *testing.T) {
	outer := NewFunctionTop(nil)
	intT := typesys.NewPrimitive(typesys.KindInt, "int", "int")
	outer.DefineLocal("x", intT)

	inner := NewFunctionTop(outer)
	b, ok := inner.GetVariable("x")
	require.True(t, ok)
	require.EqualValues(t, -1, b.Slot)
	require.Equal(t, []int16{0}, inner.FunctionUpvalues())
}

func TestGetVariableUpvalueResolvedOnceAndCached(t *testing.T) {
	outer := NewFunctionTop(nil)
	intT := typesys.NewPrimitive(typesys.KindInt, "int", "int")
	outer.DefineLocal("x", intT)

	inner := NewFunctionTop(outer)
	first, _ := inner.GetVariable("x")
	second, _ := inner.GetVariable("x")
	require.Equal(t, first, second)
	require.Len(t, inner.FunctionUpvalues(), 1)
}

func TestGetVariableAllocatesDistinctUpvaluesForDistinctNames(t *testing.T) {
	outer := NewFunctionTop(nil)
	intT := typesys.NewPrimitive(typesys.KindInt, "int", "int")
	outer.DefineLocal("x", intT)
	outer.DefineLocal("y", intT)

	inner := NewFunctionTop(outer)
	bx, _ := inner.GetVariable("x")
	by, _ := inner.GetVariable("y")
	require.EqualValues(t, -1, bx.Slot)
	require.EqualValues(t, -2, by.Slot)
	require.Equal(t, []int16{0, 1}, inner.FunctionUpvalues())
}

func TestGetVariableThroughTwoNestedFunctions(t *testing.T) {
	outer := NewFunctionTop(nil)
	intT := typesys.NewPrimitive(typesys.KindInt, "int", "int")
	outer.DefineLocal("x", intT)

	mid := NewFunctionTop(outer)
	inner := NewFunctionTop(mid)

	b, ok := inner.GetVariable("x")
	require.True(t, ok)
	require.EqualValues(t, -1, b.Slot)
	// mid itself had to capture x as its own upvalue to relay it to inner.
	require.Equal(t, []int16{0}, mid.FunctionUpvalues())
}

func TestChangeTypeUpdatesExistingBinding(t *testing.T) {
	c := NewFunctionTop(nil)
	anyT := typesys.NewPrimitive(typesys.KindAny, "any", "any")
	fnT := typesys.NewFunction(nil, anyT)
	c.DefineLocal("f", anyT)
	c.ChangeType("f", fnT)

	b, ok := c.GetVariable("f")
	require.True(t, ok)
	require.Same(t, fnT, b.Type)
}

func TestFunctionTopWithNoParentGlobalLookupFails(t *testing.T) {
	top := NewFunctionTop(nil)
	_, ok := top.GetVariable("undeclared")
	require.False(t, ok)
}
