package value_test

import (
	"testing"

	"github.com/somire-lang/somire/lang/gc"
	"github.com/somire-lang/somire/lang/value"
	"github.com/stretchr/testify/require"
)

func TestPrimitivesNeverTouchHeap(t *testing.T) {
	h := gc.NewHeap()
	_ = value.Int(42)
	_ = value.Real(3.14)
	_ = value.Bool(true)
	_ = value.Nil
	require.Equal(t, 0, h.Live(), "constructing primitive values must not register heap objects")
}

func TestListTracesItsRefElements(t *testing.T) {
	h := gc.NewHeap()
	s := value.NewString(h, "hi")
	l := value.NewList(h)
	l.Append(value.Ref(s))
	l.Append(value.Int(1))

	require.Equal(t, 2, h.Live())

	root := h.Pin(l)
	defer root.Release()
	h.Collect()
	require.Equal(t, 2, h.Live(), "string kept alive transitively through the list")
}

func TestListElementsCollectedWhenListUnrooted(t *testing.T) {
	h := gc.NewHeap()
	s := value.NewString(h, "hi")
	l := value.NewList(h)
	l.Append(value.Ref(s))

	h.Collect()
	require.Equal(t, 0, h.Live())
}

func TestClosureTracesUpvalueCells(t *testing.T) {
	h := gc.NewHeap()
	s := value.NewString(h, "captured")
	cell := value.NewCell(h, value.Ref(s))
	clo := value.NewClosure(h, 3, []*value.Cell{cell})

	root := h.Pin(clo)
	defer root.Release()
	h.Collect()
	require.Equal(t, 3, h.Live(), "closure, cell and string must all survive")
}

func TestValueStringFormatting(t *testing.T) {
	require.Equal(t, "nil", value.Nil.String())
	require.Equal(t, "true", value.Bool(true).String())
	require.Equal(t, "42", value.Int(42).String())
}
