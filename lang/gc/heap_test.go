package gc_test

import (
	"testing"

	"github.com/somire-lang/somire/lang/gc"
	"github.com/stretchr/testify/require"
)

// node is a minimal heap object used to build object graphs, including
// cycles, for the tests below.
type node struct {
	kids []gc.Object
}

func (n *node) Trace() []gc.Object { return n.kids }

func newNode(h *gc.Heap, kids ...gc.Object) *node {
	n := &node{kids: kids}
	h.Register(n)
	return n
}

func TestCollectSweepsUnreachable(t *testing.T) {
	h := gc.NewHeap()
	leaf := newNode(h)
	root := newNode(h, leaf)
	unreachable := newNode(h)
	_ = unreachable

	r := h.Pin(root)
	defer r.Release()

	require.Equal(t, 3, h.Live())
	h.Collect()
	require.Equal(t, 2, h.Live())
}

func TestPinIsReferenceCounted(t *testing.T) {
	h := gc.NewHeap()
	obj := newNode(h)

	r1 := h.Pin(obj)
	r2 := h.Pin(obj)

	r1.Release()
	h.Collect()
	require.Equal(t, 1, h.Live(), "still rooted via r2")

	r2.Release()
	h.Collect()
	require.Equal(t, 0, h.Live())
}

func TestCollectHandlesCycles(t *testing.T) {
	h := gc.NewHeap()
	a := &node{}
	b := &node{}
	h.Register(a)
	h.Register(b)
	a.kids = []gc.Object{b}
	b.kids = []gc.Object{a}

	// neither a nor b is rooted: the cycle must not keep them alive.
	h.Collect()
	require.Equal(t, 0, h.Live())
}

func TestCollectPreservesReachableCycle(t *testing.T) {
	h := gc.NewHeap()
	a := &node{}
	b := &node{}
	h.Register(a)
	h.Register(b)
	a.kids = []gc.Object{b}
	b.kids = []gc.Object{a}

	r := h.Pin(a)
	defer r.Release()

	h.Collect()
	require.Equal(t, 2, h.Live())
}

func TestStepTriggersCollectAtThreshold(t *testing.T) {
	h := gc.NewHeap()
	for i := 0; i < 16; i++ {
		newNode(h)
	}
	require.Equal(t, 16, h.Live())

	h.Step()
	require.Equal(t, 0, h.Live(), "all 16 objects were unreachable")
}

func TestStepDoublesThresholdAfterCollecting(t *testing.T) {
	h := gc.NewHeap()
	for i := 0; i < 16; i++ {
		r := h.Pin(newNode(h))
		defer r.Release()
	}
	h.Step() // triggers: live == threshold (16)
	require.Equal(t, 16, h.Live())

	// next collection should not fire again until live reaches 32.
	for i := 0; i < 15; i++ {
		newNode(h)
	}
	require.Equal(t, 31, h.Live())
	h.Step()
	require.Equal(t, 31, h.Live(), "threshold doubled to 32, should not collect yet")
}
