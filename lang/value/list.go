package value

import "github.com/somire-lang/somire/lang/gc"

// List is a heap-allocated, GC-traced vector of Values. It backs both
// MAKE_LIST-constructed runtime lists and a Chunk's constants table (spec.md
// §3: "constants vector ... GC-traced"), matching
// original_source/src/chunk.hpp's `GC::GCVector<Value>* constants`.
type List struct {
	Items []Value
}

var _ gc.Object = (*List)(nil)

// NewList allocates an empty List on h.
func NewList(h *gc.Heap) *List {
	obj := &List{}
	h.Register(obj)
	return obj
}

// Append grows the list by one element. Constants vectors only ever grow
// (spec.md §3 invariant: "the constants vector never shrinks").
func (l *List) Append(v Value) { l.Items = append(l.Items, v) }

func (l *List) Len() int { return len(l.Items) }

// Trace reports every element that is itself a heap reference.
func (l *List) Trace() []gc.Object {
	var out []gc.Object
	for _, v := range l.Items {
		if v.Kind() == KindRef && v.AsRef() != nil {
			out = append(out, v.AsRef())
		}
	}
	return out
}

func (l *List) String() string { return "<list>" }
