package value

import "github.com/somire-lang/somire/lang/gc"

// Closure is the heap representation of a function value: a prototype index
// into its owning Chunk plus the upvalue cells captured at MAKE_FUNC time.
// Building and calling closures is the virtual machine's job (out of scope
// per spec.md §1); this type exists so the heap/GC model's object universe
// — "strings, lists, vectors of values, closures" (spec.md §3) — is complete
// and exercisable by the GC's own tests.
type Closure struct {
	ProtoIndex uint16
	Upvalues   []*Cell
}

var _ gc.Object = (*Closure)(nil)

// NewClosure allocates a Closure on h.
func NewClosure(h *gc.Heap, protoIndex uint16, upvalues []*Cell) *Closure {
	obj := &Closure{ProtoIndex: protoIndex, Upvalues: upvalues}
	h.Register(obj)
	return obj
}

func (c *Closure) Trace() []gc.Object {
	out := make([]gc.Object, 0, len(c.Upvalues))
	for _, cell := range c.Upvalues {
		out = append(out, cell)
	}
	return out
}

func (c *Closure) String() string { return "<closure>" }

// Cell is a shared, heap-allocated box around a Value, used to give two
// closures access to the same mutable upvalue slot.
type Cell struct {
	V Value
}

var _ gc.Object = (*Cell)(nil)

// NewCell allocates a Cell on h.
func NewCell(h *gc.Heap, v Value) *Cell {
	obj := &Cell{V: v}
	h.Register(obj)
	return obj
}

func (c *Cell) Trace() []gc.Object {
	if c.V.Kind() == KindRef && c.V.AsRef() != nil {
		return []gc.Object{c.V.AsRef()}
	}
	return nil
}

func (c *Cell) String() string { return "<cell>" }
