package chunk

import (
	"github.com/somire-lang/somire/lang/gc"
	"github.com/somire-lang/somire/lang/value"
)

// Magic is the 8-byte header spec.md §6 requires at the start of every
// compiled module (written by Write and checked by Read in io.go), carried
// over unchanged from the reference implementation's chunk.hpp.
var Magic = [8]byte{'S', 'o', 'm', 'i', 'r', '&', 0x00, 0x01}

// Chunk is a whole compiled program (spec.md §4.2): a program-wide constants
// table shared by every function, and the ordered list of function
// prototypes it defines. Prototype 0 is always the top-level program body.
//
// The constants table is a *value.List so that string/heap constants are
// GC-traced like any other heap value; Root pins it for the Chunk's
// lifetime so the collector never reclaims it mid-compile.
type Chunk struct {
	heap      *gc.Heap
	constants *value.List
	root      gc.Root
	Protos    []*FunctionProto
}

// NewChunk returns an empty chunk backed by heap. The caller owns heap's
// lifetime; Close releases the chunk's pin on its constants list.
func NewChunk(heap *gc.Heap) *Chunk {
	consts := value.NewList(heap)
	return &Chunk{
		heap:      heap,
		constants: consts,
		root:      heap.Pin(consts),
	}
}

// Close releases the chunk's GC root on its constants table. After Close,
// the constants list may be collected if nothing else references it.
func (c *Chunk) Close() { c.root.Release() }

// Constants returns the program-wide constants table.
func (c *Chunk) Constants() *value.List { return c.constants }

// AddConstant appends v to the constants table, returning its index, or an
// error if doing so would exceed the 65535-entry limit (spec.md §7).
func (c *Chunk) AddConstant(v value.Value) (int, error) {
	idx := c.constants.Len()
	if _, err := checkU16(idx, "constants"); err != nil {
		return 0, err
	}
	c.constants.Append(v)
	return idx, nil
}

// AddProto appends proto to the chunk's prototype list, returning its
// index, or an error if doing so would exceed the 65535-entry limit.
func (c *Chunk) AddProto(proto *FunctionProto) (int, error) {
	idx := len(c.Protos)
	if _, err := checkU16(idx, "function prototypes"); err != nil {
		return 0, err
	}
	c.Protos = append(c.Protos, proto)
	return idx, nil
}

// ReserveProto appends a placeholder prototype and returns its index
// immediately, before the function's body has been type-walked or emitted.
// This backs the protoIdx-reservation-before-body-compilation behavior a
// self-recursive function literal needs (SPEC_FULL.md supplemented
// feature): the index is stable even though *proto is filled in later via
// SetProto.
func (c *Chunk) ReserveProto() (int, error) {
	return c.AddProto(&FunctionProto{})
}

// SetProto replaces the prototype previously reserved at idx.
func (c *Chunk) SetProto(idx int, proto *FunctionProto) { c.Protos[idx] = proto }
