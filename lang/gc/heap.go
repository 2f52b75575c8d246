package gc

import "github.com/dolthub/swiss"

// initialThreshold is the live-set size at which the first Step-triggered
// collection fires. It matches original_source/src/util/gc.cpp's
// nextCollect(16), which this rework reproduces rather than picking a new
// value, since spec.md §4.1 leaves the constant unspecified.
const initialThreshold = 16

// Heap owns the live set of every registered Object and the root reference
// counts that keep objects (and everything they transitively trace) alive
// across a collection.
//
// A Heap is not safe for concurrent use: spec.md §5 specifies a
// single-threaded, cooperative collector with no async collection points.
type Heap struct {
	objects   *swiss.Map[Object, *header]
	roots     *swiss.Map[Object, int]
	threshold int
}

// NewHeap returns an empty heap ready to register objects.
func NewHeap() *Heap {
	return &Heap{
		objects:   swiss.NewMap[Object, *header](16),
		roots:     swiss.NewMap[Object, int](8),
		threshold: initialThreshold,
	}
}

// Register adds obj to the live set. Every heap object must be registered
// exactly once, at construction, before it is reachable from any root or
// traced from any other object.
func (h *Heap) Register(obj Object) {
	h.objects.Put(obj, &header{})
}

// Pin acquires a root on obj, guaranteeing that obj (and everything it
// transitively traces) survives every subsequent Collect until the root is
// released. Root acquisition is reference-counted: overlapping Pin calls on
// the same object are legal, and the object leaves the root set only once
// every acquired root has been released.
//
// Pin returns a Root; callers must call Root.Release (typically via defer)
// exactly once.
func (h *Heap) Pin(obj Object) Root {
	n, _ := h.roots.Get(obj)
	h.roots.Put(obj, n+1)
	return Root{heap: h, obj: obj}
}

func (h *Heap) unpin(obj Object) {
	n, ok := h.roots.Get(obj)
	if !ok {
		return
	}
	if n <= 1 {
		h.roots.Delete(obj)
		return
	}
	h.roots.Put(obj, n-1)
}

// Live reports the number of objects currently registered with the heap,
// live or not — i.e. the size of the live set before the next sweep.
func (h *Heap) Live() int {
	return h.objects.Count()
}

// Collect runs one full mark-and-sweep cycle: every rooted object is marked,
// transitively, through its Trace set (marking is idempotent — an
// already-marked object is not retraced, which makes cycles safe); every
// unmarked object is then removed from the live set and discarded, and every
// surviving object's mark bit is cleared for the next cycle.
//
// Collect cannot fail. Destroying an object is simply dropping the Go
// reference to it; there is no explicit finalization step, unlike the
// reference design's `delete obj` (Go's runtime GC reclaims the memory once
// nothing — including this heap's own live set — references it).
func (h *Heap) Collect() {
	h.roots.Iter(func(obj Object, _ int) bool {
		h.mark(obj)
		return false
	})

	var dead []Object
	h.objects.Iter(func(obj Object, hdr *header) bool {
		if !hdr.marked {
			dead = append(dead, obj)
		} else {
			hdr.marked = false
		}
		return false
	})
	for _, obj := range dead {
		h.objects.Delete(obj)
	}
}

func (h *Heap) mark(obj Object) {
	hdr, ok := h.objects.Get(obj)
	if !ok || hdr.marked {
		return
	}
	hdr.marked = true
	for _, child := range obj.Trace() {
		h.mark(child)
	}
}

// Step is called at safe points between units of compiler work. It triggers
// a Collect when the live set has grown to the current threshold, then
// doubles the threshold — mirroring GC::step in the reference design.
func (h *Heap) Step() {
	if h.Live() >= h.threshold {
		h.Collect()
		h.threshold *= 2
	}
}
