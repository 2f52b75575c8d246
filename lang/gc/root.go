package gc

// Root is a scoped acquisition of a heap object as a collection root,
// obtained from Heap.Pin. While held, the referenced object — and
// transitively everything reached by its Trace — is guaranteed to survive
// any Collect. Overlapping roots on the same object are legal; Release
// decrements the object's root count, and only when it reaches zero does the
// object become collectible again.
//
// Root has no destructor (Go has none to give it); callers must call
// Release exactly once, typically via defer right after Pin.
type Root struct {
	heap *Heap
	obj  Object
}

// Get returns the pinned object.
func (r Root) Get() Object { return r.obj }

// Release relinquishes this root. It must be called exactly once per Root
// returned by Heap.Pin.
func (r Root) Release() {
	if r.heap == nil {
		return
	}
	r.heap.unpin(r.obj)
}
