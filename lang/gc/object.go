// Package gc implements the tracing mark-and-sweep collector that owns every
// heap-allocated runtime object (strings, lists, closures, and the constants
// vector of a compiled chunk). The collector is single-threaded and
// cooperative: collection only runs when the caller invokes Step or Collect
// at a safe point (see spec.md §4.1 and §5).
package gc

// Object is implemented by every value that lives on the managed heap. Mark
// and sweep state (the mark bit) is tracked by the owning Heap, not by the
// object itself, so that an Object can be a plain struct with no GC-specific
// fields beyond what Trace needs.
type Object interface {
	// Trace returns the set of objects directly reachable from this one. It
	// must not itself recurse: the collector performs the transitive walk.
	Trace() []Object
}

// header is the per-object bookkeeping the heap keeps out-of-band, mirroring
// GC::GCObject's single mark bit in the reference design's gc.hpp.
type header struct {
	marked bool
}
