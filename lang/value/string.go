package value

import (
	"strconv"

	"github.com/somire-lang/somire/lang/gc"
)

// String is the heap representation of a string constant. It never traces to
// any other object, matching original_source's String heap class: strings
// are leaves in the reachability graph.
type String struct {
	S string
}

var _ gc.Object = (*String)(nil)

// NewString allocates a String on h and returns it. The caller is
// responsible for rooting it (directly or transitively) before the next
// Collect.
func NewString(h *gc.Heap, s string) *String {
	obj := &String{S: s}
	h.Register(obj)
	return obj
}

func (s *String) Trace() []gc.Object { return nil }
func (s *String) String() string     { return strconv.Quote(s.S) }
