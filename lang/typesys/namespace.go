package typesys

import (
	"github.com/dolthub/swiss"
	"golang.org/x/exp/slices"
)

// Namespace is a mapping from type name to type descriptor, populated at
// startup with the primitives (spec.md §3's "Type namespace"). Looked up on
// every identifier and type-expression resolution during the type walk, so
// it uses the same fast pointer/string-keyed map as lang/gc's heap (see
// DESIGN.md).
type Namespace struct {
	byName *swiss.Map[string, *Type]
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{byName: swiss.NewMap[string, *Type](16)}
}

// Define installs t under name, overwriting any previous entry.
func (n *Namespace) Define(name string, t *Type) {
	n.byName.Put(name, t)
}

// Lookup returns the type registered under name, if any.
func (n *Namespace) Lookup(name string) (*Type, bool) {
	return n.byName.Get(name)
}

// Names returns every registered name, sorted for deterministic iteration
// (used by tests).
func (n *Namespace) Names() []string {
	names := make([]string, 0, n.byName.Count())
	n.byName.Iter(func(name string, _ *Type) bool {
		names = append(names, name)
		return false
	})
	slices.Sort(names)
	return names
}

// DefineBasicTypes populates n with the seven primitive types named in
// spec.md §3/§6: any, nil, bool, int, real, string, macro. Grounded on
// original_source/src/compiler/compiler.cpp's Compiler constructor, which
// calls `defineBasicTypes(*types)` before resolving the basic type pointers
// it keeps as fields.
func DefineBasicTypes(n *Namespace) {
	n.Define("any", NewPrimitive(KindAny, "any", "any"))
	n.Define("nil", NewPrimitive(KindNil, "nil", "nil"))
	n.Define("bool", NewPrimitive(KindBool, "bool", "bool"))
	n.Define("int", NewPrimitive(KindInt, "int", "int"))
	n.Define("real", NewPrimitive(KindReal, "real", "real"))
	n.Define("string", NewPrimitive(KindString, "string", "string"))
	n.Define("macro", NewPrimitive(KindMacro, "macro", "macro"))
}
