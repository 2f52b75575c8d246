// Package typesys implements the type descriptors and assignability lattice
// of spec.md §3/§4.3: a fixed subtype-like relation with `any` at the top,
// `nil` assignable to everything, `int` assignable to `real`, and structural
// equality otherwise.
package typesys

import "strings"

// Kind distinguishes the primitive and structural variants of Type.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindAny
	KindMacro
	KindList
	KindFunction
)

// Type is a named descriptor: a display name, an assignability predicate
// (CanBeAssignedTo), a method table, and — for List and Function kinds —
// structural fields. Grounded on original_source/src/compiler/compiler.cpp's
// Type/ListType/FunctionType hierarchy (referenced from compiler.hpp).
type Type struct {
	kind      Kind
	name      string
	namespace string // tag pushed as the MAKE_METHOD namespace operand
	methods   map[string]*Type

	// List-only.
	Elem *Type // nil if the element type is not yet known (empty list literal)

	// Function-only.
	Args   []*Type
	Result *Type
}

// NewPrimitive returns a primitive type (nil, bool, int, real, string, any,
// or macro) with the given display name and method-namespace tag.
func NewPrimitive(kind Kind, name, namespace string) *Type {
	return &Type{kind: kind, name: name, namespace: namespace, methods: map[string]*Type{}}
}

// NewList returns a list-of-elem type. elem may be nil to represent the
// element type of an empty list literal, which spec.md §4.3 leaves
// unresolved until an operation requiring it is attempted.
func NewList(elem *Type) *Type {
	return &Type{kind: KindList, name: "list", namespace: "list", Elem: elem, methods: map[string]*Type{}}
}

// NewFunction returns a function-of-(args→result) type.
func NewFunction(args []*Type, result *Type) *Type {
	return &Type{kind: KindFunction, name: "function", namespace: "function", Args: args, Result: result, methods: map[string]*Type{}}
}

func (t *Type) Kind() Kind { return t.kind }

// Desc returns the human-readable description used in compile error messages
// (spec.md §4.6/§7), mirroring Type::getDesc in the reference design.
func (t *Type) Desc() string {
	switch t.kind {
	case KindList:
		if t.Elem == nil {
			return "list of unknown"
		}
		return "list of " + t.Elem.Desc()
	case KindFunction:
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.Desc()
		}
		res := "any"
		if t.Result != nil {
			res = t.Result.Desc()
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + res
	default:
		return t.name
	}
}

// Namespace returns the method-namespace tag pushed as the first string
// operand of MAKE_METHOD (spec.md §4.2/§8); see SPEC_FULL.md's "method
// namespace tag" supplemented-feature note.
func (t *Type) Namespace() string { return t.namespace }

// DefineMethod registers a method's declared type under name. Used by
// lang/globals to populate the built-in method tables of primitive and
// structural types.
func (t *Type) DefineMethod(name string, mt *Type) {
	t.methods[name] = mt
}

// Method looks up a method by name, returning its declared type.
func (t *Type) Method(name string) (*Type, bool) {
	mt, ok := t.methods[name]
	return mt, ok
}

// CanBeAssignedTo reports whether a value of type t may be used where a
// value of type u is expected (spec.md §4.3's "is T assignable to U?"):
// reflexive, any is the top, nil is assignable to everything, int is
// assignable to real, and otherwise assignability is (structural) equality.
func (t *Type) CanBeAssignedTo(u *Type) bool {
	if u.kind == KindAny {
		return true
	}
	if t.kind == KindNil {
		return true
	}
	if t.kind == KindInt && u.kind == KindReal {
		return true
	}
	return t.equals(u)
}

// equals is structural equality, used both as the "otherwise" branch of
// CanBeAssignedTo and to compare list/function types constructed per-use
// (spec.md §9: "structural function and list types must still be
// constructed per-use and compared structurally").
func (t *Type) equals(u *Type) bool {
	if t == u {
		return true
	}
	if t.kind != u.kind {
		return false
	}
	switch t.kind {
	case KindList:
		if t.Elem == nil || u.Elem == nil {
			return t.Elem == u.Elem
		}
		return t.Elem.equals(u.Elem)
	case KindFunction:
		if len(t.Args) != len(u.Args) {
			return false
		}
		for i := range t.Args {
			if !t.Args[i].equals(u.Args[i]) {
				return false
			}
		}
		if (t.Result == nil) != (u.Result == nil) {
			return false
		}
		if t.Result != nil && !t.Result.equals(u.Result) {
			return false
		}
		return true
	default:
		// two distinct primitive descriptors of the same kind are the same
		// type: primitives are interned once in the namespace (see
		// namespace.go), so kind equality is sufficient here.
		return true
	}
}
