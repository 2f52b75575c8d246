// Package value implements the tagged runtime Value (spec.md §3): a small
// discriminated union of the primitives nil, bool, int, real, plus a
// reference to a heap object owned by a gc.Heap. Heap objects (String, List,
// Closure) are defined alongside it in this package since their lifetime is
// inseparable from the Value variant that refers to them.
package value

import (
	"fmt"
	"strconv"

	"github.com/somire-lang/somire/lang/gc"
)

// Kind identifies which variant of Value is populated.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindReal
	KindRef
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindRef:
		return "ref"
	default:
		return "invalid"
	}
}

// Value is the tagged union described by spec.md §3. It is a plain value
// type: primitives are stored inline in their own fields and never touch
// the heap; strings, lists and other larger objects go through Ref.
type Value struct {
	kind Kind
	b    bool
	i    int32
	r    float64
	ref  gc.Object
}

// Nil is the nil value.
var Nil = Value{kind: KindNil}

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns a 32-bit signed integer value.
func Int(i int32) Value { return Value{kind: KindInt, i: i} }

// Real returns a double-precision floating point value.
func Real(r float64) Value { return Value{kind: KindReal, r: r} }

// Ref returns a value referencing a heap object. The caller remains
// responsible for ensuring obj is reachable from some root for as long as
// this Value is in use.
func Ref(obj gc.Object) Value { return Value{kind: KindRef, ref: obj} }

func (v Value) Kind() Kind { return v.kind }
func (v Value) IsNil() bool  { return v.kind == KindNil }

// AsBool returns the boolean payload; the caller must check Kind() == KindBool.
func (v Value) AsBool() bool { return v.b }

// AsInt returns the int payload; the caller must check Kind() == KindInt.
func (v Value) AsInt() int32 { return v.i }

// AsReal returns the real payload; the caller must check Kind() == KindReal.
func (v Value) AsReal() float64 { return v.r }

// AsRef returns the heap reference payload; the caller must check
// Kind() == KindRef.
func (v Value) AsRef() gc.Object { return v.ref }

// Trace implements gc.Object for values embedded directly in a traced
// container (e.g. a List's elements): it reports the referenced heap object,
// if any, as the sole child.
func (v Value) Trace() []gc.Object {
	if v.kind == KindRef && v.ref != nil {
		return []gc.Object{v.ref}
	}
	return nil
}

func (v Value) String() string {
	switch v.kind {
	case KindNil:
		return "nil"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(int64(v.i), 10)
	case KindReal:
		return strconv.FormatFloat(v.r, 'g', -1, 64)
	case KindRef:
		return fmt.Sprintf("%v", v.ref)
	default:
		return "<invalid value>"
	}
}
