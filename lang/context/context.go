// Package context implements the compiler's lexical scope stack (spec.md
// §4.4), directly ported from original_source/src/compiler/compiler.cpp's
// Context class: a chain of local scopes, with a function-top scope at the
// start of each function body that also accumulates that function's
// upvalue list.
package context

import "github.com/somire-lang/somire/lang/typesys"

// Binding records where a name resolves to: a slot index (non-negative for
// a local, negative for an upvalue — see Context.GetVariable) and its
// static type.
type Binding struct {
	Slot int16
	Type *typesys.Type
}

// Context is one lexical scope. A function body starts a function-top
// Context (isFuncTop true); every nested block (if/while body) pushes a
// non-function-top Context that shares its enclosing function's local slot
// numbering.
type Context struct {
	isFuncTop bool
	parent    *Context

	variables map[string]Binding

	nextLocal   int16
	nextUpvalue int16 // counts downward from -1
	localCount  int

	// upvalues holds, per upvalue allocated at this function-top context,
	// the source slot index in the parent function's context it was
	// resolved from. Only meaningful when isFuncTop.
	upvalues []int16
}

// NewFunctionTop starts a new function body's outermost scope. parent is
// the enclosing function's context (nil for the top-level program), used
// to resolve upvalues; it is NOT where local slot numbering continues from
// — a function's locals always start at slot 0.
func NewFunctionTop(parent *Context) *Context {
	return &Context{
		isFuncTop:   true,
		parent:      parent,
		variables:   map[string]Binding{},
		nextUpvalue: -1,
	}
}

// NewBlock starts a nested block scope (if/while body) inside parent,
// continuing the enclosing function's local slot numbering.
func NewBlock(parent *Context) *Context {
	return &Context{
		parent:    parent,
		variables: map[string]Binding{},
		nextLocal: parent.nextLocal,
	}
}

// GetVariable resolves name against this context: first its own bindings
// (locals defined directly in this scope, or upvalues already resolved at
// this function-top), then — at a function-top with no match — recursively
// against the enclosing function, allocating a new upvalue slot on success.
// A nested block forwards unchanged to its parent. Returns ok=false if name
// is not a local, upvalue, or anything the enclosing function chain binds
// (the caller falls back to the globals namespace).
func (c *Context) GetVariable(name string) (Binding, bool) {
	if b, ok := c.variables[name]; ok {
		return b, true
	}
	if c.isFuncTop {
		if c.parent == nil {
			return Binding{}, false
		}
		parentBinding, ok := c.parent.GetVariable(name)
		if !ok {
			return Binding{}, false
		}
		upvalue := Binding{Slot: c.nextUpvalue, Type: parentBinding.Type}
		c.nextUpvalue--
		c.variables[name] = upvalue
		c.upvalues = append(c.upvalues, parentBinding.Slot)
		return upvalue, true
	}
	return c.parent.GetVariable(name)
}

// DefineLocal binds name to the next local slot in this context's
// enclosing function, with the given static type.
func (c *Context) DefineLocal(name string, typ *typesys.Type) Binding {
	b := Binding{Slot: c.nextLocal, Type: typ}
	c.nextLocal++
	c.variables[name] = b
	c.localCount++
	return b
}

// ChangeType updates the recorded type of a name bound directly in this
// context, in place. The compiler does not call it: a self-recursive
// `let f = fn...` binding is defined after the function literal's type has
// been computed, so it already carries its final type.
func (c *Context) ChangeType(name string, typ *typesys.Type) {
	b := c.variables[name]
	b.Type = typ
	c.variables[name] = b
}

// LocalCount returns the number of locals defined directly in this
// context (not counting parents), used to size the POP emitted when a
// non-function-top block scope closes.
func (c *Context) LocalCount() int { return c.localCount }

// FunctionUpvalues returns the accumulated upvalue source-slot list for
// the nearest enclosing function-top context (forwarding through nested
// blocks), ready to embed in a MAKE_FUNC instruction.
func (c *Context) FunctionUpvalues() []int16 {
	if c.isFuncTop {
		return c.upvalues
	}
	return c.parent.FunctionUpvalues()
}
