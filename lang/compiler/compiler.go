// Package compiler implements the CORE of the system (spec.md §2 items
// 6–7): the type walker and the statement/expression emitter, assembled on
// top of lang/typesys, lang/context, lang/chunk, lang/value and lang/gc.
//
// Grounded directly on original_source/src/compiler/compiler.cpp's
// Compiler/Context classes: Compiler.typeExpression and
// Compiler.compileStatement/compileExpression there are split here into
// typewalk.go and emit.go respectively, matching spec.md §2's description
// of two separate passes, while still interleaving them per-statement the
// way the reference implementation does (type-walk an expression, then
// immediately emit it), since the reference's sequencing is itself what
// makes self-recursive `let f = fn...` bindings and implicit-nil-return
// detection work (see DESIGN.md).
package compiler

import (
	"github.com/somire-lang/somire/lang/ast"
	"github.com/somire-lang/somire/lang/chunk"
	"github.com/somire-lang/somire/lang/context"
	"github.com/somire-lang/somire/lang/gc"
	"github.com/somire-lang/somire/lang/globals"
	"github.com/somire-lang/somire/lang/typesys"
	"github.com/somire-lang/somire/lang/value"
)

// Compiler holds the type/globals namespaces and the GC heap shared across
// one compile, plus the in-progress chunk. A Compiler is single-use: call
// CompileProgram once.
type Compiler struct {
	types   *typesys.Namespace
	globals *typesys.Namespace
	heap    *gc.Heap
	chunk   *chunk.Chunk

	anyType    *typesys.Type
	nilType    *typesys.Type
	boolType   *typesys.Type
	intType    *typesys.Type
	realType   *typesys.Type
	stringType *typesys.Type
	macroType  *typesys.Type
}

// New returns a Compiler backed by heap, with the type namespace and
// globals namespace freshly populated (mirrors the reference Compiler
// constructor's defineBasicTypes/defineStdTypes calls).
func New(heap *gc.Heap) *Compiler {
	types := typesys.NewNamespace()
	typesys.DefineBasicTypes(types)
	globalsNS := typesys.NewNamespace()
	globals.Define(globalsNS, types)

	lookup := func(name string) *typesys.Type {
		t, _ := types.Lookup(name)
		return t
	}
	return &Compiler{
		types:      types,
		globals:    globalsNS,
		heap:       heap,
		anyType:    lookup("any"),
		nilType:    lookup("nil"),
		boolType:   lookup("bool"),
		intType:    lookup("int"),
		realType:   lookup("real"),
		stringType: lookup("string"),
		macroType:  lookup("macro"),
	}
}

// Types returns the compiler's type namespace, for callers (e.g. a
// frontend) that need to resolve type names themselves.
func (c *Compiler) Types() *typesys.Namespace { return c.types }

// Globals returns the compiler's globals namespace.
func (c *Compiler) Globals() *typesys.Namespace { return c.globals }

// CompileProgram compiles body as the top-level program (spec.md §3:
// "Prototype 0 is the program's top-level function"), with declared result
// type `any`, matching the reference design's
// `compileFunction(block, {}, {}, anyType)` call in compileProgram.
func (c *Compiler) CompileProgram(body *ast.Block) (*chunk.Chunk, error) {
	c.chunk = chunk.NewChunk(c.heap)

	protoIdx, err := c.chunk.ReserveProto()
	if err != nil {
		c.chunk.Close()
		return nil, err
	}
	if _, err := c.compileFunction(protoIdx, body, nil, nil, c.anyType, nil); err != nil {
		c.chunk.Close()
		return nil, err
	}
	return c.chunk, nil
}

// resolveType looks up a *ast.SimpleType in the type namespace (spec.md
// §4.3's "parsed via a type-expression resolver that looks up names in the
// type namespace").
func (c *Compiler) resolveType(t *ast.SimpleType) (*typesys.Type, error) {
	typ, ok := c.types.Lookup(t.Name)
	if !ok {
		return nil, errorf("unknown type %s", t.Name)
	}
	return typ, nil
}

// compileFunction compiles body as a new function-top scope, with argNames
// bound to argTypes as the function's parameter locals, and resultType as
// the declared return type. The resulting FunctionProto is installed at
// protoIdx (which the caller must already have reserved via
// chunk.ReserveProto, per SPEC_FULL.md's protoIdx-reservation-order
// supplemented feature). Returns the function's upvalue source-slot list.
func (c *Compiler) compileFunction(protoIdx int, body *ast.Block, argNames []string, argTypes []*typesys.Type, resultType *typesys.Type, parent *context.Context) ([]int16, error) {
	proto := chunk.NewFunctionProto(len(argNames), resultType)
	ctx := context.NewFunctionTop(parent)
	for i, name := range argNames {
		ctx.DefineLocal(name, argTypes[i])
	}

	alwaysReturns, err := c.compileBlock(proto, body, ctx, resultType, true)
	if err != nil {
		return nil, err
	}
	if !alwaysReturns {
		// nil is assignable to every type, so assignability cannot decide
		// this: only a declared result of nil or any accepts an implicit nil
		// return.
		if k := resultType.Kind(); k != typesys.KindNil && k != typesys.KindAny {
			return nil, errorf("implicit nil return in function with return type %s", resultType.Desc())
		}
		k, err := c.chunk.AddConstant(value.Nil)
		if err != nil {
			return nil, err
		}
		if err := proto.EmitConstant(k); err != nil {
			return nil, err
		}
		proto.EmitSimple(chunk.RETURN)
	}

	proto.Upvalues = ctx.FunctionUpvalues()
	c.chunk.SetProto(protoIdx, proto)
	return proto.Upvalues, nil
}
