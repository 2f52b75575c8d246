// Package globals populates the globals namespace and the built-in method
// tables referenced by the type walker (spec.md §6's "Globals namespace...
// resolved at initialization by a collaborator", §3's "built-in
// method-carrying types"). original_source/src/compiler/compiler.cpp calls
// `defineStdTypes(*globals, *types)` from the Compiler constructor but that
// function's body was filtered out of the retrieved source; this package
// supplies a from-scratch, minimal standard library in its place, in the
// shape its call site implies: entries in the globals namespace, and
// methods installed directly on the primitive types the type namespace
// already holds.
package globals

import "github.com/somire-lang/somire/lang/typesys"

// Define populates globalsNS with the language's standard library and
// installs the built-in method tables on the primitive types already
// registered in types (e.g. string.length, used by spec.md §8's `s.length`
// scenario). types must already have had typesys.DefineBasicTypes called
// on it.
func Define(globalsNS, types *typesys.Namespace) {
	intT, _ := types.Lookup("int")
	stringT, _ := types.Lookup("string")
	macroT, _ := types.Lookup("macro")

	// print(...) -> any, a macro: arity is not checked, and the call's
	// result is always `any` (spec.md §4.3's call-typing rule for macro
	// callees).
	globalsNS.Define("print", macroT)

	// string.length: fn() -> int
	stringT.DefineMethod("length", typesys.NewFunction(nil, intT))
}
