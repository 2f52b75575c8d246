package typesys_test

import (
	"testing"

	"github.com/somire-lang/somire/lang/typesys"
	"github.com/stretchr/testify/require"
)

func basics(t *testing.T) *typesys.Namespace {
	t.Helper()
	ns := typesys.NewNamespace()
	typesys.DefineBasicTypes(ns)
	return ns
}

func get(t *testing.T, ns *typesys.Namespace, name string) *typesys.Type {
	t.Helper()
	typ, ok := ns.Lookup(name)
	require.True(t, ok, "expected %q in namespace", name)
	return typ
}

func TestAnyIsTop(t *testing.T) {
	ns := basics(t)
	any_, int_, str := get(t, ns, "any"), get(t, ns, "int"), get(t, ns, "string")
	require.True(t, int_.CanBeAssignedTo(any_))
	require.True(t, str.CanBeAssignedTo(any_))
	require.False(t, any_.CanBeAssignedTo(int_))
}

func TestNilIsBottom(t *testing.T) {
	ns := basics(t)
	nilT, int_, str := get(t, ns, "nil"), get(t, ns, "int"), get(t, ns, "string")
	require.True(t, nilT.CanBeAssignedTo(int_))
	require.True(t, nilT.CanBeAssignedTo(str))
	require.False(t, int_.CanBeAssignedTo(nilT))
}

func TestIntAssignableToReal(t *testing.T) {
	ns := basics(t)
	int_, real_ := get(t, ns, "int"), get(t, ns, "real")
	require.True(t, int_.CanBeAssignedTo(real_))
	require.False(t, real_.CanBeAssignedTo(int_))
}

func TestOtherwiseEquality(t *testing.T) {
	ns := basics(t)
	str, boolT := get(t, ns, "string"), get(t, ns, "bool")
	require.False(t, str.CanBeAssignedTo(boolT))
	require.True(t, str.CanBeAssignedTo(str))
}

func TestListAssignabilityIsStructural(t *testing.T) {
	ns := basics(t)
	int_, real_ := get(t, ns, "int"), get(t, ns, "real")

	listInt1 := typesys.NewList(int_)
	listInt2 := typesys.NewList(int_)
	listReal := typesys.NewList(real_)

	require.True(t, listInt1.CanBeAssignedTo(listInt2), "structurally identical list types")
	require.False(t, listInt1.CanBeAssignedTo(listReal), "int element is not assignable-equal to real element")
}

func TestUnknownElementListsOnlyEqualEachOther(t *testing.T) {
	ns := basics(t)
	int_ := get(t, ns, "int")
	unknown1 := typesys.NewList(nil)
	unknown2 := typesys.NewList(nil)
	known := typesys.NewList(int_)

	require.True(t, unknown1.CanBeAssignedTo(unknown2))
	require.False(t, unknown1.CanBeAssignedTo(known))
}

func TestFunctionAssignabilityIsStructural(t *testing.T) {
	ns := basics(t)
	int_, boolT := get(t, ns, "int"), get(t, ns, "bool")

	fn1 := typesys.NewFunction([]*typesys.Type{int_}, boolT)
	fn2 := typesys.NewFunction([]*typesys.Type{int_}, boolT)
	fn3 := typesys.NewFunction([]*typesys.Type{boolT}, boolT)

	require.True(t, fn1.CanBeAssignedTo(fn2))
	require.False(t, fn1.CanBeAssignedTo(fn3))
}

func TestNamespaceNamesSorted(t *testing.T) {
	ns := basics(t)
	require.Equal(t, []string{"any", "bool", "int", "macro", "nil", "real", "string"}, ns.Names())
}
