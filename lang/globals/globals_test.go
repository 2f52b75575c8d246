package globals

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/somire-lang/somire/lang/typesys"
)

func TestDefinePopulatesPrintAsMacro(t *testing.T) {
	types := typesys.NewNamespace()
	typesys.DefineBasicTypes(types)
	g := typesys.NewNamespace()
	Define(g, types)

	printT, ok := g.Lookup("print")
	require.True(t, ok)
	require.Equal(t, typesys.KindMacro, printT.Kind())
}

func TestDefineInstallsStringLengthMethod(t *testing.T) {
	types := typesys.NewNamespace()
	typesys.DefineBasicTypes(types)
	g := typesys.NewNamespace()
	Define(g, types)

	stringT, _ := types.Lookup("string")
	lengthT, ok := stringT.Method("length")
	require.True(t, ok)
	require.Equal(t, typesys.KindFunction, lengthT.Kind())

	intT, _ := types.Lookup("int")
	require.True(t, lengthT.Result == intT)
}
