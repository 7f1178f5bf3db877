package ark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileUndefinedSymbol(t *testing.T) {
	_, err := CompileString(`"nope"`, NewNamespace())
	require.Error(t, err)
	assert.True(t, IsKind(err, errCompiler))
}

func TestCompileDuplicateParamName(t *testing.T) {
	_, err := CompileString(`["let", ["params", "a", "a"], "a"]`, NewNamespace())
	require.Error(t, err)
	assert.True(t, IsKind(err, errCompiler))
}

func TestCompileBadParamList(t *testing.T) {
	_, err := CompileString(`["fn", ["params", 1], "a"]`, NewNamespace())
	require.Error(t, err)
	assert.True(t, IsKind(err, errCompiler))
}

func TestCompileIfArity(t *testing.T) {
	_, err := CompileString(`["if", true]`, NewNamespace())
	require.Error(t, err)
	assert.True(t, IsKind(err, errCompiler))
}

func TestCompileEmptyForm(t *testing.T) {
	_, err := CompileString(`[]`, NewNamespace())
	require.Error(t, err)
}

func TestCompileFreeVariableMap(t *testing.T) {
	compiled, err := CompileString(`"missingGlobal"`, namespaceWith("missingGlobal"))
	require.NoError(t, err)
	require.Empty(t, compiled.FreeVars)

	globals := NewNamespace()
	_, err = CompileString(`"undeclared"`, globals)
	require.Error(t, err, "a name with neither a local binding nor a global entry is a compile error, not a free variable")
}

func TestCompileLetRemovesBoundNamesFromFreeVars(t *testing.T) {
	compiled, err := CompileString(`["let", ["params", "a"], "a"]`, NewNamespace())
	require.NoError(t, err)
	assert.Empty(t, compiled.FreeVars, "a name bound by its own let must not appear as free")
}

func TestCompileSeqSingleElementCollapses(t *testing.T) {
	compiled, err := CompileString(`["seq", 1]`, NewNamespace())
	require.NoError(t, err)
	_, isSeq := compiled.Expression.(*Sequence)
	assert.False(t, isSeq, `a single-element "seq" must collapse to its element`)
	lit, ok := compiled.Expression.(*Literal)
	require.True(t, ok)
	assert.Equal(t, 1.0, lit.Payload.(*Num).Value)
}

// namespaceWith builds a Namespace exposing name as a bound ValueRef, used
// to exercise the "resolves against caller-supplied globals" path without
// pulling in the full DefaultGlobals table.
func namespaceWith(name string) *Namespace {
	ns := NewNamespace()
	ns.Set(name, NewValueRef(Null))
	return ns
}
