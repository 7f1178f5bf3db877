package ark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run compiles src against an ArkState with an empty globals namespace
// (intrinsics only) and returns the
// toHost result, failing the test on any compile or run error. It mirrors
// the seed scenarios of spec §8.2.
func run(t *testing.T, src string) any {
	t.Helper()
	state := NewArkState(ArkOptions{Globals: NewNamespace()})
	compiled, err := CompileString(src, state.Globals)
	require.NoError(t, err)
	v, err := state.Run(compiled)
	require.NoError(t, err)
	return state.Adapter.ToHost(v)
}

func TestEndToEndAddition(t *testing.T) {
	assert.Equal(t, 7.0, run(t, `["+", 3, 4]`))
}

func TestEndToEndLetSetGet(t *testing.T) {
	src := `["seq", ["let", ["params","a"], ["seq", ["set", ["ref","a"], 3], ["get","a"]]]]`
	assert.Equal(t, 3.0, run(t, src))
}

func TestEndToEndImmediateFnApplication(t *testing.T) {
	src := `[["fn", ["params","x"], ["+", "x", 1]], 41]`
	assert.Equal(t, 42.0, run(t, src))
}

func TestEndToEndLoopBreak(t *testing.T) {
	assert.Equal(t, 5.0, run(t, `["loop", ["break", 5]]`))
}

func TestEndToEndFactorialByCaptureRewrite(t *testing.T) {
	src := `["seq", ["let", ["params","fac"],
		["seq",
			["set", ["ref","fac"],
				["fn", ["params","n"],
					["if", ["<=","n",1],
						1,
						["*", "n", [["get","fac"], ["-","n",1]]]
					]
				]
			],
			[["get","fac"], 5]
		]
	]]`
	assert.Equal(t, 120.0, run(t, src))
}

func TestEndToEndListLengthAndGet(t *testing.T) {
	assert.Equal(t, 3.0, run(t, `["get", ["prop","length",["list",1,2,3]]]`))
	assert.Equal(t, 2.0, run(t, `[["get", ["prop","get",["list",1,2,3]]], 1]`))
}

func TestArgumentEvaluationOrderIsLeftToRight(t *testing.T) {
	state := NewArkState(ArkOptions{Globals: NewNamespace()})
	var order []string
	recorder := func(name string) *NativeFn {
		return newNativeFn(name, func(ev *Evaluator, args ...Value) (Value, error) {
			order = append(order, name)
			return Null, nil
		})
	}
	globals := NewNamespace()
	globals.Set("sink", NewValueRef(newNativeFn("sink", func(ev *Evaluator, args ...Value) (Value, error) {
		return Null, nil
	})))
	globals.Set("a", NewValueRef(recorder("a")))
	globals.Set("b", NewValueRef(recorder("b")))
	globals.Set("c", NewValueRef(recorder("c")))
	state.Globals = globals

	compiled, err := CompileString(`["sink", ["a"], ["b"], ["c"]]`, globals)
	require.NoError(t, err)
	_, err = state.Run(compiled)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestCaptureSoundnessObservesLaterMutation(t *testing.T) {
	src := `["let", ["params","x"],
		["seq",
			["set", ["ref","x"], 1],
			["let", ["params","f"],
				["seq",
					["set", ["ref","f"], ["fn", ["params"], "x"]],
					["seq",
						["set", ["ref","x"], 99],
						[["get","f"]]
					]
				]
			]
		]
	]`
	assert.Equal(t, 99.0, run(t, src))
}

func TestLetPreservesStackDepth(t *testing.T) {
	state := NewArkState(ArkOptions{Globals: NewNamespace()})
	compiled, err := CompileString(`["let", ["params","a","b"], ["+", "a", "b"]]`, state.Globals)
	require.NoError(t, err)

	ev := newEvaluator(state)
	before := ev.Stack.Depth()
	_, err = compiled.Expression.eval(ev)
	require.NoError(t, err)
	assert.Equal(t, before, ev.Stack.Depth())
}

func TestCallPreservesStackDepthOnReturn(t *testing.T) {
	state := NewArkState(ArkOptions{Globals: NewNamespace()})
	compiled, err := CompileString(`[["fn", ["params","n"], ["seq", ["return", ["+", "n", 1]], 999]], 4]`, state.Globals)
	require.NoError(t, err)

	ev := newEvaluator(state)
	before := ev.Stack.Depth()
	v, err := compiled.Expression.eval(ev)
	require.NoError(t, err)
	assert.Equal(t, before, ev.Stack.Depth())
	assert.Equal(t, 5.0, v.(*Num).Value)
}

func TestUninitializedSymbolRead(t *testing.T) {
	compiled, err := CompileString(`["let", ["params","a"], "a"]`, NewNamespace())
	require.NoError(t, err)
	state := NewArkState(ArkOptions{Globals: NewNamespace()})
	_, err = state.Run(compiled)
	require.Error(t, err)
	assert.True(t, IsKind(err, errRuntime))
}

func TestInvalidAssignment(t *testing.T) {
	compiled, err := CompileString(`["set", 1, 2]`, NewNamespace())
	require.NoError(t, err)
	state := NewArkState(ArkOptions{Globals: NewNamespace()})
	_, err = state.Run(compiled)
	require.Error(t, err)
	assert.True(t, IsKind(err, errRuntime))
}

func TestUndefinedSymbolsReportedBeforeRun(t *testing.T) {
	compiled := &Compiled{
		Expression: NewLiteral(Null),
		FreeVars:   map[string][]*StackRef{"orphan": {NewStackRef(3, 0)}},
	}
	state := NewArkState(ArkOptions{Globals: NewNamespace()})
	_, err := state.Run(compiled)
	require.Error(t, err)
	assert.True(t, IsKind(err, errUndefinedSymbols))
}

func TestBreakEscapingTopLevelIsRuntimeError(t *testing.T) {
	compiled, err := CompileString(`["break", 1]`, NewNamespace())
	require.NoError(t, err)
	state := NewArkState(ArkOptions{Globals: NewNamespace()})
	_, err = state.Run(compiled)
	require.Error(t, err)
	assert.True(t, IsKind(err, errRuntime))
}
