package ark

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// ArkState is the evaluator's top-level handle (§6.2): the globals
// namespace, the host-value adapter, and a logger. Distinct ArkStates
// share only the process-wide intern pool (§5); the spec does not support
// running multiple states concurrently against shared globals.
type ArkState struct {
	Globals *Namespace
	Adapter HostAdapter
	Logger  *slog.Logger
}

// ArkOptions configures NewArkState. Every field is optional.
type ArkOptions struct {
	Globals *Namespace
	Adapter HostAdapter
	Logger  *slog.Logger
}

// NewArkState builds an ArkState, mirroring the teacher's NewVM(): absent
// an explicit ArkOptions.Globals/Adapter/Logger, it falls back to the
// default globals of §6.3, the default Go-native host adapter, and a
// tint-colored slog.Logger writing to stderr.
func NewArkState(opts ArkOptions) *ArkState {
	adapter := opts.Adapter
	if adapter == nil {
		adapter = goAdapter{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
	}
	globals := opts.Globals
	if globals == nil {
		globals = DefaultGlobals(adapter, logger)
	}
	return &ArkState{Globals: globals, Adapter: adapter, Logger: logger}
}

// Run evaluates compiled against a fresh runtime stack (§6.2). Callers
// MUST verify compiled.FreeVars is empty first; Run itself re-checks and
// fails with UndefinedSymbols rather than silently treating the free names
// as unbound.
func (s *ArkState) Run(compiled *Compiled) (Value, error) {
	if len(compiled.FreeVars) > 0 {
		names := make([]string, 0, len(compiled.FreeVars))
		for n := range compiled.FreeVars {
			names = append(names, n)
		}
		return nil, newUndefinedSymbolsError(names)
	}
	ev := newEvaluator(s)
	v, err := compiled.Expression.eval(ev)
	if err != nil {
		return nil, escapedSignalError(err)
	}
	return v, nil
}

// escapedSignalError turns a break/continue/return that reached the top
// level without being caught by any Loop or Call into a RuntimeError
// (§7): an uncaught non-local exit escaping run is a program bug, not a
// silent success.
func escapedSignalError(err error) error {
	if _, ok := asBreak(err); ok {
		return newRuntimeError(nil, errInvalidCall, "break escaped to top level")
	}
	if asContinue(err) {
		return newRuntimeError(nil, errInvalidCall, "continue escaped to top level")
	}
	if _, ok := asReturn(err); ok {
		return newRuntimeError(nil, errInvalidCall, "return escaped to top level")
	}
	return err
}
