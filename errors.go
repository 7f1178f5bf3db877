package ark

import (
	"fmt"

	"github.com/pkg/errors"
)

// errKind distinguishes the error kinds of spec §7. Control signals
// (break/continue/return) are modeled separately in control.go — they are
// not errKind values and are never wrapped as an ArkError.
type errKind int

const (
	errCompiler errKind = iota
	errRuntime
	errHostConversion
	errUndefinedSymbols
)

func (k errKind) String() string {
	switch k {
	case errCompiler:
		return "CompilerError"
	case errRuntime:
		return "RuntimeError"
	case errHostConversion:
		return "HostConversionError"
	case errUndefinedSymbols:
		return "UndefinedSymbols"
	default:
		return "ArkError"
	}
}

const (
	errInvalidCall         = "invalid call"
	errInvalidAssignment   = "invalid assignment"
	errUninitializedSymbol = "uninitialized symbol"
)

// ArkError is the concrete error type for every documented failure in §7.
// HostConversionError keeps its own Kind and is not relabelled as a
// RuntimeError, so a caller distinguishes it with IsKind or errors.As.
type ArkError struct {
	Kind      errKind
	Message   string
	SourceLoc any
}

func (e *ArkError) Error() string {
	if e.SourceLoc != nil {
		return fmt.Sprintf("%s: %s (at %v)", e.Kind, e.Message, e.SourceLoc)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newArkError(kind errKind, format string, args ...any) *ArkError {
	return &ArkError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newCompilerError(format string, args ...any) error {
	return errors.WithStack(newArkError(errCompiler, format, args...))
}

func newRuntimeError(source Value, reason string, format string, args ...any) error {
	e := newArkError(errRuntime, "%s: %s", reason, fmt.Sprintf(format, args...))
	if source != nil {
		if loc, ok := Debug(source).Get("sourceLoc"); ok {
			e.SourceLoc = loc
		}
	}
	return errors.WithStack(e)
}

func newHostConversionError(format string, args ...any) error {
	return errors.WithStack(newArkError(errHostConversion, format, args...))
}

// newUndefinedSymbolsError reports the free variables a caller failed to
// resolve against globals before calling Run (§6.2).
func newUndefinedSymbolsError(names []string) error {
	return errors.WithStack(newArkError(errUndefinedSymbols, "undefined symbols: %v", names))
}

// IsKind reports whether err (or something it wraps) is an ArkError of kind.
func IsKind(err error, kind errKind) bool {
	var ae *ArkError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}
