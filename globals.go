package ark

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"regexp"
	"strings"
)

// DefaultGlobals builds the initial global bindings of §6.3: mathematical
// constants, print/debug, and host-object adapters for JSON, process, fs,
// and RegExp. ArkState.NewArkState uses this unless the caller supplies its
// own globals namespace. "document" is not bound: the default adapter has
// no DOM to expose (§6.3 only binds it "if the host supplies a DOM
// global").
func DefaultGlobals(adapter HostAdapter, logger *slog.Logger) *Namespace {
	ns := NewNamespace()
	ns.Set("pi", NewValueRef(NewNum(math.Pi)))
	ns.Set("e", NewValueRef(NewNum(math.E)))
	ns.Set("print", NewValueRef(newNativeFn("print", func(ev *Evaluator, args ...Value) (Value, error) {
		for _, a := range args {
			logger.Info("print", "value", ev.State.Adapter.ToHost(a))
		}
		return Null, nil
	})))
	ns.Set("debug", NewValueRef(newNativeFn("debug", func(ev *Evaluator, args ...Value) (Value, error) {
		for _, a := range args {
			logger.Debug("debug", "value", ev.State.Adapter.ToHost(a))
		}
		return Null, nil
	})))
	ns.Set("JSON", NewValueRef(newJSONAdapterObject(adapter)))
	ns.Set("process", NewValueRef(newProcessObject()))
	ns.Set("fs", NewValueRef(newFSObject()))
	ns.Set("RegExp", NewValueRef(newNativeFn("RegExp", regExpConstructor)))
	return ns
}

// jsonHostAdapter is the HostObjectAdapter backing the JSON global: parse
// round-trips a Str through encoding/json and fromHost; stringify mirrors
// that through toHost and json.Marshal (§6.3).
type jsonHostAdapter struct {
	host HostAdapter
}

func newJSONAdapterObject(host HostAdapter) *NativeObject {
	return NewNativeObject("JSON", nil, jsonHostAdapter{host: host})
}

func (j jsonHostAdapter) GetProperty(no *NativeObject, name string) (Value, error) {
	switch name {
	case "parse":
		return newNativeFn("JSON.parse", func(ev *Evaluator, args ...Value) (Value, error) {
			s, err := strArg(no, args, 0, "JSON.parse")
			if err != nil {
				return nil, err
			}
			var decoded any
			if err := json.Unmarshal([]byte(s), &decoded); err != nil {
				return nil, newHostConversionError("JSON.parse: %v", err)
			}
			return j.host.FromHost(decoded, nil)
		}), nil
	case "stringify":
		return newNativeFn("JSON.stringify", func(ev *Evaluator, args ...Value) (Value, error) {
			v, err := arg1("JSON.stringify", args)
			if err != nil {
				return nil, err
			}
			encoded, err := json.Marshal(j.host.ToHost(v))
			if err != nil {
				return nil, newHostConversionError("JSON.stringify: %v", err)
			}
			return NewStr(string(encoded)), nil
		}), nil
	default:
		return nil, newRuntimeError(no, errInvalidCall, "JSON has no property %q", name)
	}
}

func (j jsonHostAdapter) SetProperty(no *NativeObject, name string, v Value) (Value, error) {
	return nil, newRuntimeError(no, errInvalidAssignment, "JSON properties are not assignable")
}

// processHostAdapter backs the process global: args, env, and run (§6.3).
type processHostAdapter struct{}

func newProcessObject() *NativeObject {
	return NewNativeObject("process", nil, processHostAdapter{})
}

func (processHostAdapter) GetProperty(no *NativeObject, name string) (Value, error) {
	switch name {
	case "args":
		items := make([]Value, len(os.Args))
		for i, a := range os.Args {
			items[i] = NewStr(a)
		}
		return NewList(items), nil
	case "env":
		return newNativeFn("process.env", func(ev *Evaluator, args ...Value) (Value, error) {
			name, err := strArg(no, args, 0, "process.env")
			if err != nil {
				return nil, err
			}
			return NewStr(os.Getenv(name)), nil
		}), nil
	case "run":
		return newNativeFn("process.run", func(ev *Evaluator, args ...Value) (Value, error) {
			if len(args) < 1 {
				return nil, newRuntimeError(no, errInvalidCall, "process.run requires a command")
			}
			name, ok := args[0].(*Str)
			if !ok {
				return nil, newRuntimeError(no, errInvalidCall, "process.run command must be a Str")
			}
			argv := make([]string, 0, len(args)-1)
			for _, a := range args[1:] {
				s, ok := a.(*Str)
				if !ok {
					return nil, newRuntimeError(no, errInvalidCall, "process.run arguments must be Str")
				}
				argv = append(argv, s.Value)
			}
			var out bytes.Buffer
			cmd := exec.Command(name.Value, argv...)
			cmd.Stdout = &out
			cmd.Stderr = &out
			if err := cmd.Run(); err != nil {
				return nil, newRuntimeError(no, errInvalidCall, "process.run: %v", err)
			}
			return NewStr(out.String()), nil
		}), nil
	default:
		return nil, newRuntimeError(no, errInvalidCall, "process has no property %q", name)
	}
}

func (processHostAdapter) SetProperty(no *NativeObject, name string, v Value) (Value, error) {
	return nil, newRuntimeError(no, errInvalidAssignment, "process properties are not assignable")
}

// fsHostAdapter backs the fs global: readFile, writeFile, exists, list
// (§6.3), mirroring the teacher's File/Directory Io objects with stdlib
// os calls instead of their own handle type.
type fsHostAdapter struct{}

func newFSObject() *NativeObject {
	return NewNativeObject("fs", nil, fsHostAdapter{})
}

func (fsHostAdapter) GetProperty(no *NativeObject, name string) (Value, error) {
	switch name {
	case "readFile":
		return newNativeFn("fs.readFile", func(ev *Evaluator, args ...Value) (Value, error) {
			path, err := strArg(no, args, 0, "fs.readFile")
			if err != nil {
				return nil, err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, newRuntimeError(no, errInvalidCall, "fs.readFile: %v", err)
			}
			return NewStr(string(data)), nil
		}), nil
	case "writeFile":
		return newNativeFn("fs.writeFile", func(ev *Evaluator, args ...Value) (Value, error) {
			path, err := strArg(no, args, 0, "fs.writeFile")
			if err != nil {
				return nil, err
			}
			content, err := strArg(no, args, 1, "fs.writeFile")
			if err != nil {
				return nil, err
			}
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				return nil, newRuntimeError(no, errInvalidCall, "fs.writeFile: %v", err)
			}
			return Null, nil
		}), nil
	case "exists":
		return newNativeFn("fs.exists", func(ev *Evaluator, args ...Value) (Value, error) {
			path, err := strArg(no, args, 0, "fs.exists")
			if err != nil {
				return nil, err
			}
			_, statErr := os.Stat(path)
			return NewBool(statErr == nil), nil
		}), nil
	case "list":
		return newNativeFn("fs.list", func(ev *Evaluator, args ...Value) (Value, error) {
			path, err := strArg(no, args, 0, "fs.list")
			if err != nil {
				return nil, err
			}
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, newRuntimeError(no, errInvalidCall, "fs.list: %v", err)
			}
			items := make([]Value, len(entries))
			for i, e := range entries {
				items[i] = NewStr(e.Name())
			}
			return NewList(items), nil
		}), nil
	default:
		return nil, newRuntimeError(no, errInvalidCall, "fs has no property %q", name)
	}
}

func (fsHostAdapter) SetProperty(no *NativeObject, name string, v Value) (Value, error) {
	return nil, newRuntimeError(no, errInvalidAssignment, "fs properties are not assignable")
}

// regexpHostAdapter backs RegExp(pattern, flags?)'s returned NativeObject:
// test, exec, source (§6.3). Built on stdlib RE2 (regexp); no example in
// the retrieval pack imports a third-party regex engine for this shape of
// problem, and RE2 is the idiomatic Go choice here.
type regexpHostAdapter struct{}

func regExpConstructor(ev *Evaluator, args ...Value) (Value, error) {
	pattern, err := strArg(nil, args, 0, "RegExp")
	if err != nil {
		return nil, err
	}
	flags := ""
	if len(args) > 1 {
		if f, ok := args[1].(*Str); ok {
			flags = f.Value
		}
	}
	expr := pattern
	if strings.Contains(flags, "i") {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, newRuntimeError(nil, errInvalidCall, "RegExp: %v", err)
	}
	return NewNativeObject("RegExp", re, regexpHostAdapter{}), nil
}

func (regexpHostAdapter) GetProperty(no *NativeObject, name string) (Value, error) {
	re := no.Handle.(*regexp.Regexp)
	switch name {
	case "test":
		return newNativeFn("RegExp.test", func(ev *Evaluator, args ...Value) (Value, error) {
			s, err := strArg(no, args, 0, "RegExp.test")
			if err != nil {
				return nil, err
			}
			return NewBool(re.MatchString(s)), nil
		}), nil
	case "exec":
		return newNativeFn("RegExp.exec", func(ev *Evaluator, args ...Value) (Value, error) {
			s, err := strArg(no, args, 0, "RegExp.exec")
			if err != nil {
				return nil, err
			}
			m := re.FindStringSubmatch(s)
			if m == nil {
				return Null, nil
			}
			items := make([]Value, len(m))
			for i, g := range m {
				items[i] = NewStr(g)
			}
			return NewList(items), nil
		}), nil
	case "source":
		return NewStr(re.String()), nil
	default:
		return nil, newRuntimeError(no, errInvalidCall, "RegExp has no property %q", name)
	}
}

func (regexpHostAdapter) SetProperty(no *NativeObject, name string, v Value) (Value, error) {
	return nil, newRuntimeError(no, errInvalidAssignment, "RegExp properties are not assignable")
}

func strArg(source Value, args []Value, n int, who string) (string, error) {
	if len(args) <= n {
		return "", newRuntimeError(source, errInvalidCall, "%s: missing argument %d", who, n)
	}
	s, ok := args[n].(*Str)
	if !ok {
		return "", newRuntimeError(source, errInvalidCall, "%s: argument %d must be a Str", who, n)
	}
	return s.Value, nil
}
