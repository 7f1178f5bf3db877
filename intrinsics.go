package ark

import "math"

// Intrinsics are compile-time-only built-ins (§3.5, §6.4): arithmetic,
// comparison, bitwise, unary operators, plus the three non-local-exit
// functions break/continue/return. The compiler inlines each as a
// Literal(nativeFn) at every reference site rather than storing them as
// Refs (§4.2.2 step 5).

func buildIntrinsics() *Namespace {
	ns := NewNamespace()
	reg := func(name string, fn func(ev *Evaluator, args ...Value) (Value, error)) {
		ns.Set(name, newNativeFn(name, fn))
	}

	reg("pos", unaryNumeric("pos", func(x float64) float64 { return x }))
	reg("neg", unaryNumeric("neg", func(x float64) float64 { return -x }))
	reg("not", func(ev *Evaluator, args ...Value) (Value, error) {
		v, err := arg1("not", args)
		if err != nil {
			return nil, err
		}
		return NewBool(!ev.State.Adapter.Truthy(v)), nil
	})
	reg("~", unaryBitwise("~", func(x int64) int64 { return ^x }))

	reg("break", func(ev *Evaluator, args ...Value) (Value, error) {
		var v Value = Null
		if len(args) > 0 {
			v = args[0]
		}
		return nil, &breakSignal{Value: v}
	})
	reg("continue", func(ev *Evaluator, args ...Value) (Value, error) {
		return nil, &continueSignal{}
	})
	reg("return", func(ev *Evaluator, args ...Value) (Value, error) {
		var v Value = Null
		if len(args) > 0 {
			v = args[0]
		}
		return nil, &returnSignal{Value: v}
	})

	reg("=", func(ev *Evaluator, args ...Value) (Value, error) {
		l, r, err := arg2("=", args)
		if err != nil {
			return nil, err
		}
		return NewBool(l == r), nil
	})
	reg("!=", func(ev *Evaluator, args ...Value) (Value, error) {
		l, r, err := arg2("!=", args)
		if err != nil {
			return nil, err
		}
		return NewBool(l != r), nil
	})

	reg("<", comparison("<", func(a, b float64) bool { return a < b }))
	reg("<=", comparison("<=", func(a, b float64) bool { return a <= b }))
	reg(">", comparison(">", func(a, b float64) bool { return a > b }))
	reg(">=", comparison(">=", func(a, b float64) bool { return a >= b }))

	reg("+", binaryAdd)
	reg("-", binaryNumeric("-", func(a, b float64) float64 { return a - b }))
	reg("*", binaryNumeric("*", func(a, b float64) float64 { return a * b }))
	reg("/", binaryNumeric("/", func(a, b float64) float64 { return a / b }))
	reg("%", binaryNumeric("%", arkMod))
	reg("**", binaryNumeric("**", arkPow))

	reg("&", binaryBitwise("&", func(a, b int64) int64 { return a & b }))
	reg("|", binaryBitwise("|", func(a, b int64) int64 { return a | b }))
	reg("^", binaryBitwise("^", func(a, b int64) int64 { return a ^ b }))
	reg("<<", binaryBitwise("<<", func(a, b int64) int64 { return a << uint64(b&63) }))
	reg(">>", binaryBitwise(">>", func(a, b int64) int64 { return a >> uint64(b&63) }))
	reg(">>>", func(ev *Evaluator, args ...Value) (Value, error) {
		a, b, err := numArgs(">>>", args)
		if err != nil {
			return nil, err
		}
		return NewNum(float64(uint32(int64(a)) >> (uint32(int64(b)) & 31))), nil
	})

	return ns
}

var intrinsicsNamespace = buildIntrinsics()

// Intrinsics returns the shared compile-time-only table of built-in
// NativeFns (§3.5, §6.4).
func Intrinsics() *Namespace { return intrinsicsNamespace }

func arg1(name string, args []Value) (Value, error) {
	if len(args) < 1 {
		return nil, newRuntimeError(nil, errInvalidCall, "%s requires one argument", name)
	}
	return args[0], nil
}

func arg2(name string, args []Value) (Value, Value, error) {
	if len(args) < 2 {
		return nil, nil, newRuntimeError(nil, errInvalidCall, "%s requires two arguments", name)
	}
	return args[0], args[1], nil
}

func numArgs(name string, args []Value) (float64, float64, error) {
	l, r, err := arg2(name, args)
	if err != nil {
		return 0, 0, err
	}
	a, err := coerceNumber(l, l)
	if err != nil {
		return 0, 0, err
	}
	b, err := coerceNumber(r, r)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func unaryNumeric(name string, fn func(float64) float64) func(ev *Evaluator, args ...Value) (Value, error) {
	return func(ev *Evaluator, args ...Value) (Value, error) {
		v, err := arg1(name, args)
		if err != nil {
			return nil, err
		}
		n, err := coerceNumber(v, v)
		if err != nil {
			return nil, err
		}
		return NewNum(fn(n)), nil
	}
}

func unaryBitwise(name string, fn func(int64) int64) func(ev *Evaluator, args ...Value) (Value, error) {
	return func(ev *Evaluator, args ...Value) (Value, error) {
		v, err := arg1(name, args)
		if err != nil {
			return nil, err
		}
		n, err := coerceNumber(v, v)
		if err != nil {
			return nil, err
		}
		return NewNum(float64(fn(int64(n)))), nil
	}
}

func binaryNumeric(name string, fn func(a, b float64) float64) func(ev *Evaluator, args ...Value) (Value, error) {
	return func(ev *Evaluator, args ...Value) (Value, error) {
		a, b, err := numArgs(name, args)
		if err != nil {
			return nil, err
		}
		return NewNum(fn(a, b)), nil
	}
}

func binaryBitwise(name string, fn func(a, b int64) int64) func(ev *Evaluator, args ...Value) (Value, error) {
	return func(ev *Evaluator, args ...Value) (Value, error) {
		a, b, err := numArgs(name, args)
		if err != nil {
			return nil, err
		}
		return NewNum(float64(fn(int64(a), int64(b)))), nil
	}
}

func comparison(name string, fn func(a, b float64) bool) func(ev *Evaluator, args ...Value) (Value, error) {
	return func(ev *Evaluator, args ...Value) (Value, error) {
		a, b, err := numArgs(name, args)
		if err != nil {
			return nil, err
		}
		return NewBool(fn(a, b)), nil
	}
}

// binaryAdd inspects the Ark operand types directly: two Strs concatenate,
// two Nums add. Mixed or unsupported operand pairs fail with RuntimeError.
func binaryAdd(ev *Evaluator, args ...Value) (Value, error) {
	l, r, err := arg2("+", args)
	if err != nil {
		return nil, err
	}
	ls, lok := l.(*Str)
	rs, rok := r.(*Str)
	if lok && rok {
		return NewStr(ls.Value + rs.Value), nil
	}
	a, err := coerceNumber(l, l)
	if err != nil {
		return nil, err
	}
	b, err := coerceNumber(r, r)
	if err != nil {
		return nil, err
	}
	return NewNum(a + b), nil
}

func arkMod(a, b float64) float64 {
	return math.Mod(a, b)
}

func arkPow(a, b float64) float64 {
	return math.Pow(a, b)
}
