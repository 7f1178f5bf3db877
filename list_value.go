package ark

// List is an ordered mutable sequence of Values. Its method table exposes
// length (live, per spec §9's resolution of the snapshotted-length open
// question), get(i), and set(i, v).
type List struct {
	base
	Items []Value
}

// NewList wraps items as a List.
func NewList(items []Value) *List {
	return &List{base: newBase(), Items: items}
}

func (l *List) eval(*Evaluator) (Value, error) { return l, nil }

func (l *List) getProperty(name string) (Value, error) {
	switch name {
	case "length":
		return NewNum(float64(len(l.Items))), nil
	case "get":
		return newNativeFn("List.get", func(ev *Evaluator, args ...Value) (Value, error) {
			i, err := argIndex(l, args, 0, len(l.Items))
			if err != nil {
				return nil, err
			}
			return l.Items[i], nil
		}), nil
	case "set":
		return newNativeFn("List.set", func(ev *Evaluator, args ...Value) (Value, error) {
			i, err := argIndex(l, args, 0, len(l.Items))
			if err != nil {
				return nil, err
			}
			if len(args) < 2 {
				return nil, newRuntimeError(l, errInvalidCall, "List set requires an index and a value")
			}
			l.Items[i] = args[1]
			return args[1], nil
		}), nil
	default:
		return nil, newRuntimeError(l, errInvalidCall, "List has no property %q", name)
	}
}

func (l *List) setProperty(name string, v Value) (Value, error) {
	return nil, newRuntimeError(l, errInvalidAssignment, "List properties are not directly assignable; use set(i, v)")
}

func argIndex(source Value, args []Value, n, length int) (int, error) {
	if len(args) <= n {
		return 0, newRuntimeError(source, errInvalidCall, "missing index argument")
	}
	num, ok := args[n].(*Num)
	if !ok {
		return 0, newRuntimeError(source, errInvalidCall, "index must be a Num")
	}
	i := int(num.Value)
	if i < 0 || i >= length {
		return 0, newRuntimeError(source, errInvalidCall, "index %d out of range", i)
	}
	return i, nil
}
