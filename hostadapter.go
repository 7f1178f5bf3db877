package ark

import "fmt"

// HostAdapter is the boundary of §4.4 and §6: the two pure functions that
// cross between Ark values and the host language. The spec treats the
// host-value adapter as an external collaborator (§1); this is the default
// Go-native implementation, sufficient for embedding Ark in ordinary Go
// programs and for every example in §8.
type HostAdapter interface {
	// FromHost converts a Go value to an Ark Value. thisObj, if non-nil, is
	// bound as the receiver when x is a callable.
	FromHost(x any, thisObj Value) (Value, error)
	// ToHost converts an Ark Value to its nearest Go representation,
	// collapsing List/Map/Object to native containers. Anything else
	// (NativeFn, Closure, Ref, ...) is returned unchanged.
	ToHost(v Value) any
	// Truthy implements the truthiness coercion If/And/Or need (§4.2).
	Truthy(v Value) bool
}

// goAdapter is the default HostAdapter: plain Go types on one side, Ark
// values on the other.
type goAdapter struct{}

func (goAdapter) FromHost(x any, thisObj Value) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null, nil
	case Value:
		return v, nil
	case bool:
		return NewBool(v), nil
	case float64:
		return NewNum(v), nil
	case int:
		return NewNum(float64(v)), nil
	case string:
		return NewStr(v), nil
	case []any:
		items := make([]Value, len(v))
		for i, e := range v {
			cv, err := goAdapter{}.FromHost(e, nil)
			if err != nil {
				return nil, err
			}
			items[i] = cv
		}
		return NewList(items), nil
	case map[string]any:
		obj := NewObject()
		for k, e := range v {
			cv, err := goAdapter{}.FromHost(e, nil)
			if err != nil {
				return nil, err
			}
			obj.Slots[k] = cv
		}
		return obj, nil
	case func(ev *Evaluator, args ...Value) (Value, error):
		if thisObj != nil {
			wrapped := v
			return newNativeFn("nativeFn", func(ev *Evaluator, args ...Value) (Value, error) {
				return wrapped(ev, append([]Value{thisObj}, args...)...)
			}), nil
		}
		return newNativeFn("nativeFn", v), nil
	default:
		return nil, newHostConversionError("cannot convert host value of type %T to an Ark value", x)
	}
}

func (goAdapter) ToHost(v Value) any {
	switch t := v.(type) {
	case *nullValue, *undefinedValue:
		return nil
	case *Bool:
		return t.Value
	case *Num:
		return t.Value
	case *Str:
		return t.Value
	case *List:
		items := make([]any, len(t.Items))
		for i, e := range t.Items {
			items[i] = goAdapter{}.ToHost(e)
		}
		return items
	case *Map:
		m := make(map[any]any, len(t.entries))
		for _, k := range t.keys {
			m[goAdapter{}.ToHost(k)] = goAdapter{}.ToHost(t.entries[k])
		}
		return m
	case *Object:
		m := make(map[string]any, len(t.Slots))
		for k, e := range t.Slots {
			m[k] = goAdapter{}.ToHost(e)
		}
		return m
	default:
		return v
	}
}

func (a goAdapter) Truthy(v Value) bool {
	switch t := v.(type) {
	case *nullValue, *undefinedValue:
		return false
	case *Bool:
		return t.Value
	default:
		_ = t
		return true
	}
}

var _ HostAdapter = goAdapter{}

// coerceNumber extracts the float64 backing an Ark Num, failing with a
// RuntimeError that funnels every arithmetic type error through one place
// (spec §9's recommendation for a strongly-typed implementer).
func coerceNumber(source Value, v Value) (float64, error) {
	n, ok := v.(*Num)
	if !ok {
		return 0, newRuntimeError(source, errInvalidCall, "expected a Num, got %s", typeName(v))
	}
	return n.Value, nil
}

func typeName(v Value) string {
	switch v.(type) {
	case *nullValue:
		return "Null"
	case *undefinedValue:
		return "Undefined"
	case *Bool:
		return "Bool"
	case *Num:
		return "Num"
	case *Str:
		return "Str"
	case *List:
		return "List"
	case *Map:
		return "Map"
	case *Object:
		return "Object"
	case *NativeObject:
		return "NativeObject"
	case *Closure:
		return "Closure"
	case *NativeFn:
		return "NativeFn"
	case Ref:
		return "Ref"
	default:
		return fmt.Sprintf("%T", v)
	}
}
