package ark

// Map is a mapping from Value to Value, keyed by raw pointer identity —
// the source's known limitation carried forward per spec §3.1: two
// structurally equal but non-interned values (e.g. two distinct Objects)
// are distinct keys. Interned primitives compare correctly since interning
// makes their identity coincide with their value.
type Map struct {
	base
	entries map[Value]Value
	// keys preserves insertion order for anything that iterates the map;
	// nothing in the spec requires iteration, but keeping it costs little
	// and avoids a footgun if a future op needs it.
	keys []Value
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{base: newBase(), entries: make(map[Value]Value)}
}

func (m *Map) eval(*Evaluator) (Value, error) { return m, nil }

func (m *Map) get(key Value) Value {
	if v, ok := m.entries[key]; ok {
		return v
	}
	return Null
}

func (m *Map) set(key, value Value) {
	if _, exists := m.entries[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = value
}

func (m *Map) getProperty(name string) (Value, error) {
	switch name {
	case "get":
		return newNativeFn("Map.get", func(ev *Evaluator, args ...Value) (Value, error) {
			if len(args) < 1 {
				return nil, newRuntimeError(m, errInvalidCall, "Map get requires a key")
			}
			return m.get(args[0]), nil
		}), nil
	case "set":
		return newNativeFn("Map.set", func(ev *Evaluator, args ...Value) (Value, error) {
			if len(args) < 2 {
				return nil, newRuntimeError(m, errInvalidCall, "Map set requires a key and a value")
			}
			m.set(args[0], args[1])
			return args[1], nil
		}), nil
	default:
		return nil, newRuntimeError(m, errInvalidCall, "Map has no property %q", name)
	}
}

func (m *Map) setProperty(name string, v Value) (Value, error) {
	return nil, newRuntimeError(m, errInvalidAssignment, "Map properties are not directly assignable; use set(k, v)")
}
