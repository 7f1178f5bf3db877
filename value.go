// Package ark implements the Ark expression language: a JSON-serialized
// expression graph plus the tree-walking evaluator that runs it.
package ark

import (
	"sync"

	"github.com/google/uuid"
)

// DebugBag is an opaque, per-value bag of diagnostic descriptors. Every
// runtime Value and every Expression node carries one. It always holds at
// least a "uid" key; "name" is set by the compiler and by Namespace.Set.
// Nothing in this package sets "sourceLoc"; runtime errors report it when
// a caller has set it.
type DebugBag struct {
	mu      sync.Mutex
	entries map[string]any
}

func newDebugBag() *DebugBag {
	return &DebugBag{entries: map[string]any{"uid": uuid.NewString()}}
}

// Get returns the descriptor stored under key, if any.
func (d *DebugBag) Get(key string) (any, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.entries[key]
	return v, ok
}

// Set stores a descriptor under key.
func (d *DebugBag) Set(key string, v any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[key] = v
}

// Name returns the "name" descriptor, or "" if none was recorded.
func (d *DebugBag) Name() string {
	if v, ok := d.Get("name"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Value is the closed variant set of §3.1: every runtime datum, including
// expression nodes and references, is a Value. Expressions are a subtype of
// values (§9's expression/value conflation): evaluating a plain value is the
// identity, which is why eval is part of this interface rather than a
// separate narrower one.
type Value interface {
	debugBag() *DebugBag
	eval(ev *Evaluator) (Value, error)
}

// Debug returns v's debug bag.
func Debug(v Value) *DebugBag {
	return v.debugBag()
}

// base is embedded by every concrete Value type to supply the debug bag.
type base struct {
	debug *DebugBag
}

func newBase() base {
	return base{debug: newDebugBag()}
}

func (b *base) debugBag() *DebugBag {
	return b.debug
}

func tag(v Value, name string) Value {
	Debug(v).Set("name", name)
	return v
}

// Undefined is the sentinel written into freshly pushed bindings before
// they are initialized. It is never returned to user code: reading it
// through Get raises UninitializedSymbol.
type undefinedValue struct{ base }

func (u *undefinedValue) eval(*Evaluator) (Value, error) { return u, nil }

// Undefined is the sole Undefined instance.
var Undefined Value = &undefinedValue{newBase()}

// nullValue is the singleton Null value.
type nullValue struct{ base }

func (n *nullValue) eval(*Evaluator) (Value, error) { return n, nil }

// Null is the sole Null instance.
var Null Value = &nullValue{newBase()}

// Bool wraps an interned boolean.
type Bool struct {
	base
	Value bool
}

func (b *Bool) eval(*Evaluator) (Value, error) { return b, nil }

// Num wraps an interned IEEE-754 double.
type Num struct {
	base
	Value float64
}

func (n *Num) eval(*Evaluator) (Value, error) { return n, nil }

// Str wraps an interned string.
type Str struct {
	base
	Value string
}

func (s *Str) eval(*Evaluator) (Value, error) { return s, nil }
