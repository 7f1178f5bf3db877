package ark

// Namespace is a name→Value mapping that tags each inserted value's debug
// bag with its name (§3.5). Two distinguished namespaces feed the
// compiler: intrinsics (compile-time-only NativeFns, inlined as a Literal
// at every reference site) and globals (ValueRefs looked up at compile
// time, per §3.5/§6.3).
type Namespace struct {
	entries map[string]Value
}

// NewNamespace creates an empty Namespace.
func NewNamespace() *Namespace {
	return &Namespace{entries: make(map[string]Value)}
}

// Set inserts v under name, tagging its debug bag.
func (n *Namespace) Set(name string, v Value) {
	tag(v, name)
	n.entries[name] = v
}

// Get looks up name.
func (n *Namespace) Get(name string) (Value, bool) {
	v, ok := n.entries[name]
	return v, ok
}

// Names returns every bound name, in map iteration order.
func (n *Namespace) Names() []string {
	names := make([]string, 0, len(n.entries))
	for k := range n.entries {
		names = append(names, k)
	}
	return names
}
