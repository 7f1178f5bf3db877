package ark

// cell is the mutable storage location a Ref ultimately bottoms out at:
// a global binding, a closure capture, or a boxed parameter/local slot.
type cell struct {
	value Value
}

// Ref is the first-class reference abstraction of §3.3. A Ref is itself a
// Value (it evaluates to itself, per §4.1's identity rule); Get/Set
// dereference and write through it explicitly.
type Ref interface {
	Value
	get(stack *Stack) (Value, error)
	set(stack *Stack, v Value) (Value, error)
}

// ValueRef owns a mutable cell directly. Globals and resolved closure
// captures are ValueRefs; frame locals (including Let bindings in the
// implicit bottom frame) are bare cells reached through a StackRef.
type ValueRef struct {
	base
	cell *cell
}

// NewValueRef creates a ValueRef around a freshly allocated cell.
func NewValueRef(initial Value) *ValueRef {
	if initial == nil {
		initial = Undefined
	}
	return &ValueRef{base: newBase(), cell: &cell{value: initial}}
}

func (r *ValueRef) eval(*Evaluator) (Value, error) { return r, nil }

func (r *ValueRef) get(*Stack) (Value, error) { return r.cell.value, nil }

func (r *ValueRef) set(_ *Stack, v Value) (Value, error) {
	r.cell.value = v
	return v, nil
}

// StackRef is a lexical address: frame depth from the top of the runtime
// stack (0 = current frame), and a slot index within that frame's locals.
type StackRef struct {
	base
	Level int
	Index int
}

// NewStackRef builds a StackRef for (level, index).
func NewStackRef(level, index int) *StackRef {
	return &StackRef{base: newBase(), Level: level, Index: index}
}

func (r *StackRef) eval(*Evaluator) (Value, error) { return r, nil }

func (r *StackRef) cellAt(stack *Stack) (*cell, error) {
	f, err := stack.At(r.Level)
	if err != nil {
		return nil, err
	}
	if r.Index < 0 || r.Index >= len(f.Locals) {
		return nil, newRuntimeError(r, errInvalidCall, "stack slot %d out of range", r.Index)
	}
	return f.Locals[r.Index], nil
}

func (r *StackRef) get(stack *Stack) (Value, error) {
	c, err := r.cellAt(stack)
	if err != nil {
		return nil, err
	}
	return c.value, nil
}

func (r *StackRef) set(stack *Stack, v Value) (Value, error) {
	c, err := r.cellAt(stack)
	if err != nil {
		return nil, err
	}
	c.value = v
	return v, nil
}

// CaptureRef is a slot within the current frame's capture array, filled in
// by the enclosing closure at the point the Fn expression was evaluated.
type CaptureRef struct {
	base
	Index int
}

// NewCaptureRef builds a CaptureRef for index.
func NewCaptureRef(index int) *CaptureRef {
	return &CaptureRef{base: newBase(), Index: index}
}

func (r *CaptureRef) eval(*Evaluator) (Value, error) { return r, nil }

func (r *CaptureRef) captureAt(stack *Stack) (Ref, error) {
	f, err := stack.At(0)
	if err != nil {
		return nil, err
	}
	if r.Index < 0 || r.Index >= len(f.Captures) {
		return nil, newRuntimeError(r, errInvalidCall, "capture slot %d out of range", r.Index)
	}
	return f.Captures[r.Index], nil
}

func (r *CaptureRef) get(stack *Stack) (Value, error) {
	c, err := r.captureAt(stack)
	if err != nil {
		return nil, err
	}
	return c.get(stack)
}

func (r *CaptureRef) set(stack *Stack, v Value) (Value, error) {
	c, err := r.captureAt(stack)
	if err != nil {
		return nil, err
	}
	return c.set(stack, v)
}

// PropertyRef addresses a field within an Object, List, Map, or
// NativeObject (§3.3).
type PropertyRef struct {
	base
	Object Value
	Name   string
}

// NewPropertyRef builds a PropertyRef for (object, name).
func NewPropertyRef(object Value, name string) *PropertyRef {
	return &PropertyRef{base: newBase(), Object: object, Name: name}
}

func (r *PropertyRef) eval(*Evaluator) (Value, error) { return r, nil }

func (r *PropertyRef) holder() (propertyHolder, error) {
	h, ok := r.Object.(propertyHolder)
	if !ok {
		return nil, newRuntimeError(r, errInvalidCall, "value has no properties")
	}
	return h, nil
}

func (r *PropertyRef) get(*Stack) (Value, error) {
	h, err := r.holder()
	if err != nil {
		return nil, err
	}
	return h.getProperty(r.Name)
}

func (r *PropertyRef) set(_ *Stack, v Value) (Value, error) {
	h, err := r.holder()
	if err != nil {
		return nil, err
	}
	return h.setProperty(r.Name, v)
}
