package ark

// Object is a mutable mapping from string to Value. Unlike Map, Property
// access is the native way to read and write it: an absent property reads
// as Null (not Undefined), and setting a property always succeeds,
// creating the entry if needed (§4.1).
type Object struct {
	base
	Slots map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{base: newBase(), Slots: make(map[string]Value)}
}

func (o *Object) eval(*Evaluator) (Value, error) { return o, nil }

func (o *Object) getProperty(name string) (Value, error) {
	if v, ok := o.Slots[name]; ok {
		return v, nil
	}
	return Null, nil
}

func (o *Object) setProperty(name string, v Value) (Value, error) {
	o.Slots[name] = v
	return v, nil
}
