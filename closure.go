package ark

// Closure is produced by evaluating a Fn expression: the parameter names,
// the frame the closure will run with (params go in Locals at call time,
// Captures are fixed at creation time), and the body.
type Closure struct {
	base
	Params   []string
	Captures []Ref
	Body     Value
}

func (c *Closure) eval(*Evaluator) (Value, error) { return c, nil }
