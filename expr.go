package ark

// Literal wraps a constant Value computed at compile time (§3.2).
type Literal struct {
	base
	Payload Value
}

// NewLiteral wraps v as a Literal expression.
func NewLiteral(v Value) *Literal {
	return &Literal{base: newBase(), Payload: v}
}

func (l *Literal) eval(*Evaluator) (Value, error) { return l.Payload, nil }

// ListLit evaluates its element expressions in order and wraps them in a
// List.
type ListLit struct {
	base
	Exprs []Value
}

func (l *ListLit) eval(ev *Evaluator) (Value, error) {
	items := make([]Value, len(l.Exprs))
	for i, e := range l.Exprs {
		v, err := e.eval(ev)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return NewList(items), nil
}

// MapPair is one key/value expression pair of a MapLit.
type MapPair struct {
	Key, Val Value
}

// MapLit evaluates its key/value pairs in order and wraps them in a Map.
type MapLit struct {
	base
	Pairs []MapPair
}

func (m *MapLit) eval(ev *Evaluator) (Value, error) {
	out := NewMap()
	for _, p := range m.Pairs {
		k, err := p.Key.eval(ev)
		if err != nil {
			return nil, err
		}
		v, err := p.Val.eval(ev)
		if err != nil {
			return nil, err
		}
		out.set(k, v)
	}
	return out, nil
}

// ObjectLit evaluates its entries, in source order, into an Object.
type ObjectLit struct {
	base
	Names []string
	Exprs []Value
}

func (o *ObjectLit) eval(ev *Evaluator) (Value, error) {
	out := NewObject()
	for i, name := range o.Names {
		v, err := o.Exprs[i].eval(ev)
		if err != nil {
			return nil, err
		}
		out.Slots[name] = v
	}
	return out, nil
}

// Get evaluates Expr to a Ref and dereferences it, failing with
// UninitializedSymbol if the cell holds Undefined.
type Get struct {
	base
	Expr Value
}

func (g *Get) eval(ev *Evaluator) (Value, error) {
	v, err := g.Expr.eval(ev)
	if err != nil {
		return nil, err
	}
	ref, ok := v.(Ref)
	if !ok {
		return nil, newRuntimeError(g.Expr, errInvalidCall, "cannot read through a non-reference value")
	}
	val, err := ref.get(ev.Stack)
	if err != nil {
		return nil, err
	}
	if val == Undefined {
		return nil, newRuntimeError(g.Expr, errUninitializedSymbol, "%s", refName(g.Expr))
	}
	return val, nil
}

func refName(v Value) string {
	if name := Debug(v).Name(); name != "" {
		return name
	}
	return "<anonymous>"
}

// Set evaluates RefExpr and ValExpr, then writes ValExpr's value through
// RefExpr's Ref, failing with InvalidAssignment if RefExpr isn't a Ref.
type Set struct {
	base
	RefExpr Value
	ValExpr Value
}

func (s *Set) eval(ev *Evaluator) (Value, error) {
	l, err := s.RefExpr.eval(ev)
	if err != nil {
		return nil, err
	}
	ref, ok := l.(Ref)
	if !ok {
		return nil, newRuntimeError(s.RefExpr, errInvalidAssignment, "left side of set is not a reference")
	}
	v, err := s.ValExpr.eval(ev)
	if err != nil {
		return nil, err
	}
	return ref.set(ev.Stack, v)
}

// Property evaluates ObjExpr and produces a PropertyRef(obj, Name); Name
// is fixed at compile time.
type Property struct {
	base
	Name    string
	ObjExpr Value
}

func (p *Property) eval(ev *Evaluator) (Value, error) {
	ov, err := p.ObjExpr.eval(ev)
	if err != nil {
		return nil, err
	}
	return NewPropertyRef(ov, p.Name), nil
}

// Fn resolves its captured addresses against the current stack and
// produces a Closure (§4.3).
type Fn struct {
	base
	Params            []string
	CapturedAddresses []Ref
	Body              Value
}

func (f *Fn) eval(ev *Evaluator) (Value, error) {
	captures := make([]Ref, len(f.CapturedAddresses))
	for i, addr := range f.CapturedAddresses {
		c, err := resolveCapture(ev.Stack, addr)
		if err != nil {
			return nil, err
		}
		captures[i] = c
	}
	return &Closure{base: newBase(), Params: f.Params, Captures: captures, Body: f.Body}, nil
}

// Call evaluates FnExpr then its arguments left-to-right (§5), and applies
// the result: directly for a NativeFn, via a fresh frame for a Closure.
type Call struct {
	base
	FnExpr   Value
	ArgExprs []Value
}

func (c *Call) eval(ev *Evaluator) (Value, error) {
	fnVal, err := c.FnExpr.eval(ev)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(c.ArgExprs))
	for i, a := range c.ArgExprs {
		v, err := a.eval(ev)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch fn := fnVal.(type) {
	case *NativeFn:
		return fn.Fn(ev, args...)
	case *Closure:
		return ev.callClosure(fn, args)
	default:
		return nil, newRuntimeError(c.FnExpr, errInvalidCall, "%s is not callable", typeName(fnVal))
	}
}

// Let pushes len(Names) fresh Undefined cells onto the current frame's
// locals, evaluates Body, and pops them on every exit path (§3.4, §8.1).
type Let struct {
	base
	Names []string
	Body  Value
}

func (l *Let) eval(ev *Evaluator) (Value, error) {
	frame := ev.Stack.Top()
	start := len(frame.Locals)
	for range l.Names {
		frame.Locals = append(frame.Locals, &cell{value: Undefined})
	}
	defer func() {
		frame.Locals = frame.Locals[:start]
	}()
	return l.Body.eval(ev)
}

// Sequence evaluates its expressions in order and returns the last result,
// or Null if empty.
type Sequence struct {
	base
	Exprs []Value
}

func (s *Sequence) eval(ev *Evaluator) (Value, error) {
	var result Value = Null
	for _, e := range s.Exprs {
		v, err := e.eval(ev)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// If evaluates Cond, then Then or Else (which may be nil) based on its
// host-coerced truthiness.
type If struct {
	base
	Cond Value
	Then Value
	Else Value
}

func (i *If) eval(ev *Evaluator) (Value, error) {
	c, err := i.Cond.eval(ev)
	if err != nil {
		return nil, err
	}
	if ev.State.Adapter.Truthy(c) {
		return i.Then.eval(ev)
	}
	if i.Else == nil {
		return Null, nil
	}
	return i.Else.eval(ev)
}

// And short-circuits: if L is falsy, returns it; otherwise evaluates and
// returns R.
type And struct {
	base
	L, R Value
}

func (a *And) eval(ev *Evaluator) (Value, error) {
	l, err := a.L.eval(ev)
	if err != nil {
		return nil, err
	}
	if !ev.State.Adapter.Truthy(l) {
		return l, nil
	}
	return a.R.eval(ev)
}

// Or short-circuits: if L is truthy, returns it; otherwise evaluates and
// returns R.
type Or struct {
	base
	L, R Value
}

func (o *Or) eval(ev *Evaluator) (Value, error) {
	l, err := o.L.eval(ev)
	if err != nil {
		return nil, err
	}
	if ev.State.Adapter.Truthy(l) {
		return l, nil
	}
	return o.R.eval(ev)
}

// Loop repeats Body forever, catching Break (returns its payload) and
// Continue (re-enters the loop); any other error propagates.
type Loop struct {
	base
	Body Value
}

func (l *Loop) eval(ev *Evaluator) (Value, error) {
	for {
		_, err := l.Body.eval(ev)
		switch {
		case err == nil:
			// Normal completion: run the body again. Only a break (or an
			// error other than continue, e.g. return) ends the loop.
		case asContinue(err):
		default:
			if bs, ok := asBreak(err); ok {
				return bs.Value, nil
			}
			return nil, err
		}
	}
}
