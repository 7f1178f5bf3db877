package ark

// Evaluator carries the one piece of mutable state a run needs: the
// runtime stack (§4.3). It also holds a back-reference to the owning
// ArkState for globals, the host adapter, and logging.
type Evaluator struct {
	State *ArkState
	Stack *Stack
}

func newEvaluator(state *ArkState) *Evaluator {
	return &Evaluator{State: state, Stack: NewStack()}
}

// callClosure implements the Closure arm of §4.3's Call: bind parameters
// (with variadic tail collection per spec §9's parity note), push a frame,
// evaluate the body catching only returnSignal, and pop the frame on every
// exit path.
func (ev *Evaluator) callClosure(cl *Closure, args []Value) (Value, error) {
	n := len(cl.Params)
	locals := make([]*cell, 0, n+1)
	for i := 0; i < n; i++ {
		if i < len(args) {
			locals = append(locals, &cell{value: args[i]})
		} else {
			locals = append(locals, &cell{value: Undefined})
		}
	}
	if len(args) > n {
		extra := make([]Value, len(args)-n)
		copy(extra, args[n:])
		locals = append(locals, &cell{value: NewList(extra)})
	}
	frame := &Frame{Locals: locals, Captures: cl.Captures}
	ev.Stack.Push(frame)
	defer ev.Stack.Pop()

	result, err := cl.Body.eval(ev)
	if err != nil {
		if rs, ok := asReturn(err); ok {
			return rs.Value, nil
		}
		return nil, err
	}
	return result, nil
}

// resolveCapture turns one of Fn's recorded capturedAddresses — itself a
// StackRef or CaptureRef relative to the *body's* frame — into the concrete
// Ref the new Closure will carry, by following it one frame up from the
// frame the Fn expression is currently evaluating in (§4.3).
func resolveCapture(stack *Stack, addr Ref) (Ref, error) {
	switch a := addr.(type) {
	case *StackRef:
		level := a.Level - 1
		f, err := stack.At(level)
		if err != nil {
			return nil, err
		}
		if a.Index < 0 || a.Index >= len(f.Locals) {
			return nil, newRuntimeError(addr, errInvalidCall, "capture address out of range")
		}
		return &ValueRef{base: newBase(), cell: f.Locals[a.Index]}, nil
	case *CaptureRef:
		f, err := stack.At(0)
		if err != nil {
			return nil, err
		}
		if a.Index < 0 || a.Index >= len(f.Captures) {
			return nil, newRuntimeError(addr, errInvalidCall, "capture address out of range")
		}
		return f.Captures[a.Index], nil
	default:
		return nil, newRuntimeError(addr, errInvalidCall, "unsupported capture address kind")
	}
}
