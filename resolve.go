package ark

// compileFrame is one level of the compile-time environment (§4.2.2): an
// ordered list of local names (extended by Let, fixed by Fn's params) and
// an ordered list of captured names with the original reference each one
// was rewritten from.
type compileFrame struct {
	locals       []string
	captureNames []string
	captureAddrs []Ref
}

// compileEnv is the compile-time mirror of the runtime Stack: frames
// ordered top-first, frame 0 is whatever is currently being compiled.
type compileEnv struct {
	frames []*compileFrame
}

func newCompileEnv() *compileEnv {
	return &compileEnv{frames: []*compileFrame{{}}}
}

// push extends frame 0's locals (used by "let").
func (e *compileEnv) push(names []string) {
	e.frames[0].locals = append(e.frames[0].locals, names...)
}

// pop removes the last n locals pushed onto frame 0.
func (e *compileEnv) pop(n int) {
	f := e.frames[0]
	f.locals = f.locals[:len(f.locals)-n]
}

// pushFrame introduces a new top frame (used by "fn").
func (e *compileEnv) pushFrame(locals []string) {
	nf := &compileFrame{locals: append([]string{}, locals...)}
	e.frames = append([]*compileFrame{nf}, e.frames...)
}

// popFrame removes the top frame, returning it so its captures can be
// snapshotted into the Fn node.
func (e *compileEnv) popFrame() *compileFrame {
	f := e.frames[0]
	e.frames = e.frames[1:]
	return f
}

// resolveSymbol implements §4.2.2 end to end: the intrinsic shortcut, the
// lexical search with capture-rewrite, the external-symbols (globals)
// fallback, and free-variable bookkeeping. It returns the raw resolved
// reference or literal — callers compiling an ordinary atom position wrap
// the Ref case in Get; "ref"/"set" callers use it unwrapped.
func (c *Compiler) resolveSymbol(env *compileEnv, s string) (Value, error) {
	if nf, ok := c.Intrinsics.Get(s); ok {
		return NewLiteral(nf), nil
	}
	for level, f := range env.frames {
		for idx := len(f.locals) - 1; idx >= 0; idx-- {
			if f.locals[idx] != s {
				continue
			}
			ref := NewStackRef(level, idx)
			c.freeVars[s] = append(c.freeVars[s], ref)
			tag(ref, s)
			if level == 0 {
				return ref, nil
			}
			return c.captureRewrite(env, s, ref), nil
		}
	}
	if v, ok := c.Globals.Get(s); ok {
		return v, nil
	}
	return nil, newCompilerError("undefined symbol %s", s)
}

// captureRewrite implements §4.2.2 step 4: reuse frame 0's existing
// capture for s if present, otherwise append it and return a fresh
// CaptureRef.
func (c *Compiler) captureRewrite(env *compileEnv, s string, original Ref) Value {
	f := env.frames[0]
	for k, name := range f.captureNames {
		if name == s {
			return NewCaptureRef(k)
		}
	}
	k := len(f.captureNames)
	f.captureNames = append(f.captureNames, s)
	f.captureAddrs = append(f.captureAddrs, original)
	ref := NewCaptureRef(k)
	tag(ref, s)
	return ref
}

// wrapAtom is applied to the result of resolving a bare-string atom in an
// ordinary expression position: a Ref auto-dereferences (Get), an
// intrinsic Literal is used as-is. "ref"/"get"/"set" forms call
// resolveSymbol directly and apply their own wrapping.
func wrapAtom(v Value) Value {
	if ref, ok := v.(Ref); ok {
		return &Get{base: newBase(), Expr: ref}
	}
	return v
}

// removeBound deletes names bound by a Let/Fn from the compiler's running
// free-variable map (§4.2.2): those occurrences are no longer free
// relative to the enclosing scope once this scope closes over them.
func (c *Compiler) removeBound(names []string) {
	for _, n := range names {
		delete(c.freeVars, n)
	}
}
