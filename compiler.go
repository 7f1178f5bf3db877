package ark

import (
	"io"
	"strings"
)

// Compiler converts a decoded JSON tree into an expression graph (§4.2).
// Intrinsics is consulted first on every symbol resolution (the shortcut of
// §4.2.2 step 5); Globals is the caller-supplied external-symbols
// namespace, typically ArkState.Globals.
type Compiler struct {
	Intrinsics *Namespace
	Globals    *Namespace

	freeVars map[string][]*StackRef
}

// Compiled is the compiler's output (§6.2): the expression graph plus the
// free-variable map a caller must verify is empty before calling Run.
type Compiled struct {
	Expression Value
	FreeVars   map[string][]*StackRef
}

// Compile decodes r as the wire JSON of §4.2.1 and compiles it against
// globals.
func Compile(r io.Reader, globals *Namespace) (*Compiled, error) {
	node, err := decodeJSON(r)
	if err != nil {
		return nil, err
	}
	return CompileNode(node, globals)
}

// CompileString is Compile for an in-memory JSON document.
func CompileString(src string, globals *Namespace) (*Compiled, error) {
	return Compile(strings.NewReader(src), globals)
}

// CompileNode compiles an already-decoded JSON tree. It is split out from
// Compile so tests can build jsonNode trees directly without round-tripping
// through a JSON string.
func CompileNode(node *jsonNode, globals *Namespace) (*Compiled, error) {
	c := &Compiler{
		Intrinsics: Intrinsics(),
		Globals:    globals,
		freeVars:   make(map[string][]*StackRef),
	}
	env := newCompileEnv()
	expr, err := c.compileNode(env, node)
	if err != nil {
		return nil, err
	}
	return &Compiled{Expression: expr, FreeVars: c.freeVars}, nil
}

// formTags is the set of array-form tags with dedicated productions (§4.2.1);
// any other array compiles as a Call whose function is its first element.
var formTags = map[string]bool{
	"str": true, "let": true, "fn": true, "prop": true,
	"ref": true, "get": true, "set": true, "list": true,
	"map": true, "seq": true, "if": true, "and": true,
	"or": true, "loop": true,
}

func (c *Compiler) compileNode(env *compileEnv, n *jsonNode) (Value, error) {
	switch n.Kind {
	case jsonNull:
		return NewLiteral(Null), nil
	case jsonBool:
		return NewLiteral(NewBool(n.Bool)), nil
	case jsonNumber:
		return NewLiteral(NewNum(n.Num)), nil
	case jsonString:
		v, err := c.resolveSymbol(env, n.Str)
		if err != nil {
			return nil, err
		}
		return wrapAtom(v), nil
	case jsonObject:
		return c.compileObjectLit(env, n)
	case jsonArray:
		return c.compileForm(env, n)
	default:
		return nil, newCompilerError("unrecognized JSON node")
	}
}

func (c *Compiler) compileObjectLit(env *compileEnv, n *jsonNode) (Value, error) {
	exprs := make([]Value, len(n.ObjVals))
	for i, v := range n.ObjVals {
		e, err := c.compileNode(env, v)
		if err != nil {
			return nil, err
		}
		exprs[i] = e
	}
	return &ObjectLit{base: newBase(), Names: append([]string(nil), n.ObjKeys...), Exprs: exprs}, nil
}

func (c *Compiler) compileForm(env *compileEnv, n *jsonNode) (Value, error) {
	if len(n.Arr) == 0 {
		return nil, newCompilerError("empty form")
	}
	first := n.Arr[0]
	if first.Kind == jsonString && formTags[first.Str] {
		return c.compileTaggedForm(env, first.Str, n.Arr[1:])
	}
	fnExpr, err := c.compileNode(env, first)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(n.Arr)-1)
	for i, a := range n.Arr[1:] {
		v, err := c.compileNode(env, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return &Call{base: newBase(), FnExpr: fnExpr, ArgExprs: args}, nil
}

func (c *Compiler) compileTaggedForm(env *compileEnv, tagName string, rest []*jsonNode) (Value, error) {
	switch tagName {
	case "str":
		if len(rest) != 1 || rest[0].Kind != jsonString {
			return nil, newCompilerError(`"str" requires exactly one raw string argument`)
		}
		return NewLiteral(NewStr(rest[0].Str)), nil
	case "let":
		return c.compileLet(env, rest)
	case "fn":
		return c.compileFn(env, rest)
	case "prop":
		return c.compileProp(env, rest)
	case "ref":
		if len(rest) != 1 {
			return nil, newCompilerError(`"ref" requires exactly one argument`)
		}
		return c.compileRefArg(env, rest[0])
	case "get":
		return c.compileGet(env, rest)
	case "set":
		return c.compileSet(env, rest)
	case "list":
		return c.compileListLit(env, rest)
	case "map":
		return c.compileMapLit(env, rest)
	case "seq":
		return c.compileSeq(env, rest)
	case "if":
		return c.compileIf(env, rest)
	case "and", "or":
		return c.compileAndOr(env, tagName, rest)
	case "loop":
		if len(rest) != 1 {
			return nil, newCompilerError(`"loop" requires exactly one argument`)
		}
		body, err := c.compileNode(env, rest[0])
		if err != nil {
			return nil, err
		}
		return &Loop{base: newBase(), Body: body}, nil
	default:
		return nil, newCompilerError("unknown form tag %q", tagName)
	}
}

// compileRefArg resolves rest's single argument the way §4.2.2 describes
// for "ref": a bare string resolves directly to its Ref (no Get wrapping);
// anything else compiles normally and is expected to evaluate to a Ref at
// run time (e.g. a "prop" form).
func (c *Compiler) compileRefArg(env *compileEnv, n *jsonNode) (Value, error) {
	if n.Kind == jsonString {
		return c.resolveSymbol(env, n.Str)
	}
	return c.compileNode(env, n)
}

func (c *Compiler) compileLet(env *compileEnv, rest []*jsonNode) (Value, error) {
	if len(rest) != 2 {
		return nil, newCompilerError(`"let" requires a params list and a body`)
	}
	names, err := paramNames(rest[0])
	if err != nil {
		return nil, err
	}
	env.push(names)
	body, err := c.compileNode(env, rest[1])
	env.pop(len(names))
	if err != nil {
		return nil, err
	}
	c.removeBound(names)
	return &Let{base: newBase(), Names: names, Body: body}, nil
}

func (c *Compiler) compileFn(env *compileEnv, rest []*jsonNode) (Value, error) {
	if len(rest) != 2 {
		return nil, newCompilerError(`"fn" requires a params list and a body`)
	}
	params, err := paramNames(rest[0])
	if err != nil {
		return nil, err
	}
	env.pushFrame(params)
	body, err := c.compileNode(env, rest[1])
	frame := env.popFrame()
	if err != nil {
		return nil, err
	}
	c.removeBound(params)
	return &Fn{base: newBase(), Params: params, CapturedAddresses: frame.captureAddrs, Body: body}, nil
}

func (c *Compiler) compileProp(env *compileEnv, rest []*jsonNode) (Value, error) {
	if len(rest) != 2 {
		return nil, newCompilerError(`"prop" requires a name and an object expression`)
	}
	if rest[0].Kind != jsonString {
		return nil, newCompilerError(`"prop" name must be a raw string`)
	}
	obj, err := c.compileNode(env, rest[1])
	if err != nil {
		return nil, err
	}
	return &Property{base: newBase(), Name: rest[0].Str, ObjExpr: obj}, nil
}

func (c *Compiler) compileGet(env *compileEnv, rest []*jsonNode) (Value, error) {
	if len(rest) != 1 {
		return nil, newCompilerError(`"get" requires exactly one argument`)
	}
	var refExpr Value
	var err error
	if rest[0].Kind == jsonString {
		refExpr, err = c.resolveSymbol(env, rest[0].Str)
	} else {
		refExpr, err = c.compileNode(env, rest[0])
	}
	if err != nil {
		return nil, err
	}
	return &Get{base: newBase(), Expr: refExpr}, nil
}

func (c *Compiler) compileSet(env *compileEnv, rest []*jsonNode) (Value, error) {
	if len(rest) != 2 {
		return nil, newCompilerError(`"set" requires exactly two arguments`)
	}
	refExpr, err := c.compileRefArg(env, rest[0])
	if err != nil {
		return nil, err
	}
	valExpr, err := c.compileNode(env, rest[1])
	if err != nil {
		return nil, err
	}
	return &Set{base: newBase(), RefExpr: refExpr, ValExpr: valExpr}, nil
}

func (c *Compiler) compileListLit(env *compileEnv, rest []*jsonNode) (Value, error) {
	exprs := make([]Value, len(rest))
	for i, e := range rest {
		v, err := c.compileNode(env, e)
		if err != nil {
			return nil, err
		}
		exprs[i] = v
	}
	return &ListLit{base: newBase(), Exprs: exprs}, nil
}

func (c *Compiler) compileMapLit(env *compileEnv, rest []*jsonNode) (Value, error) {
	pairs := make([]MapPair, len(rest))
	for i, e := range rest {
		if e.Kind != jsonArray || len(e.Arr) != 2 {
			return nil, newCompilerError(`"map" entries must be [key, val] pairs`)
		}
		k, err := c.compileNode(env, e.Arr[0])
		if err != nil {
			return nil, err
		}
		v, err := c.compileNode(env, e.Arr[1])
		if err != nil {
			return nil, err
		}
		pairs[i] = MapPair{Key: k, Val: v}
	}
	return &MapLit{base: newBase(), Pairs: pairs}, nil
}

func (c *Compiler) compileSeq(env *compileEnv, rest []*jsonNode) (Value, error) {
	exprs := make([]Value, len(rest))
	for i, e := range rest {
		v, err := c.compileNode(env, e)
		if err != nil {
			return nil, err
		}
		exprs[i] = v
	}
	if len(exprs) == 1 {
		// A single-element seq collapses to its element (§4.2.1, §6.1).
		return exprs[0], nil
	}
	return &Sequence{base: newBase(), Exprs: exprs}, nil
}

func (c *Compiler) compileIf(env *compileEnv, rest []*jsonNode) (Value, error) {
	if len(rest) != 2 && len(rest) != 3 {
		return nil, newCompilerError(`"if" requires 2 or 3 arguments`)
	}
	cond, err := c.compileNode(env, rest[0])
	if err != nil {
		return nil, err
	}
	then, err := c.compileNode(env, rest[1])
	if err != nil {
		return nil, err
	}
	var elseExpr Value
	if len(rest) == 3 {
		elseExpr, err = c.compileNode(env, rest[2])
		if err != nil {
			return nil, err
		}
	}
	return &If{base: newBase(), Cond: cond, Then: then, Else: elseExpr}, nil
}

func (c *Compiler) compileAndOr(env *compileEnv, tagName string, rest []*jsonNode) (Value, error) {
	if len(rest) != 2 {
		return nil, newCompilerError(`"%s" requires exactly two arguments`, tagName)
	}
	l, err := c.compileNode(env, rest[0])
	if err != nil {
		return nil, err
	}
	r, err := c.compileNode(env, rest[1])
	if err != nil {
		return nil, err
	}
	if tagName == "and" {
		return &And{base: newBase(), L: l, R: r}, nil
	}
	return &Or{base: newBase(), L: l, R: r}, nil
}

// paramNames validates and extracts the names from a ["params", n...] list
// (§4.2.1), rejecting non-string names and duplicates (§4.2.1).
func paramNames(n *jsonNode) ([]string, error) {
	if n.Kind != jsonArray || len(n.Arr) == 0 || n.Arr[0].Kind != jsonString || n.Arr[0].Str != "params" {
		return nil, newCompilerError(`expected a ["params", ...] list`)
	}
	seen := make(map[string]bool, len(n.Arr)-1)
	names := make([]string, 0, len(n.Arr)-1)
	for _, e := range n.Arr[1:] {
		if e.Kind != jsonString {
			return nil, newCompilerError("parameter names must be strings")
		}
		if seen[e.Str] {
			return nil, newCompilerError("duplicate parameter name %q", e.Str)
		}
		seen[e.Str] = true
		names = append(names, e.Str)
	}
	return names, nil
}
