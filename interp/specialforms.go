package interp

import "fmt"

// specialFormFn implements one special form: it receives the
// environment and the unevaluated argument list (the cdr of the
// calling form) and returns the form's result, per §4.5.1.
type specialFormFn func(h *Heap, env *Frame, args *Object) *Object

var specialForms map[string]specialFormFn

func init() {
	specialForms = map[string]specialFormFn{
		"quote":      sfQuote,
		"quasiquote": sfQuasiquote,
		"unquote":    sfUnquoteOutsideQuasiquote,
		"eval":       sfEval,
		"define":     sfDefine,
		"set":        sfSet,
		"let":        sfLet,
		"lambda":     sfLambda,
		"macro":      sfMacro,
		"do":         sfDo,
		"if":         sfIf,
	}
}

func sfQuote(h *Heap, env *Frame, args *Object) *Object {
	items := listSlice(args)
	if len(items) != 1 {
		return h.NewError(fmt.Sprintf("arity error: quote expects 1 argument, got %d", len(items)))
	}
	return items[0]
}

func sfQuasiquote(h *Heap, env *Frame, args *Object) *Object {
	items := listSlice(args)
	if len(items) != 1 {
		return h.NewError(fmt.Sprintf("arity error: quasiquote expects 1 argument, got %d", len(items)))
	}
	return quasiquoteCopy(h, env, items[0])
}

// quasiquoteCopy structurally copies template, substituting eval(env,
// e) wherever a (unquote e) list appears, per the algorithm in
// §4.5.1. The copy is required so the substitution never mutates the
// caller's source AST.
func quasiquoteCopy(h *Heap, env *Frame, template *Object) *Object {
	if !template.IsCons() {
		return template
	}
	if template.car.IsSymbol() && template.car.text == "unquote" {
		inner := listSlice(template.cdr)
		if len(inner) != 1 {
			return h.NewError("arity error: unquote expects 1 argument")
		}
		return Eval(h, env, inner[0])
	}
	car := quasiquoteCopy(h, env, template.car)
	if car.IsError() {
		return car
	}
	cdr := quasiquoteCopy(h, env, template.cdr)
	if cdr.IsError() {
		return cdr
	}
	return h.Cons(car, cdr)
}

// sfUnquoteOutsideQuasiquote handles `,e` encountered where it is not
// nested inside a quasiquote template. There unquote has no meaning of
// its own, so the form fails the way a call to any undefined function
// does: with a name error.
func sfUnquoteOutsideQuasiquote(h *Heap, env *Frame, args *Object) *Object {
	return h.NewError("name error: function 'unquote' is undefined")
}

func sfEval(h *Heap, env *Frame, args *Object) *Object {
	items := listSlice(args)
	if len(items) != 1 {
		return h.NewError(fmt.Sprintf("arity error: eval expects 1 argument, got %d", len(items)))
	}
	inner := Eval(h, env, items[0])
	if inner.IsError() {
		return inner
	}
	return Eval(h, env, inner)
}

func sfDefine(h *Heap, env *Frame, args *Object) *Object {
	items := listSlice(args)
	if len(items) != 2 || !items[0].IsSymbol() {
		return h.NewError("syntax error: define expects (define name val)")
	}
	val := Eval(h, env, items[1])
	if val.IsError() {
		return val
	}
	env.DefineAtRoot(items[0].text, val)
	return nil
}

// sfSet implements both (set name val) and the multi-pair form
// (set (n1 v1) (n2 v2) ...), per §4.5.1.
func sfSet(h *Heap, env *Frame, args *Object) *Object {
	items := listSlice(args)
	if len(items) == 0 {
		return h.NewError("syntax error: set expects at least one binding")
	}
	if items[0].IsSymbol() {
		if len(items) != 2 {
			return h.NewError("syntax error: set expects (set name val)")
		}
		val := Eval(h, env, items[1])
		if val.IsError() {
			return val
		}
		env.Set(items[0].text, val)
		return nil
	}
	for _, pair := range items {
		pairItems := listSlice(pair)
		if len(pairItems) != 2 || !pairItems[0].IsSymbol() {
			return h.NewError("syntax error: set pair must be (name val)")
		}
		val := Eval(h, env, pairItems[1])
		if val.IsError() {
			return val
		}
		env.Set(pairItems[0].text, val)
	}
	return nil
}

func sfLet(h *Heap, env *Frame, args *Object) *Object {
	items := listSlice(args)
	if len(items) < 1 {
		return h.NewError("syntax error: let expects (let (bindings...) body)")
	}
	bindings := listSlice(items[0])
	if len(bindings)%2 != 0 {
		return h.NewError("syntax error: let bindings must come in name/value pairs")
	}

	letFrame := NewFrame(env)
	for i := 0; i < len(bindings); i += 2 {
		name := bindings[i]
		if !name.IsSymbol() {
			return h.NewError("syntax error: let binding name must be a symbol")
		}
		// Each value is evaluated in the outer env, not the
		// in-progress let frame (§4.5.1).
		val := Eval(h, env, bindings[i+1])
		if val.IsError() {
			return val
		}
		letFrame.Put(name.text, val)
	}

	return evalBody(h, letFrame, items[1:])
}

func evalBody(h *Heap, env *Frame, body []*Object) *Object {
	var result *Object
	for _, e := range body {
		result = Eval(h, env, e)
		if result.IsError() {
			return result
		}
	}
	return result
}

func sfLambda(h *Heap, env *Frame, args *Object) *Object {
	params, restIndex, body, err := parseLambdaArgs(h, args)
	if err != nil {
		return err
	}
	return h.NewFunction(params, restIndex, body, env)
}

func sfMacro(h *Heap, env *Frame, args *Object) *Object {
	params, restIndex, body, err := parseLambdaArgs(h, args)
	if err != nil {
		return err
	}
	return h.NewMacro(params, restIndex, body, env)
}

// parseLambdaArgs parses the shared (params body) shape of lambda and
// macro, per §4.5.1: & among params marks the rest-arg position.
func parseLambdaArgs(h *Heap, args *Object) (params []string, restIndex int, body *Object, errObj *Object) {
	items := listSlice(args)
	if len(items) < 2 {
		return nil, -1, nil, h.NewError("syntax error: expects (params body)")
	}
	paramForms := listSlice(items[0])
	restIndex = -1
	for _, p := range paramForms {
		if !p.IsSymbol() {
			return nil, -1, nil, h.NewError("syntax error: parameter must be a symbol")
		}
		if p.text == "&" {
			restIndex = len(params)
			continue
		}
		params = append(params, p.text)
	}
	body = h.NewList(append([]*Object{h.NewSymbol("do")}, items[1:]...)...)
	return params, restIndex, body, nil
}

func sfDo(h *Heap, env *Frame, args *Object) *Object {
	return evalBody(h, env, listSlice(args))
}

func sfIf(h *Heap, env *Frame, args *Object) *Object {
	items := listSlice(args)
	if len(items) < 2 || len(items) > 3 {
		return h.NewError("syntax error: if expects (if cond then [else])")
	}
	cond := Eval(h, env, items[0])
	if cond.IsError() {
		return cond
	}
	if cond.Truthy() {
		return Eval(h, env, items[1])
	}
	if len(items) == 3 {
		return Eval(h, env, items[2])
	}
	return nil
}
