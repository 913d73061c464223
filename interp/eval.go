package interp

import "fmt"

// maxArgs bounds the number of positional arguments a call may pass,
// per §4.5.2 ("at least 64").
const maxArgs = 128

// Eval evaluates obj in env, dispatching on its kind per §4.5.
func Eval(h *Heap, env *Frame, obj *Object) *Object {
	if obj == nil {
		return nil
	}
	switch obj.kind {
	case kindNumber, kindString, kindBool, kindError, kindFunction, kindMacro:
		return obj
	case kindSymbol:
		return evalSymbol(h, env, obj)
	case kindCons:
		return evalCons(h, env, obj)
	default:
		return h.NewError(fmt.Sprintf("internal error: unhandled kind %s", obj.kind))
	}
}

func isKeyword(name string) bool {
	return len(name) > 0 && name[0] == ':'
}

func evalSymbol(h *Heap, env *Frame, sym *Object) *Object {
	if isKeyword(sym.text) {
		return sym
	}
	if v, ok := env.Get(sym.text); ok {
		return v
	}
	// An unbound symbol evaluates to nil; only *invoking* nil as a
	// function is an error (§4.5.2 step 1).
	return nil
}

func evalCons(h *Heap, env *Frame, form *Object) *Object {
	head := form.car
	if head.IsSymbol() && !isKeyword(head.text) {
		if sf, ok := specialForms[head.text]; ok {
			return sf(h, env, form.cdr)
		}
	}
	callee := Eval(h, env, head)
	if callee.IsError() {
		return callee
	}
	return apply(h, env, callee, head, form.cdr)
}

// listSlice collects the elements of a proper list into a slice.
// Traversal stops at the first non-Cons cdr, matching the "list
// consuming primitives terminate at the first non-Cons cdr" rule of
// §3.
func listSlice(list *Object) []*Object {
	var out []*Object
	for cur := list; cur.IsCons(); cur = cur.cdr {
		out = append(out, cur.car)
	}
	return out
}

// apply implements §4.5.2's function/macro invocation protocol from an
// unevaluated call site: head is the unevaluated head form (used only
// for error messages) and argList is the unevaluated cdr of the call.
func apply(h *Heap, callerEnv *Frame, callee *Object, head *Object, argList *Object) *Object {
	if callee == nil {
		return h.NewError(fmt.Sprintf("name error: function '%s' is undefined", sprintHead(head)))
	}
	if !callee.IsCallable() {
		return h.NewError(fmt.Sprintf("type error: '%s' is not callable", sprintHead(head)))
	}

	argForms := listSlice(argList)
	if len(argForms) > maxArgs {
		return h.NewError(fmt.Sprintf("arity error: too many arguments (max %d)", maxArgs))
	}

	args := make([]*Object, len(argForms))
	if callee.kind == kindFunction {
		for i, a := range argForms {
			v := Eval(h, callerEnv, a)
			if v.IsError() {
				return v
			}
			args[i] = v
		}
	} else {
		// Macro: arguments are collected unevaluated (§4.6).
		copy(args, argForms)
	}

	return invoke(h, callerEnv, callee, args)
}

// invoke calls callee with args that are already in their final
// form — already evaluated for a Function, already unevaluated syntax
// for a Macro. It is the shared tail of apply (call-site evaluation)
// and the apply primitive (args already resolved by its own caller),
// so that re-evaluating an argument value that happens to be a Symbol
// or Cons data (as opposed to code) never happens twice.
func invoke(h *Heap, callerEnv *Frame, callee *Object, args []*Object) *Object {
	fn := callee.fn

	if fn.builtin != nil {
		result := fn.builtin(h, callerEnv, args)
		if callee.kind == kindMacro {
			return Eval(h, callerEnv, result)
		}
		return result
	}

	if fn.restIndex < 0 && len(args) != len(fn.params) {
		return h.NewError(fmt.Sprintf("arity error: %s expects %d argument(s), got %d", funcLabel(fn), len(fn.params), len(args)))
	}
	if fn.restIndex >= 0 && len(args) < fn.restIndex {
		return h.NewError(fmt.Sprintf("arity error: %s expects at least %d argument(s), got %d", funcLabel(fn), fn.restIndex, len(args)))
	}
	args = bindRestArg(h, fn, args)

	callFrame := NewFrame(fn.env)
	for i, name := range fn.params {
		callFrame.Put(name, args[i])
	}

	result := Eval(h, callFrame, fn.body)
	if callee.kind == kindMacro {
		// The macro's expansion is evaluated in the *caller's* frame,
		// not the macro's own call frame (§4.5.2 step 7).
		return Eval(h, callerEnv, result)
	}
	return result
}

// bindRestArg gathers trailing arguments into a single list when fn
// declares a rest-arg position, per §4.5.2 step 3.
func bindRestArg(h *Heap, fn *function, args []*Object) []*Object {
	if fn.restIndex < 0 {
		return args
	}
	r := fn.restIndex
	var rest []*Object
	if r < len(args) {
		rest = args[r:]
	}
	out := make([]*Object, len(fn.params))
	cut := r
	if len(args) < cut {
		cut = len(args)
	}
	copy(out, args[:cut])
	out[r] = h.NewList(rest...)
	return out
}

func sprintHead(head *Object) string {
	if head.IsSymbol() {
		return head.text
	}
	return head.String()
}
