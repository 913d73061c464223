package interp

// ExpandOnce performs exactly one macro-call step of the head of form
// and returns the resulting expression without evaluating it (§4.6).
// If form's head does not evaluate to a Macro, form is returned
// unchanged.
func ExpandOnce(h *Heap, env *Frame, form *Object) *Object {
	if !form.IsCons() {
		return form
	}
	head := form.car
	callee := Eval(h, env, head)
	if callee.IsError() {
		return callee
	}
	if !callee.IsMacro() {
		return form
	}
	return expandMacroCall(h, env, callee, head, form.cdr)
}

// expandMacroCall runs one macro invocation but, unlike apply, stops
// after producing the expansion instead of re-evaluating it — the
// distinction §4.6 requires between expansion and evaluation.
func expandMacroCall(h *Heap, callerEnv *Frame, callee *Object, head *Object, argList *Object) *Object {
	argForms := listSlice(argList)
	fn := callee.fn

	if fn.builtin != nil {
		return fn.builtin(h, callerEnv, argForms)
	}

	args := make([]*Object, len(argForms))
	copy(args, argForms)

	if fn.restIndex < 0 && len(args) != len(fn.params) {
		return h.NewError("arity error: macro argument count mismatch")
	}
	args = bindRestArg(h, fn, args)

	callFrame := NewFrame(fn.env)
	for i, name := range fn.params {
		callFrame.Put(name, args[i])
	}
	return Eval(h, callFrame, fn.body)
}

// Expand repeatedly applies ExpandOnce while the head of the result
// still names a Macro, returning the fixed point (§4.6). A macro body
// that itself never terminates would loop here forever; this mirrors
// the spec's assumption of terminating macro bodies (§8, invariant 5).
func Expand(h *Heap, env *Frame, form *Object) *Object {
	cur := form
	for {
		if !cur.IsCons() {
			return cur
		}
		callee := Eval(h, env, cur.car)
		if callee.IsError() {
			return callee
		}
		if !callee.IsMacro() {
			return cur
		}
		next := expandMacroCall(h, env, callee, cur.car, cur.cdr)
		if next.IsError() {
			return next
		}
		cur = next
	}
}
