package interp

import (
	"fmt"
	"os"
)

// InstallPrimitives binds every built-in named in §2's Primitives row
// into root, which must be a root (global) frame. Called once by New
// when an Interpreter is constructed.
func InstallPrimitives(h *Heap, root *Frame) {
	reg := func(name string, fn Builtin) {
		root.Put(name, h.NewBuiltin(name, fn))
	}

	reg("cons", biCons)
	reg("car", biCar)
	reg("cdr", biCdr)
	reg("setcar", biSetcar)
	reg("setcdr", biSetcdr)
	reg("list", biList)
	reg("append", biAppend)
	reg("length", biLength)
	reg("null?", biNullP)
	reg("atom?", biAtomP)
	reg("pair?", biPairP)
	reg("not", biNot)
	reg("eq?", biEqP)
	reg("apply", biApply)
	reg("print", biPrint)
	reg("error", biError)
	reg("import", biImport)
	reg("expand-1", biExpand1)
	reg("expand", biExpand)

	reg("+", biAdd)
	reg("-", biSub)
	reg("*", biMul)
	reg("/", biDiv)
	reg("mod", biMod)
	reg("=", biNumEq)
	reg("<", biLt)
	reg(">", biGt)
	reg("<=", biLe)
	reg(">=", biGe)
}

func typeErr(h *Heap, prim string, got *Object) *Object {
	kindName := "nil"
	if got != nil {
		kindName = got.kind.String()
	}
	return newTaggedError(h, errKindType, "%s received a %s argument", prim, kindName)
}

func arityErr(h *Heap, prim string, want, got int) *Object {
	return newTaggedError(h, errKindArity, "%s expects %d argument(s), got %d", prim, want, got)
}

func requireArity(h *Heap, prim string, args []*Object, n int) *Object {
	if len(args) != n {
		return arityErr(h, prim, n, len(args))
	}
	return nil
}

func biCons(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "cons", args, 2); e != nil {
		return e
	}
	return h.Cons(args[0], args[1])
}

func biCar(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "car", args, 1); e != nil {
		return e
	}
	if !args[0].IsCons() {
		return typeErr(h, "car", args[0])
	}
	return args[0].car
}

func biCdr(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "cdr", args, 1); e != nil {
		return e
	}
	if !args[0].IsCons() {
		return typeErr(h, "cdr", args[0])
	}
	return args[0].cdr
}

func biSetcar(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "setcar", args, 2); e != nil {
		return e
	}
	if !args[0].IsCons() {
		return typeErr(h, "setcar", args[0])
	}
	args[0].SetCar(args[1])
	return nil
}

func biSetcdr(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "setcdr", args, 2); e != nil {
		return e
	}
	if !args[0].IsCons() {
		return typeErr(h, "setcdr", args[0])
	}
	args[0].SetCdr(args[1])
	return nil
}

func biList(h *Heap, frame *Frame, args []*Object) *Object {
	return h.NewList(args...)
}

func biAppend(h *Heap, frame *Frame, args []*Object) *Object {
	var items []*Object
	for _, a := range args {
		if a == nil {
			continue
		}
		if !a.IsCons() {
			return typeErr(h, "append", a)
		}
		items = append(items, listSlice(a)...)
	}
	return h.NewList(items...)
}

func biLength(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "length", args, 1); e != nil {
		return e
	}
	if args[0] != nil && !args[0].IsCons() {
		return typeErr(h, "length", args[0])
	}
	return h.NewNumber(int64(len(listSlice(args[0]))))
}

func biNullP(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "null?", args, 1); e != nil {
		return e
	}
	return h.NewBool(args[0] == nil)
}

func biAtomP(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "atom?", args, 1); e != nil {
		return e
	}
	return h.NewBool(!args[0].IsCons())
}

func biPairP(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "pair?", args, 1); e != nil {
		return e
	}
	return h.NewBool(args[0].IsCons())
}

func biNot(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "not", args, 1); e != nil {
		return e
	}
	return h.NewBool(!args[0].Truthy())
}

func biEqP(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "eq?", args, 2); e != nil {
		return e
	}
	return h.NewBool(objectsEqual(args[0], args[1]))
}

func objectsEqual(a, b *Object) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case kindNumber, kindBool:
		return a.number == b.number
	case kindSymbol, kindString, kindError:
		return a.text == b.text
	default:
		return false
	}
}

// biApply implements (apply fn args-list), and the variadic form
// (apply fn a b ...-list) where the final argument is a list that is
// spliced into the call.
func biApply(h *Heap, frame *Frame, args []*Object) *Object {
	if len(args) < 2 {
		return arityErr(h, "apply", 2, len(args))
	}
	callee := args[0]
	if !callee.IsCallable() {
		return typeErr(h, "apply", callee)
	}
	last := args[len(args)-1]
	if last != nil && !last.IsCons() {
		return typeErr(h, "apply", last)
	}
	fixed := args[1 : len(args)-1]
	spread := listSlice(last)
	allArgs := append(append([]*Object{}, fixed...), spread...)
	if len(allArgs) > maxArgs {
		return arityErr(h, "apply", maxArgs, len(allArgs))
	}
	return invoke(h, frame, callee, allArgs)
}

func biPrint(h *Heap, frame *Frame, args []*Object) *Object {
	strs := make([]interface{}, len(args))
	for i, a := range args {
		strs[i] = a.String()
	}
	fmt.Fprintln(h.Stdout, strs...)
	return nil
}

func biError(h *Heap, frame *Frame, args []*Object) *Object {
	if len(args) == 0 {
		return newTaggedError(h, errKindUser, "error")
	}
	return newTaggedError(h, errKindUser, "%s", args[0].String())
}

// biImport reads a file path literally relative to the process CWD,
// tokenizes and evaluates its forms into the caller's frame — sharing
// state like a nested EXEC pass rather than a namespaced module load,
// per SPEC_FULL.md's §3 supplement grounded in the C original.
func biImport(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "import", args, 1); e != nil {
		return e
	}
	if !args[0].IsString() {
		return typeErr(h, "import", args[0])
	}
	path := args[0].text
	data, err := os.ReadFile(path)
	if err != nil {
		return wrapIOError(h, "import", path, err)
	}
	r := NewReader(h, data)
	var last *Object
	for {
		form, eof := r.Read()
		if eof {
			break
		}
		if form.IsError() {
			return form
		}
		last = Eval(h, frame, form)
		if last.IsError() {
			return last
		}
	}
	return last
}

func biExpand1(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "expand-1", args, 1); e != nil {
		return e
	}
	return ExpandOnce(h, frame, args[0])
}

func biExpand(h *Heap, frame *Frame, args []*Object) *Object {
	if e := requireArity(h, "expand", args, 1); e != nil {
		return e
	}
	return Expand(h, frame, args[0])
}

func numericArgs(h *Heap, prim string, args []*Object) ([]int64, *Object) {
	out := make([]int64, len(args))
	for i, a := range args {
		if !a.IsNumber() {
			return nil, typeErr(h, prim, a)
		}
		out[i] = a.number
	}
	return out, nil
}

func biAdd(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, "+", args)
	if e != nil {
		return e
	}
	var sum int64
	for _, n := range nums {
		sum += n
	}
	return h.NewNumber(sum)
}

func biSub(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, "-", args)
	if e != nil {
		return e
	}
	if len(nums) == 0 {
		return arityErr(h, "-", 1, 0)
	}
	if len(nums) == 1 {
		return h.NewNumber(-nums[0])
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}
	return h.NewNumber(result)
}

func biMul(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, "*", args)
	if e != nil {
		return e
	}
	result := int64(1)
	for _, n := range nums {
		result *= n
	}
	return h.NewNumber(result)
}

func biDiv(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, "/", args)
	if e != nil {
		return e
	}
	if len(nums) < 1 {
		return arityErr(h, "/", 1, len(nums))
	}
	if len(nums) == 1 {
		nums = []int64{1, nums[0]}
	}
	result := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return newTaggedError(h, errKindUser, "division by zero")
		}
		result /= n
	}
	return h.NewNumber(result)
}

func biMod(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, "mod", args)
	if e != nil {
		return e
	}
	if len(nums) != 2 {
		return arityErr(h, "mod", 2, len(nums))
	}
	if nums[1] == 0 {
		return newTaggedError(h, errKindUser, "division by zero")
	}
	return h.NewNumber(nums[0] % nums[1])
}

func biNumEq(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, "=", args)
	if e != nil {
		return e
	}
	return h.NewBool(allPairs(nums, func(a, b int64) bool { return a == b }))
}

func biLt(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, "<", args)
	if e != nil {
		return e
	}
	return h.NewBool(allPairs(nums, func(a, b int64) bool { return a < b }))
}

func biGt(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, ">", args)
	if e != nil {
		return e
	}
	return h.NewBool(allPairs(nums, func(a, b int64) bool { return a > b }))
}

func biLe(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, "<=", args)
	if e != nil {
		return e
	}
	return h.NewBool(allPairs(nums, func(a, b int64) bool { return a <= b }))
}

func biGe(h *Heap, frame *Frame, args []*Object) *Object {
	nums, e := numericArgs(h, ">=", args)
	if e != nil {
		return e
	}
	return h.NewBool(allPairs(nums, func(a, b int64) bool { return a >= b }))
}

func allPairs(nums []int64, cmp func(a, b int64) bool) bool {
	for i := 1; i < len(nums); i++ {
		if !cmp(nums[i-1], nums[i]) {
			return false
		}
	}
	return true
}
