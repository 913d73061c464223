package interp

import (
	"io"
	"os"
)

// Heap owns the global doubly-linked allocation list and the
// bookkeeping the collector needs to decide when to run. Every
// constructor in this package allocates through a Heap so that sweep
// can find every live object.
//
// Heap also carries the output/error streams primitives like print
// and the top-level EXEC loop write to. The spec's design notes (§9,
// "Global heap handle") suggest modeling the collector's handle as a
// single object threaded explicitly through the evaluator rather than
// scattered process-wide state; since every primitive already
// receives the Heap, it is the natural place for that shared ambient
// state too, instead of adding a second handle type.
//
// The interpreter is single-threaded and non-suspending (§5 of the
// spec), so Heap carries no lock: nothing can observe it concurrently.
type Heap struct {
	head, tail *Object

	count           int // objects currently linked
	allocSinceSweep int
	liveAtLastSweep int

	// growthFactor and minAlloc configure the GC trigger policy of
	// §4.1: collect between top-level forms once allocSinceSweep
	// exceeds growthFactor*liveAtLastSweep, or minAlloc on a cold
	// start where liveAtLastSweep is still zero.
	growthFactor float64
	minAlloc     int

	Stdout io.Writer
	Stderr io.Writer
}

const (
	defaultGCGrowthFactor = 1.25
	defaultGCMinAlloc     = 64
)

// NewHeap returns an empty heap with default GC trigger tuning and
// output streams attached to the process's stdout/stderr.
func NewHeap() *Heap {
	return &Heap{
		growthFactor: defaultGCGrowthFactor,
		minAlloc:     defaultGCMinAlloc,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}
}

func (h *Heap) link(o *Object) {
	o.prev, o.next = h.tail, nil
	if h.tail != nil {
		h.tail.next = o
	} else {
		h.head = o
	}
	h.tail = o
	h.count++
	h.allocSinceSweep++
}

// unlink removes o from the allocation list. The caller must save
// o.next before calling this if it is mid-traversal: unlink clears
// o.prev/o.next as part of detaching the node.
func (h *Heap) unlink(o *Object) {
	prev, next := o.prev, o.next
	if prev != nil {
		prev.next = next
	} else {
		h.head = next
	}
	if next != nil {
		next.prev = prev
	} else {
		h.tail = prev
	}
	o.prev, o.next = nil, nil
	h.count--
}

// Count returns the number of objects currently linked into the heap.
func (h *Heap) Count() int { return h.count }

func (h *Heap) alloc(k kind) *Object {
	o := &Object{kind: k}
	h.link(o)
	return o
}

// NewNumber allocates a Number object.
func (h *Heap) NewNumber(n int64) *Object {
	o := h.alloc(kindNumber)
	o.number = n
	return o
}

// NewBool allocates a Bool object.
func (h *Heap) NewBool(b bool) *Object {
	o := h.alloc(kindBool)
	if b {
		o.number = 1
	}
	return o
}

// NewSymbol allocates a Symbol object.
func (h *Heap) NewSymbol(name string) *Object {
	o := h.alloc(kindSymbol)
	o.text = name
	return o
}

// NewString allocates a String object.
func (h *Heap) NewString(s string) *Object {
	o := h.alloc(kindString)
	o.text = s
	return o
}

// NewError allocates an Error object carrying a human-readable message.
func (h *Heap) NewError(msg string) *Object {
	o := h.alloc(kindError)
	o.text = msg
	return o
}

// Cons allocates an ordered pair. car or cdr may be nil.
func (h *Heap) Cons(car, cdr *Object) *Object {
	o := h.alloc(kindCons)
	o.car, o.cdr = car, cdr
	return o
}

// NewList allocates a proper list from items, right to left.
func (h *Heap) NewList(items ...*Object) *Object {
	var tail *Object
	for i := len(items) - 1; i >= 0; i-- {
		tail = h.Cons(items[i], tail)
	}
	return tail
}

// NewFunction allocates a user-defined Function closing over env.
func (h *Heap) NewFunction(params []string, restIndex int, body *Object, env *Frame) *Object {
	o := h.alloc(kindFunction)
	o.fn = &function{params: params, restIndex: restIndex, body: body, env: env}
	return o
}

// NewMacro allocates a user-defined Macro; same shape as Function,
// distinguished by kind so the evaluator skips argument evaluation.
func (h *Heap) NewMacro(params []string, restIndex int, body *Object, env *Frame) *Object {
	o := h.alloc(kindMacro)
	o.fn = &function{params: params, restIndex: restIndex, body: body, env: env}
	return o
}

// NewBuiltin allocates a native Function callable from Lisp.
func (h *Heap) NewBuiltin(name string, fn Builtin) *Object {
	o := h.alloc(kindFunction)
	o.fn = &function{name: name, builtin: fn, restIndex: -1}
	return o
}

// NewBuiltinMacro allocates a native Macro: like NewBuiltin, but
// tagged so the evaluator passes it unevaluated argument forms and
// re-evaluates whatever it returns (§4.5.2 step 7). Used by host
// code — such as the deftest convention in cmd/golept — that wants to
// rewrite syntax without hand-rolling a special form.
func (h *Heap) NewBuiltinMacro(name string, fn Builtin) *Object {
	o := h.alloc(kindMacro)
	o.fn = &function{name: name, builtin: fn, restIndex: -1}
	return o
}

// ShouldCollect reports whether allocation since the last sweep has
// crossed the growth threshold, per §4.1.
func (h *Heap) ShouldCollect() bool {
	if h.liveAtLastSweep == 0 {
		return h.allocSinceSweep > h.minAlloc
	}
	return float64(h.allocSinceSweep) > h.growthFactor*float64(h.liveAtLastSweep)
}
