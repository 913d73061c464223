package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSweepReclaimsUnreachableObjects(t *testing.T) {
	h := NewHeap()
	root := NewFrame(nil)

	kept := h.NewNumber(1)
	root.Put("kept", kept)

	// Allocated but never bound anywhere: garbage as soon as it's swept.
	h.NewNumber(2)
	h.NewNumber(3)

	before := h.Count()
	assert.Equal(t, 3, before)

	h.Collect(root)

	assert.Equal(t, 1, h.Count())
	assert.Equal(t, 1, h.liveAtLastSweep)
	assert.False(t, kept.mark, "sweep must clear the mark bit of survivors")
}

func TestClosureCaptureKeepsEnvAlive(t *testing.T) {
	in := New(Options{})
	in.EvalString("(define make-adder (lambda (n) (lambda (x) (+ x n))))")
	adder := in.EvalString("(make-adder 10)")
	in.Global.Put("adder", adder)

	in.Heap.Collect(in.Global)

	// The captured n=10 must have survived collection even though
	// nothing but adder's closure env references it.
	r := in.EvalString("(adder 5)")
	assert.False(t, r.IsError(), r.String())
	assert.Equal(t, int64(15), r.Number())
}

// TestRecursiveClosureFrameCycleDoesNotHangMark guards markFrame's
// visited-set against a closure that captures the very frame it is
// itself bound in: f's closure env is the global frame, and f is bound
// in that same global frame.
func TestRecursiveClosureFrameCycleDoesNotHangMark(t *testing.T) {
	in := New(Options{})
	in.EvalString("(define f (lambda (n) (if (= n 0) 0 (f (- n 1)))))")

	in.Heap.Collect(in.Global)

	r := in.EvalString("(f 5)")
	assert.Equal(t, int64(0), r.Number())
}

func TestCyclicConsViaSetcdrDoesNotHangMark(t *testing.T) {
	h := NewHeap()
	root := NewFrame(nil)

	a := h.Cons(h.NewNumber(1), nil)
	a.SetCdr(a)
	root.Put("cycle", a)

	assert.NotPanics(t, func() {
		h.Collect(root)
	})
	assert.Equal(t, 2, h.Count(), "the cons cell and its car must both survive")
}

func TestShouldCollectColdStart(t *testing.T) {
	h := NewHeap()
	h.minAlloc = 4
	assert.False(t, h.ShouldCollect())
	for i := 0; i < 5; i++ {
		h.NewNumber(int64(i))
	}
	assert.True(t, h.ShouldCollect())
}

func TestShouldCollectGrowthFactor(t *testing.T) {
	h := NewHeap()
	h.growthFactor = 1.25
	h.liveAtLastSweep = 10
	h.allocSinceSweep = 12
	assert.False(t, h.ShouldCollect())
	h.allocSinceSweep = 13
	assert.True(t, h.ShouldCollect())
}

func TestCollectResetsBookkeeping(t *testing.T) {
	h := NewHeap()
	root := NewFrame(nil)
	h.NewNumber(1)
	h.NewNumber(2)
	h.Collect(root)
	assert.Equal(t, 0, h.allocSinceSweep)
	assert.Equal(t, 0, h.liveAtLastSweep)
}
