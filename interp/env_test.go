package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameGetWalksParents(t *testing.T) {
	h := NewHeap()
	root := NewFrame(nil)
	root.Put("x", h.NewNumber(1))
	child := NewFrame(root)

	v, ok := child.Get("x")
	assert.True(t, ok)
	assert.Equal(t, int64(1), v.Number())

	_, ok = child.Get("nope")
	assert.False(t, ok)
}

func TestFrameShadowing(t *testing.T) {
	h := NewHeap()
	root := NewFrame(nil)
	root.Put("x", h.NewNumber(1))
	child := NewFrame(root)
	child.Put("x", h.NewNumber(2))

	v, _ := child.Get("x")
	assert.Equal(t, int64(2), v.Number())
	v, _ = root.Get("x")
	assert.Equal(t, int64(1), v.Number(), "shadowing in a child frame must not mutate the parent")
}

func TestDefineAtRootWritesRootRegardlessOfDepth(t *testing.T) {
	h := NewHeap()
	root := NewFrame(nil)
	l1 := NewFrame(root)
	l2 := NewFrame(l1)

	l2.DefineAtRoot("g", h.NewNumber(42))

	v, ok := root.Get("g")
	assert.True(t, ok)
	assert.Equal(t, int64(42), v.Number())

	_, ok = l1.table.get("g")
	assert.False(t, ok, "define must not also bind in intermediate frames")
}

func TestSetWritesNearestEnclosingFrame(t *testing.T) {
	h := NewHeap()
	root := NewFrame(nil)
	root.Put("x", h.NewNumber(1))
	child := NewFrame(root)

	child.Set("x", h.NewNumber(99))

	v, _ := root.Get("x")
	assert.Equal(t, int64(99), v.Number(), "set must write through to the frame that defines the name")
	_, ok := child.table.get("x")
	assert.False(t, ok, "set must not shadow in the current frame when an enclosing frame already defines the name")
}

func TestSetBindsInCurrentFrameWhenUndefined(t *testing.T) {
	h := NewHeap()
	root := NewFrame(nil)
	child := NewFrame(root)

	child.Set("y", h.NewNumber(7))

	v, ok := child.Get("y")
	assert.True(t, ok)
	assert.Equal(t, int64(7), v.Number())
	_, ok = root.Get("y")
	assert.False(t, ok)
}

// TestLambdaCapturesDefiningFrameNotCallerFrame guards scenario 5 of
// §8 and the "closure capture vs. dynamic scope" design note in §9: a
// closure must resolve free variables against the frame active at its
// construction, not the frame of whoever calls it.
func TestLambdaCapturesDefiningFrameNotCallerFrame(t *testing.T) {
	in := New(Options{})
	in.EvalString("(define make-adder (lambda (n) (lambda (x) (+ x n))))")
	add10 := in.EvalString("(make-adder 10)")
	assert.True(t, add10.IsFunction())

	in.Global.Put("add10", add10)
	result := in.EvalString("(add10 5)")
	assert.False(t, result.IsError(), result.String())
	assert.Equal(t, int64(15), result.Number())
}
