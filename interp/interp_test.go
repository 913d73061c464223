package interp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExecPrintsEachNonNilResultToStdout(t *testing.T) {
	var stdout bytes.Buffer
	in := New(Options{Stdout: &stdout})

	err := in.Exec([]byte("(+ 1 2)\n(define x 5)\n(* x x)"))
	assert.NoError(t, err)
	assert.Equal(t, "3\n25\n", stdout.String(), "define returns nil and must not print a line")
}

func TestExecHaltsAndPrintsToStderrOnError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := New(Options{Stdout: &stdout, Stderr: &stderr})

	err := in.Exec([]byte(`(+ 1 2)
(car 5)
(+ 100 100)`))

	if assert.Error(t, err) {
		tl, ok := err.(*ErrTopLevel)
		if assert.True(t, ok) {
			assert.True(t, tl.Obj.IsError())
		}
	}
	assert.Equal(t, "3\n", stdout.String(), "forms after the error must not run")
	assert.Contains(t, stderr.String(), "type error")
}

func TestExecSyntaxErrorHaltsBeforeEvaluatingAnything(t *testing.T) {
	var stdout, stderr bytes.Buffer
	in := New(Options{Stdout: &stdout, Stderr: &stderr})

	err := in.Exec([]byte("(+ 1 2"))
	assert.Error(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "syntax error")
}

func TestExecEmptySourceSucceeds(t *testing.T) {
	in := New(Options{})
	assert.NoError(t, in.Exec([]byte("")))
	assert.NoError(t, in.Exec([]byte("   ; just a comment\n")))
}

func TestNewResolvesOptionDefaults(t *testing.T) {
	in := New(Options{})
	assert.NotNil(t, in.opt.Stdout)
	assert.NotNil(t, in.opt.Stderr)
	assert.Equal(t, defaultGCGrowthFactor, in.Heap.growthFactor)
	assert.Equal(t, defaultGCMinAlloc, in.Heap.minAlloc)
}

func TestNewHonorsExplicitGCTuning(t *testing.T) {
	in := New(Options{GCGrowthFactor: 2.0, GCMinAlloc: 8})
	assert.Equal(t, 2.0, in.Heap.growthFactor)
	assert.Equal(t, 8, in.Heap.minAlloc)
}

func TestExecRunsGCBetweenForms(t *testing.T) {
	in := New(Options{GCMinAlloc: 1})
	noGC := New(Options{GCMinAlloc: 1 << 30})
	// Each (+ 1 1) allocates a fresh, immediately-unreachable Number;
	// with minAlloc this low, a collection between forms reclaims that
	// garbage, so the heap ends up smaller than one that never collects.
	// Both heaps also hold the installed primitives, which every
	// collection keeps.
	src := []byte("(+ 1 1)\n(+ 1 1)\n(+ 1 1)\n(+ 1 1)")
	err := in.Exec(src)
	assert.NoError(t, err)
	assert.NoError(t, noGC.Exec(src))
	assert.Less(t, in.Heap.Count(), noGC.Heap.Count())
}

func TestEvalStringReturnsNilOnEmptySource(t *testing.T) {
	in := New(Options{})
	assert.Nil(t, in.EvalString(""))
}

func TestEvalStringSurfacesSyntaxErrorAsObject(t *testing.T) {
	in := New(Options{})
	r := in.EvalString("(+ 1")
	assert.True(t, r.IsError())
	assert.Contains(t, r.Text(), "syntax error")
}
