package interp

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
)

// Options configures an Interpreter. Fields default to sane values
// inside New the way breadchris/yaegi's interp.New resolves Options
// zero values against os.Stdin/os.Stdout/os.Stderr — a struct of
// options passed once, not a chain of functional-option calls.
type Options struct {
	// Stdout and Stderr are the output and error channels EXEC prints
	// to (§6). They default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	// GCGrowthFactor and GCMinAlloc tune the collection trigger of
	// §4.1. Zero values fall back to the spec's suggested 1.25x
	// growth schedule and a small cold-start threshold.
	GCGrowthFactor float64
	GCMinAlloc     int
}

// Interpreter bundles a Heap and its global Frame, plus resolved
// options, into the one handle host code needs to run source through
// EXEC. Construct one with New.
type Interpreter struct {
	opt Options

	Heap   *Heap
	Global *Frame

	gcTrace bool
}

// New returns a ready-to-use Interpreter with primitives installed in
// its global frame.
func New(options Options) *Interpreter {
	in := &Interpreter{opt: options}

	if in.opt.Stdout == nil {
		in.opt.Stdout = os.Stdout
	}
	if in.opt.Stderr == nil {
		in.opt.Stderr = os.Stderr
	}
	if in.opt.GCGrowthFactor <= 0 {
		in.opt.GCGrowthFactor = defaultGCGrowthFactor
	}
	if in.opt.GCMinAlloc <= 0 {
		in.opt.GCMinAlloc = defaultGCMinAlloc
	}

	in.Heap = NewHeap()
	in.Heap.Stdout = in.opt.Stdout
	in.Heap.Stderr = in.opt.Stderr
	in.Heap.growthFactor = in.opt.GCGrowthFactor
	in.Heap.minAlloc = in.opt.GCMinAlloc

	in.Global = NewFrame(nil)
	InstallPrimitives(in.Heap, in.Global)

	// gcTrace gates one log.Printf per collection, the way yaegi gates
	// its *_DOT/noRun/fastChan debug knobs behind os.Getenv.
	in.gcTrace, _ = strconv.ParseBool(os.Getenv("GOLEPT_GC_TRACE"))

	return in
}

// ErrTopLevel wraps a Lisp Error value surfaced to Go code at the
// Exec boundary, so CLI callers can distinguish "evaluation
// produced an Error" from a Go-level failure without inspecting
// strings.
type ErrTopLevel struct {
	Obj *Object
}

func (e *ErrTopLevel) Error() string { return e.Obj.String() }

// Exec evaluates every top-level form in source in order (§6). Non-nil
// results are printed to Stdout; an Error halts processing of the
// remainder of source and is printed to Stderr and returned as
// *ErrTopLevel. Between forms, Exec runs a GC cycle whenever the
// heap's growth threshold has been crossed (§4.1), never mid-evaluation
// of a single form.
func (in *Interpreter) Exec(source []byte) error {
	r := NewReader(in.Heap, source)
	for {
		form, eof := r.Read()
		if eof {
			return nil
		}
		if form.IsError() {
			fmt.Fprintln(in.opt.Stderr, form.String())
			return &ErrTopLevel{Obj: form}
		}

		result := Eval(in.Heap, in.Global, form)
		if result.IsError() {
			fmt.Fprintln(in.opt.Stderr, result.String())
			return &ErrTopLevel{Obj: result}
		}
		if result != nil {
			fmt.Fprintln(in.opt.Stdout, result.String())
		}

		in.maybeCollect()
	}
}

func (in *Interpreter) maybeCollect() {
	if !in.Heap.ShouldCollect() {
		return
	}
	before := in.Heap.Count()
	in.Heap.Collect(in.Global)
	if in.gcTrace {
		log.Printf("gc: collected %d objects, %d live", before-in.Heap.Count(), in.Heap.Count())
	}
}

// EvalString reads and evaluates a single form from source, returning
// its value directly without going through EXEC's print/GC loop. This
// is the primitive most tests build on, mirroring yaegi's own
// `i.Eval(src)` shape from generic_test.go.
func (in *Interpreter) EvalString(source string) *Object {
	r := NewReader(in.Heap, []byte(source))
	form, eof := r.Read()
	if eof {
		return nil
	}
	if form.IsError() {
		return form
	}
	return Eval(in.Heap, in.Global, form)
}
