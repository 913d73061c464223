package interp

import "fmt"

// kind tags the single live variant of an Object. Exactly one of the
// payload fields below is meaningful per kind; it must be read through
// this tag.
type kind uint8

const (
	kindNumber kind = iota
	kindSymbol
	kindString
	kindBool
	kindError
	kindCons
	kindFunction
	kindMacro
)

func (k kind) String() string {
	switch k {
	case kindNumber:
		return "number"
	case kindSymbol:
		return "symbol"
	case kindString:
		return "string"
	case kindBool:
		return "bool"
	case kindError:
		return "error"
	case kindCons:
		return "cons"
	case kindFunction:
		return "function"
	case kindMacro:
		return "macro"
	default:
		return "unknown"
	}
}

// Object is a heap-allocated, tagged Lisp value. The empty list is
// represented as a nil *Object, never as a zero-value Cons — callers
// must not construct an Object by hand outside the heap constructors,
// since that would bypass allocation-list bookkeeping the collector
// depends on.
type Object struct {
	kind kind
	mark bool

	// allocation-list links, valid only while the object is owned by a Heap.
	prev, next *Object

	number int64  // kindNumber, kindBool (0/1)
	text   string // kindSymbol, kindString, kindError

	car, cdr *Object // kindCons

	fn *function // kindFunction, kindMacro
}

// function is the shared payload of Function and Macro objects: either
// a native builtin or a user-defined closure over params/body/env.
type function struct {
	name      string    // best-effort, for printing and error messages
	builtin   Builtin   // non-nil for a native callable
	params    []string  // user-defined: parameter names in declaration order
	restIndex int       // index of the rest-arg param, or -1 if none
	body      *Object   // user-defined: the body expression
	env       *Frame    // captured lexical frame
}

// Builtin is a native callable. It receives the caller's frame (for
// built-ins there is no closure environment to bind arguments into)
// and the already-resolved argument vector.
type Builtin func(h *Heap, frame *Frame, args []*Object) *Object

// IsNil reports whether o represents the empty list / absent value.
func (o *Object) IsNil() bool { return o == nil }

// Kind accessors below are intentionally narrow: they name what the
// caller is asking for rather than exposing the tag directly.

func (o *Object) IsNumber() bool   { return o != nil && o.kind == kindNumber }
func (o *Object) IsSymbol() bool   { return o != nil && o.kind == kindSymbol }
func (o *Object) IsString() bool   { return o != nil && o.kind == kindString }
func (o *Object) IsBool() bool     { return o != nil && o.kind == kindBool }
func (o *Object) IsError() bool    { return o != nil && o.kind == kindError }
func (o *Object) IsCons() bool     { return o != nil && o.kind == kindCons }
func (o *Object) IsFunction() bool { return o != nil && o.kind == kindFunction }
func (o *Object) IsMacro() bool    { return o != nil && o.kind == kindMacro }

// IsCallable reports whether o can appear as the head of an apply.
func (o *Object) IsCallable() bool { return o.IsFunction() || o.IsMacro() }

// Number returns the machine integer payload; callers must check
// IsNumber first.
func (o *Object) Number() int64 { return o.number }

// Bool returns the boolean payload; callers must check IsBool first.
func (o *Object) Bool() bool { return o.number != 0 }

// Text returns the raw bytes of a Symbol, String, or Error; callers
// must check the corresponding Is* predicate first.
func (o *Object) Text() string { return o.text }

// Car and Cdr access a Cons pair. Both return nil (not a panic) when o
// is nil, so traversal of a possibly-improper or possibly-nil chain
// does not require a guard at every step — callers that need to
// distinguish "nil because o was nil" from "nil cdr of a real cons"
// should check IsCons first.
func (o *Object) Car() *Object {
	if o == nil {
		return nil
	}
	return o.car
}

func (o *Object) Cdr() *Object {
	if o == nil {
		return nil
	}
	return o.cdr
}

// SetCar and SetCdr mutate a Cons cell in place. Used by the setcar
// and setcdr primitives; this is the one place the object graph can
// become cyclic (see gc.go's mark-cycle handling).
func (o *Object) SetCar(v *Object) { o.car = v }
func (o *Object) SetCdr(v *Object) { o.cdr = v }

// Truthy implements the truthiness rule from §4.5.1: nil, false, the
// number 0, and Error are falsy; everything else is truthy.
func (o *Object) Truthy() bool {
	switch {
	case o == nil:
		return false
	case o.kind == kindBool:
		return o.number != 0
	case o.kind == kindNumber:
		return o.number != 0
	case o.kind == kindError:
		return false
	default:
		return true
	}
}

// destroy releases resources owned directly by o. Cons, Function, and
// Macro payloads hold only Object/Frame references and are reclaimed
// transitively by the collector walking the allocation list, so there
// is nothing extra to release for them here.
func (o *Object) destroy() {
	o.text = ""
	o.car, o.cdr = nil, nil
	o.fn = nil
}

func (o *Object) String() string {
	return sprintObject(o, make(map[*Object]bool))
}

func sprintObject(o *Object, seen map[*Object]bool) string {
	if o == nil {
		return "nil"
	}
	switch o.kind {
	case kindNumber:
		return fmt.Sprintf("%d", o.number)
	case kindSymbol, kindString:
		return o.text
	case kindBool:
		if o.number != 0 {
			return "true"
		}
		return "false"
	case kindError:
		return "error: " + o.text
	case kindCons:
		return sprintCons(o, seen)
	case kindFunction:
		return fmt.Sprintf("#<function %s>", funcLabel(o.fn))
	case kindMacro:
		return fmt.Sprintf("#<macro %s>", funcLabel(o.fn))
	default:
		return "#<unknown>"
	}
}

func funcLabel(f *function) string {
	if f.name != "" {
		return f.name
	}
	if f.builtin != nil {
		return "builtin"
	}
	return "lambda"
}

func sprintCons(o *Object, seen map[*Object]bool) string {
	if seen[o] {
		return "(...)"
	}

	buf := "("
	cur := o
	first := true
	visited := make(map[*Object]bool)
	for {
		if visited[cur] {
			return buf + " ...)"
		}
		visited[cur] = true
		seen[cur] = true
		defer delete(seen, cur)

		if !first {
			buf += " "
		}
		first = false
		buf += sprintObject(cur.car, seen)
		switch {
		case cur.cdr == nil:
			return buf + ")"
		case cur.cdr.kind == kindCons:
			cur = cur.cdr
		default:
			return buf + " . " + sprintObject(cur.cdr, seen) + ")"
		}
	}
}
