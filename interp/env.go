package interp

// Frame is one level of the environment chain (§4.3): a hash map of
// bindings plus a pointer to the enclosing frame. The root frame (the
// one with a nil parent) is the global frame; define always writes
// there regardless of the frame a form is evaluated in.
//
// Frame is a plain Go struct, not a heap-tracked Object: it is kept
// alive by ordinary Go GC for as long as some Object (typically a
// Function/Macro closure) references it. Only the Lisp-level values a
// Frame points at are subject to mark-and-sweep.
type Frame struct {
	table  *hashMap
	parent *Frame
	root   *Frame
}

// NewFrame creates a fresh frame whose parent is parent. Passing a nil
// parent creates a new root/global frame.
func NewFrame(parent *Frame) *Frame {
	f := &Frame{table: newHashMap(), parent: parent}
	if parent == nil {
		f.root = f
	} else {
		f.root = parent.root
	}
	return f
}

// Put binds name to value in this frame, shadowing any binding of the
// same name in an enclosing frame.
func (f *Frame) Put(name string, value *Object) {
	f.table.put(name, value)
}

// Get walks the chain from f outward and returns the first binding of
// name, or (nil, false) if name is unbound anywhere in the chain.
func (f *Frame) Get(name string) (*Object, bool) {
	for cur := f; cur != nil; cur = cur.parent {
		if v, ok := cur.table.get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// DefineAtRoot binds name in the root frame of the chain f belongs to,
// regardless of f's own depth. This implements `define`: a define
// evaluated deep inside nested lets or macro expansions still lands
// in the global frame.
func (f *Frame) DefineAtRoot(name string, value *Object) {
	f.root.Put(name, value)
}

// Set walks the chain looking for the nearest enclosing frame that
// already defines name and overwrites the binding there. If no frame
// defines name, it is bound in f itself (the current frame) — see the
// Open Question in §9 of the spec, resolved here in favor of "bind in
// current frame" rather than raising an error.
func (f *Frame) Set(name string, value *Object) {
	for cur := f; cur != nil; cur = cur.parent {
		if _, ok := cur.table.get(name); ok {
			cur.table.put(name, value)
			return
		}
	}
	f.table.put(name, value)
}

// Parent returns the enclosing frame, or nil if f is the root.
func (f *Frame) Parent() *Frame { return f.parent }
