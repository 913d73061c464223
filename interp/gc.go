package interp

// Mark walks from root (the global frame) and every frame reachable
// through a live closure, setting the mark bit on every Object it
// finds, per §4.7. Mark bits are assumed clear on entry — sweep
// clears them as it goes, so a fresh heap or one that has just been
// swept always satisfies that precondition.
//
// Marking tracks frames it has already visited, not just objects: a
// recursive closure can capture the very frame define bound it in
// (e.g. (define f (lambda (n) (f (- n 1))))), which makes the
// frame-reachability graph cyclic even though Frame.parent links form
// a tree. Object-level cycles (via setcar/setcdr) are handled by the
// ordinary object mark-bit check.
func Mark(root *Frame) {
	seenFrames := make(map[*Frame]bool)
	markFrame(root, seenFrames)
}

func markFrame(f *Frame, seen map[*Frame]bool) {
	for cur := f; cur != nil && !seen[cur]; cur = cur.parent {
		seen[cur] = true
		cur.table.forEach(func(_ string, v *Object) {
			markObject(v, seen)
		})
	}
}

func markObject(o *Object, seenFrames map[*Frame]bool) {
	if o == nil || o.mark {
		return
	}
	o.mark = true
	switch o.kind {
	case kindCons:
		markObject(o.car, seenFrames)
		markObject(o.cdr, seenFrames)
	case kindFunction, kindMacro:
		if o.fn == nil {
			return
		}
		markObject(o.fn.body, seenFrames)
		markFrame(o.fn.env, seenFrames)
	}
}

// Sweep walks the allocation list, destroying every object whose mark
// bit is clear and clearing the mark bit of every object that
// survives, per §4.7. The next node is saved before a node is
// destroyed, since destroying first and reading prev/next after would
// be a use-after-free.
func (h *Heap) Sweep() {
	live := 0
	cur := h.head
	for cur != nil {
		next := cur.next
		if cur.mark {
			cur.mark = false
			live++
		} else {
			h.unlink(cur)
			cur.destroy()
		}
		cur = next
	}
	h.liveAtLastSweep = live
	h.allocSinceSweep = 0
}

// Collect runs a full mark-and-sweep cycle rooted at root. Per §4.1
// and §5, this must only be called between top-level forms, never
// while a form is mid-evaluation: intermediate results produced
// during evaluation are not yet reachable from any frame and would be
// incorrectly reclaimed otherwise.
func (h *Heap) Collect(root *Frame) {
	Mark(root)
	h.Sweep()
}
