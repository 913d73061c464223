package interp

import (
	"fmt"

	"github.com/pkg/errors"
)

// Error kinds from §7. The tag itself is free text on the Error
// object (machine tags are not required by the spec), but centralizing
// the prefixes here keeps the wording consistent across the package.
const (
	errKindSyntax = "syntax error"
	errKindName   = "name error"
	errKindType   = "type error"
	errKindArity  = "arity error"
	errKindIO     = "io error"
	errKindUser   = "user error"
)

func newTaggedError(h *Heap, kind, format string, a ...interface{}) *Object {
	return h.NewError(fmt.Sprintf("%s: %s", kind, fmt.Sprintf(format, a...)))
}

// wrapIOError turns a Go error from file access (the import primitive,
// or any future file-backed primitive) into an io-kind Error object.
// The cause is wrapped with github.com/pkg/errors to add the operation
// and path, the way db47h/ngaro's vm package wraps opcode failures
// before they cross its own API boundary, and is then flattened to
// text: the returned Error object carries only the message, not the
// Go error chain.
func wrapIOError(h *Heap, op, path string, cause error) *Object {
	wrapped := errors.Wrapf(cause, "%s %q", op, path)
	return newTaggedError(h, errKindIO, "%s", wrapped.Error())
}
