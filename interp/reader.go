package interp

import (
	"fmt"
	"strconv"
)

// Reader turns a byte stream into one Object per call to Read,
// following the grammar in §4.4. It never panics or returns a Go
// error: every failure becomes an Error Object, propagated to the
// caller exactly like any other value.
type Reader struct {
	tok *tokenizer
	h   *Heap
}

// NewReader creates a Reader over src, allocating parsed objects
// through h.
func NewReader(h *Heap, src []byte) *Reader {
	return &Reader{tok: newTokenizer(src), h: h}
}

// Read parses the next top-level form. The second return value is
// true once the source is exhausted and no form remains; it is false
// whenever obj holds a form (including an Error form).
func (r *Reader) Read() (obj *Object, eof bool) {
	tk := r.tok.next()
	if tk.kind == tokEOF {
		return nil, true
	}
	return r.readFrom(tk), false
}

// readFrom parses one form starting at the already-consumed token tk.
func (r *Reader) readFrom(tk token) *Object {
	switch tk.kind {
	case tokEOF:
		return r.h.NewError(fmt.Sprintf("syntax error: unexpected end of input at %d:%d", tk.line, tk.col))
	case tokError:
		return r.h.NewError(tk.text)
	case tokLParen:
		return r.readList(tk)
	case tokRParen:
		return r.h.NewError(fmt.Sprintf("syntax error: unexpected ')' at %d:%d", tk.line, tk.col))
	case tokQuote:
		return r.readReaderMacro("quote", tk)
	case tokBacktick:
		return r.readReaderMacro("quasiquote", tk)
	case tokComma:
		return r.readReaderMacro("unquote", tk)
	case tokNumber:
		return r.readNumber(tk)
	case tokString:
		return r.h.NewString(tk.text)
	case tokSymbol:
		return r.h.NewSymbol(tk.text)
	default:
		return r.h.NewError(fmt.Sprintf("syntax error: unrecognized token at %d:%d", tk.line, tk.col))
	}
}

func (r *Reader) readNumber(tk token) *Object {
	n, err := strconv.ParseInt(tk.text, 10, 64)
	if err != nil {
		return r.h.NewError(fmt.Sprintf("syntax error: invalid number %q at %d:%d", tk.text, tk.line, tk.col))
	}
	return r.h.NewNumber(n)
}

// readReaderMacro implements the quote/quasiquote/unquote shortcuts:
// 'x -> (quote x), `x -> (quasiquote x), ,x -> (unquote x).
func (r *Reader) readReaderMacro(formName string, tk token) *Object {
	next := r.tok.next()
	if next.kind == tokEOF {
		return r.h.NewError(fmt.Sprintf("syntax error: %q with no following form at %d:%d", formName, tk.line, tk.col))
	}
	inner := r.readFrom(next)
	if inner.IsError() {
		return inner
	}
	return r.h.NewList(r.h.NewSymbol(formName), inner)
}

// readList parses the contents of a parenthesized form already past
// its opening '('. An empty () parses to nil, never to a cons whose
// car is nil (§4.4). A missing close-paren yields an Error in place
// of the list, per the same section.
func (r *Reader) readList(openTok token) *Object {
	var items []*Object
	for {
		tk := r.tok.next()
		switch tk.kind {
		case tokRParen:
			return r.h.NewList(items...)
		case tokEOF:
			return r.h.NewError(fmt.Sprintf("syntax error: missing ')' for list opened at %d:%d", openTok.line, openTok.col))
		case tokError:
			return r.h.NewError(tk.text)
		default:
			item := r.readFrom(tk)
			if item.IsError() {
				return item
			}
			items = append(items, item)
		}
	}
}
