package obj

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineSize bounds a single physical line. Basis matrices of high degree
// produce long bmat lines.
const maxLineSize = 1 << 20

// Reader yields logical lines from an OBJ stream. A physical line ending in a
// backslash continues on the next physical line; the two are joined with a
// single space. Reader supports one line of lookahead.
type Reader struct {
	sc       *bufio.Scanner
	physical int   // physical lines consumed so far
	peeked   *Line // lookahead slot
	err      error
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Peek returns the next logical line without consuming it.
// The boolean is false at end of input or after a read error.
func (r *Reader) Peek() (Line, bool) {
	if r.peeked != nil {
		return *r.peeked, true
	}
	line, ok := r.read()
	if !ok {
		return Line{}, false
	}
	r.peeked = &line
	return line, true
}

// Skip consumes the next logical line.
func (r *Reader) Skip() {
	_, _ = r.Next()
}

// Next consumes and returns the next logical line.
func (r *Reader) Next() (Line, bool) {
	if r.peeked != nil {
		line := *r.peeked
		r.peeked = nil
		return line, true
	}
	return r.read()
}

// Err returns the first read error, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) read() (Line, bool) {
	if r.err != nil || !r.sc.Scan() {
		r.setErr()
		return Line{}, false
	}
	r.physical++
	start := r.physical
	text := r.sc.Text()

	for {
		trimmed := strings.TrimRight(text, " \t\r")
		if !strings.HasSuffix(trimmed, `\`) {
			break
		}
		head := strings.TrimSuffix(trimmed, `\`)
		if !r.sc.Scan() {
			// A dangling continuation at end of input ends the line.
			r.setErr()
			text = head
			break
		}
		r.physical++
		text = head + " " + r.sc.Text()
	}

	line := ParseLine(text)
	line.Number = start
	return line, true
}

func (r *Reader) setErr() {
	if err := r.sc.Err(); err != nil && r.err == nil {
		r.err = fmt.Errorf("reading line %d: %w", r.physical+1, err)
	}
}
