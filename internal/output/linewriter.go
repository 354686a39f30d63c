// Package output writes replayed games and exported movetext.
package output

import (
	"fmt"
	"io"
)

// LineWriter writes space-separated tokens, starting a new line when the
// next token would push the current line past maxLineLength.
type LineWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
	err           error
}

// NewLineWriter creates a line writer. A maxLineLength of zero or less
// disables wrapping.
func NewLineWriter(w io.Writer, maxLineLength int) *LineWriter {
	return &LineWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes a token, adding a space separator if needed.
func (o *LineWriter) Write(s string) {
	if len(s) == 0 {
		return
	}
	if o.needsSpace {
		if o.maxLineLength > 0 && o.lineLength+1+len(s) > o.maxLineLength {
			o.print("\n")
			o.lineLength = 0
		} else {
			o.print(" ")
			o.lineLength++
		}
	}

	o.print(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// WriteNoSpace appends s to the current token without a separator.
func (o *LineWriter) WriteNoSpace(s string) {
	o.print(s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine starts a new line.
func (o *LineWriter) NewLine() {
	o.print("\n")
	o.lineLength = 0
	o.needsSpace = false
}

// Err returns the first error returned by the underlying writer.
func (o *LineWriter) Err() error {
	return o.err
}

func (o *LineWriter) print(s string) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprint(o.w, s)
}
