package overlap

import (
	"fmt"
	"io"
)

// Writer writes Overlap records in the format Scanner reads.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write appends one overlap record.
func (w *Writer) Write(o *Overlap) error {
	if w.err != nil {
		return w.err
	}
	comp := 0
	if o.Comp {
		comp = 1
	}
	_, w.err = fmt.Fprintf(w.w, "%d %d %d %d %d %d %d %d\n",
		o.ARead, o.BRead, comp, o.ABPos, o.AEPos, o.BBPos, o.BEPos, len(o.Trace))
	if w.err != nil {
		return w.err
	}
	if len(o.Trace) == 0 {
		return nil
	}
	for i, tp := range o.Trace {
		if i > 0 {
			_, w.err = fmt.Fprint(w.w, " ")
			if w.err != nil {
				return w.err
			}
		}
		_, w.err = fmt.Fprintf(w.w, "%d %d", tp.Diff, tp.BLen)
		if w.err != nil {
			return w.err
		}
	}
	_, w.err = fmt.Fprint(w.w, "\n")
	return w.err
}
