// Package fastaio writes repaired reads in FASTA (and a parallel quiva-style
// quality stream) format.
package fastaio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const defaultWidth = 60

// Writer emits patched and trimmed reads as wrapped FASTA records, tracking
// the first write error the way encoding/fastq's Writer does so callers only
// need to check Flush's return value.
type Writer struct {
	w     *bufio.Writer
	width int
	err   error
}

// NewWriter returns a Writer wrapping w, wrapping sequence lines at the
// conventional 60 columns.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), width: defaultWidth}
}

// WriteFixed emits a patched read. source is the original read id, and
// tracks lists the names of any annotation tracks remapped alongside it
// (dust, user); each is rendered as a "track=<name>" header field so a
// downstream run can tell which tracks still apply to this record.
func (w *Writer) WriteFixed(id, source int, seq []byte, trackNames []string) error {
	return w.writeRecord("fixed", id, source, seq, trackNames)
}

// WriteTrimmed emits a read that was trimmed but never patched (the
// no-candidate fast path).
func (w *Writer) WriteTrimmed(id, source int, seq []byte, trackNames []string) error {
	return w.writeRecord("trimmed", id, source, seq, trackNames)
}

func (w *Writer) writeRecord(kind string, id, source int, seq []byte, trackNames []string) error {
	if w.err != nil {
		return w.err
	}
	header := fmt.Sprintf(">%s_%d source=%d", kind, id, source)
	if len(trackNames) > 0 {
		header += " track=" + strings.Join(trackNames, ",")
	}
	w.writeln(header)
	for off := 0; off < len(seq); off += w.width {
		end := off + w.width
		if end > len(seq) {
			end = len(seq)
		}
		w.writeBytes(seq[off:end])
		w.writeln("")
	}
	return w.err
}

// WriteQuality emits the parallel quality-stream block for a record: a
// quiva-style header naming the patched length, followed by K lines of raw
// quality bytes, one per stream, each exactly rlen bytes, unwrapped. The
// header line has no counterpart in the quality-stream format readdb reads.
func (w *Writer) WriteQuality(source, rlen int, streams [][]byte) error {
	if w.err != nil {
		return w.err
	}
	w.writeln(fmt.Sprintf("@fixed/0_%d source=%d", rlen, source))
	for _, s := range streams {
		w.writeBytes(s)
		w.writeln("")
	}
	return w.err
}

func (w *Writer) writeln(s string) {
	if w.err != nil {
		return
	}
	if s != "" {
		_, w.err = w.w.WriteString(s)
		if w.err != nil {
			return
		}
	}
	_, w.err = w.w.WriteString("\n")
}

func (w *Writer) writeBytes(b []byte) {
	if w.err != nil {
		return
	}
	_, w.err = w.w.Write(b)
}

// Flush flushes any buffered output and returns the first error encountered
// by any write, if any.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.w.Flush()
}

