package overlap

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Each overlap is encoded as two lines (only the first when ntrace is 0):
//   <aread> <bread> <comp:0|1> <abpos> <aepos> <bbpos> <bepos> <ntrace>
//   <d0> <b0> <d1> <b1> ... <d(ntrace-1)> <b(ntrace-1)>
// A stream is a sequence of such records, already sorted/grouped per the
// data model (by A-read, then within a group by B-read then A-start).

// ErrInvalid is returned when a malformed overlap record is encountered.
var ErrInvalid = errors.New("overlap: invalid record")

// Scanner reads one Overlap record at a time from an overlap stream.
type Scanner struct {
	b   *bufio.Scanner
	err error
}

// NewScanner returns a Scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	b := bufio.NewScanner(r)
	b.Buffer(nil, 1<<20)
	return &Scanner{b: b}
}

// Scan reads the next overlap into o, returning false at EOF or on error.
func (s *Scanner) Scan(o *Overlap) bool {
	if s.err != nil {
		return false
	}
	if !s.nextNonBlank() {
		return false
	}
	head := strings.Fields(s.b.Text())
	if len(head) != 8 {
		s.err = ErrInvalid
		return false
	}
	ints := make([]int, 8)
	for i, f := range head {
		if i == 2 {
			continue
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			s.err = errors.Wrap(ErrInvalid, err.Error())
			return false
		}
		ints[i] = v
	}
	o.ARead, o.BRead = ints[0], ints[1]
	o.Comp = head[2] == "1"
	o.ABPos, o.AEPos, o.BBPos, o.BEPos = ints[3], ints[4], ints[5], ints[6]
	ntrace := ints[7]

	o.Trace = o.Trace[:0]
	if ntrace > 0 {
		if !s.nextNonBlank() {
			if s.err == nil {
				s.err = ErrInvalid
			}
			return false
		}
		fields := strings.Fields(s.b.Text())
		if len(fields) != 2*ntrace {
			s.err = ErrInvalid
			return false
		}
		for i := 0; i < ntrace; i++ {
			d, errD := strconv.Atoi(fields[2*i])
			bl, errB := strconv.Atoi(fields[2*i+1])
			if errD != nil || errB != nil {
				s.err = ErrInvalid
				return false
			}
			o.Trace = append(o.Trace, TracePoint{Diff: d, BLen: bl})
		}
	}
	return true
}

func (s *Scanner) nextNonBlank() bool {
	for s.b.Scan() {
		if strings.TrimSpace(s.b.Text()) != "" {
			return true
		}
	}
	if s.err == nil {
		s.err = s.b.Err()
	}
	return false
}

// Err returns the first error encountered by Scan, if any.
func (s *Scanner) Err() error {
	return s.err
}

// GroupReader batches consecutive overlaps sharing the same A-read into a
// single slice, as required for per-read repair.
type GroupReader struct {
	sc      *Scanner
	pending Overlap
	have    bool
	err     error
}

// NewGroupReader returns a GroupReader reading from r.
func NewGroupReader(r io.Reader) *GroupReader {
	return &GroupReader{sc: NewScanner(r)}
}

// Next returns the next group of overlaps sharing an A-read, in the order
// they appeared in the stream. ok is false once the stream is exhausted;
// check Err() afterward.
func (g *GroupReader) Next() (aread int, group []Overlap, ok bool) {
	if g.err != nil {
		return 0, nil, false
	}
	if !g.have {
		if !g.sc.Scan(&g.pending) {
			g.err = g.sc.Err()
			return 0, nil, false
		}
		g.have = true
	}
	aread = g.pending.ARead
	group = append(group, cloneOverlap(g.pending))
	for {
		var next Overlap
		if !g.sc.Scan(&next) {
			g.err = g.sc.Err()
			g.have = false
			return aread, group, true
		}
		if next.ARead != aread {
			g.pending = next
			g.have = true
			return aread, group, true
		}
		group = append(group, cloneOverlap(next))
	}
}

// Err returns the first error encountered while reading, if any.
func (g *GroupReader) Err() error {
	return g.err
}

func cloneOverlap(o Overlap) Overlap {
	out := o
	out.Trace = append([]TracePoint(nil), o.Trace...)
	return out
}
