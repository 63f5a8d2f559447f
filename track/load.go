package track

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// File formats are simple whitespace-delimited text, one line per read that
// carries data for that track (readers of a DAZZLER-style binary .anno/.data
// track pair are an external collaborator per the design; this plain-text
// format is the concrete, runnable stand-in used by this module's own
// reader/writer and cmd/bio-readfix).
//
// Quality track line:   "<readID> <q0> <q1> ... <qN-1>"
// Interval track line:  "<readID> <b0> <e0> <b1> <e1> ..."
// Trim track line:      "<readID> <b> <e>"

// LoadQuality reads a quality track from r into a new QualityStore.
func LoadQuality(r io.Reader) (*QualityStore, error) {
	s := NewQualityStore()
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "quality track line %d: bad read id", lineNo)
		}
		q := make(Quality, len(fields)-1)
		for i, f := range fields[1:] {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 || v > 255 {
				return nil, errors.Errorf("quality track line %d: bad quality value %q", lineNo, f)
			}
			q[i] = byte(v)
		}
		s.Set(id, q)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading quality track")
	}
	return s, nil
}

// LoadIntervals reads a named interval track from r into a new
// IntervalStore.
func LoadIntervals(r io.Reader, name string) (*IntervalStore, error) {
	s := NewIntervalStore(name)
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "%s track line %d: bad read id", name, lineNo)
		}
		rest := fields[1:]
		if len(rest)%2 != 0 {
			return nil, errors.Errorf("%s track line %d: odd number of interval endpoints", name, lineNo)
		}
		ivs := make(Intervals, 0, len(rest)/2)
		for i := 0; i < len(rest); i += 2 {
			b, errB := strconv.Atoi(rest[i])
			e, errE := strconv.Atoi(rest[i+1])
			if errB != nil || errE != nil {
				return nil, errors.Errorf("%s track line %d: bad interval", name, lineNo)
			}
			ivs = append(ivs, Interval{PosType(b), PosType(e)})
		}
		s.Set(id, ivs)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s track", name)
	}
	return s, nil
}

// LoadTrim reads a trim track from r into a new TrimStore.
func LoadTrim(r io.Reader) (*TrimStore, error) {
	s := NewTrimStore()
	sc := bufio.NewScanner(r)
	sc.Buffer(nil, 1<<20)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, errors.Errorf("trim track line %d: expected 3 fields, got %d", lineNo, len(fields))
		}
		id, errID := strconv.Atoi(fields[0])
		b, errB := strconv.Atoi(fields[1])
		e, errE := strconv.Atoi(fields[2])
		if errID != nil || errB != nil || errE != nil {
			return nil, errors.Errorf("trim track line %d: malformed", lineNo)
		}
		s.Set(id, Interval{PosType(b), PosType(e)})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading trim track")
	}
	return s, nil
}
