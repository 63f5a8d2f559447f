package overlap

import (
	"strings"
	"testing"
)

func TestScannerRoundTrip(t *testing.T) {
	const input = `1 2 0 0 100 0 98 2
3 48 2 47

1 3 1 0 50 0 51 0
`
	sc := NewScanner(strings.NewReader(input))
	var got []Overlap
	var o Overlap
	for sc.Scan(&o) {
		got = append(got, cloneOverlap(o))
	}
	if err := sc.Err(); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d overlaps, want 2", len(got))
	}

	first := got[0]
	if first.ARead != 1 || first.BRead != 2 || first.Comp {
		t.Errorf("first overlap header mismatch: %+v", first)
	}
	if len(first.Trace) != 2 || first.Trace[0] != (TracePoint{Diff: 3, BLen: 48}) || first.Trace[1] != (TracePoint{Diff: 2, BLen: 47}) {
		t.Errorf("first overlap trace mismatch: %+v", first.Trace)
	}

	second := got[1]
	if second.ARead != 1 || second.BRead != 3 || !second.Comp {
		t.Errorf("second overlap header mismatch: %+v", second)
	}
	if len(second.Trace) != 0 {
		t.Errorf("second overlap should have no trace, got %+v", second.Trace)
	}
}

func TestScannerInvalid(t *testing.T) {
	sc := NewScanner(strings.NewReader("1 2 0 0 100 0 98\n"))
	var o Overlap
	if sc.Scan(&o) {
		t.Fatal("expected Scan to fail on a short header")
	}
	if sc.Err() == nil {
		t.Fatal("expected a non-nil error")
	}
}

func TestWriterScannerRoundTrip(t *testing.T) {
	want := Overlap{
		ARead: 5, BRead: 9, Comp: true,
		ABPos: 10, AEPos: 210, BBPos: 5, BEPos: 203,
		Trace: []TracePoint{{Diff: 1, BLen: 100}, {Diff: 2, BLen: 98}},
	}
	var buf strings.Builder
	w := NewWriter(&buf)
	if err := w.Write(&want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	sc := NewScanner(strings.NewReader(buf.String()))
	var got Overlap
	if !sc.Scan(&got) {
		t.Fatalf("Scan failed: %v", sc.Err())
	}
	if got.ARead != want.ARead || got.BRead != want.BRead || got.Comp != want.Comp {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if got.ABPos != want.ABPos || got.AEPos != want.AEPos || got.BBPos != want.BBPos || got.BEPos != want.BEPos {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if len(got.Trace) != len(want.Trace) {
		t.Fatalf("trace length mismatch: got %d, want %d", len(got.Trace), len(want.Trace))
	}
	for i := range want.Trace {
		if got.Trace[i] != want.Trace[i] {
			t.Errorf("trace[%d] = %+v, want %+v", i, got.Trace[i], want.Trace[i])
		}
	}
}

func TestGroupReader(t *testing.T) {
	const input = `1 2 0 0 100 0 100 0
1 3 0 0 100 0 100 0
2 4 0 0 50 0 50 0
`
	gr := NewGroupReader(strings.NewReader(input))

	aread, group, ok := gr.Next()
	if !ok || aread != 1 || len(group) != 2 {
		t.Fatalf("first group: aread=%d len=%d ok=%v", aread, len(group), ok)
	}

	aread, group, ok = gr.Next()
	if !ok || aread != 2 || len(group) != 1 {
		t.Fatalf("second group: aread=%d len=%d ok=%v", aread, len(group), ok)
	}

	if _, _, ok := gr.Next(); ok {
		t.Fatal("expected no third group")
	}
	if err := gr.Err(); err != nil {
		t.Fatalf("Err: %v", err)
	}
}
