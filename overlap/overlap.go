// Package overlap defines the pairwise read-to-read alignment record
// consumed by package repair, and a streaming reader that groups overlaps by
// their A-read the way the external overlap store is required to (see the
// data model in the design: overlaps for a given A-read arrive as a
// contiguous, already-sorted run).
package overlap

// TracePoint gives, for one W-aligned slice of an overlap's A-interval, the
// number of differences in that slice and the number of B bases the slice
// consumes. Summing the B lengths across all trace points of an overlap
// yields Bepos-Bbpos.
type TracePoint struct {
	Diff int
	BLen int
}

// Overlap is a directed alignment from ARead to BRead.
type Overlap struct {
	ARead, BRead int
	// Comp is true when BRead must be read as the reverse complement of its
	// forward-strand sequence to align with ARead.
	Comp bool
	// ABPos, AEPos is the half-open A-interval of the alignment.
	ABPos, AEPos int
	// BBPos, BEPos is the half-open B-interval, in B's forward-strand
	// coordinates, regardless of Comp.
	BBPos, BEPos int
	// Trace is the W-aligned trace of the alignment; see TracePoint.
	Trace []TracePoint
}

// ALen returns the length of the A-interval.
func (o *Overlap) ALen() int { return o.AEPos - o.ABPos }

// BLen returns the length of the B-interval.
func (o *Overlap) BLen() int { return o.BEPos - o.BBPos }
