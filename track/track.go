// Package track implements the per-read annotation containers consumed by
// package repair: segment quality tracks, masking-interval tracks, an
// optional trim interval per read, and arbitrary user interval tracks.
//
// A track is keyed by read id. Quality tracks carry one small integer per
// W-base segment; interval tracks carry zero or more non-overlapping
// half-open intervals in read-local coordinates.
package track

import (
	"math"
	"sort"
)

// PosType is the coordinate type used for positions within a read.
type PosType = int32

// PosTypeMax is the largest representable PosType.
const PosTypeMax = math.MaxInt32

// Interval is a half-open interval [Begin, End) in read-local coordinates.
type Interval struct {
	Begin, End PosType
}

// Len returns End - Begin.
func (iv Interval) Len() PosType { return iv.End - iv.Begin }

// Empty reports whether the interval contains no positions.
func (iv Interval) Empty() bool { return iv.End <= iv.Begin }

// Intersects reports whether iv and other share at least one position.
func (iv Interval) Intersects(other Interval) bool {
	return iv.Begin < other.End && other.Begin < iv.End
}

// Intervals is a sorted, non-overlapping set of Interval, as required of
// mask and user tracks by the data model.
type Intervals []Interval

// Contains reports whether pos falls inside one of the intervals.
func (ivs Intervals) Contains(pos PosType) bool {
	i := sort.Search(len(ivs), func(i int) bool { return ivs[i].End > pos })
	return i < len(ivs) && ivs[i].Begin <= pos
}

// ContainsInterval reports whether [b, e) is wholly contained in a single
// interval of ivs.
func (ivs Intervals) ContainsInterval(b, e PosType) bool {
	for _, iv := range ivs {
		if b >= iv.Begin && e <= iv.End {
			return true
		}
		if iv.Begin >= e {
			break
		}
	}
	return false
}

// Overlaps reports whether any interval of ivs intersects [b, e).
func (ivs Intervals) Overlaps(b, e PosType) bool {
	i := sort.Search(len(ivs), func(i int) bool { return ivs[i].End > b })
	return i < len(ivs) && ivs[i].Begin < e
}

// Quality is a read's per-segment quality track. Quality[i] is the quality
// value of the i-th W-wide segment; 0 is the "unknown/masked" sentinel and
// is never compared against a threshold as an ordinary value.
type Quality []byte

// Bad reports whether segment i is "bad": either unknown (0) or at or above
// lowq.
func (q Quality) Bad(i int, lowq byte) bool {
	v := q[i]
	return v == 0 || v >= lowq
}
