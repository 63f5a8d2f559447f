package track

// This file supports representing an interval-union as a sorted []PosType of
// interval endpoints and scanning it in increasing-position order, e.g.
//   endpoints := []PosType{5, 15, 20, 25}
// represents [5,15) U [20,25). EndpointIndex(i) is even when outside every
// interval and odd when inside one, so membership is a single parity check.

// EndpointIndex is the result of SearchEndpoints(endpoints, pos+1): the
// number of endpoints at or below pos (using the "+1" to keep half-open
// interval semantics).
type EndpointIndex int

// SearchEndpoints returns the index at which x would be inserted into the
// sorted slice endpoints to keep it sorted.
func SearchEndpoints(endpoints []PosType, x PosType) EndpointIndex {
	lo, hi := 0, len(endpoints)
	for lo < hi {
		mid := (lo + hi) / 2
		if endpoints[mid] < x {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return EndpointIndex(lo)
}

// Contained reports whether the position used to compute ei falls inside one
// of the intervals.
func (ei EndpointIndex) Contained() bool {
	return ei&1 != 0
}

// Endpoints flattens ivs into a sorted slice of interval endpoints, suitable
// for SearchEndpoints/EndpointIndex.Contained. ivs must already be sorted and
// non-overlapping.
func (ivs Intervals) Endpoints() []PosType {
	out := make([]PosType, 0, 2*len(ivs))
	for _, iv := range ivs {
		out = append(out, iv.Begin, iv.End)
	}
	return out
}
