package repair

import (
	"github.com/grailbio/readfix/track"
)

// minIntLen is MIN_INT_LEN: a remapped interval shorter than this is
// dropped rather than kept as a sliver.
const minIntLen = 5

// remapPos maps an old-coordinate position to its new-coordinate position,
// reporting false if pos falls strictly inside a replaced (spliced-out)
// segment, where no meaningful new position exists.
func remapPos(pmap PatchMap, pos int) (int, bool) {
	for _, seg := range pmap {
		if pos < seg.OldB || pos > seg.OldE {
			continue
		}
		if seg.Replaced {
			if pos == seg.OldB {
				return seg.NewB, true
			}
			if pos == seg.OldE {
				return seg.NewE, true
			}
			return 0, false
		}
		return seg.NewB + (pos - seg.OldB), true
	}
	return 0, false
}

// remapInterval maps a single old-coordinate [b, e) interval across a patch,
// possibly splitting it at replaced-segment boundaries. Resulting pieces
// shorter than minIntLen are dropped.
func remapInterval(pmap PatchMap, b, e track.PosType) track.Intervals {
	var out track.Intervals
	cur := int(b)
	for cur < int(e) {
		nb, ok := remapPos(pmap, cur)
		if !ok {
			cur++
			continue
		}
		// advance to the end of the run we can map contiguously: either the
		// end of the requested interval, or the end of the kept segment
		// covering cur.
		segEnd := int(e)
		for _, seg := range pmap {
			if cur >= seg.OldB && cur < seg.OldE && !seg.Replaced {
				if seg.OldE < segEnd {
					segEnd = seg.OldE
				}
			}
		}
		ne, ok2 := remapPos(pmap, segEnd)
		if !ok2 {
			ne = nb + (segEnd - cur)
		}
		if ne-nb >= minIntLen {
			out = append(out, track.Interval{Begin: track.PosType(nb), End: track.PosType(ne)})
		}
		cur = segEnd
	}
	return out
}

// remapIntervals applies remapInterval to every interval of ivs, dropping
// slivers shorter than minIntLen and leaving the result in ascending,
// non-overlapping order (the inputs are assumed sorted and disjoint).
func remapIntervals(pmap PatchMap, ivs track.Intervals) track.Intervals {
	var out track.Intervals
	for _, iv := range ivs {
		out = append(out, remapInterval(pmap, iv.Begin, iv.End)...)
	}
	return out
}
