package repair

import (
	"github.com/grailbio/readfix/overlap"
	"github.com/grailbio/readfix/track"
)

// TracePoint aliases overlap.TracePoint for convenience within this package
// and its tests.
type TracePoint = overlap.TracePoint

// collectGaps implements the gap collector (component 4.2): for every
// consecutive pair of overlaps sharing a B-read and orientation whose
// A-intervals are disjoint, it builds a candidate patch spanning the
// W-aligned A-gap with donor sequence taken from the implied B-interval.
// blen returns the forward-strand length of a given read id.
func collectGaps(group []overlap.Overlap, twidth int, qstore *track.QualityStore, dust *track.IntervalStore, blen func(id int) int) []*Gap {
	var gaps []*Gap

	for i := 1; i < len(group); i++ {
		prev := &group[i-1]
		cur := &group[i]

		if prev.BRead != cur.BRead || prev.Comp != cur.Comp {
			continue
		}
		if prev.AEPos >= cur.ABPos {
			continue
		}
		if len(prev.Trace) == 0 || len(cur.Trace) == 0 {
			continue
		}

		ab := (prev.AEPos - 1) / twidth
		ae := cur.ABPos/twidth + 1

		bb := prev.BEPos - prev.Trace[len(prev.Trace)-1].BLen
		be := cur.BBPos + cur.Trace[0].BLen

		if cur.Comp {
			l := blen(cur.BRead)
			bb, be = l-be, l-bb
		}

		if bb >= be {
			continue
		}

		if maskContainsAny(dust.Get(cur.BRead), track.PosType(bb), track.PosType(be)) {
			continue
		}

		qb, ok := qstore.Get(cur.BRead)
		if !ok {
			continue
		}
		beg := bb / twidth
		end := be/twidth + 1
		if end > len(qb) {
			end = len(qb)
		}
		weak := false
		q := 0
		for k := beg; k < end; k++ {
			if qb[k] == 0 {
				weak = true
			}
			q += int(qb[k])
		}
		if weak {
			continue
		}

		gaps = append(gaps, &Gap{
			AB:      ab * twidth,
			AE:      ae * twidth,
			BB:      bb,
			BE:      be,
			B:       cur.BRead,
			Comp:    cur.Comp,
			Diff:    100.0 * float64(q) / float64(be-bb),
			Support: 1,
		})
	}

	return gaps
}

// maskContainsAny reports whether [b, e) wholly contains any interval of
// ivs -- the "donor window wholly containing a mask-track interval of B"
// rejection rule.
func maskContainsAny(ivs track.Intervals, b, e track.PosType) bool {
	for _, iv := range ivs {
		if b <= iv.Begin && e >= iv.End {
			return true
		}
		if iv.Begin >= e {
			break
		}
	}
	return false
}
