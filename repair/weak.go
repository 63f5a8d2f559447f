package repair

import (
	"github.com/grailbio/readfix/overlap"
	"github.com/grailbio/readfix/track"
)

// tracePoint walks an overlap's trace to find the B coordinate corresponding
// to the end of the twidth-aligned segment covering apos. apos must lie in
// [ABPos, AEPos]; ok is false only if the trace runs out before reaching it,
// which signals a malformed overlap.
func tracePoint(ovl *overlap.Overlap, twidth, apos int) (bpos int, ok bool) {
	if apos <= ovl.ABPos {
		return ovl.BBPos, true
	}
	a := ovl.ABPos
	b := ovl.BBPos
	segEnd := (a/twidth + 1) * twidth
	for _, tp := range ovl.Trace {
		if segEnd > ovl.AEPos {
			segEnd = ovl.AEPos
		}
		b += tp.BLen
		if segEnd >= apos {
			return b, true
		}
		a = segEnd
		segEnd += twidth
	}
	if apos >= ovl.AEPos {
		return ovl.BEPos, true
	}
	return 0, false
}

// insideAny reports whether [ab, ae) lies wholly inside one of gaps'
// A-intervals.
func insideAny(gaps []*Gap, ab, ae int) bool {
	for _, g := range gaps {
		if ab >= g.AB && ae <= g.AE {
			return true
		}
	}
	return false
}

// scanWeakRegions implements the weak-region scanner (component 4.3): for
// every W-segment of the trim window whose A-quality is the sentinel or at
// or above lowq, and whose A-interval isn't already covered by a
// gap-collected candidate, it finds the overlap minimizing mean B-quality
// over the segment's mapped donor window and emits one candidate per
// segment. collected is the gap collector's output, consulted only for the
// already-covered check.
func scanWeakRegions(aread int, group []overlap.Overlap, qstore *track.QualityStore, dust *track.IntervalStore, twidth, lowq, trimB, trimE int, blen func(id int) int, collected []*Gap) []*Gap {
	q, ok := qstore.Get(aread)
	if !ok {
		return nil
	}

	segFirst := trimB / twidth
	segLast := (trimE + twidth - 1) / twidth
	if segLast > len(q) {
		segLast = len(q)
	}
	if segFirst < 0 {
		segFirst = 0
	}
	for segFirst < segLast && q[segFirst] == 0 {
		segFirst++
	}
	for segLast > segFirst && q[segLast-1] == 0 {
		segLast--
	}

	var gaps []*Gap
	for i := segFirst; i < segLast; i++ {
		if !(q[i] == 0 || int(q[i]) >= lowq) {
			continue
		}

		ab := i * twidth
		ae := ab + twidth

		if insideAny(collected, ab, ae) {
			continue
		}

		// support: overlaps whose A-endpoint falls inside this segment
		// ("border"), independent of whether they qualify as a donor below.
		support := 0
		for k := range group {
			ovl := &group[k]
			if ovl.BRead == aread {
				continue
			}
			if (ovl.ABPos >= ab && ovl.ABPos < ae) || (ovl.AEPos >= ab && ovl.AEPos < ae) {
				support++
			}
		}

		span := 0
		var (
			haveBest              bool
			bestDiff              float64
			bestBB, bestBE, bestB int
			bestComp              bool
		)

		for k := range group {
			ovl := &group[k]
			if ovl.BRead == aread {
				continue
			}
			if ovl.ABPos > ab-localSpanMargin || ovl.AEPos < ae+localSpanMargin {
				continue
			}
			if len(ovl.Trace) == 0 {
				continue
			}

			bb, ok1 := tracePoint(ovl, twidth, ab)
			be, ok2 := tracePoint(ovl, twidth, ae)
			if !ok1 || !ok2 || bb >= be {
				continue
			}

			if ovl.Comp {
				l := blen(ovl.BRead)
				bb, be = l-be, l-bb
			}

			if maskContainsAny(dust.Get(ovl.BRead), track.PosType(bb), track.PosType(be)) {
				continue
			}

			qb, ok := qstore.Get(ovl.BRead)
			if !ok {
				continue
			}
			beg := bb / twidth
			end := be/twidth + 1
			if end > len(qb) {
				end = len(qb)
			}
			weak := false
			sum := 0
			for kk := beg; kk < end; kk++ {
				if qb[kk] == 0 {
					weak = true
				}
				sum += int(qb[kk])
			}
			if weak {
				continue
			}

			span++
			diff := 100.0 * float64(sum) / float64(be-bb)
			if !haveBest || diff < bestDiff {
				haveBest = true
				bestDiff = diff
				bestBB, bestBE = bb, be
				bestB = ovl.BRead
				bestComp = ovl.Comp
			}
		}

		if !haveBest {
			continue
		}

		gaps = append(gaps, &Gap{
			AB: ab, AE: ae,
			BB: bestBB, BE: bestBE,
			B:       bestB,
			Comp:    bestComp,
			Diff:    bestDiff,
			Span:    span,
			Support: support,
		})
	}
	return gaps
}
