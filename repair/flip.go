package repair

import "github.com/grailbio/readfix/overlap"

// minSpan is MIN_SPAN: only overlaps extending at least this many bases on
// both sides of an A-interval count as "spanning" it. Used by the flip
// detector and the candidate reducer's excess-span rejection (step 4).
const minSpan = 400

// localSpanMargin is the narrower margin the weak-region scanner uses to
// find overlaps qualifying as donors, and the candidate reducer uses to
// recompute each survivor's final Span -- distinct from the wider minSpan
// margin above.
const localSpanMargin = 100

// spanners counts overlaps in ovls that extend at least minSpan bases to
// both sides of [lo, hi).
func spanners(ovls []overlap.Overlap, lo, hi int) int {
	n := 0
	for i := range ovls {
		if ovls[i].ABPos < lo-minSpan && ovls[i].AEPos > hi+minSpan {
			n++
		}
	}
	return n
}

// localSpanners counts overlaps in ovls with abpos+localSpanMargin < lo and
// aepos-localSpanMargin > hi.
func localSpanners(ovls []overlap.Overlap, lo, hi int) int {
	n := 0
	for i := range ovls {
		if ovls[i].ABPos+localSpanMargin < lo && ovls[i].AEPos-localSpanMargin > hi {
			n++
		}
	}
	return n
}

func intersect(b1, e1, b2, e2 int) bool {
	return b1 < e2 && b2 < e1
}

// applyCut folds a chimera-split cut, spanning [lo, hi), into the trim
// window, keeping whichever side of the cut is larger. A point cut (e.g.
// the midpoint of a self-overlap gap) is expressed as lo == hi. Returns
// whether the window was adjusted.
func applyCut(trimB, trimE *int, lo, hi int) bool {
	if *trimB < lo && hi < *trimE {
		if lo-*trimB < *trimE-hi {
			*trimB = hi
		} else {
			*trimE = lo
		}
		return true
	}
	return false
}

// selfOverlapRange returns the contiguous run of overlaps in group whose
// B-read equals aread. Overlaps for a given A-read are delivered sorted by
// B-read, so self-overlaps (if any) always form one contiguous block.
func selfOverlapRange(group []overlap.Overlap, aread int) (b, e int) {
	b = -1
	for i := range group {
		if group[i].BRead == aread {
			if b == -1 {
				b = i
			}
			e = i + 1
		} else if b != -1 {
			break
		}
	}
	return b, e
}

// detectFlips implements the flip detector (component 4.1): it inspects
// A's self-overlaps for evidence of a chimeric fold (a forward-strand
// A-interval whose reverse-complement mirror also falls inside the read)
// and narrows [trimB, trimE) around the fold. It reports whether any
// adjustment was made.
func detectFlips(aread int, group []overlap.Overlap, alen, twidth int, trimB, trimE *int) bool {
	b, e := selfOverlapRange(group, aread)
	if b == -1 {
		return false
	}

	selfComp := 0
	for i := b; i < e; i++ {
		if group[i].Comp {
			selfComp++
		}
	}
	if selfComp == 0 {
		return false
	}

	flipped := false

	for i := b; i < e; i++ {
		ovl := &group[i]
		if !ovl.Comp {
			continue
		}

		ab, ae := ovl.ABPos, ovl.AEPos
		abC, aeC := alen-ovl.BEPos, alen-ovl.BBPos
		if !intersect(ab, ae, abC, aeC) {
			continue
		}
		if len(ovl.Trace) < 2 {
			continue
		}

		sab := ovl.ABPos
		sae := (sab/twidth + 1) * twidth
		sbb := ovl.BBPos
		sbe := sbb + ovl.Trace[0].BLen

		for p := 1; p < len(ovl.Trace)-1; p++ {
			if intersect(sab, sae, alen-sbe, alen-sbb) {
				if applyCut(trimB, trimE, sab, sae) {
					flipped = true
				}
			}
			sab = sae
			sae += twidth
			sbb = sbe
			sbe += ovl.Trace[p].BLen
		}
	}

	for i := b; i < e-1; i++ {
		ovl, ovl2 := &group[i], &group[i+1]
		if !ovl.Comp || !ovl2.Comp {
			continue
		}

		ab := ovl.AEPos
		ae := ovl2.ABPos
		abC := alen - ovl2.BBPos
		aeC := alen - ovl.BEPos

		if intersect(ab, ae, abC, aeC) && spanners(group, ab, ae) <= 1 {
			mid := (ab + ae) / 2
			if applyCut(trimB, trimE, mid, mid) {
				flipped = true
			}
		}
	}

	return flipped
}
