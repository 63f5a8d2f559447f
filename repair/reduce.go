package repair

import (
	"sort"

	"github.com/grailbio/readfix/track"
)

// reduceConfig bundles the thresholds the candidate reducer applies.
type reduceConfig struct {
	TWidth int // W: segment width the size and quality filters align to.
	MaxGap int // -g: a candidate's A-length or donor-length at or above this is withdrawn.
	LowQ   int // -Q: quality-corroboration threshold.
}

// mergeEqualMaxDiff bounds how much donor length may differ for two
// identical-A-interval candidates to still be considered duplicates of the
// same event (step 2).
const mergeEqualMaxDiff = 40

// maxSpanReject is the excess-span rejection threshold (step 4): a region
// crossed cleanly by more overlaps than this is not actually broken.
const maxSpanReject = 10

// minSupport is the quality-corroboration filter's support floor (step 5).
const minSupport = 5

// reduceGaps implements the candidate reducer (component 4.4): a size
// filter, an exact-interval merge, an overlapping-interval merge, an
// excess-span rejection, and a quality-corroboration filter, each
// withdrawing losers by retiring them rather than removing them from the
// slice, followed by a single compaction and a final Span recomputation.
// spanReject is the spanner predicate (MIN_SPAN margin) used by the
// excess-span rejection; spanRecompute is the narrower-margin predicate used
// to set each survivor's final Span.
func reduceGaps(gaps []*Gap, cfg reduceConfig, aq track.Quality, spanReject, spanRecompute func(ab, ae int) int) []*Gap {
	sortByABAEDiff(gaps)

	sizeFilter(gaps, cfg.MaxGap)
	mergeEqual(gaps)
	mergeOverlapping(gaps)
	spanFilter(gaps, spanReject)
	qualityFilter(gaps, cfg.TWidth, cfg.LowQ, aq)

	gaps = compact(gaps)
	sortByABAEDiff(gaps)

	for _, g := range gaps {
		g.Span = spanRecompute(g.AB, g.AE)
	}
	return gaps
}

func sortByABAEDiff(gaps []*Gap) {
	sort.Slice(gaps, func(i, j int) bool {
		a, b := gaps[i], gaps[j]
		if a.AB != b.AB {
			return a.AB < b.AB
		}
		if a.AE != b.AE {
			return a.AE < b.AE
		}
		return a.Diff < b.Diff
	})
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sizeFilter withdraws candidates whose A-span or donor-span reaches
// maxgap: a gap or weak region this large is not a plausible single patch
// and is left unpatched (step 1).
func sizeFilter(gaps []*Gap, maxgap int) {
	for _, g := range gaps {
		if g.Retired() {
			continue
		}
		if g.ALen() >= maxgap || absInt(g.BLen()) >= maxgap {
			g.Retire()
		}
	}
}

// mergeEqual collapses candidates sharing an identical A-interval whose
// donor lengths differ by fewer than mergeEqualMaxDiff bases into the
// earliest (already best-Diff, since gaps are sorted) survivor, summing
// Support and withdrawing the rest (step 2).
func mergeEqual(gaps []*Gap) {
	type key struct{ ab, ae int }
	kept := make(map[key]*Gap)
	for _, g := range gaps {
		if g.Retired() {
			continue
		}
		k := key{g.AB, g.AE}
		existing, ok := kept[k]
		if !ok {
			kept[k] = g
			continue
		}
		if absInt(g.BLen()-existing.BLen()) >= mergeEqualMaxDiff {
			continue
		}
		existing.Support += g.Support
		g.Retire()
	}
}

// mergeOverlapping withdraws the lower-support candidate of any pair whose
// A-intervals overlap, folding its support into the survivor without
// touching the survivor's A-interval or donor (step 3). Ties favor the
// later candidate in (ab, ae, diff) order. gaps must already be sorted by
// AB ascending.
func mergeOverlapping(gaps []*Gap) {
	for i := 0; i < len(gaps); i++ {
		a := gaps[i]
		if a.Retired() {
			continue
		}
		for j := i + 1; j < len(gaps); j++ {
			b := gaps[j]
			if b.Retired() {
				continue
			}
			if b.AB >= a.AE {
				break
			}
			if b.Support >= a.Support {
				b.Support += a.Support
				a.Retire()
				break
			}
			a.Support += b.Support
			b.Retire()
		}
	}
}

// spanFilter withdraws any candidate already cleanly crossed by more than
// maxSpanReject ordinary overlaps: the region is well supported and is not
// actually broken (step 4).
func spanFilter(gaps []*Gap, spanningCount func(ab, ae int) int) {
	for _, g := range gaps {
		if g.Retired() {
			continue
		}
		if spanningCount(g.AB, g.AE) > maxSpanReject {
			g.Retire()
		}
	}
}

// qualityFilter retains only candidates with Support >= minSupport and at
// least one W-segment inside [ab/W, ae/W) whose A-quality is the sentinel
// or at/above lowq (step 5).
func qualityFilter(gaps []*Gap, twidth, lowq int, aq track.Quality) {
	for _, g := range gaps {
		if g.Retired() {
			continue
		}
		if g.Support < minSupport {
			g.Retire()
			continue
		}
		segB := g.AB / twidth
		segE := g.AE / twidth
		if segE > len(aq) {
			segE = len(aq)
		}
		corroborated := false
		for i := segB; i < segE; i++ {
			if aq[i] == 0 || int(aq[i]) >= lowq {
				corroborated = true
				break
			}
		}
		if !corroborated {
			g.Retire()
		}
	}
}

// compact removes retired candidates in place, preserving the order of the
// survivors.
func compact(gaps []*Gap) []*Gap {
	out := gaps[:0]
	for _, g := range gaps {
		if !g.Retired() {
			out = append(out, g)
		}
	}
	return out
}
