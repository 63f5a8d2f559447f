package repair

import (
	"github.com/grailbio/readfix/readdb"
	"github.com/pkg/errors"
)

// mapSegment is one piece of the piecewise map from a read's original
// coordinates to its patched-output coordinates. Kept segments carry the
// original A-span through with a constant offset; replaced segments mark a
// gap that was spliced out and have no meaningful original coordinates
// inside them.
type mapSegment struct {
	OldB, OldE int
	NewB, NewE int
	Replaced   bool
}

// PatchMap is the ordered, non-overlapping sequence of map segments covering
// [trimB, trimE) of the original read.
type PatchMap []mapSegment

// assemblePatch implements the patch assembler (component 4.5): it walks the
// trimmed read interleaving kept A-spans with donor B-spans at each accepted
// gap, producing the patched sequence, its parallel per-base quality
// streams (sliced/concatenated/reversed alongside the sequence, never
// complemented), and the coordinate map later used to remap tracks. qscratch
// is reused across calls the same way scratch is; both may be resized.
func assemblePatch(db readdb.Database, aread int, trimB, trimE int, gaps []*Gap, scratch *[]byte, qscratch *[][]byte) ([]byte, [][]byte, PatchMap, error) {
	var full []byte
	if _, err := db.LoadRead(aread, &full); err != nil {
		return nil, nil, nil, errors.Wrapf(err, "loading read %d", aread)
	}

	k := db.NumQualityStreams()
	var fullQ [][]byte
	if k > 0 {
		fullQ = make([][]byte, k)
		if err := db.LoadQuality(aread, fullQ); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "loading quality streams for read %d", aread)
		}
	}

	out := (*scratch)[:0]
	outQ := resetQualityScratch(qscratch, k)
	var pmap PatchMap
	cur := trimB

	emitKept := func(b, e int) {
		if e <= b {
			return
		}
		newB := len(out)
		out = append(out, full[b:e]...)
		for i := 0; i < k; i++ {
			outQ[i] = append(outQ[i], fullQ[i][b:e]...)
		}
		pmap = append(pmap, mapSegment{OldB: b, OldE: e, NewB: newB, NewE: len(out)})
	}

	for _, g := range gaps {
		if g.Retired() {
			continue
		}
		if g.AB < cur || g.AE > trimE {
			continue
		}

		emitKept(cur, g.AB)

		var donor []byte
		if _, err := db.LoadRead(g.B, &donor); err != nil {
			return nil, nil, nil, errors.Wrapf(err, "loading donor read %d", g.B)
		}
		if g.BB < 0 || g.BE > len(donor) || g.BB >= g.BE {
			return nil, nil, nil, errors.Errorf("gap donor range [%d,%d) out of bounds for read %d (len %d)", g.BB, g.BE, g.B, len(donor))
		}
		donorSpan := append([]byte(nil), donor[g.BB:g.BE]...)
		if g.Comp {
			reverseComplement(donorSpan, donorSpan)
		}

		var donorQ [][]byte
		if k > 0 {
			donorQ = make([][]byte, k)
			if err := db.LoadQuality(g.B, donorQ); err != nil {
				return nil, nil, nil, errors.Wrapf(err, "loading donor quality streams for read %d", g.B)
			}
		}

		newB := len(out)
		out = append(out, donorSpan...)
		for i := 0; i < k; i++ {
			qs := append([]byte(nil), donorQ[i][g.BB:g.BE]...)
			if g.Comp {
				reverseBytes(qs)
			}
			outQ[i] = append(outQ[i], qs...)
		}
		pmap = append(pmap, mapSegment{OldB: g.AB, OldE: g.AE, NewB: newB, NewE: len(out), Replaced: true})

		cur = g.AE
	}

	emitKept(cur, trimE)

	*scratch = out
	*qscratch = outQ
	return out, outQ, pmap, nil
}

// resetQualityScratch reuses *qscratch's backing streams across calls,
// resizing the outer slice only when the stream count changes.
func resetQualityScratch(qscratch *[][]byte, k int) [][]byte {
	if len(*qscratch) != k {
		*qscratch = make([][]byte, k)
	}
	out := *qscratch
	for i := range out {
		out[i] = out[i][:0]
	}
	return out
}
