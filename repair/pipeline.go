package repair

import (
	"github.com/grailbio/readfix/overlap"
	"github.com/grailbio/readfix/readdb"
	"github.com/grailbio/readfix/track"
	"github.com/pkg/errors"
)

// Config bundles the tunable thresholds of the repair pipeline.
type Config struct {
	TWidth int // W: segment width; fixed by the overlap trace spacing, not a CLI flag.
	MinLen int // -x: minimum surviving read length, applied after trimming.
	LowQ   int // -Q: quality track values of 0 or at/above this mark a segment weak.
	MaxGap int // -g: a candidate's A-length or donor-length at or above this is withdrawn.
}

// DefaultConfig mirrors the original tool's defaults.
var DefaultConfig = Config{
	TWidth: 100,
	MinLen: 1000,
	LowQ:   28,
	MaxGap: 500,
}

// Context holds everything a single read's repair needs that does not
// change across reads in a run. UserTracks are optional annotation tracks
// (e.g. "repeat", "primer") remapped alongside Dust for every patched read;
// they carry through to Result.RemappedTracks under the same name.
type Context struct {
	DB         readdb.Database
	QV         *track.QualityStore
	Dust       *track.IntervalStore
	Trim       *track.TrimStore
	UserTracks []*track.IntervalStore
	Cfg        Config
}

// Result is the outcome of repairing one read.
type Result struct {
	ReadID       int
	TrimB, TrimE int
	Seq          []byte
	PatchMap     PatchMap
	NumGaps      int
	Flipped      bool
	Discarded    bool // read fell below MinLen after trimming; no output produced.

	// QualityStreams holds the K parallel per-base quality streams for Seq,
	// each of length len(Seq), in database stream order. Nil when the
	// database carries no quality streams (NumQualityStreams() == 0).
	QualityStreams [][]byte

	RemappedDust   track.Intervals
	RemappedTracks map[string]track.Intervals
}

// ProcessRead implements the per-read orchestration: it trims and
// flip-detects the read, collects gap and weak-region candidates, reduces
// them to a final patch set, and assembles the patched sequence and its
// quality streams. It reuses *scratch and *qscratch across calls to avoid
// reallocating the output buffers for every read.
func ProcessRead(ctx *Context, aread int, group []overlap.Overlap, scratch *[]byte, qscratch *[][]byte) (*Result, error) {
	cfg := ctx.Cfg
	alen := ctx.DB.ReadLen(aread)

	trimB64, trimE64 := track.Trim(ctx.Trim, aread, track.PosType(alen))
	trimB, trimE := int(trimB64), int(trimE64)

	flipped := detectFlips(aread, group, alen, cfg.TWidth, &trimB, &trimE)

	if trimE-trimB < cfg.MinLen {
		return &Result{ReadID: aread, Discarded: true, Flipped: flipped}, nil
	}

	blen := ctx.DB.ReadLen

	collected := collectGaps(group, cfg.TWidth, ctx.QV, ctx.Dust, blen)
	weak := scanWeakRegions(aread, group, ctx.QV, ctx.Dust, cfg.TWidth, cfg.LowQ, trimB, trimE, blen, collected)

	gaps := append(append([]*Gap(nil), collected...), weak...)
	gaps = withinWindow(gaps, trimB, trimE)

	aq, _ := ctx.QV.Get(aread)
	spanReject := func(ab, ae int) int { return spanners(group, ab, ae) }
	spanRecompute := func(ab, ae int) int { return localSpanners(group, ab, ae) }
	gaps = reduceGaps(gaps, reduceConfig{TWidth: cfg.TWidth, MaxGap: cfg.MaxGap, LowQ: cfg.LowQ}, aq, spanReject, spanRecompute)

	if len(gaps) == 0 {
		// Fast path (component 4.7, no-patch case): the trimmed read passes
		// through unpatched, still identity-mapped for track remapping.
		seq := (*scratch)[:0]
		var full []byte
		if _, err := ctx.DB.LoadRead(aread, &full); err != nil {
			return nil, errors.Wrapf(err, "loading read %d", aread)
		}
		seq = append(seq, full[trimB:trimE]...)
		*scratch = seq

		var qs [][]byte
		if k := ctx.DB.NumQualityStreams(); k > 0 {
			fullQ := make([][]byte, k)
			if err := ctx.DB.LoadQuality(aread, fullQ); err != nil {
				return nil, errors.Wrapf(err, "loading quality streams for read %d", aread)
			}
			qs = make([][]byte, k)
			for i := 0; i < k; i++ {
				qs[i] = append([]byte(nil), fullQ[i][trimB:trimE]...)
			}
		}

		pmap := PatchMap{{OldB: trimB, OldE: trimE, NewB: 0, NewE: len(seq)}}
		res := &Result{
			ReadID: aread, TrimB: trimB, TrimE: trimE,
			Seq: seq, PatchMap: pmap, Flipped: flipped, QualityStreams: qs,
		}
		ctx.remapTracks(aread, res)
		return res, nil
	}

	seq, qs, pmap, err := assemblePatch(ctx.DB, aread, trimB, trimE, gaps, scratch, qscratch)
	if err != nil {
		return nil, errors.Wrapf(err, "assembling patch for read %d", aread)
	}

	res := &Result{
		ReadID: aread, TrimB: trimB, TrimE: trimE,
		Seq: seq, PatchMap: pmap, NumGaps: len(gaps), Flipped: flipped,
		QualityStreams: qs,
	}
	ctx.remapTracks(aread, res)
	return res, nil
}

// remapTracks fills in res's remapped-track fields by running the patch
// assembler's coordinate map (component 4.6) over the dust mask and every
// configured user annotation track.
func (ctx *Context) remapTracks(aread int, res *Result) {
	res.RemappedDust = remapIntervals(res.PatchMap, ctx.Dust.Get(aread))

	if len(ctx.UserTracks) == 0 {
		return
	}
	res.RemappedTracks = make(map[string]track.Intervals, len(ctx.UserTracks))
	for _, t := range ctx.UserTracks {
		res.RemappedTracks[t.Name] = remapIntervals(res.PatchMap, t.Get(aread))
	}
}

// withinWindow drops candidates that fall outside [trimB, trimE): the gap
// collector does not look at the trim window at all, and weak-region
// candidates are W-aligned segments that can reach past an unaligned
// window edge.
func withinWindow(gaps []*Gap, trimB, trimE int) []*Gap {
	out := gaps[:0]
	for _, g := range gaps {
		if g.AB >= trimB && g.AE <= trimE {
			out = append(out, g)
		}
	}
	return out
}
