/*
bio-readfix patches long reads using overlaps to their peers: it trims
chimeric folds, splices donor sequence across unsupported gaps and
intrinsic low-quality regions, and remaps any tracks supplied for the
input reads onto the patched output.
*/
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/readfix/fastaio"
	"github.com/grailbio/readfix/overlap"
	"github.com/grailbio/readfix/readdb"
	"github.com/grailbio/readfix/repair"
	"github.com/grailbio/readfix/track"
	"github.com/klauspost/compress/gzip"
)

// trackSpec is one -c name=path pair.
type trackSpec struct{ name, path string }

// userTrackFlag accumulates -c across repetitions, since flag doesn't
// natively support repeatable flags.
type userTrackFlag []trackSpec

func (f *userTrackFlag) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(*f))
	for i, t := range *f {
		parts[i] = t.name + "=" + t.path
	}
	return strings.Join(parts, ",")
}

func (f *userTrackFlag) Set(s string) error {
	nameAndPath := strings.SplitN(s, "=", 2)
	if len(nameAndPath) != 2 {
		return fmt.Errorf("-c: expected name=path, got %q", s)
	}
	*f = append(*f, trackSpec{name: nameAndPath[0], path: nameAndPath[1]})
	return nil
}

var (
	minLen = flag.Int("x", repair.DefaultConfig.MinLen, "Discard a read if fewer than this many bases survive trimming")
	lowq   = flag.Int("Q", repair.DefaultConfig.LowQ, "A segment quality of 0 or at least this marks the segment weak")
	maxGap = flag.Int("g", repair.DefaultConfig.MaxGap, "Maximum A- or donor-length of a patchable gap")
	qvOut  = flag.String("q", "", "If set, emit the parallel quality streams of patched reads to this path")
	trim   = flag.String("t", "", "Trim track to apply (optional)")

	userTracks userTrackFlag

	qtrackPath  = flag.String("qtrack", "", "Path to the per-segment quality track (required)")
	dustPath    = flag.String("dust", "", "Path to the low-complexity mask track (required)")
	qvPath      = flag.String("qv", "", "Path to the database's parallel per-base quality-stream file (optional; required to use -q)")
	qvStreams   = flag.Int("qv-streams", 0, "Number of parallel quality streams in -qv; required if -qv is set")
	parallelism = flag.Int("parallelism", 0, "Maximum number of read groups repaired concurrently; 0 = runtime.NumCPU()")
)

func init() {
	flag.Var(&userTracks, "c", "Append a user annotation track to remap, as name=path; may repeat")
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] reads.fasta overlaps.las out.fasta\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 3 {
		log.Fatalf("expected 3 positional arguments (reads.fasta overlaps.las out.fasta), got %d", flag.NArg())
	}
	readsPath := flag.Arg(0)
	overlapsPath := flag.Arg(1)
	outPath := flag.Arg(2)

	if *qtrackPath == "" {
		log.Fatalf("-qtrack is required")
	}
	if *dustPath == "" {
		log.Fatalf("-dust is required")
	}

	db, err := openDB(readsPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	qstore, err := loadQuality(*qtrackPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	dust, err := loadIntervals(*dustPath, "dust")
	if err != nil {
		log.Fatalf("%v", err)
	}
	trimStore, err := loadTrim(*trim)
	if err != nil {
		log.Fatalf("%v", err)
	}
	loadedUserTracks, err := loadUserTracks(userTracks)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx := &repair.Context{
		DB:         db,
		QV:         qstore,
		Dust:       dust,
		Trim:       trimStore,
		UserTracks: loadedUserTracks,
		Cfg: repair.Config{
			TWidth: repair.DefaultConfig.TWidth,
			MinLen: *minLen,
			LowQ:   *lowq,
			MaxGap: *maxGap,
		},
	}

	groups, err := loadGroups(overlapsPath)
	if err != nil {
		log.Fatalf("%v", err)
	}

	out, err := os.Create(outPath)
	if err != nil {
		log.Fatalf("creating %s: %v", outPath, err)
	}
	defer out.Close()

	var qvw *os.File
	if *qvOut != "" {
		qvw, err = os.Create(*qvOut)
		if err != nil {
			log.Fatalf("creating %s: %v", *qvOut, err)
		}
		defer qvw.Close()
	}

	if err := runRepair(ctx, groups, out, qvw); err != nil {
		log.Fatalf("%v", err)
	}
}

// openInput opens path for reading, transparently wrapping it in a gzip
// reader when its name indicates a .gz file. Mirrors how the original
// interval-track loader picks gzip vs. plain readers by extension.
func openInput(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if fileio.DetermineType(path) != fileio.Gzip {
		return f, nil
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return gzipReadCloser{gz, f}, nil
}

// gzipReadCloser closes both the gzip reader and the underlying file.
type gzipReadCloser struct {
	*gzip.Reader
	f *os.File
}

func (g gzipReadCloser) Close() error {
	gzErr := g.Reader.Close()
	fErr := g.f.Close()
	if gzErr != nil {
		return gzErr
	}
	return fErr
}

func openDB(readsPath string) (*readdb.FastaDB, error) {
	f, err := openInput(readsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if *qvPath == "" {
		return readdb.Open(f, nil, 0)
	}
	if *qvStreams == 0 {
		return nil, fmt.Errorf("-qv-streams is required when -qv is set")
	}
	qv, err := openInput(*qvPath)
	if err != nil {
		return nil, err
	}
	defer qv.Close()
	return readdb.Open(f, qv, *qvStreams)
}

func loadQuality(path string) (*track.QualityStore, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return track.LoadQuality(f)
}

func loadIntervals(path, name string) (*track.IntervalStore, error) {
	if path == "" {
		return nil, nil
	}
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return track.LoadIntervals(f, name)
}

// loadUserTracks loads the tracks named by a repeated -c name=path flag.
func loadUserTracks(specs []trackSpec) ([]*track.IntervalStore, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	var tracks []*track.IntervalStore
	for _, sp := range specs {
		ivs, err := loadIntervals(sp.path, sp.name)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, ivs)
	}
	return tracks, nil
}

func loadTrim(path string) (*track.TrimStore, error) {
	if path == "" {
		return nil, nil
	}
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return track.LoadTrim(f)
}

type readGroup struct {
	aread int
	group []overlap.Overlap
}

func loadGroups(path string) ([]readGroup, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var groups []readGroup
	gr := overlap.NewGroupReader(f)
	for {
		aread, group, ok := gr.Next()
		if !ok {
			break
		}
		groups = append(groups, readGroup{aread: aread, group: group})
	}
	return groups, gr.Err()
}

// remappedTrackNames lists the tracks that survived remapping onto a read's
// patched output, for the FASTA header's "track=" field.
func remappedTrackNames(res *repair.Result) []string {
	var names []string
	if len(res.RemappedDust) > 0 {
		names = append(names, "dust")
	}
	for name, ivs := range res.RemappedTracks {
		if len(ivs) > 0 {
			names = append(names, name)
		}
	}
	return names
}

// runRepair fans the read groups out across parallelism workers, each
// accumulating its own FASTA (and, if qvOut is non-nil, quality-stream)
// output in memory, then concatenates the buffers in group order so the
// result is reproducible regardless of completion order. This mirrors how
// the original pileup tool shards its reference-genome work across
// traverse.Each.
func runRepair(ctx *repair.Context, groups []readGroup, out *os.File, qvOut *os.File) error {
	n := *parallelism
	if n == 0 {
		n = runtime.NumCPU()
	}
	if n > len(groups) {
		n = len(groups)
	}
	if n == 0 {
		return nil
	}

	bufs := make([][]byte, n)
	qbufs := make([][]byte, n)

	err := traverse.Each(n, func(jobIdx int) error {
		lo := (jobIdx * len(groups)) / n
		hi := ((jobIdx + 1) * len(groups)) / n

		var scratch []byte
		var qscratch [][]byte
		w := &bytes.Buffer{}
		writer := fastaio.NewWriter(w)

		var qw *bytes.Buffer
		var qualityWriter *fastaio.Writer
		if qvOut != nil {
			qw = &bytes.Buffer{}
			qualityWriter = fastaio.NewWriter(qw)
		}

		for i := lo; i < hi; i++ {
			res, err := repair.ProcessRead(ctx, groups[i].aread, groups[i].group, &scratch, &qscratch)
			if err != nil {
				return err
			}
			if res.Discarded {
				continue
			}
			names := remappedTrackNames(res)
			if res.NumGaps > 0 {
				err = writer.WriteFixed(res.ReadID, res.ReadID, res.Seq, names)
			} else {
				err = writer.WriteTrimmed(res.ReadID, res.ReadID, res.Seq, names)
			}
			if err != nil {
				return err
			}
			if qualityWriter != nil && res.QualityStreams != nil {
				if err := qualityWriter.WriteQuality(res.ReadID, len(res.Seq), res.QualityStreams); err != nil {
					return err
				}
			}
		}
		if err := writer.Flush(); err != nil {
			return err
		}
		bufs[jobIdx] = w.Bytes()

		if qualityWriter != nil {
			if err := qualityWriter.Flush(); err != nil {
				return err
			}
			qbufs[jobIdx] = qw.Bytes()
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, b := range bufs {
		if _, err := out.Write(b); err != nil {
			return err
		}
	}
	if qvOut != nil {
		for _, b := range qbufs {
			if _, err := qvOut.Write(b); err != nil {
				return err
			}
		}
	}
	return nil
}
