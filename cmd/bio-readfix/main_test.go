package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/grailbio/readfix/readdb"
	"github.com/grailbio/readfix/repair"
	"github.com/grailbio/readfix/track"
	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
)

// TestRunRepairEndToEnd drives runRepair against a tiny on-disk fixture,
// covering the same reads.fasta/overlaps.las/quality.track shapes the CLI
// reads in main, without going through flag parsing.
func TestRunRepairEndToEnd(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "bio-readfix")
	defer cleanup()

	readsPath := filepath.Join(tempDir, "reads.fasta")
	seq := strings.Repeat("A", 1200)
	assert.NoError(t, ioutil.WriteFile(readsPath, []byte(">a\n"+seq+"\n>b\n"+strings.Repeat("T", 200)+"\n"), 0644))

	readsFile, err := os.Open(readsPath)
	assert.NoError(t, err)
	defer readsFile.Close()
	db, err := readdb.Open(readsFile, nil, 0)
	assert.NoError(t, err)

	qualPath := filepath.Join(tempDir, "quality.track")
	assert.NoError(t, ioutil.WriteFile(qualPath, []byte("0 60 60 60 60 60 60 60 60 60 60 60 60\n"), 0644))
	qualFile, err := os.Open(qualPath)
	assert.NoError(t, err)
	defer qualFile.Close()
	qstore, err := track.LoadQuality(qualFile)
	assert.NoError(t, err)

	overlapsPath := filepath.Join(tempDir, "overlaps.las")
	assert.NoError(t, ioutil.WriteFile(overlapsPath, []byte("0 1 0 0 100 0 100 0\n"), 0644))
	groups, err := loadGroups(overlapsPath)
	assert.NoError(t, err)
	assert.Len(t, groups, 1)
	assert.Equal(t, 0, groups[0].aread)

	ctx := &repair.Context{DB: db, QV: qstore, Cfg: repair.DefaultConfig}

	outPath := filepath.Join(tempDir, "out.fasta")
	out, err := os.Create(outPath)
	assert.NoError(t, err)
	assert.NoError(t, runRepair(ctx, groups, out, nil))
	assert.NoError(t, out.Close())

	got, err := ioutil.ReadFile(outPath)
	assert.NoError(t, err)
	assert.Contains(t, string(got), ">trimmed_0 source=0")
	// WriteTrimmed wraps sequence lines at 60 columns, so the output carries
	// the full 1200 bases as twenty unbroken 60-column lines, not one.
	assert.Contains(t, string(got), strings.Repeat("A", 60))
	assert.Equal(t, len(seq), strings.Count(string(got), "A"))
}

// TestRunRepairWritesQualityStreams exercises the -qv/-q path: a database
// opened with parallel quality streams produces a sibling quality file
// alongside the FASTA output.
func TestRunRepairWritesQualityStreams(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "bio-readfix")
	defer cleanup()

	readsPath := filepath.Join(tempDir, "reads.fasta")
	seq := strings.Repeat("A", 1200)
	assert.NoError(t, ioutil.WriteFile(readsPath, []byte(">a\n"+seq+"\n"), 0644))
	readsFile, err := os.Open(readsPath)
	assert.NoError(t, err)
	defer readsFile.Close()

	qvPath := filepath.Join(tempDir, "reads.qv")
	qvLine := strings.Repeat("I", 1200) + "\n"
	assert.NoError(t, ioutil.WriteFile(qvPath, []byte(qvLine), 0644))
	qvFile, err := os.Open(qvPath)
	assert.NoError(t, err)
	defer qvFile.Close()

	db, err := readdb.Open(readsFile, qvFile, 1)
	assert.NoError(t, err)

	qualPath := filepath.Join(tempDir, "quality.track")
	assert.NoError(t, ioutil.WriteFile(qualPath, []byte("0 60 60 60 60 60 60 60 60 60 60 60 60\n"), 0644))
	qualFile, err := os.Open(qualPath)
	assert.NoError(t, err)
	defer qualFile.Close()
	qstore, err := track.LoadQuality(qualFile)
	assert.NoError(t, err)

	ctx := &repair.Context{DB: db, QV: qstore, Cfg: repair.DefaultConfig}
	groups := []readGroup{{aread: 0}}

	outPath := filepath.Join(tempDir, "out.fasta")
	out, err := os.Create(outPath)
	assert.NoError(t, err)

	qvOutPath := filepath.Join(tempDir, "out.qv")
	qvOut, err := os.Create(qvOutPath)
	assert.NoError(t, err)

	assert.NoError(t, runRepair(ctx, groups, out, qvOut))
	assert.NoError(t, out.Close())
	assert.NoError(t, qvOut.Close())

	got, err := ioutil.ReadFile(qvOutPath)
	assert.NoError(t, err)
	assert.Contains(t, string(got), "@fixed/0_1200 source=0")
	assert.Contains(t, string(got), strings.Repeat("I", 60))
}

func TestOpenInputPlain(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "bio-readfix")
	defer cleanup()

	p := filepath.Join(tempDir, "plain.txt")
	assert.NoError(t, ioutil.WriteFile(p, []byte("hello\n"), 0644))

	rc, err := openInput(p)
	assert.NoError(t, err)
	defer rc.Close()

	buf := make([]byte, 5)
	n, err := rc.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))
}

func TestLoadUserTracksParsesSpecs(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "bio-readfix")
	defer cleanup()

	p := filepath.Join(tempDir, "repeat.track")
	assert.NoError(t, ioutil.WriteFile(p, []byte("0 10 20\n"), 0644))

	tracks, err := loadUserTracks([]trackSpec{{name: "repeat", path: p}})
	assert.NoError(t, err)
	assert.Len(t, tracks, 1)
	assert.Equal(t, "repeat", tracks[0].Name)
	assert.Equal(t, track.Intervals{{Begin: 10, End: 20}}, tracks[0].Get(0))
}

func TestUserTrackFlagSet(t *testing.T) {
	var f userTrackFlag
	assert.NoError(t, f.Set("repeat=/tmp/repeat.track"))
	assert.NoError(t, f.Set("primer=/tmp/primer.track"))
	assert.Equal(t, userTrackFlag{{name: "repeat", path: "/tmp/repeat.track"}, {name: "primer", path: "/tmp/primer.track"}}, f)
	assert.Error(t, f.Set("noequalssign"))
}
