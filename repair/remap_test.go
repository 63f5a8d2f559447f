package repair

import (
	"testing"

	"github.com/grailbio/readfix/track"
	"github.com/stretchr/testify/assert"
)

func identityMap(n int) PatchMap {
	return PatchMap{{OldB: 0, OldE: n, NewB: 0, NewE: n}}
}

func TestRemapPosThroughReplacedSegment(t *testing.T) {
	pmap := PatchMap{
		{OldB: 0, OldE: 4, NewB: 0, NewE: 4},
		{OldB: 4, OldE: 6, NewB: 4, NewE: 6, Replaced: true},
		{OldB: 6, OldE: 10, NewB: 6, NewE: 10},
	}
	// Strictly inside the replaced span: no meaningful position.
	_, ok := remapPos(pmap, 5)
	assert.False(t, ok)

	// The replaced segment's own boundaries still map.
	pos, ok := remapPos(pmap, 6)
	assert.True(t, ok)
	assert.Equal(t, 6, pos)
}

func TestRemapIntervalWithinKeptSegment(t *testing.T) {
	pmap := identityMap(1000)
	out := remapInterval(pmap, 2, 8)
	assert.Equal(t, track.Intervals{{Begin: 2, End: 8}}, out)
}

func TestRemapIntervalDropsSliver(t *testing.T) {
	pmap := identityMap(1000)
	out := remapInterval(pmap, 0, 3) // len 3 < minIntLen
	assert.Empty(t, out)
}

func TestRemapIntervalsMultiple(t *testing.T) {
	pmap := identityMap(1000)
	ivs := track.Intervals{{Begin: 10, End: 20}, {Begin: 100, End: 103}}
	out := remapIntervals(pmap, ivs)
	// The second interval (len 3) is a sliver and is dropped.
	assert.Equal(t, track.Intervals{{Begin: 10, End: 20}}, out)
}

