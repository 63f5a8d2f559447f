package track

import "testing"

func TestIntervalsContains(t *testing.T) {
	ivs := Intervals{{Begin: 10, End: 20}, {Begin: 30, End: 40}}
	for _, tc := range []struct {
		pos  PosType
		want bool
	}{
		{5, false},
		{10, true},
		{19, true},
		{20, false},
		{35, true},
		{45, false},
	} {
		if got := ivs.Contains(tc.pos); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.pos, got, tc.want)
		}
	}
}

func TestIntervalsContainsInterval(t *testing.T) {
	ivs := Intervals{{Begin: 10, End: 20}}
	if !ivs.ContainsInterval(12, 18) {
		t.Error("expected [12,18) to be contained in [10,20)")
	}
	if ivs.ContainsInterval(5, 15) {
		t.Error("did not expect [5,15) to be contained")
	}
	if ivs.ContainsInterval(8, 25) {
		t.Error("did not expect a wider interval to be contained")
	}
}

func TestIntervalsOverlaps(t *testing.T) {
	ivs := Intervals{{Begin: 10, End: 20}, {Begin: 30, End: 40}}
	if !ivs.Overlaps(15, 35) {
		t.Error("expected overlap")
	}
	if ivs.Overlaps(20, 30) {
		t.Error("did not expect overlap in the gap")
	}
}

func TestQualityBad(t *testing.T) {
	q := Quality{0, 5, 50, 99}
	if !q.Bad(0, 30) {
		t.Error("sentinel 0 should always be bad")
	}
	if q.Bad(1, 30) {
		t.Error("5 should not be bad at threshold 30")
	}
	if !q.Bad(2, 30) {
		t.Error("50 should be bad at threshold 30")
	}
}

func TestSearchEndpoints(t *testing.T) {
	endpoints := Intervals{{Begin: 5, End: 15}, {Begin: 20, End: 25}}.Endpoints()
	cases := []struct {
		pos       PosType
		contained bool
	}{
		{0, false},
		{5, true},
		{14, true},
		{15, false},
		{22, true},
		{26, false},
	}
	for _, tc := range cases {
		ei := SearchEndpoints(endpoints, tc.pos+1)
		if got := ei.Contained(); got != tc.contained {
			t.Errorf("pos %d: Contained() = %v, want %v", tc.pos, got, tc.contained)
		}
	}
}
