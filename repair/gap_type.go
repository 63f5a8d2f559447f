package repair

// Gap is a candidate repair interval: either an inter-overlap A-gap (from
// the gap collector) or an intra-read weak region (from the weak-region
// scanner). See the data model's "Gap candidate" section.
type Gap struct {
	AB, AE int // A-interval to replace, always W-aligned on both ends.
	BB, BE int // Donor B-interval, in B's forward coordinates.
	B      int // Donor read id.
	Comp   bool

	Diff    float64 // Average quality over the donor window; lower is better.
	Support int     // Count of independent evidence events.
	Span    int     // Count of overlaps strictly spanning the candidate with margin.

	retired bool
}

// Retire withdraws the candidate: it is dropped by the reducer's final
// compaction and never reaches the assembler.
func (g *Gap) Retire() {
	g.retired = true
	g.Support = -1
}

// Retired reports whether the candidate has been withdrawn.
func (g *Gap) Retired() bool {
	return g.retired
}

// ALen returns AE - AB.
func (g *Gap) ALen() int { return g.AE - g.AB }

// BLen returns BE - BB.
func (g *Gap) BLen() int { return g.BE - g.BB }
