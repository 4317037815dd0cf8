package testutil

import "fmt"

// FixedPassIDs returns predetermined update-pass IDs for deterministic log
// and snapshot output. After the fixed IDs are exhausted it keeps counting
// ("pass-4", "pass-5", ...) so long scenarios never panic mid-run.
type FixedPassIDs struct {
	ids []string
	idx int
}

// NewFixedPassIDs creates a generator returning the given IDs in order.
func NewFixedPassIDs(ids ...string) *FixedPassIDs {
	return &FixedPassIDs{ids: ids}
}

// Generate returns the next pass ID.
func (g *FixedPassIDs) Generate() string {
	g.idx++
	if g.idx <= len(g.ids) {
		return g.ids[g.idx-1]
	}
	return fmt.Sprintf("pass-%d", g.idx)
}
