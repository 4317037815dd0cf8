package registry

import "github.com/google/uuid"

// PassIDGenerator produces correlation IDs for update passes. Every
// effective pass is stamped with one ID so its log lines can be grouped.
// Implemented by UUIDv7Generator (production) and testutil.FixedPassIDs
// (tests).
type PassIDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 pass IDs.
//
// UUIDv7 embeds a timestamp in the most significant bits, so pass IDs sort
// by creation time in log output.
//
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
