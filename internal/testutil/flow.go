package testutil

// DefaultRunID is used when a scenario does not pin its own run ID.
const DefaultRunID = "test-run-default"

// FixedRunID returns the same run ID on every call so that golden traces
// stay byte-identical between runs.
type FixedRunID struct {
	id string
}

// NewFixedRunID returns a generator for id, or DefaultRunID if id is empty.
func NewFixedRunID(id string) *FixedRunID {
	if id == "" {
		id = DefaultRunID
	}
	return &FixedRunID{id: id}
}

// Generate returns the fixed run ID.
func (g *FixedRunID) Generate() string {
	return g.id
}
