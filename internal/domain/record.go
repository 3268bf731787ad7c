package domain

import (
	"context"
	"time"
)

// ResolutionOutcome classifies the result of matching a raw location string
// against the canonical region set.
type ResolutionOutcome string

const (
	// OutcomeResolved means exactly one region matched.
	OutcomeResolved ResolutionOutcome = "resolved"
	// OutcomeAmbiguous means two or more regions matched. The literal marker
	// "multiple_states" travels with the record so downstream aggregation can
	// filter it as data, not as an error.
	OutcomeAmbiguous ResolutionOutcome = "multiple_states"
	// OutcomeUnresolved means the input was missing or matched no region.
	OutcomeUnresolved ResolutionOutcome = "unresolved"
)

// Resolution is the region assignment for one record. State holds the
// canonical region name only when Outcome is OutcomeResolved.
type Resolution struct {
	Outcome ResolutionOutcome
	State   string
}

// Resolved reports whether the record carries a usable region assignment.
func (r Resolution) Resolved() bool {
	return r.Outcome == OutcomeResolved
}

// Record is one input item: free text with a noisy location string and a
// timestamp. Resolution is assigned exactly once by the resolver and never
// mutated afterward.
type Record struct {
	ID          int64
	RawLocation *string
	Text        string
	Timestamp   time.Time
	Resolution  Resolution
}

// Coverage summarizes resolution outcomes over one batch. Reported alongside
// every sentiment report: silently losing unresolved records would change the
// comparability of before/after record counts.
type Coverage struct {
	Resolved   int `json:"resolved"`
	Ambiguous  int `json:"ambiguous"`
	Unresolved int `json:"unresolved"`
}

// Total returns the number of records the batch contained.
func (c Coverage) Total() int {
	return c.Resolved + c.Ambiguous + c.Unresolved
}

// Fraction returns the share of records with a usable region, 0 for an empty batch.
func (c Coverage) Fraction() float64 {
	total := c.Total()
	if total == 0 {
		return 0
	}
	return float64(c.Resolved) / float64(total)
}

// RecordRepository is the storage contract for records.
type RecordRepository interface {
	ListBatch(ctx context.Context, limit int) ([]Record, error)
	UpdateResolutions(ctx context.Context, records []Record) error
	Sample(ctx context.Context, n int) ([]Record, error)
}
