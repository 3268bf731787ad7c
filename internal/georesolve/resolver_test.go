package georesolve

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestResolveExactFullName(t *testing.T) {
	m := NewMatcher(domain.USStates())

	for _, region := range domain.USStates() {
		t.Run(region.Name, func(t *testing.T) {
			res := m.Resolve(strPtr(region.Name))
			require.Equal(t, domain.OutcomeResolved, res.Outcome)
			assert.Equal(t, region.Name, res.State)
		})
	}
}

func TestResolveExactAbbreviation(t *testing.T) {
	m := NewMatcher(domain.USStates())

	for _, region := range domain.USStates() {
		t.Run(region.Abbreviation, func(t *testing.T) {
			res := m.Resolve(strPtr(region.Abbreviation))
			require.Equal(t, domain.OutcomeResolved, res.Outcome)
			assert.Equal(t, region.Name, res.State)
		})
	}
}

func TestResolveDecisionPolicy(t *testing.T) {
	m := NewMatcher(domain.USStates())

	tests := []struct {
		name    string
		raw     *string
		outcome domain.ResolutionOutcome
		state   string
	}{
		{"nil input", nil, domain.OutcomeUnresolved, ""},
		{"empty input", strPtr(""), domain.OutcomeUnresolved, ""},
		{"no match", strPtr("somewhere over the rainbow"), domain.OutcomeUnresolved, ""},
		{"abbreviation inside free text", strPtr("I live in Austin, TX"), domain.OutcomeResolved, "Texas"},
		{"two states", strPtr("New York or California?"), domain.OutcomeAmbiguous, ""},
		{"two abbreviations", strPtr("WA / OR border"), domain.OutcomeAmbiguous, ""},
		{"lowercase does not match", strPtr("texas"), domain.OutcomeUnresolved, ""},
		{"containing name wins", strPtr("Little Rock, Arkansas"), domain.OutcomeResolved, "Arkansas"},
		{"two-word containing name wins", strPtr("moved to West Virginia"), domain.OutcomeResolved, "West Virginia"},
		{"contained name still matches alone", strPtr("Wichita, Kansas"), domain.OutcomeResolved, "Kansas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := m.Resolve(tt.raw)
			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.state, res.State)
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	m := NewMatcher(domain.USStates())
	raw := strPtr("Greetings from Vermont")

	first := m.Resolve(raw)
	second := m.Resolve(raw)
	assert.Equal(t, first, second)
}

func TestResolveBatch(t *testing.T) {
	m := NewMatcher(domain.USStates())

	records := []domain.Record{
		{ID: 1, RawLocation: strPtr("Columbus, Ohio")},
		{ID: 2, RawLocation: strPtr("New York or California?")},
		{ID: 3, RawLocation: nil},
		{ID: 4, RawLocation: strPtr("nowhere special")},
		{ID: 5, RawLocation: strPtr("Juneau, AK")},
	}

	coverage, err := m.ResolveBatch(context.Background(), records, 3)
	require.NoError(t, err)

	assert.Equal(t, domain.Coverage{Resolved: 2, Ambiguous: 1, Unresolved: 2}, coverage)
	assert.Equal(t, "Ohio", records[0].Resolution.State)
	assert.Equal(t, domain.OutcomeAmbiguous, records[1].Resolution.Outcome)
	assert.Equal(t, domain.OutcomeUnresolved, records[2].Resolution.Outcome)
	assert.Equal(t, domain.OutcomeUnresolved, records[3].Resolution.Outcome)
	assert.Equal(t, "Alaska", records[4].Resolution.State)
	assert.Equal(t, 5, coverage.Total())
	assert.InDelta(t, 0.4, coverage.Fraction(), 1e-9)
}

func TestResolveBatchLargeFanOut(t *testing.T) {
	m := NewMatcher(domain.USStates())

	records := make([]domain.Record, 500)
	for i := range records {
		records[i] = domain.Record{ID: int64(i), RawLocation: strPtr(fmt.Sprintf("person %d from Kansas", i))}
	}

	coverage, err := m.ResolveBatch(context.Background(), records, 8)
	require.NoError(t, err)
	assert.Equal(t, 500, coverage.Resolved)

	for i := range records {
		assert.Equal(t, "Kansas", records[i].Resolution.State)
	}
}

func TestResolveBatchCancelled(t *testing.T) {
	m := NewMatcher(domain.USStates())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := make([]domain.Record, 100)
	for i := range records {
		records[i] = domain.Record{ID: int64(i), RawLocation: strPtr("Maine")}
	}

	_, err := m.ResolveBatch(ctx, records, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
