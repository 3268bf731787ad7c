// Package georesolve maps free-text location strings to the canonical region
// set by substring matching against region names and abbreviations.
package georesolve

import (
	"strings"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

// Matcher resolves raw location strings against a fixed region reference set.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	regions []domain.Region
}

// NewMatcher creates a Matcher over the given reference set.
func NewMatcher(regions []domain.Region) *Matcher {
	return &Matcher{regions: regions}
}

// Resolve tests the raw location against every region's full name and
// abbreviation (case-sensitive, no normalization). Decision policy, in order:
// missing input resolves as unresolved; exactly one match resolves to that
// region; two or more matches resolve as ambiguous ("multiple_states");
// zero matches resolve as unresolved.
//
// Conflict handling: some region names contain other region names as
// substrings ("Arkansas" contains "Kansas", "West Virginia" contains
// "Virginia"). A match whose name is a strict substring of another matched
// region's name is a containment artifact and is suppressed before the count
// policy applies, so an exact state name always resolves to that state.
//
// A location that legitimately names two regions is indistinguishable from
// true ambiguity here. Both resolve as ambiguous; that is a known precision
// limitation of the policy, not something to paper over.
func (m *Matcher) Resolve(raw *string) domain.Resolution {
	if raw == nil || *raw == "" {
		return domain.Resolution{Outcome: domain.OutcomeUnresolved}
	}

	var matched []domain.Region
	for _, region := range m.regions {
		if strings.Contains(*raw, region.Name) || strings.Contains(*raw, region.Abbreviation) {
			matched = append(matched, region)
		}
	}
	matched = suppressContained(matched)

	switch len(matched) {
	case 0:
		return domain.Resolution{Outcome: domain.OutcomeUnresolved}
	case 1:
		return domain.Resolution{Outcome: domain.OutcomeResolved, State: matched[0].Name}
	default:
		return domain.Resolution{Outcome: domain.OutcomeAmbiguous}
	}
}

// suppressContained drops every match whose name is a strict substring of
// another matched region's name.
func suppressContained(matched []domain.Region) []domain.Region {
	if len(matched) < 2 {
		return matched
	}

	kept := matched[:0]
	for i, candidate := range matched {
		contained := false
		for j, other := range matched {
			if i != j && candidate.Name != other.Name && strings.Contains(other.Name, candidate.Name) {
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, candidate)
		}
	}
	return kept
}
