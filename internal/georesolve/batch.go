package georesolve

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

// ResolveBatch resolves every record in place and returns coverage counts.
// Records are independent, so the batch is fanned out across at most workers
// goroutines; each goroutine writes only its own record's Resolution, so
// there is no shared mutable state. Coverage is tallied after the fan-out
// completes to keep the workers free of synchronization.
func (m *Matcher) ResolveBatch(ctx context.Context, records []domain.Record, workers int) (domain.Coverage, error) {
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range records {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records[i].Resolution = m.Resolve(records[i].RawLocation)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.Coverage{}, fmt.Errorf("failed to resolve batch: %w", err)
	}

	var coverage domain.Coverage
	for i := range records {
		switch records[i].Resolution.Outcome {
		case domain.OutcomeResolved:
			coverage.Resolved++
		case domain.OutcomeAmbiguous:
			coverage.Ambiguous++
		default:
			coverage.Unresolved++
		}
	}
	return coverage, nil
}
