package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

// recordColumns must match the scan order in scanRecord.
const recordColumns = `id, raw_location, text, recorded_at, resolved_region`

// RecordRepo implements domain.RecordRepository backed by PostgreSQL.
//
// The resolved_region column stores the canonical state name, the literal
// "multiple_states" marker, or NULL for unresolved. Resolution is re-runnable:
// the same raw input always produces the same value.
type RecordRepo struct {
	pool *pgxpool.Pool
}

// NewRecordRepo creates a RecordRepo from the shared pool.
func NewRecordRepo(pool *pgxpool.Pool) *RecordRepo {
	return &RecordRepo{pool: pool}
}

func scanRecord(row pgx.Row) (domain.Record, error) {
	var rec domain.Record
	var region *string
	if err := row.Scan(&rec.ID, &rec.RawLocation, &rec.Text, &rec.Timestamp, &region); err != nil {
		return domain.Record{}, err
	}
	rec.Resolution = resolutionFromColumn(region)
	return rec, nil
}

func resolutionFromColumn(region *string) domain.Resolution {
	switch {
	case region == nil:
		return domain.Resolution{Outcome: domain.OutcomeUnresolved}
	case *region == string(domain.OutcomeAmbiguous):
		return domain.Resolution{Outcome: domain.OutcomeAmbiguous}
	default:
		return domain.Resolution{Outcome: domain.OutcomeResolved, State: *region}
	}
}

func resolutionToColumn(res domain.Resolution) *string {
	switch res.Outcome {
	case domain.OutcomeResolved:
		state := res.State
		return &state
	case domain.OutcomeAmbiguous:
		marker := string(domain.OutcomeAmbiguous)
		return &marker
	default:
		return nil
	}
}

func (r *RecordRepo) collectRecords(ctx context.Context, query string, args ...any) ([]domain.Record, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// ListBatch returns up to limit records ordered by ID; limit <= 0 means all.
func (r *RecordRepo) ListBatch(ctx context.Context, limit int) ([]domain.Record, error) {
	if limit <= 0 {
		return r.collectRecords(ctx, `SELECT `+recordColumns+` FROM records ORDER BY id`)
	}
	return r.collectRecords(ctx, `SELECT `+recordColumns+` FROM records ORDER BY id LIMIT $1`, limit)
}

// Sample returns n records drawn uniformly at random.
func (r *RecordRepo) Sample(ctx context.Context, n int) ([]domain.Record, error) {
	return r.collectRecords(ctx, `SELECT `+recordColumns+` FROM records ORDER BY random() LIMIT $1`, n)
}

// UpdateResolutions writes the records' resolutions back in one batch.
func (r *RecordRepo) UpdateResolutions(ctx context.Context, records []domain.Record) error {
	batch := &pgx.Batch{}
	for i := range records {
		batch.Queue(
			`UPDATE records SET resolved_region = $1 WHERE id = $2`,
			resolutionToColumn(records[i].Resolution), records[i].ID,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to update resolution: %w", err)
		}
	}
	return nil
}
