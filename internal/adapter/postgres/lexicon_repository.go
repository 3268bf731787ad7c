package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

// LexiconRepo implements domain.LexiconSource backed by the lexicon table.
// The lexicon is external static data; this repository only reads it.
type LexiconRepo struct {
	pool *pgxpool.Pool
}

// NewLexiconRepo creates a LexiconRepo from the shared pool.
func NewLexiconRepo(pool *pgxpool.Pool) *LexiconRepo {
	return &LexiconRepo{pool: pool}
}

// Load fetches the full word -> polarity mapping.
func (r *LexiconRepo) Load(ctx context.Context) (domain.Lexicon, error) {
	rows, err := r.pool.Query(ctx, `SELECT word, polarity FROM lexicon`)
	if err != nil {
		return nil, fmt.Errorf("failed to query lexicon: %w", err)
	}
	defer rows.Close()

	lexicon := make(domain.Lexicon)
	for rows.Next() {
		var word, polarity string
		if err := rows.Scan(&word, &polarity); err != nil {
			return nil, fmt.Errorf("failed to scan lexicon entry: %w", err)
		}
		lexicon[word] = domain.Polarity(polarity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}

	if len(lexicon) == 0 {
		return nil, domain.ErrLexiconEmpty
	}
	return lexicon, nil
}
