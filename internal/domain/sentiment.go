package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Polarity is the sentiment class of a lexicon word.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// Lexicon maps a word to its polarity. The lexicon is external static data;
// the core only consumes the finished mapping.
type Lexicon map[string]Polarity

// SentimentBucket holds positive/negative token counts for one
// (region, time bucket) pair. Derived data, recomputed per run.
type SentimentBucket struct {
	Region      string    `json:"region"`
	BucketStart time.Time `json:"bucket_start"`
	Positive    int       `json:"positive"`
	Negative    int       `json:"negative"`
}

// Net returns positive count minus negative count.
func (b SentimentBucket) Net() int {
	return b.Positive - b.Negative
}

// SentimentReport is the full output of one sentiment pipeline run.
type SentimentReport struct {
	ID          uuid.UUID         `json:"id"`
	Granularity string            `json:"granularity"`
	GeneratedAt time.Time         `json:"generated_at"`
	Buckets     []SentimentBucket `json:"buckets"`
	Coverage    Coverage          `json:"coverage"`
}

// LexiconSource loads the word -> polarity mapping.
type LexiconSource interface {
	Load(ctx context.Context) (Lexicon, error)
}

// ReportCache stores derived sentiment reports keyed by granularity.
// Reports are never the source of truth; a miss just means "recompute".
type ReportCache interface {
	GetReport(ctx context.Context, granularity string) (*SentimentReport, error)
	PutReport(ctx context.Context, report *SentimentReport, ttl time.Duration) error
}
