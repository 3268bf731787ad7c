package sentiment

import (
	"sort"
	"time"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

// BucketFunc maps a record timestamp to the start of its time bucket.
// Granularity is the caller's choice, not hard-coded here.
type BucketFunc func(time.Time) time.Time

// MonthBucket truncates to the first of the calendar month, UTC.
func MonthBucket(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// WeekBucket truncates to the most recent Monday, UTC.
func WeekBucket(t time.Time) time.Time {
	t = DayBucket(t)
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// DayBucket truncates to midnight, UTC.
func DayBucket(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type bucketKey struct {
	region      string
	bucketStart time.Time
}

// Aggregate joins tokenized record text against the lexicon and counts
// positive and negative tokens per (region, time bucket). Records without a
// usable region (ambiguous or unresolved) are filtered, not errors. Stopword
// tokens and tokens absent from the lexicon are dropped.
//
// The result is sorted by region then bucket start, so identical inputs
// produce identical output regardless of record order.
func Aggregate(records []domain.Record, lexicon domain.Lexicon, stopwords map[string]struct{}, bucket BucketFunc) []domain.SentimentBucket {
	counts := make(map[bucketKey]*domain.SentimentBucket)

	for i := range records {
		rec := &records[i]
		if !rec.Resolution.Resolved() {
			continue
		}

		key := bucketKey{region: rec.Resolution.State, bucketStart: bucket(rec.Timestamp)}
		for _, tok := range Tokenize(rec.Text) {
			if _, skip := stopwords[tok]; skip {
				continue
			}
			polarity, ok := lexicon[tok]
			if !ok {
				continue
			}

			b := counts[key]
			if b == nil {
				b = &domain.SentimentBucket{Region: key.region, BucketStart: key.bucketStart}
				counts[key] = b
			}
			if polarity == domain.PolarityPositive {
				b.Positive++
			} else {
				b.Negative++
			}
		}
	}

	buckets := make([]domain.SentimentBucket, 0, len(counts))
	for _, b := range counts {
		buckets = append(buckets, *b)
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Region != buckets[j].Region {
			return buckets[i].Region < buckets[j].Region
		}
		return buckets[i].BucketStart.Before(buckets[j].BucketStart)
	})
	return buckets
}
