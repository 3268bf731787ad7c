package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
)

// ReportCache implements domain.ReportCache. Reports are derived data: a
// cache miss just means the pipeline recomputes, so values carry a TTL and
// are never treated as a source of truth.
type ReportCache struct {
	rdb goredis.Cmdable
}

// NewReportCache creates a ReportCache on the given Redis connection.
func NewReportCache(rdb goredis.Cmdable) *ReportCache {
	return &ReportCache{rdb: rdb}
}

func reportKey(granularity string) string {
	return "report:sentiment:" + granularity
}

// GetReport returns the cached report for the granularity, or
// domain.ErrReportNotFound on a miss.
func (c *ReportCache) GetReport(ctx context.Context, granularity string) (*domain.SentimentReport, error) {
	payload, err := c.rdb.Get(ctx, reportKey(granularity)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, domain.ErrReportNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report from cache: %w", err)
	}

	var report domain.SentimentReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &report, nil
}

// PutReport stores the report under its granularity with the given TTL.
func (c *ReportCache) PutReport(ctx context.Context, report *domain.SentimentReport, ttl time.Duration) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := c.rdb.Set(ctx, reportKey(report.Granularity), payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store report in cache: %w", err)
	}
	return nil
}
