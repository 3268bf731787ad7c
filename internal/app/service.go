package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
	"github.com/Levi-Nicklas/CovidTweets/internal/georesolve"
	"github.com/Levi-Nicklas/CovidTweets/internal/metrics"
	"github.com/Levi-Nicklas/CovidTweets/internal/platform/retry"
	"github.com/Levi-Nicklas/CovidTweets/internal/sentiment"
	"github.com/Levi-Nicklas/CovidTweets/internal/simcluster"
	"github.com/Levi-Nicklas/CovidTweets/internal/wordgraph"
)

// Options carries the tunables the service needs from config.
type Options struct {
	ResolverWorkers    int
	RecordBatchSize    int
	GraphSampleSize    int
	KernelTimeout      time.Duration
	ReportCacheTTL     time.Duration
	DefaultBandwidth   float64
	DefaultSampleCount int
	ExtraStopwords     []string
}

// Service is the application layer — the only component that references
// multiple domain components. It orchestrates all use cases.
type Service struct {
	records domain.RecordRepository
	lexicon domain.LexiconSource
	cache   domain.ReportCache
	kernel  domain.SimilarityKernel
	matcher *georesolve.Matcher
	clock   clockwork.Clock
	opts    Options

	stopwords   map[string]struct{}
	reportGroup singleflight.Group
}

// NewService creates the application layer service.
func NewService(records domain.RecordRepository, lexicon domain.LexiconSource, cache domain.ReportCache, kernel domain.SimilarityKernel, matcher *georesolve.Matcher, clock clockwork.Clock, opts Options) *Service {
	stopwords := sentiment.DefaultStopwords()
	for _, w := range opts.ExtraStopwords {
		stopwords[w] = struct{}{}
	}

	return &Service{
		records: records,
		lexicon: lexicon,
		cache:   cache,
		kernel:  kernel,
		matcher: matcher,
		clock:     clock,
		opts:      opts,
		stopwords: stopwords,
	}
}

func bucketFuncFor(granularity string) (sentiment.BucketFunc, error) {
	switch granularity {
	case "month":
		return sentiment.MonthBucket, nil
	case "week":
		return sentiment.WeekBucket, nil
	case "day":
		return sentiment.DayBucket, nil
	default:
		return nil, fmt.Errorf("%w: unknown granularity %q", domain.ErrInvalidInput, granularity)
	}
}

// RunSentimentPipeline loads the record batch, resolves regions, persists the
// resolutions, aggregates sentiment at the requested granularity, and caches
// the resulting report. Concurrent runs for the same granularity collapse
// into one via singleflight.
func (s *Service) RunSentimentPipeline(ctx context.Context, granularity string) (*domain.SentimentReport, error) {
	result, err, _ := s.reportGroup.Do(granularity, func() (any, error) {
		return s.runSentimentPipeline(ctx, granularity)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.SentimentReport), nil
}

func (s *Service) runSentimentPipeline(ctx context.Context, granularity string) (*domain.SentimentReport, error) {
	bucketFn, err := bucketFuncFor(granularity)
	if err != nil {
		return nil, err
	}

	start := s.clock.Now()
	defer func() {
		metrics.PipelineDuration.Observe(s.clock.Since(start).Seconds())
	}()

	records, err := s.records.ListBatch(ctx, s.opts.RecordBatchSize)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	coverage, err := s.matcher.ResolveBatch(ctx, records, s.opts.ResolverWorkers)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ResolutionOutcomesTotal.WithLabelValues("resolved").Add(float64(coverage.Resolved))
	metrics.ResolutionOutcomesTotal.WithLabelValues("multiple_states").Add(float64(coverage.Ambiguous))
	metrics.ResolutionOutcomesTotal.WithLabelValues("unresolved").Add(float64(coverage.Unresolved))
	metrics.ResolutionCoverage.Set(coverage.Fraction())

	if err := s.records.UpdateResolutions(ctx, records); err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to persist resolutions: %w", err)
	}

	lexicon, err := s.lexicon.Load(ctx)
	if err != nil {
		metrics.PipelineRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to load lexicon: %w", err)
	}

	report := &domain.SentimentReport{
		ID:          uuid.New(),
		Granularity: granularity,
		GeneratedAt: s.clock.Now().UTC(),
		Buckets:     sentiment.Aggregate(records, lexicon, s.stopwords, bucketFn),
		Coverage:    coverage,
	}

	// Best-effort cache write; the report is returned either way.
	if err := s.cache.PutReport(ctx, report, s.opts.ReportCacheTTL); err != nil {
		slog.Error("Failed to cache report", "granularity", granularity, "error", err)
	}

	metrics.PipelineRunsTotal.WithLabelValues("success").Inc()
	slog.Info("Sentiment pipeline completed",
		"granularity", granularity,
		"records", coverage.Total(),
		"coverage", coverage.Fraction(),
		"buckets", len(report.Buckets))
	return report, nil
}

// GetReport returns the cached report for the granularity, if any.
func (s *Service) GetReport(ctx context.Context, granularity string) (*domain.SentimentReport, error) {
	if _, err := bucketFuncFor(granularity); err != nil {
		return nil, err
	}

	report, err := s.cache.GetReport(ctx, granularity)
	if errors.Is(err, domain.ErrReportNotFound) {
		metrics.ReportCacheRequestsTotal.WithLabelValues("miss").Inc()
		return nil, err
	}
	if err != nil {
		metrics.ReportCacheRequestsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ReportCacheRequestsTotal.WithLabelValues("hit").Inc()
	return report, nil
}

// ClusterAnalysis is the output of one similarity analysis run.
type ClusterAnalysis struct {
	SampleSize  int                `json:"sample_size"`
	RowIndex    int                `json:"row_index"`
	EmptyGraphs int                `json:"empty_graphs"`
	Result      *simcluster.Result `json:"result"`
}

// RunClusterAnalysis samples records, builds their word graphs, obtains the
// similarity matrix from the external kernel, and clusters the requested
// reference row. A hard clustering error aborts the run; it is never skipped
// for one row while others continue.
func (s *Service) RunClusterAnalysis(ctx context.Context, rowIndex int, bandwidth float64, sampleCount int) (*ClusterAnalysis, error) {
	if bandwidth == 0 {
		bandwidth = s.opts.DefaultBandwidth
	}
	if sampleCount == 0 {
		sampleCount = s.opts.DefaultSampleCount
	}

	records, err := s.records.Sample(ctx, s.opts.GraphSampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample records: %w", err)
	}
	if rowIndex < 0 || rowIndex >= len(records) {
		return nil, fmt.Errorf("%w: row index %d outside sample of %d", domain.ErrInvalidInput, rowIndex, len(records))
	}

	graphs := make([]domain.WordGraph, len(records))
	emptyGraphs := 0
	for i := range records {
		graphs[i] = wordgraph.Build(records[i])
		if graphs[i].Empty() {
			emptyGraphs++
		}
	}

	matrix, err := s.invokeKernel(ctx, graphs)
	if err != nil {
		return nil, err
	}

	result, err := s.clusterRow(matrix[rowIndex], bandwidth, sampleCount)
	if err != nil {
		return nil, err
	}

	slog.Info("Cluster analysis completed",
		"sample_size", len(records),
		"row_index", rowIndex,
		"empty_graphs", emptyGraphs,
		"boundaries", len(result.Boundaries))
	return &ClusterAnalysis{
		SampleSize:  len(records),
		RowIndex:    rowIndex,
		EmptyGraphs: emptyGraphs,
		Result:      result,
	}, nil
}

// ClusterRow clusters one externally supplied similarity row.
func (s *Service) ClusterRow(row []float64, bandwidth float64, sampleCount int) (*simcluster.Result, error) {
	return s.clusterRow(row, bandwidth, sampleCount)
}

func (s *Service) clusterRow(row []float64, bandwidth float64, sampleCount int) (*simcluster.Result, error) {
	start := s.clock.Now()
	result, err := simcluster.Cluster(row, bandwidth, sampleCount)
	metrics.ClusterDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		metrics.ClusterRunsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ClusterRunsTotal.WithLabelValues("success").Inc()
	return result, nil
}

// invokeKernel calls the external similarity service behind a timeout, with
// retries for transient failures. Context expiry is permanent: the deadline
// bounds the whole invocation, not each attempt.
func (s *Service) invokeKernel(ctx context.Context, graphs []domain.WordGraph) ([][]float64, error) {
	kernelCtx, cancel := context.WithTimeout(ctx, s.opts.KernelTimeout)
	defer cancel()

	classify := func(err error) retry.Action {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return retry.Stop
		}
		return retry.Retry
	}
	policy := retry.Policy{
		MaxAttempts:    3,
		InitialBackoff: time.Second,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Similarity kernel attempt failed", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}

	start := s.clock.Now()
	matrix, err := retry.Do(kernelCtx, policy, classify, func() ([][]float64, error) {
		return s.kernel.Similarity(kernelCtx, graphs)
	})
	metrics.KernelDuration.Observe(s.clock.Since(start).Seconds())
	if err != nil {
		metrics.KernelInvocationsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrKernelFailure, err)
	}
	metrics.KernelInvocationsTotal.WithLabelValues("success").Inc()
	return matrix, nil
}
