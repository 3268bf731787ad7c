// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Region resolution metrics
var (
	// ResolutionOutcomesTotal tracks resolution outcomes by category
	ResolutionOutcomesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "region_resolution_outcomes_total",
			Help: "Region resolution outcomes by category (resolved/multiple_states/unresolved)",
		},
		[]string{"outcome"},
	)

	// ResolutionCoverage tracks the resolved fraction of the last batch
	ResolutionCoverage = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "region_resolution_coverage_ratio",
			Help: "Fraction of records in the last batch with a usable region",
		},
	)
)

// Sentiment pipeline metrics
var (
	// PipelineRunsTotal tracks sentiment pipeline runs by status
	PipelineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_pipeline_runs_total",
			Help: "Sentiment pipeline runs by status",
		},
		[]string{"status"},
	)

	// PipelineDuration tracks end-to-end sentiment pipeline latency
	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sentiment_pipeline_duration_seconds",
			Help:    "End-to-end sentiment pipeline duration in seconds",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	// ReportCacheRequestsTotal tracks report cache lookups by result
	ReportCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_requests_total",
			Help: "Report cache lookups by result (hit/miss/error)",
		},
		[]string{"result"},
	)
)

// Similarity and clustering metrics
var (
	// KernelInvocationsTotal tracks similarity kernel calls by status
	KernelInvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_kernel_invocations_total",
			Help: "Similarity kernel invocations by status",
		},
		[]string{"status"},
	)

	// KernelDuration tracks similarity kernel call latency
	KernelDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similarity_kernel_duration_seconds",
			Help:    "Similarity kernel invocation duration in seconds",
			Buckets: []float64{.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	// ClusterRunsTotal tracks clustering runs by status
	ClusterRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "similarity_cluster_runs_total",
			Help: "Similarity row clustering runs by status",
		},
		[]string{"status"},
	)

	// ClusterDuration tracks single-row clustering latency
	ClusterDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similarity_cluster_duration_seconds",
			Help:    "Single-row clustering duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)
)
