package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// SimilarityKernelURL is the endpoint of the external graph-kernel
	// service that turns a set of word graphs into a similarity matrix.
	SimilarityKernelURL string `env:"SIMILARITY_KERNEL_URL"`

	ResolverWorkers int           `env:"RESOLVER_WORKERS" default:"8"`
	RecordBatchSize int           `env:"RECORD_BATCH_SIZE" default:"10000"`
	GraphSampleSize int           `env:"GRAPH_SAMPLE_SIZE" default:"200"`
	KernelTimeout   time.Duration `env:"KERNEL_TIMEOUT" default:"2m"`
	ReportCacheTTL  time.Duration `env:"REPORT_CACHE_TTL" default:"1h"`

	// Clustering defaults; bandwidth remains a caller-supplied parameter on
	// the API, these only seed requests that omit it.
	ClusterBandwidth   float64 `env:"CLUSTER_BANDWIDTH" default:"0.5"`
	ClusterSampleCount int     `env:"CLUSTER_SAMPLE_COUNT" default:"128"`

	// ExtraStopwords extends the built-in stopword set, comma-separated.
	ExtraStopwords string `env:"EXTRA_STOPWORDS"`
}

// ExtraStopwordList splits the configured stopwords, dropping empties.
func (c *Config) ExtraStopwordList() []string {
	var words []string
	for _, w := range strings.Split(c.ExtraStopwords, ",") {
		if w = strings.TrimSpace(w); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"DATABASE_URL":          cfg.DatabaseURL,
		"REDIS_URL":             cfg.RedisURL,
		"SIMILARITY_KERNEL_URL": cfg.SimilarityKernelURL,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if cfg.ResolverWorkers < 1 {
		return fmt.Errorf("RESOLVER_WORKERS must be at least 1, got %d", cfg.ResolverWorkers)
	}
	if cfg.GraphSampleSize < 2 {
		return fmt.Errorf("GRAPH_SAMPLE_SIZE must be at least 2, got %d", cfg.GraphSampleSize)
	}
	if cfg.ClusterBandwidth <= 0 {
		return fmt.Errorf("CLUSTER_BANDWIDTH must be positive, got %v", cfg.ClusterBandwidth)
	}
	if cfg.ClusterSampleCount < 3 {
		return fmt.Errorf("CLUSTER_SAMPLE_COUNT must be at least 3, got %d", cfg.ClusterSampleCount)
	}

	return nil
}
