package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Levi-Nicklas/CovidTweets/internal/adapter/httpserver"
	"github.com/Levi-Nicklas/CovidTweets/internal/adapter/kernel"
	"github.com/Levi-Nicklas/CovidTweets/internal/adapter/postgres"
	"github.com/Levi-Nicklas/CovidTweets/internal/adapter/redis"
	"github.com/Levi-Nicklas/CovidTweets/internal/app"
	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
	"github.com/Levi-Nicklas/CovidTweets/internal/georesolve"
	"github.com/Levi-Nicklas/CovidTweets/internal/platform/config"
	"github.com/Levi-Nicklas/CovidTweets/internal/platform/logging"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(ctx context.Context, cfg *config.Config) *goredis.Client {
	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *httpserver.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	redisClient := setupRedis(context.Background(), cfg)
	defer func() { _ = redisClient.Close() }()

	recordRepo := postgres.NewRecordRepo(pool)
	lexiconRepo := postgres.NewLexiconRepo(pool)
	reportCache := redis.NewReportCache(redisClient)
	kernelClient := kernel.NewClient(cfg.SimilarityKernelURL)
	matcher := georesolve.NewMatcher(domain.USStates())

	appSvc := app.NewService(recordRepo, lexiconRepo, reportCache, kernelClient, matcher, clock, app.Options{
		ResolverWorkers:    cfg.ResolverWorkers,
		RecordBatchSize:    cfg.RecordBatchSize,
		GraphSampleSize:    cfg.GraphSampleSize,
		KernelTimeout:      cfg.KernelTimeout,
		ReportCacheTTL:     cfg.ReportCacheTTL,
		DefaultBandwidth:   cfg.ClusterBandwidth,
		DefaultSampleCount: cfg.ClusterSampleCount,
		ExtraStopwords:     cfg.ExtraStopwordList(),
	})

	healthChecks := []httpserver.HealthCheck{
		{Name: "postgres", Check: pool.Ping},
		{Name: "redis", Check: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}},
	}

	srv := httpserver.NewServer(cfg, appSvc, healthChecks)
	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
