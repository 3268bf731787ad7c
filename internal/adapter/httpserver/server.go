package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Levi-Nicklas/CovidTweets/internal/app"
	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
	"github.com/Levi-Nicklas/CovidTweets/internal/platform/config"
	"github.com/Levi-Nicklas/CovidTweets/internal/simcluster"
)

type appService interface {
	RunSentimentPipeline(ctx context.Context, granularity string) (*domain.SentimentReport, error)
	GetReport(ctx context.Context, granularity string) (*domain.SentimentReport, error)
	RunClusterAnalysis(ctx context.Context, rowIndex int, bandwidth float64, sampleCount int) (*app.ClusterAnalysis, error)
	ClusterRow(row []float64, bandwidth float64, sampleCount int) (*simcluster.Result, error)
}

// HealthCheck is a named dependency ping.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app          appService
	healthChecks []HealthCheck
	startTime    time.Time
}

func NewServer(cfg *config.Config, app appService, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
