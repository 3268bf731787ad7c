package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Levi-Nicklas/CovidTweets/internal/domain"
	apperrors "github.com/Levi-Nicklas/CovidTweets/internal/platform/errors"
)

const healthProbeTimeout = 5 * time.Second

func (s *Server) handleHealthz(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthProbeTimeout)
	defer cancel()

	for _, hc := range s.healthChecks {
		err := hc.Check(ctx)
		if err == nil {
			continue
		}

		response := map[string]any{
			"status":       "unhealthy",
			"failed_check": hc.Name,
			"error":        err.Error(),
		}
		if err := c.JSON(http.StatusServiceUnavailable, response); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	}

	response := map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleRunPipeline(c echo.Context) error {
	granularity := c.QueryParam("granularity")
	if granularity == "" {
		granularity = "month"
	}

	report, err := s.app.RunSentimentPipeline(c.Request().Context(), granularity)
	if err != nil {
		return mapDomainError(err, "pipeline run failed")
	}

	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetReport(c echo.Context) error {
	granularity := c.QueryParam("granularity")
	if granularity == "" {
		granularity = "month"
	}

	report, err := s.app.GetReport(c.Request().Context(), granularity)
	if errors.Is(err, domain.ErrReportNotFound) {
		return apperrors.NotFoundError("no report for granularity").WithField("granularity", granularity)
	}
	if err != nil {
		return mapDomainError(err, "failed to load report")
	}

	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type clusterRowRequest struct {
	Row         []float64 `json:"row"`
	Bandwidth   float64   `json:"bandwidth"`
	SampleCount int       `json:"sample_count"`
}

func (s *Server) handleClusterRow(c echo.Context) error {
	var req clusterRowRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	result, err := s.app.ClusterRow(req.Row, req.Bandwidth, req.SampleCount)
	if err != nil {
		return mapDomainError(err, "clustering failed")
	}

	if err := c.JSON(http.StatusOK, result); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

type analysisRequest struct {
	RowIndex    int     `json:"row_index"`
	Bandwidth   float64 `json:"bandwidth"`
	SampleCount int     `json:"sample_count"`
}

func (s *Server) handleRunAnalysis(c echo.Context) error {
	var req analysisRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	analysis, err := s.app.RunClusterAnalysis(c.Request().Context(), req.RowIndex, req.Bandwidth, req.SampleCount)
	if err != nil {
		return mapDomainError(err, "analysis run failed").WithField("row_index", req.RowIndex)
	}

	if err := c.JSON(http.StatusOK, analysis); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// mapDomainError translates sentinel errors into structured HTTP errors.
func mapDomainError(err error, message string) *apperrors.Error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return apperrors.ValidationError(err.Error())
	case errors.Is(err, domain.ErrInconsistentDerivative):
		return apperrors.UnprocessableError(message, err)
	case errors.Is(err, domain.ErrReportNotFound):
		return apperrors.NotFoundError(message)
	case errors.Is(err, domain.ErrLexiconEmpty):
		return apperrors.UnprocessableError(message, err)
	case errors.Is(err, domain.ErrKernelFailure):
		return apperrors.ExternalError(message, err)
	default:
		return apperrors.InternalError(message, err)
	}
}
