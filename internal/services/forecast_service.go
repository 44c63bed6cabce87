package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/soltixdb/mapredict/internal/analytics/forecast"
	"github.com/soltixdb/mapredict/internal/config"
	"github.com/soltixdb/mapredict/internal/logging"
)

// DefaultMethod is the forecaster used when a request names none
const DefaultMethod = "adaptive_sma"

// ForecastService handles forecasting business logic
type ForecastService struct {
	logger *logging.Logger
	config config.PredictorConfig
}

// NewForecastService creates a new ForecastService
func NewForecastService(logger *logging.Logger, cfg config.PredictorConfig) *ForecastService {
	if logger == nil {
		logger = logging.Global()
	}
	return &ForecastService{
		logger: logger,
		config: cfg,
	}
}

// SeriesInput is one series to extend
type SeriesInput struct {
	ID     string
	Values []float64
}

// ForecastRequest represents a forecast request
type ForecastRequest struct {
	Series         []SeriesInput
	Method         string  // Forecaster name, DefaultMethod when empty
	Horizon        int     // Config horizon when zero
	MaxSamplesUsed int     // Config max_samples_used when zero
	Confidence     float64 // 0.95 when zero
}

// ForecastResult represents a single forecast result for a series
type ForecastResult struct {
	SeriesID     string                   `json:"series_id"`
	Predictions  []forecast.ForecastPoint `json:"predictions"`
	WindowErrors map[int]float64          `json:"window_errors,omitempty"`
	ModelInfo    forecast.ModelInfo       `json:"model_info"`
}

// SkippedSeries records a series that could not be forecast
type SkippedSeries struct {
	SeriesID string `json:"series_id"`
	Code     string `json:"code"`
	Reason   string `json:"reason"`
}

// ForecastResponse represents the complete forecast response
type ForecastResponse struct {
	Method        string           `json:"method"`
	Horizon       int              `json:"horizon"`
	Forecasts     []ForecastResult `json:"forecasts"`
	Skipped       []SkippedSeries  `json:"skipped,omitempty"`
	ExecutionTime time.Duration    `json:"execution_time"`
}

// Execute extends every series in the request by the requested horizon.
// Series that cannot be forecast are reported in Skipped; request-level
// problems and cancellation are returned as *ServiceError.
func (s *ForecastService) Execute(ctx context.Context, req *ForecastRequest) (*ForecastResponse, error) {
	startExec := time.Now()

	if req == nil || len(req.Series) == 0 {
		return nil, NewServiceError(CodeInvalidRequest, "at least one series is required")
	}

	method := req.Method
	if method == "" {
		method = DefaultMethod
	}

	// Validate forecaster exists
	forecaster, err := forecast.GetForecaster(method)
	if err != nil {
		return nil, &ServiceError{
			Code:    CodeInvalidMethod,
			Message: err.Error(),
			Details: map[string]interface{}{
				"available_methods": forecast.ListForecasters(),
			},
			Err: err,
		}
	}

	cfg, err := s.buildConfig(req)
	if err != nil {
		return nil, wrapServiceError(CodeInvalidRequest, err)
	}

	resp := &ForecastResponse{
		Method:  method,
		Horizon: cfg.Horizon,
	}

	for _, series := range req.Series {
		if err := ctx.Err(); err != nil {
			return nil, wrapServiceError(CodeCanceled, err)
		}

		seriesCtx := logging.WithSeriesID(ctx, series.ID)
		result, err := forecaster.Forecast(series.Values, cfg)
		if err != nil {
			code := classify(err)
			s.logger.WithContext(seriesCtx).Warn("Forecast failed for series",
				"code", code,
				"data_points", len(series.Values),
				"error", err)
			resp.Skipped = append(resp.Skipped, SkippedSeries{
				SeriesID: series.ID,
				Code:     code,
				Reason:   err.Error(),
			})
			continue
		}

		resp.Forecasts = append(resp.Forecasts, ForecastResult{
			SeriesID:     series.ID,
			Predictions:  result.Predictions,
			WindowErrors: result.WindowErrors,
			ModelInfo:    result.ModelInfo,
		})
	}

	resp.ExecutionTime = time.Since(startExec)
	s.logger.WithContext(ctx).Info("Forecast completed",
		"method", method,
		"horizon", cfg.Horizon,
		"series_count", len(req.Series),
		"forecasts_count", len(resp.Forecasts),
		"skipped_count", len(resp.Skipped),
		"latency_ms", resp.ExecutionTime.Milliseconds())

	return resp, nil
}

// buildConfig merges request overrides onto the service configuration
func (s *ForecastService) buildConfig(req *ForecastRequest) (forecast.ForecastConfig, error) {
	cfg := forecast.DefaultForecastConfig()
	cfg.Horizon = s.config.Horizon
	cfg.MaxSamplesUsed = s.config.MaxSamplesUsed

	if req.Horizon != 0 {
		cfg.Horizon = req.Horizon
	}
	if req.MaxSamplesUsed != 0 {
		cfg.MaxSamplesUsed = req.MaxSamplesUsed
	}
	if req.Confidence != 0 {
		cfg.Confidence = req.Confidence
	}

	if cfg.Horizon < 1 {
		return cfg, fmt.Errorf("%w: horizon must be at least 1, got %d", forecast.ErrInvalidConfiguration, cfg.Horizon)
	}
	if cfg.MaxSamplesUsed < forecast.MinSamplesUsed {
		return cfg, fmt.Errorf("%w: max samples used must be >= %d, got %d",
			forecast.ErrInvalidConfiguration, forecast.MinSamplesUsed, cfg.MaxSamplesUsed)
	}
	if cfg.Confidence <= 0 || cfg.Confidence >= 1 {
		return cfg, fmt.Errorf("%w: confidence must be in (0, 1), got %v", forecast.ErrInvalidConfiguration, cfg.Confidence)
	}

	return cfg, nil
}

// classify maps a forecaster error to an error code
func classify(err error) string {
	switch {
	case errors.Is(err, forecast.ErrInsufficientData):
		return CodeInsufficientData
	case errors.Is(err, forecast.ErrInvalidConfiguration):
		return CodeInvalidRequest
	default:
		return CodeForecastFailed
	}
}
