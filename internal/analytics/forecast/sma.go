package forecast

import (
	"fmt"
	"math"

	"github.com/soltixdb/mapredict/internal/analytics"
	"github.com/soltixdb/mapredict/internal/logging"
)

// AdaptiveSMAForecaster exposes MovingAverage through the Forecaster interface
type AdaptiveSMAForecaster struct {
	logger *logging.Logger
}

// NewAdaptiveSMAForecaster creates a new adaptive SMA forecaster.
// A nil logger means the global logger.
func NewAdaptiveSMAForecaster(logger *logging.Logger) *AdaptiveSMAForecaster {
	return &AdaptiveSMAForecaster{logger: logger}
}

func init() {
	RegisterForecaster("adaptive_sma", NewAdaptiveSMAForecaster(nil))
}

// Name returns the algorithm name
func (f *AdaptiveSMAForecaster) Name() string {
	return "adaptive_sma"
}

// Forecast extends values by config.Horizon predictions
func (f *AdaptiveSMAForecaster) Forecast(values []float64, config ForecastConfig) (*ForecastResult, error) {
	if config.Horizon < 1 {
		return nil, fmt.Errorf("%w: horizon must be at least 1, got %d", ErrInvalidConfiguration, config.Horizon)
	}

	maxSamples := config.MaxSamplesUsed
	if maxSamples == 0 {
		maxSamples = DefaultMaxSamplesUsed
	}

	buffer := analytics.BufferFromValues(values)
	predictor, err := NewMovingAverage(buffer,
		WithMaxSamplesUsed(maxSamples),
		WithLogger(f.logger))
	if err != nil {
		return nil, err
	}

	predicted, err := predictor.PredictN(config.Horizon)
	if err != nil {
		return nil, err
	}

	window, _ := predictor.BestWindow()
	history := buffer.Values()
	fitted := oneStepForecasts(history, window)
	actual := history[window:]

	mse := CalculateMSE(actual, fitted)
	stdError := math.Sqrt(mse)

	predictions := make([]ForecastPoint, len(predicted))
	for i, v := range predicted {
		// Uncertainty grows with distance from the last observation
		lower, upper := calculatePredictionInterval(v, stdError*math.Sqrt(float64(i+1)), config.Confidence)
		predictions[i] = ForecastPoint{
			Step:       i + 1,
			Value:      v,
			LowerBound: lower,
			UpperBound: upper,
		}
	}

	return &ForecastResult{
		Predictions:  predictions,
		WindowErrors: predictor.WindowErrors(),
		ModelInfo: ModelInfo{
			Algorithm: "adaptive_sma",
			Parameters: map[string]interface{}{
				"window_size":      window,
				"max_samples_used": predictor.MaxSamplesUsed(),
			},
			MSE:        mse,
			RMSE:       stdError,
			MAE:        CalculateMAE(actual, fitted),
			DataPoints: len(history),
		},
	}, nil
}
