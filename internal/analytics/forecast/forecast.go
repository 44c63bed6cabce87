package forecast

import (
	"fmt"
	"math"
	"sort"
	"sync"
)

// ForecastPoint represents a single forecast prediction
type ForecastPoint struct {
	Step       int     `json:"step"` // 1-based distance past the last observed value
	Value      float64 `json:"value"`
	LowerBound float64 `json:"lower_bound"`
	UpperBound float64 `json:"upper_bound"`
}

// ModelInfo contains metadata about the forecast model
type ModelInfo struct {
	Algorithm  string                 `json:"algorithm"`
	Parameters map[string]interface{} `json:"parameters,omitempty"`
	MSE        float64                `json:"mse"`            // Mean Squared Error of the selected window
	RMSE       float64                `json:"rmse,omitempty"` // Root Mean Squared Error
	MAE        float64                `json:"mae,omitempty"`  // Mean Absolute Error
	DataPoints int                    `json:"data_points"`    // Number of data points used
}

// ForecastResult contains the forecast predictions and model information
type ForecastResult struct {
	Predictions  []ForecastPoint `json:"predictions"`
	WindowErrors map[int]float64 `json:"window_errors,omitempty"` // MSE per evaluated window
	ModelInfo    ModelInfo       `json:"model_info"`
}

// Values returns just the predicted values
func (r *ForecastResult) Values() []float64 {
	values := make([]float64, len(r.Predictions))
	for i, p := range r.Predictions {
		values[i] = p.Value
	}
	return values
}

// ForecastConfig holds configuration for forecasting
type ForecastConfig struct {
	Horizon        int     // Number of periods to forecast
	MaxSamplesUsed int     // Largest moving average window to evaluate
	Confidence     float64 // Confidence level for prediction intervals (0-1)
}

// DefaultForecastConfig returns default forecast configuration
func DefaultForecastConfig() ForecastConfig {
	return ForecastConfig{
		Horizon:        1,
		MaxSamplesUsed: DefaultMaxSamplesUsed,
		Confidence:     0.95,
	}
}

// Forecaster interface for forecasting algorithms
type Forecaster interface {
	// Name returns the algorithm name
	Name() string
	// Forecast generates predictions for the values following the series
	Forecast(values []float64, config ForecastConfig) (*ForecastResult, error)
}

// Registry holds available forecasters
var forecasterRegistry = make(map[string]Forecaster)

var registryMu sync.RWMutex

// RegisterForecaster adds a forecaster to the registry
func RegisterForecaster(name string, forecaster Forecaster) {
	registryMu.Lock()
	defer registryMu.Unlock()
	forecasterRegistry[name] = forecaster
}

// GetForecaster returns a forecaster by name
func GetForecaster(name string) (Forecaster, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if forecaster, ok := forecasterRegistry[name]; ok {
		return forecaster, nil
	}
	return nil, fmt.Errorf("unknown forecaster: %s", name)
}

// ListForecasters returns the sorted list of available forecaster names
func ListForecasters() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(forecasterRegistry))
	for name := range forecasterRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CalculateMSE calculates Mean Squared Error
func CalculateMSE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		diff := predicted[i] - actual[i]
		sum += diff * diff
	}
	return sum / float64(len(actual))
}

// CalculateRMSE calculates Root Mean Squared Error
func CalculateRMSE(actual, predicted []float64) float64 {
	return math.Sqrt(CalculateMSE(actual, predicted))
}

// CalculateMAE calculates Mean Absolute Error
func CalculateMAE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// CalculateMAPE calculates Mean Absolute Percentage Error, skipping zero actuals
func CalculateMAPE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * 100
}

// calculatePredictionInterval calculates prediction interval bounds
func calculatePredictionInterval(value, stdError, confidence float64) (lower, upper float64) {
	// Z-score for confidence level (approximate)
	var z float64
	switch {
	case confidence >= 0.99:
		z = 2.576
	case confidence >= 0.95:
		z = 1.96
	case confidence >= 0.90:
		z = 1.645
	default:
		z = 1.96
	}

	margin := z * stdError
	return value - margin, value + margin
}
