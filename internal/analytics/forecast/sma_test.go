package forecast

import (
	"testing"

	"github.com/soltixdb/mapredict/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdaptiveSMAForecaster_BasicForecast(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	config := ForecastConfig{
		Horizon:        3,
		MaxSamplesUsed: 5,
		Confidence:     0.95,
	}

	forecaster := NewAdaptiveSMAForecaster(logging.NewNop())
	result, err := forecaster.Forecast(values, config)
	require.NoError(t, err)

	require.Len(t, result.Predictions, config.Horizon)
	assert.Equal(t, "adaptive_sma", result.ModelInfo.Algorithm)
	assert.Equal(t, 3, result.ModelInfo.Parameters["window_size"])
	assert.Equal(t, 5, result.ModelInfo.Parameters["max_samples_used"])
	assert.Equal(t, len(values), result.ModelInfo.DataPoints)
	assert.Equal(t, 4.0, result.ModelInfo.MSE)
	assert.Equal(t, 2.0, result.ModelInfo.RMSE)
	assert.Equal(t, 2.0, result.ModelInfo.MAE)
	assert.Equal(t, map[int]float64{3: 4, 4: 6.25, 5: 9}, result.WindowErrors)

	assert.Equal(t, 7.0, result.Predictions[0].Value)
	for i, p := range result.Predictions {
		assert.Equal(t, i+1, p.Step)
	}
}

func TestAdaptiveSMAForecaster_MatchesPredictor(t *testing.T) {
	values := generateSeasonalValues(60, 12)

	result, err := NewAdaptiveSMAForecaster(logging.NewNop()).Forecast(values, ForecastConfig{
		Horizon:        6,
		MaxSamplesUsed: 15,
		Confidence:     0.95,
	})
	require.NoError(t, err)

	predictor := newTestPredictor(t, values, 15)
	want, err := predictor.PredictN(6)
	require.NoError(t, err)

	assert.Equal(t, want, result.Values())
}

func TestAdaptiveSMAForecaster_InsufficientData(t *testing.T) {
	forecaster := NewAdaptiveSMAForecaster(logging.NewNop())

	_, err := forecaster.Forecast([]float64{1, 2, 3}, DefaultForecastConfig())
	assert.ErrorIs(t, err, ErrInsufficientData)

	_, err = forecaster.Forecast(nil, DefaultForecastConfig())
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestAdaptiveSMAForecaster_InvalidConfig(t *testing.T) {
	forecaster := NewAdaptiveSMAForecaster(logging.NewNop())
	values := generateLinearValues(20, 1, 0)

	config := DefaultForecastConfig()
	config.Horizon = 0
	_, err := forecaster.Forecast(values, config)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)

	config = DefaultForecastConfig()
	config.MaxSamplesUsed = 2
	_, err = forecaster.Forecast(values, config)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestAdaptiveSMAForecaster_DefaultMaxSamples(t *testing.T) {
	config := DefaultForecastConfig()
	config.MaxSamplesUsed = 0

	result, err := NewAdaptiveSMAForecaster(logging.NewNop()).Forecast(generateLinearValues(10, 1, 0), config)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxSamplesUsed, result.ModelInfo.Parameters["max_samples_used"])
}

func TestAdaptiveSMAForecaster_ConfidenceInterval(t *testing.T) {
	values := generateSeasonalValues(50, 10)

	config := ForecastConfig{
		Horizon:        4,
		MaxSamplesUsed: 8,
		Confidence:     0.95,
	}

	result, err := NewAdaptiveSMAForecaster(logging.NewNop()).Forecast(values, config)
	require.NoError(t, err)

	prevWidth := 0.0
	for i, pred := range result.Predictions {
		assert.LessOrEqual(t, pred.LowerBound, pred.Value, "prediction %d", i)
		assert.GreaterOrEqual(t, pred.UpperBound, pred.Value, "prediction %d", i)

		width := pred.UpperBound - pred.LowerBound
		assert.Greater(t, width, prevWidth, "interval widens with the horizon")
		prevWidth = width
	}
}

func TestAdaptiveSMAForecaster_ConstantSeriesHasZeroWidthInterval(t *testing.T) {
	result, err := NewAdaptiveSMAForecaster(logging.NewNop()).Forecast(generateConstantValues(8, 2.5), ForecastConfig{
		Horizon:        2,
		MaxSamplesUsed: 4,
		Confidence:     0.99,
	})
	require.NoError(t, err)

	for _, pred := range result.Predictions {
		assert.Equal(t, 2.5, pred.Value)
		assert.Equal(t, 2.5, pred.LowerBound)
		assert.Equal(t, 2.5, pred.UpperBound)
	}
}

func TestAdaptiveSMAForecaster_Name(t *testing.T) {
	forecaster := NewAdaptiveSMAForecaster(nil)
	assert.Equal(t, "adaptive_sma", forecaster.Name())
}

func BenchmarkAdaptiveSMAForecaster(b *testing.B) {
	values := generateLinearValues(100, 1.0, 0.0)
	config := ForecastConfig{
		Horizon:        10,
		MaxSamplesUsed: 12,
		Confidence:     0.95,
	}
	forecaster := NewAdaptiveSMAForecaster(logging.NewNop())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = forecaster.Forecast(values, config)
	}
}
