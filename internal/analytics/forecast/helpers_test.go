package forecast

import (
	"math"
)

// Common test data helpers for all forecast tests

// generateLinearValues creates values with linear pattern: y = slope * x + intercept
func generateLinearValues(n int, slope, intercept float64) []float64 {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = slope*float64(i) + intercept
	}
	return values
}

// generateConstantValues creates n copies of c
func generateConstantValues(n int, c float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = c
	}
	return values
}

// generateAlternatingValues creates lo, hi, lo, hi, ...
func generateAlternatingValues(n int, lo, hi float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		if i%2 == 0 {
			values[i] = lo
		} else {
			values[i] = hi
		}
	}
	return values
}

// generateSeasonalValues creates values with a sine pattern over period
func generateSeasonalValues(n int, period int) []float64 {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		trend := float64(i) * 0.1
		seasonal := 10 * math.Sin(2*math.Pi*float64(i%period)/float64(period))
		values[i] = 50 + trend + seasonal
	}
	return values
}
