package forecast

import "errors"

var (
	// ErrInvalidConfiguration is returned for predictor settings outside the supported range
	ErrInvalidConfiguration = errors.New("invalid predictor configuration")

	// ErrInsufficientData is returned when the series is too short to score every candidate window
	ErrInsufficientData = errors.New("insufficient data")
)
