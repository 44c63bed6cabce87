package forecast

import (
	"fmt"

	"github.com/soltixdb/mapredict/internal/analytics"
	"github.com/soltixdb/mapredict/internal/config"
	"github.com/soltixdb/mapredict/internal/logging"
)

const (
	// MinSamplesUsed is the smallest window the predictor will consider
	MinSamplesUsed = config.MinMaxSamplesUsed

	// DefaultMaxSamplesUsed bounds the window search when no option is given
	DefaultMaxSamplesUsed = 3
)

// Predictor produces the next value of a series
type Predictor interface {
	PredictNext() (float64, error)
}

// MovingAverage predicts the next value of a series as the mean of its last
// w values, where w in [MinSamplesUsed, maxSamplesUsed] is the window with the
// lowest one-step mean squared error over the history snapshot.
//
// The window is selected on the first call to PredictNext and reused for
// every later call. Each prediction is appended to the private working copy,
// so successive calls extend the series.
//
// A MovingAverage is not safe for concurrent use; callers must serialize
// calls to PredictNext.
type MovingAverage struct {
	workData       []float64
	maxSamplesUsed int

	bestWindow     int
	windowSelected bool
	windowErrors   map[int]float64

	logger *logging.Logger
}

var _ Predictor = (*MovingAverage)(nil)

type options struct {
	maxSamplesUsed int
	logger         *logging.Logger
}

// Option configures a MovingAverage
type Option func(*options)

// WithMaxSamplesUsed sets the largest window length to evaluate
func WithMaxSamplesUsed(n int) Option {
	return func(o *options) {
		o.maxSamplesUsed = n
	}
}

// WithLogger sets the logger used for window selection diagnostics
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewMovingAverage creates a predictor over a snapshot of buffer.
// Later changes to buffer are not seen by the predictor.
func NewMovingAverage(buffer *analytics.Buffer, opts ...Option) (*MovingAverage, error) {
	o := options{maxSamplesUsed: DefaultMaxSamplesUsed}
	for _, opt := range opts {
		opt(&o)
	}

	if o.maxSamplesUsed < MinSamplesUsed {
		return nil, fmt.Errorf("%w: max samples used must be >= %d, got %d",
			ErrInvalidConfiguration, MinSamplesUsed, o.maxSamplesUsed)
	}

	if o.logger == nil {
		o.logger = logging.Global()
	}

	count := 0
	if buffer != nil {
		count = buffer.Count()
	}
	workData := make([]float64, count)
	if count > 0 {
		copy(workData, buffer.RawValues()[:count])
	}

	maxSamplesUsed := min(o.maxSamplesUsed, count)
	if count <= maxSamplesUsed {
		return nil, fmt.Errorf("%w: need more than %d values, have %d",
			ErrInsufficientData, o.maxSamplesUsed, count)
	}

	return &MovingAverage{
		workData:       workData,
		maxSamplesUsed: maxSamplesUsed,
		logger:         o.logger,
	}, nil
}

// NewMovingAverageFromConfig creates a predictor using the predictor section of the config.
// Options given explicitly override the config.
func NewMovingAverageFromConfig(buffer *analytics.Buffer, cfg config.PredictorConfig, opts ...Option) (*MovingAverage, error) {
	all := append([]Option{WithMaxSamplesUsed(cfg.MaxSamplesUsed)}, opts...)
	return NewMovingAverage(buffer, all...)
}

// PredictNext returns the next value of the series and appends it to the working copy
func (m *MovingAverage) PredictNext() (float64, error) {
	if !m.windowSelected {
		if err := m.selectWindow(); err != nil {
			return 0, err
		}
	}

	n := len(m.workData)
	prediction := analytics.Mean(m.workData[n-m.bestWindow : n])
	m.workData = append(m.workData, prediction)

	return prediction, nil
}

// PredictN calls PredictNext steps times and returns the predictions in order
func (m *MovingAverage) PredictN(steps int) ([]float64, error) {
	if steps < 1 {
		return nil, fmt.Errorf("%w: steps must be at least 1, got %d", ErrInvalidConfiguration, steps)
	}

	predictions := make([]float64, 0, steps)
	for i := 0; i < steps; i++ {
		p, err := m.PredictNext()
		if err != nil {
			return predictions, err
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}

// BestWindow returns the selected window length; ok is false before the first prediction
func (m *MovingAverage) BestWindow() (window int, ok bool) {
	return m.bestWindow, m.windowSelected
}

// MaxSamplesUsed returns the effective upper bound of the window search
func (m *MovingAverage) MaxSamplesUsed() int {
	return m.maxSamplesUsed
}

// Count returns the number of values in the working copy, predictions included
func (m *MovingAverage) Count() int {
	return len(m.workData)
}

// WorkData returns a copy of the working series, predictions included
func (m *MovingAverage) WorkData() []float64 {
	out := make([]float64, len(m.workData))
	copy(out, m.workData)
	return out
}

// WindowErrors returns the mean squared error of each evaluated window, nil before selection
func (m *MovingAverage) WindowErrors() map[int]float64 {
	if m.windowErrors == nil {
		return nil
	}
	out := make(map[int]float64, len(m.windowErrors))
	for w, mse := range m.windowErrors {
		out[w] = mse
	}
	return out
}

// selectWindow scores every candidate window and caches the best one.
// Ties go to the smallest window.
func (m *MovingAverage) selectWindow() error {
	n := len(m.workData)
	if n <= m.maxSamplesUsed {
		return fmt.Errorf("%w: window search up to %d needs more than %d values, have %d",
			ErrInsufficientData, m.maxSamplesUsed, m.maxSamplesUsed, n)
	}

	scores := make(map[int]float64, m.maxSamplesUsed-MinSamplesUsed+1)
	best := MinSamplesUsed
	bestMSE := 0.0
	for w := MinSamplesUsed; w <= m.maxSamplesUsed; w++ {
		mse := windowMSE(m.workData, w)
		scores[w] = mse
		if w == MinSamplesUsed || mse < bestMSE {
			best, bestMSE = w, mse
		}
	}

	m.bestWindow = best
	m.windowSelected = true
	m.windowErrors = scores

	m.logger.Debug("Moving average window selected",
		"window", best,
		"mse", bestMSE,
		"max_samples_used", m.maxSamplesUsed,
		"data_points", n)

	return nil
}

// windowMSE is the mean squared error of one-step forecasts made with the mean
// of the previous w values, over positions [w, len(data)). Requires len(data) > w.
func windowMSE(data []float64, w int) float64 {
	return CalculateMSE(data[w:], oneStepForecasts(data, w))
}

// oneStepForecasts returns, for each position i in [w, len(data)), the mean of data[i-w:i]
func oneStepForecasts(data []float64, w int) []float64 {
	if w <= 0 || len(data) <= w {
		return nil
	}
	fitted := make([]float64, len(data)-w)
	for i := w; i < len(data); i++ {
		fitted[i-w] = analytics.Mean(data[i-w : i])
	}
	return fitted
}
