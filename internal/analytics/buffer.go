// Package analytics provides common types and utilities for time-series analytics
// including the measurement buffer consumed by the forecast package.
package analytics

import (
	"errors"
	"fmt"
)

// ErrCapacityExceeded is returned when appending to a full Buffer
var ErrCapacityExceeded = errors.New("buffer capacity exceeded")

// Buffer is an append-only, fixed-capacity sequence of measurements.
// Entries at [0, Count()) are valid in insertion order; the rest of the
// backing storage is unused. A Buffer is not safe for concurrent mutation.
type Buffer struct {
	measurements []float64
	count        int
}

// NewBuffer creates an empty buffer with room for exactly capacity measurements
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return &Buffer{
		measurements: make([]float64, capacity),
	}
}

// BufferFromValues creates a buffer sized to values and appends each value in order
func BufferFromValues(values []float64) *Buffer {
	b := NewBuffer(len(values))
	for _, v := range values {
		// Cannot fail: capacity equals len(values)
		_ = b.Append(v)
	}
	return b
}

// Append writes value after the last valid measurement.
// The buffer never grows; a full buffer is left untouched.
func (b *Buffer) Append(value float64) error {
	if b.count == len(b.measurements) {
		return fmt.Errorf("append %v: %w (capacity %d)", value, ErrCapacityExceeded, len(b.measurements))
	}
	b.measurements[b.count] = value
	b.count++
	return nil
}

// Count returns the number of valid measurements
func (b *Buffer) Count() int {
	return b.count
}

// Capacity returns the number of allocated slots
func (b *Buffer) Capacity() int {
	return len(b.measurements)
}

// RawValues returns the backing storage, including unused trailing slots.
// Callers must treat Count() as the valid length.
func (b *Buffer) RawValues() []float64 {
	return b.measurements
}

// Values returns a copy of the valid measurements
func (b *Buffer) Values() []float64 {
	values := make([]float64, b.count)
	copy(values, b.measurements[:b.count])
	return values
}

// Mean calculates the mean of all valid measurements
func (b *Buffer) Mean() float64 {
	return Mean(b.measurements[:b.count])
}

// Mean calculates the arithmetic mean of values, 0 for an empty slice
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
