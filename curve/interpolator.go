package curve

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientData is returned when an interpolator is fitted with
	// fewer than two knots.
	ErrInsufficientData = errors.New("insufficient data: need at least 2 knots")
	// ErrEmptyCurve is returned when a curve is queried before any knot exists.
	ErrEmptyCurve = errors.New("empty curve")
	// ErrDuplicateKnot is returned when a knot time already exists on the curve.
	ErrDuplicateKnot = errors.New("duplicate knot time")
)

// Interpolator evaluates a fitted term structure at an arbitrary time.
//
// Implementations are pure functions of their fitted state: evaluation never
// mutates the interpolator, so a fitted interpolator is safe to share across
// curves and goroutines.
type Interpolator interface {
	Interpolate(t float64) float64
}

// Linear is a piecewise-linear interpolator with flat extrapolation outside
// the fitted range.
type Linear struct {
	xs []float64
	ys []float64
}

// NewLinear fits a piecewise-linear interpolator to the given knots.
// xs must be strictly increasing and the same length as ys.
func NewLinear(xs, ys []float64) (*Linear, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("NewLinear: mismatched lengths (%d xs, %d ys)", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("NewLinear: %w", ErrInsufficientData)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("NewLinear: times not strictly increasing at index %d", i)
		}
	}
	l := &Linear{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
	}
	return l, nil
}

// Interpolate evaluates the fitted polyline at t. Outside [xs[0], xs[n-1]] it
// returns the nearest boundary value; the slope is never extrapolated.
func (l *Linear) Interpolate(t float64) float64 {
	n := len(l.xs)
	if t <= l.xs[0] {
		return l.ys[0]
	}
	if t >= l.xs[n-1] {
		return l.ys[n-1]
	}
	// Knot counts are small (tens at most), so a linear scan is fine.
	for i := 1; i < n; i++ {
		if t <= l.xs[i] {
			w := (t - l.xs[i-1]) / (l.xs[i] - l.xs[i-1])
			return l.ys[i-1] + w*(l.ys[i]-l.ys[i-1])
		}
	}
	return l.ys[n-1]
}

// ShiftedSpline wraps another interpolator and evaluates it at t + shift.
//
// It re-expresses a term structure built at an old reference date in terms of
// a later reference date without refitting: a query at time t relative to the
// new date reads the original fit at t + shift.
type ShiftedSpline struct {
	wrapped Interpolator
	shift   float64
}

// NewShiftedSpline wraps an existing interpolator with a time offset.
func NewShiftedSpline(wrapped Interpolator, shift float64) (*ShiftedSpline, error) {
	if wrapped == nil {
		return nil, fmt.Errorf("NewShiftedSpline: nil wrapped interpolator")
	}
	return &ShiftedSpline{wrapped: wrapped, shift: shift}, nil
}

// Interpolate evaluates the wrapped interpolator at t + shift.
func (s *ShiftedSpline) Interpolate(t float64) float64 {
	return s.wrapped.Interpolate(t + s.shift)
}
