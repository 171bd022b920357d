package curve

import (
	"fmt"
)

// CubicSpline is a natural cubic spline interpolator: piecewise cubics with
// continuous first and second derivatives and zero second derivative at both
// domain boundaries. Outside the fitted range it returns the boundary value
// (flat), never polynomial extrapolation.
//
// On each interval [x[i], x[i+1]] the spline is
//
//	S_i(t) = a[i] + b[i]*dx + c[i]*dx^2 + d[i]*dx^3, dx = t - x[i]
//
// with c[0] = c[n-1] = 0 (natural boundary). With exactly two knots the fit
// degenerates to a straight line.
type CubicSpline struct {
	xs []float64
	a  []float64
	b  []float64
	c  []float64
	d  []float64
}

// NewCubicSpline fits a natural cubic spline to the given knots. xs must be
// strictly increasing and the same length as ys.
//
// When addZeroPoint is true and the first knot time is positive, a synthetic
// t=0 knot equal to the first knot's value is prepended before fitting, which
// guarantees Interpolate(0) == Interpolate(xs[0]).
func NewCubicSpline(xs, ys []float64, addZeroPoint bool) (*CubicSpline, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("NewCubicSpline: mismatched lengths (%d xs, %d ys)", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("NewCubicSpline: %w", ErrInsufficientData)
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("NewCubicSpline: times not strictly increasing at index %d", i)
		}
	}

	x := append([]float64(nil), xs...)
	y := append([]float64(nil), ys...)
	if addZeroPoint && x[0] > 0 {
		x = append([]float64{0}, x...)
		y = append([]float64{y[0]}, y...)
	}

	n := len(x)
	m := solveNaturalSecondDerivatives(x, y)

	s := &CubicSpline{
		xs: x,
		a:  make([]float64, n-1),
		b:  make([]float64, n-1),
		c:  make([]float64, n-1),
		d:  make([]float64, n-1),
	}
	for i := 0; i < n-1; i++ {
		h := x[i+1] - x[i]
		s.a[i] = y[i]
		s.b[i] = (y[i+1]-y[i])/h - h*(2*m[i]+m[i+1])/6
		s.c[i] = m[i] / 2
		s.d[i] = (m[i+1] - m[i]) / (6 * h)
	}
	return s, nil
}

// solveNaturalSecondDerivatives returns the second derivatives M at each knot
// for a natural spline (M[0] = M[n-1] = 0), solving the standard tridiagonal
// system with the Thomas algorithm.
func solveNaturalSecondDerivatives(x, y []float64) []float64 {
	n := len(x)
	m := make([]float64, n)
	if n < 3 {
		return m // two knots: straight line, all second derivatives zero
	}

	// Interior unknowns M[1..n-2].
	k := n - 2
	diag := make([]float64, k)
	sub := make([]float64, k)
	sup := make([]float64, k)
	rhs := make([]float64, k)
	for i := 1; i <= k; i++ {
		h0 := x[i] - x[i-1]
		h1 := x[i+1] - x[i]
		diag[i-1] = 2 * (h0 + h1)
		sub[i-1] = h0
		sup[i-1] = h1
		rhs[i-1] = 6 * ((y[i+1]-y[i])/h1 - (y[i]-y[i-1])/h0)
	}

	// Thomas forward sweep.
	for i := 1; i < k; i++ {
		w := sub[i] / diag[i-1]
		diag[i] -= w * sup[i-1]
		rhs[i] -= w * rhs[i-1]
	}
	// Back substitution.
	m[k] = rhs[k-1] / diag[k-1]
	for i := k - 1; i >= 1; i-- {
		m[i] = (rhs[i-1] - sup[i-1]*m[i+1]) / diag[i-1]
	}
	return m
}

// Interpolate evaluates the spline at t. Outside the fitted range it returns
// the boundary knot value.
func (s *CubicSpline) Interpolate(t float64) float64 {
	n := len(s.xs)
	if t <= s.xs[0] {
		return s.a[0]
	}
	if t >= s.xs[n-1] {
		last := n - 2
		h := s.xs[n-1] - s.xs[last]
		return s.eval(last, h)
	}
	i := s.interval(t)
	return s.eval(i, t-s.xs[i])
}

// SecondDerivative evaluates S''(t). At and beyond the domain edges it is 0
// by the natural boundary condition and flat extrapolation.
func (s *CubicSpline) SecondDerivative(t float64) float64 {
	n := len(s.xs)
	if t <= s.xs[0] || t >= s.xs[n-1] {
		return 0
	}
	i := s.interval(t)
	dx := t - s.xs[i]
	return 2*s.c[i] + 6*s.d[i]*dx
}

func (s *CubicSpline) interval(t float64) int {
	for i := 1; i < len(s.xs); i++ {
		if t <= s.xs[i] {
			return i - 1
		}
	}
	return len(s.xs) - 2
}

func (s *CubicSpline) eval(i int, dx float64) float64 {
	return s.a[i] + dx*(s.b[i]+dx*(s.c[i]+dx*s.d[i]))
}
