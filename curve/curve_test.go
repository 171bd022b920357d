package curve_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/meenmo/curvelib/curve"
)

var testRefDate = time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

func buildTestCurve(t *testing.T) *curve.Curve {
	t.Helper()
	c := curve.NewCurve(testRefDate)
	for _, k := range []curve.Knot{
		{Time: 0.5, Rate: 0.0411},
		{Time: 1, Rate: 0.0414},
		{Time: 2, Rate: 0.0373},
		{Time: 5, Rate: 0.0321},
	} {
		if err := c.AddPoint(k.Time, k.Rate); err != nil {
			t.Fatalf("AddPoint(%g): %v", k.Time, err)
		}
	}
	return c
}

func TestCurve_EmptyCurveQuery(t *testing.T) {
	t.Parallel()

	c := curve.NewCurve(testRefDate)
	if _, err := c.ZeroRate(1); !errors.Is(err, curve.ErrEmptyCurve) {
		t.Fatalf("want ErrEmptyCurve, got %v", err)
	}
	if _, err := c.DiscountFactor(1); !errors.Is(err, curve.ErrEmptyCurve) {
		t.Fatalf("DiscountFactor: want ErrEmptyCurve, got %v", err)
	}
}

func TestCurve_AddPointKeepsKnotsSorted(t *testing.T) {
	t.Parallel()

	c := curve.NewCurve(testRefDate)
	for _, k := range []curve.Knot{{Time: 5, Rate: 0.03}, {Time: 1, Rate: 0.04}, {Time: 2, Rate: 0.035}} {
		if err := c.AddPoint(k.Time, k.Rate); err != nil {
			t.Fatalf("AddPoint(%g): %v", k.Time, err)
		}
	}
	want := []curve.Knot{{Time: 1, Rate: 0.04}, {Time: 2, Rate: 0.035}, {Time: 5, Rate: 0.03}}
	if diff := cmp.Diff(want, c.Knots()); diff != "" {
		t.Fatalf("knots mismatch (-want +got):\n%s", diff)
	}
}

func TestCurve_AddPointRejectsDuplicates(t *testing.T) {
	t.Parallel()

	c := curve.NewCurve(testRefDate)
	if err := c.AddPoint(1, 0.04); err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	if err := c.AddPoint(1, 0.05); !errors.Is(err, curve.ErrDuplicateKnot) {
		t.Fatalf("want ErrDuplicateKnot, got %v", err)
	}
	if err := c.AddPoint(-0.5, 0.04); err == nil {
		t.Fatal("negative time: want error")
	}
}

func TestCurve_FlatBeforeFirstKnot(t *testing.T) {
	t.Parallel()

	c := buildTestCurve(t)
	got, err := c.ZeroRate(0.1)
	if err != nil {
		t.Fatalf("ZeroRate: %v", err)
	}
	if got != 0.0411 {
		t.Fatalf("t before first knot: want 0.0411, got %g", got)
	}
}

func TestCurve_DiscountFactorConventions(t *testing.T) {
	t.Parallel()

	c := buildTestCurve(t)

	for _, tt := range []float64{0, -1} {
		df, err := c.DiscountFactor(tt)
		if err != nil {
			t.Fatalf("DiscountFactor(%g): %v", tt, err)
		}
		if df != 1.0 {
			t.Fatalf("DF(%g): want exactly 1, got %g", tt, df)
		}
	}

	df, err := c.DiscountFactor(2)
	if err != nil {
		t.Fatalf("DiscountFactor: %v", err)
	}
	if want := math.Exp(-0.0373 * 2); math.Abs(df-want) > 1e-15 {
		t.Fatalf("continuous DF(2): want %.15f, got %.15f", want, df)
	}

	simple, err := c.SimpleDiscountFactor(2)
	if err != nil {
		t.Fatalf("SimpleDiscountFactor: %v", err)
	}
	if want := 1.0 / (1.0 + 0.0373*2); math.Abs(simple-want) > 1e-15 {
		t.Fatalf("simple DF(2): want %.15f, got %.15f", want, simple)
	}
	if simple == df {
		t.Fatal("conventions must differ away from t=0")
	}
}

func TestCurve_ForwardRate(t *testing.T) {
	t.Parallel()

	c := buildTestCurve(t)
	fwd, err := c.ForwardRate(1, 2)
	if err != nil {
		t.Fatalf("ForwardRate: %v", err)
	}
	df1, _ := c.DiscountFactor(1)
	df2, _ := c.DiscountFactor(2)
	if want := (df1/df2 - 1.0) / 1.0; math.Abs(fwd-want) > 1e-15 {
		t.Fatalf("forward 1->2: want %.15f, got %.15f", want, fwd)
	}

	if _, err := c.ForwardRate(2, 2); err == nil {
		t.Fatal("t2 == t1: want error")
	}
	if _, err := c.ForwardRate(2, 1); err == nil {
		t.Fatal("t2 < t1: want error")
	}
}

func TestCurve_ShiftParallel(t *testing.T) {
	t.Parallel()

	c := buildTestCurve(t)
	shifted := c.ShiftParallel(10) // +10bp
	for i, k := range c.Knots() {
		sk := shifted.Knots()[i]
		if sk.Time != k.Time {
			t.Fatalf("knot %d: time changed %g -> %g", i, k.Time, sk.Time)
		}
		if math.Abs(sk.Rate-(k.Rate+0.001)) > 1e-15 {
			t.Fatalf("knot %d: want %.6f, got %.6f", i, k.Rate+0.001, sk.Rate)
		}
	}
	// Original untouched.
	r, err := c.ZeroRate(1)
	if err != nil {
		t.Fatalf("ZeroRate: %v", err)
	}
	if r != 0.0414 {
		t.Fatalf("original mutated: got %g", r)
	}
}

func TestCurve_CloneRoundTrip(t *testing.T) {
	t.Parallel()

	c := buildTestCurve(t)
	clone := c.Clone()
	for _, k := range c.Knots() {
		orig, err := c.ZeroRate(k.Time)
		if err != nil {
			t.Fatalf("ZeroRate: %v", err)
		}
		got, err := clone.ZeroRate(k.Time)
		if err != nil {
			t.Fatalf("clone ZeroRate: %v", err)
		}
		if got != orig {
			t.Fatalf("t=%g: clone %g != original %g", k.Time, got, orig)
		}
	}

	// Mutating the clone must not touch the original.
	if err := clone.AddPoint(7, 0.0311); err != nil {
		t.Fatalf("AddPoint on clone: %v", err)
	}
	if len(c.Knots()) != 4 {
		t.Fatalf("original knot count changed: %d", len(c.Knots()))
	}
}

func TestCurve_AddPointInvalidatesAttachedInterpolator(t *testing.T) {
	t.Parallel()

	c := buildTestCurve(t)
	if err := c.FitSpline(false); err != nil {
		t.Fatalf("FitSpline: %v", err)
	}

	// With the spline attached, a query beyond the last knot is flat at the
	// last knot's value.
	r, err := c.ZeroRate(9)
	if err != nil {
		t.Fatalf("ZeroRate: %v", err)
	}
	if r != 0.0321 {
		t.Fatalf("spline flat extrapolation: want 0.0321, got %g", r)
	}

	// Adding a knot drops the stale spline; the next query rebuilds the
	// default linear fit over the new knot set.
	if err := c.AddPoint(10, 0.0308); err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	r, err = c.ZeroRate(7.5)
	if err != nil {
		t.Fatalf("ZeroRate after AddPoint: %v", err)
	}
	want := 0.0321 + (7.5-5)/(10-5)*(0.0308-0.0321)
	if math.Abs(r-want) > 1e-15 {
		t.Fatalf("linear rebuild: want %.6f, got %.6f", want, r)
	}
}

func TestCurve_SingleKnotIsFlat(t *testing.T) {
	t.Parallel()

	c := curve.NewCurve(testRefDate)
	if err := c.AddPoint(0.5, 0.0411); err != nil {
		t.Fatalf("AddPoint: %v", err)
	}
	for _, tt := range []float64{0.1, 0.5, 3} {
		r, err := c.ZeroRate(tt)
		if err != nil {
			t.Fatalf("ZeroRate(%g): %v", tt, err)
		}
		if r != 0.0411 {
			t.Fatalf("single knot curve at t=%g: want 0.0411, got %g", tt, r)
		}
	}
}

func TestCurve_ShiftReferenceDate(t *testing.T) {
	t.Parallel()

	c := buildTestCurve(t)
	if err := c.FitSpline(false); err != nil {
		t.Fatalf("FitSpline: %v", err)
	}

	newRef := testRefDate.AddDate(0, 3, 0)
	shifted, err := c.ShiftReferenceDate(newRef)
	if err != nil {
		t.Fatalf("ShiftReferenceDate: %v", err)
	}
	if !shifted.ReferenceDate().Equal(newRef) {
		t.Fatalf("reference date: got %s", shifted.ReferenceDate().Format("2006-01-02"))
	}

	// A query at t on the shifted curve reads the original fit at t+shift:
	// zero rates at matching absolute times must agree.
	origAt2, err := c.ZeroRate(2)
	if err != nil {
		t.Fatalf("ZeroRate: %v", err)
	}
	shift := 2.0 - shiftedKnotTime(t, c, shifted, 2.0)
	got, err := shifted.ZeroRate(2.0 - shift)
	if err != nil {
		t.Fatalf("shifted ZeroRate: %v", err)
	}
	if math.Abs(got-origAt2) > 1e-12 {
		t.Fatalf("shifted query: want %.12f, got %.12f", origAt2, got)
	}

	if _, err := c.ShiftReferenceDate(testRefDate); err == nil {
		t.Fatal("non-forward shift: want error")
	}
}

// shiftedKnotTime finds the shifted curve's knot corresponding to the
// original knot at origTime and returns its time.
func shiftedKnotTime(t *testing.T, orig, shifted *curve.Curve, origTime float64) float64 {
	t.Helper()
	origKnots := orig.Knots()
	idx := -1
	for i, k := range origKnots {
		if k.Time == origTime {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("no original knot at %g", origTime)
	}
	shiftedKnots := shifted.Knots()
	offset := len(origKnots) - len(shiftedKnots)
	return shiftedKnots[idx-offset].Time
}
