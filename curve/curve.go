package curve

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/meenmo/curvelib/utils"
)

// Knot is a single (time, zero rate) point on a curve. Time is measured in
// years from the curve's reference date; the rate is a continuously
// compounded zero rate in decimal (0.035 == 3.5%).
type Knot struct {
	Time float64
	Rate float64
}

// Curve is an ordered set of zero-rate knots over a pluggable interpolation
// strategy.
//
// Knots are kept sorted by time. Inserting a knot invalidates any cached
// interpolator; the next query refits the default piecewise-linear strategy
// unless a custom interpolator is attached again via SetInterpolator or
// FitSpline. The zero rate for times at or before the first knot extends flat
// from that knot.
type Curve struct {
	referenceDate time.Time
	knots         []Knot
	interp        Interpolator // nil until fitted or attached
	custom        bool         // true when interp was attached explicitly
}

// NewCurve creates an empty curve anchored at the given reference date.
func NewCurve(referenceDate time.Time) *Curve {
	return &Curve{referenceDate: referenceDate}
}

// ReferenceDate returns the curve's anchor date.
func (c *Curve) ReferenceDate() time.Time {
	return c.referenceDate
}

// Knots returns a copy of the curve's knots in ascending time order.
func (c *Curve) Knots() []Knot {
	return append([]Knot(nil), c.knots...)
}

// AddPoint inserts a (time, rate) knot, keeping knots sorted by time.
// A negative time or a time already present on the curve is an error;
// duplicates are rejected rather than merged. Any fitted or attached
// interpolator is dropped so the next query rebuilds from the new knot set.
func (c *Curve) AddPoint(t, rate float64) error {
	if t < 0 {
		return fmt.Errorf("AddPoint: negative time %g", t)
	}
	i := sort.Search(len(c.knots), func(i int) bool { return c.knots[i].Time >= t })
	if i < len(c.knots) && c.knots[i].Time == t {
		return fmt.Errorf("AddPoint: %w at t=%g", ErrDuplicateKnot, t)
	}
	c.knots = append(c.knots, Knot{})
	copy(c.knots[i+1:], c.knots[i:])
	c.knots[i] = Knot{Time: t, Rate: rate}
	c.interp = nil
	c.custom = false
	return nil
}

// SetInterpolator attaches a fitted interpolator (e.g. a cubic spline) that
// queries use instead of the default linear rebuild. The attachment holds
// until the next AddPoint.
func (c *Curve) SetInterpolator(interp Interpolator) {
	c.interp = interp
	c.custom = interp != nil
}

// FitSpline fits a natural cubic spline to the current knots and attaches it.
func (c *Curve) FitSpline(addZeroPoint bool) error {
	xs, ys := c.split()
	s, err := NewCubicSpline(xs, ys, addZeroPoint)
	if err != nil {
		return fmt.Errorf("FitSpline: %w", err)
	}
	c.SetInterpolator(s)
	return nil
}

// ZeroRate returns the continuously compounded zero rate at time t in years.
func (c *Curve) ZeroRate(t float64) (float64, error) {
	if c.interp != nil {
		return c.interp.Interpolate(t), nil
	}
	switch len(c.knots) {
	case 0:
		return 0, fmt.Errorf("ZeroRate: %w", ErrEmptyCurve)
	case 1:
		return c.knots[0].Rate, nil
	}
	interp, err := c.interpolator()
	if err != nil {
		return 0, fmt.Errorf("ZeroRate: %w", err)
	}
	return interp.Interpolate(t), nil
}

// DiscountFactor returns exp(-r(t)*t), the continuous-compounding discount
// factor. It is exactly 1 for t <= 0.
//
// This is the convention for every pricing and bootstrap path in this
// library; see SimpleDiscountFactor for the alternate money-market form.
func (c *Curve) DiscountFactor(t float64) (float64, error) {
	if t <= 0 {
		return 1.0, nil
	}
	r, err := c.ZeroRate(t)
	if err != nil {
		return 0, fmt.Errorf("DiscountFactor: %w", err)
	}
	return math.Exp(-r * t), nil
}

// SimpleDiscountFactor returns 1/(1+r(t)*t), the simple-rate discount factor.
//
// It exists only for curves populated with simply compounded zero rates.
// The bootstrap and pricing components never call it: a curve populated with
// continuously compounded rates must be discounted with DiscountFactor, and
// mixing the two conventions silently corrupts PVs.
func (c *Curve) SimpleDiscountFactor(t float64) (float64, error) {
	if t <= 0 {
		return 1.0, nil
	}
	r, err := c.ZeroRate(t)
	if err != nil {
		return 0, fmt.Errorf("SimpleDiscountFactor: %w", err)
	}
	return 1.0 / (1.0 + r*t), nil
}

// ForwardRate returns the simple forward rate between t1 and t2:
// (DF(t1)/DF(t2) - 1) / (t2 - t1). t2 must be strictly greater than t1.
func (c *Curve) ForwardRate(t1, t2 float64) (float64, error) {
	if t2 <= t1 {
		return 0, fmt.Errorf("ForwardRate: invalid interval [%g, %g]", t1, t2)
	}
	df1, err := c.DiscountFactor(t1)
	if err != nil {
		return 0, fmt.Errorf("ForwardRate: %w", err)
	}
	df2, err := c.DiscountFactor(t2)
	if err != nil {
		return 0, fmt.Errorf("ForwardRate: %w", err)
	}
	return (df1/df2 - 1.0) / (t2 - t1), nil
}

// ShiftParallel returns a new curve with every knot's zero rate shifted by
// bps/10000. The original curve is left untouched. The shifted curve rebuilds
// its interpolator lazily from the shifted knots.
//
// This supports curve-level bump sensitivities; quote-level re-bootstrap
// (swap.DV01) is the primary risk methodology.
func (c *Curve) ShiftParallel(bps float64) *Curve {
	shift := bps / 10000.0
	nc := NewCurve(c.referenceDate)
	nc.knots = make([]Knot, len(c.knots))
	for i, k := range c.knots {
		nc.knots[i] = Knot{Time: k.Time, Rate: k.Rate + shift}
	}
	return nc
}

// Clone returns an independent copy of the curve. A fitted interpolator is
// shared, which is safe because interpolators are immutable once fitted.
func (c *Curve) Clone() *Curve {
	nc := NewCurve(c.referenceDate)
	nc.knots = append([]Knot(nil), c.knots...)
	nc.interp = c.interp
	nc.custom = c.custom
	return nc
}

// ShiftReferenceDate re-expresses the curve at a later reference date without
// refitting: the current fit is wrapped in a ShiftedSpline so a query at time
// t relative to newRef reads the original fit at t + shift. Knot times are
// moved back by the shift; knots that fall at or before the new reference
// date are dropped.
func (c *Curve) ShiftReferenceDate(newRef time.Time) (*Curve, error) {
	if !newRef.After(c.referenceDate) {
		return nil, fmt.Errorf("ShiftReferenceDate: new reference %s not after %s",
			newRef.Format("2006-01-02"), c.referenceDate.Format("2006-01-02"))
	}
	interp, err := c.interpolator()
	if err != nil {
		return nil, fmt.Errorf("ShiftReferenceDate: %w", err)
	}
	shift := utils.YearFraction(c.referenceDate, newRef, utils.ActAct)
	shifted, err := NewShiftedSpline(interp, shift)
	if err != nil {
		return nil, fmt.Errorf("ShiftReferenceDate: %w", err)
	}

	nc := NewCurve(newRef)
	for _, k := range c.knots {
		if k.Time-shift > 0 {
			nc.knots = append(nc.knots, Knot{Time: k.Time - shift, Rate: shifted.Interpolate(k.Time - shift)})
		}
	}
	nc.SetInterpolator(shifted)
	return nc, nil
}

// interpolator returns the attached interpolator, fitting the default linear
// strategy from the current knots when none is cached.
func (c *Curve) interpolator() (Interpolator, error) {
	if c.interp != nil {
		return c.interp, nil
	}
	if len(c.knots) == 0 {
		return nil, ErrEmptyCurve
	}
	xs, ys := c.split()
	l, err := NewLinear(xs, ys)
	if err != nil {
		return nil, err
	}
	c.interp = l
	c.custom = false
	return l, nil
}

func (c *Curve) split() ([]float64, []float64) {
	xs := make([]float64, len(c.knots))
	ys := make([]float64, len(c.knots))
	for i, k := range c.knots {
		xs[i] = k.Time
		ys[i] = k.Rate
	}
	return xs, ys
}
