package swap

import (
	"fmt"
	"time"

	"github.com/meenmo/curvelib/utils"
)

// DiscountCurve provides continuous-compounding discount factors for
// valuation. Times are ACT/ACT year fractions from the valuation date.
type DiscountCurve interface {
	DiscountFactor(t float64) (float64, error)
}

// ProjectionCurve provides zero and forward rates used to resolve floating
// leg coupons.
type ProjectionCurve interface {
	ZeroRate(t float64) (float64, error)
	ForwardRate(t1, t2 float64) (float64, error)
}

// Valuation is the full pricing output for a swap at a valuation date.
type Valuation struct {
	DirtyPV      float64
	CleanPV      float64
	ParRate      float64
	FixedAccrual float64
	FloatAccrual float64
}

// nearZeroTime is the threshold below which a floating period's start is
// treated as the curve's time zero, in which case the coupon is priced off
// the zero rate at the period end rather than a forward over a near-zero
// interval.
const nearZeroTime = 1e-6

// FixedLegPV sums the discounted future fixed-leg cash flows: flows whose
// payment date is strictly after the valuation date, each worth
// Amount * DF(t).
func FixedLegPV(s Swap, disc DiscountCurve, valuationDate time.Time) (float64, error) {
	if disc == nil {
		return 0, fmt.Errorf("FixedLegPV: %w", ErrNilCurve)
	}
	pv := 0.0
	for _, cf := range s.FixedCashFlows() {
		if !cf.PayDate.After(valuationDate) {
			continue
		}
		df, err := disc.DiscountFactor(utils.YearFraction(valuationDate, cf.PayDate, utils.ActAct))
		if err != nil {
			return 0, fmt.Errorf("FixedLegPV: %w", err)
		}
		pv += cf.Amount * df
	}
	return pv, nil
}

// FloatLegPV sums the discounted future floating-leg cash flows. Each
// period's coupon is the simple forward rate implied by the projection curve
// over the accrual period; a period beginning at or before the valuation
// date is priced off the zero rate at the period end.
func FloatLegPV(s Swap, proj ProjectionCurve, disc DiscountCurve, valuationDate time.Time) (float64, error) {
	if proj == nil || disc == nil {
		return 0, fmt.Errorf("FloatLegPV: %w", ErrNilCurve)
	}
	pv := 0.0
	for _, p := range s.FloatPeriods() {
		if !p.PayDate.After(valuationDate) {
			continue
		}
		rate, err := floatPeriodRate(proj, valuationDate, p)
		if err != nil {
			return 0, fmt.Errorf("FloatLegPV: %w", err)
		}
		df, err := disc.DiscountFactor(utils.YearFraction(valuationDate, p.PayDate, utils.ActAct))
		if err != nil {
			return 0, fmt.Errorf("FloatLegPV: %w", err)
		}
		pv += s.Notional * rate * p.DayFraction * df
	}
	return pv, nil
}

func floatPeriodRate(proj ProjectionCurve, valuationDate time.Time, p FloatPeriod) (float64, error) {
	t1 := utils.YearFraction(valuationDate, p.AccrualStart, utils.ActAct)
	t2 := utils.YearFraction(valuationDate, p.AccrualEnd, utils.ActAct)
	if t1 <= nearZeroTime {
		return proj.ZeroRate(t2)
	}
	return proj.ForwardRate(t1, t2)
}

// FixedAnnuity sums DayFraction * DF(t) over the future fixed payment dates.
// ParRate divides by it; it is also the fixed leg's PV per unit coupon.
func FixedAnnuity(s Swap, disc DiscountCurve, valuationDate time.Time) (float64, error) {
	if disc == nil {
		return 0, fmt.Errorf("FixedAnnuity: %w", ErrNilCurve)
	}
	annuity := 0.0
	for _, cf := range s.FixedCashFlows() {
		if !cf.PayDate.After(valuationDate) {
			continue
		}
		df, err := disc.DiscountFactor(utils.YearFraction(valuationDate, cf.PayDate, utils.ActAct))
		if err != nil {
			return 0, fmt.Errorf("FixedAnnuity: %w", err)
		}
		annuity += cf.DayFraction * df
	}
	return annuity, nil
}

// ParRate returns the fixed rate that makes the swap's PV zero:
// FloatLegPV / (Notional * FixedAnnuity).
func ParRate(s Swap, proj ProjectionCurve, disc DiscountCurve, valuationDate time.Time) (float64, error) {
	floatPV, err := FloatLegPV(s, proj, disc, valuationDate)
	if err != nil {
		return 0, fmt.Errorf("ParRate: %w", err)
	}
	annuity, err := FixedAnnuity(s, disc, valuationDate)
	if err != nil {
		return 0, fmt.Errorf("ParRate: %w", err)
	}
	if annuity == 0 {
		return 0, fmt.Errorf("ParRate: zero annuity")
	}
	return floatPV / (s.Notional * annuity), nil
}

// PV returns the swap's dirty present value under the receiver convention:
// FixedLegPV - FloatLegPV.
func PV(s Swap, proj ProjectionCurve, disc DiscountCurve, valuationDate time.Time) (float64, error) {
	fixedPV, err := FixedLegPV(s, disc, valuationDate)
	if err != nil {
		return 0, fmt.Errorf("PV: %w", err)
	}
	floatPV, err := FloatLegPV(s, proj, disc, valuationDate)
	if err != nil {
		return 0, fmt.Errorf("PV: %w", err)
	}
	return fixedPV - floatPV, nil
}

// FixedAccrual returns the fixed amount accrued through the valuation date on
// the single fixed period straddling it: the period's full amount prorated by
// the ACT/ACT elapsed fraction. Periods not containing the valuation date
// contribute zero.
func FixedAccrual(s Swap, valuationDate time.Time) float64 {
	for _, cf := range s.FixedCashFlows() {
		if cf.AccrualStart.After(valuationDate) || !cf.AccrualEnd.After(valuationDate) {
			continue
		}
		full := utils.YearFraction(cf.AccrualStart, cf.AccrualEnd, utils.ActAct)
		if full == 0 {
			return 0
		}
		elapsed := utils.YearFraction(cf.AccrualStart, valuationDate, utils.ActAct)
		return cf.Amount * elapsed / full
	}
	return 0
}

// FloatAccrual returns the floating amount accrued through the valuation
// date on the single floating period straddling it, with the period's rate
// resolved from the projection curve.
func FloatAccrual(s Swap, proj ProjectionCurve, valuationDate time.Time) (float64, error) {
	if proj == nil {
		return 0, fmt.Errorf("FloatAccrual: %w", ErrNilCurve)
	}
	for _, p := range s.FloatPeriods() {
		if p.AccrualStart.After(valuationDate) || !p.AccrualEnd.After(valuationDate) {
			continue
		}
		full := utils.YearFraction(p.AccrualStart, p.AccrualEnd, utils.ActAct)
		if full == 0 {
			return 0, nil
		}
		rate, err := floatPeriodRate(proj, valuationDate, p)
		if err != nil {
			return 0, fmt.Errorf("FloatAccrual: %w", err)
		}
		elapsed := utils.YearFraction(p.AccrualStart, valuationDate, utils.ActAct)
		return s.Notional * rate * p.DayFraction * elapsed / full, nil
	}
	return 0, nil
}

// Price computes the full valuation: dirty PV, par rate, both accruals, and
// the clean PV. Under the receiver convention
//
//	CleanPV = DirtyPV - FixedAccrual + FloatAccrual
//
// removing the fixed amount accrued but not yet received and adding back the
// float amount accruing against us. The identity
// DirtyPV == CleanPV + FixedAccrual - FloatAccrual is algebraic and exact.
func Price(s Swap, proj ProjectionCurve, disc DiscountCurve, valuationDate time.Time) (Valuation, error) {
	dirty, err := PV(s, proj, disc, valuationDate)
	if err != nil {
		return Valuation{}, fmt.Errorf("Price: %w", err)
	}
	parRate, err := ParRate(s, proj, disc, valuationDate)
	if err != nil {
		return Valuation{}, fmt.Errorf("Price: %w", err)
	}
	fixedAcc := FixedAccrual(s, valuationDate)
	floatAcc, err := FloatAccrual(s, proj, valuationDate)
	if err != nil {
		return Valuation{}, fmt.Errorf("Price: %w", err)
	}
	return Valuation{
		DirtyPV:      dirty,
		CleanPV:      dirty - fixedAcc + floatAcc,
		ParRate:      parRate,
		FixedAccrual: fixedAcc,
		FloatAccrual: floatAcc,
	}, nil
}
