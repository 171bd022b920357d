package curve

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/curvelib/marketdata"
	"github.com/meenmo/curvelib/utils"
)

// TenorResult records the outcome of a single tenor's root-solve.
//
// A non-converged tenor is a recoverable approximation, not a fatal error:
// the solver keeps its best estimate and callers should treat the residual as
// a data-quality warning.
type TenorResult struct {
	TenorYears float64
	Rate       float64
	Residual   float64
	Iterations int
	Converged  bool
}

// Report collects per-tenor solve diagnostics from a bootstrap run.
type Report struct {
	Results []TenorResult
}

// Converged reports whether every solved tenor met the NPV tolerance.
func (r *Report) Converged() bool {
	for _, res := range r.Results {
		if !res.Converged {
			return false
		}
	}
	return true
}

// MaxResidual returns the largest absolute repricing residual across tenors.
func (r *Report) MaxResidual() float64 {
	max := 0.0
	for _, res := range r.Results {
		if v := math.Abs(res.Residual); v > max {
			max = v
		}
	}
	return max
}

// Bootstrap derives a forward-projection curve and a discount curve from
// market quotes using the default solver configuration. See
// BootstrapWithReport.
func Bootstrap(referenceDate time.Time, quotes []marketdata.Quote, spreadBps float64) (*Curve, *Curve, error) {
	proj, disc, _, err := BootstrapWithReport(referenceDate, quotes, spreadBps, DefaultSolverConfig)
	return proj, disc, err
}

// BootstrapWithReport builds a self-consistent pair of curves from one fixing
// and one or more par-swap quotes, processing quotes in ascending tenor order
// regardless of input order.
//
// The fixing is added directly to both curves, the discount point offset by
// spreadBps/10000. Each par tenor T is then solved with Newton-Raphson for
// the single projection zero rate at T that reprices the tenor's vanilla swap
// (annual fixed leg vs semi-annual floating leg, ACT/ACT) to zero. The
// discount curve point is always projection + spread, never solved
// independently. Discount factors at or beyond T use the candidate rate;
// earlier times read only previously solved tenors, so curves must be built
// tenor-ascending.
//
// Both returned curves share the same knot times.
func BootstrapWithReport(referenceDate time.Time, quotes []marketdata.Quote, spreadBps float64, cfg SolverConfig) (*Curve, *Curve, *Report, error) {
	if err := marketdata.ValidateQuotes(quotes); err != nil {
		return nil, nil, nil, fmt.Errorf("Bootstrap: %w", err)
	}

	sorted := marketdata.SortQuotes(quotes)
	spread := spreadBps / 10000.0

	proj := NewCurve(referenceDate)
	disc := NewCurve(referenceDate)
	report := &Report{}

	for _, q := range sorted {
		if q.IsFixing {
			if err := proj.AddPoint(q.TenorYears, q.Rate); err != nil {
				return nil, nil, nil, fmt.Errorf("Bootstrap: fixing: %w", err)
			}
			if err := disc.AddPoint(q.TenorYears, q.Rate+spread); err != nil {
				return nil, nil, nil, fmt.Errorf("Bootstrap: fixing: %w", err)
			}
			continue
		}

		res, err := solveTenor(proj, disc, referenceDate, q, spread, cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("Bootstrap: tenor %gY: %w", q.TenorYears, err)
		}
		if err := proj.AddPoint(q.TenorYears, res.Rate); err != nil {
			return nil, nil, nil, fmt.Errorf("Bootstrap: tenor %gY: %w", q.TenorYears, err)
		}
		if err := disc.AddPoint(q.TenorYears, res.Rate+spread); err != nil {
			return nil, nil, nil, fmt.Errorf("Bootstrap: tenor %gY: %w", q.TenorYears, err)
		}
		report.Results = append(report.Results, res)
	}

	return proj, disc, report, nil
}

// bootstrapPeriod is a precomputed accrual period of the par swap being
// repriced during a tenor solve. Times are ACT/ACT year fractions from the
// reference date.
type bootstrapPeriod struct {
	start   float64
	end     float64
	accrual float64
}

// solveTenor finds the projection zero rate at q.TenorYears that makes the
// tenor's vanilla par swap reprice to zero against the curves built so far.
func solveTenor(proj, disc *Curve, referenceDate time.Time, q marketdata.Quote, spread float64, cfg SolverConfig) (TenorResult, error) {
	months := int(math.Round(q.TenorYears * 12))
	maturity := utils.AddMonth(referenceDate, months)

	fixed := buildPeriods(referenceDate, maturity, 12)
	floating := buildPeriods(referenceDate, maturity, 6)
	if len(fixed) == 0 || len(floating) == 0 {
		return TenorResult{}, fmt.Errorf("solveTenor: empty schedule to %s", maturity.Format("2006-01-02"))
	}

	npv := func(candidate float64) (float64, error) {
		trialProj := proj.Clone()
		trialDisc := disc.Clone()
		if err := trialProj.AddPoint(q.TenorYears, candidate); err != nil {
			return 0, err
		}
		if err := trialDisc.AddPoint(q.TenorYears, candidate+spread); err != nil {
			return 0, err
		}
		return parSwapNPV(trialProj, trialDisc, fixed, floating, q.Rate)
	}

	// Initial guess is the quoted par rate itself.
	r := q.Rate
	res := TenorResult{TenorYears: q.TenorYears}
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		f, err := npv(r)
		if err != nil {
			return TenorResult{}, err
		}
		res.Residual = f
		res.Iterations = iter
		if math.Abs(f) < cfg.Tolerance {
			res.Converged = true
			break
		}

		fBumped, err := npv(r + cfg.Bump)
		if err != nil {
			return TenorResult{}, err
		}
		deriv := (fBumped - f) / cfg.Bump
		if math.Abs(deriv) < cfg.DerivativeFloor {
			// Stalled iteration: keep the last estimate instead of
			// looping to the cap.
			break
		}
		r -= f / deriv
	}
	res.Rate = r
	return res, nil
}

// buildPeriods generates consecutive accrual periods from start to end at the
// given frequency, expressed as ACT/ACT times from start.
func buildPeriods(start, end time.Time, frequencyMonths int) []bootstrapPeriod {
	dates := utils.GeneratePaymentDates(start, end, frequencyMonths)
	periods := make([]bootstrapPeriod, 0, len(dates))
	prev := start
	for _, d := range dates {
		periods = append(periods, bootstrapPeriod{
			start:   utils.YearFraction(start, prev, utils.ActAct),
			end:     utils.YearFraction(start, d, utils.ActAct),
			accrual: utils.YearFraction(prev, d, utils.ActAct),
		})
		prev = d
	}
	return periods
}

// parSwapNPV returns FloatLegPV - FixedLegPV for a unit-notional par swap
// paying fixedRate, using the trial curves.
func parSwapNPV(proj, disc *Curve, fixed, floating []bootstrapPeriod, fixedRate float64) (float64, error) {
	fixedPV := 0.0
	for _, p := range fixed {
		df, err := disc.DiscountFactor(p.end)
		if err != nil {
			return 0, err
		}
		fixedPV += fixedRate * p.accrual * df
	}

	floatPV := 0.0
	for _, p := range floating {
		var fwd float64
		var err error
		if p.start <= nearZeroTime {
			// The first period starts at the curve's time zero; price
			// it off the zero rate at the period end instead of a
			// forward over a near-zero interval.
			fwd, err = proj.ZeroRate(p.end)
		} else {
			fwd, err = proj.ForwardRate(p.start, p.end)
		}
		if err != nil {
			return 0, err
		}
		df, err := disc.DiscountFactor(p.end)
		if err != nil {
			return 0, err
		}
		floatPV += fwd * p.accrual * df
	}

	return floatPV - fixedPV, nil
}

// nearZeroTime is the threshold below which a period start is treated as the
// curve's time zero.
const nearZeroTime = 1e-6
