// Package diagnostics verifies bootstrapped curves by repricing the quotes
// that built them.
package diagnostics

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/meenmo/curvelib/curve"
	"github.com/meenmo/curvelib/marketdata"
	"github.com/meenmo/curvelib/swap"
	"github.com/meenmo/curvelib/utils"
)

// Residual is the unit-notional repricing error of one bootstrapped tenor.
type Residual struct {
	TenorYears float64
	PV         float64
}

// Summary aggregates absolute repricing residuals across tenors.
type Summary struct {
	MaxAbs  float64
	MeanAbs float64
	RMS     float64
}

// RepriceQuotes builds, for every par-swap quote, the vanilla swap at that
// tenor struck at the quoted rate and prices it against the bootstrapped
// curves. A well-bootstrapped curve pair reprices every quote to
// approximately zero (within the solver tolerance).
func RepriceQuotes(quotes []marketdata.Quote, proj, disc *curve.Curve, referenceDate time.Time) ([]Residual, error) {
	residuals := make([]Residual, 0, len(quotes))
	for _, q := range marketdata.SortQuotes(quotes) {
		if q.IsFixing {
			continue
		}
		months := int(math.Round(q.TenorYears * 12))
		s, err := swap.NewSwap(referenceDate, utils.AddMonth(referenceDate, months), 1.0)
		if err != nil {
			return nil, fmt.Errorf("RepriceQuotes: tenor %gY: %w", q.TenorYears, err)
		}
		if err := s.SetFixedRate(q.Rate); err != nil {
			return nil, fmt.Errorf("RepriceQuotes: tenor %gY: %w", q.TenorYears, err)
		}
		pv, err := swap.PV(s, proj, disc, referenceDate)
		if err != nil {
			return nil, fmt.Errorf("RepriceQuotes: tenor %gY: %w", q.TenorYears, err)
		}
		residuals = append(residuals, Residual{TenorYears: q.TenorYears, PV: pv})
	}
	return residuals, nil
}

// Summarize reduces residuals to max/mean absolute error and RMS.
func Summarize(residuals []Residual) (Summary, error) {
	if len(residuals) == 0 {
		return Summary{}, fmt.Errorf("Summarize: no residuals")
	}
	abs := make([]float64, len(residuals))
	sumSq := 0.0
	for i, r := range residuals {
		abs[i] = math.Abs(r.PV)
		sumSq += r.PV * r.PV
	}
	maxAbs, err := stats.Max(abs)
	if err != nil {
		return Summary{}, fmt.Errorf("Summarize: %w", err)
	}
	meanAbs, err := stats.Mean(abs)
	if err != nil {
		return Summary{}, fmt.Errorf("Summarize: %w", err)
	}
	return Summary{
		MaxAbs:  maxAbs,
		MeanAbs: meanAbs,
		RMS:     math.Sqrt(sumSq / float64(len(residuals))),
	}, nil
}

// VerifyBootstrap reprices every par quote against the curves and errors if
// any residual exceeds the tolerance. Use it to detect non-convergence or a
// data-quality problem in the input quotes.
func VerifyBootstrap(quotes []marketdata.Quote, proj, disc *curve.Curve, referenceDate time.Time, tolerance float64) error {
	residuals, err := RepriceQuotes(quotes, proj, disc, referenceDate)
	if err != nil {
		return fmt.Errorf("VerifyBootstrap: %w", err)
	}
	summary, err := Summarize(residuals)
	if err != nil {
		return fmt.Errorf("VerifyBootstrap: %w", err)
	}
	if summary.MaxAbs > tolerance {
		return fmt.Errorf("VerifyBootstrap: max residual %.3e exceeds tolerance %.3e", summary.MaxAbs, tolerance)
	}
	return nil
}
