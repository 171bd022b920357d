// Package swap values vanilla fixed-vs-float interest rate swaps against
// bootstrapped projection and discount curves, and computes quote-level
// re-bootstrap sensitivities.
package swap

import (
	"errors"
	"fmt"
	"time"

	"github.com/meenmo/curvelib/utils"
)

var (
	// ErrNilCurve is returned when a required curve argument is nil.
	ErrNilCurve = errors.New("nil curve")
	// ErrFixedRateSet is returned when a swap's fixed rate is set twice.
	ErrFixedRateSet = errors.New("fixed rate already set")
)

// Default leg payment frequencies in months.
const (
	DefaultFixedFrequencyMonths = 12
	DefaultFloatFrequencyMonths = 6
)

// Swap is a vanilla fixed-vs-float interest rate swap, receiver convention
// (receive fixed, pay float). It is a value type: schedules are derived on
// demand and never cached, and the only mutation allowed is stamping the
// fixed rate once (typically with the computed par rate).
type Swap struct {
	StartDate            time.Time
	EndDate              time.Time
	Notional             float64
	FixedRate            float64
	FixedFrequencyMonths int
	FloatFrequencyMonths int

	fixedRateSet bool
}

// NewSwap constructs a swap with the default annual fixed and semi-annual
// floating leg frequencies.
func NewSwap(start, end time.Time, notional float64) (Swap, error) {
	if !end.After(start) {
		return Swap{}, fmt.Errorf("NewSwap: end %s not after start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	if notional <= 0 {
		return Swap{}, fmt.Errorf("NewSwap: non-positive notional %g", notional)
	}
	return Swap{
		StartDate:            start,
		EndDate:              end,
		Notional:             notional,
		FixedFrequencyMonths: DefaultFixedFrequencyMonths,
		FloatFrequencyMonths: DefaultFloatFrequencyMonths,
	}, nil
}

// SetFixedRate stamps the fixed rate. It may be called exactly once,
// typically with the computed par rate.
func (s *Swap) SetFixedRate(rate float64) error {
	if s.fixedRateSet {
		return fmt.Errorf("SetFixedRate: %w", ErrFixedRateSet)
	}
	s.FixedRate = rate
	s.fixedRateSet = true
	return nil
}

// CashFlow is a single fixed-leg cash flow. Amount is the full-period
// payment: Notional * Rate * DayFraction.
type CashFlow struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	PayDate      time.Time
	DayFraction  float64
	Rate         float64
	Amount       float64
}

// FloatPeriod is a single floating-leg accrual period. The rate is resolved
// later from a projection curve.
type FloatPeriod struct {
	AccrualStart time.Time
	AccrualEnd   time.Time
	PayDate      time.Time
	DayFraction  float64
}

// FixedCashFlows derives the fixed-leg cash flows from the swap's schedule.
// Day fractions are ACT/ACT (ISDA); payment falls on the accrual end.
func (s Swap) FixedCashFlows() []CashFlow {
	dates := utils.GeneratePaymentDates(s.StartDate, s.EndDate, s.FixedFrequencyMonths)
	flows := make([]CashFlow, 0, len(dates))
	prev := s.StartDate
	for _, d := range dates {
		frac := utils.YearFraction(prev, d, utils.ActAct)
		flows = append(flows, CashFlow{
			AccrualStart: prev,
			AccrualEnd:   d,
			PayDate:      d,
			DayFraction:  frac,
			Rate:         s.FixedRate,
			Amount:       s.Notional * s.FixedRate * frac,
		})
		prev = d
	}
	return flows
}

// FloatPeriods derives the floating-leg accrual periods from the swap's
// schedule. Day fractions are ACT/ACT (ISDA); payment falls on the accrual
// end.
func (s Swap) FloatPeriods() []FloatPeriod {
	dates := utils.GeneratePaymentDates(s.StartDate, s.EndDate, s.FloatFrequencyMonths)
	periods := make([]FloatPeriod, 0, len(dates))
	prev := s.StartDate
	for _, d := range dates {
		periods = append(periods, FloatPeriod{
			AccrualStart: prev,
			AccrualEnd:   d,
			PayDate:      d,
			DayFraction:  utils.YearFraction(prev, d, utils.ActAct),
		})
		prev = d
	}
	return periods
}
