// Package marketdata defines the market quote inputs to curve construction
// and feeds that supply them.
package marketdata

import (
	"fmt"
	"sort"
)

// Quote is a single market quote: either the short-end fixing or a par-swap
// rate at the given tenor. Rates are decimals (0.0411 == 4.11%). Quotes are
// immutable values.
type Quote struct {
	TenorYears float64
	Rate       float64
	IsFixing   bool
}

// SortQuotes returns a copy of quotes sorted by ascending tenor. The input is
// never mutated; curve construction always processes quotes in ascending
// tenor order regardless of input order.
func SortQuotes(quotes []Quote) []Quote {
	out := append([]Quote(nil), quotes...)
	sort.Slice(out, func(i, j int) bool { return out[i].TenorYears < out[j].TenorYears })
	return out
}

// ValidateQuotes checks that a quote set contains exactly one fixing and one
// or more par-swap quotes at strictly increasing, distinct tenors once
// sorted. All tenors must be positive.
func ValidateQuotes(quotes []Quote) error {
	if len(quotes) == 0 {
		return fmt.Errorf("ValidateQuotes: no quotes")
	}
	fixings := 0
	for _, q := range quotes {
		if q.TenorYears <= 0 {
			return fmt.Errorf("ValidateQuotes: non-positive tenor %g", q.TenorYears)
		}
		if q.IsFixing {
			fixings++
		}
	}
	if fixings != 1 {
		return fmt.Errorf("ValidateQuotes: want exactly 1 fixing, got %d", fixings)
	}
	if len(quotes) < 2 {
		return fmt.Errorf("ValidateQuotes: need at least 1 par-swap quote")
	}
	sorted := SortQuotes(quotes)
	for i := 1; i < len(sorted); i++ {
		if sorted[i].TenorYears == sorted[i-1].TenorYears {
			return fmt.Errorf("ValidateQuotes: duplicate tenor %g", sorted[i].TenorYears)
		}
	}
	return nil
}

// BumpParQuotes returns a copy of quotes with every par-swap rate shifted by
// bps/10000. Fixing quotes are never bumped; the input is never mutated.
func BumpParQuotes(quotes []Quote, bps float64) []Quote {
	out := append([]Quote(nil), quotes...)
	shift := bps / 10000.0
	for i := range out {
		if !out[i].IsFixing {
			out[i].Rate += shift
		}
	}
	return out
}
