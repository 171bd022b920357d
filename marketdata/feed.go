package marketdata

import (
	"fmt"
	"time"
)

// QuoteFeed supplies the quote set for a given curve date.
type QuoteFeed interface {
	QuotesOn(date time.Time) ([]Quote, error)
}

// MapQuoteFeed is a static map-backed implementation for development/testing.
type MapQuoteFeed struct {
	quotes map[string][]Quote
}

// NewMapQuoteFeed builds a feed from quote sets keyed by curve date.
func NewMapQuoteFeed(sets map[time.Time][]Quote) *MapQuoteFeed {
	m := make(map[string][]Quote, len(sets))
	for d, qs := range sets {
		m[d.Format("2006-01-02")] = append([]Quote(nil), qs...)
	}
	return &MapQuoteFeed{quotes: m}
}

// QuotesOn returns the quote set stored for the given date.
func (m *MapQuoteFeed) QuotesOn(date time.Time) ([]Quote, error) {
	qs, ok := m.quotes[date.Format("2006-01-02")]
	if !ok {
		return nil, fmt.Errorf("QuotesOn: no quotes for %s", date.Format("2006-01-02"))
	}
	return append([]Quote(nil), qs...), nil
}
