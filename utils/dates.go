package utils

import (
	"math"
	"sort"
	"time"
)

// SortDates sorts a slice of time.Time in ascending order.
func SortDates(dates []time.Time) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

// DateParser converts YYYY-MM-DD to time.Time.
func DateParser(strDate string) (time.Time, error) {
	const layout = "2006-01-02"
	return time.Parse(layout, strDate)
}

// Days returns the day count between two dates as a float.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// AddMonth behaves like Excel's EDATE, avoiding Go's month normalization surprises.
func AddMonth(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if target.Month() == t.AddDate(0, months, 0).Month() {
		return t.AddDate(0, months, 0)
	}

	d := t.AddDate(0, months, 0)
	origMonth := int(d.Month())
	for int(d.Month()) == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// GeneratePaymentDates returns the periodic payment dates between start and
// end at the given frequency in months. Dates are start + k*frequencyMonths
// for k = 1, 2, ... while on or before end; when the roll does not land
// exactly on end, end is appended as a stub period. The start date itself is
// never included.
//
// Each date is rolled from the original start (EDATE semantics) rather than
// from the previous date, so month-end starts do not drift.
func GeneratePaymentDates(start, end time.Time, frequencyMonths int) []time.Time {
	if frequencyMonths <= 0 || !end.After(start) {
		return nil
	}
	dates := make([]time.Time, 0, 16)
	for k := 1; ; k++ {
		d := AddMonth(start, k*frequencyMonths)
		if d.After(end) {
			break
		}
		dates = append(dates, d)
	}
	if len(dates) == 0 || !dates[len(dates)-1].Equal(end) {
		dates = append(dates, end)
	}
	return dates
}

// RoundTo rounds a float to the specified decimal places.
func RoundTo(val float64, decimals uint32) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
