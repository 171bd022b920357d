package utils

import (
	"time"
)

// Day count conventions accepted by YearFraction.
const (
	ActAct    = "ACT/ACT" // Actual/Actual (ISDA)
	Act360    = "ACT/360"
	Act365F   = "ACT/365F"
	Thirty360 = "30E/360"
)

// YearFraction computes the year fraction between two dates under the given
// day count convention. It returns 0 when start is on or after end.
//
// ACT/ACT follows the ISDA definition: the interval is split at each calendar
// year boundary and each piece is divided by the actual length of its year
// (365 or 366). This is the basis for curve time and accrual calculations in
// this library; money-market conventions (ACT/360 etc.) are kept for
// leg-specific accrual bases.
func YearFraction(start, end time.Time, convention string) float64 {
	if !end.After(start) {
		return 0
	}
	switch convention {
	case Act360:
		return Days(start, end) / 360.0
	case Act365F:
		return Days(start, end) / 365.0
	case Thirty360, "30/360":
		// 30E/360 (Eurobond basis): D1 and D2 are capped at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		y1, m1 := start.Year(), int(start.Month())
		y2, m2 := end.Year(), int(end.Month())
		return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
	default:
		return actActISDA(start, end)
	}
}

func actActISDA(start, end time.Time) float64 {
	total := 0.0
	cursor := start
	for cursor.Year() < end.Year() {
		yearEnd := time.Date(cursor.Year()+1, 1, 1, 0, 0, 0, 0, time.UTC)
		total += Days(cursor, yearEnd) / daysInYear(cursor.Year())
		cursor = yearEnd
	}
	total += Days(cursor, end) / daysInYear(end.Year())
	return total
}

func daysInYear(year int) float64 {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
