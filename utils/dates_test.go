package utils_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/meenmo/curvelib/utils"
)

func TestAddMonth_EDATE(t *testing.T) {
	t.Parallel()

	// Month-end rolls clamp to the last day instead of normalizing over.
	got := utils.AddMonth(date(2025, 1, 31), 1)
	if !got.Equal(date(2025, 2, 28)) {
		t.Fatalf("Jan 31 + 1M: got %s", got.Format("2006-01-02"))
	}
	got = utils.AddMonth(date(2024, 1, 31), 1)
	if !got.Equal(date(2024, 2, 29)) {
		t.Fatalf("Jan 31 + 1M (leap): got %s", got.Format("2006-01-02"))
	}
	got = utils.AddMonth(date(2025, 3, 15), 6)
	if !got.Equal(date(2025, 9, 15)) {
		t.Fatalf("Mar 15 + 6M: got %s", got.Format("2006-01-02"))
	}
}

func TestGeneratePaymentDates_Regular(t *testing.T) {
	t.Parallel()

	start := date(2025, 1, 15)
	end := date(2027, 1, 15)
	got := utils.GeneratePaymentDates(start, end, 12)
	want := []time.Time{date(2026, 1, 15), date(2027, 1, 15)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratePaymentDates_ExcludesStart(t *testing.T) {
	t.Parallel()

	start := date(2025, 1, 15)
	got := utils.GeneratePaymentDates(start, date(2026, 1, 15), 6)
	for _, d := range got {
		if d.Equal(start) {
			t.Fatalf("start date %s must not be included", start.Format("2006-01-02"))
		}
	}
	if len(got) != 2 {
		t.Fatalf("want 2 dates, got %d", len(got))
	}
}

func TestGeneratePaymentDates_StubAtEnd(t *testing.T) {
	t.Parallel()

	// 15 months at annual frequency: one regular roll plus a 3M stub at end.
	start := date(2025, 1, 15)
	end := date(2026, 4, 15)
	got := utils.GeneratePaymentDates(start, end, 12)
	want := []time.Time{date(2026, 1, 15), end}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
}

func TestGeneratePaymentDates_Degenerate(t *testing.T) {
	t.Parallel()

	if got := utils.GeneratePaymentDates(date(2025, 1, 15), date(2025, 1, 15), 12); got != nil {
		t.Fatalf("start==end: want nil, got %v", got)
	}
	if got := utils.GeneratePaymentDates(date(2025, 1, 15), date(2026, 1, 15), 0); got != nil {
		t.Fatalf("zero frequency: want nil, got %v", got)
	}
}

func TestGeneratePaymentDates_ShortStubOnly(t *testing.T) {
	t.Parallel()

	// End before the first roll: the schedule is just the stub at end.
	start := date(2025, 1, 15)
	end := date(2025, 4, 15)
	got := utils.GeneratePaymentDates(start, end, 12)
	want := []time.Time{end}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dates mismatch (-want +got):\n%s", diff)
	}
}

func TestDateParserAndRound(t *testing.T) {
	t.Parallel()

	d, err := utils.DateParser("2026-02-03")
	if err != nil {
		t.Fatalf("DateParser error: %v", err)
	}
	if !d.Equal(date(2026, 2, 3)) {
		t.Fatalf("DateParser: got %s", d.Format("2006-01-02"))
	}
	if _, err := utils.DateParser("03/02/2026"); err == nil {
		t.Fatal("DateParser: want error for bad layout")
	}

	if got := utils.RoundTo(0.123456789, 6); got != 0.123457 {
		t.Fatalf("RoundTo: got %.9f", got)
	}
}

func TestSortDates(t *testing.T) {
	t.Parallel()

	dates := []time.Time{date(2026, 1, 1), date(2025, 1, 1), date(2025, 6, 1)}
	utils.SortDates(dates)
	want := []time.Time{date(2025, 1, 1), date(2025, 6, 1), date(2026, 1, 1)}
	if diff := cmp.Diff(want, dates); diff != "" {
		t.Fatalf("sorted dates mismatch (-want +got):\n%s", diff)
	}
}
