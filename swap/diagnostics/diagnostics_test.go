package diagnostics_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/curvelib/curve"
	"github.com/meenmo/curvelib/marketdata"
	"github.com/meenmo/curvelib/swap/diagnostics"
)

var refDate = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

func marketQuotes() []marketdata.Quote {
	return []marketdata.Quote{
		{TenorYears: 0.5, Rate: 0.0411, IsFixing: true},
		{TenorYears: 1, Rate: 0.0414},
		{TenorYears: 2, Rate: 0.0373},
		{TenorYears: 3, Rate: 0.0348},
		{TenorYears: 5, Rate: 0.0321},
		{TenorYears: 7, Rate: 0.0311},
		{TenorYears: 10, Rate: 0.0308},
	}
}

func bootstrapped(t *testing.T) (*curve.Curve, *curve.Curve) {
	t.Helper()
	proj, disc, err := curve.Bootstrap(refDate, marketQuotes(), -38.0)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	return proj, disc
}

func TestRepriceQuotes(t *testing.T) {
	t.Parallel()

	proj, disc := bootstrapped(t)
	residuals, err := diagnostics.RepriceQuotes(marketQuotes(), proj, disc, refDate)
	if err != nil {
		t.Fatalf("RepriceQuotes: %v", err)
	}
	// One residual per par quote; the fixing is skipped.
	if len(residuals) != 6 {
		t.Fatalf("got %d residuals, want 6", len(residuals))
	}
	for _, r := range residuals {
		if math.Abs(r.PV) > 1e-8 {
			t.Errorf("tenor %gY reprices with residual %.3e", r.TenorYears, r.PV)
		}
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	residuals := []diagnostics.Residual{
		{TenorYears: 1, PV: 3e-11},
		{TenorYears: 2, PV: -4e-11},
	}
	s, err := diagnostics.Summarize(residuals)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got, want := s.MaxAbs, 4e-11; math.Abs(got-want) > 1e-20 {
		t.Fatalf("MaxAbs: got %g, want %g", got, want)
	}
	if got, want := s.MeanAbs, 3.5e-11; math.Abs(got-want) > 1e-20 {
		t.Fatalf("MeanAbs: got %g, want %g", got, want)
	}
	if got, want := s.RMS, math.Sqrt((9e-22+16e-22)/2); math.Abs(got-want) > 1e-20 {
		t.Fatalf("RMS: got %g, want %g", got, want)
	}

	if _, err := diagnostics.Summarize(nil); err == nil {
		t.Fatal("empty residuals: want error")
	}
}

func TestVerifyBootstrap(t *testing.T) {
	t.Parallel()

	proj, disc := bootstrapped(t)
	if err := diagnostics.VerifyBootstrap(marketQuotes(), proj, disc, refDate, 1e-8); err != nil {
		t.Fatalf("VerifyBootstrap: %v", err)
	}

	// A curve built from different quotes fails to reprice these ones.
	shifted := marketdata.BumpParQuotes(marketQuotes(), 25)
	oProj, oDisc, err := curve.Bootstrap(refDate, shifted, -38.0)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if err := diagnostics.VerifyBootstrap(marketQuotes(), oProj, oDisc, refDate, 1e-8); err == nil {
		t.Fatal("mismatched curves must fail verification")
	}
}
