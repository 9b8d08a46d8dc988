//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import (
	"math"
	"testing"

	"github.com/meridiandata/salesgen/internal/datagen"
)

func TestNextRateStaysInBand(t *testing.T) {
	f := datagen.NewFakerWithSeed(7)
	for _, base := range []float64{0.75, 1.25, 110.0} {
		rate := base
		for i := 0; i < 5000; i++ {
			rate = nextRate(rate, base, f.Norm(0, rateDailyVolatility))
			if rate < base*rateBandLow || rate > base*rateBandHigh {
				t.Fatalf("rate %f left band [%f, %f] for base %f",
					rate, base*rateBandLow, base*rateBandHigh, base)
			}
		}
	}
}

func TestNextRateClampsExtremeMoves(t *testing.T) {
	// A huge positive shock pins the rate at the band ceiling.
	got := nextRate(1.0, 1.0, 100.0)
	if got != rateBandHigh {
		t.Errorf("expected ceiling %f, got %f", rateBandHigh, got)
	}
	// A huge negative shock pins it at the floor.
	got = nextRate(1.0, 1.0, -100.0)
	if got != rateBandLow {
		t.Errorf("expected floor %f, got %f", rateBandLow, got)
	}
}

func TestReciprocalRateBounds(t *testing.T) {
	tests := []struct {
		rate float64
		want float64
	}{
		{2.0, 0.5},
		{0.5, 2.0},
		{rateAbsoluteMin, rateReciprocalMax},
		{rateAbsoluteMin / 10, rateReciprocalMax},
	}
	for _, tt := range tests {
		got := reciprocalRate(tt.rate)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("reciprocalRate(%f) = %f, want %f", tt.rate, got, tt.want)
		}
	}
}

func TestReciprocalRateNeverBelowMin(t *testing.T) {
	got := reciprocalRate(rateReciprocalMax * 10)
	if got < rateAbsoluteMin {
		t.Errorf("reciprocal rate %g below minimum %g", got, rateAbsoluteMin)
	}
}

func TestRounding(t *testing.T) {
	if got := round6(0.1234567); got != 0.123457 {
		t.Errorf("round6: got %f", got)
	}
	if got := round2(19.996); got != 20.0 {
		t.Errorf("round2: got %f", got)
	}
}

func TestFixedUSDRate(t *testing.T) {
	if got := fixedUSDRate("EUR"); got != 0.85 {
		t.Errorf("EUR rate: got %f", got)
	}
	if got := fixedUSDRate("USD"); got != 1.0 {
		t.Errorf("USD rate: got %f", got)
	}
	// KRW has no base rate and converts 1:1.
	if got := fixedUSDRate("KRW"); got != 1.0 {
		t.Errorf("KRW rate: got %f", got)
	}
}

func TestBaseRatesCoverCatalogOnly(t *testing.T) {
	known := make(map[string]bool, len(worldCurrencies))
	for _, c := range worldCurrencies {
		known[c.Code] = true
	}
	for code := range usdBaseRates {
		if !known[code] {
			t.Errorf("base rate for %s has no currency catalog entry", code)
		}
	}
	if usdBaseRates["USD"] != 0 {
		t.Error("USD must not have a base rate against itself")
	}
}
