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
	"testing"
	"time"

	"github.com/meridiandata/salesgen/internal/datagen"
)

func TestSeasonalMultiplier(t *testing.T) {
	tests := []struct {
		month time.Month
		want  float64
	}{
		{time.November, 1.4},
		{time.December, 1.4},
		{time.January, 0.7},
		{time.February, 0.7},
		{time.June, 0.8},
		{time.July, 0.8},
		{time.August, 0.8},
		{time.March, 1.0},
		{time.September, 1.0},
	}
	for _, tt := range tests {
		if got := seasonalMultiplier(tt.month); got != tt.want {
			t.Errorf("seasonalMultiplier(%s) = %f, want %f", tt.month, got, tt.want)
		}
	}
}

func TestSeasonalMultiplierOrdering(t *testing.T) {
	// The Q4 boost must exceed the dead months so rejection sampling
	// produces the intended volume shape.
	if seasonalMultiplier(time.December) <= seasonalMultiplier(time.February) {
		t.Error("December multiplier should exceed February's")
	}
	if seasonalMultiplier(time.July) >= seasonalMultiplier(time.March) {
		t.Error("July multiplier should be below baseline")
	}
}

func TestQuantityRange(t *testing.T) {
	tests := []struct {
		credit   float64
		lo, hi   int
	}{
		{500_000, 5, 50},
		{100_001, 5, 50},
		{100_000, 2, 20},
		{25_001, 2, 20},
		{25_000, 1, 10},
		{5_000, 1, 10},
	}
	for _, tt := range tests {
		lo, hi := quantityRange(tt.credit)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("quantityRange(%f) = (%d, %d), want (%d, %d)", tt.credit, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestDiscountRange(t *testing.T) {
	tests := []struct {
		qty    int
		lo, hi float64
	}{
		{50, 5, 15},
		{21, 5, 15},
		{20, 2, 8},
		{11, 2, 8},
		{10, 0, 5},
		{1, 0, 5},
	}
	for _, tt := range tests {
		lo, hi := discountRange(tt.qty)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("discountRange(%d) = (%f, %f), want (%f, %f)", tt.qty, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestPriceInCurrency(t *testing.T) {
	f := datagen.NewFakerWithSeed(1)
	p := Product{BasePriceUSD: 100}

	if got := priceInCurrency(f, p, "USD"); got != 100 {
		t.Errorf("USD price: got %f", got)
	}
	if got := priceInCurrency(f, p, "EUR"); got != 85 {
		t.Errorf("EUR price: got %f", got)
	}
	if got := priceInCurrency(f, p, "JPY"); got != 11000 {
		t.Errorf("JPY price: got %f", got)
	}
	// Currencies without a list factor keep the USD figure.
	if got := priceInCurrency(f, p, "THB"); got != 100 {
		t.Errorf("THB price: got %f", got)
	}
}

func TestPriceInCurrencyFallback(t *testing.T) {
	f := datagen.NewFakerWithSeed(2)
	for i := 0; i < 100; i++ {
		got := priceInCurrency(f, Product{}, "USD")
		if got < fallbackPriceMin || got > fallbackPriceMax {
			t.Fatalf("fallback price %f outside [%f, %f]", got, fallbackPriceMin, fallbackPriceMax)
		}
	}
}
