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
	"context"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/logging"
)

// Exchange rate walk parameters. Daily rates follow a mean-reverting
// random walk around each currency's long-run USD rate, clamped so the
// stored NUMERIC(15,6) values never overflow.
const (
	rateDailyVolatility = 0.003  // stddev of the daily relative move
	rateMeanReversion   = 0.05   // pull toward the base rate
	rateBandLow         = 0.5    // floor as a fraction of the base rate
	rateBandHigh        = 1.5    // ceiling as a fraction of the base rate
	rateAbsoluteMin     = 1e-6   // global floor on any stored rate
	rateAbsoluteMax     = 1e5    // global ceiling on a forward rate
	rateReciprocalMax   = 1e6    // global ceiling on a reciprocal rate
	rateHistoryDays     = 365    // history generated before the start date
	rateFlushThreshold  = 10_000 // buffered rows before a mid-walk flush
)

// nextRate advances one step of the walk. noise is a draw from N(0, 1)
// scaled by the daily volatility by the caller, or pre-scaled here.
func nextRate(current, base, noise float64) float64 {
	reversion := rateMeanReversion * (base - current)
	r := current * (1 + noise + reversion)
	r = math.Max(base*rateBandLow, math.Min(r, base*rateBandHigh))
	return math.Max(rateAbsoluteMin, math.Min(r, rateAbsoluteMax))
}

// reciprocalRate returns the bounded inverse of a forward rate.
func reciprocalRate(rate float64) float64 {
	if rate <= rateAbsoluteMin {
		return rateReciprocalMax
	}
	return math.Max(rateAbsoluteMin, math.Min(1/rate, rateReciprocalMax))
}

// round6 rounds to the 6 fractional digits the rate columns store.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

// round2 rounds to the 2 fractional digits monetary columns store.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// generateExchangeRates produces a daily exchange rate series for every
// currency with a USD base rate, covering one year of history before the
// configured start date through the end date. Both directions of each
// pair are stored.
func (g *Generator) generateExchangeRates(ctx context.Context, db apps.DB) error {
	current := make(map[string]float64, len(usdBaseRates))
	for code, base := range usdBaseRates {
		current[code] = base
	}

	// Stable iteration order keeps seeded runs reproducible.
	var codes []string
	for _, c := range worldCurrencies {
		if _, ok := usdBaseRates[c.Code]; ok {
			codes = append(codes, c.Code)
		}
	}

	day := g.vol.StartDate.AddDate(0, 0, -rateHistoryDays)
	end := g.vol.EndDate

	batch := &pgx.Batch{}
	total := 0
	for !day.After(end) {
		for _, code := range codes {
			noise := g.faker.Norm(0, rateDailyVolatility)
			rate := nextRate(current[code], usdBaseRates[code], noise)
			current[code] = rate

			batch.Queue(`
				INSERT INTO exchange_rates (from_currency, to_currency, rate, effective_date)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (from_currency, to_currency, effective_date) DO NOTHING`,
				"USD", code, round6(rate), day)
			batch.Queue(`
				INSERT INTO exchange_rates (from_currency, to_currency, rate, effective_date)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (from_currency, to_currency, effective_date) DO NOTHING`,
				code, "USD", round6(reciprocalRate(rate)), day)
			total += 2
		}
		day = day.AddDate(0, 0, 1)

		if batch.Len() >= rateFlushThreshold {
			if err := flushBatch(ctx, db, batch); err != nil {
				return err
			}
			batch = &pgx.Batch{}
		}
	}
	if err := flushBatch(ctx, db, batch); err != nil {
		return err
	}

	logging.Info().
		Int("pairs", len(codes)).
		Int("rates", total).
		Time("from", g.vol.StartDate.AddDate(0, 0, -rateHistoryDays)).
		Time("to", end).
		Msg("Generated exchange rate history")
	return nil
}

// fixedUSDRate returns the pricing fallback rate for a currency, used
// when no stored price exists in the customer's currency. USD and any
// currency without a base rate convert at 1:1.
func fixedUSDRate(code string) float64 {
	if r, ok := usdBaseRates[code]; ok {
		return r
	}
	return 1.0
}

// dateOnly truncates a timestamp to midnight UTC. Generated DATE columns
// all pass through this so comparisons against them stay exact.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
