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
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/logging"
)

// primaryTaxForRegion returns the main consumption tax type and rate
// range for a region. Europe runs VAT, North America sales tax, Asia and
// Oceania GST, everywhere else a generic VAT band.
func primaryTaxForRegion(region string) (taxType string, lo, hi float64) {
	switch region {
	case "Europe":
		return "VAT", 0.15, 0.25
	case "North America":
		return "SALES_TAX", 0.05, 0.15
	case "Asia", "Oceania":
		return "GST", 0.08, 0.20
	default:
		return "VAT", 0.10, 0.18
	}
}

// Customs duty band applied on top of the primary tax in every country.
const (
	customsDutyMin = 0.02
	customsDutyMax = 0.08
)

// taxTypeIDs loads the tax_types lookup keyed by name.
func taxTypeIDs(ctx context.Context, db apps.DB) (map[string]int32, error) {
	rows, err := db.Query(ctx, `SELECT tax_type_id, name FROM tax_types`)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax types: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int32)
	for rows.Next() {
		var id int32
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan tax type: %w", err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}

// generateTaxRates assigns each country a country-level primary tax rate
// by region plus a customs duty, effective from the run's start date.
func (g *Generator) generateTaxRates(ctx context.Context, db apps.DB) error {
	ids, err := taxTypeIDs(ctx, db)
	if err != nil {
		return err
	}
	for _, name := range []string{"VAT", "SALES_TAX", "GST", "CUSTOM_DUTY"} {
		if _, ok := ids[name]; !ok {
			return fmt.Errorf("tax type %s missing; run init with reference data first", name)
		}
	}

	batch := &pgx.Batch{}
	count := 0
	for _, country := range g.cache.Countries {
		taxType, lo, hi := primaryTaxForRegion(country.Region)
		batch.Queue(`
			INSERT INTO tax_rates (country_id, territory_id, tax_type_id, rate, effective_date, end_date)
			VALUES ($1, NULL, $2, $3, $4, NULL)`,
			country.ID, ids[taxType], g.faker.Float64(lo, hi), g.vol.StartDate)
		batch.Queue(`
			INSERT INTO tax_rates (country_id, territory_id, tax_type_id, rate, effective_date, end_date)
			VALUES ($1, NULL, $2, $3, $4, NULL)`,
			country.ID, ids["CUSTOM_DUTY"], g.faker.Float64(customsDutyMin, customsDutyMax), g.vol.StartDate)
		count += 2
	}
	if err := flushBatch(ctx, db, batch); err != nil {
		return err
	}

	logging.Info().Int("tax_rates", count).Msg("Generated tax rates")
	return nil
}
