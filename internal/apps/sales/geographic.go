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

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/datagen"
	"github.com/meridiandata/salesgen/internal/logging"
)

// countryInfo is one entry of the static country catalog.
type countryInfo struct {
	Name     string
	Code     string
	Region   string
	Currency string
	Locale   string
}

// worldCountries is the country catalog, ordered so that trimming to the
// configured country count keeps a sensible regional mix. Codes are
// ISO 3166-1 alpha-3.
var worldCountries = []countryInfo{
	{"United States", "USA", "North America", "USD", localeEnUS},
	{"Canada", "CAN", "North America", "CAD", localeEnUS},
	{"Mexico", "MEX", "North America", "USD", localeEnUS},

	{"United Kingdom", "GBR", "Europe", "GBP", localeEnGB},
	{"Germany", "DEU", "Europe", "EUR", localeDeDE},
	{"France", "FRA", "Europe", "EUR", localeFrFR},
	{"Italy", "ITA", "Europe", "EUR", localeDeDE},
	{"Spain", "ESP", "Europe", "EUR", localeDeDE},
	{"Netherlands", "NLD", "Europe", "EUR", localeDeDE},
	{"Switzerland", "CHE", "Europe", "CHF", localeDeDE},
	{"Austria", "AUT", "Europe", "EUR", localeDeDE},
	{"Belgium", "BEL", "Europe", "EUR", localeDeDE},
	{"Sweden", "SWE", "Europe", "EUR", localeDeDE},
	{"Norway", "NOR", "Europe", "EUR", localeDeDE},
	{"Denmark", "DNK", "Europe", "EUR", localeDeDE},

	{"Japan", "JPN", "Asia", "JPY", localeJaJP},
	{"China", "CHN", "Asia", "CNY", localeZhCN},
	{"India", "IND", "Asia", "INR", localeEnUS},
	{"South Korea", "KOR", "Asia", "USD", localeEnUS},
	{"Singapore", "SGP", "Asia", "USD", localeEnUS},
	{"Hong Kong", "HKG", "Asia", "USD", localeEnUS},
	{"Taiwan", "TWN", "Asia", "USD", localeEnUS},
	{"Thailand", "THA", "Asia", "USD", localeEnUS},
	{"Malaysia", "MYS", "Asia", "USD", localeEnUS},
	{"Indonesia", "IDN", "Asia", "USD", localeEnUS},

	{"Australia", "AUS", "Oceania", "AUD", localeEnUS},
	{"New Zealand", "NZL", "Oceania", "AUD", localeEnUS},

	{"Brazil", "BRA", "South America", "BRL", localeEnUS},
	{"Argentina", "ARG", "South America", "USD", localeEnUS},
	{"Chile", "CHL", "South America", "USD", localeEnUS},
	{"Colombia", "COL", "South America", "USD", localeEnUS},

	{"South Africa", "ZAF", "Africa", "USD", localeEnUS},
	{"Egypt", "EGY", "Africa", "USD", localeEnUS},
	{"Nigeria", "NGA", "Africa", "USD", localeEnUS},
	{"Kenya", "KEN", "Africa", "USD", localeEnUS},
}

// localeForCode maps a country code back to its catalog locale, for
// caches reloaded from the database.
func localeForCode(code string) string {
	for _, c := range worldCountries {
		if c.Code == code {
			return c.Locale
		}
	}
	return localeEnUS
}

var territorySuffixes = []string{"Region", "District", "Province", "Area", "Zone", "Territory"}

// territoryCountRange returns the per-country territory count bounds for
// a region. Denser markets get more territories.
func territoryCountRange(region string) (int, int) {
	switch region {
	case "North America":
		return 8, 15
	case "Europe":
		return 5, 12
	case "Asia":
		return 3, 10
	default:
		return 2, 8
	}
}

// territoryName draws a candidate territory name: usually a state name,
// otherwise a city with a regional suffix.
func (g *Generator) territoryName(f *datagen.Faker) string {
	if f.Chance(0.7) {
		return f.State()
	}
	return fmt.Sprintf("%s %s", f.City(), datagen.Choose(f, territorySuffixes))
}

// generateGeographic inserts the configured slice of the country catalog
// and a weighted number of territories per country, stopping once the
// global territory budget is spent. Territory names are unique per
// country; exhausted name pools fall back to numbered names.
func (g *Generator) generateGeographic(ctx context.Context, db apps.DB) error {
	catalog := worldCountries
	if g.vol.Countries < len(catalog) {
		catalog = catalog[:g.vol.Countries]
	}

	for _, ci := range catalog {
		var id int32
		err := db.QueryRow(ctx, `
			INSERT INTO countries (name, code, region, currency_code)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (name) DO UPDATE SET region = EXCLUDED.region
			RETURNING country_id`,
			ci.Name, ci.Code, ci.Region, ci.Currency).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert country %s: %w", ci.Code, err)
		}
		g.cache.Countries = append(g.cache.Countries, Country{
			ID:           id,
			Name:         ci.Name,
			Code:         ci.Code,
			Region:       ci.Region,
			CurrencyCode: ci.Currency,
			Locale:       ci.Locale,
		})
	}

	budget := g.vol.Territories
	total := 0
	for _, country := range g.cache.Countries {
		if total >= budget {
			break
		}
		f := g.locales.fakerFor(country.Locale)
		lo, hi := territoryCountRange(country.Region)
		n := f.Int(lo, hi)
		if total+n > budget {
			n = budget - total
		}

		scope := "territory:" + country.Code
		for i := 0; i < n; i++ {
			res := g.namer.Attempt(scope, datagen.DefaultNameBudget, func() string {
				return g.territoryName(f)
			})
			var id int32
			err := db.QueryRow(ctx, `
				INSERT INTO territories (name, country_id)
				VALUES ($1, $2)
				ON CONFLICT (name, country_id) DO UPDATE SET name = EXCLUDED.name
				RETURNING territory_id`,
				res.Name, country.ID).Scan(&id)
			if err != nil {
				return fmt.Errorf("failed to insert territory %q (%s): %w", res.Name, country.Code, err)
			}
			g.cache.addTerritory(Territory{ID: id, Name: res.Name, CountryID: country.ID})
			total++
		}
	}

	logging.Info().
		Int("countries", len(g.cache.Countries)).
		Int("territories", total).
		Msg("Generated geographic data")
	return nil
}

// newAddress inserts a street address inside the given territory and
// returns its ID. Roughly a third of addresses carry a secondary line.
func (g *Generator) newAddress(ctx context.Context, db apps.DB, t Territory) (int32, error) {
	country := g.cache.countryByID(t.CountryID)
	if country == nil {
		return 0, fmt.Errorf("territory %d references unknown country %d", t.ID, t.CountryID)
	}
	f := g.locales.fakerFor(country.Locale)

	var line2 *string
	if f.Chance(0.3) {
		s := fmt.Sprintf("Suite %d", f.Int(100, 999))
		line2 = &s
	}

	var id int32
	err := db.QueryRow(ctx, `
		INSERT INTO addresses (address_line1, address_line2, city, postal_code, territory_id, country_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING address_id`,
		f.Street(), line2, f.City(), g.locales.postalCode(country.Locale), t.ID, country.ID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert address: %w", err)
	}
	g.cache.AddressIDs = append(g.cache.AddressIDs, id)
	return id, nil
}
