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

// Customer tiers. The tier decides the credit profile, which in turn
// shapes order quantities downstream.
const (
	tierSmall      = "Small Business"
	tierMedium     = "Medium Business"
	tierEnterprise = "Enterprise"
	tierGovernment = "Government"
)

var customerTiers = []string{tierSmall, tierMedium, tierEnterprise, tierGovernment}

// creditProfile draws a credit limit and payment terms for a tier.
func creditProfile(f *datagen.Faker, tier string) (limit float64, terms int) {
	switch tier {
	case tierSmall:
		return f.Float64(5_000, 25_000), datagen.Choose(f, []int{15, 30})
	case tierMedium:
		return f.Float64(25_000, 100_000), datagen.Choose(f, []int{30, 45})
	case tierEnterprise:
		return f.Float64(100_000, 500_000), datagen.Choose(f, []int{30, 45, 60})
	default: // Government
		return f.Float64(50_000, 1_000_000), datagen.Choose(f, []int{45, 60, 90})
	}
}

// Share of customers with a shipping address separate from billing.
const separateShippingChance = 0.7

// shippingMethodCatalog is the fixed carrier menu.
var shippingMethodCatalog = []struct {
	Name     string
	Carrier  string
	Days     int
	CostType string
	BaseCost float64
}{
	{"Standard Ground", "UPS", 5, "FIXED", 15.00},
	{"Express Air", "FedEx", 2, "FIXED", 35.00},
	{"Next Day", "FedEx", 1, "FIXED", 75.00},
	{"Economy Ground", "USPS", 7, "FIXED", 8.50},
	{"International Express", "DHL", 3, "FIXED", 125.00},
	{"Freight", "Various", 10, "WEIGHT", 2.50},
}

// generateCustomers creates the customer base: tiered companies with a
// primary billing address, usually a separate shipping address, plus the
// shipping method catalog used by the sales stage.
func (g *Generator) generateCustomers(ctx context.Context, db apps.DB) error {
	if len(g.cache.Territories) == 0 {
		logging.Error().Msg("No territories available; skipping customers")
		return nil
	}

	// Top up the shared address pool so customers don't only reuse
	// supplier addresses.
	for i := 0; i < g.vol.Customers; i++ {
		t := datagen.Choose(g.faker, g.cache.Territories)
		if _, err := g.newAddress(ctx, db, t); err != nil {
			return err
		}
	}

	for i := 0; i < g.vol.Customers; i++ {
		t := datagen.Choose(g.faker, g.cache.Territories)
		country := g.cache.countryByID(t.CountryID)
		f := g.locales.fakerFor(country.Locale)

		tier := datagen.Choose(g.faker, customerTiers)
		limit, terms := creditProfile(f, tier)

		nameRes := g.namer.Attempt("customer", datagen.DefaultNameBudget, func() string {
			return g.locales.companyName(country.Locale)
		})
		emailRes := g.namer.Attempt("customer-email", datagen.DefaultNameBudget, f.Email)
		email := emailRes.Name
		if emailRes.Fallback {
			email = fmt.Sprintf("customer%d@%s", i+1, f.DomainName())
		}

		var id int32
		err := db.QueryRow(ctx, `
			INSERT INTO customers (company_name, tax_id, contact_name, contact_email,
			                       contact_phone, credit_limit, credit_terms)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING customer_id`,
			nameRes.Name, f.TaxID(country.Code), f.Name(), email, f.Phone(),
			round2(limit), terms).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert customer %q: %w", nameRes.Name, err)
		}

		billing := datagen.Choose(g.faker, g.cache.AddressIDs)
		shipping := billing
		_, err = db.Exec(ctx, `
			INSERT INTO customer_addresses (customer_id, address_id, address_type, is_primary)
			VALUES ($1, $2, 'BILLING', TRUE)`, id, billing)
		if err != nil {
			return fmt.Errorf("failed to insert billing address: %w", err)
		}
		if g.faker.Chance(separateShippingChance) {
			shipping = datagen.Choose(g.faker, g.cache.AddressIDs)
			_, err = db.Exec(ctx, `
				INSERT INTO customer_addresses (customer_id, address_id, address_type, is_primary)
				VALUES ($1, $2, 'SHIPPING', FALSE)`, id, shipping)
			if err != nil {
				return fmt.Errorf("failed to insert shipping address: %w", err)
			}
		}

		g.cache.Customers = append(g.cache.Customers, Customer{
			ID:                id,
			CompanyName:       nameRes.Name,
			Tier:              tier,
			CreditLimit:       limit,
			CreditTerms:       terms,
			BillingAddressID:  billing,
			ShippingAddressID: shipping,
			CurrencyCode:      country.CurrencyCode,
		})
	}

	for _, m := range shippingMethodCatalog {
		var id int32
		err := db.QueryRow(ctx, `
			INSERT INTO shipping_methods (method_name, carrier, estimated_days,
			                              cost_calculation_type, base_cost, currency_code)
			VALUES ($1, $2, $3, $4, $5, 'USD')
			ON CONFLICT (method_name) DO UPDATE SET carrier = EXCLUDED.carrier
			RETURNING shipping_method_id`,
			m.Name, m.Carrier, m.Days, m.CostType, m.BaseCost).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert shipping method %q: %w", m.Name, err)
		}
		g.cache.ShippingMethodIDs = append(g.cache.ShippingMethodIDs, id)
	}

	logging.Info().
		Int("customers", len(g.cache.Customers)).
		Int("shipping_methods", len(g.cache.ShippingMethodIDs)).
		Msg("Generated customer base")
	return nil
}
