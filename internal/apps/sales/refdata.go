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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridiandata/salesgen/internal/logging"
)

// currencyInfo describes a tradable currency.
type currencyInfo struct {
	Code   string
	Name   string
	Symbol string
}

// worldCurrencies is the full currency catalog. Every generated price,
// salary and exchange rate refers back to one of these.
var worldCurrencies = []currencyInfo{
	{"USD", "US Dollar", "$"},
	{"EUR", "Euro", "€"},
	{"GBP", "British Pound", "£"},
	{"JPY", "Japanese Yen", "¥"},
	{"CAD", "Canadian Dollar", "C$"},
	{"AUD", "Australian Dollar", "A$"},
	{"CHF", "Swiss Franc", "CHF"},
	{"CNY", "Chinese Yuan", "¥"},
	{"INR", "Indian Rupee", "₹"},
	{"BRL", "Brazilian Real", "R$"},
	{"KRW", "South Korean Won", "₩"},
	{"SGD", "Singapore Dollar", "S$"},
	{"HKD", "Hong Kong Dollar", "HK$"},
	{"SEK", "Swedish Krona", "kr"},
	{"NOK", "Norwegian Krone", "kr"},
	{"DKK", "Danish Krone", "kr"},
	{"MXN", "Mexican Peso", "$"},
	{"ZAR", "South African Rand", "R"},
	{"THB", "Thai Baht", "฿"},
	{"MYR", "Malaysian Ringgit", "RM"},
}

// usdBaseRates holds the long-run USD exchange rate each currency's random
// walk reverts toward. KRW intentionally has no entry; pricing for it falls
// back to USD.
var usdBaseRates = map[string]float64{
	"EUR": 0.85,
	"GBP": 0.75,
	"JPY": 110.0,
	"CAD": 1.25,
	"AUD": 1.35,
	"CHF": 0.92,
	"CNY": 6.8,
	"INR": 75.0,
	"BRL": 5.2,
	"SGD": 1.35,
	"HKD": 7.8,
	"SEK": 8.5,
	"NOK": 8.8,
	"DKK": 6.3,
	"MXN": 18.5,
	"ZAR": 14.2,
	"THB": 32.5,
	"MYR": 4.2,
}

// refRow is a generic (name, description) reference table row.
type refRow struct {
	Name        string
	Description string
}

var taxTypeRows = []refRow{
	{"VAT", "Value Added Tax"},
	{"SALES_TAX", "Sales Tax"},
	{"GST", "Goods and Services Tax"},
	{"EXCISE", "Excise Duty"},
	{"CUSTOM_DUTY", "Customs Duty"},
}

var costTypeRows = []refRow{
	{"PURCHASE", "Purchase cost from supplier"},
	{"TRANSPORT", "Transportation and freight"},
	{"DUTIES", "Import duties and tariffs"},
	{"STORAGE", "Warehousing and storage"},
	{"HANDLING", "Handling and processing"},
	{"INSURANCE", "Insurance coverage"},
	{"OVERHEAD", "Allocated overhead"},
}

// Role names. The generators key employee behavior off these exact strings.
const (
	roleCEO             = "CEO"
	roleSalesManager    = "Sales Manager"
	roleSalesRep        = "Sales Representative"
	roleProcurement     = "Procurement Manager"
	roleInventory       = "Inventory Manager"
	roleCustomerService = "Customer Service"
	roleFinance         = "Finance Manager"
	roleOperations      = "Operations Manager"
)

var roleRows = []refRow{
	{roleCEO, "Chief Executive Officer"},
	{roleSalesManager, "Regional sales manager"},
	{roleSalesRep, "Sales representative"},
	{roleProcurement, "Procurement manager"},
	{roleInventory, "Inventory manager"},
	{roleCustomerService, "Customer service agent"},
	{roleFinance, "Finance manager"},
	{roleOperations, "Operations manager"},
}

// SeedReferenceData inserts the static reference rows: currencies, tax
// types, cost types and employee roles. It is idempotent; rerunning it
// leaves existing rows untouched.
func SeedReferenceData(ctx context.Context, pool *pgxpool.Pool) error {
	for _, c := range worldCurrencies {
		_, err := pool.Exec(ctx, `
			INSERT INTO currencies (currency_code, name, symbol)
			VALUES ($1, $2, $3)
			ON CONFLICT (currency_code) DO NOTHING`,
			c.Code, c.Name, c.Symbol)
		if err != nil {
			return fmt.Errorf("failed to seed currency %s: %w", c.Code, err)
		}
	}

	refTables := []struct {
		table string
		rows  []refRow
	}{
		{"tax_types", taxTypeRows},
		{"cost_types", costTypeRows},
		{"roles", roleRows},
	}
	for _, rt := range refTables {
		for _, r := range rt.rows {
			_, err := pool.Exec(ctx, fmt.Sprintf(`
				INSERT INTO %s (name, description)
				VALUES ($1, $2)
				ON CONFLICT (name) DO NOTHING`, rt.table),
				r.Name, r.Description)
			if err != nil {
				return fmt.Errorf("failed to seed %s row %q: %w", rt.table, r.Name, err)
			}
		}
	}

	logging.Debug().
		Int("currencies", len(worldCurrencies)).
		Int("tax_types", len(taxTypeRows)).
		Int("cost_types", len(costTypeRows)).
		Int("roles", len(roleRows)).
		Msg("Seeded sales reference data")
	return nil
}
