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

	"github.com/meridiandata/salesgen/internal/datagen"
)

func TestCreditProfileBands(t *testing.T) {
	f := datagen.NewFakerWithSeed(41)
	tests := []struct {
		tier       string
		limitLo    float64
		limitHi    float64
		validTerms map[int]bool
	}{
		{tierSmall, 5_000, 25_000, map[int]bool{15: true, 30: true}},
		{tierMedium, 25_000, 100_000, map[int]bool{30: true, 45: true}},
		{tierEnterprise, 100_000, 500_000, map[int]bool{30: true, 45: true, 60: true}},
		{tierGovernment, 50_000, 1_000_000, map[int]bool{45: true, 60: true, 90: true}},
	}
	for _, tt := range tests {
		for i := 0; i < 200; i++ {
			limit, terms := creditProfile(f, tt.tier)
			if limit < tt.limitLo || limit > tt.limitHi {
				t.Fatalf("%s: credit limit %f outside [%f, %f]", tt.tier, limit, tt.limitLo, tt.limitHi)
			}
			if !tt.validTerms[terms] {
				t.Fatalf("%s: unexpected credit terms %d", tt.tier, terms)
			}
		}
	}
}

func TestShippingMethodCatalog(t *testing.T) {
	if len(shippingMethodCatalog) != 6 {
		t.Fatalf("expected 6 shipping methods, got %d", len(shippingMethodCatalog))
	}
	seen := make(map[string]bool)
	for _, m := range shippingMethodCatalog {
		if seen[m.Name] {
			t.Errorf("duplicate shipping method %q", m.Name)
		}
		seen[m.Name] = true
		if m.CostType != "FIXED" && m.CostType != "WEIGHT" {
			t.Errorf("%s: unexpected cost type %q", m.Name, m.CostType)
		}
		if m.BaseCost <= 0 || m.Days <= 0 {
			t.Errorf("%s: non-positive cost or days", m.Name)
		}
	}
}

func TestRunCacheLookups(t *testing.T) {
	c := newRunCache()
	c.Countries = []Country{
		{ID: 1, Code: "USA", CurrencyCode: "USD"},
		{ID: 2, Code: "JPN", CurrencyCode: "JPY"},
	}
	c.addTerritory(Territory{ID: 10, Name: "West", CountryID: 1})
	c.addTerritory(Territory{ID: 11, Name: "Kanto", CountryID: 2})

	if got := c.currencyForTerritory(11); got != "JPY" {
		t.Errorf("currencyForTerritory(11) = %q", got)
	}
	if got := c.currencyForTerritory(999); got != "USD" {
		t.Errorf("unknown territory should fall back to USD, got %q", got)
	}
	if c.countryByID(3) != nil {
		t.Error("countryByID(3) should be nil")
	}
	if len(c.territoriesByCountry[1]) != 1 {
		t.Error("territory index not updated")
	}
}

func TestSalesStaffFilter(t *testing.T) {
	c := newRunCache()
	c.Employees = []Employee{
		{ID: 1, Role: roleCEO},
		{ID: 2, Role: roleSalesManager},
		{ID: 3, Role: roleSalesRep},
		{ID: 4, Role: roleFinance},
	}
	staff := c.salesStaff()
	if len(staff) != 2 {
		t.Fatalf("expected 2 sales staff, got %d", len(staff))
	}
	for _, e := range staff {
		if e.Role != roleSalesManager && e.Role != roleSalesRep {
			t.Errorf("unexpected role %q in sales staff", e.Role)
		}
	}
}
