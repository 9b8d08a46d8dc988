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

	"github.com/meridiandata/salesgen/internal/config"
)

func TestWorldCountriesCatalog(t *testing.T) {
	seenNames := make(map[string]bool, len(worldCountries))
	seenCodes := make(map[string]bool, len(worldCountries))
	validCurrencies := make(map[string]bool, len(worldCurrencies))
	for _, c := range worldCurrencies {
		validCurrencies[c.Code] = true
	}

	for _, c := range worldCountries {
		if seenNames[c.Name] {
			t.Errorf("duplicate country name %q", c.Name)
		}
		if seenCodes[c.Code] {
			t.Errorf("duplicate country code %q", c.Code)
		}
		seenNames[c.Name] = true
		seenCodes[c.Code] = true

		if len(c.Code) != 3 {
			t.Errorf("country %s has non alpha-3 code %q", c.Name, c.Code)
		}
		if !validCurrencies[c.Currency] {
			t.Errorf("country %s uses unknown currency %q", c.Name, c.Currency)
		}
		if _, ok := localeProfiles[c.Locale]; !ok {
			t.Errorf("country %s uses unknown locale %q", c.Name, c.Locale)
		}
	}
}

func TestTerritoryCountRange(t *testing.T) {
	tests := []struct {
		region string
		lo, hi int
	}{
		{"North America", 8, 15},
		{"Europe", 5, 12},
		{"Asia", 3, 10},
		{"Oceania", 2, 8},
		{"Africa", 2, 8},
		{"South America", 2, 8},
	}
	for _, tt := range tests {
		lo, hi := territoryCountRange(tt.region)
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("territoryCountRange(%s) = (%d, %d), want (%d, %d)", tt.region, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestLocaleForCode(t *testing.T) {
	if got := localeForCode("JPN"); got != localeJaJP {
		t.Errorf("JPN locale: got %q", got)
	}
	if got := localeForCode("XXX"); got != localeEnUS {
		t.Errorf("unknown code should default to en_US, got %q", got)
	}
}

func TestTerritoryNameShape(t *testing.T) {
	g := testGenerator(31, config.DefaultGeneration())
	f := g.locales.fakerFor(localeEnUS)
	for i := 0; i < 200; i++ {
		if name := g.territoryName(f); name == "" {
			t.Fatal("empty territory name")
		}
	}
}

func TestPostalCodePatterns(t *testing.T) {
	g := testGenerator(32, config.DefaultGeneration())
	tests := []struct {
		locale  string
		wantLen int
	}{
		{localeEnUS, 5},
		{localeDeDE, 5},
		{localeZhCN, 6},
		{localeJaJP, 8}, // ###-####
		{localeEnGB, 7}, // ??# #??
	}
	for _, tt := range tests {
		got := g.locales.postalCode(tt.locale)
		if len(got) != tt.wantLen {
			t.Errorf("postalCode(%s) = %q, want length %d", tt.locale, got, tt.wantLen)
		}
	}
}

func TestCompanyNameCarriesLocaleSuffix(t *testing.T) {
	g := testGenerator(33, config.DefaultGeneration())
	name := g.locales.companyName(localeDeDE)
	if name == "" {
		t.Fatal("empty company name")
	}
	found := false
	for _, suffix := range localeProfiles[localeDeDE].CompanySuffixes {
		if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("company name %q missing a de_DE suffix", name)
	}
}

func TestLocaleRegistryDeterminism(t *testing.T) {
	a := newLocaleRegistry(99)
	b := newLocaleRegistry(99)
	for i := 0; i < 10; i++ {
		if got, want := a.fakerFor(localeFrFR).Company(), b.fakerFor(localeFrFR).Company(); got != want {
			t.Fatalf("same seed diverged: %q vs %q", got, want)
		}
	}
}
