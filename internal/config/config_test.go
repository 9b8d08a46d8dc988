//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package config

import (
	"testing"
	"time"
)

func TestDefaultGeneration(t *testing.T) {
	cfg := DefaultGeneration()
	if cfg.Countries != 50 {
		t.Errorf("default countries = %d, want 50", cfg.Countries)
	}
	if cfg.SalesOrders != 10000 {
		t.Errorf("default sales orders = %d, want 10000", cfg.SalesOrders)
	}
	if cfg.BatchSize != 1000 {
		t.Errorf("default batch size = %d, want 1000", cfg.BatchSize)
	}
	if !cfg.StartDate.Before(cfg.EndDate) {
		t.Error("start date not before end date")
	}
}

func TestPresetSmall(t *testing.T) {
	cfg, err := Preset("small")
	if err != nil {
		t.Fatalf("Preset(small) error: %v", err)
	}
	if cfg.Countries != 25 {
		t.Errorf("small countries = %d, want 25", cfg.Countries)
	}
	if cfg.Territories != 100 {
		t.Errorf("small territories = %d, want 100", cfg.Territories)
	}
	if cfg.Customers != 200 {
		t.Errorf("small customers = %d, want 200", cfg.Customers)
	}
	if cfg.Products != 500 {
		t.Errorf("small products = %d, want 500", cfg.Products)
	}
	if cfg.StartDate != time.Date(2023, time.July, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("small start date = %v", cfg.StartDate)
	}
}

func TestPresetUnknown(t *testing.T) {
	if _, err := Preset("gigantic"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestPresetLargeIsDefault(t *testing.T) {
	large, _ := Preset("large")
	def := DefaultGeneration()
	if large != def {
		t.Error("large preset should equal defaults")
	}
}

func TestResolveOverrides(t *testing.T) {
	g := GenerateConfig{
		Preset:    "small",
		Customers: 42,
		BatchSize: 250,
	}
	cfg, err := g.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.Customers != 42 {
		t.Errorf("customers = %d, want override 42", cfg.Customers)
	}
	if cfg.Countries != 25 {
		t.Errorf("countries = %d, want preset 25", cfg.Countries)
	}
	if cfg.BatchSize != 250 {
		t.Errorf("batch size = %d, want 250", cfg.BatchSize)
	}
}

func TestResolveDateRange(t *testing.T) {
	g := GenerateConfig{DateRange: "2021-2024"}
	cfg, err := g.Resolve()
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if cfg.StartDate != time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC) {
		t.Errorf("start date = %v", cfg.StartDate)
	}
	if cfg.EndDate != time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC) {
		t.Errorf("end date = %v", cfg.EndDate)
	}
}

func TestParseDateRangeInvalid(t *testing.T) {
	for _, s := range []string{"2022", "abcd-efgh", "2024-2020"} {
		if _, _, err := ParseDateRange(s); err == nil {
			t.Errorf("ParseDateRange(%q): expected error", s)
		}
	}
}

func TestStagesSubset(t *testing.T) {
	g := GenerateConfig{Only: "currency, geographic ,hr"}
	stages := g.Stages()
	want := []string{"currency", "geographic", "hr"}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stages[%d] = %q, want %q", i, stages[i], want[i])
		}
	}
	if (&GenerateConfig{}).Stages() != nil {
		t.Error("empty Only should return nil")
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing connection")
	}
	cfg.Connection = "postgres://localhost/sales"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing app")
	}
	cfg.App = "sales"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateGenerate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Connection = "postgres://localhost/sales"
	cfg.App = "sales"
	if err := cfg.ValidateGenerate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cfg.Generate.BatchSize = 0
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("expected error for zero batch size")
	}
	cfg.Generate.BatchSize = 1000
	cfg.Generate.Preset = "bogus"
	if err := cfg.ValidateGenerate(); err == nil {
		t.Error("expected error for unknown preset")
	}
}
