//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"strings"
	"testing"
)

func TestNewFakerWithSeed(t *testing.T) {
	seed := uint64(12345)
	f1 := NewFakerWithSeed(seed)
	f2 := NewFakerWithSeed(seed)

	// Same seed should produce same sequence
	for i := 0; i < 10; i++ {
		v1 := f1.Int(0, 1000)
		v2 := f2.Int(0, 1000)
		if v1 != v2 {
			t.Errorf("Same seed produced different values: %d != %d", v1, v2)
		}
	}
}

func TestFakerEmail(t *testing.T) {
	f := NewFaker()
	email := f.Email()
	if !strings.Contains(email, "@") {
		t.Errorf("Email %q missing @", email)
	}
}

func TestFakerCompany(t *testing.T) {
	f := NewFaker()
	if f.Company() == "" {
		t.Error("Company returned empty string")
	}
}

func TestFakerSKU(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		sku := f.SKU()
		parts := strings.Split(sku, "-")
		if len(parts) != 3 {
			t.Fatalf("SKU %q should have 3 dash-separated parts", sku)
		}
		switch parts[0] {
		case "PRD", "ITM", "SKU":
		default:
			t.Errorf("SKU %q has unexpected prefix", sku)
		}
		if len(parts[1]) != 4 {
			t.Errorf("SKU %q numeric part should be 4 digits", sku)
		}
		if len(parts[2]) != 3 || parts[2] != strings.ToUpper(parts[2]) {
			t.Errorf("SKU %q suffix should be 3 uppercase letters", sku)
		}
	}
}

func TestFakerOrderAndPONumbers(t *testing.T) {
	f := NewFaker()
	on := f.OrderNumber(2025)
	if !strings.Contains(on, "-2025-") {
		t.Errorf("order number %q missing year", on)
	}
	pn := f.PONumber(2025)
	if !strings.HasPrefix(pn, "PO-2025-") {
		t.Errorf("PO number %q has wrong shape", pn)
	}
}

func TestFakerTaxID(t *testing.T) {
	f := NewFaker()
	if id := f.TaxID("GBR"); !strings.HasPrefix(id, "GB") {
		t.Errorf("GBR tax ID %q should start with GB", id)
	}
	if id := f.TaxID("DEU"); !strings.HasPrefix(id, "DE") {
		t.Errorf("DEU tax ID %q should start with DE", id)
	}
	if id := f.TaxID("JPN"); !strings.HasPrefix(id, "JPN") {
		t.Errorf("JPN tax ID %q should start with JPN", id)
	}
}

func TestFakerFloat64Range(t *testing.T) {
	f := NewFaker()
	for i := 0; i < 100; i++ {
		v := f.Float64(10, 100)
		if v < 10 || v > 100 {
			t.Fatalf("Float64 %f not in [10, 100]", v)
		}
	}
}

func TestFakerPoisson(t *testing.T) {
	f := NewFakerWithSeed(7)
	sum := 0
	for i := 0; i < 2000; i++ {
		v := f.Poisson(3)
		if v < 0 {
			t.Fatalf("Poisson returned negative %d", v)
		}
		sum += v
	}
	mean := float64(sum) / 2000
	if mean < 2.5 || mean > 3.5 {
		t.Errorf("Poisson(3) sample mean %f too far from 3", mean)
	}
	if f.Poisson(0) != 0 {
		t.Error("Poisson(0) should be 0")
	}
}

func TestFakerNorm(t *testing.T) {
	f := NewFakerWithSeed(7)
	sum := 0.0
	for i := 0; i < 2000; i++ {
		sum += f.Norm(0, 0.003)
	}
	mean := sum / 2000
	if mean < -0.001 || mean > 0.001 {
		t.Errorf("Norm(0, 0.003) sample mean %f too far from 0", mean)
	}
}

func TestChoose(t *testing.T) {
	f := NewFaker()
	items := []string{"a", "b", "c"}
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		v := Choose(f, items)
		seen[v] = true
	}
	for _, item := range items {
		if !seen[item] {
			t.Errorf("Choose never returned %q", item)
		}
	}
	if Choose(f, []string(nil)) != "" {
		t.Error("Choose on empty slice should return zero value")
	}
}

func TestChooseWeighted(t *testing.T) {
	f := NewFakerWithSeed(42)
	items := []string{"common", "rare"}
	counts := map[string]int{}
	for i := 0; i < 1000; i++ {
		counts[ChooseWeighted(f, items, []int{9, 1})]++
	}
	if counts["common"] <= counts["rare"] {
		t.Errorf("weights ignored: common=%d rare=%d", counts["common"], counts["rare"])
	}
}

func TestSample(t *testing.T) {
	f := NewFaker()
	items := []int{1, 2, 3, 4, 5}
	got := Sample(f, items, 3)
	if len(got) != 3 {
		t.Fatalf("Sample returned %d items, want 3", len(got))
	}
	seen := map[int]bool{}
	for _, v := range got {
		if seen[v] {
			t.Errorf("Sample returned duplicate %d", v)
		}
		seen[v] = true
	}
	if len(Sample(f, items, 10)) != len(items) {
		t.Error("Sample with n > len should return all items")
	}
}

func TestTruncate(t *testing.T) {
	if Truncate("hello", 3) != "hel" {
		t.Error("Truncate failed to shorten")
	}
	if Truncate("hi", 10) != "hi" {
		t.Error("Truncate modified short string")
	}
}
