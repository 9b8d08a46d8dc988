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

// seedGeography fills the cache with a small two-region world.
func seedGeography(g *Generator) {
	countries := []Country{
		{ID: 1, Name: "United States", Code: "USA", Region: "North America", CurrencyCode: "USD", Locale: localeEnUS},
		{ID: 2, Name: "Germany", Code: "DEU", Region: "Europe", CurrencyCode: "EUR", Locale: localeDeDE},
	}
	g.cache.Countries = countries
	id := int32(1)
	for _, c := range countries {
		for i := 0; i < 6; i++ {
			g.cache.addTerritory(Territory{ID: id, Name: c.Code, CountryID: c.ID})
			id++
		}
	}
}

func TestPlanEmployeesHierarchy(t *testing.T) {
	vol := config.DefaultGeneration()
	vol.Employees = 60
	g := testGenerator(21, vol)
	seedGeography(g)

	plan := g.planEmployees()
	if len(plan) != 60 {
		t.Fatalf("planned %d employees, want 60", len(plan))
	}

	ceos := 0
	emails := make(map[string]bool, len(plan))
	for i, p := range plan {
		if p.Role == roleCEO {
			ceos++
			if i != 0 || p.ManagerIdx != -1 {
				t.Errorf("CEO must be first with no manager, got index %d manager %d", i, p.ManagerIdx)
			}
		} else {
			if p.ManagerIdx < 0 || p.ManagerIdx >= len(plan) {
				t.Errorf("employee %d has manager index %d out of range", i, p.ManagerIdx)
				continue
			}
			mgr := plan[p.ManagerIdx]
			if mgr.Role != roleCEO && mgr.Role != roleSalesManager {
				t.Errorf("employee %d reports to a %s", i, mgr.Role)
			}
		}
		if emails[p.Email] {
			t.Errorf("duplicate email %q", p.Email)
		}
		emails[p.Email] = true

		band, ok := salaryBands[p.Role]
		if !ok {
			t.Errorf("employee %d has unknown role %q", i, p.Role)
			continue
		}
		if p.Salary < band[0] || p.Salary > band[1] {
			t.Errorf("%s salary %f outside band [%f, %f]", p.Role, p.Salary, band[0], band[1])
		}
	}
	if ceos != 1 {
		t.Errorf("planned %d CEOs, want exactly 1", ceos)
	}
}

func TestPlanEmployeesHireDates(t *testing.T) {
	vol := config.DefaultGeneration()
	vol.Employees = 40
	g := testGenerator(22, vol)
	seedGeography(g)

	plan := g.planEmployees()
	ceoHire := plan[0].HireDate
	if !ceoHire.Before(vol.StartDate) {
		t.Errorf("CEO hired %s, must predate %s", ceoHire, vol.StartDate)
	}
	for i := 1; i < len(plan); i++ {
		if plan[i].HireDate.Before(ceoHire) {
			t.Errorf("employee %d hired %s before the CEO (%s)", i, plan[i].HireDate, ceoHire)
		}
	}
}

func TestPlanEmployeesManagerRatio(t *testing.T) {
	vol := config.DefaultGeneration()
	vol.Employees = 100
	g := testGenerator(23, vol)
	seedGeography(g)

	plan := g.planEmployees()
	managers := 0
	for _, p := range plan {
		if p.Role == roleSalesManager {
			managers++
		}
	}
	// Two regions of 6 territories each: one manager per region.
	if managers != 2 {
		t.Errorf("planned %d managers, want 2", managers)
	}
}

func TestPlanEmployeesEmptyWorld(t *testing.T) {
	g := testGenerator(24, config.DefaultGeneration())
	if plan := g.planEmployees(); len(plan) != 0 {
		t.Errorf("expected empty plan without territories, got %d", len(plan))
	}
}

func TestStaffRoleWeightsAlign(t *testing.T) {
	if len(staffRoles) != len(staffRoleWeights) {
		t.Fatalf("roles (%d) and weights (%d) must align", len(staffRoles), len(staffRoleWeights))
	}
	total := 0
	for _, w := range staffRoleWeights {
		total += w
	}
	if total != 100 {
		t.Errorf("weights sum to %d, want 100", total)
	}
}

func TestResolveEmployeesDropsMissingRows(t *testing.T) {
	plan := []employeePlan{
		{Name: "A", Email: "a@example.com", Role: roleCEO, ManagerIdx: -1},
		{Name: "B", Email: "b@example.com", Role: roleSalesManager, ManagerIdx: 0},
		{Name: "C", Email: "c@example.com", Role: roleSalesRep, ManagerIdx: 1},
	}
	idByEmail := map[string]int32{
		"a@example.com": 1,
		"c@example.com": 3,
	}

	resolved, unresolved := resolveEmployees(plan, idByEmail)
	if unresolved != 1 {
		t.Fatalf("unresolved = %d, want 1", unresolved)
	}
	if len(resolved) != 2 {
		t.Fatalf("resolved %d employees, want 2", len(resolved))
	}
	if resolved[0].Email != "a@example.com" || resolved[1].Email != "c@example.com" {
		t.Errorf("unexpected resolved set: %v", resolved)
	}
	// C's manager B never landed, so the manager reference stays unset.
	if resolved[1].ManagerID != 0 {
		t.Errorf("expected zero manager ID for orphaned report, got %d", resolved[1].ManagerID)
	}
}

func TestResolveEmployeesComplete(t *testing.T) {
	plan := []employeePlan{
		{Name: "A", Email: "a@example.com", Role: roleCEO, ManagerIdx: -1},
		{Name: "B", Email: "b@example.com", Role: roleSalesRep, ManagerIdx: 0},
	}
	idByEmail := map[string]int32{
		"a@example.com": 10,
		"b@example.com": 11,
	}

	resolved, unresolved := resolveEmployees(plan, idByEmail)
	if unresolved != 0 {
		t.Fatalf("unresolved = %d, want 0", unresolved)
	}
	if resolved[1].ManagerID != 10 {
		t.Errorf("manager ID = %d, want 10", resolved[1].ManagerID)
	}
}
