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
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/datagen"
	"github.com/meridiandata/salesgen/internal/logging"
)

// Salary bands per role, in the employee's territory currency.
var salaryBands = map[string][2]float64{
	roleCEO:             {200_000, 350_000},
	roleSalesManager:    {80_000, 150_000},
	roleSalesRep:        {45_000, 85_000},
	roleCustomerService: {35_000, 65_000},
	roleProcurement:     {60_000, 100_000},
	roleInventory:       {55_000, 90_000},
	roleFinance:         {70_000, 120_000},
	roleOperations:      {65_000, 110_000},
}

// Staff role mix: sales reps dominate, customer service next, the rest
// of the back office split evenly.
var (
	staffRoles       = []string{roleSalesRep, roleCustomerService, roleProcurement, roleInventory, roleFinance, roleOperations}
	staffRoleWeights = []int{40, 20, 10, 10, 10, 10}
)

// One manager is planned per this many territories in a region.
const territoriesPerManager = 5

// employeePlan is one planned employee before insertion. ManagerIdx
// indexes the plan slice; -1 marks the CEO.
type employeePlan struct {
	Name        string
	Email       string
	Role        string
	TerritoryID int32
	ManagerIdx  int
	Salary      float64
	Currency    string
	HireDate    time.Time
}

// planEmployees lays out the full org chart: one CEO hired well before
// the start date, regional sales managers reporting to the CEO, and a
// weighted mix of staff reporting to a manager in their own region when
// one exists. The plan never exceeds the configured headcount.
func (g *Generator) planEmployees() []employeePlan {
	var plan []employeePlan
	if len(g.cache.Territories) == 0 || g.vol.Employees == 0 {
		return plan
	}

	emailFor := func(f *datagen.Faker, fallbackPrefix string, idx int) string {
		res := g.namer.Attempt("employee-email", datagen.DefaultNameBudget, f.Email)
		if res.Fallback {
			return fmt.Sprintf("%s%d@%s", fallbackPrefix, idx, f.DomainName())
		}
		return res.Name
	}

	territoryFaker := func(t Territory) (*datagen.Faker, string, string) {
		country := g.cache.countryByID(t.CountryID)
		return g.locales.fakerFor(country.Locale), country.CurrencyCode, country.Region
	}

	// Phase 1: CEO.
	ceoTerritory := datagen.Choose(g.faker, g.cache.Territories)
	f, currency, _ := territoryFaker(ceoTerritory)
	band := salaryBands[roleCEO]
	ceoHire := dateOnly(g.vol.StartDate.AddDate(0, 0, -f.Int(1000, 2000)))
	plan = append(plan, employeePlan{
		Name:        f.Name(),
		Email:       emailFor(f, "ceo", 1),
		Role:        roleCEO,
		TerritoryID: ceoTerritory.ID,
		ManagerIdx:  -1,
		Salary:      f.Float64(band[0], band[1]),
		Currency:    currency,
		HireDate:    ceoHire,
	})

	// Phase 2: regional sales managers.
	byRegion := make(map[string][]Territory)
	for _, t := range g.cache.Territories {
		_, _, region := territoryFaker(t)
		byRegion[region] = append(byRegion[region], t)
	}
	managerIdxByRegion := make(map[string][]int)
	for region, territories := range byRegion {
		n := len(territories) / territoriesPerManager
		if n < 1 {
			n = 1
		}
		for i := 0; i < n && len(plan) < g.vol.Employees; i++ {
			t := datagen.Choose(g.faker, territories)
			f, currency, _ := territoryFaker(t)
			band := salaryBands[roleSalesManager]
			plan = append(plan, employeePlan{
				Name:        f.Name(),
				Email:       emailFor(f, "manager", len(plan)+1),
				Role:        roleSalesManager,
				TerritoryID: t.ID,
				ManagerIdx:  0,
				Salary:      f.Float64(band[0], band[1]),
				Currency:    currency,
				HireDate:    ceoHire.AddDate(0, 0, f.Int(30, 365)),
			})
			managerIdxByRegion[region] = append(managerIdxByRegion[region], len(plan)-1)
		}
	}
	var allManagerIdx []int
	for _, idxs := range managerIdxByRegion {
		allManagerIdx = append(allManagerIdx, idxs...)
	}

	// Phase 3: staff.
	for len(plan) < g.vol.Employees {
		t := datagen.Choose(g.faker, g.cache.Territories)
		f, currency, region := territoryFaker(t)

		managerIdx := 0
		if idxs := managerIdxByRegion[region]; len(idxs) > 0 {
			managerIdx = datagen.Choose(g.faker, idxs)
		} else if len(allManagerIdx) > 0 {
			managerIdx = datagen.Choose(g.faker, allManagerIdx)
		}

		role := datagen.ChooseWeighted(g.faker, staffRoles, staffRoleWeights)
		band := salaryBands[role]
		plan = append(plan, employeePlan{
			Name:        f.Name(),
			Email:       emailFor(f, "employee", len(plan)+1),
			Role:        role,
			TerritoryID: t.ID,
			ManagerIdx:  managerIdx,
			Salary:      f.Float64(band[0], band[1]),
			Currency:    currency,
			HireDate:    ceoHire.AddDate(0, 0, f.Int(0, 1000)),
		})
	}
	return plan
}

// generateEmployees inserts the planned org chart in hierarchy order so
// every manager_id references an already-inserted row: CEO first, then
// managers, then everyone else in one batch resolved by email afterward.
func (g *Generator) generateEmployees(ctx context.Context, db apps.DB) error {
	roleIDs, err := roleIDsByName(ctx, db)
	if err != nil {
		return err
	}
	plan := g.planEmployees()
	if len(plan) == 0 {
		logging.Error().Msg("No territories available; skipping employee generation")
		return nil
	}

	ids := make([]int32, len(plan))

	insertOne := func(i int, managerID *int32) error {
		p := plan[i]
		roleID, ok := roleIDs[p.Role]
		if !ok {
			return fmt.Errorf("role %q missing; run init with reference data first", p.Role)
		}
		return db.QueryRow(ctx, `
			INSERT INTO employees (name, email, role_id, territory_id, manager_id,
			                       salary, salary_currency_code, hire_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING employee_id`,
			p.Name, p.Email, roleID, p.TerritoryID, managerID,
			p.Salary, p.Currency, p.HireDate).Scan(&ids[i])
	}

	// CEO, then managers resolved against the CEO's real ID.
	if err := insertOne(0, nil); err != nil {
		return fmt.Errorf("failed to insert CEO: %w", err)
	}
	for i := 1; i < len(plan); i++ {
		if plan[i].Role != roleSalesManager {
			continue
		}
		if err := insertOne(i, &ids[0]); err != nil {
			return fmt.Errorf("failed to insert manager %s: %w", plan[i].Email, err)
		}
	}

	// Staff in one batch, re-queried by email to recover IDs.
	batch := &pgx.Batch{}
	for i := 1; i < len(plan); i++ {
		p := plan[i]
		if p.Role == roleSalesManager {
			continue
		}
		batch.Queue(`
			INSERT INTO employees (name, email, role_id, territory_id, manager_id,
			                       salary, salary_currency_code, hire_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.Name, p.Email, roleIDs[p.Role], p.TerritoryID, ids[p.ManagerIdx],
			p.Salary, p.Currency, p.HireDate)
	}
	if err := flushBatch(ctx, db, batch); err != nil {
		return fmt.Errorf("failed to insert staff: %w", err)
	}

	rows, err := db.Query(ctx, `SELECT employee_id, email FROM employees`)
	if err != nil {
		return fmt.Errorf("failed to resolve employee IDs: %w", err)
	}
	defer rows.Close()
	idByEmail := make(map[string]int32, len(plan))
	for rows.Next() {
		var id int32
		var email string
		if err := rows.Scan(&id, &email); err != nil {
			return fmt.Errorf("failed to scan employee ID: %w", err)
		}
		idByEmail[email] = id
	}
	if err := rows.Err(); err != nil {
		return err
	}

	resolved, unresolved := resolveEmployees(plan, idByEmail)
	g.cache.Employees = append(g.cache.Employees, resolved...)

	if unresolved > 0 {
		logging.Warn().Int("dropped", unresolved).Msg("Skipping unresolved employees")
	}
	logging.Info().Int("employees", len(g.cache.Employees)).Msg("Generated employee hierarchy")
	return nil
}

// resolveEmployees matches planned employees back to their inserted IDs
// by email. Plans whose row never landed are dropped rather than failing
// the stage; the caller logs the drop count.
func resolveEmployees(plan []employeePlan, idByEmail map[string]int32) ([]Employee, int) {
	resolved := make([]Employee, 0, len(plan))
	unresolved := 0
	for _, p := range plan {
		id, ok := idByEmail[p.Email]
		if !ok {
			unresolved++
			continue
		}
		var managerID int32
		if p.ManagerIdx >= 0 {
			managerID = idByEmail[plan[p.ManagerIdx].Email]
		}
		resolved = append(resolved, Employee{
			ID:          id,
			Name:        p.Name,
			Email:       p.Email,
			Role:        p.Role,
			TerritoryID: p.TerritoryID,
			ManagerID:   managerID,
			HireDate:    p.HireDate,
		})
	}
	return resolved, unresolved
}

// roleIDsByName loads the roles lookup keyed by name.
func roleIDsByName(ctx context.Context, db apps.DB) (map[string]int32, error) {
	rows, err := db.Query(ctx, `SELECT role_id, name FROM roles`)
	if err != nil {
		return nil, fmt.Errorf("failed to load roles: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int32)
	for rows.Next() {
		var id int32
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}
