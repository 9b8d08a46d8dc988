//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/config"
	"github.com/meridiandata/salesgen/internal/datagen"
	"github.com/meridiandata/salesgen/internal/logging"
)

// Stage names, in execution order.
const (
	StageIdentity = "identity"
	StageActivity = "activity"
)

// StageOrder is the pipeline order: tenants and users first, then the
// API traffic referencing them.
var StageOrder = []string{StageIdentity, StageActivity}

// Volume shaping relative to the shared generation config.
const (
	usersPerOrganisation = 25  // headcount drives the tenant count
	resetTokenShare      = 0.2 // share of users with a password reset on file
	resetUsedShare       = 0.5 // share of issued resets already consumed
	logsPerUser          = 20
	resetTTLHours        = 24
)

var apiEndpoints = []string{
	"/api/v1/orders", "/api/v1/orders/search", "/api/v1/customers",
	"/api/v1/products", "/api/v1/inventory", "/api/v1/reports/sales",
	"/api/v1/auth/login", "/api/v1/auth/refresh",
}

var apiMethods = []string{"GET", "GET", "GET", "POST", "PUT", "DELETE"}
var apiStatuses = []string{"200", "200", "200", "201", "400", "401", "404", "500"}

// Generator drives the auth data pipeline.
type Generator struct {
	pool  *pgxpool.Pool
	vol   config.GenerationConfig
	faker *datagen.Faker
	namer *datagen.UniqueNamer

	orgIDs  []string
	userIDs []string
	// orgByUser maps a user ID to its organisation ID.
	orgByUser map[string]string
}

// NewGenerator builds a generator for one run.
func NewGenerator(pool *pgxpool.Pool, cfg apps.GeneratorConfig) *Generator {
	faker := datagen.NewFaker()
	if cfg.Seed != 0 {
		faker = datagen.NewFakerWithSeed(cfg.Seed)
	}
	return &Generator{
		pool:      pool,
		vol:       cfg.Volumes,
		faker:     faker,
		namer:     datagen.NewUniqueNamer(),
		orgByUser: make(map[string]string),
	}
}

// organisationCount derives the tenant count from the configured
// employee headcount.
func organisationCount(employees int) int {
	n := employees / usersPerOrganisation
	if n < 1 {
		n = 1
	}
	return n
}

// slugify turns a company name into a stable organisation slug.
func slugify(name string) string {
	s := strings.ToLower(name)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// Run executes the selected stages in order.
func (g *Generator) Run(ctx context.Context, selected []string) error {
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}

	stages := []struct {
		name string
		fn   func(ctx context.Context, db apps.DB) error
	}{
		{StageIdentity, g.generateIdentity},
		{StageActivity, g.generateActivity},
	}
	for _, stage := range stages {
		if len(want) > 0 && !want[stage.name] {
			continue
		}
		if err := g.loadDependencies(ctx, stage.name); err != nil {
			return fmt.Errorf("stage %s: %w", stage.name, err)
		}

		start := time.Now()
		logging.Info().Str("stage", stage.name).Msg("Starting stage")

		tx, err := g.pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("stage %s: failed to begin transaction: %w", stage.name, err)
		}
		if err := stage.fn(ctx, tx); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("stage %s: %w", stage.name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("stage %s: failed to commit: %w", stage.name, err)
		}

		logging.Info().
			Str("stage", stage.name).
			Dur("elapsed", time.Since(start)).
			Msg("Stage complete")
	}
	return nil
}

// ClearData deletes generated rows in reverse dependency order.
func (g *Generator) ClearData(ctx context.Context) error {
	for _, table := range dropTables {
		if _, err := g.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	logging.Info().Msg("Cleared previously generated auth data")
	return nil
}

// loadDependencies reloads tenant and user IDs from the database when
// the activity stage runs without the identity stage in this process.
func (g *Generator) loadDependencies(ctx context.Context, stage string) error {
	if stage != StageActivity || len(g.userIDs) > 0 {
		return nil
	}
	rows, err := g.pool.Query(ctx, `SELECT id, organisation_id FROM users WHERE is_active`)
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var userID, orgID string
		if err := rows.Scan(&userID, &orgID); err != nil {
			return fmt.Errorf("failed to scan user: %w", err)
		}
		g.userIDs = append(g.userIDs, userID)
		g.orgByUser[userID] = orgID
	}
	return rows.Err()
}

// generateIdentity creates the tenants, their users and a sprinkling of
// password reset tokens. Password hashes are random filler in bcrypt
// shape; they never correspond to a real password.
func (g *Generator) generateIdentity(ctx context.Context, db apps.DB) error {
	nOrgs := organisationCount(g.vol.Employees)
	for i := 0; i < nOrgs; i++ {
		res := g.namer.Attempt("org", datagen.DefaultNameBudget, g.faker.Company)
		display := res.Name

		var id string
		err := db.QueryRow(ctx, `
			INSERT INTO organisation (name, display_name, max_users, is_active, billing_email, billing_company)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO UPDATE SET display_name = EXCLUDED.display_name
			RETURNING id`,
			slugify(display), display, datagen.Choose(g.faker, []int{25, 50, 100, 250}),
			g.faker.Chance(0.9), g.faker.Email(), display).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert organisation %q: %w", display, err)
		}
		g.orgIDs = append(g.orgIDs, id)
	}

	for i := 0; i < g.vol.Employees; i++ {
		orgID := datagen.Choose(g.faker, g.orgIDs)
		res := g.namer.Attempt("user-email", datagen.DefaultNameBudget, g.faker.Email)
		email := res.Name
		if res.Fallback {
			email = fmt.Sprintf("user%d@%s", i+1, g.faker.DomainName())
		}

		var id string
		err := db.QueryRow(ctx, `
			INSERT INTO users (email, password_hash, first_name, last_name, organisation_id, is_active)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			email, fakePasswordHash(g.faker), g.faker.Name(), g.faker.Name(),
			orgID, g.faker.Chance(0.95)).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert user %q: %w", email, err)
		}
		g.userIDs = append(g.userIDs, id)
		g.orgByUser[id] = orgID
	}

	resets := 0
	batch := &pgx.Batch{}
	for _, userID := range g.userIDs {
		if !g.faker.Chance(resetTokenShare) {
			continue
		}
		created := g.faker.Date(g.vol.StartDate, g.vol.EndDate)
		var usedAt *time.Time
		used := g.faker.Chance(resetUsedShare)
		if used {
			t := created.Add(time.Duration(g.faker.Int(1, resetTTLHours)) * time.Hour)
			usedAt = &t
		}
		batch.Queue(`
			INSERT INTO password_resets (user_id, token, is_used, expires_at, created_at, used_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, g.faker.StringN(64), used,
			created.Add(resetTTLHours*time.Hour), created, usedAt)
		resets++
	}
	if batch.Len() > 0 {
		if err := db.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert password resets: %w", err)
		}
	}

	logging.Info().
		Int("organisations", len(g.orgIDs)).
		Int("users", len(g.userIDs)).
		Int("password_resets", resets).
		Msg("Generated identity data")
	return nil
}

// generateActivity writes per-user API traffic over the configured date
// range.
func (g *Generator) generateActivity(ctx context.Context, db apps.DB) error {
	if len(g.userIDs) == 0 {
		logging.Warn().Msg("No users available; skipping API usage logs")
		return nil
	}

	logs := 0
	batch := &pgx.Batch{}
	for _, userID := range g.userIDs {
		for i := 0; i < g.faker.Int(0, logsPerUser); i++ {
			batch.Queue(`
				INSERT INTO api_usage_logs (user_id, organisation_id, endpoint, method,
				                            status_code, timestamp, duration_ms, query_params)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				userID, g.orgByUser[userID],
				datagen.Choose(g.faker, apiEndpoints),
				datagen.Choose(g.faker, apiMethods),
				datagen.Choose(g.faker, apiStatuses),
				g.faker.Date(g.vol.StartDate, g.vol.EndDate),
				fmt.Sprintf("%d", g.faker.Int(2, 1500)),
				fmt.Sprintf("page=%d&limit=%d", g.faker.Int(1, 40), datagen.Choose(g.faker, []int{10, 25, 50, 100})))
			logs++

			if batch.Len() >= g.vol.BatchSize {
				if err := db.SendBatch(ctx, batch).Close(); err != nil {
					return fmt.Errorf("failed to insert usage logs: %w", err)
				}
				batch = &pgx.Batch{}
			}
		}
	}
	if batch.Len() > 0 {
		if err := db.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert usage logs: %w", err)
		}
	}

	logging.Info().Int("api_usage_logs", logs).Msg("Generated API activity")
	return nil
}

// fakePasswordHash renders a bcrypt-shaped placeholder hash.
func fakePasswordHash(f *datagen.Faker) string {
	return "$2b$12$" + f.StringN(53)
}
