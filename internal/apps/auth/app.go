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

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/logging"
)

// App implements the auth application.
type App struct{}

func init() {
	apps.Register(&App{})
}

// Name returns the application name.
func (a *App) Name() string {
	return "auth"
}

// Description returns a human-readable description.
func (a *App) Description() string {
	return "Multi-tenant authentication schema with organisations, users, and API usage logs"
}

// CreateSchema creates the auth schema.
func (a *App) CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return CreateSchema(ctx, pool)
}

// DropSchema drops the auth schema.
func (a *App) DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return DropSchema(ctx, pool)
}

// SeedReferenceData is a no-op; the auth schema has no static lookup
// tables.
func (a *App) SeedReferenceData(ctx context.Context, pool *pgxpool.Pool) error {
	return nil
}

// GenerateData runs the generation pipeline.
func (a *App) GenerateData(ctx context.Context, pool *pgxpool.Pool, cfg apps.GeneratorConfig) error {
	for _, s := range cfg.Stages {
		if s != StageIdentity && s != StageActivity {
			return fmt.Errorf("unknown stage %q (valid: %v)", s, StageOrder)
		}
	}

	gen := NewGenerator(pool, cfg)
	if cfg.ClearExisting {
		if err := gen.ClearData(ctx); err != nil {
			return err
		}
	}
	return gen.Run(ctx, cfg.Stages)
}

// Validate runs advisory consistency checks over the generated tenants.
func (a *App) Validate(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	checks := []struct {
		description string
		query       string
	}{
		{
			"Organisations over their user cap",
			`SELECT COUNT(*) FROM organisation o
			 WHERE (SELECT COUNT(*) FROM users u WHERE u.organisation_id = o.id) > o.max_users`,
		},
		{
			"Consumed resets without a usage timestamp",
			`SELECT COUNT(*) FROM password_resets WHERE is_used AND used_at IS NULL`,
		},
		{
			"Usage logs outside their user's organisation",
			`SELECT COUNT(*) FROM api_usage_logs l
			 JOIN users u ON u.id = l.user_id
			 WHERE u.organisation_id != l.organisation_id`,
		},
	}

	allValid := true
	for _, check := range checks {
		var count int64
		if err := pool.QueryRow(ctx, check.query).Scan(&count); err != nil {
			return false, fmt.Errorf("integrity check %q failed: %w", check.description, err)
		}
		if count > 0 {
			logging.Warn().
				Str("check", check.description).
				Int64("records", count).
				Msg("Integrity check found issues")
			allValid = false
		}
	}
	return allValid, nil
}

// Stages returns the pipeline stage names in execution order.
func (a *App) Stages() []string {
	return StageOrder
}
