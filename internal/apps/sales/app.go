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

	"github.com/meridiandata/salesgen/internal/apps"
)

// App implements the sales application.
type App struct{}

func init() {
	apps.Register(&App{})
}

// Name returns the application name.
func (a *App) Name() string {
	return "sales"
}

// Description returns a human-readable description.
func (a *App) Description() string {
	return "International sales database with multi-currency orders, procurement, and inventory"
}

// CreateSchema creates the sales schema.
func (a *App) CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return CreateSchema(ctx, pool)
}

// DropSchema drops the sales schema.
func (a *App) DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	return DropSchema(ctx, pool)
}

// SeedReferenceData inserts the static lookup rows.
func (a *App) SeedReferenceData(ctx context.Context, pool *pgxpool.Pool) error {
	return SeedReferenceData(ctx, pool)
}

// GenerateData runs the generation pipeline.
func (a *App) GenerateData(ctx context.Context, pool *pgxpool.Pool, cfg apps.GeneratorConfig) error {
	for _, s := range cfg.Stages {
		if !validStage(s) {
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

// Validate runs the referential integrity checks.
func (a *App) Validate(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	return ValidateIntegrity(ctx, pool)
}

// Stages returns the pipeline stage names in execution order.
func (a *App) Stages() []string {
	return StageOrder
}

func validStage(name string) bool {
	for _, s := range StageOrder {
		if s == name {
			return true
		}
	}
	return false
}
