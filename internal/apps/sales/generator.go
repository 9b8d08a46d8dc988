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
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/config"
	"github.com/meridiandata/salesgen/internal/datagen"
	"github.com/meridiandata/salesgen/internal/logging"
)

// Stage names, in mandatory execution order. Each stage runs inside its
// own transaction and commits before the next stage starts, so a failure
// mid-run leaves all completed stages durable.
const (
	StageCurrency   = "currency"
	StageGeographic = "geographic"
	StageTax        = "tax"
	StageHR         = "hr"
	StageProducts   = "products"
	StageSuppliers  = "suppliers"
	StageCustomers  = "customers"
	StageSales      = "sales"
	StageInventory  = "inventory"
)

// StageOrder is the dependency order of the generation pipeline.
var StageOrder = []string{
	StageCurrency,
	StageGeographic,
	StageTax,
	StageHR,
	StageProducts,
	StageSuppliers,
	StageCustomers,
	StageSales,
	StageInventory,
}

// Generator drives the multi-stage sales data pipeline.
type Generator struct {
	pool    *pgxpool.Pool
	vol     config.GenerationConfig
	faker   *datagen.Faker
	locales *localeRegistry
	namer   *datagen.UniqueNamer
	cache   *runCache
}

// NewGenerator builds a generator for one run. A zero seed picks a
// random one; any other value makes the run reproducible.
func NewGenerator(pool *pgxpool.Pool, cfg apps.GeneratorConfig) *Generator {
	seed := cfg.Seed
	var faker *datagen.Faker
	if seed == 0 {
		faker = datagen.NewFaker()
		seed = uint64(time.Now().UnixNano())
	} else {
		faker = datagen.NewFakerWithSeed(seed)
	}
	return &Generator{
		pool:    pool,
		vol:     cfg.Volumes,
		faker:   faker,
		locales: newLocaleRegistry(seed),
		namer:   datagen.NewUniqueNamer(),
		cache:   newRunCache(),
	}
}

type stageFunc func(ctx context.Context, db apps.DB) error

func (g *Generator) stages() []struct {
	name string
	fn   stageFunc
} {
	return []struct {
		name string
		fn   stageFunc
	}{
		{StageCurrency, g.generateExchangeRates},
		{StageGeographic, g.generateGeographic},
		{StageTax, g.generateTaxRates},
		{StageHR, g.generateEmployees},
		{StageProducts, g.generateProducts},
		{StageSuppliers, g.generateSuppliers},
		{StageCustomers, g.generateCustomers},
		{StageSales, g.generateSales},
		{StageInventory, g.generateInventory},
	}
}

// Run executes the selected stages in pipeline order. With an empty
// selection every stage runs. When a subset is selected, the caches the
// skipped stages would have populated are reloaded from the database
// through their natural keys.
func (g *Generator) Run(ctx context.Context, selected []string) error {
	want := make(map[string]bool, len(selected))
	for _, s := range selected {
		want[s] = true
	}

	for _, stage := range g.stages() {
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

// ClearData deletes previously generated rows in reverse dependency
// order. Static reference tables are preserved.
func (g *Generator) ClearData(ctx context.Context) error {
	preserved := map[string]bool{
		"currencies": true,
		"tax_types":  true,
		"cost_types": true,
		"roles":      true,
	}
	for _, table := range dropTables {
		if preserved[table] {
			continue
		}
		tag, err := g.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
		if tag.RowsAffected() > 0 {
			logging.Debug().
				Str("table", table).
				Int64("rows", tag.RowsAffected()).
				Msg("Cleared existing data")
		}
	}
	logging.Info().Msg("Cleared previously generated data")
	return nil
}

// flushBatch sends any queued statements and drains the results.
func flushBatch(ctx context.Context, db apps.DB, batch *pgx.Batch) error {
	if batch.Len() == 0 {
		return nil
	}
	return db.SendBatch(ctx, batch).Close()
}
