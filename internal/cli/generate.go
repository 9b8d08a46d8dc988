//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/db"
	"github.com/meridiandata/salesgen/internal/logging"
)

var (
	genPreset            string
	genCountries         int
	genTerritories       int
	genEmployees         int
	genProductCategories int
	genProducts          int
	genSuppliers         int
	genCustomers         int
	genPurchaseOrders    int
	genSalesOrders       int
	genDateRange         string
	genOnly              string
	genClearExisting     bool
	genBatchSize         int
	genSeed              uint64
	genSkipValidate      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate synthetic data into an initialized database",
	Long: `Generate synthetic data for the specified application. Stages run in
dependency order inside their own transactions, so a failed stage leaves
earlier stages committed.

Volumes come from a preset (small, medium, large, enterprise) and can be
overridden per entity. A non-zero seed makes the run reproducible.

Examples:
  salesgen generate --app sales --preset small
  salesgen generate --app sales --customers 5000 --sales-orders 50000
  salesgen generate --app sales --only sales,inventory --seed 42`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genPreset, "preset", "",
		"volume preset: small, medium, large, enterprise")
	generateCmd.Flags().IntVar(&genCountries, "countries", 0,
		"number of countries")
	generateCmd.Flags().IntVar(&genTerritories, "territories", 0,
		"total number of territories")
	generateCmd.Flags().IntVar(&genEmployees, "employees", 0,
		"number of employees")
	generateCmd.Flags().IntVar(&genProductCategories, "product-categories", 0,
		"number of product categories")
	generateCmd.Flags().IntVar(&genProducts, "products", 0,
		"number of products")
	generateCmd.Flags().IntVar(&genSuppliers, "suppliers", 0,
		"number of suppliers")
	generateCmd.Flags().IntVar(&genCustomers, "customers", 0,
		"number of customers")
	generateCmd.Flags().IntVar(&genPurchaseOrders, "purchase-orders", 0,
		"number of purchase orders")
	generateCmd.Flags().IntVar(&genSalesOrders, "sales-orders", 0,
		"number of sales orders")
	generateCmd.Flags().StringVar(&genDateRange, "date-range", "",
		"generation window as YYYY-YYYY (e.g., 2022-2025)")
	generateCmd.Flags().StringVar(&genOnly, "only", "",
		"comma-separated subset of stages to run")
	generateCmd.Flags().BoolVar(&genClearExisting, "clear-existing", false,
		"delete previously generated rows before this run")
	generateCmd.Flags().IntVar(&genBatchSize, "batch-size", 0,
		"rows per batched insert")
	generateCmd.Flags().Uint64Var(&genSeed, "seed", 0,
		"random seed for reproducible runs (0 = random)")
	generateCmd.Flags().BoolVar(&genSkipValidate, "skip-validate", false,
		"skip the post-generation integrity check")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if genPreset != "" {
		cfg.Generate.Preset = genPreset
	}
	if genCountries > 0 {
		cfg.Generate.Countries = genCountries
	}
	if genTerritories > 0 {
		cfg.Generate.Territories = genTerritories
	}
	if genEmployees > 0 {
		cfg.Generate.Employees = genEmployees
	}
	if genProductCategories > 0 {
		cfg.Generate.ProductCategories = genProductCategories
	}
	if genProducts > 0 {
		cfg.Generate.Products = genProducts
	}
	if genSuppliers > 0 {
		cfg.Generate.Suppliers = genSuppliers
	}
	if genCustomers > 0 {
		cfg.Generate.Customers = genCustomers
	}
	if genPurchaseOrders > 0 {
		cfg.Generate.PurchaseOrders = genPurchaseOrders
	}
	if genSalesOrders > 0 {
		cfg.Generate.SalesOrders = genSalesOrders
	}
	if genDateRange != "" {
		cfg.Generate.DateRange = genDateRange
	}
	if genOnly != "" {
		cfg.Generate.Only = genOnly
	}
	if genClearExisting {
		cfg.Generate.ClearExisting = true
	}
	if genBatchSize > 0 {
		cfg.Generate.BatchSize = genBatchSize
	}
	if genSeed != 0 {
		cfg.Generate.Seed = genSeed
	}

	// Validate configuration
	if err := cfg.ValidateGenerate(); err != nil {
		return err
	}

	// Get the application
	application, err := apps.Get(cfg.App)
	if err != nil {
		return err
	}

	// Resolve volumes from preset + overrides
	volumes, err := cfg.Generate.Resolve()
	if err != nil {
		return err
	}

	stages := cfg.Generate.Stages()
	if err := checkStages(application, stages); err != nil {
		return err
	}

	logging.Info().
		Str("app", cfg.App).
		Str("preset", cfg.Generate.Preset).
		Int("customers", volumes.Customers).
		Int("sales_orders", volumes.SalesOrders).
		Uint64("seed", cfg.Generate.Seed).
		Msg("Generating data")

	// Connect to database
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	genCfg := apps.GeneratorConfig{
		Volumes:       volumes,
		Stages:        stages,
		ClearExisting: cfg.Generate.ClearExisting,
		Seed:          cfg.Generate.Seed,
	}

	if err := application.GenerateData(ctx, pool, genCfg); err != nil {
		return fmt.Errorf("failed to generate data: %w", err)
	}

	// Validate referential integrity
	if !genSkipValidate {
		ok, err := application.Validate(ctx, pool)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		if !ok {
			logging.Warn().Msg("Integrity checks reported issues; see warnings above")
		}
	}

	// Save metadata
	extra := map[string]string{
		"preset": cfg.Generate.Preset,
		"seed":   strconv.FormatUint(cfg.Generate.Seed, 10),
	}
	if err := db.SaveRunMetadata(ctx, pool, cfg.App, extra); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("app", cfg.App).
		Msg("Data generation complete")

	return nil
}

// checkStages rejects stage names the application doesn't know about
// before any work starts.
func checkStages(application apps.App, stages []string) error {
	if len(stages) == 0 {
		return nil
	}
	known := make(map[string]bool)
	for _, s := range application.Stages() {
		known[s] = true
	}
	var bad []string
	for _, s := range stages {
		if !known[s] {
			bad = append(bad, s)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("unknown stages %s for app %s (valid: %s)",
			strings.Join(bad, ", "), application.Name(),
			strings.Join(application.Stages(), ", "))
	}
	return nil
}
