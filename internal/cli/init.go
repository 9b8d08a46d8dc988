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

	"github.com/spf13/cobra"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/db"
	"github.com/meridiandata/salesgen/internal/logging"
)

var (
	initDropExisting  bool
	initSkipReference bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a database with schema and reference data",
	Long: `Initialize a PostgreSQL database with the schema and static reference
data for the specified application. Reference data (currencies, tax types,
cost types, roles) is seeded idempotently; run generate afterwards to
populate transactional data.

Example:
  salesgen init --app sales --connection "postgres://..."`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initDropExisting, "drop-existing", false,
		"drop existing schema before initialization")
	initCmd.Flags().BoolVar(&initSkipReference, "skip-reference", false,
		"skip seeding static reference data")
}

func runInit(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if initDropExisting {
		cfg.Init.DropExisting = true
	}
	if initSkipReference {
		cfg.Init.SkipReference = true
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Get the application
	application, err := apps.Get(cfg.App)
	if err != nil {
		return err
	}

	logging.Info().
		Str("app", cfg.App).
		Msg("Initializing database")

	// Connect to database
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Check if already initialized for a different app
	existingApp, err := db.GetMetadataValue(ctx, pool, "app")
	if err == nil && existingApp != "" && existingApp != cfg.App {
		if !cfg.Init.DropExisting {
			return fmt.Errorf(
				"database was initialized for '%s' but '%s' was specified; "+
					"use --drop-existing to reinitialize",
				existingApp, cfg.App)
		}
		logging.Warn().
			Str("existing_app", existingApp).
			Str("new_app", cfg.App).
			Msg("Dropping existing schema")
	}

	// Drop existing schema if requested
	if cfg.Init.DropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := application.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	// Create schema
	logging.Info().Msg("Creating schema")
	if err := application.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed reference data
	if cfg.Init.SkipReference {
		logging.Info().Msg("Skipping reference data")
	} else {
		logging.Info().Msg("Seeding reference data")
		if err := application.SeedReferenceData(ctx, pool); err != nil {
			return fmt.Errorf("failed to seed reference data: %w", err)
		}
	}

	// Save metadata
	if err := db.SaveRunMetadata(ctx, pool, cfg.App, nil); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Str("app", cfg.App).
		Msg("Database initialization complete")

	return nil
}
