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

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run referential integrity checks against generated data",
	Long: `Run the application's integrity checks against a populated database.
Checks are advisory: failures are reported as warnings and the command
exits non-zero, but no data is modified.`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	application, err := apps.Get(cfg.App)
	if err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	ok, err := application.Validate(ctx, pool)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if !ok {
		return fmt.Errorf("integrity checks reported issues for app %s", cfg.App)
	}

	logging.Info().
		Str("app", cfg.App).
		Msg("All integrity checks passed")

	return nil
}
