//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salesgen.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/config"
	"github.com/meridiandata/salesgen/internal/logging"
	"github.com/meridiandata/salesgen/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	app        string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salesgen",
		Short: "Synthetic data generator for international sales databases",
		Long: `salesgen is a CLI tool that connects to PostgreSQL databases, creates
application schemas, and populates them with realistic synthetic data.

Its flagship application is an international sales database: multi-currency
orders, exchange rate history, a supplier network with purchase orders,
tiered customers, and per-territory inventory, all generated in dependency
order so every foreign key resolves. Volumes are tunable per entity or via
bundled presets, and seeded runs are reproducible.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salesgen.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&app, "app", "",
		"application type (sales, auth)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(appsCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if app != "" {
		cfg.App = app
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "List available applications",
	Long: `List all registered applications. Each application owns a schema and a
staged data generation pipeline.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Available applications:")
		cmd.Println()
		for _, a := range apps.All() {
			cmd.Println(fmt.Sprintf("  %-8s - %s", a.Name(), a.Description()))
			cmd.Println(fmt.Sprintf("  %-8s   stages: %v", "", a.Stages()))
		}
	},
}
