//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Portions copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salesgen.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for salesgen.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// App is the application type to use.
	App string `mapstructure:"app"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Init holds configuration for the init subcommand.
	Init InitConfig `mapstructure:"init"`

	// Generate holds configuration for the generate subcommand.
	Generate GenerateConfig `mapstructure:"generate"`
}

// InitConfig holds configuration for database initialization.
type InitConfig struct {
	// DropExisting drops existing schema before initialization.
	DropExisting bool `mapstructure:"drop_existing"`

	// SkipReference skips the idempotent reference-data upsert.
	SkipReference bool `mapstructure:"skip_reference"`
}

// GenerateConfig holds configuration for data generation. Zero-valued volume
// fields fall back to the preset (or default) volumes when resolved.
type GenerateConfig struct {
	// Preset selects a bundled volume/date-range profile:
	// small, medium, large, enterprise.
	Preset string `mapstructure:"preset"`

	Countries         int `mapstructure:"countries"`
	Territories       int `mapstructure:"territories"`
	Employees         int `mapstructure:"employees"`
	ProductCategories int `mapstructure:"product_categories"`
	Products          int `mapstructure:"products"`
	Suppliers         int `mapstructure:"suppliers"`
	Customers         int `mapstructure:"customers"`
	PurchaseOrders    int `mapstructure:"purchase_orders"`
	SalesOrders       int `mapstructure:"sales_orders"`

	// DateRange is the generation window in YYYY-YYYY form.
	DateRange string `mapstructure:"date_range"`

	// Only restricts generation to a comma-separated subset of stages.
	Only string `mapstructure:"only"`

	// ClearExisting deletes generated rows before a new run.
	ClearExisting bool `mapstructure:"clear_existing"`

	// BatchSize is the number of rows per batched insert.
	BatchSize int `mapstructure:"batch_size"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// GenerationConfig is the fully resolved volume and date configuration
// consumed by the generators. Pure data, no behavior beyond resolution.
type GenerationConfig struct {
	Countries         int
	Territories       int
	Employees         int
	ProductCategories int
	Products          int
	Suppliers         int
	Customers         int
	PurchaseOrders    int
	SalesOrders       int

	StartDate time.Time
	EndDate   time.Time

	BatchSize int

	// AvgOrderLines is the Poisson mean for sales order line counts.
	AvgOrderLines int
	// AvgPOLines bounds purchase order line counts (1 .. 2x).
	AvgPOLines int
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DefaultGeneration returns the default ("large") generation volumes.
func DefaultGeneration() GenerationConfig {
	return GenerationConfig{
		Countries:         50,
		Territories:       200,
		Employees:         500,
		ProductCategories: 100,
		Products:          2000,
		Suppliers:         200,
		Customers:         1000,
		PurchaseOrders:    5000,
		SalesOrders:       10000,
		StartDate:         date(2022, time.January, 1),
		EndDate:           date(2025, time.December, 31),
		BatchSize:         1000,
		AvgOrderLines:     3,
		AvgPOLines:        5,
	}
}

// Preset returns the generation volumes for a named preset.
func Preset(name string) (GenerationConfig, error) {
	cfg := DefaultGeneration()
	switch name {
	case "", "large":
		// defaults
	case "small":
		cfg.Countries = 25
		cfg.Territories = 100
		cfg.Employees = 100
		cfg.Products = 500
		cfg.Suppliers = 50
		cfg.Customers = 200
		cfg.PurchaseOrders = 1000
		cfg.SalesOrders = 2000
		cfg.StartDate = date(2023, time.July, 1)
	case "medium":
		cfg.Countries = 40
		cfg.Territories = 150
		cfg.Employees = 300
		cfg.Products = 1000
		cfg.Suppliers = 100
		cfg.Customers = 500
		cfg.PurchaseOrders = 2500
		cfg.SalesOrders = 5000
		cfg.StartDate = date(2023, time.January, 1)
	case "enterprise":
		cfg.Countries = 75
		cfg.Territories = 300
		cfg.Employees = 1000
		cfg.Products = 5000
		cfg.Suppliers = 500
		cfg.Customers = 2000
		cfg.PurchaseOrders = 15000
		cfg.SalesOrders = 25000
		cfg.StartDate = date(2020, time.January, 1)
	default:
		return cfg, fmt.Errorf("unknown preset: %s", name)
	}
	return cfg, nil
}

// ParseDateRange parses a YYYY-YYYY range into Jan 1 / Dec 31 bounds.
func ParseDateRange(s string) (time.Time, time.Time, error) {
	var startYear, endYear int
	if _, err := fmt.Sscanf(s, "%4d-%4d", &startYear, &endYear); err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("date range must be YYYY-YYYY: %s", s)
	}
	if endYear < startYear {
		return time.Time{}, time.Time{}, fmt.Errorf("date range end year before start year: %s", s)
	}
	return date(startYear, time.January, 1), date(endYear, time.December, 31), nil
}

// Resolve produces the effective GenerationConfig from the preset plus any
// explicit volume, date-range, and batch-size overrides.
func (g *GenerateConfig) Resolve() (GenerationConfig, error) {
	cfg, err := Preset(g.Preset)
	if err != nil {
		return cfg, err
	}

	if g.Countries > 0 {
		cfg.Countries = g.Countries
	}
	if g.Territories > 0 {
		cfg.Territories = g.Territories
	}
	if g.Employees > 0 {
		cfg.Employees = g.Employees
	}
	if g.ProductCategories > 0 {
		cfg.ProductCategories = g.ProductCategories
	}
	if g.Products > 0 {
		cfg.Products = g.Products
	}
	if g.Suppliers > 0 {
		cfg.Suppliers = g.Suppliers
	}
	if g.Customers > 0 {
		cfg.Customers = g.Customers
	}
	if g.PurchaseOrders > 0 {
		cfg.PurchaseOrders = g.PurchaseOrders
	}
	if g.SalesOrders > 0 {
		cfg.SalesOrders = g.SalesOrders
	}
	if g.BatchSize > 0 {
		cfg.BatchSize = g.BatchSize
	}

	if g.DateRange != "" {
		start, end, err := ParseDateRange(g.DateRange)
		if err != nil {
			return cfg, err
		}
		cfg.StartDate = start
		cfg.EndDate = end
	}

	return cfg, nil
}

// Stages returns the stage subset from Only, or nil when all stages run.
func (g *GenerateConfig) Stages() []string {
	if strings.TrimSpace(g.Only) == "" {
		return nil
	}
	parts := strings.Split(g.Only, ",")
	stages := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			stages = append(stages, p)
		}
	}
	return stages
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Generate: GenerateConfig{
			BatchSize: 1000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salesgen.yaml
// 3. ~/.config/salesgen/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salesgen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salesgen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	if c.App == "" {
		return fmt.Errorf("app type is required")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate command.
func (c *Config) ValidateGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Generate.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1")
	}
	if _, err := c.Generate.Resolve(); err != nil {
		return err
	}
	return nil
}
