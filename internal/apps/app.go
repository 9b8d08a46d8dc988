// Package apps defines the application interface and implementations.
package apps

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridiandata/salesgen/internal/config"
)

// DB is an interface satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
// Generator stages take a DB so the orchestrator can hand each stage its
// own transaction while tests and helpers can pass a pool directly.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// GeneratorConfig holds configuration for a generation run.
type GeneratorConfig struct {
	// Volumes are the resolved per-entity record counts and date range.
	Volumes config.GenerationConfig

	// Stages restricts generation to a subset of stage names; empty runs all.
	Stages []string

	// ClearExisting deletes previously generated rows before the run.
	ClearExisting bool

	// Seed makes generation reproducible when non-zero.
	Seed uint64
}

// App defines the interface that all applications must implement.
type App interface {
	// Name returns the application name.
	Name() string

	// Description returns a human-readable description.
	Description() string

	// CreateSchema creates the application's database schema.
	CreateSchema(ctx context.Context, pool *pgxpool.Pool) error

	// DropSchema drops the application's database schema.
	DropSchema(ctx context.Context, pool *pgxpool.Pool) error

	// SeedReferenceData upserts required lookup rows idempotently.
	SeedReferenceData(ctx context.Context, pool *pgxpool.Pool) error

	// GenerateData generates synthetic data for the application.
	GenerateData(ctx context.Context, pool *pgxpool.Pool, cfg GeneratorConfig) error

	// Validate runs advisory referential-integrity checks over generated
	// data. It reports whether all checks passed; it never mutates data.
	Validate(ctx context.Context, pool *pgxpool.Pool) (bool, error)

	// Stages returns the ordered stage names GenerateData runs.
	Stages() []string
}
