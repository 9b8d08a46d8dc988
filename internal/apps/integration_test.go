//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for all applications.
// Run with: go test -tags=integration ./internal/apps/...
// Requires PostgreSQL to be available.
// Set SALESGEN_TEST_CONN environment variable to override connection string.

package apps_test

import (
	"context"
	"testing"
	"time"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/config"
	"github.com/meridiandata/salesgen/internal/testutil"
	// Import app packages to trigger their init() functions which register the apps
	_ "github.com/meridiandata/salesgen/internal/apps/auth"
	_ "github.com/meridiandata/salesgen/internal/apps/sales"
)

// tinyVolumes returns a volume set small enough for a fast end-to-end run
// while still exercising every stage.
func tinyVolumes() config.GenerationConfig {
	return config.GenerationConfig{
		Countries:         5,
		Territories:       15,
		Employees:         20,
		ProductCategories: 25,
		Products:          50,
		Suppliers:         10,
		Customers:         30,
		PurchaseOrders:    40,
		SalesOrders:       100,
		StartDate:         time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		BatchSize:         100,
		AvgOrderLines:     3,
		AvgPOLines:        5,
	}
}

// TestSalesIntegration tests the sales app end-to-end.
func TestSalesIntegration(t *testing.T) {
	runAppIntegrationTest(t, "sales")
}

// TestAuthIntegration tests the auth app end-to-end.
func TestAuthIntegration(t *testing.T) {
	runAppIntegrationTest(t, "auth")
}

// runAppIntegrationTest runs a full integration test for an app.
func runAppIntegrationTest(t *testing.T, appName string) {
	// Check if PostgreSQL is available
	baseConnStr := testutil.SkipIfNoPostgres(t)

	// Get the app
	app, err := apps.Get(appName)
	if err != nil {
		t.Fatalf("Failed to get app: %v", err)
	}

	// Create test database
	testConnStr := testutil.CreateTestDB(t, baseConnStr, appName)
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	// Setup cleanup
	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	// Connect to test database
	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	// Test 1: Create schema
	t.Run("CreateSchema", func(t *testing.T) {
		if err := app.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("CreateSchema failed: %v", err)
		}
	})

	// Test 2: Seed reference data
	t.Run("SeedReferenceData", func(t *testing.T) {
		if err := app.SeedReferenceData(ctx, pool); err != nil {
			t.Fatalf("SeedReferenceData failed: %v", err)
		}
		// Seeding is idempotent
		if err := app.SeedReferenceData(ctx, pool); err != nil {
			t.Fatalf("Second SeedReferenceData failed (not idempotent): %v", err)
		}
	})

	// Test 3: Generate data with a fixed seed
	t.Run("GenerateData", func(t *testing.T) {
		cfg := apps.GeneratorConfig{
			Volumes: tinyVolumes(),
			Seed:    42,
		}
		if err := app.GenerateData(ctx, pool, cfg); err != nil {
			t.Fatalf("GenerateData failed: %v", err)
		}
	})

	// Test 4: Integrity checks pass on freshly generated data
	t.Run("Validate", func(t *testing.T) {
		ok, err := app.Validate(ctx, pool)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if !ok {
			t.Error("Integrity checks reported issues on fresh data")
		}
	})

	// Test 5: Regenerate with clear-existing
	t.Run("ClearAndRegenerate", func(t *testing.T) {
		cfg := apps.GeneratorConfig{
			Volumes:       tinyVolumes(),
			ClearExisting: true,
			Seed:          42,
		}
		if err := app.GenerateData(ctx, pool, cfg); err != nil {
			t.Fatalf("GenerateData with ClearExisting failed: %v", err)
		}
		ok, err := app.Validate(ctx, pool)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if !ok {
			t.Error("Integrity checks reported issues after regeneration")
		}
	})
}

// TestSalesStageSubset verifies that --only style stage subsets reload
// their dependencies from the database.
func TestSalesStageSubset(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	app, err := apps.Get("sales")
	if err != nil {
		t.Fatalf("Failed to get app: %v", err)
	}

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "subset")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	if err := app.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	if err := app.SeedReferenceData(ctx, pool); err != nil {
		t.Fatalf("SeedReferenceData failed: %v", err)
	}

	// Full run first
	full := apps.GeneratorConfig{Volumes: tinyVolumes(), Seed: 7}
	if err := app.GenerateData(ctx, pool, full); err != nil {
		t.Fatalf("Full GenerateData failed: %v", err)
	}

	// Then a sales-only run against the existing reference rows
	subset := apps.GeneratorConfig{
		Volumes: tinyVolumes(),
		Stages:  []string{"sales", "inventory"},
		Seed:    8,
	}
	if err := app.GenerateData(ctx, pool, subset); err != nil {
		t.Fatalf("Subset GenerateData failed: %v", err)
	}

	ok, err := app.Validate(ctx, pool)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !ok {
		t.Error("Integrity checks reported issues after subset run")
	}
}

// TestSchemaIdempotent verifies CreateSchema is idempotent.
func TestSchemaIdempotent(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	app, err := apps.Get("sales")
	if err != nil {
		t.Fatalf("Failed to get app: %v", err)
	}

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "idempotent")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	// Initialize twice - should not error
	if err := app.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("First CreateSchema failed: %v", err)
	}
	if err := app.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("Second CreateSchema failed (not idempotent): %v", err)
	}
}

// TestDropSchema verifies DropSchema removes everything CreateSchema made.
func TestDropSchema(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	app, err := apps.Get("sales")
	if err != nil {
		t.Fatalf("Failed to get app: %v", err)
	}

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "drop")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)

	ctx := context.Background()

	if err := app.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	if err := app.DropSchema(ctx, pool); err != nil {
		t.Fatalf("DropSchema failed: %v", err)
	}

	var count int
	err = pool.QueryRow(ctx, `
        SELECT COUNT(*) FROM information_schema.tables
        WHERE table_schema = 'public'
    `).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count tables: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 tables after DropSchema, found %d", count)
	}
}
