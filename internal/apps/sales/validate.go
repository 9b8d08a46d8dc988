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

	"github.com/meridiandata/salesgen/internal/logging"
)

// integrityChecks are the referential spot checks run after generation.
// Each counts rows that should not exist in a consistent data set.
var integrityChecks = []struct {
	Description string
	Query       string
}{
	{
		"Countries without territories",
		`SELECT COUNT(*) FROM countries c
		 LEFT JOIN territories t ON c.country_id = t.country_id
		 WHERE t.territory_id IS NULL`,
	},
	{
		"Employees without managers (except CEO)",
		`SELECT COUNT(*) FROM employees
		 WHERE manager_id IS NULL
		   AND role_id != (SELECT role_id FROM roles WHERE name = 'CEO')`,
	},
	{
		"Products without categories",
		`SELECT COUNT(*) FROM products p
		 LEFT JOIN product_categories pc ON p.category_id = pc.category_id
		 WHERE pc.category_id IS NULL`,
	},
	{
		"Orders without customers",
		`SELECT COUNT(*) FROM orders o
		 LEFT JOIN customers c ON o.customer_id = c.customer_id
		 WHERE c.customer_id IS NULL`,
	},
	{
		"Supplied products without exactly one preferred supplier",
		`SELECT COUNT(*) FROM (
		     SELECT product_id FROM product_suppliers
		     GROUP BY product_id
		     HAVING COUNT(*) FILTER (WHERE is_preferred) != 1
		 ) bad`,
	},
}

// ValidateIntegrity runs the referential integrity checks and reports
// whether all of them came back clean. Findings are advisory; they are
// logged as warnings rather than failing the run.
func ValidateIntegrity(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	allValid := true
	for _, check := range integrityChecks {
		var count int64
		if err := pool.QueryRow(ctx, check.Query).Scan(&count); err != nil {
			return false, fmt.Errorf("integrity check %q failed: %w", check.Description, err)
		}
		if count > 0 {
			logging.Warn().
				Str("check", check.Description).
				Int64("records", count).
				Msg("Integrity check found issues")
			allValid = false
		} else {
			logging.Debug().Str("check", check.Description).Msg("Integrity check passed")
		}
	}
	return allValid, nil
}
