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
)

// loadDependencies reloads from the database whatever caches the given
// stage needs but no earlier stage of this run has populated. This is
// what lets a partial run (--only sales) build on data generated by a
// previous invocation.
func (g *Generator) loadDependencies(ctx context.Context, stage string) error {
	type loader func(context.Context) error
	var needed []loader

	switch stage {
	case StageCurrency, StageGeographic, StageProducts:
		// Self-contained (products builds its own category forest).
	case StageTax:
		needed = []loader{g.loadCountries, g.loadTerritories}
	case StageHR:
		needed = []loader{g.loadCountries, g.loadTerritories}
	case StageSuppliers:
		needed = []loader{g.loadCountries, g.loadTerritories, g.loadProducts, g.loadEmployees}
	case StageCustomers:
		needed = []loader{g.loadCountries, g.loadTerritories}
	case StageSales:
		needed = []loader{
			g.loadCountries, g.loadTerritories, g.loadEmployees,
			g.loadProducts, g.loadCustomers, g.loadShippingMethods,
		}
	case StageInventory:
		needed = []loader{g.loadCountries, g.loadTerritories, g.loadEmployees, g.loadProducts}
	default:
		return fmt.Errorf("unknown stage %q", stage)
	}

	for _, load := range needed {
		if err := load(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) loadCountries(ctx context.Context) error {
	if len(g.cache.Countries) > 0 {
		return nil
	}
	rows, err := g.pool.Query(ctx,
		`SELECT country_id, name, code, region, currency_code FROM countries ORDER BY country_id`)
	if err != nil {
		return fmt.Errorf("failed to load countries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Region, &c.CurrencyCode); err != nil {
			return fmt.Errorf("failed to scan country: %w", err)
		}
		c.Locale = localeForCode(c.Code)
		g.cache.Countries = append(g.cache.Countries, c)
	}
	return rows.Err()
}

func (g *Generator) loadTerritories(ctx context.Context) error {
	if len(g.cache.Territories) > 0 {
		return nil
	}
	rows, err := g.pool.Query(ctx,
		`SELECT territory_id, name, country_id FROM territories ORDER BY territory_id`)
	if err != nil {
		return fmt.Errorf("failed to load territories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t Territory
		if err := rows.Scan(&t.ID, &t.Name, &t.CountryID); err != nil {
			return fmt.Errorf("failed to scan territory: %w", err)
		}
		g.cache.addTerritory(t)
	}
	return rows.Err()
}

func (g *Generator) loadEmployees(ctx context.Context) error {
	if len(g.cache.Employees) > 0 {
		return nil
	}
	rows, err := g.pool.Query(ctx, `
		SELECT e.employee_id, e.name, e.email, r.name, e.territory_id,
		       COALESCE(e.manager_id, 0), e.hire_date
		FROM employees e
		JOIN roles r ON r.role_id = e.role_id
		ORDER BY e.employee_id`)
	if err != nil {
		return fmt.Errorf("failed to load employees: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &e.TerritoryID,
			&e.ManagerID, &e.HireDate); err != nil {
			return fmt.Errorf("failed to scan employee: %w", err)
		}
		g.cache.Employees = append(g.cache.Employees, e)
	}
	return rows.Err()
}

func (g *Generator) loadProducts(ctx context.Context) error {
	if len(g.cache.Products) > 0 {
		return nil
	}
	rows, err := g.pool.Query(ctx, `
		SELECT p.product_id, p.name, p.sku, p.category_id,
		       COALESCE(pp.price, 0)
		FROM products p
		LEFT JOIN product_prices pp
		       ON pp.product_id = p.product_id AND pp.currency_code = 'USD'
		ORDER BY p.product_id`)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.BasePriceUSD); err != nil {
			return fmt.Errorf("failed to scan product: %w", err)
		}
		g.cache.Products = append(g.cache.Products, p)
	}
	return rows.Err()
}

func (g *Generator) loadCustomers(ctx context.Context) error {
	if len(g.cache.Customers) > 0 {
		return nil
	}
	rows, err := g.pool.Query(ctx, `
		SELECT c.customer_id, c.company_name, c.credit_limit, c.credit_terms,
		       COALESCE(b.address_id, 0), COALESCE(s.address_id, 0),
		       COALESCE(co.currency_code, 'USD')
		FROM customers c
		LEFT JOIN customer_addresses b
		       ON b.customer_id = c.customer_id AND b.address_type = 'BILLING' AND b.is_primary
		LEFT JOIN customer_addresses s
		       ON s.customer_id = c.customer_id AND s.address_type = 'SHIPPING'
		LEFT JOIN addresses a ON a.address_id = b.address_id
		LEFT JOIN countries co ON co.country_id = a.country_id
		ORDER BY c.customer_id`)
	if err != nil {
		return fmt.Errorf("failed to load customers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.CompanyName, &c.CreditLimit, &c.CreditTerms,
			&c.BillingAddressID, &c.ShippingAddressID, &c.CurrencyCode); err != nil {
			return fmt.Errorf("failed to scan customer: %w", err)
		}
		if c.ShippingAddressID == 0 {
			c.ShippingAddressID = c.BillingAddressID
		}
		g.cache.Customers = append(g.cache.Customers, c)
	}
	return rows.Err()
}

func (g *Generator) loadShippingMethods(ctx context.Context) error {
	if len(g.cache.ShippingMethodIDs) > 0 {
		return nil
	}
	rows, err := g.pool.Query(ctx,
		`SELECT shipping_method_id FROM shipping_methods ORDER BY shipping_method_id`)
	if err != nil {
		return fmt.Errorf("failed to load shipping methods: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id int32
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan shipping method: %w", err)
		}
		g.cache.ShippingMethodIDs = append(g.cache.ShippingMethodIDs, id)
	}
	return rows.Err()
}
