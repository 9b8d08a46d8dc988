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
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/datagen"
	"github.com/meridiandata/salesgen/internal/logging"
)

var rootCategories = []string{
	"Electronics", "Industrial Equipment", "Office Supplies", "Furniture",
	"Medical Devices", "Automotive", "Food & Beverage", "Chemicals",
	"Textiles", "Construction Materials",
}

var (
	subcategorySuffixes    = []string{"Systems", "Components", "Accessories", "Tools", "Equipment", "Products", "Solutions"}
	subSubcategoryVariants = []string{"Professional", "Standard", "Premium", "Basic", "Advanced", "Enterprise"}
	productNameQualifiers  = []string{"Pro", "Standard", "Elite", "Basic", ""}
)

// Product price and cost shaping, all USD-based.
const (
	basePriceMinUSD = 10.0
	basePriceMaxUSD = 5000.0

	purchaseCostMinFrac = 0.40 // purchase cost as a fraction of list price
	purchaseCostMaxFrac = 0.70
	transportCostMin    = 0.05 // of purchase cost
	transportCostMax    = 0.15
	dutiesCostMin       = 0.02 // of purchase cost
	dutiesCostMax       = 0.08
)

// listCurrencyFactors prices each product in the major currencies at a
// fixed conversion off the USD list price.
var listCurrencyFactors = []struct {
	Code   string
	Factor float64
}{
	{"EUR", 0.85},
	{"GBP", 0.75},
	{"JPY", 110.0},
	{"CAD", 1.25},
}

// categoryNode is a planned category before insertion. Parent indexes
// the plan slice; -1 marks a root.
type categoryNode struct {
	Name        string
	Parent      int
	Description string
}

// planCategories builds the category forest: up to ten fixed roots, 3-8
// suffixed subcategories each, and with 30% probability 1-3 variant
// sub-subcategories under a subcategory. Names are unique across the
// whole forest and the total never exceeds the configured budget.
func (g *Generator) planCategories() []categoryNode {
	budget := g.vol.ProductCategories
	var plan []categoryNode

	f := g.locales.fakerFor(localeEnUS)
	roots := rootCategories
	if budget < len(roots) {
		roots = roots[:budget]
	}

	for r, rootName := range roots {
		if len(plan) >= budget {
			break
		}
		rootIdx := len(plan)
		plan = append(plan, categoryNode{
			Name:        rootName,
			Parent:      -1,
			Description: fmt.Sprintf("%s products and equipment", rootName),
		})

		// Budget left for subtrees after reserving a slot per
		// remaining root.
		available := budget - len(plan) - (len(roots) - r - 1)
		nSubs := f.Int(3, 8)
		if remaining := available / 2; nSubs > remaining {
			nSubs = remaining
		}
		for i := 0; i < nSubs && len(plan) < budget; i++ {
			res := g.namer.Attempt("category", datagen.DefaultNameBudget, func() string {
				word := titleWord(f.Word())
				return fmt.Sprintf("%s - %s %s", rootName, word, datagen.Choose(f, subcategorySuffixes))
			})
			subIdx := len(plan)
			plan = append(plan, categoryNode{
				Name:        res.Name,
				Parent:      rootIdx,
				Description: fmt.Sprintf("Specialized %s", strings.ToLower(res.Name)),
			})

			if f.Chance(0.3) {
				for j := 0; j < f.Int(1, 3) && len(plan) < budget; j++ {
					sub := plan[subIdx].Name
					res := g.namer.Attempt("category", datagen.DefaultNameBudget, func() string {
						return fmt.Sprintf("%s - %s", sub, datagen.Choose(f, subSubcategoryVariants))
					})
					plan = append(plan, categoryNode{
						Name:        res.Name,
						Parent:      subIdx,
						Description: fmt.Sprintf("Specialized %s", strings.ToLower(res.Name)),
					})
				}
			}
		}
	}
	return plan
}

// categoryLevels partitions the plan into insertion levels: roots first,
// then nodes whose parents appear in an earlier level. Nodes left after
// the level cap are orphans and get dropped with a warning by the caller.
func categoryLevels(plan []categoryNode, maxLevels int) (levels [][]int, orphans []int) {
	placed := make([]bool, len(plan))
	remaining := len(plan)

	for level := 0; level < maxLevels && remaining > 0; level++ {
		var current []int
		for i, node := range plan {
			if placed[i] {
				continue
			}
			if node.Parent < 0 || (node.Parent < len(plan) && placed[node.Parent]) {
				current = append(current, i)
			}
		}
		if len(current) == 0 {
			break
		}
		// Defer inter-level dependents: a node whose parent is placed in
		// this same pass must wait for the next level.
		var insertable []int
		inCurrent := make(map[int]bool, len(current))
		for _, i := range current {
			inCurrent[i] = true
		}
		for _, i := range current {
			if plan[i].Parent >= 0 && inCurrent[plan[i].Parent] {
				continue
			}
			insertable = append(insertable, i)
		}
		for _, i := range insertable {
			placed[i] = true
		}
		remaining -= len(insertable)
		levels = append(levels, insertable)
	}

	for i := range plan {
		if !placed[i] {
			orphans = append(orphans, i)
		}
	}
	return levels, orphans
}

// Insertion stops after this many hierarchy levels; anything deeper is
// treated as orphaned.
const maxCategoryLevels = 5

// productSpecs returns a plausible product name stem and a JSON spec
// document shaped by the category family.
func (g *Generator) productSpecs(f *datagen.Faker, categoryName string) (string, map[string]any) {
	switch {
	case strings.Contains(categoryName, "Electronics"):
		names := []string{"Monitor", "Laptop", "Server", "Router", "Switch", "Tablet", "Smartphone"}
		return datagen.Choose(f, names), map[string]any{
			"brand":           datagen.Choose(f, []string{"Dell", "HP", "Lenovo", "Cisco", "Apple", "Samsung"}),
			"model":           fmt.Sprintf("Model-%d", f.Int(1000, 9999)),
			"warranty_months": datagen.Choose(f, []int{12, 24, 36}),
		}
	case strings.Contains(categoryName, "Industrial"):
		names := []string{"Pump", "Motor", "Valve", "Sensor", "Controller", "Generator"}
		return datagen.Choose(f, names), map[string]any{
			"power_rating":  fmt.Sprintf("%dHP", f.Int(1, 500)),
			"voltage":       datagen.Choose(f, []string{"120V", "240V", "480V"}),
			"certification": datagen.Choose(f, []string{"UL", "CE", "ISO"}),
		}
	case strings.Contains(categoryName, "Office"):
		names := []string{"Desk", "Chair", "Cabinet", "Printer", "Paper", "Pen Set"}
		return datagen.Choose(f, names), map[string]any{
			"material":   datagen.Choose(f, []string{"Wood", "Metal", "Plastic"}),
			"color":      datagen.Choose(f, []string{"Black", "White", "Gray", "Brown"}),
			"dimensions": fmt.Sprintf("%dx%dx%dcm", f.Int(20, 80), f.Int(20, 80), f.Int(30, 120)),
		}
	default:
		names := []string{"Standard Item", "Premium Item", "Professional Item", "Industrial Item"}
		return datagen.Choose(f, names), map[string]any{
			"type":   "standard",
			"grade":  datagen.Choose(f, []string{"A", "B", "C"}),
			"weight": fmt.Sprintf("%.1fkg", f.Float64(0.1, 50.0)),
		}
	}
}

// generateProducts builds the category forest level by level, fills it
// with SKU-keyed products, and attaches multi-currency list prices plus
// purchase, transport and duty costs to every product.
func (g *Generator) generateProducts(ctx context.Context, db apps.DB) error {
	f := g.locales.fakerFor(localeEnUS)

	// Categories, level by level so parent IDs always resolve.
	plan := g.planCategories()
	levels, orphans := categoryLevels(plan, maxCategoryLevels)
	if len(orphans) > 0 {
		logging.Warn().Int("dropped", len(orphans)).Msg("Skipping orphaned categories")
	}

	realIDs := make([]int32, len(plan))
	categoryNames := make(map[int32]string, len(plan))
	for _, level := range levels {
		for _, i := range level {
			node := plan[i]
			var parentID *int32
			if node.Parent >= 0 {
				parentID = &realIDs[node.Parent]
			}
			err := db.QueryRow(ctx, `
				INSERT INTO product_categories (name, parent_category, description)
				VALUES ($1, $2, $3)
				ON CONFLICT (name) DO UPDATE SET description = EXCLUDED.description
				RETURNING category_id`,
				node.Name, parentID, node.Description).Scan(&realIDs[i])
			if err != nil {
				return fmt.Errorf("failed to insert category %q: %w", node.Name, err)
			}
			g.cache.Categories = append(g.cache.Categories, realIDs[i])
			categoryNames[realIDs[i]] = node.Name
		}
	}
	if len(g.cache.Categories) == 0 {
		return fmt.Errorf("no product categories available")
	}

	// Products, batched, resolved by SKU afterward.
	type plannedProduct struct {
		Name       string
		SKU        string
		CategoryID int32
		BasePrice  float64
	}
	products := make([]plannedProduct, 0, g.vol.Products)
	batch := &pgx.Batch{}
	for i := 0; i < g.vol.Products; i++ {
		categoryID := datagen.Choose(f, g.cache.Categories)
		stem, specs := g.productSpecs(f, categoryNames[categoryID])
		name := strings.TrimSpace(fmt.Sprintf("%s %s", stem, datagen.Choose(f, productNameQualifiers)))

		res := g.namer.Attempt("sku", datagen.DefaultNameBudget, f.SKU)
		sku := res.Name
		if res.Fallback {
			sku = fmt.Sprintf("PRD-%06d-%s", i+1, f.Digits(3))
		}

		specsJSON, err := json.Marshal(specs)
		if err != nil {
			return fmt.Errorf("failed to encode specifications: %w", err)
		}
		batch.Queue(`
			INSERT INTO products (name, sku, category_id, specifications)
			VALUES ($1, $2, $3, $4)`,
			name, sku, categoryID, specsJSON)
		products = append(products, plannedProduct{
			Name:       name,
			SKU:        sku,
			CategoryID: categoryID,
			BasePrice:  f.Float64(basePriceMinUSD, basePriceMaxUSD),
		})

		if batch.Len() >= g.vol.BatchSize {
			if err := flushBatch(ctx, db, batch); err != nil {
				return fmt.Errorf("failed to insert products: %w", err)
			}
			batch = &pgx.Batch{}
		}
	}
	if err := flushBatch(ctx, db, batch); err != nil {
		return fmt.Errorf("failed to insert products: %w", err)
	}

	rows, err := db.Query(ctx, `SELECT product_id, sku FROM products`)
	if err != nil {
		return fmt.Errorf("failed to resolve product IDs: %w", err)
	}
	defer rows.Close()
	idBySKU := make(map[string]int32, len(products))
	for rows.Next() {
		var id int32
		var sku string
		if err := rows.Scan(&id, &sku); err != nil {
			return fmt.Errorf("failed to scan product ID: %w", err)
		}
		idBySKU[sku] = id
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Prices in USD plus the major currencies, and the standing cost
	// structure for each product.
	costTypes, err := costTypeIDs(ctx, db)
	if err != nil {
		return err
	}
	batch = &pgx.Batch{}
	priceCount, costCount := 0, 0
	for _, p := range products {
		id, ok := idBySKU[p.SKU]
		if !ok {
			continue
		}
		g.cache.Products = append(g.cache.Products, Product{
			ID:           id,
			Name:         p.Name,
			SKU:          p.SKU,
			CategoryID:   p.CategoryID,
			BasePriceUSD: p.BasePrice,
		})

		batch.Queue(`
			INSERT INTO product_prices (product_id, currency_code, price, effective_date, end_date)
			VALUES ($1, $2, $3, $4, NULL)`,
			id, "USD", round2(p.BasePrice), g.vol.StartDate)
		priceCount++
		for _, lc := range listCurrencyFactors {
			batch.Queue(`
				INSERT INTO product_prices (product_id, currency_code, price, effective_date, end_date)
				VALUES ($1, $2, $3, $4, NULL)`,
				id, lc.Code, round2(p.BasePrice*lc.Factor), g.vol.StartDate)
			priceCount++
		}

		purchase := p.BasePrice * f.Float64(purchaseCostMinFrac, purchaseCostMaxFrac)
		for _, c := range []struct {
			typ    string
			amount float64
		}{
			{"PURCHASE", purchase},
			{"TRANSPORT", purchase * f.Float64(transportCostMin, transportCostMax)},
			{"DUTIES", purchase * f.Float64(dutiesCostMin, dutiesCostMax)},
		} {
			batch.Queue(`
				INSERT INTO product_costs (product_id, cost_type_id, amount, currency_code, effective_date, end_date)
				VALUES ($1, $2, $3, 'USD', $4, NULL)`,
				id, costTypes[c.typ], round2(c.amount), g.vol.StartDate)
			costCount++
		}

		if batch.Len() >= g.vol.BatchSize {
			if err := flushBatch(ctx, db, batch); err != nil {
				return fmt.Errorf("failed to insert prices and costs: %w", err)
			}
			batch = &pgx.Batch{}
		}
	}
	if err := flushBatch(ctx, db, batch); err != nil {
		return fmt.Errorf("failed to insert prices and costs: %w", err)
	}

	logging.Info().
		Int("categories", len(g.cache.Categories)).
		Int("products", len(g.cache.Products)).
		Int("prices", priceCount).
		Int("costs", costCount).
		Msg("Generated product catalog")
	return nil
}

// titleWord uppercases the first letter of an ASCII word.
func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// costTypeIDs loads the cost_types lookup keyed by name.
func costTypeIDs(ctx context.Context, db apps.DB) (map[string]int32, error) {
	rows, err := db.Query(ctx, `SELECT cost_type_id, name FROM cost_types`)
	if err != nil {
		return nil, fmt.Errorf("failed to load cost types: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]int32)
	for rows.Next() {
		var id int32
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("failed to scan cost type: %w", err)
		}
		ids[name] = id
	}
	return ids, rows.Err()
}
