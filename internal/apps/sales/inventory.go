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

	"github.com/jackc/pgx/v5"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/datagen"
	"github.com/meridiandata/salesgen/internal/logging"
)

// Stock level shaping.
const (
	stockBaseMin        = 10
	stockBaseMax        = 500
	stockDemandLow      = 0.5 // demand factor applied to the base stock
	stockDemandHigh     = 2.0
	stockReorderMin     = 5
	targetAmountMin     = 100_000.0
	targetAmountMax     = 1_000_000.0
	targetYearsCovered  = 2
	territoryStockShare = 4 // each territory stocks between 1/4 and 1/2 of the catalog
)

// stockLevel is one planned inventory row.
type stockLevel struct {
	OnHand       int
	OnOrder      int
	Reserved     int
	ReorderLevel int
	MaxStock     int
}

// drawStockLevel derives one consistent inventory row: reserved stays
// within a third of on-hand, and the reorder level is always below the
// maximum stock level.
func drawStockLevel(f *datagen.Faker) stockLevel {
	baseStock := f.Int(stockBaseMin, stockBaseMax)
	onHand := int(float64(baseStock) * f.Float64(stockDemandLow, stockDemandHigh))
	reserved := 0
	if onHand > 0 {
		reserved = f.Int(0, onHand/3)
	}
	maxReorder := baseStock / 3
	if maxReorder < stockReorderMin+1 {
		maxReorder = stockReorderMin + 1
	}
	return stockLevel{
		OnHand:       onHand,
		OnOrder:      f.Int(0, baseStock),
		Reserved:     reserved,
		ReorderLevel: f.Int(stockReorderMin, maxReorder),
		MaxStock:     baseStock * 2,
	}
}

// generateInventory stocks each territory with a sampled quarter to half
// of the product catalog, then writes annual sales targets for the sales
// staff covering the final data year and the one after.
func (g *Generator) generateInventory(ctx context.Context, db apps.DB) error {
	records := 0
	batch := &pgx.Batch{}
	for _, t := range g.cache.Territories {
		n := g.faker.Int(len(g.cache.Products)/territoryStockShare, len(g.cache.Products)/2)
		for _, p := range datagen.Sample(g.faker, g.cache.Products, n) {
			s := drawStockLevel(g.faker)
			batch.Queue(`
				INSERT INTO inventory (product_id, territory_id, quantity_on_hand,
				                       quantity_on_order, quantity_reserved,
				                       reorder_level, max_stock_level)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				ON CONFLICT (product_id, territory_id) DO NOTHING`,
				p.ID, t.ID, s.OnHand, s.OnOrder, s.Reserved,
				s.ReorderLevel, s.MaxStock)
			records++

			if batch.Len() >= g.vol.BatchSize {
				if err := flushBatch(ctx, db, batch); err != nil {
					return err
				}
				batch = &pgx.Batch{}
			}
		}
	}
	if err := flushBatch(ctx, db, batch); err != nil {
		return err
	}

	// Annual targets for the sales staff, in their territory currency.
	targets := 0
	batch = &pgx.Batch{}
	finalYear := g.vol.EndDate.Year()
	for _, e := range g.cache.salesStaff() {
		currency := g.cache.currencyForTerritory(e.TerritoryID)
		for y := 0; y < targetYearsCovered; y++ {
			batch.Queue(`
				INSERT INTO sales_targets (employee_id, territory_id, target_year,
				                           target_period_type, target_period_value,
				                           target_amount, target_currency_code)
				VALUES ($1, NULL, $2, 'ANNUAL', 1, $3, $4)`,
				e.ID, finalYear+y, round2(g.faker.Float64(targetAmountMin, targetAmountMax)), currency)
			targets++
		}
	}
	if err := flushBatch(ctx, db, batch); err != nil {
		return err
	}

	logging.Info().
		Int("inventory_records", records).
		Int("sales_targets", targets).
		Msg("Generated inventory and sales targets")
	return nil
}
