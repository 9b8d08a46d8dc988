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
	"time"

	"github.com/meridiandata/salesgen/internal/apps"
	"github.com/meridiandata/salesgen/internal/datagen"
	"github.com/meridiandata/salesgen/internal/logging"
)

// Supplier relationship shaping.
const (
	maxSuppliersPerProduct = 3
	supplierCostMin        = 50.0 // base unit cost band, in the supplier currency
	supplierCostMax        = 2000.0
	supplierCostSpreadLow  = 0.8 // per-supplier variation on the base cost
	supplierCostSpreadHigh = 1.2
	supplierLeadDaysMin    = 7
	supplierLeadDaysMax    = 90
)

// Purchase order shaping.
const (
	poLeadDaysMin     = 14
	poLeadDaysMax     = 60
	poQuantityMax     = 100
	poSettledCutoff   = 30 // days in the past separating settled from open POs
	poTransportMin    = 0.05
	poTransportMax    = 0.12
	poDutiesChance    = 0.6
	poDutiesMin       = 0.02
	poDutiesMax       = 0.08
	poLineCostDaysMin = -5 // received date offset around the expected date
	poLineCostDaysMax = 10
)

var (
	settledPOStatuses = []string{"RECEIVED", "COMPLETED", "CANCELLED"}
	openPOStatuses    = []string{"PENDING", "APPROVED", "SHIPPED"}
)

// supplierOffering is one supplier's terms for one product.
type supplierOffering struct {
	ProductID int32
	UnitCost  float64
	Currency  string
}

// generateSuppliers creates the supply side: a pool of addresses, the
// suppliers themselves, 1-3 supplier offerings per product with the
// first pick preferred, and finally the purchase order history.
func (g *Generator) generateSuppliers(ctx context.Context, db apps.DB) error {
	if len(g.cache.Territories) == 0 {
		logging.Error().Msg("No territories available; skipping suppliers")
		return nil
	}

	// Address pool sized for suppliers plus the customers generated later.
	for i := 0; i < g.vol.Suppliers*2; i++ {
		t := datagen.Choose(g.faker, g.cache.Territories)
		if _, err := g.newAddress(ctx, db, t); err != nil {
			return err
		}
	}

	for i := 0; i < g.vol.Suppliers; i++ {
		t := datagen.Choose(g.faker, g.cache.Territories)
		country := g.cache.countryByID(t.CountryID)
		f := g.locales.fakerFor(country.Locale)

		res := g.namer.Attempt("supplier", datagen.DefaultNameBudget, func() string {
			return g.locales.companyName(country.Locale)
		})
		addressID := datagen.Choose(g.faker, g.cache.AddressIDs)

		var id int32
		err := db.QueryRow(ctx, `
			INSERT INTO suppliers (company_name, tax_id, contact_name, contact_email, contact_phone, address_id)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING supplier_id`,
			res.Name, f.TaxID(country.Code), f.Name(), f.Email(), f.Phone(), addressID).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to insert supplier %q: %w", res.Name, err)
		}
		g.cache.Suppliers = append(g.cache.Suppliers, Supplier{
			ID:          id,
			CompanyName: res.Name,
			CountryID:   country.ID,
			AddressID:   addressID,
		})
	}

	offerings, err := g.generateProductSuppliers(ctx, db)
	if err != nil {
		return err
	}
	return g.generatePurchaseOrders(ctx, db, offerings)
}

// generateProductSuppliers links every product to a sampled set of
// suppliers and returns each supplier's offerings for the purchase
// order pass.
func (g *Generator) generateProductSuppliers(ctx context.Context, db apps.DB) (map[int32][]supplierOffering, error) {
	offerings := make(map[int32][]supplierOffering, len(g.cache.Suppliers))
	count := 0
	for _, p := range g.cache.Products {
		n := g.faker.Int(1, maxSuppliersPerProduct)
		if n > len(g.cache.Suppliers) {
			n = len(g.cache.Suppliers)
		}
		picked := datagen.Sample(g.faker, g.cache.Suppliers, n)
		for i, s := range picked {
			currency := "USD"
			if c := g.cache.countryByID(s.CountryID); c != nil {
				currency = c.CurrencyCode
			}
			unitCost := round2(g.faker.Float64(supplierCostMin, supplierCostMax) *
				g.faker.Float64(supplierCostSpreadLow, supplierCostSpreadHigh))

			tag, err := db.Exec(ctx, `
				INSERT INTO product_suppliers (product_id, supplier_id, supplier_product_code,
				                               unit_cost, cost_currency_code, lead_time_days,
				                               is_preferred, effective_date, end_date)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL)
				ON CONFLICT (product_id, supplier_id) DO NOTHING`,
				p.ID, s.ID, fmt.Sprintf("SUP-%d-%04d", s.ID, p.ID),
				unitCost, currency, g.faker.Int(supplierLeadDaysMin, supplierLeadDaysMax),
				i == 0, g.vol.StartDate)
			if err != nil {
				return nil, fmt.Errorf("failed to insert product-supplier relationship %d/%d: %w",
					p.ID, s.ID, err)
			}
			if tag.RowsAffected() == 0 {
				// Duplicate sample; skip rather than abort the stage.
				logging.Warn().
					Int32("product_id", p.ID).
					Int32("supplier_id", s.ID).
					Msg("Skipped duplicate product-supplier relationship")
				continue
			}
			offerings[s.ID] = append(offerings[s.ID], supplierOffering{
				ProductID: p.ID,
				UnitCost:  unitCost,
				Currency:  currency,
			})
			g.cache.supplierProducts[s.ID] = append(g.cache.supplierProducts[s.ID], p.ID)
			count++
		}
	}
	logging.Info().
		Int("suppliers", len(g.cache.Suppliers)).
		Int("relationships", count).
		Msg("Generated suppliers and product offerings")
	return offerings, nil
}

// generatePurchaseOrders writes the procurement history. Orders older
// than the settled cutoff get a terminal status; RECEIVED ones also get
// a received date near the expected delivery. Suppliers with no product
// offerings are skipped.
func (g *Generator) generatePurchaseOrders(ctx context.Context, db apps.DB, offerings map[int32][]supplierOffering) error {
	if len(g.cache.Employees) == 0 {
		logging.Error().Msg("No employees available; skipping purchase orders")
		return nil
	}
	costTypes, err := costTypeIDs(ctx, db)
	if err != nil {
		return err
	}

	lastOrderDay := g.vol.EndDate.AddDate(0, 0, -poSettledCutoff)
	today := dateOnly(time.Now())
	settledBefore := today.AddDate(0, 0, -poSettledCutoff)

	inserted, skipped, lines := 0, 0, 0
	for i := 0; i < g.vol.PurchaseOrders; i++ {
		supplier := datagen.Choose(g.faker, g.cache.Suppliers)
		supplierOffers := offerings[supplier.ID]
		if len(supplierOffers) == 0 {
			skipped++
			continue
		}
		employee := datagen.Choose(g.faker, g.cache.Employees)

		orderDate := dateOnly(g.faker.Date(g.vol.StartDate, lastOrderDay))
		expected := orderDate.AddDate(0, 0, g.faker.Int(poLeadDaysMin, poLeadDaysMax))

		var status string
		var received *time.Time
		if orderDate.Before(settledBefore) {
			status = datagen.Choose(g.faker, settledPOStatuses)
			if status == "RECEIVED" {
				d := expected.AddDate(0, 0, g.faker.Int(poLineCostDaysMin, poLineCostDaysMax))
				received = &d
			}
		} else {
			status = datagen.Choose(g.faker, openPOStatuses)
		}

		res := g.namer.Attempt("po", datagen.DefaultNameBudget, func() string {
			return g.faker.PONumber(orderDate.Year())
		})
		poNumber := res.Name
		if res.Fallback {
			poNumber = fmt.Sprintf("PO-%d-%06d", orderDate.Year(), i+1)
		}

		currency := "USD"
		if c := g.cache.countryByID(supplier.CountryID); c != nil {
			currency = c.CurrencyCode
		}

		// Build lines first so the header can carry the real total.
		type poLine struct {
			Offer    supplierOffering
			Quantity int
		}
		nLines := g.faker.Int(1, g.vol.AvgPOLines*2)
		poLines := make([]poLine, 0, nLines)
		total := 0.0
		for l := 0; l < nLines; l++ {
			offer := datagen.Choose(g.faker, supplierOffers)
			qty := g.faker.Int(1, poQuantityMax)
			poLines = append(poLines, poLine{Offer: offer, Quantity: qty})
			total += offer.UnitCost * float64(qty)
		}

		var poID int32
		err := db.QueryRow(ctx, `
			INSERT INTO purchase_orders (po_number, supplier_id, employee_id, order_date,
			                             expected_delivery_date, received_date, status,
			                             total_cost, currency_code, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING po_id`,
			poNumber, supplier.ID, employee.ID, orderDate, expected, received, status,
			round2(total), currency, fmt.Sprintf("Purchase order for %s", supplier.CompanyName)).Scan(&poID)
		if err != nil {
			return fmt.Errorf("failed to insert purchase order %s: %w", poNumber, err)
		}
		inserted++

		for _, line := range poLines {
			receivedQty := 0
			if status == "RECEIVED" {
				receivedQty = line.Quantity
			}
			var detailID int32
			err := db.QueryRow(ctx, `
				INSERT INTO purchase_order_details (po_id, product_id, quantity, unit_cost, received_quantity)
				VALUES ($1, $2, $3, $4, $5)
				RETURNING po_detail_id`,
				poID, line.Offer.ProductID, line.Quantity, line.Offer.UnitCost, receivedQty).Scan(&detailID)
			if err != nil {
				return fmt.Errorf("failed to insert purchase order line: %w", err)
			}
			lines++

			lineTotal := line.Offer.UnitCost * float64(line.Quantity)
			_, err = db.Exec(ctx, `
				INSERT INTO purchase_order_line_costs (po_detail_id, cost_type_id, amount, currency_code)
				VALUES ($1, $2, $3, $4)`,
				detailID, costTypes["TRANSPORT"],
				round2(lineTotal*g.faker.Float64(poTransportMin, poTransportMax)), line.Offer.Currency)
			if err != nil {
				return fmt.Errorf("failed to insert line transport cost: %w", err)
			}
			if g.faker.Chance(poDutiesChance) {
				_, err = db.Exec(ctx, `
					INSERT INTO purchase_order_line_costs (po_detail_id, cost_type_id, amount, currency_code)
					VALUES ($1, $2, $3, $4)`,
					detailID, costTypes["DUTIES"],
					round2(lineTotal*g.faker.Float64(poDutiesMin, poDutiesMax)), line.Offer.Currency)
				if err != nil {
					return fmt.Errorf("failed to insert line duties cost: %w", err)
				}
			}
		}
	}

	logging.Info().
		Int("purchase_orders", inserted).
		Int("lines", lines).
		Int("skipped", skipped).
		Msg("Generated purchase orders")
	return nil
}
