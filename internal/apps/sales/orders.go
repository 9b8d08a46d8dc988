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

// Order shaping parameters.
const (
	orderMaxLines        = 10
	orderSettledCutoff   = 7 // days in the past separating settled from open orders
	orderLineTaxMin      = 0.05
	orderLineTaxMax      = 0.15
	orderShipDaysMin     = 1
	orderShipDaysMax     = 7
	orderDeliveryDaysMin = 7
	orderDeliveryDaysMax = 21
	orderShippingCostMin = 10.0
	orderShippingCostMax = 100.0
	fallbackPriceMin     = 50.0
	fallbackPriceMax     = 1000.0
)

var (
	settledOrderStatuses = []string{"COMPLETED", "SHIPPED", "CANCELLED"}
	openOrderStatuses    = []string{"PENDING", "PROCESSING", "APPROVED"}
)

// seasonalMultiplier returns the sales volume factor for a month: a Q4
// boost, a post-holiday dip, and a slower summer.
func seasonalMultiplier(month time.Month) float64 {
	switch month {
	case time.November, time.December:
		return 1.4
	case time.January, time.February:
		return 0.7
	case time.June, time.July, time.August:
		return 0.8
	default:
		return 1.0
	}
}

// quantityRange maps a customer's credit limit to an order quantity band.
func quantityRange(creditLimit float64) (int, int) {
	switch {
	case creditLimit > 100_000:
		return 5, 50
	case creditLimit > 25_000:
		return 2, 20
	default:
		return 1, 10
	}
}

// discountRange maps a line quantity to a volume discount band, in
// percent.
func discountRange(quantity int) (float64, float64) {
	switch {
	case quantity > 20:
		return 5, 15
	case quantity > 10:
		return 2, 8
	default:
		return 0, 5
	}
}

// priceInCurrency converts a product's USD list price into the order
// currency using the fixed list factors. Currencies without a stored
// list price fall back to the USD figure unchanged; a product with no
// price at all gets a uniform draw.
func priceInCurrency(f *datagen.Faker, p Product, currency string) float64 {
	if p.BasePriceUSD <= 0 {
		return f.Float64(fallbackPriceMin, fallbackPriceMax)
	}
	for _, lc := range listCurrencyFactors {
		if lc.Code == currency {
			return p.BasePriceUSD * lc.Factor
		}
	}
	return p.BasePriceUSD
}

// generateSales writes the order history. Season shapes volume by
// rejection sampling: a uniform draw above the month's multiplier drops
// the order entirely, so November carries roughly twice February's
// volume. Line counts follow a Poisson around the configured average.
func (g *Generator) generateSales(ctx context.Context, db apps.DB) error {
	if len(g.cache.Customers) == 0 || len(g.cache.Employees) == 0 || len(g.cache.Products) == 0 {
		logging.Error().Msg("Sales stage requires customers, employees and products; skipping")
		return nil
	}

	today := dateOnly(time.Now())
	settledBefore := today.AddDate(0, 0, -orderSettledCutoff)
	progress := datagen.NewProgressReporter("orders", int64(g.vol.SalesOrders), 1000)

	inserted, skippedSeasonal, lineCount := 0, 0, 0
	for i := 0; i < g.vol.SalesOrders; i++ {
		progress.Update(1)

		customer := datagen.Choose(g.faker, g.cache.Customers)
		employee := datagen.Choose(g.faker, g.cache.Employees)

		orderDate := dateOnly(g.faker.Date(g.vol.StartDate, g.vol.EndDate))
		if g.faker.Float64(0, 1) > seasonalMultiplier(orderDate.Month()) {
			skippedSeasonal++
			continue
		}

		currency := customer.CurrencyCode
		var shippingMethodID *int32
		if len(g.cache.ShippingMethodIDs) > 0 {
			id := datagen.Choose(g.faker, g.cache.ShippingMethodIDs)
			shippingMethodID = &id
		}

		// Lines: distinct products, Poisson-distributed count.
		nLines := g.faker.Poisson(float64(g.vol.AvgOrderLines))
		if nLines < 1 {
			nLines = 1
		}
		if nLines > orderMaxLines {
			nLines = orderMaxLines
		}
		lineProducts := datagen.Sample(g.faker, g.cache.Products, nLines)

		type orderLine struct {
			ProductID  int32
			Quantity   int
			UnitPrice  float64
			DiscountPc float64
			FinalPrice float64
			TaxAmount  float64
		}
		var lines []orderLine
		subtotal, totalTax := 0.0, 0.0
		for _, p := range lineProducts {
			unitPrice := priceInCurrency(g.faker, p, currency)
			qLo, qHi := quantityRange(customer.CreditLimit)
			qty := g.faker.Int(qLo, qHi)
			dLo, dHi := discountRange(qty)
			discount := g.faker.Float64(dLo, dHi)
			finalPrice := unitPrice * (1 - discount/100)
			lineTotal := finalPrice * float64(qty)
			lineTax := lineTotal * g.faker.Float64(orderLineTaxMin, orderLineTaxMax)

			subtotal += lineTotal
			totalTax += lineTax
			lines = append(lines, orderLine{
				ProductID:  p.ID,
				Quantity:   qty,
				UnitPrice:  round2(unitPrice),
				DiscountPc: round2(discount),
				FinalPrice: round2(finalPrice),
				TaxAmount:  round2(lineTax),
			})
		}

		shippingCost := 0.0
		if shippingMethodID != nil {
			shippingCost = g.faker.Float64(orderShippingCostMin, orderShippingCostMax)
		}

		var status string
		var shippedDate, paymentDue *time.Time
		if orderDate.Before(settledBefore) {
			status = datagen.Choose(g.faker, settledOrderStatuses)
			if status != "CANCELLED" {
				sd := orderDate.AddDate(0, 0, g.faker.Int(orderShipDaysMin, orderShipDaysMax))
				pd := orderDate.AddDate(0, 0, customer.CreditTerms)
				shippedDate, paymentDue = &sd, &pd
			}
		} else {
			status = datagen.Choose(g.faker, openOrderStatuses)
			pd := orderDate.AddDate(0, 0, customer.CreditTerms)
			paymentDue = &pd
		}

		var trackingNumber *string
		if shippedDate != nil {
			tn := "TRK" + g.faker.Digits(9)
			trackingNumber = &tn
		}

		res := g.namer.Attempt("order", datagen.DefaultNameBudget, func() string {
			return g.faker.OrderNumber(orderDate.Year())
		})
		orderNumber := res.Name
		if res.Fallback {
			orderNumber = fmt.Sprintf("SO-%d-%06d", orderDate.Year(), i+1)
		}

		requestedDelivery := orderDate.AddDate(0, 0, g.faker.Int(orderDeliveryDaysMin, orderDeliveryDaysMax))

		var orderID int32
		err := db.QueryRow(ctx, `
			INSERT INTO orders (order_number, customer_id, employee_id, order_date,
			                    requested_delivery_date, shipped_date, payment_due_date, status,
			                    subtotal_amount, tax_amount, shipping_cost, grand_total_amount,
			                    billing_address_id, shipping_address_id, shipping_method_id,
			                    tracking_number, currency_code, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING order_id`,
			orderNumber, customer.ID, employee.ID, orderDate,
			requestedDelivery, shippedDate, paymentDue, status,
			round2(subtotal), round2(totalTax), round2(shippingCost),
			round2(subtotal+totalTax+shippingCost),
			customer.BillingAddressID, customer.ShippingAddressID, shippingMethodID,
			trackingNumber, currency,
			fmt.Sprintf("Order for %s", customer.CompanyName)).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("failed to insert order %s: %w", orderNumber, err)
		}
		inserted++

		for _, line := range lines {
			_, err := db.Exec(ctx, `
				INSERT INTO order_details (order_id, product_id, quantity, unit_price,
				                           discount_percentage, final_unit_price, line_item_tax_amount)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				orderID, line.ProductID, line.Quantity, line.UnitPrice,
				line.DiscountPc, line.FinalPrice, line.TaxAmount)
			if err != nil {
				return fmt.Errorf("failed to insert order line: %w", err)
			}
			lineCount++
		}
	}
	progress.Done()

	logging.Info().
		Int("orders", inserted).
		Int("lines", lineCount).
		Int("seasonal_skips", skippedSeasonal).
		Msg("Generated sales orders")
	return nil
}
