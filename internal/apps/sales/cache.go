//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package sales

import "time"

// Country is a generated country row with its resolved ID.
type Country struct {
	ID           int32
	Name         string
	Code         string
	Region       string
	CurrencyCode string
	Locale       string
}

// Territory is a generated territory row with its resolved ID.
type Territory struct {
	ID        int32
	Name      string
	CountryID int32
}

// Employee is a generated employee row with its resolved ID.
type Employee struct {
	ID          int32
	Name        string
	Email       string
	Role        string
	TerritoryID int32
	ManagerID   int32 // 0 for the CEO
	HireDate    time.Time
}

// Product is a generated product with its resolved ID and USD base price.
type Product struct {
	ID           int32
	Name         string
	SKU          string
	CategoryID   int32
	BasePriceUSD float64
}

// Supplier is a generated supplier with its resolved ID.
type Supplier struct {
	ID          int32
	CompanyName string
	CountryID   int32
	AddressID   int32
}

// Customer is a generated customer with its resolved ID and credit profile.
type Customer struct {
	ID                int32
	CompanyName       string
	Tier              string
	CreditLimit       float64
	CreditTerms       int
	BillingAddressID  int32
	ShippingAddressID int32
	CurrencyCode      string
}

// runCache carries resolved entities from one stage to the next within a
// single generation run. Stages only ever read what earlier stages wrote,
// so no synchronization is needed.
type runCache struct {
	Countries   []Country
	Territories []Territory

	// territoriesByCountry indexes Territories by country ID.
	territoriesByCountry map[int32][]Territory

	Employees []Employee

	Categories []int32 // leaf-insertable category IDs, any level
	Products   []Product

	Suppliers []Supplier
	// supplierProducts maps supplier ID to the product IDs it offers.
	supplierProducts map[int32][]int32

	Customers         []Customer
	ShippingMethodIDs []int32
	AddressIDs        []int32
}

func newRunCache() *runCache {
	return &runCache{
		territoriesByCountry: make(map[int32][]Territory),
		supplierProducts:     make(map[int32][]int32),
	}
}

// addTerritory records a territory in both the flat list and the
// per-country index.
func (c *runCache) addTerritory(t Territory) {
	c.Territories = append(c.Territories, t)
	c.territoriesByCountry[t.CountryID] = append(c.territoriesByCountry[t.CountryID], t)
}

// countryByID returns the cached country with the given ID, or nil.
func (c *runCache) countryByID(id int32) *Country {
	for i := range c.Countries {
		if c.Countries[i].ID == id {
			return &c.Countries[i]
		}
	}
	return nil
}

// currencyForTerritory resolves a territory's currency through its country.
// Falls back to USD when the territory is unknown.
func (c *runCache) currencyForTerritory(territoryID int32) string {
	for i := range c.Territories {
		if c.Territories[i].ID == territoryID {
			if co := c.countryByID(c.Territories[i].CountryID); co != nil {
				return co.CurrencyCode
			}
			break
		}
	}
	return "USD"
}

// salesStaff returns the employees eligible to own orders and targets.
func (c *runCache) salesStaff() []Employee {
	var out []Employee
	for _, e := range c.Employees {
		if e.Role == roleSalesRep || e.Role == roleSalesManager {
			out = append(out, e)
		}
	}
	return out
}
