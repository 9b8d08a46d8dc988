//-------------------------------------------------------------------------
//
// salesgen - International Sales Data Generator
//
// Copyright (c) 2025 - 2026, Meridian Data, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package sales implements the international sales application: a
// multi-currency, multi-territory wholesale schema seeded by a
// dependency-ordered generation pipeline.
package sales

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema SQL for the international sales database. The natural-key UNIQUE
// constraints (country name, territory name per country, employee email,
// product SKU, company names, order/PO numbers) are what the generators'
// re-query ID resolution relies on.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS currencies (
    currency_code  CHAR(3) PRIMARY KEY,
    name           VARCHAR(50) NOT NULL,
    symbol         VARCHAR(8)
);

CREATE TABLE IF NOT EXISTS exchange_rates (
    exchange_rate_id  BIGSERIAL PRIMARY KEY,
    from_currency     CHAR(3) NOT NULL REFERENCES currencies(currency_code),
    to_currency       CHAR(3) NOT NULL REFERENCES currencies(currency_code),
    rate              NUMERIC(15,6) NOT NULL CHECK (rate > 0),
    effective_date    DATE NOT NULL,
    UNIQUE (from_currency, to_currency, effective_date)
);

CREATE TABLE IF NOT EXISTS countries (
    country_id     SERIAL PRIMARY KEY,
    name           VARCHAR(100) NOT NULL UNIQUE,
    code           CHAR(3) NOT NULL UNIQUE,
    region         VARCHAR(30) NOT NULL,
    currency_code  CHAR(3) NOT NULL REFERENCES currencies(currency_code)
);

CREATE TABLE IF NOT EXISTS territories (
    territory_id  SERIAL PRIMARY KEY,
    name          VARCHAR(100) NOT NULL,
    country_id    INTEGER NOT NULL REFERENCES countries(country_id),
    UNIQUE (name, country_id)
);

CREATE TABLE IF NOT EXISTS tax_types (
    tax_type_id  SERIAL PRIMARY KEY,
    name         VARCHAR(50) NOT NULL UNIQUE,
    description  TEXT
);

CREATE TABLE IF NOT EXISTS tax_rates (
    tax_rate_id     SERIAL PRIMARY KEY,
    country_id      INTEGER NOT NULL REFERENCES countries(country_id),
    territory_id    INTEGER REFERENCES territories(territory_id),
    tax_type_id     INTEGER NOT NULL REFERENCES tax_types(tax_type_id),
    rate            NUMERIC(6,4) NOT NULL,
    effective_date  DATE NOT NULL,
    end_date        DATE
);

CREATE TABLE IF NOT EXISTS roles (
    role_id      SERIAL PRIMARY KEY,
    name         VARCHAR(50) NOT NULL UNIQUE,
    description  TEXT
);

CREATE TABLE IF NOT EXISTS employees (
    employee_id           SERIAL PRIMARY KEY,
    name                  VARCHAR(100) NOT NULL,
    email                 VARCHAR(255) NOT NULL UNIQUE,
    role_id               INTEGER NOT NULL REFERENCES roles(role_id),
    territory_id          INTEGER NOT NULL REFERENCES territories(territory_id),
    manager_id            INTEGER REFERENCES employees(employee_id),
    salary                NUMERIC(12,2) NOT NULL,
    salary_currency_code  CHAR(3) NOT NULL REFERENCES currencies(currency_code),
    hire_date             DATE NOT NULL
);

CREATE TABLE IF NOT EXISTS addresses (
    address_id     SERIAL PRIMARY KEY,
    address_line1  VARCHAR(150) NOT NULL,
    address_line2  VARCHAR(150),
    city           VARCHAR(100) NOT NULL,
    postal_code    VARCHAR(20),
    territory_id   INTEGER NOT NULL REFERENCES territories(territory_id),
    country_id     INTEGER NOT NULL REFERENCES countries(country_id)
);

CREATE TABLE IF NOT EXISTS product_categories (
    category_id      SERIAL PRIMARY KEY,
    name             VARCHAR(150) NOT NULL UNIQUE,
    parent_category  INTEGER REFERENCES product_categories(category_id),
    description      TEXT
);

CREATE TABLE IF NOT EXISTS products (
    product_id      SERIAL PRIMARY KEY,
    name            VARCHAR(150) NOT NULL,
    sku             VARCHAR(50) NOT NULL UNIQUE,
    category_id     INTEGER NOT NULL REFERENCES product_categories(category_id),
    specifications  JSONB
);

CREATE TABLE IF NOT EXISTS product_prices (
    price_id        SERIAL PRIMARY KEY,
    product_id      INTEGER NOT NULL REFERENCES products(product_id),
    currency_code   CHAR(3) NOT NULL REFERENCES currencies(currency_code),
    price           NUMERIC(12,2) NOT NULL,
    effective_date  DATE NOT NULL,
    end_date        DATE
);

CREATE TABLE IF NOT EXISTS cost_types (
    cost_type_id  SERIAL PRIMARY KEY,
    name          VARCHAR(50) NOT NULL UNIQUE,
    description   TEXT
);

CREATE TABLE IF NOT EXISTS product_costs (
    product_cost_id  SERIAL PRIMARY KEY,
    product_id       INTEGER NOT NULL REFERENCES products(product_id),
    cost_type_id     INTEGER NOT NULL REFERENCES cost_types(cost_type_id),
    amount           NUMERIC(12,2) NOT NULL,
    currency_code    CHAR(3) NOT NULL REFERENCES currencies(currency_code),
    effective_date   DATE NOT NULL,
    end_date         DATE
);

CREATE TABLE IF NOT EXISTS suppliers (
    supplier_id    SERIAL PRIMARY KEY,
    company_name   VARCHAR(150) NOT NULL UNIQUE,
    tax_id         VARCHAR(50),
    contact_name   VARCHAR(100),
    contact_email  VARCHAR(255),
    contact_phone  VARCHAR(50),
    address_id     INTEGER NOT NULL REFERENCES addresses(address_id)
);

CREATE TABLE IF NOT EXISTS product_suppliers (
    product_supplier_id    SERIAL PRIMARY KEY,
    product_id             INTEGER NOT NULL REFERENCES products(product_id),
    supplier_id            INTEGER NOT NULL REFERENCES suppliers(supplier_id),
    supplier_product_code  VARCHAR(50),
    unit_cost              NUMERIC(12,2) NOT NULL,
    cost_currency_code     CHAR(3) NOT NULL REFERENCES currencies(currency_code),
    lead_time_days         INTEGER NOT NULL,
    is_preferred           BOOLEAN NOT NULL DEFAULT FALSE,
    effective_date         DATE NOT NULL,
    end_date               DATE,
    UNIQUE (product_id, supplier_id)
);

CREATE TABLE IF NOT EXISTS purchase_orders (
    po_id                   SERIAL PRIMARY KEY,
    po_number               VARCHAR(30) NOT NULL UNIQUE,
    supplier_id             INTEGER NOT NULL REFERENCES suppliers(supplier_id),
    employee_id             INTEGER NOT NULL REFERENCES employees(employee_id),
    order_date              DATE NOT NULL,
    expected_delivery_date  DATE,
    received_date           DATE,
    status                  VARCHAR(20) NOT NULL,
    total_cost              NUMERIC(14,2) NOT NULL,
    currency_code           CHAR(3) NOT NULL REFERENCES currencies(currency_code),
    notes                   TEXT
);

CREATE TABLE IF NOT EXISTS purchase_order_details (
    po_detail_id       SERIAL PRIMARY KEY,
    po_id              INTEGER NOT NULL REFERENCES purchase_orders(po_id),
    product_id         INTEGER NOT NULL REFERENCES products(product_id),
    quantity           INTEGER NOT NULL,
    unit_cost          NUMERIC(12,2) NOT NULL,
    received_quantity  INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS purchase_order_line_costs (
    line_cost_id   SERIAL PRIMARY KEY,
    po_detail_id   INTEGER NOT NULL REFERENCES purchase_order_details(po_detail_id),
    cost_type_id   INTEGER NOT NULL REFERENCES cost_types(cost_type_id),
    amount         NUMERIC(12,2) NOT NULL,
    currency_code  CHAR(3) NOT NULL REFERENCES currencies(currency_code)
);

CREATE TABLE IF NOT EXISTS customers (
    customer_id    SERIAL PRIMARY KEY,
    company_name   VARCHAR(150) NOT NULL UNIQUE,
    tax_id         VARCHAR(50),
    contact_name   VARCHAR(100),
    contact_email  VARCHAR(255),
    contact_phone  VARCHAR(50),
    credit_limit   NUMERIC(14,2) NOT NULL,
    credit_terms   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS customer_addresses (
    customer_address_id  SERIAL PRIMARY KEY,
    customer_id          INTEGER NOT NULL REFERENCES customers(customer_id),
    address_id           INTEGER NOT NULL REFERENCES addresses(address_id),
    address_type         VARCHAR(10) NOT NULL,
    is_primary           BOOLEAN NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS shipping_methods (
    shipping_method_id     SERIAL PRIMARY KEY,
    method_name            VARCHAR(50) NOT NULL UNIQUE,
    carrier                VARCHAR(50),
    estimated_days         INTEGER,
    cost_calculation_type  VARCHAR(10) NOT NULL,
    base_cost              NUMERIC(10,2) NOT NULL,
    currency_code          CHAR(3) NOT NULL REFERENCES currencies(currency_code)
);

CREATE TABLE IF NOT EXISTS orders (
    order_id                  SERIAL PRIMARY KEY,
    order_number              VARCHAR(30) NOT NULL UNIQUE,
    customer_id               INTEGER NOT NULL REFERENCES customers(customer_id),
    employee_id               INTEGER NOT NULL REFERENCES employees(employee_id),
    order_date                DATE NOT NULL,
    requested_delivery_date   DATE,
    shipped_date              DATE,
    payment_due_date          DATE,
    status                    VARCHAR(20) NOT NULL,
    subtotal_amount           NUMERIC(14,2) NOT NULL,
    tax_amount                NUMERIC(14,2) NOT NULL,
    shipping_cost             NUMERIC(10,2) NOT NULL DEFAULT 0,
    grand_total_amount        NUMERIC(14,2) NOT NULL,
    billing_address_id        INTEGER NOT NULL REFERENCES addresses(address_id),
    shipping_address_id       INTEGER NOT NULL REFERENCES addresses(address_id),
    shipping_method_id        INTEGER REFERENCES shipping_methods(shipping_method_id),
    tracking_number           VARCHAR(20),
    currency_code             CHAR(3) NOT NULL REFERENCES currencies(currency_code),
    notes                     TEXT
);

CREATE TABLE IF NOT EXISTS order_details (
    order_detail_id       SERIAL PRIMARY KEY,
    order_id              INTEGER NOT NULL REFERENCES orders(order_id),
    product_id            INTEGER NOT NULL REFERENCES products(product_id),
    quantity              INTEGER NOT NULL,
    unit_price            NUMERIC(12,2) NOT NULL,
    discount_percentage   NUMERIC(5,2) NOT NULL DEFAULT 0,
    final_unit_price      NUMERIC(12,2) NOT NULL,
    line_item_tax_amount  NUMERIC(12,2) NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS inventory (
    inventory_id       SERIAL PRIMARY KEY,
    product_id         INTEGER NOT NULL REFERENCES products(product_id),
    territory_id       INTEGER NOT NULL REFERENCES territories(territory_id),
    quantity_on_hand   INTEGER NOT NULL,
    quantity_on_order  INTEGER NOT NULL,
    quantity_reserved  INTEGER NOT NULL,
    reorder_level      INTEGER NOT NULL,
    max_stock_level    INTEGER NOT NULL,
    UNIQUE (product_id, territory_id)
);

CREATE TABLE IF NOT EXISTS sales_targets (
    sales_target_id       SERIAL PRIMARY KEY,
    employee_id           INTEGER NOT NULL REFERENCES employees(employee_id),
    territory_id          INTEGER REFERENCES territories(territory_id),
    target_year           INTEGER NOT NULL,
    target_period_type    VARCHAR(10) NOT NULL,
    target_period_value   INTEGER NOT NULL,
    target_amount         NUMERIC(14,2) NOT NULL,
    target_currency_code  CHAR(3) NOT NULL REFERENCES currencies(currency_code)
);

CREATE INDEX IF NOT EXISTS idx_exchange_rates_pair_date
    ON exchange_rates (from_currency, to_currency, effective_date);
CREATE INDEX IF NOT EXISTS idx_territories_country ON territories (country_id);
CREATE INDEX IF NOT EXISTS idx_employees_manager ON employees (manager_id);
CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id);
CREATE INDEX IF NOT EXISTS idx_product_suppliers_supplier
    ON product_suppliers (supplier_id);
CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders (customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_order_date ON orders (order_date);
CREATE INDEX IF NOT EXISTS idx_order_details_order ON order_details (order_id);
`

// dropTables lists all tables in reverse dependency order. The same order
// is used to clear existing data before a fresh run.
var dropTables = []string{
	"sales_targets",
	"inventory",
	"order_details",
	"orders",
	"customer_addresses",
	"shipping_methods",
	"customers",
	"purchase_order_line_costs",
	"purchase_order_details",
	"purchase_orders",
	"product_suppliers",
	"suppliers",
	"product_costs",
	"cost_types",
	"product_prices",
	"products",
	"product_categories",
	"addresses",
	"employees",
	"roles",
	"tax_rates",
	"tax_types",
	"territories",
	"countries",
	"exchange_rates",
	"currencies",
}

// CreateSchema creates the sales schema.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create sales schema: %w", err)
	}
	return nil
}

// DropSchema drops the sales schema.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range dropTables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
