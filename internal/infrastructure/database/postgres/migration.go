// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/cart-service/internal/domain/catalog"
	"github.com/your-org/cart-service/internal/domain/delivery"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log *logrus.Logger) *Migration {
	return &Migration{db: db, log: log}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("Running database auto-migrations")

	models := []interface{}{
		&catalog.Product{},
		&delivery.PincodeZone{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// CreateIndexes creates additional indexes not expressed in the model tags
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_active_name ON products (is_active, name)",
		"CREATE INDEX IF NOT EXISTS idx_pincode_zones_serviceable ON pincode_zones (is_serviceable)",
	}

	for _, stmt := range indexes {
		if err := m.db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// SeedInitialData inserts a handful of products and pincode zones for
// development environments. Existing rows are left alone.
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&catalog.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	m.log.Info("Seeding initial catalog and delivery data")

	products := []catalog.Product{
		{
			SKU:   "FLT-001",
			Name:  "Oil Filter",
			Price: decimal.NewFromInt(500),
			MRP:   decimal.NewFromInt(600),
		},
		{
			SKU:            "BRK-014",
			Name:           "Brake Pad Set",
			Price:          decimal.RequireFromString("1249.50"),
			MRP:            decimal.RequireFromString("1399.00"),
			MaxPurchasable: 4,
		},
		{
			SKU:   "CLN-220",
			Name:  "Chain Cleaner Spray",
			Price: decimal.RequireFromString("349.00"),
			MRP:   decimal.RequireFromString("399.00"),
		},
	}
	for i := range products {
		products[i].IsActive = true
		if err := m.db.Create(&products[i]).Error; err != nil {
			return fmt.Errorf("failed to seed product %s: %w", products[i].SKU, err)
		}
	}

	zones := []delivery.PincodeZone{
		{Pincode: "560001", IsServiceable: true, EstimatedDelivery: "2 days", ShippingCost: decimal.NewFromInt(80)},
		{Pincode: "110001", IsServiceable: true, EstimatedDelivery: "4 days", ShippingCost: decimal.NewFromInt(120)},
		{Pincode: "799250", IsServiceable: false},
	}
	for i := range zones {
		if err := m.db.Create(&zones[i]).Error; err != nil {
			return fmt.Errorf("failed to seed pincode %s: %w", zones[i].Pincode, err)
		}
	}

	return nil
}
