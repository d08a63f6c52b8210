// internal/domain/catalog/service.go
package catalog

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

// Service handles catalog business logic
type Service struct {
	db *gorm.DB
}

// NewService creates a new catalog service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// ListRequest carries list filters and pagination
type ListRequest struct {
	Page       int
	Limit      int
	Search     string
	ActiveOnly bool
}

// List returns a page of products and the total match count
func (s *Service) List(req ListRequest) ([]Product, int64, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Product{})
	if req.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	offset := (req.Page - 1) * req.Limit
	err := query.Order("id").Offset(offset).Limit(req.Limit).Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

// GetByID retrieves a product by its numeric ID
func (s *Service) GetByID(id uint) (*Product, error) {
	var prod Product
	if err := s.db.Where("id = ?", id).First(&prod).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &prod, nil
}

// GetBySKU retrieves a product by SKU
func (s *Service) GetBySKU(sku string) (*Product, error) {
	var prod Product
	if err := s.db.Where("sku = ?", sku).First(&prod).Error; err != nil {
		return nil, fmt.Errorf("product not found")
	}
	return &prod, nil
}

// Create inserts a new product
func (s *Service) Create(prod *Product) error {
	if prod.SKU == "" {
		return fmt.Errorf("sku is required")
	}
	if prod.Name == "" {
		return fmt.Errorf("name is required")
	}
	if prod.Price.IsNegative() {
		return fmt.Errorf("price cannot be negative")
	}
	if prod.MRP.IsZero() {
		prod.MRP = prod.Price
	}
	if err := s.db.Create(prod).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update saves changes to an existing product
func (s *Service) Update(prod *Product) error {
	if prod.ID == 0 {
		return fmt.Errorf("product ID is required")
	}
	if err := s.db.Save(prod).Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

// Snapshot captures the fields the cart stores at add time. Inactive and
// missing products both come back as not-found: the cart must never hold a
// line the shop cannot sell.
func (s *Service) Snapshot(productID uint) (*Snapshot, error) {
	var prod Product
	result := s.db.Where("id = ? AND is_active = ?", productID, true).First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	return &Snapshot{
		ProductID:   strconv.FormatUint(uint64(prod.ID), 10),
		Name:        prod.Name,
		SKU:         prod.SKU,
		Image:       prod.Image,
		UnitPrice:   prod.Price,
		MRP:         prod.MRP,
		MaxQuantity: prod.MaxPurchasable,
	}, nil
}
