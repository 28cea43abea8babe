package gorm

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foyerapp/foyer/internal/domain/pantry"
	"github.com/foyerapp/foyer/internal/ports/outbound"
)

// ProductRepository implements outbound.ProductRepository with GORM
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) outbound.ProductRepository {
	return &ProductRepository{db: db}
}

// Create persists a new product
func (r *ProductRepository) Create(ctx context.Context, product *pantry.Product) error {
	model := ProductToModel(product)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists every editable column of the product
func (r *ProductRepository) Update(ctx context.Context, product *pantry.Product) error {
	model := ProductToModel(product)
	result := r.db.WithContext(ctx).Model(&ProductModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"name":          model.Name,
			"quantity":      model.Quantity,
			"unit":          model.Unit,
			"category":      model.Category,
			"min_threshold": model.MinThreshold,
			"expiry_date":   model.ExpiryDate,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a product
func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID retrieves a product by id
func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Product, error) {
	var model ProductModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return ProductToDomain(&model), nil
}

// FindByFoyer retrieves the household's full pantry, newest first
func (r *ProductRepository) FindByFoyer(ctx context.Context, foyerID uuid.UUID) ([]*pantry.Product, error) {
	var models []ProductModel
	err := r.db.WithContext(ctx).
		Where("foyer_id = ?", foyerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*pantry.Product, 0, len(models))
	for i := range models {
		products = append(products, ProductToDomain(&models[i]))
	}
	return products, nil
}
