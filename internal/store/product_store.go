package store

import (
	"errors"
	"time"

	"catalog-service/internal/model"

	"gorm.io/gorm"
)

// ProductStore persists products scoped by owner identity
type ProductStore struct {
	db *gorm.DB
}

// NewProductStore creates a product store backed by the given database
func NewProductStore(db *gorm.DB) *ProductStore {
	return &ProductStore{db: db}
}

// List returns all products owned by uid, ordered by name ascending
func (s *ProductStore) List(uid string) ([]model.Product, error) {
	var products []model.Product
	result := s.db.Where("created_by = ?", uid).Order("name asc").Find(&products)
	return products, result.Error
}

// Get returns the product when it exists and is owned by uid
func (s *ProductStore) Get(id uint, uid string) (*model.Product, error) {
	var product model.Product
	result := s.db.Where("id = ? AND created_by = ?", id, uid).First(&product)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &product, nil
}

// Create inserts a new product. The record must already carry its owner.
func (s *ProductStore) Create(p *model.Product) error {
	if p.SKU != nil {
		var count int64
		if err := s.db.Model(&model.Product{}).Where("sku = ?", *p.SKU).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Message: "A product with this SKU already exists"}
		}
	}
	return s.db.Create(p).Error
}

// Update applies the supplied columns to the product scoped by (id, uid) and
// returns the updated record. The updated_at column is always refreshed, so an
// empty partial payload still touches the row.
func (s *ProductStore) Update(id uint, uid string, updates map[string]interface{}) (*model.Product, error) {
	if sku, ok := updates["sku"].(*string); ok && sku != nil {
		var count int64
		if err := s.db.Model(&model.Product{}).Where("sku = ? AND id != ?", *sku, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &ConflictError{Message: "A product with this SKU already exists"}
		}
	}

	updates["updated_at"] = time.Now()
	result := s.db.Model(&model.Product{}).
		Where("id = ? AND created_by = ?", id, uid).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(id, uid)
}

// Delete removes the product scoped by (id, uid)
func (s *ProductStore) Delete(id uint, uid string) error {
	result := s.db.Where("id = ? AND created_by = ?", id, uid).Delete(&model.Product{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
