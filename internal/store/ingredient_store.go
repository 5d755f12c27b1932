package store

import (
	"errors"
	"time"

	"catalog-service/internal/model"

	"gorm.io/gorm"
)

// IngredientStore persists ingredients scoped by owner identity
type IngredientStore struct {
	db *gorm.DB
}

// NewIngredientStore creates an ingredient store backed by the given database
func NewIngredientStore(db *gorm.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

// List returns all ingredients owned by uid, ordered by name ascending
func (s *IngredientStore) List(uid string) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	result := s.db.Where("created_by = ?", uid).Order("name asc").Find(&ingredients)
	return ingredients, result.Error
}

// Get returns the ingredient when it exists and is owned by uid
func (s *IngredientStore) Get(id uint, uid string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	result := s.db.Where("id = ? AND created_by = ?", id, uid).First(&ingredient)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &ingredient, nil
}

// Create inserts a new ingredient. The record must already carry its owner.
func (s *IngredientStore) Create(i *model.Ingredient) error {
	return s.db.Create(i).Error
}

// Update applies the supplied columns to the ingredient scoped by (id, uid)
// and returns the updated record.
func (s *IngredientStore) Update(id uint, uid string, updates map[string]interface{}) (*model.Ingredient, error) {
	updates["updated_at"] = time.Now()
	result := s.db.Model(&model.Ingredient{}).
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

// Delete removes the ingredient scoped by (id, uid)
func (s *IngredientStore) Delete(id uint, uid string) error {
	result := s.db.Where("id = ? AND created_by = ?", id, uid).Delete(&model.Ingredient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
