package store

import (
	"errors"
	"time"

	"catalog-service/internal/model"

	"gorm.io/gorm"
)

// ProfileStore persists the identity-linked profile records
type ProfileStore struct {
	db *gorm.DB
}

// NewProfileStore creates a profile store backed by the given database
func NewProfileStore(db *gorm.DB) *ProfileStore {
	return &ProfileStore{db: db}
}

// Get returns the profile for the given identity
func (s *ProfileStore) Get(id string) (*model.Profile, error) {
	var profile model.Profile
	result := s.db.Where("id = ?", id).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &profile, nil
}

// GetByUsername returns the profile with the given username
func (s *ProfileStore) GetByUsername(username string) (*model.Profile, error) {
	var profile model.Profile
	result := s.db.Where("username = ?", username).First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &profile, nil
}

// Ensure returns the profile for the identity, creating it on first use
func (s *ProfileStore) Ensure(id string, username *string) (*model.Profile, error) {
	profile := model.Profile{ID: id, Username: username}
	result := s.db.Where(model.Profile{ID: id}).FirstOrCreate(&profile)
	if result.Error != nil {
		return nil, result.Error
	}
	return &profile, nil
}

// Update applies the supplied columns to the profile and returns the record
func (s *ProfileStore) Update(id string, updates map[string]interface{}) (*model.Profile, error) {
	if username, ok := updates["username"].(*string); ok && username != nil {
		var count int64
		if err := s.db.Model(&model.Profile{}).Where("username = ? AND id != ?", *username, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, &ConflictError{Message: "Username already taken"}
		}
	}

	updates["updated_at"] = time.Now()
	result := s.db.Model(&model.Profile{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(id)
}
