package store

import (
	"errors"
	"time"

	"catalog-service/internal/model"

	"gorm.io/gorm"
)

// UserStore persists identity accounts
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a user store backed by the given database
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts a new user account
func (s *UserStore) Create(u *model.User) error {
	return s.db.Create(u).Error
}

// GetByEmail returns the user with the given email
func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	return s.first("email = ?", email)
}

// GetByUsername returns the user with the given username
func (s *UserStore) GetByUsername(username string) (*model.User, error) {
	return s.first("username = ?", username)
}

// GetByConfirmationToken returns the user holding the given email-confirmation token
func (s *UserStore) GetByConfirmationToken(token string) (*model.User, error) {
	return s.first("email_confirmation_token = ?", token)
}

// Update applies the supplied columns to the user
func (s *UserStore) Update(id string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result := s.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *UserStore) first(query string, arg interface{}) (*model.User, error) {
	var user model.User
	result := s.db.Where(query, arg).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &user, nil
}
