package model

import (
	"time"

	"gorm.io/datatypes"
)

// Ingredient is a reusable ingredient-library entry with allergen and
// E-number metadata. Ownership works the same way as for products.
type Ingredient struct {
	ID        uint                        `json:"id" gorm:"primaryKey"`
	Name      string                      `json:"name" gorm:"type:varchar(255);not null"`
	Category  *string                     `json:"category" gorm:"type:varchar(100)"`
	ENumber   *string                     `json:"eNumber" gorm:"type:varchar(50)"`
	Allergens datatypes.JSONSlice[string] `json:"allergens"`
	Details   *string                     `json:"details" gorm:"type:text"`
	CreatedBy string                      `json:"createdBy" gorm:"type:varchar(36);index;not null"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
}
