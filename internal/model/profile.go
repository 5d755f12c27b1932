package model

import "time"

// Profile is the identity-linked record for a user. It shares its ID with the
// user account and is created lazily on the first authenticated action.
type Profile struct {
	ID        string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Username  *string   `json:"username" gorm:"type:varchar(100);uniqueIndex"`
	FirstName *string   `json:"firstName" gorm:"type:varchar(100)"`
	LastName  *string   `json:"lastName" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
