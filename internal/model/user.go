package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account managed by the identity layer. The ID doubles as
// the owner identity stamped onto catalog records.
type User struct {
	ID                           string     `json:"id" gorm:"type:varchar(36);primaryKey"`
	Username                     string     `json:"username" gorm:"type:varchar(100);uniqueIndex;not null"`
	Email                        string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password                     string     `json:"-" gorm:"type:varchar(255);not null"`
	IsEmailConfirmed             bool       `json:"isEmailConfirmed" gorm:"default:false"`
	EmailConfirmationToken       *string    `json:"-" gorm:"type:varchar(64);index"`
	EmailConfirmationTokenExpiry *time.Time `json:"-"`
	CreatedAt                    time.Time  `json:"createdAt"`
	UpdatedAt                    time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns a stable identifier before insert
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
