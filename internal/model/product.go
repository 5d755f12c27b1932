package model

import "time"

// Product represents a wine product record with nutrition, certification and
// food-business-operator metadata. Every product is owned by exactly one
// identity (CreatedBy); all reads and writes are scoped by it.
type Product struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"type:varchar(255);not null"`
	Brand             *string   `json:"brand" gorm:"type:varchar(255)"`
	NetVolume         *string   `json:"netVolume" gorm:"type:varchar(100)"`
	Vintage           *string   `json:"vintage" gorm:"type:varchar(100)"`
	Type              *string   `json:"type" gorm:"type:varchar(100)"`
	SugarContent      *string   `json:"sugarContent" gorm:"type:varchar(100)"`
	Appellation       *string   `json:"appellation" gorm:"type:varchar(255)"`
	AlcoholContent    *string   `json:"alcoholContent" gorm:"type:varchar(100)"`
	Country           *string   `json:"country" gorm:"type:varchar(100)"`
	SKU               *string   `json:"sku" gorm:"type:varchar(100);uniqueIndex"`
	EAN               *string   `json:"ean" gorm:"type:varchar(100)"`
	Ingredients       *string   `json:"ingredients" gorm:"type:text"`
	PackagingGases    *string   `json:"packagingGases" gorm:"type:varchar(255)"`
	PortionSize       *string   `json:"portionSize" gorm:"type:varchar(100)"`
	Kcal              *string   `json:"kcal" gorm:"type:varchar(100)"`
	Kj                *string   `json:"kj" gorm:"type:varchar(100)"`
	Fat               *string   `json:"fat" gorm:"type:varchar(100)"`
	Carbohydrates     *string   `json:"carbohydrates" gorm:"type:varchar(100)"`
	Organic           bool      `json:"organic" gorm:"default:false"`
	Vegetarian        bool      `json:"vegetarian" gorm:"default:false"`
	Vegan             bool      `json:"vegan" gorm:"default:false"`
	OperatorType      *string   `json:"operatorType" gorm:"type:varchar(100)"`
	OperatorName      *string   `json:"operatorName" gorm:"type:varchar(255)"`
	OperatorAddress   *string   `json:"operatorAddress" gorm:"type:text"`
	OperatorInfo      *string   `json:"operatorInfo" gorm:"type:text"`
	ExternalShortLink *string   `json:"externalShortLink" gorm:"type:varchar(255)"`
	RedirectLink      *string   `json:"redirectLink" gorm:"type:varchar(255)"`
	ImageURL          *string   `json:"imageUrl" gorm:"type:varchar(255)"`
	CreatedBy         string    `json:"createdBy" gorm:"type:varchar(36);index;not null"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
