package dto

import (
	"strings"

	"catalog-service/internal/model"
	"catalog-service/internal/validation"
)

// ProductInput is the insert payload for a product
type ProductInput struct {
	Name              string  `json:"name" validate:"required"`
	Brand             *string `json:"brand"`
	NetVolume         *string `json:"netVolume"`
	Vintage           *string `json:"vintage"`
	Type              *string `json:"type"`
	SugarContent      *string `json:"sugarContent"`
	Appellation       *string `json:"appellation"`
	AlcoholContent    *string `json:"alcoholContent"`
	Country           *string `json:"country"`
	SKU               *string `json:"sku"`
	EAN               *string `json:"ean"`
	Ingredients       *string `json:"ingredients"`
	PackagingGases    *string `json:"packagingGases"`
	PortionSize       *string `json:"portionSize"`
	Kcal              *string `json:"kcal"`
	Kj                *string `json:"kj"`
	Fat               *string `json:"fat"`
	Carbohydrates     *string `json:"carbohydrates"`
	Organic           bool    `json:"organic"`
	Vegetarian        bool    `json:"vegetarian"`
	Vegan             bool    `json:"vegan"`
	OperatorType      *string `json:"operatorType"`
	OperatorName      *string `json:"operatorName"`
	OperatorAddress   *string `json:"operatorAddress"`
	OperatorInfo      *string `json:"operatorInfo"`
	ExternalShortLink *string `json:"externalShortLink"`
	RedirectLink      *string `json:"redirectLink"`
}

// Validate normalizes the payload and reports field errors
func (in *ProductInput) Validate() validation.Errors {
	in.normalize()
	return validation.Struct(in)
}

func (in *ProductInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Brand = clean(in.Brand)
	in.NetVolume = clean(in.NetVolume)
	in.Vintage = clean(in.Vintage)
	in.Type = clean(in.Type)
	in.SugarContent = clean(in.SugarContent)
	in.Appellation = clean(in.Appellation)
	in.AlcoholContent = clean(in.AlcoholContent)
	in.Country = clean(in.Country)
	in.SKU = clean(in.SKU)
	in.EAN = clean(in.EAN)
	in.Ingredients = clean(in.Ingredients)
	in.PackagingGases = clean(in.PackagingGases)
	in.PortionSize = clean(in.PortionSize)
	in.Kcal = clean(in.Kcal)
	in.Kj = clean(in.Kj)
	in.Fat = clean(in.Fat)
	in.Carbohydrates = clean(in.Carbohydrates)
	in.OperatorType = clean(in.OperatorType)
	in.OperatorName = clean(in.OperatorName)
	in.OperatorAddress = clean(in.OperatorAddress)
	in.OperatorInfo = clean(in.OperatorInfo)
	in.ExternalShortLink = clean(in.ExternalShortLink)
	in.RedirectLink = clean(in.RedirectLink)
}

// Model builds the product record stamped with its owner identity
func (in *ProductInput) Model(owner string) model.Product {
	return model.Product{
		Name:              in.Name,
		Brand:             in.Brand,
		NetVolume:         in.NetVolume,
		Vintage:           in.Vintage,
		Type:              in.Type,
		SugarContent:      in.SugarContent,
		Appellation:       in.Appellation,
		AlcoholContent:    in.AlcoholContent,
		Country:           in.Country,
		SKU:               in.SKU,
		EAN:               in.EAN,
		Ingredients:       in.Ingredients,
		PackagingGases:    in.PackagingGases,
		PortionSize:       in.PortionSize,
		Kcal:              in.Kcal,
		Kj:                in.Kj,
		Fat:               in.Fat,
		Carbohydrates:     in.Carbohydrates,
		Organic:           in.Organic,
		Vegetarian:        in.Vegetarian,
		Vegan:             in.Vegan,
		OperatorType:      in.OperatorType,
		OperatorName:      in.OperatorName,
		OperatorAddress:   in.OperatorAddress,
		OperatorInfo:      in.OperatorInfo,
		ExternalShortLink: in.ExternalShortLink,
		RedirectLink:      in.RedirectLink,
		CreatedBy:         owner,
	}
}

// ProductUpdate is the partial-update payload for a product. Only non-nil
// fields are applied.
type ProductUpdate struct {
	Name              *string `json:"name"`
	Brand             *string `json:"brand"`
	NetVolume         *string `json:"netVolume"`
	Vintage           *string `json:"vintage"`
	Type              *string `json:"type"`
	SugarContent      *string `json:"sugarContent"`
	Appellation       *string `json:"appellation"`
	AlcoholContent    *string `json:"alcoholContent"`
	Country           *string `json:"country"`
	SKU               *string `json:"sku"`
	EAN               *string `json:"ean"`
	Ingredients       *string `json:"ingredients"`
	PackagingGases    *string `json:"packagingGases"`
	PortionSize       *string `json:"portionSize"`
	Kcal              *string `json:"kcal"`
	Kj                *string `json:"kj"`
	Fat               *string `json:"fat"`
	Carbohydrates     *string `json:"carbohydrates"`
	Organic           *bool   `json:"organic"`
	Vegetarian        *bool   `json:"vegetarian"`
	Vegan             *bool   `json:"vegan"`
	OperatorType      *string `json:"operatorType"`
	OperatorName      *string `json:"operatorName"`
	OperatorAddress   *string `json:"operatorAddress"`
	OperatorInfo      *string `json:"operatorInfo"`
	ExternalShortLink *string `json:"externalShortLink"`
	RedirectLink      *string `json:"redirectLink"`
}

// Validate rejects an explicitly emptied name; everything else is optional
func (u *ProductUpdate) Validate() validation.Errors {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return validation.Errors{{Field: "Name", Message: "Name is required"}}
	}
	return nil
}

// Updates builds the column map for the fields the caller supplied
func (u *ProductUpdate) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Name != nil {
		updates["name"] = strings.TrimSpace(*u.Name)
	}
	setString(updates, "brand", u.Brand)
	setString(updates, "net_volume", u.NetVolume)
	setString(updates, "vintage", u.Vintage)
	setString(updates, "type", u.Type)
	setString(updates, "sugar_content", u.SugarContent)
	setString(updates, "appellation", u.Appellation)
	setString(updates, "alcohol_content", u.AlcoholContent)
	setString(updates, "country", u.Country)
	setString(updates, "sku", u.SKU)
	setString(updates, "ean", u.EAN)
	setString(updates, "ingredients", u.Ingredients)
	setString(updates, "packaging_gases", u.PackagingGases)
	setString(updates, "portion_size", u.PortionSize)
	setString(updates, "kcal", u.Kcal)
	setString(updates, "kj", u.Kj)
	setString(updates, "fat", u.Fat)
	setString(updates, "carbohydrates", u.Carbohydrates)
	setBool(updates, "organic", u.Organic)
	setBool(updates, "vegetarian", u.Vegetarian)
	setBool(updates, "vegan", u.Vegan)
	setString(updates, "operator_type", u.OperatorType)
	setString(updates, "operator_name", u.OperatorName)
	setString(updates, "operator_address", u.OperatorAddress)
	setString(updates, "operator_info", u.OperatorInfo)
	setString(updates, "external_short_link", u.ExternalShortLink)
	setString(updates, "redirect_link", u.RedirectLink)
	return updates
}

func setString(updates map[string]interface{}, column string, value *string) {
	if value != nil {
		updates[column] = clean(value)
	}
}

func setBool(updates map[string]interface{}, column string, value *bool) {
	if value != nil {
		updates[column] = *value
	}
}
