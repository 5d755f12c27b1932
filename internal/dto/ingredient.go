package dto

import (
	"strings"

	"catalog-service/internal/model"
	"catalog-service/internal/validation"

	"gorm.io/datatypes"
)

// IngredientInput is the insert payload for an ingredient
type IngredientInput struct {
	Name      string   `json:"name" validate:"required"`
	Category  *string  `json:"category"`
	ENumber   *string  `json:"eNumber"`
	Allergens []string `json:"allergens"`
	Details   *string  `json:"details"`
}

// Validate normalizes the payload and reports field errors
func (in *IngredientInput) Validate() validation.Errors {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = clean(in.Category)
	in.ENumber = clean(in.ENumber)
	in.Allergens = cleanList(in.Allergens)
	in.Details = clean(in.Details)
	return validation.Struct(in)
}

// Model builds the ingredient record stamped with its owner identity
func (in *IngredientInput) Model(owner string) model.Ingredient {
	return model.Ingredient{
		Name:      in.Name,
		Category:  in.Category,
		ENumber:   in.ENumber,
		Allergens: datatypes.JSONSlice[string](in.Allergens),
		Details:   in.Details,
		CreatedBy: owner,
	}
}

// IngredientUpdate is the partial-update payload for an ingredient
type IngredientUpdate struct {
	Name      *string   `json:"name"`
	Category  *string   `json:"category"`
	ENumber   *string   `json:"eNumber"`
	Allergens *[]string `json:"allergens"`
	Details   *string   `json:"details"`
}

// Validate rejects an explicitly emptied name
func (u *IngredientUpdate) Validate() validation.Errors {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return validation.Errors{{Field: "Name", Message: "Name is required"}}
	}
	return nil
}

// Updates builds the column map for the fields the caller supplied
func (u *IngredientUpdate) Updates() map[string]interface{} {
	updates := map[string]interface{}{}
	if u.Name != nil {
		updates["name"] = strings.TrimSpace(*u.Name)
	}
	setString(updates, "category", u.Category)
	setString(updates, "e_number", u.ENumber)
	if u.Allergens != nil {
		updates["allergens"] = datatypes.JSONSlice[string](cleanList(*u.Allergens))
	}
	setString(updates, "details", u.Details)
	return updates
}
