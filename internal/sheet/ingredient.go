package sheet

import (
	"strings"

	"catalog-service/internal/dto"
	"catalog-service/internal/model"
)

var ingredientAliases = map[string][]string{
	"name":      {"name", "ingredientname", "ingredient"},
	"category":  {"category"},
	"eNumber":   {"enumber", "enr", "eno"},
	"allergens": {"allergens", "allergen"},
	"details":   {"details", "description", "notes"},
}

// IngredientHeaders is the fixed, ordered export column set for ingredients
func IngredientHeaders() []string {
	return []string{"Name", "Category", "E Number", "Allergens", "Details"}
}

// IngredientCells projects an ingredient onto the export column set.
// Allergens are comma-joined; import splits them back.
func IngredientCells(i model.Ingredient) []interface{} {
	return []interface{}{
		i.Name,
		text(i.Category),
		text(i.ENumber),
		strings.Join([]string(i.Allergens), ", "),
		text(i.Details),
	}
}

// IngredientInput assembles the insert payload for one imported row
func IngredientInput(row Row) dto.IngredientInput {
	var in dto.IngredientInput
	if v, ok := lookup(row, ingredientAliases["name"]); ok {
		in.Name = v
	}
	in.Category = optional(row, ingredientAliases["category"])
	in.ENumber = optional(row, ingredientAliases["eNumber"])
	if v, ok := lookup(row, ingredientAliases["allergens"]); ok {
		in.Allergens = SplitList(v)
	}
	in.Details = optional(row, ingredientAliases["details"])
	return in
}
