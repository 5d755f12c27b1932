package sheet

import (
	"strings"

	"catalog-service/internal/dto"
	"catalog-service/internal/model"
)

// Fixed alias sets for product import columns, in canonical (normalized)
// form. Alias sets are fixed per field, not user-configurable.
var productAliases = map[string][]string{
	"name":         {"name", "productname", "product"},
	"brand":        {"brand"},
	"netVolume":    {"netvolume", "volume"},
	"vintage":      {"vintage", "year"},
	"type":         {"type", "winetype", "style"},
	"sugarContent": {"sugarcontent", "sugar"},
	"appellation":  {"appellation", "region"},
	"sku":          {"sku", "skucode", "articlenumber"},
}

// ProductHeaders is the fixed, ordered export column set for products
func ProductHeaders() []string {
	return []string{"Name", "Net Volume", "Vintage", "Type", "Sugar Content", "Appellation", "SKU"}
}

// ProductCells projects a product onto the export column set
func ProductCells(p model.Product) []interface{} {
	return []interface{}{
		p.Name,
		text(p.NetVolume),
		text(p.Vintage),
		text(p.Type),
		text(p.SugarContent),
		text(p.Appellation),
		text(p.SKU),
	}
}

// ProductInput assembles the insert payload for one imported row
func ProductInput(row Row) dto.ProductInput {
	var in dto.ProductInput
	if v, ok := lookup(row, productAliases["name"]); ok {
		in.Name = v
	}
	in.Brand = optional(row, productAliases["brand"])
	in.NetVolume = optional(row, productAliases["netVolume"])
	in.Vintage = optional(row, productAliases["vintage"])
	in.Type = optional(row, productAliases["type"])
	in.SugarContent = optional(row, productAliases["sugarContent"])
	in.Appellation = optional(row, productAliases["appellation"])
	in.SKU = optional(row, productAliases["sku"])
	return in
}

func optional(row Row, aliases []string) *string {
	if v, ok := lookup(row, aliases); ok {
		return &v
	}
	return nil
}

func text(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}
