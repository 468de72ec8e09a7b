package catalog

import (
	"strings"
)

// Placeholder strings substituted when a display field is absent
const (
	PlaceholderNotSpecified = "not specified"
	PlaceholderNoImage      = "no image available"
)

// Card is the detail view of a single matched record
type Card struct {
	ProductName string `json:"product_name"`
	Definition  string `json:"definition"`
	Link        string `json:"link"`
	ImageRef    string `json:"image_ref,omitempty"`
	HasImage    bool   `json:"has_image"`
}

// FieldValue extracts one role's value from a row via the mapping.
// Missing, empty, and "nan"-like values are uniformly absent.
func FieldValue(row Row, mapping Mapping, role Role) (string, bool) {
	column, ok := mapping.Column(role)
	if !ok {
		return "", false
	}
	value, exists := row[column]
	if !exists || IsAbsent(value) {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// BuildCard assembles the detail card for one row, substituting placeholders
// for absent fields. The image reference is carried raw; whether it actually
// resolves to bytes is decided by the image fetcher, which fails soft.
func BuildCard(row Row, mapping Mapping) Card {
	card := Card{
		ProductName: PlaceholderNotSpecified,
		Definition:  PlaceholderNotSpecified,
	}
	if name, ok := FieldValue(row, mapping, RoleProductName); ok {
		card.ProductName = name
	}
	if def, ok := FieldValue(row, mapping, RoleDefinition); ok {
		card.Definition = def
	}
	if link, ok := FieldValue(row, mapping, RoleLink); ok {
		card.Link = link
	}
	if ref, ok := FieldValue(row, mapping, RoleImage); ok {
		card.ImageRef = ref
		card.HasImage = true
	}
	return card
}
