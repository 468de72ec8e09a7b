package catalog

import (
	"sort"
	"strings"

	"catview/domain/core"
)

// roleAliases holds the prioritized candidate header names per role.
// Candidates are compared against normalized headers (trimmed, lowercased);
// the first candidate present among the table's headers wins.
var roleAliases = map[Role][]string{
	RoleModule:        {"module", "department", "division"},
	RoleSuperCategory: {"super category", "supercategory", "super-category"},
	RoleCategory:      {"category", "cat"},
	RoleSubCategory:   {"subcategory", "sub-category", "sub category", "subcat"},
	RoleSegment:       {"segment", "subsegment", "sub-segment"},
	RoleProductName:   {"productname", "product name", "product", "name"},
	RoleDefinition:    {"definition", "desc", "description"},
	RoleImage:         {"image", "imageurl", "image url", "img", "photo", "picture", "image_path"},
	RoleLink:          {"link", "url", "producturl", "product url", "hyperlink"},
}

// NormalizeHeader canonicalizes a column header for alias matching
func NormalizeHeader(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}

// SuggestMapping produces a best-effort role → column mapping from the
// table's headers. Roles with no matching alias are left unmapped.
func SuggestMapping(headers []string) Mapping {
	normalized := make(map[string]string, len(headers))
	for _, h := range headers {
		key := NormalizeHeader(h)
		if _, exists := normalized[key]; !exists {
			normalized[key] = h
		}
	}

	mapping := make(Mapping, len(AllRoles))
	for _, role := range AllRoles {
		for _, candidate := range roleAliases[role] {
			if original, ok := normalized[candidate]; ok {
				mapping[role] = original
				break
			}
		}
	}
	return mapping
}

// Override sets or clears one role's column. An empty column unmaps the
// role; otherwise the column must exist among the table's headers.
func (m Mapping) Override(role Role, column string, headers []string) error {
	if !role.Valid() {
		return core.ErrUnknownRole
	}
	if column == "" {
		delete(m, role)
		return nil
	}
	for _, h := range headers {
		if h == column {
			m[role] = column
			return nil
		}
	}
	return core.ErrUnknownColumn
}

// MissingRequired returns the required roles not mapped to an existing
// column, in role order.
func (m Mapping) MissingRequired(headers []string) []Role {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	var missing []Role
	for _, role := range RequiredRoles {
		col, ok := m.Column(role)
		if !ok || !present[col] {
			missing = append(missing, role)
		}
	}
	return missing
}

// Validate halts filtering when required roles are unmapped, naming exactly
// the missing roles.
func (m Mapping) Validate(headers []string) error {
	missing := m.MissingRequired(headers)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, len(missing))
	for i, role := range missing {
		names[i] = string(role)
	}
	sort.Strings(names)
	return core.NewMissingRolesError(names)
}
