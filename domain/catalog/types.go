package catalog

import (
	"strings"
)

// Row represents one record as column-name → raw cell value
type Row map[string]string

// Table represents the loaded spreadsheet: ordered headers plus data rows.
// Immutable after load; narrowing produces new row slices, never mutation.
type Table struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether the table contains the given column header
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// Role is a logical field purpose independent of actual column naming
type Role string

const (
	RoleModule        Role = "Module"
	RoleSuperCategory Role = "SuperCategory"
	RoleCategory      Role = "Category"
	RoleSubCategory   Role = "SubCategory"
	RoleSegment       Role = "Segment"
	RoleProductName   Role = "ProductName"
	RoleDefinition    Role = "Definition"
	RoleImage         Role = "Image"
	RoleLink          Role = "Link"
)

// AllRoles lists every role in display order
var AllRoles = []Role{
	RoleModule,
	RoleSuperCategory,
	RoleCategory,
	RoleSubCategory,
	RoleSegment,
	RoleProductName,
	RoleDefinition,
	RoleImage,
	RoleLink,
}

// HierarchyRoles is the cascade order: higher roles constrain lower ones
var HierarchyRoles = []Role{
	RoleModule,
	RoleSuperCategory,
	RoleCategory,
	RoleSubCategory,
	RoleSegment,
	RoleProductName,
}

// RequiredRoles must resolve to an existing column before filtering
// proceeds. Display roles and the optional hierarchy levels degrade to
// placeholders or skipped steps instead.
var RequiredRoles = []Role{
	RoleModule,
	RoleSubCategory,
	RoleSegment,
}

// Valid reports whether r is a member of the closed role set
func (r Role) Valid() bool {
	for _, role := range AllRoles {
		if role == r {
			return true
		}
	}
	return false
}

// hierarchyIndex returns r's position in the cascade order, or -1
func hierarchyIndex(r Role) int {
	for i, role := range HierarchyRoles {
		if role == r {
			return i
		}
	}
	return -1
}

// AllValue is the sentinel choice meaning "no narrowing at this step"
const AllValue = "(All)"

// Mapping associates roles with actual column names. A missing or empty
// entry means the role is unmapped.
type Mapping map[Role]string

// Column returns the mapped column for a role, if any
func (m Mapping) Column(role Role) (string, bool) {
	col, ok := m[role]
	if !ok || col == "" {
		return "", false
	}
	return col, true
}

// Selection is one cascade choice: the role and its chosen value (or AllValue)
type Selection struct {
	Role  Role   `json:"role"`
	Value string `json:"value"`
}

// Selections is the ordered list of cascade choices for a session
type Selections []Selection

// Value returns the chosen value for a role, defaulting to AllValue
func (s Selections) Value(role Role) string {
	for _, sel := range s {
		if sel.Role == role {
			return sel.Value
		}
	}
	return AllValue
}

// Set replaces the choice for a role and drops every downstream choice,
// since upstream changes invalidate downstream option sets.
func (s Selections) Set(role Role, value string) Selections {
	idx := hierarchyIndex(role)
	next := make(Selections, 0, len(s)+1)
	for _, sel := range s {
		if sel.Role == role {
			continue
		}
		if i := hierarchyIndex(sel.Role); idx >= 0 && i > idx {
			continue
		}
		next = append(next, sel)
	}
	if value != AllValue {
		next = append(next, Selection{Role: role, Value: value})
	}
	return next
}

// IsAbsent reports whether a raw cell value counts as null. Whitespace-only
// cells and the literal "nan" (a pandas export artifact) are absent.
func IsAbsent(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, "nan")
}
