package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catview/domain/core"
)

func TestSuggestMappingMatchesAliases(t *testing.T) {
	headers := []string{"Department", "Super category", "Category", "Subcategory", "Segment", "Product Name", "Description", "Image URL", "Link"}

	mapping := SuggestMapping(headers)

	assert.Equal(t, "Department", mapping[RoleModule])
	assert.Equal(t, "Super category", mapping[RoleSuperCategory])
	assert.Equal(t, "Category", mapping[RoleCategory])
	assert.Equal(t, "Subcategory", mapping[RoleSubCategory])
	assert.Equal(t, "Segment", mapping[RoleSegment])
	assert.Equal(t, "Product Name", mapping[RoleProductName])
	assert.Equal(t, "Description", mapping[RoleDefinition])
	assert.Equal(t, "Image URL", mapping[RoleImage])
	assert.Equal(t, "Link", mapping[RoleLink])
}

func TestSuggestMappingNormalizesHeaders(t *testing.T) {
	headers := []string{"  MODULE  ", "SubCat", "SEGMENT"}

	mapping := SuggestMapping(headers)

	// Mapped columns keep their original (unnormalized) names.
	assert.Equal(t, "  MODULE  ", mapping[RoleModule])
	assert.Equal(t, "SubCat", mapping[RoleSubCategory])
	assert.Equal(t, "SEGMENT", mapping[RoleSegment])
}

func TestSuggestMappingPrefersEarlierAliases(t *testing.T) {
	// "module" outranks "department" in the Module alias list.
	mapping := SuggestMapping([]string{"Department", "Module"})
	assert.Equal(t, "Module", mapping[RoleModule])
}

func TestSuggestMappingLeavesUnmatchedRolesUnmapped(t *testing.T) {
	mapping := SuggestMapping([]string{"Alpha", "Beta"})

	for _, role := range AllRoles {
		_, ok := mapping.Column(role)
		assert.False(t, ok, "role %s should be unmapped", role)
	}
}

func TestOverrideReplacesAndClears(t *testing.T) {
	headers := []string{"Dept", "Seg"}
	mapping := Mapping{}

	require.NoError(t, mapping.Override(RoleModule, "Dept", headers))
	assert.Equal(t, "Dept", mapping[RoleModule])

	require.NoError(t, mapping.Override(RoleModule, "", headers))
	_, ok := mapping.Column(RoleModule)
	assert.False(t, ok)
}

func TestOverrideRejectsUnknownColumn(t *testing.T) {
	mapping := Mapping{}
	err := mapping.Override(RoleModule, "Nope", []string{"Dept"})
	assert.ErrorIs(t, err, core.ErrUnknownColumn)
}

func TestOverrideRejectsUnknownRole(t *testing.T) {
	mapping := Mapping{}
	err := mapping.Override(Role("Bogus"), "Dept", []string{"Dept"})
	assert.ErrorIs(t, err, core.ErrUnknownRole)
}

func TestValidateNamesExactlyTheMissingRoles(t *testing.T) {
	headers := []string{"Module", "Segment"}
	mapping := SuggestMapping(headers)

	err := mapping.Validate(headers)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMissingRoles)
	assert.Contains(t, err.Error(), "SubCategory")
	assert.NotContains(t, err.Error(), "Segment")
}

func TestValidatePassesWithRequiredRolesMapped(t *testing.T) {
	headers := []string{"Module", "Subcategory", "Segment"}
	mapping := SuggestMapping(headers)

	assert.NoError(t, mapping.Validate(headers))
}

func TestValidateCatchesStaleOverride(t *testing.T) {
	// A mapping pointing at a column that no longer exists is still missing.
	headers := []string{"Module", "Subcategory", "Segment"}
	mapping := SuggestMapping(headers)
	mapping[RoleSegment] = "Removed"

	err := mapping.Validate(headers)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Segment")
}
