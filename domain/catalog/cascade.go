package catalog

import (
	"sort"
	"strings"

	"catview/domain/core"
)

// Step records one cascade step: the option set offered for a role and the
// choice applied against it.
type Step struct {
	Role      Role     `json:"role"`
	Column    string   `json:"column"`
	Options   []string `json:"options"`
	Selected  string   `json:"selected"`
	NoOptions bool     `json:"no_options"`
}

// Result is the outcome of a full cascade run over an immutable table
// snapshot: the per-step option sets and the final filtered subset.
type Result struct {
	Steps []Step `json:"steps"`
	Rows  []Row  `json:"rows"`
}

// Options computes the sorted distinct non-null values of a column within
// the given row subset. Values are trimmed before dedup so stray whitespace
// does not produce near-duplicate options.
func Options(rows []Row, column string) []string {
	seen := make(map[string]bool)
	var options []string
	for _, row := range rows {
		value := row[column]
		if IsAbsent(value) {
			continue
		}
		value = strings.TrimSpace(value)
		if !seen[value] {
			seen[value] = true
			options = append(options, value)
		}
	}
	sort.Strings(options)
	return options
}

// Cascade runs every hierarchy step over the table: for each mapped role it
// computes the option set from the current subset, applies the selection as
// an equality filter, and carries the narrowed subset into the next step.
// Unmapped roles are skipped entirely. An empty option set is not an error;
// the step reports no options and applies no narrowing. A non-(All) choice
// that is not a member of the step's option set violates the selection
// invariant and aborts the run.
//
// Filtering never proceeds while required roles are unmapped.
func Cascade(table *Table, mapping Mapping, selections Selections) (*Result, error) {
	if err := mapping.Validate(table.Headers); err != nil {
		return nil, err
	}

	subset := table.Rows
	steps := make([]Step, 0, len(HierarchyRoles))

	for _, role := range HierarchyRoles {
		column, ok := mapping.Column(role)
		if !ok || !table.HasColumn(column) {
			continue
		}

		options := Options(subset, column)
		choice := selections.Value(role)

		step := Step{Role: role, Column: column, Options: options, Selected: choice}

		if len(options) == 0 {
			// Nothing to filter on at this step; continue with zero narrowing.
			step.NoOptions = true
			step.Selected = AllValue
			steps = append(steps, step)
			continue
		}

		if choice != AllValue {
			if !contains(options, choice) {
				return nil, core.NewInvalidChoiceError(string(role), choice)
			}
			narrowed := make([]Row, 0, len(subset))
			for _, row := range subset {
				if strings.TrimSpace(row[column]) == choice {
					narrowed = append(narrowed, row)
				}
			}
			subset = narrowed
		}

		steps = append(steps, step)
	}

	return &Result{Steps: steps, Rows: subset}, nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
