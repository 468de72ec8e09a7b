package profile

import (
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"

	"catview/domain/catalog"
)

// numericThreshold is the share of present values that must parse as
// numbers before a column is profiled numerically.
const numericThreshold = 0.8

// ColumnProfile summarizes one column of the loaded table
type ColumnProfile struct {
	Name        string  `json:"name"`
	Kind        string  `json:"kind"` // "numeric" or "text"
	MissingRate float64 `json:"missing_rate"`
	UniqueCount int     `json:"unique_count"`

	// Numeric summaries, present only when Kind is "numeric"
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
	Mean   *float64 `json:"mean,omitempty"`
	Median *float64 `json:"median,omitempty"`
}

// TableProfile summarizes the loaded table
type TableProfile struct {
	RowCount    int             `json:"row_count"`
	ColumnCount int             `json:"column_count"`
	Columns     []ColumnProfile `json:"columns"`
}

// Profile computes per-column statistics over the full table: missing rate,
// unique count, and min/max/mean/median for predominantly numeric columns.
func Profile(table *catalog.Table) *TableProfile {
	profile := &TableProfile{
		RowCount:    len(table.Rows),
		ColumnCount: len(table.Headers),
		Columns:     make([]ColumnProfile, 0, len(table.Headers)),
	}

	for _, header := range table.Headers {
		profile.Columns = append(profile.Columns, profileColumn(table, header))
	}
	return profile
}

func profileColumn(table *catalog.Table, header string) ColumnProfile {
	col := ColumnProfile{Name: header, Kind: "text"}

	unique := make(map[string]bool)
	var numeric []float64
	present := 0

	for _, row := range table.Rows {
		value := row[header]
		if catalog.IsAbsent(value) {
			continue
		}
		present++
		trimmed := strings.TrimSpace(value)
		unique[trimmed] = true
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			numeric = append(numeric, f)
		}
	}

	col.UniqueCount = len(unique)
	if len(table.Rows) > 0 {
		col.MissingRate = float64(len(table.Rows)-present) / float64(len(table.Rows))
	}

	if present > 0 && float64(len(numeric))/float64(present) >= numericThreshold {
		col.Kind = "numeric"
		if min, err := stats.Min(numeric); err == nil {
			col.Min = &min
		}
		if max, err := stats.Max(numeric); err == nil {
			col.Max = &max
		}
		if mean, err := stats.Mean(numeric); err == nil {
			col.Mean = &mean
		}
		if median, err := stats.Median(numeric); err == nil {
			col.Median = &median
		}
	}

	return col
}
