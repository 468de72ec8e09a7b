// Command export runs the catalog pipeline headlessly: load a spreadsheet,
// auto-map its columns, apply cascade selections from flags, and write the
// filtered Result Set as CSV or XLSX.
//
// Usage:
//
//	export -in catalog.xlsx [-sheet Products] \
//	    -select Module=Food -select Segment=A \
//	    -format csv -out filtered.csv
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"catview/adapters/tabular"
	"catview/domain/catalog"
)

// selectFlags collects repeated -select Role=Value flags
type selectFlags []string

func (s *selectFlags) String() string { return strings.Join(*s, ",") }

func (s *selectFlags) Set(value string) error {
	if !strings.Contains(value, "=") {
		return fmt.Errorf("expected Role=Value, got %q", value)
	}
	*s = append(*s, value)
	return nil
}

func main() {
	var (
		inPath  = flag.String("in", "", "input spreadsheet (.xlsx or .csv)")
		sheet   = flag.String("sheet", "", "sheet name (first sheet when empty)")
		format  = flag.String("format", "csv", "export format: csv or xlsx")
		outPath = flag.String("out", "", "output file (stdout when empty, csv only)")
		selects selectFlags
	)
	flag.Var(&selects, "select", "cascade selection Role=Value (repeatable)")
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		log.Fatal("-in is required")
	}

	table, err := tabular.NewDataReader(*inPath).ReadSheet(*sheet)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *inPath, err)
	}

	mapping := catalog.SuggestMapping(table.Headers)
	if err := mapping.Validate(table.Headers); err != nil {
		log.Fatalf("Column mapping incomplete: %v", err)
	}

	var selections catalog.Selections
	for _, raw := range selects {
		parts := strings.SplitN(raw, "=", 2)
		role := catalog.Role(parts[0])
		if !role.Valid() {
			log.Fatalf("Unknown role in -select: %s", parts[0])
		}
		selections = selections.Set(role, parts[1])
	}

	result, err := catalog.Cascade(table, mapping, selections)
	if err != nil {
		log.Fatalf("Cascade failed: %v", err)
	}
	log.Printf("Matched %d of %d rows", len(result.Rows), len(table.Rows))

	resultSet := &catalog.Table{Headers: table.Headers, Rows: result.Rows}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "csv":
		err = tabular.WriteCSV(out, resultSet)
	case "xlsx":
		if *outPath == "" {
			log.Fatal("xlsx export requires -out")
		}
		err = tabular.WriteXLSX(out, resultSet)
	default:
		log.Fatalf("Unsupported format: %s", *format)
	}
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}
