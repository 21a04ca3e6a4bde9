package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"wpr/pkg/remote"

	"github.com/pkg/errors"
)

// Recognized values for --format.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatIDs   = "ids"
)

// FormatItems renders homogeneous records with the given field list.
// Records arrive already ordered; no re-sorting happens here.
func FormatItems(w io.Writer, format string, records []remote.Record, fields []string) error {
	switch format {
	case FormatTable:
		return writeTable(w, records, fields)
	case FormatCSV:
		return writeCSV(w, records, fields)
	case FormatJSON:
		return writeJSON(w, records, fields)
	case FormatIDs:
		return writeIDs(w, records, fields)
	default:
		return errors.Errorf("invalid format: %s", format)
	}
}

// FormatItem renders a single object as a two-column key/value listing
// (table), or as JSON.
func FormatItem(w io.Writer, format string, record remote.Record) error {
	switch format {
	case FormatTable:
		tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "Field\tValue")
		for _, field := range record.Fields {
			fmt.Fprintf(tw, "%s\t%s\n", field, cellValue(record.Get(field)))
		}
		return tw.Flush()
	case FormatJSON:
		return writeJSON(w, []remote.Record{record}, record.Fields)
	default:
		return errors.Errorf("invalid format: %s", format)
	}
}

// FormatKeyValues renders an unordered key/value object (meta listings)
// with keys sorted for stable output.
func FormatKeyValues(w io.Writer, format string, values map[string]any) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	switch format {
	case FormatTable:
		tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "Key\tValue")
		for _, k := range keys {
			fmt.Fprintf(tw, "%s\t%s\n", k, cellValue(values[k]))
		}
		return tw.Flush()
	case FormatJSON:
		enc := json.NewEncoder(w)
		return enc.Encode(values)
	default:
		return errors.Errorf("invalid format: %s", format)
	}
}

func writeTable(w io.Writer, records []remote.Record, fields []string) error {
	tw := tabwriter.NewWriter(w, 2, 8, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(fields, "\t"))
	for _, record := range records {
		cells := make([]string, len(fields))
		for i, field := range fields {
			cells[i] = cellValue(record.Get(field))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, records []remote.Record, fields []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(fields); err != nil {
		return err
	}
	for _, record := range records {
		row := make([]string, len(fields))
		for i, field := range fields {
			row[i] = cellValue(record.Get(field))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(w io.Writer, records []remote.Record, fields []string) error {
	items := make([]map[string]any, len(records))
	for i, record := range records {
		item := make(map[string]any, len(fields))
		for _, field := range fields {
			item[field] = record.Get(field)
		}
		items[i] = item
	}
	enc := json.NewEncoder(w)
	return enc.Encode(items)
}

// writeIDs prints the first-listed field of each record, space
// separated, for shell composition.
func writeIDs(w io.Writer, records []remote.Record, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = cellValue(record.Get(fields[0]))
	}
	_, err := fmt.Fprintln(w, strings.Join(ids, " "))
	return err
}

// cellValue flattens a value for table and csv cells. Nested arrays and
// objects render as compact JSON the way the remote tooling always has.
func cellValue(v any) string {
	switch v.(type) {
	case nil, string, float64, bool:
		return remote.FormatValue(v)
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(raw)
	}
}
