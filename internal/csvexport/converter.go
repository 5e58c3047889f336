// Package csvexport renders tabular records as simple CSV text.
//
// Values are not quoted: commas and line breaks inside a value are stripped,
// so such values do not survive a round trip.
package csvexport

import (
	"fmt"
	"strings"
)

// Column maps a record field to its header label. Column order is output order.
type Column struct {
	Field  string
	Header string
}

var stripper = strings.NewReplacer(",", "", "\r", "", "\n", "")

func Convert(records []map[string]any, columns []Column) string {
	if len(records) == 0 {
		return ""
	}

	lines := make([]string, 0, len(records)+1)

	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = clean(col.Header)
	}
	lines = append(lines, strings.Join(header, ","))

	for _, rec := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = clean(rec[col.Field])
		}
		lines = append(lines, strings.Join(row, ","))
	}

	return strings.Join(lines, "\n")
}

func clean(v any) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return stripper.Replace(val)
	case *string:
		if val == nil {
			return ""
		}
		return stripper.Replace(*val)
	case fmt.Stringer:
		return stripper.Replace(val.String())
	default:
		return stripper.Replace(fmt.Sprint(val))
	}
}
