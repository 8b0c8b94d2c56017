package csvio

import (
	"fmt"
	"sort"
	"strings"
)

// Serialize renders rows as CSV text. Each row is flattened first, so
// nested objects may be passed directly. Header resolution:
//
//   - a non-empty selected list keeps only the headers present in the
//     flattened data, preserving the caller's order;
//   - if none of the selected headers match, every header of the first
//     flattened row is used instead (sorted, for deterministic output);
//   - an empty selected list likewise uses the first row's headers.
//
// Values containing a comma, double quote, or newline are quote-wrapped
// with embedded quotes doubled; all other values are emitted bare. Lines
// are joined with "\n" and there is no trailing newline.
func Serialize(rows []map[string]any, selected []string) string {
	if len(rows) == 0 {
		return ""
	}

	flat := make([]map[string]any, len(rows))
	for i, row := range rows {
		flat[i] = Flatten(row)
	}

	headers := resolveHeaders(flat, selected)
	if len(headers) == 0 {
		return ""
	}

	lines := make([]string, 0, len(flat)+1)
	lines = append(lines, encodeLine(headers))

	record := make([]string, len(headers))
	for _, row := range flat {
		for i, h := range headers {
			record[i] = formatValue(row[h])
		}
		lines = append(lines, encodeLine(record))
	}

	return strings.Join(lines, "\n")
}

// resolveHeaders picks the output header list from the caller's selection
// and the first row's flattened keys.
func resolveHeaders(flat []map[string]any, selected []string) []string {
	present := make(map[string]bool)
	for _, row := range flat {
		for key := range row {
			present[key] = true
		}
	}

	if len(selected) > 0 {
		var headers []string
		for _, key := range selected {
			if present[key] {
				headers = append(headers, key)
			}
		}
		if len(headers) > 0 {
			return headers
		}
	}

	headers := make([]string, 0, len(flat[0]))
	for key := range flat[0] {
		headers = append(headers, key)
	}
	sort.Strings(headers)
	return headers
}

func encodeLine(fields []string) string {
	encoded := make([]string, len(fields))
	for i, f := range fields {
		encoded[i] = encodeField(f)
	}
	return strings.Join(encoded, ",")
}

// encodeField quote-wraps a value only when it contains a comma, quote,
// or newline, doubling any embedded quotes.
func encodeField(v string) string {
	if !strings.ContainsAny(v, ",\"\n") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// formatValue string-converts a flattened cell. Nil maps to the empty
// string; booleans and numbers use their Go default formatting, which
// renders JSON-decoded 12.0 as "12".
func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprintf("%v", v)
	}
}
