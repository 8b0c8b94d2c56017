package csvio

import (
	"bytes"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrTooShort is returned when a CSV file has fewer than two non-blank
// lines; a header plus at least one data row is required.
var ErrTooShort = errors.New("csv: need a header line and at least one data row")

var lineBreak = regexp.MustCompile(`\r?\n`)

// Parse decodes CSV text into one string-keyed mapping per data row, in
// file order. Blank lines are discarded before counting. The tokenizer is
// deliberately more permissive than strict RFC 4180: fields are trimmed
// of surrounding whitespace, a stray quote mid-field toggles quote mode
// instead of failing, and rows shorter than the header are padded with
// empty strings.
//
// Lines are split before tokenizing, so a newline inside a quoted field
// starts a new row rather than continuing the current one.
func Parse(text string) ([]map[string]string, error) {
	var lines []string
	for _, line := range lineBreak.Split(text, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) < 2 {
		return nil, ErrTooShort
	}

	headers := splitLine(lines[0])

	rows := make([]map[string]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		values := splitLine(line)
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(values) {
				row[h] = values[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// splitLine tokenizes one CSV line. Inside a quoted field a doubled quote
// is a literal quote and any other quote toggles quote mode; a comma
// outside quote mode ends the field. Fields are trimmed of surrounding
// whitespace.
func splitLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// SanitizeUTF8 replaces invalid UTF-8 sequences in uploaded file bytes
// with the replacement character so downstream parsing sees valid text.
// Valid input is returned unchanged without copying.
func SanitizeUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}

	var buf bytes.Buffer
	buf.Grow(len(data))

	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			buf.WriteRune('�')
			data = data[1:]
		} else {
			buf.WriteRune(r)
			data = data[size:]
		}
	}

	return buf.Bytes()
}
