// Package sheettable maps header-indexed sheet rows onto structs tagged with
// `sheet:"<column header>"`.
package sheettable

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

const tagName = "sheet"

// Table is a parsed tab: cleaned header names plus data rows
type Table struct {
	Headers []string
	Rows    [][]string
}

// New splits raw values into the header row and data rows.
// Headers and cells are trimmed and stripped of wrapping quotes.
func New(values [][]string) *Table {
	if len(values) == 0 {
		return &Table{}
	}

	headers := make([]string, len(values[0]))
	for i, h := range values[0] {
		headers[i] = clean(h)
	}

	rows := make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = clean(cell)
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}
}

func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}

// Records returns each row as a header -> cell map; short rows yield empty strings
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(map[string]string, len(t.Headers))
		for i, h := range t.Headers {
			if i < len(row) {
				record[h] = row[i]
			} else {
				record[h] = ""
			}
		}
		records = append(records, record)
	}
	return records
}

// Decode maps every data row onto a T. Unknown columns are ignored and
// missing columns leave the zero value.
func Decode[T any](t *Table) ([]T, error) {
	var model T
	typ := reflect.TypeOf(model)
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("decode target must be a struct, got %s", typ.Kind())
	}

	columnIndexes := make(map[string]int, len(t.Headers))
	for i, h := range t.Headers {
		if _, dup := columnIndexes[h]; !dup {
			columnIndexes[h] = i
		}
	}

	results := make([]T, 0, len(t.Rows))
	for rowIdx, row := range t.Rows {
		result := reflect.New(typ).Elem()

		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			columnName := field.Tag.Get(tagName)
			if columnName == "" {
				continue
			}
			colIdx, ok := columnIndexes[columnName]
			if !ok || colIdx >= len(row) {
				continue
			}

			if err := setFieldValue(result.Field(i), row[colIdx]); err != nil {
				// Header is row 1 in the sheet
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+2, columnName, err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// Headers lists the column names a struct type declares, in field order
func Headers[T any]() []string {
	var model T
	typ := reflect.TypeOf(model)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	var headers []string
	for i := 0; i < typ.NumField(); i++ {
		if name := typ.Field(i).Tag.Get(tagName); name != "" {
			headers = append(headers, name)
		}
	}
	return headers
}

// MissingColumns reports which columns declared by T are absent from the table
func MissingColumns[T any](t *Table) []string {
	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[h] = true
	}

	var missing []string
	for _, h := range Headers[T]() {
		if !present[h] {
			missing = append(missing, h)
		}
	}
	return missing
}

// setFieldValue converts a cell to the field's type. Numbers that fail to
// parse leave the zero value, matching how the sheet treats blanks.
func setFieldValue(field reflect.Value, cell string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cell)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if n, ok := ParseNumber(cell); ok {
			field.SetInt(int64(n))
		}

	case reflect.Float32, reflect.Float64:
		if n, ok := ParseNumber(cell); ok {
			field.SetFloat(n)
		}

	case reflect.Bool:
		field.SetBool(ParseBoolean(cell))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// ParseNumber parses comma-grouped numbers such as "2,078,999".
// Empty or invalid input reports false.
func ParseNumber(value string) (float64, bool) {
	value = strings.TrimSpace(strings.ReplaceAll(value, ",", ""))
	if value == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseBoolean is true for "true" in any case or "1"
func ParseBoolean(value string) bool {
	return strings.EqualFold(value, "true") || value == "1"
}
