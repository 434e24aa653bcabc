package cleaner

import (
	"strconv"
	"strings"

	"sellout/sales"
)

// firstNonBlankRow returns the index of the first row with content, or -1.
func firstNonBlankRow(sheet *sales.RawSheet) int {
	for i := 0; i < sheet.Len(); i++ {
		if !sheet.RowBlank(i) {
			return i
		}
	}
	return -1
}

// headerNames returns the header cells of a row, naming blank or repeated
// cells by position so every column keeps a distinct key.
func headerNames(sheet *sales.RawSheet, headerRow int) []string {
	if headerRow < 0 || headerRow >= sheet.Len() {
		return nil
	}
	cells := sheet.Rows[headerRow]
	names := make([]string, len(cells))
	seen := make(map[string]bool, len(cells))
	for i := range cells {
		name := strings.TrimSpace(cells[i])
		key := sales.NormalizeHeader(name)
		if key == "" || seen[key] {
			name = "column_" + strconv.Itoa(i+1)
			key = sales.NormalizeHeader(name)
		}
		seen[key] = true
		names[i] = name
	}
	return names
}

// rowsBelow builds one row per non-blank sheet row after the header, keyed
// by the header names.
func rowsBelow(sheet *sales.RawSheet, headerRow int, headers []string) []sales.Row {
	var rows []sales.Row
	for i := headerRow + 1; i < sheet.Len(); i++ {
		if sheet.RowBlank(i) {
			continue
		}
		row := sales.NewRow(i)
		for col, header := range headers {
			value, _ := sheet.Cell(i, col)
			row.Set(header, value)
		}
		rows = append(rows, row)
	}
	return rows
}

func hasHeader(headers []string, name string) bool {
	key := sales.NormalizeHeader(name)
	for _, header := range headers {
		if sales.NormalizeHeader(header) == key {
			return true
		}
	}
	return false
}
