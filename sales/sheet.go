package sales

import "strings"

// RawSheet is the untyped cell grid of one worksheet. Rows may have
// different lengths; a missing position is the same as a blank cell.
type RawSheet struct {
	Name string
	Rows [][]string
}

// Cell returns the trimmed value at (row, col) and whether it is non-blank.
func (s *RawSheet) Cell(row, col int) (string, bool) {
	if s == nil || row < 0 || row >= len(s.Rows) || col < 0 {
		return "", false
	}
	cells := s.Rows[row]
	if col >= len(cells) {
		return "", false
	}
	value := strings.TrimSpace(cells[col])
	return value, value != ""
}

// Width returns the length of the longest row.
func (s *RawSheet) Width() int {
	if s == nil {
		return 0
	}
	width := 0
	for _, row := range s.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}

// Len returns the number of rows in the grid.
func (s *RawSheet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Rows)
}

// RowBlank reports whether every cell of the row is blank.
func (s *RawSheet) RowBlank(row int) bool {
	if s == nil || row < 0 || row >= len(s.Rows) {
		return true
	}
	for _, cell := range s.Rows[row] {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
