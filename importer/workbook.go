package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sellout/reseller"
	"sellout/sales"
)

// ErrMalformedInput marks a workbook that cannot be read at all. It is the
// only error the pipeline returns; every other problem degrades rows.
var ErrMalformedInput = errors.New("malformed input")

// Workbook is an opened spreadsheet file.
type Workbook interface {
	SheetNames() []string
	ReadSheet(name string, policy reseller.CellPolicy) (*sales.RawSheet, error)
	Close() error
}

// SupportedExtensions lists the file extensions OpenWorkbook accepts.
func SupportedExtensions() []string {
	return []string{".xlsx", ".xlsm", ".xls", ".csv"}
}

// OpenWorkbook opens the file with the reader matching its extension.
func OpenWorkbook(path string) (Workbook, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return openExcel(path)
	case ".xls":
		return openXLS(path)
	case ".csv":
		return openCSV(path)
	default:
		return nil, fmt.Errorf("%w: unsupported file extension %q for %s", ErrMalformedInput, ext, path)
	}
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedInput, fmt.Sprintf(format, args...))
}
