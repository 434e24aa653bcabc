package importer

import (
	"github.com/xuri/excelize/v2"

	"sellout/reseller"
	"sellout/sales"
)

type excelWorkbook struct {
	path string
	file *excelize.File
}

func openExcel(path string) (*excelWorkbook, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, malformed("open excel file %s: %v", path, err)
	}
	return &excelWorkbook{path: path, file: file}, nil
}

func (w *excelWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// ReadSheet returns the cell grid. Raw cells carry stored values, so numbers
// come back without thousands separators or currency formats; text cells
// are what the workbook displays.
func (w *excelWorkbook) ReadSheet(name string, policy reseller.CellPolicy) (*sales.RawSheet, error) {
	var options []excelize.Options
	if policy != reseller.CellsText {
		options = append(options, excelize.Options{RawCellValue: true})
	}
	rows, err := w.file.GetRows(name, options...)
	if err != nil {
		return nil, malformed("read rows from sheet %s in %s: %v", name, w.path, err)
	}
	return &sales.RawSheet{Name: name, Rows: rows}, nil
}

func (w *excelWorkbook) Close() error {
	return w.file.Close()
}
