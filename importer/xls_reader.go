package importer

import (
	"github.com/shakinm/xlsReader/xls"

	"sellout/reseller"
	"sellout/sales"
)

// xlsWorkbook reads legacy BIFF workbooks. The library keeps the whole file
// in memory, so sheets are materialized on open.
type xlsWorkbook struct {
	path   string
	names  []string
	sheets map[string][][]string
}

func openXLS(path string) (*xlsWorkbook, error) {
	workbook, err := xls.OpenFile(path)
	if err != nil {
		return nil, malformed("open xls file %s: %v", path, err)
	}

	out := &xlsWorkbook{path: path, sheets: make(map[string][][]string)}
	for index := 0; index < workbook.GetNumberSheets(); index++ {
		sheet, err := workbook.GetSheet(index)
		if err != nil || sheet == nil {
			continue
		}

		var rows [][]string
		for i := 0; i <= int(sheet.GetNumberRows()); i++ {
			row, err := sheet.GetRow(i)
			if err != nil || row == nil {
				rows = append(rows, nil)
				continue
			}
			cells := make([]string, 0, len(row.GetCols()))
			for _, col := range row.GetCols() {
				if col == nil {
					cells = append(cells, "")
					continue
				}
				cells = append(cells, col.GetString())
			}
			rows = append(rows, cells)
		}

		name := sheet.GetName()
		out.names = append(out.names, name)
		out.sheets[name] = rows
	}
	return out, nil
}

func (w *xlsWorkbook) SheetNames() []string {
	return append([]string(nil), w.names...)
}

// ReadSheet ignores the cell policy: BIFF cells are always read as the
// library renders them.
func (w *xlsWorkbook) ReadSheet(name string, _ reseller.CellPolicy) (*sales.RawSheet, error) {
	rows, ok := w.sheets[name]
	if !ok {
		return nil, malformed("sheet %s not found in %s", name, w.path)
	}
	return &sales.RawSheet{Name: name, Rows: rows}, nil
}

func (w *xlsWorkbook) Close() error {
	return nil
}
