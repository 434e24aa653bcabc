package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type ExcelWriter struct {
	// SheetName replaces the default first sheet name when set.
	SheetName string
}

func (w *ExcelWriter) Write(path string, table Table) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if w.SheetName != "" && w.SheetName != sheet {
		if err := file.SetSheetName(sheet, w.SheetName); err != nil {
			return fmt.Errorf("rename excel sheet: %w", err)
		}
		sheet = w.SheetName
	}

	for col, header := range table.Headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, values := range table.Rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := make([]any, len(values))
		for col, value := range values {
			row[col] = value
		}
		if err := file.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("set excel row %s: %w", cell, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
