package cleaner

import (
	"context"

	"sellout/sales"
)

// Generic promotes the first non-blank row to header and passes every row
// below it through unchanged.
type Generic struct{}

func (Generic) Clean(_ context.Context, sheet *sales.RawSheet, c Context) Result {
	log := &sales.AuditLog{}
	headerRow := firstNonBlankRow(sheet)
	if headerRow < 0 {
		c.Logger.Warn("sheet is empty")
		log.Counts(sales.TransformHeaderDetection, 0, 0)
		return Result{Log: log}
	}

	rows := rowsBelow(sheet, headerRow, headerNames(sheet, headerRow))
	log.Counts(sales.TransformHeaderDetection, sheet.Len(), len(rows))
	return Result{Rows: rows, Log: log}
}
