package cleaner

import (
	"context"

	"sellout/sales"
)

// CurrencyText strips the reseller's currency symbols and separators from
// amount cells read as displayed text.
type CurrencyText struct {
	Symbols []string
}

func (s CurrencyText) Clean(_ context.Context, sheet *sales.RawSheet, c Context) Result {
	log := &sales.AuditLog{}
	headerRow := firstNonBlankRow(sheet)
	if headerRow < 0 {
		c.Logger.Warn("sheet is empty")
		log.Counts(sales.TransformCurrencyClean, 0, 0)
		return Result{Log: log}
	}

	rows := rowsBelow(sheet, headerRow, headerNames(sheet, headerRow))
	for _, row := range rows {
		for _, canonical := range []string{sales.ColQuantity, sales.ColSalesEUR, sales.ColSalesLC} {
			if column, ok := sales.FindColumn(row, canonical); ok {
				cleanMoney(row, column, s.Symbols, log)
			}
		}
	}
	log.Counts(sales.TransformCurrencyClean, len(rows), len(rows))
	return Result{Rows: rows, Log: log}
}
