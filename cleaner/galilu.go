package cleaner

import (
	"context"

	"sellout/sales"
)

// Galilu files name products in free text and rarely carry an EAN. Names
// are resolved against the catalog and the local-currency value is kept as
// the text the reseller wrote.
type Galilu struct{}

func (Galilu) Clean(ctx context.Context, sheet *sales.RawSheet, c Context) Result {
	log := &sales.AuditLog{}
	headerRow := firstNonBlankRow(sheet)
	if headerRow < 0 {
		c.Logger.Warn("sheet is empty")
		log.Counts(sales.TransformIdentityResolution, 0, 0)
		return Result{Log: log}
	}
	rows := rowsBelow(sheet, headerRow, headerNames(sheet, headerRow))
	if len(rows) == 0 {
		log.Counts(sales.TransformIdentityResolution, 0, 0)
		return Result{Log: log}
	}

	if _, ok := sales.FindColumn(rows[0], sales.ColSalesLC); !ok {
		if column, ok := sales.FindColumn(rows[0], sales.ColSalesEUR); ok {
			for _, row := range rows {
				row.Set(sales.ColSalesLC, row.Get(column))
				row.Delete(column)
			}
			log.Value(sales.SheetLevel, column, column, sales.ColSalesLC, sales.TransformColumnRename)
		}
	}

	identifier, ok := sales.FindColumn(rows[0], sales.ColFunctionalName)
	if !ok {
		c.Logger.Warn("product name column missing, identity resolution skipped")
		log.Note(sales.TransformFilterSkipped, sales.ColFunctionalName, "product name column missing")
		return Result{Rows: rows, Log: log}
	}
	resolveIdentities(ctx, rows, identifier, c.Resolver, log)
	return Result{Rows: rows, Log: log}
}
