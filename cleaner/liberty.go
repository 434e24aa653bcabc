package cleaner

import (
	"context"

	"sellout/sales"
)

// Fixed 0-based column positions of the Liberty item report.
const (
	libertySecondaryCol = 1
	libertyDescCol      = 2
	libertyQtyCol       = 5
	libertySalesCol     = 6
)

// Liberty reads the item report by column position. Rows mentioning a total
// are dropped, returns without money are dropped, missing descriptions are
// recovered from neighbouring rows, adjacent duplicates are collapsed and
// descriptions are resolved against the catalog.
type Liberty struct{}

type libertyLine struct {
	row       sales.Row
	secondary string
}

func (Liberty) Clean(ctx context.Context, sheet *sales.RawSheet, c Context) Result {
	log := &sales.AuditLog{}
	if sheet.Len() < 2 {
		c.Logger.Warn("sheet has no data rows")
		log.Counts(sales.TransformFilter, sheet.Len(), 0)
		return Result{Log: log}
	}

	var (
		lines   []libertyLine
		scanned int
	)
	for i := 1; i < sheet.Len(); i++ {
		if sheet.RowBlank(i) {
			continue
		}
		scanned++
		cells := sheet.Rows[i]
		if rowContains(cells, "total") {
			continue
		}

		row := sales.NewRow(i)
		if qty := cellAt(cells, libertyQtyCol); qty != "" {
			row.Set(sales.ColQuantity, qty)
			cleanMoney(row, sales.ColQuantity, gbpSymbols, log)
		}
		if amount := cellAt(cells, libertySalesCol); amount != "" {
			row.Set(sales.ColSalesEUR, amount)
			cleanMoney(row, sales.ColSalesEUR, gbpSymbols, log)
		}
		if !keepLibertyQuantity(row) {
			continue
		}
		row.Set(sales.ColFunctionalName, cellAt(cells, libertyDescCol))
		lines = append(lines, libertyLine{row: row, secondary: cellAt(cells, libertySecondaryCol)})
	}
	log.Counts(sales.TransformFilter, scanned, len(lines))

	recoverDescriptions(lines, log)

	rows := make([]sales.Row, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, line.row)
	}
	rows = dedupAdjacent(rows, sales.ColFunctionalName, log)
	resolveIdentities(ctx, rows, sales.ColFunctionalName, c.Resolver, log)
	return Result{Rows: rows, Log: log}
}

// keepLibertyQuantity drops zero or negative quantities unless the row
// carries a non-zero amount. Rows with an unreadable quantity are left for
// the common pass to judge.
func keepLibertyQuantity(row sales.Row) bool {
	qty, ok := parseNumber(row.Get(sales.ColQuantity), nil)
	if !ok || qty.IsPositive() {
		return true
	}
	amount, ok := parseNumber(row.Get(sales.ColSalesEUR), nil)
	return ok && !amount.IsZero()
}

// recoverDescriptions fills blank descriptions from the next line, then the
// previous line, when both carry the same quantity and amount, and finally
// from the secondary description column.
func recoverDescriptions(lines []libertyLine, log *sales.AuditLog) {
	for i := range lines {
		row := lines[i].row
		if row.Get(sales.ColFunctionalName) != "" {
			continue
		}

		recovered := ""
		for _, j := range []int{i + 1, i - 1} {
			if j < 0 || j >= len(lines) {
				continue
			}
			other := lines[j].row
			if other.Get(sales.ColFunctionalName) != "" &&
				other.Get(sales.ColQuantity) == row.Get(sales.ColQuantity) &&
				other.Get(sales.ColSalesEUR) == row.Get(sales.ColSalesEUR) {
				recovered = other.Get(sales.ColFunctionalName)
				break
			}
		}
		if recovered == "" {
			recovered = lines[i].secondary
		}
		if recovered != "" {
			row.Set(sales.ColFunctionalName, recovered)
			log.Value(row.Source, sales.ColFunctionalName, "", recovered, sales.TransformDescriptionRecover)
		}
	}
}
