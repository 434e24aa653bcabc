package cleaner

import (
	"context"
	"strconv"

	"github.com/sirupsen/logrus"

	"sellout/sales"
)

// PivotLayout locates the fields of a pre-aggregated pivot export. HeaderRow
// is 0-based; QtyFromEnd and SalesFromEnd count back from the last header
// column, 1 being the last.
type PivotLayout struct {
	HeaderRow    int
	IDCol        int
	DescCol      int
	QtyFromEnd   int
	SalesFromEnd int
}

// Pivot reads the totals of a pivot table as they are, without recomputing
// them from the month columns.
type Pivot struct {
	Layout PivotLayout
}

func (p Pivot) Clean(_ context.Context, sheet *sales.RawSheet, c Context) Result {
	log := &sales.AuditLog{}
	layout := p.Layout

	if layout.HeaderRow >= sheet.Len() {
		c.Logger.WithField("header_row", layout.HeaderRow).Warn("sheet shorter than pivot header row")
		log.Counts(sales.TransformAggregation, sheet.Len(), 0)
		return Result{Log: log}
	}
	header := sheet.Rows[layout.HeaderRow]
	width := len(header)
	qtyCol := width - layout.QtyFromEnd
	salesCol := width - layout.SalesFromEnd
	if qtyCol < 0 || salesCol < 0 || qtyCol <= layout.DescCol {
		c.Logger.WithField("width", width).Warn("pivot header too narrow")
		log.Counts(sales.TransformAggregation, sheet.Len(), 0)
		return Result{Log: log}
	}
	log.Value(sales.SheetLevel, "", strconv.Itoa(layout.HeaderRow), cellAt(header, layout.IDCol), sales.TransformHeaderDetection)

	var (
		rows    []sales.Row
		scanned int
	)
	for i := layout.HeaderRow + 1; i < sheet.Len(); i++ {
		if sheet.RowBlank(i) {
			continue
		}
		scanned++
		cells := sheet.Rows[i]

		rawID := cellAt(cells, layout.IDCol)
		id := numericIdentifier(rawID)
		if !thirteenDigits.MatchString(id) {
			continue
		}
		qty := cellAt(cells, qtyCol)
		amount := cellAt(cells, salesCol)
		if isZero(qty) && isZero(amount) {
			continue
		}
		if id != rawID {
			log.Value(i, sales.ColProductEAN, rawID, id, sales.TransformEANPad)
		}

		row := sales.NewRow(i)
		row.Set(sales.ColProductEAN, id)
		row.Set(sales.ColFunctionalName, cellAt(cells, layout.DescCol))
		row.Set(sales.ColQuantity, qty)
		row.Set(sales.ColSalesEUR, amount)
		cleanMoney(row, sales.ColSalesEUR, eurSymbols, log)
		rows = append(rows, row)
	}

	c.Logger.WithFields(logrus.Fields{"rows_before": scanned, "rows_after": len(rows)}).Debug("pivot totals read")
	log.Counts(sales.TransformAggregation, scanned, len(rows))
	return Result{Rows: rows, Log: log}
}
