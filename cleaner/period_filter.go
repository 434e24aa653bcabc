package cleaner

import (
	"context"
	"strconv"
	"strings"

	"sellout/internal/timeutil"
	"sellout/sales"
)

var periodFilterRenames = []struct {
	from, to string
}{
	{"Article description", sales.ColFunctionalName},
	{"Sales Qty", sales.ColQuantity},
	{"Net Sales", sales.ColSalesEUR},
	{"Year", sales.ColYear},
	{"Month", sales.ColMonth},
	{"EAN", sales.ColProductEAN},
}

// PeriodFilter renames the reseller's columns and keeps only the rows of the
// reporting month. Files without period columns are kept whole.
type PeriodFilter struct{}

func (PeriodFilter) Clean(_ context.Context, sheet *sales.RawSheet, c Context) Result {
	log := &sales.AuditLog{}
	headerRow := firstNonBlankRow(sheet)
	if headerRow < 0 {
		c.Logger.Warn("sheet is empty")
		log.Counts(sales.TransformFilter, 0, 0)
		return Result{Log: log}
	}

	headers := headerNames(sheet, headerRow)
	for i, header := range headers {
		for _, rename := range periodFilterRenames {
			if sales.NormalizeHeader(header) == sales.NormalizeHeader(rename.from) && header != rename.to {
				log.Value(sales.SheetLevel, header, header, rename.to, sales.TransformColumnRename)
				headers[i] = rename.to
				break
			}
		}
	}
	rows := rowsBelow(sheet, headerRow, headers)

	if !hasHeader(headers, sales.ColYear) || !hasHeader(headers, sales.ColMonth) {
		c.Logger.Warn("period columns missing, filter skipped")
		log.Note(sales.TransformFilterSkipped, "year/month", "period columns missing")
		return Result{Rows: rows, Log: log}
	}

	var kept []sales.Row
	for _, row := range rows {
		year, yearErr := strconv.Atoi(numericIdentifier(row.Get(sales.ColYear)))
		month, ok := parseMonthCell(row.Get(sales.ColMonth))
		if yearErr == nil && ok && year == c.Period.Year && month == c.Period.Month {
			kept = append(kept, row)
		}
	}
	log.Counts(sales.TransformFilter, len(rows), len(kept))
	return Result{Rows: kept, Log: log}
}

// parseMonthCell accepts a month number or an English month name.
func parseMonthCell(raw string) (int, bool) {
	value := strings.TrimSpace(raw)
	if month, err := strconv.Atoi(numericIdentifier(value)); err == nil {
		return month, month >= 1 && month <= 12
	}
	if month, ok := timeutil.MonthFromName(value); ok {
		return int(month), true
	}
	return 0, false
}
