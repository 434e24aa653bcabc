package cleaner

import (
	"context"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"sellout/internal/timeutil"
	"sellout/sales"
)

// Unpivot melts a wide sheet with one column per month into one row per
// (record, month). Summary rows whose first column mentions "total" are
// dropped first, as are summary columns after the last month column.
type Unpivot struct{}

func (Unpivot) Clean(_ context.Context, sheet *sales.RawSheet, c Context) Result {
	log := &sales.AuditLog{}
	headerRow := firstNonBlankRow(sheet)
	if headerRow < 0 {
		c.Logger.Warn("sheet is empty")
		log.Counts(sales.TransformUnpivot, 0, 0)
		return Result{Log: log}
	}
	headers := headerNames(sheet, headerRow)

	all := rowsBelow(sheet, headerRow, headers)
	var rows []sales.Row
	for _, row := range all {
		if first, _ := sheet.Cell(row.Source, 0); containsFold(first, "total") {
			continue
		}
		rows = append(rows, row)
	}
	log.Counts(sales.TransformFilter, len(all), len(rows))

	end := len(headers)
	for end > 0 && summaryHeader(sheet.Rows[headerRow][end-1]) {
		log.Note(sales.TransformColumnDropped, headers[end-1], "summary column")
		end--
	}

	firstMonth := end
	for firstMonth > 0 {
		if _, ok := timeutil.MonthPrefix(sheet.Rows[headerRow][firstMonth-1]); !ok {
			break
		}
		firstMonth--
	}
	if firstMonth == end {
		c.Logger.Warn("no month columns found, rows kept wide")
		log.Note(sales.TransformFilterSkipped, "", "no month columns")
		return Result{Rows: rows, Log: log}
	}

	var melted []sales.Row
	for _, row := range rows {
		for col := firstMonth; col < end; col++ {
			month, _ := timeutil.MonthPrefix(sheet.Rows[headerRow][col])
			out := sales.NewRow(row.Source)
			for idCol := 0; idCol < firstMonth; idCol++ {
				out.Set(headers[idCol], row.Get(headers[idCol]))
			}
			out.Set(sales.ColYear, strconv.Itoa(c.Period.Year))
			out.Set(sales.ColMonth, strconv.Itoa(int(month)))
			out.Set(sales.ColQuantity, row.Get(headers[col]))
			melted = append(melted, out)
		}
	}

	c.Logger.WithFields(logrus.Fields{"month_columns": end - firstMonth, "rows_before": len(rows), "rows_after": len(melted)}).Debug("unpivoted")
	log.Counts(sales.TransformUnpivot, len(rows), len(melted))
	return Result{Rows: melted, Log: log}
}

func summaryHeader(cell string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	return strings.Contains(cell, "total") || cell == "sum" || cell == "ytd"
}
