package cleaner

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"sellout/internal/timeutil"
	"sellout/sales"
)

const ukraineHeaderScan = 10

var (
	ukraineEANHeaders  = []string{"штрихкод", "ean", "barcode"}
	ukraineNameHeaders = []string{"номенклатура", "найменування", "назва", "товар", "name", "product"}
	ukraineTotalCells  = []string{"всього", "разом", "total"}
	// Written-out dates plus the forms excelize displays for date cells
	// (mmm-yy, mm-dd-yy, m/d/yy h:mm).
	ukraineDateLayouts = []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"02.01.2006",
		"01/02/2006",
		"1/2/06",
		"Jan-06",
		"Jan-2006",
		"January-06",
		"01-02-06",
		"1/2/06 15:04",
	}
)

// Ukraine reads a pivot whose month columns are headed by Ukrainian month
// names or dates. The column of the reporting month holds the quantity.
type Ukraine struct{}

func (Ukraine) Clean(_ context.Context, sheet *sales.RawSheet, c Context) Result {
	log := &sales.AuditLog{}
	if firstNonBlankRow(sheet) < 0 {
		c.Logger.Warn("sheet is empty")
		log.Counts(sales.TransformHeaderDetection, 0, 0)
		return Result{Log: log}
	}

	headerRow := ukraineHeaderRow(sheet)
	header := sheet.Rows[headerRow]
	target, how := ukraineTargetColumn(sheet, headerRow, c.Period)
	if target < 0 {
		c.Logger.WithField("header_row", headerRow).Warn("reporting month column not found")
		log.Note(sales.TransformHeaderDetection, "", "reporting month column not found")
		return Result{Log: log}
	}
	log.Value(sales.SheetLevel, cellAt(header, target), strconv.Itoa(headerRow), how, sales.TransformHeaderDetection)
	c.Logger.WithFields(logrus.Fields{"header_row": headerRow, "column": target, "match": how}).Debug("reporting month column located")

	eanCol := findHeader(header, ukraineEANHeaders)
	nameCol := findHeader(header, ukraineNameHeaders)

	var (
		rows    []sales.Row
		scanned int
	)
	for i := headerRow + 1; i < sheet.Len(); i++ {
		if sheet.RowBlank(i) {
			continue
		}
		scanned++
		cells := sheet.Rows[i]
		if rowContains(cells, ukraineTotalCells...) {
			continue
		}

		row := sales.NewRow(i)
		if eanCol >= 0 {
			row.Set(sales.ColProductEAN, numericIdentifier(cellAt(cells, eanCol)))
		}
		if nameCol >= 0 {
			row.Set(sales.ColFunctionalName, cellAt(cells, nameCol))
		}
		row.Set(sales.ColQuantity, cellAt(cells, target))
		row.Set(sales.ColYear, strconv.Itoa(c.Period.Year))
		row.Set(sales.ColMonth, strconv.Itoa(c.Period.Month))
		rows = append(rows, row)
	}
	log.Counts(sales.TransformFilter, scanned, len(rows))
	return Result{Rows: rows, Log: log}
}

// ukraineHeaderRow is the first of the top rows that names a barcode
// column, or the first row.
func ukraineHeaderRow(sheet *sales.RawSheet) int {
	for i := 0; i < sheet.Len() && i < ukraineHeaderScan; i++ {
		if rowContains(sheet.Rows[i], ukraineEANHeaders...) {
			return i
		}
	}
	return 0
}

// ukraineTargetColumn locates the reporting month column. Criteria are tried
// in a fixed order, each over the whole header row: exact Ukrainian month
// name, date value of the same month, ISO substring, a value in the first
// sheet row, then alternate spellings.
func ukraineTargetColumn(sheet *sales.RawSheet, headerRow int, p sales.Period) (int, string) {
	header := sheet.Rows[headerRow]
	month := time.Month(p.Month)
	exact := strings.ToLower(fmt.Sprintf("%s %d", timeutil.UkrainianMonth(month), p.Year))
	iso := fmt.Sprintf("%04d-%02d", p.Year, p.Month)

	if col := scanHeader(header, func(cell string) bool { return strings.ToLower(cell) == exact }); col >= 0 {
		return col, "exact"
	}
	if col := scanHeader(header, func(cell string) bool { return sameMonth(cell, p) }); col >= 0 {
		return col, "date"
	}
	if col := scanHeader(header, func(cell string) bool { return strings.Contains(cell, iso) }); col >= 0 {
		return col, "iso_substring"
	}
	if headerRow > 0 {
		firstRow := sheet.Rows[0]
		if col := scanHeader(firstRow, func(cell string) bool {
			return strings.ToLower(cell) == exact || sameMonth(cell, p) || strings.Contains(cell, iso)
		}); col >= 0 {
			return col, "first_row"
		}
	}

	alternates := []string{
		fmt.Sprintf("%02d.%04d", p.Month, p.Year),
		fmt.Sprintf("%02d/%04d", p.Month, p.Year),
		strings.ToLower(fmt.Sprintf("%s %d", month, p.Year)),
		strings.ToLower(fmt.Sprintf("%.3s %d", month, p.Year)),
		strings.ToLower(fmt.Sprintf("%.3s-%02d", month, p.Year%100)),
		strings.ToLower(fmt.Sprintf("%s %d", timeutil.UkrainianMonthGenitive(month), p.Year)),
	}
	for _, alternate := range alternates {
		if col := scanHeader(header, func(cell string) bool { return strings.Contains(strings.ToLower(cell), alternate) }); col >= 0 {
			return col, "alternate"
		}
	}
	return -1, ""
}

func scanHeader(cells []string, match func(string) bool) int {
	for col, cell := range cells {
		cell = strings.TrimSpace(cell)
		if cell != "" && match(cell) {
			return col
		}
	}
	return -1
}

func findHeader(cells []string, needles []string) int {
	for _, needle := range needles {
		if col := scanHeader(cells, func(cell string) bool { return containsFold(cell, needle) }); col >= 0 {
			return col
		}
	}
	return -1
}

// sameMonth reports whether the cell is a date, written out or as an Excel
// serial number, that falls in the period.
func sameMonth(cell string, p sales.Period) bool {
	for _, layout := range ukraineDateLayouts {
		if parsed, err := time.Parse(layout, cell); err == nil {
			return parsed.Year() == p.Year && int(parsed.Month()) == p.Month
		}
	}
	serial, err := strconv.ParseFloat(cell, 64)
	if err != nil || serial < 20000 || serial > 80000 {
		return false
	}
	parsed := timeutil.ExcelSerialToTime(serial)
	return parsed.Year() == p.Year && int(parsed.Month()) == p.Month
}
