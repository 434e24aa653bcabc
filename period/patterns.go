// Package period extracts the reporting month of a sell-out file from its
// filename and, for some resellers, from a fixed cell of the sheet.
package period

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"sellout/internal/timeutil"
	"sellout/sales"
)

// Pattern is one way of reading a (year, month) pair. Match reports ok only
// when the pattern was found; the values are validated by the caller.
type Pattern struct {
	Name  string
	Match func(name string, sheet *sales.RawSheet) (year, month int, ok bool)
}

var (
	monthAbbrevYearRe = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)(\d{4})`)
	reportPeriodRe    = regexp.MustCompile(`(?i)ReportPeriod(\d{2})-(\d{4})`)
	dayMonthYearRe    = regexp.MustCompile(`(\d{2})[-_](\d{2})[-_](\d{4})`)
	digitRunRe        = regexp.MustCompile(`\d+`)
	yearMonthSpaceRe  = regexp.MustCompile(`(?:^|\D)(\d{4})\s+(\d{1,2})(?:\D|$)`)
	yearMonthNameRe   = regexp.MustCompile(`^(\d{4})\s+([A-Za-z]+)$`)
	monthQuoteYearRe  = regexp.MustCompile(`([A-Za-z]+)\s*['’‘](\d{2})(?:\D|$)`)
)

// MonthAbbrevYear matches a 3-letter month directly followed by the year,
// as in "APR2025".
var MonthAbbrevYear = Pattern{
	Name: "month_abbrev_year",
	Match: func(name string, _ *sales.RawSheet) (int, int, bool) {
		match := monthAbbrevYearRe.FindStringSubmatch(name)
		if match == nil {
			return 0, 0, false
		}
		month, _ := timeutil.MonthFromAbbrev(match[1])
		year, _ := strconv.Atoi(match[2])
		return year, int(month), true
	},
}

// ReportPeriod matches the literal token "ReportPeriodMM-YYYY".
var ReportPeriod = Pattern{
	Name: "report_period",
	Match: func(name string, _ *sales.RawSheet) (int, int, bool) {
		match := reportPeriodRe.FindStringSubmatch(name)
		if match == nil {
			return 0, 0, false
		}
		month, _ := strconv.Atoi(match[1])
		year, _ := strconv.Atoi(match[2])
		return year, month, true
	},
}

// DayMonthYear matches "DD-MM-YYYY" or "DD_MM_YYYY"; the day is discarded.
var DayMonthYear = Pattern{
	Name: "day_month_year",
	Match: func(name string, _ *sales.RawSheet) (int, int, bool) {
		match := dayMonthYearRe.FindStringSubmatch(name)
		if match == nil {
			return 0, 0, false
		}
		month, _ := strconv.Atoi(match[2])
		year, _ := strconv.Atoi(match[3])
		return year, month, true
	},
}

// FreeText matches a 4-digit year and an English month name, full or
// abbreviated, anywhere in the name. The year is the first 4-digit run in
// 2000..2100, so store numbers and similar codes are skipped.
var FreeText = Pattern{
	Name: "free_text",
	Match: func(name string, _ *sales.RawSheet) (int, int, bool) {
		year, ok := freeTextYear(name)
		if !ok {
			return 0, 0, false
		}
		words := strings.FieldsFunc(name, func(r rune) bool { return !unicode.IsLetter(r) })
		for _, word := range words {
			if month, ok := timeutil.MonthFromName(word); ok {
				return year, int(month), true
			}
		}
		return 0, 0, false
	},
}

func freeTextYear(name string) (int, bool) {
	for _, run := range digitRunRe.FindAllString(name, -1) {
		if len(run) != 4 {
			continue
		}
		if year, _ := strconv.Atoi(run); year >= 2000 && year <= 2100 {
			return year, true
		}
	}
	return 0, false
}

// YearMonthSpace matches "YYYY MM". When the name has no such token it reads
// cell B2 of the sheet, formatted "YYYY MonthName".
var YearMonthSpace = Pattern{
	Name: "year_month_space",
	Match: func(name string, sheet *sales.RawSheet) (int, int, bool) {
		if match := yearMonthSpaceRe.FindStringSubmatch(name); match != nil {
			year, _ := strconv.Atoi(match[1])
			month, _ := strconv.Atoi(match[2])
			return year, month, true
		}
		cell, ok := sheet.Cell(1, 1)
		if !ok {
			return 0, 0, false
		}
		match := yearMonthNameRe.FindStringSubmatch(cell)
		if match == nil {
			return 0, 0, false
		}
		month, ok := timeutil.MonthFromName(match[2])
		if !ok {
			return 0, 0, false
		}
		year, _ := strconv.Atoi(match[1])
		return year, int(month), true
	},
}

// MonthQuoteYear matches "March'25" or "Mar'25"; the year is 2000+YY.
var MonthQuoteYear = Pattern{
	Name: "month_quote_year",
	Match: func(name string, _ *sales.RawSheet) (int, int, bool) {
		for _, match := range monthQuoteYearRe.FindAllStringSubmatch(name, -1) {
			month, ok := timeutil.MonthFromName(match[1])
			if !ok {
				continue
			}
			yy, _ := strconv.Atoi(match[2])
			return 2000 + yy, int(month), true
		}
		return 0, 0, false
	},
}

// AllPatterns lists every pattern in the order the generic reseller tries them.
func AllPatterns() []Pattern {
	return []Pattern{ReportPeriod, MonthAbbrevYear, DayMonthYear, MonthQuoteYear, YearMonthSpace, FreeText}
}
