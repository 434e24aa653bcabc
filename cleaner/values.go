package cleaner

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"sellout/sales"
)

// Symbol sets stripped from money cells before numeric coercion.
var (
	eurSymbols = []string{"€", "EUR"}
	gbpSymbols = []string{"£", "GBP", ","}
	zarSymbols = []string{"ZAR", "R", ","}
)

var (
	thirteenDigits = regexp.MustCompile(`^\d{13}$`)
	plainNumber    = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
)

// parseNumber coerces a cell to a decimal after removing the given symbols
// and whitespace. Parentheses denote a negative amount. When no symbol set
// removed the commas, a single comma is a decimal separator and mixed
// separators are resolved by whichever comes last.
func parseNumber(raw string, symbols []string) (decimal.Decimal, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return decimal.Decimal{}, false
	}
	for _, symbol := range symbols {
		value = strings.ReplaceAll(value, symbol, "")
	}
	value = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\u202f', '\t', '\'':
			return -1
		}
		return r
	}, value)

	negative := false
	if strings.HasPrefix(value, "(") && strings.HasSuffix(value, ")") {
		negative = true
		value = strings.TrimSuffix(strings.TrimPrefix(value, "("), ")")
	}

	lastComma := strings.LastIndex(value, ",")
	lastDot := strings.LastIndex(value, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0 && lastComma > lastDot:
		value = strings.ReplaceAll(value, ".", "")
		value = strings.Replace(value, ",", ".", 1)
	case lastComma >= 0 && lastDot >= 0:
		value = strings.ReplaceAll(value, ",", "")
	case strings.Count(value, ",") == 1:
		value = strings.Replace(value, ",", ".", 1)
	case lastComma >= 0:
		value = strings.ReplaceAll(value, ",", "")
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if negative {
		parsed = parsed.Neg()
	}
	return parsed, true
}

// ParseAmount coerces a cell written with euro conventions: optional euro
// sign, either decimal separator, thousands separators.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	return parseNumber(raw, eurSymbols)
}

// cleanMoney rewrites the money cell of a row in place. Unparseable text is
// left untouched and logged; it is never replaced by zero.
func cleanMoney(row sales.Row, column string, symbols []string, log *sales.AuditLog) {
	if !row.Has(column) {
		return
	}
	original := row.Get(column)
	if original == "" {
		return
	}
	parsed, ok := parseNumber(original, symbols)
	if !ok {
		log.Value(row.Source, column, original, original, sales.TransformCurrencyUnparsed)
		return
	}
	cleaned := parsed.String()
	if cleaned != original {
		row.Set(column, cleaned)
		log.Value(row.Source, column, original, cleaned, sales.TransformCurrencyClean)
	}
}

// isZero reports whether the cell is blank or numerically zero.
func isZero(raw string) bool {
	parsed, ok := parseNumber(raw, eurSymbols)
	if !ok {
		return strings.TrimSpace(raw) == ""
	}
	return parsed.IsZero()
}

// numericIdentifier renders identifiers that were stored as numbers, such as
// "7.350109270011E12" or "7350109270011.0", as plain digits.
func numericIdentifier(raw string) string {
	value := strings.TrimSpace(raw)
	if value == "" || plainNumber.MatchString(value) && !strings.Contains(value, ".") {
		return value
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed < 0 || parsed != math.Trunc(parsed) || parsed > 1e15 {
		return value
	}
	return strconv.FormatFloat(parsed, 'f', 0, 64)
}

func containsFold(value string, needles ...string) bool {
	lower := strings.ToLower(value)
	for _, needle := range needles {
		if strings.Contains(lower, needle) {
			return true
		}
	}
	return false
}

func rowContains(cells []string, needles ...string) bool {
	for _, cell := range cells {
		if containsFold(cell, needles...) {
			return true
		}
	}
	return false
}

func cellAt(cells []string, col int) string {
	if col < 0 || col >= len(cells) {
		return ""
	}
	return strings.TrimSpace(cells[col])
}
