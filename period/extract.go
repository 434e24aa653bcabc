package period

import (
	"path/filepath"
	"strings"

	"sellout/sales"
)

// Result is the outcome of one extraction.
type Result struct {
	Period    sales.Period
	Pattern   string
	Defaulted bool
	// Rejected holds the out-of-range value a pattern produced, if any.
	Rejected *sales.Period
}

// Extractor reads the reporting month for one reseller.
type Extractor struct {
	Patterns []Pattern
	Default  sales.Period
}

var extractors = map[string]Extractor{
	"boxnox":     {Patterns: []Pattern{MonthAbbrevYear}, Default: sales.Period{Year: 2025, Month: 4}},
	"aromateque": {Patterns: []Pattern{FreeText}, Default: sales.Period{Year: 2025, Month: 1}},
	"skins_nl":   {Patterns: []Pattern{DayMonthYear}, Default: sales.Period{Year: 2025, Month: 1}},
	"skins_sa":   {Patterns: []Pattern{FreeText}, Default: sales.Period{Year: 2025, Month: 2}},
	"cdlc":       {Patterns: []Pattern{ReportPeriod}, Default: sales.Period{Year: 2025, Month: 2}},
	"selfridges": {Patterns: []Pattern{YearMonthSpace}, Default: sales.Period{Year: 2025, Month: 1}},
	"liberty":    {Patterns: []Pattern{DayMonthYear}, Default: sales.Period{Year: 2025, Month: 1}},
	"galilu":     {Patterns: []Pattern{MonthQuoteYear}, Default: sales.Period{Year: 2025, Month: 3}},
	"ukraine":    {Patterns: []Pattern{MonthQuoteYear, FreeText}, Default: sales.Period{Year: 2025, Month: 1}},
}

var genericExtractor = Extractor{Patterns: AllPatterns(), Default: sales.Period{Year: 2025, Month: 1}}

// For returns the extractor of the reseller; unknown resellers try every
// pattern.
func For(vendorID string) Extractor {
	if extractor, ok := extractors[strings.ToLower(strings.TrimSpace(vendorID))]; ok {
		return extractor
	}
	return genericExtractor
}

// Extract is shorthand for For(vendorID).Extract(filename, sheet).
func Extract(vendorID, filename string, sheet *sales.RawSheet) Result {
	return For(vendorID).Extract(filename, sheet)
}

// Extract never fails: the first matching pattern decides, and the default
// is returned when nothing matches or the match is out of range.
func (e Extractor) Extract(filename string, sheet *sales.RawSheet) Result {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))

	for _, pattern := range e.Patterns {
		year, month, ok := pattern.Match(name, sheet)
		if !ok {
			continue
		}
		found := sales.Period{Year: year, Month: month}
		if !found.Valid() {
			return Result{Period: e.Default, Pattern: pattern.Name, Defaulted: true, Rejected: &found}
		}
		return Result{Period: found, Pattern: pattern.Name}
	}
	return Result{Period: e.Default, Defaulted: true}
}
