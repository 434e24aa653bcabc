// Package normalize maps vendor-native rows onto canonical sales facts.
package normalize

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"sellout/cleaner"
	"sellout/reseller"
	"sellout/sales"
)

var absentSentinels = map[string]bool{"": true, "none": true, "nan": true, "null": true}

// maxQuantity bounds a single fact's quantity; larger cells are treated as
// garbled rather than converted.
var maxQuantity = decimal.NewFromInt(math.MaxInt32)

type Normalizer struct {
	vendors *reseller.Table
	logger  logrus.FieldLogger
}

func New(vendors *reseller.Table, logger logrus.FieldLogger) *Normalizer {
	if vendors == nil {
		vendors = reseller.Default()
	}
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}
	return &Normalizer{vendors: vendors, logger: logger}
}

// Normalize converts cleaned rows into facts, in row order. Year and month
// that are missing or out of range fall back to the reporting period.
func (n *Normalizer) Normalize(rows []sales.Row, vendorID string, reporting sales.Period, log *sales.AuditLog) []sales.Fact {
	vendor := n.vendors.Get(vendorID)
	logger := n.logger.WithField("vendor", vendor.ID)

	working := make([]sales.Row, 0, len(rows))
	for _, row := range rows {
		working = append(working, row.Clone())
	}

	applyAliases(working, log)

	if !anyHas(working, sales.ColProductEAN) && anyHas(working, sales.ColSKU) {
		for _, row := range working {
			sku := row.Get(sales.ColSKU)
			if sku == "" {
				continue
			}
			ean := cleaner.PadEAN(sku)
			row.Set(sales.ColProductEAN, ean)
			log.Value(row.Source, sales.ColProductEAN, sku, ean, sales.TransformEANFallback)
		}
	}

	if !anyHas(working, sales.ColCurrency) {
		log.Note(sales.TransformDefaultApplied, sales.ColCurrency, vendor.Currency)
	}
	if vendor.EANDeferred && !anyValue(working, sales.ColProductEAN) {
		logger.Info("no EAN column, product_ean left empty")
		log.Note(sales.TransformColumnDropped, sales.ColProductEAN, "no EAN values")
	}

	resellerName := vendor.ResellerName()
	facts := make([]sales.Fact, 0, len(working))
	for _, row := range working {
		fact := sales.Fact{Reseller: resellerName, Currency: vendor.Currency}
		if currency := strings.ToUpper(row.Get(sales.ColCurrency)); currency != "" {
			fact.Currency = currency
		}

		fact.Year, fact.Month = rowPeriod(row, reporting, log)

		rawQty := row.Get(sales.ColQuantity)
		qty, ok := parseDecimal(rawQty)
		if !ok {
			log.Value(row.Source, sales.ColQuantity, rawQty, "", sales.TransformRowDropped)
			continue
		}
		qty = qty.Truncate(0)

		if raw := row.Get(sales.ColSalesEUR); raw != "" {
			if amount, ok := parseDecimal(raw); ok {
				fact.SalesEUR = &amount
			} else {
				log.Value(row.Source, sales.ColSalesEUR, raw, "", sales.TransformCurrencyUnparsed)
			}
		}

		switch lc := row.Get(sales.ColSalesLC); {
		case lc != "" && !absentSentinels[strings.ToLower(lc)]:
			fact.SalesLC = lc
		case !vendor.LocalValueText && fact.SalesEUR != nil:
			fact.SalesLC = fact.SalesEUR.String()
		}

		fact.ProductEAN = formatEAN(row, log)
		if name := row.Get(sales.ColFunctionalName); !absentSentinels[strings.ToLower(name)] {
			fact.FunctionalName = name
		}

		if fact.ProductEAN == "" && !vendor.EANDeferred {
			log.Value(row.Source, sales.ColProductEAN, "", "", sales.TransformRowDropped)
			continue
		}
		if !qty.IsPositive() || qty.GreaterThan(maxQuantity) {
			log.Value(row.Source, sales.ColQuantity, rawQty, "", sales.TransformRowDropped)
			continue
		}
		fact.Quantity = int(qty.IntPart())
		facts = append(facts, fact)
	}

	log.Counts(sales.TransformRowDropped, len(rows), len(facts))
	logger.WithFields(logrus.Fields{"rows_before": len(rows), "rows_after": len(facts)}).Debug("rows normalized")
	return facts
}

// applyAliases renames vendor-native columns to their canonical names. A
// column already present under its canonical name wins over any alias.
func applyAliases(rows []sales.Row, log *sales.AuditLog) {
	logged := make(map[string]bool)
	for _, row := range rows {
		for _, canonical := range sales.CanonicalColumns() {
			column, ok := sales.FindColumn(row, canonical)
			if !ok || column == sales.NormalizeHeader(canonical) {
				continue
			}
			row.Set(canonical, row.Values[column])
			row.Delete(column)
			if !logged[column] {
				logged[column] = true
				log.Value(sales.SheetLevel, column, column, canonical, sales.TransformColumnAlias)
			}
		}
	}
}

// rowPeriod reads year and month from the row, falling back to the
// reporting period for each one that is missing or out of range.
func rowPeriod(row sales.Row, reporting sales.Period, log *sales.AuditLog) (int, int) {
	year, month := reporting.Year, reporting.Month
	if raw := row.Get(sales.ColYear); raw != "" {
		if parsed, ok := parseInt(raw); ok && parsed >= 2000 && parsed <= 2100 {
			year = parsed
		} else {
			log.Value(row.Source, sales.ColYear, raw, strconv.Itoa(year), sales.TransformDefaultApplied)
		}
	}
	if raw := row.Get(sales.ColMonth); raw != "" {
		if parsed, ok := parseInt(raw); ok && parsed >= 1 && parsed <= 12 {
			month = parsed
		} else {
			log.Value(row.Source, sales.ColMonth, raw, strconv.Itoa(month), sales.TransformDefaultApplied)
		}
	}
	return year, month
}

// formatEAN returns the 13-digit EAN of the row or "" when it is absent or
// cannot be a valid EAN.
func formatEAN(row sales.Row, log *sales.AuditLog) string {
	raw := row.Get(sales.ColProductEAN)
	if absentSentinels[strings.ToLower(raw)] {
		return ""
	}
	ean := cleaner.PadEAN(raw)
	if len(ean) != 13 || !allDigits(ean) {
		log.Value(row.Source, sales.ColProductEAN, raw, "", sales.TransformEANInvalid)
		return ""
	}
	if ean != raw {
		log.Value(row.Source, sales.ColProductEAN, raw, ean, sales.TransformEANPad)
	}
	return ean
}

func parseDecimal(raw string) (decimal.Decimal, bool) {
	value := strings.TrimSpace(raw)
	if absentSentinels[strings.ToLower(value)] {
		return decimal.Decimal{}, false
	}
	return cleaner.ParseAmount(value)
}

func parseInt(raw string) (int, bool) {
	parsed, ok := parseDecimal(raw)
	if !ok || !parsed.Equal(parsed.Truncate(0)) {
		return 0, false
	}
	return int(parsed.IntPart()), true
}

func anyHas(rows []sales.Row, column string) bool {
	for _, row := range rows {
		if row.Has(column) {
			return true
		}
	}
	return false
}

func anyValue(rows []sales.Row, column string) bool {
	for _, row := range rows {
		if !absentSentinels[strings.ToLower(row.Get(column))] {
			return true
		}
	}
	return false
}

func allDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}
