package cleaner

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sellout/reseller"
	"sellout/sales"
)

// Common is the vendor-agnostic pass run after every strategy. It pads
// numeric EANs to 13 digits, upper-cases SKUs, title-cases product names
// unless the vendor's names are case-significant, and coerces quantities.
// Rows whose quantity cannot be read are dropped here and nowhere else.
func Common(rows []sales.Row, vendor reseller.Config, log *sales.AuditLog) []sales.Row {
	title := cases.Title(language.English)
	out := make([]sales.Row, 0, len(rows))

	for _, source := range rows {
		row := source.Clone()

		if column, ok := sales.FindColumn(row, sales.ColProductEAN); ok {
			original := row.Values[column]
			cleaned := PadEAN(original)
			if cleaned != original {
				row.Values[column] = cleaned
				log.Value(row.Source, column, original, cleaned, sales.TransformEANPad)
			}
		}

		if column, ok := sales.FindColumn(row, sales.ColSKU); ok {
			original := row.Values[column]
			cleaned := strings.ToUpper(strings.TrimSpace(original))
			if cleaned != original {
				row.Values[column] = cleaned
				log.Value(row.Source, column, original, cleaned, sales.TransformSKUNormalize)
			}
		}

		if column, ok := sales.FindColumn(row, sales.ColFunctionalName); ok && !vendor.CaseSignificantNames {
			original := row.Values[column]
			cleaned := title.String(strings.TrimSpace(original))
			if cleaned != original {
				row.Values[column] = cleaned
				log.Value(row.Source, column, original, cleaned, sales.TransformNameNormalize)
			}
		}

		column, ok := sales.FindColumn(row, sales.ColQuantity)
		if !ok {
			log.Value(row.Source, sales.ColQuantity, "", "", sales.TransformRowDropped)
			continue
		}
		original := row.Values[column]
		qty, ok := parseNumber(original, eurSymbols)
		if !ok {
			log.Value(row.Source, column, original, "", sales.TransformRowDropped)
			continue
		}
		if cleaned := qty.String(); cleaned != original {
			row.Values[column] = cleaned
			log.Value(row.Source, column, original, cleaned, sales.TransformQuantityCoerce)
		}
		out = append(out, row)
	}

	log.Counts(sales.TransformQuantityCoerce, len(rows), len(out))
	return out
}

// PadEAN trims the value, writes numbers stored as floats as plain digits and
// left-pads an all-digit EAN to 13 digits. Other values are only trimmed.
// Padding is idempotent.
func PadEAN(raw string) string {
	value := numericIdentifier(raw)
	if value == "" || len(value) >= 13 || !allDigits(value) {
		return value
	}
	return strings.Repeat("0", 13-len(value)) + value
}

func allDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return value != ""
}
