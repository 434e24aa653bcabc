package sales

import "strconv"

// Transformation types written to the audit trail.
const (
	TransformDateExtraction     = "date_extraction"
	TransformFilter             = "filter"
	TransformFilterSkipped      = "filter_skipped"
	TransformAggregation        = "aggregation"
	TransformUnpivot            = "unpivot"
	TransformHeaderDetection    = "header_detection"
	TransformColumnRename       = "column_rename"
	TransformCurrencyClean      = "currency_clean"
	TransformCurrencyUnparsed   = "currency_unparsed"
	TransformDescriptionRecover = "description_recovery"
	TransformDedup              = "dedup"
	TransformIdentityResolution = "identity_resolution"
	TransformEANPad             = "ean_pad"
	TransformEANInvalid         = "ean_invalid"
	TransformEANFallback        = "ean_fallback"
	TransformSKUNormalize       = "sku_normalize"
	TransformNameNormalize      = "name_normalize"
	TransformQuantityCoerce     = "quantity_coerce"
	TransformRowDropped         = "row_dropped"
	TransformColumnAlias        = "column_alias"
	TransformColumnDropped      = "column_dropped"
	TransformDefaultApplied     = "default_applied"
	TransformVendorFallback     = "vendor_fallback"
)

// SheetLevel is the row index used for records that describe the whole sheet
// rather than one row.
const SheetLevel = -1

// TransformationRecord is one append-only audit entry.
type TransformationRecord struct {
	RowIndex       int
	ColumnName     string
	OriginalValue  string
	CleanedValue   string
	Transformation string
}

// AuditLog accumulates transformation records in insertion order.
type AuditLog struct {
	records []TransformationRecord
}

// Value records a value-level change on one row.
func (l *AuditLog) Value(row int, column, original, cleaned, transformation string) {
	l.records = append(l.records, TransformationRecord{
		RowIndex:       row,
		ColumnName:     column,
		OriginalValue:  original,
		CleanedValue:   cleaned,
		Transformation: transformation,
	})
}

// Counts records a before/after row count for a sheet-level step.
func (l *AuditLog) Counts(transformation string, before, after int) {
	l.Value(SheetLevel, "", strconv.Itoa(before), strconv.Itoa(after), transformation)
}

// Note records a sheet-level message, for example a skipped step.
func (l *AuditLog) Note(transformation, column, detail string) {
	l.Value(SheetLevel, column, "", detail, transformation)
}

// Append copies records from another log.
func (l *AuditLog) Append(other *AuditLog) {
	if other == nil {
		return
	}
	l.records = append(l.records, other.records...)
}

// Records returns a copy of the accumulated entries.
func (l *AuditLog) Records() []TransformationRecord {
	if l == nil {
		return nil
	}
	out := make([]TransformationRecord, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *AuditLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.records)
}
