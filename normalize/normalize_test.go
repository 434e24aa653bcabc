package normalize

import (
	"testing"

	"sellout/sales"
)

var march = sales.Period{Year: 2025, Month: 3}

func row(source int, values map[string]string) sales.Row {
	out := sales.NewRow(source)
	for key, value := range values {
		out.Set(key, value)
	}
	return out
}

func countRecords(log *sales.AuditLog, transformation string) int {
	count := 0
	for _, record := range log.Records() {
		if record.Transformation == transformation {
			count++
		}
	}
	return count
}

func TestNormalizeMissingIdentityByVendor(t *testing.T) {
	t.Parallel()

	input := []sales.Row{row(1, map[string]string{"quantity": "5"})}

	if facts := New(nil, nil).Normalize(input, "boxnox", march, &sales.AuditLog{}); len(facts) != 0 {
		t.Fatalf("expected row without EAN dropped for a standard vendor, got %+v", facts)
	}

	log := &sales.AuditLog{}
	facts := New(nil, nil).Normalize(input, "galilu", march, log)
	if len(facts) != 1 {
		t.Fatalf("expected row kept for the EAN-deferred vendor, got %d", len(facts))
	}
	if facts[0].ProductEAN != "" || facts[0].Quantity != 5 || facts[0].Reseller != "Galilu" || facts[0].Currency != "PLN" {
		t.Fatalf("unexpected fact: %+v", facts[0])
	}
	if countRecords(log, sales.TransformColumnDropped) != 1 {
		t.Fatalf("expected column dropped record")
	}
}

func TestNormalizeAliasesAndDefaults(t *testing.T) {
	t.Parallel()

	input := []sales.Row{
		row(1, map[string]string{"EAN Code": "123456789", "Product Name": "Ghost", "Qty": "2.9", "Net Sales": "100.50", "store": "A"}),
		row(2, map[string]string{"EAN Code": "7350109270028", "Product Name": "Santal", "Qty": "1", "Net Sales": ""}),
	}
	log := &sales.AuditLog{}

	facts := New(nil, nil).Normalize(input, "boxnox", march, log)

	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}
	first := facts[0]
	if first.ProductEAN != "0000123456789" || first.FunctionalName != "Ghost" || first.Quantity != 2 {
		t.Fatalf("unexpected first fact: %+v", first)
	}
	if first.SalesEUR == nil || first.SalesEUR.String() != "100.5" || first.SalesLC != "100.5" {
		t.Fatalf("expected sales and derived local value, got %+v", first)
	}
	if first.Reseller != "Boxnox" || first.Currency != "EUR" || first.Year != 2025 || first.Month != 3 {
		t.Fatalf("expected defaults applied, got %+v", first)
	}
	if facts[1].SalesEUR != nil || facts[1].SalesLC != "" {
		t.Fatalf("expected absent sales, got %+v", facts[1])
	}
	if countRecords(log, sales.TransformColumnAlias) != 4 {
		t.Fatalf("expected one alias record per renamed column, got %d", countRecords(log, sales.TransformColumnAlias))
	}
}

func TestNormalizeKeepsLocalValueText(t *testing.T) {
	t.Parallel()

	input := []sales.Row{row(1, map[string]string{"product_ean": "7350109270011", "quantity": "1", "sales_lc": "199,00 zł"})}

	facts := New(nil, nil).Normalize(input, "galilu", march, &sales.AuditLog{})
	if len(facts) != 1 || facts[0].SalesLC != "199,00 zł" || facts[0].SalesEUR != nil {
		t.Fatalf("expected opaque local value, got %+v", facts)
	}
}

func TestNormalizeSKUFallback(t *testing.T) {
	t.Parallel()

	input := []sales.Row{
		row(1, map[string]string{"article": "1234567", "quantity": "1"}),
		row(2, map[string]string{"article": "AB-12", "quantity": "1"}),
	}
	log := &sales.AuditLog{}

	facts := New(nil, nil).Normalize(input, "aromateque", march, log)
	if len(facts) != 1 || facts[0].ProductEAN != "0000001234567" {
		t.Fatalf("expected padded SKU as EAN, got %+v", facts)
	}
	if countRecords(log, sales.TransformEANFallback) != 2 || countRecords(log, sales.TransformEANInvalid) != 1 {
		t.Fatalf("unexpected audit trail: %+v", log.Records())
	}
}

func TestNormalizeEANSentinelsAndInvalid(t *testing.T) {
	t.Parallel()

	input := []sales.Row{
		row(1, map[string]string{"product_ean": "None", "quantity": "1"}),
		row(2, map[string]string{"product_ean": "nan", "quantity": "1"}),
		row(3, map[string]string{"product_ean": "73501092700111", "quantity": "1"}),
		row(4, map[string]string{"product_ean": "7350109270011", "quantity": "1"}),
	}

	facts := New(nil, nil).Normalize(input, "boxnox", march, &sales.AuditLog{})
	if len(facts) != 1 || facts[0].ProductEAN != "7350109270011" {
		t.Fatalf("expected only the valid EAN kept, got %+v", facts)
	}
}

func TestNormalizePeriodAndQuantityRules(t *testing.T) {
	t.Parallel()

	input := []sales.Row{
		row(1, map[string]string{"product_ean": "7350109270011", "quantity": "1", "year": "2024", "month": "12"}),
		row(2, map[string]string{"product_ean": "7350109270011", "quantity": "1", "year": "24", "month": "13"}),
		row(3, map[string]string{"product_ean": "7350109270011", "quantity": "0"}),
		row(4, map[string]string{"product_ean": "7350109270011", "quantity": "-2"}),
		row(5, map[string]string{"product_ean": "7350109270011", "quantity": "0.5"}),
		row(6, map[string]string{"product_ean": "7350109270011"}),
		row(7, map[string]string{"product_ean": "7350109270011", "quantity": "3", "currency": "gbp"}),
		row(8, map[string]string{"product_ean": "7350109270011", "quantity": "18446744073709551621"}),
		row(9, map[string]string{"product_ean": "7350109270011", "quantity": "9223372036854775808"}),
		row(10, map[string]string{"product_ean": "7350109270011", "quantity": "2147483648"}),
	}

	log := &sales.AuditLog{}
	facts := New(nil, nil).Normalize(input, "skins_nl", march, log)

	if len(facts) != 3 {
		t.Fatalf("expected 3 facts, got %d: %+v", len(facts), facts)
	}
	if facts[0].Year != 2024 || facts[0].Month != 12 {
		t.Fatalf("expected row period kept, got %+v", facts[0])
	}
	if facts[1].Year != 2025 || facts[1].Month != 3 {
		t.Fatalf("expected reporting period fallback, got %+v", facts[1])
	}
	if facts[2].Quantity != 3 || facts[2].Currency != "GBP" {
		t.Fatalf("unexpected last fact: %+v", facts[2])
	}
	for _, fact := range facts {
		if fact.Quantity <= 0 || fact.Month < 1 || fact.Month > 12 || fact.Year < 2000 || fact.Year > 2100 {
			t.Fatalf("fact breaks invariants: %+v", fact)
		}
	}

	dropped := map[int]string{}
	for _, record := range log.Records() {
		if record.Transformation == sales.TransformRowDropped && record.ColumnName == sales.ColQuantity {
			dropped[record.RowIndex] = record.OriginalValue
		}
	}
	for source, original := range map[int]string{5: "0.5", 8: "18446744073709551621", 9: "9223372036854775808", 10: "2147483648"} {
		if dropped[source] != original {
			t.Fatalf("row %d: expected drop of %q, got %q", source, original, dropped[source])
		}
	}
}

func TestNormalizeFixedResellerLiteral(t *testing.T) {
	t.Parallel()

	input := []sales.Row{row(1, map[string]string{"barcode": "7350109270011", "units": "2", "sales": "1234.5"})}

	facts := New(nil, nil).Normalize(input, "skins_sa", march, &sales.AuditLog{})
	if len(facts) != 1 || facts[0].Reseller != "Skins SA" || facts[0].Currency != "ZAR" {
		t.Fatalf("unexpected facts: %+v", facts)
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	input := []sales.Row{row(1, map[string]string{"ean": "123", "qty": "1"})}
	New(nil, nil).Normalize(input, "boxnox", march, &sales.AuditLog{})
	if !input[0].Has("ean") || input[0].Has(sales.ColProductEAN) {
		t.Fatalf("input row was modified: %+v", input[0].Values)
	}
}
