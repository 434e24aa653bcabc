package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"sellout/sales"
)

func eur(t *testing.T, value string) *decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q: %v", value, err)
	}
	return &d
}

func sampleFacts(t *testing.T) []sales.Fact {
	return []sales.Fact{
		{ProductEAN: "7350109270011", FunctionalName: "Ghost Of Tom", Reseller: "Boxnox", Quantity: 3, SalesEUR: eur(t, "90.5"), SalesLC: "90.5", Currency: "EUR", Year: 2025, Month: 4},
		{ProductEAN: "7350109270011", FunctionalName: "Ghost Of Tom", Reseller: "Boxnox", Quantity: 1, SalesEUR: eur(t, "30"), SalesLC: "30", Currency: "EUR", Year: 2025, Month: 4},
		{ProductEAN: "7350109270028", FunctionalName: "Pas De Deux", Reseller: "Boxnox", Quantity: 2, Currency: "EUR", Year: 2025, Month: 3},
		{FunctionalName: "Pas De Deux", Reseller: "Galilu", Quantity: 4, SalesLC: "400 zł", Currency: "PLN", Year: 2025, Month: 3},
	}
}

func TestWriterForFormat(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"csv", " CSV ", "excel", "xlsx"} {
		if _, err := WriterForFormat(format); err != nil {
			t.Fatalf("WriterForFormat(%q): %v", format, err)
		}
	}
	if _, err := WriterForFormat("pdf"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestCSVWriter_WritesFacts(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "facts.csv")
	if err := (&CSVWriter{}).Write(path, FactsTable(sampleFacts(t))); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header plus 4 rows, got %d", len(records))
	}
	if records[0][0] != "product_ean" || records[0][8] != "month" {
		t.Fatalf("unexpected headers: %v", records[0])
	}
	if records[1][4] != "90.50" {
		t.Fatalf("expected sales_eur 90.50, got %q", records[1][4])
	}
	if records[3][4] != "" {
		t.Fatalf("expected empty sales_eur for missing amount, got %q", records[3][4])
	}
	if records[4][0] != "" || records[4][5] != "400 zł" {
		t.Fatalf("unexpected galilu row: %v", records[4])
	}
}

func TestExcelWriter_WritesTransformations(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "audit.xlsx")
	records := []sales.TransformationRecord{
		{RowIndex: sales.SheetLevel, ColumnName: "filename", CleanedValue: "2025-04", Transformation: sales.TransformDateExtraction},
		{RowIndex: 2, ColumnName: "product_ean", OriginalValue: "123", CleanedValue: "0000000000123", Transformation: sales.TransformEANPad},
	}
	if err := (&ExcelWriter{SheetName: "Audit"}).Write(path, TransformationsTable(records)); err != nil {
		t.Fatalf("write excel: %v", err)
	}

	file, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open excel: %v", err)
	}
	defer file.Close()

	rows, err := file.GetRows("Audit")
	if err != nil {
		t.Fatalf("read excel rows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[1][0] != "-1" || rows[1][4] != sales.TransformDateExtraction {
		t.Fatalf("unexpected first record: %v", rows[1])
	}
	if rows[2][3] != "0000000000123" {
		t.Fatalf("expected padded ean to stay text, got %q", rows[2][3])
	}
}

func TestBuildPeriodSummaries_GroupsByResellerAndMonth(t *testing.T) {
	t.Parallel()

	summaries := BuildPeriodSummaries(sampleFacts(t))
	if len(summaries) != 3 {
		t.Fatalf("expected 3 summaries, got %d", len(summaries))
	}

	march, april, galilu := summaries[0], summaries[1], summaries[2]
	if march.Reseller != "Boxnox" || march.Month != 3 || march.Quantity != 2 {
		t.Fatalf("unexpected first summary: %+v", march)
	}
	if april.Quantity != 4 || april.FactCount != 2 || april.Products != 1 {
		t.Fatalf("unexpected april summary: %+v", april)
	}
	if got := april.SalesEUR.StringFixed(2); got != "120.50" {
		t.Fatalf("expected april sales 120.50, got %s", got)
	}
	if galilu.MissingEAN != 1 || galilu.Products != 1 || !galilu.SalesEUR.IsZero() {
		t.Fatalf("unexpected galilu summary: %+v", galilu)
	}

	table := SummaryTable(summaries)
	if len(table.Rows) != 3 || table.Rows[1][5] != "120.50" {
		t.Fatalf("unexpected summary table: %+v", table.Rows)
	}
}

func TestBuildPeriodSummaries_Empty(t *testing.T) {
	t.Parallel()

	if got := BuildPeriodSummaries(nil); len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}
