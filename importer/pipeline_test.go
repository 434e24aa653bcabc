package importer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"sellout/sales"
)

func boxnoxWorkbook(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "BOXNOX - BIBBI Monthly Sales Report APR2025.xlsx")
	writeWorkbook(t, path,
		fixtureSheet{name: "Summary", rows: [][]any{{"Boxnox sell-out summary"}}},
		fixtureSheet{name: "Sell Out", rows: [][]any{
			{"EAN", "Product", "Jan", "Feb", "Mar"},
			{"7350109270011", "ghost of tom", 1, 2, 0},
			{"123456789", "santal", 3, "", 1},
			{"TOTAL", "", 4, 2, 1},
		}},
	)
	return path
}

func TestProcessBoxnoxWorkbook(t *testing.T) {
	t.Parallel()

	path := boxnoxWorkbook(t, t.TempDir())
	result, err := NewPipeline(nil, nil, nil, 1).Process(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	if result.Vendor != "boxnox" || result.Sheet != "Sell Out" {
		t.Fatalf("unexpected detection: vendor=%q sheet=%q", result.Vendor, result.Sheet)
	}
	if result.Period != (sales.Period{Year: 2025, Month: 4}) {
		t.Fatalf("unexpected period: %+v", result.Period)
	}
	if len(result.Facts) != 4 {
		t.Fatalf("expected 4 facts, got %d: %+v", len(result.Facts), result.Facts)
	}

	first := result.Facts[0]
	if first.ProductEAN != "7350109270011" || first.FunctionalName != "Ghost Of Tom" || first.Quantity != 1 || first.Month != 1 || first.Year != 2025 {
		t.Fatalf("unexpected first fact: %+v", first)
	}
	if first.Reseller != "Boxnox" || first.Currency != "EUR" {
		t.Fatalf("unexpected reseller fields: %+v", first)
	}
	if got := result.Facts[2].ProductEAN; got != "0000123456789" {
		t.Fatalf("expected padded EAN, got %q", got)
	}
	if len(result.Transformations) == 0 || result.Transformations[0].Transformation != sales.TransformDateExtraction {
		t.Fatalf("expected transformation log to start with date extraction")
	}
}

func TestProcessUsesVendorOverrideAndFilename(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "upload-1234.xlsx")
	writeWorkbook(t, path, fixtureSheet{name: "Data", rows: [][]any{
		{"EAN", "Article description", "Year", "Month", "Sales Qty", "Net Sales"},
		{"7350109270011", "Ghost", 2025, 3, 2, 100},
		{"7350109270011", "Ghost", 2025, 2, 1, 50},
	}})

	result, err := NewPipeline(nil, nil, nil, 1).Process(context.Background(), path, Options{
		Vendor:   "skins_nl",
		Filename: "Skins NL BIBBI 31-03-2025.xlsx",
	})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Vendor != "skins_nl" || result.Filename != "Skins NL BIBBI 31-03-2025.xlsx" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Facts) != 1 || result.Facts[0].Month != 3 || result.Facts[0].SalesEUR.String() != "100" {
		t.Fatalf("expected only the March row, got %+v", result.Facts)
	}
}

func TestProcessAllKeepsInputOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	boxnox := boxnoxWorkbook(t, dir)
	generic := filepath.Join(dir, "other.xlsx")
	writeWorkbook(t, generic, fixtureSheet{name: "Sheet1", rows: [][]any{
		{"EAN", "Qty"},
		{"7350109270011", 3},
	}})

	results, err := NewPipeline(nil, nil, nil, 4).ProcessAll(context.Background(), []string{generic, boxnox, generic}, Options{})
	if err != nil {
		t.Fatalf("process all: %v", err)
	}
	if len(results) != 3 || results[0].Vendor != "generic" || results[1].Vendor != "boxnox" || results[2].Vendor != "generic" {
		t.Fatalf("unexpected result order")
	}
	if len(results[0].Facts) != 1 || results[0].Facts[0].Quantity != 3 {
		t.Fatalf("unexpected generic facts: %+v", results[0].Facts)
	}
}

func TestProcessAllFailsOnMalformedInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	paths := []string{boxnoxWorkbook(t, dir), filepath.Join(dir, "broken.xlsx")}

	_, err := NewPipeline(nil, nil, nil, 2).ProcessAll(context.Background(), paths, Options{})
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected malformed input, got %v", err)
	}
}

func TestDetect(t *testing.T) {
	t.Parallel()

	path := boxnoxWorkbook(t, t.TempDir())
	detection, err := NewPipeline(nil, nil, nil, 1).Detect(path, Options{})
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	if detection.Vendor != "boxnox" || !detection.Known || detection.Sheet != "Sell Out" || len(detection.Sheets) != 2 {
		t.Fatalf("unexpected detection: %+v", detection)
	}
	if detection.Period != (sales.Period{Year: 2025, Month: 4}) || detection.Defaulted {
		t.Fatalf("unexpected period: %+v", detection)
	}
}

func TestProcessUkraineDateHeaders(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Ukraine BIBBI June 2025.xlsx")
	writeWorkbook(t, path, fixtureSheet{name: "TDSheet", rows: [][]any{
		{"Штрихкод", "Номенклатура", time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"7350109270011", "Ghost", 4, 7},
		{"", "Всього", 4, 7},
	}})

	result, err := NewPipeline(nil, nil, nil, 1).Process(context.Background(), path, Options{})
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	if result.Vendor != "ukraine" || result.Period != (sales.Period{Year: 2025, Month: 6}) {
		t.Fatalf("unexpected detection: vendor=%q period=%+v", result.Vendor, result.Period)
	}
	if len(result.Facts) != 1 {
		t.Fatalf("expected 1 fact, got %d: %+v", len(result.Facts), result.Facts)
	}
	fact := result.Facts[0]
	if fact.ProductEAN != "7350109270011" || fact.Quantity != 7 || fact.Month != 6 || fact.Currency != "UAH" {
		t.Fatalf("unexpected fact: %+v", fact)
	}
}
