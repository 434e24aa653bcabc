package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadCatalogEntries(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "products.csv")
	content := "EAN;Functional Name;Liberty Name;Galilu Name\n" +
		"7350109270011;Ghost of Tom 100ml;BIBBI GHOST OF TOM;Bibbi Ghost Of Tom\n" +
		"350109270028;Pas de Deux 100ml;;\n" +
		";;;\n" +
		"abc;Broken;;\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write products: %v", err)
	}

	entries, err := readCatalogEntries(path)
	if err != nil {
		t.Fatalf("read products: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].LibertyName != "BIBBI GHOST OF TOM" || entries[0].GaliluName != "Bibbi Ghost Of Tom" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].EAN != "0350109270028" {
		t.Fatalf("expected padded EAN, got %q", entries[1].EAN)
	}
}

func TestReadAliases(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "aliases.csv")
	if err := os.WriteFile(path, []byte("alias,functional_name\nGhost of Tom,Ghost of Tom 100ml\n"), 0o600); err != nil {
		t.Fatalf("write aliases: %v", err)
	}

	aliases, err := readAliases(path)
	if err != nil {
		t.Fatalf("read aliases: %v", err)
	}
	if len(aliases) != 1 || aliases[0].Alias != "Ghost of Tom" || aliases[0].FunctionalName != "Ghost of Tom 100ml" {
		t.Fatalf("unexpected aliases: %+v", aliases)
	}
}

func TestReadTableRowsRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	if _, err := readTableRows(filepath.Join(t.TempDir(), "products.json")); err == nil {
		t.Fatalf("expected error for unsupported file")
	}
}
