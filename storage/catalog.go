package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sellout/catalog"
	"sellout/sales"
)

// Alias maps an alternative product name to its canonical functional name.
type Alias struct {
	Alias          string
	FunctionalName string
}

var _ catalog.Source = (*SQLiteStore)(nil)

func nameKey(name string) string {
	return catalog.Key(name)
}

// ImportCatalog upserts products by EAN and returns the number written.
func (s *SQLiteStore) ImportCatalog(ctx context.Context, entries []sales.CatalogEntry) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin catalog tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO products (ean, functional_name, name_key, liberty_name, liberty_key, galilu_name, galilu_key)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(ean) DO UPDATE SET
	functional_name = excluded.functional_name,
	name_key = excluded.name_key,
	liberty_name = excluded.liberty_name,
	liberty_key = excluded.liberty_key,
	galilu_name = excluded.galilu_name,
	galilu_key = excluded.galilu_key`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare catalog upsert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, entry := range entries {
		if entry.EAN == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx,
			entry.EAN,
			entry.FunctionalName,
			nameKey(entry.FunctionalName),
			entry.LibertyName,
			nameKey(entry.LibertyName),
			entry.GaliluName,
			nameKey(entry.GaliluName),
		); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("upsert product %s: %w", entry.EAN, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit catalog tx: %w", err)
	}
	return count, nil
}

// ImportAliases upserts alias mappings keyed by the normalized alias.
func (s *SQLiteStore) ImportAliases(ctx context.Context, aliases []Alias) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin alias tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO product_aliases (alias_key, alias, functional_name)
VALUES (?, ?, ?)
ON CONFLICT(alias_key) DO UPDATE SET
	alias = excluded.alias,
	functional_name = excluded.functional_name`)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare alias upsert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, alias := range aliases {
		key := nameKey(alias.Alias)
		if key == "" || alias.FunctionalName == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, key, alias.Alias, alias.FunctionalName); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("upsert alias %q: %w", alias.Alias, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit alias tx: %w", err)
	}
	return count, nil
}

// LookupByName matches the functional, Liberty or Galilu name of a product.
func (s *SQLiteStore) LookupByName(ctx context.Context, name string) (sales.CatalogEntry, bool, error) {
	key := nameKey(name)
	if key == "" {
		return sales.CatalogEntry{}, false, nil
	}

	var entry sales.CatalogEntry
	err := s.db.QueryRowContext(ctx, `
SELECT ean, functional_name, liberty_name, galilu_name
FROM products
WHERE name_key = ? OR liberty_key = ? OR galilu_key = ?
ORDER BY CASE WHEN name_key = ? THEN 0 WHEN liberty_key = ? THEN 1 ELSE 2 END, ean
LIMIT 1`, key, key, key, key, key).Scan(&entry.EAN, &entry.FunctionalName, &entry.LibertyName, &entry.GaliluName)
	if errors.Is(err, sql.ErrNoRows) {
		return sales.CatalogEntry{}, false, nil
	}
	if err != nil {
		return sales.CatalogEntry{}, false, fmt.Errorf("lookup product by name: %w", err)
	}
	return entry, true, nil
}

func (s *SQLiteStore) LookupAliasToName(ctx context.Context, alias string) (string, bool, error) {
	key := nameKey(alias)
	if key == "" {
		return "", false, nil
	}

	var name string
	err := s.db.QueryRowContext(ctx, `SELECT functional_name FROM product_aliases WHERE alias_key = ?`, key).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup alias: %w", err)
	}
	return name, true, nil
}

func (s *SQLiteStore) LookupEANByName(ctx context.Context, name string) (string, bool, error) {
	key := nameKey(name)
	if key == "" {
		return "", false, nil
	}

	var ean string
	err := s.db.QueryRowContext(ctx, `SELECT ean FROM products WHERE name_key = ? ORDER BY ean LIMIT 1`, key).Scan(&ean)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup ean by name: %w", err)
	}
	return ean, true, nil
}
