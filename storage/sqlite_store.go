package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

var ErrUploadNotFound = errors.New("upload not found")

// OpenSQLite opens the database at path with foreign keys enforced and
// creates the schema when missing.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// NewSQLiteStore wraps an already opened database without touching its
// schema.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func dsn(path string) string {
	if strings.HasPrefix(path, "file:") || strings.Contains(path, "?") {
		return path
	}
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS products (
	ean TEXT PRIMARY KEY CHECK(length(ean) = 13),
	functional_name TEXT NOT NULL DEFAULT '',
	name_key TEXT NOT NULL DEFAULT '',
	liberty_name TEXT NOT NULL DEFAULT '',
	liberty_key TEXT NOT NULL DEFAULT '',
	galilu_name TEXT NOT NULL DEFAULT '',
	galilu_key TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_products_name_key ON products(name_key);
CREATE INDEX IF NOT EXISTS idx_products_liberty_key ON products(liberty_key);
CREATE INDEX IF NOT EXISTS idx_products_galilu_key ON products(galilu_key);

CREATE TABLE IF NOT EXISTS product_aliases (
	alias_key TEXT PRIMARY KEY,
	alias TEXT NOT NULL,
	functional_name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS uploads (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	vendor TEXT NOT NULL,
	sheet TEXT NOT NULL DEFAULT '',
	year INTEGER NOT NULL,
	month INTEGER NOT NULL,
	rows_read INTEGER NOT NULL DEFAULT 0,
	rows_cleaned INTEGER NOT NULL DEFAULT 0,
	fact_count INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS sales_facts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	upload_id TEXT NOT NULL REFERENCES uploads(id) ON DELETE CASCADE,
	product_ean TEXT REFERENCES products(ean),
	functional_name TEXT,
	reseller TEXT NOT NULL,
	quantity INTEGER NOT NULL CHECK(quantity > 0),
	sales_eur TEXT,
	sales_lc TEXT,
	currency TEXT NOT NULL,
	year INTEGER NOT NULL CHECK(year BETWEEN 2000 AND 2100),
	month INTEGER NOT NULL CHECK(month BETWEEN 1 AND 12)
);
CREATE INDEX IF NOT EXISTS idx_sales_facts_upload ON sales_facts(upload_id);

CREATE TABLE IF NOT EXISTS transformation_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	upload_id TEXT NOT NULL REFERENCES uploads(id) ON DELETE CASCADE,
	row_index INTEGER NOT NULL,
	column_name TEXT NOT NULL DEFAULT '',
	original_value TEXT NOT NULL DEFAULT '',
	cleaned_value TEXT NOT NULL DEFAULT '',
	transformation TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transformation_log_upload ON transformation_log(upload_id);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func nullString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
