package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"sellout/sales"
)

const DefaultBatchSize = 500

// Upload is one processed workbook and the counters reported back to the
// caller.
type Upload struct {
	ID          string
	Filename    string
	Vendor      string
	Sheet       string
	Period      sales.Period
	RowsRead    int
	RowsCleaned int
	FactCount   int
	CreatedAt   time.Time
}

// NewUpload returns an upload with a fresh identifier.
func NewUpload(filename, vendor, sheet string, period sales.Period, rowsRead, rowsCleaned int) Upload {
	return Upload{
		ID:          uuid.NewString(),
		Filename:    filename,
		Vendor:      vendor,
		Sheet:       sheet,
		Period:      period,
		RowsRead:    rowsRead,
		RowsCleaned: rowsCleaned,
		CreatedAt:   time.Now().UTC(),
	}
}

// SaveUpload inserts the upload, the products its facts reference and the
// facts themselves. Facts are written in transactions of batchSize rows;
// when one batch fails the upload and everything written for it is removed.
func (s *SQLiteStore) SaveUpload(ctx context.Context, upload Upload, facts []sales.Fact, batchSize int) (Upload, error) {
	if upload.ID == "" {
		upload.ID = uuid.NewString()
	}
	if upload.CreatedAt.IsZero() {
		upload.CreatedAt = time.Now().UTC()
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	upload.FactCount = len(facts)

	if err := s.insertUpload(ctx, upload, facts); err != nil {
		return Upload{}, err
	}

	for start := 0; start < len(facts); start += batchSize {
		end := min(start+batchSize, len(facts))
		if err := s.insertFacts(ctx, upload.ID, facts[start:end]); err != nil {
			if cleanupErr := s.removeUpload(context.WithoutCancel(ctx), upload.ID); cleanupErr != nil {
				return Upload{}, fmt.Errorf("%w (cleanup: %v)", err, cleanupErr)
			}
			return Upload{}, err
		}
	}

	return upload, nil
}

func (s *SQLiteStore) insertUpload(ctx context.Context, upload Upload, facts []sales.Fact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upload tx: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO uploads (id, filename, vendor, sheet, year, month, rows_read, rows_cleaned, fact_count, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		upload.ID,
		upload.Filename,
		upload.Vendor,
		upload.Sheet,
		upload.Period.Year,
		upload.Period.Month,
		upload.RowsRead,
		upload.RowsCleaned,
		upload.FactCount,
		upload.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("insert upload: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO products (ean, functional_name, name_key) VALUES (?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare product insert: %w", err)
	}
	defer stmt.Close()

	seen := make(map[string]struct{})
	for _, fact := range facts {
		if fact.ProductEAN == "" {
			continue
		}
		if _, ok := seen[fact.ProductEAN]; ok {
			continue
		}
		seen[fact.ProductEAN] = struct{}{}
		if _, err := stmt.ExecContext(ctx, fact.ProductEAN, fact.FunctionalName, nameKey(fact.FunctionalName)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert product %s: %w", fact.ProductEAN, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upload tx: %w", err)
	}
	return nil
}

func (s *SQLiteStore) insertFacts(ctx context.Context, uploadID string, facts []sales.Fact) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin facts tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO sales_facts (upload_id, product_ean, functional_name, reseller, quantity, sales_eur, sales_lc, currency, year, month)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare fact insert: %w", err)
	}
	defer stmt.Close()

	for _, fact := range facts {
		var salesEUR sql.NullString
		if fact.SalesEUR != nil {
			salesEUR = sql.NullString{String: fact.SalesEUR.String(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx,
			uploadID,
			nullString(fact.ProductEAN),
			nullString(fact.FunctionalName),
			fact.Reseller,
			fact.Quantity,
			salesEUR,
			nullString(fact.SalesLC),
			fact.Currency,
			fact.Year,
			fact.Month,
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert fact: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit facts tx: %w", err)
	}
	return nil
}

// AppendTransformations stores audit records for an upload in insertion
// order.
func (s *SQLiteStore) AppendTransformations(ctx context.Context, uploadID string, records []sales.TransformationRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transformation tx: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO transformation_log (upload_id, row_index, column_name, original_value, cleaned_value, transformation)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare transformation insert: %w", err)
	}
	defer stmt.Close()

	for _, record := range records {
		if _, err := stmt.ExecContext(ctx, uploadID, record.RowIndex, record.ColumnName, record.OriginalValue, record.CleanedValue, record.Transformation); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert transformation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transformation tx: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetUpload(ctx context.Context, id string) (Upload, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, filename, vendor, sheet, year, month, rows_read, rows_cleaned, fact_count, created_at
FROM uploads
WHERE id = ?`, id)

	upload, err := scanUpload(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Upload{}, ErrUploadNotFound
	}
	if err != nil {
		return Upload{}, fmt.Errorf("get upload %s: %w", id, err)
	}
	return upload, nil
}

// ListUploads returns uploads newest first.
func (s *SQLiteStore) ListUploads(ctx context.Context) ([]Upload, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, filename, vendor, sheet, year, month, rows_read, rows_cleaned, fact_count, created_at
FROM uploads
ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	defer rows.Close()

	var uploads []Upload
	for rows.Next() {
		upload, err := scanUpload(rows)
		if err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		uploads = append(uploads, upload)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return uploads, nil
}

// ListFacts returns the facts of one upload in insertion order.
func (s *SQLiteStore) ListFacts(ctx context.Context, uploadID string) ([]sales.Fact, error) {
	if _, err := s.GetUpload(ctx, uploadID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT product_ean, functional_name, reseller, quantity, sales_eur, sales_lc, currency, year, month
FROM sales_facts
WHERE upload_id = ?
ORDER BY id`, uploadID)
	if err != nil {
		return nil, fmt.Errorf("list facts: %w", err)
	}
	defer rows.Close()

	var facts []sales.Fact
	for rows.Next() {
		var (
			fact     sales.Fact
			ean      sql.NullString
			name     sql.NullString
			salesEUR sql.NullString
			salesLC  sql.NullString
		)
		if err := rows.Scan(&ean, &name, &fact.Reseller, &fact.Quantity, &salesEUR, &salesLC, &fact.Currency, &fact.Year, &fact.Month); err != nil {
			return nil, fmt.Errorf("scan fact: %w", err)
		}
		fact.ProductEAN = ean.String
		fact.FunctionalName = name.String
		fact.SalesLC = salesLC.String
		if salesEUR.Valid {
			amount, err := decimal.NewFromString(salesEUR.String)
			if err != nil {
				return nil, fmt.Errorf("parse stored sales_eur %q: %w", salesEUR.String, err)
			}
			fact.SalesEUR = &amount
		}
		facts = append(facts, fact)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate facts: %w", err)
	}
	return facts, nil
}

// ListTransformations returns the audit trail of one upload in insertion
// order.
func (s *SQLiteStore) ListTransformations(ctx context.Context, uploadID string) ([]sales.TransformationRecord, error) {
	if _, err := s.GetUpload(ctx, uploadID); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT row_index, column_name, original_value, cleaned_value, transformation
FROM transformation_log
WHERE upload_id = ?
ORDER BY id`, uploadID)
	if err != nil {
		return nil, fmt.Errorf("list transformations: %w", err)
	}
	defer rows.Close()

	var records []sales.TransformationRecord
	for rows.Next() {
		var record sales.TransformationRecord
		if err := rows.Scan(&record.RowIndex, &record.ColumnName, &record.OriginalValue, &record.CleanedValue, &record.Transformation); err != nil {
			return nil, fmt.Errorf("scan transformation: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transformations: %w", err)
	}
	return records, nil
}

// DeleteUpload removes an upload with its facts and audit trail.
func (s *SQLiteStore) DeleteUpload(ctx context.Context, id string) error {
	if _, err := s.GetUpload(ctx, id); err != nil {
		return err
	}
	return s.removeUpload(ctx, id)
}

func (s *SQLiteStore) removeUpload(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}

	for _, query := range []string{
		`DELETE FROM transformation_log WHERE upload_id = ?`,
		`DELETE FROM sales_facts WHERE upload_id = ?`,
		`DELETE FROM uploads WHERE id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete upload %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUpload(row scanner) (Upload, error) {
	var (
		upload    Upload
		createdAt string
	)
	if err := row.Scan(
		&upload.ID,
		&upload.Filename,
		&upload.Vendor,
		&upload.Sheet,
		&upload.Period.Year,
		&upload.Period.Month,
		&upload.RowsRead,
		&upload.RowsCleaned,
		&upload.FactCount,
		&createdAt,
	); err != nil {
		return Upload{}, err
	}
	parsed, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Upload{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	upload.CreatedAt = parsed
	return upload, nil
}
