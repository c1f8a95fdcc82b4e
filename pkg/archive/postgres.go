// pkg/archive/postgres.go

package archive

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // Import the PostgreSQL driver
)

const createTable = `
CREATE TABLE IF NOT EXISTS generated_invoices (
	id             BIGSERIAL PRIMARY KEY,
	invoice_number TEXT NOT NULL,
	file_name      TEXT NOT NULL,
	location       TEXT NOT NULL,
	bill_to_name   TEXT NOT NULL,
	issue_date     DATE NOT NULL,
	due_date       DATE NOT NULL,
	subtotal       NUMERIC(14, 2) NOT NULL,
	tax_amount     NUMERIC(14, 2) NOT NULL,
	total          NUMERIC(14, 2) NOT NULL,
	item_count     INTEGER NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL
)`

const insertEntry = `
INSERT INTO generated_invoices
	(invoice_number, file_name, location, bill_to_name, issue_date, due_date,
	 subtotal, tax_amount, total, item_count, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

// PostgresRecorder writes entries to the generated_invoices table.
type PostgresRecorder struct {
	db *sql.DB
}

// Open connects to the database at dsn and creates the table if needed.
func Open(ctx context.Context, dsn string) (*PostgresRecorder, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	r := NewPostgresRecorder(db)
	if err := r.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// NewPostgresRecorder wraps an open database handle.
func NewPostgresRecorder(db *sql.DB) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// Migrate creates the generated_invoices table.
func (r *PostgresRecorder) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTable); err != nil {
		return fmt.Errorf("failed to create generated_invoices table: %w", err)
	}
	return nil
}

// Record inserts e.
func (r *PostgresRecorder) Record(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, insertEntry,
		e.InvoiceNumber, e.FileName, e.Location, e.BillToName,
		e.IssueDate, e.DueDate,
		e.Subtotal.StringFixed(2), e.TaxAmount.StringFixed(2), e.Total.StringFixed(2),
		e.ItemCount, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record invoice %q: %w", e.FileName, err)
	}
	return nil
}

// Close closes the database handle.
func (r *PostgresRecorder) Close() error {
	return r.db.Close()
}
