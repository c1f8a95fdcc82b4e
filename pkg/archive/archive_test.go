package archive_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoice-generator/pkg/archive"
	"github.com/invoice-generator/pkg/invoice"
)

func sampleInvoice() *invoice.Invoice {
	return &invoice.Invoice{
		Number:    "INV-42",
		IssueDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Date(2024, 4, 4, 0, 0, 0, 0, time.UTC),
		BillTo:    invoice.BillTo{Name: "Acme Corp", Address: "1 Main St"},
		Items:     make([]invoice.Item, 2),
		Subtotal:  decimal.RequireFromString("25.50"),
		TaxAmount: decimal.RequireFromString("2.55"),
		Total:     decimal.RequireFromString("28.05"),
	}
}

func TestNewEntry(t *testing.T) {
	now := time.Date(2024, 3, 5, 10, 0, 0, 0, time.FixedZone("X", 3600))
	e := archive.NewEntry(sampleInvoice(), "invoice_INV-42.pdf", "/out/invoice_INV-42.pdf", now)

	assert.Equal(t, "INV-42", e.InvoiceNumber)
	assert.Equal(t, "invoice_INV-42.pdf", e.FileName)
	assert.Equal(t, "/out/invoice_INV-42.pdf", e.Location)
	assert.Equal(t, "Acme Corp", e.BillToName)
	assert.Equal(t, 2, e.ItemCount)
	assert.Equal(t, "28.05", e.Total.StringFixed(2))
	assert.Equal(t, time.UTC, e.CreatedAt.Location())
	assert.True(t, e.CreatedAt.Equal(now))
}

func TestNopRecorder(t *testing.T) {
	var r archive.Recorder = archive.NopRecorder{}
	assert.NoError(t, r.Record(context.Background(), archive.Entry{}))
}

// Skips if TEST_DATABASE_URL is not set.
func TestPostgresRecorder_Record(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	rec, err := archive.Open(ctx, dsn)
	require.NoError(t, err)
	defer rec.Close()

	// Migrate is safe to repeat.
	require.NoError(t, rec.Migrate(ctx))

	name := "invoice_test_" + time.Now().Format("150405.000000000") + ".pdf"
	e := archive.NewEntry(sampleInvoice(), name, "/tmp/"+name, time.Now())
	require.NoError(t, rec.Record(ctx, e))
}

func TestOpen_BadDSN(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := archive.Open(ctx, "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1")
	assert.Error(t, err)
}
