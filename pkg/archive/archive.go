// pkg/archive/archive.go

// Package archive keeps a record of every generated invoice file.
package archive

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/invoice-generator/pkg/invoice"
)

// Entry describes one generated document.
type Entry struct {
	InvoiceNumber string
	FileName      string
	Location      string
	BillToName    string
	IssueDate     time.Time
	DueDate       time.Time
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	Total         decimal.Decimal
	ItemCount     int
	CreatedAt     time.Time
}

// NewEntry summarizes inv after it was stored at location.
func NewEntry(inv *invoice.Invoice, fileName, location string, now time.Time) Entry {
	return Entry{
		InvoiceNumber: inv.Number,
		FileName:      fileName,
		Location:      location,
		BillToName:    inv.BillTo.Name,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		TaxAmount:     inv.TaxAmount,
		Total:         inv.Total,
		ItemCount:     len(inv.Items),
		CreatedAt:     now.UTC(),
	}
}

// Recorder stores archive entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// NopRecorder discards entries. It is used when no database is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Entry) error { return nil }
