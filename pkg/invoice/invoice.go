// pkg/invoice/invoice.go

package invoice

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice represents the canonical invoice data model. It is built once per
// request by a Normalizer and is not modified afterwards.
type Invoice struct {
	Number     string
	IssueDate  time.Time
	DueDate    time.Time
	From       Sender
	BillTo     BillTo
	Items      []Item
	TaxRate    decimal.Decimal
	Subtotal   decimal.Decimal
	TaxAmount  decimal.Decimal
	Total      decimal.Decimal
	AmountPaid decimal.Decimal
	Notes      string
}

// Sender is the party issuing the invoice.
type Sender struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

// BillTo is the customer the invoice is addressed to. City, State and Country
// are empty strings when the client did not send them.
type BillTo struct {
	Name    string
	Address string
	City    string
	State   string
	Country string
}

// Item represents an item in the invoice.
type Item struct {
	Code        string
	Description string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	Amount      decimal.Decimal
}

// BalanceDue is what remains to be paid after AmountPaid.
func (inv *Invoice) BalanceDue() decimal.Decimal {
	return inv.Total.Sub(inv.AmountPaid)
}

// Locality joins the non-empty city, state and country parts.
func (b BillTo) Locality() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{b.City, b.State, b.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
