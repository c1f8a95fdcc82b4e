// pkg/invoice/normalize.go

package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultPaymentTerm is used for the due date when a request has none.
const DefaultPaymentTerm = 30 * 24 * time.Hour

var dateInputLayouts = []string{"2006-01-02", time.RFC3339, time.RFC3339Nano}

// Numeric inputs stay below maxAmount with an exponent within ±maxExponent.
// The exponent must be checked first: Cmp rescales through 10^|exponent|.
const maxExponent = 12

var maxAmount = decimal.New(1, maxExponent)

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithCodeGenerator replaces the placeholder generator used for items without
// an item code.
func WithCodeGenerator(gen func() string) Option {
	return func(n *Normalizer) {
		n.newCode = gen
	}
}

// WithClock sets the time source for default dates and file names.
func WithClock(now func() time.Time) Option {
	return func(n *Normalizer) {
		n.now = now
	}
}

// Normalizer turns client requests into canonical invoices.
type Normalizer struct {
	newCode func() string
	now     func() time.Time
}

// NewNormalizer creates a Normalizer with random placeholder codes and the
// wall clock.
func NewNormalizer(opts ...Option) *Normalizer {
	n := &Normalizer{
		newCode: PlaceholderCode,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// PlaceholderCode returns a short random code such as "Item-3f9a1". Codes are
// not guaranteed to be unique.
func PlaceholderCode() string {
	return "Item-" + strings.ReplaceAll(uuid.NewString(), "-", "")[:5]
}

// Now returns the normalizer's current time.
func (n *Normalizer) Now() time.Time {
	return n.now()
}

// Normalize validates req and computes line totals, subtotal, tax and total.
// A *ValidationError is returned for the first rejected field.
func (n *Normalizer) Normalize(req Request) (*Invoice, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	issued, err := parseDate("date", req.Date, truncateDay(n.now()))
	if err != nil {
		return nil, err
	}
	due, err := parseDate("dueDate", req.DueDate, issued.Add(DefaultPaymentTerm))
	if err != nil {
		return nil, err
	}

	inv := &Invoice{
		Number:    strings.TrimSpace(req.InvoiceNumber),
		IssueDate: issued,
		DueDate:   due,
		BillTo: BillTo{
			Name:    req.To.Name,
			Address: req.To.Address,
			City:    req.To.City,
			State:   req.To.State,
			Country: req.To.Country,
		},
		Items:      make([]Item, 0, len(req.Items)),
		TaxRate:    req.TaxRate,
		AmountPaid: req.Paid,
		Notes:      strings.TrimSpace(req.Notes),
	}
	if req.From != nil {
		inv.From = Sender{
			Name:    req.From.Name,
			Address: req.From.Address,
			Email:   req.From.Email,
			Phone:   req.From.Phone,
		}
	}

	subtotal := decimal.Zero
	for _, it := range req.Items {
		code := strings.TrimSpace(it.ItemCode)
		if code == "" {
			code = n.newCode()
		}
		amount := round2(it.Quantity.Mul(it.Price))
		inv.Items = append(inv.Items, Item{
			Code:        code,
			Description: it.Description,
			UnitPrice:   it.Price,
			Quantity:    it.Quantity,
			Amount:      amount,
		})
		subtotal = subtotal.Add(amount)
	}

	inv.Subtotal = subtotal
	inv.TaxAmount = round2(subtotal.Mul(req.TaxRate))
	inv.Total = inv.Subtotal.Add(inv.TaxAmount)
	return inv, nil
}

func validate(req Request) error {
	if req.To == nil {
		return invalid("to", "is required")
	}
	if strings.TrimSpace(req.To.Name) == "" {
		return invalid("to.name", "is required")
	}
	if strings.TrimSpace(req.To.Address) == "" {
		return invalid("to.address", "is required")
	}
	if req.Items == nil {
		return invalid("items", "is required")
	}
	for i, it := range req.Items {
		if err := checkAmount(fmt.Sprintf("items[%d].quantity", i), it.Quantity); err != nil {
			return err
		}
		if err := checkAmount(fmt.Sprintf("items[%d].price", i), it.Price); err != nil {
			return err
		}
	}
	if err := checkAmount("taxRate", req.TaxRate); err != nil {
		return err
	}
	if err := checkAmount("paid", req.Paid); err != nil {
		return err
	}
	return nil
}

func checkAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return invalid(field, "must not be negative")
	}
	if exp := d.Exponent(); exp < -maxExponent || exp > maxExponent {
		return invalid(field, "is out of range")
	}
	if d.Cmp(maxAmount) >= 0 {
		return invalid(field, "must be less than %s", maxAmount)
	}
	return nil
}

func parseDate(field, value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	for _, layout := range dateInputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, invalid(field, "unrecognized date %q, want YYYY-MM-DD", value)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
