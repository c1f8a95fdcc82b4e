// pkg/invoice/request.go

package invoice

import "github.com/shopspring/decimal"

// Request is the invoice payload as submitted by a client. Nothing in it is
// trusted until it has gone through a Normalizer.
type Request struct {
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	DueDate       string          `json:"dueDate"`
	From          *RequestSender  `json:"from"`
	To            *RequestBillTo  `json:"to"`
	Items         []RequestItem   `json:"items"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	Paid          decimal.Decimal `json:"paid"`
	Notes         string          `json:"notes"`
}

type RequestSender struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type RequestBillTo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

type RequestItem struct {
	ItemCode    string          `json:"itemCode"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}
