// pkg/invoice/format.go

package invoice

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006/01/02"

var (
	hundred      = decimal.NewFromInt(100)
	unsafeFileCh = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// FormatMoney renders an amount as dollars with exactly two decimals,
// rounding half away from zero.
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatDate renders t as YYYY/MM/DD.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatQuantity prints a quantity without trailing zeros ("2", "1.5").
func FormatQuantity(d decimal.Decimal) string {
	return d.String()
}

// FormatPercent renders a fractional rate as a percentage, 0.1 -> "10.00%".
func FormatPercent(rate decimal.Decimal) string {
	return rate.Mul(hundred).StringFixed(2) + "%"
}

// FileName returns the output file name for an invoice number. A blank number
// falls back to the Unix time in milliseconds. Characters that are not safe in
// a file name are replaced so the result never leaves its directory.
func FileName(number string, now time.Time) string {
	number = strings.TrimSpace(number)
	if number == "" {
		number = strconv.FormatInt(now.UnixMilli(), 10)
	}
	return "invoice_" + unsafeFileCh.ReplaceAllString(number, "_") + ".pdf"
}

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
