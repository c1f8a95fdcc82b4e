// pkg/render/inline.go

package render

import (
	"github.com/invoice-generator/pkg/invoice"
)

const (
	inlineTitleY    = 50.0
	inlineMetaTop   = 90.0
	inlinePartiesY  = 150.0
	inlineTableTop  = 210.0
	inlineRowStep   = 20.0
	inlineRightX    = 300.0
	inlineRightW    = 245.0
	inlineItemX     = 50.0
	inlineDescX     = 150.0
	inlineQtyX      = 350.0
	inlinePriceX    = 400.0
	inlineAmountX   = 450.0
	inlineAmountW   = 95.0
	inlineFirstRowY = inlineTableTop + 25
)

func (r *Renderer) drawInline(inv *invoice.Invoice, c Canvas) {
	c.SetFont(Regular, 20)
	c.Text(pageMargin, inlineTitleY, footerWidth, AlignCenter, "INVOICE")

	c.SetFont(Regular, 12)
	c.Text(pageMargin, inlineMetaTop, 0, AlignLeft, "Invoice Number: "+inv.Number)
	c.Text(pageMargin, inlineMetaTop+metaStep, 0, AlignLeft, "Date: "+invoice.FormatDate(inv.IssueDate))
	c.Text(pageMargin, inlineMetaTop+2*metaStep, 0, AlignLeft, "Due Date: "+invoice.FormatDate(inv.DueDate))

	fromName, fromLines := r.issuer(inv)
	c.Text(pageMargin, inlinePartiesY, 0, AlignLeft, "From: "+fromName)
	c.Text(inlineRightX, inlinePartiesY, inlineRightW, AlignRight, "To: "+inv.BillTo.Name)
	if len(fromLines) > 0 {
		c.Text(pageMargin, inlinePartiesY+metaStep, 0, AlignLeft, fromLines[0])
	}
	c.Text(inlineRightX, inlinePartiesY+metaStep, inlineRightW, AlignRight, inv.BillTo.Address)
	if loc := inv.BillTo.Locality(); loc != "" {
		c.Text(inlineRightX, inlinePartiesY+2*metaStep, inlineRightW, AlignRight, loc)
	}

	c.SetFont(Bold, 12)
	inlineRow(c, inlineTableTop, "Item", "Description", "Qty", "Price", "Amount")

	c.SetFont(Regular, 12)
	y := inlineFirstRowY
	for _, it := range inv.Items {
		inlineRow(c, y,
			it.Code,
			it.Description,
			invoice.FormatQuantity(it.Quantity),
			invoice.FormatMoney(it.UnitPrice),
			invoice.FormatMoney(it.Amount),
		)
		y += inlineRowStep
	}

	c.Rule(ruleLeft, ruleRight, y+20)

	c.SetFont(Bold, 12)
	totals := []totalLine{
		{"Subtotal:", invoice.FormatMoney(inv.Subtotal)},
		{"Tax (" + invoice.FormatPercent(inv.TaxRate) + "):", invoice.FormatMoney(inv.TaxAmount)},
		{"Total:", invoice.FormatMoney(inv.Total)},
	}
	if inv.AmountPaid.IsPositive() {
		totals = append(totals,
			totalLine{"Paid:", invoice.FormatMoney(inv.AmountPaid)},
			totalLine{"Balance Due:", invoice.FormatMoney(inv.BalanceDue())},
		)
	}
	last := y
	for i, t := range totals {
		last = y + 30 + float64(i)*totalsStep
		c.Text(inlinePriceX, last, 0, AlignLeft, t.label)
		c.Text(inlineAmountX, last, inlineAmountW, AlignRight, t.value)
	}

	drawNotes(c, inv.Notes, last+notesOffset)
	r.drawFooter(c)
}

type totalLine struct {
	label, value string
}

func inlineRow(c Canvas, y float64, item, description, qty, price, amount string) {
	c.Text(inlineItemX, y, 90, AlignLeft, item)
	c.Text(inlineDescX, y, 190, AlignLeft, description)
	c.Text(inlineQtyX, y, 50, AlignLeft, qty)
	c.Text(inlinePriceX, y, 50, AlignLeft, price)
	c.Text(inlineAmountX, y, inlineAmountW, AlignRight, amount)
}
