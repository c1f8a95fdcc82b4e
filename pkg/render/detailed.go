// pkg/render/detailed.go

package render

import (
	"github.com/invoice-generator/pkg/invoice"
)

const (
	pageMargin = 50.0
	ruleLeft   = 50.0
	ruleRight  = 550.0

	headerContactX     = 200.0
	headerContactWidth = 345.0
	headerContactTop   = 50.0

	metaTop       = 200.0
	metaStep      = 15.0
	metaLabelX    = 50.0
	metaValueX    = 150.0
	billToX       = 300.0
	metaTopRule   = 185.0
	metaCloseRule = 252.0

	tableTop    = 330.0
	itemStep    = 30.0
	totalsStep  = 20.0
	notesOffset = 40.0

	footerY     = 780.0
	footerWidth = 500.0
)

func (r *Renderer) drawDetailed(inv *invoice.Invoice, c Canvas) {
	name, lines := r.issuer(inv)
	c.SetFont(Regular, 20)
	c.Text(pageMargin, 57, 0, AlignLeft, name)
	c.SetFont(Regular, 10)
	for i, line := range lines {
		c.Text(headerContactX, headerContactTop+float64(i)*metaStep, headerContactWidth, AlignRight, line)
	}

	c.SetFont(Regular, 20)
	c.Text(pageMargin, 160, 0, AlignLeft, "Invoice")
	c.Rule(ruleLeft, ruleRight, metaTopRule)

	c.SetFont(Regular, 10)
	c.Text(metaLabelX, metaTop, 0, AlignLeft, "Invoice Number:")
	c.SetFont(Bold, 10)
	c.Text(metaValueX, metaTop, 0, AlignLeft, inv.Number)
	c.SetFont(Regular, 10)
	c.Text(metaLabelX, metaTop+metaStep, 0, AlignLeft, "Invoice Date:")
	c.Text(metaValueX, metaTop+metaStep, 0, AlignLeft, invoice.FormatDate(inv.IssueDate))
	c.Text(metaLabelX, metaTop+2*metaStep, 0, AlignLeft, "Due Date:")
	c.Text(metaValueX, metaTop+2*metaStep, 0, AlignLeft, invoice.FormatDate(inv.DueDate))

	c.SetFont(Bold, 10)
	c.Text(billToX, metaTop, 0, AlignLeft, inv.BillTo.Name)
	c.SetFont(Regular, 10)
	c.Text(billToX, metaTop+metaStep, 0, AlignLeft, inv.BillTo.Address)
	c.Text(billToX, metaTop+2*metaStep, 0, AlignLeft, inv.BillTo.Locality())
	c.Rule(ruleLeft, ruleRight, metaCloseRule)

	c.SetFont(Bold, 10)
	tableRow(c, tableTop, "Item", "Description", "Unit Price", "Quantity", "Line Total")
	c.Rule(ruleLeft, ruleRight, tableTop+20)
	c.SetFont(Regular, 10)

	for i, it := range inv.Items {
		y := itemRowY(i)
		tableRow(c, y,
			it.Code,
			it.Description,
			invoice.FormatMoney(it.UnitPrice),
			invoice.FormatQuantity(it.Quantity),
			invoice.FormatMoney(it.Amount),
		)
		c.Rule(ruleLeft, ruleRight, y+20)
	}

	y := itemRowY(len(inv.Items))
	tableRow(c, y, "", "", "Subtotal", "", invoice.FormatMoney(inv.Subtotal))
	y += totalsStep
	tableRow(c, y, "", "", "Tax", "", invoice.FormatMoney(inv.TaxAmount))
	y += totalsStep
	c.SetFont(Bold, 10)
	tableRow(c, y, "", "", "Total", "", invoice.FormatMoney(inv.Total))
	c.SetFont(Regular, 10)

	if inv.AmountPaid.IsPositive() {
		y += totalsStep
		tableRow(c, y, "", "", "Paid", "", invoice.FormatMoney(inv.AmountPaid))
		y += totalsStep
		c.SetFont(Bold, 10)
		tableRow(c, y, "", "", "Balance Due", "", invoice.FormatMoney(inv.BalanceDue()))
		c.SetFont(Regular, 10)
	}

	drawNotes(c, inv.Notes, y+notesOffset)
	r.drawFooter(c)
}

// itemRowY is the top of item row i; row len(items) is the subtotal row.
func itemRowY(i int) float64 {
	return tableTop + float64(i+1)*itemStep
}

func tableRow(c Canvas, y float64, item, description, unitPrice, quantity, lineTotal string) {
	c.Text(50, y, 90, AlignLeft, item)
	c.Text(150, y, 150, AlignLeft, description)
	c.Text(300, y, 90, AlignRight, unitPrice)
	c.Text(390, y, 60, AlignRight, quantity)
	c.Text(450, y, 90, AlignRight, lineTotal)
}

func drawNotes(c Canvas, notes string, y float64) {
	if notes == "" {
		return
	}
	c.SetFont(Bold, 10)
	c.Text(pageMargin, y, 0, AlignLeft, "Notes")
	c.SetFont(Regular, 10)
	c.TextBlock(pageMargin, y+metaStep, footerWidth, notes)
}

func (r *Renderer) drawFooter(c Canvas) {
	c.SetFont(Regular, 10)
	c.Text(pageMargin, footerY, footerWidth, AlignCenter, r.opts.Footer)
}
