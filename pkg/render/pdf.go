// pkg/render/pdf.go

package render

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/invoice-generator/pkg/invoice"
)

const fontFamily = "Helvetica"

// pdfCanvas draws onto a single A4 page with gofpdf.
type pdfCanvas struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	size float64
}

func newPDFCanvas(inv *invoice.Invoice, compress bool) *pdfCanvas {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(compress)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(creationDate(inv))
	pdf.SetTitle("Invoice "+inv.Number, true)
	pdf.SetCreator("invoice-generator", false)
	pdf.AddPage()
	pdf.SetTextColor(0x44, 0x44, 0x44)
	pdf.SetDrawColor(0xaa, 0xaa, 0xaa)
	pdf.SetLineWidth(1)

	c := &pdfCanvas{
		pdf: pdf,
		// Core fonts are cp1252 encoded.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	c.SetFont(Regular, 10)
	return c
}

// creationDate pins the document date so identical invoices produce
// identical files.
func creationDate(inv *invoice.Invoice) time.Time {
	if inv.IssueDate.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return inv.IssueDate
}

func (c *pdfCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
	c.size = size
}

func (c *pdfCanvas) Text(x, y, width float64, align Align, s string) {
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(width, c.size, c.tr(s), "", 0, string(align), false, 0, "")
}

func (c *pdfCanvas) TextBlock(x, y, width float64, s string) {
	c.pdf.SetXY(x, y)
	c.pdf.MultiCell(width, c.size*1.2, c.tr(s), "", string(AlignLeft), false)
}

func (c *pdfCanvas) Rule(x1, x2, y float64) {
	c.pdf.Line(x1, y, x2, y)
}

func (c *pdfCanvas) writeTo(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
