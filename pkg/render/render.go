// pkg/render/render.go

// Package render lays out canonical invoices as single-page PDF documents.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/invoice-generator/pkg/invoice"
)

// Style selects one of the page layouts.
type Style int

const (
	// StyleDetailed has a company header band, a two-column metadata block,
	// a ruled item table and a footer.
	StyleDetailed Style = iota
	// StyleInline prints From/To inline with a minimal table and shows the
	// tax rate in the tax label.
	StyleInline
)

func (s Style) String() string {
	switch s {
	case StyleDetailed:
		return "detailed"
	case StyleInline:
		return "inline"
	default:
		return fmt.Sprintf("Style(%d)", int(s))
	}
}

// ParseStyle maps a layout name to a Style. An empty name is StyleDetailed.
func ParseStyle(name string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "detailed":
		return StyleDetailed, nil
	case "inline", "simple":
		return StyleInline, nil
	default:
		return 0, fmt.Errorf("unknown layout %q (want detailed or inline)", name)
	}
}

// Company is printed in the header when the invoice carries no sender.
type Company struct {
	Name  string
	Lines []string
}

// DefaultCompany is the placeholder header.
var DefaultCompany = Company{
	Name:  "Your Company Name",
	Lines: []string{"123 Company Address", "City, State, ZIP", "Phone: (123) 456-7890"},
}

// DefaultFooter is printed at the bottom of every page.
const DefaultFooter = "Thank you for your business. Payment is due within 30 days."

// Options configures a Renderer.
type Options struct {
	Style    Style
	Company  Company
	Footer   string
	Compress bool
}

// Renderer turns an invoice into PDF bytes. It holds no per-document state
// and may be shared between goroutines.
type Renderer struct {
	opts Options
}

// New creates a Renderer. Empty company and footer fall back to the defaults.
func New(opts Options) *Renderer {
	if opts.Company.Name == "" {
		opts.Company = DefaultCompany
	}
	if opts.Footer == "" {
		opts.Footer = DefaultFooter
	}
	return &Renderer{opts: opts}
}

// Style reports the layout this renderer was built with.
func (r *Renderer) Style() Style {
	return r.opts.Style
}

// Render writes inv as a PDF document to w.
func (r *Renderer) Render(inv *invoice.Invoice, w io.Writer) error {
	c := newPDFCanvas(inv, r.opts.Compress)
	r.Draw(inv, c)
	return c.writeTo(w)
}

// Draw emits the layout of inv onto c.
func (r *Renderer) Draw(inv *invoice.Invoice, c Canvas) {
	switch r.opts.Style {
	case StyleInline:
		r.drawInline(inv, c)
	default:
		r.drawDetailed(inv, c)
	}
}

// issuer returns the header name and contact lines, preferring the sender on
// the invoice over the configured company.
func (r *Renderer) issuer(inv *invoice.Invoice) (string, []string) {
	if inv.From.Name == "" {
		return r.opts.Company.Name, r.opts.Company.Lines
	}
	var lines []string
	if inv.From.Address != "" {
		lines = append(lines, inv.From.Address)
	}
	if inv.From.Email != "" {
		lines = append(lines, inv.From.Email)
	}
	if inv.From.Phone != "" {
		lines = append(lines, "Phone: "+inv.From.Phone)
	}
	return inv.From.Name, lines
}
