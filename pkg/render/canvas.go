// pkg/render/canvas.go

package render

// Align is the horizontal alignment of text inside its box.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Font styles understood by SetFont.
const (
	Regular = ""
	Bold    = "B"
)

// Canvas receives the drawing operations of a layout. Coordinates are in
// points with the origin at the top-left corner of the page; y is the top of
// the text box.
type Canvas interface {
	SetFont(style string, size float64)
	// Text draws a single line. A zero width extends the box to the right
	// margin.
	Text(x, y, width float64, align Align, s string)
	// TextBlock draws s wrapped to width.
	TextBlock(x, y, width float64, s string)
	// Rule draws a horizontal separator from x1 to x2.
	Rule(x1, x2, y float64)
}
