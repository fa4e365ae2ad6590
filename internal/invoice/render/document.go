package render

import (
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
)

// Align is the horizontal anchor of a text run. For AlignLeft, X is the left
// edge; for AlignRight the right edge; for AlignCenter the midpoint. Backends
// resolve the anchor with their own font metrics.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Op is one positioned draw operation on a page. Coordinates are millimeters
// from the page's top-left corner.
type Op interface {
	op()
}

// TextOp draws a single line of text at a baseline position.
type TextOp struct {
	X, Y  float64
	Text  string
	Size  float64
	Style string // normal, bold, italic, bolditalic
	Color configdomain.RGB
	Align Align
}

// RectOp draws a filled rectangle.
type RectOp struct {
	X, Y, W, H float64
	Fill       configdomain.RGB
}

// LineOp draws a stroked line segment.
type LineOp struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Color          configdomain.RGB
}

// WatermarkOp draws the rotated page watermark centered at (X, Y). Color is
// already blended toward white for the configured opacity because the
// drawing surface has no alpha channel for text; Opacity records the
// configured value for inspection.
type WatermarkOp struct {
	X, Y     float64
	Text     string
	Size     float64
	Rotation float64
	Opacity  float64
	Color    configdomain.RGB
}

func (TextOp) op()      {}
func (RectOp) op()      {}
func (LineOp) op()      {}
func (WatermarkOp) op() {}

// Page is one laid-out page: its resolved number and draw operations in
// paint order.
type Page struct {
	Number int
	Ops    []Op
}

// Document is the layout trace for one rendered invoice. The same trace
// drives both the PDF backend and the on-screen view, so both present
// identical section ordering and metrics.
type Document struct {
	Pages      []*Page
	PageCount  int
	PageWidth  float64
	PageHeight float64
}

// TextContent flattens every text run (including watermarks) in page and
// paint order. Useful for determinism checks.
func (d *Document) TextContent() []string {
	var out []string
	for _, p := range d.Pages {
		for _, op := range p.Ops {
			switch t := op.(type) {
			case TextOp:
				out = append(out, t.Text)
			case WatermarkOp:
				out = append(out, t.Text)
			}
		}
	}
	return out
}
