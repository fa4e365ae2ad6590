package render

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
)

var fontStyles = map[string]string{
	"normal":     "",
	"bold":       "B",
	"italic":     "I",
	"bolditalic": "BI",
}

// writePDF replays a finished layout trace onto a PDF surface. Every
// coordinate decision already happened in the engine; this pass only
// translates ops into draw calls.
func writePDF(doc *Document, cfg configdomain.Config) ([]byte, error) {
	orientation := "P"
	if cfg.Layout.Orientation == "landscape" {
		orientation = "L"
	}
	size := "Letter"
	if cfg.Layout.PageSize == "a4" {
		size = "A4"
	}

	pdf := fpdf.New(orientation, "mm", size, "")
	pdf.SetAutoPageBreak(false, 0)
	applyMetadata(pdf, cfg)

	for _, page := range doc.Pages {
		pdf.AddPage()
		for _, op := range page.Ops {
			switch o := op.(type) {
			case RectOp:
				pdf.SetFillColor(o.Fill[0], o.Fill[1], o.Fill[2])
				pdf.Rect(o.X, o.Y, o.W, o.H, "F")
			case LineOp:
				pdf.SetDrawColor(o.Color[0], o.Color[1], o.Color[2])
				pdf.SetLineWidth(o.Width)
				pdf.Line(o.X1, o.Y1, o.X2, o.Y2)
			case TextOp:
				drawText(pdf, o)
			case WatermarkOp:
				drawWatermark(pdf, o)
			}
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func applyMetadata(pdf *fpdf.Fpdf, cfg configdomain.Config) {
	if cfg.Print == nil {
		return
	}
	meta := cfg.Print.PDFMetadata
	if meta.Title != "" {
		pdf.SetTitle(meta.Title, true)
	}
	if meta.Author != "" {
		pdf.SetAuthor(meta.Author, true)
	}
	if meta.Subject != "" {
		pdf.SetSubject(meta.Subject, true)
	}
	if len(meta.Keywords) > 0 {
		pdf.SetKeywords(strings.Join(meta.Keywords, ", "), true)
	}
}

func setFont(pdf *fpdf.Fpdf, size float64, style string) {
	pdf.SetFont("Helvetica", fontStyles[style], size)
}

// drawText anchors the string at the op's X according to its alignment. The
// engine positions text by anchor point, not cell, so alignment resolves to
// a plain coordinate shift here.
func drawText(pdf *fpdf.Fpdf, o TextOp) {
	setFont(pdf, o.Size, o.Style)
	pdf.SetTextColor(o.Color[0], o.Color[1], o.Color[2])

	x := o.X
	switch o.Align {
	case AlignRight:
		x -= pdf.GetStringWidth(o.Text)
	case AlignCenter:
		x -= pdf.GetStringWidth(o.Text) / 2
	}
	pdf.Text(x, o.Y, o.Text)
}

func drawWatermark(pdf *fpdf.Fpdf, o WatermarkOp) {
	setFont(pdf, o.Size, "bold")
	pdf.SetTextColor(o.Color[0], o.Color[1], o.Color[2])

	pdf.TransformBegin()
	pdf.TransformRotate(o.Rotation, o.X, o.Y)
	pdf.Text(o.X-pdf.GetStringWidth(o.Text)/2, o.Y, o.Text)
	pdf.TransformEnd()
}
