package render

import (
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
	"github.com/JohnBartlett/bluejay-acct/pkg/format"
	"github.com/JohnBartlett/bluejay-acct/pkg/money"
)

// Page dimensions in mm.
var pageSizes = map[string][2]float64{
	"letter": {215.9, 279.4},
	"a4":     {210, 297},
}

const (
	baseRowHeight   = 12
	headerRowHeight = 8
	descColWidth    = 50
)

var white = configdomain.RGB{255, 255, 255}

// engine is the single-pass layout state: one cursor on one current page.
// Row parity survives page breaks so alternating fills stay continuous.
type engine struct {
	in  RenderInput
	cfg configdomain.Config
	log *zap.Logger

	pageW, pageH float64
	margin       float64
	contentW     float64

	doc     *Document
	page    *Page
	y       float64
	inTable bool
	parity  int

	dateLayout string
}

func newEngine(in RenderInput, cfg configdomain.Config, log *zap.Logger) *engine {
	size, ok := pageSizes[cfg.Layout.PageSize]
	if !ok {
		size = pageSizes["letter"]
	}
	w, h := size[0], size[1]
	if cfg.Layout.Orientation == "landscape" {
		w, h = h, w
	}

	layout, err := format.DateLayout(cfg.DateFormat.Format)
	if err != nil {
		log.Warn("invalid date format pattern, using default",
			zap.String("pattern", cfg.DateFormat.Format),
			zap.Error(err))
		layout, _ = format.DateLayout(format.DefaultDatePattern)
	}
	if loc := cfg.DateFormat.Locale; loc != "" && loc != "en-US" && loc != "en" {
		log.Warn("unsupported date locale, month and day names render in English",
			zap.String("locale", loc))
	}

	return &engine{
		in:         in,
		cfg:        cfg,
		log:        log,
		pageW:      w,
		pageH:      h,
		margin:     cfg.Layout.Margin,
		contentW:   w - 2*cfg.Layout.Margin,
		doc:        &Document{PageWidth: w, PageHeight: h},
		dateLayout: layout,
	}
}

func (e *engine) run() *Document {
	e.newPage()

	e.drawHeader()
	e.drawBillTo()
	e.drawItemsTable()
	e.drawTotals()
	e.drawNotes()
	e.drawFooter()

	e.numberPages()
	e.doc.PageCount = len(e.doc.Pages)
	return e.doc
}

// newPage finalizes nothing (ops are appended in place); it opens the next
// page, paints the watermark if enabled and resets the cursor.
func (e *engine) newPage() {
	e.page = &Page{Number: len(e.doc.Pages) + 1}
	e.doc.Pages = append(e.doc.Pages, e.page)
	e.y = e.margin
	e.paintWatermark()
}

// ensure breaks to a new page when the next block of height h would run past
// the printable area. Mid-table breaks repaint the table header.
func (e *engine) ensure(h float64) {
	if e.y+h <= e.pageH-e.margin {
		return
	}
	e.newPage()
	if e.inTable {
		e.paintTableHeader()
	}
}

func (e *engine) add(op Op) {
	e.page.Ops = append(e.page.Ops, op)
}

func (e *engine) paintWatermark() {
	w := e.cfg.Watermark
	if w == nil || !w.Enabled {
		return
	}
	rotation := w.Rotation
	if math.Abs(rotation) > 360 {
		e.log.Warn("unsupported watermark rotation, drawing unrotated",
			zap.Float64("rotation", rotation))
		rotation = 0
	}
	e.add(WatermarkOp{
		X:        e.pageW / 2,
		Y:        e.pageH / 2,
		Text:     w.Text,
		Size:     w.FontSize,
		Rotation: rotation,
		Opacity:  w.Opacity,
		Color:    blendTowardWhite(w.Color, w.Opacity),
	})
}

// blendTowardWhite simulates text opacity on a surface without an alpha
// channel by mixing the color with the white page background.
func blendTowardWhite(c configdomain.RGB, opacity float64) configdomain.RGB {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	blend := func(ch int) int {
		return int(math.Round(255 - (255-float64(ch))*opacity))
	}
	return configdomain.RGB{blend(c[0]), blend(c[1]), blend(c[2])}
}

func (e *engine) text(x, y float64, s string, spec configdomain.FontSpec, color configdomain.RGB, align Align) {
	if s == "" {
		return
	}
	e.add(TextOp{X: x, Y: y, Text: s, Size: spec.Size, Style: spec.Style, Color: color, Align: align})
}

// textWrapped draws s wrapped to width and returns the consumed height.
func (e *engine) textWrapped(x, y, width float64, s string, spec configdomain.FontSpec, color configdomain.RGB) float64 {
	lines := wrapText(s, width, spec.Size)
	for i, line := range lines {
		e.text(x, y+float64(i)*lineHeight(spec.Size), line, spec, color, AlignLeft)
	}
	return float64(len(lines)) * lineHeight(spec.Size)
}

func (e *engine) currency(c money.Cents) string {
	cur := e.cfg.Currency
	return format.Currency(c.Float64(), cur.Symbol, cur.DecimalPlaces, cur.Placement, cur.Locale)
}

// drawHeader paints the shaded header band: logo badge, company identity and
// the right-aligned invoice title, number and dates. Each piece honors its
// own section toggle; if all three are off the band is skipped entirely.
func (e *engine) drawHeader() {
	s := e.cfg.Sections
	if !s.Logo && !s.CompanyInfo && !s.InvoiceDates {
		return
	}
	c := e.cfg.Colors
	t := e.cfg.Typography
	headerH := e.cfg.Layout.HeaderHeight

	e.ensure(headerH + e.cfg.Layout.SectionSpacing)
	top := e.y
	e.add(RectOp{X: e.margin, Y: top, W: e.contentW, H: headerH, Fill: c.LightGray})

	textX := e.margin + 5
	if s.Logo && e.cfg.Logo.Enabled {
		logoSize := e.cfg.Logo.Size
		logoY := top + (headerH-logoSize*2)/2
		e.add(RectOp{X: textX, Y: logoY, W: logoSize * 2, H: logoSize * 2, Fill: c.Primary})
		e.text(textX+logoSize, logoY+logoSize+1.5, e.cfg.Logo.Text,
			configdomain.FontSpec{Size: 10, Style: "bold"}, white, AlignCenter)
		textX += logoSize*2 + 8
	}

	if s.CompanyInfo {
		y := top + 8
		e.text(textX, y, e.in.Company.Name, t.CompanyName, c.Primary, AlignLeft)
		y += 6
		for _, line := range addressLines(format.Address(e.in.Company.Address)) {
			e.text(textX, y, line, t.Body, c.DarkGray, AlignLeft)
			y += 4
		}
		if e.in.Company.Email != "" {
			e.text(textX, y, e.in.Company.Email, t.Body, c.DarkGray, AlignLeft)
			y += 4
		}
		if e.in.Company.Phone != "" {
			e.text(textX, y, format.Phone(e.in.Company.Phone), t.Body, c.DarkGray, AlignLeft)
		}
	}

	right := e.pageW - e.margin - 5
	e.text(right, top+8, "INVOICE", t.InvoiceTitle, c.Primary, AlignRight)
	e.text(right, top+15, "#"+e.in.Invoice.Number, t.InvoiceNumber, c.DarkGray, AlignRight)

	if s.InvoiceDates {
		e.text(right, top+21, "Invoice Date: "+e.formatDate(e.in.Invoice.Date),
			t.Body, c.DarkGray, AlignRight)
		if due := e.in.Invoice.DueDate; due != nil {
			e.text(right, top+26, "Due Date: "+e.formatDate(*due), t.Body, c.DarkGray, AlignRight)
		}
	}

	e.y = top + headerH + e.cfg.Layout.SectionSpacing
}

func (e *engine) drawBillTo() {
	if !e.cfg.Sections.BillTo {
		return
	}
	c := e.cfg.Colors
	t := e.cfg.Typography
	boxW := e.contentW/2 - 5
	innerW := boxW - 10

	cust := e.in.Customer
	lines := make([]string, 0, 8)
	if cust.Name != "" {
		lines = append(lines, format.Name(cust.Name))
	}
	lines = append(lines, addressLines(format.Address(cust.Address))...)
	if cust.Email != "" {
		lines = append(lines, cust.Email)
	}
	if cust.Phone != "" {
		lines = append(lines, format.Phone(cust.Phone))
	}

	contentH := 0.0
	for _, line := range lines {
		contentH += measuredHeight(line, innerW, t.Body.Size) + 1.5
	}
	boxH := 12 + contentH + 5

	e.ensure(boxH + e.cfg.Layout.SectionSpacing)
	top := e.y
	e.add(RectOp{X: e.margin, Y: top, W: boxW, H: boxH, Fill: c.LightGray})
	e.text(e.margin+5, top+7, "BILL TO:",
		configdomain.FontSpec{Size: t.Body.Size + 1, Style: "bold"}, c.DarkGray, AlignLeft)

	y := top + 12
	for _, line := range lines {
		h := e.textWrapped(e.margin+5, y, innerW, line, t.Body, c.DarkGray)
		y += h + 1.5
	}

	e.y = top + boxH + e.cfg.Layout.SectionSpacing
}

// visibleColumns filters the configured columns into canonical order.
func (e *engine) visibleColumns() []string {
	listed := make(map[string]bool, len(e.cfg.Table.Columns))
	for _, col := range e.cfg.Table.Columns {
		listed[col] = true
	}
	out := make([]string, 0, len(configdomain.CanonicalColumns))
	for _, col := range configdomain.CanonicalColumns {
		if listed[col] {
			out = append(out, col)
		}
	}
	return out
}

// Column anchor positions. Text columns anchor left, numeric columns anchor
// right, matching the printed invoice layout.
func (e *engine) columnAnchor(col string) (x float64, align Align) {
	switch col {
	case "type":
		return e.margin + 3, AlignLeft
	case "description":
		return e.margin + 35, AlignLeft
	case "quantity":
		return e.margin + 95, AlignRight
	case "rate":
		return e.margin + 125, AlignRight
	default: // amount
		return e.pageW - e.margin - 3, AlignRight
	}
}

func columnTitle(col string) string {
	switch col {
	case "type":
		return "Type"
	case "description":
		return "Description"
	case "quantity":
		return "Qty/Hrs"
	case "rate":
		return "Rate/Price"
	default:
		return "Amount"
	}
}

func (e *engine) paintTableHeader() {
	c := e.cfg.Colors
	headerBg := c.Primary
	if e.cfg.Table.HeaderBackground != nil {
		headerBg = *e.cfg.Table.HeaderBackground
	}
	headerText := white
	if e.cfg.Table.HeaderTextColor != nil {
		headerText = *e.cfg.Table.HeaderTextColor
	}

	e.add(RectOp{X: e.margin, Y: e.y, W: e.contentW, H: headerRowHeight, Fill: headerBg})
	for _, col := range e.visibleColumns() {
		x, align := e.columnAnchor(col)
		e.text(x, e.y+6, columnTitle(col), e.cfg.Typography.TableHeader, headerText, align)
	}
	e.y += headerRowHeight + 2
}

func (e *engine) drawItemsTable() {
	if !e.cfg.Sections.ItemsTable {
		return
	}
	c := e.cfg.Colors
	t := e.cfg.Typography
	small := configdomain.FontSpec{Size: t.Body.Size - 1, Style: "italic"}
	rowSpacing := e.cfg.Table.RowSpacing

	e.ensure(headerRowHeight + baseRowHeight)
	e.paintTableHeader()
	e.inTable = true

	for _, item := range e.in.Items {
		descH := measuredHeight(item.Description, descColWidth, t.Body.Size)
		longDescH := measuredHeight(item.LongDescription, descColWidth, small.Size)
		dateH := 0.0
		if item.Kind == invoicedomain.KindTime && item.Date != nil {
			dateH = lineHeight(small.Size)
		}

		contentH := 7 + descH + 5
		if longDescH > 0 {
			contentH += longDescH + 2
		}
		if dateH > 0 {
			contentH += dateH + 1
		}
		rowH := math.Max(baseRowHeight, contentH)

		e.ensure(rowH + rowSpacing)
		top := e.y

		if e.cfg.Table.ShowAlternatingRows && e.parity%2 == 1 {
			e.add(RectOp{X: e.margin, Y: top, W: e.contentW, H: rowH, Fill: c.LightGray})
		}

		midY := top + rowH/2
		for _, col := range e.visibleColumns() {
			x, align := e.columnAnchor(col)
			switch col {
			case "type":
				e.text(x, midY, string(item.Kind),
					configdomain.FontSpec{Size: small.Size, Style: "bold"}, c.DarkGray, align)
			case "description":
				y := top + 7
				e.textWrapped(x, y, descColWidth, item.Description,
					configdomain.FontSpec{Size: t.Body.Size, Style: "bold"}, c.DarkGray)
				y += descH + 2
				if longDescH > 0 {
					e.textWrapped(x+2, y, descColWidth, item.LongDescription, small, c.DarkGray)
					y += longDescH + 2
				}
				if dateH > 0 {
					e.text(x+2, y, "Date: "+e.formatDate(*item.Date), small, c.DarkGray, align)
				}
			case "quantity":
				e.text(x, midY, e.quantityCell(item), t.Body, c.DarkGray, align)
			case "rate":
				e.text(x, midY, e.rateCell(item), t.Body, c.DarkGray, align)
			case "amount":
				e.text(x, midY, e.currency(item.Amount),
					configdomain.FontSpec{Size: t.Body.Size, Style: "bold"}, c.DarkGray, align)
			}
		}

		e.add(LineOp{
			X1: e.margin, Y1: top + rowH,
			X2: e.pageW - e.margin, Y2: top + rowH,
			Width: e.cfg.Table.BorderWidth, Color: c.BorderGray,
		})

		e.y = top + rowH + rowSpacing
		e.parity++
	}

	e.inTable = false
	e.y += e.cfg.Layout.SectionSpacing
}

func (e *engine) quantityCell(item ItemView) string {
	if item.Kind == invoicedomain.KindTime {
		return fmt.Sprintf("%.2f", money.Coerce(item.Hours))
	}
	return fmt.Sprintf("%.2f", money.Coerce(item.Quantity))
}

func (e *engine) rateCell(item ItemView) string {
	if item.Kind == invoicedomain.KindTime {
		return e.currency(money.Cents(math.Round(money.Coerce(item.HourlyRate) * 100)))
	}
	return e.currency(money.Cents(math.Round(money.Coerce(item.UnitPrice) * 100)))
}

func (e *engine) drawTotals() {
	if !e.cfg.Sections.Totals {
		return
	}
	c := e.cfg.Colors
	t := e.cfg.Typography
	boxW := 80.0
	boxX := e.pageW - e.margin - boxW
	right := e.pageW - e.margin - 5

	rows := [][2]string{
		{"Subtotal:", e.currency(e.in.Invoice.Subtotal)},
		{"Tax:", e.currency(e.in.Invoice.Tax)},
	}
	if e.in.Invoice.Fee > 0 {
		rows = append(rows, [2]string{"Card Fee:", e.currency(e.in.Invoice.Fee)})
	}
	boxH := 7 + float64(len(rows))*5 + 6 + 6 + 3

	e.ensure(boxH + e.cfg.Layout.SectionSpacing)
	top := e.y
	e.add(RectOp{X: boxX, Y: top, W: boxW, H: boxH, Fill: c.LightGray})

	y := top + 7
	label := configdomain.FontSpec{Size: t.Body.Size + 1, Style: "normal"}
	for _, row := range rows {
		e.text(boxX+5, y, row[0], label, c.DarkGray, AlignLeft)
		e.text(right, y, row[1], label, c.DarkGray, AlignRight)
		y += 5
	}
	y += 1
	e.add(LineOp{X1: boxX + 5, Y1: y, X2: right, Y2: y, Width: 0.5, Color: c.BorderGray})
	y += 6
	e.text(boxX+5, y, "Total:", t.Total, c.Primary, AlignLeft)
	e.text(right, y, e.currency(e.in.Invoice.Total), t.Total, c.Primary, AlignRight)

	e.y = top + boxH + e.cfg.Layout.SectionSpacing
}

func (e *engine) drawNotes() {
	if !e.cfg.Sections.Notes || e.in.Invoice.Notes == "" {
		return
	}
	c := e.cfg.Colors
	t := e.cfg.Typography
	innerW := e.contentW - 10

	notesH := measuredHeight(e.in.Invoice.Notes, innerW, t.Body.Size)
	boxH := math.Max(15, notesH+9+3)

	e.ensure(boxH + e.cfg.Layout.SectionSpacing)
	top := e.y
	e.add(RectOp{X: e.margin, Y: top, W: e.contentW, H: boxH, Fill: c.LightGray})
	e.text(e.margin+5, top+5, "Notes:",
		configdomain.FontSpec{Size: t.Body.Size, Style: "bold"}, c.DarkGray, AlignLeft)
	e.textWrapped(e.margin+5, top+9, innerW, e.in.Invoice.Notes, t.Body, c.DarkGray)

	e.y = top + boxH + e.cfg.Layout.SectionSpacing
}

// drawFooter paints the closing line and footer text near the bottom edge of
// the final page.
func (e *engine) drawFooter() {
	f := e.cfg.Sections
	if !f.Footer {
		return
	}
	c := e.cfg.Colors
	t := e.cfg.Typography
	footerY := e.pageH - 20

	// With a margin under 20 the content area extends past the footer band;
	// break rather than paint over the last block.
	if e.y > footerY {
		e.newPage()
	}

	e.add(LineOp{X1: e.margin, Y1: footerY, X2: e.pageW - e.margin, Y2: footerY, Width: 0.3, Color: c.BorderGray})

	center := e.pageW / 2
	y := footerY + 6
	if e.cfg.Footer == nil || e.cfg.Footer.ShowThankYou {
		e.text(center, y, "Thank you for your business!", t.Body, c.DarkGray, AlignCenter)
		y += 5
	}
	if e.cfg.Footer != nil && e.cfg.Footer.Text != "" {
		e.text(center, y, e.cfg.Footer.Text,
			configdomain.FontSpec{Size: t.Body.Size - 1, Style: "italic"}, c.BorderGray, AlignCenter)
	}
}

// numberPages runs after the page count is final and stamps every page.
func (e *engine) numberPages() {
	p := e.cfg.Print
	if p == nil || !p.IncludePageNumbers {
		return
	}
	total := len(e.doc.Pages)
	y := e.pageH - e.margin/2

	var x float64
	var align Align
	switch p.PageNumberPosition {
	case "left":
		x, align = e.margin, AlignLeft
	case "right":
		x, align = e.pageW-e.margin, AlignRight
	default:
		x, align = e.pageW/2, AlignCenter
	}

	for _, page := range e.doc.Pages {
		page.Ops = append(page.Ops, TextOp{
			X: x, Y: y,
			Text:  fmt.Sprintf("Page %d of %d", page.Number, total),
			Size:  e.cfg.Typography.Body.Size - 1,
			Style: "normal",
			Color: e.cfg.Colors.DarkGray,
			Align: align,
		})
	}
}

func (e *engine) formatDate(t time.Time) string {
	return t.Format(e.dateLayout)
}

func addressLines(address string) []string {
	if address == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(address, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
