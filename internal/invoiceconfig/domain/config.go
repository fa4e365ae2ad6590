// Package domain models the invoice render configuration: an immutable value
// describing colors, layout, typography, section toggles, table shape,
// formatting and print options. The renderer only ever reads it; updates go
// through the path-based With, never in-place mutation.
package domain

// RGB is a color triple with 0-255 channels, matching the stored JSON shape.
type RGB [3]int

type Colors struct {
	Primary    RGB `json:"primary"`
	DarkGray   RGB `json:"darkGray"`
	LightGray  RGB `json:"lightGray"`
	BorderGray RGB `json:"borderGray"`
}

type Layout struct {
	PageSize       string  `json:"pageSize"`
	Orientation    string  `json:"orientation"`
	Margin         float64 `json:"margin"`
	HeaderHeight   float64 `json:"headerHeight"`
	SectionSpacing float64 `json:"sectionSpacing"`
}

// FontSpec is one typographic role: point size plus style
// (normal, bold, italic, bolditalic).
type FontSpec struct {
	Size  float64 `json:"size"`
	Style string  `json:"style"`
}

type Typography struct {
	CompanyName   FontSpec `json:"companyName"`
	InvoiceTitle  FontSpec `json:"invoiceTitle"`
	InvoiceNumber FontSpec `json:"invoiceNumber"`
	Body          FontSpec `json:"body"`
	TableHeader   FontSpec `json:"tableHeader"`
	Total         FontSpec `json:"total"`
}

type Logo struct {
	Enabled bool    `json:"enabled"`
	Text    string  `json:"text"`
	Size    float64 `json:"size"`
}

type Sections struct {
	Logo         bool `json:"logo"`
	CompanyInfo  bool `json:"companyInfo"`
	BillTo       bool `json:"billTo"`
	InvoiceDates bool `json:"invoiceDates"`
	ItemsTable   bool `json:"itemsTable"`
	Totals       bool `json:"totals"`
	Notes        bool `json:"notes"`
	Footer       bool `json:"footer"`
}

type Table struct {
	Columns             []string `json:"columns"`
	ShowAlternatingRows bool     `json:"showAlternatingRows"`
	RowSpacing          float64  `json:"rowSpacing"`
	BorderWidth         float64  `json:"borderWidth"`
	HeaderBackground    *RGB     `json:"headerBackground,omitempty"`
	HeaderTextColor     *RGB     `json:"headerTextColor,omitempty"`
}

type DateFormat struct {
	Format string `json:"format"`
	Locale string `json:"locale"`
}

type Currency struct {
	Symbol        string `json:"symbol"`
	DecimalPlaces int    `json:"decimalPlaces"`
	Locale        string `json:"locale"`
	Placement     string `json:"placement"`
}

type Footer struct {
	Text         string `json:"text"`
	ShowThankYou bool   `json:"showThankYou"`
}

type PDFMetadata struct {
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Subject  string   `json:"subject"`
	Keywords []string `json:"keywords"`
}

type Print struct {
	IncludePageNumbers bool        `json:"includePageNumbers"`
	PageNumberPosition string      `json:"pageNumberPosition"`
	DPI                int         `json:"dpi"`
	Bleed              float64     `json:"bleed"`
	PDFMetadata        PDFMetadata `json:"pdfMetadata"`
}

type Export struct {
	FileNamePattern  string `json:"fileNamePattern"`
	IncludeTimestamp bool   `json:"includeTimestamp"`
	TimestampFormat  string `json:"timestampFormat"`
}

type Watermark struct {
	Enabled  bool    `json:"enabled"`
	Text     string  `json:"text"`
	Opacity  float64 `json:"opacity"`
	Rotation float64 `json:"rotation"`
	FontSize float64 `json:"fontSize"`
	Color    RGB     `json:"color"`
}

// Config is the full render configuration. Treat values as immutable: derive
// changed copies via With.
type Config struct {
	Colors     Colors     `json:"colors"`
	Layout     Layout     `json:"layout"`
	Typography Typography `json:"typography"`
	Logo       Logo       `json:"logo"`
	Sections   Sections   `json:"sections"`
	Table      Table      `json:"table"`
	DateFormat DateFormat `json:"dateFormat"`
	Currency   Currency   `json:"currency"`
	Footer     *Footer    `json:"footer,omitempty"`
	Print      *Print     `json:"print,omitempty"`
	Export     *Export    `json:"export,omitempty"`
	Watermark  *Watermark `json:"watermark,omitempty"`
}

// CanonicalColumns is the fixed column order of the items table. Config may
// hide columns but never reorder them.
var CanonicalColumns = []string{"type", "description", "quantity", "rate", "amount"}

// Default returns the screen-display profile.
func Default() Config {
	return Config{
		Colors: Colors{
			Primary:    RGB{41, 99, 235},
			DarkGray:   RGB{31, 41, 55},
			LightGray:  RGB{243, 244, 246},
			BorderGray: RGB{229, 231, 235},
		},
		Layout: Layout{
			PageSize:       "letter",
			Orientation:    "portrait",
			Margin:         20,
			HeaderHeight:   32,
			SectionSpacing: 8,
		},
		Typography: Typography{
			CompanyName:   FontSpec{Size: 16, Style: "bold"},
			InvoiceTitle:  FontSpec{Size: 18, Style: "bold"},
			InvoiceNumber: FontSpec{Size: 10, Style: "normal"},
			Body:          FontSpec{Size: 8, Style: "normal"},
			TableHeader:   FontSpec{Size: 8, Style: "bold"},
			Total:         FontSpec{Size: 12, Style: "bold"},
		},
		Logo: Logo{Enabled: true, Text: "jfB", Size: 12},
		Sections: Sections{
			Logo:         true,
			CompanyInfo:  true,
			BillTo:       true,
			InvoiceDates: true,
			ItemsTable:   true,
			Totals:       true,
			Notes:        true,
			Footer:       true,
		},
		Table: Table{
			Columns:             append([]string(nil), CanonicalColumns...),
			ShowAlternatingRows: true,
			RowSpacing:          3,
			BorderWidth:         0.2,
		},
		DateFormat: DateFormat{Format: "MMM d, yyyy", Locale: "en-US"},
		Currency:   Currency{Symbol: "$", DecimalPlaces: 2, Locale: "en-US", Placement: "before"},
		Footer:     &Footer{Text: "Made with BlueJay Accounting", ShowThankYou: true},
	}
}

// PrintDefault returns the PDF-export profile: display defaults plus page
// numbering and document metadata.
func PrintDefault() Config {
	cfg := Default()
	cfg.Print = &Print{
		IncludePageNumbers: true,
		PageNumberPosition: "center",
		DPI:                300,
		PDFMetadata: PDFMetadata{
			Title:   "Invoice",
			Author:  "BlueJay Accounting",
			Subject: "Invoice",
		},
	}
	cfg.Export = &Export{
		FileNamePattern:  "invoice-{number}",
		IncludeTimestamp: false,
		TimestampFormat:  "yyyy-MM-dd",
	}
	return cfg
}
