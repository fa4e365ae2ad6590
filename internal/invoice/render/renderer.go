// Package render lays an invoice out into fixed-size pages of positioned
// draw operations and serializes them to PDF. Layout is a single sequential
// pass over the sections with one running vertical cursor; page breaks,
// watermarking and header repaints happen at page boundaries. The package is
// pure with respect to its inputs: no storage, no shared state, safe for
// concurrent use across invocations.
package render

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	invoicedomain "github.com/JohnBartlett/bluejay-acct/internal/invoice/domain"
	configdomain "github.com/JohnBartlett/bluejay-acct/internal/invoiceconfig/domain"
	"github.com/JohnBartlett/bluejay-acct/pkg/money"
)

// RenderInput is the fully-resolved data for one render call. Company,
// Customer and Items are required; rendering never proceeds with partial
// data.
type RenderInput struct {
	Company  *CompanyView
	Customer *CustomerView
	Invoice  InvoiceView
	Items    []ItemView
}

type CompanyView struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

type CustomerView struct {
	Name    string
	Address string
	Email   string
	Phone   string
}

type InvoiceView struct {
	Number   string
	Date     time.Time
	DueDate  *time.Time
	Subtotal money.Cents
	Tax      money.Cents
	Fee      money.Cents
	Total    money.Cents
	Notes    string
}

type ItemView struct {
	Kind            invoicedomain.ItemKind
	Description     string
	LongDescription string
	Date            *time.Time
	Hours           float64
	HourlyRate      float64
	Quantity        float64
	UnitPrice       float64
	Amount          money.Cents
}

var (
	ErrInvalidInvoice = errors.New("invalid_invoice")
)

// Renderer turns an invoice plus a render configuration into a layout trace
// and, optionally, PDF bytes.
type Renderer interface {
	Render(input RenderInput, cfg configdomain.Config) (*Document, error)
	RenderPDF(input RenderInput, cfg configdomain.Config) ([]byte, *Document, error)
}

type renderer struct {
	log *zap.Logger
}

func NewRenderer(log *zap.Logger) Renderer {
	return &renderer{log: log.Named("invoice.render")}
}

func (r *renderer) Render(input RenderInput, cfg configdomain.Config) (*Document, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := newEngine(input, cfg, r.log)
	return e.run(), nil
}

func (r *renderer) RenderPDF(input RenderInput, cfg configdomain.Config) ([]byte, *Document, error) {
	doc, err := r.Render(input, cfg)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := writePDF(doc, cfg)
	if err != nil {
		return nil, nil, err
	}
	return pdf, doc, nil
}

func validateInput(input RenderInput) error {
	if input.Company == nil {
		return fmt.Errorf("%w: company is required", ErrInvalidInvoice)
	}
	if input.Customer == nil {
		return fmt.Errorf("%w: customer is required", ErrInvalidInvoice)
	}
	if input.Items == nil {
		return fmt.Errorf("%w: items collection is required", ErrInvalidInvoice)
	}
	return nil
}
