package domain

import (
	"context"
	"errors"
	"time"
)

// ItemInput is the caller-supplied shape of one line item. Amounts are never
// accepted from callers; they are derived by ComputeTotals.
type ItemInput struct {
	Kind            ItemKind   `json:"kind"`
	Description     string     `json:"description"`
	LongDescription string     `json:"long_description"`
	Date            *time.Time `json:"date"`
	Hours           float64    `json:"hours"`
	HourlyRate      float64    `json:"hourly_rate"`
	Quantity        float64    `json:"quantity"`
	UnitPrice       float64    `json:"unit_price"`
	TaxRatePercent  float64    `json:"tax_rate_percent"`
}

type CreateRequest struct {
	CustomerID string       `json:"customer_id"`
	Number     string       `json:"number"`
	Date       time.Time    `json:"date"`
	DueDate    *time.Time   `json:"due_date"`
	Taxes      TaxSelection `json:"taxes"`
	Fee        FeePolicy    `json:"fee"`
	Items      []ItemInput  `json:"items"`
	Notes      string       `json:"notes"`
}

type UpdateRequest struct {
	ID      string       `json:"id"`
	Number  *string      `json:"number"`
	Status  *Status      `json:"status"`
	Date    *time.Time   `json:"date"`
	DueDate *time.Time   `json:"due_date"`
	Taxes   TaxSelection `json:"taxes"`
	Fee     FeePolicy    `json:"fee"`
	Items   []ItemInput  `json:"items"`
	Notes   *string      `json:"notes"`
}

// ListRequest filters the invoice listing. Status accepts the lifecycle
// values plus "all" (or blank) for no filter.
type ListRequest struct {
	CustomerID string `form:"customer_id"`
	Status     string `form:"status"`
}

// Service owns invoice persistence plus total recomputation. Every create or
// update recomputes the full Totals; stored figures are never patched.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Invoice, error)
	Update(ctx context.Context, req UpdateRequest) (*Invoice, error)
	List(ctx context.Context, req ListRequest) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	Delete(ctx context.Context, id string) error
	// MarkSent records a successful email delivery: status becomes SENT and
	// the send timestamp is stamped.
	MarkSent(ctx context.Context, id string) error
	// RenderPDF renders the invoice with the named config document (blank
	// name selects the default print profile) and returns the PDF bytes.
	RenderPDF(ctx context.Context, id, configName string) ([]byte, error)
}

var (
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrInvalidCustomer  = errors.New("invalid_customer")
	ErrInvalidNumber    = errors.New("invalid_invoice_number")
	ErrInvalidStatus    = errors.New("invalid_invoice_status")
	ErrMissingItems     = errors.New("missing_items")
	ErrInvalidItemKind  = errors.New("invalid_item_kind")
)
