package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"

	"github.com/JohnBartlett/bluejay-acct/pkg/money"
)

var ErrInvalidYear = errors.New("invalid_report_year")

// MonthlySummary aggregates stored invoice totals for one calendar month.
// Figures come straight from the invoices table; nothing is recomputed.
type MonthlySummary struct {
	Month         string      `json:"month"`
	InvoiceCount  int64       `json:"invoice_count"`
	SubtotalCents money.Cents `json:"subtotal_cents"`
	TaxCents      money.Cents `json:"tax_cents"`
	FeeCents      money.Cents `json:"fee_cents"`
	TotalCents    money.Cents `json:"total_cents"`
}

// CustomerSummary aggregates stored invoice totals per customer.
type CustomerSummary struct {
	CustomerID   snowflake.ID `json:"customer_id"`
	CustomerName string       `json:"customer_name"`
	InvoiceCount int64        `json:"invoice_count"`
	TotalCents   money.Cents  `json:"total_cents"`
}

// StatusSummary is the dashboard headline: invoice counts per lifecycle
// status plus revenue from paid invoices only.
type StatusSummary struct {
	TotalInvoices    int64       `json:"total_invoices"`
	DraftInvoices    int64       `json:"draft_invoices"`
	SentInvoices     int64       `json:"sent_invoices"`
	PaidInvoices     int64       `json:"paid_invoices"`
	OverdueInvoices  int64       `json:"overdue_invoices"`
	PaidRevenueCents money.Cents `json:"paid_revenue_cents"`
}

type Service interface {
	Monthly(ctx context.Context, year int) ([]MonthlySummary, error)
	ByCustomer(ctx context.Context) ([]CustomerSummary, error)
	Stats(ctx context.Context) (*StatusSummary, error)
}
