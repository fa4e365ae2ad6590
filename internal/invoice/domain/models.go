package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/JohnBartlett/bluejay-acct/pkg/money"
)

// ItemKind discriminates the three billable line item variants. Amount and
// layout logic switches exhaustively on it; there is no open-ended fallback.
type ItemKind string

const (
	KindTime    ItemKind = "TIME"
	KindService ItemKind = "SERVICE"
	KindProduct ItemKind = "PRODUCT"
)

// Valid reports whether k is one of the closed set of kinds.
func (k ItemKind) Valid() bool {
	switch k {
	case KindTime, KindService, KindProduct:
		return true
	}
	return false
}

// Status tracks the invoice through its lifecycle. New invoices start as
// DRAFT; emailing flips them to SENT. PAID and OVERDUE are set by the caller.
type Status string

const (
	StatusDraft   Status = "DRAFT"
	StatusSent    Status = "SENT"
	StatusPaid    Status = "PAID"
	StatusOverdue Status = "OVERDUE"
)

// Valid reports whether st is one of the closed set of statuses.
func (st Status) Valid() bool {
	switch st {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

// InvoiceItem is one billable row. Time entries carry date/hours/hourly rate;
// service and product entries carry quantity/unit price. AmountCents and
// ItemTaxCents are derived by ComputeTotals and never edited directly.
type InvoiceItem struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	InvoiceID       snowflake.ID `gorm:"not null;index" json:"invoice_id"`
	Position        int          `gorm:"not null" json:"position"`
	Kind            ItemKind     `gorm:"type:text;not null" json:"kind"`
	Description     string       `gorm:"type:text;not null" json:"description"`
	LongDescription string       `gorm:"type:text" json:"long_description,omitempty"`
	Date            *time.Time   `json:"date,omitempty"`
	Hours           float64      `json:"hours,omitempty"`
	HourlyRate      float64      `json:"hourly_rate,omitempty"`
	Quantity        float64      `json:"quantity,omitempty"`
	UnitPrice       float64      `json:"unit_price,omitempty"`
	TaxRatePercent  float64      `json:"tax_rate_percent,omitempty"`
	AmountCents     money.Cents  `gorm:"not null" json:"amount_cents"`
	ItemTaxCents    money.Cents  `gorm:"not null" json:"item_tax_cents"`
}

// TableName sets the database table name.
func (InvoiceItem) TableName() string { return "invoice_items" }

// TaxSelection names up to four independent jurisdictions: one general code
// applied to every item plus one per item kind. Any code may be blank.
type TaxSelection struct {
	General string `json:"general"`
	Time    string `json:"time"`
	Service string `json:"service"`
	Product string `json:"product"`
}

// FeePolicy is the optional card processing surcharge applied on
// subtotal plus tax.
type FeePolicy struct {
	Enabled bool    `json:"enabled"`
	Percent float64 `json:"percent"`
}

// Totals is the authoritative monetary output for one invoice. It is
// recomputed in full whenever an item, tax selection or fee policy changes,
// never patched field by field.
type Totals struct {
	SubtotalCents money.Cents   `json:"subtotal_cents"`
	TaxCents      money.Cents   `json:"tax_cents"`
	FeeCents      money.Cents   `json:"fee_cents"`
	TotalCents    money.Cents   `json:"total_cents"`
	ItemAmounts   []money.Cents `json:"item_amounts"`
	ItemTaxes     []money.Cents `json:"item_taxes"`
}

// Invoice is the stored invoice header.
type Invoice struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	Number         string        `gorm:"type:text;not null;uniqueIndex" json:"number"`
	CustomerID     snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	Status         Status        `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	Date           time.Time     `gorm:"not null" json:"date"`
	DueDate        *time.Time    `json:"due_date,omitempty"`
	EmailSentAt    *time.Time    `json:"email_sent_at,omitempty"`
	TaxGeneral     string        `gorm:"type:text" json:"tax_general"`
	TaxTime        string        `gorm:"type:text" json:"tax_time"`
	TaxService     string        `gorm:"type:text" json:"tax_service"`
	TaxProduct     string        `gorm:"type:text" json:"tax_product"`
	CardFeeEnabled bool          `gorm:"not null;default:false" json:"card_fee_enabled"`
	CardFeePercent float64       `gorm:"not null;default:0" json:"card_fee_percent"`
	SubtotalCents  money.Cents   `gorm:"not null" json:"subtotal_cents"`
	TaxCents       money.Cents   `gorm:"not null" json:"tax_cents"`
	FeeCents       money.Cents   `gorm:"not null" json:"fee_cents"`
	TotalCents     money.Cents   `gorm:"not null" json:"total_cents"`
	Notes          string        `gorm:"type:text" json:"notes"`
	Items          []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// TaxSelection assembles the invoice's jurisdiction codes.
func (inv Invoice) TaxSelection() TaxSelection {
	return TaxSelection{
		General: inv.TaxGeneral,
		Time:    inv.TaxTime,
		Service: inv.TaxService,
		Product: inv.TaxProduct,
	}
}

// FeePolicy assembles the invoice's surcharge policy.
func (inv Invoice) FeePolicy() FeePolicy {
	return FeePolicy{Enabled: inv.CardFeeEnabled, Percent: inv.CardFeePercent}
}
