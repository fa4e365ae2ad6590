package domain

import (
	"github.com/shopspring/decimal"

	"github.com/JohnBartlett/bluejay-acct/internal/tax"
	"github.com/JohnBartlett/bluejay-acct/pkg/money"
)

var oneHundred = decimal.NewFromInt(100)

// ComputeTotals derives the authoritative invoice figures from line items, a
// tax selection and a fee policy. The fold is sequential and order-preserving
// so the rounding discipline is reproducible:
//
//  1. each item amount is rounded to cents immediately after multiplication,
//  2. subtotal is the sum of those rounded amounts,
//  3. each item's tax stacks three components (its own rate, the jurisdiction
//     for its kind, the general jurisdiction) and rounds the sum per item,
//  4. the aggregate tax sums the per-item rounded values,
//  5. the card fee, when enabled, is computed on subtotal plus tax,
//  6. total = subtotal + tax + fee.
//
// A category and a general jurisdiction selected together both tax the same
// amount. That mirrors the shipped behavior and is kept pending a product
// decision; see DESIGN.md.
//
// An empty item list yields all zeros. Negative or non-finite numeric fields
// coerce to zero before multiplication. Unknown jurisdiction codes resolve to
// a zero rate.
func ComputeTotals(items []InvoiceItem, sel TaxSelection, fee FeePolicy) Totals {
	t := Totals{
		ItemAmounts: make([]money.Cents, len(items)),
		ItemTaxes:   make([]money.Cents, len(items)),
	}

	for i, item := range items {
		var amount money.Cents
		switch item.Kind {
		case KindTime:
			amount = money.Mul(item.Hours, item.HourlyRate)
		case KindService, KindProduct:
			amount = money.Mul(item.Quantity, item.UnitPrice)
		}
		t.ItemAmounts[i] = amount
		t.SubtotalCents += amount
	}

	generalRate := decimal.NewFromFloat(tax.StateRates.Rate(sel.General))
	kindRates := map[ItemKind]decimal.Decimal{
		KindTime:    decimal.NewFromFloat(tax.StateRates.Rate(sel.Time)),
		KindService: decimal.NewFromFloat(tax.StateRates.Rate(sel.Service)),
		KindProduct: decimal.NewFromFloat(tax.StateRates.Rate(sel.Product)),
	}

	for i, item := range items {
		amount := t.ItemAmounts[i].Decimal()
		ownRate := decimal.NewFromFloat(money.Coerce(item.TaxRatePercent)).Div(oneHundred)

		itemTax := amount.Mul(ownRate).
			Add(amount.Mul(kindRates[item.Kind])).
			Add(amount.Mul(generalRate))
		t.ItemTaxes[i] = money.FromDecimal(itemTax)
		t.TaxCents += t.ItemTaxes[i]
	}

	if fee.Enabled {
		base := (t.SubtotalCents + t.TaxCents).Decimal()
		pct := decimal.NewFromFloat(money.Coerce(fee.Percent)).Div(oneHundred)
		t.FeeCents = money.FromDecimal(base.Mul(pct))
	}

	t.TotalCents = t.SubtotalCents + t.TaxCents + t.FeeCents
	return t
}

// Apply writes computed amounts and per-item taxes back onto the items and
// header fields. Item order must match the slice ComputeTotals was given.
func (t Totals) Apply(inv *Invoice) {
	for i := range inv.Items {
		if i < len(t.ItemAmounts) {
			inv.Items[i].AmountCents = t.ItemAmounts[i]
			inv.Items[i].ItemTaxCents = t.ItemTaxes[i]
		}
	}
	inv.SubtotalCents = t.SubtotalCents
	inv.TaxCents = t.TaxCents
	inv.FeeCents = t.FeeCents
	inv.TotalCents = t.TotalCents
}
