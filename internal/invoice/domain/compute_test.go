package domain

import (
	"math"
	"testing"

	"github.com/JohnBartlett/bluejay-acct/pkg/money"
)

func TestComputeTotalsSingleTimeItem(t *testing.T) {
	items := []InvoiceItem{
		{Kind: KindTime, Description: "Consulting", Hours: 5, HourlyRate: 100},
	}
	got := ComputeTotals(items, TaxSelection{}, FeePolicy{})

	if got.SubtotalCents != 50000 {
		t.Fatalf("subtotal = %v, want 500.00", got.SubtotalCents)
	}
	if got.TaxCents != 0 || got.FeeCents != 0 {
		t.Fatalf("tax/fee = %v/%v, want 0/0", got.TaxCents, got.FeeCents)
	}
	if got.TotalCents != 50000 {
		t.Fatalf("total = %v, want 500.00", got.TotalCents)
	}
}

func TestComputeTotalsIndividualItemRate(t *testing.T) {
	items := []InvoiceItem{
		{Kind: KindTime, Hours: 5, HourlyRate: 100, TaxRatePercent: 5},
	}
	got := ComputeTotals(items, TaxSelection{}, FeePolicy{})

	if got.ItemTaxes[0] != 2500 {
		t.Fatalf("item tax = %v, want 25.00", got.ItemTaxes[0])
	}
	if got.TaxCents != 2500 {
		t.Fatalf("tax = %v, want 25.00", got.TaxCents)
	}
	if got.TotalCents != 52500 {
		t.Fatalf("total = %v, want 525.00", got.TotalCents)
	}
}

func TestComputeTotalsStackedJurisdictions(t *testing.T) {
	// CA time-category rate 7.25% and NY general rate 4% both apply to the
	// same 500.00 amount: 36.25 + 20.00 = 56.25.
	items := []InvoiceItem{
		{Kind: KindTime, Hours: 5, HourlyRate: 100},
	}
	got := ComputeTotals(items, TaxSelection{Time: "CA", General: "NY"}, FeePolicy{})

	if got.ItemTaxes[0] != 5625 {
		t.Fatalf("item tax = %v, want 56.25", got.ItemTaxes[0])
	}
	if got.TotalCents != 55625 {
		t.Fatalf("total = %v, want 556.25", got.TotalCents)
	}
}

func TestComputeTotalsCardFee(t *testing.T) {
	// Subtotal 1000.00, tax 100.00 (item rate 10%), fee 2.9% of 1100.00 = 31.90.
	items := []InvoiceItem{
		{Kind: KindProduct, Quantity: 10, UnitPrice: 100, TaxRatePercent: 10},
	}
	got := ComputeTotals(items, TaxSelection{}, FeePolicy{Enabled: true, Percent: 2.9})

	if got.SubtotalCents != 100000 {
		t.Fatalf("subtotal = %v, want 1000.00", got.SubtotalCents)
	}
	if got.TaxCents != 10000 {
		t.Fatalf("tax = %v, want 100.00", got.TaxCents)
	}
	if got.FeeCents != 3190 {
		t.Fatalf("fee = %v, want 31.90", got.FeeCents)
	}
	if got.TotalCents != 113190 {
		t.Fatalf("total = %v, want 1131.90", got.TotalCents)
	}
}

func TestComputeTotalsEmptyItems(t *testing.T) {
	got := ComputeTotals(nil, TaxSelection{General: "CA"}, FeePolicy{Enabled: true, Percent: 2.9})
	if got.SubtotalCents != 0 || got.TaxCents != 0 || got.FeeCents != 0 || got.TotalCents != 0 {
		t.Fatalf("empty item list should yield zeros, got %+v", got)
	}
}

func TestComputeTotalsCoercesBadInput(t *testing.T) {
	items := []InvoiceItem{
		{Kind: KindTime, Hours: -3, HourlyRate: 100},
		{Kind: KindService, Quantity: math.NaN(), UnitPrice: 50},
		{Kind: KindProduct, Quantity: 2, UnitPrice: 25, TaxRatePercent: -8},
	}
	got := ComputeTotals(items, TaxSelection{}, FeePolicy{})

	if got.ItemAmounts[0] != 0 || got.ItemAmounts[1] != 0 {
		t.Fatalf("bad inputs should coerce to zero amounts, got %v, %v",
			got.ItemAmounts[0], got.ItemAmounts[1])
	}
	if got.SubtotalCents != 5000 {
		t.Fatalf("subtotal = %v, want 50.00", got.SubtotalCents)
	}
	if got.TaxCents != 0 {
		t.Fatalf("negative item rate should coerce to zero tax, got %v", got.TaxCents)
	}
}

func TestComputeTotalsUnknownJurisdiction(t *testing.T) {
	items := []InvoiceItem{{Kind: KindService, Quantity: 1, UnitPrice: 100}}
	got := ComputeTotals(items, TaxSelection{General: "XX", Service: "??"}, FeePolicy{})
	if got.TaxCents != 0 {
		t.Fatalf("unknown jurisdictions should resolve to rate 0, got %v", got.TaxCents)
	}
}

func TestComputeTotalsSubtotalIsSumOfRoundedAmounts(t *testing.T) {
	items := []InvoiceItem{
		{Kind: KindTime, Hours: 1.33, HourlyRate: 99.99},
		{Kind: KindTime, Hours: 2.67, HourlyRate: 99.99},
		{Kind: KindProduct, Quantity: 3, UnitPrice: 0.333},
	}
	got := ComputeTotals(items, TaxSelection{}, FeePolicy{})

	var sum money.Cents
	for _, a := range got.ItemAmounts {
		sum += a
	}
	if got.SubtotalCents != sum {
		t.Fatalf("subtotal %v != sum of rounded amounts %v", got.SubtotalCents, sum)
	}
}

func TestComputeTotalsAggregateTaxFromRoundedItems(t *testing.T) {
	items := []InvoiceItem{
		{Kind: KindService, Quantity: 1, UnitPrice: 10.01, TaxRatePercent: 3.33},
		{Kind: KindService, Quantity: 1, UnitPrice: 10.01, TaxRatePercent: 3.33},
	}
	got := ComputeTotals(items, TaxSelection{}, FeePolicy{})

	var sum money.Cents
	for _, v := range got.ItemTaxes {
		sum += v
	}
	if got.TaxCents != sum {
		t.Fatalf("aggregate tax %v must equal sum of per-item rounded taxes %v", got.TaxCents, sum)
	}
}

func TestApplyWritesDerivedFields(t *testing.T) {
	inv := &Invoice{
		Items: []InvoiceItem{
			{Kind: KindTime, Hours: 2, HourlyRate: 150, TaxRatePercent: 5},
		},
	}
	totals := ComputeTotals(inv.Items, inv.TaxSelection(), inv.FeePolicy())
	totals.Apply(inv)

	if inv.Items[0].AmountCents != 30000 {
		t.Fatalf("item amount = %v, want 300.00", inv.Items[0].AmountCents)
	}
	if inv.Items[0].ItemTaxCents != 1500 {
		t.Fatalf("item tax = %v, want 15.00", inv.Items[0].ItemTaxCents)
	}
	if inv.TotalCents != 31500 {
		t.Fatalf("total = %v, want 315.00", inv.TotalCents)
	}
}
