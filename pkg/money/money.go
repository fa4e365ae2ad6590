package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Cents is a monetary amount in hundredths of the currency unit. All invoice
// arithmetic is carried in Cents so that aggregation never touches binary
// floating point.
type Cents int64

// Float64 converts to whole currency units for display-layer formatting.
func (c Cents) Float64() float64 {
	return float64(c) / 100
}

// Decimal converts to a fixed-point decimal in whole currency units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return fmt.Sprintf("%.2f", c.Float64())
}

// FromDecimal rounds a decimal amount of whole currency units to the nearest
// cent, half away from zero.
func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

// Mul multiplies two raw numeric inputs (hours x rate, quantity x price) and
// rounds the product to cents immediately.
func Mul(a, b float64) Cents {
	return FromDecimal(decimal.NewFromFloat(Coerce(a)).Mul(decimal.NewFromFloat(Coerce(b))))
}

// Coerce maps negative or non-finite raw input to 0 before any multiplication.
// Bad upstream data renders as zero instead of crashing or producing NaN
// totals; callers that care should validate before computing.
func Coerce(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
