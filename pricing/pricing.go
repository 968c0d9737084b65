package pricing

import (
	"clinic-cart-service/models"

	"github.com/shopspring/decimal"
)

// Policy owns the GST rate and the rounding rule used for cart totals.
// Keeping it separate from the cart store means a rate change never
// touches cart logic.
type Policy struct {
	TaxRate decimal.Decimal
}

// NewPolicy creates a Policy with the given GST rate (e.g. 0.18 for 18%).
func NewPolicy(taxRate decimal.Decimal) Policy {
	return Policy{TaxRate: taxRate}
}

// Round2 rounds a monetary amount to two decimal places, half away
// from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeTax returns the GST on a subtotal, rounded to two places.
func (p Policy) ComputeTax(subtotal decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Mul(p.TaxRate))
}

// ComputeTotal returns subtotal plus tax, rounded to two places.
func (p Policy) ComputeTotal(subtotal, tax decimal.Decimal) decimal.Decimal {
	return Round2(subtotal.Add(tax))
}

// TotalsFor aggregates any number of carts into a single Totals.
func (p Policy) TotalsFor(carts ...[]models.LineItem) models.Totals {
	subtotal := decimal.Zero
	count := 0
	for _, items := range carts {
		for _, li := range items {
			subtotal = subtotal.Add(li.LineTotal())
			count += li.Quantity
		}
	}
	subtotal = Round2(subtotal)
	tax := p.ComputeTax(subtotal)

	return models.Totals{
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     p.ComputeTotal(subtotal, tax),
		ItemCount: count,
	}
}
