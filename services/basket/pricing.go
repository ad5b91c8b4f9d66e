package basket

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PriceWithVAT is the unit price including VAT, rounded to cents
func (i BasketItem) PriceWithVAT() float64 {
	return i.priceWithVAT().InexactFloat64()
}

// FinalPrice is the line total: unit price including VAT times quantity
func (i BasketItem) FinalPrice() float64 {
	return i.priceWithVAT().Mul(decimal.NewFromFloat(i.Quantity)).Round(2).InexactFloat64()
}

func (i BasketItem) priceWithVAT() decimal.Decimal {
	price := decimal.NewFromFloat(i.Price)
	if !i.VATIncluded && i.VATRate > 0 {
		factor := decimal.NewFromInt(1).Add(decimal.NewFromFloat(i.VATRate).Div(hundred))
		price = price.Mul(factor)
	}
	return price.Round(2)
}

// isMultipleOf compares exactly, so 0.3 is a multiple of 0.1
func isMultipleOf(quantity float64, ratio float64) bool {
	r := decimal.NewFromFloat(ratio)
	if r.Sign() <= 0 {
		return true
	}
	return decimal.NewFromFloat(quantity).Mod(r).IsZero()
}

// isFalsyPrice treats an empty value and any numeric zero as no price, so "0.00" counts as no price
// as well as "" and "0"
func isFalsyPrice(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	d, err := decimal.NewFromString(value)
	return err == nil && d.IsZero()
}
