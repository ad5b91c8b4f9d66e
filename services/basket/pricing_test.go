package basket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMultipleOf(t *testing.T) {
	testCases := []struct {
		quantity float64
		ratio    float64
		expected bool
	}{
		{quantity: 10, ratio: 5, expected: true},
		{quantity: 7, ratio: 5, expected: false},
		{quantity: 0.3, ratio: 0.1, expected: true},
		{quantity: 1.5, ratio: 0.5, expected: true},
		{quantity: 1.2, ratio: 0.5, expected: false},
		{quantity: 3, ratio: 1, expected: true},
		{quantity: 3, ratio: 0, expected: true},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, isMultipleOf(tc.quantity, tc.ratio), "%v of %v", tc.quantity, tc.ratio)
	}
}

func TestIsFalsyPrice(t *testing.T) {
	for _, value := range []string{"", " ", "0", "0.00", "-0"} {
		assert.True(t, isFalsyPrice(value), value)
	}
	for _, value := range []string{"1", "0.01", "abc", "-2"} {
		assert.False(t, isFalsyPrice(value), value)
	}
}

func TestPrices(t *testing.T) {
	t.Run("vat included", func(t *testing.T) {
		item := BasketItem{Price: 10, VATRate: 21, VATIncluded: true, Quantity: 3}
		assert.Equal(t, 10.0, item.PriceWithVAT())
		assert.Equal(t, 30.0, item.FinalPrice())
	})

	t.Run("vat added", func(t *testing.T) {
		item := BasketItem{Price: 1.5, VATRate: 9, VATIncluded: false, Quantity: 2}
		assert.Equal(t, 1.64, item.PriceWithVAT())
		assert.Equal(t, 3.28, item.FinalPrice())
	})

	t.Run("fractional quantity", func(t *testing.T) {
		item := BasketItem{Price: 2.99, VATIncluded: true, Quantity: 0.5}
		assert.Equal(t, 1.5, item.FinalPrice())
	})
}
