package basket

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// fieldRule updates a single item field from a posted form value
type fieldRule struct {
	field   string
	preStep func(item *BasketItem, value string)
	apply   func(item *BasketItem, value string) (bool, error)
}

// updateRules are applied in this order; fields absent from the form are skipped
var updateRules = []fieldRule{
	{field: "name", apply: applyName},
	{field: "quantity", apply: applyQuantity},
	{field: "price", preStep: markCustomPrice, apply: applyPrice},
}

// applyUpdate stops at the first rejected field
func applyUpdate(item *BasketItem, values url.Values) (bool, error) {
	changed := false
	for _, rule := range updateRules {
		if !values.Has(rule.field) {
			continue
		}
		value := values.Get(rule.field)

		if rule.preStep != nil {
			before := *item
			rule.preStep(item, value)
			if before.CustomPrice != item.CustomPrice {
				changed = true
			}
		}

		fieldChanged, err := rule.apply(item, value)
		if err != nil {
			return false, err
		}
		if fieldChanged {
			changed = true
		}
	}
	return changed, nil
}

func applyName(item *BasketItem, value string) (bool, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return false, errors.New("Name must not be empty.")
	}
	if name == item.Name {
		return false, nil
	}
	item.Name = name
	return true, nil
}

func applyQuantity(item *BasketItem, value string) (bool, error) {
	quantity, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return false, fmt.Errorf("Invalid quantity %q.", value)
	}
	if quantity <= 0 {
		return false, errors.New("Quantity must be greater than zero.")
	}
	if quantity == item.Quantity {
		return false, nil
	}
	item.Quantity = quantity
	return true, nil
}

func markCustomPrice(item *BasketItem, value string) {
	item.CustomPrice = !isFalsyPrice(value)
}

// applyPrice leaves a non-custom price alone: it is reset to the catalog price on save
func applyPrice(item *BasketItem, value string) (bool, error) {
	if !item.CustomPrice {
		return false, nil
	}
	price, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("Invalid price %q.", value)
	}
	if price.IsNegative() {
		return false, errors.New("Price must not be negative.")
	}
	newPrice := price.Round(2).InexactFloat64()
	if newPrice == item.Price {
		return false, nil
	}
	item.Price = newPrice
	return true, nil
}
