package basket

import (
	"context"
	"fmt"
	"net/url"
	"sort"

	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/myevents"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/services/basket/basketevents"
)

func (s *service) loadBasket(c context.Context, fuserUID string) (Basket, error) {
	basketUID := composeBasketUID(fuserUID, s.siteID)

	basket, found, err := s.basketStore.Get(c, basketUID)
	if err != nil {
		return Basket{}, myerrors.NewInternalError(fmt.Errorf("error fetching basket %s: %s", basketUID, err))
	}
	if !found {
		return Basket{
			UID:       basketUID,
			FuserUID:  fuserUID,
			SiteID:    s.siteID,
			Items:     []BasketItem{},
			CreatedAt: s.nower.Now(),
		}, nil
	}

	// changes must not leak into the stored value before it is saved
	basket.Items = append([]BasketItem{}, basket.Items...)

	return basket, nil
}

// modifyBasket loads, changes, saves and publishes within a single transaction; a nil event means nothing changed
func (s *service) modifyBasket(c context.Context, fuserUID string, modify func(c context.Context, basket *Basket) (myevents.Event, error)) (Basket, error) {
	var basket Basket
	err := s.basketStore.RunInTransaction(c, func(c context.Context) error {
		var err error
		basket, err = s.loadBasket(c, fuserUID)
		if err != nil {
			return err
		}

		event, err := modify(c, &basket)
		if err != nil {
			return err
		}
		if event == nil {
			return nil
		}

		now := s.nower.Now()
		basket.LastModified = &now

		err = s.basketStore.Put(c, basket.UID, basket)
		if err != nil {
			return myerrors.NewValidationError(fmt.Sprintf("Basket could not be saved: %s", err))
		}

		err = s.publisher.Publish(c, basketevents.TopicName, event)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Basket{}, err
	}

	return basket, nil
}

func (s *service) listItems(c context.Context, fuserUID string) ([]BasketItem, error) {
	basket, err := s.loadBasket(c, fuserUID)
	if err != nil {
		return nil, err
	}

	s.logger.Log(c, basket.UID, mylog.SeverityInfo, "Fetch %d items of basket %s", len(basket.Items), basket.UID)

	return basket.Items, nil
}

func (s *service) getItem(c context.Context, fuserUID string, itemID int) (BasketItem, error) {
	basket, err := s.loadBasket(c, fuserUID)
	if err != nil {
		return BasketItem{}, err
	}

	s.logger.Log(c, basket.UID, mylog.SeverityInfo, "Fetch item %d of basket %s", itemID, basket.UID)

	item, found := basket.GetItemByID(itemID)
	if !found {
		return BasketItem{}, itemNotFound(itemID)
	}

	return item, nil
}

// addItem replaces a quantity that is not a multiple of the product ratio by one ratio unit. That unit is
// added to an existing item with the same product and props, so the row can end up holding more than one unit.
func (s *service) addItem(c context.Context, fuserUID string, productID int, quantity float64, props map[string]string) (BasketItem, error) {
	ratio, found, err := s.catalog.GetRatio(c, productID)
	if err != nil {
		return BasketItem{}, err
	}
	if !found {
		return BasketItem{}, myerrors.NewNotFoundErrorf("There is no product with id %d.", productID)
	}

	if !isMultipleOf(quantity, ratio.Ratio) {
		s.logger.Log(c, fuserUID, mylog.SeverityInfo, "Quantity %v of product %d is not a multiple of %v: using %v", quantity, productID, ratio.Ratio, ratio.Ratio)
		quantity = ratio.Ratio
	}

	var added BasketItem
	_, err = s.modifyBasket(c, fuserUID, func(c context.Context, basket *Basket) (myevents.Event, error) {
		added, err = s.addProduct(c, basket, productID, quantity, props)
		if err != nil {
			return nil, err
		}

		s.logger.Log(c, basket.UID, mylog.SeverityInfo, "Added %v x product %d to basket %s as item %d", quantity, productID, basket.UID, added.ID)

		return basketevents.BasketItemAdded{
			BasketUID: basket.UID,
			ItemID:    added.ID,
			ProductID: productID,
			Quantity:  added.Quantity,
		}, nil
	})
	if err != nil {
		return BasketItem{}, err
	}

	return added, nil
}

// addProduct merges into an item with the same product and props, or appends a new item
func (s *service) addProduct(c context.Context, basket *Basket, productID int, quantity float64, props map[string]string) (BasketItem, error) {
	product, found, err := s.catalog.GetProduct(c, productID)
	if err != nil {
		return BasketItem{}, err
	}
	if !found {
		return BasketItem{}, myerrors.NewNotFoundErrorf("There is no product with id %d.", productID)
	}

	messages := []string{}
	if !product.Active {
		messages = append(messages, fmt.Sprintf("Product %d is not available.", productID))
	}
	if quantity <= 0 {
		messages = append(messages, "Quantity must be greater than zero.")
	}
	if len(messages) > 0 {
		return BasketItem{}, myerrors.NewValidationError(messages...)
	}

	for _, item := range basket.Items {
		if item.hasConfiguration(productID, props) {
			item.Quantity += quantity
			basket.replaceItem(item)
			return item, nil
		}
	}

	return basket.addItem(BasketItem{
		ProductID:   productID,
		Name:        product.Name,
		Price:       product.BasePrice,
		VATRate:     product.VATRate,
		VATIncluded: product.VATIncluded,
		Quantity:    quantity,
		Currency:    product.Currency,
		Props:       toProperties(props),
	}), nil
}

func (s *service) updateItem(c context.Context, fuserUID string, itemID int, values url.Values) (BasketItem, error) {
	var updated BasketItem
	_, err := s.modifyBasket(c, fuserUID, func(c context.Context, basket *Basket) (myevents.Event, error) {
		item, found := basket.GetItemByID(itemID)
		if !found {
			return nil, itemNotFound(itemID)
		}

		changed, err := applyUpdate(&item, values)
		if err != nil {
			return nil, myerrors.NewValidationError(err.Error())
		}
		updated = item
		if !changed {
			s.logger.Log(c, basket.UID, mylog.SeverityInfo, "Item %d of basket %s unchanged", itemID, basket.UID)
			return nil, nil
		}

		if !item.CustomPrice {
			product, found, err := s.catalog.GetProduct(c, item.ProductID)
			if err != nil {
				return nil, err
			}
			if found {
				item.Price = product.BasePrice
			}
		}
		basket.replaceItem(item)
		updated = item

		s.logger.Log(c, basket.UID, mylog.SeverityInfo, "Updated item %d of basket %s", itemID, basket.UID)

		return basketevents.BasketItemUpdated{
			BasketUID:   basket.UID,
			ItemID:      item.ID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Price:       item.Price,
			CustomPrice: item.CustomPrice,
		}, nil
	})
	if err != nil {
		return BasketItem{}, err
	}

	return updated, nil
}

func (s *service) deleteItem(c context.Context, fuserUID string, itemID int) error {
	_, err := s.modifyBasket(c, fuserUID, func(c context.Context, basket *Basket) (myevents.Event, error) {
		if !basket.removeItem(itemID) {
			return nil, itemNotFound(itemID)
		}

		s.logger.Log(c, basket.UID, mylog.SeverityInfo, "Deleted item %d of basket %s", itemID, basket.UID)

		return basketevents.BasketItemDeleted{
			BasketUID: basket.UID,
			ItemID:    itemID,
		}, nil
	})
	return err
}

func itemNotFound(itemID int) error {
	return myerrors.NewNotFoundErrorf("Basket item with id %d not found.", itemID)
}

func toProperties(props map[string]string) []Property {
	properties := []Property{}
	for code, value := range props {
		properties = append(properties, Property{
			Code:  code,
			Name:  code,
			Value: value,
		})
	}
	sort.Slice(properties, func(i, j int) bool {
		return properties[i].Code < properties[j].Code
	})
	return properties
}
