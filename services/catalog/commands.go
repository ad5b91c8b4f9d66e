package catalog

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/mylog"
)

func (s *service) GetProduct(c context.Context, productID int) (Product, bool, error) {
	product, found, err := s.productStore.Get(c, productKey(productID))
	if err != nil {
		return Product{}, false, myerrors.NewInternalError(fmt.Errorf("error fetching product %d: %s", productID, err))
	}

	return product, found, nil
}

func (s *service) GetRatio(c context.Context, productID int) (Ratio, bool, error) {
	product, found, err := s.GetProduct(c, productID)
	if err != nil || !found {
		return Ratio{}, found, err
	}

	return product.GetRatio(), true, nil
}

func (s *service) listProducts(c context.Context) ([]Product, error) {
	s.logger.Log(c, "", mylog.SeverityInfo, "Fetch all products")

	products, err := s.productStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].ID < products[j].ID
	})
	return products, nil
}

func (s *service) getProduct(c context.Context, productID int) (Product, error) {
	product, found, err := s.GetProduct(c, productID)
	if err != nil {
		return Product{}, err
	}
	if !found {
		return Product{}, myerrors.NewNotFoundErrorf("There is no product with id %d.", productID)
	}

	return product, nil
}

func (s *service) Put(c context.Context, product Product) error {
	if product.ID <= 0 {
		return myerrors.NewInvalidInputErrorf("product id must be positive, got %d", product.ID)
	}

	err := s.productStore.Put(c, productKey(product.ID), product)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error storing product %d: %s", product.ID, err))
	}

	return nil
}

// Seed stores the demo assortment so a local run has something to put in a basket
func (s *service) Seed(c context.Context) error {
	for _, p := range demoProducts {
		err := s.Put(c, p)
		if err != nil {
			return err
		}
	}
	s.logger.Log(c, "", mylog.SeverityInfo, "Seeded %d products", len(demoProducts))

	return nil
}

func productKey(productID int) string {
	return strconv.Itoa(productID)
}
