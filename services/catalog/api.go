package catalog

import "context"

//go:generate mockgen -source=api.go -package catalog -destination catalog_mock.go Catalog
type Catalog interface {
	GetRatio(c context.Context, productID int) (Ratio, bool, error)
	GetProduct(c context.Context, productID int) (Product, bool, error)
}
