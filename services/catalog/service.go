package catalog

import (
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mystore"
)

type service struct {
	productStore mystore.Store[Product]
	logger       mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(store mystore.Store[Product], logger mylog.Logger) *service {
	return &service{
		productStore: store,
		logger:       logger,
	}
}
