package basket

import (
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mypublisher"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
	"github.com/MarcGrol/shopbasket/lib/myuuid"
	"github.com/MarcGrol/shopbasket/services/catalog"
)

type service struct {
	basketStore mystore.Store[Basket]
	catalog     catalog.Catalog
	publisher   mypublisher.Publisher
	nower       mytime.Nower
	uuider      myuuid.UUIDer
	logger      mylog.Logger
	siteID      string
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(store mystore.Store[Basket], cat catalog.Catalog, pub mypublisher.Publisher, nower mytime.Nower, uuider myuuid.UUIDer, logger mylog.Logger, siteID string) *service {
	return &service{
		basketStore: store,
		catalog:     cat,
		publisher:   pub,
		nower:       nower,
		uuider:      uuider,
		logger:      logger,
		siteID:      siteID,
	}
}
