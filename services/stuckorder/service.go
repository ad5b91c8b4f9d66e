package stuckorder

import (
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mypublisher"
	"github.com/MarcGrol/shopbasket/lib/myscheduler"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
	"github.com/MarcGrol/shopbasket/services/order"
)

type service struct {
	orderStore mystore.Store[order.Order]
	publisher  mypublisher.Publisher
	scheduler  myscheduler.Scheduler
	nower      mytime.Nower
	logger     mylog.Logger
}

// Use dependency injection to isolate the infrastructure and ease testing
func newService(orderStore mystore.Store[order.Order], pub mypublisher.Publisher, scheduler myscheduler.Scheduler, nower mytime.Nower, logger mylog.Logger) *service {
	return &service{
		orderStore: orderStore,
		publisher:  pub,
		scheduler:  scheduler,
		nower:      nower,
		logger:     logger,
	}
}
