package order

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mystore"
)

type service struct {
	orderStore mystore.Store[Order]
	logger     mylog.Logger
}

func NewService(store mystore.Store[Order]) *service {
	return &service{
		orderStore: store,
		logger:     mylog.New("order"),
	}
}

func (s *service) Put(c context.Context, order Order) error {
	err := s.orderStore.Put(c, strconv.Itoa(order.ID), order)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error storing order %d: %s", order.ID, err))
	}
	return nil
}

// Seed stores a few orders relative to now, some of them stuck in status new
func (s *service) Seed(c context.Context, now time.Time) error {
	orders := demoOrders(now)
	for _, o := range orders {
		err := s.Put(c, o)
		if err != nil {
			return err
		}
	}
	s.logger.Log(c, "", mylog.SeverityInfo, "Seeded %d orders", len(orders))

	return nil
}

func demoOrders(now time.Time) []Order {
	day := 24 * time.Hour
	return []Order{
		{ID: 1001, AccountNumber: "2023-1001", StatusID: StatusNew, DateStatus: now.Add(-5 * day)},
		{ID: 1002, AccountNumber: "2023-1002", StatusID: StatusNew, DateStatus: now.Add(-3 * day)},
		{ID: 1003, AccountNumber: "2023-1003", StatusID: StatusNew, Canceled: true, DateStatus: now.Add(-4 * day)},
		{ID: 1004, AccountNumber: "2023-1004", StatusID: "F", DateStatus: now.Add(-6 * day)},
		{ID: 1005, AccountNumber: "2023-1005", StatusID: StatusNew, DateStatus: now.Add(-time.Hour)},
	}
}
