package stuckorder

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/services/order"
	"github.com/MarcGrol/shopbasket/services/stuckorder/stuckorderevents"
)

// Orders in status new for longer than this are considered stuck
const stuckAfter = 48 * time.Hour

func (s *service) findStuckOrders(c context.Context) ([]order.Order, error) {
	cutoff := s.nower.Now().Add(-stuckAfter)

	// datastore requires the inequality property to be sorted on first
	orders, err := s.orderStore.Query(c, []mystore.Filter{
		mystore.Equals("StatusID", order.StatusNew),
		mystore.Equals("Canceled", false),
		mystore.AtMost("DateStatus", cutoff),
	}, "DateStatus")
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error querying stuck orders: %s", err))
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].ID < orders[j].ID
	})

	return orders, nil
}

func buildSummary(orders []order.Order) Summary {
	summary := Summary{
		OrderIDs:     []int{},
		OrderNumbers: []string{},
	}
	for _, o := range orders {
		summary.OrderIDs = append(summary.OrderIDs, o.ID)
		summary.OrderNumbers = append(summary.OrderNumbers, o.AccountNumber)
	}
	summary.Count = len(orders)

	return summary
}

func (s *service) notify(c context.Context, eventName string, summary Summary) (bool, error) {
	if summary.Count == 0 {
		s.logger.Log(c, eventName, mylog.SeverityInfo, "No stuck orders: nothing to send")
		return false, nil
	}

	err := s.publisher.Publish(c, stuckorderevents.TopicName, stuckorderevents.StuckOrdersDetected{
		EventName: eventName,
		Fields:    summary.Fields(),
	})
	if err != nil {
		return false, myerrors.NewInternalError(fmt.Errorf("error sending %s: %s", eventName, err))
	}

	s.logger.Log(c, eventName, mylog.SeverityInfo, "Sent %s for %d stuck orders", eventName, summary.Count)

	return true, nil
}

func (s *service) preview(c context.Context) (Summary, error) {
	orders, err := s.findStuckOrders(c)
	if err != nil {
		return Summary{}, err
	}

	return buildSummary(orders), nil
}

func (s *service) exec(c context.Context, eventName string) (RunResult, error) {
	s.logger.Log(c, eventName, mylog.SeverityInfo, "Check for stuck orders (%s)", eventName)

	summary, err := s.preview(c)
	if err != nil {
		return RunResult{}, err
	}

	sent, err := s.notify(c, eventName, summary)
	if err != nil {
		return RunResult{}, err
	}

	return RunResult{
		EventName: eventName,
		Sent:      sent,
		Summary:   summary,
		Fields:    summary.Fields(),
	}, nil
}

func (s *service) registerAgent(c context.Context, eventName string, interval time.Duration, start *time.Time) error {
	if eventName == "" {
		eventName = stuckorderevents.DefaultEventName
	}

	firstRun := s.nower.Now()
	if start != nil {
		firstRun = *start
	}

	err := s.scheduler.RegisterPeriodic(c, jobUID(eventName), interval, firstRun, func(c context.Context) error {
		_, err := s.exec(c, eventName)
		return err
	})
	if err != nil {
		return fmt.Errorf("error registering stuck order agent for %s: %s", eventName, err)
	}

	return nil
}

func jobUID(eventName string) string {
	return "stuckorder_" + eventName
}
