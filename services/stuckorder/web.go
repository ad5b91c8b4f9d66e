package stuckorder

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/mycontext"
	"github.com/MarcGrol/shopbasket/lib/myhttp"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mypublisher"
	"github.com/MarcGrol/shopbasket/lib/myscheduler"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
	"github.com/MarcGrol/shopbasket/services/order"
	"github.com/MarcGrol/shopbasket/services/stuckorder/stuckorderevents"
)

type webService struct {
	service *service
	logger  mylog.Logger
}

func NewService(orderStore mystore.Store[order.Order], pub mypublisher.Publisher, scheduler myscheduler.Scheduler, nower mytime.Nower) *webService {
	logger := mylog.New("stuckorder")
	return &webService{
		service: newService(orderStore, pub, scheduler, nower, logger),
		logger:  logger,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/api/admin/stuckorders", s.previewPage()).Methods("GET")
	router.HandleFunc("/api/admin/stuckorders/{eventName}", s.runPage()).Methods("POST")

	err := s.service.publisher.CreateTopic(c, stuckorderevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", stuckorderevents.TopicName, err)
	}

	return nil
}

// RegisterAgent runs the check every interval, first at start (nil means now)
func (s *webService) RegisterAgent(c context.Context, eventName string, interval time.Duration, start *time.Time) error {
	return s.service.registerAgent(c, eventName, interval, start)
}

func (s *webService) previewPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		summary, err := s.service.preview(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, summary)
	}
}

func (s *webService) runPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		eventName := mux.Vars(r)["eventName"]

		result, err := s.service.exec(c, eventName)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, result)
	}
}
