package mypublisher

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/mycontext"
	"github.com/MarcGrol/shopbasket/lib/myevents"
	"github.com/MarcGrol/shopbasket/lib/myhttp"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mypubsub"
	"github.com/MarcGrol/shopbasket/lib/myqueue"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
)

type transactionalPublisher struct {
	outbox    mystore.Store[myevents.EventEnvelope]
	queue     myqueue.TaskQueuer
	enveloper enveloper
	pubsub    mypubsub.PubSub
	logger    mylog.Logger
}

// New stores events in an outbox within the callers transaction and publishes them afterwards via a task
func New(c context.Context, pubsub mypubsub.PubSub, queue myqueue.TaskQueuer, nower mytime.Nower) (*transactionalPublisher, func(), error) {
	store, storeCleanup, err := mystore.New[myevents.EventEnvelope](c)
	if err != nil {
		return nil, nil, err
	}

	return newTransactionalPublisher(store, queue, pubsub, nower), storeCleanup, nil
}

func newTransactionalPublisher(outbox mystore.Store[myevents.EventEnvelope], queue myqueue.TaskQueuer, pubsub mypubsub.PubSub, nower mytime.Nower) *transactionalPublisher {
	return &transactionalPublisher{
		outbox:    outbox,
		queue:     queue,
		enveloper: newEnveloper(nower),
		pubsub:    pubsub,
		logger:    mylog.New("publisher"),
	}
}

func (p *transactionalPublisher) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/pubsub/{topic}/{uid}", p.processTriggerPage()).Methods("PUT")
}

func (p *transactionalPublisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

func (p *transactionalPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}
	err = p.outbox.Put(c, envelope.UID, envelope)
	if err != nil {
		return fmt.Errorf("error storing envelope: %s", err)
	}

	err = p.queue.Enqueue(c, myqueue.Task{
		UID:            envelope.UID,
		WebhookURLPath: fmt.Sprintf("/pubsub/%s/%s", envelope.Topic, envelope.UID),
		Payload:        []byte{},
	})
	if err != nil {
		return fmt.Errorf("error queueing publication-trigger %s: %s", envelope.UID, err)
	}

	p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Enqueued event %s", envelope.String())

	return nil
}

func (p *transactionalPublisher) processTriggerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(p.logger)

		topicName := mux.Vars(r)["topic"]
		eventUID := mux.Vars(r)["uid"]

		err := p.processTrigger(c, topicName, eventUID)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Successfully processed trigger",
		})
	}
}

// processTrigger publishes the triggered envelope plus any others that were left behind
func (p *transactionalPublisher) processTrigger(c context.Context, topicName string, uid string) error {
	// queries cannot run within a transaction, so fetch first and re-check per envelope
	envelopes, err := p.outbox.Query(c, []mystore.Filter{mystore.Equals("Published", false)}, "CreatedAt")
	if err != nil {
		return fmt.Errorf("error fetching envelopes: %s", err)
	}
	p.logger.Log(c, topicName, mylog.SeverityInfo, "Found %d unpublished events", len(envelopes))

	uids := []string{}
	triggerFound := false
	for _, envelope := range envelopes {
		uids = append(uids, envelope.UID)
		if envelope.UID == uid {
			triggerFound = true
		}
	}
	if !triggerFound {
		// query results may lag behind
		uids = append(uids, uid)
	}

	for _, u := range uids {
		err = p.publishOne(c, u)
		if err != nil {
			return err
		}
	}

	return nil
}

func (p *transactionalPublisher) publishOne(c context.Context, uid string) error {
	return p.outbox.RunInTransaction(c, func(c context.Context) error {
		envelope, exists, err := p.outbox.Get(c, uid)
		if err != nil {
			return fmt.Errorf("error fetching envelope %s: %s", uid, err)
		}
		if !exists || envelope.Published {
			return nil
		}

		data, err := envelope.Encode()
		if err != nil {
			return err
		}

		err = p.pubsub.Publish(c, envelope.Topic, data)
		if err != nil {
			return fmt.Errorf("error publishing event %s: %s", envelope.String(), err)
		}

		envelope.Published = true
		err = p.outbox.Put(c, envelope.UID, envelope)
		if err != nil {
			return fmt.Errorf("error storing envelope %s: %s", envelope.String(), err)
		}

		return nil
	})
}
