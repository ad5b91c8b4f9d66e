package mypublisher

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/shopbasket/lib/myevents"
	"github.com/MarcGrol/shopbasket/lib/mypubsub"
	"github.com/MarcGrol/shopbasket/lib/myqueue"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
)

func TestTransactionalPublisher(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c := context.TODO()

	t.Run("publish stores envelope and enqueues trigger", func(t *testing.T) {
		// given
		_, outbox, queuer, pubsub := setup(t, ctrl)
		var enqueued myqueue.Task
		queuer.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, task myqueue.Task) error {
			enqueued = task
			return nil
		})

		// when
		err := newTestPublisher(outbox, queuer, pubsub).Publish(c, "test", testEvent{Name: "abc", Count: 1})

		// then
		assert.NoError(t, err)
		assert.Len(t, outbox.Items, 1)
		for uid, envelope := range outbox.Items {
			assert.Equal(t, uid, enqueued.UID)
			assert.Equal(t, fmt.Sprintf("/pubsub/test/%s", uid), enqueued.WebhookURLPath)
			assert.False(t, envelope.Published)
		}
	})

	t.Run("repeated event on a later run is stored and triggered again", func(t *testing.T) {
		// given
		_, outbox, queuer, pubsub := setup(t, ctrl)
		nower := mytime.NewMockNower(ctrl)
		nower.EXPECT().Now().Return(mytime.ExampleTime)
		nower.EXPECT().Now().Return(mytime.ExampleTime.Add(24 * time.Hour))
		taskUIDs := []string{}
		queuer.EXPECT().Enqueue(gomock.Any(), gomock.Any()).DoAndReturn(func(c context.Context, task myqueue.Task) error {
			taskUIDs = append(taskUIDs, task.UID)
			return nil
		}).Times(2)
		sut := newTransactionalPublisher(outbox, queuer, pubsub, nower)

		// when
		err1 := sut.Publish(c, "test", testEvent{Name: "stuck", Count: 1})
		err2 := sut.Publish(c, "test", testEvent{Name: "stuck", Count: 1})

		// then
		assert.NoError(t, err1)
		assert.NoError(t, err2)
		assert.Len(t, outbox.Items, 2)
		assert.Len(t, taskUIDs, 2)
		assert.NotEqual(t, taskUIDs[0], taskUIDs[1])
		for _, envelope := range outbox.Items {
			assert.False(t, envelope.Published)
		}
	})

	t.Run("enqueue failure is reported", func(t *testing.T) {
		// given
		_, outbox, queuer, pubsub := setup(t, ctrl)
		queuer.EXPECT().Enqueue(gomock.Any(), gomock.Any()).Return(fmt.Errorf("queue down"))

		// when
		err := newTestPublisher(outbox, queuer, pubsub).Publish(c, "test", testEvent{Name: "abc", Count: 1})

		// then
		assert.Error(t, err)
	})

	t.Run("trigger publishes all unpublished envelopes", func(t *testing.T) {
		// given
		router, outbox, _, pubsub := setup(t, ctrl)
		outbox.Items["1"] = myevents.EventEnvelope{UID: "1", Topic: "test", CreatedAt: mytime.ExampleTime}
		outbox.Items["2"] = myevents.EventEnvelope{UID: "2", Topic: "test", CreatedAt: mytime.ExampleTime.Add(time.Minute)}
		outbox.Items["3"] = myevents.EventEnvelope{UID: "3", Topic: "test", CreatedAt: mytime.ExampleTime, Published: true}

		// when
		request, _ := http.NewRequest(http.MethodPut, "/pubsub/test/2", nil)
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Len(t, pubsub.Published["test"], 2)
		for _, envelope := range outbox.Items {
			assert.True(t, envelope.Published)
		}
	})

	t.Run("trigger for unknown envelope is harmless", func(t *testing.T) {
		// given
		router, _, _, pubsub := setup(t, ctrl)

		// when
		request, _ := http.NewRequest(http.MethodPut, "/pubsub/test/unknown", nil)
		request.Host = "localhost:8888"
		response := httptest.NewRecorder()
		router.ServeHTTP(response, request)

		// then
		assert.Equal(t, http.StatusOK, response.Code)
		assert.Empty(t, pubsub.Published["test"])
	})

	t.Run("pubsub failure keeps envelope unpublished", func(t *testing.T) {
		// given
		outbox, _, _ := mystore.NewInMemoryStore[myevents.EventEnvelope](c)
		outbox.Items["1"] = myevents.EventEnvelope{UID: "1", Topic: "test", CreatedAt: mytime.ExampleTime}
		pubsubMock := mypubsub.NewMockPubSub(ctrl)
		pubsubMock.EXPECT().Publish(gomock.Any(), "test", gomock.Any()).Return(fmt.Errorf("pubsub down"))
		sut := newTransactionalPublisher(outbox, myqueue.NewMockTaskQueuer(ctrl), pubsubMock, mytime.RealNower{})

		// when
		err := sut.processTrigger(c, "test", "1")

		// then
		assert.Error(t, err)
		assert.False(t, outbox.Items["1"].Published)
	})
}

func setup(t *testing.T, ctrl *gomock.Controller) (*mux.Router, *mystore.InMemoryStore[myevents.EventEnvelope], *myqueue.MockTaskQueuer, *fakePubSubRecorder) {
	outbox, _, _ := mystore.NewInMemoryStore[myevents.EventEnvelope](context.TODO())
	queuer := myqueue.NewMockTaskQueuer(ctrl)
	pubsub := newFakePubSubRecorder()

	router := mux.NewRouter()
	newTestPublisher(outbox, queuer, pubsub).RegisterEndpoints(context.TODO(), router)

	return router, outbox, queuer, pubsub
}

func newTestPublisher(outbox *mystore.InMemoryStore[myevents.EventEnvelope], queuer myqueue.TaskQueuer, pubsub mypubsub.PubSub) *transactionalPublisher {
	return newTransactionalPublisher(outbox, queuer, pubsub, mytime.RealNower{})
}

type fakePubSubRecorder struct {
	Published map[string][]string
}

func newFakePubSubRecorder() *fakePubSubRecorder {
	return &fakePubSubRecorder{Published: map[string][]string{}}
}

func (ps *fakePubSubRecorder) CreateTopic(c context.Context, topic string) error {
	return nil
}

func (ps *fakePubSubRecorder) Publish(c context.Context, topic string, data string) error {
	ps.Published[topic] = append(ps.Published[topic], data)
	return nil
}
