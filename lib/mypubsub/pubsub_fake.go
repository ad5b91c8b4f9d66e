package mypubsub

import (
	"context"
	"os"
	"sync"

	"github.com/MarcGrol/shopbasket/lib/mylog"
)

// fakePubSub keeps published messages in memory so local runs can be inspected
type fakePubSub struct {
	sync.Mutex
	logger    mylog.Logger
	topics    map[string]bool
	Published map[string][]string
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newFakePubSub
	}
}

func newFakePubSub(c context.Context) (PubSub, func(), error) {
	return NewFakePubSub(), func() {}, nil
}

func NewFakePubSub() *fakePubSub {
	return &fakePubSub{
		logger:    mylog.New("pubsub"),
		topics:    map[string]bool{},
		Published: map[string][]string{},
	}
}

func (ps *fakePubSub) CreateTopic(c context.Context, topic string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.topics[topic] = true

	return nil
}

func (ps *fakePubSub) Publish(c context.Context, topic string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	ps.Published[topic] = append(ps.Published[topic], data)
	ps.logger.Log(c, topic, mylog.SeverityInfo, "Published on topic %s: %s", topic, data)

	return nil
}
