package myevents

import (
	"encoding/json"
	"fmt"
	"time"
)

type EventEnvelope struct {
	UID           string
	CreatedAt     time.Time
	Topic         string
	AggregateUID  string
	EventTypeName string
	EventPayload  string `datastore:",noindex"`
	Published     bool
}

func (e EventEnvelope) String() string {
	return e.Topic + "." + e.EventTypeName + "." + e.AggregateUID
}

// Encode renders the envelope as it travels over pubsub
func (e EventEnvelope) Encode() (string, error) {
	jsonBytes, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("error serializing event %s: %s", e.String(), err)
	}
	return string(jsonBytes), nil
}

type Event interface {
	GetEventTypeName() string
	GetAggregateName() string
}
