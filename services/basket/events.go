package basket

import (
	"context"
	"fmt"

	"github.com/MarcGrol/shopbasket/services/basket/basketevents"
)

func (s *service) CreateTopics(c context.Context) error {
	err := s.publisher.CreateTopic(c, basketevents.TopicName)
	if err != nil {
		return fmt.Errorf("error creating topic %s: %s", basketevents.TopicName, err)
	}

	return nil
}
