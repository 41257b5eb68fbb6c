package service

import (
	"context"
	"fmt"

	"inkfeed-be/pkg/events"
	pktNats "inkfeed-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IPublisherService interface {
	PublishEvent(ctx context.Context, event events.Event) error
}

type publisherService struct {
	topicName string
	pubSub    *gochannel.GoChannel
	natsPub   *pktNats.Publisher
}

// NewPublisherService wires the in-process bus the notification recorder
// listens on. natsPub may be nil; when set, every event is mirrored to
// JetStream for consumers outside this process.
func NewPublisherService(topicName string, pubSub *gochannel.GoChannel, natsPub *pktNats.Publisher) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		natsPub:   natsPub,
	}
}

func (c *publisherService) PublishEvent(ctx context.Context, event events.Event) error {
	payload, err := events.Marshal(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := c.pubSub.Publish(c.topicName, msg); err != nil {
		return err
	}

	// Mirror to NATS. Never fails the request, external consumers catch up
	// from the stream anyway.
	if c.natsPub != nil {
		if err := c.natsPub.Publish(ctx, event); err != nil {
			fmt.Printf("[WARN] Failed to mirror %s event to NATS: %v\n", event.EventType(), err)
		}
	}

	return nil
}
