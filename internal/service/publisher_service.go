package service

import (
	"context"

	"pdf-chat-be/internal/pkg/logger"
	"pdf-chat-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IPublisherService emits domain events without ever failing the caller.
type IPublisherService interface {
	Publish(ctx context.Context, event events.Event)
}

type publisherService struct {
	topicName string
	pubSub    message.Publisher
	logger    logger.ILogger
}

func NewPublisherService(topicName string, pubSub message.Publisher, log logger.ILogger) IPublisherService {
	return &publisherService{
		topicName: topicName,
		pubSub:    pubSub,
		logger:    log,
	}
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) {
	payload, err := events.Encode(event)
	if err != nil {
		ps.logger.Error("EVENTS", "Failed to encode event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", event.EventType())

	if err := ps.pubSub.Publish(ps.topicName, msg); err != nil {
		ps.logger.Warn("EVENTS", "Failed to publish event", map[string]interface{}{
			"type":  event.EventType(),
			"topic": ps.topicName,
			"error": err.Error(),
		})
	}
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, events.Event) {}
