package service

import (
	"context"
	"time"

	"henna-assistant-be/internal/pkg/logger"
	"henna-assistant-be/pkg/events"
	pktNats "henna-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// IEventPublisher fans domain events out to the in-process bus and, when
// configured, to NATS. Publishing is best effort and never fails a request.
type IEventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}

type publisherService struct {
	topicName string
	publisher message.Publisher
	natsPub   *pktNats.Publisher
	logger    logger.ILogger
}

func NewPublisherService(
	topicName string,
	publisher message.Publisher,
	natsPub *pktNats.Publisher,
	log logger.ILogger,
) IEventPublisher {
	return &publisherService{
		topicName: topicName,
		publisher: publisher,
		natsPub:   natsPub,
		logger:    log,
	}
}

func (ps *publisherService) Publish(ctx context.Context, event events.Event) {
	payload, err := events.Marshal(event)
	if err != nil {
		ps.logger.Error("EVENTS", "Failed to encode event", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("type", event.EventType())
	if err := ps.publisher.Publish(ps.topicName, msg); err != nil {
		ps.logger.Warn("EVENTS", "Failed to publish event to bus", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}

	if ps.natsPub == nil {
		return
	}
	natsCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := ps.natsPub.Publish(natsCtx, event); err != nil {
		ps.logger.Warn("EVENTS", "Failed to publish event to NATS", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
	}
}
