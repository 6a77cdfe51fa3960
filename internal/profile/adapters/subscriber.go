package adapters

import (
	"context"
	"encoding/json"

	"go-usersync/internal/profile/ports"
	"go-usersync/pkg/bus"
	"go-usersync/pkg/events"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/rabbitmq"
)

// BusSubscriber implements EventSubscriber on the Redis message bus
type BusSubscriber struct {
	subscriber *bus.Subscriber
	log        *logger.Logger
}

// NewBusSubscriber creates a new bus event subscriber
func NewBusSubscriber(conn *bus.Connection, log *logger.Logger) *BusSubscriber {
	return &BusSubscriber{
		subscriber: bus.NewSubscriber(conn, log),
		log:        log,
	}
}

// SubscribeUserRegistered registers the handler for user registered events
func (s *BusSubscriber) SubscribeUserRegistered(handler ports.UserRegisteredHandler) {
	s.subscriber.Subscribe(events.ChannelUserRegistered, func(ctx context.Context, body []byte) error {
		var event events.UserRegisteredEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return err
		}
		return handler(ctx, event)
	})
}

// SubscribeUserVerified registers the handler for user verified events
func (s *BusSubscriber) SubscribeUserVerified(handler ports.UserVerifiedHandler) {
	s.subscriber.Subscribe(events.ChannelUserVerified, func(ctx context.Context, body []byte) error {
		var event events.UserVerifiedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return err
		}
		return handler(ctx, event)
	})
}

// Start begins delivering events until ctx is cancelled
func (s *BusSubscriber) Start(ctx context.Context) error {
	return s.subscriber.Start(ctx)
}

// RabbitMQSubscriber implements EventSubscriber using RabbitMQ
type RabbitMQSubscriber struct {
	conn       *rabbitmq.Connection
	log        *logger.Logger
	registered ports.UserRegisteredHandler
	verified   ports.UserVerifiedHandler
}

// NewRabbitMQSubscriber creates a new RabbitMQ event subscriber
func NewRabbitMQSubscriber(conn *rabbitmq.Connection, log *logger.Logger) *RabbitMQSubscriber {
	return &RabbitMQSubscriber{
		conn: conn,
		log:  log,
	}
}

// SubscribeUserRegistered registers the handler for user registered events
func (s *RabbitMQSubscriber) SubscribeUserRegistered(handler ports.UserRegisteredHandler) {
	s.registered = handler
}

// SubscribeUserVerified registers the handler for user verified events
func (s *RabbitMQSubscriber) SubscribeUserVerified(handler ports.UserVerifiedHandler) {
	s.verified = handler
}

// Start begins delivering events until ctx is cancelled
func (s *RabbitMQSubscriber) Start(ctx context.Context) error {
	keys := make([]string, 0, 2)
	if s.registered != nil {
		keys = append(keys, events.EventTypeUserRegistered)
	}
	if s.verified != nil {
		keys = append(keys, events.EventTypeUserVerified)
	}

	consumer, err := rabbitmq.NewConsumer(s.conn, "profile.user-events", keys, s.log)
	if err != nil {
		return err
	}

	return consumer.Consume(ctx, s.handleMessage)
}

func (s *RabbitMQSubscriber) handleMessage(ctx context.Context, body []byte) error {
	// Peek the event type, then decode the full message for its handler
	var head struct {
		EventType string `json:"event_type"`
	}
	if err := json.Unmarshal(body, &head); err != nil {
		return err
	}

	switch head.EventType {
	case events.EventTypeUserRegistered:
		if s.registered == nil {
			return nil
		}
		var event events.UserRegisteredEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return err
		}
		return s.registered(ctx, event)
	case events.EventTypeUserVerified:
		if s.verified == nil {
			return nil
		}
		var event events.UserVerifiedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return err
		}
		return s.verified(ctx, event)
	default:
		return nil
	}
}
