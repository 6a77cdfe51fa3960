package adapters

import (
	"context"

	"go-usersync/internal/identity/domain"
	"go-usersync/pkg/bus"
	"go-usersync/pkg/events"
	"go-usersync/pkg/logger"
	"go-usersync/pkg/rabbitmq"
)

// BusPublisher implements EventPublisher on the Redis message bus
type BusPublisher struct {
	publisher *bus.Publisher
	log       *logger.Logger
}

// NewBusPublisher creates a new bus event publisher
func NewBusPublisher(publisher *bus.Publisher, log *logger.Logger) *BusPublisher {
	return &BusPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishUserRegistered publishes a user registered event
func (p *BusPublisher) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	event := events.NewUserRegisteredEvent(
		user.ID,
		user.Email,
		user.Name,
		user.CreatedAt,
		logger.GetTraceID(ctx),
	)

	return p.publisher.Publish(ctx, events.ChannelUserRegistered, event)
}

// PublishUserVerified publishes a user verified event
func (p *BusPublisher) PublishUserVerified(ctx context.Context, user *domain.User) error {
	event := events.NewUserVerifiedEvent(
		user.ID,
		user.UpdatedAt,
		logger.GetTraceID(ctx),
	)

	return p.publisher.Publish(ctx, events.ChannelUserVerified, event)
}

// RabbitMQPublisher implements EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher *rabbitmq.Publisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher *rabbitmq.Publisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishUserRegistered publishes a user registered event
func (p *RabbitMQPublisher) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	event := events.NewUserRegisteredEvent(
		user.ID,
		user.Email,
		user.Name,
		user.CreatedAt,
		logger.GetTraceID(ctx),
	)

	return p.publisher.Publish(ctx, events.EventTypeUserRegistered, event)
}

// PublishUserVerified publishes a user verified event
func (p *RabbitMQPublisher) PublishUserVerified(ctx context.Context, user *domain.User) error {
	event := events.NewUserVerifiedEvent(
		user.ID,
		user.UpdatedAt,
		logger.GetTraceID(ctx),
	)

	return p.publisher.Publish(ctx, events.EventTypeUserVerified, event)
}
