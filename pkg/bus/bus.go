// Package bus wraps Redis PUB/SUB as the shared message bus between services.
//
// Delivery is at-most-once and best effort: there is no persisted log, no
// acknowledgment back to the publisher, and a subscriber that connects after
// a message was published never sees it. Within a single channel, messages
// from one publisher arrive in publish order.
package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-usersync/pkg/logger"
)

// Connection manages the Redis client shared by publishers and subscribers
type Connection struct {
	client *redis.Client
	log    *logger.Logger
}

// NewConnection creates a new bus connection and verifies it with a ping
func NewConnection(addr, password string, log *logger.Logger) (*Connection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to message bus: %w", err)
	}

	log.Info("connected to message bus", zap.String("addr", addr))
	return &Connection{client: client, log: log}, nil
}

// Client returns the underlying Redis client
func (c *Connection) Client() *redis.Client {
	return c.client
}

// Close closes the connection
func (c *Connection) Close() error {
	return c.client.Close()
}

// Envelope is the wire shape shared by all bus messages
type Envelope struct {
	TraceID string          `json:"trace_id,omitempty"`
	Body    json.RawMessage `json:"body"`
}

// Publisher publishes JSON messages to bus channels
type Publisher struct {
	conn *Connection
	log  *logger.Logger
}

// NewPublisher creates a new publisher
func NewPublisher(conn *Connection, log *logger.Logger) *Publisher {
	return &Publisher{conn: conn, log: log}
}

// Publish serializes message and publishes it on channel. The call returns
// once the broker accepted the message; subscriber outcomes are invisible.
func (p *Publisher) Publish(ctx context.Context, channel string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	envelope, err := json.Marshal(Envelope{
		TraceID: logger.GetTraceID(ctx),
		Body:    body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal envelope: %w", err)
	}

	if err := p.conn.client.Publish(ctx, channel, envelope).Err(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	p.log.WithContext(ctx).Debug("message published",
		zap.String("channel", channel),
	)

	return nil
}

// Handler handles a single inbound message body
type Handler func(ctx context.Context, body []byte) error

// Subscriber routes inbound messages to handlers. The handler table is scoped
// to the instance, so independent subscribers (for example in tests) do not
// interfere with each other. Exactly one handler per channel.
type Subscriber struct {
	conn     *Connection
	log      *logger.Logger
	mu       sync.Mutex
	handlers map[string]Handler
	pubsub   *redis.PubSub
}

// NewSubscriber creates a new subscriber with an empty handler table
func NewSubscriber(conn *Connection, log *logger.Logger) *Subscriber {
	return &Subscriber{
		conn:     conn,
		log:      log,
		handlers: make(map[string]Handler),
	}
}

// Subscribe registers handler for channel, replacing any previous handler.
// Registration must happen before Start.
func (s *Subscriber) Subscribe(channel string, handler Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[channel] = handler
}

// Channels returns the channels with a registered handler
func (s *Subscriber) Channels() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	channels := make([]string, 0, len(s.handlers))
	for ch := range s.handlers {
		channels = append(channels, ch)
	}
	return channels
}

// Dispatch routes one raw message to the handler registered for channel.
// A handler error is logged and the message is dropped; the bus never
// redelivers.
func (s *Subscriber) Dispatch(ctx context.Context, channel string, payload []byte) {
	s.mu.Lock()
	handler, ok := s.handlers[channel]
	s.mu.Unlock()

	if !ok {
		s.log.WithContext(ctx).Warn("no handler for channel",
			zap.String("channel", channel),
		)
		return
	}

	var envelope Envelope
	body := payload
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Body != nil {
		body = envelope.Body
		ctx = logger.WithTraceIDContext(ctx, envelope.TraceID)
	}

	if err := handler(ctx, body); err != nil {
		s.log.WithContext(ctx).Error("failed to handle message",
			zap.Error(err),
			zap.String("channel", channel),
		)
	}
}

// Start subscribes to all registered channels and consumes messages until
// ctx is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	channels := s.Channels()
	if len(channels) == 0 {
		return fmt.Errorf("no handlers registered")
	}

	pubsub := s.conn.client.Subscribe(ctx, channels...)

	// Wait for the subscription to be established so callers know the
	// process is receiving from this point on. Anything published earlier
	// is already gone.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	s.mu.Lock()
	s.pubsub = pubsub
	s.mu.Unlock()

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				s.Dispatch(ctx, msg.Channel, []byte(msg.Payload))
			}
		}
	}()

	s.log.Info("subscriber started",
		zap.Strings("channels", channels),
	)

	return nil
}

// Close tears down the active subscription, if any
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pubsub != nil {
		return s.pubsub.Close()
	}
	return nil
}
