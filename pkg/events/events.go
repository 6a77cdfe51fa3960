package events

import "time"

// Channel names. The bus namespaces every event under "events:"; payloads
// carry no schema version field, so shape changes are breaking.
const (
	ChannelPrefix           = "events:"
	ChannelUserRegistered   = ChannelPrefix + "user.registered"
	ChannelUserVerified     = ChannelPrefix + "user.verified"
	EventTypeUserRegistered = "user.registered"
	EventTypeUserVerified   = "user.verified"
)

// UserRegisteredEvent is published when a new user is registered
type UserRegisteredEvent struct {
	EventType string                `json:"event_type"`
	Timestamp time.Time             `json:"timestamp"`
	TraceID   string                `json:"trace_id,omitempty"`
	Payload   UserRegisteredPayload `json:"payload"`
}

// UserRegisteredPayload contains the registered user's data
type UserRegisteredPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserRegisteredEvent creates a new UserRegisteredEvent
func NewUserRegisteredEvent(id, email, name string, createdAt time.Time, traceID string) *UserRegisteredEvent {
	return &UserRegisteredEvent{
		EventType: EventTypeUserRegistered,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: UserRegisteredPayload{
			ID:        id,
			Email:     email,
			Name:      name,
			CreatedAt: createdAt,
		},
	}
}

// UserVerifiedEvent is published when a user's email is verified
type UserVerifiedEvent struct {
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	TraceID   string              `json:"trace_id,omitempty"`
	Payload   UserVerifiedPayload `json:"payload"`
}

// UserVerifiedPayload identifies the verified user
type UserVerifiedPayload struct {
	ID         string    `json:"id"`
	VerifiedAt time.Time `json:"verified_at"`
}

// NewUserVerifiedEvent creates a new UserVerifiedEvent
func NewUserVerifiedEvent(id string, verifiedAt time.Time, traceID string) *UserVerifiedEvent {
	return &UserVerifiedEvent{
		EventType: EventTypeUserVerified,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: UserVerifiedPayload{
			ID:         id,
			VerifiedAt: verifiedAt,
		},
	}
}
