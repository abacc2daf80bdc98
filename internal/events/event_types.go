package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/crm-service/internal/domain"
)

// EventType enumerates supported audit event identifiers.
type EventType string

const (
	EventLoginSucceeded  EventType = "login_succeeded"
	EventLoginFailed     EventType = "login_failed"
	EventTokenRefreshed  EventType = "token_refreshed"
	EventPasswordChanged EventType = "password_changed"
)

// Event represents an audit event emitted by the auth flows. Subject
// is the identifier the caller presented; it may not exist in the
// directory for failed logins.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Subject   string      `json:"subject"`
	Role      domain.Role `json:"role,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// LoginFailedPayload describes why a login was rejected. Internal
// only; the client sees a uniform unauthorized response.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// TokenRefreshedPayload carries the new token's expiry.
type TokenRefreshedPayload struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// NewEvent builds an audit event with a fresh ID and timestamp.
func NewEvent(eventType EventType, subject string, role domain.Role, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Subject:   subject,
		Role:      role,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// Publish is a nil-safe convenience for emitting through an optional
// dispatcher.
func Publish(ctx context.Context, dispatcher Dispatcher, event Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}
