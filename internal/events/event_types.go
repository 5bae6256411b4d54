package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventProfileUpdated    EventType = "profile_updated"
	EventPasswordChanged   EventType = "password_changed"
)

// Event represents an account lifecycle event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AccountRegisteredPayload payload.
type AccountRegisteredPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ProfileUpdatedPayload payload. Nil fields were not part of the update.
type ProfileUpdatedPayload struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// PasswordChangedPayload payload.
type PasswordChangedPayload struct {
	Email string `json:"email"`
}

// NewAccountRegistered builds a registration event.
func NewAccountRegistered(userID string, payload AccountRegisteredPayload) Event {
	return newEvent(EventAccountRegistered, userID, payload)
}

// NewProfileUpdated builds a profile update event.
func NewProfileUpdated(userID string, payload ProfileUpdatedPayload) Event {
	return newEvent(EventProfileUpdated, userID, payload)
}

// NewPasswordChanged builds a password change event.
func NewPasswordChanged(userID string, payload PasswordChangedPayload) Event {
	return newEvent(EventPasswordChanged, userID, payload)
}

func newEvent(eventType EventType, userID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}
