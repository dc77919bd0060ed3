// Package events delivers roster change notifications to Kafka.
//
// Publishing is best-effort: the directory is the source of truth and a
// delivery failure never affects the HTTP response.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types carried in the event_type header and envelope.
const (
	TypeParticipantSignedUp = "roster.participant_signed_up"
	TypeParticipantRemoved  = "roster.participant_removed"
)

// RosterEvent is the envelope written to the roster topic.
type RosterEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	Activity   string    `json:"activity"`
	Email      string    `json:"email"`
	SpotsLeft  int       `json:"spots_left"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewParticipantSignedUp builds the event emitted after a successful signup.
func NewParticipantSignedUp(activity, email string, spotsLeft int) RosterEvent {
	return newRosterEvent(TypeParticipantSignedUp, activity, email, spotsLeft)
}

// NewParticipantRemoved builds the event emitted after a successful unregister.
func NewParticipantRemoved(activity, email string, spotsLeft int) RosterEvent {
	return newRosterEvent(TypeParticipantRemoved, activity, email, spotsLeft)
}

func newRosterEvent(eventType, activity, email string, spotsLeft int) RosterEvent {
	return RosterEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Activity:   activity,
		Email:      email,
		SpotsLeft:  spotsLeft,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher enqueues roster events for delivery.
type Publisher interface {
	Publish(ctx context.Context, event RosterEvent)
}

// NopPublisher discards events. Used when no brokers are configured.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, RosterEvent) {}
