// Package domain defines the business logic for the signup service.
package domain

import "errors"

var (
	// ErrActivityNotFound is returned when an activity name is not in the directory.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadyRegistered is returned when the email is already on the roster.
	ErrAlreadyRegistered = errors.New("participant already signed up")
	// ErrParticipantNotFound is returned when unregistering an email that is not on the roster.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrActivityFull is returned when capacity enforcement is enabled and the roster is full.
	ErrActivityFull = errors.New("activity is full")
)

// Activity is a named club offering with its schedule, capacity, and roster.
// Participants keep insertion order and are unique within one activity.
type Activity struct {
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []string
}

// SpotsLeft reports how many open spots remain. Rosters can run over capacity
// when enforcement is disabled, so the result is clamped at zero.
func (a Activity) SpotsLeft() int {
	left := a.MaxParticipants - len(a.Participants)
	if left < 0 {
		return 0
	}
	return left
}
