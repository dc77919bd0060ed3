// Package directory implements the in-memory activity directory.
//
// The directory is the single source of truth for rosters. All access goes
// through one mutex so every signup and unregister is an atomic
// read-modify-write even under concurrent requests.
package directory

import (
	"context"
	"sync"

	"example.com/signup/internal/domain"
)

// Store holds the mapping from activity name to activity record.
type Store struct {
	mu              sync.RWMutex
	activities      map[string]domain.Activity
	enforceCapacity bool
}

// Option configures optional Store behaviour.
type Option func(*Store)

// WithCapacityEnforcement rejects signups once a roster reaches
// max_participants. Disabled by default: the historical behaviour allows
// over-subscription and existing clients depend on it.
func WithCapacityEnforcement(enabled bool) Option {
	return func(s *Store) {
		s.enforceCapacity = enabled
	}
}

// New constructs a Store seeded with the provided directory snapshot.
// The snapshot is deep-copied; the caller keeps ownership of its copy.
func New(seed map[string]domain.Activity, opts ...Option) *Store {
	s := &Store{activities: cloneDirectory(seed)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns a deep-copy snapshot of the full directory.
func (s *Store) List(ctx context.Context) (map[string]domain.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneDirectory(s.activities), nil
}

// Signup appends email to the activity roster, preserving insertion order.
// Activity names match exactly: case-sensitive and space-sensitive.
func (s *Store) Signup(ctx context.Context, activity, email string) (domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.activities[activity]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}
	for _, participant := range record.Participants {
		if participant == email {
			return domain.Activity{}, domain.ErrAlreadyRegistered
		}
	}
	if s.enforceCapacity && len(record.Participants) >= record.MaxParticipants {
		return domain.Activity{}, domain.ErrActivityFull
	}

	participants := make([]string, 0, len(record.Participants)+1)
	participants = append(participants, record.Participants...)
	participants = append(participants, email)
	record.Participants = participants
	s.activities[activity] = record

	return cloneActivity(record), nil
}

// Unregister removes email from the activity roster, keeping the relative
// order of the remaining participants.
func (s *Store) Unregister(ctx context.Context, activity, email string) (domain.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.activities[activity]
	if !ok {
		return domain.Activity{}, domain.ErrActivityNotFound
	}

	index := -1
	for i, participant := range record.Participants {
		if participant == email {
			index = i
			break
		}
	}
	if index < 0 {
		return domain.Activity{}, domain.ErrParticipantNotFound
	}

	participants := make([]string, 0, len(record.Participants)-1)
	participants = append(participants, record.Participants[:index]...)
	participants = append(participants, record.Participants[index+1:]...)
	record.Participants = participants
	s.activities[activity] = record

	return cloneActivity(record), nil
}

// Reset replaces the directory contents with the provided snapshot.
// Used by tests to restore a fixed state between cases.
func (s *Store) Reset(seed map[string]domain.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = cloneDirectory(seed)
}

func cloneDirectory(src map[string]domain.Activity) map[string]domain.Activity {
	out := make(map[string]domain.Activity, len(src))
	for name, record := range src {
		out[name] = cloneActivity(record)
	}
	return out
}

// cloneActivity always yields a non-nil roster slice so an emptied roster
// serialises as [] rather than null.
func cloneActivity(record domain.Activity) domain.Activity {
	participants := make([]string, len(record.Participants))
	copy(participants, record.Participants)
	record.Participants = participants
	return record
}
