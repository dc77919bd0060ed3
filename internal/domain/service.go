package domain

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"example.com/signup/internal/events"
	"example.com/signup/internal/observability"
)

// DirectoryRepository captures the directory operations the service needs.
// Each mutation is a single atomic read-modify-write on one activity.
type DirectoryRepository interface {
	List(ctx context.Context) (map[string]Activity, error)
	Signup(ctx context.Context, activity, email string) (Activity, error)
	Unregister(ctx context.Context, activity, email string) (Activity, error)
}

// Service orchestrates roster reads and mutations against the directory.
type Service struct {
	repo      DirectoryRepository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewService constructs a Service.
func NewService(repo DirectoryRepository, publisher events.Publisher, logger *zap.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// ListActivities returns a snapshot of the full directory.
func (s *Service) ListActivities(ctx context.Context) (map[string]Activity, error) {
	return s.repo.List(ctx)
}

// Signup adds email to the activity roster and announces the change.
func (s *Service) Signup(ctx context.Context, activity, email string) (Activity, error) {
	record, err := s.repo.Signup(ctx, activity, email)
	if err != nil {
		observability.RecordSignupRejected(rejectionReason(err))
		return Activity{}, err
	}

	observability.RecordSignup(activity, len(record.Participants))
	s.publisher.Publish(ctx, events.NewParticipantSignedUp(activity, email, record.SpotsLeft()))
	s.logger.Info("participant signed up",
		zap.String("activity", activity),
		zap.String("email", email),
		zap.Int("roster_size", len(record.Participants)),
	)
	return record, nil
}

// Unregister removes email from the activity roster and announces the change.
func (s *Service) Unregister(ctx context.Context, activity, email string) (Activity, error) {
	record, err := s.repo.Unregister(ctx, activity, email)
	if err != nil {
		return Activity{}, err
	}

	observability.RecordUnregister(activity, len(record.Participants))
	s.publisher.Publish(ctx, events.NewParticipantRemoved(activity, email, record.SpotsLeft()))
	s.logger.Info("participant removed",
		zap.String("activity", activity),
		zap.String("email", email),
		zap.Int("roster_size", len(record.Participants)),
	)
	return record, nil
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		return "activity_not_found"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrActivityFull):
		return "activity_full"
	default:
		return "internal"
	}
}
