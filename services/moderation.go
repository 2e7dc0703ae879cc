package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
)

// ModerationService flips an event's status between Pending, Accepted and
// Refused. The admin requirement is enforced upstream by the route
// middleware; re-deciding an already-decided event just overwrites the
// status, there is no terminal-state lock.
type ModerationService struct {
	events EventStore
}

func NewModerationService(events EventStore) *ModerationService {
	return &ModerationService{events: events}
}

func (s *ModerationService) Validate(ctx context.Context, eventID primitive.ObjectID) error {
	return s.set(ctx, eventID, models.StatusAccepted)
}

func (s *ModerationService) Refuse(ctx context.Context, eventID primitive.ObjectID) error {
	return s.set(ctx, eventID, models.StatusRefused)
}

func (s *ModerationService) set(ctx context.Context, eventID primitive.ObjectID, status string) error {
	ok, err := s.events.SetEventStatus(ctx, eventID, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEventNotFound
	}
	return nil
}
