package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
)

// EventService covers event creation, reads, and the owner-or-admin
// update/delete operations.
type EventService struct {
	events EventStore
}

func NewEventService(events EventStore) *EventService {
	return &EventService{events: events}
}

func (s *EventService) Create(ctx context.Context, event *models.Event) error {
	return s.events.InsertEvent(ctx, event)
}

func (s *EventService) Get(ctx context.Context, eventID primitive.ObjectID) (*models.Event, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context) ([]models.Event, error) {
	return s.events.ListEvents(ctx)
}

// ListCreatedBy returns the events a user hosts.
func (s *EventService) ListCreatedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.events.ListEventsByCreator(ctx, userID)
}

// ListJoinedBy returns the events a user appears on as a guest.
func (s *EventService) ListJoinedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.events.ListEventsByGuest(ctx, userID)
}

// Update applies a partial patch; creator or admin only. The creator and
// the embedded guest/comment lists are never touched by a patch.
func (s *EventService) Update(ctx context.Context, p Principal, eventID primitive.ObjectID, patch EventPatch) (*models.Event, error) {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrEventNotFound
	}
	if !p.CanManage(event.UserID) {
		return nil, ErrAccessDenied
	}

	if !patch.Empty() {
		if _, err := s.events.UpdateEvent(ctx, eventID, patch); err != nil {
			return nil, err
		}
	}

	updated, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrEventNotFound
	}
	return updated, nil
}

// Delete removes the event document; embedded guests and comments go with
// it. Creator or admin only.
func (s *EventService) Delete(ctx context.Context, p Principal, eventID primitive.ObjectID) error {
	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	if !p.CanManage(event.UserID) {
		return ErrAccessDenied
	}

	ok, err := s.events.DeleteEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEventNotFound
	}
	return nil
}
