package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
)

// GuestService governs the join/leave/accept/refuse transitions on an
// event's embedded guest list. Each guest entry moves Pending -> Accepted
// or Pending -> Refused exactly once; resubmitting means leaving and
// joining again.
type GuestService struct {
	events EventStore
}

func NewGuestService(events EventStore) *GuestService {
	return &GuestService{events: events}
}

// Join appends a Pending entry for the principal. The push is guarded by
// the store; on a miss the event is re-read once to name the reason.
func (s *GuestService) Join(ctx context.Context, p Principal, eventID primitive.ObjectID) error {
	ok, err := s.events.PushGuest(ctx, eventID, p.UserID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	if event.UserID == p.UserID {
		return ErrSelfJoinForbidden
	}
	if event.FindGuest(p.UserID) != nil {
		return ErrAlreadyJoined
	}
	if event.ActiveGuests() >= event.NumberMaxOfGuests {
		return ErrCapacityExceeded
	}
	return ErrConflict
}

// Leave removes guestID's entry. Only the guest themselves or an admin may
// remove an entry.
func (s *GuestService) Leave(ctx context.Context, p Principal, eventID, guestID primitive.ObjectID) error {
	if !p.CanManage(guestID) {
		return ErrAccessDenied
	}

	ok, err := s.events.PullGuest(ctx, eventID, guestID)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	event, err := s.events.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrEventNotFound
	}
	return ErrGuestNotFound
}

// Accept marks guestID's entry Accepted. Creator or admin only.
func (s *GuestService) Accept(ctx context.Context, p Principal, eventID, guestID primitive.ObjectID) error {
	return s.decide(ctx, p, eventID, guestID, models.StatusAccepted)
}

// Refuse marks guestID's entry Refused. Creator or admin only.
func (s *GuestService) Refuse(ctx context.Context, p Principal, eventID, guestID primitive.ObjectID) error {
	return s.decide(ctx, p, eventID, guestID, models.StatusRefused)
}

func (s *GuestService) decide(ctx context.Context, p Principal, eventID, guestID primitive.ObjectID, status string) error {
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
	if event.FindGuest(guestID) == nil {
		return ErrGuestNotFound
	}

	ok, err := s.events.SetGuestStatus(ctx, eventID, guestID, status)
	if err != nil {
		return err
	}
	if !ok {
		// The entry was removed between the read and the write.
		return ErrGuestNotFound
	}
	return nil
}
