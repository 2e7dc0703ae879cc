package services_test

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
	"github.com/meetmeal/meetmeal-go/services"
)

// fakeEventStore mirrors the guarded-write semantics of the Mongo store:
// every mutation checks its predicate and applies under one lock, exactly
// like a single filtered UpdateOne.
type fakeEventStore struct {
	mu     sync.Mutex
	events map[primitive.ObjectID]*models.Event
}

func newFakeEventStore(events ...*models.Event) *fakeEventStore {
	s := &fakeEventStore{events: make(map[primitive.ObjectID]*models.Event)}
	for _, e := range events {
		s.events[e.ID] = e
	}
	return s
}

func (s *fakeEventStore) InsertEvent(_ context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ID] = event
	return nil
}

func (s *fakeEventStore) GetEvent(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	copied := *event
	copied.Guests = append([]models.Guest(nil), event.Guests...)
	copied.Comments = append([]models.Comment(nil), event.Comments...)
	return &copied, nil
}

func (s *fakeEventStore) ListEvents(_ context.Context) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []models.Event{}
	for _, e := range s.events {
		list = append(list, *e)
	}
	return list, nil
}

func (s *fakeEventStore) ListEventsByCreator(_ context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []models.Event{}
	for _, e := range s.events {
		if e.UserID == userID {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (s *fakeEventStore) ListEventsByGuest(_ context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []models.Event{}
	for _, e := range s.events {
		if e.FindGuest(userID) != nil {
			list = append(list, *e)
		}
	}
	return list, nil
}

func (s *fakeEventStore) PushGuest(_ context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	if event.UserID == userID || event.FindGuest(userID) != nil {
		return false, nil
	}
	if event.ActiveGuests() >= event.NumberMaxOfGuests {
		return false, nil
	}
	event.Guests = append(event.Guests, models.Guest{UserID: userID, Status: models.StatusPending})
	return true, nil
}

func (s *fakeEventStore) PullGuest(_ context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	for i, g := range event.Guests {
		if g.UserID == userID {
			event.Guests = append(event.Guests[:i], event.Guests[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeEventStore) SetGuestStatus(_ context.Context, eventID, userID primitive.ObjectID, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	guest := event.FindGuest(userID)
	if guest == nil {
		return false, nil
	}
	guest.Status = status
	return true, nil
}

func (s *fakeEventStore) PushComment(_ context.Context, eventID primitive.ObjectID, comment models.Comment) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	event.Comments = append(event.Comments, comment)
	return true, nil
}

func (s *fakeEventStore) SetCommentContent(_ context.Context, eventID, commentID, authorID primitive.ObjectID, content string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	comment := event.FindComment(commentID)
	if comment == nil || comment.UserID != authorID {
		return false, nil
	}
	comment.Content = content
	return true, nil
}

func (s *fakeEventStore) PullComment(_ context.Context, eventID, commentID, authorID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	for i, c := range event.Comments {
		if c.ID == commentID && c.UserID == authorID {
			event.Comments = append(event.Comments[:i], event.Comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeEventStore) SetEventStatus(_ context.Context, eventID primitive.ObjectID, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	event.Status = status
	return true, nil
}

func (s *fakeEventStore) UpdateEvent(_ context.Context, eventID primitive.ObjectID, patch services.EventPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.events[eventID]
	if !ok {
		return false, nil
	}
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Date != nil {
		event.Date = *patch.Date
	}
	if patch.Hour != nil {
		event.Time.Hour = *patch.Hour
	}
	if patch.Minute != nil {
		event.Time.Minute = *patch.Minute
	}
	if patch.TypeOfCuisine != nil {
		event.TypeOfCuisine = *patch.TypeOfCuisine
	}
	if patch.TypeOfMeal != nil {
		event.TypeOfMeal = *patch.TypeOfMeal
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Menu != nil {
		event.Menu = patch.Menu
	}
	if patch.Allergens != nil {
		event.Allergens = patch.Allergens
	}
	if patch.ZipCode != nil {
		event.ZipCode = *patch.ZipCode
	}
	if patch.Address != nil {
		event.Address = *patch.Address
	}
	if patch.City != nil {
		event.City = *patch.City
	}
	if patch.NumberMaxOfGuests != nil {
		event.NumberMaxOfGuests = *patch.NumberMaxOfGuests
	}
	if patch.Cost != nil {
		event.Cost = *patch.Cost
	}
	return true, nil
}

func (s *fakeEventStore) DeleteEvent(_ context.Context, eventID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return false, nil
	}
	delete(s.events, eventID)
	return true, nil
}

// newEvent builds a minimal event for the lifecycle tests.
func newEvent(creator primitive.ObjectID, maxGuests int) *models.Event {
	return &models.Event{
		ID:                primitive.NewObjectID(),
		UserID:            creator,
		Title:             "Dîner chez moi",
		TypeOfCuisine:     "Française",
		TypeOfMeal:        "Dîner",
		NumberMaxOfGuests: maxGuests,
		Status:            models.StatusPending,
		Guests:            []models.Guest{},
		Comments:          []models.Comment{},
	}
}
