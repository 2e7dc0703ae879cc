package controllers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/controllers"
	"github.com/meetmeal/meetmeal-go/middleware"
	"github.com/meetmeal/meetmeal-go/models"
	"github.com/meetmeal/meetmeal-go/services"
)

// stubEvents backs the guest handlers with a single in-memory event. The
// embedded interface covers the methods these handlers never touch.
type stubEvents struct {
	services.EventStore

	mu    sync.Mutex
	event *models.Event
}

func (s *stubEvents) GetEvent(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.event == nil || s.event.ID != id {
		return nil, nil
	}
	copied := *s.event
	copied.Guests = append([]models.Guest(nil), s.event.Guests...)
	return &copied, nil
}

func (s *stubEvents) PushGuest(_ context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.event
	if e == nil || e.ID != eventID || e.UserID == userID ||
		e.FindGuest(userID) != nil || e.ActiveGuests() >= e.NumberMaxOfGuests {
		return false, nil
	}
	e.Guests = append(e.Guests, models.Guest{UserID: userID, Status: models.StatusPending})
	return true, nil
}

func (s *stubEvents) PullGuest(_ context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.event
	if e == nil || e.ID != eventID {
		return false, nil
	}
	for i, g := range e.Guests {
		if g.UserID == userID {
			e.Guests = append(e.Guests[:i], e.Guests[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *stubEvents) SetGuestStatus(_ context.Context, eventID, userID primitive.ObjectID, status string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.event
	if e == nil || e.ID != eventID {
		return false, nil
	}
	for i, g := range e.Guests {
		if g.UserID == userID {
			e.Guests[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

func guestRouter(store *stubEvents, p services.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := services.NewGuestService(store)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.PrincipalKey, p)
		c.Next()
	})
	r.PUT("/events/:id/addGuest", controllers.AddGuest(svc))
	r.PUT("/events/:id/removeGuest", controllers.RemoveGuest(svc))
	r.PUT("/events/:id/validateGuest/:guest_id", controllers.ValidateGuest(svc))
	r.PUT("/events/:id/refuseGuest/:guest_id", controllers.RefuseGuest(svc))
	return r
}

func put(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, path, nil))
	return w
}

func TestAddGuestStatuses(t *testing.T) {
	creator := primitive.NewObjectID()
	guest := services.Principal{UserID: primitive.NewObjectID()}

	newStore := func(max int) *stubEvents {
		return &stubEvents{event: &models.Event{
			ID:                primitive.NewObjectID(),
			UserID:            creator,
			NumberMaxOfGuests: max,
		}}
	}

	t.Run("join lands pending", func(t *testing.T) {
		store := newStore(3)
		r := guestRouter(store, guest)

		w := put(r, "/events/"+store.event.ID.Hex()+"/addGuest")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "registration pending")
		assert.Equal(t, models.StatusPending, store.event.Guests[0].Status)
	})

	t.Run("creator joining own event is a 400", func(t *testing.T) {
		store := newStore(3)
		r := guestRouter(store, services.Principal{UserID: creator})

		w := put(r, "/events/"+store.event.ID.Hex()+"/addGuest")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("double join is a 400", func(t *testing.T) {
		store := newStore(3)
		r := guestRouter(store, guest)

		put(r, "/events/"+store.event.ID.Hex()+"/addGuest")
		w := put(r, "/events/"+store.event.ID.Hex()+"/addGuest")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("full event is a 400", func(t *testing.T) {
		store := newStore(1)
		store.event.Guests = []models.Guest{
			{UserID: primitive.NewObjectID(), Status: models.StatusAccepted},
		}
		r := guestRouter(store, guest)

		w := put(r, "/events/"+store.event.ID.Hex()+"/addGuest")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown event is a 404", func(t *testing.T) {
		store := newStore(3)
		r := guestRouter(store, guest)

		w := put(r, "/events/"+primitive.NewObjectID().Hex()+"/addGuest")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed event id is a 400", func(t *testing.T) {
		store := newStore(3)
		r := guestRouter(store, guest)

		w := put(r, "/events/not-an-id/addGuest")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRemoveGuestStatuses(t *testing.T) {
	creator := primitive.NewObjectID()
	guestID := primitive.NewObjectID()

	newStore := func() *stubEvents {
		return &stubEvents{event: &models.Event{
			ID:                primitive.NewObjectID(),
			UserID:            creator,
			NumberMaxOfGuests: 3,
			Guests:            []models.Guest{{UserID: guestID, Status: models.StatusPending}},
		}}
	}

	t.Run("guest removes themselves", func(t *testing.T) {
		store := newStore()
		r := guestRouter(store, services.Principal{UserID: guestID})

		w := put(r, "/events/"+store.event.ID.Hex()+"/removeGuest")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, store.event.Guests)
	})

	t.Run("non-guest finds nothing to remove", func(t *testing.T) {
		store := newStore()
		r := guestRouter(store, services.Principal{UserID: primitive.NewObjectID()})

		w := put(r, "/events/"+store.event.ID.Hex()+"/removeGuest")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDecideGuestStatuses(t *testing.T) {
	creator := primitive.NewObjectID()
	guestID := primitive.NewObjectID()

	newStore := func() *stubEvents {
		return &stubEvents{event: &models.Event{
			ID:                primitive.NewObjectID(),
			UserID:            creator,
			NumberMaxOfGuests: 3,
			Guests:            []models.Guest{{UserID: guestID, Status: models.StatusPending}},
		}}
	}

	t.Run("creator accepts", func(t *testing.T) {
		store := newStore()
		r := guestRouter(store, services.Principal{UserID: creator})

		w := put(r, "/events/"+store.event.ID.Hex()+"/validateGuest/"+guestID.Hex())
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StatusAccepted, store.event.Guests[0].Status)
	})

	t.Run("admin refuses", func(t *testing.T) {
		store := newStore()
		r := guestRouter(store, services.Principal{UserID: primitive.NewObjectID(), Admin: true})

		w := put(r, "/events/"+store.event.ID.Hex()+"/refuseGuest/"+guestID.Hex())
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, models.StatusRefused, store.event.Guests[0].Status)
	})

	t.Run("stranger is a 403", func(t *testing.T) {
		store := newStore()
		r := guestRouter(store, services.Principal{UserID: primitive.NewObjectID()})

		w := put(r, "/events/"+store.event.ID.Hex()+"/validateGuest/"+guestID.Hex())
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, models.StatusPending, store.event.Guests[0].Status)
	})

	t.Run("unknown guest is a 404", func(t *testing.T) {
		store := newStore()
		r := guestRouter(store, services.Principal{UserID: creator})

		w := put(r, "/events/"+store.event.ID.Hex()+"/validateGuest/"+primitive.NewObjectID().Hex())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
