package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/services"
)

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }

func TestEventUpdate(t *testing.T) {
	ctx := context.Background()
	creator := primitive.NewObjectID()
	owner := services.Principal{UserID: creator}

	t.Run("creator patches only the named fields", func(t *testing.T) {
		event := newEvent(creator, 3)
		store := newFakeEventStore(event)
		svc := services.NewEventService(store)

		updated, err := svc.Update(ctx, owner, event.ID, services.EventPatch{
			Title: strptr("Raclette party"),
			Cost:  intptr(4),
		})
		require.NoError(t, err)
		assert.Equal(t, "Raclette party", updated.Title)
		assert.Equal(t, 4, updated.Cost)
		// Untouched fields keep their values.
		assert.Equal(t, "Française", updated.TypeOfCuisine)
		assert.Equal(t, 3, updated.NumberMaxOfGuests)
	})

	t.Run("admin may patch anyone's event", func(t *testing.T) {
		event := newEvent(creator, 3)
		svc := services.NewEventService(newFakeEventStore(event))

		admin := services.Principal{UserID: primitive.NewObjectID(), Admin: true}
		updated, err := svc.Update(ctx, admin, event.ID, services.EventPatch{Title: strptr("Modéré")})
		require.NoError(t, err)
		assert.Equal(t, "Modéré", updated.Title)
	})

	t.Run("stranger is denied and nothing changes", func(t *testing.T) {
		event := newEvent(creator, 3)
		store := newFakeEventStore(event)
		svc := services.NewEventService(store)

		stranger := services.Principal{UserID: primitive.NewObjectID()}
		_, err := svc.Update(ctx, stranger, event.ID, services.EventPatch{Title: strptr("x")})
		assert.ErrorIs(t, err, services.ErrAccessDenied)

		got, _ := store.GetEvent(ctx, event.ID)
		assert.Equal(t, "Dîner chez moi", got.Title)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := services.NewEventService(newFakeEventStore())
		_, err := svc.Update(ctx, owner, primitive.NewObjectID(), services.EventPatch{Title: strptr("x")})
		assert.ErrorIs(t, err, services.ErrEventNotFound)
	})
}

func TestEventDelete(t *testing.T) {
	ctx := context.Background()
	creator := primitive.NewObjectID()

	t.Run("creator deletes, embedded data goes with it", func(t *testing.T) {
		event := newEvent(creator, 3)
		store := newFakeEventStore(event)
		svc := services.NewEventService(store)

		require.NoError(t, svc.Delete(ctx, services.Principal{UserID: creator}, event.ID))

		got, err := store.GetEvent(ctx, event.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("stranger is denied", func(t *testing.T) {
		event := newEvent(creator, 3)
		store := newFakeEventStore(event)
		svc := services.NewEventService(store)

		stranger := services.Principal{UserID: primitive.NewObjectID()}
		assert.ErrorIs(t, svc.Delete(ctx, stranger, event.ID), services.ErrAccessDenied)

		got, _ := store.GetEvent(ctx, event.ID)
		assert.NotNil(t, got)
	})

	t.Run("admin deletes anyone's event", func(t *testing.T) {
		event := newEvent(creator, 3)
		store := newFakeEventStore(event)
		svc := services.NewEventService(store)

		admin := services.Principal{UserID: primitive.NewObjectID(), Admin: true}
		require.NoError(t, svc.Delete(ctx, admin, event.ID))
	})
}
