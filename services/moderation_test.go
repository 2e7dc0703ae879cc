package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
	"github.com/meetmeal/meetmeal-go/services"
)

func TestModeration(t *testing.T) {
	ctx := context.Background()
	creator := primitive.NewObjectID()

	t.Run("validate sets Accepted", func(t *testing.T) {
		event := newEvent(creator, 3)
		store := newFakeEventStore(event)
		svc := services.NewModerationService(store)

		require.NoError(t, svc.Validate(ctx, event.ID))
		got, _ := store.GetEvent(ctx, event.ID)
		assert.Equal(t, models.StatusAccepted, got.Status)
	})

	t.Run("refuse sets Refused", func(t *testing.T) {
		event := newEvent(creator, 3)
		store := newFakeEventStore(event)
		svc := services.NewModerationService(store)

		require.NoError(t, svc.Refuse(ctx, event.ID))
		got, _ := store.GetEvent(ctx, event.ID)
		assert.Equal(t, models.StatusRefused, got.Status)
	})

	t.Run("re-deciding overwrites without error", func(t *testing.T) {
		event := newEvent(creator, 3)
		store := newFakeEventStore(event)
		svc := services.NewModerationService(store)

		require.NoError(t, svc.Refuse(ctx, event.ID))
		require.NoError(t, svc.Validate(ctx, event.ID))
		require.NoError(t, svc.Validate(ctx, event.ID))

		got, _ := store.GetEvent(ctx, event.ID)
		assert.Equal(t, models.StatusAccepted, got.Status)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := services.NewModerationService(newFakeEventStore())
		assert.ErrorIs(t, svc.Validate(ctx, primitive.NewObjectID()), services.ErrEventNotFound)
	})
}
