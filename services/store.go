package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
)

// EventStore is the persistence surface the lifecycle services run on.
// Every mutating call is a single guarded write: the store evaluates the
// business predicate server-side and reports false when nothing matched,
// so two concurrent operations on the same event can never overwrite each
// other's embedded entries.
type EventStore interface {
	InsertEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	ListEventsByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error)
	ListEventsByGuest(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error)

	// PushGuest appends a Pending entry only if userID is not the creator,
	// has no existing entry, and the non-refused entries are below capacity.
	PushGuest(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error)
	PullGuest(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error)
	SetGuestStatus(ctx context.Context, eventID, userID primitive.ObjectID, status string) (bool, error)

	PushComment(ctx context.Context, eventID primitive.ObjectID, comment models.Comment) (bool, error)
	// SetCommentContent and PullComment match on comment id AND author id,
	// so ownership is enforced by the same write that mutates.
	SetCommentContent(ctx context.Context, eventID, commentID, authorID primitive.ObjectID, content string) (bool, error)
	PullComment(ctx context.Context, eventID, commentID, authorID primitive.ObjectID) (bool, error)

	SetEventStatus(ctx context.Context, eventID primitive.ObjectID, status string) (bool, error)
	UpdateEvent(ctx context.Context, eventID primitive.ObjectID, patch EventPatch) (bool, error)
	DeleteEvent(ctx context.Context, eventID primitive.ObjectID) (bool, error)
}

// EventPatch carries partial update semantics: nil fields are left untouched.
type EventPatch struct {
	Title             *string
	Date              *time.Time
	Hour              *int
	Minute            *int
	TypeOfCuisine     *string
	TypeOfMeal        *string
	Description       *string
	Menu              []models.Menu
	Allergens         []string
	ZipCode           *string
	Address           *string
	City              *string
	NumberMaxOfGuests *int
	Cost              *int
}

// Empty reports whether the patch would touch nothing.
func (p EventPatch) Empty() bool {
	return p.Title == nil && p.Date == nil && p.Hour == nil && p.Minute == nil &&
		p.TypeOfCuisine == nil && p.TypeOfMeal == nil && p.Description == nil &&
		p.Menu == nil && p.Allergens == nil && p.ZipCode == nil &&
		p.Address == nil && p.City == nil && p.NumberMaxOfGuests == nil && p.Cost == nil
}

// OrderStore persists toque orders.
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	ListOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	DeleteOrder(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteOrdersByUser(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// UserBalances adjusts a user's toque balance; delta may be negative.
type UserBalances interface {
	IncToques(ctx context.Context, userID primitive.ObjectID, delta int) (bool, error)
}
