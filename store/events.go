package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meetmeal/meetmeal-go/models"
	"github.com/meetmeal/meetmeal-go/services"
)

// Events persists event aggregates. Guest and comment mutations are single
// UpdateOne calls whose filter carries the business predicate, never a
// whole-document replace, so concurrent writers cannot drop each other's
// embedded entries.
type Events struct {
	col *mongo.Collection
}

func NewEvents(db *mongo.Database) *Events {
	return &Events{col: db.Collection("events")}
}

func (s *Events) InsertEvent(ctx context.Context, event *models.Event) error {
	_, err := s.col.InsertOne(ctx, event)
	return err
}

func (s *Events) GetEvent(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	var event models.Event
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *Events) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.find(ctx, bson.M{})
}

func (s *Events) ListEventsByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.find(ctx, bson.M{"user_id": userID})
}

func (s *Events) ListEventsByGuest(ctx context.Context, userID primitive.ObjectID) ([]models.Event, error) {
	return s.find(ctx, bson.M{"guests.user_id": userID})
}

// SearchEvents matches a keyword against title, cuisine, meal, allergens
// and city, case-insensitively.
func (s *Events) SearchEvents(ctx context.Context, keyword string) ([]models.Event, error) {
	regex := bson.M{"$regex": keyword, "$options": "i"}
	return s.find(ctx, bson.M{"$or": bson.A{
		bson.M{"title": regex},
		bson.M{"type_of_cuisine": regex},
		bson.M{"type_of_meal": regex},
		bson.M{"allergens": regex},
		bson.M{"city": regex},
	}})
}

func (s *Events) find(ctx context.Context, filter bson.M) ([]models.Event, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Events) PushGuest(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	update := bson.M{
		"$push": bson.M{"guests": models.Guest{UserID: userID, Status: models.StatusPending}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := s.col.UpdateOne(ctx, JoinGuard(eventID, userID), update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// JoinGuard is the join predicate: the event exists, the requester is not
// the creator, has no guest entry yet, and the non-refused entries are
// still below capacity.
func JoinGuard(eventID, userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":            eventID,
		"user_id":        bson.M{"$ne": userID},
		"guests.user_id": bson.M{"$ne": userID},
		"$expr": bson.M{"$lt": bson.A{
			bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$guests",
				"as":    "g",
				"cond":  bson.M{"$ne": bson.A{"$$g.status", models.StatusRefused}},
			}}},
			"$number_max_of_guests",
		}},
	}
}

func (s *Events) PullGuest(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{"_id": eventID, "guests.user_id": userID}
	update := bson.M{
		"$pull": bson.M{"guests": bson.M{"user_id": userID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *Events) SetGuestStatus(ctx context.Context, eventID, userID primitive.ObjectID, status string) (bool, error) {
	filter := bson.M{"_id": eventID, "guests.user_id": userID}
	update := bson.M{"$set": bson.M{
		"guests.$.status": status,
		"updated_at":      time.Now(),
	}}
	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *Events) PushComment(ctx context.Context, eventID primitive.ObjectID, comment models.Comment) (bool, error) {
	update := bson.M{
		"$push": bson.M{"comments": comment},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": eventID}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// CommentGuard matches an event holding a comment with both the given id
// and the given author, so ownership rides on the write itself.
func CommentGuard(eventID, commentID, authorID primitive.ObjectID) bson.M {
	return bson.M{
		"_id": eventID,
		"comments": bson.M{"$elemMatch": bson.M{
			"_id":     commentID,
			"user_id": authorID,
		}},
	}
}

func (s *Events) SetCommentContent(ctx context.Context, eventID, commentID, authorID primitive.ObjectID, content string) (bool, error) {
	update := bson.M{"$set": bson.M{
		"comments.$.content": content,
		"updated_at":         time.Now(),
	}}
	res, err := s.col.UpdateOne(ctx, CommentGuard(eventID, commentID, authorID), update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *Events) PullComment(ctx context.Context, eventID, commentID, authorID primitive.ObjectID) (bool, error) {
	update := bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID, "user_id": authorID}},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	res, err := s.col.UpdateOne(ctx, CommentGuard(eventID, commentID, authorID), update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *Events) SetEventStatus(ctx context.Context, eventID primitive.ObjectID, status string) (bool, error) {
	update := bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}}
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": eventID}, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *Events) UpdateEvent(ctx context.Context, eventID primitive.ObjectID, patch services.EventPatch) (bool, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": eventID}, bson.M{"$set": EventPatchSet(patch)})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// EventPatchSet builds the $set document for a partial event update; nil
// patch fields are left out entirely.
func EventPatchSet(patch services.EventPatch) bson.M {
	set := bson.M{"updated_at": time.Now()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Date != nil {
		set["date"] = *patch.Date
	}
	if patch.Hour != nil {
		set["time.hour"] = *patch.Hour
	}
	if patch.Minute != nil {
		set["time.minute"] = *patch.Minute
	}
	if patch.TypeOfCuisine != nil {
		set["type_of_cuisine"] = *patch.TypeOfCuisine
	}
	if patch.TypeOfMeal != nil {
		set["type_of_meal"] = *patch.TypeOfMeal
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Menu != nil {
		set["menu"] = patch.Menu
	}
	if patch.Allergens != nil {
		set["allergens"] = patch.Allergens
	}
	if patch.ZipCode != nil {
		set["zip_code"] = *patch.ZipCode
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.City != nil {
		set["city"] = *patch.City
	}
	if patch.NumberMaxOfGuests != nil {
		set["number_max_of_guests"] = *patch.NumberMaxOfGuests
	}
	if patch.Cost != nil {
		set["cost"] = *patch.Cost
	}
	return set
}

func (s *Events) DeleteEvent(ctx context.Context, eventID primitive.ObjectID) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": eventID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}
