package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/meetmeal/meetmeal-go/models"
)

type Users struct {
	col *mongo.Collection
}

func NewUsers(db *mongo.Database) *Users {
	return &Users{col: db.Collection("users")}
}

func (s *Users) InsertUser(ctx context.Context, user *models.User) error {
	_, err := s.col.InsertOne(ctx, user)
	return err
}

func (s *Users) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *Users) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

func (s *Users) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a prebuilt $set document to one user.
func (s *Users) UpdateUser(ctx context.Context, id primitive.ObjectID, set bson.M) (bool, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *Users) IncToques(ctx context.Context, userID primitive.ObjectID, delta int) (bool, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"toques_available": delta}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *Users) SetDeactivated(ctx context.Context, userID primitive.ObjectID, deactivated bool) (bool, error) {
	return s.UpdateUser(ctx, userID, bson.M{"deactivated": deactivated})
}

func (s *Users) DeleteUser(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount == 1, nil
}

// SearchUsers matches a keyword against firstname and lastname.
func (s *Users) SearchUsers(ctx context.Context, keyword string) ([]models.User, error) {
	regex := bson.M{"$regex": keyword, "$options": "i"}
	cursor, err := s.col.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"firstname": regex},
		bson.M{"lastname": regex},
	}})
	if err != nil {
		return nil, err
	}
	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}
