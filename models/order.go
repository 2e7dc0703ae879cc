package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order credits toques to a user's balance; deleting the order takes the
// same amount back.
type Order struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"user_id"`
	NumberOfToques int                `bson:"number_of_toques" json:"number_of_toques"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
}
