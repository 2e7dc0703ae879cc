package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Firstname       string             `bson:"firstname" json:"firstname"`
	Lastname        string             `bson:"lastname" json:"lastname"`
	Age             int                `bson:"age" json:"age"`
	Email           string             `bson:"email" json:"email"`
	Password        string             `bson:"password" json:"-"`
	Avatar          string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Bio             string             `bson:"bio,omitempty" json:"bio,omitempty"`
	LoveStatus      string             `bson:"love_status,omitempty" json:"love_status,omitempty"`
	ZipCode         string             `bson:"zip_code,omitempty" json:"zip_code,omitempty"`
	Address         string             `bson:"address,omitempty" json:"address,omitempty"`
	City            string             `bson:"city,omitempty" json:"city,omitempty"`
	ToquesAvailable int                `bson:"toques_available" json:"toques_available"`
	Admin           bool               `bson:"admin" json:"admin"`
	Deactivated     bool               `bson:"deactivated" json:"deactivated"`
}

// PublicUser is the shape embedded in event responses (creator, guests,
// comment authors); never exposes email or credentials.
type PublicUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Firstname string             `bson:"firstname" json:"firstname"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
}
