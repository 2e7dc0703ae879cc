package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event and guest statuses share the same three-state machine: everything
// starts Pending and is decided by accept or refuse.
const (
	StatusPending  = "Pending"
	StatusAccepted = "Accepted"
	StatusRefused  = "Refused"
)

// Cuisine and meal enum values kept as stored in production data.
var TypesOfCuisine = []string{
	"Américaine", "Argentine", "Bresilienne", "Chinoise", "Espagnole",
	"Française", "Grecque", "Indienne", "Italienne", "Japonaise", "Libanaise",
	"Marocaine", "Mexicaine", "Thaïlandaise", "Péruvien", "Vegan",
	"Végétarienne", "Vietnamienne", "Autre",
}

var TypesOfMeal = []string{
	"Petit-Déjeuner", "Brunch", "Déjeuner", "Dîner", "Apéro", "Pique-Nique",
}

type EventTime struct {
	Hour   int `bson:"hour" json:"hour"`
	Minute int `bson:"minute" json:"minute"`
}

type Menu struct {
	Starter string   `bson:"starter,omitempty" json:"starter,omitempty"`
	Dish    string   `bson:"dish,omitempty" json:"dish,omitempty"`
	Dessert string   `bson:"dessert,omitempty" json:"dessert,omitempty"`
	Drinks  string   `bson:"drinks,omitempty" json:"drinks,omitempty"`
	Other   []string `bson:"other,omitempty" json:"other,omitempty"`
}

type Guest struct {
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Status string             `bson:"status" json:"status"`
}

type Comment struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"user_id"`
	Content   string             `bson:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type Event struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            primitive.ObjectID `bson:"user_id" json:"user_id"` // creator, immutable
	Title             string             `bson:"title" json:"title"`
	Date              time.Time          `bson:"date" json:"date"`
	Time              EventTime          `bson:"time" json:"time"`
	TypeOfCuisine     string             `bson:"type_of_cuisine" json:"type_of_cuisine"`
	TypeOfMeal        string             `bson:"type_of_meal" json:"type_of_meal"`
	Description       string             `bson:"description,omitempty" json:"description,omitempty"`
	Menu              []Menu             `bson:"menu,omitempty" json:"menu,omitempty"`
	Allergens         []string           `bson:"allergens,omitempty" json:"allergens,omitempty"`
	ZipCode           string             `bson:"zip_code" json:"zip_code"`
	Address           string             `bson:"address" json:"address"`
	City              string             `bson:"city" json:"city"`
	NumberMaxOfGuests int                `bson:"number_max_of_guests" json:"number_max_of_guests"`
	Cost              int                `bson:"cost" json:"cost"`
	Status            string             `bson:"status" json:"status"` // Pending, Accepted, Refused
	Guests            []Guest            `bson:"guests" json:"guests"`
	Comments          []Comment          `bson:"comments" json:"comments"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}

// ActiveGuests counts the entries holding a seat: Pending and Accepted.
// Refused entries stay in the list but release their seat.
func (e *Event) ActiveGuests() int {
	n := 0
	for _, g := range e.Guests {
		if g.Status != StatusRefused {
			n++
		}
	}
	return n
}

// FindGuest returns the guest entry for userID, or nil.
func (e *Event) FindGuest(userID primitive.ObjectID) *Guest {
	for i := range e.Guests {
		if e.Guests[i].UserID == userID {
			return &e.Guests[i]
		}
	}
	return nil
}

// FindComment returns the comment with the given id, or nil.
func (e *Event) FindComment(commentID primitive.ObjectID) *Comment {
	for i := range e.Comments {
		if e.Comments[i].ID == commentID {
			return &e.Comments[i]
		}
	}
	return nil
}

func ValidCuisine(s string) bool {
	for _, c := range TypesOfCuisine {
		if c == s {
			return true
		}
	}
	return false
}

func ValidMeal(s string) bool {
	for _, m := range TypesOfMeal {
		if m == s {
			return true
		}
	}
	return false
}
