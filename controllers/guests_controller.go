package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	middleware "github.com/meetmeal/meetmeal-go/middleware"
	services "github.com/meetmeal/meetmeal-go/services"
)

// ---------------- JOIN ----------------
func AddGuest(guests *services.GuestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := guests.Join(ctx, p, eventID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "registration pending"})
	}
}

// ---------------- LEAVE ----------------
// The requester leaves the event; an admin may remove another user by
// sending {"user_id": "..."} in the body.
func RemoveGuest(guests *services.GuestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		var input struct {
			UserID string `json:"user_id"`
		}
		// Body is optional; ignore binding errors on an empty body.
		c.ShouldBindJSON(&input)

		target := p.UserID
		if input.UserID != "" {
			target, err = primitive.ObjectIDFromHex(input.UserID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
				return
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := guests.Leave(ctx, p, eventID, target); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "guest removed"})
	}
}

// ---------------- DECIDE ----------------
func ValidateGuest(guests *services.GuestService) gin.HandlerFunc {
	return decideGuest(guests, true, "guest accepted")
}

func RefuseGuest(guests *services.GuestService) gin.HandlerFunc {
	return decideGuest(guests, false, "guest refused")
}

func decideGuest(guests *services.GuestService, accept bool, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		guestID, err := primitive.ObjectIDFromHex(c.Param("guest_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if accept {
			err = guests.Accept(ctx, p, eventID, guestID)
		} else {
			err = guests.Refuse(ctx, p, eventID, guestID)
		}
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}
