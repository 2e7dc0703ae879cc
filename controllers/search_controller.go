package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	store "github.com/meetmeal/meetmeal-go/store"
)

// ---------------- SEARCH USERS ----------------
func SearchUsers(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			SearchUser string `json:"search_user" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "enter a keyword"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := users.SearchUsers(ctx, input.SearchUser)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search users"})
			return
		}
		if len(result) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no user found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": result})
	}
}

// ---------------- SEARCH EVENTS ----------------
func SearchEvents(events *store.Events) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			SearchEvent string `json:"search_event" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "enter a keyword"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		result, err := events.SearchEvents(ctx, input.SearchEvent)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search events"})
			return
		}
		if len(result) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "no event found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"result": result})
	}
}
