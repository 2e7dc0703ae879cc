package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	middleware "github.com/meetmeal/meetmeal-go/middleware"
	models "github.com/meetmeal/meetmeal-go/models"
	services "github.com/meetmeal/meetmeal-go/services"
	store "github.com/meetmeal/meetmeal-go/store"
	utils "github.com/meetmeal/meetmeal-go/utils"
)

// parseDate accepts RFC3339 plus a few laxer layouts.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		layouts := []string{"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05"}
		for _, layout := range layouts {
			if t, e := time.Parse(layout, value); e == nil {
				return t, nil
			}
		}
		return time.Time{}, err
	}
	return parsed, nil
}

// ---------------- CREATE ----------------
func CreateEvent(events *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input struct {
			Title             string        `json:"title" binding:"required"`
			Date              string        `json:"date" binding:"required"`
			Hour              *int          `json:"hour" binding:"required"`
			Minute            *int          `json:"minute" binding:"required"`
			TypeOfCuisine     string        `json:"type_of_cuisine" binding:"required"`
			TypeOfMeal        string        `json:"type_of_meal" binding:"required"`
			Description       string        `json:"description"`
			Menu              []models.Menu `json:"menu"`
			Allergens         []string      `json:"allergens"`
			ZipCode           string        `json:"zip_code" binding:"required"`
			Address           string        `json:"address" binding:"required"`
			City              string        `json:"city" binding:"required"`
			NumberMaxOfGuests int           `json:"number_max_of_guests" binding:"required"`
			Cost              int           `json:"cost" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		date, err := parseDate(input.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use RFC3339 or YYYY-MM-DD"})
			return
		}
		if *input.Hour < 0 || *input.Hour > 23 || *input.Minute < 0 || *input.Minute > 59 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid time"})
			return
		}
		if !models.ValidCuisine(input.TypeOfCuisine) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown type of cuisine"})
			return
		}
		if !models.ValidMeal(input.TypeOfMeal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown type of meal"})
			return
		}
		if input.NumberMaxOfGuests < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "number_max_of_guests must be at least 1"})
			return
		}

		now := time.Now()
		event := models.Event{
			ID:                primitive.NewObjectID(),
			UserID:            p.UserID,
			Title:             input.Title,
			Date:              date,
			Time:              models.EventTime{Hour: *input.Hour, Minute: *input.Minute},
			TypeOfCuisine:     input.TypeOfCuisine,
			TypeOfMeal:        input.TypeOfMeal,
			Description:       input.Description,
			Menu:              input.Menu,
			Allergens:         input.Allergens,
			ZipCode:           input.ZipCode,
			Address:           input.Address,
			City:              input.City,
			NumberMaxOfGuests: input.NumberMaxOfGuests,
			Cost:              input.Cost,
			Status:            models.StatusPending,
			Guests:            []models.Guest{},
			Comments:          []models.Comment{},
			CreatedAt:         now,
			UpdatedAt:         now,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := events.Create(ctx, &event); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create event"})
			return
		}

		c.JSON(http.StatusCreated, event)
	}
}

// ---------------- LIST ----------------
func ListEvents(events *services.EventService, eventStore *store.Events) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		var (
			list []models.Event
			err  error
		)

		switch {
		case c.Query("creator") != "":
			var creatorID primitive.ObjectID
			creatorID, err = primitive.ObjectIDFromHex(c.Query("creator"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid creator id"})
				return
			}
			list, err = events.ListCreatedBy(ctx, creatorID)
		case c.Query("guest") != "":
			var guestID primitive.ObjectID
			guestID, err = primitive.ObjectIDFromHex(c.Query("guest"))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid guest id"})
				return
			}
			list, err = events.ListJoinedBy(ctx, guestID)
		case c.Query("q") != "":
			list, err = eventStore.SearchEvents(ctx, c.Query("q"))
		default:
			list, err = events.List(ctx)
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch events"})
			return
		}

		if len(list) == 0 {
			c.JSON(http.StatusOK, []models.Event{})
			return
		}

		// --- Pick the most recently updated event ---
		latest := list[0]
		for _, ev := range list {
			if ev.UpdatedAt.After(latest.UpdatedAt) {
				latest = ev
			}
		}

		// --- Generate ETag from latest event ---
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, list)
	}
}

// ---------------- GET ----------------
func GetEvent(events *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		event, err := events.Get(ctx, eventID)
		if err != nil {
			respondError(c, err)
			return
		}

		etag := utils.GenerateETag(event.ID, event.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, event)
	}
}

// ---------------- UPDATE ----------------
func UpdateEvent(events *services.EventService) gin.HandlerFunc {
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
			Title             *string       `json:"title"`
			Date              *string       `json:"date"`
			Hour              *int          `json:"hour"`
			Minute            *int          `json:"minute"`
			TypeOfCuisine     *string       `json:"type_of_cuisine"`
			TypeOfMeal        *string       `json:"type_of_meal"`
			Description       *string       `json:"description"`
			Menu              []models.Menu `json:"menu"`
			Allergens         []string      `json:"allergens"`
			ZipCode           *string       `json:"zip_code"`
			Address           *string       `json:"address"`
			City              *string       `json:"city"`
			NumberMaxOfGuests *int          `json:"number_max_of_guests"`
			Cost              *int          `json:"cost"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		patch := services.EventPatch{
			Title:             input.Title,
			Hour:              input.Hour,
			Minute:            input.Minute,
			TypeOfCuisine:     input.TypeOfCuisine,
			TypeOfMeal:        input.TypeOfMeal,
			Description:       input.Description,
			Menu:              input.Menu,
			Allergens:         input.Allergens,
			ZipCode:           input.ZipCode,
			Address:           input.Address,
			City:              input.City,
			NumberMaxOfGuests: input.NumberMaxOfGuests,
			Cost:              input.Cost,
		}

		if input.Date != nil && *input.Date != "" {
			parsed, err := parseDate(*input.Date)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format, use RFC3339 or YYYY-MM-DD"})
				return
			}
			patch.Date = &parsed
		}
		if input.Hour != nil && (*input.Hour < 0 || *input.Hour > 23) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid hour"})
			return
		}
		if input.Minute != nil && (*input.Minute < 0 || *input.Minute > 59) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minute"})
			return
		}
		if input.TypeOfCuisine != nil && !models.ValidCuisine(*input.TypeOfCuisine) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown type of cuisine"})
			return
		}
		if input.TypeOfMeal != nil && !models.ValidMeal(*input.TypeOfMeal) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown type of meal"})
			return
		}
		if input.NumberMaxOfGuests != nil && *input.NumberMaxOfGuests < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "number_max_of_guests must be at least 1"})
			return
		}

		if patch.Empty() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		updated, err := events.Update(ctx, p, eventID, patch)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "event updated successfully",
			"event":   updated,
		})
	}
}

// ---------------- DELETE ----------------
func DeleteEvent(events *services.EventService) gin.HandlerFunc {
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

		if err := events.Delete(ctx, p, eventID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "event deleted successfully",
			"id":      eventID.Hex(),
		})
	}
}

// ---------------- MODERATION ----------------
func ValidateEvent(moderation *services.ModerationService) gin.HandlerFunc {
	return moderate(moderation.Validate, "event validated")
}

func RefuseEvent(moderation *services.ModerationService) gin.HandlerFunc {
	return moderate(moderation.Refuse, "event refused")
}

func moderate(decide func(context.Context, primitive.ObjectID) error, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := decide(ctx, eventID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": message, "id": eventID.Hex()})
	}
}
