package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	config "github.com/meetmeal/meetmeal-go/config"
	middleware "github.com/meetmeal/meetmeal-go/middleware"
	models "github.com/meetmeal/meetmeal-go/models"
	services "github.com/meetmeal/meetmeal-go/services"
	store "github.com/meetmeal/meetmeal-go/store"
	utils "github.com/meetmeal/meetmeal-go/utils"
)

// ---------------- REGISTER ----------------
func Register(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Firstname  string `json:"firstname" binding:"required"`
			Lastname   string `json:"lastname" binding:"required"`
			Age        int    `json:"age" binding:"required"`
			Email      string `json:"email" binding:"required,email"`
			Password   string `json:"password" binding:"required,min=6,max=20"`
			Bio        string `json:"bio"`
			LoveStatus string `json:"love_status"`
			ZipCode    string `json:"zip_code"`
			Address    string `json:"address"`
			City       string `json:"city"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if input.Age < 18 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "you must be 18 or older to register"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		existing, err := users.GetUserByEmail(ctx, input.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		if existing != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user already exists"})
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			respondError(c, err)
			return
		}

		user := models.User{
			ID:         primitive.NewObjectID(),
			Firstname:  input.Firstname,
			Lastname:   input.Lastname,
			Age:        input.Age,
			Email:      input.Email,
			Password:   hashed,
			Bio:        input.Bio,
			LoveStatus: input.LoveStatus,
			ZipCode:    input.ZipCode,
			Address:    input.Address,
			City:       input.City,
		}

		if err := users.InsertUser(ctx, &user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create user"})
			return
		}

		// Best effort, never blocks registration.
		go utils.SendWelcomeEmail(user.Email, user.Firstname)

		c.JSON(http.StatusCreated, user)
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config, users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := users.GetUserByEmail(ctx, input.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if err := utils.CheckPassword(user.Password, input.Password); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		// A deactivated account comes back to life on a successful login.
		if user.Deactivated {
			if _, err := users.SetDeactivated(ctx, user.ID, false); err != nil {
				respondError(c, err)
				return
			}
			user.Deactivated = false
		}

		token, err := utils.GenerateToken(user.ID.Hex(), cfg.JWTSecret, cfg.TokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

// ---------------- PROFILE ----------------
func Profile(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := users.GetUser(ctx, p.UserID)
		if err != nil {
			respondError(c, err)
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// ---------------- UPDATE PROFILE ----------------
func UpdateProfile(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// Form binding: mixed text fields + optional avatar upload.
		var input struct {
			Firstname  string `form:"firstname"`
			Lastname   string `form:"lastname"`
			Age        int    `form:"age"`
			Bio        string `form:"bio"`
			LoveStatus string `form:"love_status"`
			ZipCode    string `form:"zip_code"`
			Address    string `form:"address"`
			City       string `form:"city"`
		}

		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		update := bson.M{}
		if input.Firstname != "" {
			update["firstname"] = input.Firstname
		}
		if input.Lastname != "" {
			update["lastname"] = input.Lastname
		}
		if input.Age > 0 {
			if input.Age < 18 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "you must be 18 or older"})
				return
			}
			update["age"] = input.Age
		}
		if input.Bio != "" {
			update["bio"] = input.Bio
		}
		if input.LoveStatus != "" {
			update["love_status"] = input.LoveStatus
		}
		if input.ZipCode != "" {
			update["zip_code"] = input.ZipCode
		}
		if input.Address != "" {
			update["address"] = input.Address
		}
		if input.City != "" {
			update["city"] = input.City
		}

		// Avatar upload (multipart form, key "avatar").
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}
		if form != nil {
			if files := form.File["avatar"]; len(files) > 0 {
				fileHeader := files[0]
				file, err := fileHeader.Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}
				url, err := utils.UploadAvatar(file, fileHeader)
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "avatar upload failed", "details": err.Error()})
					return
				}
				update["avatar"] = url
			}
		}

		if len(update) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := users.UpdateUser(ctx, p.UserID, update); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update profile"})
			return
		}

		updated, err := users.GetUser(ctx, p.UserID)
		if err != nil || updated == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve updated profile"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- DEACTIVATE ----------------
func DeactivateAccount(users *store.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := users.SetDeactivated(ctx, p.UserID, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not deactivate account"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "account deactivated"})
	}
}

// ---------------- DELETE ----------------
func DeleteUser(users *store.Users, orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		if !p.CanManage(targetID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		existing, err := users.GetUser(ctx, targetID)
		if err != nil {
			respondError(c, err)
			return
		}
		if existing == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		deleted, err := users.DeleteUser(ctx, targetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}

		// Orders follow their owner.
		if _, err := orders.DeleteForUser(ctx, targetID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete user orders"})
			return
		}

		if existing.Avatar != "" {
			utils.DeleteFromCloudinary(existing.Avatar)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "user deleted successfully",
			"id":      targetID.Hex(),
		})
	}
}
