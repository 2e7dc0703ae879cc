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

// ---------------- CREATE ----------------
func CreateOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var input struct {
			NumberOfToques int `json:"number_of_toques" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.NumberOfToques <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "number_of_toques must be greater than 0"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		order, err := orders.Create(ctx, p.UserID, input.NumberOfToques)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// ---------------- ADMIN CREATE ----------------
// An admin credits toques to any user's account.
func AdminOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			UserID         string `json:"user_id" binding:"required"`
			NumberOfToques int    `json:"number_of_toques" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.NumberOfToques <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "number_of_toques must be greater than 0"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(input.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		order, err := orders.Create(ctx, userID, input.NumberOfToques)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// ---------------- GET ----------------
func GetOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		order, err := orders.Get(ctx, orderID)
		if err != nil {
			respondError(c, err)
			return
		}
		if !p.CanManage(order.UserID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// ---------------- LIST ----------------
// Admins see every order, or one user's via ?user=; everyone else only
// their own.
func ListOrders(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		target := p.UserID
		if p.Admin {
			if q := c.Query("user"); q != "" {
				id, err := primitive.ObjectIDFromHex(q)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
					return
				}
				target = id
			} else {
				list, err := orders.List(ctx)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch orders"})
					return
				}
				c.JSON(http.StatusOK, list)
				return
			}
		}

		list, err := orders.ListByUser(ctx, target)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch orders"})
			return
		}

		c.JSON(http.StatusOK, list)
	}
}

// ---------------- DELETE ----------------
func DeleteOrder(orders *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := middleware.GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := orders.Delete(ctx, p, orderID); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "order cancelled",
			"id":      orderID.Hex(),
		})
	}
}
