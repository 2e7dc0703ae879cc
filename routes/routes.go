package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/meetmeal/meetmeal-go/config"
	controllers "github.com/meetmeal/meetmeal-go/controllers"
	middleware "github.com/meetmeal/meetmeal-go/middleware"
	services "github.com/meetmeal/meetmeal-go/services"
	store "github.com/meetmeal/meetmeal-go/store"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	db := cfg.DB()
	userStore := store.NewUsers(db)
	eventStore := store.NewEvents(db)
	orderStore := store.NewOrders(db)

	eventSvc := services.NewEventService(eventStore)
	guestSvc := services.NewGuestService(eventStore)
	commentSvc := services.NewCommentService(eventStore)
	moderationSvc := services.NewModerationService(eventStore)
	orderSvc := services.NewOrderService(orderStore, userStore)

	auth := middleware.AuthMiddleware(cfg.JWTSecret, userStore)
	admin := middleware.RequireAdmin()

	// public
	r.POST("/users/register", controllers.Register(userStore))
	r.POST("/users/login", controllers.Login(cfg, userStore))
	r.POST("/search/events", controllers.SearchEvents(eventStore))

	users := r.Group("/users")
	users.Use(auth)
	{
		users.GET("/me", controllers.Profile(userStore))
		users.PUT("/me", controllers.UpdateProfile(userStore))
		users.PUT("/me/deactivate", controllers.DeactivateAccount(userStore))
		users.DELETE("/:id", controllers.DeleteUser(userStore, orderSvc))
	}

	events := r.Group("/events")
	events.Use(auth)
	{
		events.POST("", controllers.CreateEvent(eventSvc))
		events.GET("", controllers.ListEvents(eventSvc, eventStore))
		events.GET("/:id", controllers.GetEvent(eventSvc))
		events.PUT("/:id", controllers.UpdateEvent(eventSvc))
		events.DELETE("/:id", controllers.DeleteEvent(eventSvc))

		events.PUT("/:id/validate", admin, controllers.ValidateEvent(moderationSvc))
		events.PUT("/:id/refuse", admin, controllers.RefuseEvent(moderationSvc))

		events.PUT("/:id/addGuest", controllers.AddGuest(guestSvc))
		events.PUT("/:id/removeGuest", controllers.RemoveGuest(guestSvc))
		events.PUT("/:id/validateGuest/:guest_id", controllers.ValidateGuest(guestSvc))
		events.PUT("/:id/refuseGuest/:guest_id", controllers.RefuseGuest(guestSvc))

		events.POST("/:id/comment", controllers.AddComment(commentSvc))
		events.PUT("/:id/comments/:comment_id", controllers.UpdateComment(commentSvc))
		events.DELETE("/:id/comments/:comment_id", controllers.DeleteComment(commentSvc))
	}

	orders := r.Group("/orders")
	orders.Use(auth)
	{
		orders.POST("", controllers.CreateOrder(orderSvc))
		orders.POST("/admin", admin, controllers.AdminOrder(orderSvc))
		orders.GET("", controllers.ListOrders(orderSvc))
		orders.GET("/:id", controllers.GetOrder(orderSvc))
		orders.DELETE("/:id", controllers.DeleteOrder(orderSvc))
	}

	search := r.Group("/search")
	search.Use(auth)
	{
		search.POST("/users", controllers.SearchUsers(userStore))
	}
}
