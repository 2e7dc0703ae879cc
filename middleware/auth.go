package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/meetmeal/meetmeal-go/models"
	"github.com/meetmeal/meetmeal-go/services"
	"github.com/meetmeal/meetmeal-go/utils"
)

// PrincipalKey is the gin context key the resolved principal lives under.
const PrincipalKey = "principal"

// UserFinder loads the user record behind a token.
type UserFinder interface {
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// AuthMiddleware validates the Bearer token, loads the user once, rejects
// deactivated accounts, and attaches the principal to the request context.
// Handlers never re-query identity mid-request.
func AuthMiddleware(secret string, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}

		uid, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		userID, err := primitive.ObjectIDFromHex(uid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		user, err := users.GetUser(ctx, userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not load user"})
			return
		}
		if user == nil || user.Deactivated {
			// A structurally valid token for a deactivated or deleted
			// account is still unauthorized.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "account unavailable"})
			return
		}

		role := "user"
		if user.Admin {
			role = "admin"
		}

		c.Set("user_id", user.ID.Hex())
		c.Set("role", role)
		c.Set(PrincipalKey, services.Principal{UserID: user.ID, Admin: user.Admin})
		c.Next()
	}
}

// GetPrincipal pulls the principal the auth middleware stored.
func GetPrincipal(c *gin.Context) (services.Principal, bool) {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return services.Principal{}, false
	}
	p, ok := v.(services.Principal)
	return p, ok
}
