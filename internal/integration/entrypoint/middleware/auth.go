// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/budget-analysis/backend/internal/domain/error"
	"github.com/budget-analysis/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// UserIDKey is the context key for the authenticated user's ID.
const UserIDKey ContextKey = "user_id"

// UserIDHeader carries the caller identity set by the upstream gateway.
const UserIDHeader = "X-User-ID"

// IdentityMiddleware resolves the caller identity from the trusted gateway
// header. The service runs behind a gateway that authenticates requests
// and forwards the resolved user ID.
type IdentityMiddleware struct{}

// NewIdentityMiddleware creates a new identity middleware instance.
func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

// Authenticate returns a Gin middleware handler that requires a valid
// user ID header on every request.
func (m *IdentityMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(UserIDHeader)
		if header == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "User identity header is required",
				Code:  string(domainerror.ErrCodeUserNotAuthenticated),
			})
			c.Abort()
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "Invalid user identity header",
				Code:  string(domainerror.ErrCodeUserNotAuthenticated),
			})
			c.Abort()
			return
		}

		c.Set(string(UserIDKey), userID)

		c.Next()
	}
}

// GetUserIDFromContext extracts the user ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(string(UserIDKey))
	if !exists {
		return uuid.Nil, false
	}
	id, ok := userID.(uuid.UUID)
	return id, ok
}
