package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

type contextKey string

const (
	userIDCtxKey contextKey = "userID"
	loggerCtxKey contextKey = "logger"
)

// SetUserIDInContext stores the authenticated user ID in the request context.
func SetUserIDInContext(c *gin.Context, userID string) {
	ctx := context.WithValue(c.Request.Context(), userIDCtxKey, userID)
	c.Request = c.Request.WithContext(ctx)
}

// GetUserIDFromContext retrieves the authenticated user ID from the context.
// Returns an empty string and false when no user is attached.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDCtxKey).(string)
	return userID, ok
}
