package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/gin-gonic/gin"
)

type userFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// EnsureUser runs after Auth. It re-resolves the token subject against the
// store so that a token for a deleted account stops working before it expires.
// Enabled by VERIFY_SESSION_USER.
func EnsureUser(users userFinder, logger *slog.Logger) gin.HandlerFunc {
	logger = logger.With("component", "ensure_user")
	return func(c *gin.Context) {
		userID := c.GetString(UserIDKey)
		if _, err := users.FindByID(c.Request.Context(), userID); err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				abortUnauthorized(c)
				return
			}
			logger.ErrorContext(c.Request.Context(), "resolve session user", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				gin.H{"error": "Internal server error"})
			return
		}
		c.Next()
	}
}
