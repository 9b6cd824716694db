package middleware

import (
	"net/http"

	ctxlog "github.com/ErlanBelekov/project-tracker/internal/log"
	"github.com/ErlanBelekov/project-tracker/internal/metrics"
	"github.com/ErlanBelekov/project-tracker/internal/session"
	"github.com/gin-gonic/gin"
)

const errUnauthorized = "Unauthorized"

// UserIDKey is the gin context key holding the authenticated user ID.
const UserIDKey = "userID"

type tokenVerifier interface {
	Verify(raw string) (string, error)
}

// Auth reads the session cookie, verifies it and sets UserIDKey in the gin
// context. A missing cookie and an invalid token get the same 401, and the
// request never reaches a handler.
func Auth(tokens tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(session.CookieName)
		if err != nil || raw == "" {
			abortUnauthorized(c)
			return
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(UserIDKey, userID)
		c.Request = c.Request.WithContext(ctxlog.WithUserID(c.Request.Context(), userID))
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	metrics.UnauthenticatedTotal.Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
}
