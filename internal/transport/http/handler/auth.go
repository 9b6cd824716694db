package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/ErlanBelekov/project-tracker/internal/password"
	"github.com/ErlanBelekov/project-tracker/internal/session"
	"github.com/ErlanBelekov/project-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}

type AuthHandler struct {
	authUsecase  authUsecaser
	cookieMaxAge int
	secureCookie bool
	logger       *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, sessionTTL time.Duration, secureCookie bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		cookieMaxAge: int(sessionTTL / time.Second),
		secureCookie: secureCookie,
		logger:       logger.With("component", "auth_handler"),
	}
}

type credentialsRequest struct {
	Email    string `json:"email"    binding:"required,email,max=320"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// bindCredentials writes a 400 and returns false when the body is unusable.
func bindCredentials(c *gin.Context) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return req, false
	}
	if len(req.Password) > password.MaxLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": errPasswordTooLong})
		return req, false
	}
	return req, true
}

// POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	user, err := h.authUsecase.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			c.JSON(http.StatusConflict, gin.H{"error": errDuplicateEmail})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "signup", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"user":    toUserResponse(user),
	})
}

// POST /api/auth/login
// Sets the session cookie on success.
func (h *AuthHandler) Login(c *gin.Context) {
	req, ok := bindCredentials(c)
	if !ok {
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": errUserNotFound})
		case errors.Is(err, domain.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidPassword})
		default:
			h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		}
		return
	}

	h.setSessionCookie(c, token, h.cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful"})
}

// POST /api/auth/logout
// Clears the cookie. The token itself stays valid until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUsecase.CurrentUser(c.Request.Context(), c.GetString(middleware.UserIDKey))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": errUserNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "current user", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, value, maxAge, "/", "", h.secureCookie, true)
}
