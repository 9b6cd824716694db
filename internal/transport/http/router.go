package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/project-tracker/internal/repository"
	"github.com/ErlanBelekov/project-tracker/internal/session"
	"github.com/ErlanBelekov/project-tracker/internal/transport/http/handler"
	"github.com/ErlanBelekov/project-tracker/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

type RouterDeps struct {
	Logger         *slog.Logger
	AuthHandler    *handler.AuthHandler
	ProjectHandler *handler.ProjectHandler
	Tokens         *session.Codec

	// SessionUsers, when set, makes every authenticated request re-resolve
	// its token subject (VERIFY_SESSION_USER).
	SessionUsers repository.UserRepository

	HSTS bool
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(deps.HSTS))
	r.Use(sloggin.New(deps.Logger))
	r.Use(middleware.Metrics())

	protected := []gin.HandlerFunc{middleware.Auth(deps.Tokens)}
	if deps.SessionUsers != nil {
		protected = append(protected, middleware.EnsureUser(deps.SessionUsers, deps.Logger))
	}

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/signup", deps.AuthHandler.Signup)
	auth.POST("/login", deps.AuthHandler.Login)
	auth.POST("/logout", deps.AuthHandler.Logout)
	auth.GET("/me", append(protected, deps.AuthHandler.Me)...)

	// Protected project routes
	projects := api.Group("/projects", protected...)
	projects.GET("", deps.ProjectHandler.List)
	projects.POST("", deps.ProjectHandler.Create)
	projects.PUT("", deps.ProjectHandler.Update)
	projects.DELETE("", deps.ProjectHandler.Delete)
	projects.GET("/:id", deps.ProjectHandler.GetByID)

	return r
}
