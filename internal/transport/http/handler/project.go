package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/ErlanBelekov/project-tracker/internal/metrics"
	"github.com/ErlanBelekov/project-tracker/internal/transport/http/middleware"
	"github.com/ErlanBelekov/project-tracker/internal/usecase"
	"github.com/gin-gonic/gin"
)

type projectUsecaser interface {
	ListProjects(ctx context.Context, userID string) ([]*domain.Project, error)
	CreateProject(ctx context.Context, input usecase.CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, id, userID string) (*domain.Project, error)
	UpdateProject(ctx context.Context, input usecase.UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, id, userID string) error
}

type ProjectHandler struct {
	uc     projectUsecaser
	logger *slog.Logger
}

func NewProjectHandler(uc projectUsecaser, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{uc: uc, logger: logger.With("component", "project_handler")}
}

type createProjectRequest struct {
	Title       string `json:"title"       binding:"required,max=200"`
	Description string `json:"description" binding:"max=5000"`
	TechStack   string `json:"techStack"   binding:"max=500"`
	Status      string `json:"status"      binding:"max=50"`
}

// Absent fields are left unchanged.
type updateProjectRequest struct {
	ID          string  `json:"id"          binding:"required,uuid"`
	Title       *string `json:"title"       binding:"omitnil,min=1,max=200"`
	Description *string `json:"description" binding:"omitnil,max=5000"`
	TechStack   *string `json:"techStack"   binding:"omitnil,max=500"`
	Status      *string `json:"status"      binding:"omitnil,max=50"`
}

type deleteProjectRequest struct {
	ID string `json:"id" binding:"required,uuid"`
}

type projectResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TechStack   string    `json:"techStack"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Description: p.Description,
		TechStack:   p.TechStack,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// GET /api/projects
// Newest first, only the caller's projects.
func (h *ProjectHandler) List(ctx *gin.Context) {
	projects, err := h.uc.ListProjects(ctx.Request.Context(), ctx.GetString(middleware.UserIDKey))
	if err != nil {
		h.writeError(ctx, "list projects", err)
		return
	}

	items := make([]projectResponse, len(projects))
	for i, p := range projects {
		items[i] = toProjectResponse(p)
	}
	ctx.JSON(http.StatusOK, items)
}

// POST /api/projects
func (h *ProjectHandler) Create(ctx *gin.Context) {
	var req createProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.uc.CreateProject(ctx.Request.Context(), usecase.CreateProjectInput{
		UserID:      ctx.GetString(middleware.UserIDKey),
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		Status:      req.Status,
	})
	if err != nil {
		h.writeError(ctx, "create project", err)
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(p))
}

// GET /api/projects/:id
func (h *ProjectHandler) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")

	p, err := h.uc.GetProject(ctx.Request.Context(), id, ctx.GetString(middleware.UserIDKey))
	if err != nil {
		h.writeError(ctx, "get project", err, "project_id", id)
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(p))
}

// PUT /api/projects
func (h *ProjectHandler) Update(ctx *gin.Context) {
	var req updateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.uc.UpdateProject(ctx.Request.Context(), usecase.UpdateProjectInput{
		UserID:      ctx.GetString(middleware.UserIDKey),
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		Status:      req.Status,
	})
	if err != nil {
		h.writeError(ctx, "update project", err, "project_id", req.ID)
		return
	}

	ctx.JSON(http.StatusOK, toProjectResponse(p))
}

// DELETE /api/projects
func (h *ProjectHandler) Delete(ctx *gin.Context) {
	var req deleteProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.uc.DeleteProject(ctx.Request.Context(), req.ID, ctx.GetString(middleware.UserIDKey)); err != nil {
		h.writeError(ctx, "delete project", err, "project_id", req.ID)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *ProjectHandler) writeError(ctx *gin.Context, op string, err error, attrs ...any) {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": errProjectNotFound})
	case errors.Is(err, domain.ErrForbidden):
		metrics.ForbiddenTotal.Inc()
		h.logger.WarnContext(ctx.Request.Context(), op+": not owner", attrs...)
		ctx.JSON(http.StatusForbidden, gin.H{"error": errForbidden})
	case errors.Is(err, domain.ErrOwnerMissing):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
	default:
		h.logger.ErrorContext(ctx.Request.Context(), op, append(attrs, "error", err)...)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
	}
}
