package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/models"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// ============================================
// Project Handler
// ============================================

type ProjectHandler struct {
	projectService service.ProjectService
}

func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// List - Derived project view
// GET /api/projects?search=&status=&priority=&category=&sort_by=&sort_order=
func (h *ProjectHandler) List(c *gin.Context) {
	var params service.QueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q, err := service.ParseQuery(params)
	if err != nil {
		handleServiceError(c, err, "Failed to parse query")
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), q)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch projects")
		return
	}

	response := make([]models.ProjectResponse, len(projects))
	for i, p := range projects {
		response[i] = toProjectResponse(p)
	}

	c.JSON(http.StatusOK, models.ProjectListResponse{
		Projects: response,
		Total:    len(response),
		Query:    toQueryResponse(q),
	})
}

// Create - Append a complete project
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status, ok := types.ParseStatus(req.Status)
	if !ok {
		handleServiceError(c, fmt.Errorf("%w: unknown status %q", service.ErrInvalidInput, req.Status), "Failed to create project")
		return
	}
	priority, ok := types.ParsePriority(req.Priority)
	if !ok {
		handleServiceError(c, fmt.Errorf("%w: unknown priority %q", service.ErrInvalidInput, req.Priority), "Failed to create project")
		return
	}
	category, ok := types.ParseCategory(req.Category)
	if !ok {
		handleServiceError(c, fmt.Errorf("%w: unknown category %q", service.ErrInvalidInput, req.Category), "Failed to create project")
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), repository.ProjectDraft{
		Name:     req.Name,
		Status:   status,
		Deadline: req.Deadline,
		Progress: req.Progress,
		Priority: priority,
		Category: category,
		Team: repository.Team{
			Name:    req.Team.Name,
			Members: safeStringSlice(req.Team.Members),
		},
	})
	if err != nil {
		handleServiceError(c, err, "Failed to create project")
		return
	}

	c.JSON(http.StatusCreated, toProjectResponse(project))
}

// Stats - Dashboard summary cards
// GET /api/projects/stats
func (h *ProjectHandler) Stats(c *gin.Context) {
	stats, err := h.projectService.Stats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, toStatsResponse(stats))
}
