package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/web"
)

// ============================================
// Dashboard Handler
// ============================================

type DashboardHandler struct {
	projectService service.ProjectService
	renderer       *web.Renderer
}

func NewDashboardHandler(projectService service.ProjectService, renderer *web.Renderer) *DashboardHandler {
	return &DashboardHandler{
		projectService: projectService,
		renderer:       renderer,
	}
}

// Show - HTML dashboard
// GET /?search=&status=&priority=&category=&sort_by=&sort_order=
func (h *DashboardHandler) Show(c *gin.Context) {
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

	ctx := c.Request.Context()
	projects, err := h.projectService.List(ctx, q)
	if err != nil {
		handleServiceError(c, err, "Failed to fetch projects")
		return
	}
	stats, err := h.projectService.Stats(ctx)
	if err != nil {
		handleServiceError(c, err, "Failed to compute stats")
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(&buf, web.DashboardPage{
		Projects: projects,
		Stats:    stats,
		Query:    q,
	}); err != nil {
		handleServiceError(c, err, "Failed to render dashboard")
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
