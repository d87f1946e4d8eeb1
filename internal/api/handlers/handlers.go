package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/models"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/web"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Project   *ProjectHandler
	Form      *FormHandler
	Option    *OptionHandler
	Dashboard *DashboardHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services, renderer *web.Renderer) *Handlers {
	return &Handlers{
		Project:   NewProjectHandler(services.Project),
		Form:      NewFormHandler(services.Form),
		Option:    NewOptionHandler(),
		Dashboard: NewDashboardHandler(services.Project, renderer),
	}
}

// handleServiceError maps service errors onto HTTP responses.
func handleServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrMemberIndex):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
	case errors.Is(err, service.ErrFormClosed):
		c.JSON(http.StatusConflict, gin.H{"error": "Form is closed"})
	default:
		logging.C("api").WithError(err).WithField("path", c.FullPath()).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// ============================================
// Response Mappers
// ============================================

func toTeamResponse(t repository.Team) models.TeamResponse {
	return models.TeamResponse{
		Name:    t.Name,
		Members: safeStringSlice(t.Members),
	}
}

func toProjectResponse(p *repository.Project) models.ProjectResponse {
	return models.ProjectResponse{
		ID:       p.ID,
		Name:     p.Name,
		Status:   string(p.Status),
		Deadline: p.Deadline,
		Progress: p.Progress,
		Priority: string(p.Priority),
		Category: string(p.Category),
		Team:     toTeamResponse(p.Team),
	}
}

func toDraftResponse(d repository.ProjectDraft) models.DraftResponse {
	return models.DraftResponse{
		Name:     d.Name,
		Status:   string(d.Status),
		Deadline: d.Deadline,
		Progress: d.Progress,
		Priority: string(d.Priority),
		Category: string(d.Category),
		Team:     toTeamResponse(d.Team),
	}
}

func toFormResponse(f *repository.FormSession) models.FormResponse {
	return models.FormResponse{
		ID:        f.ID,
		State:     string(f.State),
		Draft:     toDraftResponse(f.Draft),
		Scratch:   f.Scratch,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func toQueryResponse(q service.Query) models.QueryResponse {
	return models.QueryResponse{
		Search:    q.Search,
		Status:    q.Status.String(),
		Priority:  q.Priority.String(),
		Category:  q.Category.String(),
		SortBy:    string(q.SortBy),
		SortOrder: string(q.Order),
	}
}

func toStatsResponse(s *service.Stats) models.StatsResponse {
	return models.StatsResponse{
		Total:           s.Total,
		Completed:       s.Completed,
		Ongoing:         s.Ongoing,
		Pending:         s.Pending,
		TeamMembers:     s.TeamMembers,
		AverageProgress: s.AverageProgress.String(),
	}
}

// Helper to ensure nil slices become empty slices
func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
