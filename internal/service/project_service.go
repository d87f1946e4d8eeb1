package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/db"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/metrics"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// ============================================
// Project Service
// ============================================

type ProjectService interface {
	Create(ctx context.Context, draft repository.ProjectDraft) (*repository.Project, error)
	List(ctx context.Context, q Query) ([]*repository.Project, error)
	Stats(ctx context.Context) (*Stats, error)
}

// Stats are the dashboard summary cards.
type Stats struct {
	Total           int             `json:"total"`
	Completed       int             `json:"completed"`
	Ongoing         int             `json:"ongoing"`
	Pending         int             `json:"pending"`
	TeamMembers     int             `json:"team_members"`
	AverageProgress decimal.Decimal `json:"average_progress"`
}

const viewCachePrefix = "projects:"

type projectService struct {
	projectRepo repository.ProjectRepository
	broadcaster Broadcaster
	cache       ViewCache
	cacheTTL    time.Duration
}

func NewProjectService(projectRepo repository.ProjectRepository, broadcaster Broadcaster, cache ViewCache, cacheTTL time.Duration) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		broadcaster: broadcaster,
		cache:       cache,
		cacheTTL:    cacheTTL,
	}
}

func (s *projectService) Create(ctx context.Context, draft repository.ProjectDraft) (*repository.Project, error) {
	draft = normalizeDraft(draft)
	if err := ValidateDraft(draft); err != nil {
		return nil, err
	}

	project, err := s.projectRepo.Append(ctx, draft)
	if err != nil {
		return nil, err
	}

	metrics.ObserveProjectCreated(project.Status)
	logging.C("projects").WithFields(map[string]interface{}{
		"project_id": project.ID,
		"status":     project.Status,
	}).Info("project created")

	if s.cache != nil {
		if err := s.cache.InvalidateCache(ctx, viewCachePrefix+"*"); err != nil {
			logging.C("projects").WithError(err).Warn("view cache invalidation failed")
		}
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastProjectCreated(ProjectPayload(project))
	}

	return project, nil
}

func (s *projectService) List(ctx context.Context, q Query) ([]*repository.Project, error) {
	if s.cache == nil {
		return s.derive(ctx, q)
	}

	version, err := s.projectRepo.Version(ctx)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%sv%d:%s", viewCachePrefix, version, q.Key())

	var cached []*repository.Project
	err = s.cache.GetCache(ctx, key, &cached)
	switch {
	case err == nil:
		metrics.ObserveViewCache(true)
		return cached, nil
	case !errors.Is(err, db.ErrMiss):
		logging.C("projects").WithError(err).Warn("view cache read failed")
	}
	metrics.ObserveViewCache(false)

	view, err := s.derive(ctx, q)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetCache(ctx, key, view, s.cacheTTL); err != nil {
		logging.C("projects").WithError(err).Warn("view cache write failed")
	}
	return view, nil
}

func (s *projectService) derive(ctx context.Context, q Query) ([]*repository.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return Derive(projects, q), nil
}

func (s *projectService) Stats(ctx context.Context) (*Stats, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(projects), nil
}

// ComputeStats summarizes projects for the dashboard cards.
func ComputeStats(projects []*repository.Project) *Stats {
	stats := &Stats{Total: len(projects), AverageProgress: decimal.Zero}
	members := make(map[string]struct{})
	sum := decimal.Zero

	for _, p := range projects {
		switch p.Status {
		case types.StatusCompleted:
			stats.Completed++
		case types.StatusOngoing:
			stats.Ongoing++
		case types.StatusPending:
			stats.Pending++
		}
		for _, m := range p.Team.Members {
			members[m] = struct{}{}
		}
		sum = sum.Add(decimal.NewFromInt(int64(p.Progress)))
	}

	stats.TeamMembers = len(members)
	if len(projects) > 0 {
		stats.AverageProgress = sum.Div(decimal.NewFromInt(int64(len(projects)))).Round(1)
	}
	return stats
}

// ValidateDraft enforces what the creation form's controls guarantee.
func ValidateDraft(d repository.ProjectDraft) error {
	// Whitespace-only names are accepted, as a required text input allows.
	if d.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if _, err := time.Parse(time.DateOnly, d.Deadline); err != nil {
		return fmt.Errorf("%w: deadline must be a YYYY-MM-DD date", ErrInvalidInput)
	}
	if d.Progress < 0 || d.Progress > 100 {
		return fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalidInput)
	}
	if !types.IsValidStatus(d.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, d.Status)
	}
	if !types.IsValidPriority(d.Priority) {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, d.Priority)
	}
	if !types.IsValidCategory(d.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, d.Category)
	}
	return nil
}

func normalizeDraft(d repository.ProjectDraft) repository.ProjectDraft {
	d = d.Clone()
	d.Deadline = strings.TrimSpace(d.Deadline)
	return d
}

// ProjectPayload is the websocket representation of a project.
func ProjectPayload(p *repository.Project) map[string]interface{} {
	return map[string]interface{}{
		"id":       p.ID,
		"name":     p.Name,
		"status":   p.Status,
		"deadline": p.Deadline,
		"progress": p.Progress,
		"priority": p.Priority,
		"category": p.Category,
		"team": map[string]interface{}{
			"name":    p.Team.Name,
			"members": p.Team.Members,
		},
	}
}
