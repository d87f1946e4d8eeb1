package service

import (
	"context"
	"errors"
	"time"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrFormClosed   = errors.New("form is closed")
	ErrMemberIndex  = errors.New("member index out of range")
)

// Broadcaster receives store change notifications so connected dashboards
// can re-render.
type Broadcaster interface {
	BroadcastProjectCreated(project map[string]interface{})
}

// ViewCache memoizes derived views. *db.RedisDB satisfies it.
type ViewCache interface {
	GetCache(ctx context.Context, key string, dest interface{}) error
	SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	InvalidateCache(ctx context.Context, pattern string) error
}

// ============================================
// Services Container
// ============================================

type Services struct {
	Project ProjectService
	Form    FormService
}

// ServiceDeps contains all dependencies needed to create services
type ServiceDeps struct {
	Repos        *repository.Repositories
	Broadcaster  Broadcaster
	Cache        ViewCache
	CacheTTL     time.Duration
	Location     *time.Location
	Now          func() time.Time
	NewSessionID func() string
}

func NewServices(deps *ServiceDeps) *Services {
	projectService := NewProjectService(deps.Repos.ProjectRepo, deps.Broadcaster, deps.Cache, deps.CacheTTL)

	return &Services{
		Project: projectService,
		Form: NewFormService(FormServiceConfig{
			DraftRepo:    deps.Repos.DraftRepo,
			Projects:     projectService,
			Location:     deps.Location,
			Now:          deps.Now,
			NewSessionID: deps.NewSessionID,
		}),
	}
}
