package repository

import (
	"context"
	"sync"
)

type inMemoryProjectRepository struct {
	mu       sync.RWMutex
	projects []*Project
	lastID   int64
	version  uint64
}

func NewProjectRepository() ProjectRepository {
	return &inMemoryProjectRepository{projects: make([]*Project, 0, 16)}
}

// Append never fails; validation belongs to the form that builds the draft.
func (r *inMemoryProjectRepository) Append(ctx context.Context, draft ProjectDraft) (*Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	project := &Project{ID: r.lastID, ProjectDraft: draft.Clone()}
	r.projects = append(r.projects, project)
	r.version++

	return project.Clone(), nil
}

func (r *inMemoryProjectRepository) List(ctx context.Context) ([]*Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Project, len(r.projects))
	for i, p := range r.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

func (r *inMemoryProjectRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects), nil
}

func (r *inMemoryProjectRepository) Version(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version, nil
}
