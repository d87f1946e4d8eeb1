// internal/repository/repository.go
package repository

import (
	"context"
	"time"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// ============================================
// Models / Entities
// ============================================

type Team struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// ProjectDraft is a project that has not been assigned an ID yet.
type ProjectDraft struct {
	Name     string         `json:"name"`
	Status   types.Status   `json:"status"`
	Deadline string         `json:"deadline"`
	Progress int            `json:"progress"`
	Priority types.Priority `json:"priority"`
	Category types.Category `json:"category"`
	Team     Team           `json:"team"`
}

type Project struct {
	ID int64 `json:"id"`
	ProjectDraft
}

// FormSession holds the uncommitted state behind one project creation form.
type FormSession struct {
	ID        string          `json:"id"`
	State     types.FormState `json:"state"`
	Draft     ProjectDraft    `json:"draft"`
	Scratch   string          `json:"scratch"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Clone returns a draft that shares no memory with d.
func (d ProjectDraft) Clone() ProjectDraft {
	out := d
	out.Team.Members = cloneMembers(d.Team.Members)
	return out
}

func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	return &Project{ID: p.ID, ProjectDraft: p.ProjectDraft.Clone()}
}

func (f *FormSession) Clone() *FormSession {
	if f == nil {
		return nil
	}
	out := *f
	out.Draft = f.Draft.Clone()
	return &out
}

func cloneMembers(members []string) []string {
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// ============================================
// Repository Interfaces
// ============================================

// ProjectRepository is the append-only project store.
type ProjectRepository interface {
	Append(ctx context.Context, draft ProjectDraft) (*Project, error)
	List(ctx context.Context) ([]*Project, error)
	Count(ctx context.Context) (int, error)
	// Version increases by one on every append.
	Version(ctx context.Context) (uint64, error)
}

// DraftRepository stores form sessions. FindByID returns nil, nil for
// unknown IDs.
type DraftRepository interface {
	Save(ctx context.Context, form *FormSession) error
	FindByID(ctx context.Context, id string) (*FormSession, error)
	Delete(ctx context.Context, id string) error
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error)
}
