package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// DefaultDraft is the draft a fresh or reset form starts from.
func DefaultDraft(today time.Time) repository.ProjectDraft {
	return repository.ProjectDraft{
		Status:   types.StatusPending,
		Deadline: today.Format(time.DateOnly),
		Progress: 0,
		Priority: types.PriorityMedium,
		Category: types.CategoryDevelopment,
		Team:     repository.Team{Members: []string{}},
	}
}

// DraftPatch carries the fields a form edit sets. Nil fields are left alone.
type DraftPatch struct {
	Name     *string `json:"name"`
	Status   *string `json:"status"`
	Deadline *string `json:"deadline"`
	Progress *int    `json:"progress"`
	Priority *string `json:"priority"`
	Category *string `json:"category"`
	TeamName *string `json:"team_name"`
}

// The functions below are the form's transitions. They mutate f in place and
// never touch the project store.

func openForm(f *repository.FormSession) {
	f.State = types.FormOpen
}

func resetForm(f *repository.FormSession, today time.Time) {
	f.State = types.FormClosed
	f.Draft = DefaultDraft(today)
	f.Scratch = ""
}

func requireOpen(f *repository.FormSession) error {
	if f.State != types.FormOpen {
		return ErrFormClosed
	}
	return nil
}

// applyPatch rejects enum values the form's selects could not produce. The
// draft is left unchanged when any field is rejected.
func applyPatch(f *repository.FormSession, p DraftPatch) error {
	d := f.Draft.Clone()

	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Status != nil {
		s, ok := types.ParseStatus(*p.Status)
		if !ok {
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *p.Status)
		}
		d.Status = s
	}
	if p.Priority != nil {
		pr, ok := types.ParsePriority(*p.Priority)
		if !ok {
			return fmt.Errorf("%w: unknown priority %q", ErrInvalidInput, *p.Priority)
		}
		d.Priority = pr
	}
	if p.Category != nil {
		c, ok := types.ParseCategory(*p.Category)
		if !ok {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *p.Category)
		}
		d.Category = c
	}
	if p.Deadline != nil {
		d.Deadline = strings.TrimSpace(*p.Deadline)
	}
	if p.Progress != nil {
		if *p.Progress < 0 || *p.Progress > 100 {
			return fmt.Errorf("%w: progress must be between 0 and 100", ErrInvalidInput)
		}
		d.Progress = *p.Progress
	}
	if p.TeamName != nil {
		d.Team.Name = *p.TeamName
	}

	f.Draft = d
	return nil
}

// pressKey commits the scratch text as a member on Enter. It reports whether
// the key was consumed.
func pressKey(f *repository.FormSession, key string) bool {
	if key != types.KeyEnter {
		return false
	}
	member := strings.TrimSpace(f.Scratch)
	if member == "" {
		return false
	}
	f.Draft.Team.Members = append(f.Draft.Team.Members, member)
	f.Scratch = ""
	return true
}

func removeMember(f *repository.FormSession, index int) error {
	members := f.Draft.Team.Members
	if index < 0 || index >= len(members) {
		return fmt.Errorf("%w: %d", ErrMemberIndex, index)
	}
	out := make([]string, 0, len(members)-1)
	out = append(out, members[:index]...)
	out = append(out, members[index+1:]...)
	f.Draft.Team.Members = out
	return nil
}
