package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/metrics"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// ============================================
// Form Service
// ============================================

type FormService interface {
	New(ctx context.Context) (*repository.FormSession, error)
	Get(ctx context.Context, id string) (*repository.FormSession, error)
	Open(ctx context.Context, id string) (*repository.FormSession, error)
	Update(ctx context.Context, id string, patch DraftPatch) (*repository.FormSession, error)
	SetScratch(ctx context.Context, id string, text string) (*repository.FormSession, error)
	PressKey(ctx context.Context, id string, key string) (bool, *repository.FormSession, error)
	RemoveMember(ctx context.Context, id string, index int) (*repository.FormSession, error)
	Submit(ctx context.Context, id string) (*repository.Project, *repository.FormSession, error)
	Cancel(ctx context.Context, id string) (*repository.FormSession, error)
	Discard(ctx context.Context, id string) error
	SweepIdle(ctx context.Context, ttl time.Duration) (int, error)
}

type FormServiceConfig struct {
	DraftRepo    repository.DraftRepository
	Projects     ProjectService
	Location     *time.Location
	Now          func() time.Time
	NewSessionID func() string
}

type formService struct {
	draftRepo repository.DraftRepository
	projects  ProjectService
	location  *time.Location
	now       func() time.Time
	newID     func() string

	// mu serializes read-modify-write cycles on form sessions.
	mu sync.Mutex
}

func NewFormService(cfg FormServiceConfig) FormService {
	s := &formService{
		draftRepo: cfg.DraftRepo,
		projects:  cfg.Projects,
		location:  cfg.Location,
		now:       cfg.Now,
		newID:     cfg.NewSessionID,
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

func (s *formService) today() time.Time {
	return s.now().In(s.location)
}

// New opens a fresh form holding the default draft.
func (s *formService) New(ctx context.Context) (*repository.FormSession, error) {
	now := s.now()
	form := &repository.FormSession{
		ID:        s.newID(),
		State:     types.FormOpen,
		Draft:     DefaultDraft(s.today()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.draftRepo.Save(ctx, form); err != nil {
		return nil, err
	}

	metrics.ObserveForm("opened")
	logging.C("forms").WithField("form_id", form.ID).Debug("form opened")
	return form, nil
}

func (s *formService) Get(ctx context.Context, id string) (*repository.FormSession, error) {
	return s.find(ctx, id)
}

func (s *formService) Open(ctx context.Context, id string) (*repository.FormSession, error) {
	return s.mutate(ctx, id, false, func(f *repository.FormSession) error {
		if f.State != types.FormOpen {
			metrics.ObserveForm("opened")
		}
		openForm(f)
		return nil
	})
}

func (s *formService) Update(ctx context.Context, id string, patch DraftPatch) (*repository.FormSession, error) {
	return s.mutate(ctx, id, true, func(f *repository.FormSession) error {
		return applyPatch(f, patch)
	})
}

func (s *formService) SetScratch(ctx context.Context, id string, text string) (*repository.FormSession, error) {
	return s.mutate(ctx, id, true, func(f *repository.FormSession) error {
		f.Scratch = text
		return nil
	})
}

func (s *formService) PressKey(ctx context.Context, id string, key string) (bool, *repository.FormSession, error) {
	var handled bool
	form, err := s.mutate(ctx, id, true, func(f *repository.FormSession) error {
		handled = pressKey(f, key)
		return nil
	})
	return handled, form, err
}

func (s *formService) RemoveMember(ctx context.Context, id string, index int) (*repository.FormSession, error) {
	return s.mutate(ctx, id, true, func(f *repository.FormSession) error {
		return removeMember(f, index)
	})
}

// Submit appends the draft to the store and resets the form. A draft that
// fails validation leaves the form open and unchanged. The reset form is
// saved before the append and restored if the append fails.
func (s *formService) Submit(ctx context.Context, id string) (*repository.Project, *repository.FormSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := requireOpen(form); err != nil {
		return nil, nil, err
	}

	draft := form.Draft.Clone()
	if err := ValidateDraft(normalizeDraft(draft)); err != nil {
		return nil, nil, err
	}

	original := form.Clone()
	resetForm(form, s.today())
	form.UpdatedAt = s.now()
	if err := s.draftRepo.Save(ctx, form); err != nil {
		return nil, nil, err
	}

	project, err := s.projects.Create(ctx, draft)
	if err != nil {
		if rerr := s.draftRepo.Save(ctx, original); rerr != nil {
			logging.C("forms").WithError(rerr).WithField("form_id", id).Error("failed to restore form after submit error")
		}
		return nil, nil, err
	}

	metrics.ObserveForm("submitted")
	logging.C("forms").WithFields(map[string]interface{}{
		"form_id":    id,
		"project_id": project.ID,
	}).Info("form submitted")
	return project, form, nil
}

// Cancel closes the form and discards its edits.
func (s *formService) Cancel(ctx context.Context, id string) (*repository.FormSession, error) {
	form, err := s.mutate(ctx, id, false, func(f *repository.FormSession) error {
		resetForm(f, s.today())
		return nil
	})
	if err != nil {
		return nil, err
	}
	metrics.ObserveForm("cancelled")
	return form, nil
}

// Discard drops a form session entirely.
func (s *formService) Discard(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.draftRepo.Delete(ctx, id)
}

// SweepIdle removes forms untouched for longer than ttl.
func (s *formService) SweepIdle(ctx context.Context, ttl time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.draftRepo.DeleteIdleSince(ctx, s.now().Add(-ttl))
	if err != nil {
		return 0, err
	}
	for i := 0; i < removed; i++ {
		metrics.ObserveForm("expired")
	}
	return removed, nil
}

func (s *formService) find(ctx context.Context, id string) (*repository.FormSession, error) {
	form, err := s.draftRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if form == nil {
		return nil, ErrNotFound
	}
	return form, nil
}

// mutate loads a form, applies fn and saves the result. Nothing is saved
// when fn fails.
func (s *formService) mutate(ctx context.Context, id string, needOpen bool, fn func(*repository.FormSession) error) (*repository.FormSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	form, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if needOpen {
		if err := requireOpen(form); err != nil {
			return nil, err
		}
	}

	if err := fn(form); err != nil {
		return nil, err
	}

	form.UpdatedAt = s.now()
	if err := s.draftRepo.Save(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}
