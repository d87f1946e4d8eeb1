package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/db"
)

// ============================================
// In-memory form sessions
// ============================================

type inMemoryDraftRepository struct {
	mu    sync.RWMutex
	forms map[string]*FormSession
}

func NewDraftRepository() DraftRepository {
	return &inMemoryDraftRepository{forms: make(map[string]*FormSession)}
}

func (r *inMemoryDraftRepository) Save(ctx context.Context, form *FormSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms[form.ID] = form.Clone()
	return nil
}

func (r *inMemoryDraftRepository) FindByID(ctx context.Context, id string) (*FormSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f, ok := r.forms[id]; ok {
		return f.Clone(), nil
	}
	return nil, nil
}

func (r *inMemoryDraftRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, id)
	return nil
}

func (r *inMemoryDraftRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, f := range r.forms {
		if f.UpdatedAt.Before(cutoff) {
			delete(r.forms, id)
			removed++
		}
	}
	return removed, nil
}

// ============================================
// Redis form sessions
// ============================================

type redisDraftRepository struct {
	redis *db.RedisDB
	ttl   time.Duration
}

// NewRedisDraftRepository keeps each form as a session key that expires
// ttl after its last save.
func NewRedisDraftRepository(redisDB *db.RedisDB, ttl time.Duration) DraftRepository {
	return &redisDraftRepository{redis: redisDB, ttl: ttl}
}

func formKey(id string) string {
	return "form:" + id
}

func (r *redisDraftRepository) Save(ctx context.Context, form *FormSession) error {
	return r.redis.SetSession(ctx, formKey(form.ID), form, r.ttl)
}

func (r *redisDraftRepository) FindByID(ctx context.Context, id string) (*FormSession, error) {
	var form FormSession
	if err := r.redis.GetSession(ctx, formKey(id), &form); err != nil {
		if errors.Is(err, db.ErrMiss) {
			return nil, nil
		}
		return nil, err
	}
	if form.Draft.Team.Members == nil {
		form.Draft.Team.Members = []string{}
	}
	return &form, nil
}

func (r *redisDraftRepository) Delete(ctx context.Context, id string) error {
	return r.redis.DeleteSession(ctx, formKey(id))
}

// DeleteIdleSince is a no-op: Redis expires idle sessions on its own.
func (r *redisDraftRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int, error) {
	return 0, nil
}
