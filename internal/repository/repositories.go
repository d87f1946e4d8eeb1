package repository

import (
	"time"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/db"
)

type Repositories struct {
	ProjectRepo ProjectRepository
	DraftRepo   DraftRepository
}

// NewRepositories builds the store for one application session. Form
// sessions live in Redis when redisDB is non-nil, in memory otherwise.
func NewRepositories(redisDB *db.RedisDB, formTTL time.Duration) *Repositories {
	repos := &Repositories{
		ProjectRepo: NewProjectRepository(),
		DraftRepo:   NewDraftRepository(),
	}
	if redisDB != nil {
		repos.DraftRepo = NewRedisDraftRepository(redisDB, formTTL)
	}
	return repos
}
