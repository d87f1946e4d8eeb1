// internal/seed/seed.go
package seed

import (
	"context"
	"fmt"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/repository"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// Projects returns the three projects every dashboard session starts with.
func Projects() []repository.ProjectDraft {
	return []repository.ProjectDraft{
		{
			Name:     "Redesign Website",
			Status:   types.StatusOngoing,
			Deadline: "2024-04-15",
			Progress: 65,
			Priority: types.PriorityHigh,
			Category: types.CategoryDesign,
			Team: repository.Team{
				Name:    "Echipa Design",
				Members: []string{"Maria P.", "Alex D.", "Ioan M."},
			},
		},
		{
			Name:     "Aplicație Mobilă",
			Status:   types.StatusPending,
			Deadline: "2024-05-01",
			Progress: 30,
			Priority: types.PriorityMedium,
			Category: types.CategoryDevelopment,
			Team: repository.Team{
				Name:    "Echipa Mobile",
				Members: []string{"Elena R.", "Andrei S."},
			},
		},
		{
			Name:     "Integrare API",
			Status:   types.StatusCompleted,
			Deadline: "2024-03-20",
			Progress: 100,
			Priority: types.PriorityLow,
			Category: types.CategoryBackend,
			Team: repository.Team{
				Name:    "Echipa Backend",
				Members: []string{"Dan M.", "Ana P."},
			},
		},
	}
}

// SeedData appends the initial projects unless the store already holds some.
func SeedData(ctx context.Context, repos *repository.Repositories) error {
	log := logging.C("seed")

	count, err := repos.ProjectRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("data already exists, skipping")
		return nil
	}

	for _, draft := range Projects() {
		p, err := repos.ProjectRepo.Append(ctx, draft)
		if err != nil {
			return fmt.Errorf("seed project %q: %w", draft.Name, err)
		}
		log.WithField("project_id", p.ID).Debugf("created %s", p.Name)
	}

	log.Infof("created %d projects", len(Projects()))
	return nil
}
