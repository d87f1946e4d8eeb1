package cron

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Marga-Ghale/ora-project-dashboard/internal/logging"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/metrics"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/service"
	"github.com/Marga-Ghale/ora-project-dashboard/internal/types"
)

// Pruner forgets per-client state older than a cutoff.
type Pruner interface {
	Prune(cutoff time.Time) int
}

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron     *cron.Cron
	services *service.Services
	limiter  Pruner
	formTTL  time.Duration
	now      func() time.Time
}

// NewScheduler creates a new scheduler. limiter may be nil.
func NewScheduler(services *service.Services, limiter Pruner, formTTL time.Duration) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		services: services,
		limiter:  limiter,
		formTTL:  formTTL,
		now:      time.Now,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	log := logging.C("cron")

	// Every minute - Expire idle creation forms
	if _, err := s.cron.AddFunc("@every 1m", func() {
		log.Debug("running idle form sweep")
		s.SweepIdleForms()
	}); err != nil {
		return err
	}

	// Every minute - Refresh project status gauges
	if _, err := s.cron.AddFunc("@every 1m", func() {
		s.RefreshStatusGauges()
	}); err != nil {
		return err
	}

	// Every 10 minutes - Forget idle rate limit buckets
	if _, err := s.cron.AddFunc("@every 10m", func() {
		s.PruneRateLimiter()
	}); err != nil {
		return err
	}

	s.RefreshStatusGauges()
	s.cron.Start()
	log.Info("scheduler started")
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logging.C("cron").Info("scheduler stopped")
}

// SweepIdleForms removes creation forms untouched for longer than the form TTL.
func (s *Scheduler) SweepIdleForms() int {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	removed, err := s.services.Form.SweepIdle(ctx, s.formTTL)
	if err != nil {
		logging.C("cron").WithError(err).Error("idle form sweep failed")
		return 0
	}
	if removed > 0 {
		logging.C("cron").WithField("removed", removed).Info("expired idle forms")
	}
	return removed
}

// RefreshStatusGauges publishes the per-status project counts.
func (s *Scheduler) RefreshStatusGauges() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stats, err := s.services.Project.Stats(ctx)
	if err != nil {
		logging.C("cron").WithError(err).Error("stats refresh failed")
		return
	}
	metrics.SetProjectStatusCounts(map[types.Status]int{
		types.StatusCompleted: stats.Completed,
		types.StatusOngoing:   stats.Ongoing,
		types.StatusPending:   stats.Pending,
	})
}

// PruneRateLimiter drops buckets for clients idle over ten minutes.
func (s *Scheduler) PruneRateLimiter() int {
	if s.limiter == nil {
		return 0
	}
	removed := s.limiter.Prune(s.now().Add(-10 * time.Minute))
	if removed > 0 {
		logging.C("cron").WithField("removed", removed).Debug("pruned rate limit buckets")
	}
	return removed
}
