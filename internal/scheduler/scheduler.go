// Package scheduler runs the recurring ingestion and report refresh jobs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/gridiron-edge/internal/service"
)

const (
	syncTimeout    = 2 * time.Hour
	refreshTimeout = 15 * time.Minute
)

// RefreshFunc rebuilds whatever cached reports the caller maintains. The
// scheduler stays ignorant of the analysis layer; the daemon wires one in.
type RefreshFunc func(ctx context.Context) error

// Scheduler manages the recurring data ingestion and report refresh jobs
type Scheduler struct {
	cron            *cron.Cron
	ingestionSvc    *service.IngestionService
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration

	// syncMu guards lastSync separately so a finishing job never blocks
	// on the scheduler lock held by Stop.
	syncMu   sync.RWMutex
	lastSync time.Time
}

// NewScheduler creates a new scheduler
func NewScheduler(ingestionSvc *service.IngestionService, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		ingestionSvc:    ingestionSvc,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleHistoricalSync schedules the historical data sync across every
// enabled source. Each run covers fromSeason through the current year.
func (s *Scheduler) ScheduleHistoricalSync(cronExpression string, fromSeason int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()

		toSeason := time.Now().Year()
		s.logger.WithFields(logrus.Fields{
			"from_season": fromSeason,
			"to_season":   toSeason,
		}).Info("Starting scheduled historical sync")

		if err := s.ingestionSvc.IngestAllSources(ctx, fromSeason, toSeason); err != nil {
			s.logger.WithError(err).Error("Scheduled historical sync failed")
			return
		}

		s.recordSync(time.Now())
		s.logger.Infof("Scheduled historical sync completed: %s", s.ingestionSvc.GetMetrics().String())
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Infof("Scheduled historical sync with cron expression: %s", cronExpression)

	return nil
}

// ScheduleReportRefresh schedules a cached report rebuild, typically right
// after the nightly sync lands
func (s *Scheduler) ScheduleReportRefresh(cronExpression string, refresh RefreshFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}
	if refresh == nil {
		return fmt.Errorf("refresh function is required")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		s.logger.Info("Starting scheduled report refresh")
		if err := refresh(ctx); err != nil {
			s.logger.WithError(err).Error("Scheduled report refresh failed")
			return
		}
		s.logger.Info("Scheduled report refresh completed")
	}

	entryID, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.Infof("Scheduled report refresh with cron expression: %s", cronExpression)

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Scheduler started with %d jobs", len(s.jobIDs))

	return nil
}

// Stop stops the scheduler, waiting up to the graceful timeout for any
// running job to finish
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
	case <-time.After(s.gracefulTimeout):
		s.logger.Warn("Scheduler stop timed out with jobs still running")
	}
	s.isRunning = false

	return nil
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// LastSuccessfulSync returns when the last scheduled sync completed, or the
// zero time if none has
func (s *Scheduler) LastSuccessfulSync() time.Time {
	s.syncMu.RLock()
	defer s.syncMu.RUnlock()
	return s.lastSync
}

func (s *Scheduler) recordSync(at time.Time) {
	s.syncMu.Lock()
	defer s.syncMu.Unlock()
	s.lastSync = at
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning || len(s.jobIDs) == 0 {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			if nextRun.IsZero() || entry.Next.Before(nextRun) {
				nextRun = entry.Next
			}
		}
	}

	return nextRun
}

// Entries returns information about scheduled entries
func (s *Scheduler) Entries() []cron.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make([]cron.Entry, 0, len(s.jobIDs))
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() {
			entries = append(entries, entry)
		}
	}

	return entries
}

// RemoveJob removes a scheduled job
func (s *Scheduler) RemoveJob(jobID cron.EntryID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot remove job while scheduler is running")
	}

	s.cron.Remove(jobID)
	s.logger.Infof("Removed job: %d", jobID)

	return nil
}
