package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/mlb-edge/internal/replay"
	"github.com/yourusername/mlb-edge/internal/service"
)

// ScheduleIngester refreshes a season's schedule from the stats API
type ScheduleIngester interface {
	IngestSchedule(ctx context.Context, season int) (*service.IngestionMetrics, error)
}

// SeasonReplayer replays one season of box scores into features
type SeasonReplayer interface {
	RunSeason(ctx context.Context, season int) (*replay.SeasonResult, error)
}

// Scheduler manages the schedule refresh and nightly replay jobs
type Scheduler struct {
	cron            *cron.Cron
	ingester        ScheduleIngester
	replayer        SeasonReplayer
	season          int
	jobTimeout      time.Duration
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
}

// NewScheduler creates a new scheduler for the given season. Cron specs carry
// a leading seconds field. Overlapping runs of the same job are skipped.
func NewScheduler(ingester ScheduleIngester, replayer SeasonReplayer, season int, jobTimeout time.Duration, logger *logrus.Logger) *Scheduler {
	if logger == nil {
		logger = logrus.New()
	}
	if jobTimeout <= 0 {
		jobTimeout = time.Hour
	}
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		ingester:        ingester,
		replayer:        replayer,
		season:          season,
		jobTimeout:      jobTimeout,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
	}
}

// ScheduleRefresh schedules the schedule refresh for the configured season
func (s *Scheduler) ScheduleRefresh(cronExpression string) error {
	return s.addJob("schedule_refresh", cronExpression, s.refreshSchedule)
}

// ScheduleNightlyReplay schedules the replay of the configured season
func (s *Scheduler) ScheduleNightlyReplay(cronExpression string) error {
	return s.addJob("nightly_replay", cronExpression, s.replaySeason)
}

func (s *Scheduler) addJob(name, cronExpression string, job func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		start := time.Now()
		if err := job(ctx); err != nil {
			s.logger.WithError(err).WithField("job", name).Error("Scheduled job failed")
			return
		}
		s.logger.WithFields(logrus.Fields{
			"job":      name,
			"duration": time.Since(start).String(),
		}).Info("Scheduled job completed")
	})
	if err != nil {
		return fmt.Errorf("failed to add %s job: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{
		"job":  name,
		"cron": cronExpression,
	}).Info("Scheduled job")

	return nil
}

func (s *Scheduler) refreshSchedule(ctx context.Context) error {
	m, err := s.ingester.IngestSchedule(ctx, s.season)
	if err != nil {
		return fmt.Errorf("schedule refresh for season %d: %w", s.season, err)
	}
	s.logger.WithField("season", s.season).Infof("Schedule refreshed: %s", m.String())
	return nil
}

func (s *Scheduler) replaySeason(ctx context.Context) error {
	res, err := s.replayer.RunSeason(ctx, s.season)
	if err != nil {
		return err
	}
	s.logger.WithFields(logrus.Fields{
		"season":           res.Season,
		"games_processed":  res.GamesProcessed,
		"features_emitted": res.FeaturesEmitted,
	}).Info("Nightly replay finished")
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
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")

	return nil
}

// Stop waits for running jobs up to the graceful timeout and stops the scheduler
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return nil
	}

	s.isRunning = false
	select {
	case <-s.cron.Stop().Done():
		s.logger.Info("Scheduler stopped")
		return nil
	case <-time.After(s.gracefulTimeout):
		return fmt.Errorf("scheduler stop timed out after %s", s.gracefulTimeout)
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
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
