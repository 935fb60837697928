package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"sentinel-dca-go/internal/config"
	"sentinel-dca-go/internal/logger"
)

type Reloader interface {
	Reload(ctx context.Context) (int, error)
}

// DatasetReloadService re-reads the dataset on a cron schedule. A run that
// fires while the previous one is still going is skipped.
type DatasetReloadService struct {
	scheduler *gocron.Scheduler
	reloader  Reloader
	cron      string
	enabled   bool
	timeout   time.Duration

	mu                sync.Mutex
	running           bool
	lastRunStartedAt  time.Time
	lastRunFinishedAt time.Time
}

func NewDatasetReloadService(reloader Reloader, cfg *config.Config) *DatasetReloadService {
	logger.Component("scheduler").WithFields(logrus.Fields{
		"cron":    cfg.Dataset.ReloadCron,
		"enabled": cfg.Dataset.ReloadEnabled,
	}).Info("dataset reload schedule loaded")

	return &DatasetReloadService{
		scheduler: gocron.NewScheduler(time.Local),
		reloader:  reloader,
		cron:      cfg.Dataset.ReloadCron,
		enabled:   cfg.Dataset.ReloadEnabled,
		timeout:   cfg.Dataset.FetchTimeout,
	}
}

func (s *DatasetReloadService) Start(ctx context.Context) error {
	log := logger.Component("scheduler")
	if !s.enabled {
		log.Info("dataset reload disabled by configuration")
		return nil
	}

	if _, err := s.scheduler.Cron(s.cron).Do(func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("schedule dataset reload: %w", err)
	}
	s.scheduler.StartAsync()
	log.WithField("cron", s.cron).Info("dataset reload scheduler started")

	go func() {
		<-ctx.Done()
		log.Info("stopping dataset reload scheduler")
		s.scheduler.Stop()
	}()
	return nil
}

// RunOnce performs a single reload. It reports false when skipped because a
// reload is already in progress.
func (s *DatasetReloadService) RunOnce(ctx context.Context) bool {
	log := logger.Component("scheduler")

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		log.Info("dataset reload already running, skipping")
		return false
	}
	s.running = true
	s.lastRunStartedAt = time.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.lastRunFinishedAt = time.Now()
		s.mu.Unlock()
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	n, err := s.reloader.Reload(ctx)
	if err != nil {
		log.WithError(err).Error("scheduled dataset reload failed")
		return true
	}
	log.WithFields(logrus.Fields{
		"records":  n,
		"duration": time.Since(start).String(),
	}).Info("scheduled dataset reload completed")
	return true
}

// LastRun returns when the most recent run started and finished.
func (s *DatasetReloadService) LastRun() (started, finished time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRunStartedAt, s.lastRunFinishedAt
}
