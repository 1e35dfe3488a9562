package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/config"
	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

// SettingsSource loads the current settings on every tick.
type SettingsSource interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
}

// Syncer runs a reconciliation pass with the given settings.
type Syncer interface {
	Run(ctx context.Context, settings models.Settings) (*models.SyncReport, error)
}

// Scheduler triggers spreadsheet syncs according to the configured frequency.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	settings SettingsSource
	syncer   Syncer
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.SyncConfig, settings SettingsSource, syncer Syncer, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %s: %w", cfg.Timezone, err)
		}
		loc = l
	}

	// robfig/cron/v3 default parser is standard cron (5 fields: min, hour, dom, month, dow).
	c := cron.New(cron.WithLocation(loc))

	return &Scheduler{
		cron:     c,
		spec:     cfg.SchedulerSpec,
		settings: settings,
		syncer:   syncer,
		logger:   logger,
		now:      time.Now,
	}, nil
}

// Start registers the sync job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("spec", s.spec))

	if _, err := s.cron.AddFunc(s.spec, s.tick); err != nil {
		return fmt.Errorf("schedule sync job: %w", err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running pass to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Debug("no settings record, skipping scheduled sync")
			return
		}
		s.logger.Error("failed to load settings", zap.Error(err))
		return
	}

	if !Due(settings.SyncFrequency, settings.LastSyncTime, s.now()) {
		return
	}

	s.logger.Info("running scheduled sync", zap.String("frequency", string(settings.SyncFrequency)))
	report, err := s.syncer.Run(ctx, *settings)
	if err != nil {
		s.logger.Error("scheduled sync failed", zap.Error(err))
		return
	}
	s.logger.Info("scheduled sync completed",
		zap.String("run_id", report.RunID),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed))
}

// Due reports whether a sync with the given frequency should run now. Manual
// never runs on schedule; the other frequencies run immediately when no sync has
// happened yet.
func Due(freq models.SyncFrequency, last *time.Time, now time.Time) bool {
	var interval time.Duration
	switch freq {
	case models.SyncHourly:
		interval = time.Hour
	case models.SyncDaily:
		interval = 24 * time.Hour
	default:
		return false
	}
	if last == nil || last.IsZero() {
		return true
	}
	return now.Sub(*last) >= interval
}
