package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Damaurora/DamaskVapers/internal/config"
	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

func TestDue(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ago := func(d time.Duration) *time.Time { ts := now.Add(-d); return &ts }

	tests := []struct {
		name string
		freq models.SyncFrequency
		last *time.Time
		want bool
	}{
		{"manual never", models.SyncManual, nil, false},
		{"manual old", models.SyncManual, ago(48 * time.Hour), false},
		{"hourly never synced", models.SyncHourly, nil, true},
		{"hourly recent", models.SyncHourly, ago(30 * time.Minute), false},
		{"hourly elapsed", models.SyncHourly, ago(time.Hour), true},
		{"daily recent", models.SyncDaily, ago(23 * time.Hour), false},
		{"daily elapsed", models.SyncDaily, ago(25 * time.Hour), true},
		{"unknown", models.SyncFrequency("weekly"), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Due(tt.freq, tt.last, now))
		})
	}
}

type stubSettings struct {
	settings *models.Settings
	err      error
}

func (s stubSettings) GetSettings(context.Context) (*models.Settings, error) {
	return s.settings, s.err
}

type stubSyncer struct {
	runs []models.Settings
}

func (s *stubSyncer) Run(_ context.Context, settings models.Settings) (*models.SyncReport, error) {
	s.runs = append(s.runs, settings)
	return &models.SyncReport{RunID: "r"}, nil
}

func TestTickRunsOnlyWhenDue(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-10 * time.Minute)

	syncer := &stubSyncer{}
	s, err := NewScheduler(config.SyncConfig{SchedulerSpec: "@every 1m", Timezone: "UTC"},
		stubSettings{settings: &models.Settings{SyncFrequency: models.SyncHourly, LastSyncTime: &recent}}, syncer, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return now }

	s.tick()
	assert.Empty(t, syncer.runs)

	s.settings = stubSettings{settings: &models.Settings{SyncFrequency: models.SyncHourly}}
	s.tick()
	assert.Len(t, syncer.runs, 1)

	s.settings = stubSettings{err: errors.New("db down")}
	s.tick()
	assert.Len(t, syncer.runs, 1)

	s.settings = stubSettings{err: models.ErrNotFound}
	s.tick()
	assert.Len(t, syncer.runs, 1)
}

func TestStartRejectsBadSpec(t *testing.T) {
	s, err := NewScheduler(config.SyncConfig{SchedulerSpec: "not a spec"}, stubSettings{}, &stubSyncer{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestNewSchedulerRejectsBadTimezone(t *testing.T) {
	_, err := NewScheduler(config.SyncConfig{SchedulerSpec: "@hourly", Timezone: "Mars/Olympus"}, stubSettings{}, &stubSyncer{}, nil)
	assert.Error(t, err)
}
