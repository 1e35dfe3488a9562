package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

type memRepo struct {
	settings *models.Settings
	saves    int
}

func (m *memRepo) GetSettings(context.Context) (*models.Settings, error) {
	if m.settings == nil {
		return nil, models.ErrNotFound
	}
	s := *m.settings
	return &s, nil
}

func (m *memRepo) SaveSettings(_ context.Context, s *models.Settings) error {
	m.saves++
	c := *s
	m.settings = &c
	return nil
}

func (m *memRepo) ListStores(context.Context) ([]models.Store, error) {
	return []models.Store{{ID: 1, Name: "Магазин на Гагарина"}, {ID: 2, Name: "Магазин на Победе"}}, nil
}

func ptr[T any](v T) *T { return &v }

func TestGetRedactsKey(t *testing.T) {
	repo := &memRepo{settings: &models.Settings{ShopName: "Damask Shop", GoogleAPIKey: "secret", SyncFrequency: models.SyncManual}}
	svc := NewService(repo, nil)

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "********", got.GoogleAPIKey)
	assert.Equal(t, "secret", repo.settings.GoogleAPIKey)
}

func TestUpdateAppliesPatch(t *testing.T) {
	repo := &memRepo{settings: &models.Settings{ShopName: "Damask Shop", SyncFrequency: models.SyncManual}}
	svc := NewService(repo, nil)

	got, err := svc.Update(context.Background(), Patch{
		GoogleSheetsURL: ptr(" https://docs.google.com/spreadsheets/d/abc123/edit "),
		GoogleAPIKey:    ptr("key"),
		SyncFrequency:   ptr(models.SyncHourly),
		StoreColumns:    ptr([]models.StoreColumn{{StoreID: 1, Column: "C"}, {StoreID: 2, Column: "E"}}),
	})
	require.NoError(t, err)

	assert.Equal(t, "********", got.GoogleAPIKey)
	assert.Equal(t, "key", repo.settings.GoogleAPIKey)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123/edit", repo.settings.GoogleSheetsURL)
	assert.Equal(t, models.SyncHourly, repo.settings.SyncFrequency)
	assert.Equal(t, "Damask Shop", repo.settings.ShopName)
	assert.Len(t, repo.settings.StoreColumns, 2)
}

func TestUpdateKeepsKeyWhenMaskIsSentBack(t *testing.T) {
	repo := &memRepo{settings: &models.Settings{ShopName: "Damask Shop", GoogleAPIKey: "real-key", SyncFrequency: models.SyncManual}}
	svc := NewService(repo, nil)
	ctx := context.Background()

	got, err := svc.Get(ctx)
	require.NoError(t, err)

	_, err = svc.Update(ctx, Patch{ShopName: ptr("Damask Vapers"), GoogleAPIKey: ptr(got.GoogleAPIKey)})
	require.NoError(t, err)
	assert.Equal(t, "real-key", repo.settings.GoogleAPIKey)
	assert.Equal(t, "Damask Vapers", repo.settings.ShopName)

	_, err = svc.Update(ctx, Patch{GoogleAPIKey: ptr("")})
	require.NoError(t, err)
	assert.Empty(t, repo.settings.GoogleAPIKey)
}

func TestUpdateCreatesMissingRecord(t *testing.T) {
	repo := &memRepo{}
	svc := NewService(repo, nil)

	_, err := svc.Update(context.Background(), Patch{ShopName: ptr("Damask")})
	require.NoError(t, err)
	require.NotNil(t, repo.settings)
	assert.Equal(t, models.SyncManual, repo.settings.SyncFrequency)
}

func TestUpdateRejectsInvalidPatches(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
	}{
		{"empty shop name", Patch{ShopName: ptr("  ")}},
		{"bad frequency", Patch{SyncFrequency: ptr(models.SyncFrequency("weekly"))}},
		{"bad url", Patch{GoogleSheetsURL: ptr("https://example.com/sheet")}},
		{"unknown store", Patch{StoreColumns: ptr([]models.StoreColumn{{StoreID: 9, Column: "C"}})}},
		{"reserved column", Patch{StoreColumns: ptr([]models.StoreColumn{{StoreID: 1, Column: "A"}})}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo{settings: &models.Settings{ShopName: "Damask Shop", SyncFrequency: models.SyncManual}}
			svc := NewService(repo, nil)

			_, err := svc.Update(context.Background(), tt.patch)
			assert.ErrorIs(t, err, models.ErrValidation)
			assert.Zero(t, repo.saves)
		})
	}
}
