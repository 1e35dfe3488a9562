package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
	"github.com/Damaurora/DamaskVapers/internal/service/inventory"
)

// Repository persists the singleton settings record.
type Repository interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	SaveSettings(ctx context.Context, s *models.Settings) error
	ListStores(ctx context.Context) ([]models.Store, error)
}

// Service reads and edits site settings.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService builds the settings service. A nil logger is replaced by a no-op one.
func NewService(repository Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, logger: logger}
}

// Patch lists the fields an admin may change. Nil fields are left untouched.
type Patch struct {
	ShopName        *string
	Logo            *string
	Description     *string
	GoogleSheetsURL *string
	GoogleAPIKey    *string
	SyncFrequency   *models.SyncFrequency
	SheetName       *string
	StoreColumns    *[]models.StoreColumn
}

// Get returns the settings with the API key masked.
func (s *Service) Get(ctx context.Context) (*models.Settings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	redacted := settings.Redacted()
	return &redacted, nil
}

// Update applies a patch and returns the redacted result. A missing record is
// created from the patch.
func (s *Service) Update(ctx context.Context, patch Patch) (*models.Settings, error) {
	current, err := s.repo.GetSettings(ctx)
	switch {
	case errors.Is(err, models.ErrNotFound):
		current = &models.Settings{SyncFrequency: models.SyncManual}
	case err != nil:
		return nil, err
	}

	next := *current
	if patch.ShopName != nil {
		next.ShopName = strings.TrimSpace(*patch.ShopName)
	}
	if patch.Logo != nil {
		next.Logo = *patch.Logo
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.GoogleSheetsURL != nil {
		next.GoogleSheetsURL = strings.TrimSpace(*patch.GoogleSheetsURL)
	}
	// The mask comes back when a form saves what Get returned.
	if patch.GoogleAPIKey != nil && *patch.GoogleAPIKey != models.RedactedSecret {
		next.GoogleAPIKey = strings.TrimSpace(*patch.GoogleAPIKey)
	}
	if patch.SyncFrequency != nil {
		next.SyncFrequency = *patch.SyncFrequency
	}
	if patch.SheetName != nil {
		next.SheetName = strings.TrimSpace(*patch.SheetName)
	}
	if patch.StoreColumns != nil {
		next.StoreColumns = *patch.StoreColumns
	}

	if err := s.validate(ctx, next); err != nil {
		return nil, err
	}

	if err := s.repo.SaveSettings(ctx, &next); err != nil {
		return nil, err
	}
	s.logger.Info("settings updated",
		zap.String("sync_frequency", string(next.SyncFrequency)),
		zap.Int("store_columns", len(next.StoreColumns)))

	redacted := next.Redacted()
	return &redacted, nil
}

func (s *Service) validate(ctx context.Context, next models.Settings) error {
	if next.ShopName == "" {
		return fmt.Errorf("%w: shop name must not be empty", models.ErrValidation)
	}
	if !next.SyncFrequency.Valid() {
		return fmt.Errorf("%w: unknown sync frequency %q", models.ErrValidation, next.SyncFrequency)
	}
	if next.GoogleSheetsURL != "" {
		if _, ok := inventory.ExtractSpreadsheetID(next.GoogleSheetsURL); !ok {
			return fmt.Errorf("%w: spreadsheet URL has no document id", models.ErrValidation)
		}
	}
	if len(next.StoreColumns) > 0 {
		stores, err := s.repo.ListStores(ctx)
		if err != nil {
			return err
		}
		if err := inventory.ValidateStoreColumns(next.StoreColumns, stores); err != nil {
			return fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
	}
	return nil
}
