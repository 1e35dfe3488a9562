package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/config"
	"github.com/Damaurora/DamaskVapers/internal/domain/models"
	"github.com/Damaurora/DamaskVapers/internal/repository/sheets"
)

// Repository is the storage surface a reconciliation pass needs.
type Repository interface {
	GetSettings(ctx context.Context) (*models.Settings, error)
	RecordLastSync(ctx context.Context, at time.Time) error
	ListStores(ctx context.Context) ([]models.Store, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	UpdateProductStock(ctx context.Context, id int64, quantity int, status models.ProductStatus) error
	UpsertInventory(ctx context.Context, productID, storeID int64, quantity int) (*models.ProductInventory, error)
}

// Notifier receives the report of every completed pass.
type Notifier interface {
	NotifySync(ctx context.Context, report models.SyncReport) error
}

// Service runs spreadsheet to inventory reconciliation passes.
type Service struct {
	repo     Repository
	reader   sheets.Reader
	notifier Notifier
	keywords []string
	logger   *zap.Logger
	now      func() time.Time
	newRunID func() string
}

// NewService wires a reconciliation service. notifier may be nil.
func NewService(repository Repository, reader sheets.Reader, cfg config.SyncConfig, notifier Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repository,
		reader:   reader,
		notifier: notifier,
		keywords: cfg.StoreKeywords,
		logger:   logger,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// Sync loads the settings record and runs one pass with it.
func (s *Service) Sync(ctx context.Context) (*models.SyncReport, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%w: settings not found", ErrConfiguration)
		}
		return nil, fmt.Errorf("load settings: %w", err)
	}
	return s.Run(ctx, *settings)
}

// Run executes one reconciliation pass with the given settings. Configuration and
// fetch failures abort before any write. Row write failures are recorded in the
// report and do not stop the pass. The last sync time is written once every row
// has been processed.
func (s *Service) Run(ctx context.Context, settings models.Settings) (*models.SyncReport, error) {
	if settings.GoogleSheetsURL == "" || settings.GoogleAPIKey == "" {
		return nil, fmt.Errorf("%w: spreadsheet URL or Google API key is not set", ErrConfiguration)
	}

	spreadsheetID, ok := ExtractSpreadsheetID(settings.GoogleSheetsURL)
	if !ok {
		return nil, fmt.Errorf("%w: malformed spreadsheet URL", ErrConfiguration)
	}

	stores, err := s.repo.ListStores(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stores: %w", err)
	}

	columns, err := resolveColumns(settings, stores, s.keywords)
	if err != nil {
		return nil, err
	}

	sheetName := settings.SheetName
	if sheetName == "" {
		sheetName = models.DefaultSheetName
	}
	sheetRange := DataRange(sheetName, columns)

	report := &models.SyncReport{RunID: s.newRunID(), StartedAt: s.now().UTC()}
	logger := s.logger.With(zap.String("run_id", report.RunID))
	logger.Info("sync started", zap.String("spreadsheet_id", spreadsheetID), zap.String("range", sheetRange))

	values, err := s.reader.ReadRange(ctx, spreadsheetID, settings.GoogleAPIKey, sheetRange)
	if err != nil {
		logger.Error("spreadsheet fetch failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSourceFetch, err)
	}
	rows := ParseRows(values, columns)

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	bySKU := indexBySKU(products)

	for _, row := range rows {
		report.Add(s.applyRow(ctx, logger, bySKU, row))
	}

	report.FinishedAt = s.now().UTC()
	if err := s.repo.RecordLastSync(ctx, report.FinishedAt); err != nil {
		logger.Error("failed to record last sync time", zap.Error(err))
		return report, fmt.Errorf("record last sync time: %w", err)
	}

	logger.Info("sync finished",
		zap.Int("rows", len(report.Rows)),
		zap.Int("updated", report.Updated),
		zap.Int("unmatched", report.Unmatched),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.FinishedAt.Sub(report.StartedAt)))

	s.notify(ctx, logger, *report)

	return report, nil
}

func (s *Service) applyRow(ctx context.Context, logger *zap.Logger, bySKU map[string]models.Product, row models.SheetRow) models.RowResult {
	product, ok := bySKU[row.SKU]
	if !ok {
		logger.Debug("no product for sku", zap.String("sku", row.SKU))
		return models.RowResult{SKU: row.SKU, Outcome: models.RowSkippedUnmatched}
	}

	total := row.Total()
	status := models.DeriveStatus(total)
	res := models.RowResult{
		SKU:           row.SKU,
		ProductID:     product.ID,
		Outcome:       models.RowUpdated,
		Quantity:      total,
		Status:        status,
		TotalMismatch: row.DeclaredTotal != total,
	}

	if res.TotalMismatch {
		logger.Warn("declared total differs from store sum",
			zap.String("sku", row.SKU),
			zap.Int("declared", row.DeclaredTotal),
			zap.Int("sum", total))
	}

	var errs []error
	if err := s.repo.UpdateProductStock(ctx, product.ID, total, status); err != nil {
		logger.Warn("failed to update product stock", zap.Int64("product_id", product.ID), zap.Error(err))
		errs = append(errs, fmt.Errorf("update product %d: %w", product.ID, err))
	}
	for _, sq := range row.Stores {
		if _, err := s.repo.UpsertInventory(ctx, product.ID, sq.StoreID, sq.Quantity); err != nil {
			logger.Warn("failed to upsert store inventory",
				zap.Int64("product_id", product.ID),
				zap.Int64("store_id", sq.StoreID),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("upsert inventory %d/%d: %w", product.ID, sq.StoreID, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		res.Outcome = models.RowWriteError
		res.Error = err.Error()
	}
	return res
}

func (s *Service) notify(ctx context.Context, logger *zap.Logger, report models.SyncReport) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifySync(ctx, report); err != nil {
		logger.Warn("sync notification failed", zap.Error(err))
	}
}

// indexBySKU keys products by SKU. When two products share a SKU the first one wins.
func indexBySKU(products []models.Product) map[string]models.Product {
	out := make(map[string]models.Product, len(products))
	for _, p := range products {
		if p.SKU == "" {
			continue
		}
		if _, exists := out[p.SKU]; !exists {
			out[p.SKU] = p
		}
	}
	return out
}
