package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/Damaurora/DamaskVapers/internal/config"
)

// Reader fetches raw cell values from a spreadsheet.
type Reader interface {
	ReadRange(ctx context.Context, spreadsheetID, apiKey, sheetRange string) ([][]interface{}, error)
}

// GoogleSheetRepository implements Reader using the official Google Sheets API.
// The spreadsheet and API key come from the settings record, so a client is built
// for every call.
type GoogleSheetRepository struct {
	endpoint string
	timeout  time.Duration
	logger   *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed reader.
func NewGoogleSheetRepository(cfg config.SheetsConfig, logger *zap.Logger) *GoogleSheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.FetchTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &GoogleSheetRepository{
		endpoint: cfg.Endpoint,
		timeout:  timeout,
		logger:   logger,
	}
}

// ReadRange fetches a rectangular data range from the spreadsheet.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, spreadsheetID, apiKey, sheetRange string) ([][]interface{}, error) {
	switch {
	case spreadsheetID == "":
		return nil, errors.New("spreadsheetID must not be empty")
	case apiKey == "":
		return nil, errors.New("apiKey must not be empty")
	case sheetRange == "":
		return nil, errors.New("sheetRange must not be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if r.endpoint != "" {
		opts = append(opts, option.WithEndpoint(r.endpoint))
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	resp, err := service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	r.logger.Debug("range fetched from sheet",
		zap.String("spreadsheet_id", spreadsheetID),
		zap.String("range", sheetRange),
		zap.Int("rows", len(resp.Values)))

	return resp.Values, nil
}
