package webhook

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

// Client posts reconciliation reports to an operations webhook.
type Client struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a resty-backed webhook client for the given URL.
func NewClient(url string) *Client {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetHeader("User-Agent", "damask-backoffice").
		SetTimeout(10 * time.Second)

	return &Client{
		httpClient: restyClient,
		url:        url,
	}
}

// SyncEvent is the payload posted after each pass.
type SyncEvent struct {
	Event      string             `json:"event"`
	RunID      string             `json:"runId"`
	StartedAt  time.Time          `json:"startedAt"`
	FinishedAt time.Time          `json:"finishedAt"`
	Updated    int                `json:"updated"`
	Unmatched  int                `json:"unmatched"`
	Failed     int                `json:"failed"`
	Failures   []models.RowResult `json:"failures,omitempty"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// NotifySync posts a summary of the report. Only failed rows are listed in full.
func (c *Client) NotifySync(ctx context.Context, report models.SyncReport) error {
	event := SyncEvent{
		Event:      "inventory.sync.completed",
		RunID:      report.RunID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Updated:    report.Updated,
		Unmatched:  report.Unmatched,
		Failed:     report.Failed,
	}
	for _, row := range report.Rows {
		if row.Outcome == models.RowWriteError {
			event.Failures = append(event.Failures, row)
		}
	}

	apiErr := new(apiError)
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(event).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post sync webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("sync webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
