package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

func TestNotifySyncPostsSummary(t *testing.T) {
	var got SyncEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/hooks/sync", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	report := models.SyncReport{RunID: "run-1"}
	report.Add(models.RowResult{SKU: "A", Outcome: models.RowUpdated})
	report.Add(models.RowResult{SKU: "B", Outcome: models.RowWriteError, Error: "boom"})
	report.Add(models.RowResult{SKU: "C", Outcome: models.RowSkippedUnmatched})

	err := NewClient(srv.URL+"/hooks/sync").NotifySync(context.Background(), report)
	require.NoError(t, err)

	assert.Equal(t, "inventory.sync.completed", got.Event)
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, 1, got.Updated)
	assert.Equal(t, 1, got.Unmatched)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Failures, 1)
	assert.Equal(t, "B", got.Failures[0].SKU)
}

func TestNotifySyncSurfacesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"message":"upstream down"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL).NotifySync(context.Background(), models.SyncReport{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "code=502")
	assert.Contains(t, err.Error(), "upstream down")
}
