package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Damaurora/DamaskVapers/internal/config"
)

func TestReadRange(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"range":          "Sheet1!A2:D3",
			"majorDimension": "ROWS",
			"values": [][]any{
				{"V100", "5", "3", "2"},
				{"V200", "", "x"},
			},
		})
	}))
	defer srv.Close()

	repo := NewGoogleSheetRepository(config.SheetsConfig{Endpoint: srv.URL + "/", FetchTimeout: 5 * time.Second}, nil)

	rows, err := repo.ReadRange(context.Background(), "sheet-123", "api-key", "Sheet1!A2:D")
	require.NoError(t, err)

	assert.Equal(t, "api-key", gotKey)
	assert.True(t, strings.HasPrefix(gotPath, "/v4/spreadsheets/sheet-123/values/"), gotPath)
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{"V100", "5", "3", "2"}, rows[0])
	assert.Equal(t, []interface{}{"V200", "", "x"}, rows[1])
}

func TestReadRangeSurfacesAPIErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`))
	}))
	defer srv.Close()

	repo := NewGoogleSheetRepository(config.SheetsConfig{Endpoint: srv.URL + "/", FetchTimeout: 5 * time.Second}, nil)

	_, err := repo.ReadRange(context.Background(), "sheet-123", "bad-key", "Sheet1!A2:D")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read range Sheet1!A2:D")
}

func TestReadRangeValidatesArguments(t *testing.T) {
	repo := NewGoogleSheetRepository(config.SheetsConfig{}, nil)

	_, err := repo.ReadRange(context.Background(), "", "key", "Sheet1!A2:D")
	assert.Error(t, err)
	_, err = repo.ReadRange(context.Background(), "id", "", "Sheet1!A2:D")
	assert.Error(t, err)
	_, err = repo.ReadRange(context.Background(), "id", "key", "")
	assert.Error(t, err)
}
