package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Damaurora/DamaskVapers/internal/auth"
	"github.com/Damaurora/DamaskVapers/internal/config"
	"github.com/Damaurora/DamaskVapers/internal/domain/models"
	"github.com/Damaurora/DamaskVapers/internal/server/handlers"
	"github.com/Damaurora/DamaskVapers/internal/service/catalog"
	"github.com/Damaurora/DamaskVapers/internal/service/inventory"
	"github.com/Damaurora/DamaskVapers/internal/service/settings"
)

// fakeCatalog overrides the calls exercised here; anything else panics.
type fakeCatalog struct {
	handlers.CatalogService
	created   []catalog.ProductInput
	setCalls  [][3]int64
	products  map[int64]models.Product
	setResult *catalog.StockChange
}

func (f *fakeCatalog) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &p, nil
}

func (f *fakeCatalog) ListProducts(context.Context) ([]models.Product, error) {
	return []models.Product{f.products[1]}, nil
}

func (f *fakeCatalog) CreateProduct(_ context.Context, in catalog.ProductInput) (*models.Product, error) {
	f.created = append(f.created, in)
	if in.Slug == "taken" {
		return nil, fmt.Errorf("%w: slug", models.ErrConflict)
	}
	return &models.Product{ID: 42, Name: in.Name, Slug: in.Slug, Status: models.StatusOutOfStock}, nil
}

func (f *fakeCatalog) SetStoreQuantity(_ context.Context, productID, storeID int64, quantity int) (*catalog.StockChange, error) {
	f.setCalls = append(f.setCalls, [3]int64{productID, storeID, int64(quantity)})
	return f.setResult, nil
}

type fakeSettings struct {
	patches []settings.Patch
}

func (f *fakeSettings) Get(context.Context) (*models.Settings, error) {
	return &models.Settings{ShopName: "Damask Shop", GoogleAPIKey: "********", SyncFrequency: models.SyncManual}, nil
}

func (f *fakeSettings) Update(_ context.Context, p settings.Patch) (*models.Settings, error) {
	f.patches = append(f.patches, p)
	return &models.Settings{ShopName: "Damask Shop", SyncFrequency: *p.SyncFrequency}, nil
}

type fakeSyncer struct {
	report *models.SyncReport
	err    error
	ctxErr error
}

func (f *fakeSyncer) Sync(ctx context.Context) (*models.SyncReport, error) {
	f.ctxErr = ctx.Err()
	return f.report, f.err
}

type testServer struct {
	engine   *gin.Engine
	catalog  *fakeCatalog
	settings *fakeSettings
	syncer   *fakeSyncer
	token    string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	authenticator := auth.NewAuthenticator(config.AuthConfig{
		JWTSecret:         "secret",
		AdminUsername:     "admin",
		AdminPasswordHash: string(hash),
		TokenTTL:          time.Hour,
	})
	tok, err := authenticator.Issue("admin")
	require.NoError(t, err)

	ts := &testServer{
		catalog:  &fakeCatalog{products: map[int64]models.Product{1: {ID: 1, Name: "Pod", SKU: "V100"}}},
		settings: &fakeSettings{},
		syncer:   &fakeSyncer{},
		token:    tok.Token,
	}

	engine, err := New(Handlers{
		Catalog:  handlers.NewCatalogHandler(ts.catalog, nil),
		Settings: handlers.NewSettingsHandler(ts.settings, ts.syncer, nil),
		Auth:     handlers.NewAuthHandler(authenticator, nil),
	}, authenticator, nil)
	require.NoError(t, err)
	ts.engine = engine
	return ts
}

func (ts *testServer) do(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	rec := httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(http.MethodGet, "/healthz", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPublicProductRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/products", nil, false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(http.MethodGet, "/api/products/1", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "V100", decode(t, rec)["sku"])

	rec = ts.do(http.MethodGet, "/api/products/7", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(http.MethodGet, "/api/products/abc", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/products", map[string]any{"name": "x"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/settings/sync-google-sheets", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	ts.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Empty(t, ts.catalog.created)
}

func TestCreateProductValidation(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/products", map[string]any{
		"name": "Pod", "slug": "pod", "categoryId": 1, "status": "sold",
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPost, "/api/products", map[string]any{
		"name": "Pod", "slug": "pod", "categoryId": 1, "quantity": -1,
	}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.catalog.created)

	rec = ts.do(http.MethodPost, "/api/products", map[string]any{
		"name": "Pod", "slug": "pod", "categoryId": 1, "status": "coming_soon", "sku": "V9",
	}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, ts.catalog.created, 1)
	assert.Equal(t, models.StatusComingSoon, ts.catalog.created[0].Status)

	rec = ts.do(http.MethodPost, "/api/products", map[string]any{
		"name": "Pod", "slug": "taken", "categoryId": 1,
	}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetStoreQuantity(t *testing.T) {
	ts := newTestServer(t)
	ts.catalog.setResult = &catalog.StockChange{
		Inventory: models.ProductInventory{ProductID: 1, StoreID: 2},
		Product:   models.Product{ID: 1, Status: models.StatusOutOfStock},
		Source:    models.StatusFromQuantity,
	}

	rec := ts.do(http.MethodPut, "/api/inventory/1/2", map[string]any{"quantity": 0}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, [][3]int64{{1, 2, 0}}, ts.catalog.setCalls)
	assert.Equal(t, "quantity", decode(t, rec)["statusSource"])

	rec = ts.do(http.MethodPut, "/api/inventory/1/2", map[string]any{}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPut, "/api/inventory/1/2", map[string]any{"quantity": -3}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, ts.catalog.setCalls, 1)
}

func TestLoginAndMe(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "admin", "password": "bad"}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(http.MethodPost, "/api/auth/login", map[string]any{"username": "admin", "password": "pw"}, false)
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	ts.token = token
	rec = ts.do(http.MethodGet, "/api/auth/me", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decode(t, rec)["username"])
}

func TestSettingsRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/settings", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "********", decode(t, rec)["googleApiKey"])

	rec = ts.do(http.MethodPatch, "/api/settings", map[string]any{"syncFrequency": "weekly"}, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(http.MethodPatch, "/api/settings", map[string]any{"syncFrequency": "daily"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ts.settings.patches, 1)
	assert.Nil(t, ts.settings.patches[0].ShopName)
}

func TestSyncEndpointMapsErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		report  *models.SyncReport
		status  int
		success bool
	}{
		{"success", nil, &models.SyncReport{RunID: "r1", Updated: 2}, http.StatusOK, true},
		{"configuration", fmt.Errorf("%w: spreadsheet URL or Google API key is not set", inventory.ErrConfiguration), nil, http.StatusBadRequest, false},
		{"fetch", fmt.Errorf("%w: 403", inventory.ErrSourceFetch), nil, http.StatusBadGateway, false},
		{"other", errors.New("db down"), nil, http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.syncer.err = tt.err
			ts.syncer.report = tt.report

			rec := ts.do(http.MethodPost, "/api/settings/sync-google-sheets", nil, true)
			require.Equal(t, tt.status, rec.Code)
			body := decode(t, rec)
			assert.Equal(t, tt.success, body["success"])
			assert.NotEmpty(t, body["message"])
			assert.NoError(t, ts.syncer.ctxErr)
		})
	}
}
