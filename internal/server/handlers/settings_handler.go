package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
	"github.com/Damaurora/DamaskVapers/internal/service/settings"
)

// SettingsService reads and patches the settings record.
type SettingsService interface {
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, patch settings.Patch) (*models.Settings, error)
}

// Syncer runs a spreadsheet reconciliation pass.
type Syncer interface {
	Sync(ctx context.Context) (*models.SyncReport, error)
}

// SettingsHandler serves site settings and the manual sync trigger.
type SettingsHandler struct {
	svc    SettingsService
	syncer Syncer
	logger *zap.Logger
}

// NewSettingsHandler constructs the settings and sync HTTP handler.
func NewSettingsHandler(svc SettingsService, syncer Syncer, logger *zap.Logger) *SettingsHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsHandler{svc: svc, syncer: syncer, logger: logger}
}

type settingsRequest struct {
	ShopName        *string               `json:"shopName" binding:"omitempty,min=1"`
	Logo            *string               `json:"logo"`
	Description     *string               `json:"description"`
	GoogleSheetsURL *string               `json:"googleSheetsUrl" binding:"omitempty,url"`
	GoogleAPIKey    *string               `json:"googleApiKey"`
	SyncFrequency   *models.SyncFrequency `json:"syncFrequency" binding:"omitempty,sync_frequency"`
	SheetName       *string               `json:"sheetName"`
	StoreColumns    *[]models.StoreColumn `json:"storeColumns"`
}

type syncResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Report  *models.SyncReport `json:"report,omitempty"`
}

// Get returns the settings with the API key masked.
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Update applies a partial settings change.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req settingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, h.logger, err)
		return
	}
	s, err := h.svc.Update(c.Request.Context(), settings.Patch{
		ShopName:        req.ShopName,
		Logo:            req.Logo,
		Description:     req.Description,
		GoogleSheetsURL: req.GoogleSheetsURL,
		GoogleAPIKey:    req.GoogleAPIKey,
		SyncFrequency:   req.SyncFrequency,
		SheetName:       req.SheetName,
		StoreColumns:    req.StoreColumns,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

// Sync runs a pass to completion even if the client goes away.
func (h *SettingsHandler) Sync(c *gin.Context) {
	ctx := context.WithoutCancel(c.Request.Context())

	report, err := h.syncer.Sync(ctx)
	if err != nil {
		status := statusFor(err)
		message := err.Error()
		if status == http.StatusInternalServerError {
			h.logger.Error("google sheets sync failed", zap.Error(err))
			message = "Ошибка при синхронизации с Google Sheets"
		} else {
			h.logger.Warn("google sheets sync rejected", zap.Int("status", status), zap.Error(err))
		}
		c.JSON(status, syncResponse{Success: false, Message: message, Report: report})
		return
	}

	c.JSON(http.StatusOK, syncResponse{
		Success: true,
		Message: "Синхронизация с Google Sheets успешно выполнена",
		Report:  report,
	})
}
