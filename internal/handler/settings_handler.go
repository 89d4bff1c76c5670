package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"courseload/internal/model"
)

type SettingsStore interface {
	GetAll() (map[string]string, error)
	Set(key, value string) error
}

type SettingsHandler struct {
	store SettingsStore
}

func NewSettingsHandler(store SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

var recognizedSettings = map[string]bool{
	model.SettingLMSBaseURL:           true,
	model.SettingLMSToken:             true,
	model.SettingProvider:             true,
	model.SettingOpenAIKey:            true,
	model.SettingAnthropicKey:         true,
	model.SettingModel:                true,
	model.SettingLocalURL:             true,
	model.SettingLocalModel:           true,
	model.SettingRefreshMinutes:       true,
	model.SettingNotificationsEnabled: true,
	model.SettingLookaheadDays:        true,
	model.SettingBadgesEnabled:        true,
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	values, err := h.store.GetAll()
	if err != nil {
		slog.Error("error fetching settings", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, values)
}

// UpdateSettings upserts a batch of key/value pairs. Unknown keys are
// rejected before anything is written.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid settings payload"})
		return
	}

	for key := range values {
		if !recognizedSettings[key] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown setting: " + key})
			return
		}
	}

	for key, value := range values {
		if err := h.store.Set(key, value); err != nil {
			slog.Error("error saving setting", "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(values)})
}
