package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
	"github.com/bestfriendai/SupaSecret-sub011/internal/services"
)

// PreferencesHandler handles HTTP requests for user preferences
type PreferencesHandler struct {
	preferences services.PreferencesAPI
	logger      *slog.Logger
}

// NewPreferencesHandler creates a new preferences request handler
func NewPreferencesHandler(preferences services.PreferencesAPI, logger *slog.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		preferences: preferences,
		logger:      logger,
	}
}

// HandleGet processes GET requests to the '/preferences' endpoint
func (h *PreferencesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, h.logger, http.StatusOK, h.preferences.Get())
}

// HandlePut processes PUT requests to the '/preferences' endpoint.
// The write is acknowledged immediately; persistence is debounced.
func (h *PreferencesHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	var p models.Preferences

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&p); err != nil {
		sendError(w, h.logger, http.StatusBadRequest, "invalid preferences payload")
		return
	}

	h.preferences.Update(p)

	h.logger.Info("Preferences updated")

	sendJSON(w, h.logger, http.StatusOK, p)
}
