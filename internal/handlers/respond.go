package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// sendJSON sends a successful JSON response
func sendJSON(w http.ResponseWriter, logger *slog.Logger, statusCode int, payload interface{}) {
	respBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal response", "err", err.Error())
		sendError(w, logger, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(respBytes); err != nil {
		logger.Error("Failed to write response", "err", err.Error())
	}
}

// sendError sends an error response with appropriate status code
func sendError(w http.ResponseWriter, logger *slog.Logger, statusCode int, message string) {
	respBytes, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		logger.Error("Failed to marshal error response", "err", err.Error())
		http.Error(w, message, statusCode)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(respBytes); err != nil {
		logger.Error("Failed to write error response", "err", err.Error())
	}
}
