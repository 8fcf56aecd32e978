package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bestfriendai/SupaSecret-sub011/internal/metrics"
	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
	"github.com/bestfriendai/SupaSecret-sub011/internal/services"
)

// TrendingHandler handles HTTP requests for trending secrets, hashtag
// statistics and search
type TrendingHandler struct {
	trends  services.TrendingAPI
	logger  *slog.Logger
	metrics *metrics.Metrics

	defaultWindow int
	defaultLimit  int
}

// NewTrendingHandler creates a new trending request handler
func NewTrendingHandler(trends services.TrendingAPI, logger *slog.Logger, m *metrics.Metrics, defaultWindow, defaultLimit int) *TrendingHandler {
	return &TrendingHandler{
		trends:        trends,
		logger:        logger,
		metrics:       m,
		defaultWindow: defaultWindow,
		defaultLimit:  defaultLimit,
	}
}

// observe records query metrics for one endpoint
func (h *TrendingHandler) observe(endpoint, status string, start time.Time) {
	if h.metrics == nil {
		return
	}

	h.metrics.TrendingQueries.WithLabelValues(endpoint, status).Inc()
	h.metrics.QueryDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// HandleTrending processes GET requests to the '/trending' endpoint
func (h *TrendingHandler) HandleTrending(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	window, limit, err := h.parseParams(r)
	if err != nil {
		h.observe("trending", "error", start)
		sendError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	ranked := h.trends.TrendingSecrets(window, limit)

	h.logger.Info("Trending query served", "window_hours", window, "limit", limit, "results", len(ranked))
	h.observe("trending", "ok", start)

	sendJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"window_hours": window,
		"secrets":      ranked,
	})
}

// HandleHashtags processes GET requests to the '/hashtags' endpoint
func (h *TrendingHandler) HandleHashtags(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	window, err := h.parseWindow(r)
	if err != nil {
		h.observe("hashtags", "error", start)
		sendError(w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	stats := h.trends.HashtagStats(window)

	h.logger.Info("Hashtag query served", "window_hours", window, "tags", len(stats))
	h.observe("hashtags", "ok", start)

	sendJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"window_hours": window,
		"hashtags":     stats,
	})
}

// HandleSearch processes GET requests to the '/search' endpoint
func (h *TrendingHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := r.URL.Query().Get("q")

	results := h.trends.Search(query)

	h.logger.Info("Search query served", "results", len(results))
	h.observe("search", "ok", start)

	if results == nil {
		results = []models.Secret{}
	}

	sendJSON(w, h.logger, http.StatusOK, map[string]interface{}{
		"secrets": results,
	})
}

// parseParams extracts and validates the window and limit query parameters
func (h *TrendingHandler) parseParams(r *http.Request) (int, int, error) {
	window, err := h.parseWindow(r)
	if err != nil {
		return 0, 0, err
	}

	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		return window, h.defaultLimit, nil
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid limit: %s", limitStr)
	}

	if limit < 0 {
		return 0, 0, fmt.Errorf("limit must not be negative")
	}

	return window, limit, nil
}

// parseWindow extracts and validates the window query parameter.
// Only the windows offered by the app are accepted here; the aggregator
// itself accepts any positive value.
func (h *TrendingHandler) parseWindow(r *http.Request) (int, error) {
	windowStr := r.URL.Query().Get("window")
	if windowStr == "" {
		return h.defaultWindow, nil
	}

	window, err := strconv.Atoi(windowStr)
	if err != nil {
		return 0, fmt.Errorf("invalid window: %s", windowStr)
	}

	if !models.ValidWindows[window] {
		return 0, fmt.Errorf("invalid window: %d (must be one of: 24, 168, 720)", window)
	}

	return window, nil
}
