package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bestfriendai/SupaSecret-sub011/internal/handlers"
	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
	"github.com/bestfriendai/SupaSecret-sub011/internal/services"
)

type staticTrending struct{}

func (staticTrending) TrendingSecrets(windowHours, limit int) []models.TrendingSecret {
	return []models.TrendingSecret{}
}

func (staticTrending) HashtagStats(windowHours int) []models.HashtagStat {
	return []models.HashtagStat{}
}

func (staticTrending) Search(query string) []models.Secret {
	return []models.Secret{}
}

type staticPreferences struct{}

func (staticPreferences) Get() models.Preferences   { return models.Preferences{} }
func (staticPreferences) Update(models.Preferences) {}

var (
	_ services.TrendingAPI    = staticTrending{}
	_ services.PreferencesAPI = staticPreferences{}
)

func TestNewRouter_Routes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	trendingHandler := handlers.NewTrendingHandler(staticTrending{}, logger, nil, 24, 20)
	preferencesHandler := handlers.NewPreferencesHandler(staticPreferences{}, logger)

	router := NewRouter(trendingHandler, preferencesHandler)

	tests := []struct {
		method         string
		path           string
		expectedStatus int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/trending", http.StatusOK},
		{http.MethodGet, "/hashtags", http.StatusOK},
		{http.MethodGet, "/search?q=cat", http.StatusOK},
		{http.MethodGet, "/preferences", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodPost, "/trending", http.StatusMethodNotAllowed},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d", tc.expectedStatus, w.Code)
			}
		})
	}
}
