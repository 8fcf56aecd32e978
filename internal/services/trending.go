package services

import (
	"log/slog"
	"sync"
	"time"

	"github.com/bestfriendai/SupaSecret-sub011/internal/debounce"
	"github.com/bestfriendai/SupaSecret-sub011/internal/metrics"
	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
	"github.com/bestfriendai/SupaSecret-sub011/internal/trending"
)

// TrendingAPI defines the trending query interface consumed by the handlers
type TrendingAPI interface {
	TrendingSecrets(windowHours, limit int) []models.TrendingSecret
	HashtagStats(windowHours int) []models.HashtagStat
	Search(query string) []models.Secret
}

// TrendingService answers trending, hashtag and search queries against the
// secret store. A precomputed snapshot for the default window is refreshed
// through a debouncer, so bursts of incoming secrets collapse into one
// recomputation.
type TrendingService struct {
	source     SecretSource
	aggregator *trending.Aggregator
	logger     *slog.Logger
	metrics    *metrics.Metrics

	defaultWindow int
	defaultLimit  int

	refresher *debounce.Debouncer[struct{}]

	mu       sync.RWMutex
	snapshot []models.TrendingSecret
	hasSnap  bool
}

// Check interface implementation at compile-time
var _ TrendingAPI = &TrendingService{}

// NewTrendingService creates a trending service over the given source.
// refreshQuiet is the debounce quiet period for snapshot recomputation.
func NewTrendingService(source SecretSource, aggregator *trending.Aggregator, logger *slog.Logger, m *metrics.Metrics, defaultWindow, defaultLimit int, refreshQuiet time.Duration) *TrendingService {
	s := &TrendingService{
		source:        source,
		aggregator:    aggregator,
		logger:        logger,
		metrics:       m,
		defaultWindow: defaultWindow,
		defaultLimit:  defaultLimit,
	}

	s.refresher = debounce.NewDebouncer(s.refreshSnapshot, refreshQuiet, func(err error) {
		logger.Error("Snapshot refresh failed", "err", err.Error())
	})

	return s
}

// NotifyIngest signals that a secret arrived; the snapshot refresh fires
// once the ingest burst settles
func (s *TrendingService) NotifyIngest() {
	if s.metrics != nil {
		s.metrics.SecretsIngested.Inc()
	}

	s.refresher.Trigger(struct{}{})
}

// Close stops the snapshot refresher
func (s *TrendingService) Close() {
	s.refresher.Stop()
}

// refreshSnapshot recomputes the default-window trending snapshot
func (s *TrendingService) refreshSnapshot(struct{}) error {
	ranked := s.aggregator.ComputeTrendingSecrets(s.source.Snapshot(), s.defaultWindow, s.defaultLimit)

	s.mu.Lock()
	s.snapshot = ranked
	s.hasSnap = true
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SnapshotRefreshes.Inc()
	}

	s.logger.Debug("Trending snapshot refreshed", "secrets", len(ranked))

	return nil
}

// TrendingSecrets returns the ranked secrets for the window. Queries for
// the default window and limit are served from the precomputed snapshot
// when one exists; anything else is computed on demand.
func (s *TrendingService) TrendingSecrets(windowHours, limit int) []models.TrendingSecret {
	if windowHours == s.defaultWindow && limit == s.defaultLimit {
		s.mu.RLock()
		snap, ok := s.snapshot, s.hasSnap
		s.mu.RUnlock()

		if ok {
			return append([]models.TrendingSecret(nil), snap...)
		}
	}

	return s.aggregator.ComputeTrendingSecrets(s.source.Snapshot(), windowHours, limit)
}

// HashtagStats returns hashtag statistics for the window
func (s *TrendingService) HashtagStats(windowHours int) []models.HashtagStat {
	windowed := s.aggregator.FilterByWindow(s.source.Snapshot(), windowHours)
	return s.aggregator.ComputeHashtagStats(windowed)
}

// Search returns the secrets matching the query
func (s *TrendingService) Search(query string) []models.Secret {
	return s.aggregator.SearchByHashtag(s.source.Snapshot(), query)
}
