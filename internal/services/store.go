package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
)

// SecretSource supplies the current secret collection for aggregation
type SecretSource interface {
	Snapshot() []models.Secret
}

// SecretStore keeps the in-memory secret collection fed by the feed client.
// Reads hand out copies, so aggregation never observes concurrent writes.
type SecretStore struct {
	feed   FeedService
	logger *slog.Logger

	mu      sync.RWMutex
	secrets []models.Secret

	// onAdd is notified after every accepted secret; the trending service
	// hooks its debounced snapshot refresh here
	onAdd func()
}

// Check interface implementation at compile-time
var _ SecretSource = &SecretStore{}

// NewSecretStore creates a store consuming the given feed
func NewSecretStore(feed FeedService, logger *slog.Logger) *SecretStore {
	return &SecretStore{
		feed:    feed,
		logger:  logger,
		secrets: make([]models.Secret, 0),
	}
}

// SetOnAdd registers the ingest notification hook. Must be called before Run.
func (s *SecretStore) SetOnAdd(onAdd func()) {
	s.onAdd = onAdd
}

// Add appends a secret to the collection, assigning an identifier when the
// feed delivered none
func (s *SecretStore) Add(secret models.Secret) {
	if secret.ID == "" {
		secret.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.secrets = append(s.secrets, secret)
	s.mu.Unlock()

	if s.onAdd != nil {
		s.onAdd()
	}
}

// Snapshot returns a copy of the current collection
func (s *SecretStore) Snapshot() []models.Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Secret(nil), s.secrets...)
}

// Len returns the number of stored secrets
func (s *SecretStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.secrets)
}

// Run consumes the feed until the context is cancelled, populating the
// store as secrets arrive. Feed errors end the run and are returned;
// reconnecting is the caller's decision.
func (s *SecretStore) Run(ctx context.Context) error {
	resultCh, err := s.feed.ReadSecrets(ctx)
	if err != nil {
		return err
	}

	for result := range resultCh {
		if result.Err != nil {
			s.logger.Error("Feed error while ingesting", "err", result.Err.Error(), "secrets_stored", s.Len())
			return result.Err
		}

		if result.Secret != nil {
			s.Add(result.Secret.Data)
		}
	}

	return nil
}
