package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
)

// mockFeedService is a mock implementation of the Feed Service for testing
type mockFeedService struct {
	readSecretsFn func(ctx context.Context) (<-chan FeedResult, error)
}

func (m *mockFeedService) ReadSecrets(ctx context.Context) (<-chan FeedResult, error) {
	if m.readSecretsFn != nil {
		return m.readSecretsFn(ctx)
	}

	ch := make(chan FeedResult)
	close(ch)
	return ch, nil
}

// createFeedResultCh builds a closed channel carrying the given secrets and
// an optional trailing error
func createFeedResultCh(secrets []models.SecretPayload, err error) <-chan FeedResult {
	ch := make(chan FeedResult, len(secrets)+1)

	for i := range secrets {
		ch <- FeedResult{Secret: &secrets[i]}
	}

	if err != nil {
		ch <- FeedResult{Err: err}
	}

	close(ch)
	return ch
}

func TestSecretStore_Run_PopulatesStore(t *testing.T) {
	secrets := []models.SecretPayload{
		{Kind: models.KindText, Data: models.Secret{ID: "s-1", Kind: models.KindText, Body: "one", CreatedAt: time.Unix(1769900000, 0), Likes: 2}},
		{Kind: models.KindVideo, Data: models.Secret{ID: "s-2", Kind: models.KindVideo, Transcription: "two", CreatedAt: time.Unix(1769900100, 0), Likes: 5}},
	}

	feed := &mockFeedService{
		readSecretsFn: func(ctx context.Context) (<-chan FeedResult, error) {
			return createFeedResultCh(secrets, nil), nil
		},
	}

	store := NewSecretStore(feed, testLogger())

	notified := 0
	store.SetOnAdd(func() { notified++ })

	if err := store.Run(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if store.Len() != 2 {
		t.Fatalf("expected 2 stored secrets, got %d", store.Len())
	}
	if notified != 2 {
		t.Errorf("expected 2 ingest notifications, got %d", notified)
	}

	snapshot := store.Snapshot()
	if snapshot[0].ID != "s-1" || snapshot[1].ID != "s-2" {
		t.Errorf("unexpected snapshot order: %+v", snapshot)
	}
}

func TestSecretStore_Run_ConnectionError(t *testing.T) {
	expectedErr := errors.New("connection refused")

	feed := &mockFeedService{
		readSecretsFn: func(ctx context.Context) (<-chan FeedResult, error) {
			return nil, expectedErr
		},
	}

	store := NewSecretStore(feed, testLogger())

	err := store.Run(context.Background())

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error to wrap %v, got %v", expectedErr, err)
	}
}

func TestSecretStore_Run_FeedErrorKeepsPartialData(t *testing.T) {
	feedErr := errors.New("parse error")

	secrets := []models.SecretPayload{
		{Kind: models.KindText, Data: models.Secret{ID: "s-1", Body: "kept", CreatedAt: time.Unix(1769900000, 0)}},
	}

	feed := &mockFeedService{
		readSecretsFn: func(ctx context.Context) (<-chan FeedResult, error) {
			return createFeedResultCh(secrets, feedErr), nil
		},
	}

	store := NewSecretStore(feed, testLogger())

	err := store.Run(context.Background())

	if !errors.Is(err, feedErr) {
		t.Errorf("expected error to wrap %v, got %v", feedErr, err)
	}
	if store.Len() != 1 {
		t.Errorf("expected partial data to remain stored, got %d secrets", store.Len())
	}
}

func TestSecretStore_Add_AssignsIDWhenMissing(t *testing.T) {
	store := NewSecretStore(&mockFeedService{}, testLogger())

	store.Add(models.Secret{Body: "anonymous", CreatedAt: time.Unix(1769900000, 0)})

	snapshot := store.Snapshot()
	if len(snapshot) != 1 {
		t.Fatalf("expected 1 secret, got %d", len(snapshot))
	}
	if snapshot[0].ID == "" {
		t.Error("expected an identifier to be assigned")
	}
}

func TestSecretStore_Snapshot_IsACopy(t *testing.T) {
	store := NewSecretStore(&mockFeedService{}, testLogger())
	store.Add(models.Secret{ID: "s-1", Body: "original", CreatedAt: time.Unix(1769900000, 0)})

	snapshot := store.Snapshot()
	snapshot[0].Body = "mutated"

	if got := store.Snapshot()[0].Body; got != "original" {
		t.Errorf("expected store to be isolated from snapshot mutation, got %q", got)
	}
}
