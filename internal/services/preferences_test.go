package services

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
)

func prefsPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "preferences.json")
}

func readPrefsFile(t *testing.T, path string) models.Preferences {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read preferences file: %v", err)
	}

	var p models.Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("failed to unmarshal preferences file: %v", err)
	}

	return p
}

func TestPreferencesService_MissingFileYieldsDefaults(t *testing.T) {
	svc, err := NewPreferencesService(prefsPath(t), 10*time.Millisecond, testLogger())
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}

	if got := svc.Get(); got != (models.Preferences{}) {
		t.Errorf("expected zero-value defaults, got %+v", got)
	}
}

func TestPreferencesService_BurstOfUpdatesWritesOnce(t *testing.T) {
	path := prefsPath(t)

	svc, err := NewPreferencesService(path, 30*time.Millisecond, testLogger())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	// Rapid toggle flips, as from a settings screen
	svc.Update(models.Preferences{DarkMode: true})
	svc.Update(models.Preferences{DarkMode: true, Autoplay: true})
	svc.Update(models.Preferences{DarkMode: true, Autoplay: true, Captions: true})

	time.Sleep(150 * time.Millisecond)

	persisted := readPrefsFile(t, path)
	want := models.Preferences{DarkMode: true, Autoplay: true, Captions: true}
	if persisted != want {
		t.Errorf("expected last update persisted, got %+v", persisted)
	}

	if got := svc.Get(); got != want {
		t.Errorf("expected in-memory state %+v, got %+v", want, got)
	}
}

func TestPreferencesService_LoadsExistingFile(t *testing.T) {
	path := prefsPath(t)

	existing := models.Preferences{PushNotifications: true, WeeklyDigest: true}
	data, _ := json.Marshal(existing)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to seed preferences file: %v", err)
	}

	svc, err := NewPreferencesService(path, 10*time.Millisecond, testLogger())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	if got := svc.Get(); got != existing {
		t.Errorf("expected loaded preferences %+v, got %+v", existing, got)
	}
}

func TestPreferencesService_CorruptFileIsAnError(t *testing.T) {
	path := prefsPath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("failed to seed file: %v", err)
	}

	if _, err := NewPreferencesService(path, 10*time.Millisecond, testLogger()); err == nil {
		t.Error("expected error for corrupt preferences file")
	}
}

func TestPreferencesService_CloseFlushesPendingWrite(t *testing.T) {
	path := prefsPath(t)

	svc, err := NewPreferencesService(path, time.Hour, testLogger())
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}

	// With an hour-long quiet period the debounced write never fires on its
	// own; Close must flush the current state synchronously
	want := models.Preferences{ReplyNotifications: true}
	svc.Update(want)

	if err := svc.Close(); err != nil {
		t.Fatalf("expected no error on close, got %v", err)
	}

	if persisted := readPrefsFile(t, path); persisted != want {
		t.Errorf("expected flushed preferences %+v, got %+v", want, persisted)
	}
}
