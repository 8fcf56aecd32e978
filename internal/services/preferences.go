package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/bestfriendai/SupaSecret-sub011/internal/debounce"
	"github.com/bestfriendai/SupaSecret-sub011/internal/models"
)

// PreferencesAPI defines the preferences interface consumed by the handlers
type PreferencesAPI interface {
	Get() models.Preferences
	Update(p models.Preferences)
}

// PreferencesService keeps the current user preferences in memory and
// persists them to a JSON file through a debouncer, so a burst of toggle
// flips ends up as a single write.
type PreferencesService struct {
	path   string
	logger *slog.Logger

	mu      sync.RWMutex
	current models.Preferences

	saver *debounce.Debouncer[models.Preferences]
}

// Check interface implementation at compile-time
var _ PreferencesAPI = &PreferencesService{}

// NewPreferencesService creates a preferences service persisting to path.
// A missing file is not an error; defaults apply until the first update.
func NewPreferencesService(path string, saveQuiet time.Duration, logger *slog.Logger) (*PreferencesService, error) {
	s := &PreferencesService{
		path:   path,
		logger: logger,
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	s.saver = debounce.NewDebouncer(s.persist, saveQuiet, func(err error) {
		// A failed save must be visible but never fatal; the next update retriggers it
		logger.Error("Failed to persist preferences", "err", err.Error())
	})

	return s, nil
}

// load reads previously persisted preferences, tolerating a missing file
func (s *PreferencesService) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read preferences: %w", err)
	}

	if err := json.Unmarshal(data, &s.current); err != nil {
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	return nil
}

// Get returns the current preferences
func (s *PreferencesService) Get() models.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Update stores the preferences in memory and schedules a debounced write
func (s *PreferencesService) Update(p models.Preferences) {
	s.mu.Lock()
	s.current = p
	s.mu.Unlock()

	s.saver.Trigger(p)
}

// persist writes the preferences to disk
func (s *PreferencesService) persist(p models.Preferences) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}

	return nil
}

// Close cancels any pending debounced write and flushes the current
// preferences synchronously
func (s *PreferencesService) Close() error {
	s.saver.Stop()

	return s.persist(s.Get())
}
