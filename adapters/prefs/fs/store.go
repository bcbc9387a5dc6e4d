// Package prefsfs stores theme preferences in a small JSON file.
package prefsfs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goliatone/go-report/theme"
)

// Store keeps preferences as a JSON object on disk. Writes replace the file
// atomically.
type Store struct {
	Path string

	mu sync.Mutex
}

var _ theme.PreferenceStore = (*Store)(nil)

// NewStore creates a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{Path: path}
}

// Get returns the stored value for key. A missing file reads as empty.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := s.check(ctx, key); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set writes value under key, keeping other keys.
func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.check(ctx, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *Store) check(ctx context.Context, key string) error {
	if s == nil || s.Path == "" {
		return errors.New("preference file not configured")
	}
	if key == "" {
		return errors.New("preference key is required")
	}
	return ctx.Err()
}

func (s *Store) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parsing preferences %s: %w", s.Path, err)
	}
	return values, nil
}

func (s *Store) write(values map[string]string) error {
	payload, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".prefs-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()
	if _, err := tmp.Write(payload); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.Path)
}
