package theme

import (
	"context"
	"sync"
)

// PreferenceStore persists string preferences by key.
type PreferenceStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// SystemSignal reports the platform color-scheme preference.
type SystemSignal interface {
	PrefersDark(ctx context.Context) (bool, error)
}

// Presentation holds the document-level attributes the active theme is
// reflected into.
type Presentation interface {
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
}

// Indicator shows the theme toggle glyph.
type Indicator interface {
	SetIcon(icon Icon)
}

// IndicatorFunc adapts a function to Indicator.
type IndicatorFunc func(icon Icon)

func (f IndicatorFunc) SetIcon(icon Icon) {
	if f != nil {
		f(icon)
	}
}

// Logger is the logging contract used by the controller.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards logs.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// DocumentState is an in-memory Presentation.
type DocumentState struct {
	mu    sync.RWMutex
	attrs map[string]string
}

// NewDocumentState creates an empty document state.
func NewDocumentState() *DocumentState {
	return &DocumentState{attrs: make(map[string]string)}
}

func (d *DocumentState) Attribute(name string) (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	value, ok := d.attrs[name]
	return value, ok
}

func (d *DocumentState) SetAttribute(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.attrs == nil {
		d.attrs = make(map[string]string)
	}
	d.attrs[name] = value
}

// MemoryStore keeps preferences in memory (test/dev only).
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	_ = ctx
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	s.writes++
	return nil
}

// Writes returns the number of Set calls.
func (s *MemoryStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
