package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"portfolio/models"
)

// ThemeStore persists one theme preference per visitor
type ThemeStore interface {
	// Get returns the stored theme; ok is false when nothing is stored.
	Get(ctx context.Context, visitor string) (theme models.Theme, ok bool, err error)
	Set(ctx context.Context, visitor string, theme models.Theme) error
	Close() error
}

// ParseTheme validates a theme name from a request or flag
func ParseTheme(s string) (models.Theme, error) {
	t := models.Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("%q: %w", s, ErrInvalidTheme)
	}
	return t, nil
}

// MemoryThemeStore keeps preferences for the life of the process
type MemoryThemeStore struct {
	mu     sync.RWMutex
	themes map[string]models.Theme
}

// NewMemoryThemeStore creates an empty in-memory store
func NewMemoryThemeStore() *MemoryThemeStore {
	return &MemoryThemeStore{themes: make(map[string]models.Theme)}
}

func (s *MemoryThemeStore) Get(_ context.Context, visitor string) (models.Theme, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.themes[visitor]
	return t, ok, nil
}

func (s *MemoryThemeStore) Set(_ context.Context, visitor string, theme models.Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[visitor] = theme
	return nil
}

func (s *MemoryThemeStore) Close() error { return nil }

// ThemeService applies the default and toggling rules on top of a store
type ThemeService struct {
	store ThemeStore
}

// NewThemeService wraps a store
func NewThemeService(store ThemeStore) *ThemeService {
	return &ThemeService{store: store}
}

// Current returns the visitor's theme, dark when none was saved
func (s *ThemeService) Current(ctx context.Context, visitor string) (models.Theme, error) {
	t, ok, err := s.store.Get(ctx, visitor)
	if err != nil {
		return "", err
	}
	if !ok || !t.Valid() {
		return models.DefaultTheme, nil
	}
	return t, nil
}

// Set stores an explicit choice
func (s *ThemeService) Set(ctx context.Context, visitor string, theme models.Theme) error {
	if !theme.Valid() {
		return fmt.Errorf("%q: %w", theme, ErrInvalidTheme)
	}
	return s.store.Set(ctx, visitor, theme)
}

// Toggle flips the visitor's theme and returns the new one
func (s *ThemeService) Toggle(ctx context.Context, visitor string) (models.Theme, error) {
	current, err := s.Current(ctx, visitor)
	if err != nil {
		return "", err
	}
	next := current.Toggled()
	if err := s.store.Set(ctx, visitor, next); err != nil {
		return "", err
	}
	return next, nil
}

// Close releases the underlying store
func (s *ThemeService) Close() error {
	return s.store.Close()
}
