package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/mkessel/trendmap/pkg/board"
)

// FileStore is a file-based curation store for CLI use.
// Each record type lives in its own JSON file in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a new file-based store.
// If baseDir is empty, defaults to ~/.config/trendmap/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "trendmap")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) trendsPath() string     { return filepath.Join(s.baseDir, "trends.json") }
func (s *FileStore) categoriesPath() string { return filepath.Join(s.baseDir, "categories.json") }
func (s *FileStore) brandingPath() string   { return filepath.Join(s.baseDir, "branding.json") }

// Path returns the base directory for store files.
func (s *FileStore) Path() string { return s.baseDir }

func (s *FileStore) ListTrends(ctx context.Context) ([]board.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readTrends()
}

func (s *FileStore) GetTrend(ctx context.Context, id string) (*board.Trend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trends, err := s.readTrends()
	if err != nil {
		return nil, err
	}
	for i := range trends {
		if trends[i].ID == id {
			return &trends[i], nil
		}
	}
	return nil, fmt.Errorf("trend %s: %w", id, ErrNotFound)
}

func (s *FileStore) SaveTrend(ctx context.Context, trend *board.Trend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepareTrend(trend)

	trends, err := s.readTrends()
	if err != nil {
		return err
	}
	replaced := false
	for i := range trends {
		if trends[i].ID == trend.ID {
			trends[i] = *trend
			replaced = true
			break
		}
	}
	if !replaced {
		trends = append(trends, *trend)
	}
	return s.writeJSON(s.trendsPath(), trends)
}

func (s *FileStore) DeleteTrend(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	trends, err := s.readTrends()
	if err != nil {
		return err
	}
	kept := trends[:0]
	for _, t := range trends {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(trends) {
		return fmt.Errorf("trend %s: %w", id, ErrNotFound)
	}
	return s.writeJSON(s.trendsPath(), kept)
}

func (s *FileStore) ReplaceTrends(ctx context.Context, trends []board.Trend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepared := make([]board.Trend, len(trends))
	for i := range trends {
		prepared[i] = trends[i]
		prepareTrend(&prepared[i])
	}
	return s.writeJSON(s.trendsPath(), prepared)
}

func (s *FileStore) ListCategories(ctx context.Context) ([]Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var categories []Category
	if err := s.readJSON(s.categoriesPath(), &categories); err != nil {
		return nil, err
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Order < categories[j].Order
	})
	return categories, nil
}

func (s *FileStore) SaveCategories(ctx context.Context, categories []Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(s.categoriesPath(), categories)
}

func (s *FileStore) GetBranding(ctx context.Context) (*Branding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var branding *Branding
	if err := s.readJSON(s.brandingPath(), &branding); err != nil {
		return nil, err
	}
	return branding, nil
}

func (s *FileStore) SaveBranding(ctx context.Context, branding *Branding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeJSON(s.brandingPath(), branding)
}

func (s *FileStore) Close() error { return nil }

// readTrends loads the trend file, sorted most recently updated first.
func (s *FileStore) readTrends() ([]board.Trend, error) {
	var trends []board.Trend
	if err := s.readJSON(s.trendsPath(), &trends); err != nil {
		return nil, err
	}
	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].UpdatedAt.After(trends[j].UpdatedAt)
	})
	return trends, nil
}

// readJSON loads a file into v; a missing file leaves v untouched.
func (s *FileStore) readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (s *FileStore) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
