// Package store persists the curated trend collection.
//
// A curator's working set is small: a few dozen trends, the category
// list, and the board branding. The Store interface covers all three
// with implementations for different deployments:
//   - [FileStore]: JSON files under ~/.config/trendmap/ (CLI default)
//   - [RedisStore]: Redis-backed storage for server deployments
//   - [MongoStore]: MongoDB-backed storage for hosted deployments
//
// # Usage
//
// Create a store:
//
//	// CLI
//	store, err := store.NewFileStore("")  // Uses ~/.config/trendmap/
//
//	// Server
//	store, err := store.NewRedisStore(ctx, store.RedisConfig{
//	    Addr: "localhost:6379",
//	})
//
// Manage trends:
//
//	trend := board.Trend{Name: "amapiano", Size: 60, Category: "music"}
//	if err := store.SaveTrend(ctx, &trend); err != nil {
//	    return err
//	}
//	trends, err := store.ListTrends(ctx)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/mkessel/trendmap/pkg/board"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Category is a curated board section. Order controls the vertical
// band order on the composed board; disabled categories keep their
// trends but are skipped at compose time.
type Category struct {
	Name    string `json:"name" bson:"name"`
	Enabled bool   `json:"enabled" bson:"enabled"`
	Order   int    `json:"order" bson:"order"`
}

// Branding holds the text and accent styling stamped on exported boards.
type Branding struct {
	Title  string `json:"title" bson:"title"`   // Board headline (e.g. "This Week in Sound")
	Handle string `json:"handle" bson:"handle"` // Social handle shown in the footer
	Accent string `json:"accent" bson:"accent"` // Hex accent color (e.g. "#e63946")
}

// Store is the interface for curation storage backends.
// All implementations are safe for concurrent use.
type Store interface {
	// ListTrends returns all stored trends, most recently updated first.
	ListTrends(ctx context.Context) ([]board.Trend, error)

	// GetTrend retrieves a trend by ID.
	// Returns ErrNotFound if no trend has that ID.
	GetTrend(ctx context.Context, id string) (*board.Trend, error)

	// SaveTrend inserts or updates a trend. A missing ID is assigned;
	// timestamps are maintained automatically.
	SaveTrend(ctx context.Context, trend *board.Trend) error

	// DeleteTrend removes a trend by ID.
	// Returns ErrNotFound if no trend has that ID.
	DeleteTrend(ctx context.Context, id string) error

	// ReplaceTrends overwrites the whole collection, used when a fetch
	// replaces the working set.
	ReplaceTrends(ctx context.Context, trends []board.Trend) error

	// ListCategories returns the category list in band order.
	ListCategories(ctx context.Context) ([]Category, error)

	// SaveCategories overwrites the category list.
	SaveCategories(ctx context.Context, categories []Category) error

	// GetBranding retrieves the board branding.
	// Returns nil, nil when no branding has been saved.
	GetBranding(ctx context.Context) (*Branding, error)

	// SaveBranding stores the board branding.
	SaveBranding(ctx context.Context, branding *Branding) error

	// Close releases backend resources.
	Close() error
}

// prepareTrend fills in the ID and timestamps before a save.
// Shared by all backends so records look the same everywhere.
func prepareTrend(t *board.Trend) {
	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.NewString()
		t.CreatedAt = now
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
