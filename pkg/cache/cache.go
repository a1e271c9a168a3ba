// Package cache provides pluggable byte caching for the trendmap pipeline.
//
// The pipeline caches three kinds of payloads, each with its own keyspace
// and TTL:
//   - Candidates: raw platform fetch results (short-lived, hours)
//   - Boards: composed layouts keyed on the trend set and canvas options
//   - Artifacts: exported layout files keyed on the board hash
//
// Backends:
//   - FileCache: directory-backed, for the CLI
//   - RedisCache: shared cache for server deployments
//   - NullCache: disables caching (tests, --no-cache)
package cache

import (
	"context"
	"time"
)

// TTLs for the different payload kinds.
const (
	// TTLCandidates bounds how stale platform charts may get.
	TTLCandidates = 6 * time.Hour

	// TTLBoard is the lifetime of composed layouts. Layout computation is
	// cheap, so this mostly serves identical repeat exports.
	TTLBoard = 24 * time.Hour

	// TTLArtifact is the lifetime of exported artifacts.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the interface for byte cache backends.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Keyer - Cache Key Construction
// =============================================================================

// CandidateKeyOpts are the options that distinguish candidate fetches.
type CandidateKeyOpts struct {
	Region string `json:"region,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// BoardKeyOpts are the options that distinguish board compositions.
type BoardKeyOpts struct {
	Canvas  string  `json:"canvas"`
	Padding float64 `json:"padding"`
}

// ArtifactKeyOpts are the options that distinguish exported artifacts.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// HTTPKey generates a key for raw HTTP response caching.
	HTTPKey(namespace, key string) string

	// CandidateKey generates a key for platform candidate caching.
	CandidateKey(platform string, opts CandidateKeyOpts) string

	// BoardKey generates a key for composed board caching.
	// trendsHash is the content hash of the serialized trend set.
	BoardKey(trendsHash string, opts BoardKeyOpts) string

	// ArtifactKey generates a key for exported artifact caching.
	ArtifactKey(boardHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer is the standard key scheme. Keys embed a hash of the
// distinguishing options so different option sets never collide.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer { return &DefaultKeyer{} }

// HTTPKey generates a key for HTTP response caching.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// CandidateKey generates a key for platform candidate caching.
func (k *DefaultKeyer) CandidateKey(platform string, opts CandidateKeyOpts) string {
	return hashKey("candidates:"+platform, opts)
}

// BoardKey generates a key for composed board caching.
func (k *DefaultKeyer) BoardKey(trendsHash string, opts BoardKeyOpts) string {
	return hashKey("board:"+trendsHash, opts)
}

// ArtifactKey generates a key for exported artifact caching.
func (k *DefaultKeyer) ArtifactKey(boardHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+boardHash, opts)
}
