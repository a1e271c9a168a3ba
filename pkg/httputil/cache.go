package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Get] when a cached entry exists but has
// exceeded its time-to-live (TTL).
//
// The cached data still exists on disk but is considered stale. Callers
// should fetch fresh data from the source and update the cache with
// [Cache.Set].
//
// Use errors.Is to check for this error:
//
//	ok, err := cache.Get("key", &value)
//	if errors.Is(err, httputil.ErrExpired) {
//	    // Fetch fresh data and update cache
//	}
var ErrExpired = errors.New("cache entry expired")

// Cache provides file-based caching of arbitrary JSON-marshalable data.
//
// Each entry is stored as a JSON file in the cache directory, with the
// filename derived from a SHA-256 hash of the cache key. Hashing keeps
// filenames filesystem-safe regardless of what characters the key holds.
//
// Cache operations are not goroutine-safe. If multiple goroutines access
// the same Cache instance, the caller must synchronize access. Multiple
// Cache instances (even in different processes) can safely share the same
// directory, as the filesystem provides atomic file operations.
//
// Entries have a time-to-live based on file modification time. A TTL of 0
// means entries never expire.
//
// A nil *Cache is valid and disables caching: Get always misses and Set
// is a no-op. This lets clients run without a usable cache directory.
//
// Use [Cache.Namespace] to create scoped views that automatically prefix
// keys, avoiding collisions between platforms:
//
//	spotify := cache.Namespace("spotify:")
//	youtube := cache.Namespace("youtube:")
//	spotify.Set("viral-50", data)  // key becomes "spotify:viral-50"
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// NewCache creates a Cache that stores entries in dir with the given TTL.
//
// If dir is empty, NewCache uses the default directory ~/.cache/trendmap/.
// The directory is created with mode 0755 if it doesn't exist; directory
// creation errors are the only possible source of failure.
//
// Parameters:
//   - dir: Cache directory path. Use "" for default (~/.cache/trendmap/).
//   - ttl: Time-to-live for cache entries. Use 0 for no expiration.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".cache", "trendmap")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl, prefix: ""}, nil
}

// Dir returns the absolute path to the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live duration for cache entries.
// A TTL of 0 means cache entries never expire.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Get retrieves a cached value by key and unmarshals it into v.
//
// Return values indicate three distinct outcomes:
//   - (true, nil): Cache hit. The value was found, is fresh, and unmarshaled into v.
//   - (false, nil): Cache miss. No entry exists for this key. v is unchanged.
//   - (false, ErrExpired): Entry exists but exceeded its TTL. v is unchanged.
//   - (false, other error): I/O error, JSON unmarshal error, etc.
//
// The key can be any string. Namespace keys by platform to avoid
// collisions (e.g., "spotify:viral-50", "youtube:trending:US"). The key
// is hashed with SHA-256, so long keys are acceptable.
//
// The value v must be a pointer to a type compatible with json.Unmarshal.
//
// Get does not modify the cache or update modification times; reads are
// non-mutating operations.
func (c *Cache) Get(key string, v any) (bool, error) {
	if c == nil {
		return false, nil
	}
	path := c.keyPath(c.prefix + key)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return false, ErrExpired
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// Set stores a value in the cache under the given key.
//
// The value v is marshaled to JSON and written to disk. If v cannot be
// marshaled, Set returns the marshal error; if the write fails, Set
// returns the underlying I/O error.
//
// Set overwrites any existing entry for key, resetting its modification
// time to the current time. This effectively refreshes the TTL.
func (c *Cache) Set(key string, v any) error {
	if c == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a new Cache that automatically prefixes all keys with prefix.
//
// This creates a scoped view of the cache, useful for isolating platforms
// from each other. The returned Cache shares the same underlying directory
// and TTL as the parent.
//
// Example:
//
//	cache, _ := httputil.NewCache("", 6*time.Hour)
//	spotifyCache := cache.Namespace("spotify:")
//	lastfmCache := cache.Namespace("lastfm:")
//
// Namespace calls can be chained to create hierarchical key spaces:
//
//	cache.Namespace("spotify:").Namespace("viral:")  // prefix: "spotify:viral:"
//
// The prefix is applied transparently to all Get and Set operations.
// An empty prefix is valid and results in no key transformation.
func (c *Cache) Namespace(prefix string) *Cache {
	if c == nil {
		return nil
	}
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}
