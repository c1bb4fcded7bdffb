// ABOUTME: Short-lived on-disk cache for per-user dashboard statistics
// ABOUTME: Entries expire five minutes after they were fetched

package statscache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/ufxlib/biblioteca-cli/internal/client"
)

// TTL is how long a cached statistics entry stays fresh.
const TTL = 5 * time.Minute

// Cache stores one statistics file per user under a config directory.
type Cache struct {
	configDir string
	now       func() time.Time
}

type entry struct {
	FetchedAt time.Time        `json:"fetchedAt"`
	Stats     client.UserStats `json:"stats"`
}

// New creates a cache rooted at the given config directory.
func New(configDir string) *Cache {
	return &Cache{configDir: configDir, now: time.Now}
}

func (c *Cache) file(userID string) string {
	return filepath.Join(c.configDir, "stats-"+userID+".json")
}

// Get returns the cached statistics for a user and whether they are
// still fresh. Missing, corrupt, or expired entries miss.
func (c *Cache) Get(userID string) (client.UserStats, bool) {
	data, err := os.ReadFile(c.file(userID))
	if err != nil {
		return client.UserStats{}, false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return client.UserStats{}, false
	}
	if c.now().Sub(e.FetchedAt) > TTL {
		return client.UserStats{}, false
	}
	return e.Stats, true
}

// Put stores freshly fetched statistics for a user. Failures are
// returned but callers may ignore them: the cache is an optimization,
// not a source of truth.
func (c *Cache) Put(userID string, stats client.UserStats) error {
	if err := os.MkdirAll(c.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(entry{FetchedAt: c.now(), Stats: stats}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.file(userID), data, 0600)
}

// Invalidate removes the cached entry for a user, if any.
func (c *Cache) Invalidate(userID string) {
	os.Remove(c.file(userID))
}
