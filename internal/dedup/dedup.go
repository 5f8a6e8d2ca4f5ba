package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type seenEntry struct {
	URL       string `json:"url"`
	Timestamp int64  `json:"timestamp"`
}

// PostCache remembers post URLs that were already scraped, persisted as JSON.
// Entries older than the retention window are dropped on load.
type PostCache struct {
	mu        sync.Mutex
	filePath  string
	retention time.Duration
	seen      map[string]int64
	now       func() time.Time
	logger    zerolog.Logger
}

const DefaultRetention = 30 * 24 * time.Hour

// NewPostCache creates or loads the cache in cacheDir
func NewPostCache(cacheDir string, retention time.Duration, logger zerolog.Logger) *PostCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		logger.Warn().Err(err).Msg("failed to create cache directory")
	}
	if retention <= 0 {
		retention = DefaultRetention
	}
	cache := &PostCache{
		filePath:  filepath.Join(cacheDir, "seen_posts.json"),
		retention: retention,
		seen:      make(map[string]int64),
		now:       time.Now,
		logger:    logger,
	}
	cache.load()
	return cache
}

// IsSeen checks if a URL has already been scraped
func (c *PostCache) IsSeen(url string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, exists := c.seen[url]
	return exists
}

func (c *PostCache) Add(urls ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now().UnixMilli()
	changed := false
	for _, url := range urls {
		if _, exists := c.seen[url]; !exists {
			c.seen[url] = now
			changed = true
		}
	}

	if changed {
		c.save()
	}
}

func (c *PostCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seen)
}

// load reads the cache from disk, skipping expired entries
func (c *PostCache) load() {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn().Err(err).Str("path", c.filePath).Msg("failed to read post cache")
		}
		return
	}

	var entries []seenEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		c.logger.Warn().Err(err).Str("path", c.filePath).Msg("failed to parse post cache")
		return
	}

	cutoff := c.now().Add(-c.retention).UnixMilli()
	loaded := 0
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.seen[e.URL] = e.Timestamp
			loaded++
		}
	}
	c.logger.Debug().Int("loaded", loaded).Int("expired", len(entries)-loaded).Msg("post cache loaded")
}

// save writes the cache to disk, caller holds mu
func (c *PostCache) save() {
	entries := make([]seenEntry, 0, len(c.seen))
	for url, ts := range c.seen {
		entries = append(entries, seenEntry{URL: url, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		c.logger.Warn().Err(err).Msg("failed to marshal post cache")
		return
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		c.logger.Warn().Err(err).Str("path", c.filePath).Msg("failed to write post cache")
	}
}
