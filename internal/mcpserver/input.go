package mcpserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/bpmnconv"
	"github.com/erraggy/bpmnconv/internal/options"
)

// modelInput represents the three ways a BPMN model can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type modelInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a BPMN file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a BPMN model from"`
	Content string `json:"content,omitempty" jsonschema:"Inline BPMN XML"`
}

// source is a resolved model: its bytes and a name for messages.
type source struct {
	data []byte
	name string
}

// cacheEntry holds cached model bytes with LRU ordering and TTL expiry.
type cacheEntry struct {
	data      []byte
	insertAt  time.Time
	expiresAt time.Time
}

// sourceCacheStore provides a session-scoped cache of model sources.
// File inputs are keyed by (absolutePath, modTime), URL inputs by URL string.
// Inline content is never cached. Every tool call parses its own copy, so
// conversions never share a document.
type sourceCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var sourceCache = &sourceCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns cached bytes or nil. Expired entries are lazily removed.
func (c *sourceCacheStore) get(key string) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
			delete(c.entries, key)
			return nil
		}
		// Touch entry for LRU.
		e.insertAt = time.Now()
		return e.data
	}
	return nil
}

// putWithTTL stores data with a specific TTL, evicting the oldest entry if at capacity.
func (c *sourceCacheStore) putWithTTL(key string, data []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{data: data, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; ok {
		c.entries[key] = entry
		return
	}

	if len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		if oldestKey != "" {
			delete(c.entries, oldestKey)
		}
	}

	c.entries[key] = entry
}

// sweep removes all expired entries from the cache.
func (c *sourceCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a background goroutine that periodically removes expired entries.
// Only the first call spawns a sweeper. It stops when ctx is cancelled.
func (c *sourceCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	if !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset clears all cached entries. Used in tests.
func (c *sourceCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

// size returns the number of cached entries.
func (c *sourceCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns the cache key and TTL for m, or an empty key when m is
// not cacheable.
func (m modelInput) cacheKey() (string, time.Duration) {
	switch {
	case m.File != "":
		absPath, err := filepath.Abs(m.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "", 0 // Can't stat, don't cache.
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case m.URL != "":
		return "url:" + m.URL, cfg.CacheURLTTL
	default:
		return "", 0
	}
}

// resolve loads the model from whichever input was provided, using the
// cache for file and URL inputs.
func (m modelInput) resolve(ctx context.Context) (source, error) {
	if err := options.ExactlyOne([]string{"file", "url", "content"}, m.File != "", m.URL != "", m.Content != ""); err != nil {
		return source{}, err
	}

	if m.Content != "" {
		if int64(len(m.Content)) > cfg.MaxInlineSize {
			return source{}, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set BPMNCONV_MAX_INLINE_SIZE to increase",
				len(m.Content), cfg.MaxInlineSize)
		}
		return source{data: []byte(m.Content), name: "<content>"}, nil
	}

	name := m.File
	if m.URL != "" {
		name = m.URL
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = m.cacheKey()
	}
	if key != "" {
		if cached := sourceCache.get(key); cached != nil {
			return source{data: cached, name: name}, nil
		}
	}

	var data []byte
	var err error
	if m.File != "" {
		data, err = os.ReadFile(m.File) //nolint:gosec // reading client supplied models is the purpose
	} else {
		data, err = fetch(ctx, m.URL)
	}
	if err != nil {
		return source{}, err
	}

	if key != "" {
		sourceCache.putWithTTL(key, data, ttl)
	}
	return source{data: data, name: name}, nil
}

// fetch downloads a model. Private addresses are refused unless
// BPMNCONV_ALLOW_PRIVATE_IPS is set.
func fetch(ctx context.Context, url string) ([]byte, error) {
	client := http.DefaultClient
	if !cfg.AllowPrivateIPs {
		client = newModelClient()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	req.Header.Set("User-Agent", bpmnconv.UserAgent())
	req.Header.Set("Accept", "application/xml, text/xml, */*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching model: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching model: unexpected status %s", resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, cfg.MaxInlineSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading model: %w", err)
	}
	if int64(len(data)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("model exceeds maximum size of %d bytes", cfg.MaxInlineSize)
	}
	return data, nil
}
