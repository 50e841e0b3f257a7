package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/oafront/parser"
)

// specInput is how a tool call names its OpenAPI document.
// Exactly one of File, URL, or Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OpenAPI document on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch an OpenAPI document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline OpenAPI document (JSON or YAML)"`
}

// source returns the location recorded in generated headers.
func (s specInput) source() string {
	switch {
	case s.URL != "":
		return s.URL
	case s.File != "":
		return filepath.Base(s.File)
	}
	return ""
}

type cacheEntry struct {
	result    *parser.ParseResult
	touchedAt time.Time
	expiresAt time.Time
}

// documentCache keeps parsed documents for the life of the session so that
// repeated tool calls on the same document skip the parse. File entries are
// keyed by path and modification time, content by SHA-256, URLs by string.
type documentCache struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var docCache = &documentCache{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

func (c *documentCache) get(key string) *parser.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.touchedAt = time.Now()
	return e.result
}

// put stores result, evicting the least recently used entry when full.
func (c *documentCache) put(key string, result *parser.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldest time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.touchedAt.Before(oldest) {
				oldestKey, oldest = k, e.touchedAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = &cacheEntry{result: result, touchedAt: now, expiresAt: now.Add(ttl)}
}

func (c *documentCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper removes expired entries every interval until ctx is done.
// Only the first call starts a goroutine.
func (c *documentCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
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

func (c *documentCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *documentCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// cacheKey returns "" when the input cannot be cached (e.g. an unreadable file).
func (s specInput) cacheKey() (string, time.Duration) {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return "", 0
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return "", 0
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano()), cfg.CacheFileTTL
	case s.URL != "":
		return "url:" + s.URL, cfg.CacheURLTTL
	case s.Content != "":
		h := sha256.Sum256([]byte(s.Content))
		return "content:" + hex.EncodeToString(h[:]), cfg.CacheContentTTL
	}
	return "", 0
}

// resolve parses the document, serving repeated inputs from the cache.
func (s specInput) resolve() (*parser.ParseResult, error) {
	count := 0
	for _, set := range []bool{s.File != "", s.URL != "", s.Content != ""} {
		if set {
			count++
		}
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	if int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set OAFRONT_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key, ttl = s.cacheKey()
	}
	if key != "" {
		if cached := docCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var opts []parser.Option
	switch {
	case s.File != "":
		opts = append(opts, parser.WithFilePath(s.File))
	case s.URL != "":
		opts = append(opts, parser.WithFilePath(s.URL))
		if !cfg.AllowPrivateIPs {
			opts = append(opts, parser.WithHTTPClient(newSafeHTTPClient()))
		}
	default:
		opts = append(opts, parser.WithReader(strings.NewReader(s.Content)), parser.WithSourceName("inline.yaml"))
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return nil, err
	}
	if key != "" {
		docCache.put(key, result, ttl)
	}
	return result, nil
}
