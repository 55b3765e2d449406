package storage

import (
	"os"
	"sync"
	"time"

	"github.com/dpshade/prompt-loom/internal/models"
)

// cachedTemplate pairs a parsed template with the file mtime it was parsed
// from.
type cachedTemplate struct {
	template models.Template
	modTime  time.Time
}

// TemplateCache caches parsed templates by path with mtime invalidation, so
// the browser can re-highlight entries without re-parsing their JSON. Only
// successful parses are cached; a cache hit is indistinguishable from a
// fresh parse.
type TemplateCache struct {
	entries map[string]cachedTemplate
	mu      sync.RWMutex // Protects entries map from concurrent access
}

// NewTemplateCache creates an empty template cache
func NewTemplateCache() *TemplateCache {
	return &TemplateCache{
		entries: make(map[string]cachedTemplate),
	}
}

// Get retrieves the cached template for a path if the file is unchanged
// since it was parsed. The returned template is a copy, so callers can
// never mutate the cached record.
func (c *TemplateCache) Get(path string, info os.FileInfo) (*models.Template, bool) {
	c.mu.RLock()
	cached, exists := c.entries[path]
	c.mu.RUnlock()
	if !exists {
		return nil, false
	}

	// Check if file has been modified
	if !info.ModTime().Equal(cached.modTime) {
		return nil, false
	}

	template := cached.template
	return &template, true
}

// Set stores a parsed template in the cache
func (c *TemplateCache) Set(path string, info os.FileInfo, template *models.Template) {
	c.mu.Lock()
	c.entries[path] = cachedTemplate{
		template: *template,
		modTime:  info.ModTime(),
	}
	c.mu.Unlock()
}

// Invalidate drops the cache entry for a path. Called after every save so a
// rewrite is never served from the old parse.
func (c *TemplateCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Len returns the number of cached entries
func (c *TemplateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
