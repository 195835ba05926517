package website

import (
	"errors"
	"path/filepath"
	"sync"
)

// ErrNotFound is returned when a requested post or page does not exist.
var ErrNotFound = errors.New("website: not found")

// ContentCache is the in-memory table of loaded content. Content is static
// per deployment, so the post list is populated once on first access and
// never expires. Invalidate exists for tests and for operators editing the
// content directory on a running instance.
type ContentCache struct {
	mu     sync.RWMutex
	posts  []Post
	bySlug map[string]Post
	pages  map[string]Page

	postsDir string
	pagesDir string
}

// NewContentCache creates a ContentCache over contentDir, which is expected
// to contain posts/ and pages/ subdirectories.
func NewContentCache(contentDir string) *ContentCache {
	return &ContentCache{
		postsDir: filepath.Join(contentDir, "posts"),
		pagesDir: filepath.Join(contentDir, "pages"),
	}
}

// Invalidate clears all cached content so the next read reloads from disk.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.posts = nil
	c.bySlug = nil
	c.pages = nil
	c.mu.Unlock()
}

// ensureLoaded returns the cached post list, loading it on first access.
// It tries a read lock first; the write lock is only taken for the load.
func (c *ContentCache) ensureLoaded() ([]Post, error) {
	c.mu.RLock()
	if c.bySlug != nil {
		posts := c.posts
		c.mu.RUnlock()
		return posts, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.bySlug != nil {
		return c.posts, nil
	}
	posts, err := LoadPosts(c.postsDir)
	if err != nil {
		return nil, err
	}
	bySlug := make(map[string]Post, len(posts))
	for _, p := range posts {
		bySlug[p.Slug] = p
	}
	c.posts = posts
	c.bySlug = bySlug
	return posts, nil
}

// Posts returns all posts ordered by publication date descending.
func (c *ContentCache) Posts() ([]Post, error) {
	return c.ensureLoaded()
}

// Post returns a single post by slug, or ErrNotFound.
func (c *ContentCache) Post(slug string) (Post, error) {
	if _, err := c.ensureLoaded(); err != nil {
		return Post{}, err
	}
	c.mu.RLock()
	p, ok := c.bySlug[slug]
	c.mu.RUnlock()
	if !ok {
		return Post{}, ErrNotFound
	}
	return p, nil
}

// Page returns a standalone page by name, loading it from disk on first
// access. Missing files surface as ErrNotFound so the caller can 404.
func (c *ContentCache) Page(name string) (Page, error) {
	c.mu.RLock()
	if p, ok := c.pages[name]; ok {
		c.mu.RUnlock()
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pages[name]; ok {
		return p, nil
	}
	p, err := LoadPage(c.pagesDir, name)
	if err != nil {
		var me *MetadataError
		if errors.As(err, &me) {
			return Page{}, err
		}
		return Page{}, ErrNotFound
	}
	if c.pages == nil {
		c.pages = make(map[string]Page)
	}
	c.pages[name] = p
	return p, nil
}
