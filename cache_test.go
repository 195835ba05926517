package website

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// setupContentDir builds a content tree with posts/ and pages/ subdirs.
func setupContentDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	postsDir := filepath.Join(root, "posts")
	pagesDir := filepath.Join(root, "pages")
	for _, d := range []string{postsDir, pagesDir} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			t.Fatal(err)
		}
	}
	writeDoc(t, postsDir, "a.mdx", docA)
	writeDoc(t, postsDir, "b.mdx", docB)
	writeDoc(t, pagesDir, "about.md", "---\ntitle: About\nsummary: Who I am\n---\n\nHi.\n")
	return root
}

func TestCachePostsOrdered(t *testing.T) {
	c := NewContentCache(setupContentDir(t))

	posts, err := c.Posts()
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "b" {
		t.Errorf("posts = %v, want [b a]", posts)
	}
}

func TestCachePopulateOnce(t *testing.T) {
	root := setupContentDir(t)
	c := NewContentCache(root)

	if _, err := c.Posts(); err != nil {
		t.Fatalf("Posts failed: %v", err)
	}

	// A file added after the first load is invisible until Invalidate:
	// content is static per deployment.
	writeDoc(t, filepath.Join(root, "posts"), "c.mdx", "---\ntitle: C\npublishedAt: \"2024-01-01\"\nsummary: s\n---\nbody\n")

	posts, err := c.Posts()
	if err != nil {
		t.Fatalf("Posts failed: %v", err)
	}
	if len(posts) != 2 {
		t.Errorf("len(posts) = %d, want 2 (cache must not reload)", len(posts))
	}

	c.Invalidate()
	posts, err = c.Posts()
	if err != nil {
		t.Fatalf("Posts after Invalidate failed: %v", err)
	}
	if len(posts) != 3 {
		t.Errorf("len(posts) = %d, want 3 after Invalidate", len(posts))
	}
}

func TestCachePostBySlug(t *testing.T) {
	c := NewContentCache(setupContentDir(t))

	post, err := c.Post("a")
	if err != nil {
		t.Fatalf("Post failed: %v", err)
	}
	if post.Title != "Post A" {
		t.Errorf("Title = %q, want %q", post.Title, "Post A")
	}

	_, err = c.Post("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Post(missing): err = %v, want ErrNotFound", err)
	}
}

func TestCachePage(t *testing.T) {
	c := NewContentCache(setupContentDir(t))

	page, err := c.Page("about")
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	if page.Title != "About" {
		t.Errorf("Title = %q, want About", page.Title)
	}

	_, err = c.Page("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Page(missing): err = %v, want ErrNotFound", err)
	}
}

func TestCachePageMalformed(t *testing.T) {
	root := setupContentDir(t)
	writeDoc(t, filepath.Join(root, "pages"), "uses.md", "---\ntitle: Uses\n---\nstuff\n")
	c := NewContentCache(root)

	_, err := c.Page("uses")
	var me *MetadataError
	if !errors.As(err, &me) {
		t.Errorf("Page(uses): err = %v, want *MetadataError", err)
	}
}

func TestCacheMalformedPostFailsListing(t *testing.T) {
	root := setupContentDir(t)
	writeDoc(t, filepath.Join(root, "posts"), "bad.md", "---\ntitle: only a title\n---\nbody\n")
	c := NewContentCache(root)

	_, err := c.Posts()
	var me *MetadataError
	if !errors.As(err, &me) {
		t.Errorf("Posts: err = %v, want *MetadataError", err)
	}
}
