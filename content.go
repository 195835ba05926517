package website

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// frontMatter mirrors the YAML block at the head of every content document.
type frontMatter struct {
	Title       string `yaml:"title"`
	PublishedAt string `yaml:"publishedAt"`
	Summary     string `yaml:"summary"`
}

// MetadataError reports a content document whose front-matter is missing,
// unparsable, or incomplete. The listing fails as a whole on the first such
// document; a post is never returned with partial metadata.
type MetadataError struct {
	File  string
	Field string
	Err   error
}

func (e *MetadataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("content %s: %s: %v", e.File, e.Field, e.Err)
	}
	return fmt.Sprintf("content %s: missing front-matter field %q", e.File, e.Field)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// LoadPosts reads every Markdown document in dir and returns posts ordered by
// publication date descending, ties broken by slug ascending. Every call
// re-reads the directory, so the output is reproducible across runs.
func LoadPosts(dir string) ([]Post, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read content dir: %w", err)
	}
	var posts []Post
	for _, entry := range entries {
		if entry.IsDir() || !isContentFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fm, body, err := parseDocument(path)
		if err != nil {
			return nil, err
		}
		if err := fm.validatePost(path); err != nil {
			return nil, err
		}
		slug := SlugFromFilename(entry.Name())
		posts = append(posts, Post{
			Slug:        slug,
			Title:       fm.Title,
			PublishedAt: fm.PublishedAt,
			Summary:     fm.Summary,
			Content:     body,
			Link:        "/blog/" + slug + "/",
		})
	}
	// ISO dates compare lexicographically, so a plain string comparison
	// orders chronologically.
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].PublishedAt != posts[j].PublishedAt {
			return posts[i].PublishedAt > posts[j].PublishedAt
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// LoadPage reads a standalone page document (about, uses) from dir. The file
// may use either the .md or .mdx extension.
func LoadPage(dir, name string) (Page, error) {
	path := filepath.Join(dir, name+".md")
	if _, err := os.Stat(path); err != nil {
		if alt := filepath.Join(dir, name+".mdx"); fileExists(alt) {
			path = alt
		}
	}
	fm, body, err := parseDocument(path)
	if err != nil {
		return Page{}, err
	}
	if fm.Title == "" {
		return Page{}, &MetadataError{File: path, Field: "title"}
	}
	if fm.Summary == "" {
		return Page{}, &MetadataError{File: path, Field: "summary"}
	}
	return Page{
		Name:    name,
		Title:   fm.Title,
		Summary: fm.Summary,
		Content: body,
	}, nil
}

// parseDocument splits a content file into its front-matter and Markdown body.
func parseDocument(path string) (frontMatter, string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return frontMatter{}, "", fmt.Errorf("read %s: %w", path, err)
	}
	text := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if !strings.HasPrefix(text, frontMatterDelim+"\n") {
		return frontMatter{}, "", &MetadataError{File: path, Field: "front-matter"}
	}
	rest := text[len(frontMatterDelim)+1:]
	end := strings.Index(rest, "\n"+frontMatterDelim)
	if end < 0 {
		return frontMatter{}, "", &MetadataError{File: path, Field: "front-matter"}
	}
	block := rest[:end]
	body := rest[end+len(frontMatterDelim)+1:]
	if i := strings.Index(body, "\n"); i >= 0 {
		body = body[i+1:]
	} else {
		body = ""
	}

	var fm frontMatter
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return frontMatter{}, "", &MetadataError{File: path, Field: "front-matter", Err: err}
	}
	return fm, strings.TrimLeft(body, "\n"), nil
}

func (fm frontMatter) validatePost(path string) error {
	if fm.Title == "" {
		return &MetadataError{File: path, Field: "title"}
	}
	if fm.PublishedAt == "" {
		return &MetadataError{File: path, Field: "publishedAt"}
	}
	if _, err := time.Parse("2006-01-02", fm.PublishedAt); err != nil {
		return &MetadataError{File: path, Field: "publishedAt", Err: err}
	}
	if fm.Summary == "" {
		return &MetadataError{File: path, Field: "summary"}
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}

// SlugFromFilename derives a post slug from its filename.
func SlugFromFilename(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
