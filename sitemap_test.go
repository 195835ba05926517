package website

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func recordXML(t *testing.T, fn func(c echo.Context) error) string {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := fn(c); err != nil {
		t.Fatalf("render failed: %v", err)
	}
	return rec.Body.String()
}

func TestRenderSitemap(t *testing.T) {
	a := &App{Config: SiteConfig{URL: "https://example.com"}}
	posts := []Post{
		{Slug: "b", PublishedAt: "2023-06-01"},
		{Slug: "a", PublishedAt: "2023-01-01"},
	}

	body := recordXML(t, func(c echo.Context) error {
		return a.renderSitemap(c, posts)
	})

	for _, want := range []string{
		"<loc>https://example.com</loc>",
		"<loc>https://example.com/about/</loc>",
		"<loc>https://example.com/uses/</loc>",
		"<loc>https://example.com/blog/b/</loc>",
		"<loc>https://example.com/blog/a/</loc>",
		"<lastmod>2023-06-01</lastmod>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %q in:\n%s", want, body)
		}
	}

	// Post entries keep the listing order: b (newer) before a.
	if strings.Index(body, "/blog/b/") > strings.Index(body, "/blog/a/") {
		t.Error("sitemap post order should follow the listing order")
	}
}

func TestRenderFeed(t *testing.T) {
	a := &App{Config: SiteConfig{
		Name:        "My Site",
		URL:         "https://example.com",
		Description: "notes on software",
	}}
	posts := []Post{
		{Slug: "hello", Title: "Hello", PublishedAt: "2023-06-01", Summary: "greeting"},
	}

	body := recordXML(t, func(c echo.Context) error {
		return a.renderFeed(c, posts)
	})

	for _, want := range []string{
		"<title>My Site</title>",
		"<description>notes on software</description>",
		"<link>https://example.com/blog/hello/</link>",
		"<description>greeting</description>",
		"Thu, 01 Jun 2023",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("feed missing %q in:\n%s", want, body)
		}
	}
}
