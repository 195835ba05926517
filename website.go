// Package website is a small personal-site engine built with Go, Echo, and
// templ. It renders Markdown posts from a content directory, serves About
// and Uses pages, and keeps a best-effort per-post view counter in SQLite.
//
// Users provide their own templ components via the ViewFuncs struct; the
// engine owns routing, middleware, content loading, and the view counter.
package website

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets
// users own and customize all templates.
type ViewFuncs struct {
	Home        func(posts []Post) templ.Component
	Post        func(post Post, views int64, viewsKnown bool) templ.Component
	Page        func(page Page) templ.Component
	NotFound    func() templ.Component
	ServerError func() templ.Component
}

// App is the central application. It wires together the content cache, the
// view counter, handlers, middleware, and user-provided templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Content *ContentCache
	Counter *ViewStore
	Views   ViewFuncs

	customRoutes []func(*App)
	staticDir    string
}

// New creates a new App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the view store, warms the content cache, sets up
// middleware and routes, and starts the server. Content errors are fatal
// here: a malformed document should fail deployment, not silently drop a
// post at request time.
func (a *App) Start() error {
	counter, err := NewViewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("website: init view store: %w", err)
	}
	a.Counter = counter

	a.Content = NewContentCache(a.Config.ContentDir)
	if _, err := a.Content.Posts(); err != nil {
		return fmt.Errorf("website: load content: %w", err)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
	e.GET("/about/", a.handlePage("about"))
	e.GET("/uses/", a.handlePage("uses"))
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Counter != nil {
		return a.Counter.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("website: required environment variable %s is not set", key)
	}
	return v
}
