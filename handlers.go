package website

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Content.Posts()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(posts))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Content.Post(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}

	// Fire-and-forget: the increment is allowed to complete even if the
	// client abandons the request, so it is not tied to the request context.
	go a.recordView(slug)

	views, known := a.readViews(c.Request().Context(), slug)
	return Render(c, a.Views.Post(post, views, known))
}

// recordView increments the view counter for slug. Failures are logged and
// otherwise swallowed: the counter is best-effort and never fails a render.
func (a *App) recordView(slug string) {
	if err := a.Counter.Increment(context.Background(), slug); err != nil {
		a.Echo.Logger.Warnf("record view %s: %v", slug, err)
	}
}

// readViews returns the current count for slug and whether it is usable.
// On storage failure the page degrades to showing no count.
func (a *App) readViews(ctx context.Context, slug string) (int64, bool) {
	n, err := a.Counter.Count(ctx, slug)
	if err != nil {
		a.Echo.Logger.Warnf("read views %s: %v", slug, err)
		return 0, false
	}
	return n, true
}

func (a *App) handlePage(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := a.Content.Page(name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
			}
			return err
		}
		return Render(c, a.Views.Page(page))
	}
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Content.Posts()
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, err := a.Content.Posts()
	if err != nil {
		return err
	}
	return a.renderFeed(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.File(a.staticDir + "/robots.txt")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
