// Package views provides the site's templ components: layout, home, post,
// standalone pages, and error pages. Components are written in plain Go so
// the HTML stays reviewable next to the handlers that render it.
package views

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/website"
	"github.com/eringen/website/markdown"
)

// Renderer builds page components with site-wide settings baked in.
type Renderer struct {
	site website.SiteConfig
}

// New creates a Renderer for the given site configuration.
func New(site website.SiteConfig) *Renderer {
	return &Renderer{site: site}
}

// Funcs returns the ViewFuncs wiring for website.New.
func (r *Renderer) Funcs() website.ViewFuncs {
	return website.ViewFuncs{
		Home:        r.Home,
		Post:        r.Post,
		Page:        r.Page,
		NotFound:    r.NotFound,
		ServerError: r.ServerError,
	}
}

// Home renders the landing page with the ordered post list.
func (r *Renderer) Home(posts []website.Post) templ.Component {
	meta := website.PageMeta{
		Title:       r.site.Name,
		Description: r.site.Description,
		URL:         website.BuildURL(r.site.URL),
		OGType:      "website",
	}
	return r.layout(meta, website.WebsiteJsonLD(r.site), func(buf *bytes.Buffer) {
		buf.WriteString("<h1>" + html.EscapeString(r.site.Name) + "</h1>")
		if r.site.Description != "" {
			buf.WriteString("<p class=\"site-description\">" + html.EscapeString(r.site.Description) + "</p>")
		}
		buf.WriteString("<ul class=\"post-list\">")
		for _, p := range posts {
			buf.WriteString("<li>")
			buf.WriteString("<a href=\"" + html.EscapeString(p.Link) + "\">" + html.EscapeString(p.Title) + "</a>")
			buf.WriteString("<time datetime=\"" + html.EscapeString(p.PublishedAt) + "\">" + formatDate(p.PublishedAt) + "</time>")
			buf.WriteString("<p>" + html.EscapeString(p.Summary) + "</p>")
			buf.WriteString("</li>")
		}
		buf.WriteString("</ul>")
	})
}

// Post renders a single article. When viewsKnown is false the view count is
// omitted entirely rather than shown as zero.
func (r *Renderer) Post(post website.Post, views int64, viewsKnown bool) templ.Component {
	meta := website.PageMeta{
		Title:       post.Title + " — " + r.site.Name,
		Description: post.Summary,
		URL:         website.BuildURL(r.site.URL, "blog", post.Slug),
		OGType:      "article",
	}
	return r.layout(meta, website.BlogPostingJsonLD(post, r.site), func(buf *bytes.Buffer) {
		buf.WriteString("<article>")
		buf.WriteString("<h1>" + html.EscapeString(post.Title) + "</h1>")
		buf.WriteString("<div class=\"post-meta\">")
		buf.WriteString("<time datetime=\"" + html.EscapeString(post.PublishedAt) + "\">" + formatDate(post.PublishedAt) + "</time>")
		if viewsKnown {
			buf.WriteString("<span class=\"views\">" + formatViews(views) + "</span>")
		}
		buf.WriteString("</div>")
		markdown.Render(buf, post.Content)
		buf.WriteString("</article>")
	})
}

// Page renders a standalone page such as About or Uses.
func (r *Renderer) Page(page website.Page) templ.Component {
	meta := website.PageMeta{
		Title:       page.Title + " — " + r.site.Name,
		Description: page.Summary,
		URL:         website.BuildURL(r.site.URL, page.Name),
		OGType:      "website",
	}
	return r.layout(meta, "", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>" + html.EscapeString(page.Title) + "</h1>")
		markdown.Render(buf, page.Content)
	})
}

// NotFound renders the 404 page.
func (r *Renderer) NotFound() templ.Component {
	meta := website.PageMeta{Title: "Not found — " + r.site.Name, OGType: "website"}
	return r.layout(meta, "", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>404</h1><p>There is nothing here. <a href=\"/\">Back home.</a></p>")
	})
}

// ServerError renders the 500 page.
func (r *Renderer) ServerError() templ.Component {
	meta := website.PageMeta{Title: "Something broke — " + r.site.Name, OGType: "website"}
	return r.layout(meta, "", func(buf *bytes.Buffer) {
		buf.WriteString("<h1>500</h1><p>Something went wrong. Try again in a moment.</p>")
	})
}

// layout wraps body in the shared HTML shell: head metadata, nav, footer.
func (r *Renderer) layout(meta website.PageMeta, jsonLD string, body func(*bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		buf.WriteString("<!DOCTYPE html><html lang=\"en\"><head>")
		buf.WriteString("<meta charset=\"utf-8\"/>")
		buf.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\"/>")
		buf.WriteString("<title>" + html.EscapeString(meta.Title) + "</title>")
		if meta.Description != "" {
			buf.WriteString("<meta name=\"description\" content=\"" + html.EscapeString(meta.Description) + "\"/>")
			buf.WriteString("<meta property=\"og:description\" content=\"" + html.EscapeString(meta.Description) + "\"/>")
		}
		buf.WriteString("<meta property=\"og:title\" content=\"" + html.EscapeString(meta.Title) + "\"/>")
		if meta.OGType != "" {
			buf.WriteString("<meta property=\"og:type\" content=\"" + meta.OGType + "\"/>")
		}
		if meta.URL != "" {
			buf.WriteString("<link rel=\"canonical\" href=\"" + html.EscapeString(meta.URL) + "\"/>")
			buf.WriteString("<meta property=\"og:url\" content=\"" + html.EscapeString(meta.URL) + "\"/>")
		}
		buf.WriteString("<link rel=\"alternate\" type=\"application/rss+xml\" href=\"/feed.xml\"/>")
		buf.WriteString("<link rel=\"stylesheet\" href=\"/public/site.css\"/>")
		if jsonLD != "" {
			buf.WriteString("<script type=\"application/ld+json\">" + jsonLD + "</script>")
		}
		buf.WriteString("</head><body>")
		buf.WriteString("<nav><a href=\"/\">home</a> <a href=\"/about/\">about</a> <a href=\"/uses/\">uses</a></nav>")
		buf.WriteString("<main>")
		body(&buf)
		buf.WriteString("</main>")
		buf.WriteString("<footer><p>&copy; " + fmt.Sprint(time.Now().Year()) + " " + html.EscapeString(r.site.Author) + "</p></footer>")
		buf.WriteString("</body></html>")
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// formatDate turns an ISO date into the human form used across the site.
func formatDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("January 2, 2006")
}

func formatViews(n int64) string {
	if n == 1 {
		return "1 view"
	}
	return fmt.Sprintf("%d views", n)
}
