package website

// Post is a blog article loaded from the content directory. Posts are
// read-only at runtime: the only way to change one is to edit its file and
// redeploy.
type Post struct {
	Slug        string
	Title       string
	PublishedAt string // ISO date, "2006-01-02"
	Summary     string
	Content     string // raw Markdown body, everything after the front-matter
	Link        string
}

// Page is a standalone Markdown page such as About or Uses. Unlike a Post it
// carries no publication date and never appears in the blog listing.
type Page struct {
	Name    string
	Title   string
	Summary string
	Content string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
}
