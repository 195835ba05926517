// Package markdown renders the subset of Markdown used by the site's content
// documents into HTML, exposed as a templ component.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reImg         = regexp.MustCompile(`!\[(.*?)\]\((.*?)\)`)
	reOrderedItem = regexp.MustCompile(`^\d+\.\s`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(md string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		Render(&buf, md)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

type blockState int

const (
	blockNone blockState = iota
	blockPara
	blockList
	blockOrdered
	blockQuote
	blockCode
)

// Render writes the HTML representation of md to buf.
func Render(buf *bytes.Buffer, md string) {
	state := blockNone

	closeBlock := func() {
		switch state {
		case blockPara:
			buf.WriteString("</p>")
		case blockList:
			buf.WriteString("</ul>")
		case blockOrdered:
			buf.WriteString("</ol>")
		case blockQuote:
			buf.WriteString("</blockquote>")
		case blockCode:
			buf.WriteString("</code></pre>")
		}
		state = blockNone
	}

	for _, raw := range strings.Split(md, "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if state == blockCode {
				closeBlock()
			} else {
				closeBlock()
				lang := strings.TrimSpace(line[3:])
				if lang != "" {
					buf.WriteString(`<pre><code class="language-` + html.EscapeString(lang) + `">`)
				} else {
					buf.WriteString("<pre><code>")
				}
				state = blockCode
			}
			continue
		}

		if state == blockCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}

		if strings.TrimSpace(line) == "" {
			closeBlock()
			continue
		}

		switch {
		case line == "---" || strings.HasPrefix(line, "----"):
			closeBlock()
			buf.WriteString("<hr/>")
		case strings.HasPrefix(line, "#"):
			level := headingLevel(line)
			if level == 0 {
				// Not a heading after all, fall through to paragraph handling.
				writeParagraphLine(buf, &state, line, closeBlock)
				continue
			}
			closeBlock()
			tag := "h" + strconv.Itoa(level)
			buf.WriteString("<" + tag + ">")
			buf.WriteString(Inline(strings.TrimSpace(line[level+1:])))
			buf.WriteString("</" + tag + ">")
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			if state != blockList {
				closeBlock()
				buf.WriteString("<ul>")
				state = blockList
			}
			buf.WriteString("<li>")
			buf.WriteString(Inline(strings.TrimSpace(line[2:])))
			buf.WriteString("</li>")
		case reOrderedItem.MatchString(line):
			if state != blockOrdered {
				closeBlock()
				buf.WriteString("<ol>")
				state = blockOrdered
			}
			buf.WriteString("<li>")
			buf.WriteString(Inline(strings.TrimSpace(reOrderedItem.ReplaceAllString(line, ""))))
			buf.WriteString("</li>")
		case strings.HasPrefix(line, "> "):
			if state != blockQuote {
				closeBlock()
				buf.WriteString("<blockquote>")
				state = blockQuote
			}
			buf.WriteString(Inline(strings.TrimSpace(line[2:])))
			buf.WriteString(" ")
		default:
			writeParagraphLine(buf, &state, line, closeBlock)
		}
	}
	closeBlock()
}

func writeParagraphLine(buf *bytes.Buffer, state *blockState, line string, closeBlock func()) {
	if *state != blockPara {
		closeBlock()
		buf.WriteString("<p>")
		*state = blockPara
	} else {
		buf.WriteString(" ")
	}
	buf.WriteString(Inline(strings.TrimSpace(line)))
}

// headingLevel returns 1..4 for "# " through "#### " prefixes, 0 otherwise.
func headingLevel(line string) int {
	for level := 1; level <= 4; level++ {
		prefix := strings.Repeat("#", level) + " "
		if strings.HasPrefix(line, prefix) {
			return level
		}
	}
	return 0
}

// Inline applies inline formatting (code, images, links, bold, italic) to s.
// Inline code is substituted with placeholders first so that its content is
// never touched by the other rules.
func Inline(s string) string {
	escaped := html.EscapeString(s)

	var codeSpans []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		placeholder := "\x00" + strconv.Itoa(len(codeSpans)) + "\x00"
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return placeholder
	})

	escaped = reImg.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reImg.FindStringSubmatch(m)
		src := safeURL(match[2])
		if src == "" {
			return match[1]
		}
		return `<img alt="` + match[1] + `" src="` + src + `" loading="lazy" decoding="async"/>`
	})

	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := safeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `">` + match[1] + `</a>`
	})

	// Bold before italic so ** pairs are not consumed as two * pairs, and
	// only outside tags so URLs inside href attributes stay intact.
	escaped = outsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		return seg
	})

	for i, code := range codeSpans {
		escaped = strings.Replace(escaped, "\x00"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return escaped
}

// outsideTags applies fn only to text segments outside HTML tags.
func outsideTags(s string, fn func(string) string) string {
	var b strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			b.WriteString(fn(s))
			break
		}
		if lt > 0 {
			b.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			b.WriteString(s[lt:])
			break
		}
		b.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return b.String()
}

// safeURL validates a URL for use in an HTML attribute. Relative paths,
// fragments, and http(s)/mailto schemes are allowed; anything else is dropped.
func safeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	default:
		return ""
	}
}
