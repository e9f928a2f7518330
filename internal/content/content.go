// ABOUTME: Prepares untrusted feed item bodies for display in a terminal or an agent
// ABOUTME: Sanitizes HTML with bluemonday, then converts it to Markdown with links made absolute

package content

import (
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/harper/feedboard/internal/models"
)

// Elements whose presence marks a body as HTML rather than plain text.
var markupElements = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.P: true, atom.Div: true, atom.Span: true,
	atom.A: true, atom.Br: true, atom.Img: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true, atom.Ul: true,
	atom.Ol: true, atom.Li: true, atom.Table: true, atom.Strong: true, atom.Em: true,
	atom.B: true, atom.I: true, atom.Code: true, atom.Pre: true, atom.Blockquote: true,
	atom.Figure: true, atom.Audio: true, atom.Video: true, atom.Iframe: true,
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// policy keeps formatting, links, and images; scripts, styles, handlers,
// and non-web URL schemes are removed.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowURLSchemes("http", "https", "mailto")
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// IsHTML reports whether s contains at least one recognised HTML element.
// Comparisons like "5 < 10" are not tags and do not count.
func IsHTML(s string) bool {
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return false
		case html.DoctypeToken:
			return true
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			if markupElements[atom.Lookup(name)] {
				return true
			}
		}
	}
}

// Sanitize removes unsafe markup from feed HTML. Plain text passes through.
func Sanitize(s string) string {
	if !IsHTML(s) {
		return s
	}
	return strings.TrimSpace(policy.Sanitize(s))
}

// ToMarkdown converts HTML to Markdown. Root-relative links and images are
// resolved against base (any URL on the item's site). Plain text, and HTML
// the converter rejects, come back unchanged.
func ToMarkdown(s, base string) string {
	if !IsHTML(s) {
		return s
	}

	var opts []converter.ConvertOptionFunc
	if domain := siteOf(base); domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}
	md, err := htmltomarkdown.ConvertString(s, opts...)
	if err != nil {
		return s
	}
	return blankRuns.ReplaceAllString(strings.TrimSpace(md), "\n\n")
}

// siteOf returns scheme://host for an http(s) URL, or "".
func siteOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Body returns the richest text an item carries: full content, else description.
func Body(item *models.FeedItem) string {
	if strings.TrimSpace(item.Content) != "" {
		return item.Content
	}
	return item.Description
}

// ForItem sanitizes an item's body and converts it to Markdown.
func ForItem(item *models.FeedItem) string {
	return ToMarkdown(Sanitize(Body(item)), item.Link)
}
