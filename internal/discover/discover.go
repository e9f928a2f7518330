// ABOUTME: Feed discovery for turning a website URL into a subscribable feed URL
// ABOUTME: Checks the page itself, then its advertised alternate links, then guessed feed paths

package discover

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/harper/feedboard/internal/parse"
)

// Fetcher retrieves a URL as text. *fetch.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

var (
	ErrNoFeedFound = errors.New("no RSS/Atom feed found at URL")
	ErrInvalidURL  = errors.New("invalid URL")
)

// guessPaths are tried under the page's directory and under the site root.
var guessPaths = []string{
	"feed.xml",
	"feed",
	"rss.xml",
	"rss",
	"atom.xml",
	"atom",
	"index.xml",
	"feed/rss",
	"feed/atom",
	"feeds/posts/default",
}

// maxGuessDepth bounds how many parent directories are probed.
const maxGuessDepth = 2

// Lower rank is tried first.
var feedTypes = map[string]int{
	"application/rss+xml":   0,
	"application/atom+xml":  0,
	"application/rdf+xml":   1,
	"application/feed+json": 1,
	"application/xml":       2,
	"text/xml":              2,
}

// DiscoveredFeed is a verified feed URL.
type DiscoveredFeed struct {
	URL   string
	Title string
}

// Candidate is a feed URL advertised by a page's <link> elements.
type Candidate struct {
	URL   string
	Title string
	Type  string
	rank  int
}

// Discover resolves inputURL to a feed. The URL itself wins if it parses as a
// feed; otherwise advertised links are verified in rank order, then guessed
// paths. Failing to fetch inputURL is an error; failed candidates are skipped.
func Discover(ctx context.Context, fetcher Fetcher, inputURL string) (*DiscoveredFeed, error) {
	page, err := url.Parse(strings.TrimSpace(inputURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if page.Scheme == "" || page.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	body, err := fetcher.Fetch(ctx, page.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	if feed, ok := asFeed(page.String(), body); ok {
		return feed, nil
	}

	advertised, pageTitle := Advertised(body, page)
	seen := map[string]bool{page.String(): true}
	try := func(u, title string) (*DiscoveredFeed, bool) {
		if seen[u] {
			return nil, false
		}
		seen[u] = true
		b, err := fetcher.Fetch(ctx, u)
		if err != nil {
			return nil, false
		}
		feed, ok := asFeed(u, b)
		if ok && feed.Title == "" {
			feed.Title = title
		}
		return feed, ok
	}

	for _, c := range advertised {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		title := c.Title
		if title == "" {
			title = pageTitle
		}
		if feed, ok := try(c.URL, title); ok {
			return feed, nil
		}
	}

	for _, u := range guesses(page) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if feed, ok := try(u, pageTitle); ok {
			return feed, nil
		}
	}

	return nil, ErrNoFeedFound
}

// asFeed reports whether body parses as a feed.
func asFeed(feedURL, body string) (*DiscoveredFeed, bool) {
	parsed, err := parse.Parse([]byte(body))
	if err != nil {
		return nil, false
	}
	return &DiscoveredFeed{URL: feedURL, Title: parsed.Title}, true
}

// Advertised scans an HTML page for <link rel="alternate"> feed links,
// resolved against <base href> when present, and returns them best first
// along with the page <title>.
func Advertised(body string, page *url.URL) ([]Candidate, string) {
	var (
		cands []Candidate
		title string
		base  = page
	)

	z := html.NewTokenizer(strings.NewReader(body))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		name, hasAttr := z.TagName()
		switch string(name) {
		case "title":
			if title == "" && z.Next() == html.TextToken {
				title = strings.TrimSpace(string(z.Text()))
			}
		case "base":
			if href := attrs(z, hasAttr)["href"]; href != "" {
				if u, err := page.Parse(href); err == nil {
					base = u
				}
			}
		case "link":
			a := attrs(z, hasAttr)
			if c, ok := candidate(a, base); ok {
				cands = append(cands, c)
			}
		}
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].rank < cands[j].rank })
	return cands, title
}

// attrs collects tag attributes. Keys come back lowercased from the tokenizer.
func attrs(z *html.Tokenizer, more bool) map[string]string {
	out := make(map[string]string)
	for more {
		var k, v []byte
		k, v, more = z.TagAttr()
		out[string(k)] = string(v)
	}
	return out
}

func candidate(a map[string]string, base *url.URL) (Candidate, bool) {
	if !hasToken(a["rel"], "alternate") || a["href"] == "" {
		return Candidate{}, false
	}
	typ := strings.ToLower(strings.TrimSpace(a["type"]))
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = strings.TrimSpace(typ[:i])
	}
	rank, ok := feedTypes[typ]
	if !ok {
		return Candidate{}, false
	}
	u, err := base.Parse(strings.TrimSpace(a["href"]))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Candidate{}, false
	}
	return Candidate{URL: u.String(), Title: strings.TrimSpace(a["title"]), Type: typ, rank: rank}, true
}

// hasToken reports whether the space-separated rel value contains tok.
func hasToken(rel, tok string) bool {
	for _, f := range strings.Fields(rel) {
		if strings.EqualFold(f, tok) {
			return true
		}
	}
	return false
}

// guesses lists probe URLs under the page's directory and its parent, then
// the site root. For /blog/posts/ that is /blog/posts/feed.xml, /blog/feed.xml,
// and /feed.xml (each with every guess path).
func guesses(page *url.URL) []string {
	root := &url.URL{Scheme: page.Scheme, Host: page.Host}

	var dirs []string
	dir := page.Path
	if !strings.HasSuffix(dir, "/") {
		dir = path.Dir(dir)
	}
	dir = strings.TrimSuffix(dir, "/")
	for dir != "" && dir != "/" && dir != "." && len(dirs) < maxGuessDepth {
		dirs = append(dirs, dir)
		dir = path.Dir(dir)
	}
	dirs = append(dirs, "")

	var out []string
	for _, d := range dirs {
		for _, p := range guessPaths {
			out = append(out, root.String()+d+"/"+p)
		}
	}
	return out
}
