// ABOUTME: Tests for item body preparation
// ABOUTME: Covers HTML detection, sanitizing hostile markup, and Markdown conversion with link resolution

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harper/feedboard/internal/models"
)

func TestIsHTML(t *testing.T) {
	tests := map[string]bool{
		"":                                             false,
		"Plain words only.":                            false,
		"5 < 10 and 10 > 5":                            false,
		"a <custom-tag> is not ours":                   false,
		"<p>para</p>":                                  true,
		"Line one<br/>Line two":                        true,
		`See <A HREF="https://x.example">x</A>`:        true,
		"<!DOCTYPE html><title>t</title>":              true,
		`<figure><img src="a.png"></figure>`:           true,
		"<iframe src=\"https://yt.example\"></iframe>": true,
	}
	for in, want := range tests {
		assert.Equal(t, want, IsHTML(in), "IsHTML(%q)", in)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		contains []string
		excludes []string
	}{
		{
			name:     "script and style removed",
			in:       `<p>Hello</p><script>alert("x")</script><style>p{}</style>`,
			contains: []string{"<p>Hello</p>"},
			excludes: []string{"<script", "alert", "<style"},
		},
		{
			name:     "handlers removed and links hardened",
			in:       `<a href="https://example.com" onclick="steal()">link</a>`,
			contains: []string{`href="https://example.com"`, `rel="nofollow noreferrer`, `target="_blank"`},
			excludes: []string{"onclick", "steal"},
		},
		{
			name:     "non-web schemes removed",
			in:       `<a href="javascript:alert(1)">bad</a><img src="data:image/png;base64,AAAA">`,
			contains: []string{"bad"},
			excludes: []string{"javascript:", "data:image"},
		},
		{
			name:     "images kept",
			in:       `<p><img src="https://example.com/a.png" alt="a"></p>`,
			contains: []string{`src="https://example.com/a.png"`},
		},
		{
			name:     "plain text untouched",
			in:       "5 < 10 & fine",
			contains: []string{"5 < 10 & fine"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Sanitize(tt.in)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestToMarkdown(t *testing.T) {
	t.Run("formatting", func(t *testing.T) {
		md := ToMarkdown(`<h2>Title</h2><p><strong>Bold</strong> and <em>it</em></p><ul><li>one</li><li>two</li></ul>`, "")
		assert.Contains(t, md, "## Title")
		assert.Contains(t, md, "**Bold**")
		assert.Contains(t, md, "- one")
		assert.NotContains(t, md, "<")
	})

	t.Run("root-relative links use the item's site", func(t *testing.T) {
		md := ToMarkdown(`<p><a href="/posts/2">next</a></p>`, "https://blog.example.com/posts/1?ref=rss")
		assert.Contains(t, md, "[next](https://blog.example.com/posts/2)")
	})

	t.Run("absolute links unchanged", func(t *testing.T) {
		md := ToMarkdown(`<a href="https://other.example/x">x</a>`, "https://blog.example.com/")
		assert.Contains(t, md, "(https://other.example/x)")
	})

	t.Run("plain text passes through", func(t *testing.T) {
		assert.Equal(t, "just text\n\n\n\nspaced", ToMarkdown("just text\n\n\n\nspaced", ""))
	})

	t.Run("blank runs collapsed", func(t *testing.T) {
		md := ToMarkdown("<p>a</p><br><br><br><br><p>b</p>", "")
		assert.NotContains(t, md, "\n\n\n")
	})
}

func TestSiteOf(t *testing.T) {
	assert.Equal(t, "https://example.com", siteOf("https://example.com/a/b?c=d"))
	assert.Equal(t, "http://example.com:8080", siteOf("http://example.com:8080/"))
	assert.Equal(t, "", siteOf("#"))
	assert.Equal(t, "", siteOf("mailto:someone@example.com"))
	assert.Equal(t, "", siteOf(""))
}

func TestForItem(t *testing.T) {
	item := &models.FeedItem{
		Link:        "https://blog.example.com/post",
		Description: "short",
		Content:     `<p>Read <strong>this</strong> <a href="/more">more</a></p><script>evil()</script>`,
	}
	md := ForItem(item)
	assert.Contains(t, md, "**this**")
	assert.Contains(t, md, "(https://blog.example.com/more)")
	assert.NotContains(t, md, "evil")

	item.Content = "   "
	assert.Equal(t, "short", ForItem(item))
	assert.Equal(t, "short", Body(item))
}
