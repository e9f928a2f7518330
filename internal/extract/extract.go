// ABOUTME: Pure content extractors that pull cover images, summaries, and media hints out of item HTML
// ABOUTME: Every function is total: malformed or empty input yields the empty string, never an error

package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultSummaryLength is the rune budget for item summaries.
const DefaultSummaryLength = 150

func parseHTML(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}

// CoverImage picks a representative image URL from HTML.
// Order: og:image, twitter:image, the first <img> if absolute, then any
// absolute <img> that looks like an image file.
func CoverImage(html string) string {
	if html == "" {
		return ""
	}
	doc := parseHTML(html)
	if doc == nil {
		return ""
	}

	if content, ok := doc.Find(`meta[property="og:image"]`).First().Attr("content"); ok && isAbsolute(content) {
		return content
	}
	if content, ok := doc.Find(`meta[name="twitter:image"]`).First().Attr("content"); ok && isAbsolute(content) {
		return content
	}

	imgs := doc.Find("img")
	if src, ok := imgs.First().Attr("src"); ok && isAbsolute(src) {
		return src
	}

	var found string
	imgs.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, ok := s.Attr("src")
		if ok && isAbsolute(src) && looksLikeImage(src) {
			found = src
			return false
		}
		return true
	})
	return found
}

func isAbsolute(u string) bool {
	return strings.HasPrefix(u, "http")
}

func looksLikeImage(src string) bool {
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif"} {
		if strings.HasSuffix(src, ext) {
			return true
		}
	}
	return strings.Contains(src, "image")
}

var (
	whitespace = regexp.MustCompile(`[\s\x{00A0}]+`)

	entityReplacer = strings.NewReplacer(
		"&nbsp;", " ",
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// Summary returns the plain text of html, whitespace-collapsed and trimmed,
// truncated to maxLength runes with "..." appended when it was longer.
func Summary(html string, maxLength int) string {
	if html == "" {
		return ""
	}
	doc := parseHTML(html)
	if doc == nil {
		return ""
	}

	// double-escaped entities survive the DOM pass
	text := entityReplacer.Replace(doc.Text())
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))

	if maxLength >= 0 && utf8.RuneCountInString(text) > maxLength {
		runes := []rune(text)
		text = string(runes[:maxLength]) + "..."
	}
	return text
}

const audioExt = `\.(?:mp3|m4a|wav|ogg|opus|aac|flac)`

// Checked in order; the first match wins.
var audioPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<enclosure[^>]*url=["']([^"']*` + audioExt + `)["']`),
	regexp.MustCompile(`(?i)<audio[^>]*src=["']([^"']*` + audioExt + `)["']`),
	regexp.MustCompile(`(?i)href=["']([^"']*` + audioExt + `)["']`),
	regexp.MustCompile(`(?i)<source[^>]*src=["']([^"']*` + audioExt + `)["']`),
}

// PodcastAudio finds an audio file URL referenced in html.
func PodcastAudio(html string) string {
	return firstCapture(audioPatterns, html)
}

var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)duration[^0-9]*(\d+:\d+(?::\d+)?)`),
	regexp.MustCompile(`(?i)length[^0-9]*(\d+:\d+(?::\d+)?)`),
	regexp.MustCompile(`(?i)time[^0-9]*(\d+:\d+(?::\d+)?)`),
	regexp.MustCompile(`(?i)(\d+:\d+(?::\d+)?)\s*(?:min|minutes|mins)`),
}

// PodcastDuration finds an "HH:MM(:SS)" duration mentioned in html.
func PodcastDuration(html string) string {
	return firstCapture(durationPatterns, html)
}

var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/|youtube\.com/v/|youtube\.com/e/|youtube\.com/user/[^/]+/u/\d+/videos/|youtube\.com/user/[^/]+/|youtube\.com/.*[?&]v=|youtube\.com/.*[?&]v%3D|youtube\.com/.+/|youtube\.com/(?:user|c)/[^/]+/#p/a/u/\d+/|youtube\.com/playlist\?list=|youtube\.com/user/[^/]+/videos/|youtube\.com/user/[^/]+/)([^"&?/\s]{11})`),
	regexp.MustCompile(`(?i)(?:youtube\.com/embed/|youtube\.com/v/|youtu\.be/)([^"&?/\s]{11})`),
}

// YouTubeVideoID extracts the 11-character video id from a YouTube link.
func YouTubeVideoID(link string) string {
	for _, re := range videoIDPatterns {
		m := re.FindStringSubmatch(link)
		if len(m) > 1 && utf8.RuneCountInString(m[1]) == 11 {
			return m[1]
		}
	}
	return ""
}

func firstCapture(patterns []*regexp.Regexp, s string) string {
	if s == "" {
		return ""
	}
	for _, re := range patterns {
		if m := re.FindStringSubmatch(s); len(m) > 1 && m[1] != "" {
			return m[1]
		}
	}
	return ""
}
