// ABOUTME: Tests for the content extractors
// ABOUTME: Covers image priority, summary truncation, audio/duration heuristics, and YouTube id patterns

package extract

import (
	"strings"
	"testing"
)

func TestCoverImage(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"empty", "", ""},
		{
			"og image wins",
			`<meta property="og:image" content="https://a.example.com/og.png"><img src="https://a.example.com/img.png">`,
			"https://a.example.com/og.png",
		},
		{
			"twitter image before img",
			`<meta name="twitter:image" content="https://a.example.com/tw.png"><img src="https://a.example.com/img.png">`,
			"https://a.example.com/tw.png",
		},
		{
			"relative og image skipped",
			`<meta property="og:image" content="/og.png"><img src="https://a.example.com/first.webp">`,
			"https://a.example.com/first.webp",
		},
		{
			"first absolute img",
			`<p>hi</p><img src="https://a.example.com/one"><img src="https://a.example.com/two.jpg">`,
			"https://a.example.com/one",
		},
		{
			"scan when first img relative",
			`<img src="/local.jpg"><img src="https://a.example.com/pixel"><img src="https://a.example.com/photo.jpeg">`,
			"https://a.example.com/photo.jpeg",
		},
		{
			"image keyword",
			`<img src="data:abc"><img src="https://cdn.example.com/image?id=3">`,
			"https://cdn.example.com/image?id=3",
		},
		{"no images", `<p>plain text</p>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CoverImage(tt.html); got != tt.want {
				t.Errorf("CoverImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummary_Truncation(t *testing.T) {
	got := Summary("<p>"+strings.Repeat("a", 200)+"</p>", 150)
	want := strings.Repeat("a", 150) + "..."
	if got != want {
		t.Errorf("Summary() = %q (len %d), want %d a's plus ellipsis", got, len(got), 150)
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name string
		html string
		max  int
		want string
	}{
		{"empty", "", DefaultSummaryLength, ""},
		{"strips tags", "<p>Hello <b>world</b></p>", DefaultSummaryLength, "Hello world"},
		{"collapses whitespace", "<p>  a \n\n b\t c  </p>", DefaultSummaryLength, "a b c"},
		{"non-breaking spaces collapse", "<p>Hello&nbsp;&nbsp;&nbsp;world  again</p>", DefaultSummaryLength, "Hello world again"},
		{"double-escaped nbsp", "<p>a &amp;nbsp; b</p>", DefaultSummaryLength, "a b"},
		{"decodes entities", "<p>Fish &amp;amp; chips &amp;lt;3</p>", DefaultSummaryLength, "Fish & chips <3"},
		{"exact length untouched", "<p>abcde</p>", 5, "abcde"},
		{"rune aware", "<p>héllo wörld</p>", 5, "héllo..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.html, tt.max); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPodcastAudio(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"empty", "", ""},
		{"enclosure wins over link", `<enclosure url="a.mp3"/> <a href="b.mp3">b</a>`, "a.mp3"},
		{"audio tag", `<audio src='https://x.example.com/ep.m4a'></audio>`, "https://x.example.com/ep.m4a"},
		{"link", `<a href="https://x.example.com/ep.ogg">listen</a>`, "https://x.example.com/ep.ogg"},
		{"source tag", `<audio><source src="ep.flac"></audio>`, "ep.flac"},
		{"case insensitive", `<A HREF="EP.MP3">x</A>`, "EP.MP3"},
		{"non audio ignored", `<a href="https://x.example.com/page.html">x</a>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PodcastAudio(tt.html); got != tt.want {
				t.Errorf("PodcastAudio() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPodcastDuration(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"empty", "", ""},
		{"duration keyword", "Duration: 1:02:03", "1:02:03"},
		{"length keyword", "Episode length 45:10", "45:10"},
		{"time keyword", "Run time - 12:30", "12:30"},
		{"minutes suffix", "about 38:00 minutes of chat", "38:00"},
		{"no duration", "nothing here", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PodcastDuration(tt.html); got != tt.want {
				t.Errorf("PodcastDuration() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYouTubeVideoID(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ?autoplay=1", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/v/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://example.com/watch?v=dQw4w9WgXcQ", ""},
		{"https://youtu.be/short", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := YouTubeVideoID(tt.link); got != tt.want {
			t.Errorf("YouTubeVideoID(%q) = %q, want %q", tt.link, got, tt.want)
		}
	}
}

func TestExtractorsAreIdempotent(t *testing.T) {
	html := `<p>Duration: 10:00 <a href="ep.mp3">x</a></p><img src="https://a.example.com/c.png">`
	for i := 0; i < 3; i++ {
		if CoverImage(html) != "https://a.example.com/c.png" {
			t.Fatal("CoverImage changed between calls")
		}
		if Summary(html, 5) != "Durat..." {
			t.Fatalf("Summary changed between calls: %q", Summary(html, 5))
		}
		if PodcastAudio(html) != "ep.mp3" || PodcastDuration(html) != "10:00" {
			t.Fatal("media extractors changed between calls")
		}
	}
}
