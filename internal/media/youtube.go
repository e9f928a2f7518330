// ABOUTME: Converts YouTube channel ids, channel/user URLs, handles, and custom URLs into RSS feed URLs
// ABOUTME: Handles and custom URLs require fetching the channel page to find its channelId

package media

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const youTubeFeedBase = "https://www.youtube.com/feeds/videos.xml"

var (
	ErrNotYouTube      = errors.New("input is not a recognizable YouTube channel")
	ErrChannelNotFound = errors.New("could not find YouTube channel id")
)

var (
	bareChannelID  = regexp.MustCompile(`^UC[\w-]{22}$`)
	channelURL     = regexp.MustCompile(`youtube\.com/channel/(UC[\w-]{22})`)
	userURL        = regexp.MustCompile(`youtube\.com/user/([^/?#]+)`)
	customURL      = regexp.MustCompile(`youtube\.com/c/([^/?#]+)`)
	pageChannelID  = regexp.MustCompile(`channelId"?\s*:\s*"(UC[\w-]{22})"`)
	handleTerminal = regexp.MustCompile(`[?#/]`)
)

// PageFetcher retrieves a web page as text. *fetch.Fetcher satisfies it.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ChannelFeedURL returns the RSS feed URL for a channel id.
func ChannelFeedURL(channelID string) string {
	return youTubeFeedBase + "?channel_id=" + channelID
}

// UserFeedURL returns the RSS feed URL for a legacy username.
func UserFeedURL(username string) string {
	return youTubeFeedBase + "?user=" + username
}

// YouTubeFeedURL converts input to a YouTube RSS URL without network access.
// It understands bare channel ids, /channel/ URLs, /user/ URLs, and bare
// usernames. ok is false for anything else, including handles.
func YouTubeFeedURL(input string) (feedURL string, ok bool) {
	input = strings.TrimSpace(input)
	switch {
	case input == "":
		return "", false
	case strings.Contains(input, "youtube.com/feeds/videos.xml"):
		return input, true
	case bareChannelID.MatchString(input):
		return ChannelFeedURL(input), true
	case strings.Contains(input, "youtube.com/channel/"):
		if m := channelURL.FindStringSubmatch(input); m != nil {
			return ChannelFeedURL(m[1]), true
		}
		return "", false
	case strings.Contains(input, "@"):
		return "", false
	case strings.Contains(input, "youtube.com/user/"):
		if m := userURL.FindStringSubmatch(input); m != nil {
			return UserFeedURL(m[1]), true
		}
		return "", false
	case strings.Contains(input, "youtube.com/c/"):
		return "", false
	case !strings.ContainsAny(input, " \t\r\n/"):
		return UserFeedURL(input), true
	}
	return "", false
}

// ResolveYouTube is YouTubeFeedURL plus handle (@name) and custom (/c/name)
// resolution, which fetches the channel page and scans it for the channel id.
func ResolveYouTube(ctx context.Context, fetcher PageFetcher, input string) (string, error) {
	input = strings.TrimSpace(input)
	if feedURL, ok := YouTubeFeedURL(input); ok {
		return feedURL, nil
	}

	var page string
	switch {
	case strings.Contains(input, "@"):
		handle := ""
		if idx := strings.Index(input, "youtube.com/@"); idx >= 0 {
			rest := input[idx+len("youtube.com/@"):]
			handle = handleTerminal.Split(rest, 2)[0]
		} else if strings.HasPrefix(input, "@") {
			handle = input[1:]
		}
		if handle == "" {
			return "", ErrNotYouTube
		}
		page = "https://www.youtube.com/@" + handle
	case strings.Contains(input, "youtube.com/c/"):
		m := customURL.FindStringSubmatch(input)
		if m == nil {
			return "", ErrNotYouTube
		}
		page = "https://www.youtube.com/c/" + m[1]
	default:
		return "", ErrNotYouTube
	}

	body, err := fetcher.Fetch(ctx, page)
	if err != nil {
		return "", fmt.Errorf("fetch channel page: %w", err)
	}
	m := pageChannelID.FindStringSubmatch(body)
	if m == nil {
		return "", fmt.Errorf("%s: %w", page, ErrChannelNotFound)
	}
	return ChannelFeedURL(m[1]), nil
}

// LooksLikeYouTube reports whether input is plainly meant as a YouTube
// channel: a youtube.com URL, an @handle, or a bare channel id. Bare
// usernames are ambiguous and are not matched.
func LooksLikeYouTube(input string) bool {
	input = strings.TrimSpace(input)
	return strings.Contains(input, "youtube.com") ||
		strings.HasPrefix(input, "@") ||
		bareChannelID.MatchString(input)
}
