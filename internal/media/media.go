// ABOUTME: Media classifier that decides whether a feed is articles, YouTube video, or podcast audio
// ABOUTME: Enriches items with video ids, thumbnails, audio URLs, and durations; routes folders and tags

package media

import (
	"strings"

	"github.com/harper/feedboard/internal/extract"
	"github.com/harper/feedboard/internal/models"
)

const (
	YouTubeTagName = "youtube"
	PodcastTagName = "podcast"

	// podcastSampleSize is how many leading items IsPodcastFeed inspects.
	podcastSampleSize = 3
)

var youTubePatterns = []string{
	"youtube.com/feeds/videos.xml",
	"youtube.com/channel/",
	"youtube.com/user/",
	"youtube.com/c/",
	"youtube.com/@",
	"youtube.com/watch",
	"youtu.be/",
}

var podcastHints = []string{
	"<enclosure",
	"audio/",
	".mp3",
	"podcast",
	"episode",
	"duration",
	"length",
}

// IsYouTubeFeed reports whether url points at YouTube.
func IsYouTubeFeed(url string) bool {
	if url == "" {
		return false
	}
	for _, p := range youTubePatterns {
		if strings.Contains(url, p) {
			return true
		}
	}
	return false
}

// IsPodcastFeed inspects the first few items for audio. An item counts when
// the parser already flagged it as podcast, it has an audio enclosure, or its
// description references audio or podcast vocabulary.
func IsPodcastFeed(items []models.FeedItem) bool {
	n := len(items)
	if n > podcastSampleSize {
		n = podcastSampleSize
	}
	for _, item := range items[:n] {
		if item.MediaType == models.MediaPodcast || item.Enclosure.IsAudio() {
			return true
		}
		if item.Description == "" {
			continue
		}
		if extract.PodcastAudio(item.Description) != "" {
			return true
		}
		desc := strings.ToLower(item.Description)
		for _, hint := range podcastHints {
			if strings.Contains(desc, hint) {
				return true
			}
		}
	}
	return false
}

// YouTubeThumbnail returns the medium-quality thumbnail URL for a video id.
func YouTubeThumbnail(videoID string) string {
	return "https://img.youtube.com/vi/" + videoID + "/mqdefault.jpg"
}

// Classify sets the media type of feed and every item, filling in
// video and podcast fields. YouTube URLs take precedence over podcast heuristics.
func Classify(feed *models.Feed) {
	switch {
	case IsYouTubeFeed(feed.URL):
		classifyVideo(feed)
	case IsPodcastFeed(feed.Items):
		classifyPodcast(feed)
	default:
		feed.MediaType = models.MediaArticle
		for i := range feed.Items {
			feed.Items[i].MediaType = models.MediaArticle
		}
	}
}

func classifyVideo(feed *models.Feed) {
	feed.MediaType = models.MediaVideo
	for i := range feed.Items {
		item := &feed.Items[i]
		item.MediaType = models.MediaVideo
		item.VideoID = extract.YouTubeVideoID(item.Link)
		if item.VideoID != "" {
			item.CoverImage = YouTubeThumbnail(item.VideoID)
		}
	}
}

func classifyPodcast(feed *models.Feed) {
	feed.MediaType = models.MediaPodcast
	for i := range feed.Items {
		item := &feed.Items[i]
		item.MediaType = models.MediaPodcast

		item.AudioURL = extract.PodcastAudio(item.Description)
		if item.AudioURL == "" && item.Enclosure.IsAudio() {
			item.AudioURL = item.Enclosure.URL
		}

		// Duration already holds the iTunes value, if any
		if d := extract.PodcastDuration(item.Description); d != "" {
			item.Duration = d
		}
	}
}

// ApplyPlacement moves a newly classified feed into the default video or
// podcast folder. Feeds that already had a folder are left alone.
func ApplyPlacement(feed *models.Feed, hadFolder bool, settings models.MediaSettings) {
	if !settings.AutoDetectMediaType || hadFolder {
		return
	}
	switch feed.MediaType {
	case models.MediaVideo:
		if settings.DefaultYouTubeFolder != "" {
			feed.Folder = settings.DefaultYouTubeFolder
		}
	case models.MediaPodcast:
		if settings.DefaultPodcastFolder != "" {
			feed.Folder = settings.DefaultPodcastFolder
		}
	}
}

// ApplyMediaTags gives every item of a video or podcast feed a copy of the
// matching media tag from availableTags. Article feeds, and feeds whose tag
// is not defined, are unchanged.
func ApplyMediaTags(feed *models.Feed, availableTags []models.Tag) {
	var name string
	switch feed.MediaType {
	case models.MediaVideo:
		name = YouTubeTagName
	case models.MediaPodcast:
		name = PodcastTagName
	default:
		return
	}

	var tag *models.Tag
	for i := range availableTags {
		if strings.EqualFold(availableTags[i].Name, name) {
			tag = &availableTags[i]
			break
		}
	}
	if tag == nil {
		return
	}

	for i := range feed.Items {
		if _, ok := feed.Items[i].MatchTag(tag.Name); !ok {
			feed.Items[i].AddTag(*tag)
		}
	}
}
