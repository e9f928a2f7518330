// ABOUTME: Tests for media classification, folder placement, and media tagging
// ABOUTME: Uses testify assertions over hand-built feeds

package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/feedboard/internal/models"
)

func TestIsYouTubeFeed(t *testing.T) {
	assert.True(t, IsYouTubeFeed("https://www.youtube.com/feeds/videos.xml?channel_id=UC123"))
	assert.True(t, IsYouTubeFeed("https://youtu.be/dQw4w9WgXcQ"))
	assert.True(t, IsYouTubeFeed("https://www.youtube.com/@somebody"))
	assert.False(t, IsYouTubeFeed("https://example.com/feed.xml"))
	assert.False(t, IsYouTubeFeed(""))
}

func TestClassify_YouTube(t *testing.T) {
	feed := &models.Feed{
		URL: "https://www.youtube.com/feeds/videos.xml?channel_id=UCxxxxxxxxxxxxxxxxxxxxxx",
		Items: []models.FeedItem{
			{GUID: "yt:1", Link: "https://www.youtube.com/watch?v=dQw4w9WgXcQ", CoverImage: "https://old.example.com/c.png"},
			{GUID: "yt:2", Link: "https://www.youtube.com/about", CoverImage: "https://old.example.com/keep.png"},
		},
	}

	Classify(feed)

	assert.Equal(t, models.MediaVideo, feed.MediaType)
	assert.Equal(t, models.MediaVideo, feed.Items[0].MediaType)
	assert.Equal(t, "dQw4w9WgXcQ", feed.Items[0].VideoID)
	assert.Equal(t, "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg", feed.Items[0].CoverImage)

	// no id: cover image untouched
	assert.Empty(t, feed.Items[1].VideoID)
	assert.Equal(t, "https://old.example.com/keep.png", feed.Items[1].CoverImage)
}

func TestClassify_Podcast(t *testing.T) {
	feed := &models.Feed{
		URL: "https://pod.example.com/rss",
		Items: []models.FeedItem{
			{GUID: "1", Description: `Duration: 42:00 <a href="https://pod.example.com/1.mp3">listen</a>`},
			{
				GUID:        "2",
				Description: "no audio hints at all",
				Duration:    "12:34",
				Enclosure:   &models.Enclosure{URL: "https://pod.example.com/2.m4a", Type: "audio/mp4"},
			},
		},
	}

	Classify(feed)

	assert.Equal(t, models.MediaPodcast, feed.MediaType)
	assert.Equal(t, "https://pod.example.com/1.mp3", feed.Items[0].AudioURL)
	assert.Equal(t, "42:00", feed.Items[0].Duration)

	// falls back to the enclosure and the iTunes duration
	assert.Equal(t, models.MediaPodcast, feed.Items[1].MediaType)
	assert.Equal(t, "https://pod.example.com/2.m4a", feed.Items[1].AudioURL)
	assert.Equal(t, "12:34", feed.Items[1].Duration)
}

func TestClassify_Article(t *testing.T) {
	feed := &models.Feed{
		URL: "https://blog.example.com/feed",
		Items: []models.FeedItem{
			{GUID: "1", Description: "<p>An essay about gardening.</p>"},
		},
	}

	Classify(feed)

	assert.Equal(t, models.MediaArticle, feed.MediaType)
	assert.Equal(t, models.MediaArticle, feed.Items[0].MediaType)
}

func TestIsPodcastFeed_OnlyFirstThreeItems(t *testing.T) {
	items := []models.FeedItem{
		{Description: "plain"},
		{Description: "plain"},
		{Description: "plain"},
		{Description: "new podcast episode"},
	}
	assert.False(t, IsPodcastFeed(items))

	items[1].Description = "Listen to the PODCAST"
	assert.True(t, IsPodcastFeed(items))
}

func TestIsPodcastFeed_ParseSignal(t *testing.T) {
	assert.True(t, IsPodcastFeed([]models.FeedItem{{MediaType: models.MediaPodcast}}))
	assert.True(t, IsPodcastFeed([]models.FeedItem{{Enclosure: &models.Enclosure{URL: "x", Type: "audio/mpeg"}}}))
	assert.False(t, IsPodcastFeed(nil))
}

func TestApplyPlacement(t *testing.T) {
	settings := models.DefaultCollection().Media

	video := &models.Feed{MediaType: models.MediaVideo, Folder: models.DefaultFolder}
	ApplyPlacement(video, false, settings)
	assert.Equal(t, "Videos", video.Folder)

	podcast := &models.Feed{MediaType: models.MediaPodcast, Folder: models.DefaultFolder}
	ApplyPlacement(podcast, false, settings)
	assert.Equal(t, "Podcasts", podcast.Folder)

	placed := &models.Feed{MediaType: models.MediaVideo, Folder: "Music"}
	ApplyPlacement(placed, true, settings)
	assert.Equal(t, "Music", placed.Folder)

	settings.AutoDetectMediaType = false
	off := &models.Feed{MediaType: models.MediaVideo, Folder: models.DefaultFolder}
	ApplyPlacement(off, false, settings)
	assert.Equal(t, models.DefaultFolder, off.Folder)
}

func TestApplyMediaTags(t *testing.T) {
	tags := []models.Tag{{Name: "YouTube", Color: "#ff0000"}, {Name: "Podcast", Color: "#8e44ad"}}

	feed := &models.Feed{
		MediaType: models.MediaVideo,
		Items: []models.FeedItem{
			{GUID: "1"},
			{GUID: "2", Tags: []models.Tag{{Name: "youtube", Color: "#000"}}},
		},
	}
	ApplyMediaTags(feed, tags)

	require.Len(t, feed.Items[0].Tags, 1)
	assert.Equal(t, "YouTube", feed.Items[0].Tags[0].Name)
	assert.Equal(t, "#ff0000", feed.Items[0].Tags[0].Color)
	// existing tag is not duplicated
	require.Len(t, feed.Items[1].Tags, 1)
	assert.Equal(t, "#000", feed.Items[1].Tags[0].Color)

	// tags are copies
	feed.Items[0].Tags[0].Color = "#123456"
	assert.Equal(t, "#ff0000", tags[0].Color)
}

func TestApplyMediaTags_NoOp(t *testing.T) {
	article := &models.Feed{MediaType: models.MediaArticle, Items: []models.FeedItem{{GUID: "1"}}}
	ApplyMediaTags(article, []models.Tag{{Name: "youtube"}})
	assert.Empty(t, article.Items[0].Tags)

	undefined := &models.Feed{MediaType: models.MediaPodcast, Items: []models.FeedItem{{GUID: "1"}}}
	ApplyMediaTags(undefined, []models.Tag{{Name: "Important"}})
	assert.Empty(t, undefined.Items[0].Tags)
}
