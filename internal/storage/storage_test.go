// ABOUTME: Shared contract tests run against every storage backend
// ABOUTME: Verifies defaults on first load, full round-trips of user state, and replacement semantics

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/feedboard/internal/models"
)

func backends(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		BackendYAML: func(t *testing.T) Store {
			s, err := NewYAMLStore(t.TempDir())
			require.NoError(t, err)
			return s
		},
		BackendSQLite: func(t *testing.T) Store {
			s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
			require.NoError(t, err)
			return s
		},
	}
}

// sampleCollection builds a collection exercising every persisted field.
func sampleCollection() *models.Collection {
	c := models.DefaultCollection()
	c.RefreshInterval = 15
	c.MaxItems = 50
	c.Media.DefaultPodcastFolder = "Shows"
	c.AddFolder("Tech/Go")

	pub := time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	c.Feeds = []models.Feed{
		{
			Title:       "Go Blog",
			URL:         "https://go.dev/blog/feed.atom",
			Folder:      "Tech/Go",
			MediaType:   models.MediaArticle,
			LastUpdated: updated,
			Items: []models.FeedItem{
				{
					Title: "Range over func", Link: "https://go.dev/blog/range-functions",
					Description: "<p>iterators</p>", Content: "<p>long</p>", PubDate: pub,
					GUID: "tag:go.dev,2024:range", FeedTitle: "Go Blog", FeedURL: "https://go.dev/blog/feed.atom",
					CoverImage: "https://go.dev/c.png", Summary: "iterators", Author: "Go Team",
					MediaType: models.MediaArticle, Read: true, Starred: true,
					Tags: []models.Tag{{Name: "Important", Color: "#e74c3c"}},
				},
				{Title: "Second", Link: "#", GUID: "", FeedURL: "https://go.dev/blog/feed.atom", Tags: []models.Tag{}},
			},
		},
		{
			Title:       "Pod",
			URL:         "https://pod.example.com/rss",
			Folder:      "Shows",
			MediaType:   models.MediaPodcast,
			LastUpdated: updated,
			Items: []models.FeedItem{
				{
					Title: "Ep 1", Link: "https://pod.example.com/1", GUID: "ep1", PubDate: pub,
					FeedTitle: "Pod", FeedURL: "https://pod.example.com/rss",
					MediaType: models.MediaPodcast, AudioURL: "https://pod.example.com/1.mp3",
					Duration: "31:00", Explicit: true, Image: "https://pod.example.com/i.jpg",
					Category: "Tech", EpisodeType: "full", Season: 2, Episode: 7,
					Enclosure: &models.Enclosure{URL: "https://pod.example.com/1.mp3", Type: "audio/mpeg", Length: "123"},
					Saved:     true,
					Tags:      []models.Tag{{Name: "Podcast", Color: "#8e44ad"}},
				},
			},
		},
	}
	return c
}

func TestStore_LoadEmptyReturnsDefaults(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			c, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.Equal(t, models.DefaultCollection(), c)
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			ctx := context.Background()

			want := sampleCollection()
			require.NoError(t, s.Save(ctx, want))

			got, err := s.Load(ctx)
			require.NoError(t, err)

			assert.Equal(t, want.AvailableTags, got.AvailableTags)
			assert.Equal(t, want.Folders, got.Folders)
			assert.Equal(t, want.Media, got.Media)
			assert.Equal(t, 15, got.RefreshInterval)
			assert.Equal(t, 50, got.MaxItems)

			require.Len(t, got.Feeds, 2)
			for i := range want.Feeds {
				wf, gf := want.Feeds[i], got.Feeds[i]
				assert.Equal(t, wf.URL, gf.URL)
				assert.Equal(t, wf.Title, gf.Title)
				assert.Equal(t, wf.Folder, gf.Folder)
				assert.Equal(t, wf.MediaType, gf.MediaType)
				assert.True(t, wf.LastUpdated.Equal(gf.LastUpdated), "last updated %v vs %v", wf.LastUpdated, gf.LastUpdated)

				require.Len(t, gf.Items, len(wf.Items))
				for j := range wf.Items {
					wi, gi := wf.Items[j], gf.Items[j]
					assert.True(t, wi.PubDate.Equal(gi.PubDate), "pub date %v vs %v", wi.PubDate, gi.PubDate)
					wi.PubDate, gi.PubDate = time.Time{}, time.Time{}
					assert.Equal(t, wi, gi)
				}
			}
		})
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()
			ctx := context.Background()

			c := sampleCollection()
			require.NoError(t, s.Save(ctx, c))

			require.NoError(t, c.RemoveFeed("https://pod.example.com/rss"))
			c.Feeds[0].Items = c.Feeds[0].Items[:1]
			require.NoError(t, s.Save(ctx, c))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got.Feeds, 1)
			assert.Len(t, got.Feeds[0].Items, 1)
		})
	}
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := NewSQLiteStore(DefaultSQLitePath(dir))
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleCollection()))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(DefaultSQLitePath(dir))
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got.Feeds, 2)
	assert.True(t, got.Feeds[0].Items[0].Read)
}
