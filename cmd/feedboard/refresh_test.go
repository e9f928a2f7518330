// ABOUTME: Tests for the refresh command against local TLS feed servers
// ABOUTME: Checks that edits saved by other processes and already-refreshed feeds survive a refresh

package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harper/feedboard/internal/fetch"
	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/storage"
)

const twoItemRSS = `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Local Feed</title>
<item><title>Item A</title><link>https://local.example/a</link><guid>a</guid><pubDate>Mon, 02 Mar 2026 09:00:00 GMT</pubDate></item>
<item><title>Item B</title><link>https://local.example/b</link><guid>b</guid><pubDate>Tue, 03 Mar 2026 09:00:00 GMT</pubDate></item>
</channel></rss>`

// seedFeeds writes a store holding one feed per URL, each with item "a" only.
func seedFeeds(t *testing.T, dir string, urls ...string) {
	t.Helper()
	s, err := storage.NewYAMLStore(dir)
	require.NoError(t, err)
	defer s.Close()

	c := models.DefaultCollection()
	for _, u := range urls {
		feed := models.NewFeed(u, "Local Feed", "")
		feed.Items = []models.FeedItem{
			{GUID: "a", Title: "Item A", Link: "https://local.example/a", PubDate: newer, FeedURL: u, FeedTitle: "Local Feed", Tags: []models.Tag{}},
		}
		c.Feeds = append(c.Feeds, *feed)
	}
	require.NoError(t, s.Save(context.Background(), c))
}

// editItem changes one item through a separate store handle, like another CLI or MCP process would.
func editItem(dir, feedURL, guid string, change func(*models.FeedItem)) error {
	s, err := storage.NewYAMLStore(dir)
	if err != nil {
		return err
	}
	defer s.Close()
	c, err := s.Load(context.Background())
	if err != nil {
		return err
	}
	_, item, err := c.FindItem(models.ItemID(feedURL, guid))
	if err != nil {
		return err
	}
	change(item)
	return s.Save(context.Background(), c)
}

func useServerFetcher(t *testing.T, srv *httptest.Server) {
	t.Helper()
	orig := newFetcher
	newFetcher = func() *fetch.Fetcher { return fetch.NewWithClient(srv.Client()) }
	t.Cleanup(func() { newFetcher = orig })
}

func TestCLI_RefreshKeepsEditsSavedDuringBatch(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()

	var feedURL string
	editErr := make(chan error, 1)
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		editErr <- editItem(dir, feedURL, "a", func(item *models.FeedItem) {
			item.MarkRead()
			item.SetStarred(true)
		})
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, twoItemRSS)
	}))
	t.Cleanup(srv.Close)
	feedURL = srv.URL + "/feed.xml"
	seedFeeds(t, dir, feedURL)
	useServerFetcher(t, srv)

	out, err := runCLI(t, dir, "refresh")
	require.NoError(t, err)
	require.NoError(t, <-editErr)
	assert.Contains(t, out, "1 new")

	c := loadStore(t, dir)
	feed, err := c.Feed(feedURL)
	require.NoError(t, err)
	require.Len(t, feed.Items, 2)

	a := feed.ItemByGUID("a")
	require.NotNil(t, a)
	assert.True(t, a.Read, "read flag saved mid-refresh was reverted")
	assert.True(t, a.Starred, "starred flag saved mid-refresh was reverted")

	b := feed.ItemByGUID("b")
	require.NotNil(t, b)
	assert.False(t, b.Read)
}

func TestRefreshOnce_ReloadsBeforeEachTick(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, twoItemRSS)
	}))
	t.Cleanup(srv.Close)
	feedURL := srv.URL + "/feed.xml"
	seedFeeds(t, dir, feedURL)
	useServerFetcher(t, srv)

	dataDirFlag = dir
	t.Cleanup(func() { dataDirFlag = "" })
	require.NoError(t, setup(context.Background()))
	t.Cleanup(func() { _ = teardown() })

	// saved after this process loaded its collection, between watch ticks
	require.NoError(t, editItem(dir, feedURL, "a", func(item *models.FeedItem) {
		item.MarkRead()
		item.SetStarred(true)
	}))

	var out bytes.Buffer
	require.NoError(t, refreshOnce(context.Background(), &out, ""))

	_, item, err := loadStore(t, dir).FindItem(models.ItemID(feedURL, "a"))
	require.NoError(t, err)
	assert.True(t, item.Read)
	assert.True(t, item.Starred)
	_, item, err = coll.FindItem(models.ItemID(feedURL, "a"))
	require.NoError(t, err)
	assert.True(t, item.Starred, "in-memory collection should follow the merged state")
}

func TestRefreshOnce_InterruptKeepsFinishedFeeds(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow.xml" {
			// Ctrl-C arrives while the second feed is still downloading
			cancel()
			<-r.Context().Done()
			return
		}
		fmt.Fprint(w, twoItemRSS)
	}))
	t.Cleanup(srv.Close)
	fastURL, slowURL := srv.URL+"/fast.xml", srv.URL+"/slow.xml"
	seedFeeds(t, dir, fastURL, slowURL)
	useServerFetcher(t, srv)

	dataDirFlag = dir
	t.Cleanup(func() { dataDirFlag = "" })
	require.NoError(t, setup(context.Background()))
	t.Cleanup(func() { _ = teardown() })

	var out bytes.Buffer
	require.NoError(t, refreshOnce(ctx, &out, ""))

	c := loadStore(t, dir)
	fast, err := c.Feed(fastURL)
	require.NoError(t, err)
	assert.Len(t, fast.Items, 2, "feed refreshed before the interrupt was not saved")
	slow, err := c.Feed(slowURL)
	require.NoError(t, err)
	assert.Len(t, slow.Items, 1)
}
