// ABOUTME: Collection model holding every subscribed feed plus the user's tags, folders, and media settings
// ABOUTME: Acts as the single mutable source of truth that storage backends load and save

package models

import (
	"errors"
	"fmt"
	"strings"
)

// MinPrefixLength is the shortest item ID prefix accepted by FindItem.
const MinPrefixLength = 6

var (
	ErrFeedNotFound = errors.New("feed not found")
	ErrFeedExists   = errors.New("feed already exists")
	ErrItemNotFound = errors.New("item not found")
	ErrTagNotFound  = errors.New("tag not found")
)

// Tag is a user label. Name is its identity; Color is display-only.
type Tag struct {
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
}

// Folder is a named grouping that may contain subfolders.
type Folder struct {
	Name       string   `json:"name" yaml:"name"`
	Subfolders []Folder `json:"subfolders" yaml:"subfolders"`
}

// Paths flattens the folder tree into "Parent/Child" strings, parents first.
func (f Folder) Paths() []string {
	paths := []string{f.Name}
	for _, sub := range f.Subfolders {
		for _, p := range sub.Paths() {
			paths = append(paths, f.Name+"/"+p)
		}
	}
	return paths
}

// MediaSettings controls media-type detection and default placement.
type MediaSettings struct {
	DefaultYouTubeFolder string `json:"defaultYouTubeFolder" yaml:"default_youtube_folder"`
	DefaultYouTubeTag    string `json:"defaultYouTubeTag" yaml:"default_youtube_tag"`
	DefaultPodcastFolder string `json:"defaultPodcastFolder" yaml:"default_podcast_folder"`
	DefaultPodcastTag    string `json:"defaultPodcastTag" yaml:"default_podcast_tag"`
	AutoDetectMediaType  bool   `json:"autoDetectMediaType" yaml:"auto_detect_media_type"`
}

// Collection is everything the application persists.
type Collection struct {
	Feeds           []Feed        `json:"feeds" yaml:"feeds"`
	AvailableTags   []Tag         `json:"availableTags" yaml:"available_tags"`
	Folders         []Folder      `json:"folders" yaml:"folders"`
	Media           MediaSettings `json:"media" yaml:"media"`
	RefreshInterval int           `json:"refreshInterval" yaml:"refresh_interval"` // minutes
	MaxItems        int           `json:"maxItems" yaml:"max_items"`
}

// DefaultCollection returns the settings a fresh install starts with.
func DefaultCollection() *Collection {
	return &Collection{
		Feeds: []Feed{},
		AvailableTags: []Tag{
			{Name: "Important", Color: "#e74c3c"},
			{Name: "Read Later", Color: "#3498db"},
			{Name: "Favorite", Color: "#f1c40f"},
			{Name: "YouTube", Color: "#ff0000"},
			{Name: "Podcast", Color: "#8e44ad"},
			{Name: "Saved", Color: "#16a085"},
		},
		Folders: []Folder{
			{Name: "Videos", Subfolders: []Folder{}},
			{Name: "Podcasts", Subfolders: []Folder{}},
		},
		Media: MediaSettings{
			DefaultYouTubeFolder: "Videos",
			DefaultYouTubeTag:    "youtube",
			DefaultPodcastFolder: "Podcasts",
			DefaultPodcastTag:    "podcast",
			AutoDetectMediaType:  true,
		},
		RefreshInterval: 30,
		MaxItems:        100,
	}
}

// FindFeed returns the index of the feed with url, or -1.
func (c *Collection) FindFeed(url string) int {
	for i := range c.Feeds {
		if c.Feeds[i].URL == url {
			return i
		}
	}
	return -1
}

// Feed returns a pointer to the feed with url.
func (c *Collection) Feed(url string) (*Feed, error) {
	idx := c.FindFeed(url)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrFeedNotFound, url)
	}
	return &c.Feeds[idx], nil
}

// AddFeed appends feed, rejecting duplicate URLs.
func (c *Collection) AddFeed(feed Feed) error {
	if c.FindFeed(feed.URL) >= 0 {
		return fmt.Errorf("%w: %s", ErrFeedExists, feed.URL)
	}
	c.Feeds = append(c.Feeds, feed)
	return nil
}

// ReplaceFeed swaps in feed at the position of the feed sharing its URL,
// appending it if no such feed exists.
func (c *Collection) ReplaceFeed(feed Feed) {
	if idx := c.FindFeed(feed.URL); idx >= 0 {
		c.Feeds[idx] = feed
		return
	}
	c.Feeds = append(c.Feeds, feed)
}

// RemoveFeed deletes the feed with url.
func (c *Collection) RemoveFeed(url string) error {
	idx := c.FindFeed(url)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrFeedNotFound, url)
	}
	c.Feeds = append(c.Feeds[:idx], c.Feeds[idx+1:]...)
	return nil
}

// FindItem resolves ref to an item by exact ID, falling back to a unique ID
// prefix of at least MinPrefixLength characters.
func (c *Collection) FindItem(ref string) (*Feed, *FeedItem, error) {
	var (
		matchFeed *Feed
		matchItem *FeedItem
		matches   int
	)
	for fi := range c.Feeds {
		feed := &c.Feeds[fi]
		for ii := range feed.Items {
			item := &feed.Items[ii]
			id := ItemID(feed.URL, item.GUID)
			if id == ref {
				return feed, item, nil
			}
			if len(ref) >= MinPrefixLength && strings.HasPrefix(id, ref) {
				matchFeed, matchItem = feed, item
				matches++
			}
		}
	}

	switch {
	case matches == 1:
		return matchFeed, matchItem, nil
	case matches > 1:
		return nil, nil, fmt.Errorf("ambiguous prefix %s matches %d items", ref, matches)
	case len(ref) < MinPrefixLength:
		return nil, nil, fmt.Errorf("%w: %s (prefix must be at least %d characters)", ErrItemNotFound, ref, MinPrefixLength)
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrItemNotFound, ref)
	}
}

// Tag looks up an available tag by name, ignoring case.
func (c *Collection) Tag(name string) (Tag, error) {
	for _, t := range c.AvailableTags {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	return Tag{}, fmt.Errorf("%w: %s", ErrTagNotFound, name)
}

// AddTag registers a new available tag. Returns false if the name is taken.
func (c *Collection) AddTag(tag Tag) bool {
	if _, err := c.Tag(tag.Name); err == nil {
		return false
	}
	c.AvailableTags = append(c.AvailableTags, tag)
	return true
}

// FolderPaths lists every configured folder path plus any folder referenced
// by a feed but missing from the tree.
func (c *Collection) FolderPaths() []string {
	seen := make(map[string]bool)
	var paths []string
	for _, f := range c.Folders {
		for _, p := range f.Paths() {
			if !seen[p] {
				seen[p] = true
				paths = append(paths, p)
			}
		}
	}
	for i := range c.Feeds {
		p := c.Feeds[i].FolderOrDefault()
		if !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths
}

// AddFolder creates the folder at path ("Parent/Child"), creating parents as
// needed. Returns false if the full path already existed.
func (c *Collection) AddFolder(path string) bool {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	level := &c.Folders
	created := false
	for _, name := range parts {
		var next *Folder
		for i := range *level {
			if (*level)[i].Name == name {
				next = &(*level)[i]
				break
			}
		}
		if next == nil {
			*level = append(*level, Folder{Name: name, Subfolders: []Folder{}})
			next = &(*level)[len(*level)-1]
			created = true
		}
		level = &next.Subfolders
	}
	return created
}
