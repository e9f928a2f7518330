// ABOUTME: Feed model representing a subscribed RSS/Atom/YouTube/podcast source
// ABOUTME: Holds the ordered item list, folder placement, and derived media classification

package models

import (
	"time"
)

// DefaultFolder is where feeds without an explicit folder are filed.
const DefaultFolder = "Uncategorized"

// MediaType classifies a feed or an item.
type MediaType string

const (
	MediaArticle MediaType = "article"
	MediaVideo   MediaType = "video"
	MediaPodcast MediaType = "podcast"
)

// Feed represents one subscribed source. URL is unique within a Collection.
type Feed struct {
	Title       string     `json:"title" yaml:"title"`
	URL         string     `json:"url" yaml:"url"`
	Folder      string     `json:"folder" yaml:"folder"`
	Items       []FeedItem `json:"items" yaml:"items"`
	LastUpdated time.Time  `json:"lastUpdated" yaml:"last_updated"`
	MediaType   MediaType  `json:"mediaType,omitempty" yaml:"media_type,omitempty"`
}

// NewFeed creates an empty feed for url. The title falls back to the URL
// until the first successful fetch supplies one.
func NewFeed(url, title, folder string) *Feed {
	return &Feed{
		Title:  title,
		URL:    url,
		Folder: folder,
		Items:  []FeedItem{},
	}
}

// DisplayName returns the title, or the URL when no title is known.
func (f *Feed) DisplayName() string {
	if f.Title != "" {
		return f.Title
	}
	return f.URL
}

// FolderOrDefault returns the folder, routing empty values to DefaultFolder.
func (f *Feed) FolderOrDefault() string {
	if f.Folder == "" {
		return DefaultFolder
	}
	return f.Folder
}

// UnreadCount counts items not yet marked read.
func (f *Feed) UnreadCount() int {
	n := 0
	for i := range f.Items {
		if !f.Items[i].Read {
			n++
		}
	}
	return n
}

// ItemByGUID returns a pointer into Items for guid, or nil.
func (f *Feed) ItemByGUID(guid string) *FeedItem {
	for i := range f.Items {
		if f.Items[i].GUID == guid {
			return &f.Items[i]
		}
	}
	return nil
}
