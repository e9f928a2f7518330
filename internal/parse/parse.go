// ABOUTME: RSS/Atom/JSON feed parsing using gofeed library
// ABOUTME: Normalizes every source format into RawFeed/RawItem with podcast metadata from iTunes extensions

package parse

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/harper/feedboard/internal/models"
)

const (
	DefaultTitle = "No title"
	DefaultLink  = "#"
)

// ParseError reports a document that could not be parsed as any feed format.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse feed: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RawFeed is the format-independent result of parsing one document.
type RawFeed struct {
	Title  string
	Author string
	Image  string
	// Podcast is the first-pass podcast signal: feed-level itunes:author,
	// any audio enclosure, or any item carrying an iTunes duration.
	Podcast bool
	Items   []RawItem
}

// RawItem is a normalized entry. Podcast is nil unless the entry carries iTunes metadata.
type RawItem struct {
	GUID        string
	Title       string
	Link        string
	Description string
	Content     string
	Author      string
	PubDate     time.Time
	Categories  []string
	Image       string
	Enclosure   *models.Enclosure
	Podcast     *PodcastInfo
}

// PodcastInfo carries iTunes item extensions.
type PodcastInfo struct {
	Duration    string
	Explicit    bool
	Image       string
	Category    string
	EpisodeType string
	Season      int
	Episode     int
}

// Body returns the richest HTML available for extraction: content, else description.
func (i RawItem) Body() string {
	if i.Content != "" {
		return i.Content
	}
	return i.Description
}

// Parse parses feed data using the current time for undated entries.
func Parse(data []byte) (*RawFeed, error) {
	return ParseAt(data, time.Now())
}

// ParseAt parses RSS, Atom, or JSON feed data into a RawFeed.
// Entries without a publish or update date are stamped with now.
func ParseAt(data []byte, now time.Time) (*RawFeed, error) {
	if strings.TrimSpace(string(data)) == "" {
		return nil, &ParseError{Err: errors.New("empty document")}
	}

	parser := gofeed.NewParser()
	feed, err := parser.ParseString(string(data))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	raw := &RawFeed{
		Title: strings.TrimSpace(feed.Title),
		Items: make([]RawItem, 0, len(feed.Items)),
	}

	if feed.Author != nil {
		raw.Author = feed.Author.Name
	}
	if feed.ITunesExt != nil {
		if feed.ITunesExt.Author != "" {
			raw.Podcast = true
			if raw.Author == "" {
				raw.Author = feed.ITunesExt.Author
			}
		}
		if feed.ITunesExt.Image != "" {
			raw.Image = feed.ITunesExt.Image
		}
	}
	if raw.Image == "" && feed.Image != nil {
		raw.Image = feed.Image.URL
	}

	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		entry := convertItem(item, raw, now)
		if entry.Enclosure.IsAudio() || (entry.Podcast != nil && entry.Podcast.Duration != "") {
			raw.Podcast = true
		}
		raw.Items = append(raw.Items, entry)
	}

	return raw, nil
}

func convertItem(item *gofeed.Item, feed *RawFeed, now time.Time) RawItem {
	entry := RawItem{
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Description: item.Description,
		Content:     strings.TrimSpace(item.Content),
		Categories:  item.Categories,
		Author:      feed.Author,
		Image:       feed.Image,
	}

	// GUID falls back to the real link, never the placeholder
	entry.GUID = item.GUID
	if entry.GUID == "" {
		entry.GUID = entry.Link
	}

	if entry.Title == "" {
		entry.Title = DefaultTitle
	}
	if entry.Link == "" {
		entry.Link = DefaultLink
	}

	if item.Author != nil && item.Author.Name != "" {
		entry.Author = item.Author.Name
	} else if len(item.Authors) > 0 && item.Authors[0] != nil && item.Authors[0].Name != "" {
		entry.Author = item.Authors[0].Name
	}

	switch {
	case item.PublishedParsed != nil:
		entry.PubDate = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		entry.PubDate = *item.UpdatedParsed
	default:
		entry.PubDate = now
	}

	if item.Image != nil && item.Image.URL != "" {
		entry.Image = item.Image.URL
	}

	if len(item.Enclosures) > 0 && item.Enclosures[0] != nil {
		enc := item.Enclosures[0]
		entry.Enclosure = &models.Enclosure{
			URL:    enc.URL,
			Type:   enc.Type,
			Length: enc.Length,
		}
	}

	if item.ITunesExt != nil {
		entry.Podcast = podcastInfo(item.ITunesExt)
		if len(entry.Categories) > 0 {
			entry.Podcast.Category = entry.Categories[0]
		}
		if entry.Podcast.Image != "" {
			entry.Image = entry.Podcast.Image
		}
	}

	return entry
}

func podcastInfo(it *ext.ITunesItemExtension) *PodcastInfo {
	info := &PodcastInfo{
		Duration:    strings.TrimSpace(it.Duration),
		Explicit:    isExplicit(it.Explicit),
		Image:       it.Image,
		EpisodeType: it.EpisodeType,
		Season:      atoi(it.Season),
		Episode:     atoi(it.Episode),
	}
	if len(it.Keywords) > 0 {
		info.Category = strings.TrimSpace(strings.Split(it.Keywords, ",")[0])
	}
	return info
}

func isExplicit(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "explicit":
		return true
	}
	return false
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
