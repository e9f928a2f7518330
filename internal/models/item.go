// ABOUTME: FeedItem model for one article, video, or podcast entry within a feed
// ABOUTME: Separates content refreshed on every parse from user-owned read/starred/saved/tag state

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Enclosure is an attached binary resource, usually podcast audio.
type Enclosure struct {
	URL    string `json:"url" yaml:"url"`
	Type   string `json:"type,omitempty" yaml:"type,omitempty"`
	Length string `json:"length,omitempty" yaml:"length,omitempty"`
}

// IsAudio reports whether the enclosure carries an audio MIME type.
func (e *Enclosure) IsAudio() bool {
	return e != nil && strings.HasPrefix(strings.ToLower(e.Type), "audio/")
}

// FeedItem is one entry in a feed. GUID identifies it within its feed.
type FeedItem struct {
	// Replaced wholesale on every parse.
	Title       string     `json:"title" yaml:"title"`
	Link        string     `json:"link" yaml:"link"`
	Description string     `json:"description" yaml:"description"`
	Content     string     `json:"content,omitempty" yaml:"content,omitempty"`
	PubDate     time.Time  `json:"pubDate" yaml:"pub_date"`
	GUID        string     `json:"guid" yaml:"guid"`
	FeedTitle   string     `json:"feedTitle" yaml:"feed_title"`
	FeedURL     string     `json:"feedUrl" yaml:"feed_url"`
	CoverImage  string     `json:"coverImage" yaml:"cover_image"`
	Summary     string     `json:"summary,omitempty" yaml:"summary,omitempty"`
	Author      string     `json:"author,omitempty" yaml:"author,omitempty"`
	MediaType   MediaType  `json:"mediaType,omitempty" yaml:"media_type,omitempty"`
	VideoID     string     `json:"videoId,omitempty" yaml:"video_id,omitempty"`
	AudioURL    string     `json:"audioUrl,omitempty" yaml:"audio_url,omitempty"`
	Duration    string     `json:"duration,omitempty" yaml:"duration,omitempty"`
	Explicit    bool       `json:"explicit,omitempty" yaml:"explicit,omitempty"`
	Image       string     `json:"image,omitempty" yaml:"image,omitempty"`
	Category    string     `json:"category,omitempty" yaml:"category,omitempty"`
	EpisodeType string     `json:"episodeType,omitempty" yaml:"episode_type,omitempty"`
	Season      int        `json:"season,omitempty" yaml:"season,omitempty"`
	Episode     int        `json:"episode,omitempty" yaml:"episode,omitempty"`
	Enclosure   *Enclosure `json:"enclosure,omitempty" yaml:"enclosure,omitempty"`

	// User-owned; survives re-parsing.
	Read    bool  `json:"read" yaml:"read"`
	Starred bool  `json:"starred" yaml:"starred"`
	Saved   bool  `json:"saved" yaml:"saved"`
	Tags    []Tag `json:"tags" yaml:"tags"`
}

// ItemID derives the display identifier for an item. It is stable across
// refreshes because it depends only on the feed URL and the GUID.
func ItemID(feedURL, guid string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(feedURL+"#"+guid)).String()
}

// ID returns the item's display identifier.
func (i *FeedItem) ID() string {
	return ItemID(i.FeedURL, i.GUID)
}

// MarkRead marks the item as read.
func (i *FeedItem) MarkRead() {
	i.Read = true
}

// MarkUnread clears the read flag.
func (i *FeedItem) MarkUnread() {
	i.Read = false
}

// SetStarred sets the starred flag.
func (i *FeedItem) SetStarred(starred bool) {
	i.Starred = starred
}

// SetSaved sets the saved flag.
func (i *FeedItem) SetSaved(saved bool) {
	i.Saved = saved
}

// HasTag reports whether a tag named exactly name is attached.
func (i *FeedItem) HasTag(name string) bool {
	for _, t := range i.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// MatchTag returns the attached tag name equal to name ignoring case.
// User-facing lookups go through it; tag identity itself is exact.
func (i *FeedItem) MatchTag(name string) (string, bool) {
	for _, t := range i.Tags {
		if strings.EqualFold(t.Name, name) {
			return t.Name, true
		}
	}
	return "", false
}

// AddTag attaches a copy of tag unless one with the same name is present.
// Returns false if the tag was already attached.
func (i *FeedItem) AddTag(tag Tag) bool {
	if i.HasTag(tag.Name) {
		return false
	}
	i.Tags = append(i.Tags, tag)
	return true
}

// RemoveTag detaches the tag named exactly name. Returns false if it was not attached.
func (i *FeedItem) RemoveTag(name string) bool {
	for idx, t := range i.Tags {
		if t.Name == name {
			i.Tags = append(i.Tags[:idx:idx], i.Tags[idx+1:]...)
			return true
		}
	}
	return false
}

// CopyTags returns an independent copy of tags, never nil.
func CopyTags(tags []Tag) []Tag {
	out := make([]Tag, len(tags))
	copy(out, tags)
	return out
}
