// ABOUTME: Item queries over a Collection: filtered newest-first listings and bulk read marking
// ABOUTME: Backs both the CLI list command and the MCP list_items tool

package models

import (
	"sort"
	"strings"
	"time"
)

// ItemFilter narrows an item listing. Zero values mean "no filter".
type ItemFilter struct {
	UnreadOnly bool
	Starred    bool
	Saved      bool
	Tag        string
	FeedURL    string
	Folder     string // matches the folder and any of its subfolders
	Media      MediaType
	Since      *time.Time // PubDate >= Since
	Until      *time.Time // PubDate < Until
	Limit      int        // <= 0 means unlimited
	Offset     int
}

// Matches reports whether item, which belongs to feed, passes the filter.
func (f ItemFilter) Matches(feed *Feed, item *FeedItem) bool {
	if f.UnreadOnly && item.Read {
		return false
	}
	if f.Starred && !item.Starred {
		return false
	}
	if f.Saved && !item.Saved {
		return false
	}
	if f.Tag != "" {
		if _, ok := item.MatchTag(f.Tag); !ok {
			return false
		}
	}
	if f.FeedURL != "" && feed.URL != f.FeedURL {
		return false
	}
	if f.Folder != "" {
		folder := feed.FolderOrDefault()
		if folder != f.Folder && !strings.HasPrefix(folder, f.Folder+"/") {
			return false
		}
	}
	if f.Media != "" && itemMedia(feed, item) != f.Media {
		return false
	}
	if f.Since != nil && item.PubDate.Before(*f.Since) {
		return false
	}
	if f.Until != nil && !item.PubDate.Before(*f.Until) {
		return false
	}
	return true
}

func itemMedia(feed *Feed, item *FeedItem) MediaType {
	if item.MediaType != "" {
		return item.MediaType
	}
	if feed.MediaType != "" {
		return feed.MediaType
	}
	return MediaArticle
}

// Items returns pointers to matching items across all feeds, newest first.
// Items with equal dates keep collection order.
func (c *Collection) Items(filter ItemFilter) []*FeedItem {
	var out []*FeedItem
	for fi := range c.Feeds {
		feed := &c.Feeds[fi]
		for ii := range feed.Items {
			if filter.Matches(feed, &feed.Items[ii]) {
				out = append(out, &feed.Items[ii])
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PubDate.After(out[j].PubDate)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

// MarkReadBefore marks every unread item published before cutoff as read and
// returns how many changed.
func (c *Collection) MarkReadBefore(cutoff time.Time) int {
	n := 0
	for fi := range c.Feeds {
		items := c.Feeds[fi].Items
		for ii := range items {
			if !items[ii].Read && items[ii].PubDate.Before(cutoff) {
				items[ii].MarkRead()
				n++
			}
		}
	}
	return n
}

// UnreadCount counts unread items across the collection.
func (c *Collection) UnreadCount() int {
	n := 0
	for i := range c.Feeds {
		n += c.Feeds[i].UnreadCount()
	}
	return n
}
