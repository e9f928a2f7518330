// ABOUTME: Merges a freshly parsed feed into the stored one, carrying user state across by GUID
// ABOUTME: Produces a new Feed value and never mutates the stored feed or its items

package reconcile

import (
	"time"

	"github.com/harper/feedboard/internal/models"
)

// UnnamedFeed is the title used when neither the stored nor the parsed feed has one.
const UnnamedFeed = "Unnamed Feed"

// Reconcile builds the refreshed feed. existing may be nil for a new subscription.
//
// Items are matched to existing items by GUID. A match keeps its Read,
// Starred, Saved, and Tags; anything else starts unread and untagged.
// The item list is replaced wholesale, so items missing from fresh are dropped.
func Reconcile(existing *models.Feed, fresh models.Feed, now time.Time) models.Feed {
	out := models.Feed{
		Title:       fresh.Title,
		URL:         fresh.URL,
		Folder:      models.DefaultFolder,
		MediaType:   fresh.MediaType,
		LastUpdated: now,
	}

	var prior map[string]*models.FeedItem
	if existing != nil {
		if existing.URL != "" {
			out.URL = existing.URL
		}
		if existing.Title != "" {
			out.Title = existing.Title
		}
		if existing.Folder != "" {
			out.Folder = existing.Folder
		}
		if out.MediaType == "" {
			out.MediaType = existing.MediaType
		}

		prior = make(map[string]*models.FeedItem, len(existing.Items))
		for i := range existing.Items {
			// first occurrence wins for duplicate GUIDs
			if _, dup := prior[existing.Items[i].GUID]; !dup {
				prior[existing.Items[i].GUID] = &existing.Items[i]
			}
		}
	}
	if out.Title == "" {
		out.Title = UnnamedFeed
	}

	out.Items = make([]models.FeedItem, len(fresh.Items))
	for i, item := range fresh.Items {
		item.FeedTitle = out.Title
		item.FeedURL = out.URL

		if old, ok := prior[item.GUID]; ok {
			item.Read = old.Read
			item.Starred = old.Starred
			item.Saved = old.Saved
			item.Tags = models.CopyTags(old.Tags)
		} else {
			item.Read = false
			item.Starred = false
			item.Saved = false
			item.Tags = []models.Tag{}
		}
		out.Items[i] = item
	}

	return out
}
