// ABOUTME: Storage interface for persisting the feed collection
// ABOUTME: Backends load and save the whole collection: feeds, items with user state, tags, folders, settings

package storage

import (
	"context"
	"errors"

	"github.com/harper/feedboard/internal/models"
)

// Backend names accepted by config and the migrate command.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// ErrClosed is returned when a store is used after Close.
var ErrClosed = errors.New("store is closed")

// Store persists a models.Collection.
type Store interface {
	// Load returns the stored collection, or models.DefaultCollection()
	// when nothing has been saved yet.
	Load(ctx context.Context) (*models.Collection, error)

	// Save replaces the stored collection with c.
	Save(ctx context.Context, c *models.Collection) error

	// Close releases resources.
	Close() error
}

// normalize fills in zero-valued settings so a partially written or
// hand-edited store still yields a usable collection.
func normalize(c *models.Collection) *models.Collection {
	defaults := models.DefaultCollection()
	if c.Feeds == nil {
		c.Feeds = []models.Feed{}
	}
	if c.AvailableTags == nil {
		c.AvailableTags = defaults.AvailableTags
	}
	if c.Folders == nil {
		c.Folders = defaults.Folders
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = defaults.RefreshInterval
	}
	if c.MaxItems <= 0 {
		c.MaxItems = defaults.MaxItems
	}
	for i := range c.Feeds {
		for j := range c.Feeds[i].Items {
			if c.Feeds[i].Items[j].Tags == nil {
				c.Feeds[i].Items[j].Tags = []models.Tag{}
			}
		}
	}
	return c
}
