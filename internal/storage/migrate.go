// ABOUTME: Data migration between feedboard storage backends
// ABOUTME: Copies the full collection from a source store to a destination store

package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrDestinationNotEmpty is returned when the destination already holds feeds
// and the caller did not ask to overwrite it.
var ErrDestinationNotEmpty = errors.New("destination store already contains feeds")

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Feeds int
	Items int
}

// Migrate copies the collection in src to dst. Unless force is set, dst must
// not already contain any feeds.
func Migrate(ctx context.Context, src, dst Store, force bool) (*MigrateSummary, error) {
	c, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load source: %w", err)
	}

	if !force {
		existing, err := dst.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load destination: %w", err)
		}
		if len(existing.Feeds) > 0 {
			return nil, ErrDestinationNotEmpty
		}
	}

	if err := dst.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save destination: %w", err)
	}

	summary := &MigrateSummary{Feeds: len(c.Feeds)}
	for _, feed := range c.Feeds {
		summary.Items += len(feed.Items)
	}
	return summary, nil
}
