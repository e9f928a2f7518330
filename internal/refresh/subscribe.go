// ABOUTME: Subscription flow that turns user input into a parsed feed ready to add to a collection
// ABOUTME: Resolves YouTube channels, discovers feeds behind web pages, then runs ParseFeed

package refresh

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/feedboard/internal/discover"
	"github.com/harper/feedboard/internal/media"
	"github.com/harper/feedboard/internal/models"
)

// SubscribeOptions tunes Subscribe.
type SubscribeOptions struct {
	Title      string // overrides the feed's own title
	Folder     string // empty lets media placement or DefaultFolder decide
	YouTube    bool   // treat input as a YouTube channel even if ambiguous
	NoDiscover bool   // use input as the feed URL without probing
}

// ResolveURL maps user input to a feed URL. YouTube channels become their
// RSS URL; other pages go through feed discovery unless disabled.
func (s *Service) ResolveURL(ctx context.Context, input string, opts SubscribeOptions) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrURLRequired
	}

	if opts.YouTube || media.LooksLikeYouTube(input) {
		feedURL, err := media.ResolveYouTube(ctx, s.fetcher, input)
		if err == nil {
			return feedURL, nil
		}
		if opts.YouTube || !errors.Is(err, media.ErrNotYouTube) {
			return "", err
		}
	}

	if opts.NoDiscover {
		return input, nil
	}

	found, err := discover.Discover(ctx, s.fetcher, input)
	if err != nil {
		return "", fmt.Errorf("discover feed: %w", err)
	}
	s.logger.Debug("discovered feed", "input", input, "feed", found.URL)
	return found.URL, nil
}

// Subscribe resolves input and parses the feed behind it. The returned feed
// is not yet part of any collection.
func (s *Service) Subscribe(ctx context.Context, input string, opts SubscribeOptions) (*models.Feed, error) {
	feedURL, err := s.ResolveURL(ctx, input, opts)
	if err != nil {
		return nil, err
	}
	seed := models.NewFeed(feedURL, opts.Title, opts.Folder)
	return s.ParseFeed(ctx, feedURL, seed)
}
