// ABOUTME: Refresh service that runs fetch, parse, extract, classify, and reconcile for each feed
// ABOUTME: Batch refresh is sequential and isolates failures so one bad feed never loses the others

package refresh

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/harper/feedboard/internal/extract"
	"github.com/harper/feedboard/internal/media"
	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/parse"
	"github.com/harper/feedboard/internal/reconcile"
)

// ErrURLRequired is returned by ParseFeed for an empty URL.
var ErrURLRequired = errors.New("feed URL is required")

// Fetcher retrieves a feed document. *fetch.Fetcher satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Result describes the outcome of refreshing one feed in a batch.
type Result struct {
	URL      string
	Title    string
	Err      error
	NewItems int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithSummaryLength overrides extract.DefaultSummaryLength.
func WithSummaryLength(n int) Option {
	return func(s *Service) {
		s.summaryLength = n
	}
}

// Service refreshes feeds. It holds no per-feed state and may be reused.
type Service struct {
	fetcher       Fetcher
	media         models.MediaSettings
	tags          []models.Tag
	logger        *slog.Logger
	now           func() time.Time
	summaryLength int
}

// NewService builds a Service. A nil logger discards log output.
func NewService(fetcher Fetcher, settings models.MediaSettings, tags []models.Tag, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Service{
		fetcher:       fetcher,
		media:         settings,
		tags:          tags,
		logger:        logger,
		now:           time.Now,
		summaryLength: extract.DefaultSummaryLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseFeed runs the full pipeline for url and merges the result with
// existing, which may be nil for a new subscription. Fetch and parse
// failures are returned as *fetch.FetchError and *parse.ParseError.
func (s *Service) ParseFeed(ctx context.Context, url string, existing *models.Feed) (*models.Feed, error) {
	if url == "" {
		return nil, ErrURLRequired
	}

	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	now := s.now()
	raw, err := parse.ParseAt([]byte(body), now)
	if err != nil {
		return nil, err
	}

	fresh := s.normalize(url, raw)
	hadFolder := existing != nil && existing.Folder != ""

	if s.media.AutoDetectMediaType {
		media.Classify(&fresh)
	} else {
		fresh.MediaType = models.MediaArticle
		if raw.Podcast {
			fresh.MediaType = models.MediaPodcast
		}
		if existing != nil && existing.MediaType != "" {
			fresh.MediaType = existing.MediaType
		}
	}

	out := reconcile.Reconcile(existing, fresh, now)

	if s.media.AutoDetectMediaType {
		media.ApplyPlacement(&out, hadFolder, s.media)
		media.ApplyMediaTags(&out, s.tags)
	}

	s.logger.Debug("parsed feed", "url", url, "items", len(out.Items), "media", out.MediaType)
	return &out, nil
}

// normalize turns parser output into feed items with extracted cover images
// and summaries. Items start as podcast when the parser saw a podcast signal.
func (s *Service) normalize(url string, raw *parse.RawFeed) models.Feed {
	itemType := models.MediaArticle
	if raw.Podcast {
		itemType = models.MediaPodcast
	}

	feed := models.Feed{
		Title: raw.Title,
		URL:   url,
		Items: make([]models.FeedItem, 0, len(raw.Items)),
	}

	for _, ri := range raw.Items {
		html := ri.Body()
		item := models.FeedItem{
			Title:       ri.Title,
			Link:        ri.Link,
			Description: ri.Description,
			Content:     ri.Content,
			PubDate:     ri.PubDate,
			GUID:        ri.GUID,
			CoverImage:  extract.CoverImage(html),
			Summary:     extract.Summary(html, s.summaryLength),
			Author:      ri.Author,
			MediaType:   itemType,
			Image:       ri.Image,
			Enclosure:   ri.Enclosure,
		}
		if len(ri.Categories) > 0 {
			item.Category = ri.Categories[0]
		}
		if p := ri.Podcast; p != nil {
			item.Duration = p.Duration
			item.Explicit = p.Explicit
			item.EpisodeType = p.EpisodeType
			item.Season = p.Season
			item.Episode = p.Episode
			if p.Category != "" {
				item.Category = p.Category
			}
		}
		feed.Items = append(feed.Items, item)
	}
	return feed
}

// RefreshFeed re-parses feed. On any failure it logs a warning and returns
// feed unchanged.
func (s *Service) RefreshFeed(ctx context.Context, feed models.Feed) models.Feed {
	out, err := s.refreshOne(ctx, feed)
	if err != nil {
		s.logger.Warn("refresh failed, keeping previous items", "feed", feed.DisplayName(), "url", feed.URL, "error", err)
		return feed
	}
	return out
}

// RefreshAll refreshes feeds one at a time. The result has the same length
// and order as feeds; a feed that fails keeps its previous value.
func (s *Service) RefreshAll(ctx context.Context, feeds []models.Feed) []models.Feed {
	out, _ := s.RefreshAllWithReport(ctx, feeds)
	return out
}

// RefreshAllWithReport is RefreshAll plus a per-feed Result.
func (s *Service) RefreshAllWithReport(ctx context.Context, feeds []models.Feed) ([]models.Feed, []Result) {
	out := make([]models.Feed, len(feeds))
	results := make([]Result, len(feeds))

	for i, feed := range feeds {
		updated, err := s.refreshOne(ctx, feed)
		res := Result{URL: feed.URL, Title: feed.DisplayName(), Err: err}
		if err != nil {
			s.logger.Warn("refresh failed, keeping previous items", "feed", feed.DisplayName(), "url", feed.URL, "error", err)
			out[i] = feed
		} else {
			out[i] = updated
			res.Title = updated.DisplayName()
			res.NewItems = countNew(feed, updated)
		}
		results[i] = res
	}

	return out, results
}

// refreshOne converts a panic anywhere in the pipeline into an error for this feed.
func (s *Service) refreshOne(ctx context.Context, feed models.Feed) (updated models.Feed, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic refreshing %s: %v", feed.URL, r)
		}
	}()

	out, err := s.ParseFeed(ctx, feed.URL, &feed)
	if err != nil {
		return feed, err
	}
	return *out, nil
}

// Merge writes refreshed feeds into latest, a collection loaded after the
// batch finished. User state, folder, and title come from latest, so edits
// saved while the batch ran are kept. Failed feeds and feeds removed from
// latest are skipped. refreshed and results are index-aligned as returned
// by RefreshAllWithReport.
func Merge(latest *models.Collection, refreshed []models.Feed, results []Result) {
	for i := range refreshed {
		if i < len(results) && results[i].Err != nil {
			continue
		}
		idx := latest.FindFeed(refreshed[i].URL)
		if idx < 0 {
			continue
		}
		latest.Feeds[idx] = carryState(latest.Feeds[idx], refreshed[i])
	}
}

// carryState copies user-owned fields from saved onto a copy of refreshed.
// Items saved has never seen keep what the pipeline gave them, media tags included.
func carryState(saved, refreshed models.Feed) models.Feed {
	out := refreshed
	if saved.Title != "" {
		out.Title = saved.Title
	}
	if saved.Folder != "" {
		out.Folder = saved.Folder
	}

	prior := make(map[string]*models.FeedItem, len(saved.Items))
	for i := range saved.Items {
		if _, dup := prior[saved.Items[i].GUID]; !dup {
			prior[saved.Items[i].GUID] = &saved.Items[i]
		}
	}
	out.Items = make([]models.FeedItem, len(refreshed.Items))
	for i, item := range refreshed.Items {
		if old, ok := prior[item.GUID]; ok {
			item.Read = old.Read
			item.Starred = old.Starred
			item.Saved = old.Saved
			item.Tags = models.CopyTags(old.Tags)
		}
		item.FeedTitle = out.Title
		out.Items[i] = item
	}
	return out
}

func countNew(before, after models.Feed) int {
	seen := make(map[string]struct{}, len(before.Items))
	for _, item := range before.Items {
		seen[item.GUID] = struct{}{}
	}
	n := 0
	for _, item := range after.Items {
		if _, ok := seen[item.GUID]; !ok {
			n++
		}
	}
	return n
}
