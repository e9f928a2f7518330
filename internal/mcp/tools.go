// ABOUTME: MCP tool definitions and handlers for feed and item operations
// ABOUTME: Provides tools for subscribing, refreshing, listing, reading, and updating per-item user state

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/feedboard/internal/content"
	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/refresh"
	"github.com/harper/feedboard/internal/timeutil"
)

// Type definitions for input/output structures

type FeedOutput struct {
	URL         string           `json:"url"`
	Title       string           `json:"title"`
	Folder      string           `json:"folder"`
	MediaType   models.MediaType `json:"media_type,omitempty"`
	LastUpdated *time.Time       `json:"last_updated,omitempty"`
	ItemCount   int              `json:"item_count"`
	UnreadCount int              `json:"unread_count"`
}

type ListFeedsOutput struct {
	Feeds   []FeedOutput `json:"feeds"`
	Count   int          `json:"count"`
	Folders []string     `json:"folders"`
}

type AddFeedInput struct {
	URL        string  `json:"url"`
	Title      *string `json:"title,omitempty"`
	Folder     *string `json:"folder,omitempty"`
	NoDiscover *bool   `json:"no_discover,omitempty"`
}

type RemoveFeedInput struct {
	URL string `json:"url"`
}

type RemoveFeedOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

type MoveFeedInput struct {
	URL    string `json:"url"`
	Folder string `json:"folder"`
}

type MoveFeedOutput struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	URL       string `json:"url"`
	OldFolder string `json:"old_folder"`
	NewFolder string `json:"new_folder"`
}

type RefreshFeedsInput struct {
	URL *string `json:"url,omitempty"`
}

type RefreshResult struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	NewItems int     `json:"new_items"`
	Error    *string `json:"error,omitempty"`
}

type RefreshFeedsOutput struct {
	Results     []RefreshResult `json:"results"`
	TotalFeeds  int             `json:"total_feeds"`
	TotalNew    int             `json:"total_new"`
	TotalErrors int             `json:"total_errors"`
}

type ListItemsInput struct {
	FeedURL    *string `json:"feed_url,omitempty"`
	Folder     *string `json:"folder,omitempty"`
	Tag        *string `json:"tag,omitempty"`
	Media      *string `json:"media,omitempty"`
	UnreadOnly *bool   `json:"unread_only,omitempty"`
	Starred    *bool   `json:"starred,omitempty"`
	Saved      *bool   `json:"saved,omitempty"`
	Since      *string `json:"since,omitempty"`
	Until      *string `json:"until,omitempty"`
	Limit      *int    `json:"limit,omitempty"`
	Offset     *int    `json:"offset,omitempty"`
}

type ItemOutput struct {
	ID          string           `json:"id"`
	FeedURL     string           `json:"feed_url"`
	FeedTitle   string           `json:"feed_title"`
	Title       string           `json:"title"`
	Link        string           `json:"link"`
	Author      string           `json:"author,omitempty"`
	PublishedAt time.Time        `json:"published_at"`
	Summary     string           `json:"summary,omitempty"`
	MediaType   models.MediaType `json:"media_type,omitempty"`
	VideoID     string           `json:"video_id,omitempty"`
	AudioURL    string           `json:"audio_url,omitempty"`
	Duration    string           `json:"duration,omitempty"`
	Read        bool             `json:"read"`
	Starred     bool             `json:"starred"`
	Saved       bool             `json:"saved"`
	Tags        []string         `json:"tags"`
}

type ListItemsOutput struct {
	Items   []ItemOutput   `json:"items"`
	Count   int            `json:"count"`
	Filters map[string]any `json:"filters"`
}

type GetItemInput struct {
	ItemID string `json:"item_id"`
}

type GetItemOutput struct {
	ItemOutput
	CoverImage string `json:"cover_image,omitempty"`
	Content    string `json:"content,omitempty"`
}

type UpdateItemInput struct {
	ItemID     string   `json:"item_id"`
	Read       *bool    `json:"read,omitempty"`
	Starred    *bool    `json:"starred,omitempty"`
	Saved      *bool    `json:"saved,omitempty"`
	AddTags    []string `json:"add_tags,omitempty"`
	RemoveTags []string `json:"remove_tags,omitempty"`
}

type MarkReadBeforeInput struct {
	Before string `json:"before"`
}

type MarkReadBeforeOutput struct {
	Count   int       `json:"count"`
	Before  time.Time `json:"before"`
	Message string    `json:"message"`
}

// Tool registration

func (s *Server) registerTools() {
	s.registerListFeedsTool()
	s.registerAddFeedTool()
	s.registerRemoveFeedTool()
	s.registerMoveFeedTool()
	s.registerRefreshFeedsTool()
	s.registerListItemsTool()
	s.registerGetItemTool()
	s.registerUpdateItemTool()
	s.registerMarkReadBeforeTool()
}

func (s *Server) registerListFeedsTool() {
	tool := mcp.Tool{
		Name:        "list_feeds",
		Description: "Retrieve all subscribed feeds (articles, YouTube channels, and podcasts) with their folder, detected media type, last refresh time, and unread counts. Also returns every known folder path.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListFeeds)
}

func (s *Server) registerAddFeedTool() {
	tool := mcp.Tool{
		Name:        "add_feed",
		Description: "Subscribe to a feed. Accepts a feed URL, a web page (the feed is discovered from its <link rel=\"alternate\"> tags or common paths), or a YouTube channel URL, @handle, or channel id. The feed is fetched immediately, so errors such as unreachable hosts or unparseable documents are reported here.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Feed URL, site URL, or YouTube channel. Example: 'https://example.com/feed.xml' or '@somechannel'",
				},
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Optional title overriding the one in the feed. Example: 'My Favorite Blog'",
				},
				"folder": map[string]interface{}{
					"type":        "string",
					"description": "Optional folder path. YouTube and podcast feeds default to the configured media folders, everything else to 'Uncategorized'. Example: 'Tech/Go'",
				},
				"no_discover": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, the url is used as the feed URL as-is without discovery. Default: false",
				},
			},
			Required: []string{"url"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleAddFeed)
}

func (s *Server) registerRemoveFeedTool() {
	tool := mcp.Tool{
		Name:        "remove_feed",
		Description: "Unsubscribe from a feed. The feed and all of its items, including read, starred, saved, and tag state, are deleted. This action cannot be undone.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "The feed URL to remove. Must match exactly. Example: 'https://example.com/feed.xml'",
				},
			},
			Required: []string{"url"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleRemoveFeed)
}

func (s *Server) registerMoveFeedTool() {
	tool := mcp.Tool{
		Name:        "move_feed",
		Description: "Move a feed to a different folder. Missing folders are created. Use an empty string to move the feed to 'Uncategorized'.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "The feed URL to move. Must match exactly. Example: 'https://example.com/feed.xml'",
				},
				"folder": map[string]interface{}{
					"type":        "string",
					"description": "Target folder path. Example: 'Tech/Go'",
				},
			},
			Required: []string{"url", "folder"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleMoveFeed)
}

func (s *Server) registerRefreshFeedsTool() {
	tool := mcp.Tool{
		Name:        "refresh_feeds",
		Description: "Fetch fresh items for one feed or for every feed. Feeds are refreshed one at a time; a feed that fails keeps its previous items and the error is reported in its result. Read, starred, saved, and tag state on existing items is preserved. Items that disappeared from the source document are dropped.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"url": map[string]interface{}{
					"type":        "string",
					"description": "Optional feed URL to refresh only that feed. If omitted, refreshes all feeds. Example: 'https://example.com/feed.xml'",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleRefreshFeeds)
}

func (s *Server) registerListItemsTool() {
	tool := mcp.Tool{
		Name:        "list_items",
		Description: "Retrieve items across all feeds, newest first, with optional filters. Use 'since' with 'today', 'yesterday', 'week', 'month', or YYYY-MM-DD for recent items. Filters can be combined. Use get_item to read an item's full content.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"feed_url": map[string]interface{}{
					"type":        "string",
					"description": "Only items from this feed. Example: 'https://example.com/feed.xml'",
				},
				"folder": map[string]interface{}{
					"type":        "string",
					"description": "Only items from feeds in this folder or its subfolders. Example: 'Tech'",
				},
				"tag": map[string]interface{}{
					"type":        "string",
					"description": "Only items carrying this tag (case-insensitive). Example: 'Read Later'",
				},
				"media": map[string]interface{}{
					"type":        "string",
					"description": "Only items of this media type: 'article', 'video', or 'podcast'",
				},
				"unread_only": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, returns only unread items",
				},
				"starred": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, returns only starred items",
				},
				"saved": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, returns only saved items",
				},
				"since": map[string]interface{}{
					"type":        "string",
					"description": "Only items published on or after this date. Accepts 'today', 'yesterday', 'week', 'month', YYYY-MM-DD, or RFC3339",
				},
				"until": map[string]interface{}{
					"type":        "string",
					"description": "Only items published before this date. Same formats as 'since'",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of items. Defaults to the collection's max items setting. Example: 50",
				},
				"offset": map[string]interface{}{
					"type":        "integer",
					"description": "Number of items to skip for pagination. Example: 20",
				},
			},
		},
	}
	s.mcpServer.AddTool(tool, s.handleListItems)
}

func (s *Server) registerGetItemTool() {
	tool := mcp.Tool{
		Name:        "get_item",
		Description: "Get the full details of one item including its content, sanitized and converted from HTML to Markdown. Accepts a full item ID or a unique prefix of at least 6 characters.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The item ID or ID prefix. Example: '3f2a9c1e'",
				},
			},
			Required: []string{"item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleGetItem)
}

func (s *Server) registerUpdateItemTool() {
	tool := mcp.Tool{
		Name:        "update_item",
		Description: "Change the user state of one item: read, starred, saved, and tags. Only the fields you pass are changed. Tags must already exist in the collection's tag list. This state survives feed refreshes.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"item_id": map[string]interface{}{
					"type":        "string",
					"description": "The item ID or ID prefix. Example: '3f2a9c1e'",
				},
				"read": map[string]interface{}{
					"type":        "boolean",
					"description": "Mark the item read (true) or unread (false)",
				},
				"starred": map[string]interface{}{
					"type":        "boolean",
					"description": "Star (true) or unstar (false) the item",
				},
				"saved": map[string]interface{}{
					"type":        "boolean",
					"description": "Save (true) or unsave (false) the item",
				},
				"add_tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Tag names to attach. Example: ['Important']",
				},
				"remove_tags": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Tag names to detach",
				},
			},
			Required: []string{"item_id"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleUpdateItem)
}

func (s *Server) registerMarkReadBeforeTool() {
	tool := mcp.Tool{
		Name:        "mark_read_before",
		Description: "Mark every unread item published before a date or period as read. Accepts 'today', 'yesterday', 'week', 'month', or YYYY-MM-DD. Returns how many items changed.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"before": map[string]interface{}{
					"type":        "string",
					"description": "Cutoff date or period. Example: 'yesterday' or '2024-01-15'",
				},
			},
			Required: []string{"before"},
		},
	}
	s.mcpServer.AddTool(tool, s.handleMarkReadBefore)
}

// Handler implementations

func (s *Server) handleListFeeds(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	coll, err := s.view(ctx)
	if err != nil {
		return nil, err
	}

	feedOutputs := make([]FeedOutput, 0, len(coll.Feeds))
	for i := range coll.Feeds {
		feedOutputs = append(feedOutputs, toFeedOutput(&coll.Feeds[i]))
	}

	return jsonResult(ListFeedsOutput{
		Feeds:   feedOutputs,
		Count:   len(feedOutputs),
		Folders: coll.FolderPaths(),
	})
}

func (s *Server) handleAddFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input AddFeedInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	if strings.TrimSpace(input.URL) == "" {
		return nil, fmt.Errorf("url is required")
	}

	opts := refresh.SubscribeOptions{}
	if input.Title != nil {
		opts.Title = *input.Title
	}
	if input.Folder != nil {
		opts.Folder = *input.Folder
	}
	if input.NoDiscover != nil {
		opts.NoDiscover = *input.NoDiscover
		if opts.NoDiscover {
			if err := validateFeedURL(input.URL); err != nil {
				return nil, err
			}
		}
	}

	var added models.Feed
	err := s.update(ctx, func(coll *models.Collection) error {
		svc := s.refresher(coll)
		feedURL, err := svc.ResolveURL(ctx, input.URL, opts)
		if err != nil {
			return err
		}
		if coll.FindFeed(feedURL) >= 0 {
			return fmt.Errorf("%w: %s", models.ErrFeedExists, feedURL)
		}

		feed, err := svc.ParseFeed(ctx, feedURL, models.NewFeed(feedURL, opts.Title, opts.Folder))
		if err != nil {
			return fmt.Errorf("failed to add feed: %w", err)
		}
		if err := coll.AddFeed(*feed); err != nil {
			return err
		}
		coll.AddFolder(feed.FolderOrDefault())
		added = *feed
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("added feed", "url", added.URL, "items", len(added.Items))
	return jsonResult(toFeedOutput(&added))
}

func (s *Server) handleRemoveFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RemoveFeedInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	err := s.update(ctx, func(coll *models.Collection) error {
		return coll.RemoveFeed(input.URL)
	})
	if err != nil {
		return nil, err
	}

	return jsonResult(RemoveFeedOutput{
		Success: true,
		Message: fmt.Sprintf("Removed feed %s", input.URL),
		URL:     input.URL,
	})
}

func (s *Server) handleMoveFeed(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input MoveFeedInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	target := strings.Trim(strings.TrimSpace(input.Folder), "/")
	if target == "" {
		target = models.DefaultFolder
	}

	var oldFolder string
	err := s.update(ctx, func(coll *models.Collection) error {
		feed, err := coll.Feed(input.URL)
		if err != nil {
			return err
		}
		oldFolder = feed.FolderOrDefault()
		feed.Folder = target
		coll.AddFolder(target)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return jsonResult(MoveFeedOutput{
		Success:   true,
		Message:   fmt.Sprintf("Moved feed from %s to %s", formatFolder(oldFolder), formatFolder(target)),
		URL:       input.URL,
		OldFolder: oldFolder,
		NewFolder: target,
	})
}

func (s *Server) handleRefreshFeeds(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input RefreshFeedsInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	var results []refresh.Result
	err := s.update(ctx, func(coll *models.Collection) error {
		if len(coll.Feeds) == 0 {
			return fmt.Errorf("no feeds found. Add a feed first using add_feed")
		}
		svc := s.refresher(coll)

		if input.URL != nil && *input.URL != "" {
			idx := coll.FindFeed(*input.URL)
			if idx < 0 {
				return fmt.Errorf("%w: %s", models.ErrFeedNotFound, *input.URL)
			}
			updated, res := svc.RefreshAllWithReport(ctx, coll.Feeds[idx:idx+1])
			coll.Feeds[idx] = updated[0]
			results = res
			return nil
		}

		coll.Feeds, results = svc.RefreshAllWithReport(ctx, coll.Feeds)
		return nil
	})
	if err != nil {
		return nil, err
	}

	output := RefreshFeedsOutput{
		Results:    make([]RefreshResult, 0, len(results)),
		TotalFeeds: len(results),
	}
	for _, res := range results {
		r := RefreshResult{URL: res.URL, Title: res.Title, NewItems: res.NewItems}
		if res.Err != nil {
			msg := res.Err.Error()
			r.Error = &msg
			output.TotalErrors++
		}
		output.TotalNew += res.NewItems
		output.Results = append(output.Results, r)
	}

	return jsonResult(output)
}

func (s *Server) handleListItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input ListItemsInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if input.Limit != nil && *input.Limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got %d", *input.Limit)
	}
	if input.Offset != nil && *input.Offset < 0 {
		return nil, fmt.Errorf("offset must be non-negative, got %d", *input.Offset)
	}

	filter, filters, err := s.buildFilter(input)
	if err != nil {
		return nil, err
	}

	coll, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	if filter.Limit == 0 {
		filter.Limit = coll.MaxItems
	}

	outputs := itemOutputs(coll.Items(filter))
	return jsonResult(ListItemsOutput{
		Items:   outputs,
		Count:   len(outputs),
		Filters: filters,
	})
}

// buildFilter converts tool input into an ItemFilter plus an echo of the
// filters applied, for the response.
func (s *Server) buildFilter(input ListItemsInput) (models.ItemFilter, map[string]any, error) {
	var filter models.ItemFilter
	filters := map[string]any{}
	now := s.now()

	if input.FeedURL != nil && *input.FeedURL != "" {
		filter.FeedURL = *input.FeedURL
		filters["feed_url"] = filter.FeedURL
	}
	if input.Folder != nil && *input.Folder != "" {
		filter.Folder = *input.Folder
		filters["folder"] = filter.Folder
	}
	if input.Tag != nil && *input.Tag != "" {
		filter.Tag = *input.Tag
		filters["tag"] = filter.Tag
	}
	if input.Media != nil && *input.Media != "" {
		m, err := parseMediaType(*input.Media)
		if err != nil {
			return filter, nil, err
		}
		filter.Media = m
		filters["media"] = m
	}
	if input.UnreadOnly != nil && *input.UnreadOnly {
		filter.UnreadOnly = true
		filters["unread_only"] = true
	}
	if input.Starred != nil && *input.Starred {
		filter.Starred = true
		filters["starred"] = true
	}
	if input.Saved != nil && *input.Saved {
		filter.Saved = true
		filters["saved"] = true
	}
	if input.Since != nil && *input.Since != "" {
		t, err := parseDateString(*input.Since, now)
		if err != nil {
			return filter, nil, fmt.Errorf("invalid since: %w", err)
		}
		filter.Since = &t
		filters["since"] = t
	}
	if input.Until != nil && *input.Until != "" {
		t, err := parseDateString(*input.Until, now)
		if err != nil {
			return filter, nil, fmt.Errorf("invalid until: %w", err)
		}
		filter.Until = &t
		filters["until"] = t
	}
	if input.Limit != nil {
		filter.Limit = *input.Limit
		filters["limit"] = filter.Limit
	}
	if input.Offset != nil {
		filter.Offset = *input.Offset
		filters["offset"] = filter.Offset
	}
	return filter, filters, nil
}

func (s *Server) handleGetItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input GetItemInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	coll, err := s.view(ctx)
	if err != nil {
		return nil, err
	}
	_, item, err := coll.FindItem(input.ItemID)
	if err != nil {
		return nil, err
	}

	return jsonResult(GetItemOutput{
		ItemOutput: toItemOutput(item),
		CoverImage: item.CoverImage,
		Content:    content.ForItem(item),
	})
}

func (s *Server) handleUpdateItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input UpdateItemInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	var updated models.FeedItem
	err := s.update(ctx, func(coll *models.Collection) error {
		_, item, err := coll.FindItem(input.ItemID)
		if err != nil {
			return err
		}
		if input.Read != nil {
			if *input.Read {
				item.MarkRead()
			} else {
				item.MarkUnread()
			}
		}
		if input.Starred != nil {
			item.SetStarred(*input.Starred)
		}
		if input.Saved != nil {
			item.SetSaved(*input.Saved)
		}
		for _, name := range input.AddTags {
			tag, err := coll.Tag(name)
			if err != nil {
				return err
			}
			item.AddTag(tag)
		}
		for _, name := range input.RemoveTags {
			if exact, ok := item.MatchTag(name); ok {
				item.RemoveTag(exact)
			}
		}
		updated = *item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return jsonResult(toItemOutput(&updated))
}

func (s *Server) handleMarkReadBefore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input MarkReadBeforeInput
	if err := req.BindArguments(&input); err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	before, err := parseDateString(input.Before, s.now())
	if err != nil {
		return nil, err
	}

	var count int
	err = s.update(ctx, func(coll *models.Collection) error {
		count = coll.MarkReadBefore(before)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return jsonResult(MarkReadBeforeOutput{
		Count:   count,
		Before:  before,
		Message: fmt.Sprintf("Marked %d items published before %s as read", count, before.Format(timeutil.DateLayout)),
	})
}

// Helpers

func toFeedOutput(feed *models.Feed) FeedOutput {
	out := FeedOutput{
		URL:         feed.URL,
		Title:       feed.DisplayName(),
		Folder:      feed.FolderOrDefault(),
		MediaType:   feed.MediaType,
		ItemCount:   len(feed.Items),
		UnreadCount: feed.UnreadCount(),
	}
	if !feed.LastUpdated.IsZero() {
		t := feed.LastUpdated
		out.LastUpdated = &t
	}
	return out
}

func toItemOutput(item *models.FeedItem) ItemOutput {
	tags := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		tags = append(tags, t.Name)
	}
	return ItemOutput{
		ID:          item.ID(),
		FeedURL:     item.FeedURL,
		FeedTitle:   item.FeedTitle,
		Title:       item.Title,
		Link:        item.Link,
		Author:      item.Author,
		PublishedAt: item.PubDate,
		Summary:     item.Summary,
		MediaType:   item.MediaType,
		VideoID:     item.VideoID,
		AudioURL:    item.AudioURL,
		Duration:    item.Duration,
		Read:        item.Read,
		Starred:     item.Starred,
		Saved:       item.Saved,
		Tags:        tags,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal output: %w", err)
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func validateFeedURL(raw string) error {
	parsedURL, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid feed URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("feed URL must use http or https scheme, got: %s", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return errors.New("feed URL must have a host")
	}
	return nil
}

func parseMediaType(s string) (models.MediaType, error) {
	switch m := models.MediaType(strings.ToLower(strings.TrimSpace(s))); m {
	case models.MediaArticle, models.MediaVideo, models.MediaPodcast:
		return m, nil
	default:
		return "", fmt.Errorf("unknown media type %q: use article, video, or podcast", s)
	}
}

// parseDateString accepts period names, YYYY-MM-DD, or RFC3339.
func parseDateString(s string, now time.Time) (time.Time, error) {
	if t, ok := timeutil.ParsePeriod(s, now); ok {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("cannot parse date: use yesterday, week, month, today, or YYYY-MM-DD format")
}

// formatFolder returns a human-readable folder name for messages
func formatFolder(folder string) string {
	if folder == "" {
		return "root level"
	}
	return fmt.Sprintf("'%s'", folder)
}
