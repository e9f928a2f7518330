// ABOUTME: MCP resource providers for feedboard
// ABOUTME: Exposes read-only views of feeds, unread and today's items, and statistics

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/timeutil"
)

// ResourceData is the standard response format for all resources.
type ResourceData struct {
	Metadata ResourceMetadata  `json:"metadata"`
	Data     interface{}       `json:"data"`
	Links    map[string]string `json:"links"`
}

// ResourceMetadata contains metadata about the resource response.
type ResourceMetadata struct {
	Timestamp   time.Time      `json:"timestamp"`
	Count       int            `json:"count"`
	ResourceURI string         `json:"resource_uri"`
	Filters     map[string]any `json:"filters,omitempty"`
}

const (
	feedsURI       = "feedboard://feeds"
	unreadItemsURI = "feedboard://items/unread"
	todayItemsURI  = "feedboard://items/today"
	statsURI       = "feedboard://stats"
)

var resourceLinks = map[string]string{
	"feeds":        feedsURI,
	"unread_items": unreadItemsURI,
	"today_items":  todayItemsURI,
	"stats":        statsURI,
}

// FeedStats is one row of the stats resource.
type FeedStats struct {
	URL         string           `json:"url"`
	Title       string           `json:"title"`
	Folder      string           `json:"folder"`
	MediaType   models.MediaType `json:"media_type,omitempty"`
	ItemCount   int              `json:"item_count"`
	UnreadCount int              `json:"unread_count"`
	TodayCount  int              `json:"today_count"`
}

// OverallStats aggregates FeedStats.
type OverallStats struct {
	TotalFeeds  int         `json:"total_feeds"`
	TotalItems  int         `json:"total_items"`
	UnreadItems int         `json:"unread_items"`
	TodayItems  int         `json:"today_items"`
	Starred     int         `json:"starred_items"`
	Saved       int         `json:"saved_items"`
	Feeds       []FeedStats `json:"feeds"`
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         feedsURI,
			Name:        "All Feeds",
			Description: "List all subscribed feeds with folder, media type, last refresh time, and unread counts",
			MIMEType:    "application/json",
		},
		s.handleFeedsResource,
	)
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         unreadItemsURI,
			Name:        "Unread Items",
			Description: "List unread items across all feeds, newest first, capped at the collection's max items setting",
			MIMEType:    "application/json",
		},
		s.handleUnreadItemsResource,
	)
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         todayItemsURI,
			Name:        "Today's Items",
			Description: "List items published since local midnight, newest first",
			MIMEType:    "application/json",
		},
		s.handleTodayItemsResource,
	)
	s.mcpServer.AddResource(
		mcp.Resource{
			URI:         statsURI,
			Name:        "Statistics",
			Description: "Per-feed and overall item, unread, and today counts",
			MIMEType:    "application/json",
		},
		s.handleStatsResource,
	)
}

func (s *Server) handleFeedsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	coll, err := s.view(ctx)
	if err != nil {
		return nil, err
	}

	feeds := make([]FeedOutput, 0, len(coll.Feeds))
	for i := range coll.Feeds {
		feeds = append(feeds, toFeedOutput(&coll.Feeds[i]))
	}
	return s.resourceContents(request.Params.URI, feeds, len(feeds), nil)
}

func (s *Server) handleUnreadItemsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	coll, err := s.view(ctx)
	if err != nil {
		return nil, err
	}

	items := coll.Items(models.ItemFilter{UnreadOnly: true, Limit: coll.MaxItems})
	outputs := itemOutputs(items)
	return s.resourceContents(request.Params.URI, outputs, len(outputs), map[string]any{"unread_only": true})
}

func (s *Server) handleTodayItemsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	coll, err := s.view(ctx)
	if err != nil {
		return nil, err
	}

	since := timeutil.StartOfDay(s.now())
	items := coll.Items(models.ItemFilter{Since: &since})
	outputs := itemOutputs(items)
	return s.resourceContents(request.Params.URI, outputs, len(outputs), map[string]any{"since": since})
}

func (s *Server) handleStatsResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	coll, err := s.view(ctx)
	if err != nil {
		return nil, err
	}

	stats := computeStats(coll, timeutil.StartOfDay(s.now()))
	return s.resourceContents(request.Params.URI, stats, stats.TotalFeeds, nil)
}

func computeStats(coll *models.Collection, today time.Time) OverallStats {
	stats := OverallStats{
		TotalFeeds: len(coll.Feeds),
		Feeds:      make([]FeedStats, 0, len(coll.Feeds)),
	}
	for i := range coll.Feeds {
		feed := &coll.Feeds[i]
		row := FeedStats{
			URL:         feed.URL,
			Title:       feed.DisplayName(),
			Folder:      feed.FolderOrDefault(),
			MediaType:   feed.MediaType,
			ItemCount:   len(feed.Items),
			UnreadCount: feed.UnreadCount(),
		}
		for j := range feed.Items {
			item := &feed.Items[j]
			if !item.PubDate.Before(today) {
				row.TodayCount++
			}
			if item.Starred {
				stats.Starred++
			}
			if item.Saved {
				stats.Saved++
			}
		}
		stats.TotalItems += row.ItemCount
		stats.UnreadItems += row.UnreadCount
		stats.TodayItems += row.TodayCount
		stats.Feeds = append(stats.Feeds, row)
	}
	return stats
}

func itemOutputs(items []*models.FeedItem) []ItemOutput {
	outputs := make([]ItemOutput, 0, len(items))
	for _, item := range items {
		outputs = append(outputs, toItemOutput(item))
	}
	return outputs
}

func (s *Server) resourceContents(uri string, data any, count int, filters map[string]any) ([]mcp.ResourceContents, error) {
	resourceData := ResourceData{
		Metadata: ResourceMetadata{
			Timestamp:   s.now(),
			Count:       count,
			ResourceURI: uri,
			Filters:     filters,
		},
		Data:  data,
		Links: resourceLinks,
	}

	jsonBytes, err := json.MarshalIndent(resourceData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
