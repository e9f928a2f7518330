// ABOUTME: MCP prompt definitions and handlers
// ABOUTME: Provides workflow templates for daily reading, catching up, and media queues

package mcp

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.registerDailyDigestPrompt()
	s.registerCatchUpPrompt()
	s.registerMediaQueuePrompt()
}

func (s *Server) registerDailyDigestPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "daily-digest",
			Description: "Summarize today's items across all subscriptions",
			Arguments:   []mcp.PromptArgument{},
		},
		s.handleDailyDigest,
	)
}

func (s *Server) handleDailyDigest(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `# Daily Digest

Review what was published today across my feeds and give me a short digest.

## Steps

1. Call refresh_feeds with no arguments so every feed is current. Mention any feeds that reported an error.
2. Read the feedboard://stats resource to see which feeds were active today.
3. Call list_items with since='today'. Group the results by feed.
4. For the few items that look most important, call get_item and read the content.
5. Write the digest:
   - **Top stories:** 2-3 items with one or two sentences each
   - **Worth a look:** a bulleted list of titles with their item IDs
   - **Videos and podcasts:** anything with media type video or podcast, with duration when known
6. Ask before marking anything read. When I confirm, use update_item with read=true.
`

	return promptResult("Daily digest workflow for today's items", template), nil
}

func (s *Server) registerCatchUpPrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "catch-up",
			Description: "Triage a backlog of unread items from recent days",
			Arguments: []mcp.PromptArgument{
				{
					Name:        "days",
					Description: "Number of days to catch up on (default: 7)",
					Required:    false,
				},
			},
		},
		s.handleCatchUp,
	)
}

func (s *Server) handleCatchUp(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	days := 7
	if req.Params.Arguments != nil {
		if d, ok := req.Params.Arguments["days"]; ok && d != "" {
			n, err := strconv.Atoi(d)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("days must be a positive integer, got %q", d)
			}
			days = n
		}
	}

	cutoff := s.now().AddDate(0, 0, -days).Format("2006-01-02")
	template := fmt.Sprintf(`# Catch Up

I have fallen behind. Help me process unread items from the last %d days.

## Steps

1. Read feedboard://stats and tell me which feeds hold the most unread items.
2. Call list_items with unread_only=true and since='%s'. Page with limit and offset if needed.
3. Sort the items into three groups:
   - **Read now:** at most 10, with item IDs
   - **Save for later:** mark these with update_item saved=true
   - **Skip:** everything else
4. Confirm the plan with me, then apply it. Anything older than %d days can be cleared with mark_read_before before='%s'.
5. Report how many items were read, saved, and skipped.
`, days, cutoff, days, cutoff)

	return promptResult(fmt.Sprintf("Catch-up workflow for %d days of unread items", days), template), nil
}

func (s *Server) registerMediaQueuePrompt() {
	s.mcpServer.AddPrompt(
		mcp.Prompt{
			Name:        "media-queue",
			Description: "Build a watch and listen queue from unread videos and podcast episodes",
			Arguments:   []mcp.PromptArgument{},
		},
		s.handleMediaQueue,
	)
}

func (s *Server) handleMediaQueue(_ context.Context, _ mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	template := `# Media Queue

Put together what I should watch and listen to next.

## Steps

1. Call list_items with media='video' and unread_only=true.
2. Call list_items with media='podcast' and unread_only=true. Episodes include duration and audio_url when the feed provides them.
3. Propose a queue of at most 5 videos and 5 episodes, shortest first when durations are known. Include each item ID and link.
4. When I approve, tag the chosen items with update_item add_tags=['Read Later'].
`

	return promptResult("Watch and listen queue from unread media items", template), nil
}

func promptResult(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
