// ABOUTME: Shared terminal formatting for items and feeds
// ABOUTME: Builds the colored one-line item rows used by list and the refresh summary

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harper/feedboard/internal/config"
	"github.com/harper/feedboard/internal/models"
)

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
	gold  = color.New(color.FgYellow).SprintFunc()
)

func shortID(id string) string {
	if len(id) > config.DisplayIDLength {
		return id[:config.DisplayIDLength]
	}
	return id
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}

func itemTitle(item *models.FeedItem) string {
	if strings.TrimSpace(item.Title) == "" {
		return "Untitled"
	}
	return item.Title
}

// mediaMarker is a short prefix for non-article items.
func mediaMarker(item *models.FeedItem) string {
	switch item.MediaType {
	case models.MediaVideo:
		return "[video] "
	case models.MediaPodcast:
		if item.Duration != "" {
			return "[podcast " + item.Duration + "] "
		}
		return "[podcast] "
	default:
		return ""
	}
}

// printItemLine writes: id, state flags, title, feed, and date.
func printItemLine(w io.Writer, item *models.FeedItem) {
	read := "  "
	if item.Read {
		read = "✓ "
	}
	flags := ""
	if item.Starred {
		flags += gold("★")
	}
	if item.Saved {
		flags += cyan("⚑")
	}
	if flags != "" {
		flags += " "
	}

	fmt.Fprintf(w, "%s %s%s%s%s", faint(shortID(item.ID())), read, flags, mediaMarker(item), truncate(itemTitle(item), config.TitleWidth))
	if item.FeedTitle != "" {
		fmt.Fprintf(w, " %s", faint("· "+item.FeedTitle))
	}
	if !item.PubDate.IsZero() {
		fmt.Fprintf(w, " %s", faint(item.PubDate.Local().Format(config.DateFormatShort)))
	}
	if len(item.Tags) > 0 {
		names := make([]string, len(item.Tags))
		for i, t := range item.Tags {
			names[i] = "#" + t.Name
		}
		fmt.Fprintf(w, " %s", cyan(strings.Join(names, " ")))
	}
	fmt.Fprintln(w)
}

func separator() string {
	return strings.Repeat("─", config.SeparatorWidth)
}
