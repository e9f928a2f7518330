// ABOUTME: Read command for viewing item content in the terminal
// ABOUTME: Sanitizes the item HTML, renders it as markdown with glamour, and marks the item read

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/config"
	"github.com/harper/feedboard/internal/content"
	"github.com/harper/feedboard/internal/models"
)

var readCmd = &cobra.Command{
	Use:   "read <item-id>",
	Short: "Read an item",
	Long:  "Display the full content of an item and mark it as read. Accepts an item ID or a unique prefix.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noMark, _ := cmd.Flags().GetBool("no-mark")

		feed, item, err := coll.FindItem(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		printItemHeader(out, feed, item)

		if strings.TrimSpace(content.Body(item)) != "" {
			markdown := content.ForItem(item)

			rendered, err := glamour.Render(markdown, "dark")
			if err != nil {
				// Fall back to plain markdown if rendering fails
				fmt.Fprintf(out, "%s\n", faint("(markdown rendering unavailable, showing plain text)"))
				fmt.Fprintf(out, "\n%s\n", markdown)
			} else {
				fmt.Fprint(out, rendered)
			}
		} else {
			fmt.Fprintln(out, "\n(No content available)")
		}
		fmt.Fprintln(out)

		if !noMark && !item.Read {
			item.MarkRead()
			if err := saveCollection(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", faint("Marked as read"))
		}
		return nil
	},
}

func printItemHeader(out io.Writer, feed *models.Feed, item *models.FeedItem) {
	fmt.Fprintln(out, separator())
	fmt.Fprintf(out, "%s\n\n", bold(itemTitle(item)))
	fmt.Fprintf(out, "%s %s\n", faint("Feed:"), feed.DisplayName())
	if item.Author != "" {
		fmt.Fprintf(out, "%s %s\n", faint("Author:"), item.Author)
	}
	if !item.PubDate.IsZero() {
		fmt.Fprintf(out, "%s %s\n", faint("Published:"), item.PubDate.Local().Format(config.DateFormatLong))
	}
	if item.Link != "" && item.Link != "#" {
		fmt.Fprintf(out, "%s %s\n", faint("Link:"), cyan(item.Link))
	}

	switch item.MediaType {
	case models.MediaVideo:
		if item.VideoID != "" {
			fmt.Fprintf(out, "%s https://www.youtube.com/watch?v=%s\n", faint("Video:"), item.VideoID)
		}
	case models.MediaPodcast:
		if item.AudioURL != "" {
			fmt.Fprintf(out, "%s %s\n", faint("Audio:"), cyan(item.AudioURL))
		}
		if item.Duration != "" {
			fmt.Fprintf(out, "%s %s\n", faint("Duration:"), item.Duration)
		}
		if item.Season > 0 || item.Episode > 0 {
			fmt.Fprintf(out, "%s S%d E%d\n", faint("Episode:"), item.Season, item.Episode)
		}
	}

	if len(item.Tags) > 0 {
		names := make([]string, len(item.Tags))
		for i, t := range item.Tags {
			names[i] = t.Name
		}
		fmt.Fprintf(out, "%s %s\n", faint("Tags:"), strings.Join(names, ", "))
	}
	fmt.Fprintln(out, separator())
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().Bool("no-mark", false, "don't mark the item as read")
}
