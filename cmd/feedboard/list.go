// ABOUTME: List command for viewing items across feeds with filtering options
// ABOUTME: Displays items newest first with read, starred, saved, media, and tag markers

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/timeutil"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List items",
	Long: `List items across all feeds, newest first.

Unread items are shown by default; use --all to include read ones. Filters
can be combined. --view limits to today, yesterday, week, or month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter, err := listFilter(cmd, time.Now())
		if err != nil {
			return err
		}

		items := coll.Items(filter)
		out := cmd.OutOrStdout()
		if len(items) == 0 {
			fmt.Fprintln(out, "No items found")
			return nil
		}

		for _, item := range items {
			printItemLine(out, item)
		}
		return nil
	},
}

// listFilter builds the item filter from list flags.
func listFilter(cmd *cobra.Command, now time.Time) (models.ItemFilter, error) {
	all, _ := cmd.Flags().GetBool("all")
	starred, _ := cmd.Flags().GetBool("starred")
	saved, _ := cmd.Flags().GetBool("saved")
	tag, _ := cmd.Flags().GetString("tag")
	feedURL, _ := cmd.Flags().GetString("feed")
	folder, _ := cmd.Flags().GetString("folder")
	media, _ := cmd.Flags().GetString("media")
	view, _ := cmd.Flags().GetString("view")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	if limit < 0 {
		return models.ItemFilter{}, fmt.Errorf("--limit must be non-negative, got %d", limit)
	}
	if offset < 0 {
		return models.ItemFilter{}, fmt.Errorf("--offset must be non-negative, got %d", offset)
	}
	if limit == 0 {
		limit = coll.MaxItems
	}

	filter := models.ItemFilter{
		// Starred and saved lists include read items.
		UnreadOnly: !all && !starred && !saved,
		Starred:    starred,
		Saved:      saved,
		Tag:        tag,
		Folder:     strings.Trim(folder, "/"),
		Limit:      limit,
		Offset:     offset,
	}

	if feedURL != "" {
		if coll.FindFeed(feedURL) < 0 {
			return filter, fmt.Errorf("%w: %s", models.ErrFeedNotFound, feedURL)
		}
		filter.FeedURL = feedURL
	}

	if media != "" {
		switch m := models.MediaType(strings.ToLower(media)); m {
		case models.MediaArticle, models.MediaVideo, models.MediaPodcast:
			filter.Media = m
		default:
			return filter, fmt.Errorf("invalid --media %q: use article, video, or podcast", media)
		}
	}

	if view != "" {
		r, ok := timeutil.ParseView(view, now)
		if !ok {
			return filter, fmt.Errorf("invalid --view %q: use today, yesterday, week, or month", view)
		}
		filter.Since = &r.Since
		if !r.Until.IsZero() {
			filter.Until = &r.Until
		}
	}

	return filter, nil
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("all", "a", false, "show all items including read")
	listCmd.Flags().Bool("starred", false, "show only starred items")
	listCmd.Flags().Bool("saved", false, "show only saved items")
	listCmd.Flags().String("tag", "", "show only items with this tag")
	listCmd.Flags().StringP("feed", "f", "", "filter by feed URL")
	listCmd.Flags().StringP("folder", "c", "", "filter by folder (includes subfolders)")
	listCmd.Flags().StringP("media", "m", "", "filter by media type: article, video, or podcast")
	listCmd.Flags().String("view", "", "time window: today, yesterday, week, or month")
	listCmd.Flags().IntP("limit", "n", 0, "max items to show (default: the collection's max items)")
	listCmd.Flags().IntP("offset", "o", 0, "number of items to skip (for pagination)")

	listCmd.MarkFlagsMutuallyExclusive("feed", "folder")
}
