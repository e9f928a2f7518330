// ABOUTME: Feed management commands for adding, listing, moving, and removing subscriptions
// ABOUTME: Adding resolves YouTube channels and discovers feeds behind web pages before the first parse

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/refresh"
)

var feedCmd = &cobra.Command{
	Use:     "feed",
	Aliases: []string{"f"},
	Short:   "Manage feed subscriptions",
	Long:    "Add, list, move, and remove RSS/Atom feeds, YouTube channels, and podcasts",
}

var feedAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Subscribe to a feed",
	Long: `Subscribe to a feed and fetch its items.

The argument may be a feed URL, a web page that links to its feed, or a
YouTube channel (channel URL, @handle, /c/ URL, or channel id). YouTube
channels and podcasts are filed into the configured media folders unless
--folder is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, _ := cmd.Flags().GetString("folder")
		title, _ := cmd.Flags().GetString("title")
		noDiscover, _ := cmd.Flags().GetBool("no-discover")
		youtube, _ := cmd.Flags().GetBool("youtube")

		opts := refresh.SubscribeOptions{
			Title:      title,
			Folder:     strings.Trim(folder, "/"),
			YouTube:    youtube,
			NoDiscover: noDiscover,
		}

		svc := newRefresher()
		feedURL, err := svc.ResolveURL(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		if coll.FindFeed(feedURL) >= 0 {
			return fmt.Errorf("%w: %s", models.ErrFeedExists, feedURL)
		}

		feed, err := svc.ParseFeed(cmd.Context(), feedURL, models.NewFeed(feedURL, opts.Title, opts.Folder))
		if err != nil {
			return fmt.Errorf("failed to add feed: %w", err)
		}
		if err := coll.AddFeed(*feed); err != nil {
			return err
		}
		coll.AddFolder(feed.FolderOrDefault())

		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s Added %s to '%s'\n", green("v"), bold(feed.DisplayName()), feed.FolderOrDefault())
		fmt.Fprintf(out, "  URL:   %s\n", feed.URL)
		if feed.MediaType != "" && feed.MediaType != models.MediaArticle {
			fmt.Fprintf(out, "  Type:  %s\n", feed.MediaType)
		}
		fmt.Fprintf(out, "  Items: %d\n", len(feed.Items))
		return nil
	},
}

var feedListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all feeds",
	Long:    "List all subscribed feeds grouped by folder with unread counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(coll.Feeds) == 0 {
			fmt.Fprintln(out, "No feeds found. Add a feed with 'feedboard feed add <url>'")
			return nil
		}

		fmt.Fprintf(out, "Found %d feed(s):\n\n", len(coll.Feeds))
		for _, folder := range coll.FolderPaths() {
			var inFolder []*models.Feed
			for i := range coll.Feeds {
				if coll.Feeds[i].FolderOrDefault() == folder {
					inFolder = append(inFolder, &coll.Feeds[i])
				}
			}
			if len(inFolder) == 0 {
				continue
			}

			fmt.Fprintf(out, "%s\n", bold("["+folder+"]"))
			for _, feed := range inFolder {
				line := feed.DisplayName()
				if feed.MediaType != "" && feed.MediaType != models.MediaArticle {
					line += " " + faint("("+string(feed.MediaType)+")")
				}
				if unread := feed.UnreadCount(); unread > 0 {
					line += " " + green(fmt.Sprintf("%d unread", unread))
				}
				fmt.Fprintf(out, "  %s\n", line)
				fmt.Fprintf(out, "    %s\n", faint(feed.URL))
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var feedRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove a feed",
	Long:  "Unsubscribe from a feed, deleting its items and their read/starred/saved/tag state",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		if err := coll.RemoveFeed(url); err != nil {
			return err
		}
		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed feed: %s\n", url)
		return nil
	},
}

var feedMoveCmd = &cobra.Command{
	Use:   "move <url> <folder>",
	Short: "Move a feed to another folder",
	Long:  "Move a feed to a folder path such as 'Tech/Go'. Missing folders are created.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		feed, err := coll.Feed(args[0])
		if err != nil {
			return err
		}

		target := strings.Trim(strings.TrimSpace(args[1]), "/")
		if target == "" {
			target = models.DefaultFolder
		}
		old := feed.FolderOrDefault()
		feed.Folder = target
		coll.AddFolder(target)

		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Moved %s from '%s' to '%s'\n", feed.DisplayName(), old, target)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(feedCmd)
	feedCmd.AddCommand(feedAddCmd)
	feedCmd.AddCommand(feedListCmd)
	feedCmd.AddCommand(feedRemoveCmd)
	feedCmd.AddCommand(feedMoveCmd)

	feedAddCmd.Flags().StringP("folder", "f", "", "folder to file the feed in (e.g. Tech/Go)")
	feedAddCmd.Flags().StringP("title", "t", "", "feed title (defaults to the feed's own title)")
	feedAddCmd.Flags().Bool("no-discover", false, "use the URL as the feed URL without discovery")
	feedAddCmd.Flags().Bool("youtube", false, "treat the argument as a YouTube channel or username")
}
