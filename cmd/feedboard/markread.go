// ABOUTME: Commands that change per-item user state: read, unread, starred, and saved
// ABOUTME: mark-read also supports bulk marking everything published before a date or period

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/timeutil"
)

var markReadCmd = &cobra.Command{
	Use:   "mark-read [item-id]",
	Short: "Mark items as read",
	Long:  "Mark a single item as read by ID, or use --before to mark all items older than a date",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		before, _ := cmd.Flags().GetString("before")
		out := cmd.OutOrStdout()

		// Single item mode
		if len(args) == 1 {
			if before != "" {
				return fmt.Errorf("cannot use --before with an item ID")
			}
			_, item, err := coll.FindItem(args[0])
			if err != nil {
				return err
			}
			if item.Read {
				fmt.Fprintln(out, "Item is already marked as read")
				return nil
			}
			item.MarkRead()
			if err := saveCollection(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Marked as read: %s\n", itemTitle(item))
			return nil
		}

		// Bulk mode requires --before
		if before == "" {
			return fmt.Errorf("provide an item ID or use --before for bulk marking")
		}
		cutoff, ok := timeutil.ParsePeriod(before, time.Now())
		if !ok {
			return fmt.Errorf("invalid period %q: use today, yesterday, week, month, or YYYY-MM-DD", before)
		}

		count := coll.MarkReadBefore(cutoff)
		if count == 0 {
			fmt.Fprintln(out, "No items to mark as read")
			return nil
		}
		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Marked %d items as read\n", count)
		return nil
	},
}

// itemStateCommand builds a command that applies change to one item and
// reports with verb, e.g. "Starred".
func itemStateCommand(use, short, verb string, change func(*models.FeedItem) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <item-id>",
		Short: short,
		Long:  short + ". Accepts an item ID or a unique prefix. The change survives feed refreshes.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, item, err := coll.FindItem(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !change(item) {
				fmt.Fprintf(out, "Unchanged: %s\n", itemTitle(item))
				return nil
			}
			if err := saveCollection(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %s\n", verb, itemTitle(item))
			return nil
		},
	}
}

var (
	markUnreadCmd = itemStateCommand("mark-unread", "Mark an item as unread", "Marked as unread", func(i *models.FeedItem) bool {
		if !i.Read {
			return false
		}
		i.MarkUnread()
		return true
	})
	starCmd = itemStateCommand("star", "Star an item", "Starred", func(i *models.FeedItem) bool {
		if i.Starred {
			return false
		}
		i.SetStarred(true)
		return true
	})
	unstarCmd = itemStateCommand("unstar", "Remove the star from an item", "Unstarred", func(i *models.FeedItem) bool {
		if !i.Starred {
			return false
		}
		i.SetStarred(false)
		return true
	})
	saveCmd = itemStateCommand("save", "Save an item for later", "Saved", func(i *models.FeedItem) bool {
		if i.Saved {
			return false
		}
		i.SetSaved(true)
		return true
	})
	unsaveCmd = itemStateCommand("unsave", "Remove an item from saved", "Unsaved", func(i *models.FeedItem) bool {
		if !i.Saved {
			return false
		}
		i.SetSaved(false)
		return true
	})
)

func init() {
	rootCmd.AddCommand(markReadCmd)
	rootCmd.AddCommand(markUnreadCmd, starCmd, unstarCmd, saveCmd, unsaveCmd)

	markReadCmd.Flags().StringP("before", "b", "", "mark items older than: today, yesterday, week, month, or YYYY-MM-DD")
}
