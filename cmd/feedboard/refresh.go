// ABOUTME: Refresh command to re-fetch one or all feeds while keeping per-item user state
// ABOUTME: Prints a colored per-feed summary and can keep refreshing on the collection's interval

package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/config"
	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/refresh"
)

var refreshCmd = &cobra.Command{
	Use:     "refresh [url]",
	Aliases: []string{"fetch"},
	Short:   "Fetch new items from feeds",
	Long: `Fetch new items from all subscribed feeds or a single feed by URL.

Feeds are refreshed one at a time. A feed that fails keeps its previous
items; the error is reported in the summary. With --watch the refresh
repeats every refresh interval (minutes, from the collection settings)
until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watch, _ := cmd.Flags().GetBool("watch")
		out := cmd.OutOrStdout()

		if len(coll.Feeds) == 0 {
			fmt.Fprintln(out, "No feeds found. Add a feed with 'feedboard feed add <url>'")
			return nil
		}

		target := ""
		if len(args) == 1 {
			target = args[0]
			if coll.FindFeed(target) < 0 {
				return fmt.Errorf("%w: %s", models.ErrFeedNotFound, target)
			}
		}

		if err := refreshOnce(cmd.Context(), out, target); err != nil {
			return err
		}
		if !watch {
			return nil
		}

		interval := watchInterval(coll.RefreshInterval)
		fmt.Fprintf(out, "\n%s\n", faint(fmt.Sprintf("Watching; next refresh every %s. Press Ctrl-C to stop.", interval)))

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case <-ticker.C:
				fmt.Fprintln(out)
				if err := refreshOnce(cmd.Context(), out, target); err != nil {
					return err
				}
			}
		}
	},
}

// refreshOnce refreshes target (or every feed when empty) from a fresh load
// of the store, merges the results onto whatever was saved meanwhile, saves,
// and prints a summary.
func refreshOnce(ctx context.Context, out io.Writer, target string) error {
	snapshot, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	feeds := snapshot.Feeds
	if target != "" {
		idx := snapshot.FindFeed(target)
		if idx < 0 {
			return fmt.Errorf("%w: %s", models.ErrFeedNotFound, target)
		}
		feeds = snapshot.Feeds[idx : idx+1]
	}

	svc := refresh.NewService(newFetcher(), snapshot.Media, snapshot.AvailableTags, logger)
	refreshed, results := svc.RefreshAllWithReport(ctx, feeds)

	// An interrupt mid-batch must not throw away feeds that already refreshed.
	saveCtx := context.WithoutCancel(ctx)
	latest, err := store.Load(saveCtx)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
	refresh.Merge(latest, refreshed, results)
	coll = latest
	if err := saveCollection(saveCtx); err != nil {
		return err
	}

	printRefreshSummary(out, results)
	return nil
}

func printRefreshSummary(out io.Writer, results []refresh.Result) {
	totalNew := 0
	totalErrors := 0

	for _, res := range results {
		fmt.Fprintf(out, "Refreshing %s... ", res.Title)
		switch {
		case res.Err != nil:
			fmt.Fprintf(out, "%s %s\n", red("x"), res.Err.Error())
			totalErrors++
		case res.NewItems > 0:
			fmt.Fprintf(out, "%s %d new\n", green("v"), res.NewItems)
			totalNew += res.NewItems
		default:
			fmt.Fprintf(out, "%s no new items\n", green("v"))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Summary: %d feed(s) refreshed\n", len(results))
	if totalNew > 0 {
		fmt.Fprintf(out, "  %s %d new items\n", green("v"), totalNew)
	}
	if totalErrors > 0 {
		fmt.Fprintf(out, "  %s %d errors\n", red("x"), totalErrors)
	}
}

// watchInterval converts the collection's minutes setting, enforcing a floor.
func watchInterval(minutes int) time.Duration {
	d := time.Duration(minutes) * time.Minute
	if d < config.MinRefreshInterval {
		return config.MinRefreshInterval
	}
	return d
}

func init() {
	rootCmd.AddCommand(refreshCmd)

	refreshCmd.Flags().BoolP("watch", "w", false, "keep refreshing on the collection's refresh interval")
}
