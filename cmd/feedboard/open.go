// ABOUTME: Open command for launching item links in the browser
// ABOUTME: Opens the item's link (or its YouTube watch page) and marks the item as read

package main

import (
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/models"
)

var openCmd = &cobra.Command{
	Use:   "open <item-id>",
	Short: "Open item link in browser and mark as read",
	Long:  "Open an item's link in your default browser and mark it as read. Accepts an item ID or a unique prefix (minimum 6 characters).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, item, err := coll.FindItem(args[0])
		if err != nil {
			return err
		}

		link, err := itemLink(item)
		if err != nil {
			return err
		}
		if err := openBrowser(link); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}

		item.MarkRead()
		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "v Opened and marked as read: %s\n", itemTitle(item))
		return nil
	},
}

// itemLink returns the URL to open, validated to be http or https.
func itemLink(item *models.FeedItem) (string, error) {
	link := item.Link
	if item.MediaType == models.MediaVideo && item.VideoID != "" {
		link = "https://www.youtube.com/watch?v=" + item.VideoID
	}
	if link == "" || link == "#" {
		return "", fmt.Errorf("item has no link")
	}

	parsedURL, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("item has malformed link: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return "", fmt.Errorf("item link must be http or https, got: %s", parsedURL.Scheme)
	}
	return parsedURL.String(), nil
}

// launchers maps GOOS to the command that hands a URL to the desktop.
var launchers = map[string][]string{
	"darwin":  {"open"},
	"linux":   {"xdg-open"},
	"freebsd": {"xdg-open"},
	"windows": {"rundll32", "url.dll,FileProtocolHandler"},
}

// openBrowser starts the browser named by $BROWSER, or the platform launcher.
func openBrowser(link string) error {
	argv := launchers[runtime.GOOS]
	if b := strings.TrimSpace(os.Getenv("BROWSER")); b != "" {
		argv = strings.Fields(b)
	}
	if len(argv) == 0 {
		return fmt.Errorf("no browser launcher for %s; set $BROWSER", runtime.GOOS)
	}

	proc := exec.Command(argv[0], append(argv[1:], link)...) //nolint:gosec // link is validated http(s)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("start %s: %w", argv[0], err)
	}
	go proc.Wait() //nolint:errcheck // reap
	return nil
}

func init() {
	rootCmd.AddCommand(openCmd)
}
