// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config, builds the logger, and opens the storage backend and collection

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/config"
	"github.com/harper/feedboard/internal/fetch"
	"github.com/harper/feedboard/internal/logging"
	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/refresh"
	"github.com/harper/feedboard/internal/storage"
)

// skipStore marks commands that run without opening storage.
const skipStore = "feedboard/skip-store"

var (
	dataDirFlag string
	backendFlag string
	verbose     bool

	cfg    *config.Config
	logger *slog.Logger
	store  storage.Store
	coll   *models.Collection
)

var rootCmd = &cobra.Command{
	Use:   "feedboard",
	Short: "RSS, Atom, YouTube, and podcast feed reader with MCP integration",
	Long: `
███████╗███████╗███████╗██████╗ ██████╗  ██████╗  █████╗ ██████╗ ██████╗
██╔════╝██╔════╝██╔════╝██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗
█████╗  █████╗  █████╗  ██║  ██║██████╔╝██║   ██║███████║██████╔╝██║  ██║
██╔══╝  ██╔══╝  ██╔══╝  ██║  ██║██╔══██╗██║   ██║██╔══██║██╔══██╗██║  ██║
██║     ███████╗███████╗██████╔╝██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
╚═╝     ╚══════╝╚══════╝╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝

Feed reader for humans and AI agents.

Subscribe to blogs, YouTube channels, and podcasts, refresh them without
losing read/starred/saved state, and expose everything over MCP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Annotations[skipStore] == "true" {
			return nil
		}
		return setup(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return teardown()
	},
}

// Execute runs the root command with a context cancelled on interrupt.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default: config data_dir or ~/.local/share/feedboard)")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "storage backend: yaml or sqlite (default: config backend)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig() (*config.Config, error) {
	c, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dataDirFlag != "" {
		c.DataDir = dataDirFlag
	}
	if backendFlag != "" {
		c.Backend = backendFlag
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// setup loads config, applies flag overrides, and opens the collection.
func setup(ctx context.Context) error {
	var err error
	cfg, err = loadConfig()
	if err != nil {
		return err
	}

	logger, err = logging.New(logging.Verbose(cfg.GetLogLevel(), verbose), os.Stderr)
	if err != nil {
		return err
	}

	store, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("open %s storage: %w", cfg.GetBackend(), err)
	}

	coll, err = store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}
	logger.Debug("loaded collection", "backend", cfg.GetBackend(), "dir", cfg.GetDataDir(), "feeds", len(coll.Feeds))
	return nil
}

func teardown() error {
	if store == nil {
		return nil
	}
	err := store.Close()
	store = nil
	coll = nil
	if err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// saveCollection persists the in-memory collection.
func saveCollection(ctx context.Context) error {
	if err := store.Save(ctx, coll); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

// newFetcher builds the HTTP fetcher from config. Tests swap it for one trusting a local server.
var newFetcher = func() *fetch.Fetcher {
	return fetch.New(cfg.GetHTTPTimeout())
}

// newRefresher builds a refresh service bound to the loaded collection's settings.
func newRefresher() *refresh.Service {
	return refresh.NewService(newFetcher(), coll.Media, coll.AvailableTags, logger)
}
