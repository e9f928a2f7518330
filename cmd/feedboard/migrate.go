// ABOUTME: Migration command for copying feedboard data between storage backends
// ABOUTME: Supports yaml-to-sqlite and sqlite-to-yaml with an empty-target safety check

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/config"
	"github.com/harper/feedboard/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate data between storage backends",
	Long: `Migrate the whole collection from the currently configured backend to a different backend.

Feeds, items, read/starred/saved state, tags, folders, and media settings are
copied. Does NOT update the config file; verify the migration was successful
then update config.json manually.

Examples:
  feedboard migrate --to sqlite
  feedboard migrate --to yaml --target-dir ~/feedboard-yaml
  feedboard migrate --to sqlite --force`,
	Annotations: map[string]string{skipStore: "true"},
	RunE:        runMigrate,
}

var (
	migrateTo        string
	migrateTargetDir string
	migrateForce     bool
)

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "target backend (yaml or sqlite)")
	migrateCmd.Flags().StringVar(&migrateTargetDir, "target-dir", "", "target data directory (defaults to the current data directory)")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "allow writing into a non-empty target")
	_ = migrateCmd.MarkFlagRequired("to")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	c, err := loadConfig()
	if err != nil {
		return err
	}

	sourceBackend := c.GetBackend()
	targetBackend := migrateTo

	if targetBackend != storage.BackendYAML && targetBackend != storage.BackendSQLite {
		return fmt.Errorf("invalid target backend %q: must be %q or %q", targetBackend, storage.BackendYAML, storage.BackendSQLite)
	}

	targetDataDir := c.GetDataDir()
	if migrateTargetDir != "" {
		targetDataDir = config.ExpandPath(migrateTargetDir)
	}
	if targetBackend == sourceBackend && targetDataDir == c.GetDataDir() {
		return fmt.Errorf("target backend %q is the same as the current backend", targetBackend)
	}

	// Both backends share the data directory layout, so a non-empty directory
	// only blocks when it is not the source directory.
	if targetDataDir != c.GetDataDir() {
		nonEmpty, err := storage.IsDirNonEmpty(targetDataDir)
		if err != nil {
			return fmt.Errorf("check target directory: %w", err)
		}
		if nonEmpty && !migrateForce {
			return fmt.Errorf("target directory %q is not empty; use --force to overwrite", targetDataDir)
		}
	}

	src, err := c.OpenStorage()
	if err != nil {
		return fmt.Errorf("open source storage (%s): %w", sourceBackend, err)
	}
	defer src.Close()

	dst, err := config.OpenBackend(targetBackend, targetDataDir)
	if err != nil {
		return fmt.Errorf("open target storage (%s): %w", targetBackend, err)
	}
	defer dst.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, color.YellowString("Migrating feedboard data:"))
	fmt.Fprintf(out, "  Source:  %s (%s)\n", sourceBackend, c.GetDataDir())
	fmt.Fprintf(out, "  Target:  %s (%s)\n", targetBackend, targetDataDir)
	fmt.Fprintln(out)

	summary, err := storage.Migrate(cmd.Context(), src, dst, migrateForce)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, color.GreenString("Migration complete!"))
	fmt.Fprintf(out, "  Feeds:   %d\n", summary.Feeds)
	fmt.Fprintf(out, "  Items:   %d\n", summary.Items)
	fmt.Fprintln(out)
	fmt.Fprintln(out, color.YellowString("Note: config.json was NOT updated. To switch to the new backend, edit:"))
	fmt.Fprintf(out, "  %s\n", config.GetConfigPath())
	fmt.Fprintf(out, "  Set \"backend\": %q", targetBackend)
	if migrateTargetDir != "" {
		fmt.Fprintf(out, " and \"data_dir\": %q", migrateTargetDir)
	}
	fmt.Fprintln(out)

	return nil
}
