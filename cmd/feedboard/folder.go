// ABOUTME: Folder management commands for organizing feeds into nested folders
// ABOUTME: Folder paths use "/" separators, e.g. "Tech/Go"

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var folderCmd = &cobra.Command{
	Use:   "folder",
	Short: "Manage feed folders",
	Long:  "Create and list folders for organizing feeds",
}

var folderAddCmd = &cobra.Command{
	Use:   "add <path>",
	Short: "Create a new folder",
	Long:  "Create a folder, including any missing parents (e.g. 'Tech/Go')",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := strings.Trim(strings.TrimSpace(args[0]), "/")
		if path == "" {
			return fmt.Errorf("folder path is required")
		}
		if !coll.AddFolder(path) {
			return fmt.Errorf("folder already exists: %s", path)
		}
		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created folder: %s\n", path)
		return nil
	},
}

var folderListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all folders",
	Long:    "List all folders and the count of feeds in each",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		folders := coll.FolderPaths()
		if len(folders) == 0 {
			fmt.Fprintln(out, "No folders found. Create a folder with 'feedboard folder add <path>'")
			return nil
		}

		fmt.Fprintf(out, "Found %d folder(s):\n\n", len(folders))
		for _, folder := range folders {
			n := 0
			for i := range coll.Feeds {
				if coll.Feeds[i].FolderOrDefault() == folder {
					n++
				}
			}
			depth := strings.Count(folder, "/")
			name := folder[strings.LastIndex(folder, "/")+1:]
			fmt.Fprintf(out, "%s%s %s\n", strings.Repeat("  ", depth), name, faint(fmt.Sprintf("(%d feed(s))", n)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(folderCmd)
	folderCmd.AddCommand(folderAddCmd)
	folderCmd.AddCommand(folderListCmd)
}
