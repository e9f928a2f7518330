// ABOUTME: Tag management commands for the collection's tag list and per-item tags
// ABOUTME: Tags are matched by name ignoring case; items hold their own copy of each tag

package main

import (
	"fmt"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/models"
)

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Manage tags",
	Long:  "Create tags and attach them to or detach them from items",
}

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(coll.AvailableTags) == 0 {
			fmt.Fprintln(out, "No tags found. Create one with 'feedboard tag create <name>'")
			return nil
		}
		for _, tag := range coll.AvailableTags {
			n := len(coll.Items(models.ItemFilter{Tag: tag.Name}))
			fmt.Fprintf(out, "%s %s %s\n", tag.Name, faint(tag.Color), faint(fmt.Sprintf("(%d item(s))", n)))
		}
		return nil
	},
}

var tagCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		colorFlag, _ := cmd.Flags().GetString("color")
		if !hexColor.MatchString(colorFlag) {
			return fmt.Errorf("invalid --color %q: use #rrggbb", colorFlag)
		}
		if !coll.AddTag(models.Tag{Name: args[0], Color: colorFlag}) {
			return fmt.Errorf("tag already exists: %s", args[0])
		}
		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created tag: %s\n", args[0])
		return nil
	},
}

var tagAddCmd = &cobra.Command{
	Use:   "add <item-id> <tag>",
	Short: "Attach a tag to an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, item, err := coll.FindItem(args[0])
		if err != nil {
			return err
		}
		tag, err := coll.Tag(args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !item.AddTag(tag) {
			fmt.Fprintf(out, "%s already tagged %s\n", itemTitle(item), tag.Name)
			return nil
		}
		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Tagged %s with %s\n", itemTitle(item), tag.Name)
		return nil
	},
}

var tagRemoveCmd = &cobra.Command{
	Use:     "remove <item-id> <tag>",
	Aliases: []string{"rm"},
	Short:   "Detach a tag from an item",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, item, err := coll.FindItem(args[0])
		if err != nil {
			return err
		}
		name, ok := item.MatchTag(args[1])
		if !ok || !item.RemoveTag(name) {
			return fmt.Errorf("%w: %s is not tagged %s", models.ErrTagNotFound, itemTitle(item), args[1])
		}
		if err := saveCollection(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s\n", args[1], itemTitle(item))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
	tagCmd.AddCommand(tagListCmd, tagCreateCmd, tagAddCmd, tagRemoveCmd)

	tagCreateCmd.Flags().String("color", "#95a5a6", "display color as #rrggbb")
}
