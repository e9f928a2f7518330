// ABOUTME: Cobra command for interactive feedboard configuration.
// ABOUTME: Launches a bubbletea TUI wizard to select backend, data directory, and log level.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/config"
	"github.com/harper/feedboard/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:         "setup",
	Short:       "Configure feedboard storage and logging",
	Long:        "Interactive wizard to configure the storage backend, data directory, and log level.",
	Annotations: map[string]string{skipStore: "true"},
	RunE:        runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	model := tui.NewSetupModel(tui.Answers{Backend: c.Backend, DataDir: c.DataDir, LogLevel: c.LogLevel})

	p := tea.NewProgram(model, tea.WithContext(cmd.Context()))
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.SetupModel)
	out := cmd.OutOrStdout()
	if !final.ShouldSave() {
		fmt.Fprintln(out, "Setup canceled.")
		return nil
	}

	answers := final.Result()
	c.Backend = answers.Backend
	c.DataDir = answers.DataDir
	c.LogLevel = answers.LogLevel
	if err := c.Validate(); err != nil {
		return err
	}
	if err := c.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "Config saved to %s\n", config.GetConfigPath())
	return nil
}
