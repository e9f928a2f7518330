// ABOUTME: MCP server command for feedboard
// ABOUTME: Starts the stdio MCP server so AI agents can read and manage feeds

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/feedboard/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI agents",
	Long: `Start the Model Context Protocol (MCP) server on stdio.

This allows AI agents like Claude to list and refresh your feeds, query
items, and manage subscriptions, tags, and read state through structured tools.

The server communicates via JSON-RPC on stdin/stdout. Logs go to stderr.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := mcp.NewServer(store, newFetcher(), logger)
		if err := server.ServeStdio(); err != nil {
			return fmt.Errorf("MCP server error: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
