// ABOUTME: MCP server implementation for feedboard
// ABOUTME: Provides tools, resources, and prompts for AI agents to read and manage subscribed feeds

package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/harper/feedboard/internal/models"
	"github.com/harper/feedboard/internal/refresh"
	"github.com/harper/feedboard/internal/storage"
)

// Server wraps the MCP server with feedboard-specific context
type Server struct {
	mcpServer *server.MCPServer
	store     storage.Store
	fetcher   refresh.Fetcher
	logger    *slog.Logger
	now       func() time.Time

	// Serializes load-modify-save cycles against the store.
	mu sync.Mutex
}

// NewServer creates a new MCP server instance. A nil logger discards output.
func NewServer(store storage.Store, fetcher refresh.Fetcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		store:   store,
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}

	s.mcpServer = server.NewMCPServer(
		"feedboard",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

// ServeStdio starts the MCP server on stdio
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// view loads the collection for a read-only handler.
func (s *Server) view(ctx context.Context) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return coll, nil
}

// update loads the collection, applies fn, and saves the result unless fn fails.
func (s *Server) update(ctx context.Context, fn func(*models.Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load collection: %w", err)
	}
	if err := fn(coll); err != nil {
		return err
	}
	if err := s.store.Save(ctx, coll); err != nil {
		return fmt.Errorf("failed to save collection: %w", err)
	}
	return nil
}

// refresher builds a refresh service bound to the collection's settings.
func (s *Server) refresher(coll *models.Collection) *refresh.Service {
	return refresh.NewService(s.fetcher, coll.Media, coll.AvailableTags, s.logger, refresh.WithClock(s.now))
}
