// ABOUTME: YAML file storage backend keeping the whole collection in one human-editable document
// ABOUTME: Writes are atomic and serialized by a mutex; loads tolerate a missing file

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/harper/feedboard/internal/models"
)

// YAMLFilename is the collection file inside the data directory.
const YAMLFilename = "feedboard.yaml"

// yamlVersion is bumped when the document layout changes incompatibly.
const yamlVersion = 1

type yamlDocument struct {
	Version    int                `yaml:"version"`
	Collection *models.Collection `yaml:"collection"`
}

// YAMLStore keeps the collection in dataDir/feedboard.yaml.
type YAMLStore struct {
	path   string
	mu     sync.Mutex
	closed bool
}

// Compile-time check that YAMLStore implements Store.
var _ Store = (*YAMLStore)(nil)

// NewYAMLStore creates a YAML-backed store rooted at dataDir.
func NewYAMLStore(dataDir string) (*YAMLStore, error) {
	if err := EnsureDir(dataDir); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &YAMLStore{path: filepath.Join(dataDir, YAMLFilename)}, nil
}

// Path returns the collection file path.
func (s *YAMLStore) Path() string {
	return s.path
}

// Load reads the collection file.
func (s *YAMLStore) Load(ctx context.Context) (*models.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	var doc yamlDocument
	if err := ReadYAML(s.path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.DefaultCollection(), nil
		}
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if doc.Version > yamlVersion {
		return nil, fmt.Errorf("load collection: unsupported file version %d", doc.Version)
	}
	if doc.Collection == nil {
		return models.DefaultCollection(), nil
	}
	return normalize(doc.Collection), nil
}

// Save writes the collection file atomically.
func (s *YAMLStore) Save(ctx context.Context, c *models.Collection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if err := WriteYAML(s.path, yamlDocument{Version: yamlVersion, Collection: c}); err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}

// Close marks the store closed. There are no open handles between calls.
func (s *YAMLStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
