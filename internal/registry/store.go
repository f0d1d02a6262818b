// Package registry owns the project registry: loading and saving the
// registry document and the operations performed on it.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/project-manager/internal/filesystem"
	"github.com/jakoblorz/project-manager/internal/models"
	"github.com/jakoblorz/project-manager/internal/paths"
)

const fallbackEditor = "vi"

// Store persists the registry document at the resolver's config path.
type Store struct {
	fs       filesystem.FileSystem
	resolver *paths.Resolver
	logger   *log.Logger
	getenv   func(string) string
}

// NewStore creates a new Store
func NewStore(fs filesystem.FileSystem, resolver *paths.Resolver, logger *log.Logger) *Store {
	return &Store{
		fs:       fs,
		resolver: resolver,
		logger:   logger,
		getenv:   os.Getenv,
	}
}

// DefaultEditor picks $VISUAL, then $EDITOR, then vi.
func DefaultEditor(getenv func(string) string) string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if editor := getenv(key); editor != "" {
			return editor
		}
	}
	return fallbackEditor
}

// Default returns a fresh, empty registry.
func (s *Store) Default() *models.ProjectConfig {
	return models.NewProjectConfig(DefaultEditor(s.getenv))
}

// Load returns the registry document, creating it with defaults on first
// use. Load never fails: an unreadable or corrupt document is reported as a
// warning and replaced by an in-memory default. The file itself is left
// untouched in that case.
func (s *Store) Load() *models.ProjectConfig {
	cfg, err := s.load()
	if err != nil {
		s.logger.Warn("Using default configuration", "error", err)
		return s.Default()
	}
	return cfg
}

func (s *Store) load() (*models.ProjectConfig, error) {
	path, err := s.resolver.ConfigFile()
	if err != nil {
		return nil, err
	}

	if !s.fs.Exists(path) {
		s.logger.Debug("Initializing registry", "path", path)
		if err := s.Save(s.Default()); err != nil {
			return nil, err
		}
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg models.ProjectConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Projects == nil {
		cfg.Projects = []*models.Project{}
	}

	return &cfg, nil
}

// Save writes the document as indented JSON. The bytes go to a sibling
// temp file first and are renamed over the target, so a failed save keeps
// the previous document.
func (s *Store) Save(cfg *models.ProjectConfig) error {
	path, err := s.resolver.ConfigFile()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	data = append(data, '\n')

	if err := s.fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := s.fs.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace registry: %w", err)
	}

	return nil
}
