// Package paths maps registry-relative project paths to absolute locations
// and back.
//
// Every project lives below a single root directory, <home>/<root_dir>.
// Paths stored in the registry are relative to that root; Register refuses
// directories that are not strictly inside it.
package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/jakoblorz/project-manager/internal/filesystem"
	"github.com/jakoblorz/project-manager/internal/models"
	"github.com/mitchellh/go-homedir"
)

const (
	// AppDirName is the directory below the user config dir holding the registry.
	AppDirName = "project-manager"

	// RegistryFileName is the registry document's file name.
	RegistryFileName = "projects.json"

	// EnvConfigDir replaces <user config dir>/project-manager when set.
	EnvConfigDir = "PM_CONFIG_DIR"
)

var (
	ErrPathOutsideRoot       = errors.New("path is outside the project root directory")
	ErrHomeUnresolvable      = errors.New("failed to get home directory")
	ErrConfigDirUnresolvable = errors.New("failed to get config directory")
)

// Resolver resolves registry paths against the user's home and config
// directories.
type Resolver struct {
	fs        filesystem.FileSystem
	homeDir   func() string
	configDir func() string
	getenv    func(string) string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithHomeDir pins the home directory (tests).
func WithHomeDir(dir string) Option {
	return func(r *Resolver) {
		r.homeDir = func() string { return dir }
	}
}

// WithConfigDir pins the user config directory (tests).
func WithConfigDir(dir string) Option {
	return func(r *Resolver) {
		r.configDir = func() string { return dir }
	}
}

// WithGetenv replaces the environment lookup (tests).
func WithGetenv(getenv func(string) string) Option {
	return func(r *Resolver) {
		r.getenv = getenv
	}
}

// NewResolver creates a Resolver backed by the XDG base directories.
func NewResolver(fs filesystem.FileSystem, options ...Option) *Resolver {
	r := &Resolver{
		fs:        fs,
		homeDir:   func() string { return xdg.Home },
		configDir: func() string { return xdg.ConfigHome },
		getenv:    os.Getenv,
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// ConfigFile returns the absolute path of the registry document.
func (r *Resolver) ConfigFile() (string, error) {
	if dir := r.getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, RegistryFileName), nil
	}

	configDir := r.configDir()
	if configDir == "" {
		return "", ErrConfigDirUnresolvable
	}
	return filepath.Join(configDir, AppDirName, RegistryFileName), nil
}

// RootDirectory returns <home>/<root_dir>.
func (r *Resolver) RootDirectory(cfg *models.ProjectConfig) (string, error) {
	home := r.homeDir()
	if home == "" {
		return "", ErrHomeUnresolvable
	}
	return filepath.Join(home, cfg.RootDir), nil
}

// ProjectDirectory returns the absolute location of a project path. Paths
// that do not name a directory strictly below the root are rejected.
func (r *Resolver) ProjectDirectory(cfg *models.ProjectConfig, relativePath string) (string, error) {
	root, err := r.RootDirectory(cfg)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(root, relativePath)
	rel, err := filepath.Rel(root, dir)
	if err != nil || !isDescendant(rel) {
		return "", fmt.Errorf("%w: project path %q", ErrPathOutsideRoot, relativePath)
	}
	return dir, nil
}

// Register canonicalizes an existing directory and returns its path relative
// to the root directory.
func (r *Resolver) Register(dir string, cfg *models.ProjectConfig) (string, error) {
	canonical, err := r.fs.Canonicalize(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve directory %s: %w", dir, err)
	}

	root, err := r.RootDirectory(cfg)
	if err != nil {
		return "", err
	}
	// the root may itself sit behind a symlink
	if canonicalRoot, err := r.fs.Canonicalize(root); err == nil {
		root = canonicalRoot
	}

	rel, err := filepath.Rel(root, canonical)
	if err != nil || !isDescendant(rel) {
		return "", fmt.Errorf("%w: %s is not inside %s", ErrPathOutsideRoot, canonical, root)
	}

	return rel, nil
}

// Expand resolves a leading ~ in a user-supplied path.
func Expand(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return expanded, nil
}

func isDescendant(rel string) bool {
	if rel == "." || rel == "" || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
