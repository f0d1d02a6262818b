package source

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/project-manager/internal/filesystem"
	"github.com/jakoblorz/project-manager/internal/git"
	"github.com/jakoblorz/project-manager/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const tempAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GitFetcher clones git sources. The clone goes to a hidden sibling of the
// target and is renamed into place once complete.
type GitFetcher struct {
	fs     filesystem.FileSystem
	git    git.GitClient
	logger *log.Logger
}

var _ Fetcher = (*GitFetcher)(nil)

// NewGitFetcher creates a new GitFetcher
func NewGitFetcher(fs filesystem.FileSystem, gitClient git.GitClient, logger *log.Logger) *GitFetcher {
	return &GitFetcher{fs: fs, git: gitClient, logger: logger}
}

func (f *GitFetcher) Fetch(ctx context.Context, src *models.Source, target string) (string, error) {
	if f.fs.Exists(target) {
		return "", fmt.Errorf("failed to fetch %s: %s already exists", src.URL, target)
	}

	parent := filepath.Dir(target)
	if err := f.fs.MkdirAll(parent, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", parent, err)
	}

	tmp, err := tempSibling(target)
	if err != nil {
		return "", err
	}

	f.logger.Info("Cloning", "url", src.URL, "into", target)
	if err := f.git.Clone(ctx, src.URL, tmp); err != nil {
		if rmErr := f.fs.RemoveAll(tmp); rmErr != nil {
			f.logger.Warn("Failed to clean up partial clone", "dir", tmp, "error", rmErr)
		}
		if errors.Is(err, git.ErrAuthenticationFailed) {
			return "", fmt.Errorf("%w: %v", ErrCredentials, err)
		}
		return "", err
	}

	if err := f.fs.Rename(tmp, target); err != nil {
		_ = f.fs.RemoveAll(tmp)
		return "", fmt.Errorf("failed to move clone into %s: %w", target, err)
	}

	return target, nil
}

// tempSibling returns <dir>/.<name>.pm-<id> next to target.
func tempSibling(target string) (string, error) {
	id, err := gonanoid.Generate(tempAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate temp name: %w", err)
	}
	return filepath.Join(filepath.Dir(target), fmt.Sprintf(".%s.pm-%s", filepath.Base(target), id)), nil
}
