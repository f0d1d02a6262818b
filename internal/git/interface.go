package git

import (
	"context"
	"errors"
)

var (
	// ErrAuthenticationFailed is returned when the remote rejected the
	// available credentials (or none were available).
	ErrAuthenticationFailed = errors.New("git authentication failed")

	// ErrRemoteNotFound is returned when a repository has no such remote.
	ErrRemoteNotFound = errors.New("git remote not found")
)

// GitClient provides an abstraction over git operations for testability
//
// Authentication is always non-interactive: the client relies on the
// caller's SSH agent (or credential helper) and never prompts for a
// password or token.
type GitClient interface {
	// Clone performs a full clone of url into dir. dir must not exist.
	Clone(ctx context.Context, url, dir string) error

	// RemoteURL returns the configured URL of the named remote in the
	// repository at dir.
	RemoteURL(ctx context.Context, dir, remote string) (string, error)
}
