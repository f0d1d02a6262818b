package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// authFailureMarkers are stderr fragments git and ssh print when the
// remote refused our credentials.
var authFailureMarkers = []string{
	"permission denied (publickey",
	"authentication failed",
	"could not read username",
	"could not read password",
	"terminal prompts disabled",
	"host key verification failed",
}

// OSGitClient implements GitClient using real git commands
type OSGitClient struct {
	binary string
}

// NewOSGitClient creates a new OSGitClient
func NewOSGitClient() *OSGitClient {
	return &OSGitClient{binary: "git"}
}

// Clone runs `git clone -- <url> <dir>` with prompts disabled.
func (g *OSGitClient) Clone(ctx context.Context, url, dir string) error {
	cmd := exec.CommandContext(ctx, g.binary, "clone", "--", url, dir)
	cmd.Env = nonInteractiveEnv(os.Environ())

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if isAuthFailure(msg) {
			return fmt.Errorf("%w: cloning %s: %s", ErrAuthenticationFailed, url, msg)
		}
		return fmt.Errorf("failed to clone %s: %w: %s", url, err, msg)
	}

	return nil
}

// RemoteURL reads remote.<name>.url from the repository config
func (g *OSGitClient) RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	cmd := exec.CommandContext(ctx, g.binary, "-C", dir, "config", "--get", fmt.Sprintf("remote.%s.url", remote))

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		// git config exits with 1 when the key is not set
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, remote)
		}
		return "", fmt.Errorf("failed to read remote %s: %w", remote, err)
	}

	url := strings.TrimSpace(out.String())
	if url == "" {
		return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, remote)
	}
	return url, nil
}

// nonInteractiveEnv disables every way git could block on a credential prompt.
// An explicit GIT_SSH_COMMAND from the user is left alone.
func nonInteractiveEnv(base []string) []string {
	env := append([]string{}, base...)
	env = append(env, "GIT_TERMINAL_PROMPT=0")

	hasSSHCommand := false
	for _, kv := range base {
		if strings.HasPrefix(kv, "GIT_SSH_COMMAND=") {
			hasSSHCommand = true
			break
		}
	}
	if !hasSSHCommand {
		env = append(env, "GIT_SSH_COMMAND=ssh -o BatchMode=yes")
	}
	return env
}

func isAuthFailure(stderr string) bool {
	lower := strings.ToLower(stderr)
	for _, marker := range authFailureMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
