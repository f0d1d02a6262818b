package git

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jakoblorz/project-manager/internal/filesystem"
)

// MockGitClient implements GitClient for testing. When constructed with a
// MockFileSystem, clones materialize a minimal working tree in it.
type MockGitClient struct {
	mu      sync.RWMutex
	fs      *filesystem.MockFileSystem
	remotes map[string]map[string]string // key: repo dir -> remote name -> url
	clones  []CloneCall

	// Hooks for testing error scenarios
	CloneError     error
	RemoteURLError error
}

// CloneCall records a single Clone invocation
type CloneCall struct {
	URL string
	Dir string
}

// NewMockGitClient creates a new MockGitClient. fs may be nil.
func NewMockGitClient(fs *filesystem.MockFileSystem) *MockGitClient {
	return &MockGitClient{
		fs:      fs,
		remotes: make(map[string]map[string]string),
	}
}

// SetRemote configures a remote for the repository at dir
func (m *MockGitClient) SetRemote(dir, name, url string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dir = filepath.Clean(dir)
	if m.remotes[dir] == nil {
		m.remotes[dir] = make(map[string]string)
	}
	m.remotes[dir][name] = url
}

// Clones returns all recorded Clone calls
func (m *MockGitClient) Clones() []CloneCall {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]CloneCall(nil), m.clones...)
}

func (m *MockGitClient) Clone(ctx context.Context, url, dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clones = append(m.clones, CloneCall{URL: url, Dir: dir})

	if err := ctx.Err(); err != nil {
		return err
	}
	if m.CloneError != nil {
		return m.CloneError
	}

	if m.fs != nil {
		if m.fs.Exists(dir) {
			return fmt.Errorf("failed to clone %s: destination path '%s' already exists", url, dir)
		}
		m.fs.AddDir(filepath.Join(dir, ".git"))
		m.fs.AddFile(filepath.Join(dir, "README.md"), []byte("cloned from "+url+"\n"))

		clean := filepath.Clean(dir)
		m.remotes[clean] = map[string]string{"origin": url}
	}

	return nil
}

func (m *MockGitClient) RemoteURL(ctx context.Context, dir, remote string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.RemoteURLError != nil {
		return "", m.RemoteURLError
	}

	url, ok := m.remotes[filepath.Clean(dir)][remote]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRemoteNotFound, remote)
	}
	return url, nil
}
