package editor

import (
	"context"
	"sync"
)

// Launch records a single MockLauncher invocation.
type Launch struct {
	Editor string
	Dir    string
}

// MockLauncher implements Launcher for testing
type MockLauncher struct {
	mu       sync.Mutex
	launches []Launch

	ExitCode    int
	LaunchError error
}

func NewMockLauncher() *MockLauncher {
	return &MockLauncher{}
}

func (m *MockLauncher) Launch(ctx context.Context, editor, dir string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.LaunchError != nil {
		return 0, m.LaunchError
	}

	m.launches = append(m.launches, Launch{Editor: editor, Dir: dir})
	return m.ExitCode, nil
}

// Launches returns the recorded invocations in order.
func (m *MockLauncher) Launches() []Launch {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]Launch(nil), m.launches...)
}
