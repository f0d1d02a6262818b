package github

import (
	"context"
	"fmt"
	"sync"
)

// MockClient implements GitHubClient for testing
type MockClient struct {
	mu           sync.RWMutex
	repositories map[string]*Repository // key: "owner/repo"
	languages    map[string][]string    // key: "owner/repo"
	calls        []string

	// Hooks for testing error scenarios
	GetRepositoryError error
	ListLanguagesError error
}

// NewMockClient creates a new MockClient
func NewMockClient() *MockClient {
	return &MockClient{
		repositories: make(map[string]*Repository),
		languages:    make(map[string][]string),
	}
}

// SetupRepository adds a repository to the mock
func (m *MockClient) SetupRepository(owner, repo, description string, languages ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s/%s", owner, repo)
	m.repositories[key] = &Repository{
		Owner:       owner,
		Name:        repo,
		FullName:    key,
		URL:         fmt.Sprintf("https://github.com/%s/%s", owner, repo),
		Description: description,
	}
	m.languages[key] = languages
}

// Calls returns the "owner/repo" keys requested so far, in order.
func (m *MockClient) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]string(nil), m.calls...)
}

func (m *MockClient) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	key := fmt.Sprintf("%s/%s", owner, repo)

	m.mu.Lock()
	m.calls = append(m.calls, key)
	m.mu.Unlock()

	if m.GetRepositoryError != nil {
		return nil, m.GetRepositoryError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	repository, exists := m.repositories[key]
	if !exists {
		return nil, fmt.Errorf("repository %s not found", key)
	}
	return repository, nil
}

func (m *MockClient) ListLanguages(ctx context.Context, owner, repo string) ([]string, error) {
	if m.ListLanguagesError != nil {
		return nil, m.ListLanguagesError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	key := fmt.Sprintf("%s/%s", owner, repo)
	if _, exists := m.repositories[key]; !exists {
		return nil, fmt.Errorf("repository %s not found", key)
	}
	return append([]string(nil), m.languages[key]...), nil
}
