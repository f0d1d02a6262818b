package github

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client implements GitHubClient using the real GitHub API
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client
func NewClient(token string) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
	}
}

// NewClientWithoutAuth creates a GitHub client without authentication (for public operations)
func NewClientWithoutAuth() *Client {
	return &Client{
		client: github.NewClient(nil),
	}
}

// NewClientFromEnv authenticates with GH_TOKEN or GITHUB_TOKEN and falls back
// to anonymous access when neither is set.
func NewClientFromEnv() *Client {
	token := os.Getenv("GH_TOKEN")
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return NewClientWithoutAuth()
	}

	return NewClient(token)
}

func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	repository, _, err := c.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to get repository: %w", err)
	}

	return &Repository{
		Owner:       repository.GetOwner().GetLogin(),
		Name:        repository.GetName(),
		FullName:    repository.GetFullName(),
		URL:         repository.GetHTMLURL(),
		Description: repository.GetDescription(),
	}, nil
}

// ListLanguages returns the repository's languages, largest first.
func (c *Client) ListLanguages(ctx context.Context, owner, repo string) ([]string, error) {
	languages, _, err := c.client.Repositories.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}

	return rankLanguages(languages), nil
}

func rankLanguages(bytesByLanguage map[string]int) []string {
	names := make([]string, 0, len(bytesByLanguage))
	for name := range bytesByLanguage {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if bytesByLanguage[names[i]] != bytesByLanguage[names[j]] {
			return bytesByLanguage[names[i]] > bytesByLanguage[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
