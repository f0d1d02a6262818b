package github

import "context"

// GitHubClient provides an abstraction over the GitHub API calls used to
// enrich registry entries.
type GitHubClient interface {
	GetRepository(ctx context.Context, owner, repo string) (*Repository, error)
	ListLanguages(ctx context.Context, owner, repo string) ([]string, error)
}

// Repository represents a GitHub repository
type Repository struct {
	Owner       string
	Name        string
	FullName    string
	URL         string
	Description string
}
