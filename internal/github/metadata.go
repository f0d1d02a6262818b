package github

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotGitHubURL = errors.New("not a github.com repository URL")

// Metadata is what the registry borrows from a GitHub repository.
type Metadata struct {
	Description string
	Languages   []string
}

// MetadataFetcher looks up registry metadata for clone URLs hosted on github.com.
type MetadataFetcher struct {
	client GitHubClient
}

func NewMetadataFetcher(client GitHubClient) *MetadataFetcher {
	return &MetadataFetcher{client: client}
}

// Fetch returns ErrNotGitHubURL for URLs that do not point at github.com.
func (f *MetadataFetcher) Fetch(ctx context.Context, url string) (*Metadata, error) {
	owner, repo, ok := ParseRepoURL(url)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotGitHubURL, url)
	}

	repository, err := f.client.GetRepository(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	languages, err := f.client.ListLanguages(ctx, owner, repo)
	if err != nil {
		return nil, err
	}

	return &Metadata{
		Description: repository.Description,
		Languages:   languages,
	}, nil
}
