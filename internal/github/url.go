package github

import (
	"net/url"
	"strings"
)

const host = "github.com"

// ParseRepoURL extracts owner and repository from a github.com clone URL.
// It understands https, ssh:// and scp-like (git@github.com:owner/repo.git)
// forms and reports false for anything else.
func ParseRepoURL(raw string) (owner, repo string, ok bool) {
	raw = strings.TrimSpace(raw)

	var repoPath string
	if rest, found := strings.CutPrefix(raw, "git@"+host+":"); found {
		repoPath = rest
	} else {
		u, err := url.Parse(raw)
		if err != nil || !strings.EqualFold(u.Hostname(), host) {
			return "", "", false
		}
		repoPath = u.Path
	}

	repoPath = strings.Trim(repoPath, "/")
	repoPath = strings.TrimSuffix(repoPath, ".git")
	parts := strings.Split(repoPath, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
