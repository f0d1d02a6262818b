package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/jakoblorz/project-manager/internal/editor"
	"github.com/jakoblorz/project-manager/internal/filesystem"
	"github.com/jakoblorz/project-manager/internal/git"
	"github.com/jakoblorz/project-manager/internal/github"
	"github.com/jakoblorz/project-manager/internal/models"
	"github.com/jakoblorz/project-manager/internal/paths"
	"github.com/jakoblorz/project-manager/internal/prompt"
	"github.com/stretchr/testify/require"
)

const (
	testHome       = "/home/tester"
	testRoot       = "/home/tester/my_projects"
	testConfigFile = "/home/tester/.config/project-manager/projects.json"
)

type testEnv struct {
	fs       *filesystem.MockFileSystem
	git      *git.MockGitClient
	github   *github.MockClient
	editor   *editor.MockLauncher
	resolver *paths.Resolver
}

func newTestEnv() *testEnv {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(testRoot)

	return &testEnv{
		fs:     fs,
		git:    git.NewMockGitClient(fs),
		github: github.NewMockClient(),
		editor: editor.NewMockLauncher(),
		resolver: paths.NewResolver(fs,
			paths.WithHomeDir(testHome),
			paths.WithConfigDir(testHome+"/.config"),
			paths.WithGetenv(func(string) string { return "" }),
		),
	}
}

type runResult struct {
	stdout string
	stderr string
	err    error
}

func (e *testEnv) run(prompter prompt.Prompter, picker Picker, args ...string) runResult {
	if prompter == nil {
		prompter = prompt.NewScripted()
	}

	rootCmd := NewRootCommand(&Dependencies{
		FS:       e.fs,
		Git:      e.git,
		GitHub:   e.github,
		Editor:   e.editor,
		Resolver: e.resolver,
		Prompter: prompter,
		Picker:   picker,
	})

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return runResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func (e *testEnv) seed(t *testing.T, projects ...*models.Project) {
	t.Helper()

	cfg := models.NewProjectConfig("code")
	for _, p := range projects {
		if p.Languages == nil {
			p.Languages = []string{}
		}
		cfg.AddProject(p)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	require.NoError(t, err)
	e.fs.AddFile(testConfigFile, data)
}

func (e *testEnv) registry(t *testing.T) *models.ProjectConfig {
	t.Helper()

	data, err := e.fs.ReadFile(testConfigFile)
	require.NoError(t, err)

	var cfg models.ProjectConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	return &cfg
}

// staticPicker always answers with the same name
type staticPicker struct {
	name  string
	calls [][]string
}

func (p *staticPicker) Pick(names []string) (string, error) {
	p.calls = append(p.calls, names)
	return p.name, nil
}

func ptr(s string) *string {
	return &s
}
