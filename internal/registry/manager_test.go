package registry

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/jakoblorz/project-manager/internal/editor"
	"github.com/jakoblorz/project-manager/internal/filesystem"
	"github.com/jakoblorz/project-manager/internal/git"
	"github.com/jakoblorz/project-manager/internal/github"
	"github.com/jakoblorz/project-manager/internal/models"
	"github.com/jakoblorz/project-manager/internal/paths"
	"github.com/jakoblorz/project-manager/internal/prompt"
	"github.com/jakoblorz/project-manager/internal/source"
	"github.com/stretchr/testify/require"
)

const testRoot = "/home/tester/my_projects"

type fixture struct {
	fs       *filesystem.MockFileSystem
	git      *git.MockGitClient
	editor   *editor.MockLauncher
	github   *github.MockClient
	prompter *prompt.Scripted
	cfg      *models.ProjectConfig
}

func newFixture(answers ...string) *fixture {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(testRoot)
	return &fixture{
		fs:       fs,
		git:      git.NewMockGitClient(fs),
		editor:   editor.NewMockLauncher(),
		github:   github.NewMockClient(),
		prompter: prompt.NewScripted(answers...),
		cfg:      models.NewProjectConfig("code"),
	}
}

func (f *fixture) manager(options ...Option) *Manager {
	logger := log.New(io.Discard)
	fetcher := source.NewDefaultDispatcher(source.NewGitFetcher(f.fs, f.git, logger))
	options = append([]Option{WithGitClient(f.git), WithEditor(f.editor)}, options...)
	return NewManager(f.cfg, f.fs, newTestResolver(f.fs), fetcher, f.prompter, logger, options...)
}

func (f *fixture) register(name, path string, src *models.Source) *models.Project {
	p := &models.Project{Name: name, Path: path, Languages: []string{}, Source: src}
	f.cfg.AddProject(p)
	return p
}

func gitSource(url string) *models.Source {
	return &models.Source{Type: models.SourceTypeGit, URL: url}
}

func TestManager_FindAfterAdd(t *testing.T) {
	f := newFixture("sample", "")
	m := f.manager()

	_, err := m.Find("sample")
	require.True(t, errors.Is(err, ErrNotFound))

	added, err := m.AddFromSource(context.Background(), gitSource("https://example.com/org/sample.git"))
	require.NoError(t, err)

	found, err := m.Find("sample")
	require.NoError(t, err)
	require.Same(t, added, found)

	_, err = m.Find("Sample")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestManager_AddFromSourceThenList(t *testing.T) {
	f := newFixture("sample", "")
	m := f.manager()

	p, err := m.AddFromSource(context.Background(), gitSource("https://example.com/org/sample.git"))
	require.NoError(t, err)
	require.Equal(t, "sample", p.Path)
	require.Equal(t, "", p.DescriptionOrEmpty())
	require.Empty(t, f.git.Clones())
	require.False(t, f.fs.Exists(testRoot+"/sample"))

	listing := m.List(models.ListFilter{Path: true})
	require.Equal(t, []string{"Name", "Path"}, listing.Header)
	require.Equal(t, [][]string{{"sample", "sample"}}, listing.Rows)

	require.Equal(t, []string{"Enter project name: ", "Enter project description: "}, f.prompter.Prompts())
}

func TestManager_AddFromSourceRepromptsOnCollision(t *testing.T) {
	f := newFixture("api", "api-v2", "second api")
	f.register("api", "api", nil)
	m := f.manager()

	p, err := m.AddFromSource(context.Background(), gitSource("git@example.com:org/api.git"))
	require.NoError(t, err)
	require.Equal(t, "api-v2", p.Name)
	require.Equal(t, "second api", p.DescriptionOrEmpty())
	require.Equal(t, []string{"Enter project name: ", "Enter project name: ", "Enter project description: "}, f.prompter.Prompts())
	require.Equal(t, []string{"api", "api-v2"}, f.cfg.ProjectNames())
}

func TestManager_AddFromSourceEmptyNameTakesPath(t *testing.T) {
	f := newFixture("   ", "")
	m := f.manager()

	p, err := m.AddFromSource(context.Background(), &models.Source{Type: models.SourceTypeWeb, URL: "https://example.com/docs/handbook/"})
	require.NoError(t, err)
	require.Equal(t, "handbook", p.Name)
	require.Equal(t, "handbook", p.Path)
	require.Equal(t, models.SourceTypeWeb, p.Source.Type)
}

func TestManager_AddFromSourceInvalidURL(t *testing.T) {
	f := newFixture("x", "")
	m := f.manager()

	_, err := m.AddFromSource(context.Background(), gitSource("https://example.com/"))
	require.True(t, errors.Is(err, ErrInvalidSourceURL))
	require.Empty(t, f.prompter.Prompts())
	require.Empty(t, f.cfg.Projects)
}

func TestManager_AddFromSourceGitHubMetadata(t *testing.T) {
	f := newFixture("tool", "", "lib", "my own words")
	f.github.SetupRepository("org", "tool", "A useful tool", "Go", "Shell")
	f.github.SetupRepository("org", "lib", "Upstream words", "Rust")
	m := f.manager(WithMetadata(github.NewMetadataFetcher(f.github)))
	ctx := context.Background()

	tool, err := m.AddFromSource(ctx, gitSource("https://github.com/org/tool.git"))
	require.NoError(t, err)
	require.Equal(t, "A useful tool", tool.DescriptionOrEmpty())
	require.Equal(t, []string{"Go", "Shell"}, tool.Languages)

	lib, err := m.AddFromSource(ctx, gitSource("git@github.com:org/lib.git"))
	require.NoError(t, err)
	require.Equal(t, "my own words", lib.DescriptionOrEmpty())
	require.Equal(t, []string{"Rust"}, lib.Languages)
}

func TestManager_AddFromSourceMetadataFailureIsNotFatal(t *testing.T) {
	f := newFixture("tool", "")
	f.github.GetRepositoryError = errors.New("rate limited")
	m := f.manager(WithMetadata(github.NewMetadataFetcher(f.github)))

	p, err := m.AddFromSource(context.Background(), gitSource("https://github.com/org/tool"))
	require.NoError(t, err)
	require.Equal(t, []string{}, p.Languages)
	require.Len(t, f.cfg.Projects, 1)
}

func TestManager_AddFromDirectory(t *testing.T) {
	f := newFixture("", "payments backend")
	dir := testRoot + "/work/payments"
	f.fs.AddFile(dir+"/go.mod", []byte("module github.com/org/payments-service\n"))
	f.fs.AddDir(dir + "/.git")
	f.git.SetRemote(dir, "origin", "git@example.com:org/payments.git")
	m := f.manager()

	p, err := m.AddFromDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, &models.Project{
		Name:        "payments-service",
		Path:        "work/payments",
		Description: p.Description,
		Languages:   []string{"Go"},
		Source:      gitSource("git@example.com:org/payments.git"),
	}, p)
	require.Equal(t, "payments backend", p.DescriptionOrEmpty())
	require.Same(t, p, f.cfg.FindProject("payments-service"))
}

func TestManager_AddFromDirectoryWithoutRemote(t *testing.T) {
	f := newFixture("notes", "")
	f.fs.AddDir(testRoot + "/notes/.git")
	f.fs.AddDir(testRoot + "/scratch")
	m := f.manager()

	p, err := m.AddFromDirectory(context.Background(), testRoot+"/notes")
	require.NoError(t, err)
	require.Nil(t, p.Source)

	f.prompter = prompt.NewScripted("scratch", "")
	p, err = f.manager().AddFromDirectory(context.Background(), testRoot+"/scratch")
	require.NoError(t, err)
	require.Nil(t, p.Source)
	require.Equal(t, []string{}, p.Languages)
}

func TestManager_AddFromDirectoryOutsideRoot(t *testing.T) {
	f := newFixture("elsewhere", "")
	f.fs.AddDir("/home/tester/elsewhere")
	m := f.manager()

	_, err := m.AddFromDirectory(context.Background(), "/home/tester/elsewhere")
	require.True(t, errors.Is(err, paths.ErrPathOutsideRoot))
	require.Empty(t, f.cfg.Projects)
	require.Empty(t, f.prompter.Prompts())
}

func TestManager_ResolveOrFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("existing directory is not fetched", func(t *testing.T) {
		f := newFixture()
		f.fs.AddDir(testRoot + "/api")
		p := f.register("api", "api", gitSource("git@example.com:org/api.git"))

		dir, err := f.manager().ResolveOrFetch(ctx, p)
		require.NoError(t, err)
		require.Equal(t, testRoot+"/api", dir)
		require.Empty(t, f.git.Clones())
	})

	t.Run("missing directory without source", func(t *testing.T) {
		f := newFixture()
		p := f.register("api", "api", nil)
		before := f.fs.Paths()

		_, err := f.manager().ResolveOrFetch(ctx, p)
		require.True(t, errors.Is(err, ErrSourceUnavailable))
		require.Equal(t, before, f.fs.Paths())
	})

	t.Run("missing directory is cloned", func(t *testing.T) {
		f := newFixture()
		p := f.register("api", "go/api", gitSource("git@example.com:org/api.git"))

		dir, err := f.manager().ResolveOrFetch(ctx, p)
		require.NoError(t, err)
		require.Equal(t, testRoot+"/go/api", dir)
		require.True(t, f.fs.IsDir(testRoot+"/go/api/.git"))
		require.Len(t, f.git.Clones(), 1)
	})

	t.Run("web source cannot be fetched", func(t *testing.T) {
		f := newFixture()
		p := f.register("docs", "docs", &models.Source{Type: models.SourceTypeWeb, URL: "https://example.com/docs"})

		_, err := f.manager().ResolveOrFetch(ctx, p)
		require.True(t, errors.Is(err, source.ErrUnsupportedSourceType))
		require.False(t, f.fs.Exists(testRoot+"/docs"))
	})

	t.Run("credential failure", func(t *testing.T) {
		f := newFixture()
		f.git.CloneError = git.ErrAuthenticationFailed
		p := f.register("api", "api", gitSource("git@example.com:org/api.git"))

		_, err := f.manager().ResolveOrFetch(ctx, p)
		require.True(t, errors.Is(err, source.ErrCredentials))
		require.False(t, f.fs.Exists(testRoot+"/api"))
	})
}

func TestManager_Navigate(t *testing.T) {
	f := newFixture()
	f.fs.AddDir(testRoot + "/api")
	f.register("api", "api", nil)
	m := f.manager()

	dir, err := m.Navigate(context.Background(), "api")
	require.NoError(t, err)
	require.Equal(t, testRoot+"/api", dir)

	_, err = m.Navigate(context.Background(), "web")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestManager_Open(t *testing.T) {
	f := newFixture()
	f.register("api", "api", gitSource("git@example.com:org/api.git"))
	m := f.manager()

	require.NoError(t, m.Open(context.Background(), "api"))
	require.Equal(t, []editor.Launch{{Editor: "code", Dir: testRoot + "/api"}}, f.editor.Launches())
	require.True(t, f.fs.IsDir(testRoot+"/api"))

	f.editor.ExitCode = 2
	require.NoError(t, m.Open(context.Background(), "api"))
	require.Len(t, f.git.Clones(), 1)

	f.editor.LaunchError = errors.New("failed to start editor code: not found")
	require.Error(t, m.Open(context.Background(), "api"))
}

func TestManager_OpenWithoutSourceDoesNotLaunch(t *testing.T) {
	f := newFixture()
	f.register("api", "api", nil)

	err := f.manager().Open(context.Background(), "api")
	require.True(t, errors.Is(err, ErrSourceUnavailable))
	require.Empty(t, f.editor.Launches())
}

func TestManager_Remove(t *testing.T) {
	tests := []struct {
		name          string
		answers       []string
		aborted       bool
		unregistered  bool
		directoryGone bool
	}{
		{name: "declined", answers: []string{"n"}, aborted: true},
		{name: "empty answer declines", answers: []string{""}, aborted: true},
		{name: "delete directory keep entry", answers: []string{"y", "no"}, directoryGone: true},
		{name: "delete everything", answers: []string{"YES", "y"}, unregistered: true, directoryGone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(tt.answers...)
			f.fs.AddFile(testRoot+"/api/main.go", []byte("package main\n"))
			f.register("api", "api", nil)
			f.register("web", "web", nil)

			result, err := f.manager().Remove("api")
			require.NoError(t, err)
			require.Equal(t, tt.aborted, result.Aborted)
			require.Equal(t, tt.unregistered, result.Unregistered)
			require.Equal(t, tt.directoryGone, result.DirectoryDeleted)
			require.Equal(t, testRoot+"/api", result.Directory)

			require.Equal(t, !tt.directoryGone, f.fs.Exists(testRoot+"/api"))
			require.Equal(t, !tt.unregistered, f.cfg.FindProject("api") != nil)
			require.NotNil(t, f.cfg.FindProject("web"))
			require.Zero(t, f.prompter.Remaining())
		})
	}
}

func TestManager_RemoveQuestions(t *testing.T) {
	f := newFixture("y", "y")
	f.register("api", "api", nil)

	result, err := f.manager().Remove("api")
	require.NoError(t, err)
	require.False(t, result.DirectoryDeleted)
	require.True(t, result.Unregistered)
	require.Equal(t, []string{
		"Are you sure you want to remove api? (y/N): ",
		"Do you want to remove api from the project list? (y/N): ",
	}, f.prompter.Prompts())
}

func TestManager_PathsEscapingRootAreRefused(t *testing.T) {
	for _, path := range []string{"../Documents", "", ".", "sub/../.."} {
		t.Run(path, func(t *testing.T) {
			f := newFixture("y", "y")
			f.fs.AddFile("/home/tester/Documents/taxes.pdf", []byte("%PDF"))
			f.fs.AddFile(testRoot+"/other/main.go", []byte("package main\n"))
			f.register("evil", path, gitSource("git@example.com:org/evil.git"))
			m := f.manager()
			before := f.fs.Paths()

			_, err := m.Remove("evil")
			require.True(t, errors.Is(err, paths.ErrPathOutsideRoot), "got %v", err)
			require.Empty(t, f.prompter.Prompts())

			_, err = m.Navigate(context.Background(), "evil")
			require.True(t, errors.Is(err, paths.ErrPathOutsideRoot), "got %v", err)
			require.Empty(t, f.git.Clones())

			err = m.Open(context.Background(), "evil")
			require.True(t, errors.Is(err, paths.ErrPathOutsideRoot), "got %v", err)
			require.Empty(t, f.editor.Launches())

			require.Equal(t, before, f.fs.Paths())
			require.Len(t, f.cfg.Projects, 1)
		})
	}
}

func TestManager_RemoveUnknown(t *testing.T) {
	f := newFixture("y", "y")

	_, err := f.manager().Remove("ghost")
	require.True(t, errors.Is(err, ErrNotFound))
	require.Empty(t, f.prompter.Prompts())
}

func TestManager_RemoveDeleteFailure(t *testing.T) {
	f := newFixture("y", "y")
	f.fs.AddDir(testRoot + "/api")
	f.fs.RemoveAllError = errors.New("permission denied")
	f.register("api", "api", nil)

	result, err := f.manager().Remove("api")
	require.Error(t, err)
	require.True(t, result.Unregistered)
	require.False(t, result.DirectoryDeleted)
}

func TestManager_List(t *testing.T) {
	f := newFixture()
	description := "Zeta service"
	f.cfg.AddProject(&models.Project{Name: "zeta", Path: "z", Description: &description, Languages: []string{"Go", "SQL"}})
	f.register("Alpha", "a", gitSource("git@example.com:org/a.git"))
	f.register("beta", "b", nil)
	m := f.manager()

	names := m.List(models.ListFilter{})
	require.Empty(t, names.Header)
	require.Equal(t, [][]string{{"Alpha"}, {"beta"}, {"zeta"}}, names.Rows)

	full := m.List(models.ListFilter{Path: true, Description: true, Languages: true, Source: true})
	require.Equal(t, []string{"Name", "Path", "Description", "Languages", "Source"}, full.Header)
	require.Equal(t, [][]string{
		{"Alpha", "a", "", "", "git@example.com:org/a.git"},
		{"beta", "b", "", "", ""},
		{"zeta", "z", "Zeta service", "Go, SQL", ""},
	}, full.Rows)

	// listing never reorders the document
	require.Equal(t, []string{"zeta", "Alpha", "beta"}, f.cfg.ProjectNames())
}

func TestManager_ListEmpty(t *testing.T) {
	listing := newFixture().manager().List(models.ListFilter{Path: true})
	require.Equal(t, []string{"Name", "Path"}, listing.Header)
	require.Empty(t, listing.Rows)
}

func TestManager_Inspect(t *testing.T) {
	f := newFixture()
	f.fs.AddDir(testRoot + "/a")
	f.fs.AddDir(testRoot + "/b")
	f.register("a", "a", nil)

	unregistered, err := f.manager().Inspect()
	require.NoError(t, err)
	require.Equal(t, []string{"b"}, unregistered)
}

func TestManager_InspectSkipsHiddenFilesAndIgnored(t *testing.T) {
	f := newFixture()
	f.fs.AddDir(testRoot + "/.cache")
	f.fs.AddDir(testRoot + "/node_modules")
	f.fs.AddDir(testRoot + "/tmp-build")
	f.fs.AddDir(testRoot + "/zeta")
	f.fs.AddDir(testRoot + "/alpha")
	f.fs.AddDir(testRoot + "/go/tools")
	f.fs.AddFile(testRoot+"/README.md", []byte("# projects\n"))
	f.fs.AddFile(testRoot+"/"+IgnoreFileName, []byte("node_modules/\ntmp-*\n"))
	f.register("tools", "go/tools", nil)

	unregistered, err := f.manager().Inspect()
	require.NoError(t, err)
	require.Equal(t, []string{"alpha", "go", "zeta"}, unregistered)
}

func TestManager_InspectMissingRoot(t *testing.T) {
	f := newFixture()
	require.NoError(t, f.fs.RemoveAll(testRoot))

	_, err := f.manager().Inspect()
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read root directory")
}

func TestPathFromURL(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		invalid  bool
	}{
		{url: "https://example.com/org/sample.git", expected: "sample"},
		{url: "https://example.com/org/sample", expected: "sample"},
		{url: "https://example.com/org/sample/", expected: "sample"},
		{url: "git@example.com:sample.git", expected: "sample"},
		{url: "git@example.com:org/sample.git", expected: "sample"},
		{url: "/srv/git/sample.git", expected: "sample"},
		{url: "https://example.com", invalid: true},
		{url: "https://example.com/", invalid: true},
		{url: "https://example.com/org/.git", invalid: true},
		{url: "", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			got, err := PathFromURL(tt.url)
			if tt.invalid {
				require.True(t, errors.Is(err, ErrInvalidSourceURL))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, got)
		})
	}
}
