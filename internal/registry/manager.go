package registry

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/project-manager/internal/detect"
	"github.com/jakoblorz/project-manager/internal/editor"
	"github.com/jakoblorz/project-manager/internal/filesystem"
	"github.com/jakoblorz/project-manager/internal/git"
	"github.com/jakoblorz/project-manager/internal/github"
	"github.com/jakoblorz/project-manager/internal/models"
	"github.com/jakoblorz/project-manager/internal/paths"
	"github.com/jakoblorz/project-manager/internal/prompt"
	"github.com/jakoblorz/project-manager/internal/source"
)

const (
	// IgnoreFileName holds gitignore-style patterns for Inspect, relative to the root.
	IgnoreFileName = ".pmignore"

	namePrompt        = "Enter project name: "
	descriptionPrompt = "Enter project description: "
)

// MetadataSource supplies descriptions and languages for remote sources.
type MetadataSource interface {
	Fetch(ctx context.Context, url string) (*github.Metadata, error)
}

// Manager runs registry operations against a loaded ProjectConfig. It only
// mutates the in-memory document; persisting it is the caller's job.
type Manager struct {
	cfg      *models.ProjectConfig
	fs       filesystem.FileSystem
	resolver *paths.Resolver
	fetcher  source.Fetcher
	prompter prompt.Prompter
	logger   *log.Logger

	git      git.GitClient
	editor   editor.Launcher
	detector *detect.Detector
	metadata MetadataSource
}

// Option configures optional Manager collaborators.
type Option func(*Manager)

func WithGitClient(client git.GitClient) Option {
	return func(m *Manager) { m.git = client }
}

func WithEditor(launcher editor.Launcher) Option {
	return func(m *Manager) { m.editor = launcher }
}

// WithMetadata enables remote metadata lookups in AddFromSource.
func WithMetadata(metadata MetadataSource) Option {
	return func(m *Manager) { m.metadata = metadata }
}

// NewManager creates a Manager. Without options it uses the git binary and
// the exec editor launcher, and performs no remote metadata lookups.
func NewManager(
	cfg *models.ProjectConfig,
	fs filesystem.FileSystem,
	resolver *paths.Resolver,
	fetcher source.Fetcher,
	prompter prompt.Prompter,
	logger *log.Logger,
	options ...Option,
) *Manager {
	m := &Manager{
		cfg:      cfg,
		fs:       fs,
		resolver: resolver,
		fetcher:  fetcher,
		prompter: prompter,
		logger:   logger,
		git:      git.NewOSGitClient(),
		editor:   editor.NewExecLauncher(),
		detector: detect.NewDetector(fs),
	}

	for _, option := range options {
		option(m)
	}

	return m
}

// Config returns the document the manager operates on.
func (m *Manager) Config() *models.ProjectConfig {
	return m.cfg
}

// Find returns the project with exactly the given name.
func (m *Manager) Find(name string) (*models.Project, error) {
	project := m.cfg.FindProject(name)
	if project == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return project, nil
}

// ResolveOrFetch returns the project's directory, fetching it from the
// project's source when it does not exist yet.
func (m *Manager) ResolveOrFetch(ctx context.Context, project *models.Project) (string, error) {
	dir, err := m.resolver.ProjectDirectory(m.cfg, project.Path)
	if err != nil {
		return "", err
	}

	if m.fs.Exists(dir) {
		return dir, nil
	}

	if project.Source == nil {
		return "", fmt.Errorf("%w: %s (%s)", ErrSourceUnavailable, project.Name, dir)
	}

	m.logger.Debug("Fetching project", "name", project.Name, "url", project.Source.URL)
	fetched, err := m.fetcher.Fetch(ctx, project.Source, dir)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", project.Name, err)
	}

	return fetched, nil
}

// Open resolves the project and runs the configured editor on it.
func (m *Manager) Open(ctx context.Context, name string) error {
	project, err := m.Find(name)
	if err != nil {
		return err
	}

	dir, err := m.ResolveOrFetch(ctx, project)
	if err != nil {
		return err
	}

	return m.Edit(ctx, dir)
}

// Edit runs the configured editor on an arbitrary path and waits for it.
func (m *Manager) Edit(ctx context.Context, path string) error {
	m.logger.Debug("Launching editor", "editor", m.cfg.Editor, "path", path)
	code, err := m.editor.Launch(ctx, m.cfg.Editor, path)
	if err != nil {
		return err
	}
	if code != 0 {
		m.logger.Warn("Editor exited with non-zero status", "editor", m.cfg.Editor, "code", code)
	}
	return nil
}

// Navigate resolves the project and returns its absolute directory.
func (m *Manager) Navigate(ctx context.Context, name string) (string, error) {
	project, err := m.Find(name)
	if err != nil {
		return "", err
	}

	return m.ResolveOrFetch(ctx, project)
}

// AddFromDirectory registers an existing directory below the root.
func (m *Manager) AddFromDirectory(ctx context.Context, dir string) (*models.Project, error) {
	relativePath, err := m.resolver.Register(dir, m.cfg)
	if err != nil {
		return nil, err
	}

	projectDir, err := m.resolver.ProjectDirectory(m.cfg, relativePath)
	if err != nil {
		return nil, err
	}

	name, err := m.promptName(m.detector.SuggestName(projectDir))
	if err != nil {
		return nil, err
	}

	description, err := m.prompter.Prompt(descriptionPrompt)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Path:        relativePath,
		Description: &description,
		Languages:   m.detector.Languages(projectDir),
		Source:      m.detectSource(ctx, projectDir),
	}
	m.cfg.AddProject(project)

	return project, nil
}

// AddFromSource registers a project that only exists remotely. The path is
// the last URL element without ".git"; nothing is fetched.
func (m *Manager) AddFromSource(ctx context.Context, src *models.Source) (*models.Project, error) {
	relativePath, err := PathFromURL(src.URL)
	if err != nil {
		return nil, err
	}

	name, err := m.promptName(relativePath)
	if err != nil {
		return nil, err
	}

	description, err := m.prompter.Prompt(descriptionPrompt)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Name:        name,
		Path:        relativePath,
		Description: &description,
		Languages:   []string{},
		Source:      &models.Source{Type: src.Type, URL: src.URL},
	}
	m.enrich(ctx, project)
	m.cfg.AddProject(project)

	return project, nil
}

// RemoveResult describes what Remove did.
type RemoveResult struct {
	Aborted          bool
	Unregistered     bool
	DirectoryDeleted bool
	Directory        string
}

// Remove asks twice: whether to go ahead at all (declining changes
// nothing) and whether to drop the registry entry. Once past the first
// question the project directory is deleted if it exists.
func (m *Manager) Remove(name string) (*RemoveResult, error) {
	project, err := m.Find(name)
	if err != nil {
		return nil, err
	}

	dir, err := m.resolver.ProjectDirectory(m.cfg, project.Path)
	if err != nil {
		return nil, err
	}
	result := &RemoveResult{Directory: dir}

	confirmed, err := prompt.Confirm(m.prompter, fmt.Sprintf("Are you sure you want to remove %s?", name))
	if err != nil {
		return nil, err
	}
	if !confirmed {
		result.Aborted = true
		return result, nil
	}

	unregister, err := prompt.Confirm(m.prompter, fmt.Sprintf("Do you want to remove %s from the project list?", name))
	if err != nil {
		return nil, err
	}
	if unregister {
		result.Unregistered = m.cfg.RemoveProject(name)
	}

	if m.fs.Exists(dir) {
		if err := m.fs.RemoveAll(dir); err != nil {
			return result, fmt.Errorf("failed to delete %s: %w", dir, err)
		}
		result.DirectoryDeleted = true
	}

	return result, nil
}

// List projects the registry onto the requested columns, ordered by name
// without regard to case.
func (m *Manager) List(filter models.ListFilter) *models.Listing {
	projects := m.Sorted()
	columns := filter.Columns()

	listing := &models.Listing{Rows: make([][]string, 0, len(projects))}
	if len(columns) > 0 {
		listing.Header = []string{"Name"}
		for _, c := range columns {
			listing.Header = append(listing.Header, c.Header())
		}
	}

	for _, p := range projects {
		row := []string{p.Name}
		for _, c := range columns {
			row = append(row, c.Value(p))
		}
		listing.Rows = append(listing.Rows, row)
	}

	return listing
}

// Sorted returns the projects ordered case-insensitively by name.
func (m *Manager) Sorted() []*models.Project {
	projects := append([]*models.Project(nil), m.cfg.Projects...)
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := strings.ToLower(projects[i].Name), strings.ToLower(projects[j].Name)
		if a != b {
			return a < b
		}
		return projects[i].Name < projects[j].Name
	})
	return projects
}

// Inspect lists the root's immediate subdirectories that no project points
// at. Hidden directories and those matched by the root's .pmignore are skipped.
func (m *Manager) Inspect() ([]string, error) {
	root, err := m.resolver.RootDirectory(m.cfg)
	if err != nil {
		return nil, err
	}

	entries, err := m.fs.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read root directory %s: %w", root, err)
	}

	ignore, err := m.loadIgnore(root)
	if err != nil {
		return nil, err
	}

	registered := make(map[string]struct{}, len(m.cfg.Projects))
	for _, p := range m.cfg.Projects {
		registered[filepath.Clean(p.Path)] = struct{}{}
	}

	unregistered := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if _, ok := registered[name]; ok {
			continue
		}
		if ignore != nil {
			if match := ignore.Relative(name, true); match != nil && match.Ignore() {
				continue
			}
		}
		unregistered = append(unregistered, name)
	}

	sort.Strings(unregistered)
	return unregistered, nil
}

// PathFromURL derives a project path from the last path element of a source
// URL. Both scheme URLs and scp-like git addresses (host:org/repo.git) work.
func PathFromURL(url string) (string, error) {
	rest := strings.TrimSpace(url)
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+len("://"):]
		if j := strings.Index(rest, "/"); j >= 0 {
			rest = rest[j+1:]
		} else {
			rest = ""
		}
	} else if i := strings.Index(rest, ":"); i >= 0 {
		rest = rest[i+1:]
	}

	rest = strings.TrimRight(rest, "/")
	if i := strings.LastIndex(rest, "/"); i >= 0 {
		rest = rest[i+1:]
	}
	rest = strings.TrimSuffix(rest, ".git")

	if rest == "" || rest == "." || rest == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidSourceURL, url)
	}
	return rest, nil
}

// promptName asks until it gets a name not yet in the registry. An empty
// answer takes the suggestion.
func (m *Manager) promptName(suggestion string) (string, error) {
	for {
		name, err := m.prompter.Prompt(namePrompt)
		if err != nil {
			return "", err
		}

		name = strings.TrimSpace(name)
		if name == "" {
			if suggestion == "" {
				m.logger.Warn("Project name cannot be empty")
				continue
			}
			name = suggestion
		}

		if m.cfg.FindProject(name) != nil {
			m.logger.Warn("A project with this name already exists", "name", name)
			continue
		}

		return name, nil
	}
}

func (m *Manager) detectSource(ctx context.Context, dir string) *models.Source {
	if !m.fs.IsDir(filepath.Join(dir, ".git")) {
		return nil
	}

	url, err := m.git.RemoteURL(ctx, dir, "origin")
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			m.logger.Debug("Git repository without origin remote", "dir", dir)
		} else {
			m.logger.Warn("Failed to read origin remote", "dir", dir, "error", err)
		}
		return nil
	}

	return &models.Source{Type: models.SourceTypeGit, URL: url}
}

func (m *Manager) enrich(ctx context.Context, project *models.Project) {
	if m.metadata == nil {
		return
	}

	meta, err := m.metadata.Fetch(ctx, project.Source.URL)
	if err != nil {
		if errors.Is(err, github.ErrNotGitHubURL) {
			return
		}
		m.logger.Warn("Failed to fetch repository metadata", "url", project.Source.URL, "error", err)
		return
	}

	if len(meta.Languages) > 0 {
		project.Languages = meta.Languages
	}
	if project.DescriptionOrEmpty() == "" && meta.Description != "" {
		description := meta.Description
		project.Description = &description
	}
}

func (m *Manager) loadIgnore(root string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(root, IgnoreFileName)
	if !m.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := m.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFileName, err)
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}
