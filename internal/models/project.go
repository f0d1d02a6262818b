package models

import (
	"fmt"
	"strings"
)

// SchemaVersion is the version tag written to every registry document.
const SchemaVersion = "1.0"

// DefaultRootDir is the root directory (relative to the home directory) of a
// freshly initialized registry.
const DefaultRootDir = "my_projects"

// SourceType identifies how a project can be fetched.
type SourceType string

const (
	SourceTypeGit SourceType = "Git"
	SourceTypeWeb SourceType = "Web"
)

// IsValid checks if the source type is known
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeGit, SourceTypeWeb:
		return true
	default:
		return false
	}
}

// String returns the string representation of SourceType
func (s SourceType) String() string {
	return string(s)
}

// UnmarshalText rejects unknown source types so that a document carrying one
// fails to parse as a whole.
func (s *SourceType) UnmarshalText(text []byte) error {
	parsed, err := ParseSourceType(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseSourceType parses a source type, case-insensitively.
func ParseSourceType(s string) (SourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "git":
		return SourceTypeGit, nil
	case "web":
		return SourceTypeWeb, nil
	default:
		return "", fmt.Errorf("invalid source type: %s (must be git or web)", s)
	}
}

// Source describes where a project's files can be fetched from.
type Source struct {
	Type SourceType `json:"source_type" yaml:"source_type"`
	URL  string     `json:"url" yaml:"url"`
}

// Project is a single registry entry.
type Project struct {
	// Name is the user-facing key, unique within the registry
	Name string `json:"name" yaml:"name"`

	// Path is relative to the configured root directory
	Path string `json:"path" yaml:"path"`

	Description *string  `json:"description" yaml:"description,omitempty"`
	Languages   []string `json:"languages" yaml:"languages"`

	// Source is nil when there is no known way to re-fetch the project
	Source *Source `json:"source" yaml:"source,omitempty"`
}

// DescriptionOrEmpty returns the description or "" when unset.
func (p *Project) DescriptionOrEmpty() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// SourceURL returns the source URL or "" when the project has no source.
func (p *Project) SourceURL() string {
	if p.Source == nil {
		return ""
	}
	return p.Source.URL
}

// ProjectConfig is the registry document.
type ProjectConfig struct {
	Version  string     `json:"version" yaml:"version"`
	Editor   string     `json:"editor" yaml:"editor"`
	RootDir  string     `json:"root_dir" yaml:"root_dir"`
	Projects []*Project `json:"projects" yaml:"projects"`
}

// NewProjectConfig creates an empty registry using the given editor command.
func NewProjectConfig(editor string) *ProjectConfig {
	return &ProjectConfig{
		Version:  SchemaVersion,
		Editor:   editor,
		RootDir:  DefaultRootDir,
		Projects: []*Project{},
	}
}

// AddProject appends a project. Callers are responsible for name uniqueness.
func (c *ProjectConfig) AddProject(project *Project) {
	c.Projects = append(c.Projects, project)
}

// FindProject returns the project with exactly the given name, or nil.
func (c *ProjectConfig) FindProject(name string) *Project {
	for _, p := range c.Projects {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// RemoveProject drops the project with the given name and reports whether
// anything was removed.
func (c *ProjectConfig) RemoveProject(name string) bool {
	kept := c.Projects[:0]
	removed := false
	for _, p := range c.Projects {
		if p.Name == name {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	c.Projects = kept
	return removed
}

// ProjectNames returns the registered names in insertion order.
func (c *ProjectConfig) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for _, p := range c.Projects {
		names = append(names, p.Name)
	}
	return names
}
