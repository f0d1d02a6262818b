// Package detect guesses registry metadata from a project directory's
// contents: the languages it uses and a default project name.
package detect

import (
	"path/filepath"
	"strings"

	"github.com/jakoblorz/project-manager/internal/filesystem"
	"golang.org/x/mod/modfile"
)

type marker struct {
	file     string
	language string
}

// markers are checked in order; the first marker of a language wins its slot.
var markers = []marker{
	{file: "go.mod", language: "Go"},
	{file: "Cargo.toml", language: "Rust"},
	{file: "tsconfig.json", language: "TypeScript"},
	{file: "deno.json", language: "TypeScript"},
	{file: "package.json", language: "JavaScript"},
	{file: "pyproject.toml", language: "Python"},
	{file: "requirements.txt", language: "Python"},
	{file: "setup.py", language: "Python"},
	{file: "Gemfile", language: "Ruby"},
	{file: "pom.xml", language: "Java"},
	{file: "build.gradle", language: "Java"},
	{file: "build.gradle.kts", language: "Kotlin"},
	{file: "composer.json", language: "PHP"},
	{file: "mix.exs", language: "Elixir"},
	{file: "Package.swift", language: "Swift"},
	{file: "CMakeLists.txt", language: "C++"},
	{file: "pubspec.yaml", language: "Dart"},
	{file: "build.zig", language: "Zig"},
}

// Detector inspects project directories through a FileSystem.
type Detector struct {
	fs filesystem.FileSystem
}

func NewDetector(fs filesystem.FileSystem) *Detector {
	return &Detector{fs: fs}
}

// Languages lists the languages whose marker files sit directly in dir.
// The result is never nil.
func (d *Detector) Languages(dir string) []string {
	languages := []string{}
	seen := make(map[string]struct{})

	for _, m := range markers {
		if _, ok := seen[m.language]; ok {
			continue
		}
		if !d.fs.Exists(filepath.Join(dir, m.file)) {
			continue
		}
		seen[m.language] = struct{}{}
		languages = append(languages, m.language)
	}

	return languages
}

// SuggestName proposes a project name for dir: the last element of the Go
// module path when dir holds a go.mod, the folder name otherwise.
func (d *Detector) SuggestName(dir string) string {
	if name := d.goModuleName(dir); name != "" {
		return name
	}
	return filepath.Base(filepath.Clean(dir))
}

func (d *Detector) goModuleName(dir string) string {
	data, err := d.fs.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}

	modulePath := modfile.ModulePath(data)
	if modulePath == "" {
		return ""
	}

	return moduleTail(modulePath)
}

// moduleTail drops a trailing major version element (example.com/tool/v2 -> tool).
func moduleTail(modulePath string) string {
	parts := strings.Split(modulePath, "/")
	last := parts[len(parts)-1]
	if len(parts) > 1 && isMajorVersion(last) {
		last = parts[len(parts)-2]
	}
	return last
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	for _, r := range elem[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
