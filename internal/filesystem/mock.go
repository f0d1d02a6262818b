package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing
type MockFileSystem struct {
	files      map[string]*MockFile
	symlinks   map[string]string // link path -> target path
	currentDir string

	// Hooks for testing error scenarios
	WriteFileError error
	RenameError    error
	RemoveAllError error
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:      make(map[string]*MockFile),
		symlinks:   make(map[string]string),
		currentDir: "/home/tester",
	}
}

// AddFile adds a file (and its parent directories) to the mock filesystem
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := mfs.abs(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}
	mfs.addParents(cleanPath)
}

// AddDir adds a directory (and its parents) to the mock filesystem
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := mfs.abs(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
	mfs.addParents(cleanPath)
}

// AddSymlink makes link resolve to target during Canonicalize.
func (mfs *MockFileSystem) AddSymlink(link, target string) {
	mfs.symlinks[mfs.abs(link)] = mfs.abs(target)
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = &MockFile{
				Mode:    0755 | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
		dir = filepath.Dir(dir)
	}
}

func (mfs *MockFileSystem) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(mfs.currentDir, path)
}

func (mfs *MockFileSystem) isRootDir(path string) bool {
	return path == "/"
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	file, exists := mfs.files[mfs.abs(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if mfs.WriteFileError != nil {
		return mfs.WriteFileError
	}

	cleanPath := mfs.abs(path)

	dir := filepath.Dir(cleanPath)
	if !mfs.isRootDir(dir) {
		parent, exists := mfs.files[dir]
		if !exists || !parent.IsDir {
			return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: data,
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

func (mfs *MockFileSystem) Remove(path string) error {
	cleanPath := mfs.abs(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	for p := range mfs.files {
		if strings.HasPrefix(p, cleanPath+string(filepath.Separator)) {
			return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
		}
	}
	delete(mfs.files, cleanPath)
	return nil
}

// Rename moves a file or a directory with everything below it.
func (mfs *MockFileSystem) Rename(oldPath, newPath string) error {
	if mfs.RenameError != nil {
		return mfs.RenameError
	}

	from := mfs.abs(oldPath)
	to := mfs.abs(newPath)
	if _, exists := mfs.files[from]; !exists {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if parent, exists := mfs.files[filepath.Dir(to)]; !mfs.isRootDir(filepath.Dir(to)) && (!exists || !parent.IsDir) {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}

	moved := make(map[string]*MockFile)
	for p, f := range mfs.files {
		if p == from || strings.HasPrefix(p, from+string(filepath.Separator)) {
			moved[to+strings.TrimPrefix(p, from)] = f
			delete(mfs.files, p)
		}
	}
	for p, f := range moved {
		mfs.files[p] = f
	}
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := mfs.abs(path)

	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, errors.New("not a directory")
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if filepath.Dir(p) == cleanPath && p != cleanPath {
			entries = append(entries, &mockDirEntry{info: newMockFileInfo(p, f)})
		}
	}

	// Sort entries by name for consistent ordering
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := mfs.abs(path)
	if f, exists := mfs.files[cleanPath]; exists && !f.IsDir {
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}

	parts := strings.Split(cleanPath, string(filepath.Separator))
	current := ""
	for _, part := range parts {
		if part == "" {
			continue
		}
		current = current + string(filepath.Separator) + part
		if _, exists := mfs.files[current]; !exists {
			mfs.files[current] = &MockFile{
				Mode:    perm | fs.ModeDir,
				ModTime: time.Now(),
				IsDir:   true,
			}
		}
	}
	return nil
}

func (mfs *MockFileSystem) RemoveAll(path string) error {
	if mfs.RemoveAllError != nil {
		return mfs.RemoveAllError
	}

	cleanPath := mfs.abs(path)
	for p := range mfs.files {
		if p == cleanPath || strings.HasPrefix(p, cleanPath+string(filepath.Separator)) {
			delete(mfs.files, p)
		}
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := mfs.abs(path)
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return newMockFileInfo(cleanPath, file), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[mfs.abs(path)]
	return exists
}

func (mfs *MockFileSystem) IsDir(path string) bool {
	file, exists := mfs.files[mfs.abs(path)]
	return exists && file.IsDir
}

// Canonicalize resolves registered symlinks on every path prefix and requires
// the result to exist, like filepath.EvalSymlinks.
func (mfs *MockFileSystem) Canonicalize(path string) (string, error) {
	resolved := mfs.abs(path)
	for i := 0; i < 32; i++ {
		next := mfs.resolveOnce(resolved)
		if next == resolved {
			break
		}
		resolved = next
	}

	if _, exists := mfs.files[resolved]; !exists && !mfs.isRootDir(resolved) {
		return "", &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return resolved, nil
}

func (mfs *MockFileSystem) resolveOnce(path string) string {
	for link, target := range mfs.symlinks {
		if path == link {
			return target
		}
		if strings.HasPrefix(path, link+string(filepath.Separator)) {
			return target + strings.TrimPrefix(path, link)
		}
	}
	return path
}

// SetCurrentDir sets the directory relative paths are resolved against
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = filepath.Clean(dir)
}

// Paths returns every path in the mock filesystem, sorted (for assertions)
func (mfs *MockFileSystem) Paths() []string {
	paths := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func newMockFileInfo(path string, f *MockFile) *mockFileInfo {
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(f.Content)),
		mode:    f.Mode,
		modTime: f.ModTime,
		isDir:   f.IsDir,
	}
}
