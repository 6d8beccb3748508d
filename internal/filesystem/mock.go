package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests
type MockFileSystem struct {
	files      map[string]*MockFile
	currentDir string
	failures   map[string]error
}

// MockFile represents a file or directory in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

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
func (m *mockFileInfo) Sys() any           { return nil }

type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem rooted at /workspace
func NewMockFileSystem() *MockFileSystem {
	mfs := &MockFileSystem{
		files:      make(map[string]*MockFile),
		currentDir: "/workspace",
		failures:   make(map[string]error),
	}
	mfs.AddDir(mfs.currentDir)
	return mfs
}

// AddFile adds a file and any missing parent directories
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	cleanPath := filepath.Clean(path)
	mfs.addParents(cleanPath)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
	}
}

// AddDir adds a directory and any missing parent directories
func (mfs *MockFileSystem) AddDir(path string) {
	cleanPath := filepath.Clean(path)
	mfs.addParents(cleanPath)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = newMockDir(0755)
	}
}

// FailOn makes the next operation op ("write", "rename", "remove", "read")
// on path return err.
func (mfs *MockFileSystem) FailOn(op, path string, err error) {
	mfs.failures[op+":"+filepath.Clean(path)] = err
}

func (mfs *MockFileSystem) injected(op, path string) error {
	key := op + ":" + filepath.Clean(path)
	if err, ok := mfs.failures[key]; ok {
		delete(mfs.failures, key)
		return &fs.PathError{Op: op, Path: path, Err: err}
	}
	return nil
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if err := mfs.injected("read", path); err != nil {
		return nil, err
	}
	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, &fs.PathError{Op: "read", Path: path, Err: errors.New("is a directory")}
	}
	return append([]byte(nil), file.Content...), nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := mfs.injected("write", path); err != nil {
		return err
	}
	cleanPath := filepath.Clean(path)
	if !mfs.isDir(filepath.Dir(cleanPath)) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if existing, ok := mfs.files[cleanPath]; ok && existing.IsDir {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	mfs.files[cleanPath] = &MockFile{
		Content: append([]byte(nil), data...),
		Mode:    perm,
		ModTime: time.Now(),
	}
	return nil
}

// Remove deletes a file or an empty directory, like os.Remove
func (mfs *MockFileSystem) Remove(path string) error {
	if err := mfs.injected("remove", path); err != nil {
		return err
	}
	cleanPath := filepath.Clean(path)
	file, exists := mfs.files[cleanPath]
	if !exists {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir && len(mfs.children(cleanPath)) > 0 {
		return &fs.PathError{Op: "remove", Path: path, Err: errors.New("directory not empty")}
	}
	delete(mfs.files, cleanPath)
	return nil
}

// Rename moves a file or directory tree, replacing an existing file at
// newPath like os.Rename does on Unix.
func (mfs *MockFileSystem) Rename(oldPath, newPath string) error {
	if err := mfs.injected("rename", oldPath); err != nil {
		return err
	}
	from := filepath.Clean(oldPath)
	to := filepath.Clean(newPath)

	file, exists := mfs.files[from]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if !mfs.isDir(filepath.Dir(to)) {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}
	if from == to {
		return nil
	}

	if file.IsDir {
		moved := make(map[string]*MockFile)
		for p, f := range mfs.files {
			if strings.HasPrefix(p, from+string(filepath.Separator)) {
				moved[to+strings.TrimPrefix(p, from)] = f
				delete(mfs.files, p)
			}
		}
		for p, f := range moved {
			mfs.files[p] = f
		}
	}
	delete(mfs.files, from)
	mfs.files[to] = file
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	cleanPath := filepath.Clean(path)
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if !file.IsDir {
		return nil, &fs.PathError{Op: "readdir", Path: path, Err: errors.New("not a directory")}
	}

	var entries []fs.DirEntry
	for _, p := range mfs.children(cleanPath) {
		entries = append(entries, &mockDirEntry{info: mfs.info(p)})
	}
	return entries, nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	cleanPath := filepath.Clean(path)
	if existing, ok := mfs.files[cleanPath]; ok && !existing.IsDir {
		return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}
	mfs.addParents(cleanPath)
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = newMockDir(perm)
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}
	return mfs.info(cleanPath), nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	return mfs.currentDir, nil
}

func (mfs *MockFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	cleanRoot := filepath.Clean(root)
	if _, exists := mfs.files[cleanRoot]; !exists {
		return fn(root, nil, &fs.PathError{Op: "lstat", Path: root, Err: fs.ErrNotExist})
	}

	var paths []string
	for p := range mfs.files {
		if p == cleanRoot || strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	var skipped []string
	for _, p := range paths {
		if underAny(p, skipped) {
			continue
		}
		err := fn(p, &mockDirEntry{info: mfs.info(p)}, nil)
		if err == nil {
			continue
		}
		if errors.Is(err, fs.SkipDir) && mfs.files[p].IsDir {
			skipped = append(skipped, p)
			continue
		}
		if errors.Is(err, fs.SkipAll) {
			return nil
		}
		return err
	}
	return nil
}

// SetCurrentDir sets the working directory returned by Getwd
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.currentDir = filepath.Clean(dir)
	mfs.AddDir(mfs.currentDir)
}

// FilePaths returns every regular file under root, sorted
func (mfs *MockFileSystem) FilePaths(root string) []string {
	cleanRoot := filepath.Clean(root)
	var paths []string
	for p, f := range mfs.files {
		if !f.IsDir && strings.HasPrefix(p, cleanRoot+string(filepath.Separator)) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

func (mfs *MockFileSystem) addParents(path string) {
	for dir := filepath.Dir(path); dir != path; path, dir = dir, filepath.Dir(dir) {
		if _, exists := mfs.files[dir]; !exists {
			mfs.files[dir] = newMockDir(0755)
		}
	}
}

func (mfs *MockFileSystem) isDir(path string) bool {
	file, exists := mfs.files[path]
	return exists && file.IsDir
}

func (mfs *MockFileSystem) children(dir string) []string {
	var out []string
	for p := range mfs.files {
		if p != dir && filepath.Dir(p) == dir {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

func (mfs *MockFileSystem) info(path string) *mockFileInfo {
	file := mfs.files[path]
	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}
}

func newMockDir(perm fs.FileMode) *MockFile {
	return &MockFile{
		Mode:    perm | fs.ModeDir,
		ModTime: time.Now(),
		IsDir:   true,
	}
}

func underAny(path string, dirs []string) bool {
	for _, d := range dirs {
		if strings.HasPrefix(path, d+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
