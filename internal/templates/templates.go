package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/noopejs/go-rgen/internal/models"
	"github.com/noopejs/go-rgen/internal/placeholder"
)

//go:embed all:files
var embedded embed.FS

// IgnoreFile holds extra ignore patterns inside a template directory.
const IgnoreFile = ".rgenignore"

// defaultIgnore is applied to every template directory.
var defaultIgnore = []string{
	"node_modules/",
	".DS_Store",
	"Thumbs.db",
	IgnoreFile,
}

// Embedded returns the templates bundled with the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "files")
	if err != nil {
		panic(fmt.Sprintf("embedded templates: %v", err))
	}
	return sub
}

// Dir returns templates read from a directory on disk, laid out like the
// bundled ones (one subdirectory per unit type).
func Dir(dir string) fs.FS {
	return os.DirFS(dir)
}

// File is one file of a template.
type File struct {
	// Path is slash separated and relative to the template root. It may
	// still contain placeholder tokens.
	Path string
	// Named reports whether Path contains a placeholder token.
	Named bool
}

// Descriptor is the read-only view of one unit type's template.
type Descriptor struct {
	Unit  models.UnitType
	FS    fs.FS
	Files []File
}

// Load resolves the template for unit inside root and lists its files,
// skipping anything matched by the ignore rules.
func Load(root fs.FS, unit models.UnitType) (*Descriptor, error) {
	dir := unit.TemplateDir()
	info, err := fs.Stat(root, dir)
	if err != nil {
		return nil, fmt.Errorf("template for %s not found: %w", unit, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template for %s is not a directory", unit)
	}

	sub, err := fs.Sub(root, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open template for %s: %w", unit, err)
	}

	ignore, err := loadIgnore(sub)
	if err != nil {
		return nil, err
	}

	desc := &Descriptor{Unit: unit, FS: sub}
	err = fs.WalkDir(sub, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if match := ignore.Relative(p, d.IsDir()); match != nil && match.Ignore() {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		desc.Files = append(desc.Files, File{Path: p, Named: placeholder.Contains(p)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk template for %s: %w", unit, err)
	}

	return desc, nil
}

// ReadFile returns the raw content of a template file.
func (d *Descriptor) ReadFile(p string) ([]byte, error) {
	return fs.ReadFile(d.FS, p)
}

// NamedFiles returns the files whose paths hold placeholder tokens.
func (d *Descriptor) NamedFiles() []File {
	var named []File
	for _, f := range d.Files {
		if f.Named {
			named = append(named, f)
		}
	}
	return named
}

// Dirs returns every directory the template's files live in, parents first.
func (d *Descriptor) Dirs() []string {
	seen := make(map[string]bool)
	var dirs []string
	for _, f := range d.Files {
		var chain []string
		for dir := path.Dir(f.Path); dir != "." && !seen[dir]; dir = path.Dir(dir) {
			seen[dir] = true
			chain = append(chain, dir)
		}
		for i := len(chain) - 1; i >= 0; i-- {
			dirs = append(dirs, chain[i])
		}
	}
	return dirs
}

func loadIgnore(sub fs.FS) (gitignore.GitIgnore, error) {
	patterns := strings.Join(defaultIgnore, "\n") + "\n"

	data, err := fs.ReadFile(sub, IgnoreFile)
	switch {
	case err == nil:
		patterns += string(data)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFile, err)
	}

	return gitignore.New(bytes.NewReader([]byte(patterns)), "/", nil), nil
}
