package buildtool

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/noopejs/go-rgen/internal/logger"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/js"
)

const (
	jsMediaType  = "application/javascript"
	chunkPattern = "react*.js"
)

// MinifyReport lists what MinifyReactChunks did per file.
type MinifyReport struct {
	Minified []string
	Failed   map[string]error
}

// MinifyReactChunks minifies every react*.js chunk in assetsDir in place.
// A file that fails is recorded in the report and left unchanged; only an
// unreadable assetsDir is an error.
func MinifyReactChunks(fsys filesystem.FileSystem, assetsDir string) (*MinifyReport, error) {
	entries, err := fsys.ReadDir(assetsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read assets directory %s: %w", assetsDir, err)
	}

	m := minify.New()
	m.AddFunc(jsMediaType, js.Minify)

	report := &MinifyReport{Failed: make(map[string]error)}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ok, _ := path.Match(chunkPattern, entry.Name()); !ok {
			continue
		}

		target := filepath.Join(assetsDir, entry.Name())
		if err := minifyFile(fsys, m, target); err != nil {
			logger.Debug("minify %s: %v", target, err)
			report.Failed[target] = err
			continue
		}
		report.Minified = append(report.Minified, target)
	}

	return report, nil
}

func minifyFile(fsys filesystem.FileSystem, m *minify.M, target string) error {
	data, err := fsys.ReadFile(target)
	if err != nil {
		return fmt.Errorf("failed to read: %w", err)
	}

	out, err := m.Bytes(jsMediaType, data)
	if err != nil {
		return fmt.Errorf("failed to minify: %w", err)
	}

	if err := fsys.WriteFile(target, out, 0644); err != nil {
		return fmt.Errorf("failed to write: %w", err)
	}
	return nil
}
