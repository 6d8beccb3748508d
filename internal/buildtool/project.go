package buildtool

import (
	"path/filepath"

	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/tidwall/gjson"
)

// ProjectName returns the "name" from dir/package.json, or the directory
// name when the manifest is missing or has none.
func ProjectName(fsys filesystem.FileSystem, dir string) string {
	data, err := fsys.ReadFile(filepath.Join(dir, "package.json"))
	if err == nil && gjson.ValidBytes(data) {
		if name := gjson.GetBytes(data, "name").String(); name != "" {
			return name
		}
	}
	return filepath.Base(dir)
}
