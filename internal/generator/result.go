package generator

import (
	"path"
	"sort"
	"strings"

	"github.com/noopejs/go-rgen/internal/models"
	"github.com/noopejs/go-rgen/internal/naming"
)

// Result describes a finished generation.
type Result struct {
	Unit       models.UnitType
	Name       string
	ProjectDir string
	// Files are slash separated and relative to ProjectDir, post-rename.
	Files []string
}

// Tree renders the generated files as an indented listing:
//
//	/
//	-- user-profile/
//	---- user-profile.module.ts
//	---- user-profile.service.ts
//
// The unit's own files come first in registry order, anything else the
// template added follows sorted by path.
func (r *Result) Tree() string {
	files := r.ordered()

	var b strings.Builder
	b.WriteString("/\n")
	b.WriteString("-- " + naming.Kebab(r.Name) + "/\n")

	printed := make(map[string]bool)
	for _, file := range files {
		parts := strings.Split(file, "/")
		for depth := range parts[:len(parts)-1] {
			dir := path.Join(parts[:depth+1]...)
			if printed[dir] {
				continue
			}
			printed[dir] = true
			b.WriteString(indent(depth+2) + " " + parts[depth] + "/\n")
		}
		b.WriteString(indent(len(parts)+1) + " " + parts[len(parts)-1] + "\n")
	}

	return b.String()
}

func (r *Result) ordered() []string {
	rank := make(map[string]int)
	for i, name := range r.Unit.OutputFiles(r.Name) {
		rank[name] = i + 1
	}

	files := append([]string(nil), r.Files...)
	sort.SliceStable(files, func(i, j int) bool {
		ri, rj := rank[files[i]], rank[files[j]]
		switch {
		case ri > 0 && rj > 0:
			return ri < rj
		case ri > 0 || rj > 0:
			return ri > 0
		default:
			return files[i] < files[j]
		}
	})
	return files
}

func indent(depth int) string {
	return strings.Repeat("--", depth)
}
