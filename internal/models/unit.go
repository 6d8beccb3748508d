package models

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/noopejs/go-rgen/internal/naming"
)

// UnitType represents a generatable unit kind
type UnitType string

const (
	UnitApp             UnitType = "app"
	UnitModule          UnitType = "module"
	UnitModuleComponent UnitType = "moduleComponent"
	UnitService         UnitType = "service"
	UnitModuleClass     UnitType = "moduleClass"
)

// ReservedPrefix is reserved for the root (application) unit.
const ReservedPrefix = "root"

// SourceDir is the directory non-application units are placed under.
const SourceDir = "src"

type unitSpec struct {
	label       string
	templateDir string
	// suffixes of the files written as "<kebab>.<suffix>"; the first one is
	// the file probed for conflicts
	suffixes []string
	// preClean removes stale outputs before copying instead of copying over
	// an existing directory wholesale
	preClean bool
	atRoot   bool
}

var registry = map[UnitType]unitSpec{
	UnitApp: {
		label:       "App",
		templateDir: "app",
		atRoot:      true,
	},
	UnitModule: {
		label:       "Module",
		templateDir: "module",
		suffixes:    []string{"module.ts", "service.ts", "component.tsx", "style.css"},
	},
	UnitModuleComponent: {
		label:       "Module component",
		templateDir: "moduleComponent",
		suffixes:    []string{"component.tsx", "style.css"},
		preClean:    true,
	},
	UnitService: {
		label:       "Service",
		templateDir: "service",
		suffixes:    []string{"service.ts"},
		preClean:    true,
	},
	UnitModuleClass: {
		label:       "Module class",
		templateDir: "moduleClass",
		suffixes:    []string{"module.ts"},
		preClean:    true,
	},
}

// UnitTypes returns every unit type in display order
func UnitTypes() []UnitType {
	return []UnitType{UnitApp, UnitModule, UnitModuleComponent, UnitService, UnitModuleClass}
}

// IsValid checks if the unit type is known
func (u UnitType) IsValid() bool {
	_, ok := registry[u]
	return ok
}

// String returns the string representation of UnitType
func (u UnitType) String() string {
	return string(u)
}

// Label returns the human readable name, e.g. "Module class"
func (u UnitType) Label() string {
	return registry[u].label
}

// TemplateDir returns the template subdirectory for this unit type
func (u UnitType) TemplateDir() string {
	return registry[u].templateDir
}

// AtRoot reports whether the unit is placed directly in the working
// directory rather than under src/.
func (u UnitType) AtRoot() bool {
	return registry[u].atRoot
}

// PreClean reports whether stale output files are removed before copying.
func (u UnitType) PreClean() bool {
	return registry[u].preClean
}

// OutputFiles returns the file names a unit of this type writes for name.
// Application units copy a whole project and return nil.
func (u UnitType) OutputFiles(name string) []string {
	spec := registry[u]
	if len(spec.suffixes) == 0 {
		return nil
	}

	kebab := naming.Kebab(name)
	files := make([]string, 0, len(spec.suffixes))
	for _, suffix := range spec.suffixes {
		files = append(files, kebab+"."+suffix)
	}
	return files
}

// ProjectDir returns the destination directory for a unit:
// <cwd>/<kebab> for applications, <cwd>/src/<kebab> otherwise.
func (u UnitType) ProjectDir(cwd, name string) string {
	if u.AtRoot() {
		return filepath.Join(cwd, naming.Kebab(name))
	}
	return filepath.Join(cwd, SourceDir, naming.Kebab(name))
}

// ConflictPath returns the path whose existence triggers the overwrite
// prompt. Application and module units probe their project directory;
// single-file units probe the first file they write.
//
// A module class writes <kebab>.module.ts, which is also the file a full
// module owns. The probe therefore fires when a module of the same name
// exists, and the module-class run then replaces that module's class file
// while leaving its component, style and service in place.
func (u UnitType) ConflictPath(cwd, name string) string {
	dir := u.ProjectDir(cwd, name)
	if u == UnitApp || u == UnitModule {
		return dir
	}
	return filepath.Join(dir, u.OutputFiles(name)[0])
}

// ParseUnitType parses a string into a UnitType
func ParseUnitType(s string) (UnitType, error) {
	ut := UnitType(s)
	if !ut.IsValid() {
		return "", fmt.Errorf("%w: %s is not supported (must be one of %s)", ErrInvalidUnitType, s, joinUnitTypes())
	}
	return ut, nil
}

// ValidateName checks a unit name for the given unit type. Names must be
// non-empty and, except for applications, must not start with the reserved
// "root" prefix. The kebab form must stay inside the project directory.
func (u UnitType) ValidateName(name string) error {
	if len(name) == 0 {
		return fmt.Errorf("%w: name must be at least 1 character long", ErrInvalidUnitName)
	}

	if u != UnitApp && strings.HasPrefix(naming.Camel(name), ReservedPrefix) {
		return fmt.Errorf("%w: %s, units cannot start with %q", ErrInvalidUnitName, name, ReservedPrefix)
	}

	kebab := naming.Kebab(name)
	if strings.ContainsAny(kebab, `/\`) {
		return fmt.Errorf("%w: %s must not contain path separators", ErrInvalidUnitName, name)
	}
	if kebab == "." || kebab == ".." {
		return fmt.Errorf("%w: %s is not a directory name", ErrInvalidUnitName, name)
	}

	return nil
}

func joinUnitTypes() string {
	types := UnitTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
