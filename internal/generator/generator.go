package generator

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/noopejs/go-rgen/internal/logger"
	"github.com/noopejs/go-rgen/internal/models"
	"github.com/noopejs/go-rgen/internal/naming"
	"github.com/noopejs/go-rgen/internal/placeholder"
	"github.com/noopejs/go-rgen/internal/runner"
	"github.com/noopejs/go-rgen/internal/templates"
	"github.com/noopejs/go-rgen/internal/tui"
)

const (
	filePerm fs.FileMode = 0644
	dirPerm  fs.FileMode = 0755
)

// Prompter asks the user to confirm an overwrite.
type Prompter interface {
	Confirm(message string) (bool, error)
}

// Config wires a Generator to its collaborators.
type Config struct {
	FS        filesystem.FileSystem
	Templates fs.FS
	Prompter  Prompter
	Progress  tui.Progress
	Runner    runner.Runner
	Out       io.Writer

	// InstallCommand runs inside a new application; empty skips it.
	InstallCommand string
	// DevCommand is suggested to the user once an application is ready.
	DevCommand string
}

// Generator materializes units from templates.
type Generator struct {
	fs             filesystem.FileSystem
	templates      fs.FS
	prompter       Prompter
	progress       tui.Progress
	runner         runner.Runner
	out            io.Writer
	installCommand string
	devCommand     string
}

// New creates a Generator. Missing writers default to io.Discard.
func New(cfg Config) *Generator {
	g := &Generator{
		fs:             cfg.FS,
		templates:      cfg.Templates,
		prompter:       cfg.Prompter,
		progress:       cfg.Progress,
		runner:         cfg.Runner,
		out:            cfg.Out,
		installCommand: cfg.InstallCommand,
		devCommand:     cfg.DevCommand,
	}
	if g.out == nil {
		g.out = io.Discard
	}
	if g.progress == nil {
		g.progress = tui.NewPlainProgress(io.Discard)
	}
	if g.templates == nil {
		g.templates = templates.Embedded()
	}
	return g
}

// job is one generation request after validation.
type job struct {
	unit       models.UnitType
	name       string
	forms      naming.Forms
	projectDir string
	template   *templates.Descriptor
}

type routine func(g *Generator, ctx context.Context, j *job) (*Result, error)

// routines maps every unit type to its materialization routine.
var routines = map[models.UnitType]routine{
	models.UnitApp:             (*Generator).generateApp,
	models.UnitModule:          (*Generator).generateUnit,
	models.UnitModuleComponent: (*Generator).generateUnit,
	models.UnitService:         (*Generator).generateUnit,
	models.UnitModuleClass:     (*Generator).generateUnit,
}

// Validate parses the unit type and checks the name. It never touches the
// filesystem.
func Validate(rawType, name string) (models.UnitType, error) {
	unit, err := models.ParseUnitType(rawType)
	if err != nil {
		return "", err
	}
	if err := unit.ValidateName(name); err != nil {
		return "", err
	}
	return unit, nil
}

// Generate runs the whole sequence for one unit: validate, check for a
// conflict (prompting), then copy, rename, rewrite and report. It returns
// ErrConflictAborted when the user declines to overwrite.
func (g *Generator) Generate(ctx context.Context, rawType, name string) (*Result, error) {
	unit, err := Validate(rawType, name)
	if err != nil {
		return nil, err
	}

	cwd, err := g.fs.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	desc, err := templates.Load(g.templates, unit)
	if err != nil {
		return nil, ioError("load template", unit.TemplateDir(), err)
	}

	j := &job{
		unit:       unit,
		name:       name,
		forms:      naming.Derive(name),
		projectDir: unit.ProjectDir(cwd, name),
		template:   desc,
	}
	logger.Debug("generating %s %q into %s", unit, name, j.projectDir)

	if err := g.checkConflict(j, unit.ConflictPath(cwd, name)); err != nil {
		return nil, err
	}

	return routines[unit](g, ctx, j)
}

func (g *Generator) checkConflict(j *job, conflictPath string) error {
	if !g.fs.Exists(conflictPath) {
		return nil
	}
	logger.Debug("%s exists", conflictPath)

	if g.prompter == nil {
		return ErrConflictAborted
	}

	ok, err := g.prompter.Confirm(message("conflict", j.messageData()))
	if err != nil {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	if !ok {
		return ErrConflictAborted
	}
	return nil
}

// generateUnit handles every unit type placed under src/.
func (g *Generator) generateUnit(_ context.Context, j *job) (*Result, error) {
	g.progress.Start(message("unit.start", j.messageData()))

	files, err := g.materialize(j)
	if err != nil {
		g.interrupted()
		return nil, err
	}

	result := &Result{Unit: j.unit, Name: j.name, ProjectDir: j.projectDir, Files: files}
	_, _ = fmt.Fprint(g.out, "\n"+result.Tree()+"\n")
	g.progress.Succeed(message("unit.done", j.messageData()))

	return result, nil
}

// materialize is pre-clean, copy, rename and rewrite. It returns the final
// file paths relative to the project directory.
func (g *Generator) materialize(j *job) ([]string, error) {
	if j.unit.PreClean() {
		if err := g.preClean(j); err != nil {
			return nil, err
		}
	}

	if err := g.copyTemplate(j); err != nil {
		return nil, err
	}

	files, err := g.rename(j)
	if err != nil {
		return nil, err
	}

	if err := g.rewrite(j, files); err != nil {
		return nil, err
	}

	return files, nil
}

// preClean removes the named outputs a previous run left behind so the
// rename never meets a stale file.
func (g *Generator) preClean(j *job) error {
	for _, name := range j.unit.OutputFiles(j.name) {
		target := filepath.Join(j.projectDir, name)
		if !g.fs.Exists(target) {
			continue
		}
		logger.Debug("remove %s", target)
		if err := g.fs.Remove(target); err != nil {
			return ioError("remove", target, err)
		}
	}
	return nil
}

// copyTemplate writes every template file into the project directory with
// its name unchanged, placeholders included.
func (g *Generator) copyTemplate(j *job) error {
	if err := g.fs.MkdirAll(j.projectDir, dirPerm); err != nil {
		return ioError("create", j.projectDir, err)
	}

	for _, dir := range j.template.Dirs() {
		target := filepath.Join(j.projectDir, filepath.FromSlash(dir))
		if err := g.fs.MkdirAll(target, dirPerm); err != nil {
			return ioError("create", target, err)
		}
	}

	for _, file := range j.template.Files {
		data, err := j.template.ReadFile(file.Path)
		if err != nil {
			return ioError("read template", file.Path, err)
		}

		target := filepath.Join(j.projectDir, filepath.FromSlash(file.Path))
		logger.Debug("copy %s -> %s", file.Path, target)
		if err := g.fs.WriteFile(target, data, filePerm); err != nil {
			return ioError("copy", target, err)
		}
	}

	return nil
}

// rename moves every placeholder-named file to its rendered name and drops
// placeholder-named directories left empty by the moves.
func (g *Generator) rename(j *job) ([]string, error) {
	files := make([]string, 0, len(j.template.Files))

	for _, file := range j.template.Files {
		if !file.Named {
			files = append(files, file.Path)
			continue
		}

		final := placeholder.Render(file.Path, j.forms)
		from := filepath.Join(j.projectDir, filepath.FromSlash(file.Path))
		to := filepath.Join(j.projectDir, filepath.FromSlash(final))

		if err := g.fs.MkdirAll(filepath.Dir(to), dirPerm); err != nil {
			return nil, ioError("create", filepath.Dir(to), err)
		}
		logger.Debug("rename %s -> %s", from, to)
		if err := g.fs.Rename(from, to); err != nil {
			return nil, ioError("rename", from, err)
		}
		files = append(files, final)
	}

	dirs := j.template.Dirs()
	for i := len(dirs) - 1; i >= 0; i-- {
		if !placeholder.Contains(dirs[i]) {
			continue
		}
		stale := filepath.Join(j.projectDir, filepath.FromSlash(dirs[i]))
		if err := g.fs.Remove(stale); err != nil {
			return nil, ioError("remove", stale, err)
		}
	}

	return files, nil
}

// rewrite renders the contents of every file that still holds tokens.
func (g *Generator) rewrite(j *job, files []string) error {
	for _, file := range files {
		target := filepath.Join(j.projectDir, filepath.FromSlash(file))
		if err := g.renderFile(target, j.forms); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) renderFile(target string, forms naming.Forms) error {
	data, err := g.fs.ReadFile(target)
	if err != nil {
		return ioError("read", target, err)
	}

	content := string(data)
	if !placeholder.Contains(content) {
		return nil
	}

	logger.Debug("render %s", target)
	if err := g.fs.WriteFile(target, []byte(placeholder.Render(content, forms)), filePerm); err != nil {
		return ioError("write", target, err)
	}
	return nil
}

func (g *Generator) interrupted() {
	if g.progress.Active() {
		g.progress.Fail(message("interrupted", messageData{}))
	}
}

func (j *job) messageData() messageData {
	return messageData{Unit: j.unit, Name: j.name}
}
