package generator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/noopejs/go-rgen/internal/logger"
	"github.com/noopejs/go-rgen/internal/tui"
	"github.com/tidwall/sjson"
)

const (
	entryFile    = "index.html"
	manifestFile = "package.json"
)

// generateApp copies the application template wholesale, rewrites the HTML
// entry and the manifest name, then installs dependencies.
func (g *Generator) generateApp(ctx context.Context, j *job) (*Result, error) {
	g.progress.Start(message("app.start", j.messageData()))

	if err := g.copyTemplate(j); err != nil {
		g.interrupted()
		return nil, err
	}

	if err := g.renderFile(filepath.Join(j.projectDir, entryFile), j.forms); err != nil {
		g.interrupted()
		return nil, err
	}

	if err := g.renameManifest(j); err != nil {
		g.interrupted()
		return nil, err
	}

	g.progress.Succeed(message("app.done", j.messageData()))

	if err := g.install(ctx, j); err != nil {
		return nil, err
	}

	files := make([]string, 0, len(j.template.Files))
	for _, file := range j.template.Files {
		files = append(files, file.Path)
	}

	data := j.messageData()
	data.DevCommand = g.devCommand
	_, _ = fmt.Fprintf(g.out, "\n%s\n%s\n", tui.WarnStyle.Render("Run:"), message("next", data))

	return &Result{Unit: j.unit, Name: j.name, ProjectDir: j.projectDir, Files: files}, nil
}

// renameManifest sets the manifest "name" to the kebab form, keeping the
// rest of the document as written.
func (g *Generator) renameManifest(j *job) error {
	target := filepath.Join(j.projectDir, manifestFile)

	data, err := g.fs.ReadFile(target)
	if err != nil {
		return ioError("read", target, err)
	}

	updated, err := sjson.SetBytes(data, "name", j.forms.Kebab)
	if err != nil {
		return ioError("update", target, err)
	}

	logger.Debug("set %s name to %s", target, j.forms.Kebab)
	if err := g.fs.WriteFile(target, updated, filePerm); err != nil {
		return ioError("write", target, err)
	}
	return nil
}

func (g *Generator) install(ctx context.Context, j *job) error {
	if g.installCommand == "" || g.runner == nil {
		logger.Debug("skipping dependency installation")
		return nil
	}

	g.progress.Start(message("install.start", j.messageData()))
	if _, err := g.runner.Run(ctx, j.projectDir, g.installCommand); err != nil {
		if g.progress.Active() {
			g.progress.Fail(message("install.fail", j.messageData()))
		}
		return err
	}
	g.progress.Succeed(message("install.done", j.messageData()))

	return nil
}
