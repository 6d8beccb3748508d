package cli

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/noopejs/go-rgen/internal/generator"
	"github.com/noopejs/go-rgen/internal/runner"
	"github.com/noopejs/go-rgen/internal/templates"
	"github.com/noopejs/go-rgen/internal/tui"
	"github.com/spf13/cobra"
)

// NewCommand handles the new command
type NewCommand struct {
	fs          filesystem.FileSystem
	runner      runner.Runner
	opts        *rootOptions
	skipInstall bool
}

// NewNewCommand creates a new new command
func NewNewCommand(fs filesystem.FileSystem, r runner.Runner, opts *rootOptions) *cobra.Command {
	cmd := &NewCommand{
		fs:     fs,
		runner: r,
		opts:   opts,
	}

	cobraCmd := &cobra.Command{
		Use:   "new <type> <name>",
		Short: "Generate an app or a unit from its template",
		Long: `Generates a unit of the given type named <name>.

Types: app, module, moduleComponent, service, moduleClass.

Apps are created in ./<name> and get their dependencies installed.
Every other unit is created in ./src/<name>. Names are converted to
kebab-case for paths; only apps may start with "root".`,
		Example: `  # Create a new application
  rgen new app my-shop

  # Add a module with component, style and service
  rgen new module UserProfile

  # Add a single service to an existing module directory
  rgen new service user-profile`,
		Args: cobra.MaximumNArgs(2),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().BoolVar(&cmd.skipInstall, "skip-install", false, "Do not install dependencies after generating an app")

	return cobraCmd
}

// Run executes the new command
func (c *NewCommand) Run(cmd *cobra.Command, args []string) error {
	// missing arguments are reported as an invalid type or name
	padded := append(append([]string(nil), args...), "", "")
	unitType, name := padded[0], padded[1]

	source, err := c.templateSource()
	if err != nil {
		return err
	}

	installCommand := c.opts.cfg.InstallCommand
	if c.skipInstall {
		installCommand = ""
	}

	gen := generator.New(generator.Config{
		FS:             c.fs,
		Templates:      source,
		Prompter:       tui.NewOverwritePrompt(cmd.InOrStdin(), cmd.OutOrStdout()),
		Progress:       tui.NewProgress(cmd.OutOrStdout()),
		Runner:         c.runner,
		Out:            cmd.OutOrStdout(),
		InstallCommand: installCommand,
	})

	_, err = gen.Generate(cmd.Context(), unitType, name)
	return err
}

func (c *NewCommand) templateSource() (fs.FS, error) {
	dir := c.opts.cfg.TemplatesDir
	if dir == "" {
		return templates.Embedded(), nil
	}

	if !filepath.IsAbs(dir) {
		cwd, err := c.fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = filepath.Join(cwd, dir)
	}

	return templates.Dir(dir), nil
}
