package cli

import (
	"fmt"
	"path/filepath"

	"github.com/noopejs/go-rgen/internal/buildtool"
	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/noopejs/go-rgen/internal/logger"
	"github.com/noopejs/go-rgen/internal/runner"
	"github.com/noopejs/go-rgen/internal/tui"
	"github.com/spf13/cobra"
)

// ViteCommand runs the web build tool in the current project
type ViteCommand struct {
	fs     filesystem.FileSystem
	runner runner.Runner
	opts   *rootOptions
	mode   buildtool.Mode
}

// NewDevCommand creates the dev command
func NewDevCommand(fs filesystem.FileSystem, r runner.Runner, opts *rootOptions) *cobra.Command {
	cmd := &ViteCommand{fs: fs, runner: r, opts: opts, mode: buildtool.ModeDev}

	return &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// NewBuildCommand creates the build command
func NewBuildCommand(fs filesystem.FileSystem, r runner.Runner, opts *rootOptions) *cobra.Command {
	cmd := &ViteCommand{fs: fs, runner: r, opts: opts, mode: buildtool.ModeBuild}

	return &cobra.Command{
		Use:   "build",
		Short: "Build the project for production",
		Long: `Builds the project with the web build tool, then minifies the
react*.js chunks in the assets directory (disable with build.minify: false).`,
		Args: cobra.NoArgs,
		RunE: cmd.Run,
	}
}

// NewServeCommand creates the serve command
func NewServeCommand(fs filesystem.FileSystem, r runner.Runner, opts *rootOptions) *cobra.Command {
	cmd := &ViteCommand{fs: fs, runner: r, opts: opts, mode: buildtool.ModePreview}

	return &cobra.Command{
		Use:   "serve",
		Short: "Preview the production build",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the build tool in the working directory
func (c *ViteCommand) Run(cmd *cobra.Command, args []string) error {
	cwd, err := c.fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := c.opts.cfg
	out := cmd.OutOrStdout()
	command := buildtool.Command(c.mode, cfg.ViteConfig)
	ports := buildtool.ResolvePorts(c.fs, cwd, cfg.ViteConfig, buildtool.Ports{
		Dev:     cfg.DevPort,
		Preview: cfg.PreviewPort,
	})
	project := buildtool.ProjectName(c.fs, cwd)

	switch c.mode {
	case buildtool.ModeDev:
		_, _ = fmt.Fprintf(out, "%s %s\n", tui.TitleStyle.Render(project), tui.SubtleStyle.Render("development server"))
		_, _ = fmt.Fprintf(out, "Running: %s\n", tui.AccentStyle.Render(buildtool.URL(ports.Dev)))
	case buildtool.ModePreview:
		_, _ = fmt.Fprintf(out, "%s %s\n", tui.TitleStyle.Render(project), tui.SubtleStyle.Render("preview server"))
		_, _ = fmt.Fprintf(out, "Running: %s\n", tui.AccentStyle.Render(buildtool.URL(ports.Preview)))
	}

	if err := c.runner.Stream(cmd.Context(), cwd, command, out, cmd.ErrOrStderr()); err != nil {
		return err
	}

	if c.mode != buildtool.ModeBuild {
		return nil
	}

	if cfg.Minify {
		c.minify(cmd, cwd)
	}

	logger.Info("Build of %s completed.", project)
	_, _ = fmt.Fprintf(out, "Preview: %s\n", tui.AccentStyle.Render("rgen serve"))
	return nil
}

// minify never fails the build; problems are logged as warnings.
func (c *ViteCommand) minify(cmd *cobra.Command, cwd string) {
	assets := c.opts.cfg.AssetsDir
	if !filepath.IsAbs(assets) {
		assets = filepath.Join(cwd, assets)
	}

	progress := tui.NewProgress(cmd.OutOrStdout())
	progress.Start("Minifying react chunks...")

	report, err := buildtool.MinifyReactChunks(c.fs, assets)
	if err != nil {
		progress.Fail("Minification skipped.")
		logger.Warn("%v", err)
		return
	}

	for path, failure := range report.Failed {
		logger.Warn("could not minify %s: %v", path, failure)
	}
	progress.Succeed(fmt.Sprintf("Minified %d file(s).", len(report.Minified)))
}
