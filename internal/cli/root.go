package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/noopejs/go-rgen/internal/config"
	"github.com/noopejs/go-rgen/internal/filesystem"
	"github.com/noopejs/go-rgen/internal/generator"
	"github.com/noopejs/go-rgen/internal/logger"
	"github.com/noopejs/go-rgen/internal/runner"
	"github.com/noopejs/go-rgen/internal/tui"
	"github.com/spf13/cobra"
)

// rootOptions is shared by every subcommand; PersistentPreRunE fills cfg.
type rootOptions struct {
	configFile string
	debug      bool
	cfg        *config.Config
}

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, r runner.Runner) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "rgen",
		Short: "Scaffold and run modular React applications",
		Long: `A CLI tool that scaffolds React applications and their units
(modules, components, services, module classes) from templates, and
drives the web build tool for development, builds and previews.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.Init(opts.debug, cmd.ErrOrStderr())
			return opts.load(fs)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default is ./rgen.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Print debug output")

	// Add subcommands
	rootCmd.AddCommand(NewNewCommand(fs, r, opts))
	rootCmd.AddCommand(NewDevCommand(fs, r, opts))
	rootCmd.AddCommand(NewBuildCommand(fs, r, opts))
	rootCmd.AddCommand(NewServeCommand(fs, r, opts))
	rootCmd.AddCommand(NewTypesCommand())

	return rootCmd
}

func (o *rootOptions) load(fs filesystem.FileSystem) error {
	cwd, err := fs.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(cwd, o.configFile)
	if err != nil {
		return err
	}
	if cfg.File != "" {
		logger.Debug("using config %s", cfg.File)
	}

	o.cfg = cfg
	return nil
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	rootCmd := NewRootCommand(fs, runner.NewOSRunner())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return RenderError(rootCmd.ErrOrStderr(), rootCmd.ExecuteContext(ctx))
}

// RenderError prints err for the user. A declined overwrite is not a
// failure: it prints "Aborting..." and returns nil. Failed subprocesses get
// a hint naming the command to re-run by hand.
func RenderError(w io.Writer, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, generator.ErrConflictAborted) {
		_, _ = fmt.Fprintln(w, tui.WarnStyle.Render("Aborting..."))
		return nil
	}

	_, _ = fmt.Fprintln(w, tui.ErrorStyle.Render("Error: "+err.Error()))

	var subErr *runner.SubprocessError
	if errors.As(err, &subErr) {
		_, _ = fmt.Fprintln(w, tui.WarnStyle.Render(
			fmt.Sprintf("Try running %s manually to trace the error.", tui.AccentStyle.Render(subErr.Cmd)),
		))
	}

	return err
}
