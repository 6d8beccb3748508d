package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/noopejs/go-rgen/internal/logger"
)

// Runner executes external commands such as the dependency installer and
// the web build tool.
type Runner interface {
	// Run executes command in dir, waits for it and captures its output.
	Run(ctx context.Context, dir, command string) (string, error)
	// Stream executes command in dir attached to the given writers and
	// waits for it to exit.
	Stream(ctx context.Context, dir, command string, stdout, stderr io.Writer) error
}

// SubprocessError reports a command that could not be started or exited
// non-zero. Cmd is the literal command line, so it can be re-run by hand.
type SubprocessError struct {
	Cmd    string
	Dir    string
	Stderr string
	Err    error
}

func (e *SubprocessError) Error() string {
	msg := fmt.Sprintf("command %q failed: %v", e.Cmd, e.Err)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += "\n" + stderr
	}
	return msg
}

func (e *SubprocessError) Unwrap() error {
	return e.Err
}

// OSRunner implements Runner with os/exec
type OSRunner struct{}

// NewOSRunner creates a new OSRunner
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

func (r *OSRunner) Run(ctx context.Context, dir, command string) (string, error) {
	cmd, err := r.command(ctx, dir, command)
	if err != nil {
		return "", err
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	logger.Debug("running %q in %s", command, dir)
	if err := cmd.Run(); err != nil {
		return "", &SubprocessError{Cmd: command, Dir: dir, Stderr: stderr.String(), Err: err}
	}

	if stdout.Len() > 0 {
		return stdout.String(), nil
	}
	return stderr.String(), nil
}

func (r *OSRunner) Stream(ctx context.Context, dir, command string, stdout, stderr io.Writer) error {
	cmd, err := r.command(ctx, dir, command)
	if err != nil {
		return err
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	logger.Debug("streaming %q in %s", command, dir)
	if err := cmd.Run(); err != nil {
		return &SubprocessError{Cmd: command, Dir: dir, Err: err}
	}
	return nil
}

func (r *OSRunner) command(ctx context.Context, dir, command string) (*exec.Cmd, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, &SubprocessError{Cmd: command, Dir: dir, Err: errors.New("empty command")}
	}

	bin, err := resolve(dir, args[0])
	if err != nil {
		return nil, &SubprocessError{Cmd: command, Dir: dir, Err: err}
	}

	cmd := exec.CommandContext(ctx, bin, args[1:]...)
	cmd.Dir = dir
	return cmd, nil
}

// resolve prefers the project's own node_modules/.bin over PATH, the way
// npm scripts do.
func resolve(dir, name string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) {
		return name, nil
	}

	local := filepath.Join(dir, "node_modules", ".bin", name)
	if info, err := os.Stat(local); err == nil && !info.IsDir() {
		return local, nil
	}

	return exec.LookPath(name)
}
