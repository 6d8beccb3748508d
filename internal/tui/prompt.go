package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
)

// OverwritePrompt asks a free-text yes/no question. Only "y" (any case,
// surrounding whitespace ignored) counts as yes.
type OverwritePrompt struct {
	in          io.Reader
	out         io.Writer
	interactive bool
}

// NewOverwritePrompt reads answers from in. A terminal gets a huh input
// field, anything else is read line by line.
func NewOverwritePrompt(in io.Reader, out io.Writer) *OverwritePrompt {
	return &OverwritePrompt{
		in:          in,
		out:         out,
		interactive: IsTerminal(in) && IsTerminal(out),
	}
}

// Confirm shows message and reports whether the answer was affirmative.
// Closing the input or aborting the form counts as no.
func (p *OverwritePrompt) Confirm(message string) (bool, error) {
	if !p.interactive {
		return p.confirmLine(message)
	}

	answer := ""
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(message).
				Placeholder("y/n").
				Value(&answer),
		),
	).
		WithTheme(NewHuhTheme()).
		WithShowHelp(false).
		WithInput(p.in).
		WithOutput(p.out)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}

	return IsAffirmative(answer), nil
}

func (p *OverwritePrompt) confirmLine(message string) (bool, error) {
	_, _ = fmt.Fprint(p.out, WarnStyle.Render(message)+" "+AccentStyle.Render("[y/n]")+" ")

	scanner := bufio.NewScanner(p.in)
	if !scanner.Scan() {
		_, _ = fmt.Fprintln(p.out)
		return false, scanner.Err()
	}

	return IsAffirmative(scanner.Text()), nil
}

// IsAffirmative reports whether answer is exactly "y", ignoring case and
// surrounding whitespace.
func IsAffirmative(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == "y"
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
