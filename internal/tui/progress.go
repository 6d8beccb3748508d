package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Progress reports a long running step: one Start followed by Succeed or
// Fail.
type Progress interface {
	Start(msg string)
	Succeed(msg string)
	Fail(msg string)
	// Active reports whether a step was started and not finished yet.
	Active() bool
}

// NewProgress returns a spinner when out is a terminal and a plain line
// printer otherwise.
func NewProgress(out io.Writer) Progress {
	if IsTerminal(out) {
		return &spinnerProgress{out: out}
	}
	return NewPlainProgress(out)
}

// PlainProgress prints one line per event.
type PlainProgress struct {
	out    io.Writer
	active bool
}

// NewPlainProgress creates a PlainProgress writing to out
func NewPlainProgress(out io.Writer) *PlainProgress {
	return &PlainProgress{out: out}
}

func (p *PlainProgress) Start(msg string) {
	p.active = true
	_, _ = fmt.Fprintln(p.out, AccentStyle.Render("• "+msg))
}

func (p *PlainProgress) Succeed(msg string) {
	p.active = false
	_, _ = fmt.Fprintln(p.out, SuccessStyle.Render("✓ "+msg))
}

func (p *PlainProgress) Fail(msg string) {
	p.active = false
	_, _ = fmt.Fprintln(p.out, ErrorStyle.Render("✗ "+msg))
}

func (p *PlainProgress) Active() bool {
	return p.active
}

type stopSpinnerMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	msg     string
	done    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopSpinnerMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + AccentStyle.Render(m.msg)
}

type spinnerProgress struct {
	out     io.Writer
	program *tea.Program
	done    chan struct{}
}

func (p *spinnerProgress) Start(msg string) {
	p.stop()

	model := spinnerModel{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(AccentStyle)),
		msg:     msg,
	}
	p.program = tea.NewProgram(model, tea.WithOutput(p.out), tea.WithInput(nil))
	p.done = make(chan struct{})

	go func(program *tea.Program, done chan struct{}) {
		defer close(done)
		_, _ = program.Run()
	}(p.program, p.done)
}

func (p *spinnerProgress) Succeed(msg string) {
	p.stop()
	_, _ = fmt.Fprintln(p.out, SuccessStyle.Render("✓ "+msg))
}

func (p *spinnerProgress) Fail(msg string) {
	p.stop()
	_, _ = fmt.Fprintln(p.out, ErrorStyle.Render("✗ "+msg))
}

func (p *spinnerProgress) Active() bool {
	return p.program != nil
}

func (p *spinnerProgress) stop() {
	if p.program == nil {
		return
	}
	p.program.Send(stopSpinnerMsg{})
	<-p.done
	p.program = nil
}
