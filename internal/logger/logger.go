package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/noopejs/go-rgen/internal/tui"
)

// output receives every log line; Init swaps it.
var output io.Writer = os.Stderr

// Info logs a line in the success color.
var Info = printer(tui.SuccessStyle)

// Warn logs a line in the warning color.
var Warn = printer(tui.WarnStyle)

// Debug logs a line in a subtle color when debug logging is enabled and is
// a no-op otherwise.
var Debug = func(format string, a ...any) {}

// Init sets the destination for log lines and toggles debug output.
func Init(enableDebug bool, w io.Writer) {
	if w != nil {
		output = w
	}
	if enableDebug {
		Debug = printer(tui.SubtleStyle)
	} else {
		Debug = func(format string, a ...any) {}
	}
}

func printer(style lipgloss.Style) func(format string, a ...any) {
	return func(format string, a ...any) {
		line := strings.TrimRight(fmt.Sprintf(format, a...), "\n")
		_, _ = fmt.Fprintln(output, style.Render(line))
	}
}
