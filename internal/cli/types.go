package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/noopejs/go-rgen/internal/models"
	"github.com/noopejs/go-rgen/internal/placeholder"
	"github.com/noopejs/go-rgen/internal/tui"
	"github.com/spf13/cobra"
)

// TypesCommand lists the unit types new can generate
type TypesCommand struct{}

// NewTypesCommand creates the types command
func NewTypesCommand() *cobra.Command {
	cmd := &TypesCommand{}

	return &cobra.Command{
		Use:   "types",
		Short: "List the unit types and the files they produce",
		Args:  cobra.NoArgs,
		RunE:  cmd.Run,
	}
}

// Run executes the types command
func (c *TypesCommand) Run(cmd *cobra.Command, args []string) error {
	nameCol := lipgloss.NewStyle().Width(18)
	dirCol := lipgloss.NewStyle().Width(14)

	out := cmd.OutOrStdout()
	for _, unit := range models.UnitTypes() {
		files := "project directory"
		if names := unit.OutputFiles(placeholder.TokenKebabed); len(names) > 0 {
			files = strings.Join(names, ", ")
		}

		dir := models.SourceDir + "/" + placeholder.TokenKebabed
		if unit.AtRoot() {
			dir = placeholder.TokenKebabed
		}

		_, _ = fmt.Fprintf(out, "%s%s%s\n",
			nameCol.Render(tui.TitleStyle.Render(unit.String())),
			dirCol.Render(dir),
			tui.SubtleStyle.Render(files),
		)
	}

	return nil
}
