package cmd

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles holds the text styles for one output writer. Colors are dropped
// when the writer is not a terminal.
type styles struct {
	ok      lipgloss.Style
	err     lipgloss.Style
	item    lipgloss.Style
	hint    lipgloss.Style
	kind    lipgloss.Style
	path    lipgloss.Style
	skipped lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)

	return styles{
		ok:      r.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		item:    r.NewStyle().Foreground(lipgloss.Color("6")),
		hint:    r.NewStyle().Foreground(lipgloss.Color("8")),
		kind:    r.NewStyle().Foreground(lipgloss.Color("4")).Width(8),
		path:    r.NewStyle().Foreground(lipgloss.Color("15")),
		skipped: r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}
