// Package trace renders per-character machine diagnostics.
package trace

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"enigma/core/machine"
)

var (
	settingsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	symbolStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	arrowStyle    = lipgloss.NewStyle().Faint(true)
)

// Writer writes one "[SETTINGS] IN -> PLUGGED -> OUT" line per Step.
// Write errors are dropped; diagnostics never stop a conversion.
type Writer struct {
	w      io.Writer
	styled bool
}

// New returns a tracer writing to w. When styled is set the line is
// coloured for a terminal.
func New(w io.Writer, styled bool) *Writer {
	return &Writer{w: w, styled: styled}
}

var _ machine.Tracer = (*Writer)(nil)

// Trace implements machine.Tracer.
func (t *Writer) Trace(s machine.Step) {
	_, _ = io.WriteString(t.w, t.Format(s)+"\n")
}

// Format renders s without the trailing newline.
func (t *Writer) Format(s machine.Step) string {
	if !t.styled {
		return fmt.Sprintf("[%s] %c -> %c -> %c", s.Settings, s.In, s.Plugged, s.Out)
	}
	arrow := arrowStyle.Render("->")
	return fmt.Sprintf("%s %s %s %s %s %s",
		settingsStyle.Render("["+s.Settings+"]"),
		symbolStyle.Render(string(s.In)), arrow,
		symbolStyle.Render(string(s.Plugged)), arrow,
		symbolStyle.Render(string(s.Out)))
}
