package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleBold    = lipgloss.NewStyle().Bold(true)
	styleFaint   = lipgloss.NewStyle().Faint(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleURL     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
)

// warnWriter renders each write in the warning style.
type warnWriter struct {
	w io.Writer
}

func (w warnWriter) Write(p []byte) (int, error) {
	line := styleWarning.Render(strings.TrimRight(string(p), "\n"))
	if _, err := io.WriteString(w.w, line+"\n"); err != nil {
		return 0, err
	}
	return len(p), nil
}
