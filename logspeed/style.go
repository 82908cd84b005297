package logspeed

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	notice lipgloss.Style
	muted  lipgloss.Style
	name   lipgloss.Style
	label  lipgloss.Style
	row    lipgloss.Style
}

// newStyles builds styles on a renderer of their own. The default lipgloss
// renderer probes stdout, which says nothing about where a Sink writes, so
// the profile is pinned once color has been decided.
func newStyles() styles {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI256)

	return styles{
		notice: r.NewStyle().Foreground(lipgloss.Color("33")),
		muted:  r.NewStyle().Foreground(lipgloss.Color("241")),
		name:   r.NewStyle().Foreground(lipgloss.Color("117")),
		label:  r.NewStyle().Foreground(lipgloss.Color("214")),
		row:    r.NewStyle().Foreground(lipgloss.Color("205")),
	}
}

// paint renders text with style when color output is enabled.
func (s *Session) paint(style lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return style.Render(text)
}
