package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	panel    lipgloss.Style
	title    lipgloss.Style
	subtle   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	accent   lipgloss.Style
	positive lipgloss.Style
	negative lipgloss.Style
	key      lipgloss.Style
}

func stylesFor(t Theme) styles {
	return styles{
		panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 2),
		title:    lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		accent:   lipgloss.NewStyle().Foreground(t.Accent),
		positive: lipgloss.NewStyle().Foreground(t.Positive),
		negative: lipgloss.NewStyle().Foreground(t.Negative),
		key:      lipgloss.NewStyle().Foreground(t.Secondary).Bold(true),
	}
}

func (s styles) row(label, value string) string {
	return s.label.Render(label) + s.value.Render(value)
}

// signed colors a value by its sign.
func (s styles) signed(v float64, text string) string {
	if v < 0 {
		return s.negative.Render(text)
	}
	return s.positive.Render(text)
}

func (s styles) hints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, s.key.Render(pairs[i])+s.subtle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// separator draws a centered diamond rule of the given width.
func (s styles) separator(width int) string {
	if width < 8 {
		return s.subtle.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	return s.subtle.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
