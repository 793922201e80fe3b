package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Color palette - consistent across all output
var (
	Green = lipgloss.Color("10") // success, active alliances
	Red   = lipgloss.Color("9")  // errors
	Grey  = lipgloss.Color("8")  // muted text
	Blue  = lipgloss.Color("4")  // headers
	White = lipgloss.Color("15") // header text
	Gold  = lipgloss.Color("11") // locked heroes
)

// Tier colors, index 1-5.
var TierColors = [6]lipgloss.Color{
	"", "7", "10", "12", "13", "11",
}

// Styles returns styled text helpers bound to a renderer
type Styles struct {
	renderer *lipgloss.Renderer

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Locked   lipgloss.Style
	Flex     lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
}

// NewStyles creates a new Styles instance for the given output
func NewStyles(output *os.File) *Styles {
	r := lipgloss.NewRenderer(output)

	return &Styles{
		renderer: r,

		Title:    r.NewStyle().Bold(true).Foreground(White),
		Subtitle: r.NewStyle().Foreground(Grey),
		Success:  r.NewStyle().Foreground(Green),
		Error:    r.NewStyle().Foreground(Red),
		Muted:    r.NewStyle().Foreground(Grey),
		Bold:     r.NewStyle().Bold(true),
		Locked:   r.NewStyle().Bold(true).Foreground(Gold),
		Flex:     r.NewStyle().Foreground(Blue),

		TableHeader: r.NewStyle().Bold(true).Foreground(White).Padding(0, 1),
		TableCell:   r.NewStyle().Padding(0, 1),
	}
}

// DefaultStyles returns styles for stdout
func DefaultStyles() *Styles {
	return NewStyles(os.Stdout)
}

// Tier renders a tier number in its tier color.
func (s *Styles) Tier(tier int) lipgloss.Style {
	if tier < 1 || tier > 5 {
		return s.Muted
	}
	return s.renderer.NewStyle().Foreground(TierColors[tier])
}

// Truncate shortens a string to maxLen with ellipsis
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
