package components

import (
	"skilltui/pkg/gui/theme"

	"github.com/charmbracelet/lipgloss"
)

var (
	bannerNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.BrandColor)).
			Bold(true)

	bannerToolStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextMuted))
)

// Banner renders the one-line header shown above the panes.
func Banner(tool string) string {
	name := bannerNameStyle.Render("◆ skilltui")
	if tool == "" {
		return name
	}
	return name + bannerToolStyle.Render("  "+tool)
}
