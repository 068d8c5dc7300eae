package overlays

import (
	"strings"

	"skilltui/pkg/common"
	"skilltui/pkg/gui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const helpKeyColumn = 12

// HelpDialog represents a help overlay showing all shortcuts
type HelpDialog struct {
	keyMap *common.GlobalKeyMap
	tool   string
	width  int
	height int
}

// Styling for help dialog
var (
	helpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(theme.BorderActive)).
				Padding(1, 2).
				MaxWidth(65)

	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.BrandColor)).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(theme.InfoStatus)).
				MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.WarningYellow))

	helpDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription))

	helpFooterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextMuted)).
			Italic(true).
			MarginTop(1)
)

// HelpClosedMsg indicates the help dialog was dismissed
type HelpClosedMsg struct{}

// NewHelpDialog creates a new help dialog
func NewHelpDialog(keyMap *common.GlobalKeyMap, tool string) *HelpDialog {
	return &HelpDialog{keyMap: keyMap, tool: tool}
}

// SetSize updates the dialog dimensions
func (h *HelpDialog) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// Update closes the dialog on any key
func (h *HelpDialog) Update(msg tea.Msg) (*HelpDialog, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return h, func() tea.Msg { return HelpClosedMsg{} }
	}
	return h, nil
}

// View renders the help dialog content
func (h *HelpDialog) View() string {
	var content []string

	content = append(content, helpTitleStyle.Render("skilltui - "+h.tool))

	for _, section := range common.AllShortcuts(h.keyMap) {
		content = append(content, helpSectionStyle.Render(section.Title))
		for _, shortcut := range section.Shortcuts {
			line := "  " + helpKeyStyle.Render(padRight(shortcut.Key, helpKeyColumn)) +
				helpDescStyle.Render(shortcut.Description)
			content = append(content, line)
		}
	}

	content = append(content, helpFooterStyle.Render("Press any key to close"))

	return helpOverlayStyle.Render(strings.Join(content, "\n"))
}

// padRight pads a string to the right with spaces
func padRight(s string, length int) string {
	if w := lipgloss.Width(s); w < length {
		return s + strings.Repeat(" ", length-w)
	}
	return s
}
