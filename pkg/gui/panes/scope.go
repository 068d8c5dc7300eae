package panes

import (
	"skilltui/pkg/app"
	"skilltui/pkg/common"
	"skilltui/pkg/gui/components"
	"skilltui/pkg/gui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ScopeToggledMsg is sent when the user flips the scope
type ScopeToggledMsg struct{}

// ScopePane shows whether commands run globally or in the project
type ScopePane struct {
	*components.BasePane
	scope app.Scope
}

// NewScopePane creates the scope toggle
func NewScopePane() *ScopePane {
	return &ScopePane{
		BasePane: components.NewBasePane(2, "Scope"),
		scope:    app.ScopeGlobal,
	}
}

// SetScope updates the displayed scope
func (p *ScopePane) SetScope(scope app.Scope) {
	p.scope = scope
}

func (p *ScopePane) GetTitleStyle() components.TitleStyle {
	style := p.BasePane.GetTitleStyle()
	if p.IsActive() {
		style.Shortcuts = components.FormatShortcuts(p.GetPaneSpecificKeybindings()...)
	}
	return style
}

func (p *ScopePane) Update(msg tea.Msg) (components.Pane, tea.Cmd) {
	return p, nil
}

// HandleKey toggles the scope on space or enter
func (p *ScopePane) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, common.GlobalKeys.ToggleScope) {
		return true, func() tea.Msg { return ScopeToggledMsg{} }
	}
	return false, nil
}

func (p *ScopePane) GetPaneSpecificKeybindings() []key.Binding {
	return []key.Binding{common.GlobalKeys.ToggleScope}
}

// View renders both options with the current one filled in
func (p *ScopePane) View() string {
	option := func(s app.Scope, color string) string {
		if s == p.scope {
			return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render("● " + s.String())
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted)).Render("○ " + s.String())
	}
	line := option(app.ScopeGlobal, theme.InfoStatus) + "   " + option(app.ScopeProject, theme.WarningStatus)
	return components.ApplyPaneContentPadding(line, p.GetWidth())
}
