package components

import (
	"strings"

	"skilltui/pkg/gui/theme"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const paneContentPadding = 1

// PaneBaseStyle is the bordered frame every pane is drawn in
var PaneBaseStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color(theme.BorderMuted))

// PaneContentHorizontalPadding returns the padding applied on each side of pane content
func PaneContentHorizontalPadding() int {
	return paneContentPadding
}

// PaneFullWidth returns the width of content plus its horizontal padding
func PaneFullWidth(contentWidth int) int {
	if contentWidth < 0 {
		contentWidth = 0
	}
	return contentWidth + paneContentPadding*2
}

// ApplyPaneContentPadding pads content horizontally to fill the pane interior
func ApplyPaneContentPadding(content string, contentWidth int) string {
	return lipgloss.NewStyle().
		Padding(0, paneContentPadding).
		Width(PaneFullWidth(contentWidth)).
		Render(content)
}

// Placeholder renders a centered muted message filling the pane
func Placeholder(message string, contentWidth, height int) string {
	if height < 1 {
		height = 1
	}
	return lipgloss.NewStyle().
		Width(PaneFullWidth(contentWidth)).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(lipgloss.Color(theme.TextMuted)).
		Render(message)
}

// TitleStyle defines how a pane's title should be rendered
type TitleStyle struct {
	Type      string // "plain" or "badge"
	Color     string // badge background
	Text      string
	Shortcuts string // shown next to the title, e.g. "↵ run • ↑/↓ move"
}

// Pane represents a common interface for all UI panes in the application
type Pane interface {
	SetSize(width, height int)
	SetActive(active bool)
	IsActive() bool
	GetIndex() int

	GetTitle() string
	GetTitleStyle() TitleStyle

	View() string
	Update(msg tea.Msg) (Pane, tea.Cmd)

	// HandleKey processes a key while the pane is focused
	HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd)
	MoveUp() bool
	MoveDown() bool

	GetPaneSpecificKeybindings() []key.Binding
}

// BasePane provides default implementations for common pane functionality
type BasePane struct {
	index    int
	width    int
	height   int
	isActive bool
	title    string
}

// NewBasePane creates a new BasePane with the given index and title
func NewBasePane(index int, title string) *BasePane {
	return &BasePane{
		index: index,
		title: title,
	}
}

// SetSize updates the pane dimensions
func (p *BasePane) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetActive sets whether this pane is currently focused
func (p *BasePane) SetActive(active bool) {
	p.isActive = active
}

// IsActive returns whether this pane is currently focused
func (p *BasePane) IsActive() bool {
	return p.isActive
}

// GetIndex returns the pane's number, used for the direct focus keys
func (p *BasePane) GetIndex() int {
	return p.index
}

// GetTitle returns the pane's title
func (p *BasePane) GetTitle() string {
	return p.title
}

// SetTitle updates the pane's title
func (p *BasePane) SetTitle(title string) {
	p.title = title
}

// GetTitleStyle returns the default title style: plain text, pane number when inactive
func (p *BasePane) GetTitleStyle() TitleStyle {
	shortcuts := ""
	if !p.isActive {
		shortcuts = "[" + string(rune('0'+p.index)) + "]"
	}
	return TitleStyle{
		Type:      "plain",
		Text:      p.title,
		Shortcuts: shortcuts,
	}
}

// View returns a default empty view
func (p *BasePane) View() string {
	return ""
}

// Update handles tea.Msg updates - default implementation does nothing
func (p *BasePane) Update(msg tea.Msg) (Pane, tea.Cmd) {
	return p, nil
}

// HandleKey processes keyboard input - default implementation handles nothing
func (p *BasePane) HandleKey(msg tea.KeyMsg) (handled bool, cmd tea.Cmd) {
	return false, nil
}

// MoveUp provides default no-navigation implementation
func (p *BasePane) MoveUp() bool {
	return false
}

// MoveDown provides default no-navigation implementation
func (p *BasePane) MoveDown() bool {
	return false
}

// GetPaneSpecificKeybindings returns pane-specific keybindings - default is empty
func (p *BasePane) GetPaneSpecificKeybindings() []key.Binding {
	return []key.Binding{}
}

// GetWidth returns the current content width
func (p *BasePane) GetWidth() int {
	return p.width
}

// GetHeight returns the current content height
func (p *BasePane) GetHeight() int {
	return p.height
}

// FormatShortcuts joins binding help as "key desc • key desc"
func FormatShortcuts(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " • ")
}
