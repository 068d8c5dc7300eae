package panes

import (
	"strings"

	"skilltui/pkg/common"
	"skilltui/pkg/gui/components"
	"skilltui/pkg/gui/theme"
	"skilltui/pkg/runner"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

var (
	outputHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(theme.BrandColor))
	outputDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.SuccessStatus))
	outputErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.ErrorStatus))
	outputTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextPrimary))
)

// OutputPane shows the current command's output and relays keys to it while
// it runs
type OutputPane struct {
	*components.BasePane
	viewport viewport.Model
	loader   *components.RunLoader
	view     runner.View
	follow   bool
}

// NewOutputPane creates the output pane
func NewOutputPane() *OutputPane {
	vp := viewport.New(0, 0)
	vp.MouseWheelEnabled = true
	return &OutputPane{
		BasePane: components.NewBasePane(4, "Output"),
		viewport: vp,
		loader:   components.NewRunLoader("running"),
		follow:   true,
	}
}

// SetSize updates the pane dimensions and rewraps the output
func (p *OutputPane) SetSize(width, height int) {
	p.BasePane.SetSize(width, height)
	p.viewport.Width = components.PaneFullWidth(width)
	p.viewport.Height = height
	p.refresh()
}

// SetView replaces the displayed execution state. It returns the spinner
// tick when a command has just started.
func (p *OutputPane) SetView(v runner.View) tea.Cmd {
	if v.ID != p.view.ID {
		p.follow = true
	} else {
		p.follow = p.viewport.AtBottom()
	}
	p.view = v
	p.refresh()
	return p.loader.SetActive(v.Running)
}

// Running reports whether the shown execution is still live
func (p *OutputPane) Running() bool {
	return p.view.Running
}

// Text returns the plain output buffer
func (p *OutputPane) Text() string {
	return strings.Join(p.view.Lines, "\n")
}

// LineCount returns the number of buffered output lines
func (p *OutputPane) LineCount() int {
	return len(p.view.Lines)
}

func (p *OutputPane) refresh() {
	width := p.GetWidth()
	if width < 1 {
		width = 1
	}
	rendered := make([]string, 0, len(p.view.Lines))
	for i, line := range p.view.Lines {
		rendered = append(rendered, renderOutputLine(classifyLine(p.view, i), line, width))
	}
	p.viewport.SetContent(components.ApplyPaneContentPadding(strings.Join(rendered, "\n"), width))
	if p.follow {
		p.viewport.GotoBottom()
	}
}

type lineKind int

const (
	lineText lineKind = iota
	lineHeader
	lineDone
	lineSpawnError
)

// classifyLine decides how line i of v is styled. Only the line the
// controller wrote for a failed spawn counts as an error; process output
// that happens to start with "Error:" stays plain text.
func classifyLine(v runner.View, i int) lineKind {
	line := v.Lines[i]
	switch {
	case i == 0 && strings.HasPrefix(line, "$ "):
		return lineHeader
	case line == runner.DoneMarker:
		return lineDone
	case v.SpawnFailed && i == runner.SpawnErrorLine:
		return lineSpawnError
	}
	return lineText
}

func renderOutputLine(kind lineKind, line string, width int) string {
	wrapped := wrap.String(line, width)
	switch kind {
	case lineHeader:
		return outputHeaderStyle.Render(wrapped)
	case lineDone:
		return outputDoneStyle.Render(wrapped)
	case lineSpawnError:
		return outputErrorStyle.Render(wrapped)
	}
	return outputTextStyle.Render(wrapped)
}

// GetTitleStyle shows the spinner while a command runs
func (p *OutputPane) GetTitleStyle() components.TitleStyle {
	style := p.BasePane.GetTitleStyle()
	parts := []string{}
	if p.loader.Active() {
		parts = append(parts, p.loader.View())
	}
	if p.IsActive() {
		parts = append(parts, components.FormatShortcuts(p.GetPaneSpecificKeybindings()...))
	} else if style.Shortcuts != "" {
		parts = append(parts, style.Shortcuts)
	}
	style.Shortcuts = strings.Join(parts, " ")
	return style
}

// Update advances the spinner and scrolls on mouse wheel
func (p *OutputPane) Update(msg tea.Msg) (components.Pane, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.MouseMsg:
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return p, cmd
	default:
		return p, p.loader.Update(msg)
	}
}

// HandleKey scrolls the output. Keys meant for the process never get here.
func (p *OutputPane) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := common.GlobalKeys
	switch {
	case key.Matches(msg, keys.ScrollUp):
		p.viewport.LineUp(max(p.viewport.Height-1, 1))
		return true, nil
	case key.Matches(msg, keys.ScrollDown):
		p.viewport.LineDown(max(p.viewport.Height-1, 1))
		return true, nil
	case key.Matches(msg, keys.Up):
		return p.MoveUp(), nil
	case key.Matches(msg, keys.Down):
		return p.MoveDown(), nil
	}
	return false, nil
}

func (p *OutputPane) MoveUp() bool {
	p.viewport.LineUp(1)
	return true
}

func (p *OutputPane) MoveDown() bool {
	p.viewport.LineDown(1)
	return true
}

// GetPaneSpecificKeybindings depends on whether a command is running
func (p *OutputPane) GetPaneSpecificKeybindings() []key.Binding {
	keys := common.GlobalKeys
	if p.view.Running {
		return []key.Binding{keys.Interrupt, keys.ScrollUp, keys.ScrollDown}
	}
	return []key.Binding{keys.ScrollUp, keys.ScrollDown, keys.Copy, keys.Rerun}
}

// View renders the output, or a hint before the first command
func (p *OutputPane) View() string {
	if p.view.ID == 0 || len(p.view.Lines) == 0 {
		return components.Placeholder("Select a command to run it", p.GetWidth(), p.GetHeight())
	}
	return p.viewport.View()
}
