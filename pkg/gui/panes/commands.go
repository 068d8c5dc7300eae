package panes

import (
	"skilltui/pkg/catalog"
	"skilltui/pkg/common"
	"skilltui/pkg/gui/components"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// CommandSelectedMsg is sent when enter is pressed on a command
type CommandSelectedMsg struct {
	Name string
}

// CommandsPane lists the tool's subcommands
type CommandsPane struct {
	*components.BasePane
	entries        entryList
	targetCommands map[string]bool
}

// NewCommandsPane creates the command list. Commands named in targetCommands
// are marked as taking a target.
func NewCommandsPane(targetCommands map[string]bool) *CommandsPane {
	return &CommandsPane{
		BasePane:       components.NewBasePane(1, "Commands"),
		entries:        newEntries("Loading commands…", "none found"),
		targetCommands: targetCommands,
	}
}

// SetCommands replaces the list contents
func (p *CommandsPane) SetCommands(cmds []catalog.Command) {
	entries := make([]entry, 0, len(cmds))
	for _, c := range cmds {
		label := c.Name
		if p.targetCommands[c.Name] {
			label += " …"
		}
		entries = append(entries, entry{label: label, hint: c.Description, value: c.Name})
	}
	p.entries.setEntries(entries)
}

// MarkSelected shows the cursor bar next to the chosen command
func (p *CommandsPane) MarkSelected(name string) {
	p.entries.mark(name)
}

// SetSize updates the pane dimensions
func (p *CommandsPane) SetSize(width, height int) {
	p.BasePane.SetSize(width, height)
	p.entries.setSize(width, height)
}

// SetActive sets whether this pane is currently focused
func (p *CommandsPane) SetActive(active bool) {
	p.BasePane.SetActive(active)
	p.entries.setActive(active)
}

// GetTitleStyle shows the pane shortcuts while focused
func (p *CommandsPane) GetTitleStyle() components.TitleStyle {
	style := p.BasePane.GetTitleStyle()
	if p.IsActive() {
		style.Shortcuts = components.FormatShortcuts(p.GetPaneSpecificKeybindings()...)
	}
	return style
}

// Update handles non-key messages
func (p *CommandsPane) Update(msg tea.Msg) (components.Pane, tea.Cmd) {
	return p, nil
}

// HandleKey selects or moves through commands
func (p *CommandsPane) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := common.GlobalKeys
	switch {
	case key.Matches(msg, keys.Select):
		e, ok := p.entries.current()
		if !ok {
			return true, nil
		}
		return true, func() tea.Msg { return CommandSelectedMsg{Name: e.value} }
	case key.Matches(msg, keys.Up):
		p.MoveUp()
		return true, nil
	case key.Matches(msg, keys.Down):
		p.MoveDown()
		return true, nil
	}
	return false, nil
}

// MoveUp moves the cursor up
func (p *CommandsPane) MoveUp() bool {
	return p.entries.moveUp()
}

// MoveDown moves the cursor down
func (p *CommandsPane) MoveDown() bool {
	return p.entries.moveDown()
}

// GetPaneSpecificKeybindings returns the keys this pane handles
func (p *CommandsPane) GetPaneSpecificKeybindings() []key.Binding {
	return []key.Binding{common.GlobalKeys.Select, common.GlobalKeys.Up, common.GlobalKeys.Down}
}

// View renders the list
func (p *CommandsPane) View() string {
	return p.entries.view(p.GetWidth(), p.GetHeight())
}
