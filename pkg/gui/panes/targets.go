package panes

import (
	"skilltui/pkg/common"
	"skilltui/pkg/gui/components"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// TargetSelectedMsg is sent when enter is pressed on a target
type TargetSelectedMsg struct {
	Target string
}

// TargetsPane lists the targets a command such as "add" can act on
type TargetsPane struct {
	*components.BasePane
	entries entryList
}

// NewTargetsPane creates the target list, which starts in its loading state
func NewTargetsPane() *TargetsPane {
	return &TargetsPane{
		BasePane: components.NewBasePane(3, "Targets"),
		entries:  newEntries("Loading targets…", "none found"),
	}
}

// SetTargets replaces the list contents
func (p *TargetsPane) SetTargets(targets []string) {
	entries := make([]entry, 0, len(targets))
	for _, t := range targets {
		entries = append(entries, entry{label: t, value: t})
	}
	p.entries.setEntries(entries)
}

// SetCommand names the command the targets are for in the title
func (p *TargetsPane) SetCommand(name string) {
	if name == "" {
		p.SetTitle("Targets")
		return
	}
	p.SetTitle("Targets for " + name)
}

// MarkSelected shows the cursor bar next to the chosen target
func (p *TargetsPane) MarkSelected(target string) {
	p.entries.mark(target)
}

// SetSize resizes the pane and its list
func (p *TargetsPane) SetSize(width, height int) {
	p.BasePane.SetSize(width, height)
	p.entries.setSize(width, height)
}

// SetActive sets focus and switches the row highlight on or off
func (p *TargetsPane) SetActive(active bool) {
	p.BasePane.SetActive(active)
	p.entries.setActive(active)
}

// GetTitleStyle shows the pane keys in the title while focused
func (p *TargetsPane) GetTitleStyle() components.TitleStyle {
	style := p.BasePane.GetTitleStyle()
	if p.IsActive() {
		style.Shortcuts = components.FormatShortcuts(p.GetPaneSpecificKeybindings()...)
	}
	return style
}

// Update ignores non-key messages; the list has no animation
func (p *TargetsPane) Update(msg tea.Msg) (components.Pane, tea.Cmd) {
	return p, nil
}

// HandleKey selects or moves through targets
func (p *TargetsPane) HandleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	keys := common.GlobalKeys
	switch {
	case key.Matches(msg, keys.Select):
		e, ok := p.entries.current()
		if !ok {
			return true, nil
		}
		return true, func() tea.Msg { return TargetSelectedMsg{Target: e.value} }
	case key.Matches(msg, keys.Up):
		p.MoveUp()
		return true, nil
	case key.Matches(msg, keys.Down):
		p.MoveDown()
		return true, nil
	}
	return false, nil
}

// MoveUp moves the cursor to the previous target
func (p *TargetsPane) MoveUp() bool {
	return p.entries.moveUp()
}

// MoveDown moves the cursor to the next target
func (p *TargetsPane) MoveDown() bool {
	return p.entries.moveDown()
}

// GetPaneSpecificKeybindings returns the keys shown in the title and footer
func (p *TargetsPane) GetPaneSpecificKeybindings() []key.Binding {
	return []key.Binding{common.GlobalKeys.Select, common.GlobalKeys.Up, common.GlobalKeys.Down}
}

// View renders the target list
func (p *TargetsPane) View() string {
	return p.entries.view(p.GetWidth(), p.GetHeight())
}
