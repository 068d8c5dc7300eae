package common

import (
	"github.com/charmbracelet/bubbles/key"
)

// GlobalKeys is the key map shared by the model, the panes and the footer.
var GlobalKeys = NewGlobalKeyMap()

// GlobalKeyMap defines global keybindings that work across all panes
//
// While the output pane is focused and a process is running, every key the
// process can receive is forwarded to it before these bindings are matched.
// Only Quit and the scroll keys stay global in that state.
type GlobalKeyMap struct {
	// Truly global keys
	Quit         key.Binding // esc - quit, killing any running command
	ForceQuit    key.Binding // ctrl+c - quit when no process is receiving keys
	Keybindings  key.Binding // ? - show help
	DebugOverlay key.Binding // ctrl+d - show the debug log

	// Navigation inside the focused list
	Up   key.Binding
	Down key.Binding

	// Pane switching
	NextPane   key.Binding
	PrevPane   key.Binding
	FocusPane1 key.Binding // commands
	FocusPane2 key.Binding // scope
	FocusPane3 key.Binding // targets, when shown
	FocusPane4 key.Binding // output

	// Pane actions
	Select      key.Binding
	ToggleScope key.Binding

	// Output pane
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Copy       key.Binding
	Rerun      key.Binding
	Interrupt  key.Binding
}

// NewGlobalKeyMap creates a new GlobalKeyMap with default keybindings
func NewGlobalKeyMap() *GlobalKeyMap {
	return &GlobalKeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Keybindings: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "keybindings"),
		),
		DebugOverlay: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "debug log"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),

		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		FocusPane1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "focus commands"),
		),
		FocusPane2: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "focus scope"),
		),
		FocusPane3: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "focus targets"),
		),
		FocusPane4: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "focus output"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "select"),
		),
		ToggleScope: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "toggle scope"),
		),

		ScrollUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy output"),
		),
		Rerun: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "run again"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "stop command"),
		),
	}
}

// ShortHelp returns a slice of key bindings to show in the short help view
func (k *GlobalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Keybindings,
		k.Quit,
	}
}

// FullHelp returns a slice of key bindings to show in the full help view
func (k *GlobalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.ForceQuit, k.Keybindings, k.DebugOverlay},
		{k.NextPane, k.PrevPane, k.FocusPane1, k.FocusPane2, k.FocusPane3, k.FocusPane4},
		{k.Up, k.Down, k.Select, k.ToggleScope},
		{k.ScrollUp, k.ScrollDown, k.Copy, k.Rerun, k.Interrupt},
	}
}

// HelpSection is one titled group of bindings in the help overlay.
type HelpSection struct {
	Title    string
	Bindings []key.Binding
}

// GetHelpSections returns help sections with categorized keybindings, in
// display order
func (k *GlobalKeyMap) GetHelpSections() []HelpSection {
	return []HelpSection{
		{Title: "Global", Bindings: []key.Binding{k.Quit, k.ForceQuit, k.Keybindings, k.DebugOverlay}},
		{Title: "Panes", Bindings: []key.Binding{k.NextPane, k.PrevPane, k.FocusPane1, k.FocusPane2, k.FocusPane3, k.FocusPane4}},
		{Title: "Lists", Bindings: []key.Binding{k.Up, k.Down, k.Select, k.ToggleScope}},
		{Title: "Output", Bindings: []key.Binding{k.ScrollUp, k.ScrollDown, k.Copy, k.Rerun, k.Interrupt}},
	}
}
