package common

import (
	"skilltui/pkg/gui/layout"

	"github.com/charmbracelet/bubbles/key"
)

// Interaction modes of the output pane
const (
	ModeIdle    = "idle"
	ModeRunning = "running"
)

// ShortcutOverlay manages the display of contextual shortcuts
type ShortcutOverlay struct {
	keyMap  *GlobalKeyMap
	focused layout.FocusState
	mode    string
}

// NewShortcutOverlay creates a new shortcut overlay
func NewShortcutOverlay(keyMap *GlobalKeyMap) *ShortcutOverlay {
	return &ShortcutOverlay{
		keyMap:  keyMap,
		focused: layout.FocusCommands,
		mode:    ModeIdle,
	}
}

// SetFocus updates the focused pane
func (s *ShortcutOverlay) SetFocus(focus layout.FocusState) {
	s.focused = focus
}

// SetMode updates the interaction mode
func (s *ShortcutOverlay) SetMode(mode string) {
	s.mode = mode
}

// GetContextualShortcuts returns shortcuts relevant to current context. The
// pane's own shortcuts come first, the global ones last.
func (s *ShortcutOverlay) GetContextualShortcuts() []key.Binding {
	var shortcuts []key.Binding

	switch s.focused {
	case layout.FocusCommands, layout.FocusTargets:
		shortcuts = append(shortcuts, s.keyMap.Select, s.keyMap.Up, s.keyMap.Down)
	case layout.FocusScope:
		shortcuts = append(shortcuts, s.keyMap.ToggleScope)
	case layout.FocusOutput:
		if s.mode == ModeRunning {
			// Everything else goes to the process.
			shortcuts = append(shortcuts, s.keyMap.Interrupt, s.keyMap.ScrollUp, s.keyMap.ScrollDown)
			return append(shortcuts, s.keyMap.Quit)
		}
		shortcuts = append(shortcuts, s.keyMap.ScrollUp, s.keyMap.ScrollDown, s.keyMap.Copy, s.keyMap.Rerun)
	}

	shortcuts = append(shortcuts, s.keyMap.NextPane)
	return append(shortcuts, s.keyMap.Quit, s.keyMap.Keybindings)
}

// FormatShortcuts formats the shortcuts for display
func (s *ShortcutOverlay) FormatShortcuts() []Shortcut {
	bindings := s.GetContextualShortcuts()
	shortcuts := make([]Shortcut, 0, len(bindings))

	for _, binding := range bindings {
		if binding.Enabled() {
			shortcuts = append(shortcuts, Shortcut{
				Key:         binding.Help().Key,
				Description: binding.Help().Desc,
				IsGlobal:    s.isGlobalKey(binding),
			})
		}
	}

	return shortcuts
}

// isGlobalKey checks if a keybinding is global
func (s *ShortcutOverlay) isGlobalKey(binding key.Binding) bool {
	// Compare by the key help text since we can't compare structs directly
	helpKey := binding.Help().Key
	return helpKey == s.keyMap.Quit.Help().Key ||
		helpKey == s.keyMap.Keybindings.Help().Key ||
		helpKey == s.keyMap.NextPane.Help().Key
}

// Shortcut represents a keyboard shortcut with its description
type Shortcut struct {
	Key         string
	Description string
	IsGlobal    bool
}

// AllShortcuts returns all available shortcuts for the help dialog
func AllShortcuts(keyMap *GlobalKeyMap) []Section {
	sections := keyMap.GetHelpSections()
	result := make([]Section, 0, len(sections))

	for _, section := range sections {
		shortcuts := make([]Shortcut, 0, len(section.Bindings))
		for _, binding := range section.Bindings {
			shortcuts = append(shortcuts, Shortcut{
				Key:         binding.Help().Key,
				Description: binding.Help().Desc,
				IsGlobal:    section.Title == "Global",
			})
		}
		result = append(result, Section{Title: section.Title, Shortcuts: shortcuts})
	}

	return result
}

// Section is a titled list of shortcuts
type Section struct {
	Title     string
	Shortcuts []Shortcut
}
