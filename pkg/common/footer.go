package common

import (
	"strings"

	"skilltui/pkg/gui/layout"
	"skilltui/pkg/gui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
)

// Footer manages the bottom footer bar with keyboard shortcuts
type Footer struct {
	width           int
	height          int
	focused         layout.FocusState
	mode            string // ModeIdle or ModeRunning
	status          string // transient message, e.g. "copied 42 lines"
	shortcutOverlay *ShortcutOverlay
}

// Styling for footer elements
var (
	footerKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription)).
			Bold(true)

	footerDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextDescription))

	footerSeparatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.SeparatorColor))

	footerStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.SuccessStatus))

	footerStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// NewFooter creates a new footer component
func NewFooter() *Footer {
	return &Footer{
		height: 1,
		mode:   ModeIdle,
	}
}

// SetShortcutOverlay sets the shortcut overlay for the footer
func (f *Footer) SetShortcutOverlay(overlay *ShortcutOverlay) {
	f.shortcutOverlay = overlay
}

// SetSize updates the footer dimensions
func (f *Footer) SetSize(width, height int) {
	f.width = width
	f.height = height
}

// SetFocus updates which pane is focused
func (f *Footer) SetFocus(focused layout.FocusState) {
	f.focused = focused
}

// SetMode updates the current interaction mode
func (f *Footer) SetMode(mode string) {
	f.mode = mode
}

// SetStatus shows msg in place of the shortcuts until cleared with ""
func (f *Footer) SetStatus(msg string) {
	f.status = msg
}

// GetShortcuts returns the current shortcuts to display based on mode
func (f *Footer) GetShortcuts() []Shortcut {
	if f.shortcutOverlay != nil {
		f.shortcutOverlay.SetFocus(f.focused)
		f.shortcutOverlay.SetMode(f.mode)
		return f.shortcutOverlay.FormatShortcuts()
	}
	return []Shortcut{}
}

// View renders the footer
func (f *Footer) View() string {
	if f.width == 0 {
		return ""
	}

	if f.status != "" {
		return f.place(footerStatusStyle.Render(f.status))
	}

	shortcuts := f.GetShortcuts()
	if len(shortcuts) == 0 {
		return ""
	}

	var paneShortcuts, globalShortcuts []Shortcut
	for _, shortcut := range shortcuts {
		if shortcut.IsGlobal {
			globalShortcuts = append(globalShortcuts, shortcut)
		} else {
			paneShortcuts = append(paneShortcuts, shortcut)
		}
	}

	// Drop pane shortcuts from the end until the line fits.
	maxWidth := f.width - footerStyle.GetHorizontalFrameSize()
	content := f.render(paneShortcuts, globalShortcuts)
	for ansi.PrintableRuneWidth(content) > maxWidth && len(paneShortcuts) > 0 {
		paneShortcuts = paneShortcuts[:len(paneShortcuts)-1]
		content = f.render(paneShortcuts, globalShortcuts)
	}

	return f.place(content)
}

func (f *Footer) render(paneShortcuts, globalShortcuts []Shortcut) string {
	highlightKey := footerKeyStyle
	highlightDesc := footerDescStyle
	if f.focused == layout.FocusOutput && f.mode == ModeRunning {
		highlightKey = highlightKey.Foreground(lipgloss.Color(theme.BrandColor))
		highlightDesc = highlightDesc.Foreground(lipgloss.Color(theme.BrandColor))
	} else {
		highlightKey = highlightKey.Foreground(lipgloss.Color(theme.TextPrimary))
		highlightDesc = highlightDesc.Foreground(lipgloss.Color(theme.TextPrimary))
	}

	join := func(list []Shortcut, keyStyle, descStyle lipgloss.Style) string {
		parts := make([]string, 0, len(list))
		for _, s := range list {
			parts = append(parts, keyStyle.Render(s.Key)+" "+descStyle.Render(s.Description))
		}
		return strings.Join(parts, footerSeparatorStyle.Render(" • "))
	}

	pane := join(paneShortcuts, highlightKey, highlightDesc)
	global := join(globalShortcuts, footerKeyStyle, footerDescStyle)
	switch {
	case pane == "":
		return global
	case global == "":
		return pane
	}
	return pane + footerSeparatorStyle.Render(" │ ") + global
}

func (f *Footer) place(content string) string {
	return lipgloss.Place(
		f.width,
		f.height,
		lipgloss.Center,
		lipgloss.Center,
		footerStyle.Render(content),
	)
}
