package panes

import (
	"fmt"
	"io"
	"strings"

	"skilltui/pkg/gui/components"
	"skilltui/pkg/gui/theme"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// entry is one row of a selectable list
type entry struct {
	label string
	hint  string // dimmed text after the label
	value string
}

// FilterValue implements list.Item
func (e entry) FilterValue() string {
	return e.value
}

// entryDelegate renders entries on a single line, truncated to the pane width
type entryDelegate struct {
	isActive bool
	selected string // value marked with the cursor bar
}

var (
	entryNormalStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.TextDescription))
	entryHighlightStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(theme.RowHighlight)).
				Foreground(lipgloss.Color(theme.TextPrimary))
	entryHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.TextMuted))
	entryCursorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(theme.BrandColor))
)

// Height implements list.ItemDelegate
func (d entryDelegate) Height() int {
	return 1
}

// Spacing implements list.ItemDelegate
func (d entryDelegate) Spacing() int {
	return 0
}

// Update implements list.ItemDelegate
func (d entryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render implements list.ItemDelegate
func (d entryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	e, ok := item.(entry)
	if !ok {
		return
	}

	padding := components.PaneContentHorizontalPadding()
	innerWidth := m.Width() - padding*2
	if innerWidth < 1 {
		innerWidth = 1
	}

	leftPad := strings.Repeat(" ", padding)
	if e.value == d.selected && padding > 0 {
		leftPad = entryCursorStyle.Render(components.BlinkingCursor.Frames[0]) + strings.Repeat(" ", padding-1)
	}

	label := runewidth.Truncate(e.label, innerWidth, "…")
	hint := ""
	if e.hint != "" {
		if room := innerWidth - runewidth.StringWidth(label) - 2; room > 3 {
			hint = "  " + runewidth.Truncate(e.hint, room, "…")
		}
	}

	var body string
	if index == m.Index() && d.isActive {
		body = entryHighlightStyle.Width(innerWidth).Render(label + hint)
	} else {
		body = lipgloss.NewStyle().Width(innerWidth).Render(entryNormalStyle.Render(label) + entryHintStyle.Render(hint))
	}

	_, _ = fmt.Fprint(w, leftPad+body+strings.Repeat(" ", padding))
}

func newEntryList() list.Model {
	l := list.New([]list.Item{}, entryDelegate{}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

// listState is what a list pane shows instead of its rows
type listState int

const (
	listLoading listState = iota
	listReady
)

// entryList wraps the list model shared by the command and target panes
type entryList struct {
	list     list.Model
	delegate entryDelegate
	state    listState
	empty    string
	loading  string
}

func newEntries(loading, empty string) entryList {
	return entryList{list: newEntryList(), loading: loading, empty: empty}
}

func (l *entryList) setEntries(entries []entry) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = e
	}
	l.list.SetItems(items)
	l.list.ResetSelected()
	l.state = listReady
}

func (l *entryList) setSize(width, height int) {
	l.list.SetSize(components.PaneFullWidth(width), height)
}

func (l *entryList) setActive(active bool) {
	l.delegate.isActive = active
	l.list.SetDelegate(l.delegate)
}

func (l *entryList) mark(value string) {
	l.delegate.selected = value
	l.list.SetDelegate(l.delegate)
}

func (l *entryList) current() (entry, bool) {
	e, ok := l.list.SelectedItem().(entry)
	return e, ok
}

func (l *entryList) moveUp() bool {
	if l.list.Index() == 0 {
		return false
	}
	l.list.CursorUp()
	return true
}

func (l *entryList) moveDown() bool {
	if l.list.Index() >= len(l.list.Items())-1 {
		return false
	}
	l.list.CursorDown()
	return true
}

func (l *entryList) view(width, height int) string {
	switch {
	case l.state == listLoading:
		return components.Placeholder(l.loading, width, height)
	case len(l.list.Items()) == 0:
		return components.Placeholder(l.empty, width, height)
	}
	return l.list.View()
}
