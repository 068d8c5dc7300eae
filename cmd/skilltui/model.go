package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"skilltui/internal/debug"
	"skilltui/pkg/app"
	"skilltui/pkg/catalog"
	"skilltui/pkg/common"
	"skilltui/pkg/config"
	"skilltui/pkg/gui/components"
	"skilltui/pkg/gui/layout"
	"skilltui/pkg/gui/overlays"
	"skilltui/pkg/gui/panes"
	"skilltui/pkg/gui/theme"
	"skilltui/pkg/runner"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const statusDuration = 2 * time.Second

type model struct {
	layout     *layout.Layout
	session    *app.Session
	controller *runner.Controller
	ready      bool

	catalog catalog.Provider
	targets catalog.TargetSource

	shortcutOverlay  *common.ShortcutOverlay
	footer           *common.Footer
	helpDialog       *overlays.HelpDialog
	showHelp         bool
	debugOverlay     *overlays.DebugOverlay
	showDebugOverlay bool

	commandsPane *panes.CommandsPane
	scopePane    *panes.ScopePane
	targetsPane  *panes.TargetsPane
	outputPane   *panes.OutputPane

	// copyText writes to the system clipboard; replaced in tests
	copyText func(string) error
}

type commandsLoadedMsg struct {
	commands []catalog.Command
	err      error
}

type targetsLoadedMsg struct {
	targets []string
	err     error
}

type copiedMsg struct {
	lines int
	err   error
}

type clearStatusMsg struct{}

// deps are the collaborators the model is built from
type deps struct {
	cfg        *config.Config
	controller *runner.Controller
	catalog    catalog.Provider
	targets    catalog.TargetSource
	logger     *debug.DebugLogger
}

func newModel(d deps) model {
	targetCommands := make(map[string]bool, len(d.cfg.Catalog.TargetCommands))
	for _, name := range d.cfg.Catalog.TargetCommands {
		targetCommands[name] = true
	}

	session := ""
	if d.logger != nil {
		session = d.logger.Session()
	}

	shortcutOverlay := common.NewShortcutOverlay(common.GlobalKeys)
	footer := common.NewFooter()
	footer.SetShortcutOverlay(shortcutOverlay)

	m := model{
		layout:          layout.NewLayout(0, 0),
		session:         app.NewSession(d.cfg.Tool, d.cfg.Catalog.TargetCommands, d.controller),
		controller:      d.controller,
		catalog:         d.catalog,
		targets:         d.targets,
		shortcutOverlay: shortcutOverlay,
		footer:          footer,
		helpDialog:      overlays.NewHelpDialog(common.GlobalKeys, d.cfg.Tool),
		debugOverlay:    overlays.NewDebugOverlay(d.cfg.LogPath(), session),
		commandsPane:    panes.NewCommandsPane(targetCommands),
		scopePane:       panes.NewScopePane(),
		targetsPane:     panes.NewTargetsPane(),
		outputPane:      panes.NewOutputPane(),
		copyText:        clipboard.WriteAll,
	}
	m.syncFocus()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		loadCommands(m.catalog),
		loadTargets(m.targets),
		runner.WaitForUpdate(m.controller.Updates()),
	)
}

func loadCommands(p catalog.Provider) tea.Cmd {
	return func() tea.Msg {
		cmds, err := p.Commands(context.Background())
		return commandsLoadedMsg{commands: cmds, err: err}
	}
}

func loadTargets(s catalog.TargetSource) tea.Cmd {
	return func() tea.Msg {
		targets, err := s.Targets(context.Background())
		return targetsLoadedMsg{targets: targets, err: err}
	}
}

func combineCmds(cmds ...tea.Cmd) tea.Cmd {
	filtered := make([]tea.Cmd, 0, len(cmds))
	for _, cmd := range cmds {
		if cmd != nil {
			filtered = append(filtered, cmd)
		}
	}

	switch len(filtered) {
	case 0:
		return nil
	case 1:
		return filtered[0]
	default:
		return tea.Batch(filtered...)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		return m, nil

	case commandsLoadedMsg:
		if msg.err != nil {
			debug.Warn("catalog", msg.err, "command discovery failed")
		}
		m.session.SetCommands(msg.commands)
		m.commandsPane.SetCommands(msg.commands)
		return m, nil

	case targetsLoadedMsg:
		if msg.err != nil {
			debug.Warn("catalog", msg.err, "loading targets failed")
		}
		m.session.SetTargets(msg.targets)
		m.targetsPane.SetTargets(msg.targets)
		return m, nil

	case runner.UpdateMsg:
		spin := m.refreshOutput()
		return m, combineCmds(spin, runner.WaitForUpdate(m.controller.Updates()))

	case panes.CommandSelectedMsg:
		m.session.SelectCommand(msg.Name)
		return m, m.afterSelection()

	case panes.TargetSelectedMsg:
		m.session.SelectTarget(msg.Target)
		return m, m.afterSelection()

	case panes.ScopeToggledMsg:
		m.scopePane.SetScope(m.session.ToggleScope())
		return m, nil

	case overlays.HelpClosedMsg:
		m.showHelp = false
		return m, nil

	case overlays.DebugOverlayClosedMsg:
		m.showDebugOverlay = false
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			debug.Warn("ui", msg.err, "copy to clipboard")
			m.footer.SetStatus("copy failed: " + msg.err.Error())
		} else {
			m.footer.SetStatus(fmt.Sprintf("copied %d lines", msg.lines))
		}
		return m, tea.Tick(statusDuration, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case clearStatusMsg:
		m.footer.SetStatus("")
		return m, nil

	case tea.MouseMsg:
		if m.showDebugOverlay {
			var cmd tea.Cmd
			m.debugOverlay, cmd = m.debugOverlay.Update(msg)
			return m, cmd
		}
		if m.showHelp {
			return m, nil
		}
		_, cmd := m.outputPane.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Spinner ticks
	_, cmd := m.outputPane.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDebugOverlay {
		var cmd tea.Cmd
		m.debugOverlay, cmd = m.debugOverlay.Update(msg)
		return m, cmd
	}
	if m.showHelp {
		var cmd tea.Cmd
		m.helpDialog, cmd = m.helpDialog.Update(msg)
		return m, cmd
	}

	keys := common.GlobalKeys

	// A running process gets every key it can take, ctrl+c included.
	if m.session.ForwardKey(runner.KeyFromMsg(msg)) {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.ForceQuit):
		debug.DebugLog("quit requested")
		m.session.Shutdown()
		return m, tea.Quit

	case key.Matches(msg, keys.Keybindings):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, keys.DebugOverlay):
		m.debugOverlay.Reload()
		m.showDebugOverlay = true
		return m, nil

	case key.Matches(msg, keys.NextPane):
		m.session.FocusNext()
		m.syncFocus()
		return m, nil

	case key.Matches(msg, keys.PrevPane):
		m.session.FocusPrev()
		m.syncFocus()
		return m, nil

	case key.Matches(msg, keys.FocusPane1):
		return m.switchToPane(layout.FocusCommands)
	case key.Matches(msg, keys.FocusPane2):
		return m.switchToPane(layout.FocusScope)
	case key.Matches(msg, keys.FocusPane3):
		return m.switchToPane(layout.FocusTargets)
	case key.Matches(msg, keys.FocusPane4):
		return m.switchToPane(layout.FocusOutput)
	}

	if m.session.Focus() == layout.FocusOutput && !m.outputPane.Running() {
		switch {
		case key.Matches(msg, keys.Copy):
			return m, m.copyOutput()
		case key.Matches(msg, keys.Rerun):
			if _, ok := m.session.Rerun(); ok {
				return m, m.afterSelection()
			}
			return m, nil
		}
	}

	if pane := m.focusedPane(); pane != nil {
		_, cmd := pane.HandleKey(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) switchToPane(target layout.FocusState) (model, tea.Cmd) {
	m.session.SetFocus(target)
	m.syncFocus()
	return m, nil
}

func (m model) focusedPane() components.Pane {
	switch m.session.Focus() {
	case layout.FocusCommands:
		return m.commandsPane
	case layout.FocusScope:
		return m.scopePane
	case layout.FocusTargets:
		return m.targetsPane
	case layout.FocusOutput:
		return m.outputPane
	}
	return nil
}

// afterSelection brings the panes in line with the session after a command
// or target was chosen
func (m *model) afterSelection() tea.Cmd {
	selected := m.session.SelectedCommand()
	m.commandsPane.MarkSelected(selected)
	m.targetsPane.SetCommand(selected)
	m.targetsPane.MarkSelected(m.session.SelectedTarget())

	if m.layout.TargetsVisible() != m.session.TargetsVisible() {
		m.layout.SetTargetsVisible(m.session.TargetsVisible())
		m.resize()
	}
	m.syncFocus()
	return m.refreshOutput()
}

func (m *model) refreshOutput() tea.Cmd {
	cmd := m.outputPane.SetView(m.controller.Snapshot())
	if m.outputPane.Running() {
		m.footer.SetMode(common.ModeRunning)
	} else {
		m.footer.SetMode(common.ModeIdle)
	}
	return cmd
}

func (m *model) syncFocus() {
	focus := m.session.Focus()
	m.commandsPane.SetActive(focus == layout.FocusCommands)
	m.scopePane.SetActive(focus == layout.FocusScope)
	m.targetsPane.SetActive(focus == layout.FocusTargets)
	m.outputPane.SetActive(focus == layout.FocusOutput)
	m.footer.SetFocus(focus)
}

func (m *model) resize() {
	width, height := m.layout.GetWidth(), m.layout.GetHeight()

	m.commandsPane.SetSize(m.layout.GetCommandsDimensions())
	m.scopePane.SetSize(m.layout.GetScopeDimensions())
	m.targetsPane.SetSize(m.layout.GetTargetsDimensions())

	outputWidth, outputHeight := m.layout.GetOutputDimensions()
	m.outputPane.SetSize(outputWidth, outputHeight)
	m.controller.Resize(outputWidth, outputHeight)

	m.footer.SetSize(width, layout.FooterRows)
	m.helpDialog.SetSize(width, height)
	m.debugOverlay.SetSize(width, height)
}

func (m model) copyOutput() tea.Cmd {
	text := m.outputPane.Text()
	lines := m.outputPane.LineCount()
	copyText := m.copyText
	return func() tea.Msg {
		if lines == 0 {
			return copiedMsg{}
		}
		return copiedMsg{lines: lines, err: copyText(text)}
	}
}

func (m model) renderPaneTitle(pane components.Pane) string {
	titleStyle := pane.GetTitleStyle()

	var textStyle lipgloss.Style
	if pane.IsActive() {
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextPrimary)).Bold(true)
	} else {
		textStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextDescription))
	}
	styledText := textStyle.Render(titleStyle.Text)

	if titleStyle.Shortcuts == "" {
		return styledText
	}

	parenStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.TextMuted))
	if pane.IsActive() {
		return styledText + " " + parenStyle.Render("(") + m.parseAndStyleShortcuts(titleStyle.Shortcuts) + parenStyle.Render(")")
	}
	return styledText + " " + parenStyle.Render(titleStyle.Shortcuts)
}

// parseAndStyleShortcuts parses shortcut strings and applies footer-like styling
func (m model) parseAndStyleShortcuts(shortcuts string) string {
	parts := strings.Split(shortcuts, " • ")
	styledParts := make([]string, 0, len(parts)*2)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.TextPrimary)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.TextDescription))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.SeparatorColor))

	for i, part := range parts {
		if i > 0 {
			styledParts = append(styledParts, separatorStyle.Render(" • "))
		}

		tokens := strings.SplitN(strings.TrimSpace(part), " ", 2)
		if len(tokens) == 2 {
			styledParts = append(styledParts, keyStyle.Render(tokens[0])+" "+descStyle.Render(tokens[1]))
		} else {
			styledParts = append(styledParts, keyStyle.Render(part))
		}
	}

	return strings.Join(styledParts, "")
}

func (m model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	commandsPane, scopePane, targetsPane, outputPane := m.layout.RenderPanes(
		m.commandsPane.View(),
		m.scopePane.View(),
		m.targetsPane.View(),
		m.outputPane.View(),
		m.session.Focus(),
	)

	titled := func(pane components.Pane, rendered string) []string {
		title := lipgloss.NewStyle().
			PaddingLeft(1).
			MaxWidth(lipgloss.Width(rendered)).
			Render(m.renderPaneTitle(pane))
		return []string{title, rendered}
	}

	left := append(titled(m.commandsPane, commandsPane), titled(m.scopePane, scopePane)...)
	if m.layout.TargetsVisible() {
		left = append(left, titled(m.targetsPane, targetsPane)...)
	}
	leftColumn := lipgloss.JoinVertical(lipgloss.Left, left...)
	rightColumn := lipgloss.JoinVertical(lipgloss.Left, titled(m.outputPane, outputPane)...)

	gap := strings.Repeat(" ", layout.HorizontalGapWidth)
	panesRow := lipgloss.JoinHorizontal(lipgloss.Top, leftColumn, gap, rightColumn)

	panesWithPadding := lipgloss.NewStyle().
		PaddingBottom(layout.BottomSpacerRows).
		PaddingLeft(layout.HorizontalMargin).
		PaddingRight(layout.HorizontalMargin).
		Render(panesRow)

	banner := lipgloss.NewStyle().
		PaddingLeft(layout.HorizontalMargin).
		Render(components.Banner(m.session.Tool()))

	rows := []string{banner, panesWithPadding, m.footer.View()}
	for i := 0; i < layout.BottomMarginRows; i++ {
		rows = append(rows, "")
	}
	mainView := lipgloss.JoinVertical(lipgloss.Left, rows...)

	width, height := m.layout.GetWidth(), m.layout.GetHeight()
	switch {
	case m.showDebugOverlay:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.debugOverlay.View())
	case m.showHelp:
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.helpDialog.View())
	}
	return mainView
}
