package panes

import (
	"strings"
	"testing"

	"skilltui/pkg/app"
	"skilltui/pkg/catalog"
	"skilltui/pkg/gui/components"
	"skilltui/pkg/runner"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ components.Pane = (*CommandsPane)(nil)
	_ components.Pane = (*ScopePane)(nil)
	_ components.Pane = (*TargetsPane)(nil)
	_ components.Pane = (*OutputPane)(nil)
)

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	downKey  = tea.KeyMsg{Type: tea.KeyDown}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
)

func TestCommandsPaneSelect(t *testing.T) {
	p := NewCommandsPane(map[string]bool{"add": true})
	p.SetSize(30, 10)
	assert.Contains(t, p.View(), "Loading commands")

	p.SetCommands([]catalog.Command{{Name: "add", Description: "install a skill"}, {Name: "list"}})
	p.SetActive(true)

	view := p.View()
	assert.Contains(t, view, "add …")
	assert.Contains(t, view, "list")

	handled, cmd := p.HandleKey(downKey)
	require.True(t, handled)
	assert.Nil(t, cmd)

	handled, cmd = p.HandleKey(enterKey)
	require.True(t, handled)
	require.NotNil(t, cmd)
	assert.Equal(t, CommandSelectedMsg{Name: "list"}, cmd())

	assert.False(t, p.MoveDown(), "already at the last command")
}

func TestCommandsPaneEmpty(t *testing.T) {
	p := NewCommandsPane(nil)
	p.SetSize(30, 5)
	p.SetCommands(nil)
	assert.Contains(t, p.View(), "none found")

	handled, cmd := p.HandleKey(enterKey)
	assert.True(t, handled)
	assert.Nil(t, cmd)
}

func TestTargetsPaneSelect(t *testing.T) {
	p := NewTargetsPane()
	p.SetSize(30, 5)
	p.SetTargets([]string{"org/one", "org/two"})
	p.SetCommand("add")
	assert.Equal(t, "Targets for add", p.GetTitle())

	p.HandleKey(downKey)
	_, cmd := p.HandleKey(enterKey)
	require.NotNil(t, cmd)
	assert.Equal(t, TargetSelectedMsg{Target: "org/two"}, cmd())
}

func TestTargetsPaneNoneFound(t *testing.T) {
	p := NewTargetsPane()
	p.SetSize(30, 5)
	p.SetTargets([]string{})
	assert.Contains(t, p.View(), "none found")
}

func TestScopePaneToggle(t *testing.T) {
	p := NewScopePane()
	p.SetSize(30, 1)
	assert.Contains(t, p.View(), "● global")

	handled, cmd := p.HandleKey(spaceKey)
	require.True(t, handled)
	assert.Equal(t, ScopeToggledMsg{}, cmd())

	p.SetScope(app.ScopeProject)
	assert.Contains(t, p.View(), "● project")
	assert.Contains(t, p.View(), "○ global")
}

func TestOutputPaneRendersView(t *testing.T) {
	p := NewOutputPane()
	p.SetSize(40, 10)
	assert.Contains(t, p.View(), "Select a command")

	cmd := p.SetView(runner.View{ID: 1, Running: true, Lines: []string{"$ tool list", "", "alpha"}})
	assert.NotNil(t, cmd, "spinner starts with the command")
	assert.True(t, p.Running())
	assert.Contains(t, p.GetTitleStyle().Shortcuts, "running")

	p.SetView(runner.View{ID: 1, Lines: []string{"$ tool list", "", "alpha", "", runner.DoneMarker}})
	view := p.View()
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, runner.DoneMarker)
	assert.False(t, p.Running())
	assert.Equal(t, "$ tool list\n\nalpha\n\n"+runner.DoneMarker, p.Text())
	assert.Equal(t, 5, p.LineCount())
}

func TestOutputPaneFollowsTail(t *testing.T) {
	p := NewOutputPane()
	p.SetSize(40, 5)

	lines := []string{"$ tool list", ""}
	for i := 0; i < 50; i++ {
		lines = append(lines, strings.Repeat("x", i%10+1))
	}
	lines = append(lines, "last")
	p.SetView(runner.View{ID: 1, Running: true, Lines: lines})
	assert.Contains(t, p.View(), "last")

	// Scrolled up, new output must not pull the view down.
	p.HandleKey(tea.KeyMsg{Type: tea.KeyPgUp})
	p.SetView(runner.View{ID: 1, Running: true, Lines: append(lines, "newer")})
	assert.NotContains(t, p.View(), "newer")

	// A new execution jumps back to the tail.
	p.SetView(runner.View{ID: 2, Running: true, Lines: []string{"$ tool find", "", "fresh"}})
	assert.Contains(t, p.View(), "fresh")
}

func TestOutputLineClassification(t *testing.T) {
	failed := runner.View{ID: 1, SpawnFailed: true, Lines: []string{"$ tool add", "", "Error: exec: not found", "", runner.DoneMarker}}
	assert.Equal(t, lineHeader, classifyLine(failed, 0))
	assert.Equal(t, lineSpawnError, classifyLine(failed, 2))
	assert.Equal(t, lineDone, classifyLine(failed, 4))

	ran := runner.View{ID: 2, Lines: []string{"$ tool add", "", "Error: no skills match", "Error: try again", runner.DoneMarker}}
	assert.Equal(t, lineText, classifyLine(ran, 2), "process output is never styled as a spawn error")
	assert.Equal(t, lineText, classifyLine(ran, 3))
	assert.Equal(t, lineText, classifyLine(ran, 1))
	assert.Equal(t, lineDone, classifyLine(ran, 4))
}

func TestOutputPaneWrapsLongLines(t *testing.T) {
	p := NewOutputPane()
	p.SetSize(10, 10)
	p.SetView(runner.View{ID: 1, Lines: []string{"$ t", "", "aaaa bbbb cccc dddd"}})
	view := p.View()
	assert.Contains(t, view, "aaaa bbbb")
	assert.Contains(t, view, "cccc dddd")
	assert.NotContains(t, view, "bbbb cccc")
}
