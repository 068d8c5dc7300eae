// Package app holds the selection state of a skilltui run and turns
// selections into command lines for the runner.
package app

import (
	"strings"

	"skilltui/internal/debug"
	"skilltui/pkg/catalog"
	"skilltui/pkg/gui/layout"
	"skilltui/pkg/runner"
)

// GlobalFlag is appended to the command line in global scope.
const GlobalFlag = "-g"

// Scope selects between a global and a per-project invocation of the tool.
type Scope int

const (
	ScopeGlobal Scope = iota
	ScopeProject
)

// String returns the string representation of the scope
func (s Scope) String() string {
	if s == ScopeProject {
		return "project"
	}
	return "global"
}

// Executor runs one command line at a time. *runner.Controller implements it.
type Executor interface {
	Start(commandLine string) uint64
	ForwardKey(k runner.Key) bool
	SetFocused(focused bool)
	Close()
}

// Session is the state behind the four panes: what is selected, which pane
// has focus and what was last handed to the executor.
type Session struct {
	tool           string
	targetCommands map[string]bool
	exec           Executor

	commands []catalog.Command
	targets  []string

	selectedCommand string
	selectedTarget  string
	scope           Scope
	focus           layout.FocusState
	lastLine        string
}

// NewSession creates a session for tool. Commands named in targetCommands
// ask for a target before they run.
func NewSession(tool string, targetCommands []string, exec Executor) *Session {
	s := &Session{
		tool:           strings.TrimSpace(tool),
		targetCommands: make(map[string]bool, len(targetCommands)),
		exec:           exec,
		scope:          ScopeGlobal,
		focus:          layout.FocusCommands,
	}
	for _, name := range targetCommands {
		s.targetCommands[name] = true
	}
	return s
}

// Tool returns the tool command line prefix.
func (s *Session) Tool() string { return s.tool }

// SetCommands replaces the command catalog.
func (s *Session) SetCommands(cmds []catalog.Command) { s.commands = cmds }

// Commands returns the command catalog.
func (s *Session) Commands() []catalog.Command { return s.commands }

// SetTargets replaces the target list.
func (s *Session) SetTargets(targets []string) { s.targets = targets }

// Targets returns the target list.
func (s *Session) Targets() []string { return s.targets }

// Scope returns the current scope.
func (s *Session) Scope() Scope { return s.scope }

// Focus returns the focused pane.
func (s *Session) Focus() layout.FocusState { return s.focus }

// SelectedCommand returns the last chosen command, or "".
func (s *Session) SelectedCommand() string { return s.selectedCommand }

// SelectedTarget returns the target of the last target run, or "".
func (s *Session) SelectedTarget() string { return s.selectedTarget }

// LastCommandLine returns the most recently started command line.
func (s *Session) LastCommandLine() string { return s.lastLine }

// IsTargetCommand reports whether name takes a target.
func (s *Session) IsTargetCommand(name string) bool { return s.targetCommands[name] }

// TargetsVisible reports whether the target list is shown, which is the
// case while the selected command takes a target.
func (s *Session) TargetsVisible() bool {
	return s.IsTargetCommand(s.selectedCommand)
}

// SelectCommand selects name. A command that takes a target moves focus to
// the target list and waits; any other command runs immediately and focus
// moves to the output. It returns the started command line, if any.
func (s *Session) SelectCommand(name string) (string, bool) {
	s.selectedCommand = name
	s.selectedTarget = ""

	if s.IsTargetCommand(name) {
		debug.DebugLog("command %q waits for a target", name)
		s.setFocus(layout.FocusTargets)
		return "", false
	}
	return s.run(s.compose(name, "")), true
}

// SelectTarget runs the selected target-taking command against target.
// It does nothing unless such a command is selected.
func (s *Session) SelectTarget(target string) (string, bool) {
	if !s.TargetsVisible() || strings.TrimSpace(target) == "" {
		return "", false
	}
	s.selectedTarget = target
	return s.run(s.compose(s.selectedCommand, target)), true
}

// ToggleScope flips the scope. A running command is left alone; the new
// scope applies to the next command line.
func (s *Session) ToggleScope() Scope {
	if s.scope == ScopeGlobal {
		s.scope = ScopeProject
	} else {
		s.scope = ScopeGlobal
	}
	debug.DebugLog("scope set to %s", s.scope)
	return s.scope
}

// Rerun starts the last command line again. It returns false when nothing
// has run yet.
func (s *Session) Rerun() (string, bool) {
	if s.lastLine == "" {
		return "", false
	}
	return s.run(s.lastLine), true
}

// FocusNext moves focus forward in tab order.
func (s *Session) FocusNext() layout.FocusState {
	s.setFocus(layout.Next(s.focus, s.TargetsVisible()))
	return s.focus
}

// FocusPrev moves focus backward in tab order.
func (s *Session) FocusPrev() layout.FocusState {
	s.setFocus(layout.Prev(s.focus, s.TargetsVisible()))
	return s.focus
}

// SetFocus focuses f, or the output pane if f is the hidden target list.
func (s *Session) SetFocus(f layout.FocusState) layout.FocusState {
	s.setFocus(layout.Normalize(f, s.TargetsVisible()))
	return s.focus
}

// ForwardKey hands k to the running process when the output pane has focus.
func (s *Session) ForwardKey(k runner.Key) bool {
	if s.focus != layout.FocusOutput {
		return false
	}
	return s.exec.ForwardKey(k)
}

// Shutdown stops any running process.
func (s *Session) Shutdown() {
	s.exec.Close()
}

func (s *Session) setFocus(f layout.FocusState) {
	s.focus = f
	s.exec.SetFocused(f == layout.FocusOutput)
}

func (s *Session) run(line string) string {
	s.lastLine = line
	id := s.exec.Start(line)
	debug.DebugLog("execution %d: %s", id, line)
	s.setFocus(layout.FocusOutput)
	return line
}

func (s *Session) compose(command, target string) string {
	parts := []string{s.tool, command}
	if s.scope == ScopeGlobal {
		parts = append(parts, GlobalFlag)
	}
	if target != "" {
		parts = append(parts, target)
	}
	return strings.Join(parts, " ")
}
