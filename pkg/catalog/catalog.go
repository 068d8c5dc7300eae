// Package catalog discovers what the wrapped tool can do: its subcommands,
// parsed from the tool's own help text, and the repository identifiers a
// target-taking subcommand can be pointed at.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"skilltui/internal/debug"

	"github.com/charmbracelet/x/ansi"
)

// DefaultHelpTimeout bounds how long the tool may take to print its help.
const DefaultHelpTimeout = 20 * time.Second

// ErrNoTool is returned when no tool command is configured.
var ErrNoTool = errors.New("no tool configured")

// Command is one subcommand of the wrapped tool.
type Command struct {
	Name        string
	Description string
}

// Provider returns the tool's subcommands in display order.
type Provider interface {
	Commands(ctx context.Context) ([]Command, error)
}

// Static is a fixed command list.
type Static []Command

// Commands returns a copy of the list.
func (s Static) Commands(context.Context) ([]Command, error) {
	return append([]Command(nil), s...), nil
}

// HelpCatalog runs the tool with its help flag and parses the usage examples.
type HelpCatalog struct {
	Tool     string
	HelpArgs []string
	Timeout  time.Duration

	run func(ctx context.Context, argv []string) ([]byte, error)
}

// NewHelpCatalog returns a catalog for tool, e.g. "npx skills".
func NewHelpCatalog(tool string, timeout time.Duration) *HelpCatalog {
	if timeout <= 0 {
		timeout = DefaultHelpTimeout
	}
	return &HelpCatalog{
		Tool:     tool,
		HelpArgs: []string{"--help"},
		Timeout:  timeout,
		run:      combinedOutput,
	}
}

func combinedOutput(ctx context.Context, argv []string) ([]byte, error) {
	return exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput()
}

// Commands implements Provider. Help output is parsed even when the tool
// exits non-zero, since many CLIs do that for --help.
func (c *HelpCatalog) Commands(ctx context.Context) ([]Command, error) {
	argv := strings.Fields(c.Tool)
	if len(argv) == 0 {
		return nil, ErrNoTool
	}
	argv = append(argv, c.HelpArgs...)

	ctx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	run := c.run
	if run == nil {
		run = combinedOutput
	}
	out, err := run(ctx, argv)
	cmds := ParseHelp(string(out), ToolName(c.Tool))

	if err != nil {
		if len(cmds) == 0 {
			return nil, fmt.Errorf("run %s: %w", strings.Join(argv, " "), err)
		}
		debug.Warn("catalog", err, "help for %q exited with an error, using %d parsed commands", c.Tool, len(cmds))
	}
	debug.Info("catalog", "discovered %d commands for %q", len(cmds), c.Tool)
	return cmds, nil
}

// ToolName is the word that precedes subcommands in usage examples: the last
// token of the tool command, so "npx skills" yields "skills".
func ToolName(tool string) string {
	fields := strings.Fields(tool)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// ParseHelp extracts subcommands from usage lines of the form
// "$ [npx ]<tool> <command> ...". Names keep the order of first appearance;
// the text after a '#' on the line becomes the description.
func ParseHelp(text, toolName string) []Command {
	if toolName == "" {
		return nil
	}
	pattern := regexp.MustCompile(`\$ (?:npx )?` + regexp.QuoteMeta(toolName) + `\s+([a-z][\w-]*)(.*)`)

	var (
		cmds []Command
		seen = make(map[string]bool)
	)
	for _, line := range strings.Split(ansi.Strip(text), "\n") {
		m := pattern.FindStringSubmatch(line)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		cmds = append(cmds, Command{Name: m[1], Description: describe(m[2])})
	}
	return cmds
}

func describe(rest string) string {
	rest = strings.TrimSpace(rest)
	if i := strings.Index(rest, "#"); i >= 0 {
		return strings.TrimSpace(rest[i+1:])
	}
	return rest
}
