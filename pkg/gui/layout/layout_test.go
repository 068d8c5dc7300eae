package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func composeColumns(l *Layout, commands, scope, targets, output string) string {
	title := func(s string) string { return lipgloss.NewStyle().PaddingLeft(1).Render(s) }

	left := []string{title("Commands"), commands, title("Scope"), scope}
	if l.TargetsVisible() {
		left = append(left, title("Targets"), targets)
	}
	leftColumn := lipgloss.JoinVertical(lipgloss.Left, left...)
	rightColumn := lipgloss.JoinVertical(lipgloss.Left, title("Output"), output)

	gap := strings.Repeat(" ", HorizontalGapWidth)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, leftColumn, gap, rightColumn)
	return lipgloss.NewStyle().
		PaddingBottom(BottomSpacerRows).
		PaddingLeft(HorizontalMargin).
		PaddingRight(HorizontalMargin).
		Render(panes)
}

func TestLayoutFillsTerminal(t *testing.T) {
	for _, targetsVisible := range []bool{false, true} {
		layout := NewLayout(160, 60)
		layout.SetTargetsVisible(targetsVisible)
		sample := strings.Repeat("item\n", 80)

		commands, scope, targets, output := layout.RenderPanes(sample, "global", sample, sample, FocusOutput)

		if got := lipgloss.Height(commands); got != layout.commandsPaneHeight {
			t.Fatalf("commands pane height = %d want %d", got, layout.commandsPaneHeight)
		}
		if got := lipgloss.Height(scope); got != layout.scopePaneHeight {
			t.Fatalf("scope pane height = %d want %d", got, layout.scopePaneHeight)
		}
		if got := lipgloss.Height(output); got != layout.outputPaneHeight {
			t.Fatalf("output pane height = %d want %d", got, layout.outputPaneHeight)
		}
		if targetsVisible {
			if got := lipgloss.Height(targets); got != layout.targetsPaneHeight {
				t.Fatalf("targets pane height = %d want %d", got, layout.targetsPaneHeight)
			}
		} else if targets != "" {
			t.Fatalf("hidden targets pane rendered %q", targets)
		}

		block := composeColumns(layout, commands, scope, targets, output)
		if w := lipgloss.Width(block); w != layout.GetWidth() {
			t.Fatalf("targets=%v: pane block width = %d want %d", targetsVisible, w, layout.GetWidth())
		}

		rows := []string{"banner", block, "footer"}
		for i := 0; i < BottomMarginRows; i++ {
			rows = append(rows, "")
		}
		mainView := lipgloss.JoinVertical(lipgloss.Left, rows...)
		if got := lipgloss.Height(mainView); got != layout.GetHeight() {
			t.Fatalf("targets=%v: main view height = %d want %d", targetsVisible, got, layout.GetHeight())
		}
	}
}

func TestLayoutTargetsVisibilityRedistributesLeftColumn(t *testing.T) {
	layout := NewLayout(120, 40)
	_, before := layout.GetCommandsDimensions()
	if _, h := layout.GetTargetsDimensions(); h != 0 {
		t.Fatalf("hidden targets height = %d want 0", h)
	}

	layout.SetTargetsVisible(true)
	_, after := layout.GetCommandsDimensions()
	_, targets := layout.GetTargetsDimensions()
	if after >= before {
		t.Fatalf("commands height %d should shrink below %d once targets are shown", after, before)
	}
	if targets < 1 {
		t.Fatalf("targets height = %d want > 0", targets)
	}

	if _, scope := layout.GetScopeDimensions(); scope != ScopeContentRows {
		t.Fatalf("scope height = %d want %d", scope, ScopeContentRows)
	}
}

func TestLayoutOutputIsWiderThanLeftColumn(t *testing.T) {
	layout := NewLayout(100, 30)
	left, _ := layout.GetCommandsDimensions()
	out, _ := layout.GetOutputDimensions()
	if out <= left {
		t.Fatalf("output width %d should exceed left width %d", out, left)
	}
}
