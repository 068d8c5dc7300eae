package layout

import (
	"skilltui/pkg/gui/components"
	"skilltui/pkg/gui/theme"

	"github.com/charmbracelet/lipgloss"
)

const (
	BannerRows         = 1
	BottomSpacerRows   = 1
	PaneTitleRows      = 1
	FooterRows         = 1
	BottomMarginRows   = 1
	HorizontalMargin   = 2
	HorizontalGapWidth = 2

	// ScopeContentRows is the fixed content height of the scope toggle.
	ScopeContentRows = 1

	leftColumnShare   = 0.35
	minLeftPaneHeight = 3
)

// Layout manages the pane layout and dimensions for the UI.
//
// The left column stacks the command list, the scope toggle and, while the
// selected command takes a target, the target list. The output pane fills
// the right column.
type Layout struct {
	width  int
	height int

	targetsVisible bool

	// Content dimensions (without borders and padding)
	leftContentWidth   int
	outputContentWidth int

	// Full pane heights (with borders)
	outputPaneHeight   int
	commandsPaneHeight int
	scopePaneHeight    int
	targetsPaneHeight  int
}

// NewLayout creates a new layout with the given terminal dimensions
func NewLayout(width, height int) *Layout {
	l := &Layout{
		width:  width,
		height: height,
	}
	l.calculate()
	return l
}

// Update recalculates the layout for new terminal dimensions
func (l *Layout) Update(width, height int) {
	l.width = width
	l.height = height
	l.calculate()
}

// SetTargetsVisible shows or hides the target list and redistributes the
// left column.
func (l *Layout) SetTargetsVisible(visible bool) {
	if l.targetsVisible == visible {
		return
	}
	l.targetsVisible = visible
	l.calculate()
}

// TargetsVisible reports whether the target list is laid out
func (l *Layout) TargetsVisible() bool {
	return l.targetsVisible
}

// calculate computes all pane dimensions based on terminal size
func (l *Layout) calculate() {
	chromeHeight := BannerRows + BottomSpacerRows + PaneTitleRows + FooterRows + BottomMarginRows
	availableHeight := l.height - chromeHeight

	usableWidth := l.width - HorizontalMargin*2 - HorizontalGapWidth
	if usableWidth < 0 {
		usableWidth = 0
	}

	frameWidth := components.PaneBaseStyle.GetHorizontalFrameSize()
	frameHeight := components.PaneBaseStyle.GetVerticalFrameSize()
	contentPaddingWidth := components.PaneContentHorizontalPadding() * 2
	minPaneHeight := frameHeight + 1
	if availableHeight < minPaneHeight {
		availableHeight = minPaneHeight
	}

	// Two columns, each with its own frame and padding
	availableContentWidth := usableWidth - (frameWidth+contentPaddingWidth)*2
	if availableContentWidth < 0 {
		availableContentWidth = 0
	}
	l.leftContentWidth = int(float64(availableContentWidth) * leftColumnShare)
	l.outputContentWidth = availableContentWidth - l.leftContentWidth

	l.outputPaneHeight = availableHeight

	// Both columns are equally tall. The output column holds one title and
	// one pane, the left column one title per stacked pane.
	stacked := 2
	if l.targetsVisible {
		stacked = 3
	}
	leftPanesHeight := availableHeight - (stacked-1)*PaneTitleRows

	l.scopePaneHeight = frameHeight + ScopeContentRows
	rest := leftPanesHeight - l.scopePaneHeight

	if !l.targetsVisible {
		l.commandsPaneHeight = rest
		l.targetsPaneHeight = 0
		if l.commandsPaneHeight < minLeftPaneHeight {
			l.commandsPaneHeight = minLeftPaneHeight
		}
		return
	}

	l.targetsPaneHeight = rest / 2
	l.commandsPaneHeight = rest - l.targetsPaneHeight
	if l.targetsPaneHeight < minLeftPaneHeight {
		l.targetsPaneHeight = minLeftPaneHeight
		l.commandsPaneHeight = rest - minLeftPaneHeight
	}
	if l.commandsPaneHeight < minLeftPaneHeight {
		l.commandsPaneHeight = minLeftPaneHeight
	}
}

// RenderPanes frames each pane's content and highlights the focused one.
// targets is ignored, and returned empty, while the target list is hidden.
func (l *Layout) RenderPanes(commands, scope, targets, output string, focused FocusState) (commandsPane, scopePane, targetsPane, outputPane string) {
	styleFor := func(f FocusState) lipgloss.Style {
		style := components.PaneBaseStyle
		if f != focused {
			return style
		}
		if f == FocusOutput {
			return style.BorderForeground(lipgloss.Color(theme.BrandColor))
		}
		return style.BorderForeground(lipgloss.Color(theme.BorderActive))
	}

	commandsPane = renderPane(styleFor(FocusCommands), commands, l.leftContentWidth, l.commandsPaneHeight)
	scopePane = renderPane(styleFor(FocusScope), scope, l.leftContentWidth, l.scopePaneHeight)
	if l.targetsVisible {
		targetsPane = renderPane(styleFor(FocusTargets), targets, l.leftContentWidth, l.targetsPaneHeight)
	}
	outputPane = renderPane(styleFor(FocusOutput), output, l.outputContentWidth, l.outputPaneHeight)
	return commandsPane, scopePane, targetsPane, outputPane
}

func renderPane(style lipgloss.Style, content string, contentWidth, paneHeight int) string {
	frameHeight := style.GetVerticalFrameSize()
	contentHeight := paneHeight - frameHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	fullWidth := components.PaneFullWidth(contentWidth)
	if lipgloss.Width(content) < fullWidth {
		content = components.ApplyPaneContentPadding(content, contentWidth)
	}

	wrapped := lipgloss.NewStyle().
		Width(fullWidth).
		MaxHeight(contentHeight).
		Render(content)
	aligned := lipgloss.PlaceVertical(contentHeight, lipgloss.Top, wrapped)
	return style.Height(contentHeight).Render(aligned)
}

func (l *Layout) contentHeight(paneHeight int) int {
	h := paneHeight - components.PaneBaseStyle.GetVerticalFrameSize()
	if h < 1 {
		h = 1
	}
	return h
}

// GetCommandsDimensions returns the content dimensions for the command list
func (l *Layout) GetCommandsDimensions() (width, height int) {
	return l.leftContentWidth, l.contentHeight(l.commandsPaneHeight)
}

// GetScopeDimensions returns the content dimensions for the scope toggle
func (l *Layout) GetScopeDimensions() (width, height int) {
	return l.leftContentWidth, l.contentHeight(l.scopePaneHeight)
}

// GetTargetsDimensions returns the content dimensions for the target list.
// The height is zero while the list is hidden.
func (l *Layout) GetTargetsDimensions() (width, height int) {
	if !l.targetsVisible {
		return l.leftContentWidth, 0
	}
	return l.leftContentWidth, l.contentHeight(l.targetsPaneHeight)
}

// GetOutputDimensions returns the content dimensions for the output pane
func (l *Layout) GetOutputDimensions() (width, height int) {
	return l.outputContentWidth, l.contentHeight(l.outputPaneHeight)
}

// GetWidth returns the layout width
func (l *Layout) GetWidth() int {
	return l.width
}

// GetHeight returns the layout height
func (l *Layout) GetHeight() int {
	return l.height
}
