package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// RunLoader renders a blinking cursor spinner next to a status label while a
// command is running.
type RunLoader struct {
	spinner spinner.Model
	label   string
	active  bool
}

// NewRunLoader returns a loader configured with the blinking cursor spinner.
func NewRunLoader(label string) *RunLoader {
	return &RunLoader{
		spinner: spinner.New(spinner.WithSpinner(BlinkingCursor)),
		label:   label,
	}
}

// SetLabel updates the loader label.
func (l *RunLoader) SetLabel(label string) {
	if l == nil {
		return
	}
	l.label = label
}

// SetActive starts or stops the animation. It returns the tick command when
// the loader becomes active so the caller can schedule it.
func (l *RunLoader) SetActive(active bool) tea.Cmd {
	if l == nil {
		return nil
	}
	wasActive := l.active
	l.active = active
	if active && !wasActive {
		return l.spinner.Tick
	}
	return nil
}

// Active reports whether the loader is animating.
func (l *RunLoader) Active() bool {
	return l != nil && l.active
}

// Update advances the spinner on its own tick messages while active.
func (l *RunLoader) Update(msg tea.Msg) tea.Cmd {
	if l == nil || !l.active {
		return nil
	}

	switch tick := msg.(type) {
	case spinner.TickMsg:
		if tick.ID != l.spinner.ID() {
			return nil
		}
		var cmd tea.Cmd
		l.spinner, cmd = l.spinner.Update(tick)
		return cmd
	}
	return nil
}

// View renders the spinner and label, or nothing when idle.
func (l *RunLoader) View() string {
	if !l.Active() {
		return ""
	}
	if l.label == "" {
		return l.spinner.View()
	}
	return l.spinner.View() + " " + l.label
}
