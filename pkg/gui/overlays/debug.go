package overlays

import (
	"bufio"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"skilltui/pkg/gui/theme"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxLogLines bounds how much of the log file the viewer loads
const maxLogLines = 2000

// DebugOverlay provides a full-screen scrollable view of the debug log
type DebugOverlay struct {
	viewport viewport.Model
	path     string
	session  string
	width    int
	height   int
}

// DebugOverlayClosedMsg indicates the debug overlay was closed
type DebugOverlayClosedMsg struct{}

// NewDebugOverlay creates a debug overlay reading the log at path. session
// is the current run's id, shown in the header.
func NewDebugOverlay(path, session string) *DebugOverlay {
	return &DebugOverlay{
		viewport: viewport.New(0, 0),
		path:     path,
		session:  session,
	}
}

// SetSize updates the overlay dimensions
func (d *DebugOverlay) SetSize(width, height int) {
	d.width = width
	d.height = height

	// Margin, border and padding around the viewport, plus the header rows
	d.viewport.Width = max(width-12, 1)
	d.viewport.Height = max(height-11, 1)
}

// Reload reads the log file again and scrolls to its end
func (d *DebugOverlay) Reload() {
	d.viewport.SetContent(strings.Join(d.readDebugLogFile(), "\n"))
	d.viewport.GotoBottom()
}

// Update handles messages for the debug overlay
func (d *DebugOverlay) Update(msg tea.Msg) (*DebugOverlay, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+d", "q":
			return d, func() tea.Msg {
				return DebugOverlayClosedMsg{}
			}
		case "o":
			return d, d.openDebugLogFile()
		default:
			d.viewport, cmd = d.viewport.Update(msg)
		}
	default:
		d.viewport, cmd = d.viewport.Update(msg)
	}

	return d, cmd
}

// View renders the debug overlay
func (d *DebugOverlay) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.TextPrimary)).
		Bold(true)

	pathStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.TextMuted))

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.TextDescription))

	titleRow := titleStyle.Render("Debug Log") + " " + pathStyle.Render("("+d.path+")")
	if d.session != "" {
		titleRow += " " + pathStyle.Render("session "+d.session)
	}
	helpRow := helpStyle.Render("↑/↓ scroll • o open in editor • esc close")

	header := titleRow + "\n" + helpRow
	overlayContent := header + "\n\n" + d.viewport.View()

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.TextPrimary)).
		Padding(1, 2).
		Width(max(d.width-4, 1)).
		Height(max(d.height-4, 1))

	return overlayStyle.Render(overlayContent)
}

// readDebugLogFile returns the last maxLogLines lines of the log
func (d *DebugOverlay) readDebugLogFile() []string {
	if d.path == "" {
		return []string{"Logging is disabled"}
	}

	file, err := os.Open(d.path)
	if err != nil {
		return []string{"Error: could not open " + d.path}
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > maxLogLines {
			lines = lines[1:]
		}
	}

	if err := scanner.Err(); err != nil {
		return []string{"Error: could not read " + d.path}
	}

	if len(lines) == 0 {
		return []string{"No debug logs available"}
	}

	return lines
}

// openDebugLogFile opens the debug log file in the default viewer
func (d *DebugOverlay) openDebugLogFile() tea.Cmd {
	path := d.path
	return func() tea.Msg {
		if path == "" {
			return nil
		}

		var cmd *exec.Cmd
		switch runtime.GOOS {
		case "darwin":
			cmd = exec.Command("open", path)
		case "linux":
			cmd = exec.Command("xdg-open", path)
		case "windows":
			cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", path)
		default:
			return nil
		}

		_ = cmd.Start()
		return nil
	}
}
