package runner

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Stream identifies one of the child's output streams.
type Stream int

const (
	StreamStdout Stream = iota
	StreamStderr
)

func (s Stream) String() string {
	if s == StreamStderr {
		return "stderr"
	}
	return "stdout"
}

// DoneMarker is appended once an execution completes.
const DoneMarker = "--- Done ---"

// Output accumulates display lines for one execution. A chunk that does not
// end in a newline is shown immediately as an open line, and later chunks from
// the same stream continue it in place, so prompts without a trailing newline
// are visible while the process waits for input.
type Output struct {
	lines   []string
	dropped int // lines evicted from the front, for absolute indexing
	max     int

	open [2]int    // absolute index of each stream's open line, -1 if none
	raw  [2]string // unprocessed text of the open line
}

// NewOutput returns a buffer that keeps at most max lines (0 means unbounded).
func NewOutput(max int) *Output {
	o := &Output{max: max}
	o.Reset()
	return o
}

// Reset replaces the contents with the given header lines.
func (o *Output) Reset(header ...string) {
	o.lines = append(make([]string, 0, len(header)), header...)
	o.dropped = 0
	o.open = [2]int{-1, -1}
	o.raw = [2]string{}
}

// SetMax changes the cap and trims if needed.
func (o *Output) SetMax(max int) {
	o.max = max
	o.trim()
}

// Append adds complete lines verbatim.
func (o *Output) Append(lines ...string) {
	o.lines = append(o.lines, lines...)
	o.trim()
}

// Write feeds a raw chunk read from stream.
func (o *Output) Write(stream Stream, chunk string) {
	text := chunk
	openIdx := -1
	if abs := o.open[stream]; abs >= 0 {
		text = o.raw[stream] + chunk
		if idx := abs - o.dropped; idx >= 0 && idx < len(o.lines) {
			openIdx = idx
		}
	}
	o.open[stream] = -1
	o.raw[stream] = ""

	parts := strings.Split(text, "\n")
	for i, part := range parts {
		last := i == len(parts)-1
		if last && part == "" {
			break
		}

		var abs int
		if i == 0 && openIdx >= 0 {
			o.lines[openIdx] = cleanLine(part)
			abs = o.dropped + openIdx
		} else {
			o.lines = append(o.lines, cleanLine(part))
			abs = o.dropped + len(o.lines) - 1
		}

		if last {
			o.open[stream] = abs
			o.raw[stream] = part
		}
	}
	o.trim()
}

// Close terminates the open line of stream, if any.
func (o *Output) Close(stream Stream) {
	o.open[stream] = -1
	o.raw[stream] = ""
}

// Lines returns a copy of the buffered lines.
func (o *Output) Lines() []string {
	out := make([]string, len(o.lines))
	copy(out, o.lines)
	return out
}

// Len returns the number of buffered lines.
func (o *Output) Len() int {
	return len(o.lines)
}

func (o *Output) trim() {
	if o.max <= 0 || len(o.lines) <= o.max {
		return
	}
	n := len(o.lines) - o.max
	o.lines = append(o.lines[:0], o.lines[n:]...)
	o.dropped += n
}

// cleanLine strips escape sequences and resolves carriage returns the way a
// terminal would: only the text after the last CR stays visible.
func cleanLine(s string) string {
	s = strings.TrimSuffix(s, "\r")
	if i := strings.LastIndexByte(s, '\r'); i >= 0 {
		s = s[i+1:]
	}
	return ansi.Strip(s)
}
