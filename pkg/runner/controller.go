package runner

import (
	"io"
	"sync"

	"skilltui/internal/debug"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

const (
	readChunkSize   = 4096
	keyQueueSize    = 64
	DefaultMaxLines = 5000

	// SpawnErrorLine is the index of the "Error: ..." line in the output of
	// an execution that failed to start.
	SpawnErrorLine = 2
)

// State is the lifecycle phase of the current execution.
type State int

const (
	StateIdle State = iota
	StateStarting
	StateRunning
	StateDraining
	StateCancelled
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// View is a read-only copy of the controller state for rendering.
type View struct {
	ID          uint64
	CommandLine string
	Lines       []string
	Running     bool
	State       State
	SpawnFailed bool
}

// UpdateMsg tells the UI that the current execution's view changed.
type UpdateMsg struct{}

// Controller runs at most one child process at a time.
//
// Every goroutine working for an execution captures that execution's ID and
// compares it with current before touching shared state; once a newer Start
// or Close has bumped current, the old goroutines wind down without effect.
type Controller struct {
	factory ProcessFactory

	mu          sync.Mutex
	seq         uint64
	current     uint64
	commandLine string
	out         *Output
	running     bool
	state       State
	spawnFailed bool
	focused     bool
	proc        Process
	keys        chan []byte
	cols, rows  int

	updates chan struct{}
}

// NewController creates a controller that spawns through factory
func NewController(factory ProcessFactory) *Controller {
	if factory == nil {
		factory = NewProcessFactory(false)
	}
	return &Controller{
		factory: factory,
		out:     NewOutput(DefaultMaxLines),
		updates: make(chan struct{}, 1),
	}
}

// SetProcessFactory sets a custom process factory (useful for testing)
func (c *Controller) SetProcessFactory(factory ProcessFactory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factory = factory
}

// SetMaxLines caps the output buffer; 0 disables the cap.
func (c *Controller) SetMaxLines(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out.SetMax(n)
}

// Updates delivers a coalesced signal whenever the view changes.
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

// WaitForUpdate blocks on the update channel and reports it as an UpdateMsg.
func WaitForUpdate(updates <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-updates; !ok {
			return nil
		}
		return UpdateMsg{}
	}
}

// Start replaces the current execution with commandLine and returns the new
// execution ID. Issuing the line that is already running is a no-op.
func (c *Controller) Start(commandLine string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.running && commandLine == c.commandLine {
		return c.current
	}

	c.cancelLocked()

	c.seq++
	id := c.seq
	c.current = id
	c.commandLine = commandLine
	c.out.Reset("$ "+commandLine, "")
	c.running = true
	c.state = StateStarting
	c.spawnFailed = false

	var (
		proc Process
		err  error
	)
	if argv := Tokenize(commandLine); len(argv) == 0 {
		err = ErrEmptyCommand
	} else {
		proc, err = c.factory.Start(argv)
	}
	if err != nil {
		debug.Error("runner", err, "spawn failed for %q (execution %d)", commandLine, id)
		c.out.Append("Error: " + err.Error())
		c.spawnFailed = true
		c.completeLocked()
		c.notify()
		return id
	}
	debug.Info("runner", "started %q as pid %d (execution %d)", commandLine, proc.Pid(), id)

	c.proc = proc
	c.keys = make(chan []byte, keyQueueSize)
	c.state = StateRunning
	if r, ok := proc.(Resizer); ok && c.cols > 0 && c.rows > 0 {
		_ = r.Resize(c.cols, c.rows)
	}

	go writeKeys(proc.Stdin(), c.keys)
	go c.supervise(id, proc)

	c.notify()
	return id
}

// supervise drains both streams, reaps the process and completes the execution.
func (c *Controller) supervise(id uint64, proc Process) {
	var g errgroup.Group
	g.Go(func() error {
		c.drain(id, StreamStdout, proc.Stdout())
		return nil
	})
	g.Go(func() error {
		c.drain(id, StreamStderr, proc.Stderr())
		return nil
	})
	_ = g.Wait()

	waitErr := proc.Wait()
	c.finish(id, waitErr)
}

func (c *Controller) drain(id uint64, stream Stream, r io.Reader) {
	buf := make([]byte, readChunkSize)
	for {
		n, err := r.Read(buf)
		if n > 0 && !c.appendChunk(id, stream, buf[:n]) {
			return
		}
		if err != nil {
			c.closeStream(id, stream)
			return
		}
	}
}

func (c *Controller) appendChunk(id uint64, stream Stream, chunk []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.current {
		return false
	}
	debug.Debug("runner", "execution %d: %d bytes on %s", id, len(chunk), stream)
	c.out.Write(stream, string(chunk))
	c.notify()
	return true
}

func (c *Controller) closeStream(id uint64, stream Stream) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.current {
		return
	}
	c.out.Close(stream)
	if c.state == StateRunning {
		c.state = StateDraining
	}
}

func (c *Controller) finish(id uint64, waitErr error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != c.current || !c.running {
		return
	}
	if waitErr != nil {
		debug.Info("runner", "execution %d exited: %v", id, waitErr)
	} else {
		debug.Info("runner", "execution %d exited cleanly", id)
	}
	c.completeLocked()
	c.notify()
}

// completeLocked appends the completion marker and releases the process.
func (c *Controller) completeLocked() {
	c.out.Append("", DoneMarker)
	c.running = false
	c.state = StateIdle
	c.releaseLocked()
}

// releaseLocked drops the process handle and closes the key queue; the
// writer goroutine then closes stdin.
func (c *Controller) releaseLocked() {
	if c.keys != nil {
		close(c.keys)
		c.keys = nil
	}
	c.proc = nil
}

// cancelLocked kills the current process, if any, and releases it.
func (c *Controller) cancelLocked() {
	if c.running && c.proc != nil {
		c.killLocked()
	}
	c.releaseLocked()
	c.running = false
}

func (c *Controller) killLocked() {
	if err := c.proc.Kill(); err != nil {
		debug.Warn("runner", err, "kill execution %d", c.current)
		return
	}
	debug.Info("runner", "killed execution %d", c.current)
}

// Kill terminates the running process. Completion is reported by the
// supervisor once the streams close, so the marker appears exactly once.
func (c *Controller) Kill() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.running || c.proc == nil {
		return false
	}
	c.killLocked()
	return true
}

// SetFocused records whether the output pane owns the keyboard.
func (c *Controller) SetFocused(focused bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focused = focused
}

// ForwardKey writes k to the process's stdin. It does nothing unless the
// output pane is focused and a process is running. ctrl+c kills the process.
func (c *Controller) ForwardKey(k Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.focused || !c.running || c.proc == nil {
		return false
	}
	if k.Name == KeyInterrupt {
		c.killLocked()
		return true
	}
	b, ok := EncodeKey(k)
	if !ok {
		return false
	}
	select {
	case c.keys <- b:
		debug.Debug("runner", "execution %d: forwarded key %q", c.current, k.Name)
		return true
	default:
		debug.Warn("runner", nil, "key queue full, dropped %q", k.Name)
		return false
	}
}

// Resize passes the output pane size to processes attached to a terminal.
func (c *Controller) Resize(cols, rows int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cols, c.rows = cols, rows
	if r, ok := c.proc.(Resizer); ok && cols > 0 && rows > 0 {
		if err := r.Resize(cols, rows); err != nil {
			debug.Warn("runner", err, "resize to %dx%d", cols, rows)
		}
	}
}

// Running reports whether a process is currently live.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Snapshot returns a copy of the current execution's state.
func (c *Controller) Snapshot() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View{
		ID:          c.current,
		CommandLine: c.commandLine,
		Lines:       c.out.Lines(),
		Running:     c.running,
		State:       c.state,
		SpawnFailed: c.spawnFailed,
	}
}

// Close kills any running process and invalidates all pending callbacks.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancelLocked()
	c.seq++
	c.current = c.seq
	c.state = StateCancelled
	c.notify()
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// writeKeys serializes keystrokes for one execution. Write errors mean the
// process is gone; they are ignored and the queue is still drained.
func writeKeys(w io.WriteCloser, keys <-chan []byte) {
	for b := range keys {
		_, _ = w.Write(b)
	}
	_ = w.Close()
}
