package runner

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"sync"
)

// fakeProcess is an in-memory Process driven by the test.
type fakeProcess struct {
	argv []string

	stdoutR, stderrR *io.PipeReader
	stdoutW, stderrW *io.PipeWriter
	stdin            *recordingWriter

	// closeOnKill makes Kill end both streams, like a real process dying.
	closeOnKill bool
	waitErr     error

	mu    sync.Mutex
	kills int
}

func newFakeProcess(argv []string, closeOnKill bool) *fakeProcess {
	p := &fakeProcess{argv: argv, stdin: &recordingWriter{}, closeOnKill: closeOnKill}
	p.stdoutR, p.stdoutW = io.Pipe()
	p.stderrR, p.stderrW = io.Pipe()
	return p
}

func (p *fakeProcess) Stdin() io.WriteCloser { return p.stdin }
func (p *fakeProcess) Stdout() io.Reader     { return p.stdoutR }
func (p *fakeProcess) Stderr() io.Reader     { return p.stderrR }
func (p *fakeProcess) Pid() int              { return 4242 }
func (p *fakeProcess) Wait() error           { return p.waitErr }

func (p *fakeProcess) Kill() error {
	p.mu.Lock()
	p.kills++
	p.mu.Unlock()
	if p.closeOnKill {
		p.exit()
	}
	return nil
}

func (p *fakeProcess) killCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kills
}

// exit closes both output streams, as if the process terminated.
func (p *fakeProcess) exit() {
	_ = p.stdoutW.Close()
	_ = p.stderrW.Close()
}

type recordingWriter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	writes int
	closed bool
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return 0, errors.New("write to closed stdin")
	}
	w.writes++
	return w.buf.Write(b)
}

func (w *recordingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func (w *recordingWriter) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

func (w *recordingWriter) Writes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writes
}

// fakeFactory hands out fakeProcesses and remembers them.
type fakeFactory struct {
	mu          sync.Mutex
	procs       []*fakeProcess
	err         error
	closeOnKill bool
}

func (f *fakeFactory) Start(argv []string) (Process, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := newFakeProcess(argv, f.closeOnKill)
	f.procs = append(f.procs, p)
	return p, nil
}

func (f *fakeFactory) proc(i int) *fakeProcess {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.procs[i]
}

func countLines(lines []string, want string) int {
	n := 0
	for _, l := range lines {
		if l == want {
			n++
		}
	}
	return n
}

func containsLine(lines []string, substr string) bool {
	for _, l := range lines {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}
