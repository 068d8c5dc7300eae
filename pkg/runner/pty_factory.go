package runner

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/creack/pty"
)

// PtyFactory starts processes attached to a pseudo-terminal. Tools that
// only prompt when stdin is a TTY need this. The terminal merges both output
// streams, so Stdout carries everything and Stderr is always empty.
type PtyFactory struct {
	Env  []string
	Dir  string
	Size *pty.Winsize
}

// Start creates a PTY and starts argv on it
func (f *PtyFactory) Start(argv []string) (Process, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = f.Dir
	cmd.Env = append(os.Environ(), f.Env...)

	size := f.Size
	if size == nil {
		size = &pty.Winsize{Rows: 24, Cols: 80}
	}
	ptmx, err := pty.StartWithSize(cmd, size)
	if err != nil {
		return nil, fmt.Errorf("start %s on pty: %w", argv[0], err)
	}

	return &ptyProcess{cmd: cmd, ptmx: ptmx}, nil
}

type ptyProcess struct {
	cmd       *exec.Cmd
	ptmx      *os.File
	closeOnce sync.Once
}

func (p *ptyProcess) Stdin() io.WriteCloser { return ptyWriter{p} }
func (p *ptyProcess) Stdout() io.Reader     { return p.ptmx }
func (p *ptyProcess) Stderr() io.Reader     { return strings.NewReader("") }
func (p *ptyProcess) Pid() int              { return p.cmd.Process.Pid }

// Kill signals the session started by pty.Start; the child is its leader.
func (p *ptyProcess) Kill() error {
	return killProcessTree(p.cmd)
}

func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()
	p.close()
	return err
}

func (p *ptyProcess) Resize(cols, rows int) error {
	return pty.Setsize(p.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

func (p *ptyProcess) close() {
	p.closeOnce.Do(func() {
		_ = p.ptmx.Close()
	})
}

// ptyWriter shares the master with the reader; closing it ends both.
type ptyWriter struct{ p *ptyProcess }

func (w ptyWriter) Write(b []byte) (int, error) { return w.p.ptmx.Write(b) }

func (w ptyWriter) Close() error {
	w.p.close()
	return nil
}
