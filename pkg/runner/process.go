// Package runner owns the lifecycle of the child process launched from the
// output pane: spawning, draining its output streams, relaying keystrokes and
// tearing it down when a new command supersedes it.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ErrEmptyCommand is returned when a command line has no tokens.
var ErrEmptyCommand = errors.New("empty command line")

// Process is a spawned child with independently accessible streams.
type Process interface {
	Stdin() io.WriteCloser
	Stdout() io.Reader
	Stderr() io.Reader
	Pid() int
	// Kill terminates the process and anything it spawned.
	Kill() error
	// Wait reaps the process. It must only be called once both output
	// streams have been read to completion.
	Wait() error
}

// Resizer is implemented by processes attached to a terminal.
type Resizer interface {
	Resize(cols, rows int) error
}

// ProcessFactory starts processes from an argv, allowing for mocking in tests
type ProcessFactory interface {
	Start(argv []string) (Process, error)
}

// Tokenize splits a command line on runs of whitespace. Quoting is not
// understood: an argument containing spaces is split into several tokens.
func Tokenize(commandLine string) []string {
	return strings.Fields(commandLine)
}

// PipeFactory starts processes with three plain pipes.
type PipeFactory struct {
	// Env is appended to the inherited environment.
	Env []string
	Dir string
}

// NewProcessFactory returns the factory used in production.
func NewProcessFactory(usePty bool) ProcessFactory {
	if usePty {
		return &PtyFactory{}
	}
	return &PipeFactory{}
}

// Start launches argv with stdin, stdout and stderr piped.
func (f *PipeFactory) Start(argv []string) (Process, error) {
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = f.Dir
	cmd.Env = append(os.Environ(), f.Env...)
	setProcessGroup(cmd)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe for %s: %w", argv[0], err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("stdout pipe for %s: %w", argv[0], err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		stdin.Close()
		return nil, fmt.Errorf("stderr pipe for %s: %w", argv[0], err)
	}

	if err := cmd.Start(); err != nil {
		stdin.Close()
		return nil, fmt.Errorf("start %s: %w", argv[0], err)
	}

	return &pipeProcess{cmd: cmd, stdin: stdin, stdout: stdout, stderr: stderr}, nil
}

type pipeProcess struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout io.Reader
	stderr io.Reader
}

func (p *pipeProcess) Stdin() io.WriteCloser { return p.stdin }
func (p *pipeProcess) Stdout() io.Reader     { return p.stdout }
func (p *pipeProcess) Stderr() io.Reader     { return p.stderr }
func (p *pipeProcess) Pid() int              { return p.cmd.Process.Pid }

func (p *pipeProcess) Kill() error {
	return killProcessTree(p.cmd)
}

func (p *pipeProcess) Wait() error {
	return p.cmd.Wait()
}
