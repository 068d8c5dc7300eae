package runner

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	waitFor = 5 * time.Second
	tick    = 10 * time.Millisecond
)

// TestHelperProcess is not a real test. It is the child process started by
// the tests below through helperCommand.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	if len(args) < 2 {
		os.Exit(2)
	}

	switch args[1] {
	case "echo":
		fmt.Fprintln(os.Stdout, strings.Join(args[2:], " "))
	case "both":
		fmt.Fprintln(os.Stdout, "out-1")
		fmt.Fprintln(os.Stderr, "err-1")
		fmt.Fprintln(os.Stdout, "out-2")
		fmt.Fprintln(os.Stderr, "err-2")
	case "color":
		fmt.Fprint(os.Stdout, "\x1b[32mgreen\x1b[0m text\r\n")
	case "sleep":
		time.Sleep(time.Minute)
	}
	os.Exit(0)
}

func helperCommand(args ...string) string {
	return strings.Join(append([]string{os.Args[0], "-test.run=TestHelperProcess", "--"}, args...), " ")
}

func newHelperController() *Controller {
	return NewController(&PipeFactory{Env: []string{"GO_WANT_HELPER_PROCESS=1"}})
}

func waitIdle(t *testing.T, c *Controller) View {
	t.Helper()
	require.Eventually(t, func() bool { return !c.Running() }, waitFor, tick)
	return c.Snapshot()
}

func TestControllerRoundTrip(t *testing.T) {
	c := newHelperController()
	line := helperCommand("echo", "hello", "world")

	id := c.Start(line)
	view := waitIdle(t, c)

	assert.Equal(t, id, view.ID)
	assert.Equal(t, StateIdle, view.State)
	assert.Equal(t, []string{"$ " + line, "", "hello world", "", DoneMarker}, view.Lines)
}

func TestControllerStripsEscapeSequences(t *testing.T) {
	c := newHelperController()
	line := helperCommand("color")

	c.Start(line)
	view := waitIdle(t, c)

	assert.Equal(t, []string{"$ " + line, "", "green text", "", DoneMarker}, view.Lines)
}

func TestControllerCapturesBothStreams(t *testing.T) {
	c := newHelperController()
	c.Start(helperCommand("both"))
	view := waitIdle(t, c)

	body := view.Lines[2 : len(view.Lines)-2]
	assert.ElementsMatch(t, []string{"out-1", "out-2", "err-1", "err-2"}, body)

	// Only per-stream order is guaranteed.
	indexOf := func(s string) int {
		for i, l := range body {
			if l == s {
				return i
			}
		}
		return -1
	}
	assert.Less(t, indexOf("out-1"), indexOf("out-2"))
	assert.Less(t, indexOf("err-1"), indexOf("err-2"))
}

func TestControllerSpawnErrorIsReportedInline(t *testing.T) {
	c := NewController(&PipeFactory{})
	line := "/nonexistent/skilltui-test-tool add"

	c.Start(line)
	view := waitIdle(t, c)

	require.Len(t, view.Lines, 5)
	assert.Equal(t, "$ "+line, view.Lines[0])
	assert.True(t, strings.HasPrefix(view.Lines[2], "Error: "), view.Lines[2])
	assert.Equal(t, DoneMarker, view.Lines[4])
	assert.False(t, view.Running)
	assert.True(t, view.SpawnFailed)
}

func TestControllerEmptyCommandLine(t *testing.T) {
	c := NewController(&fakeFactory{})
	c.Start("   ")
	view := c.Snapshot()

	assert.False(t, view.Running)
	assert.Contains(t, view.Lines[2], ErrEmptyCommand.Error())
	assert.Equal(t, 1, countLines(view.Lines, DoneMarker))
}

func TestControllerFactoryErrorIsReportedInline(t *testing.T) {
	c := NewController(&fakeFactory{err: errors.New("permission denied")})
	c.Start("tool list")

	view := c.Snapshot()
	assert.Equal(t, []string{"$ tool list", "", "Error: permission denied", "", DoneMarker}, view.Lines)
	assert.True(t, view.SpawnFailed)
	assert.Equal(t, "Error: permission denied", view.Lines[SpawnErrorLine])
}

func TestControllerSetProcessFactory(t *testing.T) {
	c := NewController(&fakeFactory{err: errors.New("permission denied")})
	c.Start("tool list")
	require.True(t, c.Snapshot().SpawnFailed)

	f := &fakeFactory{closeOnKill: true}
	c.SetProcessFactory(f)
	c.Start("tool list")

	require.Len(t, f.procs, 1)
	assert.Equal(t, []string{"tool", "list"}, f.proc(0).argv)
	_, err := f.proc(0).stdoutW.Write([]byte("Error: from the tool\n"))
	require.NoError(t, err)
	f.proc(0).exit()

	view := waitIdle(t, c)
	assert.False(t, view.SpawnFailed, "a later successful start clears the spawn failure")
	assert.True(t, containsLine(view.Lines, "Error: from the tool"))
}

func TestControllerSupersedeDiscardsStaleOutput(t *testing.T) {
	// Kill does not close the old streams here, so the ID guard alone must
	// keep the old process out of the new buffer.
	f := &fakeFactory{}
	c := NewController(f)

	first := c.Start("tool list")
	old := f.proc(0)
	_, err := old.stdoutW.Write([]byte("old-1\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return containsLine(c.Snapshot().Lines, "old-1") }, waitFor, tick)

	second := c.Start("tool find")
	assert.Greater(t, second, first)
	assert.Equal(t, 1, old.killCount())

	_, err = old.stdoutW.Write([]byte("stale\n"))
	require.NoError(t, err)
	old.exit()

	fresh := f.proc(1)
	_, err = fresh.stdoutW.Write([]byte("new-1\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return containsLine(c.Snapshot().Lines, "new-1") }, waitFor, tick)

	view := c.Snapshot()
	assert.Equal(t, second, view.ID)
	assert.Equal(t, "$ tool find", view.Lines[0])
	assert.False(t, containsLine(view.Lines, "old-1"))
	assert.False(t, containsLine(view.Lines, "stale"))
	assert.True(t, view.Running, "stale completion must not end the new execution")
	assert.Zero(t, countLines(view.Lines, DoneMarker))

	fresh.exit()
	view = waitIdle(t, c)
	assert.Equal(t, 1, countLines(view.Lines, DoneMarker))
}

func TestControllerSupersedeRealProcess(t *testing.T) {
	c := newHelperController()

	c.Start(helperCommand("sleep"))
	require.True(t, c.Running())

	line := helperCommand("echo", "second")
	c.Start(line)
	view := waitIdle(t, c)

	assert.Equal(t, []string{"$ " + line, "", "second", "", DoneMarker}, view.Lines)
}

func TestControllerInterruptKillsOnce(t *testing.T) {
	c := newHelperController()
	c.SetFocused(true)

	c.Start(helperCommand("sleep"))
	require.True(t, c.Running())

	assert.True(t, c.ForwardKey(Key{Name: KeyInterrupt}))
	view := waitIdle(t, c)

	assert.Equal(t, 1, countLines(view.Lines, DoneMarker))
	assert.False(t, c.Kill(), "nothing left to kill")

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, countLines(c.Snapshot().Lines, DoneMarker))
}

func TestControllerKillRacesNaturalExit(t *testing.T) {
	f := &fakeFactory{closeOnKill: true}
	c := NewController(f)

	c.Start("tool list")
	p := f.proc(0)
	go p.exit()
	c.Kill()

	view := waitIdle(t, c)
	assert.Equal(t, 1, countLines(view.Lines, DoneMarker))
}

func TestControllerForwardKey(t *testing.T) {
	f := &fakeFactory{closeOnKill: true}
	c := NewController(f)

	c.Start("tool add")
	p := f.proc(0)

	assert.False(t, c.ForwardKey(Key{Name: "a"}), "unfocused output must not receive keys")

	c.SetFocused(true)
	assert.True(t, c.ForwardKey(Key{Name: "enter"}))
	assert.True(t, c.ForwardKey(Key{Name: "up"}))
	assert.True(t, c.ForwardKey(Key{Name: "y", Shift: true}))
	assert.False(t, c.ForwardKey(Key{Name: "f5"}))

	require.Eventually(t, func() bool { return p.stdin.String() == "\n\x1b[AY" }, waitFor, tick)

	p.exit()
	waitIdle(t, c)

	writes := p.stdin.Writes()
	assert.False(t, c.ForwardKey(Key{Name: "a"}), "finished execution must not receive keys")
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, writes, p.stdin.Writes())
}

func TestControllerStartSameLineWhileRunning(t *testing.T) {
	f := &fakeFactory{closeOnKill: true}
	c := NewController(f)

	first := c.Start("tool list")
	again := c.Start("tool list")

	assert.Equal(t, first, again)
	assert.Len(t, f.procs, 1)
	assert.Zero(t, f.proc(0).killCount())

	f.proc(0).exit()
	waitIdle(t, c)

	rerun := c.Start("tool list")
	assert.Greater(t, rerun, first)
}

func TestControllerClose(t *testing.T) {
	f := &fakeFactory{}
	c := NewController(f)

	id := c.Start("tool list")
	p := f.proc(0)
	c.Close()

	view := c.Snapshot()
	assert.Equal(t, 1, p.killCount())
	assert.False(t, view.Running)
	assert.Equal(t, StateCancelled, view.State)
	assert.Greater(t, view.ID, id)

	_, err := p.stdoutW.Write([]byte("late\n"))
	require.NoError(t, err)
	p.exit()

	time.Sleep(20 * time.Millisecond)
	view = c.Snapshot()
	assert.False(t, containsLine(view.Lines, "late"))
	assert.Zero(t, countLines(view.Lines, DoneMarker))
}

func TestControllerNotifiesUpdates(t *testing.T) {
	f := &fakeFactory{closeOnKill: true}
	c := NewController(f)

	c.Start("tool list")
	select {
	case <-c.Updates():
	case <-time.After(waitFor):
		t.Fatal("expected an update after Start")
	}

	msg := WaitForUpdate(c.Updates())
	go func() { _, _ = f.proc(0).stdoutW.Write([]byte("x\n")) }()
	assert.Equal(t, UpdateMsg{}, msg())
	f.proc(0).exit()
}

func TestControllerOutputCap(t *testing.T) {
	f := &fakeFactory{}
	c := NewController(f)
	c.SetMaxLines(3)

	c.Start("tool list")
	p := f.proc(0)
	_, err := p.stdoutW.Write([]byte("a\nb\nc\nd\n"))
	require.NoError(t, err)
	require.Eventually(t, func() bool { return containsLine(c.Snapshot().Lines, "d") }, waitFor, tick)

	assert.Equal(t, []string{"b", "c", "d"}, c.Snapshot().Lines)
	p.exit()
	assert.Equal(t, []string{"d", "", DoneMarker}, waitIdle(t, c).Lines)
}
