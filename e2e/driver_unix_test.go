//go:build e2e && unix

package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath string

const (
	KeyEnter = "\r"
	KeyEsc   = "\x1b"
	KeyCtrlC = "\x03"
)

// ansiRe matches the escape sequences a TUI writes, so assertions can run on
// plain text.
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// PagerTest drives one skim process attached to a pseudo terminal.
type PagerTest struct {
	t    *testing.T
	pty  *os.File
	tty  *os.File
	cmd  *exec.Cmd
	home string

	mu  sync.Mutex
	out []byte

	done    chan struct{}
	waitErr error
}

func NewPagerTest(t *testing.T) *PagerTest {
	pt := &PagerTest{t: t, home: t.TempDir(), done: make(chan struct{})}
	t.Cleanup(pt.Cleanup)
	return pt
}

// Start launches skim with args on a rows x cols terminal.
func (pt *PagerTest) Start(rows, cols uint16, args ...string) error {
	pt.cmd = exec.Command(binPath, args...)
	pt.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"HOME="+pt.home,
		"XDG_CONFIG_HOME="+pt.home,
	)

	ptmx, tty, err := pty.Open()
	if err != nil {
		return fmt.Errorf("failed to open pty: %w", err)
	}
	pt.pty = ptmx
	pt.tty = tty

	if err := pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols}); err != nil {
		return fmt.Errorf("failed to set pty size: %w", err)
	}

	pt.cmd.Stdin = tty
	pt.cmd.Stdout = tty
	pt.cmd.Stderr = tty
	// The pager reads keys from /dev/tty, so the pty must be the
	// controlling terminal.
	pt.cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true, Setctty: true}

	if err := pt.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start command: %w", err)
	}

	go pt.read()
	go func() {
		pt.waitErr = pt.cmd.Wait()
		close(pt.done)
	}()
	return nil
}

func (pt *PagerTest) read() {
	buf := make([]byte, 8192)
	for {
		n, err := pt.pty.Read(buf)
		if n > 0 {
			pt.mu.Lock()
			pt.out = append(pt.out, buf[:n]...)
			pt.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

func (pt *PagerTest) SendKeys(keys string) error {
	pt.t.Helper()
	_, err := pt.pty.Write([]byte(keys))
	return err
}

// Plain returns everything written so far with escape sequences removed.
func (pt *PagerTest) Plain() string {
	pt.mu.Lock()
	defer pt.mu.Unlock()
	return ansiRe.ReplaceAllString(string(pt.out), "")
}

// Mark returns the current output length. SeeSince only looks past it.
func (pt *PagerTest) Mark() int {
	return len(pt.Plain())
}

func (pt *PagerTest) See(text string) bool {
	pt.t.Helper()
	return pt.SeeSince(0, text)
}

func (pt *PagerTest) SeeSince(mark int, text string) bool {
	pt.t.Helper()
	return pt.WaitFor(func(s string) bool {
		return len(s) >= mark && strings.Contains(s[mark:], text)
	}, 3*time.Second)
}

// WaitFor polls the plain output until pred holds or timeout passes.
func (pt *PagerTest) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	pt.t.Helper()
	deadline := time.Now().Add(timeout)
	for {
		if pred(pt.Plain()) {
			return true
		}
		if time.Now().After(deadline) {
			tail := pt.Plain()
			if len(tail) > 2048 {
				tail = tail[len(tail)-2048:]
			}
			pt.t.Logf("--- tail ---\n%s", tail)
			return false
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Wait blocks until the process exits and returns its exit code.
func (pt *PagerTest) Wait(timeout time.Duration) (int, error) {
	select {
	case <-pt.done:
	case <-time.After(timeout):
		return -1, fmt.Errorf("process did not exit within %s", timeout)
	}
	if pt.waitErr == nil {
		return 0, nil
	}
	if exitErr, ok := pt.waitErr.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, pt.waitErr
}

func (pt *PagerTest) Cleanup() {
	if pt.cmd != nil && pt.cmd.Process != nil {
		select {
		case <-pt.done:
		default:
			_ = pt.cmd.Process.Kill()
			<-pt.done
		}
	}
	if pt.pty != nil {
		_ = pt.pty.Close()
		pt.pty = nil
	}
	if pt.tty != nil {
		_ = pt.tty.Close()
		pt.tty = nil
	}
}
