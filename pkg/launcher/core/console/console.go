// Package console prints the launcher's status banners and handles the closing pause.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/tigerroll/dotlaunch/pkg/launcher/core/config"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/exception"
	"github.com/tigerroll/dotlaunch/pkg/launcher/support/util/logger"
)

// Console writes banners to out and reads the pause acknowledgement from in.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	in       *bufio.Reader
	msgs     Messages
	pause    string
	terminal bool
}

// New creates a Console. terminal tells whether in is attached to a terminal,
// which decides the "auto" pause policy.
func New(out io.Writer, in io.Reader, locale, pause string, terminal bool) (*Console, error) {
	msgs, err := MessagesFor(locale)
	if err != nil {
		return nil, exception.NewLaunchError("console", exception.KindInvalidConfig, "invalid console locale", err)
	}
	switch pause {
	case config.PauseAuto, config.PauseAlways, config.PauseNever:
	default:
		return nil, exception.NewLaunchErrorf("console", exception.KindInvalidConfig, "invalid pause policy %q", pause)
	}
	var reader *bufio.Reader
	if in != nil {
		reader = bufio.NewReader(in)
	}
	return &Console{out: out, in: reader, msgs: msgs, pause: pause, terminal: terminal}, nil
}

// NewStdConsole creates a Console on stdout and stdin.
func NewStdConsole(cfg *config.ConsoleConfig) (*Console, error) {
	fd := os.Stdin.Fd()
	terminal := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return New(os.Stdout, os.Stdin, cfg.Locale, cfg.Pause, terminal)
}

func (c *Console) Starting(entryPoint, dir string) { c.printf(c.msgs.Starting, entryPoint, dir) }
func (c *Console) EnvLoaded(count int, path string) { c.printf(c.msgs.EnvLoaded, count, path) }
func (c *Console) EnvMissing(path string) { c.printf(c.msgs.EnvMissing, path) }
func (c *Console) MissingEntryPoint(path string) { c.printf(c.msgs.MissingEntryPoint, path) }
func (c *Console) Launching(command string) { c.printf(c.msgs.Launching, command) }
func (c *Console) Running(pid int) { c.printf(c.msgs.Running, pid) }
func (c *Console) Exited(code int) { c.printf(c.msgs.Exited, code) }
func (c *Console) Done() { c.println(c.msgs.Done) }

// StartFailure reports an error raised while starting the child.
func (c *Console) StartFailure(err error) {
	c.printf(c.msgs.StartFailure, exception.ExtractErrorMessage(err))
}

// Failure reports any other fatal launcher error.
func (c *Console) Failure(err error) {
	c.printf(c.msgs.Failure, exception.ExtractErrorMessage(err))
}

// ShouldPause applies the pause policy.
func (c *Console) ShouldPause() bool {
	switch c.pause {
	case config.PauseAlways:
		return true
	case config.PauseNever:
		return false
	default:
		return c.terminal
	}
}

// Pause prints the prompt and waits for one line of input, when the policy allows it.
// End of input ends the pause.
func (c *Console) Pause() {
	if !c.ShouldPause() || c.in == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(c.out, c.msgs.Pause)
	if _, err := c.in.ReadString('\n'); err != nil && err != io.EOF {
		logger.Debugf("console: pause read failed: %v", err)
	}
	fmt.Fprintln(c.out)
}

func (c *Console) println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, line)
}

func (c *Console) printf(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format+"\n", a...)
}
