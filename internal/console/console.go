// Package console runs external commands with compact, styled status
// output: a spinner while the command runs, a one-line verdict when it
// finishes, and the captured output replayed only on failure.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// DefaultTerminalWidth is the fallback width when detection fails.
const DefaultTerminalWidth = 80

// maxCapturedLines bounds the output kept for failure replay.
const maxCapturedLines = 2000

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleDim  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// ErrNonZeroExit is returned when the command ran but exited with a
// non-zero status.
var ErrNonZeroExit = errors.New("command exited with non-zero status")

// Config configures a Console.
type Config struct {
	Out        io.Writer // defaults to os.Stdout
	Err        io.Writer // defaults to os.Stderr
	Monochrome bool      // disable styling and spinner
}

// Result captures one command execution.
type Result struct {
	Label    string
	ExitCode int
	Duration time.Duration
	Lines    []string
}

// Console executes commands sequentially with styled status lines.
type Console struct {
	cfg   Config
	isTTY bool
	width int
	log   zerolog.Logger
	mu    sync.Mutex
}

// New creates a Console. TTY capabilities are probed from the output
// writer.
func New(cfg Config) *Console {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Err == nil {
		cfg.Err = os.Stderr
	}

	c := &Console{cfg: cfg, width: DefaultTerminalWidth, log: debugLogger()}
	if f, ok := cfg.Out.(*os.File); ok && !cfg.Monochrome {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			c.isTTY = true
			if w, _, err := term.GetSize(fd); err == nil && w > 0 {
				c.width = w
			}
		}
	}
	return c
}

// debugLogger returns a console-format zerolog logger when
// INDEXSET_DEBUG is set, and a no-op logger otherwise.
func debugLogger() zerolog.Logger {
	if os.Getenv("INDEXSET_DEBUG") == "" {
		return zerolog.Nop()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}

// Run executes a command, waiting for completion. The returned Result
// is non-nil whenever the command started, including on failure.
func (c *Console) Run(ctx context.Context, label, name string, args ...string) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.log.Debug().Str("label", label).Str("cmd", name).Strs("args", args).Msg("exec")

	cmd := exec.CommandContext(ctx, name, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	cmd.Stderr = cmd.Stdout // merge streams in pipe order

	var spin *spinner
	if c.isTTY {
		spin = newSpinner(c.cfg.Out, label)
		spin.start()
	}

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if spin != nil {
			spin.stop()
		}
		c.printStatus(label, false, time.Since(start))
		return nil, fmt.Errorf("starting %s: %w", name, err)
	}

	lines := captureLines(stdout)
	waitErr := cmd.Wait()
	duration := time.Since(start)

	if spin != nil {
		spin.stop()
	}

	result := &Result{
		Label:    label,
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: duration,
		Lines:    lines,
	}

	if waitErr != nil {
		c.printStatus(label, false, duration)
		c.replayOutput(lines)
		return result, fmt.Errorf("%s: %w", label, errors.Join(ErrNonZeroExit, waitErr))
	}

	c.printStatus(label, true, duration)
	return result, nil
}

// Output runs a command silently and returns its trimmed stdout.
// Used for queries like git rev-parse where the output is the point.
func (c *Console) Output(ctx context.Context, name string, args ...string) (string, error) {
	c.log.Debug().Str("cmd", name).Strs("args", args).Msg("exec (capture)")

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

func captureLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > maxCapturedLines {
			lines = lines[1:]
		}
	}
	return lines
}

func (c *Console) printStatus(label string, ok bool, d time.Duration) {
	elapsed := fmt.Sprintf("(%s)", d.Round(time.Millisecond))
	if c.cfg.Monochrome || !c.isTTY {
		mark := "ok"
		if !ok {
			mark = "FAIL"
		}
		fmt.Fprintf(c.cfg.Out, "%-4s %s %s\n", mark, label, elapsed)
		return
	}

	mark := styleOK.Render("✓")
	if !ok {
		mark = styleFail.Render("✗")
	}
	fmt.Fprintf(c.cfg.Out, "%s %s %s\n", mark, label, styleDim.Render(elapsed))
}

// replayOutput prints captured lines after a failure, truncated to the
// terminal width so wrapped tool output stays scannable.
func (c *Console) replayOutput(lines []string) {
	for _, line := range lines {
		if c.isTTY {
			line = runewidth.Truncate(line, c.width-2, "…")
		}
		fmt.Fprintf(c.cfg.Err, "  %s\n", line)
	}
}
