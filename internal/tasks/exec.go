package tasks

import (
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/svalins/indexset/internal/config"
	"github.com/svalins/indexset/internal/console"
)

// Execer runs external commands. The production implementation wraps
// the console; tests substitute a recorder.
type Execer interface {
	// Run executes a command, streaming status to the user.
	Run(ctx context.Context, label, name string, args ...string) error
	// Output executes a command silently and returns its trimmed stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// Tasks bundles the recipes with their configuration and executor.
type Tasks struct {
	cfg  *config.Project
	exec Execer
}

// New builds Tasks from the on-disk project configuration.
func New() *Tasks {
	return &Tasks{
		cfg:  config.Load(),
		exec: &consoleExecer{c: console.New(console.Config{})},
	}
}

// NewWith builds Tasks with explicit collaborators, for tests.
func NewWith(cfg *config.Project, exec Execer) *Tasks {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Tasks{cfg: cfg, exec: exec}
}

type consoleExecer struct {
	c *console.Console
}

func (e *consoleExecer) Run(ctx context.Context, label, name string, args ...string) error {
	_, err := e.c.Run(ctx, label, name, args...)
	return err
}

func (e *consoleExecer) Output(ctx context.Context, name string, args ...string) (string, error) {
	return e.c.Output(ctx, name, args...)
}

// IsCommandNotFound checks if the error indicates the command was not
// found, handling exec.ErrNotFound and platform-specific string
// fallbacks.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	errStr := err.Error()
	if strings.Contains(errStr, "executable file not found") {
		return true
	}
	if strings.Contains(errStr, "no such file or directory") {
		return true
	}
	return false
}
