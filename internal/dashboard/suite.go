package dashboard

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

// Suite collects check commands and runs them together.
type Suite struct {
	specs []TaskSpec
}

// NewSuite creates an empty suite.
func NewSuite() *Suite {
	return &Suite{}
}

// Add appends a task with group, name, and shell command.
func (s *Suite) Add(group, name, command string) *Suite {
	s.specs = append(s.specs, TaskSpec{Group: group, Name: name, Command: command})
	return s
}

// Run executes all tasks, with the TUI when stdout is a terminal and
// plain streaming otherwise. Returns an error if any task failed.
func (s *Suite) Run(ctx context.Context) error {
	return s.RunWithOutput(ctx, os.Stdout)
}

// RunWithOutput executes all tasks against a specific writer.
func (s *Suite) RunWithOutput(ctx context.Context, w io.Writer) error {
	if len(s.specs) == 0 {
		return nil
	}

	isTTY := false
	if f, ok := w.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	var code int
	if isTTY {
		var err error
		code, err = RunTUI(ctx, s.specs)
		if err != nil {
			return err
		}
	} else {
		code = RunStream(ctx, s.specs, w)
	}

	if code != 0 {
		return &SuiteError{ExitCode: code}
	}
	return nil
}

// SuiteError indicates one or more tasks failed.
type SuiteError struct {
	ExitCode int
}

func (e *SuiteError) Error() string {
	return "one or more checks failed"
}
