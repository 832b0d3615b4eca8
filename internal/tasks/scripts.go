package tasks

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// RunScript executes a named script from the project configuration
// through the embedded shell interpreter. Scripts run with -e
// semantics: the first failing command aborts the script.
func (t *Tasks) RunScript(ctx context.Context, name string) error {
	return t.RunScriptWithIO(ctx, name, os.Stdout, os.Stderr)
}

// RunScriptWithIO is RunScript with explicit output streams.
func (t *Tasks) RunScriptWithIO(ctx context.Context, name string, stdout, stderr io.Writer) error {
	src, ok := t.cfg.Scripts[name]
	if !ok {
		return fmt.Errorf("unknown script %q (available: %s)", name, strings.Join(t.ScriptNames(), ", "))
	}

	file, err := syntax.NewParser().Parse(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("parsing script %q: %w", name, err)
	}

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, stdout, stderr),
		interp.Params("-e"),
	)
	if err != nil {
		return fmt.Errorf("initializing shell: %w", err)
	}

	if err := runner.Run(ctx, file); err != nil {
		return fmt.Errorf("script %q: %w", name, err)
	}
	return nil
}

// ScriptNames lists the configured scripts in stable order.
func (t *Tasks) ScriptNames() []string {
	names := make([]string, 0, len(t.cfg.Scripts))
	for name := range t.cfg.Scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
