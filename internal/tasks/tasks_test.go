package tasks

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svalins/indexset/internal/config"
)

func TestLint_InvokesToolsInOrder(t *testing.T) {
	t.Parallel()

	fake := &fakeExecer{}
	tasks := NewWith(config.Default(), fake)

	require.NoError(t, tasks.Lint(context.Background()))
	assert.Equal(t, []string{
		"go vet ./...",
		"gofmt -l .",
		"golangci-lint run ./...",
	}, fake.calls)
}

func TestLint_FailsOnUnformattedFiles(t *testing.T) {
	t.Parallel()

	fake := &fakeExecer{outputs: map[string]string{
		"gofmt -l .": "treeset.go\nsliceset.go",
	}}
	tasks := NewWith(config.Default(), fake)

	err := tasks.Lint(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "treeset.go")
	// golangci-lint never ran
	assert.Len(t, fake.calls, 2)
}

func TestLint_ToleratesMissingGolangciLint(t *testing.T) {
	t.Parallel()

	fake := &notFoundExecer{notFound: "golangci-lint"}
	tasks := NewWith(config.Default(), fake)

	assert.NoError(t, tasks.Lint(context.Background()))
}

func TestBench_UsesConfiguredPattern(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("bench:\n  pattern: BenchmarkInsert\n"))
	require.NoError(t, err)

	fake := &fakeExecer{}
	tasks := NewWith(cfg, fake)

	require.NoError(t, tasks.Bench(context.Background()))
	require.Len(t, fake.calls, 1)
	assert.Equal(t, "go test -run=^$ -bench=BenchmarkInsert -benchmem ./...", fake.calls[0])
}

func TestFormatAndTest_RunExpectedCommands(t *testing.T) {
	t.Parallel()

	fake := &fakeExecer{}
	tasks := NewWith(config.Default(), fake)

	require.NoError(t, tasks.Format(context.Background()))
	require.NoError(t, tasks.Test(context.Background()))
	require.NoError(t, tasks.TestRace(context.Background()))

	assert.Equal(t, []string{
		"go fmt ./...",
		"go test ./...",
		"go test -race ./...",
	}, fake.calls)
}

func TestIsCommandNotFound(t *testing.T) {
	t.Parallel()

	assert.False(t, IsCommandNotFound(nil))
	assert.True(t, IsCommandNotFound(exec.ErrNotFound))
	assert.True(t, IsCommandNotFound(errors.New(`exec: "x": executable file not found in $PATH`)))
	assert.False(t, IsCommandNotFound(errors.New("exit status 1")))
}

func TestRunScript_ExecutesConfiguredScript(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("scripts:\n  greet: \"echo hello from script\"\n"))
	require.NoError(t, err)
	tasks := NewWith(cfg, &fakeExecer{})

	var out bytes.Buffer
	require.NoError(t, tasks.RunScriptWithIO(context.Background(), "greet", &out, &out))
	assert.Equal(t, "hello from script\n", out.String())
}

func TestRunScript_StopsOnFirstFailure(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("scripts:\n  flaky: \"echo before; false; echo after\"\n"))
	require.NoError(t, err)
	tasks := NewWith(cfg, &fakeExecer{})

	var out bytes.Buffer
	err = tasks.RunScriptWithIO(context.Background(), "flaky", &out, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "before")
	assert.NotContains(t, out.String(), "after")
}

func TestRunScript_UnknownName(t *testing.T) {
	t.Parallel()

	tasks := NewWith(config.Default(), &fakeExecer{})

	var out bytes.Buffer
	err := tasks.RunScriptWithIO(context.Background(), "nope", &out, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown script")
}

func TestScriptNames_SortedStable(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("scripts:\n  zz: \"true\"\n  aa: \"true\"\n"))
	require.NoError(t, err)
	tasks := NewWith(cfg, &fakeExecer{})

	assert.Equal(t, []string{"aa", "zz"}, tasks.ScriptNames())
}

// notFoundExecer simulates a PATH lookup failure for one binary.
type notFoundExecer struct {
	fakeExecer
	notFound string
}

func (e *notFoundExecer) Run(ctx context.Context, label, name string, args ...string) error {
	if name == e.notFound {
		e.calls = append(e.calls, e.format(name, args))
		return exec.ErrNotFound
	}
	return e.fakeExecer.Run(ctx, label, name, args...)
}
