// Package dashboard runs a fixed suite of check commands concurrently,
// rendering an interactive view when stdout is a terminal and plain
// streamed output otherwise.
package dashboard

import (
	"bufio"
	"context"
	"errors"
	"os/exec"
	"sync"
	"time"
)

// TaskStatus represents runtime state.
type TaskStatus int

const (
	TaskPending TaskStatus = iota
	TaskRunning
	TaskSuccess
	TaskFailed
)

const maxBufferedLines = 10000

// TaskSpec declares one check command.
type TaskSpec struct {
	Group   string // header grouping in the UI
	Name    string // display name
	Command string // shell command line
}

// Task holds the execution state of one spec.
type Task struct {
	Spec       TaskSpec
	Status     TaskStatus
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time

	mu     sync.Mutex
	output []string
}

// TaskUpdate describes a runtime change streamed to the renderer.
type TaskUpdate struct {
	Index    int
	Status   TaskStatus
	Line     string
	ExitCode int
}

// StartTasks launches all specs concurrently and streams updates until
// every task finishes, then closes the channel.
func StartTasks(ctx context.Context, specs []TaskSpec) ([]*Task, <-chan TaskUpdate) {
	updates := make(chan TaskUpdate)
	tasks := make([]*Task, len(specs))

	var wg sync.WaitGroup
	wg.Add(len(specs))
	for i, spec := range specs {
		tasks[i] = &Task{Spec: spec, Status: TaskPending, ExitCode: -1}
		go runTask(ctx, i, tasks[i], updates, &wg)
	}

	go func() {
		wg.Wait()
		close(updates)
	}()

	return tasks, updates
}

func runTask(ctx context.Context, index int, task *Task, updates chan<- TaskUpdate, wg *sync.WaitGroup) {
	defer wg.Done()

	cmd := exec.CommandContext(ctx, "sh", "-c", task.Spec.Command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		finishTask(index, task, updates, 1, err.Error())
		return
	}
	cmd.Stderr = cmd.Stdout

	task.StartedAt = time.Now()
	task.Status = TaskRunning
	updates <- TaskUpdate{Index: index, Status: TaskRunning}

	if err := cmd.Start(); err != nil {
		finishTask(index, task, updates, 1, err.Error())
		return
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		task.appendLine(line)
		updates <- TaskUpdate{Index: index, Status: TaskRunning, Line: line}
	}

	waitErr := cmd.Wait()
	task.FinishedAt = time.Now()
	if waitErr != nil {
		task.Status = TaskFailed
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			task.ExitCode = exitErr.ExitCode()
		} else {
			task.ExitCode = 1
		}
	} else {
		task.Status = TaskSuccess
		task.ExitCode = 0
	}
	updates <- TaskUpdate{Index: index, Status: task.Status, ExitCode: task.ExitCode}
}

// finishTask marks a task failed before it produced output.
func finishTask(index int, task *Task, updates chan<- TaskUpdate, code int, msg string) {
	task.Status = TaskFailed
	task.ExitCode = code
	task.FinishedAt = time.Now()
	if msg != "" {
		task.appendLine(msg)
	}
	updates <- TaskUpdate{Index: index, Status: TaskFailed, Line: msg, ExitCode: code}
}

func (t *Task) appendLine(line string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.output = append(t.output, line)
	if len(t.output) > maxBufferedLines {
		t.output = t.output[len(t.output)-maxBufferedLines:]
	}
}

// Output returns a copy of the captured output lines.
func (t *Task) Output() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.output))
	copy(out, t.output)
	return out
}

// Duration returns elapsed time.
func (t *Task) Duration() time.Duration {
	if t.StartedAt.IsZero() {
		return 0
	}
	if t.FinishedAt.IsZero() {
		return time.Since(t.StartedAt)
	}
	return t.FinishedAt.Sub(t.StartedAt)
}
