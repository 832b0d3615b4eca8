package dashboard

import (
	"context"
	"fmt"
	"io"
	"time"
)

// RunStream executes the specs without a TUI, prefixing each output
// line with its task name. Returns the worst exit code.
func RunStream(ctx context.Context, specs []TaskSpec, w io.Writer) int {
	tasks, updates := StartTasks(ctx, specs)

	for update := range updates {
		task := tasks[update.Index]
		switch update.Status {
		case TaskRunning:
			if update.Line != "" {
				fmt.Fprintf(w, "[%s] %s\n", task.Spec.Name, update.Line)
			} else {
				fmt.Fprintf(w, "[%s] started\n", task.Spec.Name)
			}
		case TaskSuccess:
			fmt.Fprintf(w, "[%s] ok (%s)\n", task.Spec.Name, task.Duration().Round(10*time.Millisecond))
		case TaskFailed:
			fmt.Fprintf(w, "[%s] FAILED exit %d\n", task.Spec.Name, update.ExitCode)
		}
	}

	code := 0
	for _, task := range tasks {
		if task.Status == TaskFailed && task.ExitCode != 0 {
			code = task.ExitCode
			if code < 0 {
				code = 1
			}
		}
	}
	return code
}
