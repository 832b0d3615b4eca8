package tasks

import (
	"context"
	"fmt"
)

// Bench runs the benchmarks. The -bench pattern comes from the
// project configuration, defaulting to everything.
func (t *Tasks) Bench(ctx context.Context) error {
	args := []string{"test", "-run=^$", "-bench=" + t.cfg.Bench.Pattern, "-benchmem", "./..."}
	if err := t.exec.Run(ctx, "Benchmarks", "go", args...); err != nil {
		return fmt.Errorf("benchmarks failed: %w", err)
	}
	return nil
}
