package tasks

import (
	"context"
	"fmt"
)

// Format rewrites all source files with gofmt.
func (t *Tasks) Format(ctx context.Context) error {
	if err := t.exec.Run(ctx, "Go Format", "go", "fmt", "./..."); err != nil {
		return fmt.Errorf("format failed: %w", err)
	}
	return nil
}
