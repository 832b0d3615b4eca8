package tasks

import (
	"context"
	"fmt"
)

// Test runs the test suite.
func (t *Tasks) Test(ctx context.Context) error {
	if err := t.exec.Run(ctx, "Go Test", "go", "test", "./..."); err != nil {
		return fmt.Errorf("tests failed: %w", err)
	}
	return nil
}

// TestRace runs the test suite under the race detector.
func (t *Tasks) TestRace(ctx context.Context) error {
	if err := t.exec.Run(ctx, "Race Detector", "go", "test", "-race", "./..."); err != nil {
		return fmt.Errorf("race detector found issues: %w", err)
	}
	return nil
}
