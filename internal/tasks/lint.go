package tasks

import (
	"context"
	"fmt"
	"strings"
)

// Lint runs the linters in a fixed order: go vet, the gofmt diff
// check, then golangci-lint. A missing golangci-lint binary degrades
// to a warning; everything else fails the recipe.
func (t *Tasks) Lint(ctx context.Context) error {
	if err := t.exec.Run(ctx, "Go Vet", "go", "vet", "./..."); err != nil {
		return fmt.Errorf("vet failed: %w", err)
	}

	if err := t.lintFormat(ctx); err != nil {
		return err
	}

	if err := t.exec.Run(ctx, "Golangci-lint", "golangci-lint", "run", "./..."); err != nil {
		if IsCommandNotFound(err) {
			PrintWarning("Golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
			return nil
		}
		return fmt.Errorf("golangci-lint failed: %w", err)
	}

	return nil
}

// lintFormat fails when gofmt would rewrite any file.
func (t *Tasks) lintFormat(ctx context.Context) error {
	out, err := t.exec.Output(ctx, "gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if files := strings.TrimSpace(out); files != "" {
		return fmt.Errorf("files need formatting (run 'mage format'): %s", strings.Join(strings.Fields(files), ", "))
	}
	return nil
}
