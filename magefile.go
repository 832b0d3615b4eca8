//go:build mage

package main

import (
	"context"

	"github.com/magefile/mage/mg"

	"github.com/svalins/indexset/internal/tasks"
)

// Default target - run the quality checks
var Default = Check

// Lint runs go vet, the gofmt check, and golangci-lint.
func Lint(ctx context.Context) error {
	return tasks.New().Lint(ctx)
}

// Format rewrites all source files with gofmt.
func Format(ctx context.Context) error {
	return tasks.New().Format(ctx)
}

// Test runs the test suite.
func Test(ctx context.Context) error {
	return tasks.New().Test(ctx)
}

// Race runs the test suite under the race detector.
func Race(ctx context.Context) error {
	return tasks.New().TestRace(ctx)
}

// Benchmark runs the benchmarks.
func Benchmark(ctx context.Context) error {
	return tasks.New().Bench(ctx)
}

// Check runs all quality checks concurrently under the dashboard.
func Check(ctx context.Context) error {
	tasks.PrintH1Header("indexset Quality Checks")
	return tasks.New().Check(ctx)
}

// CI runs the full verification pipeline in order.
func CI(ctx context.Context) error {
	mg.SerialCtxDeps(ctx, Lint, Test, Benchmark)
	return nil
}

// Release lints, commits, tags, signs, and pushes a release.
// The signing key is read from the env var named in .indexset.yaml
// (default SIGNING_KEY).
func Release(ctx context.Context, tag string) error {
	tasks.PrintH2Header("Release " + tag)
	return tasks.New().Release(ctx, tag)
}

// Run executes a named script from .indexset.yaml.
func Run(ctx context.Context, name string) error {
	return tasks.New().RunScript(ctx, name)
}
