// Package tasks implements the project recipes driven by the
// Magefile: lint, format, test, bench, check, release, and the
// user-defined scripts from .indexset.yaml.
//
// Every external tool invocation goes through the Execer seam so the
// recipe command sequences stay testable without spawning processes.
package tasks
