package tasks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrMissingSigningKey is returned when the signing key env var is
// unset or empty.
var ErrMissingSigningKey = errors.New("signing key not configured")

// ErrInvalidTag is returned for tags that are not vMAJOR.MINOR.PATCH.
var ErrInvalidTag = errors.New("invalid release tag")

var tagPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?$`)

// Release publishes a tagged release: lint, stage, commit, tag, sign
// the tag, then push commits, tag, and signature metadata, in that
// order. The first failing step aborts everything after it; there is
// no retry and no rollback beyond what git itself provides.
func (t *Tasks) Release(ctx context.Context, tag string) error {
	if !tagPattern.MatchString(tag) {
		return fmt.Errorf("%w: %q (want vMAJOR.MINOR.PATCH)", ErrInvalidTag, tag)
	}

	keyEnv := t.cfg.Release.KeyEnv
	key := os.Getenv(keyEnv)
	if key == "" {
		return fmt.Errorf("%w: set %s", ErrMissingSigningKey, keyEnv)
	}

	if err := t.Lint(ctx); err != nil {
		return err
	}

	remote := t.cfg.Release.Remote
	notesRef := "refs/notes/" + t.cfg.Release.NotesRef

	if err := t.exec.Run(ctx, "Stage changes", "git", "add", "-u"); err != nil {
		return fmt.Errorf("staging failed: %w", err)
	}
	if err := t.exec.Run(ctx, "Commit", "git", "commit", "-m", "Release "+tag); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	if err := t.exec.Run(ctx, "Tag", "git", "tag", tag); err != nil {
		return fmt.Errorf("tagging failed: %w", err)
	}

	if err := t.signTag(ctx, tag, key); err != nil {
		return err
	}

	if err := t.exec.Run(ctx, "Push commits", "git", "push", remote); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	if err := t.exec.Run(ctx, "Push tag", "git", "push", remote, tag); err != nil {
		return fmt.Errorf("tag push failed: %w", err)
	}
	if err := t.exec.Run(ctx, "Push signatures", "git", "push", remote, notesRef); err != nil {
		return fmt.Errorf("signature push failed: %w", err)
	}

	PrintSuccess("Released " + tag)
	return nil
}

// signTag signs the object the tag resolves to and attaches the
// signature as a git note, so verification material travels with the
// repository instead of the release artifacts.
func (t *Tasks) signTag(ctx context.Context, tag, key string) error {
	obj, err := t.exec.Output(ctx, "git", "rev-parse", tag)
	if err != nil {
		return fmt.Errorf("resolving tag failed: %w", err)
	}

	msgPath := filepath.Join(os.TempDir(), tag+".obj")
	sigPath := filepath.Join(os.TempDir(), tag+".sig")
	if err := os.WriteFile(msgPath, []byte(obj+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing tag object: %w", err)
	}
	defer os.Remove(msgPath)
	defer os.Remove(sigPath)

	signer := t.cfg.Release.Signer
	if err := t.exec.Run(ctx, "Sign tag", signer, "-S", "-s", key, "-m", msgPath, "-x", sigPath); err != nil {
		return fmt.Errorf("signing failed: %w", err)
	}

	notes := "--ref=" + t.cfg.Release.NotesRef
	if err := t.exec.Run(ctx, "Attach signature", "git", "notes", notes, "add", "-f", "-F", sigPath, tag); err != nil {
		return fmt.Errorf("attaching signature failed: %w", err)
	}
	return nil
}
