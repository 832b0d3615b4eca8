// Package config loads project tooling configuration from
// .indexset.yaml in the repository root. The file is optional; every
// field has a working default so a fresh checkout needs no setup
// beyond the signing key for releases.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project holds the tooling configuration.
type Project struct {
	Release struct {
		Remote   string `yaml:"remote"`    // git remote to push to
		Signer   string `yaml:"signer"`    // external signing command
		KeyEnv   string `yaml:"key_env"`   // env var naming the secret key
		NotesRef string `yaml:"notes_ref"` // notes ref holding tag signatures
	} `yaml:"release"`

	Bench struct {
		Pattern string `yaml:"pattern"` // go test -bench argument
	} `yaml:"bench"`

	// Scripts are extra named recipes run through the embedded shell.
	Scripts map[string]string `yaml:"scripts"`
}

// Default returns a Project with the stock settings.
func Default() *Project {
	cfg := &Project{}
	cfg.Release.Remote = "origin"
	cfg.Release.Signer = "signify"
	cfg.Release.KeyEnv = "SIGNING_KEY"
	cfg.Release.NotesRef = "signatures"
	cfg.Bench.Pattern = "."
	return cfg
}

// Load reads .indexset.yaml, falling back to defaults when the file is
// missing or unreadable.
func Load() *Project {
	cfg := Default()

	path := findConfigFile()
	if path == "" {
		return cfg
	}

	data, err := os.ReadFile(path) // #nosec G304 - config file path is controlled
	if err != nil {
		return cfg
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg
	}

	cfg.fillDefaults()
	return cfg
}

// Parse decodes configuration from raw yaml, for callers that already
// hold the bytes.
func Parse(data []byte) (*Project, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	return cfg, nil
}

// fillDefaults restores stock values for fields the yaml left empty.
func (p *Project) fillDefaults() {
	def := Default()
	if p.Release.Remote == "" {
		p.Release.Remote = def.Release.Remote
	}
	if p.Release.Signer == "" {
		p.Release.Signer = def.Release.Signer
	}
	if p.Release.KeyEnv == "" {
		p.Release.KeyEnv = def.Release.KeyEnv
	}
	if p.Release.NotesRef == "" {
		p.Release.NotesRef = def.Release.NotesRef
	}
	if p.Bench.Pattern == "" {
		p.Bench.Pattern = def.Bench.Pattern
	}
}

// findConfigFile looks for .indexset.yaml in the current and parent
// directories.
func findConfigFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		path := filepath.Join(dir, ".indexset.yaml")
		if _, err := os.Stat(path); err == nil {
			return path
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
