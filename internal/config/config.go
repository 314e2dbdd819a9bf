package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file written by init.
const FileName = ".sanctify.toml"

// candidates are searched in order in each directory.
var candidates = []string{FileName, ".sanctify.yaml", ".sanctify.yml", ".sanctify.json"}

var ErrConfigExists = errors.New("configuration file already exists")

type CustomRule struct {
	Name    string `toml:"name" yaml:"name" json:"name"`
	Pattern string `toml:"pattern" yaml:"pattern" json:"pattern"`
}

type IgnoreRule struct {
	Rule   string `toml:"rule" yaml:"rule" json:"rule"`
	Path   string `toml:"path" yaml:"path" json:"path"`
	Reason string `toml:"reason,omitempty" yaml:"reason,omitempty" json:"reason,omitempty"`
}

type Config struct {
	IgnorePaths          []string     `toml:"ignore_paths" yaml:"ignore_paths" json:"ignore_paths"`
	EnabledRules         []string     `toml:"enabled_rules" yaml:"enabled_rules" json:"enabled_rules"`
	LedgerLimit          int          `toml:"ledger_limit" yaml:"ledger_limit" json:"ledger_limit"`
	ApproachingThreshold float64      `toml:"approaching_threshold" yaml:"approaching_threshold" json:"approaching_threshold"`
	StrictMode           bool         `toml:"strict_mode" yaml:"strict_mode" json:"strict_mode"`
	CustomRules          []CustomRule `toml:"custom_rules" yaml:"custom_rules" json:"custom_rules"`
	Ignore               []IgnoreRule `toml:"ignore,omitempty" yaml:"ignore,omitempty" json:"ignore,omitempty"`
	SeverityThreshold    string       `toml:"severity_threshold,omitempty" yaml:"severity_threshold,omitempty" json:"severity_threshold,omitempty"`
}

func Default() Config {
	return Config{
		IgnorePaths:          []string{"target", ".git"},
		EnabledRules:         []string{"auth_gaps", "panics", "arithmetic", "ledger_size", "events"},
		LedgerLimit:          64000,
		ApproachingThreshold: 0.8,
		StrictMode:           false,
		CustomRules: []CustomRule{
			{Name: "no_unsafe_block", Pattern: `unsafe\s*\{`},
			{Name: "no_mem_forget", Pattern: `std::mem::forget`},
		},
	}
}

// RuleEnabled reports whether id is listed in EnabledRules.
func (c Config) RuleEnabled(id string) bool {
	return slices.Contains(c.EnabledRules, id)
}

// Ignored reports whether a path component matches IgnorePaths.
func (c Config) Ignored(name string) bool {
	return slices.Contains(c.IgnorePaths, name)
}

func (c Config) Validate() error {
	if c.LedgerLimit <= 0 {
		return fmt.Errorf("ledger_limit must be positive, got %d", c.LedgerLimit)
	}
	if c.ApproachingThreshold <= 0 || c.ApproachingThreshold >= 1 {
		return fmt.Errorf("approaching_threshold must be in (0,1), got %g", c.ApproachingThreshold)
	}
	return nil
}

// Load searches startDir and its parents for a configuration file. It returns the
// defaults and an empty path when none is found.
func Load(startDir string) (Config, string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return Default(), "", err
	}
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		for _, name := range candidates {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				cfg, err := LoadFile(candidate)
				return cfg, candidate, err
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Default(), "", nil
}

// LoadFile decodes one configuration file over the defaults, choosing the format by
// extension.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &cfg)
	case ".json":
		err = json.Unmarshal(b, &cfg)
	default:
		err = toml.Unmarshal(b, &cfg)
	}
	if err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write stores cfg as dir/.sanctify.toml. An existing file is kept unless force is set.
func Write(dir string, cfg Config, force bool) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return path, ErrConfigExists
	}
	b, err := Encode(cfg)
	if err != nil {
		return path, err
	}
	return path, os.WriteFile(path, b, 0o644)
}
