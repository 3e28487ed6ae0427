// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/preset"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte, filename string) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule is a patch rule as written in a config file
type Rule struct {
	Name        string   `json:"name" yaml:"name"`
	Pattern     string   `json:"pattern" yaml:"pattern"`
	Replace     string   `json:"replace,omitempty" yaml:"replace,omitempty"`
	Literal     bool     `json:"literal,omitempty" yaml:"literal,omitempty"`
	Unless      string   `json:"unless,omitempty" yaml:"unless,omitempty"`
	UnlessGroup int      `json:"unless_group,omitempty" yaml:"unless_group,omitempty"`
	Limit       int      `json:"limit,omitempty" yaml:"limit,omitempty"`
	Files       []string `json:"files,omitempty" yaml:"files,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Root        string   `json:"root,omitempty" yaml:"root,omitempty"`               // Project root, relative to the config file
	Files       []string `json:"files" yaml:"files"`                                 // Paths or doublestar globs
	Presets     []string `json:"presets,omitempty" yaml:"presets,omitempty"`         // Built-in rule sets, applied first
	Rules       []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`             // Custom rules, applied after presets
	Concurrency int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // Files processed in parallel

	location string
}

// 🎯 Load loads the configuration from a file on fs
func Load(ctx context.Context, fs afero.Fs, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	cfg, err := parse(ctx, data, path)
	if err != nil {
		return nil, err
	}

	cfg.location = path

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")

	return cfg, nil
}

// parse picks a parser by extension. A bare .patchrc may be YAML or HCL.
func parse(ctx context.Context, data []byte, path string) (*Config, error) {
	if filepath.Base(path) == ".patchrc" || filepath.Ext(path) == ".patchrc" {
		cfg, yerr := (&YAMLParser{}).Parse(ctx, data, path)
		if yerr == nil {
			return cfg, nil
		}
		cfg, herr := (&HCLParser{}).Parse(ctx, data, path)
		if herr == nil {
			return cfg, nil
		}
		return nil, errors.Errorf("failed to parse %s as YAML (%v) or HCL: %w", path, yerr, herr)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data, path)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid and fills in defaults
func (cfg *Config) Validate() error {
	if len(cfg.Files) == 0 {
		return errors.Errorf("files is required")
	}
	if len(cfg.Presets) == 0 && len(cfg.Rules) == 0 {
		return errors.Errorf("at least one preset or rule is required")
	}
	for i, f := range cfg.Files {
		if strings.TrimSpace(f) == "" {
			return errors.Errorf("files[%d] is empty", i)
		}
	}
	if cfg.Concurrency < 0 {
		return errors.Errorf("concurrency must not be negative")
	}

	if cfg.Root == "" {
		cfg.Root = "."
	}
	cfg.Root = filepath.Clean(cfg.Root)
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 1
	}

	return nil
}

// ResolvedRoot returns the project root. A relative root is taken relative to
// the directory of the config file it was loaded from.
func (cfg *Config) ResolvedRoot() string {
	if filepath.IsAbs(cfg.Root) || cfg.location == "" {
		return cfg.Root
	}
	return filepath.Join(filepath.Dir(cfg.location), cfg.Root)
}

// Location returns the path the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🧩 PatchRules returns preset rules followed by custom rules
func (cfg *Config) PatchRules() ([]patch.Rule, error) {
	rules, err := preset.Resolve(cfg.Presets...)
	if err != nil {
		return nil, errors.Errorf("resolving presets: %w", err)
	}
	for _, r := range cfg.Rules {
		rules = append(rules, patch.Rule{
			Name:        r.Name,
			Pattern:     r.Pattern,
			Replace:     r.Replace,
			Literal:     r.Literal,
			Unless:      r.Unless,
			UnlessGroup: r.UnlessGroup,
			Limit:       r.Limit,
			Files:       r.Files,
		})
	}
	return rules, nil
}

// RuleSet compiles PatchRules. A broken rule surfaces as *patch.PatternError.
func (cfg *Config) RuleSet() (*patch.RuleSet, error) {
	rules, err := cfg.PatchRules()
	if err != nil {
		return nil, err
	}
	set, err := patch.Compile(rules)
	if err != nil {
		return nil, errors.Errorf("compiling rules: %w", err)
	}
	return set, nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%d file patterns, presets=%v, %d rules, root=%s", len(cfg.Files), cfg.Presets, len(cfg.Rules), cfg.Root)
}
