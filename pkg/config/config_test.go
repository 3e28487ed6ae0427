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
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "writing config file should succeed")
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		config      string
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name:     "valid_yaml",
			filename: ".patchrc.yaml",
			config: `
root: web
files:
  - client/src/pages/SignIn.tsx
  - client/src/pages/*.tsx
presets:
  - input-class
rules:
  - name: swap
    pattern: '(\w+)=(\w+)'
    replace: '${2}=${1}'
    files: ["**/*.tsx"]
  - name: once
    pattern: 'x'
    replace: 'y'
    literal: true
    limit: 1
    unless: 'z'
    unless_group: 0
concurrency: 4
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "web", cfg.Root, "root should match")
				assert.Equal(t, []string{"client/src/pages/SignIn.tsx", "client/src/pages/*.tsx"}, cfg.Files)
				assert.Equal(t, []string{"input-class"}, cfg.Presets)
				require.Len(t, cfg.Rules, 2, "should have 2 rules")
				assert.Equal(t, "${2}=${1}", cfg.Rules[0].Replace)
				assert.Equal(t, []string{"**/*.tsx"}, cfg.Rules[0].Files)
				assert.True(t, cfg.Rules[1].Literal)
				assert.Equal(t, 1, cfg.Rules[1].Limit)
				assert.Equal(t, "z", cfg.Rules[1].Unless)
				assert.Equal(t, 4, cfg.Concurrency)
				assert.Equal(t, filepath.Join(filepath.Dir(cfg.Location()), "web"), cfg.ResolvedRoot())
			},
		},
		{
			name:     "minimal_yaml_defaults",
			filename: "config.yml",
			config: `
files: [a.tsx]
presets: [pdf-export]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, ".", cfg.Root, "root should default")
				assert.Equal(t, 1, cfg.Concurrency, "concurrency should default")
				assert.Empty(t, cfg.Rules)
			},
		},
		{
			name:     "valid_json",
			filename: ".patchrc.json",
			config: `{
  "files": ["a.tsx"],
  "rules": [{"name": "r", "pattern": "a", "replace": "b"}]
}`,
			check: func(t *testing.T, cfg *Config) {
				require.Len(t, cfg.Rules, 1)
				assert.Equal(t, "r", cfg.Rules[0].Name)
			},
		},
		{
			name:     "valid_hcl",
			filename: ".patchrc.hcl",
			config: `
root        = "/abs/project"
files       = ["a.tsx", "b.tsx"]
presets     = ["input-class"]
concurrency = 2

rule "swap" {
  pattern = "(\\w+)=(\\w+)"
  replace = "$${2}=$${1}"
  files   = ["**/*.tsx"]
}

rule "strip-marker" {
  pattern      = "x"
  unless       = marker
  unless_group = 0
  limit        = 3
  literal      = true
}
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/abs/project", cfg.ResolvedRoot())
				assert.Equal(t, []string{"a.tsx", "b.tsx"}, cfg.Files)
				assert.Equal(t, 2, cfg.Concurrency)
				require.Len(t, cfg.Rules, 2)
				assert.Equal(t, "swap", cfg.Rules[0].Name)
				assert.Equal(t, `(\w+)=(\w+)`, cfg.Rules[0].Pattern)
				assert.Equal(t, "${2}=${1}", cfg.Rules[0].Replace)
				assert.Equal(t, "input-client", cfg.Rules[1].Unless)
				assert.Equal(t, 3, cfg.Rules[1].Limit)
			},
		},
		{
			name:     "bare_patchrc_yaml",
			filename: ".patchrc",
			config: `
files: [a.tsx]
presets: [input-class]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"input-class"}, cfg.Presets)
			},
		},
		{
			name:     "bare_patchrc_hcl",
			filename: ".patchrc",
			config: `
files   = ["a.tsx"]
presets = ["input-class"]
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"a.tsx"}, cfg.Files)
			},
		},
		{
			name:        "unknown_yaml_field",
			filename:    ".patchrc.yaml",
			config:      "files: [a]\npresets: [input-class]\nasync: true\n",
			errContains: "parsing YAML",
		},
		{
			name:        "unknown_json_field",
			filename:    ".patchrc.json",
			config:      `{"files": ["a"], "presets": ["input-class"], "nope": 1}`,
			errContains: "parsing JSON",
		},
		{
			name:        "missing_files",
			filename:    ".patchrc.yaml",
			config:      "presets: [input-class]\n",
			errContains: "files is required",
		},
		{
			name:        "missing_rules",
			filename:    ".patchrc.yaml",
			config:      "files: [a.tsx]\n",
			errContains: "at least one preset or rule is required",
		},
		{
			name:        "empty_file_entry",
			filename:    ".patchrc.yaml",
			config:      "files: ['']\npresets: [input-class]\n",
			errContains: "files[0] is empty",
		},
		{
			name:        "negative_concurrency",
			filename:    ".patchrc.yaml",
			config:      "files: [a]\npresets: [input-class]\nconcurrency: -1\n",
			errContains: "concurrency must not be negative",
		},
		{
			name:        "unsupported_extension",
			filename:    "config.txt",
			config:      "files: [a]",
			errContains: "no parser found",
		},
	}

	ctx := zerolog.New(os.Stderr).WithContext(context.Background())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.filename, tt.config)

			cfg, err := Load(ctx, afero.NewOsFs(), path)
			if tt.errContains != "" {
				require.Error(t, err, "Load should return error")
				assert.Contains(t, err.Error(), tt.errContains, "error should contain expected message")
				return
			}

			require.NoError(t, err, "Load should succeed")
			assert.Equal(t, path, cfg.Location())
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), afero.NewOsFs(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoad_FromFs(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/work/.patchrc.yaml", []byte("files: [a.tsx]\npresets: [input-class]\n"), 0o644))

	cfg, err := Load(context.Background(), fs, "/work/.patchrc.yaml")
	require.NoError(t, err, "config should be read from the given filesystem")
	assert.Equal(t, []string{"a.tsx"}, cfg.Files)
	assert.Equal(t, "/work", cfg.ResolvedRoot())

	_, err = Load(context.Background(), afero.NewOsFs(), "/work/.patchrc.yaml")
	require.Error(t, err, "the os filesystem does not hold the file")
}

func TestConfig_RuleSet(t *testing.T) {
	t.Run("presets_then_rules", func(t *testing.T) {
		cfg := &Config{
			Files:   []string{"a.tsx"},
			Presets: []string{"input-class"},
			Rules:   []Rule{{Name: "custom", Pattern: `foo`, Replace: "bar"}},
		}
		require.NoError(t, cfg.Validate())

		set, err := cfg.RuleSet()
		require.NoError(t, err)
		assert.Equal(t, []string{"append-input-class", "insert-input-class", "dedupe-input-class", "custom"}, set.Names())
	})

	t.Run("pattern_error", func(t *testing.T) {
		cfg := &Config{
			Files: []string{"a.tsx"},
			Rules: []Rule{{Name: "broken", Pattern: `(`}},
		}
		_, err := cfg.RuleSet()
		require.Error(t, err)

		var perr *patch.PatternError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "broken", perr.Rule)
	})

	t.Run("unknown_preset", func(t *testing.T) {
		cfg := &Config{Files: []string{"a.tsx"}, Presets: []string{"nope"}}
		_, err := cfg.RuleSet()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown preset "nope"`)
	})
}

// 🧪 TestParserSelection tests parser selection by file extension
func TestParserSelection(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Parser
	}{
		{name: "yaml_file", filename: "config.yaml", want: &YAMLParser{}},
		{name: "yml_file", filename: "config.yml", want: &YAMLParser{}},
		{name: "json_file", filename: "config.JSON", want: &JSONParser{}},
		{name: "hcl_file", filename: "config.hcl", want: &HCLParser{}},
		{name: "unknown_extension", filename: "config.txt", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetParser(tt.filename)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.IsType(t, tt.want, got)
		})
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{Files: []string{"a", "b"}, Presets: []string{"input-class"}, Root: "."}
	assert.Equal(t, "2 file patterns, presets=[input-class], 0 rules, root=.", cfg.String())
}

func TestLoad_Examples(t *testing.T) {
	ctx := context.Background()

	cfg, err := Load(ctx, afero.NewOsFs(), filepath.Join("..", "..", "examples", "input-class.patchrc.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.Files, 9)
	assert.Equal(t, filepath.Join("..", ".."), cfg.ResolvedRoot())

	set, err := cfg.RuleSet()
	require.NoError(t, err)
	assert.Equal(t, 3, set.Len())

	cfg, err = Load(ctx, afero.NewOsFs(), filepath.Join("..", "..", "examples", "pdf-export.patchrc.hcl"))
	require.NoError(t, err)
	assert.Equal(t, []string{"client/src/pages/RentalContracts.tsx"}, cfg.Files)
	assert.Equal(t, []string{"pdf-export"}, cfg.Presets)
}
