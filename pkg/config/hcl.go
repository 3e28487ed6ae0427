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
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/walteh/patchrc/pkg/preset"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL. Rules are labelled blocks:
//
//	rule "name" {
//	  pattern = "..."
//	  replace = "$${1}x"
//	}
//
// Template references in replace must escape the dollar sign as $$.
func (p *HCLParser) Parse(ctx context.Context, data []byte, filename string) (*Config, error) {
	if filename == "" {
		filename = "config.hcl"
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"marker": cty.StringVal(preset.Marker),
		},
	}

	type hclRule struct {
		Name        string   `hcl:"name,label"`
		Pattern     string   `hcl:"pattern"`
		Replace     string   `hcl:"replace,optional"`
		Literal     bool     `hcl:"literal,optional"`
		Unless      string   `hcl:"unless,optional"`
		UnlessGroup int      `hcl:"unless_group,optional"`
		Limit       int      `hcl:"limit,optional"`
		Files       []string `hcl:"files,optional"`
	}

	type hclConfig struct {
		Root        string    `hcl:"root,optional"`
		Files       []string  `hcl:"files,optional"`
		Presets     []string  `hcl:"presets,optional"`
		Concurrency int       `hcl:"concurrency,optional"`
		Rules       []hclRule `hcl:"rule,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalCtx, &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	// Convert to model
	cfg := &Config{
		Root:        hclCfg.Root,
		Files:       hclCfg.Files,
		Presets:     hclCfg.Presets,
		Concurrency: hclCfg.Concurrency,
	}
	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, Rule{
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

	return cfg, nil
}
