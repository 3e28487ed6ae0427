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

// Package preset holds the built-in rule sets.
package preset

import (
	"sort"
	"strings"

	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
)

const (
	InputClass = "input-class"
	PDFExport  = "pdf-export"

	// Marker is the class inserted on every patched Input element
	Marker = "input-client"
)

// 📦 Preset is a named, ordered rule list
type Preset struct {
	Name        string
	Description string
	Rules       []patch.Rule
}

var registry = map[string]Preset{}

func register(p Preset) {
	// fail at init rather than at the first run
	patch.MustCompile(p.Rules)
	registry[p.Name] = p
}

func init() {
	register(Preset{
		Name:        InputClass,
		Description: "add the " + Marker + " class to <Input> elements",
		Rules:       inputClassRules(),
	})
	register(Preset{
		Name:        PDFExport,
		Description: "replace inline contract PDF/PNG export code with the shared export utility",
		Rules:       pdfExportRules(),
	})
}

// Names returns the registered preset names, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get looks up a preset by name
func Get(name string) (Preset, bool) {
	p, ok := registry[name]
	return p, ok
}

// Resolve concatenates the rules of the named presets, in argument order
func Resolve(names ...string) ([]patch.Rule, error) {
	var rules []patch.Rule
	for _, name := range names {
		p, ok := Get(name)
		if !ok {
			return nil, errors.Errorf("unknown preset %q (available: %s)", name, strings.Join(Names(), ", "))
		}
		rules = append(rules, p.Rules...)
	}
	return rules, nil
}
