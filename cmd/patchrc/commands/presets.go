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

package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/patch"
	"github.com/walteh/patchrc/pkg/preset"
	"gitlab.com/tozd/go/errors"
)

// NewPresetsCmd creates a new presets command
func NewPresetsCmd(root *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets and their rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data := pterm.TableData{{"PRESET", "RULE", "REPLACEMENT", "DESCRIPTION"}}
			for _, name := range preset.Names() {
				p, _ := preset.Get(name)
				for i, r := range p.Rules {
					desc := ""
					if i == 0 {
						desc = p.Description
					}
					data = append(data, []string{name, r.Name, replacementKind(r), desc})
				}
			}

			if err := pterm.DefaultTable.WithHasHeader().WithWriter(root.Stdout).WithData(data).Render(); err != nil {
				return errors.Errorf("rendering presets: %w", err)
			}
			return nil
		},
	}

	return cmd
}

func replacementKind(r patch.Rule) string {
	kind := "template"
	switch {
	case r.Func != nil:
		kind = "func"
	case r.Literal:
		kind = "literal"
	}
	if r.Limit > 0 {
		kind += fmt.Sprintf(" (max %d)", r.Limit)
	}
	return kind
}
