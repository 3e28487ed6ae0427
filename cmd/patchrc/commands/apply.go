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
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
)

// NewApplyCmd creates a new apply command
func NewApplyCmd(root *opts.RootOpts) *cobra.Command {
	p := &opts.PatchOpts{}

	cmd := &cobra.Command{
		Use:   "apply [files...]",
		Short: "Apply patch rules to the configured files",
		Long: `Apply rewrites each file with the configured rules.
It will:
1. Load the config (or use --preset and the given files)
2. Compile every rule, aborting on a broken pattern
3. Patch each file, writing only files whose content changed
4. Print one status line per file and a summary

A file that cannot be read or written is reported and skipped; the command
exits non-zero if any file failed.`,
		Example: `  patchrc apply
  patchrc apply --preset input-class client/src/pages/SignIn.tsx
  patchrc apply --dry-run --diff`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "apply").Logger().WithContext(cmd.Context())

			rep, err := patchFiles(ctx, root, p, args)
			if err != nil {
				return err
			}
			return rep.Err()
		},
	}

	addPatchFlags(cmd, p)
	cmd.Flags().BoolVarP(&p.DryRun, "dry-run", "n", false, "report changes without writing files")

	return cmd
}
