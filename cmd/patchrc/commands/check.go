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
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd(root *opts.RootOpts) *cobra.Command {
	p := &opts.PatchOpts{}

	cmd := &cobra.Command{
		Use:   "check [files...]",
		Short: "Report files the rules would still change",
		Long: `Check is a dry run of apply that fails when any file would change.
Run it after apply to confirm the rules are idempotent on your tree.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "check").Logger().WithContext(cmd.Context())

			p.DryRun = true
			rep, err := patchFiles(ctx, root, p, args)
			if err != nil {
				return err
			}
			if err := rep.Err(); err != nil {
				return err
			}
			if rep.Updated > 0 {
				return errors.Errorf("%w: %d of %d", ErrChangesPending, rep.Updated, rep.Total)
			}
			return nil
		},
	}

	addPatchFlags(cmd, p)

	return cmd
}
