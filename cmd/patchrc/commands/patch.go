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
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/walteh/patchrc/cmd/patchrc/opts"
	"github.com/walteh/patchrc/pkg/config"
	"github.com/walteh/patchrc/pkg/document"
	"github.com/walteh/patchrc/pkg/report"
	"github.com/walteh/patchrc/pkg/run"
	"gitlab.com/tozd/go/errors"
)

// ErrChangesPending is returned by check when at least one file would change
var ErrChangesPending = errors.Base("files would be changed")

// addPatchFlags adds the flags shared by apply and check
func addPatchFlags(cmd *cobra.Command, p *opts.PatchOpts) {
	cmd.Flags().StringVar(&p.Root, "root", "", "project root the file list is relative to (overrides config)")
	cmd.Flags().StringSliceVarP(&p.Presets, "preset", "p", nil, "built-in preset to apply, repeatable (overrides config presets)")
	cmd.Flags().BoolVar(&p.Diff, "diff", false, "print a diff of every change")
	cmd.Flags().IntVarP(&p.Concurrency, "concurrency", "j", 0, "files processed in parallel (overrides config)")
}

// loadConfig reads the config file, or builds one from flags and args when
// no config file is in play
func loadConfig(ctx context.Context, root *opts.RootOpts, p *opts.PatchOpts, args []string) (*config.Config, error) {
	logger := zerolog.Ctx(ctx)

	var cfg *config.Config

	exists, err := afero.Exists(root.Fs, root.ConfigFile)
	if err != nil {
		return nil, errors.Errorf("checking config file: %w", err)
	}

	if exists || root.ConfigSet {
		cfg, err = config.Load(ctx, root.Fs, root.ConfigFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
	} else {
		logger.Debug().Str("config", root.ConfigFile).Msg("no config file, using flags")
		cfg = &config.Config{}
	}

	if len(args) > 0 {
		cfg.Files = args
	}
	if len(p.Presets) > 0 {
		cfg.Presets = p.Presets
	}
	if p.Root != "" {
		cfg.Root = p.Root
	}
	if p.Concurrency > 0 {
		cfg.Concurrency = p.Concurrency
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// patchFiles runs the configured rules over the configured files and prints
// the report. Config and rule errors abort before any file is read.
func patchFiles(ctx context.Context, root *opts.RootOpts, p *opts.PatchOpts, args []string) (*run.Report, error) {
	logger := zerolog.Ctx(ctx)

	cfg, err := loadConfig(ctx, root, p, args)
	if err != nil {
		return nil, err
	}

	rules, err := cfg.RuleSet()
	if err != nil {
		return nil, err
	}

	projectRoot, err := filepath.Abs(cfg.ResolvedRoot())
	if err != nil {
		return nil, errors.Errorf("resolving root: %w", err)
	}

	files, err := run.ExpandFiles(ctx, root.Fs, projectRoot, cfg.Files)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", projectRoot).
		Strs("rules", rules.Names()).
		Int("files", len(files)).
		Msg("patching files")

	printer := report.New(root.Stdout, p.DryRun)
	rep, err := run.Run(ctx, document.NewStore(root.Fs, projectRoot), files, rules, run.Options{
		DryRun:      p.DryRun,
		Diff:        p.Diff,
		Concurrency: cfg.Concurrency,
		OnEntry:     printer.Entry,
	})
	if err != nil {
		return nil, err
	}
	printer.Summary(rep)

	return rep, nil
}
