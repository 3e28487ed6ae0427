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

package run

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/patchrc/pkg/document"
	"github.com/walteh/patchrc/pkg/patch"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 📊 Status is the outcome for a single file
type Status int

const (
	StatusUnknown Status = iota
	StatusUpdated
	StatusUnchanged
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Entry records what happened to one file
type Entry struct {
	Path         string
	Status       Status
	Err          error
	Replacements int
	Diff         string // set only with Options.Diff
}

// 📋 Report summarises one run. It lives only for the run.
type Report struct {
	Entries []Entry
	Total   int
	Updated int
	DryRun  bool
}

// Failed returns the number of files that errored
func (r *Report) Failed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Status == StatusFailed {
			n++
		}
	}
	return n
}

// Err returns a non-nil error when at least one file failed
func (r *Report) Err() error {
	if n := r.Failed(); n > 0 {
		return errors.Errorf("%d of %d files failed", n, r.Total)
	}
	return nil
}

// 🔧 Options tune a run
type Options struct {
	// DryRun computes results without writing any file
	DryRun bool

	// Diff attaches a line diff of each change to its entry
	Diff bool

	// Concurrency above 1 processes files in parallel. Entries are still
	// reported in input order.
	Concurrency int

	// OnEntry is called once per file, in input order
	OnEntry func(Entry)
}

// 🏃 Run patches every file with rules. Per-file failures are recorded in the
// report and never stop the batch; the returned error is only set when the
// context is cancelled.
func Run(ctx context.Context, store *document.Store, files []string, rules *patch.RuleSet, opts Options) (*Report, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(files)).Int("rules", rules.Len()).Bool("dry_run", opts.DryRun).Msg("starting run")

	report := &Report{
		Entries: make([]Entry, len(files)),
		Total:   len(files),
		DryRun:  opts.DryRun,
	}

	if opts.Concurrency > 1 {
		if err := runAsync(ctx, store, files, rules, opts, report.Entries); err != nil {
			return nil, err
		}
		for _, e := range report.Entries {
			emit(opts, e)
		}
	} else {
		for i, path := range files {
			if err := ctx.Err(); err != nil {
				return nil, errors.Errorf("run cancelled: %w", err)
			}
			report.Entries[i] = processFile(ctx, store, path, rules, opts)
			emit(opts, report.Entries[i])
		}
	}

	for _, e := range report.Entries {
		if e.Status == StatusUpdated {
			report.Updated++
		}
	}

	logger.Debug().Int("updated", report.Updated).Int("total", report.Total).Int("failed", report.Failed()).Msg("run complete")

	return report, nil
}

func emit(opts Options, e Entry) {
	if opts.OnEntry != nil {
		opts.OnEntry(e)
	}
}

// ⚡ runAsync fills entries in parallel. Files share no state, so each
// goroutine owns exactly one slot.
func runAsync(ctx context.Context, store *document.Store, files []string, rules *patch.RuleSet, opts Options, entries []Entry) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			entries[i] = processFile(gctx, store, path, rules, opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return errors.Errorf("run cancelled: %w", err)
	}
	return nil
}

// processFile is the per-file error boundary: load, apply, store
func processFile(ctx context.Context, store *document.Store, path string, rules *patch.RuleSet, opts Options) Entry {
	logger := zerolog.Ctx(ctx).With().Str("path", path).Logger()
	entry := Entry{Path: path}

	fail := func(err error) Entry {
		logger.Debug().Err(err).Msg("processing file failed")
		entry.Status = StatusFailed
		entry.Err = err
		return entry
	}

	doc, err := store.Load(ctx, path)
	if err != nil {
		return fail(err)
	}

	res := rules.ApplyFile(path, doc.Content)
	entry.Replacements = res.Replacements

	if !res.Changed {
		entry.Status = StatusUnchanged
		return entry
	}

	if opts.Diff {
		entry.Diff = LineDiff(res.Original, res.Modified)
	}

	if !opts.DryRun {
		doc.Content = res.Modified
		if _, err := store.Save(ctx, doc); err != nil {
			return fail(err)
		}
	}

	logger.Debug().Int("replacements", res.Replacements).Interface("counts", res.Counts).Msg("file patched")

	entry.Status = StatusUpdated
	return entry
}
