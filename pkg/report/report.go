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

package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/walteh/patchrc/pkg/run"
)

// 🎨 status markers
const (
	MarkerChanged   = "✓"
	MarkerUnchanged = "○"
	MarkerError     = "✗"
)

// 🖨️ Printer writes the per-file status lines and the run summary
type Printer struct {
	console io.Writer
	dryRun  bool
	mu      sync.Mutex
}

// 🏭 New creates a printer writing to console
func New(console io.Writer, dryRun bool) *Printer {
	return &Printer{
		console: console,
		dryRun:  dryRun,
	}
}

// FormatEntry renders the single status line for a file
func (p *Printer) FormatEntry(e run.Entry) string {
	switch e.Status {
	case run.StatusUpdated:
		verb := "Updated"
		if p.dryRun {
			verb = "Would update"
		}
		return fmt.Sprintf("%s %s: %s", color.New(color.FgGreen).Sprint(MarkerChanged), verb, e.Path)
	case run.StatusFailed:
		return fmt.Sprintf("%s Error processing %s: %v", color.New(color.FgRed).Sprint(MarkerError), e.Path, e.Err)
	default:
		return fmt.Sprintf("%s No changes: %s", color.New(color.Faint).Sprint(MarkerUnchanged), e.Path)
	}
}

// Entry prints the status line for a file, followed by its diff if any
func (p *Printer) Entry(e run.Entry) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.console, p.FormatEntry(e))

	if e.Diff == "" {
		return
	}
	for _, line := range strings.SplitAfter(strings.TrimSuffix(e.Diff, "\n"), "\n") {
		line = strings.TrimSuffix(line, "\n")
		switch {
		case strings.HasPrefix(line, "+"):
			line = color.New(color.FgGreen).Sprint(line)
		case strings.HasPrefix(line, "-"):
			line = color.New(color.FgRed).Sprint(line)
		default:
			line = color.New(color.Faint).Sprint(line)
		}
		fmt.Fprintf(p.console, "    %s\n", line)
	}
}

// FormatSummary renders the closing line of a run
func (p *Printer) FormatSummary(r *run.Report) string {
	verb := "Updated"
	if p.dryRun {
		verb = "Would update"
	}
	return fmt.Sprintf("%s %d/%d files", verb, r.Updated, r.Total)
}

// Summary prints a blank line and the summary
func (p *Printer) Summary(r *run.Report) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintln(p.console)
	fmt.Fprintln(p.console, p.FormatSummary(r))
}
