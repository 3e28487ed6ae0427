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

package patch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// ReplaceFunc builds the replacement for a single match. groups[0] is the
// whole match, groups[i] the i-th submatch ("" when it did not participate).
type ReplaceFunc func(groups []string) string

// 🔄 Rule defines a single pattern substitution
type Rule struct {
	// Name identifies the rule in errors and counts
	Name string

	// Pattern is an RE2 expression. Use inline flags like (?s) for spans
	// across lines.
	Pattern string

	// Replace is an expansion template ($1, ${name}) unless Literal is set
	Replace string

	// Literal inserts Replace verbatim, without template expansion
	Literal bool

	// Func, when set, builds the replacement and takes precedence over Replace
	Func ReplaceFunc

	// Unless skips a match whose submatch UnlessGroup already contains this
	// text. It is how marker-inserting rules stay idempotent.
	Unless      string
	UnlessGroup int

	// Limit caps the number of replacements per pass. Zero means no limit.
	Limit int

	// Files restricts the rule to paths matching one of these doublestar
	// globs. Empty applies the rule everywhere.
	Files []string
}

// PatternError reports a rule that cannot be compiled. It is a defect in the
// rule set, not in the text being patched.
type PatternError struct {
	Rule  string
	Index int
	Err   error
}

func (e *PatternError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("rule %d: %v", e.Index, e.Err)
	}
	return fmt.Sprintf("rule %d (%s): %v", e.Index, e.Rule, e.Err)
}

func (e *PatternError) Unwrap() error {
	return e.Err
}

type compiledRule struct {
	Rule
	re *regexp.Regexp
}

func compileRule(i int, r Rule) (*compiledRule, error) {
	fail := func(err error) error {
		return &PatternError{Rule: r.Name, Index: i, Err: err}
	}

	if r.Name == "" {
		return nil, fail(errors.New("name is required"))
	}
	if r.Pattern == "" {
		return nil, fail(errors.New("pattern is required"))
	}

	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return nil, fail(errors.Errorf("compiling pattern: %w", err))
	}

	if r.UnlessGroup < 0 || r.UnlessGroup > re.NumSubexp() {
		return nil, fail(errors.Errorf("unless_group %d out of range, pattern has %d groups", r.UnlessGroup, re.NumSubexp()))
	}
	if r.Limit < 0 {
		return nil, fail(errors.Errorf("limit must not be negative, got %d", r.Limit))
	}
	for _, glob := range r.Files {
		if !doublestar.ValidatePattern(glob) {
			return nil, fail(errors.Errorf("invalid file glob %q", glob))
		}
	}

	return &compiledRule{Rule: r, re: re}, nil
}

// appliesTo reports whether the rule's file filter admits path
func (c *compiledRule) appliesTo(path string) bool {
	if len(c.Files) == 0 || path == "" {
		return true
	}
	for _, glob := range c.Files {
		if ok, _ := doublestar.Match(glob, path); ok {
			return true
		}
	}
	return false
}

// skip reports whether the Unless guard rejects match m
func (c *compiledRule) skip(text string, m []int) bool {
	if c.Unless == "" {
		return false
	}
	lo, hi := m[2*c.UnlessGroup], m[2*c.UnlessGroup+1]
	if lo < 0 {
		return false
	}
	return strings.Contains(text[lo:hi], c.Unless)
}

func (c *compiledRule) replacement(text string, m []int) string {
	switch {
	case c.Func != nil:
		groups := make([]string, len(m)/2)
		for g := range groups {
			if m[2*g] >= 0 {
				groups[g] = text[m[2*g]:m[2*g+1]]
			}
		}
		return c.Func(groups)
	case c.Literal:
		return c.Replace
	default:
		return string(c.re.ExpandString(nil, c.Replace, text, m))
	}
}
