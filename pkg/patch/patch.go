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
	"path/filepath"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📊 Result contains the outcome of applying a rule set to one text
type Result struct {
	// Original is the text before any rule ran
	Original string

	// Modified is the fully transformed text, changed or not
	Modified string

	// Changed is true iff Modified differs from Original
	Changed bool

	// Replacements is the number of matches rewritten across all rules
	Replacements int

	// Counts holds the replacements made by each rule, by rule name
	Counts map[string]int
}

// 📚 RuleSet is an ordered list of compiled rules. It holds no state between
// applications and is safe for concurrent use.
type RuleSet struct {
	rules []*compiledRule
}

// 🏭 Compile validates and compiles rules in order. It fails on the first
// broken rule with a *PatternError; rules are never silently dropped.
func Compile(rules []Rule) (*RuleSet, error) {
	seen := make(map[string]int, len(rules))
	set := &RuleSet{rules: make([]*compiledRule, 0, len(rules))}

	for i, r := range rules {
		if prev, ok := seen[r.Name]; ok && r.Name != "" {
			return nil, &PatternError{Rule: r.Name, Index: i, Err: errors.Errorf("duplicate rule name, first used by rule %d", prev)}
		}
		seen[r.Name] = i

		c, err := compileRule(i, r)
		if err != nil {
			return nil, err
		}
		set.rules = append(set.rules, c)
	}

	return set, nil
}

// MustCompile is like Compile but panics on error. Meant for built-in rule
// sets.
func MustCompile(rules []Rule) *RuleSet {
	set, err := Compile(rules)
	if err != nil {
		panic(err)
	}
	return set
}

// Len returns the number of rules in the set
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Names returns the rule names in application order
func (s *RuleSet) Names() []string {
	names := make([]string, len(s.rules))
	for i, r := range s.rules {
		names[i] = r.Name
	}
	return names
}

// Apply runs every rule over text
func (s *RuleSet) Apply(text string) *Result {
	return s.ApplyFile("", text)
}

// ApplyFile runs the rules whose file filter admits path. Each rule sees the
// output of the previous one.
func (s *RuleSet) ApplyFile(path string, text string) *Result {
	result := &Result{
		Original: text,
		Counts:   make(map[string]int, len(s.rules)),
	}

	path = filepath.ToSlash(path)
	current := text
	for _, r := range s.rules {
		if !r.appliesTo(path) {
			continue
		}
		var n int
		current, n = r.apply(current)
		result.Counts[r.Name] += n
		result.Replacements += n
	}

	result.Modified = current
	result.Changed = current != text
	return result
}

// Apply compiles rules and applies them to text in one call
func Apply(text string, rules []Rule) (string, bool, error) {
	set, err := Compile(rules)
	if err != nil {
		return "", false, err
	}
	res := set.Apply(text)
	return res.Modified, res.Changed, nil
}

// apply makes one left-to-right pass. Matches never overlap and inserted
// text is not searched again.
func (c *compiledRule) apply(text string) (string, int) {
	matches := c.re.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))

	last, count := 0, 0
	for _, m := range matches {
		if c.Limit > 0 && count >= c.Limit {
			break
		}
		if c.skip(text, m) {
			continue
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(c.replacement(text, m))
		last = m[1]
		count++
	}

	if count == 0 {
		return text, 0
	}

	b.WriteString(text[last:])
	return b.String(), count
}
