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

package preset

import (
	"regexp"
	"strings"

	"github.com/walteh/patchrc/pkg/patch"
)

// JSX attribute grammar used to walk an <Input> tag one attribute at a time.
// A ">" inside a quoted value or an expression such as (e) => ... never ends
// the tag. Tags the grammar cannot tokenize are left untouched.
const (
	jsxExpr = `\{(?:[^{}]|\{[^{}]*\})*\}`
	jsxAttr = `(?:[A-Za-z_$][\w$:.-]*(?:\s*=\s*(?:"[^"]*"|'[^']*'|` + jsxExpr + `))?|\{\.\.\.[^{}]*\})`

	// classBoundary is what may surround a class token inside a className value
	classBoundary = `[\s"'{}` + "`" + `]`
)

// inputClassRules are ordered: the insert rule relies on the append rule
// having run, and the dedupe rule cleans up after both.
//
// The tag name must be followed by whitespace or the end of the tag so that
// <InputOTP> and friends never match.
func inputClassRules() []patch.Rule {
	marker := regexp.QuoteMeta(Marker)

	return []patch.Rule{
		{
			Name:        "append-input-class",
			Pattern:     `(<Input(?:\s+` + jsxAttr + `)*?\s+className=")([^"]*)(")`,
			Unless:      Marker,
			UnlessGroup: 2,
			Func: func(g []string) string {
				classes := strings.TrimSpace(g[2] + " " + Marker)
				return g[1] + classes + g[3]
			},
		},
		{
			Name:        "insert-input-class",
			Pattern:     `(<Input(?:\s+` + jsxAttr + `)*)(\s*/?>)`,
			Replace:     `${1} className="` + Marker + `"${2}`,
			Unless:      "className=",
			UnlessGroup: 1,
		},
		{
			Name:    "dedupe-input-class",
			Pattern: `(^|` + classBoundary + `)` + marker + `(?:\s+` + marker + `)+(` + classBoundary + `|$)`,
			Replace: `${1}` + Marker + `${2}`,
		},
	}
}
