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

package patch_test

import (
	"fmt"

	"github.com/walteh/patchrc/pkg/patch"
)

func ExampleRuleSet_Apply() {
	rules := []patch.Rule{
		{
			Name:    "greeting",
			Pattern: `Hello`,
			Replace: "Hi",
		},
		{
			Name:    "subject",
			Pattern: `World`,
			Replace: "Universe",
		},
	}

	set, err := patch.Compile(rules)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	result := set.Apply("Hello World!")

	fmt.Printf("Original: %s\n", result.Original)
	fmt.Printf("Modified: %s\n", result.Modified)
	fmt.Printf("Changes: %d\n", result.Replacements)
	fmt.Printf("Was Modified: %v\n", result.Changed)

	// Output:
	// Original: Hello World!
	// Modified: Hi Universe!
	// Changes: 2
	// Was Modified: true
}

func ExampleCompile() {
	_, err := patch.Compile([]patch.Rule{
		{Name: "ok", Pattern: `foo`, Replace: "bar"},
		{Name: "broken", Pattern: `(foo`, Replace: "bar"},
	})
	fmt.Printf("Compile error: %v\n", err)

	// Output:
	// Compile error: rule 1 (broken): compiling pattern: error parsing regexp: missing closing ): `(foo`
}
