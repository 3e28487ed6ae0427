// Package config loads the patchrc configuration: which files to patch and with
// which rules.
//
//	            +-------------+
//	            |   Config    |
//	            | files/rules |
//	            +------+------+
//	                   |
//	      +------------+------------+
//	      |            |            |
//	+-----+----+ +-----+----+ +-----+----+
//	|   YAML   | |   JSON   | |   HCL    |
//	|  Parser  | |  Parser  | |  Parser  |
//	+----------+ +----------+ +----------+
//
// 🎯 Purpose:
// - Replaces hard-coded file lists with an explicit, external list
// - Selects presets and declares custom rules
// - Validates and fills in defaults before any file is touched
//
// 🔄 Flow:
//  1. Load reads the file and picks a parser by extension
//  2. The parser decodes, rejecting unknown fields
//  3. Validate checks required fields and sets defaults
//  4. RuleSet resolves presets, appends custom rules and compiles them
//
// A bare .patchrc file is tried as YAML first and then as HCL.
//
// 🔍 Example (.patchrc.yaml):
//
//	root: .
//	files:
//	  - client/src/pages/SignIn.tsx
//	  - client/src/pages/**/Settings*.tsx
//	presets:
//	  - input-class
//	rules:
//	  - name: drop-legacy-class
//	    pattern: '\blegacy-input\s*'
//	    replace: ""
//
// An HCL config, where template references escape the dollar sign:
//
//	files   = ["client/src/pages/SignIn.tsx"]
//	presets = ["input-class"]
//
//	rule "swap" {
//	  pattern = "(\\w+)=(\\w+)"
//	  replace = "$${2}=$${1}"
//	}
//
// HCL configs can reference the inserted class name as the variable marker.
package config
