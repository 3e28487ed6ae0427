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

package opts

import (
	"io"

	"github.com/spf13/afero"
)

// DefaultConfigFile is read when --config is not given
const DefaultConfigFile = ".patchrc.yaml"

// RootOpts contains shared options used by all commands
type RootOpts struct {
	ConfigFile string
	Debug      bool

	// ConfigSet is true when --config was passed explicitly
	ConfigSet bool

	Stdout io.Writer
	Stderr io.Writer
	Fs     afero.Fs
}

// PatchOpts are the flags shared by apply and check
type PatchOpts struct {
	Root        string
	Presets     []string
	DryRun      bool
	Diff        bool
	Concurrency int
}
