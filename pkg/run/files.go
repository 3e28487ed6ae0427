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
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

// 🔍 ExpandFiles turns the configured file list into concrete paths relative
// to root. Glob patterns are expanded with doublestar; plain paths are kept
// as-is, even when missing, so they show up as per-file errors. Duplicates
// keep their first position. root must be absolute.
func ExpandFiles(ctx context.Context, fs afero.Fs, root string, patterns []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)
	fsys := afero.NewIOFS(afero.NewBasePathFs(fs, root))

	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		pattern = filepath.ToSlash(strings.TrimPrefix(pattern, "./"))
		if !isGlob(pattern) {
			add(pattern)
			continue
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			logger.Warn().Str("pattern", pattern).Msg("pattern matched no files")
		}
		for _, m := range matches {
			add(m)
		}
	}

	return out, nil
}

func isGlob(p string) bool {
	return strings.ContainsAny(p, "*?[{")
}
