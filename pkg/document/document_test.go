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

package document

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestStore_Load(t *testing.T) {
	ctx := context.Background()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/proj/a.tsx", []byte("héllo ✓"), 0o600))
	require.NoError(t, afero.WriteFile(fs, "/proj/bin.dat", []byte{0xff, 0xfe, 0x00}, 0o644))
	require.NoError(t, fs.MkdirAll("/proj/dir", 0o755))

	store := NewStore(fs, "/proj")

	t.Run("valid_text", func(t *testing.T) {
		doc, err := store.Load(ctx, "a.tsx")
		require.NoError(t, err)
		assert.Equal(t, "a.tsx", doc.Path)
		assert.Equal(t, "héllo ✓", doc.Content)
		assert.False(t, doc.Dirty())
	})

	t.Run("missing_file", func(t *testing.T) {
		_, err := store.Load(ctx, "missing.tsx")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), "missing.tsx")
	})

	t.Run("invalid_utf8", func(t *testing.T) {
		_, err := store.Load(ctx, "bin.dat")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDecode))
	})

	t.Run("directory", func(t *testing.T) {
		_, err := store.Load(ctx, "dir")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is a directory")
	})
}

func TestStore_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("unchanged_is_not_written", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/proj/a.tsx", []byte("same"), 0o644))
		store := NewStore(fs, "/proj")

		doc, err := store.Load(ctx, "a.tsx")
		require.NoError(t, err)

		// a read-only view proves no write is attempted
		ro := NewStore(afero.NewReadOnlyFs(fs), "/proj")
		written, err := ro.Save(ctx, doc)
		require.NoError(t, err)
		assert.False(t, written)
	})

	t.Run("changed_is_overwritten", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/proj/a.tsx", []byte("old content"), 0o600))
		store := NewStore(fs, "/proj")

		doc, err := store.Load(ctx, "a.tsx")
		require.NoError(t, err)
		doc.Content = "new"

		written, err := store.Save(ctx, doc)
		require.NoError(t, err)
		assert.True(t, written)
		assert.False(t, doc.Dirty())

		data, err := afero.ReadFile(fs, "/proj/a.tsx")
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))

		info, err := fs.Stat("/proj/a.tsx")
		require.NoError(t, err)
		assert.Equal(t, "-rw-------", info.Mode().Perm().String())

		exists, err := afero.Exists(fs, "/proj/a.tsx.patchrc.tmp")
		require.NoError(t, err)
		assert.False(t, exists, "temp file should be gone")
	})

	t.Run("write_failure", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "/proj/a.tsx", []byte("old"), 0o644))
		ro := NewStore(afero.NewReadOnlyFs(fs), "/proj")

		doc, err := ro.Load(ctx, "a.tsx")
		require.NoError(t, err)
		doc.Content = "new"

		written, err := ro.Save(ctx, doc)
		require.Error(t, err)
		assert.False(t, written)
		assert.True(t, errors.Is(err, ErrWrite))

		data, err := afero.ReadFile(fs, "/proj/a.tsx")
		require.NoError(t, err)
		assert.Equal(t, "old", string(data), "original must be left untouched")
	})
}

func TestStore_AbsolutePath(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/elsewhere/b.tsx", []byte("x"), 0o644))
	store := NewStore(fs, "/proj")

	doc, err := store.Load(context.Background(), "/elsewhere/b.tsx")
	require.NoError(t, err)
	assert.Equal(t, "x", doc.Content)
	assert.Equal(t, "/proj", store.Root())
}
