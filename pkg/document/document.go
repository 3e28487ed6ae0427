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
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotFound is returned when a listed path does not exist
	ErrNotFound = errors.Base("file not found")

	// ErrDecode is returned when a file is not valid UTF-8 text
	ErrDecode = errors.Base("file is not valid UTF-8 text")

	// ErrWrite is returned when the patched content cannot be stored
	ErrWrite = errors.Base("writing file")
)

// 📄 Document is a text file loaded fully into memory
type Document struct {
	// Path is the path relative to the store root, as configured
	Path string

	// Content is the current text
	Content string

	loaded string
	mode   os.FileMode
}

// Dirty reports whether Content differs from what was loaded
func (d *Document) Dirty() bool {
	return d.Content != d.loaded
}

// 💾 Store reads and writes whole documents under a root directory
type Store struct {
	fs   afero.Fs
	root string
}

// 🏭 NewStore creates a store rooted at root on fs
func NewStore(fs afero.Fs, root string) *Store {
	return &Store{
		fs:   fs,
		root: filepath.Clean(root),
	}
}

// Root returns the store root
func (s *Store) Root() string {
	return s.root
}

func (s *Store) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}

// Load reads the whole file at path
func (s *Store) Load(ctx context.Context, path string) (*Document, error) {
	abs := s.abs(path)

	info, err := s.fs.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, errors.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory", path)
	}

	data, err := afero.ReadFile(s.fs, abs)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return nil, errors.Errorf("%w: %s", ErrDecode, path)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(data)).Msg("loaded document")

	return &Document{
		Path:    path,
		Content: string(data),
		loaded:  string(data),
		mode:    info.Mode().Perm(),
	}, nil
}

// Save overwrites the file with the document content. Content identical to
// what was loaded is never written. Returns whether the file was written.
func (s *Store) Save(ctx context.Context, doc *Document) (bool, error) {
	if !doc.Dirty() {
		return false, nil
	}

	abs := s.abs(doc.Path)
	tmp := abs + ".patchrc.tmp"

	if err := afero.WriteFile(s.fs, tmp, []byte(doc.Content), doc.mode); err != nil {
		_ = s.fs.Remove(tmp)
		return false, errors.Errorf("%w %s: %s", ErrWrite, doc.Path, err.Error())
	}

	// rename over the original so a failed write never truncates it
	if err := s.fs.Rename(tmp, abs); err != nil {
		_ = s.fs.Remove(tmp)
		return false, errors.Errorf("%w %s: %s", ErrWrite, doc.Path, err.Error())
	}

	doc.loaded = doc.Content

	zerolog.Ctx(ctx).Debug().Str("path", doc.Path).Int("bytes", len(doc.Content)).Msg("saved document")

	return true, nil
}
