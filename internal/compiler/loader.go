/*
Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com)

This program is free software: you can redistribute it and/or modify it
under the terms of the GNU Affero General Public License as published
by the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful, but
WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
Affero General Public License for more details.

You should have received a copy of the GNU Affero General Public
License along with this program. If not, see
<http://www.gnu.org/licenses/>.
*/
package compiler

import (
	"os"
	"path/filepath"

	radix "github.com/armon/go-radix"
)

// canonicalize reduces path to the absolute, cleaned form the import
// trie keys on, so the same file reached through two different
// relative paths is recognized as one entry.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// fileRecord marks a canonical path as compiled and says where its
// text buffer landed in sourceRegistry.texts.
type fileRecord struct {
	index int
}

// sourceRegistry owns every source buffer the compiler has read, plus
// the canonical-path trie used to skip a file that was already
// imported.
type sourceRegistry struct {
	texts     []string
	filenames []string
	paths     *radix.Tree
}

func newSourceRegistry() *sourceRegistry {
	return &sourceRegistry{paths: radix.New()}
}

// imported reports whether the canonical path has already been
// loaded.
func (r *sourceRegistry) imported(canonicalPath string) bool {
	_, ok := r.paths.Get(canonicalPath)
	return ok
}

// load reads path, appends the loader's trailing newline-and-NUL
// sentinel (guaranteeing the scanner always sees a final flush
// boundary), and registers the buffer under its canonical path.
// Returns the buffer's index into texts/filenames.
func (r *sourceRegistry) load(path string) (int, error) {
	canon, err := canonicalize(path)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(canon)
	if err != nil {
		return 0, err
	}

	buf := make([]byte, 0, len(data)+2)
	buf = append(buf, data...)
	buf = append(buf, '\n', 0)

	idx := len(r.texts)
	r.texts = append(r.texts, string(buf))
	r.filenames = append(r.filenames, canon)
	r.paths.Insert(canon, &fileRecord{index: idx})
	return idx, nil
}
