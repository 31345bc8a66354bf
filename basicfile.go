// Copyright 2024 The diagrender Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package diagrender

import (
	"slices"
	"strings"
	"sync"
)

// BasicFileDB is a reference [FileDatabase] implementation backed by an
// in-memory map of file identifiers to source text.
//
// Columns are plain byte offsets from the start of the line: this package
// does not attempt grapheme- or rune-aware width handling, matching this
// renderer's explicit scope (Unicode width is out of scope for the core).
// Callers that need rune- or terminal-width-aware columns should provide
// their own [FileDatabase].
//
// The zero value is not usable; construct one with [NewBasicFileDB].
type BasicFileDB struct {
	files map[FileID]*basicFile
}

type basicFile struct {
	name string
	text string

	once sync.Once
	// lineIndex[i] is the byte offset of the start of line i (0-indexed).
	// It always has at least one entry (0), even for an empty file.
	lineIndex []int
}

// NewBasicFileDB constructs an empty file database.
func NewBasicFileDB() *BasicFileDB {
	return &BasicFileDB{files: make(map[FileID]*basicFile)}
}

// AddFile registers a file under the given identifier, replacing any file
// previously registered under the same id.
func (db *BasicFileDB) AddFile(id FileID, name, text string) {
	db.files[id] = &basicFile{name: name, text: text}
}

func (db *BasicFileDB) get(id FileID) (*basicFile, error) {
	f, ok := db.files[id]
	if !ok {
		return nil, &FileError{Kind: FileMissing, File: id}
	}
	return f, nil
}

func (f *basicFile) lines() []int {
	f.once.Do(func() {
		next := 0
		text := f.text
		for {
			nl := strings.IndexByte(text, '\n')
			if nl == -1 {
				break
			}
			f.lineIndex = append(f.lineIndex, next)
			next += nl + 1
			text = text[nl+1:]
		}
		f.lineIndex = append(f.lineIndex, next)
	})
	return f.lineIndex
}

// Name implements [FileDatabase].
func (db *BasicFileDB) Name(id FileID) (string, error) {
	f, err := db.get(id)
	if err != nil {
		return "", err
	}
	return f.name, nil
}

// Source implements [FileDatabase].
func (db *BasicFileDB) Source(id FileID) (string, error) {
	f, err := db.get(id)
	if err != nil {
		return "", err
	}
	return f.text, nil
}

// LineIndex implements [FileDatabase].
func (db *BasicFileDB) LineIndex(id FileID, offset int) (int, error) {
	f, err := db.get(id)
	if err != nil {
		return 0, err
	}
	if offset < 0 || offset > len(f.text) {
		return 0, &FileError{Kind: InvalidOffset, File: id}
	}

	lines := f.lines()
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}
	return line, nil
}

// LineRange implements [FileDatabase].
func (db *BasicFileDB) LineRange(id FileID, lineIndex int) (start, end int, err error) {
	f, err := db.get(id)
	if err != nil {
		return 0, 0, err
	}

	lines := f.lines()
	if lineIndex < 0 || lineIndex >= len(lines) {
		return 0, 0, &FileError{Kind: IndexOutOfBounds, File: id}
	}

	start = lines[lineIndex]
	if lineIndex+1 < len(lines) {
		end = lines[lineIndex+1]
	} else {
		end = len(f.text)
	}
	return start, end, nil
}

// LineNumber implements [FileDatabase].
func (db *BasicFileDB) LineNumber(id FileID, lineIndex int) (int, error) {
	f, err := db.get(id)
	if err != nil {
		return 0, err
	}
	lines := f.lines()
	if lineIndex < 0 || lineIndex >= len(lines) {
		return 0, &FileError{Kind: IndexOutOfBounds, File: id}
	}
	return lineIndex + 1, nil
}

// Location implements [FileDatabase].
func (db *BasicFileDB) Location(id FileID, offset int) (Location, error) {
	lineIndex, err := db.LineIndex(id, offset)
	if err != nil {
		return Location{}, err
	}
	start, _, err := db.LineRange(id, lineIndex)
	if err != nil {
		return Location{}, err
	}
	return Location{LineNumber: lineIndex + 1, ColumnNumber: offset - start + 1}, nil
}

// LineCount implements [FileDatabase].
func (db *BasicFileDB) LineCount(id FileID) (int, error) {
	f, err := db.get(id)
	if err != nil {
		return 0, err
	}
	return len(f.lines()), nil
}

var _ FileDatabase = (*BasicFileDB)(nil)
