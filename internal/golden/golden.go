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

// Package golden provides a framework for writing file-based golden tests
// over rendered diagnostic fixtures.
//
// The primary entry-point is [Corpus]. Define a new corpus in an ordinary
// Go test body and call [Corpus.Run] to execute it.
//
// Corpora can be "refreshed" to update the golden files with freshly
// rendered output instead of comparing against them: run the test with
// the environment variable named by [Corpus.Refresh] set to a non-empty
// value.
package golden

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// Corpus describes a file-based test data corpus: a directory of input
// fixtures, each rendered by a test function and compared against a
// checked-in golden file.
type Corpus struct {
	// Root is the directory of input fixtures, relative to the directory
	// of the file that calls [Corpus.Run].
	Root string

	// Extension is the file extension (without a dot) of an input
	// fixture, e.g. "yaml".
	Extension string

	// Refresh is the name of an environment variable; when set to a
	// non-empty value, Run overwrites golden files with fresh output
	// instead of comparing against them.
	Refresh string
}

// Run executes every fixture in the corpus. render is called once per
// fixture with the fixture's contents and must return the text to compare
// against (or write to, in refresh mode) a sibling "<fixture>.golden"
// file.
func (c Corpus) Run(t *testing.T, render func(t *testing.T, path, input string) string) {
	root := c.Root

	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.HasSuffix(p, "."+c.Extension) {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("golden: error walking %q: %v", root, err)
	}

	refreshing := c.Refresh != "" && os.Getenv(c.Refresh) != ""

	for _, path := range paths {
		path := path
		name, _ := filepath.Rel(root, path)
		t.Run(filepath.ToSlash(name), func(t *testing.T) {
			t.Parallel()

			input, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("golden: error reading %q: %v", path, err)
			}

			got := render(t, path, string(input))
			goldenPath := path + ".golden"

			if refreshing {
				if err := os.WriteFile(goldenPath, []byte(got), 0o600); err != nil {
					t.Fatalf("golden: error writing %q: %v", goldenPath, err)
				}
				return
			}

			want, err := os.ReadFile(goldenPath)
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				t.Fatalf("golden: error reading %q: %v", goldenPath, err)
			}

			if diff := CompareAndDiff(got, string(want)); diff != "" {
				t.Errorf("output mismatch for %q:\n%s", goldenPath, diff)
			}
		})
	}
}

// CompareAndDiff returns a unified diff between got and want, or the empty
// string if they are equal.
func CompareAndDiff(got, want string) string {
	if got == want {
		return ""
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}
