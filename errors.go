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
	"bytes"
	"errors"
)

// AsError renders a report to a plain, unstyled string and wraps it as an
// [error], for callers that want to propagate a whole report (e.g. "file
// too big to parse" plus its notes) up a Go error-returning call chain
// instead of printing it directly.
type AsError struct {
	Report *Report
	FileDB FileDatabase
}

// Error implements [error].
func (e *AsError) Error() string {
	var buf bytes.Buffer
	_ = Render(NewPlainSink(&buf), StyleConfig{}, e.FileDB, Config{SurroundingLines: 2}, e.Report)
	return buf.String()
}

// IsFileError reports whether err is, or wraps, a [FileError], and returns
// it.
func IsFileError(err error) (*FileError, bool) {
	var fe *FileError
	ok := errors.As(err, &fe)
	return fe, ok
}

// IsLayoutBug reports whether err is, or wraps, a [LayoutBug], and returns
// it. A true result indicates a defect in this package, not in the
// diagnostic or file database it was given.
func IsLayoutBug(err error) (*LayoutBug, bool) {
	var bug *LayoutBug
	ok := errors.As(err, &bug)
	return bug, ok
}
