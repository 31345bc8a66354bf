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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCalculateLineSingleSinglelineWithLabel covers the simplest case: one
// Both incidence with a label, no continuing annotations.
func TestCalculateLineSingleSinglelineWithLabel(t *testing.T) {
	t.Parallel()

	db := NewBasicFileDB()
	db.AddFile("f", "test", "test file contents\n")

	onLine := []LineAnnotation{
		{Annotation: Annotation{Style: Primary, File: "f", Start: 5, End: 9, Label: "test label"}, Index: 0},
	}

	rows, err := calculateLine(db, "f", 0, onLine, nil)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	row0 := rows[0]
	var kinds []PrimitiveKind
	for _, p := range row0 {
		kinds = append(kinds, p.Kind)
	}
	assert.Contains(t, kinds, Start)
	assert.Contains(t, kinds, ConnectingSingleline)
	assert.Contains(t, kinds, End)

	var foundLabel bool
	for _, row := range rows {
		for _, p := range row {
			if p.Kind == Label {
				foundLabel = true
				assert.Equal(t, "test label", p.Text)
			}
		}
	}
	assert.True(t, foundLabel, "expected a Label primitive somewhere in the laid-out rows")
}

func TestCalculateLineTwoOverlappingSinglelines(t *testing.T) {
	t.Parallel()

	db := NewBasicFileDB()
	db.AddFile("f", "test", "let main = 23;\n")

	onLine := []LineAnnotation{
		{Annotation: Annotation{Style: Primary, File: "f", Start: 4, End: 13, Label: "something"}, Index: 0},
		{Annotation: Annotation{Style: Secondary, File: "f", Start: 8, End: 11, Label: "something else"}, Index: 1},
	}

	rows, err := calculateLine(db, "f", 0, onLine, nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3, "two labeled overlapping annotations need at least 3 rows")

	var labels []string
	for _, row := range rows {
		for _, p := range row {
			if p.Kind == Label {
				labels = append(labels, p.Text)
			}
		}
	}
	assert.ElementsMatch(t, []string{"something", "something else"}, labels)
}

func TestCalculateLineRejectsNonTouchingAnnotation(t *testing.T) {
	t.Parallel()

	db := NewBasicFileDB()
	db.AddFile("f", "test", "line one\nline two\n")

	onLine := []LineAnnotation{
		// Starts and ends on line 1, handed to line 0: touches neither.
		{Annotation: Annotation{Style: Primary, File: "f", Start: 9, End: 13}, Index: 0},
	}

	_, err := calculateLine(db, "f", 0, onLine, nil)
	require.Error(t, err)
	_, ok := IsLayoutBug(err)
	assert.True(t, ok)
}

func TestMaxNestingComputesOverlapDepth(t *testing.T) {
	t.Parallel()

	// Three ranges by line: 0–5 and 1–6 are multi-line and overlap; the
	// third starts and ends on line 2, so it is single-line and not counted.
	startLine := []int{0, 1, 2}
	endLine := []int{5, 6, 2}
	assert.Equal(t, 2, maxNesting(startLine, endLine))
}
