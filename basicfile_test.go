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

package diagrender_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagrender/diagrender"
)

func TestBasicFileDBLocation(t *testing.T) {
	t.Parallel()

	db := diagrender.NewBasicFileDB()
	db.AddFile("f", "test", "foo\nbar\nbaz\n")

	tests := []struct {
		offset int
		want   diagrender.Location
	}{
		{0, diagrender.Location{LineNumber: 1, ColumnNumber: 1}},
		{3, diagrender.Location{LineNumber: 1, ColumnNumber: 4}},
		{4, diagrender.Location{LineNumber: 2, ColumnNumber: 1}},
		{11, diagrender.Location{LineNumber: 3, ColumnNumber: 4}},
		{12, diagrender.Location{LineNumber: 4, ColumnNumber: 1}},
	}

	for _, test := range tests {
		loc, err := db.Location("f", test.offset)
		require.NoError(t, err)
		assert.Equal(t, test.want, loc, "offset %d", test.offset)
	}
}

func TestBasicFileDBMissingFile(t *testing.T) {
	t.Parallel()

	db := diagrender.NewBasicFileDB()
	_, err := db.Source("nope")
	require.Error(t, err)

	fe, ok := diagrender.IsFileError(err)
	require.True(t, ok)
	assert.Equal(t, diagrender.FileMissing, fe.Kind)
}

func TestBasicFileDBLineRange(t *testing.T) {
	t.Parallel()

	db := diagrender.NewBasicFileDB()
	db.AddFile("f", "test", "abc\nde\n")

	start, end, err := db.LineRange("f", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, end)

	start, end, err = db.LineRange("f", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, start)
	assert.Equal(t, 7, end)

	_, _, err = db.LineRange("f", 5)
	require.Error(t, err)
	fe, ok := diagrender.IsFileError(err)
	require.True(t, ok)
	assert.Equal(t, diagrender.IndexOutOfBounds, fe.Kind)
}
