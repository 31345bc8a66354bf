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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diagrender/diagrender"
)

func TestRenderHeaderOnly(t *testing.T) {
	t.Parallel()

	var report diagrender.Report
	report.Errorf(
		diagrender.WithTag("test/diagnostic_1"),
		diagrender.Message("Test message"),
	)

	var buf bytes.Buffer
	db := diagrender.NewBasicFileDB()
	err := diagrender.Render(
		diagrender.NewPlainSink(&buf), diagrender.StyleConfig{}, db, diagrender.DefaultConfig(), &report,
	)
	require.NoError(t, err)
	assert.Equal(t, "error[test/diagnostic_1]: Test message\n", buf.String())
}

func TestRenderSeparatesMultipleDiagnostics(t *testing.T) {
	t.Parallel()

	var report diagrender.Report
	report.Errorf(diagrender.Message("first"))
	report.Warnf(diagrender.Message("second"))

	var buf bytes.Buffer
	db := diagrender.NewBasicFileDB()
	err := diagrender.Render(
		diagrender.NewPlainSink(&buf), diagrender.StyleConfig{}, db, diagrender.DefaultConfig(), &report,
	)
	require.NoError(t, err)
	assert.Equal(t, "error: first\n\nwarning: second\n", buf.String())
}

func TestReportSortOrdersBySeverityDescending(t *testing.T) {
	t.Parallel()

	var report diagrender.Report
	report.Notef(diagrender.Message("a note"))
	report.Errorf(diagrender.Message("an error"))
	report.Warnf(diagrender.Message("a warning"))
	report.Sort()

	require.Len(t, report.Diagnostics, 3)
	assert.Equal(t, diagrender.SeverityError, report.Diagnostics[0].Severity)
	assert.Equal(t, diagrender.SeverityWarning, report.Diagnostics[1].Severity)
	assert.Equal(t, diagrender.SeverityNote, report.Diagnostics[2].Severity)
}
