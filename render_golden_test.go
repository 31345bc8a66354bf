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

	"gopkg.in/yaml.v3"

	"github.com/diagrender/diagrender"
	"github.com/diagrender/diagrender/internal/golden"
)

// renderFixture is the on-disk shape of a full-diagnostic golden fixture:
// a single annotation-free diagnostic, rendered end to end.
type renderFixture struct {
	Severity string `yaml:"severity"`
	Tag      string `yaml:"tag"`
	Message  string `yaml:"message"`
}

// TestRenderGolden pins Render's output for whole-diagnostic scenarios
// against checked-in fixtures under testdata/golden/render.
func TestRenderGolden(t *testing.T) {
	corpus := golden.Corpus{Root: "testdata/golden/render", Extension: "yaml", Refresh: "DIAGRENDER_REFRESH_GOLDEN"}
	corpus.Run(t, func(t *testing.T, path, input string) string {
		var f renderFixture
		if err := yaml.Unmarshal([]byte(input), &f); err != nil {
			t.Fatalf("parsing fixture %q: %v", path, err)
		}

		sev := diagrender.SeverityError
		switch f.Severity {
		case "bug":
			sev = diagrender.SeverityBug
		case "warning":
			sev = diagrender.SeverityWarning
		case "note":
			sev = diagrender.SeverityNote
		case "help":
			sev = diagrender.SeverityHelp
		}

		var report diagrender.Report
		report.Add(diagrender.NewDiagnostic(sev, diagrender.WithTag(f.Tag), diagrender.Message("%s", f.Message)))

		var buf bytes.Buffer
		db := diagrender.NewBasicFileDB()
		if err := diagrender.Render(diagrender.NewPlainSink(&buf), diagrender.StyleConfig{}, db, diagrender.DefaultConfig(), &report); err != nil {
			t.Fatalf("Render: %v", err)
		}
		return buf.String()
	})
}
