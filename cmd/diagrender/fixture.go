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

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/diagrender/diagrender"
)

// fixture is the on-disk shape of a YAML diagnostic fixture: a file to
// annotate plus one or more diagnostics to render against it.
type fixture struct {
	File        string        `yaml:"file"`
	Diagnostics []fixtureDiag `yaml:"diagnostics"`
}

type fixtureDiag struct {
	Severity    string            `yaml:"severity"`
	Tag         string            `yaml:"tag"`
	Message     string            `yaml:"message"`
	Annotations []fixtureAnnotate `yaml:"annotations"`
	Notes       []fixtureNote     `yaml:"notes"`
}

type fixtureAnnotate struct {
	Style string `yaml:"style"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Label string `yaml:"label"`
}

type fixtureNote struct {
	Severity string `yaml:"severity"`
	Message  string `yaml:"message"`
}

func loadFixture(path string) (*fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("diagrender: parsing fixture %q: %w", path, err)
	}
	return &f, nil
}

func parseSeverity(s string) diagrender.Severity {
	switch s {
	case "bug":
		return diagrender.SeverityBug
	case "warning":
		return diagrender.SeverityWarning
	case "note":
		return diagrender.SeverityNote
	case "help":
		return diagrender.SeverityHelp
	default:
		return diagrender.SeverityError
	}
}

func parseStyle(s string) diagrender.AnnotationStyle {
	if s == "secondary" {
		return diagrender.Secondary
	}
	return diagrender.Primary
}

func buildReport(f *fixture, fileID diagrender.FileID) *diagrender.Report {
	var report diagrender.Report
	for _, fd := range f.Diagnostics {
		opts := []diagrender.DiagnosticOption{diagrender.Message("%s", fd.Message)}
		if fd.Tag != "" {
			opts = append(opts, diagrender.WithTag(fd.Tag))
		}
		for _, a := range fd.Annotations {
			opts = append(opts, diagrender.Snippet(parseStyle(a.Style), fileID, a.Start, a.End, a.Label))
		}
		for _, n := range fd.Notes {
			opts = append(opts, diagrender.Notef(parseSeverity(n.Severity), "%s", n.Message))
		}
		report.Add(diagrender.NewDiagnostic(parseSeverity(fd.Severity), opts...))
	}
	return &report
}
