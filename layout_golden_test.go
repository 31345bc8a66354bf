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
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/diagrender/diagrender/internal/golden"
)

// layoutFixture is the on-disk shape of a line-layout-core golden fixture:
// one source line plus the annotations touching it.
type layoutFixture struct {
	Source      string                  `yaml:"source"`
	Annotations []layoutFixtureAnnotate `yaml:"annotations"`
}

type layoutFixtureAnnotate struct {
	Style string `yaml:"style"`
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Label string `yaml:"label"`
}

// TestCalculateLineGolden pins calculateLine's row output for the line
// layout core scenarios against checked-in fixtures, one file per
// scenario under testdata/golden/layout.
func TestCalculateLineGolden(t *testing.T) {
	corpus := golden.Corpus{Root: "testdata/golden/layout", Extension: "yaml", Refresh: "DIAGRENDER_REFRESH_GOLDEN"}
	corpus.Run(t, func(t *testing.T, path, input string) string {
		var f layoutFixture
		if err := yaml.Unmarshal([]byte(input), &f); err != nil {
			t.Fatalf("parsing fixture %q: %v", path, err)
		}

		db := NewBasicFileDB()
		db.AddFile("f", "f", f.Source+"\n")

		onLine := make([]LineAnnotation, len(f.Annotations))
		for i, a := range f.Annotations {
			style := Primary
			if a.Style == "secondary" {
				style = Secondary
			}
			onLine[i] = LineAnnotation{
				Annotation: Annotation{Style: style, File: "f", Start: a.Start, End: a.End, Label: a.Label},
				Index:      i,
			}
		}

		rows, err := calculateLine(db, "f", 0, onLine, nil)
		if err != nil {
			t.Fatalf("calculateLine: %v", err)
		}
		return formatRows(rows)
	})
}

// formatRows renders laid-out rows as a stable, human-readable dump for
// golden comparison; it is not used outside tests.
func formatRows(rows [][]Primitive) string {
	var b strings.Builder
	for i, row := range rows {
		fmt.Fprintf(&b, "row%d:", i)
		for _, p := range row {
			switch p.Kind {
			case Start:
				fmt.Fprintf(&b, " Start(col=%d)", p.Col)
			case End:
				fmt.Fprintf(&b, " End(col=%d)", p.Col)
			case ConnectingSingleline:
				fmt.Fprintf(&b, " ConnectingSingleline(start=%d,end=%d)", p.Col, p.EndCol)
			case ConnectingMultiline:
				fmt.Fprintf(&b, " ConnectingMultiline(bar=%d,end=%d)", p.VerticalBarIndex, p.EndCol)
			case ContinuingMultiline:
				fmt.Fprintf(&b, " ContinuingMultiline(bar=%d)", p.VerticalBarIndex)
			case Hanging:
				fmt.Fprintf(&b, " Hanging(col=%d)", p.Col)
			case Label:
				fmt.Fprintf(&b, " Label(col=%d,text=%q)", p.Col, p.Text)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
