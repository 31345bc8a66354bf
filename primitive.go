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

import "fmt"

// PrimitiveKind identifies which of the seven drawable elements a
// [Primitive] represents. Only the fields documented for a given kind are
// meaningful; the rest are zero.
type PrimitiveKind int8

const (
	// ContinuingMultiline is a "|" in a gutter column, indicating a
	// multi-line annotation continues past this row. Uses VerticalBarIndex.
	ContinuingMultiline PrimitiveKind = iota + 1
	// ConnectingMultiline is a horizontal run of underscores from a gutter
	// column to EndCol. Uses VerticalBarIndex and EndCol.
	ConnectingMultiline
	// Start is a single boundary character at Col, the opening column of
	// an annotation's underline.
	Start
	// ConnectingSingleline is the underline run between a Start and an End
	// on the same source line. Uses Col (start) and EndCol.
	ConnectingSingleline
	// End is a single boundary character at Col, the closing column of an
	// annotation's underline.
	End
	// Hanging is a "|" stem beneath a Start/End whose label sits further
	// down, at Col.
	Hanging
	// Label is the rightmost primitive of its row: literal text at Col.
	Label
)

// String implements [fmt.Stringer].
func (k PrimitiveKind) String() string {
	switch k {
	case ContinuingMultiline:
		return "ContinuingMultiline"
	case ConnectingMultiline:
		return "ConnectingMultiline"
	case Start:
		return "Start"
	case ConnectingSingleline:
		return "ConnectingSingleline"
	case End:
		return "End"
	case Hanging:
		return "Hanging"
	case Label:
		return "Label"
	default:
		return fmt.Sprintf("PrimitiveKind(%d)", int8(k))
	}
}

// Primitive is one drawable element of a laid-out diagnostic line, as
// produced by the line layout core and consumed by the emitter.
//
// Primitive is a closed tagged union over [PrimitiveKind]; which fields
// are meaningful depends on Kind, documented on each constant above.
type Primitive struct {
	Kind PrimitiveKind

	Style    AnnotationStyle
	Severity Severity

	// Col is the primary source column: the Start/End/Hanging/Label
	// column, or the opening column of a ConnectingSingleline.
	Col int
	// EndCol is the closing column for ConnectingMultiline and
	// ConnectingSingleline.
	EndCol int
	// VerticalBarIndex is the gutter column (0-indexed) for
	// ContinuingMultiline and ConnectingMultiline.
	VerticalBarIndex int
	// AsMultiline forces a ConnectingSingleline to render as underscores
	// instead of underline characters. The line layout core in this
	// package never sets it.
	AsMultiline bool
	// Text is the literal content of a Label primitive.
	Text string
}

// sortCol reports the effective starting column used to stably order a row
// of primitives left to right, per §4.2 step 4's final sort pass.
func (p Primitive) sortCol() int {
	switch p.Kind {
	case ContinuingMultiline:
		return -1 << 30 // gutter bars always sort first.
	default:
		return p.Col
	}
}

// incidenceKind classifies how one annotation touches the line currently
// being laid out.
type incidenceKind int8

const (
	incidenceStart incidenceKind = iota + 1
	incidenceEnd
	incidenceBoth
)

// incidence is the per-line touch of one annotation, computed in Step 1 of
// the line layout core (spec'd as the StartEnd variant).
type incidence struct {
	kind incidenceKind

	annotation int // the annotation's LineAnnotation.Index
	style      AnnotationStyle
	severity   Severity
	label      string

	// startCol/endCol are meaningful per kind:
	//   incidenceStart: startCol only.
	//   incidenceEnd:    endCol only.
	//   incidenceBoth:   both, startCol <= endCol.
	startCol int
	endCol   int

	// origStart is the annotation's original byte-range start, used to
	// break ties between multi-line annotations during the end pass
	// (spec §4.2 step 3.3: earlier-starting sits lower).
	origStart int

	offset    int
	hasOffset bool
	connected bool

	// barIndex is the gutter column this incidence uses if/when it needs
	// a ContinuingMultiline bar: the column a Start reserves for its
	// future continuation, or the column an End closes out.
	barIndex int
}

func (in *incidence) col() int {
	switch in.kind {
	case incidenceEnd:
		return in.endCol
	default:
		return in.startCol
	}
}
