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
	"sort"
)

// LayoutBug is the error returned when the line layout core detects a
// violation of its own invariants (an incidence left without a vertical
// offset, an annotation that touches neither the start nor the end of the
// line it was handed for, or a multi-line start whose row would collide
// with a singleline label's row). [Render] also returns a LayoutBug for any
// panic it recovers. These indicate a defect in the renderer itself, not in
// the diagnostic being rendered.
type LayoutBug struct {
	msg string
}

func (e *LayoutBug) Error() string { return "diagrender: internal error: " + e.msg }

func layoutBugf(format string, args ...any) *LayoutBug {
	return &LayoutBug{msg: fmt.Sprintf(format, args...)}
}

// LineAnnotation is one annotation handed to the line layout core because
// it touches the line currently being laid out (its start, its end, or
// both fall on that line).
type LineAnnotation struct {
	Annotation

	// Index identifies this annotation stably across the lines it spans,
	// so that a Start on one line and the matching End on a later line
	// can be correlated by the block driver.
	Index int

	// BarIndex is the gutter column this annotation uses for its own
	// continuation: the column its Start incidence reserves when it starts
	// on this line and spans past it, or the column its End incidence
	// closes out. Ignored for annotations with a Both incidence on this
	// line.
	BarIndex int
}

// ContinuingAnnotation is an annotation that started on a strictly earlier
// line and ends on a strictly later line than the one currently being laid
// out: it does not touch this line directly but still occupies a gutter
// bar running through it.
type ContinuingAnnotation struct {
	Index     int
	OrigStart int
	BarIndex  int
}

// calculateLine is the line layout core: given the annotations touching
// one source line and the set of annotations merely passing through it,
// computes the rows of primitives needed to render that line.
func calculateLine(
	fileDB FileDatabase, file FileID, lineIndex int,
	onLine []LineAnnotation, continuing []ContinuingAnnotation,
) ([][]Primitive, error) {
	lineStart, lineEnd, err := fileDB.LineRange(file, lineIndex)
	if err != nil {
		return nil, err
	}

	incidences := make([]*incidence, 0, len(onLine))
	for _, la := range onLine {
		startsHere := la.Start >= lineStart && la.Start < lineEnd
		// The byte range is half-open; the last included byte is End-1.
		// That byte falls on this line whenever lineStart < End <= lineEnd.
		endsHere := la.End > lineStart && la.End <= lineEnd

		in := &incidence{
			annotation: la.Index,
			style:      la.Style,
			label:      la.Label,
			origStart:  la.Start,
			barIndex:   la.BarIndex,
		}
		switch {
		case startsHere && endsHere:
			in.kind = incidenceBoth
			in.startCol = la.Start - lineStart
			in.endCol = la.End - lineStart - 1
		case startsHere:
			in.kind = incidenceStart
			in.startCol = la.Start - lineStart
		case endsHere:
			in.kind = incidenceEnd
			in.endCol = la.End - lineStart - 1
		default:
			return nil, layoutBugf("annotation %d touches neither start nor end of line %d", la.Index, lineIndex)
		}
		incidences = append(incidences, in)
	}

	// Step 2: sort by column ascending.
	sort.SliceStable(incidences, func(i, j int) bool { return incidences[i].col() < incidences[j].col() })

	if err := assignVerticalOffsets(incidences); err != nil {
		return nil, err
	}

	return emitRows(incidences, continuing)
}

// assignVerticalOffsets runs the three-pass offset assignment described for
// step 3 of the line layout core.
func assignVerticalOffsets(incidences []*incidence) error {
	var staticStartOffset int
	for _, in := range incidences {
		if in.kind == incidenceStart {
			staticStartOffset++
		}
	}

	// Pass 1: singleline (Both) incidences, right to left.
	running := 0
	endOffsetForStart := 1 << 30
	firstAssigned := false
	for i := len(incidences) - 1; i >= 0; i-- {
		in := incidences[i]
		if in.kind != incidenceBoth {
			continue
		}
		rightmost := i == len(incidences)-1
		if in.label == "" {
			if rightmost {
				running++
			}
			continue
		}

		if !firstAssigned {
			firstAssigned = true
			overlaps := false
			for _, other := range incidences {
				if other == in {
					continue
				}
				if other.kind == incidenceStart {
					// A multi-line start runs on past the end of this line.
					overlaps = true
					break
				}
				if other.kind == incidenceEnd && other.endCol > in.startCol {
					overlaps = true
					break
				}
				if other.kind == incidenceBoth && other.endCol > in.startCol && other != in {
					overlaps = true
					break
				}
			}
			if overlaps {
				running++
			}
			running += staticStartOffset
			endOffsetForStart = running
		}

		in.offset, in.hasOffset = running, true
		running++
	}

	// Pass 2: End incidences. Earlier-starting multilines end up lower
	// (higher offset) on this line so their connectors stack without
	// crossing.
	var ends []*incidence
	for _, in := range incidences {
		if in.kind == incidenceEnd {
			ends = append(ends, in)
		}
	}
	sort.SliceStable(ends, func(i, j int) bool { return ends[i].origStart < ends[j].origStart })
	for i := len(ends) - 1; i >= 0; i-- {
		in := ends[i]
		if running == 0 {
			for _, other := range incidences {
				if other != in && other.col() < in.endCol {
					running++
					break
				}
			}
		}
		in.offset, in.hasOffset = running, true
		running++
	}

	// Pass 3: Start incidences, left to right. When pass 1 reserved rows for
	// starts (a labeled singleline shares the line), starts take those rows
	// from 1 upward, below endOffsetForStart. Otherwise nextStartOffset
	// continues from wherever passes 1 and 2 left off, which is already 0
	// when neither pass assigned anything (e.g. a lone multi-line start,
	// whose connector then attaches directly to the underline row).
	nextStartOffset := running
	if endOffsetForStart < 1<<30 {
		nextStartOffset = 1
	}
	for _, in := range incidences {
		if in.kind != incidenceStart {
			continue
		}
		if nextStartOffset >= endOffsetForStart {
			return layoutBugf("start offset %d collided with singleline label offset %d", nextStartOffset, endOffsetForStart)
		}
		in.offset, in.hasOffset = nextStartOffset, true
		nextStartOffset++
	}

	for _, in := range incidences {
		if !in.hasOffset {
			return layoutBugf("incidence for annotation %d was never assigned a vertical offset", in.annotation)
		}
	}
	return nil
}

// emitRows implements step 4: walking output rows from 0 upward, emitting
// primitives for continuing bars and for each incidence as its row is
// reached.
func emitRows(incidences []*incidence, continuing []ContinuingAnnotation) ([][]Primitive, error) {
	maxOffset := 0
	for _, in := range incidences {
		bound := in.offset
		if in.label != "" && (in.kind == incidenceEnd || in.kind == incidenceBoth) {
			// A labeled End/Both incidence emits its label one row below
			// its own offset, so the row walk must reach that far too.
			bound++
		}
		if bound > maxOffset {
			maxOffset = bound
		}
	}

	var additionalContinuing []*incidence
	var rows [][]Primitive

	for r := 0; r <= maxOffset; r++ {
		var row []Primitive

		for _, c := range continuing {
			row = append(row, Primitive{Kind: ContinuingMultiline, VerticalBarIndex: c.BarIndex})
		}
		for _, in := range additionalContinuing {
			row = append(row, Primitive{Kind: ContinuingMultiline, VerticalBarIndex: in.barIndex})
		}

		applyMoveDown(incidences, r)

		for _, in := range incidences {
			switch in.kind {
			case incidenceStart:
				if in.offset == r && !in.connected {
					row = append(row, Primitive{
						Kind: ConnectingMultiline, VerticalBarIndex: in.barIndex,
						EndCol: in.startCol,
					})
					additionalContinuing = append(additionalContinuing, in)
					in.connected = true
				}
				if r == 0 {
					row = append(row, Primitive{Kind: Start, Style: in.style, Severity: in.severity, Col: in.startCol})
				} else if in.offset >= r {
					row = append(row, Primitive{Kind: Hanging, Col: in.startCol})
				}

			case incidenceEnd:
				if in.offset == r && !in.connected {
					row = append(row, Primitive{
						Kind: ConnectingMultiline, VerticalBarIndex: in.barIndex,
						EndCol: in.endCol,
					})
					in.connected = true
				}
				if r == 0 {
					row = append(row, Primitive{Kind: End, Style: in.style, Severity: in.severity, Col: in.endCol})
				} else if r == in.offset+1 && in.label != "" {
					row = append(row, Primitive{Kind: Label, Col: in.endCol, Text: in.label})
				} else if in.offset >= r {
					row = append(row, Primitive{Kind: Hanging, Col: in.endCol})
				}

			case incidenceBoth:
				labeledAtRowZero := in == rightmostIncidence(incidences) && in.offset == 0 && in.label != ""
				if r == 0 {
					row = append(row,
						Primitive{Kind: Start, Style: in.style, Severity: in.severity, Col: in.startCol},
						Primitive{Kind: ConnectingSingleline, Style: in.style, Col: in.startCol, EndCol: in.endCol},
						Primitive{Kind: End, Style: in.style, Severity: in.severity, Col: in.endCol},
					)
					if labeledAtRowZero {
						row = append(row, Primitive{Kind: Label, Col: in.endCol + 2, Text: in.label})
					}
				}
				if labeledAtRowZero {
					// Already emitted above; no hanging bar or repeated
					// label needed on later rows.
				} else if r == in.offset+1 && in.label != "" {
					row = append(row, Primitive{Kind: Label, Col: in.startCol, Text: in.label})
				} else if in.offset >= r && r > 0 {
					row = append(row, Primitive{Kind: Hanging, Col: in.startCol})
				}
			}
		}

		if onlyGutterBars(row) {
			break
		}

		sort.SliceStable(row, func(i, j int) bool { return row[i].sortCol() < row[j].sortCol() })
		rows = append(rows, row)
	}

	return rows, nil
}

// applyMoveDown implements the step 4.2 collision adjustment: when an
// incidence reaches its assigned row on this pass, any earlier (smaller
// column), lower-offset, labeled incidence that the new connector would
// visually cross gets pushed one row further down, so its label clears the
// connector.
func applyMoveDown(incidences []*incidence, r int) {
	var trigger *incidence
	for _, in := range incidences {
		if in.kind == incidenceStart || in.kind == incidenceEnd {
			if in.offset == r && !in.connected {
				trigger = in
				break
			}
		}
	}
	if trigger == nil {
		return
	}
	for _, in := range incidences {
		if in == trigger || in.label == "" {
			continue
		}
		if in.col() < trigger.col() && in.offset < trigger.offset && in.offset >= r {
			in.offset++
		}
	}
}

func rightmostIncidence(incidences []*incidence) *incidence {
	if len(incidences) == 0 {
		return nil
	}
	best := incidences[0]
	for _, in := range incidences[1:] {
		if in.col() > best.col() {
			best = in
		}
	}
	return best
}

func onlyGutterBars(row []Primitive) bool {
	for _, p := range row {
		if p.Kind != ContinuingMultiline {
			return false
		}
	}
	return true
}
