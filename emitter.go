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

// emitter writes already-laid-out rows of [Primitive] to a [StyleSink].
// Besides the sink and styles it holds the diagnostic's severity and the
// gutter width (maxNestedBlocks); the diagnostic driver creates one per
// file, and the block driver sets maxNestedBlocks before emitting rows.
type emitter struct {
	sink            StyleSink
	styles          StyleConfig
	severity        Severity
	maxNestedBlocks int
}

func newEmitter(sink StyleSink, styles StyleConfig, severity Severity, maxNestedBlocks int) *emitter {
	return &emitter{sink: sink, styles: styles, severity: severity, maxNestedBlocks: maxNestedBlocks}
}

// gutterOffset converts a source column into horizontal output position,
// leaving room for the 2*maxNestedBlocks+1 gutter columns to its left.
func (e *emitter) gutterOffset(col int) int {
	return col + 2*e.maxNestedBlocks + 1
}

func (e *emitter) barColumn(verticalBarIndex int) int {
	return 2*verticalBarIndex + 1
}

// emitRow writes one row of primitives, left to right, tracking the
// current horizontal cursor and padding with spaces as needed to reach
// each primitive's target column.
func (e *emitter) emitRow(row []Primitive) error {
	cursor := 0
	for _, p := range row {
		var start, end int
		switch p.Kind {
		case ContinuingMultiline:
			start = e.barColumn(p.VerticalBarIndex)
			end = start + 1
		case ConnectingMultiline:
			start = 2*p.VerticalBarIndex + 2
			end = e.gutterOffset(p.EndCol)
		case ConnectingSingleline:
			start = e.gutterOffset(p.Col)
			end = e.gutterOffset(p.EndCol)
		default: // Start, End, Hanging, Label
			start = e.gutterOffset(p.Col)
			end = start + 1
		}

		if start > cursor {
			if err := e.pad(start - cursor); err != nil {
				return err
			}
			cursor = start
		}

		attr := e.attributeFor(p)
		if attr != nil {
			if err := e.sink.SetStyle(attr); err != nil {
				return err
			}
		}

		text, width := e.textFor(p, end-start)
		if start < cursor {
			// An earlier, overlapping primitive already drew up to cursor;
			// only the part of this one to its right is written.
			skip := cursor - start
			if skip > width {
				skip = width
			}
			text, width, start = string([]rune(text)[skip:]), width-skip, cursor
		}
		if _, err := e.sink.Write([]byte(text)); err != nil {
			return err
		}

		if attr != nil {
			if err := e.sink.ResetStyle(); err != nil {
				return err
			}
		}

		cursor = start + width

		if p.Kind == Label {
			// Label is terminal for its row; no further primitives follow.
			break
		}
	}

	_, err := e.sink.Write([]byte("\n"))
	return err
}

func (e *emitter) pad(n int) error {
	if n <= 0 {
		return nil
	}
	spaces := make([]byte, n)
	for i := range spaces {
		spaces[i] = ' '
	}
	_, err := e.sink.Write(spaces)
	return err
}

func (e *emitter) attributeFor(p Primitive) Attribute {
	switch p.Kind {
	case Start, End, ConnectingSingleline, Hanging, ContinuingMultiline, ConnectingMultiline:
		return e.styles.forAnnotation(p.Style, e.severity)
	case Label:
		return e.styles.forPlain(SlotMessage)
	default:
		return nil
	}
}

func (e *emitter) textFor(p Primitive, width int) (string, int) {
	switch p.Kind {
	case ContinuingMultiline, Hanging:
		return "|", 1
	case ConnectingMultiline:
		if width < 0 {
			width = 0
		}
		return repeat('_', width), width
	case ConnectingSingleline:
		r := byte('^')
		switch {
		case p.AsMultiline:
			r = '_'
		case p.Style == Secondary:
			r = '-'
		}
		if width < 0 {
			width = 0
		}
		return repeat(rune(r), width), width
	case Start, End:
		if p.Style == Secondary {
			return "-", 1
		}
		return "^", 1
	case Label:
		return p.Text, len([]rune(p.Text))
	default:
		return "", 0
	}
}

func repeat(r rune, n int) string {
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
