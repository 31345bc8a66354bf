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

// Attribute is an opaque style token looked up through a [StyleConfig] and
// applied via [StyleSink.SetStyle]. Its concrete representation is entirely
// up to the StyleSink implementation (an ANSI escape sequence, a lipgloss
// style, a terminal.Attribute bitmask, ...); this package never interprets
// it directly.
type Attribute any

// StyleSlot identifies one of the logical places in a rendered diagnostic
// that can be styled independently.
type StyleSlot int8

const (
	SlotReset StyleSlot = iota
	SlotSeverity
	SlotName
	SlotMessage
	SlotPath
	SlotLineNumber
	SlotLineNumberSeparator
	SlotAnnotation
	SlotSource
	SlotNoteSeverity
	SlotNoteMessage
)

// StyleConfig maps logical style slots, optionally parameterized by
// [Severity] or [AnnotationStyle], to sink-specific [Attribute] values.
//
// A StyleConfig with a nil lookup function for a given slot renders that
// slot unstyled.
type StyleConfig struct {
	// Severity returns the attribute for SlotSeverity/SlotName/
	// SlotNoteSeverity/SlotNoteMessage given the relevant severity.
	Severity func(slot StyleSlot, sev Severity) Attribute
	// Annotation returns the attribute for SlotAnnotation given the
	// annotation's style and the owning diagnostic's severity.
	Annotation func(style AnnotationStyle, sev Severity) Attribute
	// Plain returns the attribute for slots with no severity/style
	// parameter (SlotMessage, SlotPath, SlotLineNumber, ...).
	Plain func(slot StyleSlot) Attribute
}

func (c StyleConfig) forSeverity(slot StyleSlot, sev Severity) Attribute {
	if c.Severity == nil {
		return nil
	}
	return c.Severity(slot, sev)
}

func (c StyleConfig) forAnnotation(style AnnotationStyle, sev Severity) Attribute {
	if c.Annotation == nil {
		return nil
	}
	return c.Annotation(style, sev)
}

func (c StyleConfig) forPlain(slot StyleSlot) Attribute {
	if c.Plain == nil {
		return nil
	}
	return c.Plain(slot)
}

// StyleSink is the byte-oriented output collaborator a [Render] call
// writes to. Implementations translate abstract [Attribute] tokens into
// concrete styling (ANSI escapes, a TUI library's style type, or nothing
// at all for a plain-text sink).
type StyleSink interface {
	// Write writes raw bytes, exactly like [io.Writer.Write].
	Write(p []byte) (int, error)

	// SetStyle begins styling subsequent writes with attr. Implementations
	// may assume SetStyle/ResetStyle calls are not nested; the driver
	// always pairs each SetStyle with a ResetStyle before the next
	// SetStyle.
	SetStyle(attr Attribute) error

	// ResetStyle ends the most recent SetStyle.
	ResetStyle() error
}

// plainSink is a dependency-free [StyleSink] that ignores all styling; the
// default when a caller has no color backend wired up.
type plainSink struct {
	w interface {
		Write(p []byte) (int, error)
	}
}

// NewPlainSink wraps w as an unstyled [StyleSink].
func NewPlainSink(w interface {
	Write(p []byte) (int, error)
},
) StyleSink {
	return &plainSink{w: w}
}

func (s *plainSink) Write(p []byte) (int, error) { return s.w.Write(p) }
func (s *plainSink) SetStyle(Attribute) error     { return nil }
func (s *plainSink) ResetStyle() error            { return nil }

var _ StyleSink = (*plainSink)(nil)
var _ fmt.Stringer = StyleSlot(0)

// String implements [fmt.Stringer].
func (s StyleSlot) String() string {
	switch s {
	case SlotReset:
		return "reset"
	case SlotSeverity:
		return "severity"
	case SlotName:
		return "name"
	case SlotMessage:
		return "message"
	case SlotPath:
		return "path"
	case SlotLineNumber:
		return "lineNumber"
	case SlotLineNumberSeparator:
		return "lineNumberSeparator"
	case SlotAnnotation:
		return "annotation"
	case SlotSource:
		return "source"
	case SlotNoteSeverity:
		return "noteSeverity"
	case SlotNoteMessage:
		return "noteMessage"
	default:
		return fmt.Sprintf("StyleSlot(%d)", int8(s))
	}
}
