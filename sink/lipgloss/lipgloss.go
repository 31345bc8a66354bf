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

// Package lipgloss implements a diagrender.StyleSink backed by
// github.com/charmbracelet/lipgloss, which additionally adapts colors to
// the terminal's light/dark background.
package lipgloss

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/diagrender/diagrender"
)

// Sink is a [diagrender.StyleSink] that renders [diagrender.Attribute]
// values produced by [DefaultStyles] using github.com/charmbracelet/lipgloss.
//
// Because lipgloss styles whole strings rather than opening an
// unterminated escape sequence, Sink buffers the style installed by the
// most recent SetStyle and applies it to every Write until the matching
// ResetStyle. Nested SetStyle calls are not supported, matching the
// driver's own SetStyle/Write.../ResetStyle usage pattern.
type Sink struct {
	w      io.Writer
	active *lipgloss.Style
}

// New wraps w as a lipgloss-backed [diagrender.StyleSink].
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Write implements [diagrender.StyleSink].
func (s *Sink) Write(p []byte) (int, error) {
	if s.active == nil {
		return s.w.Write(p)
	}
	if _, err := io.WriteString(s.w, s.active.Render(string(p))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetStyle implements [diagrender.StyleSink].
func (s *Sink) SetStyle(attr diagrender.Attribute) error {
	style, ok := attr.(lipgloss.Style)
	if !ok {
		return nil
	}
	s.active = &style
	return nil
}

// ResetStyle implements [diagrender.StyleSink].
func (s *Sink) ResetStyle() error {
	s.active = nil
	return nil
}

var _ diagrender.StyleSink = (*Sink)(nil)

// DefaultStyles returns a [diagrender.StyleConfig] using lipgloss adaptive
// colors, which automatically choose a light or dark variant based on the
// terminal's reported background.
func DefaultStyles() diagrender.StyleConfig {
	adaptive := func(light, dark string) lipgloss.Style {
		return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
	}

	return diagrender.StyleConfig{
		Severity: func(slot diagrender.StyleSlot, sev diagrender.Severity) diagrender.Attribute {
			switch sev {
			case diagrender.SeverityBug, diagrender.SeverityError:
				return adaptive("#AF0000", "#FF5F5F")
			case diagrender.SeverityWarning:
				return adaptive("#AF8700", "#FFD75F")
			case diagrender.SeverityNote:
				return adaptive("#008700", "#5FFF5F")
			case diagrender.SeverityHelp:
				return adaptive("#008787", "#5FFFFF")
			default:
				return nil
			}
		},
		Annotation: func(style diagrender.AnnotationStyle, sev diagrender.Severity) diagrender.Attribute {
			if style == diagrender.Secondary {
				return adaptive("#005FAF", "#5FAFFF")
			}
			switch sev {
			case diagrender.SeverityBug, diagrender.SeverityError:
				return adaptive("#AF0000", "#FF5F5F")
			case diagrender.SeverityWarning:
				return adaptive("#AF8700", "#FFD75F")
			default:
				return adaptive("#008787", "#5FFFFF")
			}
		},
		Plain: func(slot diagrender.StyleSlot) diagrender.Attribute {
			switch slot {
			case diagrender.SlotLineNumber, diagrender.SlotPath:
				return adaptive("#005FAF", "#5FAFFF")
			default:
				return nil
			}
		},
	}
}
