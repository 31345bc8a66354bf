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

// Package ansi implements a diagrender.StyleSink backed by
// github.com/fatih/color, for terminals that understand plain ANSI
// escape sequences.
package ansi

import (
	"io"

	"github.com/fatih/color"

	"github.com/diagrender/diagrender"
)

// Sink is a [diagrender.StyleSink] that renders [diagrender.Attribute]
// values produced by [DefaultStyles] using github.com/fatih/color.
type Sink struct {
	w      io.Writer
	active *color.Color
}

// New wraps w as a color-capable [diagrender.StyleSink].
func New(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Write implements [diagrender.StyleSink].
func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// SetStyle implements [diagrender.StyleSink]. attr must be a
// *color.Color, as produced by [DefaultStyles]; any other type is
// ignored.
func (s *Sink) SetStyle(attr diagrender.Attribute) error {
	c, ok := attr.(*color.Color)
	if !ok || c == nil {
		return nil
	}
	s.active = c
	seq := c.Sprint("")
	// color.Color has no public "just the escape" API; Sprint("") yields
	// exactly the opening sequence followed by the reset sequence, so we
	// only want the prefix up to the first reset.
	const reset = "\x1b[0m"
	if i := indexOf(seq, reset); i >= 0 {
		seq = seq[:i]
	}
	_, err := s.w.Write([]byte(seq))
	return err
}

// ResetStyle implements [diagrender.StyleSink].
func (s *Sink) ResetStyle() error {
	s.active = nil
	_, err := s.w.Write([]byte("\x1b[0m"))
	return err
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}

// DefaultStyles returns a [diagrender.StyleConfig] mapping severities and
// annotation styles to a conventional rustc-like color scheme.
func DefaultStyles() diagrender.StyleConfig {
	return diagrender.StyleConfig{
		Severity: func(slot diagrender.StyleSlot, sev diagrender.Severity) diagrender.Attribute {
			switch sev {
			case diagrender.SeverityBug:
				return color.New(color.FgHiRed, color.Bold)
			case diagrender.SeverityError:
				return color.New(color.FgRed, color.Bold)
			case diagrender.SeverityWarning:
				return color.New(color.FgYellow, color.Bold)
			case diagrender.SeverityNote:
				return color.New(color.FgGreen, color.Bold)
			case diagrender.SeverityHelp:
				return color.New(color.FgCyan, color.Bold)
			default:
				return nil
			}
		},
		Annotation: func(style diagrender.AnnotationStyle, sev diagrender.Severity) diagrender.Attribute {
			if style == diagrender.Secondary {
				return color.New(color.FgBlue, color.Bold)
			}
			switch sev {
			case diagrender.SeverityBug, diagrender.SeverityError:
				return color.New(color.FgRed, color.Bold)
			case diagrender.SeverityWarning:
				return color.New(color.FgYellow, color.Bold)
			default:
				return color.New(color.FgCyan, color.Bold)
			}
		},
		Plain: func(slot diagrender.StyleSlot) diagrender.Attribute {
			switch slot {
			case diagrender.SlotLineNumber, diagrender.SlotPath:
				return color.New(color.FgBlue, color.Bold)
			default:
				return nil
			}
		},
	}
}

var _ diagrender.StyleSink = (*Sink)(nil)
