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

// Annotation is one underlined byte range in one source file.
//
// The byte range is half-open, [Start, End). Label must not contain
// newlines; a multi-line explanation belongs in a [Note] instead.
type Annotation struct {
	Style AnnotationStyle
	File  FileID
	Start int
	End   int
	Label string
}

// Note is trailing explanatory text attached to a [Diagnostic]. Unlike an
// Annotation's label, a Note's Message may contain newlines; each line is
// indented beneath the note's severity token when rendered.
type Note struct {
	Severity Severity
	Message  string
}

// Diagnostic is one diagnostic message: a severity, an optional
// machine-readable tag, a one-line message, zero or more annotated source
// spans, and trailing notes.
//
// Construct one with [NewDiagnostic] and [Diagnostic.Apply], or via the
// convenience constructors on [Report] ([Report.Errorf] and friends).
type Diagnostic struct {
	Severity Severity

	tag     string
	message string
	inFile  string

	annotations     []Annotation
	notes           []Note
	suppressedCount int
}

// NewDiagnostic creates a new, empty diagnostic at the given severity.
func NewDiagnostic(severity Severity, options ...DiagnosticOption) *Diagnostic {
	d := &Diagnostic{Severity: severity}
	return d.Apply(options...)
}

// Is reports whether this diagnostic was constructed with the given tag.
func (d *Diagnostic) Is(tag string) bool {
	return d.tag == tag
}

// Tag returns the diagnostic's machine-readable tag, if any.
func (d *Diagnostic) Tag() string {
	return d.tag
}

// Message returns the diagnostic's one-line message.
func (d *Diagnostic) Message() string {
	return d.message
}

// Annotations returns the diagnostic's annotated spans, in the order they
// were added. The first annotation with [Primary] style is the diagnostic's
// primary annotation, used for the `--> path:line:col` location line.
func (d *Diagnostic) Annotations() []Annotation {
	return d.annotations
}

// Notes returns the diagnostic's trailing notes, in the order they were
// added.
func (d *Diagnostic) Notes() []Note {
	return d.notes
}

// SuppressedCount returns the number of additional diagnostics this one
// stands in for, as set by [Suppressed].
func (d *Diagnostic) SuppressedCount() int {
	return d.suppressedCount
}

// Primary returns the diagnostic's primary annotation and true, or the
// zero Annotation and false if it has none.
func (d *Diagnostic) Primary() (Annotation, bool) {
	for _, a := range d.annotations {
		if a.Style == Primary {
			return a, true
		}
	}
	return Annotation{}, false
}

// InFile returns the file a diagnostic without any annotations should be
// attributed to, as set by [InFile].
func (d *Diagnostic) InFile() string {
	return d.inFile
}

// Apply applies the given options to this diagnostic, in order. Nil
// options are ignored, so option constructors may return nil to signal
// "no-op" (see [Snippet]).
func (d *Diagnostic) Apply(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option.apply(d)
		}
	}
	return d
}

// DiagnosticOption is an option applied to a [Diagnostic] via
// [Diagnostic.Apply] or passed to [NewDiagnostic].
type DiagnosticOption interface {
	apply(*Diagnostic)
}

type optionFunc func(*Diagnostic)

func (f optionFunc) apply(d *Diagnostic) { f(d) }

// WithTag sets a diagnostic's machine-readable tag. Tags should be
// lowercase identifiers separated by dashes, e.g. "unused-import".
func WithTag(tag string) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) { d.tag = tag })
}

// Message sets a diagnostic's one-line message. format/args are passed to
// [fmt.Sprintf].
func Message(format string, args ...any) DiagnosticOption {
	msg := fmt.Sprintf(format, args...)
	return optionFunc(func(d *Diagnostic) { d.message = msg })
}

// InFile attributes a diagnostic that has no annotated spans to the given
// display path, for the location line.
func InFile(path string) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) { d.inFile = path })
}

// Snippet adds an annotated span to the diagnostic. The first Snippet
// applied to a diagnostic is its primary annotation if style is [Primary];
// additional snippets accumulate in application order.
func Snippet(style AnnotationStyle, file FileID, start, end int, label string) DiagnosticOption {
	a := Annotation{Style: style, File: file, Start: start, End: end, Label: label}
	return optionFunc(func(d *Diagnostic) { d.annotations = append(d.annotations, a) })
}

// Notef adds a trailing note at the given severity. format/args are passed
// to [fmt.Sprintf].
func Notef(severity Severity, format string, args ...any) DiagnosticOption {
	n := Note{Severity: severity, Message: fmt.Sprintf(format, args...)}
	return optionFunc(func(d *Diagnostic) { d.notes = append(d.notes, n) })
}

// Help adds a trailing help note: a prose suggestion for resolving the
// diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return Notef(SeverityHelp, format, args...)
}

// Debug adds debugging information to a diagnostic, never shown to normal
// users; see [Config.ShowDebug].
func Debug(format string, args ...any) DiagnosticOption {
	return Notef(SeverityBug, format, args...)
}

// Suppressed records that this diagnostic stands in for n additional,
// identical-looking diagnostics that were elided to avoid flooding the
// user (e.g. the same error repeated for every element of a loop).
func Suppressed(n int) DiagnosticOption {
	return optionFunc(func(d *Diagnostic) { d.suppressedCount = n })
}

// Report is an ordered collection of diagnostics to render together.
type Report struct {
	Diagnostics []*Diagnostic
}

// Add appends a diagnostic to the report and returns it for chaining.
func (r *Report) Add(d *Diagnostic) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, d)
	return d
}

// Errorf adds and returns a new Error-severity diagnostic.
func (r *Report) Errorf(options ...DiagnosticOption) *Diagnostic {
	return r.Add(NewDiagnostic(SeverityError, options...))
}

// Warnf adds and returns a new Warning-severity diagnostic.
func (r *Report) Warnf(options ...DiagnosticOption) *Diagnostic {
	return r.Add(NewDiagnostic(SeverityWarning, options...))
}

// Notef adds and returns a new Note-severity diagnostic. The name mirrors
// the [Notef] option constructor but operates one level up, on the report.
func (r *Report) Notef(options ...DiagnosticOption) *Diagnostic {
	return r.Add(NewDiagnostic(SeverityNote, options...))
}

// Bugf adds and returns a new Bug-severity diagnostic, for internal
// invariant violations in the tool producing the report (not in the input
// being diagnosed).
func (r *Report) Bugf(options ...DiagnosticOption) *Diagnostic {
	return r.Add(NewDiagnostic(SeverityBug, options...))
}

// Len reports the number of diagnostics in the report.
func (r *Report) Len() int {
	return len(r.Diagnostics)
}

// Sort orders the report's diagnostics by decreasing severity, and within
// a severity, stably preserves insertion order. This is the canonical
// ordering applied before [Render] unless the caller has already chosen a
// deliberate order.
func (r *Report) Sort() {
	sort.SliceStable(r.Diagnostics, func(i, j int) bool {
		return r.Diagnostics[i].Severity > r.Diagnostics[j].Severity
	})
}
