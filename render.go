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
)

// Render writes every diagnostic in the report to sink, in the order
// given, using fileDB to resolve annotation byte ranges and cfg/styles to
// control presentation.
//
// Rendering is fail-fast: the first error from fileDB or sink aborts the
// call, and partial output may already have been written. Invariant
// violations found by the layout core are returned as a [LayoutBug], and
// any panic raised while rendering is recovered here and also returned as
// a [LayoutBug] rather than propagated, matching the
// programmer-error-vs-input-error split documented on [LayoutBug].
func Render(sink StyleSink, styles StyleConfig, fileDB FileDatabase, cfg Config, report *Report) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if bug, ok := r.(*LayoutBug); ok {
				err = bug
				return
			}
			err = layoutBugf("recovered panic: %v", r)
		}
	}()

	for i, d := range report.Diagnostics {
		if i > 0 {
			if _, werr := sink.Write([]byte("\n")); werr != nil {
				return werr
			}
		}
		if werr := renderOne(sink, styles, fileDB, cfg, d); werr != nil {
			return werr
		}
	}
	return nil
}

func renderOne(sink StyleSink, styles StyleConfig, fileDB FileDatabase, cfg Config, d *Diagnostic) error {
	if err := writeHeader(sink, styles, d, cfg); err != nil {
		return err
	}

	files := groupByFile(d.annotations)
	for _, file := range files {
		var fileAnnotations []Annotation
		for _, a := range d.annotations {
			if a.File == file {
				fileAnnotations = append(fileAnnotations, a)
			}
		}

		if err := writeLocationLine(sink, styles, fileDB, file, fileAnnotations); err != nil {
			return err
		}

		if cfg.Compact {
			continue
		}

		e := newEmitter(sink, styles, effectiveSeverity(d.Severity, cfg), 0)
		if err := renderBlock(e, fileDB, file, fileAnnotations, cfg.SurroundingLines); err != nil {
			return err
		}
	}

	if len(files) == 0 && d.inFile != "" {
		if err := writePlainLocation(sink, styles, d.inFile); err != nil {
			return err
		}
	}

	for _, n := range d.notes {
		if n.Severity == SeverityBug && !cfg.ShowDebug {
			continue
		}
		if n.Severity == SeverityHelp && !cfg.ShowHelp {
			continue
		}
		if err := writeNote(sink, styles, n); err != nil {
			return err
		}
	}

	if d.suppressedCount > 0 {
		if _, err := fmt.Fprintf(sinkWriter{sink}, "... and %d more\n", d.suppressedCount); err != nil {
			return err
		}
	}

	return nil
}

// effectiveSeverity applies [Config.WarningsAreErrors] to the severity
// used for the header and annotation styling, without mutating the
// diagnostic itself.
func effectiveSeverity(sev Severity, cfg Config) Severity {
	if cfg.WarningsAreErrors && sev == SeverityWarning {
		return SeverityError
	}
	return sev
}

func writeHeader(sink StyleSink, styles StyleConfig, d *Diagnostic, cfg Config) error {
	sev := effectiveSeverity(d.Severity, cfg)
	if attr := styles.forSeverity(SlotSeverity, sev); attr != nil {
		if err := sink.SetStyle(attr); err != nil {
			return err
		}
	}
	if _, err := sink.Write([]byte(sev.String())); err != nil {
		return err
	}
	if d.tag != "" {
		if _, err := fmt.Fprintf(sinkWriter{sink}, "[%s]", d.tag); err != nil {
			return err
		}
	}
	if styles.forSeverity(SlotSeverity, sev) != nil {
		if err := sink.ResetStyle(); err != nil {
			return err
		}
	}
	if _, err := sink.Write([]byte(": ")); err != nil {
		return err
	}
	if attr := styles.forPlain(SlotMessage); attr != nil {
		if err := sink.SetStyle(attr); err != nil {
			return err
		}
	}
	if _, err := sink.Write([]byte(d.message)); err != nil {
		return err
	}
	if styles.forPlain(SlotMessage) != nil {
		if err := sink.ResetStyle(); err != nil {
			return err
		}
	}
	_, err := sink.Write([]byte("\n"))
	return err
}

func writeLocationLine(sink StyleSink, styles StyleConfig, fileDB FileDatabase, file FileID, annotations []Annotation) error {
	name, err := fileDB.Name(file)
	if err != nil {
		return err
	}

	loc := Location{LineNumber: 1, ColumnNumber: 1}
	for _, a := range annotations {
		if a.Style != Primary {
			continue
		}
		l, err := fileDB.Location(file, a.Start)
		if err != nil {
			return err
		}
		loc = l
		break
	}

	if _, err := sink.Write([]byte(" --> ")); err != nil {
		return err
	}
	return writeStyledPath(sink, styles, fmt.Sprintf("%s:%d:%d", name, loc.LineNumber, loc.ColumnNumber))
}

func writePlainLocation(sink StyleSink, styles StyleConfig, path string) error {
	if _, err := sink.Write([]byte(" --> ")); err != nil {
		return err
	}
	return writeStyledPath(sink, styles, path)
}

func writeStyledPath(sink StyleSink, styles StyleConfig, text string) error {
	if attr := styles.forPlain(SlotPath); attr != nil {
		if err := sink.SetStyle(attr); err != nil {
			return err
		}
	}
	if _, err := sink.Write([]byte(text)); err != nil {
		return err
	}
	if styles.forPlain(SlotPath) != nil {
		if err := sink.ResetStyle(); err != nil {
			return err
		}
	}
	_, err := sink.Write([]byte("\n"))
	return err
}

func writeNote(sink StyleSink, styles StyleConfig, n Note) error {
	lines := strings.Split(n.Message, "\n")
	prefix := n.Severity.String()
	if attr := styles.forSeverity(SlotNoteSeverity, n.Severity); attr != nil {
		if err := sink.SetStyle(attr); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(sinkWriter{sink}, "= %s: ", prefix); err != nil {
		return err
	}
	if styles.forSeverity(SlotNoteSeverity, n.Severity) != nil {
		if err := sink.ResetStyle(); err != nil {
			return err
		}
	}

	indent := strings.Repeat(" ", len(prefix)+4)
	for i, line := range lines {
		if i > 0 {
			if _, err := sink.Write([]byte(indent)); err != nil {
				return err
			}
		}
		if _, err := sink.Write([]byte(line)); err != nil {
			return err
		}
		if _, err := sink.Write([]byte("\n")); err != nil {
			return err
		}
	}
	return nil
}

// sinkWriter adapts a [StyleSink] to [io.Writer] for use with [fmt.Fprintf].
type sinkWriter struct{ StyleSink }
