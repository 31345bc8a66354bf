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
	"sort"
	"strconv"
	"strings"
)

// groupByFile buckets annotations by their FileID, in an order determined
// by each file's earliest-appearing annotation — a stable, deterministic
// order without requiring FileID to be orderable.
func groupByFile(annotations []Annotation) []FileID {
	seen := make(map[FileID]bool)
	var order []FileID
	for _, a := range annotations {
		if !seen[a.File] {
			seen[a.File] = true
			order = append(order, a.File)
		}
	}
	return order
}

// renderBlock renders every annotation touching one file as a single
// contiguous(ish) block of source, delegating the per-line heavy lifting
// to [calculateLine] and [emitter.emitRow].
func renderBlock(
	e *emitter, fileDB FileDatabase, file FileID, annotations []Annotation, surroundingLines int,
) error {
	sort.SliceStable(annotations, func(i, j int) bool { return annotations[i].Start < annotations[j].Start })

	startLine := make([]int, len(annotations))
	endLine := make([]int, len(annotations))
	for i, a := range annotations {
		var err error
		if startLine[i], err = fileDB.LineIndex(file, a.Start); err != nil {
			return err
		}
		last := a.End - 1
		if last < a.Start {
			last = a.Start
		}
		if endLine[i], err = fileDB.LineIndex(file, last); err != nil {
			return err
		}
	}

	maxNestedBlocks := maxNesting(startLine, endLine)
	e.maxNestedBlocks = maxNestedBlocks

	lastLine, err := lastTouchedLine(fileDB, file, endLine)
	if err != nil {
		return err
	}
	lineCount, err := fileDB.LineCount(file)
	if err != nil {
		return err
	}

	annotatedLines := annotatedLineSet(startLine, endLine)

	barOf := make(map[int]int) // annotation index -> gutter column
	freeBar := make([]bool, maxNestedBlocks)
	for i := range freeBar {
		freeBar[i] = true
	}
	takeBar := func() int {
		for i, free := range freeBar {
			if free {
				freeBar[i] = false
				return i
			}
		}
		return 0
	}
	releaseBar := func(idx int) {
		if idx >= 0 && idx < len(freeBar) {
			freeBar[idx] = true
		}
	}

	lastPrinted := -1

	for line := 0; line <= lastLine; line++ {
		if !annotatedLines[line] {
			continue
		}

		contextStart := line - surroundingLines
		if contextStart < 0 {
			contextStart = 0
		}
		if contextStart <= lastPrinted {
			contextStart = lastPrinted + 1
		}

		if lastPrinted >= 0 && contextStart > lastPrinted+1 {
			if err := emitElisionRow(e); err != nil {
				return err
			}
		}

		for l := contextStart; l < line; l++ {
			if err := emitPlainLine(e, fileDB, file, l); err != nil {
				return err
			}
			lastPrinted = l
		}

		var onLine []LineAnnotation
		var continuing []ContinuingAnnotation
		for i, a := range annotations {
			switch {
			case startLine[i] == line || endLine[i] == line:
				bar := barOf[i]
				if startLine[i] == line && startLine[i] != endLine[i] {
					bar = takeBar()
					barOf[i] = bar
				}
				onLine = append(onLine, LineAnnotation{Annotation: a, Index: i, BarIndex: bar})
			case startLine[i] < line && line < endLine[i]:
				continuing = append(continuing, ContinuingAnnotation{Index: i, OrigStart: a.Start, BarIndex: barOf[i]})
			}
		}
		sort.SliceStable(continuing, func(i, j int) bool { return continuing[i].OrigStart < continuing[j].OrigStart })

		rows, err := calculateLine(fileDB, file, line, onLine, continuing)
		if err != nil {
			return err
		}

		if err := emitSourceLine(e, fileDB, file, line); err != nil {
			return err
		}
		for _, row := range rows {
			if err := e.emitRow(row); err != nil {
				return err
			}
		}

		for i := range annotations {
			if endLine[i] == line && startLine[i] != endLine[i] {
				releaseBar(barOf[i])
			}
		}

		lastPrinted = line

		for l := line + 1; l <= line+surroundingLines && l < lineCount; l++ {
			if annotatedLines[l] {
				break
			}
			if err := emitPlainLine(e, fileDB, file, l); err != nil {
				return err
			}
			lastPrinted = l
		}
	}

	return nil
}

// maxNesting computes the maximum number of multi-line annotation ranges
// simultaneously open, by sweeping line starts/ends in order and tracking
// how many open ranges overlap at once.
func maxNesting(startLine, endLine []int) int {
	type event struct {
		line int
		kind int // -1 open, +1 close
	}
	var events []event
	for i := range startLine {
		if startLine[i] == endLine[i] {
			continue // not multi-line
		}
		events = append(events, event{startLine[i], -1}, event{endLine[i] + 1, 1})
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].line != events[j].line {
			return events[i].line < events[j].line
		}
		return events[i].kind > events[j].kind // closes before opens at same line
	})

	open, max := 0, 0
	for _, ev := range events {
		open -= ev.kind
		if open > max {
			max = open
		}
	}
	return max
}

func lastTouchedLine(fileDB FileDatabase, file FileID, endLine []int) (int, error) {
	max := 0
	for _, l := range endLine {
		if l > max {
			max = l
		}
	}
	count, err := fileDB.LineCount(file)
	if err != nil {
		return 0, err
	}
	if max > count-1 {
		max = count - 1
	}
	return max, nil
}

func annotatedLineSet(startLine, endLine []int) map[int]bool {
	set := make(map[int]bool)
	for i := range startLine {
		set[startLine[i]] = true
		set[endLine[i]] = true
	}
	return set
}

func emitSourceLine(e *emitter, fileDB FileDatabase, file FileID, line int) error {
	number, err := fileDB.LineNumber(file, line)
	if err != nil {
		return err
	}
	start, end, err := fileDB.LineRange(file, line)
	if err != nil {
		return err
	}
	source, err := fileDB.Source(file)
	if err != nil {
		return err
	}
	text := strings.TrimSuffix(source[start:end], "\n")
	return writeGutterAndSource(e, number, text)
}

func emitPlainLine(e *emitter, fileDB FileDatabase, file FileID, line int) error {
	return emitSourceLine(e, fileDB, file, line)
}

// emitElisionRow prints the "..." row standing in for a run of unprinted
// source lines between two annotated regions.
func emitElisionRow(e *emitter) error {
	_, err := e.sink.Write([]byte("...\n"))
	return err
}

func writeGutterAndSource(e *emitter, lineNumber int, text string) error {
	gutter := e.styles.forPlain(SlotLineNumber)
	if gutter != nil {
		if err := e.sink.SetStyle(gutter); err != nil {
			return err
		}
	}
	if _, err := e.sink.Write([]byte(strconv.Itoa(lineNumber))); err != nil {
		return err
	}
	if gutter != nil {
		if err := e.sink.ResetStyle(); err != nil {
			return err
		}
	}
	if _, err := e.sink.Write([]byte(" | ")); err != nil {
		return err
	}

	src := e.styles.forPlain(SlotSource)
	if src != nil {
		if err := e.sink.SetStyle(src); err != nil {
			return err
		}
	}
	if _, err := e.sink.Write([]byte(text)); err != nil {
		return err
	}
	if src != nil {
		if err := e.sink.ResetStyle(); err != nil {
			return err
		}
	}
	_, err := e.sink.Write([]byte("\n"))
	return err
}
