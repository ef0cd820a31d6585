package report

import "strings"

// SourceCode owns an immutable source buffer and a per-line index so
// diagnostics can retrieve the offending line cheaply.
type SourceCode struct {
	name  string
	text  string
	lines []int // byte offset of each line start
}

// NewSourceCode creates a source buffer with the given identifier
// (typically a file name) and indexes its line starts.
func NewSourceCode(name, text string) *SourceCode {
	sc := &SourceCode{
		name:  name,
		text:  text,
		lines: make([]int, 0, 64),
	}
	sc.lines = append(sc.lines, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			sc.lines = append(sc.lines, i+1)
		}
	}
	return sc
}

// Name returns the source identifier.
func (sc *SourceCode) Name() string {
	return sc.name
}

// Text returns the full source buffer.
func (sc *SourceCode) Text() string {
	return sc.text
}

// NumLines returns the number of lines in the buffer.
func (sc *SourceCode) NumLines() int {
	return len(sc.lines)
}

// Line returns the text of the one-based row with any trailing newline
// stripped, or "" if the row is out of range.
func (sc *SourceCode) Line(row int) string {
	if row < 1 || row > len(sc.lines) {
		return ""
	}
	start := sc.lines[row-1]
	end := len(sc.text)
	if row < len(sc.lines) {
		end = sc.lines[row] - 1 // exclude the '\n'
	}
	return strings.TrimRight(sc.text[start:end], "\r")
}
