// Package report provides source positions, diagnostic reports, and the
// report handler shared by every compiler pass.
package report

import "fmt"

// SourcePosition is a one-based (row, column) coordinate in a source buffer.
// The zero value is the "ignore" position, meaning no location is known.
type SourcePosition struct {
	Row    int
	Column int
}

// IgnorePosition is the sentinel for an unknown position.
var IgnorePosition = SourcePosition{}

// IsValid reports whether the position denotes an actual source location.
func (p SourcePosition) IsValid() bool {
	return p.Row >= 1 && p.Column >= 1
}

// String returns the position as "row:column", or "?" for the ignore value.
func (p SourcePosition) String() string {
	if !p.IsValid() {
		return "?"
	}
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// SourceArea is a half-open range [Begin, End) over positions,
// carrying the identifier of the source it refers to.
type SourceArea struct {
	Begin  SourcePosition
	End    SourcePosition
	Source string
}

// IgnoreArea is the sentinel for an unknown source area.
var IgnoreArea = SourceArea{}

// NewArea returns the area covering [begin, end) in the named source.
func NewArea(source string, begin, end SourcePosition) SourceArea {
	return SourceArea{Begin: begin, End: end, Source: source}
}

// AreaFromLength returns the area starting at pos and spanning length columns.
func AreaFromLength(source string, pos SourcePosition, length int) SourceArea {
	end := SourcePosition{Row: pos.Row, Column: pos.Column + length}
	return SourceArea{Begin: pos, End: end, Source: source}
}

// IsValid reports whether the area denotes an actual source range.
func (a SourceArea) IsValid() bool {
	return a.Begin.IsValid()
}
