package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourcePosition(t *testing.T) {
	tests := []struct {
		name  string
		pos   SourcePosition
		valid bool
		str   string
	}{
		{name: "valid", pos: SourcePosition{Row: 3, Column: 14}, valid: true, str: "3:14"},
		{name: "ignore", pos: IgnorePosition, valid: false, str: "?"},
		{name: "zero column", pos: SourcePosition{Row: 1, Column: 0}, valid: false, str: "?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.pos.IsValid())
			assert.Equal(t, tt.str, tt.pos.String())
		})
	}
}

func TestSourceArea(t *testing.T) {
	area := AreaFromLength("test.hlsl", SourcePosition{Row: 2, Column: 5}, 3)
	assert.True(t, area.IsValid())
	assert.Equal(t, 2, area.Begin.Row)
	assert.Equal(t, 5, area.Begin.Column)
	assert.Equal(t, 8, area.End.Column)

	assert.False(t, IgnoreArea.IsValid())
}

func TestSourceCode_Line(t *testing.T) {
	src := NewSourceCode("test.hlsl", "float4 a;\nint b;\r\nreturn;")

	tests := []struct {
		row  int
		want string
	}{
		{row: 1, want: "float4 a;"},
		{row: 2, want: "int b;"},
		{row: 3, want: "return;"},
		{row: 0, want: ""},
		{row: 4, want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, src.Line(tt.row), "row %d", tt.row)
	}
	assert.Equal(t, 3, src.NumLines())
	assert.Equal(t, "test.hlsl", src.Name())
}

func TestReport_Basics(t *testing.T) {
	r := New(Warning, "implicit truncation")
	assert.Equal(t, Warning, r.Type())
	assert.Equal(t, "implicit truncation", r.Message())
	assert.False(t, r.HasLine())
	assert.Equal(t, "implicit truncation", r.Error())

	withLine := NewWithLine(Error, "boom", "int x;", "    ^~")
	assert.True(t, withLine.HasLine())
	assert.Equal(t, "int x;", withLine.Line())
	assert.Equal(t, "    ^~", withLine.Marker())
}

func TestHandler_Marker(t *testing.T) {
	line := "int main() { foo(); }"
	src := NewSourceCode("test.hlsl", line)
	h := NewHandler("syntax error", nil)

	area := NewArea("test.hlsl",
		SourcePosition{Row: 1, Column: 14},
		SourcePosition{Row: 1, Column: 17},
	)
	r := h.MakeReport(Error, "undeclared identifier 'foo'", src, area, ErrorCode{})

	require.True(t, r.HasLine())
	want := strings.Repeat(" ", 13) + "^~~" + strings.Repeat(" ", len(line)-16)
	assert.Equal(t, want, r.Marker())
	assert.Len(t, r.Marker(), len(r.Line()))
	assert.Equal(t, "syntax error: undeclared identifier 'foo'", r.Message())
}

func TestHandler_MarkerTabs(t *testing.T) {
	line := "\tfoo();"
	src := NewSourceCode("test.hlsl", line)
	h := NewHandler("context error", nil)

	area := NewArea("test.hlsl",
		SourcePosition{Row: 1, Column: 2},
		SourcePosition{Row: 1, Column: 5},
	)
	r := h.MakeReport(Error, "undeclared identifier 'foo'", src, area, ErrorCode{})

	require.True(t, r.HasLine())
	assert.Equal(t, "\t^~~   ", r.Marker())
}

func TestHandler_MarkerMultibyte(t *testing.T) {
	// The é is two bytes but one column; marker length must match in runes.
	line := "café(x);"
	src := NewSourceCode("test.hlsl", line)
	h := NewHandler("syntax error", nil)

	area := NewArea("test.hlsl",
		SourcePosition{Row: 1, Column: 1},
		SourcePosition{Row: 1, Column: 5},
	)
	r := h.MakeReport(Error, "unknown function", src, area, ErrorCode{})

	require.True(t, r.HasLine())
	assert.Equal(t, len([]rune(line)), len([]rune(r.Marker())))
	assert.Equal(t, "^~~~    ", r.Marker())
}

func TestHandler_ErrorCode(t *testing.T) {
	h := NewHandler("context error", nil)
	r := h.MakeReport(Error, "cannot implicitly convert", nil, IgnoreArea, NewErrorCode("X3017"))
	assert.Equal(t, "context error (X3017): cannot implicitly convert", r.Message())
	assert.False(t, r.HasLine())
}

func TestHandler_HasErrorsMonotone(t *testing.T) {
	log := &CollectLog{}
	h := NewHandler("context error", log)

	assert.False(t, h.HasErrors())

	h.Warning("suspicious cast", nil, IgnoreArea, ErrorCode{})
	assert.False(t, h.HasErrors())

	h.Error("undeclared identifier", nil, IgnoreArea, ErrorCode{})
	assert.True(t, h.HasErrors())

	h.Warning("another warning", nil, IgnoreArea, ErrorCode{})
	assert.True(t, h.HasErrors())

	require.Len(t, log.Reports, 3)
	assert.Equal(t, Warning, log.Reports[0].Type())
	assert.Equal(t, Error, log.Reports[1].Type())
}

func TestHandler_Break(t *testing.T) {
	log := &CollectLog{}
	h := NewHandler("syntax error", log)

	err := h.ErrorBreak("unexpected token", nil, IgnoreArea, ErrorCode{})
	require.Error(t, err)

	var r *Report
	require.ErrorAs(t, err, &r)
	assert.Equal(t, Error, r.Type())
	assert.Equal(t, "syntax error: unexpected token", r.Message())
	assert.True(t, h.HasErrors())

	err = h.WarningBreak("deprecated syntax", nil, IgnoreArea, ErrorCode{})
	require.Error(t, err)
	require.ErrorAs(t, err, &r)
	assert.Equal(t, Warning, r.Type())
	// Warnings never flip the error flag back or forth.
	assert.True(t, h.HasErrors())
}

func TestStdLog(t *testing.T) {
	var sb strings.Builder
	log := &StdLog{Out: &sb}

	log.SubmitReport(NewWithLine(Error, "syntax error: bad", "int x", "    ^"))
	log.SubmitReport(New(Info, "done"))

	assert.Equal(t, "syntax error: bad\nint x\n    ^\ndone\n", sb.String())
}
