package report

import "strings"

// Handler formats and dispatches reports for one pass category
// (e.g. "syntax error", "context error").
type Handler struct {
	category  string
	log       Log
	hasErrors bool
}

// NewHandler creates a handler that prefixes messages with the given
// category and submits them to log. A nil log discards reports.
func NewHandler(category string, log Log) *Handler {
	return &Handler{category: category, log: log}
}

// HasErrors reports whether any error has been submitted. It is monotone
// for the handler's lifetime.
func (h *Handler) HasErrors() bool {
	return h.hasErrors
}

// Error records an error report and lets the pass continue.
func (h *Handler) Error(msg string, src *SourceCode, area SourceArea, code ErrorCode) {
	h.submit(Error, msg, src, area, code)
}

// ErrorBreak records an error report and returns it so the caller can
// abort the current pass.
func (h *Handler) ErrorBreak(msg string, src *SourceCode, area SourceArea, code ErrorCode) error {
	return h.submit(Error, msg, src, area, code)
}

// Warning records a warning report and lets the pass continue.
func (h *Handler) Warning(msg string, src *SourceCode, area SourceArea, code ErrorCode) {
	h.submit(Warning, msg, src, area, code)
}

// WarningBreak records a warning report and returns it so the caller can
// abort the current pass.
func (h *Handler) WarningBreak(msg string, src *SourceCode, area SourceArea, code ErrorCode) error {
	return h.submit(Warning, msg, src, area, code)
}

// Info records an informational report.
func (h *Handler) Info(msg string, src *SourceCode, area SourceArea) {
	h.submit(Info, msg, src, area, ErrorCode{})
}

func (h *Handler) submit(t Type, msg string, src *SourceCode, area SourceArea, code ErrorCode) *Report {
	r := h.MakeReport(t, msg, src, area, code)
	if t == Error {
		h.hasErrors = true
	}
	if h.log != nil {
		h.log.SubmitReport(r)
	}
	return r
}

// MakeReport formats a report. The message is prefixed with the handler
// category and the error code when present. If src is non-nil and the area
// is valid, the offending line and a caret marker are attached.
func (h *Handler) MakeReport(t Type, msg string, src *SourceCode, area SourceArea, code ErrorCode) *Report {
	var sb strings.Builder
	sb.WriteString(h.category)
	if code.Get() != "" {
		sb.WriteString(" (")
		sb.WriteString(code.Get())
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(msg)
	fullMsg := sb.String()

	if src != nil && area.IsValid() {
		line := src.Line(area.Begin.Row)
		if line != "" {
			marker := makeMarker(line, area)
			return NewWithLine(t, fullMsg, line, marker)
		}
	}
	return New(t, fullMsg)
}

// makeMarker builds a marker string of the same rune length as line,
// with '^' at the area's first column, '~' through the rest of the area,
// and spaces elsewhere. Tabs in the line are copied into the marker so
// both expand to the same width on display.
func makeMarker(line string, area SourceArea) string {
	begin := area.Begin.Column
	end := area.End.Column
	if end <= begin {
		end = begin + 1
	}

	var sb strings.Builder
	col := 1
	for _, r := range line {
		switch {
		case col == begin:
			sb.WriteByte('^')
		case col > begin && col < end:
			sb.WriteByte('~')
		case r == '\t':
			sb.WriteByte('\t')
		default:
			sb.WriteByte(' ')
		}
		col++
	}
	return sb.String()
}
