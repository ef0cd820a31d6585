package report

import (
	"fmt"
	"io"
)

// Log is the sink reports are submitted to. The embedder is responsible
// for serializing concurrent submissions.
type Log interface {
	SubmitReport(r *Report)
}

// StdLog writes each report as plain text: the message on one line,
// followed by the offending line and its marker when present.
type StdLog struct {
	Out io.Writer
}

// SubmitReport implements Log.
func (l *StdLog) SubmitReport(r *Report) {
	fmt.Fprintln(l.Out, r.Message())
	if r.HasLine() {
		fmt.Fprintln(l.Out, r.Line())
		fmt.Fprintln(l.Out, r.Marker())
	}
}

// CollectLog gathers submitted reports in order, for embedders that want
// to inspect or re-render diagnostics after a pass completes.
type CollectLog struct {
	Reports []*Report
}

// SubmitReport implements Log.
func (l *CollectLog) SubmitReport(r *Report) {
	l.Reports = append(l.Reports, r)
}
