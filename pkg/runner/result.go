package runner

import (
	"github.com/yaklabco/footmark/pkg/config"
	"github.com/yaklabco/footmark/pkg/lint"
)

// FileOutcome is the pipeline result for one discovered file. Exactly one
// of Result and Error is set.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats are the totals of a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	// FilesSkipped counts files held back by the write guard or the
	// re-parse check.
	FilesSkipped int
	FilesErrored int
	// FilesChanged counts files whose formatted output differs from the
	// input, whether or not it was written.
	FilesChanged int
	FilesWritten int

	FilesWithIssues       int
	DiagnosticsTotal      int
	DiagnosticsBySeverity map[config.Severity]int
}

// Result collects the outcomes of a run in path order.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasFailures reports whether any diagnostic has error severity.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity[config.SeverityError] > 0
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// HasChanges reports whether formatting changed any file.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

// NewResult builds a Result from outcomes produced outside Run, such as a
// document read from standard input.
func NewResult(outcomes ...FileOutcome) *Result {
	r := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	r.Stats.DiagnosticsBySeverity = make(map[config.Severity]int)
	r.Stats.FilesDiscovered = len(outcomes)
	for _, o := range outcomes {
		r.add(o)
	}
	return r
}

func (r *Result) add(o FileOutcome) {
	r.Files = append(r.Files, o)

	st := &r.Stats
	switch {
	case o.Error != nil:
		st.FilesErrored++
		return
	case o.Result == nil:
		return
	}

	pr := o.Result
	st.FilesProcessed++
	if pr.Skipped {
		st.FilesSkipped++
	} else if pr.Modified {
		st.FilesChanged++
	}
	if pr.Written {
		st.FilesWritten++
	}

	if pr.FileResult == nil || len(pr.Diagnostics) == 0 {
		return
	}
	st.FilesWithIssues++
	st.DiagnosticsTotal += len(pr.Diagnostics)
	for _, d := range pr.Diagnostics {
		sev := d.Severity
		if sev == "" {
			sev = config.SeverityWarning
		}
		st.DiagnosticsBySeverity[sev]++
	}
}
