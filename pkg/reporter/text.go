package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/footmark/internal/ui/pretty"
	"github.com/yaklabco/footmark/pkg/lint"
	"github.com/yaklabco/footmark/pkg/mdast"
	"github.com/yaklabco/footmark/pkg/runner"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	if r.opts.Formatting {
		return r.reportFormatting(result), nil
	}

	totalIssues := r.reportDiagnostics(result)

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return totalIssues, nil
}

// reportFormatting lists the files whose serialization differs from disk.
func (r *TextReporter) reportFormatting(result *runner.Result) int {
	var changed int

	for _, file := range result.Files {
		if r.writeFileError(file) || file.Result == nil || !file.Result.Modified {
			continue
		}
		changed++

		label := r.styles.Failure.Render("would reformat")
		switch pr := file.Result; {
		case pr.Skipped:
			label = r.styles.Warning.Render("skipped")
		case pr.Written:
			label = r.styles.Success.Render("formatted")
		}

		line := label + " " + r.styles.FilePath.Render(r.opts.displayPath(file.Path))
		switch {
		case file.Result.Skipped:
			line += r.styles.Dim.Render(" (" + file.Result.SkipReason + ")")
		case file.Result.BackupCreated:
			line += r.styles.Dim.Render(" (backup created)")
		}
		fmt.Fprintln(r.bw, line)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatFormatSummary(result.Stats, r.opts.Write))
	}
	return changed
}

func (r *TextReporter) writeFileError(file runner.FileOutcome) bool {
	if file.Error == nil {
		return false
	}
	fmt.Fprintf(r.bw, "%s: %s\n",
		r.styles.FilePath.Render(r.opts.displayPath(file.Path)),
		r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
	)
	return true
}

// reportDiagnostics writes every diagnostic, under a per-file header when
// grouping is on.
func (r *TextReporter) reportDiagnostics(result *runner.Result) int {
	var total int

	for _, file := range result.Files {
		if r.writeFileError(file) || file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		diagnostics := file.Result.Diagnostics
		if len(diagnostics) == 0 {
			continue
		}

		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(r.opts.displayPath(file.Path), len(diagnostics)))
		}
		for _, diag := range diagnostics {
			r.writeDiagnostic(diag, file.Result.Snapshot)
		}
		if r.opts.GroupByFile {
			fmt.Fprintln(r.bw)
		}
		total += len(diagnostics)
	}

	return total
}

func (r *TextReporter) writeDiagnostic(diag lint.Diagnostic, snapshot *mdast.FileSnapshot) {
	var sourceLine string
	if r.opts.ShowContext && !r.opts.Compact && snapshot != nil {
		sourceLine = string(snapshot.LineContent(diag.StartLine))
	}
	if r.opts.Compact {
		diag.Suggestion = ""
	}

	diag.FilePath = r.opts.displayPath(diag.FilePath)
	fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diag, sourceLine, r.opts.RuleFormat))
}
